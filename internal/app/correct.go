package app

import (
	"fmt"
	"time"

	"github.com/deckstats/playtime/internal/output"
	"github.com/spf13/cobra"
)

var (
	correctGameID  string
	correctName    string
	correctSeconds float64

	correctCmd = &cobra.Command{
		Use:   "correct",
		Short: "Set a game's overall playtime to an exact value",
		Long: `Set a game's overall playtime to an exact value.

The difference between the desired total and the current total is
recorded as a correcting session, so the session history stays
append-only. Setting the current total again is a no-op.`,
		Example: `  # The game really has 100 hours on it
  playtime correct --game 12345 --name "Celeste" --total 360000`,
		RunE: runCorrect,
	}
)

func init() {
	correctCmd.Flags().StringVar(&correctGameID, "game", "", "game id (required)")
	correctCmd.Flags().StringVar(&correctName, "name", "", "game display name (required)")
	correctCmd.Flags().Float64Var(&correctSeconds, "total", 0, "desired overall playtime in seconds (required)")
	correctCmd.MarkFlagRequired("game")
	correctCmd.MarkFlagRequired("name")
	correctCmd.MarkFlagRequired("total")
	RootCmd.AddCommand(correctCmd)
}

func runCorrect(cmd *cobra.Command, args []string) error {
	if correctSeconds < 0 {
		return fmt.Errorf("--total must not be negative, got %v", correctSeconds)
	}

	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := tr.ApplyManualTimeForGame(time.Now().UTC(), correctGameID, correctName, correctSeconds, "manually-changed"); err != nil {
		return err
	}

	fmt.Printf("Overall playtime for %s set to %s\n", correctGameID, output.FormatDuration(correctSeconds))
	return nil
}
