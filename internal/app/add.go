package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	addGameID  string
	addName    string
	addSeconds float64
	addStart   string
	addSource  string

	addCmd = &cobra.Command{
		Use:   "add",
		Short: "Record a finished play session",
		Long: `Record a finished play session for a game.

The game is created on first use. Sessions for games whose tracking
status is set to "pause" or "ignore" are silently dropped.`,
		Example: `  # A 30 minute session that just ended
  playtime add --game 12345 --name "Celeste" --seconds 1800

  # A session with an explicit start time
  playtime add --game 12345 --name "Celeste" --seconds 1800 --start 2026-08-30T20:15:00Z`,
		RunE: runAdd,
	}
)

func init() {
	addCmd.Flags().StringVar(&addGameID, "game", "", "game id (required)")
	addCmd.Flags().StringVar(&addName, "name", "", "game display name (required)")
	addCmd.Flags().Float64Var(&addSeconds, "seconds", 0, "session length in seconds (required)")
	addCmd.Flags().StringVar(&addStart, "start", "", "session start time, RFC3339 (default: now minus the session length)")
	addCmd.Flags().StringVar(&addSource, "source", "", "migration marker; marked sessions count toward totals but not daily reports")
	addCmd.MarkFlagRequired("game")
	addCmd.MarkFlagRequired("name")
	addCmd.MarkFlagRequired("seconds")
	RootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	if addSeconds <= 0 {
		return fmt.Errorf("--seconds must be positive, got %v", addSeconds)
	}

	start := time.Now().UTC().Add(-time.Duration(addSeconds * float64(time.Second)))
	if addStart != "" {
		t, err := time.Parse(time.RFC3339, addStart)
		if err != nil {
			return fmt.Errorf("invalid --start %q: %w", addStart, err)
		}
		start = t
	}

	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := tr.SaveTime(addGameID, addName, start, addSeconds, addSource); err != nil {
		return err
	}

	fmt.Printf("Recorded %.0fs for %s (%s)\n", addSeconds, addName, addGameID)
	return nil
}
