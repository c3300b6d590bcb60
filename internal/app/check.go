package app

import (
	"fmt"

	"github.com/deckstats/playtime/internal/output"
	"github.com/spf13/cobra"
)

var (
	checkRepair bool

	checkCmd = &cobra.Command{
		Use:   "check",
		Short: "Check the overall playtime cache against the session log",
		Long: `Check that every game's cached overall total matches the sum of its
recorded sessions. The session log is the source of truth; with
--repair the cache is rebuilt from it.`,
		Example: `  # Report drift only
  playtime check

  # Rebuild the cache
  playtime check --repair`,
		RunE: runCheck,
	}
)

func init() {
	checkCmd.Flags().BoolVar(&checkRepair, "repair", false, "rebuild the overall totals from the session log")
	RootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	if !checkRepair {
		drifted, err := tr.Store().CountDriftedTotals()
		if err != nil {
			return err
		}
		if drifted == 0 {
			fmt.Println("Overall totals are consistent with the session log.")
		} else {
			fmt.Printf("%d game(s) have drifted totals. Run 'playtime check --repair' to fix.\n", drifted)
		}
		return nil
	}

	spinner := output.NewSpinner("Rebuilding overall totals from the session log")
	spinner.Start()
	drifted, err := tr.Store().RecomputeOverallTotals()
	if err != nil {
		spinner.Stop()
		return err
	}
	spinner.StopWithMessage(fmt.Sprintf("Rebuilt overall totals, %d game(s) corrected", drifted))
	return nil
}
