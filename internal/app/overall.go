package app

import (
	"fmt"

	"github.com/deckstats/playtime/internal/output"
	"github.com/spf13/cobra"
)

var overallCmd = &cobra.Command{
	Use:   "overall",
	Short: "Show overall playtime for every game",
	Long: `Show overall playtime for every game, with per-session detail.

Games that share checksums or are linked as parent and child appear as
one merged entry. Games set to "hidden" or "ignore" are left out.`,
	Example: `  playtime overall`,
	RunE:    runOverall,
}

func init() {
	RootCmd.AddCommand(overallCmd)
}

func runOverall(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	entries, err := tr.PerGameOverallStatistic()
	if err != nil {
		return err
	}

	fmt.Print(output.RenderOverallTable(entries))
	return nil
}
