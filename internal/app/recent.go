package app

import (
	"fmt"

	"github.com/deckstats/playtime/internal/output"
	"github.com/spf13/cobra"
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show the last two weeks of playtime",
	Long: `Show total playtime per game over a fixed two-week window: the
current week plus the one before it, with weeks starting on Monday.

Only games with playtime inside the window are listed. Merging and
visibility rules are the same as for the overall report.`,
	Example: `  playtime recent`,
	RunE:    runRecent,
}

func init() {
	RootCmd.AddCommand(recentCmd)
}

func runRecent(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	reports, err := tr.FetchLastTwoWeeks()
	if err != nil {
		return err
	}

	fmt.Print(output.RenderRecentTable(reports))
	return nil
}
