package app

import (
	"fmt"
	"time"

	"github.com/deckstats/playtime/internal/output"
	"github.com/spf13/cobra"
)

var (
	reportFrom string
	reportTo   string
	reportGame string

	reportCmd = &cobra.Command{
		Use:   "report",
		Short: "Show a per-day playtime report",
		Long: `Show playtime broken down by calendar day for a date range.

Every day in the range appears in the output, including days with no
play. Games sharing checksums or linked as parent and child are merged
into a single entry per day. The report also tells you whether any
data exists before or after the range.`,
		Example: `  # Last week, all games
  playtime report --from 2026-08-24 --to 2026-08-30

  # One game only (merged group included)
  playtime report --from 2026-08-24 --to 2026-08-30 --game 12345`,
		RunE: runReport,
	}
)

func init() {
	reportCmd.Flags().StringVar(&reportFrom, "from", "", "first day, YYYY-MM-DD (default: 6 days ago)")
	reportCmd.Flags().StringVar(&reportTo, "to", "", "last day, YYYY-MM-DD, inclusive (default: today)")
	reportCmd.Flags().StringVar(&reportGame, "game", "", "restrict to one game and its merged group")
	RootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	now := time.Now().UTC()
	start := now.AddDate(0, 0, -6)
	end := now

	var err error
	if reportFrom != "" {
		if start, err = parseDate(reportFrom); err != nil {
			return err
		}
	}
	if reportTo != "" {
		if end, err = parseDate(reportTo); err != nil {
			return err
		}
	}
	if end.Before(start) {
		return fmt.Errorf("--to is before --from")
	}

	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	paged, err := tr.FetchDailyReport(start, end, reportGame)
	if err != nil {
		return err
	}

	fmt.Print(output.RenderDailyReport(paged))
	return nil
}
