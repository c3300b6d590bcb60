package app

import (
	"fmt"

	"github.com/deckstats/playtime/internal/output"
	"github.com/deckstats/playtime/internal/tracking"
	"github.com/spf13/cobra"
)

var (
	trackingGame   string
	trackingStatus string

	trackingCmd = &cobra.Command{
		Use:   "tracking",
		Short: "Manage per-game tracking statuses",
		Long: `Manage per-game tracking statuses.

  default  track sessions and show in reports
  pause    show in reports but stop recording sessions
  hidden   keep recording sessions but hide from reports
  ignore   neither record nor show

Setting a game back to "default" removes its stored override.`,
	}

	trackingSetCmd = &cobra.Command{
		Use:     "set",
		Short:   "Set a game's tracking status",
		Example: `  playtime tracking set --game 12345 --status pause`,
		RunE:    runTrackingSet,
	}

	trackingListCmd = &cobra.Command{
		Use:   "list",
		Short: "List games with a non-default tracking status",
		RunE:  runTrackingList,
	}
)

func init() {
	trackingSetCmd.Flags().StringVar(&trackingGame, "game", "", "game id (required)")
	trackingSetCmd.Flags().StringVar(&trackingStatus, "status", "", "one of: default, pause, hidden, ignore (required)")
	trackingSetCmd.MarkFlagRequired("game")
	trackingSetCmd.MarkFlagRequired("status")

	trackingCmd.AddCommand(trackingSetCmd)
	trackingCmd.AddCommand(trackingListCmd)
	RootCmd.AddCommand(trackingCmd)
}

func runTrackingSet(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := tr.SetTrackingStatus(trackingGame, trackingStatus); err != nil {
		return err
	}

	if trackingStatus == tracking.StatusDefault {
		fmt.Printf("Tracking status for %s reset to default\n", trackingGame)
	} else {
		fmt.Printf("Tracking status for %s set to %s\n", trackingGame, trackingStatus)
	}
	return nil
}

func runTrackingList(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	rows, err := tr.Tracking().AllConfigs()
	if err != nil {
		return err
	}

	fmt.Print(output.RenderTrackingTable(rows))
	return nil
}
