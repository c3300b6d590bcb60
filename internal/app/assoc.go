package app

import (
	"errors"
	"fmt"

	"github.com/deckstats/playtime/internal/assoc"
	"github.com/deckstats/playtime/internal/output"
	"github.com/spf13/cobra"
)

var (
	assocParent string
	assocChild  string
	assocGame   string

	assocCmd = &cobra.Command{
		Use:   "assoc",
		Short: "Manage parent/child game associations",
		Long: `Manage explicit parent/child links between games.

A child's playtime is folded into its parent in every report. Links
form a forest of depth one: a child has a single parent, a parent
cannot itself become a child, and the other way around.`,
	}

	assocCreateCmd = &cobra.Command{
		Use:     "create",
		Short:   "Link a child game to a parent game",
		Example: `  playtime assoc create --parent 12345 --child 99887`,
		RunE:    runAssocCreate,
	}

	assocRemoveCmd = &cobra.Command{
		Use:     "remove",
		Short:   "Unlink a child game from its parent",
		Example: `  playtime assoc remove --child 99887`,
		RunE:    runAssocRemove,
	}

	assocShowCmd = &cobra.Command{
		Use:     "show",
		Short:   "Show a game's role in the association forest",
		Example: `  playtime assoc show --game 12345`,
		RunE:    runAssocShow,
	}

	assocListCmd = &cobra.Command{
		Use:   "list",
		Short: "List all associations",
		RunE:  runAssocList,
	}
)

func init() {
	assocCreateCmd.Flags().StringVar(&assocParent, "parent", "", "parent game id (required)")
	assocCreateCmd.Flags().StringVar(&assocChild, "child", "", "child game id (required)")
	assocCreateCmd.MarkFlagRequired("parent")
	assocCreateCmd.MarkFlagRequired("child")

	assocRemoveCmd.Flags().StringVar(&assocChild, "child", "", "child game id (required)")
	assocRemoveCmd.MarkFlagRequired("child")

	assocShowCmd.Flags().StringVar(&assocGame, "game", "", "game id (required)")
	assocShowCmd.MarkFlagRequired("game")

	assocCmd.AddCommand(assocCreateCmd)
	assocCmd.AddCommand(assocRemoveCmd)
	assocCmd.AddCommand(assocShowCmd)
	assocCmd.AddCommand(assocListCmd)
	RootCmd.AddCommand(assocCmd)
}

func runAssocCreate(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := tr.CreateAssociation(assocParent, assocChild); err != nil {
		var ae *assoc.Error
		if errors.As(err, &ae) {
			return fmt.Errorf("cannot link %s to %s: %s", assocChild, assocParent, ae.Message)
		}
		return err
	}

	fmt.Printf("Linked %s to %s\n", assocChild, assocParent)
	return nil
}

func runAssocRemove(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := tr.RemoveAssociation(assocChild); err != nil {
		var ae *assoc.Error
		if errors.As(err, &ae) {
			return fmt.Errorf("cannot unlink %s: %s", assocChild, ae.Message)
		}
		return err
	}

	fmt.Printf("Unlinked %s\n", assocChild)
	return nil
}

func runAssocShow(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	info, err := tr.Associations().ForGame(assocGame)
	if err != nil {
		return err
	}
	if info == nil {
		fmt.Printf("%s has no associations\n", assocGame)
		return nil
	}

	switch info.Role {
	case "child":
		fmt.Printf("%s is a child of %s (%s)\n", assocGame, info.ParentGameID, info.ParentGameName)
	case "parent":
		fmt.Printf("%s is a parent of %d game(s):\n", assocGame, len(info.Children))
		for _, c := range info.Children {
			fmt.Printf("  %s  %s\n", c.GameID, c.GameName)
		}
	}

	combined, err := tr.Associations().CombinedPlaytime(assocGame)
	if err != nil {
		return err
	}
	fmt.Printf("Combined playtime: %s\n", output.FormatDuration(combined))
	return nil
}

func runAssocList(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	rows, err := tr.Associations().All()
	if err != nil {
		return err
	}

	fmt.Print(output.RenderAssociationTable(rows))
	return nil
}
