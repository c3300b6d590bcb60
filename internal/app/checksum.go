package app

import (
	"fmt"

	"github.com/deckstats/playtime/internal/output"
	"github.com/deckstats/playtime/internal/store"
	"github.com/spf13/cobra"
)

var (
	checksumGame      string
	checksumValue     string
	checksumAlgorithm string
	checksumChunkSize int64
	checksumAll       bool
	checksumParent    string

	checksumCmd = &cobra.Command{
		Use:   "checksum",
		Short: "Manage game file checksums",
		Long: `Manage the file checksums that identify games across installs.

Games that share at least one checksum are treated as the same game in
every report, transitively: if A shares one with B and B with C, all
three merge into one entry.`,
	}

	checksumAddCmd = &cobra.Command{
		Use:     "add",
		Short:   "Register a checksum for a game",
		Example: `  playtime checksum add --game 12345 --value 9f2c41aa --algorithm sha256 --chunk-size 1048576`,
		RunE:    runChecksumAdd,
	}

	checksumRemoveCmd = &cobra.Command{
		Use:   "remove",
		Short: "Remove checksums",
		Long: `Remove a single checksum, every checksum of one game, or every
checksum in the database.`,
		Example: `  # One checksum
  playtime checksum remove --game 12345 --value 9f2c41aa

  # Everything recorded for one game
  playtime checksum remove --game 12345

  # Wipe the identity table entirely
  playtime checksum remove --all`,
		RunE: runChecksumRemove,
	}

	checksumListCmd = &cobra.Command{
		Use:   "list",
		Short: "List recorded checksums",
		RunE:  runChecksumList,
	}

	checksumLinkCmd = &cobra.Command{
		Use:   "link",
		Short: "Copy one checksum from a parent game to a child game",
		Long: `Copy one of the parent's checksums to the child so the two games
join the same checksum identity. Does nothing when the parent has no
checksums.`,
		Example: `  playtime checksum link --game 99887 --parent 12345`,
		RunE:    runChecksumLink,
	}
)

func init() {
	checksumAddCmd.Flags().StringVar(&checksumGame, "game", "", "game id (required)")
	checksumAddCmd.Flags().StringVar(&checksumValue, "value", "", "checksum value (required)")
	checksumAddCmd.Flags().StringVar(&checksumAlgorithm, "algorithm", "sha256", "hash algorithm")
	checksumAddCmd.Flags().Int64Var(&checksumChunkSize, "chunk-size", 0, "chunk size the checksum was computed over")
	checksumAddCmd.MarkFlagRequired("game")
	checksumAddCmd.MarkFlagRequired("value")

	checksumRemoveCmd.Flags().StringVar(&checksumGame, "game", "", "game id")
	checksumRemoveCmd.Flags().StringVar(&checksumValue, "value", "", "checksum value")
	checksumRemoveCmd.Flags().BoolVar(&checksumAll, "all", false, "remove every checksum")

	checksumListCmd.Flags().StringVar(&checksumGame, "game", "", "restrict to one game")

	checksumLinkCmd.Flags().StringVar(&checksumGame, "game", "", "child game id (required)")
	checksumLinkCmd.Flags().StringVar(&checksumParent, "parent", "", "game to copy a checksum from (required)")
	checksumLinkCmd.MarkFlagRequired("game")
	checksumLinkCmd.MarkFlagRequired("parent")

	checksumCmd.AddCommand(checksumAddCmd)
	checksumCmd.AddCommand(checksumRemoveCmd)
	checksumCmd.AddCommand(checksumListCmd)
	checksumCmd.AddCommand(checksumLinkCmd)
	RootCmd.AddCommand(checksumCmd)
}

func runChecksumAdd(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	err = tr.Store().SaveChecksum(store.ChecksumInput{
		GameID:    checksumGame,
		Checksum:  checksumValue,
		Algorithm: checksumAlgorithm,
		ChunkSize: checksumChunkSize,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Registered checksum for %s\n", checksumGame)
	return nil
}

func runChecksumRemove(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	switch {
	case checksumAll:
		n, err := tr.Store().RemoveAllChecksums()
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d checksum(s)\n", n)
	case checksumGame != "" && checksumValue != "":
		if err := tr.Store().RemoveChecksum(checksumGame, checksumValue); err != nil {
			return err
		}
		fmt.Printf("Removed checksum from %s\n", checksumGame)
	case checksumGame != "":
		if err := tr.Store().RemoveChecksumsForGame(checksumGame); err != nil {
			return err
		}
		fmt.Printf("Removed all checksums from %s\n", checksumGame)
	default:
		return fmt.Errorf("pass --game (optionally with --value), or --all")
	}
	return nil
}

func runChecksumList(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	var rows []store.ChecksumRow
	if checksumGame != "" {
		rows, err = tr.Store().ChecksumsForGame(checksumGame)
	} else {
		rows, err = tr.Store().AllChecksums()
	}
	if err != nil {
		return err
	}

	fmt.Print(output.RenderChecksumTable(rows))
	return nil
}

func runChecksumLink(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := tr.Store().CopyChecksumFromGame(checksumGame, checksumParent); err != nil {
		return err
	}

	fmt.Printf("Linked %s to the checksum identity of %s\n", checksumGame, checksumParent)
	return nil
}
