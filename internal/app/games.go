package app

import (
	"fmt"

	"github.com/deckstats/playtime/internal/output"
	"github.com/deckstats/playtime/internal/store"
	"github.com/spf13/cobra"
)

var (
	gamesGame string

	gamesCmd = &cobra.Command{
		Use:   "games",
		Short: "List every known game with its total and checksums",
		Long: `List the games dictionary: every game the database knows about,
whether or not it has recorded playtime, with its overall total and
registered file checksums. Merging and visibility rules do not apply
here; this is the raw dictionary the reports are built from.`,
		Example: `  # The whole dictionary
  playtime games

  # One game
  playtime games --game 12345`,
		RunE: runGames,
	}
)

func init() {
	gamesCmd.Flags().StringVar(&gamesGame, "game", "", "restrict to one game")
	RootCmd.AddCommand(gamesCmd)
}

func runGames(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := openTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	entries, err := tr.Store().GamesDictionary()
	if err != nil {
		return err
	}

	if gamesGame != "" {
		var filtered []store.GameDictEntry
		for _, e := range entries {
			if e.ID == gamesGame {
				filtered = append(filtered, e)
			}
		}
		if len(filtered) == 0 {
			return fmt.Errorf("unknown game %s", gamesGame)
		}
		entries = filtered
	}

	fmt.Print(output.RenderGamesTable(entries))
	return nil
}
