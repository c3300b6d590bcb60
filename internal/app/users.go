package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List accounts with a playtime database",
	Long: `List the accounts that have a playtime database under the data
directory, and whether a legacy shared database exists.

The first time an account is used its database is seeded with a copy
of the legacy database, when one exists. The legacy file itself is
never modified.`,
	RunE: runUsers,
}

func init() {
	RootCmd.AddCommand(usersCmd)
}

func runUsers(cmd *cobra.Command, args []string) error {
	reg, cleanup, err := openRegistry()
	if err != nil {
		return err
	}
	defer cleanup()

	ids, err := reg.ListUsers()
	if err != nil {
		return err
	}

	if len(ids) == 0 {
		fmt.Println("No accounts found.")
	} else {
		for _, id := range ids {
			fmt.Println(id)
		}
	}

	if reg.HasLegacyDB() {
		fmt.Printf("\nLegacy database present at %s", reg.LegacyDBPath())
		if legacy, err := reg.LegacyStore(); err == nil && legacy != nil {
			if stats, err := legacy.GameStats(); err == nil {
				fmt.Printf(" (%d game(s))", len(stats))
			}
		}
		fmt.Println()
	}
	return nil
}
