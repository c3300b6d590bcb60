package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deckstats/playtime/internal/config"
)

var (
	dataDir string
	userID  string
	dbPath  string
	noColor bool

	// RootCmd is the root command for playtime
	RootCmd = &cobra.Command{
		Use:   "playtime",
		Short: "Track and report per-game play sessions",
		Long: `playtime records play sessions in a local SQLite database and
produces playtime reports: per-day breakdowns, overall totals and a
rolling two-week summary.

Games that share file checksums, or that have been explicitly linked
as parent and child, are merged into a single entry in every report.

Examples:
  # Record a finished 30 minute session
  playtime add --game 12345 --name "Celeste" --seconds 1800

  # Show the last two weeks
  playtime recent

  # Link a non-Steam shortcut to its Steam entry
  playtime assoc create --parent 12345 --child 99887

  # Stop a game from appearing in reports
  playtime tracking set --game 12345 --status hidden`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				os.Setenv("NO_COLOR", "1")
			}
		},
	}
)

func init() {
	// Global flags
	RootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default: config or XDG data home)")
	RootCmd.PersistentFlags().StringVar(&userID, "user", "", "account id to operate on")
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "open this database file directly, bypassing account routing")
	RootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	// Enable cobra's built-in suggestion feature for unknown subcommands
	RootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// loadConfig returns the effective configuration, with the --data-dir
// flag taking precedence over the config file.
func loadConfig() (*config.Config, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, fmt.Errorf("failed to locate config directory: %w", err)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	return cfg, nil
}
