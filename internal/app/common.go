package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/deckstats/playtime/internal/config"
	"github.com/deckstats/playtime/internal/store"
	"github.com/deckstats/playtime/internal/tracker"
	"github.com/deckstats/playtime/internal/users"
)

// newLogger builds the boundary logger. Logging goes to the configured
// log file when one is set and is discarded otherwise. The returned
// closer is safe to call even when no file was opened.
func newLogger(cfg *config.Config) (*slog.Logger, func()) {
	if cfg.LogFile == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: cannot open log file %s: %v\n", cfg.LogFile, err)
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	return slog.New(slog.NewTextHandler(f, nil)), func() { f.Close() }
}

// openTracker opens the tracker for the selected database. With --db it
// opens that file directly; otherwise it routes through the account
// registry using --user or the configured default account. The returned
// cleanup function must be called when the command is done.
func openTracker() (*tracker.Tracker, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, closeLog := newLogger(cfg)

	if dbPath != "" {
		st, err := store.New(dbPath)
		if err != nil {
			closeLog()
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := st.CreateSchema(); err != nil {
			st.Close()
			closeLog()
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		cleanup := func() {
			st.Close()
			closeLog()
		}
		return tracker.New(st, logger), cleanup, nil
	}

	reg, err := users.NewRegistry(cfg.DataDir, cfg.CacheSize, logger)
	if err != nil {
		closeLog()
		return nil, nil, err
	}

	uid := userID
	if uid == "" {
		uid = cfg.DefaultUser
	}
	if uid == "" {
		reg.Close()
		closeLog()
		return nil, nil, fmt.Errorf("no account selected: pass --user or set default_user in the config file")
	}

	st, err := reg.SetCurrentUser(uid)
	if err != nil {
		reg.Close()
		closeLog()
		return nil, nil, err
	}
	cleanup := func() {
		reg.Close()
		closeLog()
	}
	return tracker.New(st, logger), cleanup, nil
}

// openRegistry opens the account registry without selecting an account.
func openRegistry() (*users.Registry, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, closeLog := newLogger(cfg)

	reg, err := users.NewRegistry(cfg.DataDir, cfg.CacheSize, logger)
	if err != nil {
		closeLog()
		return nil, nil, err
	}
	cleanup := func() {
		reg.Close()
		closeLog()
	}
	return reg, cleanup, nil
}

// parseDate parses a YYYY-MM-DD command line argument as a UTC date.
func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}
