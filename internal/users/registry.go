// Package users routes operations to per-account store instances. Each
// account owns an isolated database under users/<id>/storage.db; a legacy
// storage.db at the data-dir root is copied verbatim into a new account's
// directory on first use and never mutated afterwards.
package users

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/deckstats/playtime/internal/store"
)

const (
	usersSubdir       = "users"
	storageDBFilename = "storage.db"

	// DefaultCacheSize bounds how many account handles stay open at once.
	DefaultCacheSize = 8
)

// Registry maps account ids to open store handles. It replaces the
// process-wide mutable registry of the original design with an explicit
// object callers pass around, so tests need no global setup.
type Registry struct {
	dataDir string
	log     *slog.Logger

	mu      sync.Mutex
	current string
	cache   *lru.Cache[string, *store.Store]
	legacy  *store.Store

	watcher *fsnotify.Watcher
	wg      sync.WaitGroup
}

// NewRegistry creates a registry rooted at dataDir. Evicted handles are
// closed. An fsnotify watcher evicts handles whose database file is removed
// or replaced from outside the process; fsnotify watches are not recursive,
// so each account's directory is watched individually while its handle is
// cached.
func NewRegistry(dataDir string, cacheSize int, logger *slog.Logger) (*Registry, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}

	r := &Registry{dataDir: dataDir, log: logger}

	cache, err := lru.NewWithEvict[string, *store.Store](cacheSize, func(userID string, st *store.Store) {
		if r.watcher != nil {
			// The account directory may already be gone.
			_ = r.watcher.Remove(filepath.Join(r.usersDir(), userID))
		}
		if err := st.Close(); err != nil {
			r.log.Warn("failed to close evicted store", "user_id", userID, "error", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create handle cache: %w", err)
	}
	r.cache = cache

	if err := os.MkdirAll(r.usersDir(), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create users directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(r.usersDir()); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch users directory: %w", err)
	}
	r.watcher = watcher

	r.wg.Add(1)
	go r.runWatcher()

	return r, nil
}

// runWatcher evicts cached handles whose on-disk database disappears, so a
// later lookup reopens (or recreates) the file instead of writing into a
// deleted inode.
func (r *Registry) runWatcher() {
	defer r.wg.Done()

	for {
		select {
		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			userID := filepath.Base(strings.TrimSuffix(event.Name, string(os.PathSeparator)+storageDBFilename))
			if userID == "" {
				continue
			}
			r.mu.Lock()
			if _, ok := r.cache.Peek(userID); ok {
				r.cache.Remove(userID)
				r.log.Info("evicted store handle after external removal", "user_id", userID)
			}
			r.mu.Unlock()
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			r.log.Warn("users directory watcher error", "error", err)
		}
	}
}

func (r *Registry) usersDir() string {
	return filepath.Join(r.dataDir, usersSubdir)
}

// LegacyDBPath is the path of the pre-multi-user database.
func (r *Registry) LegacyDBPath() string {
	return filepath.Join(r.dataDir, storageDBFilename)
}

// UserDBPath is the database path for one account.
func (r *Registry) UserDBPath(userID string) string {
	return filepath.Join(r.usersDir(), userID, storageDBFilename)
}

// HasLegacyDB reports whether the legacy database exists.
func (r *Registry) HasLegacyDB() bool {
	_, err := os.Stat(r.LegacyDBPath())
	return err == nil
}

// HasUserDB reports whether an account already has a database.
func (r *Registry) HasUserDB(userID string) bool {
	_, err := os.Stat(r.UserDBPath(userID))
	return err == nil
}

func validateUserID(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", fmt.Errorf("user id cannot be empty")
	}
	for _, c := range userID {
		if c < '0' || c > '9' {
			return "", fmt.Errorf("invalid account id format: %q", userID)
		}
	}
	return userID, nil
}

// SetCurrentUser selects the active account and returns its store handle,
// creating the account's database (seeded from the legacy one when present)
// on first use.
func (r *Registry) SetCurrentUser(userID string) (*store.Store, error) {
	id, err := validateUserID(userID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.current = id
	return r.storeForLocked(id)
}

// CurrentUserID returns the active account id, or "" when none is set.
func (r *Registry) CurrentUserID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// StoreFor returns (opening if needed) the store handle for an account
// without changing the current user.
func (r *Registry) StoreFor(userID string) (*store.Store, error) {
	id, err := validateUserID(userID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.storeForLocked(id)
}

func (r *Registry) storeForLocked(userID string) (*store.Store, error) {
	if st, ok := r.cache.Get(userID); ok {
		return st, nil
	}

	dbPath := r.UserDBPath(userID)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create user directory: %w", err)
	}

	if r.HasLegacyDB() && !r.HasUserDB(userID) {
		if err := copyFile(r.LegacyDBPath(), dbPath); err != nil {
			// A failed seed falls back to a fresh database
			r.log.Warn("failed to seed from legacy database", "user_id", userID, "error", err)
		} else {
			r.log.Info("seeded account from legacy database", "user_id", userID)
		}
	}

	st, err := store.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open store for user %s: %w", userID, err)
	}
	if err := st.CreateSchema(); err != nil {
		st.Close()
		return nil, err
	}

	r.cache.Add(userID, st)
	if err := r.watcher.Add(filepath.Dir(dbPath)); err != nil {
		r.log.Warn("failed to watch account directory", "user_id", userID, "error", err)
	}
	return st, nil
}

// LegacyStore opens the legacy database read-as-is: no schema bootstrap is
// run against it so the copy source is never mutated. Returns nil when no
// legacy database exists.
func (r *Registry) LegacyStore() (*store.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.legacy != nil {
		return r.legacy, nil
	}
	if !r.HasLegacyDB() {
		return nil, nil
	}

	st, err := store.New(r.LegacyDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open legacy store: %w", err)
	}
	r.legacy = st
	return st, nil
}

// ListUsers returns every account id that has a database on disk.
func (r *Registry) ListUsers() ([]string, error) {
	entries, err := os.ReadDir(r.usersDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	var users []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(r.usersDir(), entry.Name(), storageDBFilename)); err == nil {
			users = append(users, entry.Name())
		}
	}
	return users, nil
}

// Close stops the watcher and closes every cached handle.
func (r *Registry) Close() error {
	if r.watcher != nil {
		r.watcher.Close()
	}
	r.wg.Wait()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Purge() // eviction callback closes each handle
	if r.legacy != nil {
		err := r.legacy.Close()
		r.legacy = nil
		return err
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
