package pubdesk

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"
)

// Display preference keys and their defaults.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"

	MinPostsPerPage     = 5
	MaxPostsPerPage     = 100
	DefaultPostsPerPage = 20

	prefTheme        = "theme"
	prefPostsPerPage = "posts_per_page"
	prefCompact      = "compact_sidebar"
)

// Themes lists the accepted theme values.
var Themes = []string{ThemeLight, ThemeDark, ThemeSystem}

// ErrInvalidPreference is returned when a preference value is out of range.
var ErrInvalidPreference = errors.New("invalid preference")

// Preferences are the per-user display settings kept locally.
type Preferences struct {
	Theme          string
	PostsPerPage   int
	CompactSidebar bool
}

// DefaultPreferences returns the settings used before a user saves any.
func DefaultPreferences() Preferences {
	return Preferences{Theme: ThemeSystem, PostsPerPage: DefaultPostsPerPage}
}

// Validate checks every field against its accepted range.
func (p Preferences) Validate() error {
	switch p.Theme {
	case ThemeLight, ThemeDark, ThemeSystem:
	default:
		return fmt.Errorf("%w: theme %q", ErrInvalidPreference, p.Theme)
	}
	if p.PostsPerPage < MinPostsPerPage || p.PostsPerPage > MaxPostsPerPage {
		return fmt.Errorf("%w: posts per page must be between %d and %d", ErrInvalidPreference, MinPostsPerPage, MaxPostsPerPage)
	}
	return nil
}

// PrefStore wraps a SQLite database holding display preferences keyed by
// upstream user id.
type PrefStore struct {
	db *sql.DB
}

// NewPrefStore opens (or creates) the SQLite database at path, ensures the
// data directory exists, and creates the schema.
func NewPrefStore(path string) (*PrefStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets readers run while a save is in progress; the busy timeout
	// makes writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &PrefStore{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *PrefStore) Close() error {
	return s.db.Close()
}

func (s *PrefStore) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS preferences (
    user_id TEXT NOT NULL,
    key TEXT NOT NULL,
    value TEXT NOT NULL,
    PRIMARY KEY (user_id, key)
);
`)
	return err
}

// Get returns the user's preferences, filling unset or unreadable keys
// with defaults.
func (s *PrefStore) Get(userID string) (Preferences, error) {
	p := DefaultPreferences()
	rows, err := s.db.Query(`SELECT key, value FROM preferences WHERE user_id = ?`, userID)
	if err != nil {
		return p, err
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return p, err
		}
		switch key {
		case prefTheme:
			p.Theme = value
		case prefPostsPerPage:
			if n, err := strconv.Atoi(value); err == nil {
				p.PostsPerPage = n
			}
		case prefCompact:
			p.CompactSidebar = value == "1"
		}
	}
	if err := rows.Err(); err != nil {
		return p, err
	}
	if p.Validate() != nil {
		return DefaultPreferences(), nil
	}
	return p, nil
}

// Save validates and upserts all of the user's preferences in one
// transaction.
func (s *PrefStore) Save(userID string, p Preferences) error {
	if err := p.Validate(); err != nil {
		return err
	}
	compact := "0"
	if p.CompactSidebar {
		compact = "1"
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for key, value := range map[string]string{
		prefTheme:        p.Theme,
		prefPostsPerPage: strconv.Itoa(p.PostsPerPage),
		prefCompact:      compact,
	} {
		if _, err := tx.Exec(`INSERT OR REPLACE INTO preferences (user_id, key, value) VALUES (?, ?, ?)`, userID, key, value); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Delete removes every preference for the user.
func (s *PrefStore) Delete(userID string) error {
	_, err := s.db.Exec(`DELETE FROM preferences WHERE user_id = ?`, userID)
	return err
}
