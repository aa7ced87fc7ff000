// Package database provides the SQLite-backed store as a lifecycle object:
// a proxy over *sql.DB that opens and pings during Setup and closes on
// Teardown.
package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/km-arc/go-sugar/framework/config"
	"github.com/km-arc/go-sugar/framework/lifecycle"
)

// ID is the identity under which Store is registered.
// Its injection name defaults to "store".
const ID lifecycle.ID = "Store"

// Store wraps the application database.
//
// Settings keys:
//   - DB_PATH (default ":memory:")
type Store struct {
	*lifecycle.Proxy[*sql.DB]
	settings *config.Settings
}

// New creates a Store configured from settings.
func New(settings *config.Settings) *Store {
	s := &Store{settings: settings}
	s.Proxy = lifecycle.NewProxy(s.open).
		TeardownWith(func(db *sql.DB) error { return db.Close() })
	return s
}

// Register adds Store to a manager under ID, depending on Settings.
func Register(m *lifecycle.Manager) error {
	return m.Register(lifecycle.Registration{
		ID:           ID,
		Dependencies: []lifecycle.ID{config.ID},
		Construct: func(deps lifecycle.Deps) (lifecycle.Object, error) {
			settings, ok := deps["settings"].(*config.Settings)
			if !ok {
				return nil, fmt.Errorf("database: settings dependency missing")
			}
			return New(settings), nil
		},
	})
}

// DB returns the open handle; nil before Setup.
func (s *Store) DB() *sql.DB { return s.Payload() }

func (s *Store) open() (*sql.DB, error) {
	path := s.settings.Get("DB_PATH", ":memory:")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("database: open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database: ping %s: %w", path, err)
	}
	return db, nil
}
