package store

import (
	"context"
	"database/sql"

	"github.com/lzuhelper/joyrun/internal/config"
	"github.com/lzuhelper/joyrun/internal/logger"
)

// Stores owns the session store backend selected by configuration and the
// underlying database handle, if any.
type Stores struct {
	Sessions SessionStore

	db *sql.DB
}

// NewStores builds the session store for one account. A configured DSN
// selects the SQLite backend; otherwise the JSON cache file in the cache
// directory is used.
func NewStores(ctx context.Context, cfg config.Storage, userName string, log *logger.Logger) (*Stores, error) {
	if cfg.DSN == "" {
		return &Stores{Sessions: NewFileSessionStore(cfg.CacheDir)}, nil
	}

	db, err := NewConnectSQLite(ctx, cfg.DSN, log)
	if err != nil {
		return nil, err
	}

	return &Stores{
		Sessions: NewSQLSessionStore(db, userName, log),
		db:       db,
	}, nil
}

// Close releases the database handle when the SQLite backend is in use.
func (s *Stores) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
