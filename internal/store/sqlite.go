package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/lzuhelper/joyrun/internal/logger"
	"github.com/lzuhelper/joyrun/models"
)

const createSessionsTable = `
	CREATE TABLE IF NOT EXISTS sessions (
		user_name  TEXT PRIMARY KEY,
		sid        TEXT NOT NULL,
		uid        INTEGER NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

type sqlSessionStore struct {
	db       *sql.DB
	userName string
	logger   *logger.Logger
}

// NewConnectSQLite opens (creating the file if needed) the SQLite database
// at dsn and ensures the sessions table exists.
func NewConnectSQLite(ctx context.Context, dsn string, log *logger.Logger) (*sql.DB, error) {
	if err := createLocalDBFileIfNotExists(dsn); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database file")
		return nil, fmt.Errorf("error creating database file")
	}

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB")
	}

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		return nil, err
	}

	if _, err = conn.ExecContext(ctx, createSessionsTable); err != nil {
		return nil, fmt.Errorf("error creating sessions table: %w", err)
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	return conn, nil
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	return nil
}

// NewSQLSessionStore returns a [SessionStore] backed by the sessions table,
// keyed by userName so independent accounts never clobber each other.
func NewSQLSessionStore(db *sql.DB, userName string, log *logger.Logger) SessionStore {
	return &sqlSessionStore{db: db, userName: userName, logger: log}
}

func (s *sqlSessionStore) Load(ctx context.Context) (models.Identity, error) {
	query, args, err := buildSelectSessionQuery(s.userName)
	if err != nil {
		return models.Identity{}, fmt.Errorf("build select session query: %w", err)
	}

	var identity models.Identity
	row := s.db.QueryRowContext(ctx, query, args...)
	if err = row.Scan(&identity.UserName, &identity.SID, &identity.UID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Identity{}, ErrSessionNotFound
		}
		return models.Identity{}, fmt.Errorf("scan session row: %w", err)
	}

	return identity, nil
}

func (s *sqlSessionStore) Save(ctx context.Context, identity models.Identity) error {
	query, args, err := buildUpsertSessionQuery(identity)
	if err != nil {
		return fmt.Errorf("build upsert session query: %w", err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert session row: %w", err)
	}

	return nil
}

func buildSelectSessionQuery(userName string) (string, []any, error) {
	return sq.Select("user_name", "sid", "uid").
		From("sessions").
		Where(sq.Eq{"user_name": userName}).
		ToSql()
}

func buildUpsertSessionQuery(identity models.Identity) (string, []any, error) {
	return sq.Insert("sessions").
		Columns("user_name", "sid", "uid").
		Values(identity.UserName, identity.SID, identity.UID).
		Suffix(`ON CONFLICT(user_name) DO UPDATE SET
			sid = excluded.sid,
			uid = excluded.uid,
			updated_at = CURRENT_TIMESTAMP`).
		ToSql()
}
