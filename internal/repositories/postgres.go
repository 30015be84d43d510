package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-login-console/internal/logger"
)

const createStorageTable = `
	CREATE TABLE IF NOT EXISTS client_storage (
		key VARCHAR(255) PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	)
`

// PostgresStore keeps values in the client_storage table.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates a store backed by db. Call Migrate before first use.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the client_storage table if it does not exist.
func (r *PostgresStore) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, createStorageTable)
	logger.Log.Infow("storage migration",
		"query", strings.Join(strings.Fields(createStorageTable), " "),
		"error", err,
	)
	return err
}

func (r *PostgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := validateKey(key); err != nil {
		return "", false, err
	}

	const query = `SELECT value FROM client_storage WHERE key = $1`

	var value string
	err := r.db.GetContext(ctx, &value, query, key)

	// Values are tokens; only the key is logged.
	logger.Log.Debugw("storage query",
		"query", query,
		"args", []any{key},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (r *PostgresStore) Set(ctx context.Context, key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	const query = `
		INSERT INTO client_storage (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value,
		    updated_at = NOW()
	`

	res, err := r.db.ExecContext(ctx, query, key, value)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Debugw("storage query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{key},
		"result", rowsAffected,
		"error", err,
	)

	return err
}

func (r *PostgresStore) Remove(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	const query = `DELETE FROM client_storage WHERE key = $1`

	res, err := r.db.ExecContext(ctx, query, key)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Debugw("storage query",
		"query", query,
		"args", []any{key},
		"result", rowsAffected,
		"error", err,
	)

	return err
}
