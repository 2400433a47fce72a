package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const createStorageTableQuery = `CREATE TABLE IF NOT EXISTS storage_entries (
	key TEXT PRIMARY KEY,
	value BYTEA NOT NULL,
	updated_at BIGINT NOT NULL
)`

type storageEntry struct {
	Key       string `db:"key"`
	Value     []byte `db:"value"`
	UpdatedAt int64  `db:"updated_at"`
}

type PostgresStorageImpl struct {
	db *sqlx.DB
}

// CreatePostgresStorage makes sure the storage_entries table exists.
func CreatePostgresStorage(ctx context.Context, db *sqlx.DB) (Storage, error) {
	if _, err := db.ExecContext(ctx, createStorageTableQuery); err != nil {
		log.Error().Err(err).Str("component", "CreatePostgresStorage").Msg("")
		return nil, err
	}

	return &PostgresStorageImpl{db: db}, nil
}

func (r *PostgresStorageImpl) Get(ctx context.Context, key string) ([]byte, error) {
	var entry storageEntry
	err := r.db.QueryRowxContext(ctx, "SELECT key, value, updated_at FROM storage_entries WHERE key = $1", key).StructScan(&entry)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "PostgresStorage.Get").Msg("")
		return nil, err
	}

	return entry.Value, nil
}

func (r *PostgresStorageImpl) Set(ctx context.Context, key string, value []byte) error {
	entry := storageEntry{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UnixMilli(),
	}

	_, err := r.db.NamedExecContext(ctx, `INSERT INTO storage_entries(key, value, updated_at) VALUES (:key, :value, :updated_at)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`, entry)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "PostgresStorage.Set").Msg("")
	}

	return err
}

func (r *PostgresStorageImpl) Clear(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM storage_entries WHERE key = $1", key)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "PostgresStorage.Clear").Msg("")
	}

	return err
}
