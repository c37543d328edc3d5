package postgres

import (
	"context"
	"errors"
	"fmt"

	"automix-bot/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultKey identifies the leaderboard row when only one leaderboard is
// posted per deployment.
const DefaultKey = "leaderboard"

const (
	createTableSQL = `CREATE TABLE IF NOT EXISTS leaderboard_message (
	key        TEXT PRIMARY KEY,
	message_id TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

	upsertSQL = `INSERT INTO leaderboard_message (key, message_id, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET message_id = EXCLUDED.message_id, updated_at = now()`

	selectSQL = `SELECT message_id FROM leaderboard_message WHERE key = $1`
)

// DBTX is the query surface shared by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, arguments ...any) pgx.Row
}

// PostgresStore replicates the leaderboard message identity to a database
// so a redeployed bot with an empty disk keeps editing the same message.
type PostgresStore struct {
	pool *pgxpool.Pool
	db   DBTX
	key  string
}

func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &PostgresStore{pool: pool, db: pool, key: DefaultKey}
	if err := s.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func newStore(db DBTX, key string) *PostgresStore {
	return &PostgresStore{db: db, key: key}
}

func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *PostgresStore) Name() string { return "postgres" }

func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("create leaderboard_message table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Sync(ctx context.Context, identity domain.MessageIdentity) error {
	if _, err := s.db.Exec(ctx, upsertSQL, s.key, identity.ID); err != nil {
		return fmt.Errorf("upsert message identity: %w", err)
	}
	return nil
}

func (s *PostgresStore) Restore(ctx context.Context) (*domain.MessageIdentity, error) {
	var id string
	err := s.db.QueryRow(ctx, selectSQL, s.key).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select message identity: %w", err)
	}
	if id == "" {
		return nil, domain.ErrNotFound
	}
	return &domain.MessageIdentity{ID: id}, nil
}
