package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// slotKey is the fixed storage key for the task collection. It matches the
// single-slot layout the rest of the package assumes: one key, one blob.
const slotKey = "taskdeck.tasks"

// PostgresSlot keeps the blob as a single row in a key/value table.
type PostgresSlot struct {
	pool *pgxpool.Pool
}

func NewPostgresSlot(ctx context.Context, databaseURL string) (*PostgresSlot, error) {
	pool, err := pgxpool.New(ctx, strings.TrimSpace(databaseURL))
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := initSlotSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresSlot{pool: pool}, nil
}

func initSlotSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmt := `CREATE TABLE IF NOT EXISTS task_slots (
		key TEXT PRIMARY KEY,
		value BYTEA NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`
	if _, err := pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("init slot schema: %w", err)
	}
	return nil
}

func (s *PostgresSlot) Read(ctx context.Context) ([]byte, error) {
	var blob []byte
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM task_slots WHERE key=$1`, slotKey,
	).Scan(&blob)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrSlotEmpty
		}
		return nil, fmt.Errorf("read slot row: %w", err)
	}
	return blob, nil
}

func (s *PostgresSlot) Write(ctx context.Context, blob []byte) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO task_slots (key, value, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET
			value=EXCLUDED.value,
			updated_at=now()`,
		slotKey, blob,
	)
	if err != nil {
		return fmt.Errorf("upsert slot row: %w", err)
	}
	return nil
}

func (s *PostgresSlot) Mode() string {
	return "postgres"
}

func (s *PostgresSlot) Close() error {
	s.pool.Close()
	return nil
}
