package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const notifyChannel = "shopfront_snapshots"

// PostgresStore keeps one JSONB row per snapshot key and broadcasts writes
// over LISTEN/NOTIFY so other instances can reconcile.
type PostgresStore struct {
	pool   *pgxpool.Pool
	origin string
}

// NewPostgresStore connects, verifies the connection, and bootstraps the
// snapshot table.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to parse DATABASE_URL: %w", err)
	}
	cfg.MaxConns = 8
	cfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS snapshots (
			key        TEXT PRIMARY KEY,
			rev        BIGINT NOT NULL DEFAULT 1,
			origin     TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			data       JSONB NOT NULL
		)
	`)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("bootstrap snapshots table: %w", err)
	}

	return &PostgresStore{pool: pool, origin: uuid.NewString()}, nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) (*Envelope, error) {
	var env Envelope
	var data []byte
	err := s.pool.QueryRow(ctx,
		"SELECT rev, origin, updated_at, data FROM snapshots WHERE key = $1",
		key,
	).Scan(&env.Rev, &env.Origin, &env.UpdatedAt, &data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get snapshot %q: %w", key, err)
	}
	env.Data = json.RawMessage(data)
	return &env, nil
}

func (s *PostgresStore) Put(ctx context.Context, key string, data []byte) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin snapshot write: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO snapshots (key, rev, origin, updated_at, data)
		VALUES ($1, 1, $2, NOW(), $3)
		ON CONFLICT (key)
		DO UPDATE SET rev = snapshots.rev + 1, origin = $2, updated_at = NOW(), data = $3
	`, key, s.origin, data)
	if err != nil {
		return fmt.Errorf("put snapshot %q: %w", key, err)
	}

	// Payload is "key|origin" so watchers can skip their own writes without
	// a round trip.
	if _, err := tx.Exec(ctx, "SELECT pg_notify($1, $2)", notifyChannel, key+"|"+s.origin); err != nil {
		return fmt.Errorf("notify snapshot %q: %w", key, err)
	}
	return tx.Commit(ctx)
}

func (s *PostgresStore) Watch(ctx context.Context) (<-chan Event, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire listen connection: %w", err)
	}
	if _, err := conn.Exec(ctx, "LISTEN "+notifyChannel); err != nil {
		conn.Release()
		return nil, fmt.Errorf("listen %s: %w", notifyChannel, err)
	}

	ch := make(chan Event, 64)
	go func() {
		defer close(ch)
		defer conn.Release()
		for {
			n, err := conn.Conn().WaitForNotification(ctx)
			if err != nil {
				if ctx.Err() == nil {
					log.Printf("snapshot watch: %v", err)
				}
				return
			}
			key, origin, _ := strings.Cut(n.Payload, "|")
			select {
			case ch <- Event{Key: key, Origin: origin}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}

func (s *PostgresStore) Origin() string { return s.origin }

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
