package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/polkiloo/ecocoleta/internal/domain/repository"
)

// pgxPool is the subset of *pgxpool.Pool the storage relies on.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool    pgxPool
	logger  *slog.Logger
	timeout time.Duration
}

var _ repository.Factory = (*Storage)(nil)

// New creates storage with schema initialization. A positive timeout bounds
// every single repository call.
func New(ctx context.Context, dsn string, timeout time.Duration, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger, timeout: timeout}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("storage ready", slog.String("host", cfg.ConnConfig.Host), slog.String("database", cfg.ConnConfig.Database))
	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id UUID PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT UNIQUE NOT NULL,
            tax_id TEXT,
            phone TEXT NOT NULL DEFAULT '',
            street TEXT NOT NULL DEFAULT '',
            house_number TEXT NOT NULL DEFAULT '',
            district TEXT NOT NULL DEFAULT '',
            city TEXT NOT NULL DEFAULT '',
            state TEXT NOT NULL DEFAULT '',
            postal_code TEXT NOT NULL DEFAULT '',
            role TEXT NOT NULL,
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id UUID PRIMARY KEY,
            number BIGSERIAL UNIQUE NOT NULL,
            requester_id UUID NOT NULL REFERENCES users(id),
            service_type TEXT NOT NULL,
            equipment_type TEXT NOT NULL,
            description TEXT NOT NULL,
            photo_url TEXT,
            message TEXT,
            status SMALLINT NOT NULL,
            agent_note TEXT,
            driver_note TEXT,
            scheduled_date DATE,
            shift TEXT,
            cancelled_at TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            version BIGINT NOT NULL DEFAULT 1,
            CONSTRAINT orders_scheduling_chk CHECK (
                CASE WHEN status IN (2, 3)
                     THEN scheduled_date IS NOT NULL AND shift IS NOT NULL
                     ELSE scheduled_date IS NULL AND shift IS NULL
                END),
            CONSTRAINT orders_cancelled_chk CHECK ((status = 4) = (cancelled_at IS NOT NULL))
        )`,
		`CREATE TABLE IF NOT EXISTS order_transitions (
            id BIGSERIAL PRIMARY KEY,
            order_id UUID NOT NULL REFERENCES orders(id),
            from_status SMALLINT NOT NULL,
            to_status SMALLINT NOT NULL,
            actor_id UUID NOT NULL,
            actor_role TEXT NOT NULL,
            annotation TEXT NOT NULL,
            scheduled_date DATE,
            shift TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_requester ON orders(requester_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_users_tax_id ON users(tax_id)`,
		`CREATE INDEX IF NOT EXISTS idx_transitions_order ON order_transitions(order_id, created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

func (s *Storage) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

type rowScanner interface {
	Scan(dest ...any) error
}
