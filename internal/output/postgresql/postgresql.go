package postgresql

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/brandonsean08/basic-blockchain/internal/models"
)

//go:embed migrations/*
var migrationsFS embed.FS

// PostgresOutputHandler mirrors the admitted block sequence into a
// PostgreSQL database. The chain itself stays in process memory; the
// database is an inspection sink, not the source of truth.
type PostgresOutputHandler struct {
	pool *pgxpool.Pool
}

func NewPostgresOutputHandler(connString string, maxConns uint) (*PostgresOutputHandler, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PostgreSQL connection string: %w", err)
	}

	if maxConns > math.MaxInt32 {
		return nil, fmt.Errorf("max connections exceeds maximum int32 value")
	}
	if maxConns > 0 {
		config.MaxConns = int32(maxConns)
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	handler := &PostgresOutputHandler{
		pool: pool,
	}

	// Run migrations. This is idempotent.
	if err = handler.runMigrations(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return handler, nil
}

// DB opens a database/sql view of the pool, for the metrics collectors.
func (h *PostgresOutputHandler) DB() *sql.DB {
	return stdlib.OpenDBFromPool(h.pool)
}

func (h *PostgresOutputHandler) WriteBlock(ctx context.Context, block *models.Block) error {
	_, err := h.pool.Exec(ctx, `
		INSERT INTO ledger.blocks (height, hash, data) VALUES ($1, $2, $3)
		ON CONFLICT (height) DO UPDATE SET hash = EXCLUDED.hash, data = EXCLUDED.data;
	`, block.Height, block.Hash, block.Data)
	if err != nil {
		return fmt.Errorf("failed to write block: %w", err)
	}
	return nil
}

func (h *PostgresOutputHandler) WriteTransaction(ctx context.Context, tx *models.Transaction) error {
	_, err := h.pool.Exec(ctx, `
		INSERT INTO ledger.transactions (hash, data) VALUES ($1, $2)
		ON CONFLICT (hash) DO UPDATE SET data = EXCLUDED.data;
	`, tx.Hash, tx.Data)
	if err != nil {
		return fmt.Errorf("failed to write transaction: %w", err)
	}
	return nil
}

// GetLatestBlock returns the highest stored block, or nil when the sink is
// empty.
func (h *PostgresOutputHandler) GetLatestBlock(ctx context.Context) (*models.Block, error) {
	var block models.Block
	err := h.pool.QueryRow(ctx, `
		SELECT height, hash
		FROM ledger.blocks
		ORDER BY height DESC
		LIMIT 1
	`).Scan(&block.Height, &block.Hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No rows found
		}
		return nil, fmt.Errorf("failed to get the latest block: %w", err)
	}
	return &block, nil
}

func (h *PostgresOutputHandler) runMigrations() error {
	slog.Info("Running PostgreSQL migrations...")

	d, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	driver, err := migratepgx.WithInstance(stdlib.OpenDBFromPool(h.pool), &migratepgx.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", d, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}
	defer m.Close()

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (h *PostgresOutputHandler) Close() error {
	slog.Info("Closing PostgreSQL connection pool")
	h.pool.Close()
	slog.Info("PostgreSQL connection pool closed")
	return nil
}
