package database

import (
	"context"
	"database/sql"
	"log/slog"

	"shotboard/internal/shared/config"
	"shotboard/internal/shared/errors"

	_ "github.com/glebarez/go-sqlite"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
)

type DB struct {
	*sql.DB
	Dialect Dialect
}

// Querier is the read-only connection provider the store runs statements on.
// *sql.DB, *sql.Conn and *sql.Tx all satisfy it, so pooling or per-request
// connections can be swapped in without touching the query catalog.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func Connect(ctx context.Context, cfg *config.Config) (*DB, error) {
	logger := slog.With("component", "database", "operation", "connect")
	logger.Debug("Initializing database connection")

	dialect, err := DialectFor(cfg.Database.Driver)
	if err != nil {
		return nil, errors.WrapConnection("unsupported database driver", err)
	}

	logger.Info("Connecting to database",
		"driver", cfg.Database.Driver,
		"host", cfg.Database.Host,
		"port", cfg.Database.Port,
		"database", cfg.Database.Name,
		"auth_mode", cfg.Database.AuthMode,
		"read_only", cfg.Database.ReadOnly,
		"max_open_conns", cfg.Database.MaxOpenConns,
	)

	sqlDB, err := sql.Open(cfg.Database.Driver, cfg.ConnectionString())
	if err != nil {
		logger.Error("Failed to open database connection",
			"error", err, "host", cfg.Database.Host, "database", cfg.Database.Name)
		return nil, errors.WrapConnection("failed to open database", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
	defer cancel()

	logger.Debug("Testing database connection with ping")
	if err := sqlDB.PingContext(pingCtx); err != nil {
		logger.Error("Failed to ping database",
			"error", err, "host", cfg.Database.Host, "database", cfg.Database.Name)
		if closeErr := sqlDB.Close(); closeErr != nil {
			logger.Error("Failed to close database after ping failure", "close_error", closeErr, "ping_error", err)
		}
		return nil, errors.WrapConnection("failed to ping database", err)
	}

	logger.Info("Database connection established successfully",
		"driver", cfg.Database.Driver, "database", cfg.Database.Name)

	return &DB{DB: sqlDB, Dialect: dialect}, nil
}
