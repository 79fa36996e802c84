package database

import (
	"context"
	"log/slog"
	"time"

	"shotboard/internal/shared/errors"
)

// Scanner is the row cursor handed to scan functions.
type Scanner interface {
	Scan(dest ...any) error
}

// Observer receives the outcome of every statement the store runs.
type Observer interface {
	ObserveQuery(name string, elapsed time.Duration, err error)
}

type Store struct {
	db       Querier
	dialect  Dialect
	observer Observer
	logger   *slog.Logger
}

func NewStore(db Querier, dialect Dialect, observer Observer, logger *slog.Logger) *Store {
	logger.Debug("Initializing data store adapter", "dialect", dialect.Name)

	return &Store{
		db:       db,
		dialect:  dialect,
		observer: observer,
		logger:   logger,
	}
}

func (s *Store) Dialect() Dialect {
	return s.dialect
}

// Query runs a named, parameterized statement and scans each row. A failed
// query returns an empty non-nil slice together with a query error so
// callers can render a "no data" state instead of aborting.
func Query[T any](ctx context.Context, s *Store, name, statement string, scan func(Scanner) (T, error), args ...any) (result []T, err error) {
	logger := s.logger.With("component", "store", "operation", "query", "query", name)
	logger.Debug("Executing query", "args", len(args))

	start := time.Now()
	defer func() {
		if s.observer != nil {
			s.observer.ObserveQuery(name, time.Since(start), err)
		}
	}()

	rows, err := s.db.QueryContext(ctx, statement, args...)
	if err != nil {
		logger.Error("Failed to run query", "error", err)
		return []T{}, errors.WrapQuery(name, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	result = []T{}
	for rows.Next() {
		row, err := scan(rows)
		if err != nil {
			logger.Error("Failed to scan row", "error", err)
			return []T{}, errors.WrapQuery(name, err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return []T{}, errors.WrapQuery(name, err)
	}

	logger.Debug("Query completed", "rows", len(result), "elapsed", time.Since(start))
	return result, nil
}
