package database

import (
	"context"
	"fmt"

	"shotboard/internal/shared/errors"
)

// RequiredTables are the externally owned tables the dashboard reads.
var RequiredTables = []string{"teams", "players", "shots", "games", "stadiums"}

// VerifySchema probes each required table with a read. It never creates or
// alters anything: the data belongs to whoever loads the shot warehouse.
func (s *Store) VerifySchema(ctx context.Context) error {
	logger := s.logger.With("component", "schema", "operation", "verify")
	logger.Info("Verifying database schema", "tables", RequiredTables)

	for _, table := range RequiredTables {
		statement := fmt.Sprintf("SELECT 1 FROM %s LIMIT 1", table)
		if _, err := Query(ctx, s, "schema_"+table, statement, scanOne); err != nil {
			logger.Error("Required table is not readable", "table", table, "error", err)
			return errors.WrapConnection(fmt.Sprintf("required table %s is not readable", table), err)
		}
		logger.Debug("Table readable", "table", table)
	}

	logger.Info("Database schema verified")
	return nil
}

func scanOne(row Scanner) (int, error) {
	var one int
	err := row.Scan(&one)
	return one, err
}
