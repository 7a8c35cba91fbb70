package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hr-recruitment/internal/database"
)

var errSchemaMismatch = errors.New("schema mismatch")

// requireColumns fails with every missing column listed, so a seeder never
// writes into a table the migrations have not caught up with.
func requireColumns(ctx context.Context, db database.Querier, table string, columns ...string) error {
	if db == nil {
		return errors.New("nil db")
	}
	if table == "" {
		return errors.New("empty table")
	}

	rows, err := db.Query(ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = $1`,
		table,
	)
	if err != nil {
		return fmt.Errorf("inspect %s: %w", table, err)
	}
	defer rows.Close()

	present := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		present[name] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var missing []string
	for _, col := range columns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s lacks %s", errSchemaMismatch, table, strings.Join(missing, ", "))
	}
	return nil
}
