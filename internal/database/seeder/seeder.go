package seeder

import (
	"context"

	"hr-recruitment/internal/database"
)

// Seeder inserts reference rows. Run must be safe to repeat.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
