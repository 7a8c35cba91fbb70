package seeder

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"hr-recruitment/internal/database"
)

type Runner struct {
	Seeders []Seeder
	Logger  *log.Logger
}

// Run applies seeders in order and stops at the first failure.
func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return errors.New("nil db")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		start := time.Now()
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		if r.Logger != nil {
			r.Logger.Printf("[Seeder] applied | name=%s took=%s", s.Name(), time.Since(start).Round(time.Millisecond))
		}
	}
	return nil
}
