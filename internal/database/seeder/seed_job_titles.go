package seeder

import (
	"context"
	"fmt"

	"hr-recruitment/internal/database"
)

var defaultJobTitles = []string{
	"Accountant",
	"Customer Service Representative",
	"Driver",
	"HR Specialist",
	"Sales Representative",
	"Security Guard",
	"Storekeeper",
	"Warehouse Worker",
}

type JobTitlesSeeder struct {
	Titles []string
}

func (JobTitlesSeeder) Name() string { return "job_titles" }

func (s JobTitlesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := requireColumns(ctx, db, "job_titles", "id", "title", "is_active", "created_at", "updated_at"); err != nil {
		return err
	}

	titles := s.Titles
	if len(titles) == 0 {
		titles = defaultJobTitles
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, t := range titles {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO job_titles (id, title, is_active, created_at, updated_at)
			 VALUES (gen_random_uuid(), $1, true, now(), now())
			 ON CONFLICT (title) DO NOTHING`,
			t,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
