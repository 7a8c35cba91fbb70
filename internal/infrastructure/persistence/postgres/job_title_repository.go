package postgres

import (
	"context"

	"hr-recruitment/internal/database"
	pg "hr-recruitment/internal/database/postgres"
	"hr-recruitment/internal/domain/jobtitle"

	"github.com/google/uuid"
)

type JobTitleRepository struct {
	db database.Querier
}

func NewJobTitleRepository(db database.Querier) *JobTitleRepository {
	return &JobTitleRepository{db: db}
}

func (r *JobTitleRepository) ListActive(ctx context.Context) ([]jobtitle.JobTitle, error) {
	return r.list(ctx, `SELECT id, title, is_active, created_at, updated_at FROM job_titles WHERE is_active = true ORDER BY title ASC`)
}

func (r *JobTitleRepository) ListAll(ctx context.Context) ([]jobtitle.JobTitle, error) {
	return r.list(ctx, `SELECT id, title, is_active, created_at, updated_at FROM job_titles ORDER BY title ASC`)
}

func (r *JobTitleRepository) list(ctx context.Context, query string) ([]jobtitle.JobTitle, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]jobtitle.JobTitle, 0)
	for rows.Next() {
		var j jobtitle.JobTitle
		if err := rows.Scan(&j.ID, &j.Title, &j.IsActive, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (r *JobTitleRepository) GetByID(ctx context.Context, id uuid.UUID) (jobtitle.JobTitle, error) {
	var j jobtitle.JobTitle
	err := r.db.QueryRow(ctx,
		`SELECT id, title, is_active, created_at, updated_at FROM job_titles WHERE id = $1`, id,
	).Scan(&j.ID, &j.Title, &j.IsActive, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if database.IsNoRows(err) {
			return jobtitle.JobTitle{}, jobtitle.ErrNotFound
		}
		return jobtitle.JobTitle{}, err
	}
	return j, nil
}

func (r *JobTitleRepository) Create(ctx context.Context, j jobtitle.JobTitle) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO job_titles (id, title, is_active, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		j.ID, j.Title, j.IsActive, j.CreatedAt, j.UpdatedAt,
	)
	if pg.IsUniqueViolation(err, "job_titles_title_key") {
		return jobtitle.ErrDuplicate
	}
	return err
}

func (r *JobTitleRepository) Update(ctx context.Context, j jobtitle.JobTitle) error {
	n, err := r.db.Exec(ctx,
		`UPDATE job_titles SET title = $2, is_active = $3, updated_at = $4 WHERE id = $1`,
		j.ID, j.Title, j.IsActive, j.UpdatedAt,
	)
	if pg.IsUniqueViolation(err, "job_titles_title_key") {
		return jobtitle.ErrDuplicate
	}
	if err != nil {
		return err
	}
	if n == 0 {
		return jobtitle.ErrNotFound
	}
	return nil
}

func (r *JobTitleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM job_titles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return jobtitle.ErrNotFound
	}
	return nil
}
