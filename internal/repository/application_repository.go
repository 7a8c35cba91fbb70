package repository

import (
	"context"
	"strconv"
	"strings"

	"hr-recruitment/internal/database"
	"hr-recruitment/internal/domain/application"

	"github.com/google/uuid"
)

type ApplicationFilter struct {
	Status        *application.Status
	ExcludeStatus *application.Status
	JobTitle      string
	Search        string
}

type ApplicationQueryRepository interface {
	List(ctx context.Context, f ApplicationFilter, limit, offset int) ([]application.Summary, error)
	Count(ctx context.Context, f ApplicationFilter) (int, error)
	FindByID(ctx context.Context, id uuid.UUID) (application.Application, error)
	ListAll(ctx context.Context) ([]application.Application, error)
	LoadDetails(ctx context.Context, apps []application.Application) ([]application.Details, error)
	CountByStatus(ctx context.Context) (map[application.Status]int, error)
}

type ApplicationStatusRepository interface {
	UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status) (application.StatusChange, error)
}

type PostgresApplicationRepository struct {
	db database.Querier
}

func NewPostgresApplicationRepository(db database.Querier) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationColumns = `a.id, a.job_title, a.education_status, a.cv_path, a.status, a.comments, a.submitted_at, a.created_at, a.updated_at`

func (r *PostgresApplicationRepository) List(ctx context.Context, f ApplicationFilter, limit, offset int) ([]application.Summary, error) {
	from, where, args := buildListQuery(f)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.job_title, a.education_status, a.status, a.cv_path, a.created_at, a.updated_at,
		        p.name, p.whatsapp_number, p.profile_image_path, p.age, p.governorate, p.area, p.gender
		 `+from+where+`
		 ORDER BY a.created_at DESC, a.id DESC
		 LIMIT $`+strconv.Itoa(len(args)-1)+` OFFSET $`+strconv.Itoa(len(args)),
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Summary, 0)
	for rows.Next() {
		var s application.Summary
		var edu *string
		var status string
		var name *string
		var p application.PersonalSummary
		if err := rows.Scan(
			&s.ID, &s.JobTitle, &edu, &status, &s.CVPath, &s.CreatedAt, &s.UpdatedAt,
			&name, &p.WhatsappNumber, &p.ProfileImagePath, &p.Age, &p.Governorate, &p.Area, &p.Gender,
		); err != nil {
			return nil, err
		}
		s.Status = application.Status(status)
		s.EducationStatus = toEnum[application.EducationStatus](edu)
		if name != nil {
			p.Name = *name
			s.PersonalInfo = &p
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) Count(ctx context.Context, f ApplicationFilter) (int, error) {
	from, where, args := buildListQuery(f)
	var c int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(1) `+from+where, args...).Scan(&c); err != nil {
		return 0, err
	}
	return c, nil
}

// buildListQuery returns the FROM clause, WHERE clause and positional args
// for a listing. A search term turns the personal info join into an inner join.
func buildListQuery(f ApplicationFilter) (string, string, []any) {
	join := "LEFT JOIN"
	if strings.TrimSpace(f.Search) != "" {
		join = "INNER JOIN"
	}
	from := "FROM applications a " + join + " personal_info p ON p.application_id = a.id"

	var conds []string
	var args []any
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	switch {
	case f.Status != nil:
		conds = append(conds, "a.status = "+next(string(*f.Status)))
	case f.ExcludeStatus != nil:
		conds = append(conds, "a.status <> "+next(string(*f.ExcludeStatus)))
	}
	if jt := strings.TrimSpace(f.JobTitle); jt != "" {
		conds = append(conds, "a.job_title ILIKE "+next(likePattern(jt)))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		ph := next(likePattern(s))
		conds = append(conds, "(p.name ILIKE "+ph+" OR p.whatsapp_number ILIKE "+ph+" OR p.mobile_number ILIKE "+ph+")")
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}
	return from, where, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func (r *PostgresApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	row := r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications a WHERE a.id = $1`, id)
	a, err := scanApplication(row)
	if err != nil {
		if database.IsNoRows(err) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, err
	}
	return a, nil
}

func (r *PostgresApplicationRepository) ListAll(ctx context.Context) ([]application.Application, error) {
	rows, err := r.db.Query(ctx, `SELECT `+applicationColumns+` FROM applications a ORDER BY a.created_at DESC, a.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) CountByStatus(ctx context.Context) (map[application.Status]int, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(1) FROM applications GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[application.Status]int{}
	for rows.Next() {
		var s string
		var c int
		if err := rows.Scan(&s, &c); err != nil {
			return nil, err
		}
		out[application.Status(s)] = c
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus overwrites the status in one statement and reports the value
// it replaced. Concurrent updates resolve as last writer wins.
func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status) (application.StatusChange, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE applications a
		 SET status = $1, updated_at = now()
		 FROM (SELECT id, status FROM applications WHERE id = $2 FOR UPDATE) prev
		 WHERE a.id = prev.id
		 RETURNING a.id, prev.status, a.status, a.updated_at`,
		string(status), id,
	)

	var out application.StatusChange
	var prev, cur string
	if err := row.Scan(&out.ApplicationID, &prev, &cur, &out.UpdatedAt); err != nil {
		if database.IsNoRows(err) {
			return application.StatusChange{}, ErrNotFound
		}
		return application.StatusChange{}, err
	}
	out.Previous = application.Status(prev)
	out.Status = application.Status(cur)
	return out, nil
}

func scanApplication(row database.Row) (application.Application, error) {
	var a application.Application
	var edu *string
	var status string
	if err := row.Scan(&a.ID, &a.JobTitle, &edu, &a.CVPath, &status, &a.Comments, &a.SubmittedAt, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	a.EducationStatus = toEnum[application.EducationStatus](edu)
	return a, nil
}

func toEnum[T ~string](s *string) *T {
	if s == nil {
		return nil
	}
	v := T(*s)
	return &v
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
