package repository

import (
	"context"
	"strconv"
	"strings"

	"hr-recruitment/internal/database"
	"hr-recruitment/internal/domain/application"
)

// ApplicationWriter persists one application graph. Implementations are
// bound to a single transaction by the caller. List children keep their
// submitted order through a per-row position.
type ApplicationWriter interface {
	InsertApplication(ctx context.Context, a application.Application) error
	InsertPersonalInfo(ctx context.Context, p application.PersonalInfo) error
	InsertExperiences(ctx context.Context, items []application.Experience) error
	InsertCurrentJob(ctx context.Context, c application.CurrentJob) error
	InsertPredefinedSkills(ctx context.Context, s application.PredefinedSkills) error
	InsertCustomSkills(ctx context.Context, items []application.CustomSkill) error
	InsertLanguages(ctx context.Context, l application.Languages) error
	InsertAdditionalLanguages(ctx context.Context, items []application.AdditionalLanguage) error
	InsertCompanyRelationships(ctx context.Context, c application.CompanyRelationships) error
	InsertEducation(ctx context.Context, items []application.Education) error
}

type PostgresApplicationWriter struct {
	q database.Querier
}

func NewPostgresApplicationWriter(q database.Querier) *PostgresApplicationWriter {
	return &PostgresApplicationWriter{q: q}
}

func (w *PostgresApplicationWriter) InsertApplication(ctx context.Context, a application.Application) error {
	_, err := w.q.Exec(ctx,
		`INSERT INTO applications (id, job_title, education_status, cv_path, status, comments, submitted_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, a.JobTitle, enumPtr(a.EducationStatus), a.CVPath, string(a.Status), a.Comments,
		a.SubmittedAt, a.CreatedAt, a.UpdatedAt,
	)
	return err
}

func (w *PostgresApplicationWriter) InsertPersonalInfo(ctx context.Context, p application.PersonalInfo) error {
	return bulkInsert(ctx, w.q, "personal_info",
		[]string{
			"id", "application_id", "name", "date_of_birth", "governorate", "address", "national_id",
			"nationality", "whatsapp_number", "mobile_number", "emergency_number", "military_service_status",
			"social_status", "has_vehicle", "driving_license", "profile_image_path", "age", "area", "email", "gender",
		},
		[][]any{{
			p.ID, p.ApplicationID, p.Name, p.DateOfBirth, p.Governorate, p.Address, p.NationalID,
			p.Nationality, p.WhatsappNumber, p.MobileNumber, p.EmergencyNumber, p.MilitaryServiceStatus,
			p.SocialStatus, p.HasVehicle, p.DrivingLicense, p.ProfileImagePath, p.Age, p.Area, p.Email, p.Gender,
		}},
	)
}

func (w *PostgresApplicationWriter) InsertExperiences(ctx context.Context, items []application.Experience) error {
	rows := make([][]any, 0, len(items))
	for i, e := range items {
		rows = append(rows, []any{e.ID, e.ApplicationID, i, e.Company, e.Location, e.Role, e.Salary, e.FromDate, e.ToDate})
	}
	return bulkInsert(ctx, w.q, "experiences",
		[]string{"id", "application_id", "position", "company", "location", "role", "salary", "from_date", "to_date"},
		rows,
	)
}

func (w *PostgresApplicationWriter) InsertCurrentJob(ctx context.Context, c application.CurrentJob) error {
	return bulkInsert(ctx, w.q, "current_jobs",
		[]string{"id", "application_id", "is_currently_employed", "company", "role", "salary"},
		[][]any{{c.ID, c.ApplicationID, c.IsCurrentlyEmployed, c.Company, c.Role, c.Salary}},
	)
}

func (w *PostgresApplicationWriter) InsertPredefinedSkills(ctx context.Context, s application.PredefinedSkills) error {
	return bulkInsert(ctx, w.q, "predefined_skills",
		[]string{"id", "application_id", "word", "excel", "powerpoint"},
		[][]any{{s.ID, s.ApplicationID, enumPtr(s.Word), enumPtr(s.Excel), enumPtr(s.PowerPoint)}},
	)
}

func (w *PostgresApplicationWriter) InsertCustomSkills(ctx context.Context, items []application.CustomSkill) error {
	rows := make([][]any, 0, len(items))
	for i, s := range items {
		rows = append(rows, []any{s.ID, s.ApplicationID, i, s.Name, string(s.Level)})
	}
	return bulkInsert(ctx, w.q, "custom_skills", []string{"id", "application_id", "position", "name", "level"}, rows)
}

func (w *PostgresApplicationWriter) InsertLanguages(ctx context.Context, l application.Languages) error {
	return bulkInsert(ctx, w.q, "languages",
		[]string{"id", "application_id", "english"},
		[][]any{{l.ID, l.ApplicationID, string(l.English)}},
	)
}

func (w *PostgresApplicationWriter) InsertAdditionalLanguages(ctx context.Context, items []application.AdditionalLanguage) error {
	rows := make([][]any, 0, len(items))
	for i, l := range items {
		rows = append(rows, []any{l.ID, l.ApplicationID, i, l.Name, string(l.Level)})
	}
	return bulkInsert(ctx, w.q, "additional_languages", []string{"id", "application_id", "position", "name", "level"}, rows)
}

func (w *PostgresApplicationWriter) InsertCompanyRelationships(ctx context.Context, c application.CompanyRelationships) error {
	return bulkInsert(ctx, w.q, "company_relationships",
		[]string{"id", "application_id", "has_relationship", "contact_name", "contact_position"},
		[][]any{{c.ID, c.ApplicationID, c.HasRelationship, c.ContactName, c.ContactPosition}},
	)
}

func (w *PostgresApplicationWriter) InsertEducation(ctx context.Context, items []application.Education) error {
	rows := make([][]any, 0, len(items))
	for i, e := range items {
		rows = append(rows, []any{e.ID, e.ApplicationID, i, e.Institution, e.Department, e.Grade, e.FromDate, e.ToDate})
	}
	return bulkInsert(ctx, w.q, "education",
		[]string{"id", "application_id", "position", "institution", "department", "grade", "from_date", "to_date"},
		rows,
	)
}

// bulkInsert writes every row with one multi-row INSERT. No rows is a no-op.
func bulkInsert(ctx context.Context, q database.Querier, table string, cols []string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	query, args := buildBulkInsert(table, cols, rows)
	_, err := q.Exec(ctx, query, args...)
	return err
}

func buildBulkInsert(table string, cols []string, rows [][]any) (string, []any) {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(table)
	b.WriteString(" (")
	b.WriteString(strings.Join(cols, ", "))
	b.WriteString(") VALUES ")

	args := make([]any, 0, len(rows)*len(cols))
	for i, r := range rows {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for j, v := range r {
			if j > 0 {
				b.WriteString(", ")
			}
			args = append(args, v)
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(len(args)))
		}
		b.WriteByte(')')
	}
	return b.String(), args
}

func enumPtr[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}
