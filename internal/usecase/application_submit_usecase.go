package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"hr-recruitment/internal/database"
	"hr-recruitment/internal/domain/application"
	"hr-recruitment/internal/repository"

	"github.com/google/uuid"
)

// SubmitApplicationInput is a normalized submission. Child IDs and
// application references are assigned by the usecase.
type SubmitApplicationInput struct {
	JobTitle        string
	AppliedJobTitle string
	EducationStatus *application.EducationStatus
	CVPath          *string

	// ProfileImagePath, when set, overrides PersonalInfo.ProfileImagePath.
	ProfileImagePath *string

	PersonalInfo         *application.PersonalInfo
	Experiences          []application.Experience
	CurrentJob           *application.CurrentJob
	PredefinedSkills     *application.PredefinedSkills
	CustomSkills         []application.CustomSkill
	Languages            *application.Languages
	AdditionalLanguages  []application.AdditionalLanguage
	CompanyRelationships *application.CompanyRelationships
	Education            []application.Education
}

type SubmitApplicationResult struct {
	ApplicationID uuid.UUID          `json:"applicationId"`
	Status        application.Status `json:"status"`
}

type ApplicationSubmitUsecase interface {
	Submit(ctx context.Context, in SubmitApplicationInput) (SubmitApplicationResult, error)
}

type WriterFactory func(q database.Querier) repository.ApplicationWriter

type ApplicationSubmit struct {
	db        database.TxBeginner
	newWriter WriterFactory
	logger    *log.Logger

	now   func() time.Time
	newID func() uuid.UUID
}

func NewApplicationSubmitUsecase(db database.TxBeginner, newWriter WriterFactory, logger *log.Logger) *ApplicationSubmit {
	if newWriter == nil {
		newWriter = func(q database.Querier) repository.ApplicationWriter {
			return repository.NewPostgresApplicationWriter(q)
		}
	}
	return &ApplicationSubmit{
		db:        db,
		newWriter: newWriter,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.New,
	}
}

func (u *ApplicationSubmit) Submit(ctx context.Context, in SubmitApplicationInput) (SubmitApplicationResult, error) {
	g, err := u.plan(in)
	if err != nil {
		return SubmitApplicationResult{}, err
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		u.logf("[Applications] begin tx failed | err=%v", err)
		return SubmitApplicationResult{}, ErrInternal
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if err := g.write(ctx, u.newWriter(tx)); err != nil {
		u.logf("[Applications] submit failed, rolled back | application_id=%s err=%v", g.app.ID, err)
		return SubmitApplicationResult{}, ErrInternal
	}
	if err := tx.Commit(ctx); err != nil {
		u.logf("[Applications] commit failed | application_id=%s err=%v", g.app.ID, err)
		return SubmitApplicationResult{}, ErrInternal
	}

	u.logf("[Applications] submitted | application_id=%s job_title=%q", g.app.ID, g.app.JobTitle)
	return SubmitApplicationResult{ApplicationID: g.app.ID, Status: g.app.Status}, nil
}

// graph holds every record of one submission after conditional-creation
// rules have been applied.
type graph struct {
	app                  application.Application
	personalInfo         *application.PersonalInfo
	experiences          []application.Experience
	currentJob           *application.CurrentJob
	predefinedSkills     *application.PredefinedSkills
	customSkills         []application.CustomSkill
	languages            *application.Languages
	additionalLanguages  []application.AdditionalLanguage
	companyRelationships *application.CompanyRelationships
	education            []application.Education
}

func (g graph) write(ctx context.Context, w repository.ApplicationWriter) error {
	if err := w.InsertApplication(ctx, g.app); err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	if g.personalInfo != nil {
		if err := w.InsertPersonalInfo(ctx, *g.personalInfo); err != nil {
			return fmt.Errorf("insert personal info: %w", err)
		}
	}
	if err := w.InsertExperiences(ctx, g.experiences); err != nil {
		return fmt.Errorf("insert experiences: %w", err)
	}
	if g.currentJob != nil {
		if err := w.InsertCurrentJob(ctx, *g.currentJob); err != nil {
			return fmt.Errorf("insert current job: %w", err)
		}
	}
	if g.predefinedSkills != nil {
		if err := w.InsertPredefinedSkills(ctx, *g.predefinedSkills); err != nil {
			return fmt.Errorf("insert predefined skills: %w", err)
		}
	}
	if err := w.InsertCustomSkills(ctx, g.customSkills); err != nil {
		return fmt.Errorf("insert custom skills: %w", err)
	}
	if g.languages != nil {
		if err := w.InsertLanguages(ctx, *g.languages); err != nil {
			return fmt.Errorf("insert languages: %w", err)
		}
	}
	if err := w.InsertAdditionalLanguages(ctx, g.additionalLanguages); err != nil {
		return fmt.Errorf("insert additional languages: %w", err)
	}
	if g.companyRelationships != nil {
		if err := w.InsertCompanyRelationships(ctx, *g.companyRelationships); err != nil {
			return fmt.Errorf("insert company relationships: %w", err)
		}
	}
	if err := w.InsertEducation(ctx, g.education); err != nil {
		return fmt.Errorf("insert education: %w", err)
	}
	return nil
}

// plan validates the input and builds the records to write. It never
// touches storage.
func (u *ApplicationSubmit) plan(in SubmitApplicationInput) (graph, error) {
	title := ResolveJobTitle(in.JobTitle, in.AppliedJobTitle)
	if title == "" {
		return graph{}, ErrMissingJobTitle
	}
	if len([]rune(title)) > 150 {
		return graph{}, fieldErr("jobTitle", "must be at most 150 characters")
	}

	var edu *application.EducationStatus
	if in.EducationStatus != nil && strings.TrimSpace(string(*in.EducationStatus)) != "" {
		e := application.EducationStatus(strings.TrimSpace(string(*in.EducationStatus)))
		if !e.Valid() {
			return graph{}, fieldErr("educationStatus", "is not a recognized value")
		}
		edu = &e
	}

	now := u.now()
	appID := u.newID()
	g := graph{
		app: application.Application{
			ID:              appID,
			JobTitle:        title,
			EducationStatus: edu,
			CVPath:          blankToNil(in.CVPath),
			Status:          application.StatusPending,
			SubmittedAt:     now,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
	}

	if in.PersonalInfo != nil {
		p := *in.PersonalInfo
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			return graph{}, fieldErr("personalInfo.name", "is required")
		}
		if img := blankToNil(in.ProfileImagePath); img != nil {
			p.ProfileImagePath = img
		}
		p.ID, p.ApplicationID = u.newID(), appID
		g.personalInfo = &p
	}

	for i, e := range in.Experiences {
		e.Company = strings.TrimSpace(e.Company)
		e.Role = strings.TrimSpace(e.Role)
		if e.Company == "" {
			return graph{}, fieldErr(fmt.Sprintf("experiences[%d].company", i), "is required")
		}
		if e.Role == "" {
			return graph{}, fieldErr(fmt.Sprintf("experiences[%d].role", i), "is required")
		}
		e.ID, e.ApplicationID = u.newID(), appID
		g.experiences = append(g.experiences, e)
	}

	if in.CurrentJob != nil {
		c := *in.CurrentJob
		c.ID, c.ApplicationID = u.newID(), appID
		g.currentJob = &c
	}

	if in.PredefinedSkills != nil {
		s := application.PredefinedSkills{
			Word:       blankToNil(in.PredefinedSkills.Word),
			Excel:      blankToNil(in.PredefinedSkills.Excel),
			PowerPoint: blankToNil(in.PredefinedSkills.PowerPoint),
		}
		levels := []struct {
			field string
			level *application.SkillLevel
		}{{"word", s.Word}, {"excel", s.Excel}, {"powerpoint", s.PowerPoint}}
		for _, l := range levels {
			if l.level != nil && !l.level.Valid() {
				return graph{}, fieldErr("skills.predefined."+l.field, "is not a recognized level")
			}
		}
		if !s.Empty() {
			s.ID, s.ApplicationID = u.newID(), appID
			g.predefinedSkills = &s
		}
	}

	for i, s := range in.CustomSkills {
		s.Name = strings.TrimSpace(s.Name)
		if s.Name == "" {
			return graph{}, fieldErr(fmt.Sprintf("skills.custom[%d].name", i), "is required")
		}
		if !s.Level.Valid() {
			return graph{}, fieldErr(fmt.Sprintf("skills.custom[%d].level", i), "is not a recognized level")
		}
		s.ID, s.ApplicationID = u.newID(), appID
		g.customSkills = append(g.customSkills, s)
	}

	if in.Languages != nil {
		english := application.LanguageLevel(strings.TrimSpace(string(in.Languages.English)))
		if english != "" {
			if !english.Valid() {
				return graph{}, fieldErr("languages.english", "is not a recognized level")
			}
			g.languages = &application.Languages{ID: u.newID(), ApplicationID: appID, English: english}
		}
	}

	for i, l := range in.AdditionalLanguages {
		l.Name = strings.TrimSpace(l.Name)
		if l.Name == "" {
			return graph{}, fieldErr(fmt.Sprintf("languages.additional[%d].name", i), "is required")
		}
		if !l.Level.Valid() {
			return graph{}, fieldErr(fmt.Sprintf("languages.additional[%d].level", i), "is not a recognized level")
		}
		l.ID, l.ApplicationID = u.newID(), appID
		g.additionalLanguages = append(g.additionalLanguages, l)
	}

	if in.CompanyRelationships != nil {
		c := *in.CompanyRelationships
		c.ID, c.ApplicationID = u.newID(), appID
		g.companyRelationships = &c
	}

	for i, e := range in.Education {
		e.Institution = strings.TrimSpace(e.Institution)
		if e.Institution == "" {
			return graph{}, fieldErr(fmt.Sprintf("education[%d].institution", i), "is required")
		}
		e.ID, e.ApplicationID = u.newID(), appID
		g.education = append(g.education, e)
	}

	return g, nil
}

// ResolveJobTitle applies the single precedence rule for the two payload
// spellings: the top-level title wins when it is not blank.
func ResolveJobTitle(direct, applied string) string {
	if t := strings.TrimSpace(direct); t != "" {
		return t
	}
	return strings.TrimSpace(applied)
}

func blankToNil[T ~string](v *T) *T {
	if v == nil || strings.TrimSpace(string(*v)) == "" {
		return nil
	}
	t := T(strings.TrimSpace(string(*v)))
	return &t
}

func (u *ApplicationSubmit) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
