package usecase

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"hr-recruitment/internal/domain/application"
	"hr-recruitment/internal/repository"
)

const (
	ExportSheetName      = "Applications"
	exportMaxColumnWidth = 50
	noExperienceText     = "No experience listed"
	notEmployedText      = "Not currently employed"
	notSpecifiedText     = "Not specified"
	missingText          = "N/A"
)

// ApplicationExportRow is one flattened application. Field order matches
// ExportHeaders.
type ApplicationExportRow struct {
	ID                    string `csv:"ID"`
	Name                  string `csv:"Name"`
	AppliedPosition       string `csv:"Applied Position"`
	Status                string `csv:"Application Status"`
	AppliedDate           string `csv:"Applied Date"`
	DateOfBirth           string `csv:"Date of Birth"`
	Age                   string `csv:"Age"`
	Governorate           string `csv:"Government"`
	Area                  string `csv:"Area"`
	Gender                string `csv:"Gender"`
	Address               string `csv:"Address"`
	NationalID            string `csv:"National ID"`
	Nationality           string `csv:"Nationality"`
	MobileNumber          string `csv:"Mobile Number"`
	WhatsappNumber        string `csv:"WhatsApp Number"`
	Email                 string `csv:"Email"`
	EmergencyContact      string `csv:"Emergency Contact"`
	MilitaryServiceStatus string `csv:"Military Service Status"`
	SocialStatus          string `csv:"Social Status"`
	HasVehicle            string `csv:"Has Vehicle"`
	DrivingLicense        string `csv:"Driving License"`
	EducationStatus       string `csv:"Education Status"`
	CurrentEmployment     string `csv:"Current Employment"`
	WorkExperience        string `csv:"Work Experience"`
	Comments              string `csv:"Comments"`
}

var ExportHeaders = []string{
	"ID", "Name", "Applied Position", "Application Status", "Applied Date",
	"Date of Birth", "Age", "Government", "Area", "Gender", "Address", "National ID",
	"Nationality", "Mobile Number", "WhatsApp Number", "Email", "Emergency Contact",
	"Military Service Status", "Social Status", "Has Vehicle", "Driving License",
	"Education Status", "Current Employment", "Work Experience", "Comments",
}

func (r ApplicationExportRow) Cells() []string {
	return []string{
		r.ID, r.Name, r.AppliedPosition, r.Status, r.AppliedDate,
		r.DateOfBirth, r.Age, r.Governorate, r.Area, r.Gender, r.Address, r.NationalID,
		r.Nationality, r.MobileNumber, r.WhatsappNumber, r.Email, r.EmergencyContact,
		r.MilitaryServiceStatus, r.SocialStatus, r.HasVehicle, r.DrivingLicense,
		r.EducationStatus, r.CurrentEmployment, r.WorkExperience, r.Comments,
	}
}

type ExportTable struct {
	Sheet   string
	Headers []string
	Rows    []ApplicationExportRow
	Widths  []int
}

// ExportRenderer turns a table into a downloadable document.
type ExportRenderer interface {
	Format() string
	Extension() string
	ContentType() string
	Render(t ExportTable) ([]byte, error)
}

type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
	Rows        int
}

type ApplicationExportUsecase interface {
	Export(ctx context.Context, format string) (ExportFile, error)
}

type ApplicationExport struct {
	repo      repository.ApplicationQueryRepository
	renderers map[string]ExportRenderer
	fallback  string
	logger    *log.Logger
	now       func() time.Time
}

// NewApplicationExportUsecase registers renderers by format; the first one
// is used when no format is requested.
func NewApplicationExportUsecase(repo repository.ApplicationQueryRepository, logger *log.Logger, renderers ...ExportRenderer) *ApplicationExport {
	u := &ApplicationExport{
		repo:      repo,
		renderers: map[string]ExportRenderer{},
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, r := range renderers {
		if u.fallback == "" {
			u.fallback = r.Format()
		}
		u.renderers[r.Format()] = r
	}
	return u
}

func (u *ApplicationExport) Export(ctx context.Context, format string) (ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = u.fallback
	}
	renderer, ok := u.renderers[format]
	if !ok {
		return ExportFile{}, ErrUnsupportedFormat
	}

	apps, err := u.repo.ListAll(ctx)
	if err != nil {
		u.logf("[Export] list failed | err=%v", err)
		return ExportFile{}, ErrInternal
	}
	if len(apps) == 0 {
		return ExportFile{}, ErrNothingToExport
	}

	details, err := u.repo.LoadDetails(ctx, apps)
	if err != nil {
		u.logf("[Export] load details failed | err=%v", err)
		return ExportFile{}, ErrInternal
	}

	rows := make([]ApplicationExportRow, 0, len(details))
	for _, d := range details {
		rows = append(rows, FlattenApplication(d))
	}

	data, err := renderer.Render(ExportTable{
		Sheet:   ExportSheetName,
		Headers: ExportHeaders,
		Rows:    rows,
		Widths:  ColumnWidths(ExportHeaders, rows),
	})
	if err != nil {
		u.logf("[Export] render failed | format=%s err=%v", format, err)
		return ExportFile{}, ErrInternal
	}

	name := fmt.Sprintf("HR_Applications_Summary_%s.%s", u.now().Format("2006-01-02"), renderer.Extension())
	u.logf("[Export] completed | file=%s rows=%d", name, len(rows))
	return ExportFile{Filename: name, ContentType: renderer.ContentType(), Data: data, Rows: len(rows)}, nil
}

// FlattenApplication builds the export row for one fully expanded application.
func FlattenApplication(d application.Details) ApplicationExportRow {
	p := application.PersonalInfo{}
	if d.PersonalInfo != nil {
		p = *d.PersonalInfo
	}

	row := ApplicationExportRow{
		ID:                    d.ID.String(),
		Name:                  p.Name,
		AppliedPosition:       d.JobTitle,
		Status:                string(d.Status),
		DateOfBirth:           deref(p.DateOfBirth),
		Governorate:           deref(p.Governorate),
		Area:                  deref(p.Area),
		Gender:                deref(p.Gender),
		Address:               deref(p.Address),
		NationalID:            deref(p.NationalID),
		Nationality:           deref(p.Nationality),
		MobileNumber:          deref(p.MobileNumber),
		WhatsappNumber:        deref(p.WhatsappNumber),
		Email:                 deref(p.Email),
		EmergencyContact:      deref(p.EmergencyNumber),
		MilitaryServiceStatus: deref(p.MilitaryServiceStatus),
		SocialStatus:          deref(p.SocialStatus),
		HasVehicle:            "No",
		DrivingLicense:        deref(p.DrivingLicense),
		EducationStatus:       notSpecifiedText,
		CurrentEmployment:     notEmployedText,
		WorkExperience:        experienceSummary(d.Experiences),
		Comments:              deref(d.Comments),
	}
	if !d.CreatedAt.IsZero() {
		row.AppliedDate = d.CreatedAt.Format("02/01/2006")
	}
	if p.Age != nil {
		row.Age = strconv.Itoa(*p.Age)
	}
	if p.HasVehicle {
		row.HasVehicle = "Yes"
	}
	if d.EducationStatus != nil && *d.EducationStatus != "" {
		row.EducationStatus = d.EducationStatus.Label()
	}
	if c := d.CurrentJob; c != nil && c.IsCurrentlyEmployed {
		row.CurrentEmployment = fmt.Sprintf("%s - %s (Salary: %s)", orNA(c.Company), orNA(c.Role), orNA(c.Salary))
	}
	return row
}

func experienceSummary(items []application.Experience) string {
	if len(items) == 0 {
		return noExperienceText
	}
	parts := make([]string, 0, len(items))
	for _, e := range items {
		parts = append(parts, fmt.Sprintf("%s - %s (%s to %s)",
			orNA(&e.Company), orNA(&e.Role), orNA(e.FromDate), orNA(e.ToDate)))
	}
	return strings.Join(parts, "; ")
}

// ColumnWidths sizes each column to its longest header or cell plus two,
// capped at 50 characters.
func ColumnWidths(headers []string, rows []ApplicationExportRow) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, r := range rows {
		for i, c := range r.Cells() {
			if i >= len(widths) {
				break
			}
			if n := utf8.RuneCountInString(c); n > widths[i] {
				widths[i] = n
			}
		}
	}
	for i := range widths {
		widths[i] = min(widths[i]+2, exportMaxColumnWidth)
	}
	return widths
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orNA(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return missingText
	}
	return *s
}

func (u *ApplicationExport) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
