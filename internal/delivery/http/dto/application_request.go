package dto

import (
	"strings"

	"hr-recruitment/internal/domain/application"
	"hr-recruitment/internal/usecase"
)

// SubmitApplicationRequest is the public submission payload. jobTitle may also
// arrive as appliedJob.jobTitle; the top-level value wins when both are set.
type SubmitApplicationRequest struct {
	JobTitle         string             `json:"jobTitle" validate:"max=150"`
	AppliedJob       *AppliedJobRequest `json:"appliedJob"`
	EducationStatus  string             `json:"educationStatus" validate:"max=50"`
	CVPath           string             `json:"cvPath" validate:"max=255"`
	ProfileImagePath string             `json:"profileImagePath" validate:"max=255"`

	PersonalInfo         *PersonalInfoRequest         `json:"personalInfo"`
	Experiences          []ExperienceRequest          `json:"experiences" validate:"dive"`
	CurrentJob           *CurrentJobRequest           `json:"currentJob"`
	Skills               *SkillsRequest               `json:"skills"`
	Languages            *LanguagesRequest            `json:"languages"`
	CompanyRelationships *CompanyRelationshipsRequest `json:"companyRelationships"`
	Education            []EducationRequest           `json:"education" validate:"dive"`
}

type AppliedJobRequest struct {
	JobTitle string `json:"jobTitle" validate:"max=150"`
}

type PersonalInfoRequest struct {
	Name                  string     `json:"name" validate:"max=200"`
	DateOfBirth           FlexString `json:"dateOfBirth" validate:"omitempty,max=50"`
	Governorate           string     `json:"governorate" validate:"max=150"`
	Address               string     `json:"address"`
	NationalID            FlexString `json:"nationalId" validate:"omitempty,max=50"`
	Nationality           string     `json:"nationality" validate:"max=100"`
	WhatsappNumber        FlexString `json:"whatsappNumber" validate:"omitempty,max=50"`
	MobileNumber          FlexString `json:"mobileNumber" validate:"omitempty,max=50"`
	EmergencyNumber       FlexString `json:"emergencyNumber" validate:"omitempty,max=50"`
	MilitaryServiceStatus string     `json:"militaryServiceStatus" validate:"max=100"`
	SocialStatus          string     `json:"socialStatus" validate:"max=50"`
	HasVehicle            FlexBool   `json:"hasVehicle"`
	DrivingLicense        string     `json:"drivingLicense" validate:"max=100"`
	ProfileImagePath      string     `json:"profileImagePath" validate:"max=255"`
	Age                   FlexInt    `json:"age"`
	Area                  string     `json:"area" validate:"max=255"`
	Email                 string     `json:"email" validate:"omitempty,max=255,email"`
	Gender                string     `json:"gender" validate:"max=20"`
}

type ExperienceRequest struct {
	Company  string     `json:"company" validate:"max=200"`
	Location string     `json:"location" validate:"max=200"`
	Role     string     `json:"role" validate:"max=150"`
	Salary   FlexString `json:"salary" validate:"omitempty,max=50"`
	FromDate FlexString `json:"fromDate" validate:"omitempty,max=50"`
	ToDate   FlexString `json:"toDate" validate:"omitempty,max=50"`
}

type CurrentJobRequest struct {
	IsCurrentlyEmployed FlexBool   `json:"isCurrentlyEmployed"`
	Company             string     `json:"company" validate:"max=200"`
	Role                string     `json:"role" validate:"max=150"`
	Salary              FlexString `json:"salary" validate:"omitempty,max=50"`
}

type SkillsRequest struct {
	Predefined *PredefinedSkillsRequest `json:"predefined"`
	Custom     []CustomSkillRequest     `json:"custom" validate:"dive"`
}

type PredefinedSkillsRequest struct {
	Word       string `json:"word"`
	Excel      string `json:"excel"`
	PowerPoint string `json:"powerpoint"`
}

type CustomSkillRequest struct {
	Name  string `json:"name" validate:"max=100"`
	Level string `json:"level"`
}

type LanguagesRequest struct {
	English    string                      `json:"english"`
	Additional []AdditionalLanguageRequest `json:"additional" validate:"dive"`
}

type AdditionalLanguageRequest struct {
	Name  string `json:"name" validate:"max=100"`
	Level string `json:"level"`
}

type CompanyRelationshipsRequest struct {
	HasRelationship FlexBool `json:"hasRelationship"`
	ContactName     string   `json:"contactName" validate:"max=200"`
	ContactPosition string   `json:"contactPosition" validate:"max=150"`
}

type EducationRequest struct {
	Institution string     `json:"institution" validate:"max=200"`
	Department  string     `json:"department" validate:"max=150"`
	Grade       FlexString `json:"grade" validate:"omitempty,max=50"`
	FromDate    FlexString `json:"fromDate" validate:"omitempty,max=50"`
	ToDate      FlexString `json:"toDate" validate:"omitempty,max=50"`
}

// ToInput converts the payload into the usecase's typed input. Semantic checks
// such as required names and enum membership happen in the usecase.
func (r SubmitApplicationRequest) ToInput() usecase.SubmitApplicationInput {
	in := usecase.SubmitApplicationInput{
		JobTitle:         r.JobTitle,
		CVPath:           optString(r.CVPath),
		ProfileImagePath: optString(r.ProfileImagePath),
	}
	if r.AppliedJob != nil {
		in.AppliedJobTitle = r.AppliedJob.JobTitle
	}
	if s := strings.TrimSpace(r.EducationStatus); s != "" {
		e := application.EducationStatus(s)
		in.EducationStatus = &e
	}

	if p := r.PersonalInfo; p != nil {
		in.PersonalInfo = &application.PersonalInfo{
			Name:                  p.Name,
			DateOfBirth:           p.DateOfBirth.Ptr(),
			Governorate:           optString(p.Governorate),
			Address:               optString(p.Address),
			NationalID:            p.NationalID.Ptr(),
			Nationality:           optString(p.Nationality),
			WhatsappNumber:        p.WhatsappNumber.Ptr(),
			MobileNumber:          p.MobileNumber.Ptr(),
			EmergencyNumber:       p.EmergencyNumber.Ptr(),
			MilitaryServiceStatus: optString(p.MilitaryServiceStatus),
			SocialStatus:          optString(p.SocialStatus),
			HasVehicle:            bool(p.HasVehicle),
			DrivingLicense:        optString(p.DrivingLicense),
			ProfileImagePath:      optString(p.ProfileImagePath),
			Age:                   p.Age.Value,
			Area:                  optString(p.Area),
			Email:                 optString(strings.ToLower(p.Email)),
			Gender:                optString(p.Gender),
		}
	}

	for _, e := range r.Experiences {
		in.Experiences = append(in.Experiences, application.Experience{
			Company:  e.Company,
			Location: optString(e.Location),
			Role:     e.Role,
			Salary:   e.Salary.Ptr(),
			FromDate: e.FromDate.Ptr(),
			ToDate:   e.ToDate.Ptr(),
		})
	}

	if c := r.CurrentJob; c != nil {
		in.CurrentJob = &application.CurrentJob{
			IsCurrentlyEmployed: bool(c.IsCurrentlyEmployed),
			Company:             optString(c.Company),
			Role:                optString(c.Role),
			Salary:              c.Salary.Ptr(),
		}
	}

	if s := r.Skills; s != nil {
		if p := s.Predefined; p != nil {
			in.PredefinedSkills = &application.PredefinedSkills{
				Word:       optLevel(p.Word),
				Excel:      optLevel(p.Excel),
				PowerPoint: optLevel(p.PowerPoint),
			}
		}
		for _, cs := range s.Custom {
			in.CustomSkills = append(in.CustomSkills, application.CustomSkill{
				Name:  cs.Name,
				Level: application.SkillLevel(strings.TrimSpace(cs.Level)),
			})
		}
	}

	if l := r.Languages; l != nil {
		in.Languages = &application.Languages{English: application.LanguageLevel(l.English)}
		for _, al := range l.Additional {
			in.AdditionalLanguages = append(in.AdditionalLanguages, application.AdditionalLanguage{
				Name:  al.Name,
				Level: application.LanguageLevel(strings.TrimSpace(al.Level)),
			})
		}
	}

	if c := r.CompanyRelationships; c != nil {
		in.CompanyRelationships = &application.CompanyRelationships{
			HasRelationship: bool(c.HasRelationship),
			ContactName:     optString(c.ContactName),
			ContactPosition: optString(c.ContactPosition),
		}
	}

	for _, e := range r.Education {
		in.Education = append(in.Education, application.Education{
			Institution: e.Institution,
			Department:  optString(e.Department),
			Grade:       e.Grade.Ptr(),
			FromDate:    e.FromDate.Ptr(),
			ToDate:      e.ToDate.Ptr(),
		})
	}

	return in
}

func optString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func optLevel(s string) *application.SkillLevel {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	l := application.SkillLevel(s)
	return &l
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}
