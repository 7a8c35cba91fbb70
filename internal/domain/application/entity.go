package application

import (
	"time"

	"github.com/google/uuid"
)

type Application struct {
	ID              uuid.UUID        `json:"applicationId"`
	JobTitle        string           `json:"jobTitle"`
	EducationStatus *EducationStatus `json:"educationStatus"`
	CVPath          *string          `json:"cvPath"`
	Status          Status           `json:"status"`
	Comments        *string          `json:"comments"`
	SubmittedAt     time.Time        `json:"submittedAt"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

type PersonalInfo struct {
	ID                    uuid.UUID `json:"id"`
	ApplicationID         uuid.UUID `json:"applicationId"`
	Name                  string    `json:"name"`
	DateOfBirth           *string   `json:"dateOfBirth"`
	Governorate           *string   `json:"governorate"`
	Address               *string   `json:"address"`
	NationalID            *string   `json:"nationalId"`
	Nationality           *string   `json:"nationality"`
	WhatsappNumber        *string   `json:"whatsappNumber"`
	MobileNumber          *string   `json:"mobileNumber"`
	EmergencyNumber       *string   `json:"emergencyNumber"`
	MilitaryServiceStatus *string   `json:"militaryServiceStatus"`
	SocialStatus          *string   `json:"socialStatus"`
	HasVehicle            bool      `json:"hasVehicle"`
	DrivingLicense        *string   `json:"drivingLicense"`
	ProfileImagePath      *string   `json:"profileImagePath"`
	Age                   *int      `json:"age"`
	Area                  *string   `json:"area"`
	Email                 *string   `json:"email"`
	Gender                *string   `json:"gender"`
}

type Experience struct {
	ID            uuid.UUID `json:"id"`
	ApplicationID uuid.UUID `json:"applicationId"`
	Company       string    `json:"company"`
	Location      *string   `json:"location"`
	Role          string    `json:"role"`
	Salary        *string   `json:"salary"`
	FromDate      *string   `json:"fromDate"`
	ToDate        *string   `json:"toDate"`
}

type CurrentJob struct {
	ID                  uuid.UUID `json:"id"`
	ApplicationID       uuid.UUID `json:"applicationId"`
	IsCurrentlyEmployed bool      `json:"isCurrentlyEmployed"`
	Company             *string   `json:"company"`
	Role                *string   `json:"role"`
	Salary              *string   `json:"salary"`
}

type PredefinedSkills struct {
	ID            uuid.UUID   `json:"id"`
	ApplicationID uuid.UUID   `json:"applicationId"`
	Word          *SkillLevel `json:"word"`
	Excel         *SkillLevel `json:"excel"`
	PowerPoint    *SkillLevel `json:"powerpoint"`
}

// Empty reports whether none of the three levels is set.
func (p PredefinedSkills) Empty() bool {
	return p.Word == nil && p.Excel == nil && p.PowerPoint == nil
}

type CustomSkill struct {
	ID            uuid.UUID  `json:"id"`
	ApplicationID uuid.UUID  `json:"applicationId"`
	Name          string     `json:"name"`
	Level         SkillLevel `json:"level"`
}

type Languages struct {
	ID            uuid.UUID     `json:"id"`
	ApplicationID uuid.UUID     `json:"applicationId"`
	English       LanguageLevel `json:"english"`
}

type AdditionalLanguage struct {
	ID            uuid.UUID     `json:"id"`
	ApplicationID uuid.UUID     `json:"applicationId"`
	Name          string        `json:"name"`
	Level         LanguageLevel `json:"level"`
}

type CompanyRelationships struct {
	ID              uuid.UUID `json:"id"`
	ApplicationID   uuid.UUID `json:"applicationId"`
	HasRelationship bool      `json:"hasRelationship"`
	ContactName     *string   `json:"contactName"`
	ContactPosition *string   `json:"contactPosition"`
}

type Education struct {
	ID            uuid.UUID `json:"id"`
	ApplicationID uuid.UUID `json:"applicationId"`
	Institution   string    `json:"institution"`
	Department    *string   `json:"department"`
	Grade         *string   `json:"grade"`
	FromDate      *string   `json:"fromDate"`
	ToDate        *string   `json:"toDate"`
}

// Details is an application with every child group expanded. Singular
// groups are nil when absent and collections are never nil.
type Details struct {
	Application
	PersonalInfo         *PersonalInfo         `json:"personalInfo"`
	Experiences          []Experience          `json:"experiences"`
	CurrentJob           *CurrentJob           `json:"currentJob"`
	PredefinedSkills     *PredefinedSkills     `json:"predefinedSkills"`
	CustomSkills         []CustomSkill         `json:"customSkills"`
	Languages            *Languages            `json:"languages"`
	AdditionalLanguages  []AdditionalLanguage  `json:"additionalLanguages"`
	CompanyRelationships *CompanyRelationships `json:"companyRelationships"`
	Education            []Education           `json:"education"`
}

func NewDetails(a Application) Details {
	return Details{
		Application:         a,
		Experiences:         []Experience{},
		CustomSkills:        []CustomSkill{},
		AdditionalLanguages: []AdditionalLanguage{},
		Education:           []Education{},
	}
}

// PersonalSummary is the personal-info subset shown in review listings.
type PersonalSummary struct {
	Name             string  `json:"name"`
	WhatsappNumber   *string `json:"whatsappNumber"`
	ProfileImagePath *string `json:"profileImagePath"`
	Age              *int    `json:"age"`
	Governorate      *string `json:"governorate"`
	Area             *string `json:"area"`
	Gender           *string `json:"gender"`
}

type Summary struct {
	ID              uuid.UUID        `json:"applicationId"`
	JobTitle        string           `json:"jobTitle"`
	EducationStatus *EducationStatus `json:"educationStatus"`
	Status          Status           `json:"status"`
	CVPath          *string          `json:"cvPath"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
	PersonalInfo    *PersonalSummary `json:"personalInfo"`
}

// StatusChange is the outcome of a status update.
type StatusChange struct {
	ApplicationID uuid.UUID `json:"applicationId"`
	Previous      Status    `json:"previousStatus"`
	Status        Status    `json:"status"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type Stats struct {
	TotalApplications int            `json:"totalApplications"`
	ByStatus          map[Status]int `json:"byStatus"`
}
