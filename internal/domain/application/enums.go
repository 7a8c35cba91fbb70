package application

import "strings"

type Status string

const (
	StatusPending              Status = "pending"
	StatusReviewed             Status = "reviewed"
	StatusAccepted             Status = "accepted"
	StatusRejected             Status = "rejected"
	StatusAcceptedForInterview Status = "accepted_for_interview"
	StatusAcceptedToJoin       Status = "accepted_to_join"
)

var statuses = []Status{
	StatusPending,
	StatusReviewed,
	StatusAccepted,
	StatusRejected,
	StatusAcceptedForInterview,
	StatusAcceptedToJoin,
}

// Statuses returns the closed set of lifecycle values in declaration order.
func Statuses() []Status {
	out := make([]Status, len(statuses))
	copy(out, statuses)
	return out
}

func (s Status) Valid() bool {
	for _, v := range statuses {
		if s == v {
			return true
		}
	}
	return false
}

func ParseStatus(raw string) (Status, bool) {
	s := Status(strings.TrimSpace(raw))
	return s, s.Valid()
}

type EducationStatus string

const (
	EducationHigher            EducationStatus = "higher-qualification"
	EducationAboveIntermediate EducationStatus = "above-intermediate-qualification"
	EducationPreparatory       EducationStatus = "preparatory"
	EducationPrimary           EducationStatus = "primary"
	EducationIlliterate        EducationStatus = "illiterate"
	EducationNone              EducationStatus = "no-qualification"
)

var educationLabels = map[EducationStatus]string{
	EducationHigher:            "مؤهل عالي",
	EducationAboveIntermediate: "مؤهل فوق متوسط",
	EducationPreparatory:       "إعدادية",
	EducationPrimary:           "ابتدائية",
	EducationIlliterate:        "محو أمية",
	EducationNone:              "بدون مؤهل",
}

func (e EducationStatus) Valid() bool {
	_, ok := educationLabels[e]
	return ok
}

// Label is the Arabic display text used in exports. Unknown values are
// returned as-is.
func (e EducationStatus) Label() string {
	if l, ok := educationLabels[e]; ok {
		return l
	}
	return string(e)
}

type SkillLevel string

const (
	SkillWeak      SkillLevel = "weak"
	SkillGood      SkillLevel = "good"
	SkillVeryGood  SkillLevel = "very_good"
	SkillExcellent SkillLevel = "excellent"
)

func (l SkillLevel) Valid() bool {
	switch l {
	case SkillWeak, SkillGood, SkillVeryGood, SkillExcellent:
		return true
	}
	return false
}

type LanguageLevel string

const (
	LanguageBeginner     LanguageLevel = "beginner"
	LanguageIntermediate LanguageLevel = "intermediate"
	LanguageAdvanced     LanguageLevel = "advanced"
	LanguageFluent       LanguageLevel = "fluent"
	LanguageNative       LanguageLevel = "native"
)

func (l LanguageLevel) Valid() bool {
	switch l {
	case LanguageBeginner, LanguageIntermediate, LanguageAdvanced, LanguageFluent, LanguageNative:
		return true
	}
	return false
}
