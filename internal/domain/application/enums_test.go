package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_ClosedSet(t *testing.T) {
	for _, s := range Statuses() {
		assert.True(t, s.Valid(), "%s should be valid", s)
	}
	assert.Len(t, Statuses(), 6)

	for _, raw := range []string{"", "PENDING", "approved", "accepted_to_joined", "under_review"} {
		_, ok := ParseStatus(raw)
		assert.False(t, ok, "%q should be rejected", raw)
	}

	s, ok := ParseStatus(" accepted ")
	assert.True(t, ok)
	assert.Equal(t, StatusAccepted, s)
}

func TestEducationStatus_Label(t *testing.T) {
	assert.Equal(t, "مؤهل عالي", EducationHigher.Label())
	assert.Equal(t, "بدون مؤهل", EducationNone.Label())
	assert.Equal(t, "diploma", EducationStatus("diploma").Label())
	assert.False(t, EducationStatus("diploma").Valid())
}

func TestLevels(t *testing.T) {
	assert.True(t, SkillVeryGood.Valid())
	assert.False(t, SkillLevel("expert").Valid())
	assert.True(t, LanguageNative.Valid())
	assert.False(t, LanguageLevel("good").Valid())
}

func TestPredefinedSkills_Empty(t *testing.T) {
	assert.True(t, PredefinedSkills{}.Empty())
	good := SkillGood
	assert.False(t, PredefinedSkills{Word: &good}.Empty())
}
