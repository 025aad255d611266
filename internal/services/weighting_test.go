package services

import (
	"testing"

	"github.com/cetprep/mocktest-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSeniorTarget(t *testing.T) {
	cases := []struct {
		total    int
		expected int
	}{
		{100, 80},
		{50, 40},
		{25, 20},
		{7, 6}, // 5.6 rounds up
		{1, 1}, // 0.8 rounds up
		{0, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.expected, SeniorTarget(tc.total), "total=%d", tc.total)
	}
}

func TestMatchesTopic(t *testing.T) {
	topics := []string{"Rotational", "Wave Optics"}

	assert.True(t, MatchesTopic("Rotational Dynamics", topics))
	assert.True(t, MatchesTopic("wave optics", topics), "matching is case-insensitive")
	assert.True(t, MatchesTopic("Advanced WAVE OPTICS II", topics), "substring anywhere in the name")
	assert.False(t, MatchesTopic("Electrostatics", topics))
	assert.False(t, MatchesTopic("Rotational Dynamics", nil))
}

func TestStaticRuleProviderCoversAllSubjects(t *testing.T) {
	provider := NewStaticRuleProvider()

	for _, code := range models.AllSubjectCodes {
		for _, level := range []models.StandardLevel{models.Standard11, models.Standard12} {
			rules := provider.Rules(code, level)
			assert.NotEmpty(t, rules, "no rules for %s/%s", code, level)
			for _, rule := range rules {
				assert.NotEmpty(t, rule.Topics, "%s/%s has a rule without topics", code, level)
				assert.Positive(t, rule.Count, "%s/%s has a rule without a draw count", code, level)
			}
		}
	}
}

func TestStaticRuleProviderUnknownTier(t *testing.T) {
	provider := NewStaticRuleProvider()
	assert.Empty(t, provider.Rules(models.SubjectCode("UNKNOWN"), models.Standard12))
}
