package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerframe/internal/model"
)

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestDefaultValues(t *testing.T) {
	p := Default()
	assert.Equal(t, []float64{1.0, 0.7, 0.4, 0.15}, p.GapDecay)
	assert.Equal(t, 0.05, p.GapFloor)
	assert.Equal(t, 0.85, p.Tiers.Strong)
	assert.Equal(t, 0.70, p.Tiers.Good)
	assert.Equal(t, 0.55, p.Tiers.Stretch)
	assert.Equal(t, 0.5, p.SkillWeight)
	assert.Equal(t, 0.5, p.BehaviourWeight)
	assert.Equal(t, 3, p.PriorityGaps)
	assert.Equal(t, 1, p.LevelWindow)
	assert.Equal(t, 2, p.ReadyTierFloor)
}

func TestTypeMultipliers(t *testing.T) {
	m := Default().Multipliers
	assert.Equal(t, 3.0, m.For(model.SkillTypePrimary))
	assert.Equal(t, 2.0, m.For(model.SkillTypeSecondary))
	assert.Equal(t, 1.0, m.For(model.SkillTypeBroad))
	assert.Equal(t, 1.0, m.For(model.SkillTypeTrack))
}

func TestValidateRejectsBadPolicies(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Policy)
	}{
		{"empty decay table", func(p *Policy) { p.GapDecay = nil }},
		{"decay not starting at 1", func(p *Policy) { p.GapDecay = []float64{0.9, 0.7} }},
		{"increasing decay", func(p *Policy) { p.GapDecay = []float64{1.0, 0.4, 0.7} }},
		{"floor above tail", func(p *Policy) { p.GapFloor = 0.5 }},
		{"unordered tiers", func(p *Policy) { p.Tiers.Good = 0.9 }},
		{"weights not summing to 1", func(p *Policy) { p.SkillWeight = 0.7 }},
		{"blend out of range", func(p *Policy) { p.ExpectationsBlend = 1.5 }},
		{"zero top matches", func(p *Policy) { p.TopMatches = 0 }},
		{"negative window", func(p *Policy) { p.LevelWindow = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.mutate(&p)
			assert.Error(t, p.Validate())
		})
	}
}
