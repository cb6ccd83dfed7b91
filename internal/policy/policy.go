// Package policy bundles every tunable threshold, weight and ordering
// constant the derivation and matching engines use. It is pure data: the
// engines receive one Policy value and never reach for package globals, so
// tests and tenants can tune scoring without touching engine code.
package policy

import (
	"fmt"

	"careerframe/internal/model"
)

// TierThresholds holds the minimum overall score per tier. Checks run
// strictly in Strong, Good, Stretch order; anything below Stretch is
// aspirational.
type TierThresholds struct {
	Strong  float64 `yaml:"strong" json:"strong"`
	Good    float64 `yaml:"good" json:"good"`
	Stretch float64 `yaml:"stretch" json:"stretch"`
}

// TypeMultipliers weights development-path priorities by matrix entry type.
type TypeMultipliers struct {
	Primary   float64 `yaml:"primary" json:"primary"`
	Secondary float64 `yaml:"secondary" json:"secondary"`
	Broad     float64 `yaml:"broad" json:"broad"`
	Track     float64 `yaml:"track" json:"track"`
}

// For returns the multiplier for a matrix entry type.
func (m TypeMultipliers) For(t model.SkillType) float64 {
	switch t {
	case model.SkillTypePrimary:
		return m.Primary
	case model.SkillTypeSecondary:
		return m.Secondary
	case model.SkillTypeBroad:
		return m.Broad
	default:
		return m.Track
	}
}

// Policy parameterizes scoring, ranking and windowing.
type Policy struct {
	// GapDecay maps gap sizes 0..3 to score contributions; gaps at or
	// beyond len(GapDecay) score GapFloor.
	GapDecay []float64 `yaml:"gap_decay" json:"gap_decay"`
	GapFloor float64   `yaml:"gap_floor" json:"gap_floor"`

	Tiers TierThresholds `yaml:"tiers" json:"tiers"`

	// Default assessment split when a track carries no override.
	SkillWeight     float64 `yaml:"skill_weight" json:"skill_weight"`
	BehaviourWeight float64 `yaml:"behaviour_weight" json:"behaviour_weight"`

	// SeniorRank is the level rank at which the expectations bonus kicks
	// in; ExpectationsBlend is its share of the blended overall score.
	SeniorRank        int     `yaml:"senior_rank" json:"senior_rank"`
	ExpectationsBlend float64 `yaml:"expectations_blend" json:"expectations_blend"`

	Multipliers TypeMultipliers `yaml:"multipliers" json:"multipliers"`
	// AICapability names the capability whose skill gaps get boosted
	// development priority; AIMultiplier is that boost.
	AICapability string  `yaml:"ai_capability" json:"ai_capability"`
	AIMultiplier float64 `yaml:"ai_multiplier" json:"ai_multiplier"`

	// Result sizing.
	TopMatches   int `yaml:"top_matches" json:"top_matches"`
	PriorityGaps int `yaml:"priority_gaps" json:"priority_gaps"`

	// Realistic-match windowing: LevelWindow is the ± rank window around
	// the estimated level; ReadyTierFloor is how far below the highest
	// Strong/Good rank those tiers may reach.
	LevelWindow    int `yaml:"level_window" json:"level_window"`
	ReadyTierFloor int `yaml:"ready_tier_floor" json:"ready_tier_floor"`

	// SameTrackBonus nudges next-step selection toward the current track.
	SameTrackBonus float64 `yaml:"same_track_bonus" json:"same_track_bonus"`
}

// Default returns the reference policy.
func Default() Policy {
	return Policy{
		GapDecay: []float64{1.0, 0.7, 0.4, 0.15},
		GapFloor: 0.05,
		Tiers: TierThresholds{
			Strong:  0.85,
			Good:    0.70,
			Stretch: 0.55,
		},
		SkillWeight:       0.5,
		BehaviourWeight:   0.5,
		SeniorRank:        5,
		ExpectationsBlend: 0.1,
		Multipliers: TypeMultipliers{
			Primary:   3,
			Secondary: 2,
			Broad:     1,
			Track:     1,
		},
		AICapability:   "ai",
		AIMultiplier:   1.5,
		TopMatches:     10,
		PriorityGaps:   3,
		LevelWindow:    1,
		ReadyTierFloor: 2,
		SameTrackBonus: 0.05,
	}
}

// Validate checks the policy's internal consistency.
func (p Policy) Validate() error {
	if len(p.GapDecay) == 0 || p.GapDecay[0] != 1.0 {
		return fmt.Errorf("gap_decay must start at 1.0 for gap 0")
	}
	prev := p.GapDecay[0]
	for i, v := range p.GapDecay[1:] {
		if v > prev {
			return fmt.Errorf("gap_decay must be non-increasing (index %d)", i+1)
		}
		prev = v
	}
	if p.GapFloor < 0 || p.GapFloor > prev {
		return fmt.Errorf("gap_floor must be in [0, %v]", prev)
	}
	if !(p.Tiers.Strong > p.Tiers.Good && p.Tiers.Good > p.Tiers.Stretch) {
		return fmt.Errorf("tier thresholds must strictly decrease strong > good > stretch")
	}
	if sum := p.SkillWeight + p.BehaviourWeight; sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("skill_weight + behaviour_weight must sum to 1, got %v", sum)
	}
	if p.ExpectationsBlend < 0 || p.ExpectationsBlend > 1 {
		return fmt.Errorf("expectations_blend must be in [0, 1]")
	}
	if p.PriorityGaps < 0 || p.TopMatches < 1 {
		return fmt.Errorf("result limits must be positive")
	}
	if p.LevelWindow < 0 || p.ReadyTierFloor < 0 {
		return fmt.Errorf("window offsets must be >= 0")
	}
	return nil
}
