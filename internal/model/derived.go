package model

import (
	"careerframe/internal/scale"
)

// SkillType classifies a skill matrix entry by how the skill entered the
// matrix. It is fixed at derivation time and never recomputed.
type SkillType string

const (
	SkillTypePrimary   SkillType = "primary"
	SkillTypeSecondary SkillType = "secondary"
	SkillTypeBroad     SkillType = "broad"
	// SkillTypeTrack marks skills pulled in purely by a positive track
	// capability modifier.
	SkillTypeTrack SkillType = "track"
)

var skillTypeOrder = map[SkillType]int{
	SkillTypePrimary:   0,
	SkillTypeSecondary: 1,
	SkillTypeBroad:     2,
	SkillTypeTrack:     3,
}

// Order returns the canonical sort position (primary first). Unknown types
// sort last.
func (t SkillType) Order() int {
	if o, ok := skillTypeOrder[t]; ok {
		return o
	}
	return len(skillTypeOrder)
}

// SkillRequirement is one resolved skill matrix entry.
type SkillRequirement struct {
	SkillID     string            `json:"skill_id"`
	Name        string            `json:"name"`
	Capability  string            `json:"capability"`
	Type        SkillType         `json:"type"`
	Proficiency scale.Proficiency `json:"proficiency"`
	Description string            `json:"description,omitempty"`
}

// BehaviourRequirement is one resolved behaviour profile entry.
type BehaviourRequirement struct {
	BehaviourID string         `json:"behaviour_id"`
	Name        string         `json:"name"`
	Maturity    scale.Maturity `json:"maturity"`
	Description string         `json:"description,omitempty"`
}

// Responsibility is one derived responsibility line: the strongest
// proficiency reached in a capability, rendered for the discipline's role
// class.
type Responsibility struct {
	CapabilityID   string            `json:"capability_id"`
	CapabilityName string            `json:"capability_name"`
	CapabilityRank int               `json:"capability_rank"`
	Proficiency    scale.Proficiency `json:"proficiency"`
	Text           string            `json:"text"`
}

// JobDefinition is a fully resolved job: one valid (discipline, level,
// track?) combination with its derived matrix, profile, title and
// responsibilities. Instances are immutable and safe to cache by ID.
type JobDefinition struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	DisciplineID string `json:"discipline_id"`
	LevelID      string `json:"level_id"`
	TrackID      string `json:"track_id,omitempty"`

	Discipline *Discipline `json:"-"`
	Level      *Level      `json:"-"`
	Track      *Track      `json:"-"`

	SkillMatrix      []SkillRequirement     `json:"skill_matrix"`
	BehaviourProfile []BehaviourRequirement `json:"behaviour_profile"`
	Responsibilities []Responsibility       `json:"responsibilities,omitempty"`
	Expectations     Expectations           `json:"expectations,omitempty"`
}

// Tier classifies overall match quality, best first.
type Tier string

const (
	TierStrong       Tier = "strong"
	TierGood         Tier = "good"
	TierStretch      Tier = "stretch"
	TierAspirational Tier = "aspirational"
)

var tierOrder = map[Tier]int{
	TierStrong:       0,
	TierGood:         1,
	TierStretch:      2,
	TierAspirational: 3,
}

// Order returns the tier's position, 0 being the best tier.
func (t Tier) Order() int {
	if o, ok := tierOrder[t]; ok {
		return o
	}
	return len(tierOrder)
}

// Tiers returns all tiers, best first.
func Tiers() []Tier {
	return []Tier{TierStrong, TierGood, TierStretch, TierAspirational}
}

// RequirementKind distinguishes skill gaps from behaviour gaps in merged
// lists.
type RequirementKind string

const (
	KindSkill     RequirementKind = "skill"
	KindBehaviour RequirementKind = "behaviour"
)

// Gap is one requirement the assessment falls short of. Gap is always > 0;
// met requirements produce no Gap entry. Assessed is false when the
// assessment had no entry at all, which scores worse than the lowest label.
type Gap struct {
	Kind     RequirementKind `json:"kind"`
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Required string          `json:"required"`
	Actual   string          `json:"actual,omitempty"`
	Assessed bool            `json:"assessed"`
	Gap      int             `json:"gap"`
}

// MatchAnalysis is the scored comparison of one assessment against one job.
type MatchAnalysis struct {
	OverallScore   float64 `json:"overall_score"`
	SkillScore     float64 `json:"skill_score"`
	BehaviourScore float64 `json:"behaviour_score"`
	// ExpectationsScore is only set for levels at or above the senior rank
	// threshold.
	ExpectationsScore *float64 `json:"expectations_score,omitempty"`
	Tier              Tier     `json:"tier"`
	// Gaps is ordered by gap size descending; PriorityGaps is its head.
	Gaps         []Gap `json:"gaps,omitempty"`
	PriorityGaps []Gap `json:"priority_gaps,omitempty"`
}

// RankedMatch pairs a job with its analysis in a scored result list.
type RankedMatch struct {
	Job      *JobDefinition `json:"job"`
	Analysis *MatchAnalysis `json:"analysis"`
}

// LevelRange is an inclusive window of level ranks.
type LevelRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// RealisticMatches is the windowed, tier-grouped match result.
type RealisticMatches struct {
	Matches        []RankedMatch          `json:"matches"`
	MatchesByTier  map[Tier][]RankedMatch `json:"matches_by_tier"`
	EstimatedLevel *Level                 `json:"estimated_level,omitempty"`
	Confidence     float64                `json:"confidence"`
	LevelRange     LevelRange             `json:"level_range"`
}

// DevelopmentItem is one shortfall on the path to a target job, weighted by
// how much closing it matters.
type DevelopmentItem struct {
	Kind     RequirementKind `json:"kind"`
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Required string          `json:"required"`
	Actual   string          `json:"actual,omitempty"`
	Assessed bool            `json:"assessed"`
	Gap      int             `json:"gap"`
	Priority float64         `json:"priority"`
}

// DevelopmentPath orders every shortfall against a target job by priority.
type DevelopmentPath struct {
	TargetJob          *JobDefinition    `json:"target_job"`
	Items              []DevelopmentItem `json:"items"`
	EstimatedReadiness float64           `json:"estimated_readiness"`
}

// SkillChange is one skill's delta between two derived jobs. Change is
// target minus current for shared skills; gained skills count as
// target+1, lost skills as -(current+1), so appearing or disappearing
// always outweighs a one-step shift at the same rank.
type SkillChange struct {
	SkillID  string    `json:"skill_id"`
	Name     string    `json:"name"`
	Type     SkillType `json:"type"`
	From     string    `json:"from,omitempty"`
	To       string    `json:"to,omitempty"`
	Change   int       `json:"change"`
	IsGained bool      `json:"is_gained,omitempty"`
	IsLost   bool      `json:"is_lost,omitempty"`
}

// BehaviourChange is one behaviour's delta between two derived jobs.
// Behaviours are global, so both profiles normally carry every behaviour
// and no gained/lost cases arise.
type BehaviourChange struct {
	BehaviourID string `json:"behaviour_id"`
	Name        string `json:"name"`
	From        string `json:"from"`
	To          string `json:"to"`
	Change      int    `json:"change"`
}

// ChangeTally aggregates one change list for summary displays.
type ChangeTally struct {
	Improved  int `json:"improved"`
	Regressed int `json:"regressed"`
	Unchanged int `json:"unchanged"`
	Gained    int `json:"gained"`
	Lost      int `json:"lost"`
	// Net is the signed sum of all change values.
	Net int `json:"net"`
}

// ProgressionAnalysis is the ordered diff between two derived jobs.
type ProgressionAnalysis struct {
	SkillChanges     []SkillChange     `json:"skill_changes"`
	BehaviourChanges []BehaviourChange `json:"behaviour_changes"`
	Skills           ChangeTally       `json:"skills"`
	Behaviours       ChangeTally       `json:"behaviours"`
}
