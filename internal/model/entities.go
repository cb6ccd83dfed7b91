// Package model defines the authored career-framework records and the
// derived value shapes the engines produce from them. Records are loaded
// once and treated as immutable; nothing in the engines mutates them.
package model

import (
	"careerframe/internal/scale"
)

// Discipline is an engineering specialization. Skill ids are listed by tier;
// the tier a skill appears in decides its matrix type (core -> primary,
// supporting -> secondary, broad -> broad).
type Discipline struct {
	ID        string `yaml:"id" json:"id"`
	RoleTitle string `yaml:"role_title" json:"role_title"`
	// IsManagement switches title templates and responsibility text to the
	// management role class.
	IsManagement     bool     `yaml:"is_management" json:"is_management"`
	CoreSkills       []string `yaml:"core_skills" json:"core_skills"`
	SupportingSkills []string `yaml:"supporting_skills" json:"supporting_skills"`
	BroadSkills      []string `yaml:"broad_skills" json:"broad_skills"`
	// MinLevel, when set, names the lowest level this discipline exists at.
	MinLevel string `yaml:"min_level,omitempty" json:"min_level,omitempty"`
	// ValidTracks constrains which tracks combine with this discipline. A
	// nil entry is the trackless sentinel ("this discipline may be held
	// without a track"). An empty or absent list is fully permissive; a
	// list with concrete ids and no nil entry forbids trackless.
	ValidTracks []*string `yaml:"valid_tracks,omitempty" json:"valid_tracks,omitempty"`
	// BehaviourModifiers nudges behaviour maturity per behaviour id.
	BehaviourModifiers map[string]int `yaml:"behaviour_modifiers,omitempty" json:"behaviour_modifiers,omitempty"`
}

// AllowsTrackless reports whether the discipline may be held with no track.
func (d *Discipline) AllowsTrackless() bool {
	if len(d.ValidTracks) == 0 {
		return true
	}
	for _, t := range d.ValidTracks {
		if t == nil {
			return true
		}
	}
	return false
}

// AllowsTrack reports whether the discipline may be combined with trackID.
func (d *Discipline) AllowsTrack(trackID string) bool {
	if len(d.ValidTracks) == 0 {
		return true
	}
	for _, t := range d.ValidTracks {
		if t != nil && *t == trackID {
			return true
		}
	}
	return false
}

// AssessmentWeights overrides the skill/behaviour split of the overall match
// score. The two weights are expected to sum to 1.
type AssessmentWeights struct {
	Skill     float64 `yaml:"skill" json:"skill"`
	Behaviour float64 `yaml:"behaviour" json:"behaviour"`
}

// Track is a specialization overlay. SkillModifiers is keyed by capability
// id, not skill id: one modifier shifts every skill in that capability.
type Track struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
	// SkillModifiers are signed rank deltas keyed by capability id.
	SkillModifiers map[string]int `yaml:"skill_modifiers,omitempty" json:"skill_modifiers,omitempty"`
	// BehaviourModifiers are signed rank deltas keyed by behaviour id.
	BehaviourModifiers map[string]int `yaml:"behaviour_modifiers,omitempty" json:"behaviour_modifiers,omitempty"`
	MinLevel           string         `yaml:"min_level,omitempty" json:"min_level,omitempty"`
	// Weights, when set, replaces the default 0.5/0.5 assessment split.
	Weights *AssessmentWeights `yaml:"weights,omitempty" json:"weights,omitempty"`
}

// BaseProficiencies holds a level's baseline skill proficiency per matrix
// tier. Track-typed skills start from the broad baseline.
type BaseProficiencies struct {
	Primary   scale.Proficiency `yaml:"primary" json:"primary"`
	Secondary scale.Proficiency `yaml:"secondary" json:"secondary"`
	Broad     scale.Proficiency `yaml:"broad" json:"broad"`
}

// Expectations is free-form scope/autonomy/influence text. It never feeds
// derivation; it only contributes the senior-role bonus during matching.
type Expectations struct {
	Scope     string `yaml:"scope,omitempty" json:"scope,omitempty"`
	Autonomy  string `yaml:"autonomy,omitempty" json:"autonomy,omitempty"`
	Influence string `yaml:"influence,omitempty" json:"influence,omitempty"`
}

// Level is a career rank. Rank is a strict total order across the dataset.
type Level struct {
	ID   string `yaml:"id" json:"id"`
	Rank int    `yaml:"rank" json:"rank"`
	// BaseProficiencies seeds skill derivation before track modifiers.
	BaseProficiencies BaseProficiencies `yaml:"base_proficiencies" json:"base_proficiencies"`
	BaseMaturity      scale.Maturity    `yaml:"base_maturity" json:"base_maturity"`
	// Title templates. A "{role}" placeholder is substituted with the
	// discipline role title; otherwise the template is used as a prefix.
	ProfessionalTitle string       `yaml:"professional_title,omitempty" json:"professional_title,omitempty"`
	ManagementTitle   string       `yaml:"management_title,omitempty" json:"management_title,omitempty"`
	Expectations      Expectations `yaml:"expectations,omitempty" json:"expectations,omitempty"`
}

// Skill is a single assessable skill belonging to exactly one capability.
type Skill struct {
	ID         string `yaml:"id" json:"id"`
	Name       string `yaml:"name" json:"name"`
	Capability string `yaml:"capability" json:"capability"`
	// HumanOnly marks skills that cannot be delegated to tooling.
	HumanOnly bool `yaml:"human_only,omitempty" json:"human_only,omitempty"`
	// Descriptions is keyed by proficiency label.
	Descriptions map[scale.Proficiency]string `yaml:"descriptions,omitempty" json:"descriptions,omitempty"`
}

// Behaviour is a globally-scoped behaviour; every derived job carries the
// full behaviour set at derived maturities.
type Behaviour struct {
	ID     string `yaml:"id" json:"id"`
	Name   string `yaml:"name" json:"name"`
	Driver string `yaml:"driver,omitempty" json:"driver,omitempty"`
	// Descriptions is keyed by maturity label.
	Descriptions map[scale.Maturity]string `yaml:"descriptions,omitempty" json:"descriptions,omitempty"`
}

// RoleText is responsibility text split by role class.
type RoleText struct {
	Professional string `yaml:"professional,omitempty" json:"professional,omitempty"`
	Management   string `yaml:"management,omitempty" json:"management,omitempty"`
}

// Capability groups skills for track modifiers and responsibility text.
type Capability struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
	Rank int    `yaml:"rank" json:"rank"`
	// Responsibilities is keyed by proficiency label.
	Responsibilities map[scale.Proficiency]RoleText `yaml:"responsibilities,omitempty" json:"responsibilities,omitempty"`
}

// Driver groups behaviours the way capabilities group skills.
type Driver struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// CombinationRule declares one forbidden (discipline, track, level)
// combination. A nil field matches anything; an empty-string Track matches
// the trackless variant.
type CombinationRule struct {
	Discipline *string `yaml:"discipline,omitempty" json:"discipline,omitempty"`
	Track      *string `yaml:"track,omitempty" json:"track,omitempty"`
	Level      *string `yaml:"level,omitempty" json:"level,omitempty"`
}

// Matches reports whether the rule forbids the given combination. trackID is
// empty for trackless combinations.
func (r CombinationRule) Matches(disciplineID, trackID, levelID string) bool {
	match := func(field *string, value string) bool {
		return field == nil || *field == value
	}
	return match(r.Discipline, disciplineID) &&
		match(r.Track, trackID) &&
		match(r.Level, levelID)
}

// ValidationRules is the externally-authored combination blocklist.
type ValidationRules struct {
	InvalidCombinations []CombinationRule `yaml:"invalid_combinations,omitempty" json:"invalid_combinations,omitempty"`
	// Levels optionally pins the set of level ids the rules may reference.
	Levels []string `yaml:"levels,omitempty" json:"levels,omitempty"`
}

// SelfAssessment maps skill and behaviour ids to self-reported labels.
// Entries for ids a job does not require are ignored during matching.
type SelfAssessment struct {
	Skills     map[string]scale.Proficiency `yaml:"skills,omitempty" json:"skills,omitempty"`
	Behaviours map[string]scale.Maturity    `yaml:"behaviours,omitempty" json:"behaviours,omitempty"`
	// Expectations is optional; only field presence is scored.
	Expectations *Expectations `yaml:"expectations,omitempty" json:"expectations,omitempty"`
}
