// Package derive turns (discipline, level, track?) combinations into fully
// resolved job definitions: skill matrix, behaviour profile, title, id and
// derived responsibilities. Derivation is pure and deterministic; invalid
// combinations return nil rather than an error because callers treat them
// as ordinary "not available" states.
package derive

import (
	"fmt"
	"strings"

	"careerframe/internal/model"
	"careerframe/internal/policy"
	"careerframe/internal/predicate"
	"careerframe/internal/scale"
)

// Engine holds the global framework entities a derivation needs. The slices
// passed to NewEngine are indexed once and never mutated.
type Engine struct {
	skills       map[string]*model.Skill
	behaviours   []*model.Behaviour
	capabilities map[string]*model.Capability
	levels       map[string]*model.Level
	rules        *model.ValidationRules
	pol          policy.Policy
}

// NewEngine builds a derivation engine over the loaded dataset. rules may be
// nil when no combination blocklist is authored.
func NewEngine(
	skills []*model.Skill,
	behaviours []*model.Behaviour,
	capabilities []*model.Capability,
	levels []*model.Level,
	rules *model.ValidationRules,
	pol policy.Policy,
) *Engine {
	e := &Engine{
		skills:       make(map[string]*model.Skill, len(skills)),
		behaviours:   behaviours,
		capabilities: make(map[string]*model.Capability, len(capabilities)),
		levels:       make(map[string]*model.Level, len(levels)),
		rules:        rules,
		pol:          pol,
	}
	for _, s := range skills {
		e.skills[s.ID] = s
	}
	for _, c := range capabilities {
		e.capabilities[c.ID] = c
	}
	for _, l := range levels {
		e.levels[l.ID] = l
	}
	return e
}

// Skill returns the skill record for id, or nil.
func (e *Engine) Skill(id string) *model.Skill {
	return e.skills[id]
}

// Capability returns the capability record for id, or nil.
func (e *Engine) Capability(id string) *model.Capability {
	return e.capabilities[id]
}

func (e *Engine) mustLevel(id string) *model.Level {
	l, ok := e.levels[id]
	if !ok {
		panic(fmt.Sprintf("derive: unknown level id %q", id))
	}
	return l
}

func (e *Engine) mustSkill(id string) *model.Skill {
	s, ok := e.skills[id]
	if !ok {
		panic(fmt.Sprintf("derive: unknown skill id %q", id))
	}
	return s
}

// IsValidCombination applies the combination rules: discipline and track
// minimum levels, the validTracks contract, and the authored blocklist.
// track is nil for trackless combinations.
func (e *Engine) IsValidCombination(d *model.Discipline, l *model.Level, t *model.Track) bool {
	if d.MinLevel != "" && l.Rank < e.mustLevel(d.MinLevel).Rank {
		return false
	}
	if t == nil {
		if !d.AllowsTrackless() {
			return false
		}
	} else {
		if !d.AllowsTrack(t.ID) {
			return false
		}
		if t.MinLevel != "" && l.Rank < e.mustLevel(t.MinLevel).Rank {
			return false
		}
	}
	if e.rules != nil {
		trackID := ""
		if t != nil {
			trackID = t.ID
		}
		for _, rule := range e.rules.InvalidCombinations {
			if rule.Matches(d.ID, trackID, l.ID) {
				return false
			}
		}
	}
	return true
}

// DeriveJob resolves one combination into a job definition, or nil when the
// combination is invalid.
func (e *Engine) DeriveJob(d *model.Discipline, l *model.Level, t *model.Track) *model.JobDefinition {
	if !e.IsValidCombination(d, l, t) {
		return nil
	}
	matrix := e.deriveMatrix(d, l, t)
	job := &model.JobDefinition{
		ID:               JobID(d, l, t),
		Title:            e.jobTitle(d, l, t),
		DisciplineID:     d.ID,
		LevelID:          l.ID,
		Discipline:       d,
		Level:            l,
		Track:            t,
		SkillMatrix:      matrix,
		BehaviourProfile: e.deriveBehaviourProfile(d, l, t),
		Responsibilities: e.deriveResponsibilities(d, matrix),
		Expectations:     l.Expectations,
	}
	if t != nil {
		job.TrackID = t.ID
	}
	return job
}

// GenerateAll enumerates every discipline x level pair, once trackless and
// once per track, and derives the valid ones. Invalid combinations are
// skipped silently.
func (e *Engine) GenerateAll(disciplines []*model.Discipline, levels []*model.Level, tracks []*model.Track) []*model.JobDefinition {
	var jobs []*model.JobDefinition
	for _, d := range disciplines {
		for _, l := range levels {
			if job := e.DeriveJob(d, l, nil); job != nil {
				jobs = append(jobs, job)
			}
			for _, t := range tracks {
				if job := e.DeriveJob(d, l, t); job != nil {
					jobs = append(jobs, job)
				}
			}
		}
	}
	return jobs
}

// JobID is the deterministic cache/display id for a combination.
func JobID(d *model.Discipline, l *model.Level, t *model.Track) string {
	if t == nil {
		return d.ID + "_" + l.ID
	}
	return d.ID + "_" + l.ID + "_" + t.ID
}

// jobTitle renders the deterministic title template. Management disciplines
// prefer the level's management title; a "{role}" placeholder substitutes
// the discipline role title, a bare template prefixes it, and levels with
// no template at all fall back to "Role Level N". Tracks append their name.
func (e *Engine) jobTitle(d *model.Discipline, l *model.Level, t *model.Track) string {
	base := l.ProfessionalTitle
	if d.IsManagement && l.ManagementTitle != "" {
		base = l.ManagementTitle
	}
	var title string
	switch {
	case base == "":
		title = fmt.Sprintf("%s Level %d", d.RoleTitle, l.Rank)
	case strings.Contains(base, "{role}"):
		title = strings.ReplaceAll(base, "{role}", d.RoleTitle)
	default:
		title = base + " " + d.RoleTitle
	}
	if t != nil {
		title += " (" + t.Name + ")"
	}
	return title
}

// effective base tier for a matrix type; track-typed skills start from the
// broad baseline.
func baseIndex(l *model.Level, typ model.SkillType) int {
	switch typ {
	case model.SkillTypePrimary:
		return l.BaseProficiencies.Primary.Index()
	case model.SkillTypeSecondary:
		return l.BaseProficiencies.Secondary.Index()
	default:
		return l.BaseProficiencies.Broad.Index()
	}
}

// maxBaseIndex is the level's highest base tier proficiency; positive track
// modifiers are capped here so a track can never push a skill above what
// the level as a whole supports.
func maxBaseIndex(l *model.Level) int {
	m := l.BaseProficiencies.Primary.Index()
	if s := l.BaseProficiencies.Secondary.Index(); s > m {
		m = s
	}
	if b := l.BaseProficiencies.Broad.Index(); b > m {
		m = b
	}
	return m
}

// skillRequirement resolves one skill's matrix entry. The second return is
// false when the skill resolves to "not present" (a track-only skill whose
// modifier is not positive).
func (e *Engine) skillRequirement(sk *model.Skill, typ model.SkillType, l *model.Level, t *model.Track) (model.SkillRequirement, bool) {
	modifier := 0
	if t != nil {
		modifier = t.SkillModifiers[sk.Capability]
	}
	if typ == model.SkillTypeTrack && modifier <= 0 {
		return model.SkillRequirement{}, false
	}
	idx := baseIndex(l, typ) + modifier
	if modifier > 0 {
		// Negative modifiers are deliberate de-emphasis and are never
		// clamped back up.
		if ceiling := maxBaseIndex(l); idx > ceiling {
			idx = ceiling
		}
	}
	label := scale.ProficiencyAt(scale.Clamp(idx))
	return model.SkillRequirement{
		SkillID:     sk.ID,
		Name:        sk.Name,
		Capability:  sk.Capability,
		Type:        typ,
		Proficiency: label,
		Description: sk.Descriptions[label],
	}, true
}

// deriveMatrix assembles the skill matrix: every skill the discipline lists
// plus every skill pulled in by a positive track capability modifier.
func (e *Engine) deriveMatrix(d *model.Discipline, l *model.Level, t *model.Track) []model.SkillRequirement {
	typeByID := make(map[string]model.SkillType, len(d.CoreSkills)+len(d.SupportingSkills)+len(d.BroadSkills))
	order := make([]string, 0, len(typeByID))
	add := func(ids []string, typ model.SkillType) {
		for _, id := range ids {
			if _, seen := typeByID[id]; seen {
				continue
			}
			typeByID[id] = typ
			order = append(order, id)
		}
	}
	add(d.CoreSkills, model.SkillTypePrimary)
	add(d.SupportingSkills, model.SkillTypeSecondary)
	add(d.BroadSkills, model.SkillTypeBroad)

	if t != nil {
		for _, sk := range e.skills {
			if _, listed := typeByID[sk.ID]; listed {
				continue
			}
			if t.SkillModifiers[sk.Capability] > 0 {
				typeByID[sk.ID] = model.SkillTypeTrack
				order = append(order, sk.ID)
			}
		}
	}

	matrix := make([]model.SkillRequirement, 0, len(order))
	for _, id := range order {
		entry, ok := e.skillRequirement(e.mustSkill(id), typeByID[id], l, t)
		if !ok {
			continue
		}
		matrix = append(matrix, entry)
	}
	return predicate.SortedBy(matrix, predicate.Chain(predicate.BySkillType, predicate.BySkillName, predicate.BySkillID))
}

// deriveBehaviourProfile resolves maturity for every behaviour in the
// dataset; behaviours are global, not discipline-scoped.
func (e *Engine) deriveBehaviourProfile(d *model.Discipline, l *model.Level, t *model.Track) []model.BehaviourRequirement {
	profile := make([]model.BehaviourRequirement, 0, len(e.behaviours))
	base := l.BaseMaturity.Index()
	for _, b := range e.behaviours {
		idx := base + d.BehaviourModifiers[b.ID]
		if t != nil {
			idx += t.BehaviourModifiers[b.ID]
		}
		label := scale.MaturityAt(scale.Clamp(idx))
		profile = append(profile, model.BehaviourRequirement{
			BehaviourID: b.ID,
			Name:        b.Name,
			Maturity:    label,
			Description: b.Descriptions[label],
		})
	}
	return predicate.SortedBy(profile, predicate.ByBehaviourName)
}

// deriveResponsibilities emits one line per capability at the highest
// proficiency any matrix skill reaches in it. Capabilities that top out at
// the lowest label are skipped, as are capability/proficiency pairs with no
// authored text for the discipline's role class.
func (e *Engine) deriveResponsibilities(d *model.Discipline, matrix []model.SkillRequirement) []model.Responsibility {
	maxByCapability := make(map[string]int)
	for _, entry := range matrix {
		idx := entry.Proficiency.Index()
		if current, ok := maxByCapability[entry.Capability]; !ok || idx > current {
			maxByCapability[entry.Capability] = idx
		}
	}
	out := make([]model.Responsibility, 0, len(maxByCapability))
	for capID, idx := range maxByCapability {
		if idx == 0 {
			continue
		}
		capability, ok := e.capabilities[capID]
		if !ok {
			continue
		}
		label := scale.ProficiencyAt(idx)
		text := capability.Responsibilities[label].Professional
		if d.IsManagement {
			text = capability.Responsibilities[label].Management
		}
		if text == "" {
			continue
		}
		out = append(out, model.Responsibility{
			CapabilityID:   capability.ID,
			CapabilityName: capability.Name,
			CapabilityRank: capability.Rank,
			Proficiency:    label,
			Text:           text,
		})
	}
	return predicate.SortedBy(out, predicate.ByResponsibility)
}
