// Package dataset loads the authored career-framework YAML files and
// validates every cross-reference before the engines see them. Loading is
// the only place structural problems can surface; past this boundary a
// dangling id is a programming error and the engines panic on it.
package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"careerframe/internal/model"
	"careerframe/internal/scale"
)

// Dataset is the fully loaded, validated framework data graph.
type Dataset struct {
	Disciplines  []*model.Discipline
	Tracks       []*model.Track
	Levels       []*model.Level
	Skills       []*model.Skill
	Behaviours   []*model.Behaviour
	Capabilities []*model.Capability
	Drivers      []*model.Driver
	Rules        *model.ValidationRules

	disciplineByID map[string]*model.Discipline
	trackByID      map[string]*model.Track
	levelByID      map[string]*model.Level
}

// Discipline returns the discipline for id, or nil.
func (d *Dataset) Discipline(id string) *model.Discipline { return d.disciplineByID[id] }

// Track returns the track for id, or nil.
func (d *Dataset) Track(id string) *model.Track { return d.trackByID[id] }

// Level returns the level for id, or nil.
func (d *Dataset) Level(id string) *model.Level { return d.levelByID[id] }

func decodeFile[T any](dir, name string, out *T, required bool) error {
	path := filepath.Join(dir, name)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}

// Load reads and validates a dataset directory. validation.yaml and
// drivers.yaml are optional; everything else is required.
func Load(dir string) (*Dataset, error) {
	ds := &Dataset{}
	if err := decodeFile(dir, "disciplines.yaml", &ds.Disciplines, true); err != nil {
		return nil, err
	}
	if err := decodeFile(dir, "tracks.yaml", &ds.Tracks, true); err != nil {
		return nil, err
	}
	if err := decodeFile(dir, "levels.yaml", &ds.Levels, true); err != nil {
		return nil, err
	}
	if err := decodeFile(dir, "skills.yaml", &ds.Skills, true); err != nil {
		return nil, err
	}
	if err := decodeFile(dir, "behaviours.yaml", &ds.Behaviours, true); err != nil {
		return nil, err
	}
	if err := decodeFile(dir, "capabilities.yaml", &ds.Capabilities, true); err != nil {
		return nil, err
	}
	if err := decodeFile(dir, "drivers.yaml", &ds.Drivers, false); err != nil {
		return nil, err
	}
	var rules model.ValidationRules
	if err := decodeFile(dir, "validation.yaml", &rules, false); err != nil {
		return nil, err
	}
	if len(rules.InvalidCombinations) > 0 || len(rules.Levels) > 0 {
		ds.Rules = &rules
	}
	if err := ds.validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

func (d *Dataset) validate() error {
	d.disciplineByID = make(map[string]*model.Discipline, len(d.Disciplines))
	d.trackByID = make(map[string]*model.Track, len(d.Tracks))
	d.levelByID = make(map[string]*model.Level, len(d.Levels))
	skillByID := make(map[string]*model.Skill, len(d.Skills))
	behaviourByID := make(map[string]*model.Behaviour, len(d.Behaviours))
	capabilityByID := make(map[string]*model.Capability, len(d.Capabilities))
	driverByID := make(map[string]*model.Driver, len(d.Drivers))
	rankSeen := make(map[int]string, len(d.Levels))

	for _, c := range d.Capabilities {
		if c.ID == "" {
			return fmt.Errorf("capabilities.yaml: capability with empty id")
		}
		if _, dup := capabilityByID[c.ID]; dup {
			return fmt.Errorf("capabilities.yaml: duplicate capability id %q", c.ID)
		}
		for label := range c.Responsibilities {
			if !label.Known() {
				return fmt.Errorf("capabilities.yaml: capability %q: unknown proficiency label %q", c.ID, label)
			}
		}
		capabilityByID[c.ID] = c
	}

	for _, s := range d.Skills {
		if s.ID == "" {
			return fmt.Errorf("skills.yaml: skill with empty id")
		}
		if _, dup := skillByID[s.ID]; dup {
			return fmt.Errorf("skills.yaml: duplicate skill id %q", s.ID)
		}
		if _, ok := capabilityByID[s.Capability]; !ok {
			return fmt.Errorf("skills.yaml: skill %q references unknown capability %q", s.ID, s.Capability)
		}
		for label := range s.Descriptions {
			if !label.Known() {
				return fmt.Errorf("skills.yaml: skill %q: unknown proficiency label %q", s.ID, label)
			}
		}
		skillByID[s.ID] = s
	}

	for _, dr := range d.Drivers {
		if dr.ID == "" {
			return fmt.Errorf("drivers.yaml: driver with empty id")
		}
		if _, dup := driverByID[dr.ID]; dup {
			return fmt.Errorf("drivers.yaml: duplicate driver id %q", dr.ID)
		}
		driverByID[dr.ID] = dr
	}

	for _, b := range d.Behaviours {
		if b.ID == "" {
			return fmt.Errorf("behaviours.yaml: behaviour with empty id")
		}
		if _, dup := behaviourByID[b.ID]; dup {
			return fmt.Errorf("behaviours.yaml: duplicate behaviour id %q", b.ID)
		}
		if b.Driver != "" && len(d.Drivers) > 0 {
			if _, ok := driverByID[b.Driver]; !ok {
				return fmt.Errorf("behaviours.yaml: behaviour %q references unknown driver %q", b.ID, b.Driver)
			}
		}
		for label := range b.Descriptions {
			if !label.Known() {
				return fmt.Errorf("behaviours.yaml: behaviour %q: unknown maturity label %q", b.ID, label)
			}
		}
		behaviourByID[b.ID] = b
	}

	for _, l := range d.Levels {
		if l.ID == "" {
			return fmt.Errorf("levels.yaml: level with empty id")
		}
		if _, dup := d.levelByID[l.ID]; dup {
			return fmt.Errorf("levels.yaml: duplicate level id %q", l.ID)
		}
		if other, dup := rankSeen[l.Rank]; dup {
			return fmt.Errorf("levels.yaml: levels %q and %q share rank %d", other, l.ID, l.Rank)
		}
		for _, label := range []scale.Proficiency{
			l.BaseProficiencies.Primary,
			l.BaseProficiencies.Secondary,
			l.BaseProficiencies.Broad,
		} {
			if !label.Known() {
				return fmt.Errorf("levels.yaml: level %q: unknown base proficiency %q", l.ID, label)
			}
		}
		if !l.BaseMaturity.Known() {
			return fmt.Errorf("levels.yaml: level %q: unknown base maturity %q", l.ID, l.BaseMaturity)
		}
		rankSeen[l.Rank] = l.ID
		d.levelByID[l.ID] = l
	}

	for _, t := range d.Tracks {
		if t.ID == "" {
			return fmt.Errorf("tracks.yaml: track with empty id")
		}
		if _, dup := d.trackByID[t.ID]; dup {
			return fmt.Errorf("tracks.yaml: duplicate track id %q", t.ID)
		}
		for capID := range t.SkillModifiers {
			if _, ok := capabilityByID[capID]; !ok {
				return fmt.Errorf("tracks.yaml: track %q modifies unknown capability %q", t.ID, capID)
			}
		}
		for bID := range t.BehaviourModifiers {
			if _, ok := behaviourByID[bID]; !ok {
				return fmt.Errorf("tracks.yaml: track %q modifies unknown behaviour %q", t.ID, bID)
			}
		}
		if t.MinLevel != "" {
			if _, ok := d.levelByID[t.MinLevel]; !ok {
				return fmt.Errorf("tracks.yaml: track %q references unknown min level %q", t.ID, t.MinLevel)
			}
		}
		if t.Weights != nil {
			if sum := t.Weights.Skill + t.Weights.Behaviour; sum < 0.999 || sum > 1.001 {
				return fmt.Errorf("tracks.yaml: track %q weights must sum to 1, got %v", t.ID, sum)
			}
		}
		d.trackByID[t.ID] = t
	}

	for _, disc := range d.Disciplines {
		if disc.ID == "" {
			return fmt.Errorf("disciplines.yaml: discipline with empty id")
		}
		if _, dup := d.disciplineByID[disc.ID]; dup {
			return fmt.Errorf("disciplines.yaml: duplicate discipline id %q", disc.ID)
		}
		for _, list := range [][]string{disc.CoreSkills, disc.SupportingSkills, disc.BroadSkills} {
			for _, skillID := range list {
				if _, ok := skillByID[skillID]; !ok {
					return fmt.Errorf("disciplines.yaml: discipline %q lists unknown skill %q", disc.ID, skillID)
				}
			}
		}
		if disc.MinLevel != "" {
			if _, ok := d.levelByID[disc.MinLevel]; !ok {
				return fmt.Errorf("disciplines.yaml: discipline %q references unknown min level %q", disc.ID, disc.MinLevel)
			}
		}
		for _, trackRef := range disc.ValidTracks {
			if trackRef == nil {
				continue
			}
			if _, ok := d.trackByID[*trackRef]; !ok {
				return fmt.Errorf("disciplines.yaml: discipline %q allows unknown track %q", disc.ID, *trackRef)
			}
		}
		for bID := range disc.BehaviourModifiers {
			if _, ok := behaviourByID[bID]; !ok {
				return fmt.Errorf("disciplines.yaml: discipline %q modifies unknown behaviour %q", disc.ID, bID)
			}
		}
		d.disciplineByID[disc.ID] = disc
	}

	if d.Rules != nil {
		known := func(field *string, lookup func(string) bool, kind string, i int) error {
			if field == nil || *field == "" {
				return nil
			}
			if !lookup(*field) {
				return fmt.Errorf("validation.yaml: rule %d references unknown %s %q", i, kind, *field)
			}
			return nil
		}
		for i, rule := range d.Rules.InvalidCombinations {
			if err := known(rule.Discipline, func(id string) bool { return d.disciplineByID[id] != nil }, "discipline", i); err != nil {
				return err
			}
			if err := known(rule.Track, func(id string) bool { return d.trackByID[id] != nil }, "track", i); err != nil {
				return err
			}
			if err := known(rule.Level, func(id string) bool { return d.levelByID[id] != nil }, "level", i); err != nil {
				return err
			}
		}
		for _, levelID := range d.Rules.Levels {
			if _, ok := d.levelByID[levelID]; !ok {
				return fmt.Errorf("validation.yaml: levels list references unknown level %q", levelID)
			}
		}
	}

	return nil
}

// LoadAssessment reads a self-assessment YAML file and validates its
// labels. Ids are not checked against a dataset; assessments may carry
// entries for skills a given job does not require.
func LoadAssessment(path string) (*model.SelfAssessment, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading assessment: %w", err)
	}
	var sa model.SelfAssessment
	if err := yaml.Unmarshal(raw, &sa); err != nil {
		return nil, fmt.Errorf("parsing assessment: %w", err)
	}
	for skillID, label := range sa.Skills {
		if !label.Known() {
			return nil, fmt.Errorf("assessment: skill %q has unknown proficiency %q", skillID, label)
		}
	}
	for behaviourID, label := range sa.Behaviours {
		if !label.Known() {
			return nil, fmt.Errorf("assessment: behaviour %q has unknown maturity %q", behaviourID, label)
		}
	}
	return &sa, nil
}
