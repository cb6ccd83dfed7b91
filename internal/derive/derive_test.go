package derive

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerframe/internal/model"
	"careerframe/internal/policy"
	"careerframe/internal/scale"
)

func strptr(s string) *string { return &s }

// fixture is the shared five-level, two-discipline, two-track framework the
// engine tests run against.
type fixture struct {
	skills       []*model.Skill
	behaviours   []*model.Behaviour
	capabilities []*model.Capability
	levels       []*model.Level
	disciplines  map[string]*model.Discipline
	tracks       map[string]*model.Track
}

func newFixture() *fixture {
	f := &fixture{
		skills: []*model.Skill{
			{ID: "coding", Name: "Coding", Capability: "backend"},
			{ID: "systems_design", Name: "Systems Design", Capability: "backend"},
			{ID: "testing", Name: "Testing", Capability: "quality"},
			{ID: "incident_response", Name: "Incident Response", Capability: "quality"},
			{ID: "prompt_engineering", Name: "Prompt Engineering", Capability: "ai"},
		},
		behaviours: []*model.Behaviour{
			{ID: "ownership", Name: "Ownership"},
			{ID: "communication", Name: "Communication"},
			{ID: "leadership", Name: "Leadership"},
		},
		capabilities: []*model.Capability{
			{ID: "backend", Name: "Backend", Rank: 1, Responsibilities: map[scale.Proficiency]model.RoleText{
				scale.Foundational: {Professional: "Delivers well-defined backend changes"},
				scale.Working:      {Professional: "Designs and owns well-scoped components"},
				scale.Practitioner: {Professional: "Leads design of team-scale systems", Management: "Runs design reviews across teams"},
				scale.Expert:       {Professional: "Sets technical direction for the domain"},
			}},
			{ID: "quality", Name: "Quality", Rank: 2, Responsibilities: map[scale.Proficiency]model.RoleText{
				scale.Foundational: {Professional: "Writes tests for own changes"},
				scale.Working:      {Professional: "Improves the team's quality practices"},
			}},
			{ID: "ai", Name: "AI", Rank: 3, Responsibilities: map[scale.Proficiency]model.RoleText{
				scale.Working:      {Professional: "Applies AI tooling to daily work"},
				scale.Practitioner: {Professional: "Builds AI-assisted workflows for the team"},
			}},
		},
		levels: []*model.Level{
			{ID: "l1", Rank: 1, BaseProficiencies: model.BaseProficiencies{Primary: scale.Foundational, Secondary: scale.Awareness, Broad: scale.Awareness}, BaseMaturity: scale.Emerging, ProfessionalTitle: "Junior"},
			{ID: "l2", Rank: 2, BaseProficiencies: model.BaseProficiencies{Primary: scale.Working, Secondary: scale.Foundational, Broad: scale.Awareness}, BaseMaturity: scale.Developing},
			{ID: "l3", Rank: 3, BaseProficiencies: model.BaseProficiencies{Primary: scale.Practitioner, Secondary: scale.Working, Broad: scale.Foundational}, BaseMaturity: scale.Practicing, ProfessionalTitle: "Senior", ManagementTitle: "{role}"},
			{ID: "l4", Rank: 4, BaseProficiencies: model.BaseProficiencies{Primary: scale.Expert, Secondary: scale.Practitioner, Broad: scale.Working}, BaseMaturity: scale.RoleModeling, ProfessionalTitle: "Staff", ManagementTitle: "Senior {role}"},
			{ID: "l5", Rank: 5, BaseProficiencies: model.BaseProficiencies{Primary: scale.Expert, Secondary: scale.Expert, Broad: scale.Practitioner}, BaseMaturity: scale.Exemplifying, ProfessionalTitle: "Principal",
				Expectations: model.Expectations{Scope: "Sets org-level scope", Autonomy: "Fully autonomous", Influence: "Influences company strategy"}},
		},
		disciplines: map[string]*model.Discipline{
			"swe": {
				ID: "swe", RoleTitle: "Software Engineer",
				CoreSkills:       []string{"coding", "systems_design"},
				SupportingSkills: []string{"testing"},
				BroadSkills:      []string{"incident_response"},
			},
			"em": {
				ID: "em", RoleTitle: "Engineering Manager", IsManagement: true,
				CoreSkills:         []string{"coding"},
				SupportingSkills:   []string{"testing"},
				MinLevel:           "l3",
				BehaviourModifiers: map[string]int{"leadership": 1},
			},
		},
		tracks: map[string]*model.Track{
			"platform": {
				ID: "platform", Name: "Platform",
				SkillModifiers: map[string]int{"backend": 1},
			},
			"applied_ai": {
				ID: "applied_ai", Name: "Applied AI",
				SkillModifiers:     map[string]int{"ai": 2, "quality": -1},
				BehaviourModifiers: map[string]int{"ownership": 1},
				MinLevel:           "l2",
				Weights:            &model.AssessmentWeights{Skill: 0.6, Behaviour: 0.4},
			},
		},
	}
	return f
}

func (f *fixture) engine(rules *model.ValidationRules) *Engine {
	return NewEngine(f.skills, f.behaviours, f.capabilities, f.levels, rules, policy.Default())
}

func (f *fixture) level(id string) *model.Level {
	for _, l := range f.levels {
		if l.ID == id {
			return l
		}
	}
	return nil
}

func matrixEntry(t *testing.T, job *model.JobDefinition, skillID string) model.SkillRequirement {
	t.Helper()
	for _, e := range job.SkillMatrix {
		if e.SkillID == skillID {
			return e
		}
	}
	t.Fatalf("skill %q not in matrix of %s", skillID, job.ID)
	return model.SkillRequirement{}
}

func profileEntry(t *testing.T, job *model.JobDefinition, behaviourID string) model.BehaviourRequirement {
	t.Helper()
	for _, e := range job.BehaviourProfile {
		if e.BehaviourID == behaviourID {
			return e
		}
	}
	t.Fatalf("behaviour %q not in profile of %s", behaviourID, job.ID)
	return model.BehaviourRequirement{}
}

func TestSingleCoreSkillScenario(t *testing.T) {
	// Minimal framework: one discipline with one core skill at a level
	// whose primary baseline is foundational.
	e := NewEngine(
		[]*model.Skill{{ID: "coding", Name: "Coding", Capability: "backend"}},
		nil,
		[]*model.Capability{{ID: "backend", Name: "Backend", Rank: 1}},
		[]*model.Level{{ID: "l1", Rank: 1, BaseProficiencies: model.BaseProficiencies{
			Primary: scale.Foundational, Secondary: scale.Awareness, Broad: scale.Awareness,
		}, BaseMaturity: scale.Emerging}},
		nil,
		policy.Default(),
	)
	d := &model.Discipline{ID: "swe", RoleTitle: "Software Engineer", CoreSkills: []string{"coding"}}
	job := e.DeriveJob(d, e.mustLevel("l1"), nil)
	require.NotNil(t, job)
	require.Len(t, job.SkillMatrix, 1)
	entry := job.SkillMatrix[0]
	assert.Equal(t, "coding", entry.SkillID)
	assert.Equal(t, model.SkillTypePrimary, entry.Type)
	assert.Equal(t, scale.Foundational, entry.Proficiency)
}

func TestPositiveModifierCappedAtLevelCeiling(t *testing.T) {
	f := newFixture()
	e := f.engine(nil)
	// backend +2 at l1: base foundational(1)+2 = 3, but l1's highest base
	// tier is foundational(1), so the entry is capped there.
	track := &model.Track{ID: "deep_backend", Name: "Deep Backend", SkillModifiers: map[string]int{"backend": 2}}
	job := e.DeriveJob(f.disciplines["swe"], f.level("l1"), track)
	require.NotNil(t, job)
	assert.Equal(t, scale.Foundational, matrixEntry(t, job, "coding").Proficiency)
	assert.Equal(t, scale.Foundational, matrixEntry(t, job, "systems_design").Proficiency)
}

func TestNegativeModifierNeverClampedUp(t *testing.T) {
	f := newFixture()
	e := f.engine(nil)
	// applied_ai carries quality -1: at l3 testing drops from working to
	// foundational and stays there.
	job := e.DeriveJob(f.disciplines["swe"], f.level("l3"), f.tracks["applied_ai"])
	require.NotNil(t, job)
	assert.Equal(t, scale.Foundational, matrixEntry(t, job, "testing").Proficiency)
}

func TestTrackOnlySkills(t *testing.T) {
	f := newFixture()
	e := f.engine(nil)

	// prompt_engineering enters only via applied_ai's positive ai modifier.
	withTrack := e.DeriveJob(f.disciplines["swe"], f.level("l2"), f.tracks["applied_ai"])
	require.NotNil(t, withTrack)
	entry := matrixEntry(t, withTrack, "prompt_engineering")
	assert.Equal(t, model.SkillTypeTrack, entry.Type)
	// Broad baseline awareness(0) + 2, capped at l2's highest base tier
	// working(2).
	assert.Equal(t, scale.Working, entry.Proficiency)

	// Without the track the skill is absent entirely.
	trackless := e.DeriveJob(f.disciplines["swe"], f.level("l2"), nil)
	require.NotNil(t, trackless)
	for _, e := range trackless.SkillMatrix {
		assert.NotEqual(t, "prompt_engineering", e.SkillID)
	}

	// A non-positive modifier on a track-only capability excludes it too.
	suppressed := &model.Track{ID: "no_ai", Name: "No AI", SkillModifiers: map[string]int{"ai": -1}}
	job := e.DeriveJob(f.disciplines["swe"], f.level("l2"), suppressed)
	require.NotNil(t, job)
	for _, e := range job.SkillMatrix {
		assert.NotEqual(t, "prompt_engineering", e.SkillID)
	}
}

func TestMatrixCanonicalOrder(t *testing.T) {
	f := newFixture()
	e := f.engine(nil)
	job := e.DeriveJob(f.disciplines["swe"], f.level("l2"), f.tracks["applied_ai"])
	require.NotNil(t, job)
	var ids []string
	for _, entry := range job.SkillMatrix {
		ids = append(ids, entry.SkillID)
	}
	// primary (name order), secondary, broad, track.
	assert.Equal(t, []string{"coding", "systems_design", "testing", "incident_response", "prompt_engineering"}, ids)
}

func TestBehaviourProfileDerivation(t *testing.T) {
	f := newFixture()
	e := f.engine(nil)

	// Discipline modifier: em adds +1 leadership on top of l3 practicing.
	job := e.DeriveJob(f.disciplines["em"], f.level("l3"), nil)
	require.NotNil(t, job)
	assert.Equal(t, scale.RoleModeling, profileEntry(t, job, "leadership").Maturity)
	assert.Equal(t, scale.Practicing, profileEntry(t, job, "ownership").Maturity)

	// Track modifier stacks additively.
	job = e.DeriveJob(f.disciplines["swe"], f.level("l2"), f.tracks["applied_ai"])
	require.NotNil(t, job)
	assert.Equal(t, scale.Practicing, profileEntry(t, job, "ownership").Maturity)
	assert.Equal(t, scale.Developing, profileEntry(t, job, "communication").Maturity)

	// Clamped at the top of the scale.
	job = e.DeriveJob(f.disciplines["em"], f.level("l5"), nil)
	require.NotNil(t, job)
	assert.Equal(t, scale.Exemplifying, profileEntry(t, job, "leadership").Maturity)

	// Sorted by name.
	var names []string
	for _, entry := range job.BehaviourProfile {
		names = append(names, entry.Name)
	}
	assert.Equal(t, []string{"Communication", "Leadership", "Ownership"}, names)
}

// The validTracks contract is authored data behaving in a deliberately
// asymmetric way; these four corners document it rather than assume it.
func TestValidTracksContract(t *testing.T) {
	f := newFixture()
	e := f.engine(nil)
	l2 := f.level("l2")
	platform := f.tracks["platform"]
	appliedAI := f.tracks["applied_ai"]

	permissive := &model.Discipline{ID: "d", RoleTitle: "D", CoreSkills: []string{"coding"}}
	assert.True(t, e.IsValidCombination(permissive, l2, nil))
	assert.True(t, e.IsValidCombination(permissive, l2, platform))

	concreteOnly := &model.Discipline{ID: "d", RoleTitle: "D", CoreSkills: []string{"coding"},
		ValidTracks: []*string{strptr("platform")}}
	assert.False(t, e.IsValidCombination(concreteOnly, l2, nil), "no null sentinel forbids trackless")
	assert.True(t, e.IsValidCombination(concreteOnly, l2, platform))
	assert.False(t, e.IsValidCombination(concreteOnly, l2, appliedAI))

	sentinelOnly := &model.Discipline{ID: "d", RoleTitle: "D", CoreSkills: []string{"coding"},
		ValidTracks: []*string{nil}}
	assert.True(t, e.IsValidCombination(sentinelOnly, l2, nil))
	assert.False(t, e.IsValidCombination(sentinelOnly, l2, platform), "sentinel-only rejects every tracked request")

	both := &model.Discipline{ID: "d", RoleTitle: "D", CoreSkills: []string{"coding"},
		ValidTracks: []*string{nil, strptr("platform")}}
	assert.True(t, e.IsValidCombination(both, l2, nil))
	assert.True(t, e.IsValidCombination(both, l2, platform))
	assert.False(t, e.IsValidCombination(both, l2, appliedAI))
}

func TestMinimumLevels(t *testing.T) {
	f := newFixture()
	e := f.engine(nil)

	// Discipline minimum: em starts at l3.
	assert.False(t, e.IsValidCombination(f.disciplines["em"], f.level("l2"), nil))
	assert.True(t, e.IsValidCombination(f.disciplines["em"], f.level("l3"), nil))

	// Track minimum: applied_ai starts at l2.
	assert.False(t, e.IsValidCombination(f.disciplines["swe"], f.level("l1"), f.tracks["applied_ai"]))
	assert.True(t, e.IsValidCombination(f.disciplines["swe"], f.level("l2"), f.tracks["applied_ai"]))
}

func TestInvalidCombinationRules(t *testing.T) {
	f := newFixture()
	rules := &model.ValidationRules{InvalidCombinations: []model.CombinationRule{
		{Discipline: strptr("swe"), Track: strptr("platform"), Level: strptr("l1")},
		{Track: strptr("applied_ai"), Level: strptr("l5")},
	}}
	e := f.engine(rules)

	assert.False(t, e.IsValidCombination(f.disciplines["swe"], f.level("l1"), f.tracks["platform"]))
	assert.True(t, e.IsValidCombination(f.disciplines["swe"], f.level("l1"), nil),
		"rule naming a track does not catch the trackless variant")
	assert.True(t, e.IsValidCombination(f.disciplines["swe"], f.level("l2"), f.tracks["platform"]))

	// Wildcard discipline.
	assert.False(t, e.IsValidCombination(f.disciplines["swe"], f.level("l5"), f.tracks["applied_ai"]))
	assert.False(t, e.IsValidCombination(f.disciplines["em"], f.level("l5"), f.tracks["applied_ai"]))

	// An empty-string track field matches only trackless combinations.
	tracklessRule := &model.ValidationRules{InvalidCombinations: []model.CombinationRule{
		{Discipline: strptr("swe"), Track: strptr(""), Level: strptr("l1")},
	}}
	e = f.engine(tracklessRule)
	assert.False(t, e.IsValidCombination(f.disciplines["swe"], f.level("l1"), nil))
	assert.True(t, e.IsValidCombination(f.disciplines["swe"], f.level("l1"), f.tracks["platform"]))
}

func TestDeriveJobReturnsNilForInvalid(t *testing.T) {
	f := newFixture()
	e := f.engine(nil)
	assert.Nil(t, e.DeriveJob(f.disciplines["em"], f.level("l1"), nil))
	assert.Nil(t, e.DeriveJob(f.disciplines["swe"], f.level("l1"), f.tracks["applied_ai"]))
}

func TestTitlesAndIDs(t *testing.T) {
	f := newFixture()
	e := f.engine(nil)
	tests := []struct {
		discipline string
		level      string
		track      string
		wantTitle  string
		wantID     string
	}{
		{"swe", "l3", "", "Senior Software Engineer", "swe_l3"},
		{"swe", "l3", "platform", "Senior Software Engineer (Platform)", "swe_l3_platform"},
		{"swe", "l2", "", "Software Engineer Level 2", "swe_l2"},
		{"swe", "l5", "", "Principal Software Engineer", "swe_l5"},
		{"em", "l3", "", "Engineering Manager", "em_l3"},
		{"em", "l4", "", "Senior Engineering Manager", "em_l4"},
		{"em", "l4", "platform", "Senior Engineering Manager (Platform)", "em_l4_platform"},
	}
	for _, tt := range tests {
		t.Run(tt.wantID, func(t *testing.T) {
			var track *model.Track
			if tt.track != "" {
				track = f.tracks[tt.track]
			}
			job := e.DeriveJob(f.disciplines[tt.discipline], f.level(tt.level), track)
			require.NotNil(t, job)
			assert.Equal(t, tt.wantTitle, job.Title)
			assert.Equal(t, tt.wantID, job.ID)
		})
	}
}

func TestResponsibilities(t *testing.T) {
	f := newFixture()
	e := f.engine(nil)

	// swe l2: backend tops out at working, quality at foundational.
	job := e.DeriveJob(f.disciplines["swe"], f.level("l2"), nil)
	require.NotNil(t, job)
	require.Len(t, job.Responsibilities, 2)
	assert.Equal(t, "backend", job.Responsibilities[0].CapabilityID)
	assert.Equal(t, scale.Working, job.Responsibilities[0].Proficiency)
	assert.Equal(t, "Designs and owns well-scoped components", job.Responsibilities[0].Text)
	assert.Equal(t, "quality", job.Responsibilities[1].CapabilityID)
	assert.Equal(t, scale.Foundational, job.Responsibilities[1].Proficiency)

	// swe l1: quality tops out at the lowest label and is skipped.
	job = e.DeriveJob(f.disciplines["swe"], f.level("l1"), nil)
	require.NotNil(t, job)
	require.Len(t, job.Responsibilities, 1)
	assert.Equal(t, "backend", job.Responsibilities[0].CapabilityID)

	// Management disciplines read management text; pairs with no authored
	// management text are skipped.
	job = e.DeriveJob(f.disciplines["em"], f.level("l3"), nil)
	require.NotNil(t, job)
	require.Len(t, job.Responsibilities, 1)
	assert.Equal(t, "Runs design reviews across teams", job.Responsibilities[0].Text)
}

func TestGenerateAll(t *testing.T) {
	f := newFixture()
	disciplines := []*model.Discipline{f.disciplines["swe"], f.disciplines["em"]}
	tracks := []*model.Track{f.tracks["platform"], f.tracks["applied_ai"]}

	jobs := f.engine(nil).GenerateAll(disciplines, f.levels, tracks)
	// swe: 5 trackless + 5 platform + 4 applied_ai (l2+); em from l3: 3+3+3.
	assert.Len(t, jobs, 23)

	seen := make(map[string]bool, len(jobs))
	for _, job := range jobs {
		assert.False(t, seen[job.ID], "duplicate job id %s", job.ID)
		seen[job.ID] = true
	}

	rules := &model.ValidationRules{InvalidCombinations: []model.CombinationRule{
		{Discipline: strptr("swe"), Track: strptr("platform"), Level: strptr("l1")},
	}}
	jobs = f.engine(rules).GenerateAll(disciplines, f.levels, tracks)
	assert.Len(t, jobs, 22, "blocked combinations are skipped silently")
}

func TestMonotonicityAcrossLevels(t *testing.T) {
	f := newFixture()
	e := f.engine(nil)
	last := map[string]int{}
	for _, l := range f.levels {
		job := e.DeriveJob(f.disciplines["swe"], l, nil)
		require.NotNil(t, job)
		for _, entry := range job.SkillMatrix {
			idx := entry.Proficiency.Index()
			if prev, ok := last[entry.SkillID]; ok {
				assert.GreaterOrEqual(t, idx, prev,
					"%s regressed between levels without a negative modifier", entry.SkillID)
			}
			last[entry.SkillID] = idx
		}
	}
}

func TestDerivationIsIdempotent(t *testing.T) {
	f := newFixture()
	e := f.engine(nil)
	a := e.DeriveJob(f.disciplines["swe"], f.level("l3"), f.tracks["applied_ai"])
	b := e.DeriveJob(f.disciplines["swe"], f.level("l3"), f.tracks["applied_ai"])
	require.NotNil(t, a)
	require.NotNil(t, b)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("repeated derivation differs (-first +second):\n%s", diff)
	}
}
