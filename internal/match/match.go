// Package match scores self-assessments against derived jobs: per-item gap
// scoring through a smooth decay table, weighted dimension averages, tier
// classification, bulk ranking, realistic-match windowing, development
// paths and next-step search. All scoring is parameterized by the injected
// policy; nothing here logs or performs I/O.
package match

import (
	"math"
	"sort"

	"careerframe/internal/derive"
	"careerframe/internal/model"
	"careerframe/internal/policy"
)

// Engine scores assessments against jobs derived by its derivation engine.
type Engine struct {
	derive *derive.Engine
	pol    policy.Policy
}

// NewEngine builds a matching engine sharing the derivation engine's
// dataset and policy.
func NewEngine(d *derive.Engine, pol policy.Policy) *Engine {
	return &Engine{derive: d, pol: pol}
}

// GapScore maps an ordinal shortfall to its score contribution: 1.0 at gap
// 0, decaying through the policy table, flooring for large gaps. Gaps never
// go negative; a defensive negative input scores as met.
func (e *Engine) GapScore(gap int) float64 {
	if gap <= 0 {
		return e.pol.GapDecay[0]
	}
	if gap < len(e.pol.GapDecay) {
		return e.pol.GapDecay[gap]
	}
	return e.pol.GapFloor
}

// ClassifyTier buckets an overall score; threshold checks run best-first
// and the first match wins.
func (e *Engine) ClassifyTier(score float64) model.Tier {
	switch {
	case score >= e.pol.Tiers.Strong:
		return model.TierStrong
	case score >= e.pol.Tiers.Good:
		return model.TierGood
	case score >= e.pol.Tiers.Stretch:
		return model.TierStretch
	default:
		return model.TierAspirational
	}
}

// itemScore scores one requirement. requiredIdx is the job's rank;
// actualIdx is -1 when the assessment has no entry, which scores as gap
// requiredIdx+1 — always worse than assessing at the lowest label.
func (e *Engine) itemScore(requiredIdx, actualIdx int) (score float64, gap int) {
	if actualIdx < 0 {
		gap = requiredIdx + 1
		return e.GapScore(gap), gap
	}
	if actualIdx >= requiredIdx {
		return 1.0, 0
	}
	gap = requiredIdx - actualIdx
	return e.GapScore(gap), gap
}

// CalculateJobMatch scores one assessment against one job.
func (e *Engine) CalculateJobMatch(sa *model.SelfAssessment, job *model.JobDefinition) *model.MatchAnalysis {
	var gaps []model.Gap

	skillTotal := 0.0
	for _, req := range job.SkillMatrix {
		requiredIdx := req.Proficiency.Index()
		actualIdx := -1
		actual := ""
		if label, ok := sa.Skills[req.SkillID]; ok {
			actualIdx = label.Index()
			actual = string(label)
		}
		score, gap := e.itemScore(requiredIdx, actualIdx)
		skillTotal += score
		if gap > 0 {
			gaps = append(gaps, model.Gap{
				Kind:     model.KindSkill,
				ID:       req.SkillID,
				Name:     req.Name,
				Required: string(req.Proficiency),
				Actual:   actual,
				Assessed: actualIdx >= 0,
				Gap:      gap,
			})
		}
	}
	skillScore := 1.0
	if n := len(job.SkillMatrix); n > 0 {
		skillScore = skillTotal / float64(n)
	}

	behaviourTotal := 0.0
	for _, req := range job.BehaviourProfile {
		requiredIdx := req.Maturity.Index()
		actualIdx := -1
		actual := ""
		if label, ok := sa.Behaviours[req.BehaviourID]; ok {
			actualIdx = label.Index()
			actual = string(label)
		}
		score, gap := e.itemScore(requiredIdx, actualIdx)
		behaviourTotal += score
		if gap > 0 {
			gaps = append(gaps, model.Gap{
				Kind:     model.KindBehaviour,
				ID:       req.BehaviourID,
				Name:     req.Name,
				Required: string(req.Maturity),
				Actual:   actual,
				Assessed: actualIdx >= 0,
				Gap:      gap,
			})
		}
	}
	behaviourScore := 1.0
	if n := len(job.BehaviourProfile); n > 0 {
		behaviourScore = behaviourTotal / float64(n)
	}

	skillWeight, behaviourWeight := e.pol.SkillWeight, e.pol.BehaviourWeight
	if job.Track != nil && job.Track.Weights != nil {
		skillWeight = job.Track.Weights.Skill
		behaviourWeight = job.Track.Weights.Behaviour
	}
	overall := skillScore*skillWeight + behaviourScore*behaviourWeight

	analysis := &model.MatchAnalysis{
		SkillScore:     skillScore,
		BehaviourScore: behaviourScore,
	}
	if job.Level.Rank >= e.pol.SeniorRank {
		exp := expectationsScore(sa, job.Level)
		analysis.ExpectationsScore = &exp
		overall = overall*(1-e.pol.ExpectationsBlend) + exp*e.pol.ExpectationsBlend
	}
	analysis.OverallScore = overall
	analysis.Tier = e.ClassifyTier(overall)

	sort.SliceStable(gaps, func(i, j int) bool { return gaps[i].Gap > gaps[j].Gap })
	analysis.Gaps = gaps
	if n := e.pol.PriorityGaps; n > 0 && len(gaps) > 0 {
		if n > len(gaps) {
			n = len(gaps)
		}
		analysis.PriorityGaps = gaps[:n]
	}
	return analysis
}

// expectationsScore is the fraction of the level's required expectation
// fields the assessment also fills. A level requiring none scores 1.0.
func expectationsScore(sa *model.SelfAssessment, l *model.Level) float64 {
	type pair struct{ required, actual string }
	var assessed model.Expectations
	if sa.Expectations != nil {
		assessed = *sa.Expectations
	}
	fields := []pair{
		{l.Expectations.Scope, assessed.Scope},
		{l.Expectations.Autonomy, assessed.Autonomy},
		{l.Expectations.Influence, assessed.Influence},
	}
	required, present := 0, 0
	for _, f := range fields {
		if f.required == "" {
			continue
		}
		required++
		if f.actual != "" {
			present++
		}
	}
	if required == 0 {
		return 1.0
	}
	return float64(present) / float64(required)
}

// FindMatchingJobs scores the assessment against every valid combination
// and returns the top-N by overall score. topN <= 0 uses the policy limit.
func (e *Engine) FindMatchingJobs(
	sa *model.SelfAssessment,
	disciplines []*model.Discipline,
	levels []*model.Level,
	tracks []*model.Track,
	topN int,
) []model.RankedMatch {
	matches := e.scoreAll(sa, disciplines, levels, tracks)
	if topN <= 0 {
		topN = e.pol.TopMatches
	}
	if len(matches) > topN {
		matches = matches[:topN]
	}
	return matches
}

func (e *Engine) scoreAll(
	sa *model.SelfAssessment,
	disciplines []*model.Discipline,
	levels []*model.Level,
	tracks []*model.Track,
) []model.RankedMatch {
	jobs := e.derive.GenerateAll(disciplines, levels, tracks)
	matches := make([]model.RankedMatch, 0, len(jobs))
	for _, job := range jobs {
		matches = append(matches, model.RankedMatch{
			Job:      job,
			Analysis: e.CalculateJobMatch(sa, job),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Analysis.OverallScore > matches[j].Analysis.OverallScore
	})
	return matches
}

// EstimateBestFitLevel picks the level whose primary baseline sits closest
// to the mean self-assessed skill rank. Confidence decays linearly with
// distance, reaching 0 two ranks away. An empty assessment returns the
// lowest level with confidence 0.
func (e *Engine) EstimateBestFitLevel(sa *model.SelfAssessment, levels []*model.Level) (*model.Level, float64) {
	if len(levels) == 0 {
		return nil, 0
	}
	ordered := make([]*model.Level, len(levels))
	copy(ordered, levels)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Rank < ordered[j].Rank })

	if len(sa.Skills) == 0 {
		return ordered[0], 0
	}
	total := 0
	for _, label := range sa.Skills {
		total += label.Index()
	}
	mean := float64(total) / float64(len(sa.Skills))

	best := ordered[0]
	bestDistance := math.Abs(mean - float64(best.BaseProficiencies.Primary.Index()))
	for _, l := range ordered[1:] {
		if d := math.Abs(mean - float64(l.BaseProficiencies.Primary.Index())); d < bestDistance {
			best, bestDistance = l, d
		}
	}
	confidence := 1 - bestDistance/2
	if confidence < 0 {
		confidence = 0
	}
	return best, confidence
}

// FindRealisticMatches narrows bulk results to the window a candidate can
// realistically move within: jobs near the estimated level, with stretch
// options only above the level the candidate already comfortably matches.
func (e *Engine) FindRealisticMatches(
	sa *model.SelfAssessment,
	disciplines []*model.Discipline,
	levels []*model.Level,
	tracks []*model.Track,
	topN int,
) *model.RealisticMatches {
	estimated, confidence := e.EstimateBestFitLevel(sa, levels)
	result := &model.RealisticMatches{
		EstimatedLevel: estimated,
		Confidence:     confidence,
		MatchesByTier:  make(map[model.Tier][]model.RankedMatch),
	}

	all := e.scoreAll(sa, disciplines, levels, tracks)
	filtered := all
	if estimated != nil {
		result.LevelRange = model.LevelRange{
			Min: estimated.Rank - e.pol.LevelWindow,
			Max: estimated.Rank + e.pol.LevelWindow,
		}
		filtered = filtered[:0:0]
		for _, m := range all {
			rank := m.Job.Level.Rank
			if rank >= result.LevelRange.Min && rank <= result.LevelRange.Max {
				filtered = append(filtered, m)
			}
		}
	}

	byTier := make(map[model.Tier][]model.RankedMatch)
	for _, m := range filtered {
		byTier[m.Analysis.Tier] = append(byTier[m.Analysis.Tier], m)
	}
	for tier, ms := range byTier {
		sort.SliceStable(ms, func(i, j int) bool {
			if ms[i].Job.Level.Rank != ms[j].Job.Level.Rank {
				return ms[i].Job.Level.Rank > ms[j].Job.Level.Rank
			}
			return ms[i].Analysis.OverallScore > ms[j].Analysis.OverallScore
		})
		byTier[tier] = ms
	}

	// Highest rank the candidate already matches comfortably.
	highest, hasReady := 0, false
	for _, tier := range []model.Tier{model.TierStrong, model.TierGood} {
		for _, m := range byTier[tier] {
			if !hasReady || m.Job.Level.Rank > highest {
				highest, hasReady = m.Job.Level.Rank, true
			}
		}
	}
	if hasReady {
		keepAbove := func(ms []model.RankedMatch, floor int) []model.RankedMatch {
			kept := ms[:0:0]
			for _, m := range ms {
				if m.Job.Level.Rank >= floor {
					kept = append(kept, m)
				}
			}
			return kept
		}
		byTier[model.TierStrong] = keepAbove(byTier[model.TierStrong], highest-e.pol.ReadyTierFloor)
		byTier[model.TierGood] = keepAbove(byTier[model.TierGood], highest-e.pol.ReadyTierFloor)
		// Growth only: stretch jobs below an already-matched level are
		// suppressed.
		byTier[model.TierStretch] = keepAbove(byTier[model.TierStretch], highest)
		byTier[model.TierAspirational] = keepAbove(byTier[model.TierAspirational], highest)
	}

	if topN <= 0 {
		topN = e.pol.TopMatches
	}
	var ordered []model.RankedMatch
	for _, tier := range model.Tiers() {
		ordered = append(ordered, byTier[tier]...)
		if len(byTier[tier]) > 0 {
			result.MatchesByTier[tier] = byTier[tier]
		}
	}
	if len(ordered) > topN {
		ordered = ordered[:topN]
	}
	result.Matches = ordered
	return result
}

// DeriveDevelopmentPath lists every shortfall against the target job,
// weighted by gap size, matrix type, and the AI-capability boost.
func (e *Engine) DeriveDevelopmentPath(sa *model.SelfAssessment, target *model.JobDefinition) *model.DevelopmentPath {
	var items []model.DevelopmentItem

	for _, req := range target.SkillMatrix {
		requiredIdx := req.Proficiency.Index()
		actualIdx := -1
		actual := ""
		if label, ok := sa.Skills[req.SkillID]; ok {
			actualIdx = label.Index()
			actual = string(label)
		}
		_, gap := e.itemScore(requiredIdx, actualIdx)
		if gap == 0 {
			continue
		}
		priority := float64(gap) * e.pol.Multipliers.For(req.Type)
		if req.Capability == e.pol.AICapability {
			priority *= e.pol.AIMultiplier
		}
		items = append(items, model.DevelopmentItem{
			Kind:     model.KindSkill,
			ID:       req.SkillID,
			Name:     req.Name,
			Required: string(req.Proficiency),
			Actual:   actual,
			Assessed: actualIdx >= 0,
			Gap:      gap,
			Priority: priority,
		})
	}

	for _, req := range target.BehaviourProfile {
		requiredIdx := req.Maturity.Index()
		actualIdx := -1
		actual := ""
		if label, ok := sa.Behaviours[req.BehaviourID]; ok {
			actualIdx = label.Index()
			actual = string(label)
		}
		_, gap := e.itemScore(requiredIdx, actualIdx)
		if gap == 0 {
			continue
		}
		items = append(items, model.DevelopmentItem{
			Kind:     model.KindBehaviour,
			ID:       req.BehaviourID,
			Name:     req.Name,
			Required: string(req.Maturity),
			Actual:   actual,
			Assessed: actualIdx >= 0,
			Gap:      gap,
			Priority: float64(gap),
		})
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].Priority > items[j].Priority })
	return &model.DevelopmentPath{
		TargetJob:          target,
		Items:              items,
		EstimatedReadiness: e.CalculateJobMatch(sa, target).OverallScore,
	}
}

// FindNextStepJob finds the best candidate one level up from the current
// job within the same discipline: the trackless variant plus one per track,
// with a fixed bonus for staying on the current track. Returns nil when
// already at the top level or no candidate is valid.
func (e *Engine) FindNextStepJob(
	sa *model.SelfAssessment,
	current *model.JobDefinition,
	levels []*model.Level,
	tracks []*model.Track,
) *model.RankedMatch {
	var next *model.Level
	for _, l := range levels {
		if l.Rank <= current.Level.Rank {
			continue
		}
		if next == nil || l.Rank < next.Rank {
			next = l
		}
	}
	if next == nil {
		return nil
	}

	candidates := make([]*model.Track, 0, len(tracks)+1)
	candidates = append(candidates, nil)
	candidates = append(candidates, tracks...)

	var best *model.RankedMatch
	bestAdjusted := 0.0
	for _, t := range candidates {
		job := e.derive.DeriveJob(current.Discipline, next, t)
		if job == nil {
			continue
		}
		analysis := e.CalculateJobMatch(sa, job)
		adjusted := analysis.OverallScore
		if job.TrackID == current.TrackID {
			adjusted += e.pol.SameTrackBonus
		}
		if best == nil || adjusted > bestAdjusted {
			best = &model.RankedMatch{Job: job, Analysis: analysis}
			bestAdjusted = adjusted
		}
	}
	return best
}
