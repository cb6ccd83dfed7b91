// Package progression diffs two already-derived job definitions for career
// progression displays: per-skill and per-behaviour level deltas, gained
// and lost entries, and aggregate tallies. Analyze(A, B) is the exact
// sign-inverse of Analyze(B, A) for every entry present in both jobs.
package progression

import (
	"careerframe/internal/model"
	"careerframe/internal/predicate"
)

// Analyze computes the ordered change sets between current and target.
func Analyze(current, target *model.JobDefinition) *model.ProgressionAnalysis {
	analysis := &model.ProgressionAnalysis{
		SkillChanges:     skillChanges(current, target),
		BehaviourChanges: behaviourChanges(current, target),
	}
	analysis.Skills = tallySkills(analysis.SkillChanges)
	analysis.Behaviours = tallyBehaviours(analysis.BehaviourChanges)
	return analysis
}

// skillChanges covers the union of both matrices. Shared skills diff their
// ranks; skills only in current are lost, only in target are gained.
func skillChanges(current, target *model.JobDefinition) []model.SkillChange {
	currentByID := make(map[string]model.SkillRequirement, len(current.SkillMatrix))
	for _, entry := range current.SkillMatrix {
		currentByID[entry.SkillID] = entry
	}
	targetByID := make(map[string]model.SkillRequirement, len(target.SkillMatrix))
	for _, entry := range target.SkillMatrix {
		targetByID[entry.SkillID] = entry
	}

	changes := make([]model.SkillChange, 0, len(currentByID)+len(targetByID))
	for _, cur := range current.SkillMatrix {
		tgt, shared := targetByID[cur.SkillID]
		if !shared {
			changes = append(changes, model.SkillChange{
				SkillID: cur.SkillID,
				Name:    cur.Name,
				Type:    cur.Type,
				From:    string(cur.Proficiency),
				Change:  -(cur.Proficiency.Index() + 1),
				IsLost:  true,
			})
			continue
		}
		changes = append(changes, model.SkillChange{
			SkillID: cur.SkillID,
			Name:    cur.Name,
			Type:    tgt.Type,
			From:    string(cur.Proficiency),
			To:      string(tgt.Proficiency),
			Change:  tgt.Proficiency.Index() - cur.Proficiency.Index(),
		})
	}
	for _, tgt := range target.SkillMatrix {
		if _, shared := currentByID[tgt.SkillID]; shared {
			continue
		}
		changes = append(changes, model.SkillChange{
			SkillID:  tgt.SkillID,
			Name:     tgt.Name,
			Type:     tgt.Type,
			To:       string(tgt.Proficiency),
			Change:   tgt.Proficiency.Index() + 1,
			IsGained: true,
		})
	}
	return predicate.SortedBy(changes, predicate.BySkillChangeMagnitude)
}

// behaviourChanges only compares behaviours present in both profiles;
// behaviours are global, so that is normally all of them.
func behaviourChanges(current, target *model.JobDefinition) []model.BehaviourChange {
	targetByID := make(map[string]model.BehaviourRequirement, len(target.BehaviourProfile))
	for _, entry := range target.BehaviourProfile {
		targetByID[entry.BehaviourID] = entry
	}
	changes := make([]model.BehaviourChange, 0, len(current.BehaviourProfile))
	for _, cur := range current.BehaviourProfile {
		tgt, shared := targetByID[cur.BehaviourID]
		if !shared {
			continue
		}
		changes = append(changes, model.BehaviourChange{
			BehaviourID: cur.BehaviourID,
			Name:        cur.Name,
			From:        string(cur.Maturity),
			To:          string(tgt.Maturity),
			Change:      tgt.Maturity.Index() - cur.Maturity.Index(),
		})
	}
	return predicate.SortedBy(changes, predicate.ByBehaviourChangeMagnitude)
}

func tallySkills(changes []model.SkillChange) model.ChangeTally {
	var t model.ChangeTally
	for _, c := range changes {
		t.Net += c.Change
		switch {
		case c.IsGained:
			t.Gained++
		case c.IsLost:
			t.Lost++
		case c.Change > 0:
			t.Improved++
		case c.Change < 0:
			t.Regressed++
		default:
			t.Unchanged++
		}
	}
	return t
}

func tallyBehaviours(changes []model.BehaviourChange) model.ChangeTally {
	var t model.ChangeTally
	for _, c := range changes {
		t.Net += c.Change
		switch {
		case c.Change > 0:
			t.Improved++
		case c.Change < 0:
			t.Regressed++
		default:
			t.Unchanged++
		}
	}
	return t
}
