// Package predicate provides the composable predicates, filter/sort
// combinators and canonical comparators shared by the derivation, matching
// and progression engines. Everything here is non-mutating: sorts return
// copies and filters allocate fresh slices.
package predicate

import (
	"sort"
	"strings"

	"careerframe/internal/model"
	"careerframe/internal/scale"
)

// Predicate is a boolean test over T.
type Predicate[T any] func(T) bool

// And is true when every predicate is true. An empty And is vacuously true.
func And[T any](preds ...Predicate[T]) Predicate[T] {
	return func(v T) bool {
		for _, p := range preds {
			if !p(v) {
				return false
			}
		}
		return true
	}
}

// Or is true when any predicate is true. An empty Or is false.
func Or[T any](preds ...Predicate[T]) Predicate[T] {
	return func(v T) bool {
		for _, p := range preds {
			if p(v) {
				return true
			}
		}
		return false
	}
}

// Not inverts a predicate.
func Not[T any](p Predicate[T]) Predicate[T] {
	return func(v T) bool { return !p(v) }
}

// Filter returns the elements of in satisfying p, preserving order.
func Filter[T any](in []T, p Predicate[T]) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if p(v) {
			out = append(out, v)
		}
	}
	return out
}

// Compare orders two values: negative when a sorts before b, positive when
// after, zero when equal.
type Compare[T any] func(a, b T) int

// Chain tries each comparator in turn until one breaks the tie.
func Chain[T any](cmps ...Compare[T]) Compare[T] {
	return func(a, b T) int {
		for _, cmp := range cmps {
			if c := cmp(a, b); c != 0 {
				return c
			}
		}
		return 0
	}
}

// Reversed inverts a comparator's order.
func Reversed[T any](cmp Compare[T]) Compare[T] {
	return func(a, b T) int { return -cmp(a, b) }
}

// SortedBy returns a stably sorted copy of in.
func SortedBy[T any](in []T, cmp Compare[T]) []T {
	out := make([]T, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return cmp(out[i], out[j]) < 0 })
	return out
}

// ---- Canonical comparators ----

// BySkillType orders matrix entries primary, secondary, broad, track.
func BySkillType(a, b model.SkillRequirement) int {
	return a.Type.Order() - b.Type.Order()
}

// BySkillName orders matrix entries by name, case-sensitive.
func BySkillName(a, b model.SkillRequirement) int {
	return strings.Compare(a.Name, b.Name)
}

// BySkillID breaks name ties so matrix order stays deterministic when two
// skills share a display name.
func BySkillID(a, b model.SkillRequirement) int {
	return strings.Compare(a.SkillID, b.SkillID)
}

// ByBehaviourName orders profile entries by name, case-sensitive.
func ByBehaviourName(a, b model.BehaviourRequirement) int {
	return strings.Compare(a.Name, b.Name)
}

// ByResponsibility orders responsibilities by proficiency descending, then
// capability rank ascending.
func ByResponsibility(a, b model.Responsibility) int {
	if c := b.Proficiency.Index() - a.Proficiency.Index(); c != 0 {
		return c
	}
	return a.CapabilityRank - b.CapabilityRank
}

// BySkillChangeMagnitude orders skill changes by absolute change
// descending, then canonical type order, then name.
func BySkillChangeMagnitude(a, b model.SkillChange) int {
	if c := abs(b.Change) - abs(a.Change); c != 0 {
		return c
	}
	if c := a.Type.Order() - b.Type.Order(); c != 0 {
		return c
	}
	return strings.Compare(a.Name, b.Name)
}

// ByBehaviourChangeMagnitude orders behaviour changes by absolute change
// descending, then name.
func ByBehaviourChangeMagnitude(a, b model.BehaviourChange) int {
	if c := abs(b.Change) - abs(a.Change); c != 0 {
		return c
	}
	return strings.Compare(a.Name, b.Name)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// ---- Matrix entry predicates ----

// HasType matches entries of the given matrix type.
func HasType(t model.SkillType) Predicate[model.SkillRequirement] {
	return func(e model.SkillRequirement) bool { return e.Type == t }
}

// MinProficiency matches entries at or above the given proficiency.
func MinProficiency(p scale.Proficiency) Predicate[model.SkillRequirement] {
	floor := p.Index()
	return func(e model.SkillRequirement) bool { return e.Proficiency.Index() >= floor }
}

// InCapability matches entries belonging to the given capability.
func InCapability(capabilityID string) Predicate[model.SkillRequirement] {
	return func(e model.SkillRequirement) bool { return e.Capability == capabilityID }
}

// HumanOnly matches entries whose skill is flagged human-only. The lookup
// returns nil for unknown ids, which never match.
func HumanOnly(lookup func(skillID string) *model.Skill) Predicate[model.SkillRequirement] {
	return func(e model.SkillRequirement) bool {
		sk := lookup(e.SkillID)
		return sk != nil && sk.HumanOnly
	}
}
