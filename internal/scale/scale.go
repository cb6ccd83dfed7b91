// Package scale defines the two ordered vocabularies the framework is built
// on: skill proficiency and behaviour maturity. Both are five-step total
// orders; every derivation and scoring rule works on their integer ranks and
// maps back to labels at the edges.
package scale

import "fmt"

// Max is the highest valid rank on either scale.
const Max = 4

// Proficiency is a skill proficiency label.
type Proficiency string

const (
	Awareness    Proficiency = "awareness"
	Foundational Proficiency = "foundational"
	Working      Proficiency = "working"
	Practitioner Proficiency = "practitioner"
	Expert       Proficiency = "expert"
)

// Maturity is a behaviour maturity label.
type Maturity string

const (
	Emerging     Maturity = "emerging"
	Developing   Maturity = "developing"
	Practicing   Maturity = "practicing"
	RoleModeling Maturity = "role_modeling"
	Exemplifying Maturity = "exemplifying"
)

var proficiencyOrder = [...]Proficiency{Awareness, Foundational, Working, Practitioner, Expert}

var maturityOrder = [...]Maturity{Emerging, Developing, Practicing, RoleModeling, Exemplifying}

var proficiencyIndex = map[Proficiency]int{
	Awareness:    0,
	Foundational: 1,
	Working:      2,
	Practitioner: 3,
	Expert:       4,
}

var maturityIndex = map[Maturity]int{
	Emerging:     0,
	Developing:   1,
	Practicing:   2,
	RoleModeling: 3,
	Exemplifying: 4,
}

// Index returns the rank of p. An unknown label is a caller contract
// violation and panics.
func (p Proficiency) Index() int {
	i, ok := proficiencyIndex[p]
	if !ok {
		panic(fmt.Sprintf("scale: unknown proficiency label %q", string(p)))
	}
	return i
}

// Known reports whether p is one of the five proficiency labels.
func (p Proficiency) Known() bool {
	_, ok := proficiencyIndex[p]
	return ok
}

// Index returns the rank of m. An unknown label is a caller contract
// violation and panics.
func (m Maturity) Index() int {
	i, ok := maturityIndex[m]
	if !ok {
		panic(fmt.Sprintf("scale: unknown maturity label %q", string(m)))
	}
	return i
}

// Known reports whether m is one of the five maturity labels.
func (m Maturity) Known() bool {
	_, ok := maturityIndex[m]
	return ok
}

// ProficiencyAt is the inverse of Proficiency.Index. Out-of-range indices
// panic; callers that compute indices arithmetically must Clamp first.
func ProficiencyAt(index int) Proficiency {
	if index < 0 || index > Max {
		panic(fmt.Sprintf("scale: proficiency index %d out of range", index))
	}
	return proficiencyOrder[index]
}

// MaturityAt is the inverse of Maturity.Index. Out-of-range indices panic.
func MaturityAt(index int) Maturity {
	if index < 0 || index > Max {
		panic(fmt.Sprintf("scale: maturity index %d out of range", index))
	}
	return maturityOrder[index]
}

// Clamp saturates an arithmetic rank to the valid [0, Max] range.
func Clamp(index int) int {
	if index < 0 {
		return 0
	}
	if index > Max {
		return Max
	}
	return index
}

// Proficiencies returns the labels in ascending order.
func Proficiencies() []Proficiency {
	out := make([]Proficiency, len(proficiencyOrder))
	copy(out, proficiencyOrder[:])
	return out
}

// Maturities returns the labels in ascending order.
func Maturities() []Maturity {
	out := make([]Maturity, len(maturityOrder))
	copy(out, maturityOrder[:])
	return out
}
