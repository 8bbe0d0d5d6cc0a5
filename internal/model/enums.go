// Package model holds the closed enumerations and result types shared by the
// PTP resolver, the CAC classifier, and the assessment store.
package model

// Symptom is the presenting symptom used as the first table key.
type Symptom string

const (
	SymptomChestPain Symptom = "chestPain"
	SymptomDyspnea   Symptom = "dyspnea"
)

// Symptoms lists all valid symptom values in table order.
var Symptoms = []Symptom{SymptomChestPain, SymptomDyspnea}

// Valid reports whether s is one of the two recognized symptoms.
func (s Symptom) Valid() bool {
	return s == SymptomChestPain || s == SymptomDyspnea
}

// ParseSymptom maps a raw input string to a Symptom.
func ParseSymptom(raw string) (Symptom, bool) {
	s := Symptom(raw)
	return s, s.Valid()
}

// Sex is the patient sex used as the second table key.
type Sex string

const (
	SexMen   Sex = "men"
	SexWomen Sex = "women"
)

// Sexes lists all valid sex values in table order.
var Sexes = []Sex{SexMen, SexWomen}

// Valid reports whether s is one of the two recognized values.
func (s Sex) Valid() bool {
	return s == SexMen || s == SexWomen
}

// ParseSex maps a raw input string to a Sex.
func ParseSex(raw string) (Sex, bool) {
	s := Sex(raw)
	return s, s.Valid()
}

// AgeBand is a discrete age bucket used as the third table key.
// AgeBandUnder30 is a sentinel for "below the supported range" and is never
// a valid lookup key.
type AgeBand string

const (
	AgeBandUnder30 AgeBand = "lt30"
	AgeBand30to39  AgeBand = "30-39"
	AgeBand40to49  AgeBand = "40-49"
	AgeBand50to59  AgeBand = "50-59"
	AgeBand60to69  AgeBand = "60-69"
	AgeBand70Plus  AgeBand = "70+"
)

// AgeBands lists the lookup-valid age bands in ascending order.
// AgeBandUnder30 is deliberately excluded.
var AgeBands = []AgeBand{AgeBand30to39, AgeBand40to49, AgeBand50to59, AgeBand60to69, AgeBand70Plus}

// RiskCategory buckets a probability estimate for display and triage.
type RiskCategory string

const (
	CategoryLow              RiskCategory = "low"
	CategoryIntermediateHigh RiskCategory = "intermediateHigh"
	CategoryHigh             RiskCategory = "high"
)
