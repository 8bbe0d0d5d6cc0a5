// Package ptp maps patient age, sex, and symptom to a pretest probability of
// coronary artery disease using a fixed clinical reference table.
package ptp

import (
	"math"

	"github.com/cardioref/ptp-cli/internal/model"
)

// BandFor maps a numeric age to its age band. ok is false when age is NaN or
// infinite; callers must treat that as a validation failure. Ages below 30
// map to the AgeBandUnder30 sentinel, which is not a valid lookup key.
func BandFor(age float64) (model.AgeBand, bool) {
	if math.IsNaN(age) || math.IsInf(age, 0) {
		return "", false
	}
	switch {
	case age < 30:
		return model.AgeBandUnder30, true
	case age < 40:
		return model.AgeBand30to39, true
	case age < 50:
		return model.AgeBand40to49, true
	case age < 60:
		return model.AgeBand50to59, true
	case age < 70:
		return model.AgeBand60to69, true
	default:
		return model.AgeBand70Plus, true
	}
}
