package ptp

import (
	"fmt"

	"github.com/cardioref/ptp-cli/internal/model"
)

// lowCategoryMax is the highest percent still categorized as low risk.
const lowCategoryMax = 15

// Resolve looks up the pretest probability for the given inputs. It is pure
// and total: every input yields either a success or a failure result, never a
// panic. Validation is two-phase: all applicable flags are collected first,
// then a single decision inspects the worst severity. A failure still reports
// the age band when one was computed.
func Resolve(age float64, sex model.Sex, symptom model.Symptom) model.PTPResult {
	var flags model.Flags
	var band model.AgeBand

	b, ok := BandFor(age)
	if !ok {
		flags = flags.Add(model.SeverityBad, "age is required and must be a number")
	} else {
		band = b
		if band == model.AgeBandUnder30 {
			flags = flags.Add(model.SeverityWarn, "reference table starts at age 30; entered age is below the supported range")
		}
	}
	if !sex.Valid() {
		flags = flags.Add(model.SeverityBad, "sex must be one of: men, women")
	}
	if !symptom.Valid() {
		flags = flags.Add(model.SeverityBad, "symptom must be one of: chestPain, dyspnea")
	}

	if flags.Blocking() {
		return model.PTPResult{AgeBand: band, Flags: flags}
	}

	if band == model.AgeBandUnder30 {
		flags = flags.Add(model.SeverityBad, "no reference value exists for ages below 30")
		return model.PTPResult{AgeBand: band, Flags: flags}
	}

	// A missing or out-of-range table cell fails rather than reporting a
	// bogus value.
	percent, ok := Lookup(symptom, sex, band)
	if !ok || percent < 0 || percent > 100 {
		flags = flags.Add(model.SeverityBad, "no reference value for the selected combination")
		return model.PTPResult{AgeBand: band, Flags: flags}
	}

	category := model.CategoryIntermediateHigh
	if percent <= lowCategoryMax {
		category = model.CategoryLow
	}

	return model.PTPResult{
		OK:       true,
		Percent:  percent,
		Display:  fmt.Sprintf("≤%d%%", percent),
		Category: category,
		AgeBand:  band,
		Flags:    flags,
	}
}
