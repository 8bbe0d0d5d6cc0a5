package ptp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardioref/ptp-cli/internal/model"
)

func TestResolve_ChestPainMan45(t *testing.T) {
	res := Resolve(45, model.SexMen, model.SymptomChestPain)
	require.True(t, res.OK)
	assert.Equal(t, 22, res.Percent)
	assert.Equal(t, "≤22%", res.Display)
	assert.Equal(t, model.CategoryIntermediateHigh, res.Category)
	assert.Equal(t, model.AgeBand40to49, res.AgeBand)
	assert.Empty(t, res.Flags)
}

func TestResolve_DyspneaWoman35(t *testing.T) {
	res := Resolve(35, model.SexWomen, model.SymptomDyspnea)
	require.True(t, res.OK)
	assert.Equal(t, 3, res.Percent)
	assert.Equal(t, "≤3%", res.Display)
	assert.Equal(t, model.CategoryLow, res.Category)
	assert.Equal(t, model.AgeBand30to39, res.AgeBand)
}

func TestResolve_Under30(t *testing.T) {
	res := Resolve(25, model.SexMen, model.SymptomChestPain)
	require.False(t, res.OK)
	assert.Equal(t, model.AgeBandUnder30, res.AgeBand)

	// Warn for the out-of-range age, escalated to bad because no table
	// value exists below 30.
	require.Len(t, res.Flags, 2)
	assert.Equal(t, model.SeverityWarn, res.Flags[0].Severity)
	assert.Equal(t, model.SeverityBad, res.Flags[1].Severity)
	assert.Contains(t, res.Flags[1].Message, "below 30")
}

func TestResolve_InvalidAge(t *testing.T) {
	for _, age := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		res := Resolve(age, model.SexMen, model.SymptomChestPain)
		require.False(t, res.OK)
		assert.Empty(t, res.AgeBand)
		require.NotEmpty(t, res.Flags)
		assert.Equal(t, model.SeverityBad, res.Flags[0].Severity)
	}
}

func TestResolve_MissingSex(t *testing.T) {
	res := Resolve(50, "", model.SymptomDyspnea)
	require.False(t, res.OK)
	// The age band is still reported on failure.
	assert.Equal(t, model.AgeBand50to59, res.AgeBand)
	require.Len(t, res.Flags, 1)
	assert.Equal(t, model.SeverityBad, res.Flags[0].Severity)
	assert.Contains(t, res.Flags[0].Message, "sex")
}

func TestResolve_AccumulatesAllFlags(t *testing.T) {
	// Validation collects every applicable flag before deciding; it never
	// short-circuits on the first error.
	res := Resolve(math.NaN(), "unknown", "fatigue")
	require.False(t, res.OK)
	require.Len(t, res.Flags, 3)
	for _, f := range res.Flags {
		assert.Equal(t, model.SeverityBad, f.Severity)
	}
}

func TestResolve_Under30WithInvalidSymptom(t *testing.T) {
	// A bad symptom aborts before the under-30 escalation fires, but the
	// warn flag is still collected.
	res := Resolve(25, model.SexWomen, "fatigue")
	require.False(t, res.OK)
	require.Len(t, res.Flags, 2)
	assert.Equal(t, model.SeverityWarn, res.Flags[0].Severity)
	assert.Equal(t, model.SeverityBad, res.Flags[1].Severity)
	assert.Contains(t, res.Flags[1].Message, "symptom")
}

func TestResolve_TotalOverValidDomain(t *testing.T) {
	// Every valid combination succeeds with a category consistent with the
	// percent <= 15 rule, and never carries a bad flag.
	ages := map[model.AgeBand]float64{
		model.AgeBand30to39: 34,
		model.AgeBand40to49: 44,
		model.AgeBand50to59: 54,
		model.AgeBand60to69: 64,
		model.AgeBand70Plus: 81,
	}
	for _, symptom := range model.Symptoms {
		for _, sex := range model.Sexes {
			for band, age := range ages {
				res := Resolve(age, sex, symptom)
				require.True(t, res.OK, "%s/%s/%s", symptom, sex, band)
				assert.Equal(t, band, res.AgeBand)
				assert.NotEqual(t, model.SeverityBad, res.Flags.Worst())

				want := model.CategoryIntermediateHigh
				if res.Percent <= 15 {
					want = model.CategoryLow
				}
				assert.Equal(t, want, res.Category)
			}
		}
	}
}

func TestResolve_NeverPanics(t *testing.T) {
	// Totality over garbage input.
	ages := []float64{math.NaN(), math.Inf(1), -40, 0, 29.999, 30, 150}
	sexes := []model.Sex{"", "men", "women", "MEN", "unknown"}
	symptoms := []model.Symptom{"", "chestPain", "dyspnea", "ChestPain", "cough"}
	for _, age := range ages {
		for _, sex := range sexes {
			for _, symptom := range symptoms {
				assert.NotPanics(t, func() {
					res := Resolve(age, sex, symptom)
					if res.OK {
						assert.False(t, res.Flags.Blocking())
					} else {
						assert.True(t, res.Flags.Blocking())
					}
				})
			}
		}
	}
}
