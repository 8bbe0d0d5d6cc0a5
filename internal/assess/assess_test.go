package assess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardioref/ptp-cli/internal/model"
)

func TestEvaluate_FullSuccess(t *testing.T) {
	a := Evaluate(Request{Age: "45", Sex: "men", Symptom: "chestPain", CAC: "120"})

	assert.NotEmpty(t, a.ID)
	assert.False(t, a.CreatedAt.IsZero())

	require.True(t, a.PTP.OK)
	assert.Equal(t, 22, a.PTP.Percent)
	assert.Equal(t, model.CategoryIntermediateHigh, a.PTP.Category)

	require.NotNil(t, a.CAC)
	require.True(t, a.CAC.OK)
	assert.Equal(t, "100-999", a.CAC.Bucket)
	assert.Equal(t, model.CategoryIntermediateHigh, a.CAC.Category)

	assert.Equal(t, "45", a.Input.Age)
	assert.Equal(t, "120", a.Input.CAC)
}

func TestEvaluate_NoCAC(t *testing.T) {
	a := Evaluate(Request{Age: "35", Sex: "women", Symptom: "dyspnea"})
	require.True(t, a.PTP.OK)
	assert.Equal(t, 3, a.PTP.Percent)
	assert.Equal(t, model.CategoryLow, a.PTP.Category)
	assert.Nil(t, a.CAC)
}

func TestEvaluate_InvalidCACDoesNotAffectPTP(t *testing.T) {
	a := Evaluate(Request{Age: "45", Sex: "men", Symptom: "chestPain", CAC: "-3"})
	require.True(t, a.PTP.OK)
	assert.Equal(t, 22, a.PTP.Percent)

	require.NotNil(t, a.CAC)
	assert.False(t, a.CAC.OK)
	assert.True(t, a.CAC.Flags.Blocking())
}

func TestEvaluate_NonNumericAge(t *testing.T) {
	for _, raw := range []string{"", "abc", "forty"} {
		a := Evaluate(Request{Age: raw, Sex: "men", Symptom: "chestPain"})
		assert.False(t, a.PTP.OK, "age %q", raw)
		assert.True(t, a.PTP.Flags.Blocking())
	}
}

func TestEvaluate_MissingSexIndependentOfRest(t *testing.T) {
	a := Evaluate(Request{Age: "50", Symptom: "dyspnea"})
	require.False(t, a.PTP.OK)
	assert.Equal(t, model.AgeBand50to59, a.PTP.AgeBand)
	require.Len(t, a.PTP.Flags, 1)
	assert.Contains(t, a.PTP.Flags[0].Message, "sex")
}

func TestEvaluate_Under30(t *testing.T) {
	a := Evaluate(Request{Age: "25", Sex: "men", Symptom: "chestPain"})
	require.False(t, a.PTP.OK)
	assert.Equal(t, model.AgeBandUnder30, a.PTP.AgeBand)

	found := false
	for _, f := range a.PTP.Flags {
		if f.Severity == model.SeverityBad {
			found = true
		}
	}
	assert.True(t, found, "expected a bad flag about the missing table range")
}

func TestParseAge(t *testing.T) {
	assert.Equal(t, 42.5, parseAge(" 42.5 "))
	assert.True(t, parseAge("") != parseAge("")) // NaN never equals itself
	assert.True(t, parseAge("x") != parseAge("x"))
}
