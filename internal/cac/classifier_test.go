package cac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardioref/ptp-cli/internal/model"
)

func TestClassify_NoInput(t *testing.T) {
	assert.Nil(t, Classify(""))
	assert.Nil(t, Classify("   "))
	assert.Nil(t, Classify("\t"))
}

func TestClassify_Buckets(t *testing.T) {
	tests := []struct {
		raw      string
		bucket   string
		rng      string
		category model.RiskCategory
	}{
		{"0", "0-99", "≤15%", model.CategoryLow},
		{"50", "0-99", "≤15%", model.CategoryLow},
		{"99", "0-99", "≤15%", model.CategoryLow},
		{"99.9", "100-999", ">15–50%", model.CategoryIntermediateHigh},
		{"100", "100-999", ">15–50%", model.CategoryIntermediateHigh},
		{"999", "100-999", ">15–50%", model.CategoryIntermediateHigh},
		{"1000", "≥1000", ">50%", model.CategoryHigh},
		{"4500", "≥1000", ">50%", model.CategoryHigh},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			res := Classify(tt.raw)
			require.NotNil(t, res)
			require.True(t, res.OK)
			assert.Equal(t, tt.bucket, res.Bucket)
			assert.Equal(t, tt.rng, res.Range)
			assert.Equal(t, tt.category, res.Category)
			assert.Empty(t, res.Flags)
		})
	}
}

func TestClassify_Invalid(t *testing.T) {
	for _, raw := range []string{"-1", "-0.5", "abc", "12three", "NaN", "Inf", "+Inf"} {
		t.Run(raw, func(t *testing.T) {
			res := Classify(raw)
			require.NotNil(t, res)
			assert.False(t, res.OK)
			require.Len(t, res.Flags, 1)
			assert.Equal(t, model.SeverityBad, res.Flags[0].Severity)
		})
	}
}

func TestClassify_BoundariesContiguous(t *testing.T) {
	// Bucket boundaries are contiguous and non-overlapping over scores >= 0:
	// straddling values on either side of each boundary land in adjacent buckets.
	low := Classify("99")
	mid := Classify("99.0001")
	require.NotNil(t, low)
	require.NotNil(t, mid)
	assert.Equal(t, model.CategoryLow, low.Category)
	assert.Equal(t, model.CategoryIntermediateHigh, mid.Category)

	mid = Classify("999")
	high := Classify("999.0001")
	require.NotNil(t, mid)
	require.NotNil(t, high)
	assert.Equal(t, model.CategoryIntermediateHigh, mid.Category)
	assert.Equal(t, model.CategoryHigh, high.Category)
}

func TestClassify_ScoreEcho(t *testing.T) {
	res := Classify("  120 ")
	require.NotNil(t, res)
	require.True(t, res.OK)
	assert.Equal(t, 120.0, res.Score)
}
