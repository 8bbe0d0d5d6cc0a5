// Package cac buckets a coronary artery calcium score into a coronary artery
// disease probability range.
package cac

import (
	"math"
	"strconv"
	"strings"

	"github.com/cardioref/ptp-cli/internal/model"
)

// Bucket boundaries are contiguous and non-overlapping over scores >= 0.
const (
	lowMax          = 99
	intermediateMax = 999
)

// Classify buckets a raw CAC score. A nil result means no score was supplied
// and no CAC section applies. Non-numeric, non-finite, or negative input
// yields a failure result with a bad flag; the failure is confined to the CAC
// result and never affects a PTP result computed alongside it.
func Classify(raw string) *model.CACResult {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	score, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(score) || math.IsInf(score, 0) || score < 0 {
		return &model.CACResult{
			Flags: model.Flags{}.Add(model.SeverityBad, "CAC score must be a number of 0 or greater"),
		}
	}

	return classifyScore(score)
}

func classifyScore(score float64) *model.CACResult {
	res := &model.CACResult{OK: true, Score: score}
	switch {
	case score <= lowMax:
		res.Bucket = "0-99"
		res.Range = "≤15%"
		res.Category = model.CategoryLow
	case score <= intermediateMax:
		res.Bucket = "100-999"
		res.Range = ">15–50%"
		res.Category = model.CategoryIntermediateHigh
	default:
		res.Bucket = "≥1000"
		res.Range = ">50%"
		res.Category = model.CategoryHigh
	}
	return res
}
