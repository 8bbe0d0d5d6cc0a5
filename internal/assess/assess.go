// Package assess combines the PTP resolver and the CAC classifier into a
// single assessment record suitable for display and persistence.
package assess

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cardioref/ptp-cli/internal/cac"
	"github.com/cardioref/ptp-cli/internal/model"
	"github.com/cardioref/ptp-cli/internal/ptp"
)

// Request carries the raw string inputs for one patient evaluation, as
// received from CLI flags, CSV rows, or the HTTP API.
type Request struct {
	Age     string `json:"age"`
	Sex     string `json:"sex"`
	Symptom string `json:"symptom"`
	CAC     string `json:"cac,omitempty"`
}

// Evaluate resolves the pretest probability and, when a CAC score was
// supplied, classifies it. Both computations are pure; a CAC failure never
// affects the PTP outcome and vice versa.
func Evaluate(req Request) model.Assessment {
	age := parseAge(req.Age)
	result := ptp.Resolve(age, model.Sex(req.Sex), model.Symptom(req.Symptom))
	cacResult := cac.Classify(req.CAC)

	a := model.Assessment{
		ID: uuid.New().String(),
		Input: model.PatientInput{
			Age:     strings.TrimSpace(req.Age),
			Sex:     req.Sex,
			Symptom: req.Symptom,
			CAC:     strings.TrimSpace(req.CAC),
		},
		PTP:       result,
		CAC:       cacResult,
		CreatedAt: time.Now().UTC(),
	}

	zap.L().Debug("assess: evaluation complete",
		zap.String("id", a.ID),
		zap.Bool("ptp_ok", result.OK),
		zap.Int("percent", result.Percent),
		zap.String("category", string(a.Category())),
		zap.Bool("cac_supplied", cacResult != nil),
	)

	return a
}

// parseAge maps a raw age string to a float64, using NaN for anything the
// resolver must reject as non-numeric.
func parseAge(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return math.NaN()
	}
	age, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN()
	}
	return age
}
