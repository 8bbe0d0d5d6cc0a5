// Package store persists evaluated assessments for audit and review.
package store

import (
	"context"

	"github.com/cardioref/ptp-cli/internal/model"
)

// AssessmentFilter specifies criteria for listing assessments.
type AssessmentFilter struct {
	Category model.RiskCategory `json:"category,omitempty"`
	Symptom  model.Symptom      `json:"symptom,omitempty"`
	Limit    int                `json:"limit,omitempty"`
	Offset   int                `json:"offset,omitempty"`
}

// Store defines the persistence interface for the assessment history.
type Store interface {
	SaveAssessment(ctx context.Context, a model.Assessment) error
	GetAssessment(ctx context.Context, id string) (*model.Assessment, error)
	ListAssessments(ctx context.Context, filter AssessmentFilter) ([]model.Assessment, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
