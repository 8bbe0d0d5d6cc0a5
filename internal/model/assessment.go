package model

import "time"

// PatientInput echoes the raw values an assessment was computed from.
type PatientInput struct {
	Age     string `json:"age"`
	Sex     string  `json:"sex"`
	Symptom string  `json:"symptom"`
	CAC     string  `json:"cac,omitempty"`
}

// Assessment is a single evaluated patient: the input, the PTP outcome, and
// the optional CAC outcome. Assessments are what the store persists.
type Assessment struct {
	ID        string       `json:"id"`
	Input     PatientInput `json:"input"`
	PTP       PTPResult    `json:"ptp"`
	CAC       *CACResult   `json:"cac,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// Category returns the assessment's headline risk category: the PTP category
// when the lookup succeeded, otherwise the CAC category when available.
func (a Assessment) Category() RiskCategory {
	if a.PTP.OK {
		return a.PTP.Category
	}
	if a.CAC != nil && a.CAC.OK {
		return a.CAC.Category
	}
	return ""
}
