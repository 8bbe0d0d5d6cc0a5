package model

// PTPResult is the outcome of a pretest-probability lookup. OK is false when
// validation raised a bad-level flag; a failed result still reports the age
// band when one could be computed. A successful result never carries a
// bad-level flag.
type PTPResult struct {
	OK       bool         `json:"ok"`
	Percent  int          `json:"percent,omitempty"`
	Display  string       `json:"display,omitempty"`
	Category RiskCategory `json:"category,omitempty"`
	AgeBand  AgeBand      `json:"age_band,omitempty"`
	Flags    Flags        `json:"flags,omitempty"`
}

// CACResult is the outcome of classifying a coronary artery calcium score.
// A nil *CACResult means no score was supplied and no CAC section applies.
type CACResult struct {
	OK       bool         `json:"ok"`
	Score    float64      `json:"score,omitempty"`
	Bucket   string       `json:"bucket,omitempty"`
	Range    string       `json:"range,omitempty"`
	Category RiskCategory `json:"category,omitempty"`
	Flags    Flags        `json:"flags,omitempty"`
}
