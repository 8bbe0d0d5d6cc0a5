package model

// Severity ranks a validation flag. Bad blocks computation, Warn is advisory,
// Info is purely informational.
type Severity string

const (
	SeverityInfo Severity = "info"
	SeverityWarn Severity = "warn"
	SeverityBad  Severity = "bad"
)

// severityRank orders severities for worst-of comparison. Higher is worse.
var severityRank = map[Severity]int{
	SeverityInfo: 0,
	SeverityWarn: 1,
	SeverityBad:  2,
}

// Flag is a single diagnostic finding attached to a resolver or classifier call.
type Flag struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Flags is an ordered sequence of findings collected during validation.
type Flags []Flag

// Add appends a finding and returns the extended sequence.
func (f Flags) Add(severity Severity, message string) Flags {
	return append(f, Flag{Severity: severity, Message: message})
}

// Worst returns the highest severity present, or SeverityInfo for an empty list.
func (f Flags) Worst() Severity {
	worst := SeverityInfo
	for _, fl := range f {
		if severityRank[fl.Severity] > severityRank[worst] {
			worst = fl.Severity
		}
	}
	return worst
}

// Blocking reports whether any bad-level flag is present.
func (f Flags) Blocking() bool {
	return f.Worst() == SeverityBad
}

// Messages returns the flag messages in order, for CSV and log output.
func (f Flags) Messages() []string {
	if len(f) == 0 {
		return nil
	}
	out := make([]string, len(f))
	for i, fl := range f {
		out[i] = fl.Message
	}
	return out
}
