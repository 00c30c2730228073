package core

import (
	"encoding/json"
	"fmt"
	"time"
)

// Label is the "Needs Anonymization" outcome shown for a column.
type Label string

// CheckName identifies the stage that produced a verdict.
type CheckName string

const (
	CheckNull           CheckName = "null"
	CheckRegexPII       CheckName = "pii_regex"
	CheckLowCardinality CheckName = "low_cardinality"
	CheckDate           CheckName = "date"
	CheckSystemID       CheckName = "system_id"
	CheckGreekWord      CheckName = "greek_word"
	CheckResidual       CheckName = "residual"
)

// Percent is a fraction in [0, 1] that may be absent.
type Percent struct {
	Value float64
	Valid bool
}

// Ratio returns num/den as a Percent. A zero denominator yields an absent value.
func Ratio(num, den int) Percent {
	if den <= 0 {
		return Percent{}
	}
	return Percent{Value: float64(num) / float64(den), Valid: true}
}

// String formats the value with two decimals, e.g. "66.67%". Absent values are "".
func (p Percent) String() string {
	if !p.Valid {
		return ""
	}
	return fmt.Sprintf("%.2f%%", p.Value*100)
}

// MarshalJSON renders the formatted string, or null when absent.
func (p Percent) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(p.String())
}

// Verdict is one row of the classification report.
type Verdict struct {
	Column     string
	Label      Label
	Reason     string // empty when absent
	Confidence Percent
	Quality    Percent
	Check      CheckName
}

type verdictJSON struct {
	Column     string  `json:"Column Name"`
	Label      Label   `json:"Needs Anonymization"`
	Reason     *string `json:"Reason"`
	Confidence Percent `json:"Confidence level"`
	Quality    Percent `json:"Input Data Quality"`
}

// MarshalJSON uses the report's display field names.
func (v Verdict) MarshalJSON() ([]byte, error) {
	out := verdictJSON{
		Column:     v.Column,
		Label:      v.Label,
		Confidence: v.Confidence,
		Quality:    v.Quality,
	}
	if v.Reason != "" {
		reason := v.Reason
		out.Reason = &reason
	}
	return json.Marshal(out)
}

// Report is the ordered list of verdicts, one per input column.
type Report []Verdict

// ReportHeader is the column header used when a report is exported as a table.
var ReportHeader = []string{"Column Name", "Needs Anonymization", "Reason", "Confidence level", "Input Data Quality"}

// Records returns the report as rows of text matching ReportHeader.
func (r Report) Records() [][]string {
	out := make([][]string, len(r))
	for i, v := range r {
		out[i] = []string{v.Column, string(v.Label), v.Reason, v.Confidence.String(), v.Quality.String()}
	}
	return out
}

// Summary counts report rows per label.
type Summary struct {
	Yes           int `json:"Yes"`
	ProbablyYes   int `json:"Probably yes"`
	No            int `json:"No"`
	NotEnoughData int `json:"Not enough data"`
}

// Total returns the number of counted columns.
func (s Summary) Total() int {
	return s.Yes + s.ProbablyYes + s.No + s.NotEnoughData
}

// Result is the outcome of one classification run.
type Result struct {
	RunID    string        `json:"runId"`
	FileName string        `json:"fileName,omitempty"`
	Rows     int           `json:"rows"`
	Columns  int           `json:"columns"`
	Summary  Summary       `json:"summary"`
	Report   Report        `json:"report"`
	Duration time.Duration `json:"-"`
}

// DurationMs returns the run duration in milliseconds.
func (r *Result) DurationMs() int64 {
	return r.Duration.Milliseconds()
}
