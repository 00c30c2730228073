package core

import (
	"testing"

	"github.com/JonMunkholm/anonhelper/internal/catalog"
)

// col builds a column from raw text, treating NA tokens as missing.
func col(name string, values ...string) Column {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = ParseCell(v)
	}
	return Column{Name: name, Cells: cells}
}

func defaultChecks(t *testing.T) map[CheckName]Check {
	t.Helper()
	p := NewPipeline(catalog.MustDefault())
	checks := make(map[CheckName]Check, len(p.checks))
	for _, c := range p.checks {
		checks[c.Name()] = c
	}
	return checks
}

func TestNullCheck(t *testing.T) {
	c := defaultChecks(t)[CheckNull]

	v, ok := c.Classify(col("empty", "", "NULL", "nan"), 3)
	if !ok {
		t.Fatal("all-missing column should be claimed")
	}
	if v.Label != "Not enough data" || v.Reason != "Empty column" {
		t.Errorf("got %q/%q, want Not enough data/Empty column", v.Label, v.Reason)
	}
	if v.Confidence.Valid {
		t.Errorf("Confidence = %q, want absent", v.Confidence)
	}
	if v.Quality.String() != "0.00%" {
		t.Errorf("Quality = %q, want 0.00%%", v.Quality)
	}

	if _, ok := c.Classify(col("one", "", "x"), 2); ok {
		t.Error("column with a value should not be claimed")
	}

	if _, ok := c.Classify(Column{Name: "norows"}, 0); !ok {
		t.Error("zero-row column should be claimed")
	}
}

func TestRegexPIICheck(t *testing.T) {
	c := defaultChecks(t)[CheckRegexPII]

	tests := []struct {
		name           string
		column         Column
		rows           int
		wantOK         bool
		wantReason     string
		wantConfidence string
		wantQuality    string
	}{
		{
			name:           "msisdn all rows",
			column:         col("phone", "6912345678", "6998765432", "", ""),
			rows:           4,
			wantOK:         true,
			wantReason:     "MSISDN",
			wantConfidence: "100.00%",
			wantQuality:    "50.00%",
		},
		{
			name:           "msisdn beats email",
			column:         col("contact", "6912345678", "a@b.gr", "b@c.gr"),
			rows:           3,
			wantOK:         true,
			wantReason:     "MSISDN",
			wantConfidence: "33.33%",
			wantQuality:    "100.00%",
		},
		{
			name:           "landline",
			column:         col("tel", "2101234567", "other"),
			rows:           2,
			wantOK:         true,
			wantReason:     "CLI",
			wantConfidence: "50.00%",
			wantQuality:    "100.00%",
		},
		{
			name:           "email",
			column:         col("mail", "jane@example.com", "joe@example.org", "n/a"),
			rows:           3,
			wantOK:         true,
			wantReason:     "Email",
			wantConfidence: "100.00%",
			wantQuality:    "66.67%",
		},
		{
			name:           "tax id",
			column:         col("afm", "012345678", "123456789", "x"),
			rows:           3,
			wantOK:         true,
			wantReason:     "AFM",
			wantConfidence: "66.67%",
			wantQuality:    "100.00%",
		},
		{
			name:           "msisdn with trailing newline",
			column:         col("phone", "6912345678\n", "6998765432\n"),
			rows:           2,
			wantOK:         true,
			wantReason:     "MSISDN",
			wantConfidence: "100.00%",
			wantQuality:    "100.00%",
		},
		{
			name:   "two trailing newlines",
			column: col("phone", "6912345678\n\n"),
			rows:   1,
			wantOK: false,
		},
		{
			name:   "no match",
			column: col("name", "Alice", "Bob"),
			rows:   2,
			wantOK: false,
		},
		{
			name:   "all missing",
			column: col("blank", "", ""),
			rows:   2,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := c.Classify(tt.column, tt.rows)
			if ok != tt.wantOK {
				t.Fatalf("claimed = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if v.Label != "Yes" {
				t.Errorf("Label = %q, want Yes", v.Label)
			}
			if v.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", v.Reason, tt.wantReason)
			}
			if v.Confidence.String() != tt.wantConfidence {
				t.Errorf("Confidence = %q, want %q", v.Confidence, tt.wantConfidence)
			}
			if v.Quality.String() != tt.wantQuality {
				t.Errorf("Quality = %q, want %q", v.Quality, tt.wantQuality)
			}
		})
	}
}

func TestLowCardinalityCheck(t *testing.T) {
	c := defaultChecks(t)[CheckLowCardinality]

	v, ok := c.Classify(col("country", "GR", "GR", "GR", "GR"), 4)
	if !ok {
		t.Fatal("single-valued column should be claimed")
	}
	if v.Label != "Probably No" || v.Reason != "Less than 3 unique values" {
		t.Errorf("got %q/%q", v.Label, v.Reason)
	}
	if v.Confidence.Valid {
		t.Error("Confidence should be absent")
	}
	if v.Quality.String() != "100.00%" {
		t.Errorf("Quality = %q, want 100.00%%", v.Quality)
	}

	if _, ok := c.Classify(col("three", "a", "b", "c", ""), 4); !ok {
		t.Error("exactly three distinct values should be claimed")
	}
	if _, ok := c.Classify(col("four", "a", "b", "c", "d"), 4); ok {
		t.Error("four distinct values should not be claimed")
	}
	if _, ok := c.Classify(col("blank", "", ""), 2); ok {
		t.Error("all-missing column should not be claimed")
	}
}

func TestDateCheck(t *testing.T) {
	c := defaultChecks(t)[CheckDate]

	v, ok := c.Classify(col("created", "2024-01-15", "15/01/2024", "soon", ""), 4)
	if !ok {
		t.Fatal("date column should be claimed")
	}
	if v.Label != "Probably No" || v.Reason != "Datetime value" {
		t.Errorf("got %q/%q", v.Label, v.Reason)
	}
	if v.Confidence.String() != "66.67%" {
		t.Errorf("Confidence = %q, want 66.67%%", v.Confidence)
	}
	if v.Quality.String() != "75.00%" {
		t.Errorf("Quality = %q, want 75.00%%", v.Quality)
	}

	for _, name := range []string{"DATE_OF_BIRTH", "birthdate", "Birth Day"} {
		if _, ok := c.Classify(col(name, "1990-05-01", "1985-12-31"), 2); ok {
			t.Errorf("column %q should never be claimed", name)
		}
	}

	if _, ok := c.Classify(col("notes", "hello", "world"), 2); ok {
		t.Error("column without dates should not be claimed")
	}

	// A single incidental date is enough.
	v, ok = c.Classify(col("notes", "hello", "world", "2020-02-02", "x"), 4)
	if !ok {
		t.Fatal("one parseable value should claim the column")
	}
	if v.Confidence.String() != "25.00%" {
		t.Errorf("Confidence = %q, want 25.00%%", v.Confidence)
	}
}

func TestSystemIDCheck(t *testing.T) {
	c := defaultChecks(t)[CheckSystemID]

	v, ok := c.Classify(col("row_id", "1-AB23-XYZ", "1-CD99", "1-EF.12", "free text"), 4)
	if !ok {
		t.Fatal("system id column should be claimed")
	}
	if v.Label != "Probably No" || v.Reason != "System generated ID" {
		t.Errorf("got %q/%q", v.Label, v.Reason)
	}
	if v.Confidence.String() != "75.00%" {
		t.Errorf("Confidence = %q, want 75.00%%", v.Confidence)
	}

	if _, ok := c.Classify(col("codes", "2-AB", "1-ab"), 2); ok {
		t.Error("lowercase or wrong prefix should not be claimed")
	}
}

func TestGreekWordCheck(t *testing.T) {
	c := defaultChecks(t)[CheckGreekWord]

	v, ok := c.Classify(col("city", "Αθήνα", "Athens", "Θεσσαλονίκη", ""), 4)
	if !ok {
		t.Fatal("greek column should be claimed")
	}
	if v.Label != "Probably Yes" || v.Reason != "Greek word" {
		t.Errorf("got %q/%q", v.Label, v.Reason)
	}
	if v.Confidence.String() != "66.67%" {
		t.Errorf("Confidence = %q, want 66.67%%", v.Confidence)
	}
	if v.Quality.String() != "75.00%" {
		t.Errorf("Quality = %q, want 75.00%%", v.Quality)
	}

	if _, ok := c.Classify(col("city", "Athens", "Patras"), 2); ok {
		t.Error("latin text should not be claimed")
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		num, den int
		want     string
	}{
		{0, 4, "0.00%"},
		{1, 3, "33.33%"},
		{2, 3, "66.67%"},
		{4, 4, "100.00%"},
		{1, 0, ""},
	}
	for _, tt := range tests {
		if got := Ratio(tt.num, tt.den).String(); got != tt.want {
			t.Errorf("Ratio(%d, %d) = %q, want %q", tt.num, tt.den, got, tt.want)
		}
	}
}
