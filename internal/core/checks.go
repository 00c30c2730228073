package core

import (
	"regexp"
	"strings"

	"github.com/JonMunkholm/anonhelper/internal/catalog"
)

// Check inspects a single column and either claims it with a verdict or
// passes (ok == false). rows is the dataset's total row count.
type Check interface {
	Name() CheckName
	Classify(col Column, rows int) (v Verdict, ok bool)
}

// NullCheck claims columns in which every value is missing.
type NullCheck struct {
	Label  Label
	Reason string
}

func (NullCheck) Name() CheckName { return CheckNull }

func (c NullCheck) Classify(col Column, rows int) (Verdict, bool) {
	if col.NonMissing() > 0 {
		return Verdict{}, false
	}
	return Verdict{
		Column:  col.Name,
		Label:   c.Label,
		Reason:  c.Reason,
		Quality: Percent{Value: 0, Valid: true},
		Check:   CheckNull,
	}, true
}

// RegexPIICheck claims columns where a PII pattern matches at least one value.
// Patterns are tried in order and the first pattern with a match decides the
// reason; later patterns are not evaluated.
type RegexPIICheck struct {
	Patterns []catalog.NamedPattern
	Label    Label
}

func (RegexPIICheck) Name() CheckName { return CheckRegexPII }

func (c RegexPIICheck) Classify(col Column, rows int) (Verdict, bool) {
	present := col.NonMissing()
	if present == 0 {
		return Verdict{}, false
	}
	for _, p := range c.Patterns {
		matched := countMatches(col, p.Pattern)
		if matched == 0 {
			continue
		}
		return Verdict{
			Column:     col.Name,
			Label:      c.Label,
			Reason:     p.Name,
			Confidence: Ratio(matched, present),
			Quality:    Ratio(present, rows),
			Check:      CheckRegexPII,
		}, true
	}
	return Verdict{}, false
}

// LowCardinalityCheck claims columns with at most Max distinct present values.
type LowCardinalityCheck struct {
	Max    int
	Label  Label
	Reason string
}

func (LowCardinalityCheck) Name() CheckName { return CheckLowCardinality }

func (c LowCardinalityCheck) Classify(col Column, rows int) (Verdict, bool) {
	present := col.NonMissing()
	if present == 0 || col.Distinct() > c.Max {
		return Verdict{}, false
	}
	return Verdict{
		Column:  col.Name,
		Label:   c.Label,
		Reason:  c.Reason,
		Quality: Ratio(present, rows),
		Check:   CheckLowCardinality,
	}, true
}

// DateCheck claims columns where at least one value parses as a date.
//
// Columns whose name contains "BIRTH" are never claimed: birth dates are
// personal data and must not be downgraded here.
type DateCheck struct {
	Label  Label
	Reason string
}

func (DateCheck) Name() CheckName { return CheckDate }

func (c DateCheck) Classify(col Column, rows int) (Verdict, bool) {
	present := col.NonMissing()
	if present == 0 || strings.Contains(strings.ToUpper(col.Name), "BIRTH") {
		return Verdict{}, false
	}

	parsed := 0
	for _, cell := range col.Cells {
		if cell.Valid && looksLikeDate(cell.Value) {
			parsed++
		}
	}
	if parsed == 0 {
		return Verdict{}, false
	}
	return Verdict{
		Column:     col.Name,
		Label:      c.Label,
		Reason:     c.Reason,
		Confidence: Ratio(parsed, present),
		Quality:    Ratio(present, rows),
		Check:      CheckDate,
	}, true
}

// PatternCheck claims columns where Pattern matches at least one value.
// It backs both the system-ID and the Greek-word checks.
type PatternCheck struct {
	CheckName CheckName
	Pattern   *regexp.Regexp
	Label     Label
	Reason    string
}

func (c PatternCheck) Name() CheckName { return c.CheckName }

func (c PatternCheck) Classify(col Column, rows int) (Verdict, bool) {
	present := col.NonMissing()
	if present == 0 {
		return Verdict{}, false
	}
	matched := countMatches(col, c.Pattern)
	if matched == 0 {
		return Verdict{}, false
	}
	return Verdict{
		Column:     col.Name,
		Label:      c.Label,
		Reason:     c.Reason,
		Confidence: Ratio(matched, present),
		Quality:    Ratio(present, rows),
		Check:      c.CheckName,
	}, true
}

// residual labels a column no check claimed.
func residual(col Column, rows int, label Label) Verdict {
	return Verdict{
		Column:  col.Name,
		Label:   label,
		Quality: Ratio(col.NonMissing(), rows),
		Check:   CheckResidual,
	}
}

// countMatches counts present values containing a match of re.
func countMatches(col Column, re *regexp.Regexp) int {
	n := 0
	for _, cell := range col.Cells {
		if cell.Valid && matchValue(re, cell.Value) {
			n++
		}
	}
	return n
}

// matchValue reports whether re matches v. A "$" anchor also matches just
// before one trailing newline, so values typed with Alt-Enter in a
// spreadsheet cell still match anchored catalog patterns.
func matchValue(re *regexp.Regexp, v string) bool {
	if re.MatchString(v) {
		return true
	}
	trimmed, ok := strings.CutSuffix(v, "\n")
	return ok && re.MatchString(trimmed)
}
