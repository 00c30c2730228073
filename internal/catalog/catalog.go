// Package catalog holds the pattern catalog used by the column classifier.
//
// A Catalog is built once at startup, either from the built-in defaults or
// from a YAML override file, and is read-only afterwards. Every pattern is
// compiled while the catalog is built so a malformed expression stops the
// process before any upload is accepted.
package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DefaultMinUniqueValues is the distinct-value ceiling for the low-cardinality check.
const DefaultMinUniqueValues = 3

// Labels are the display strings for the four classification outcomes.
type Labels struct {
	Yes           string `yaml:"yes" json:"yes"`
	ProbablyYes   string `yaml:"probably_yes" json:"probablyYes"`
	ProbablyNo    string `yaml:"probably_no" json:"probablyNo"`
	NotEnoughData string `yaml:"dk_na" json:"notEnoughData"`
}

// Categories are the fixed reason strings attached to verdicts.
type Categories struct {
	Empty           string `yaml:"empty" json:"empty"`
	SystemID        string `yaml:"system_id" json:"systemId"`
	GreekWord       string `yaml:"greek_word" json:"greekWord"`
	MinUniqueValues string `yaml:"min_unique_values" json:"minUniqueValues"`
	Datetime        string `yaml:"datetime" json:"datetime"`
}

// PatternSpec is an uncompiled, named regular expression.
type PatternSpec struct {
	Name string `yaml:"name" json:"name"`
	Expr string `yaml:"expr" json:"expr"`
}

// Spec is the uncompiled form of a Catalog.
type Spec struct {
	// PII patterns are tried in slice order; the first one with a match wins.
	PII             []PatternSpec `yaml:"pii"`
	SystemID        string        `yaml:"system_id"`
	GreekWord       string        `yaml:"greek_word"`
	Labels          Labels        `yaml:"labels"`
	Categories      Categories    `yaml:"categories"`
	MinUniqueValues int           `yaml:"min_unique_values"`
}

// NamedPattern is a compiled PII pattern.
type NamedPattern struct {
	Name    string
	Pattern *regexp.Regexp
}

// Catalog is the compiled, immutable pattern catalog.
type Catalog struct {
	pii             []NamedPattern
	systemID        *regexp.Regexp
	greekWord       *regexp.Regexp
	labels          Labels
	categories      Categories
	minUniqueValues int
}

// ConfigurationError reports an invalid catalog entry.
type ConfigurationError struct {
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("catalog %s: %v", e.Field, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// DefaultSpec returns the built-in catalog definition.
func DefaultSpec() Spec {
	return Spec{
		PII: []PatternSpec{
			{Name: "MSISDN", Expr: `^(?:\+30)?69\d{8}$`},
			{Name: "CLI", Expr: `^(?:\+30)?2\d{9}$`},
			{Name: "Email", Expr: `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`},
			{Name: "AFM", Expr: `^[0-4|7-9]\d{8}$`},
		},
		SystemID:  `^1-[A-Z0-9]+([-.\w]+)*$`,
		GreekWord: `[\x{0370}-\x{03FF}\x{1F00}-\x{1FFF}]+`,
		Labels: Labels{
			Yes:           "Yes",
			ProbablyYes:   "Probably Yes",
			ProbablyNo:    "Probably No",
			NotEnoughData: "Not enough data",
		},
		Categories: Categories{
			Empty:           "Empty column",
			SystemID:        "System generated ID",
			GreekWord:       "Greek word",
			MinUniqueValues: "Less than 3 unique values",
			Datetime:        "Datetime value",
		},
		MinUniqueValues: DefaultMinUniqueValues,
	}
}

// Default compiles the built-in catalog.
func Default() (*Catalog, error) {
	return Compile(DefaultSpec())
}

// MustDefault compiles the built-in catalog and panics on error.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(fmt.Sprintf("compile default catalog: %v", err))
	}
	return c
}

// Compile validates spec and compiles all of its patterns.
// All problems are reported together; each is a *ConfigurationError.
func Compile(spec Spec) (*Catalog, error) {
	var errs []error
	fail := func(field string, err error) {
		errs = append(errs, &ConfigurationError{Field: field, Err: err})
	}

	c := &Catalog{
		labels:          spec.Labels,
		categories:      spec.Categories,
		minUniqueValues: spec.MinUniqueValues,
	}

	if len(spec.PII) == 0 {
		fail("pii", errors.New("at least one pattern is required"))
	}
	seen := make(map[string]bool, len(spec.PII))
	for i, p := range spec.PII {
		field := fmt.Sprintf("pii[%d]", i)
		name := strings.TrimSpace(p.Name)
		if name == "" {
			fail(field, errors.New("pattern name is empty"))
			continue
		}
		field += " " + name
		if seen[name] {
			fail(field, errors.New("duplicate pattern name"))
			continue
		}
		seen[name] = true

		re, err := compile(p.Expr)
		if err != nil {
			fail(field, err)
			continue
		}
		c.pii = append(c.pii, NamedPattern{Name: name, Pattern: re})
	}

	var err error
	if c.systemID, err = compile(spec.SystemID); err != nil {
		fail("system_id", err)
	}
	if c.greekWord, err = compile(spec.GreekWord); err != nil {
		fail("greek_word", err)
	}

	labels := map[string]string{
		"labels.yes":          spec.Labels.Yes,
		"labels.probably_yes": spec.Labels.ProbablyYes,
		"labels.probably_no":  spec.Labels.ProbablyNo,
		"labels.dk_na":        spec.Labels.NotEnoughData,
	}
	used := make(map[string]string, len(labels))
	for _, field := range []string{"labels.yes", "labels.probably_yes", "labels.probably_no", "labels.dk_na"} {
		v := labels[field]
		if v == "" {
			fail(field, errors.New("label is empty"))
			continue
		}
		// Summary tallies count by label text, so labels must stay distinct.
		if other, ok := used[v]; ok {
			fail(field, fmt.Errorf("label %q already used by %s", v, other))
			continue
		}
		used[v] = field
	}

	if spec.MinUniqueValues < 0 {
		fail("min_unique_values", fmt.Errorf("must be non-negative, got %d", spec.MinUniqueValues))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return c, nil
}

func compile(expr string) (*regexp.Regexp, error) {
	if expr == "" {
		return nil, errors.New("pattern is empty")
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", expr, err)
	}
	return re, nil
}

// PIIPatterns returns the PII patterns in match priority order.
func (c *Catalog) PIIPatterns() []NamedPattern {
	out := make([]NamedPattern, len(c.pii))
	copy(out, c.pii)
	return out
}

// SystemID returns the system-generated identifier shape.
func (c *Catalog) SystemID() *regexp.Regexp { return c.systemID }

// GreekWord returns the Greek-script shape.
func (c *Catalog) GreekWord() *regexp.Regexp { return c.greekWord }

// Labels returns the outcome display strings.
func (c *Catalog) Labels() Labels { return c.labels }

// Categories returns the reason strings.
func (c *Catalog) Categories() Categories { return c.categories }

// MinUniqueValues returns the low-cardinality ceiling.
func (c *Catalog) MinUniqueValues() int { return c.minUniqueValues }

// Info is a serializable description of a catalog.
type Info struct {
	PII             []PatternSpec `json:"pii"`
	SystemID        string        `json:"systemId"`
	GreekWord       string        `json:"greekWord"`
	Labels          Labels        `json:"labels"`
	Categories      Categories    `json:"categories"`
	MinUniqueValues int           `json:"minUniqueValues"`
}

// Describe returns the catalog contents with patterns in source form.
func (c *Catalog) Describe() Info {
	info := Info{
		PII:             make([]PatternSpec, len(c.pii)),
		SystemID:        c.systemID.String(),
		GreekWord:       c.greekWord.String(),
		Labels:          c.labels,
		Categories:      c.categories,
		MinUniqueValues: c.minUniqueValues,
	}
	for i, p := range c.pii {
		info.PII[i] = PatternSpec{Name: p.Name, Expr: p.Pattern.String()}
	}
	return info
}
