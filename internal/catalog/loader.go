package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Options controls how the catalog is assembled at startup.
type Options struct {
	// Path is an optional YAML file overriding parts of the default catalog.
	Path string

	// MinUniqueValues overrides the low-cardinality ceiling when positive.
	MinUniqueValues int
}

// fileSpec mirrors Spec with optional fields so a file can override a subset.
type fileSpec struct {
	PII             []PatternSpec `yaml:"pii"`
	SystemID        *string       `yaml:"system_id"`
	GreekWord       *string       `yaml:"greek_word"`
	Labels          *Labels       `yaml:"labels"`
	Categories      *Categories   `yaml:"categories"`
	MinUniqueValues *int          `yaml:"min_unique_values"`
}

// Load builds the catalog from the defaults, the optional override file and
// the explicit options, then compiles it.
func Load(opts Options) (*Catalog, error) {
	spec := DefaultSpec()

	if opts.Path != "" {
		data, err := os.ReadFile(opts.Path)
		if err != nil {
			return nil, fmt.Errorf("read catalog file: %w", err)
		}
		if err := MergeYAML(&spec, data); err != nil {
			return nil, fmt.Errorf("catalog file %s: %w", opts.Path, err)
		}
	}

	if opts.MinUniqueValues > 0 {
		spec.MinUniqueValues = opts.MinUniqueValues
	}

	return Compile(spec)
}

// MergeYAML applies a YAML override document onto spec.
// Unknown keys are rejected. A pii list replaces the default list, including its order.
func MergeYAML(spec *Spec, data []byte) error {
	var f fileSpec
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &ConfigurationError{Field: "file", Err: err}
	}

	if len(f.PII) > 0 {
		spec.PII = f.PII
	}
	if f.SystemID != nil {
		spec.SystemID = *f.SystemID
	}
	if f.GreekWord != nil {
		spec.GreekWord = *f.GreekWord
	}
	if f.Labels != nil {
		mergeString(&spec.Labels.Yes, f.Labels.Yes)
		mergeString(&spec.Labels.ProbablyYes, f.Labels.ProbablyYes)
		mergeString(&spec.Labels.ProbablyNo, f.Labels.ProbablyNo)
		mergeString(&spec.Labels.NotEnoughData, f.Labels.NotEnoughData)
	}
	if f.Categories != nil {
		mergeString(&spec.Categories.Empty, f.Categories.Empty)
		mergeString(&spec.Categories.SystemID, f.Categories.SystemID)
		mergeString(&spec.Categories.GreekWord, f.Categories.GreekWord)
		mergeString(&spec.Categories.MinUniqueValues, f.Categories.MinUniqueValues)
		mergeString(&spec.Categories.Datetime, f.Categories.Datetime)
	}
	if f.MinUniqueValues != nil {
		spec.MinUniqueValues = *f.MinUniqueValues
	}
	return nil
}

func mergeString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
