package core

import (
	"log/slog"

	"github.com/JonMunkholm/anonhelper/internal/catalog"
)

// DisplayOrder is the order in which stage outputs appear in a report.
// It differs from the execution order of Pipeline.Checks.
var DisplayOrder = []CheckName{
	CheckRegexPII,
	CheckGreekWord,
	CheckResidual,
	CheckSystemID,
	CheckDate,
	CheckLowCardinality,
	CheckNull,
}

// Pipeline runs an ordered list of checks over a dataset.
// Each column is claimed by at most one check: once claimed it is not
// offered to later checks. Columns no check claims get the residual label.
type Pipeline struct {
	checks   []Check
	residual Label
	labels   catalog.Labels
}

// NewPipeline builds the standard check battery from the catalog.
// Execution order: null, PII regex, low cardinality, date, system ID, Greek word.
func NewPipeline(cat *catalog.Catalog) *Pipeline {
	labels := cat.Labels()
	cats := cat.Categories()

	return NewPipelineWith(Label(labels.ProbablyYes), labels,
		NullCheck{Label: Label(labels.NotEnoughData), Reason: cats.Empty},
		RegexPIICheck{Patterns: cat.PIIPatterns(), Label: Label(labels.Yes)},
		LowCardinalityCheck{Max: cat.MinUniqueValues(), Label: Label(labels.ProbablyNo), Reason: cats.MinUniqueValues},
		DateCheck{Label: Label(labels.ProbablyNo), Reason: cats.Datetime},
		PatternCheck{CheckName: CheckSystemID, Pattern: cat.SystemID(), Label: Label(labels.ProbablyNo), Reason: cats.SystemID},
		PatternCheck{CheckName: CheckGreekWord, Pattern: cat.GreekWord(), Label: Label(labels.ProbablyYes), Reason: cats.GreekWord},
	)
}

// NewPipelineWith creates a pipeline from explicit checks. Execution order
// matches argument order; residual labels unclaimed columns.
func NewPipelineWith(residual Label, labels catalog.Labels, checks ...Check) *Pipeline {
	return &Pipeline{checks: checks, residual: residual, labels: labels}
}

// Checks returns the check names in execution order.
func (p *Pipeline) Checks() []CheckName {
	names := make([]CheckName, len(p.checks))
	for i, c := range p.checks {
		names[i] = c.Name()
	}
	return names
}

// Run classifies every column of ds and returns the report in DisplayOrder.
// An empty dataset yields an empty report.
func (p *Pipeline) Run(ds *Dataset) Report {
	n := ds.NumColumns()
	rows := ds.NumRows()
	claimed := make([]bool, n)
	stages := make(map[CheckName][]Verdict, len(p.checks)+1)

	for _, check := range p.checks {
		name := check.Name()
		for i := 0; i < n; i++ {
			if claimed[i] {
				continue
			}
			v, ok := check.Classify(ds.Column(i), rows)
			if !ok {
				continue
			}
			claimed[i] = true
			stages[name] = append(stages[name], v)
		}
		slog.Debug("classification stage", "check", name, "claimed", len(stages[name]))
	}

	for i := 0; i < n; i++ {
		if !claimed[i] {
			stages[CheckResidual] = append(stages[CheckResidual], residual(ds.Column(i), rows, p.residual))
		}
	}

	report := make(Report, 0, n)
	for _, name := range displaySequence(p.checks) {
		report = append(report, stages[name]...)
	}
	return report
}

// Classify runs the pipeline and tallies the report.
func (p *Pipeline) Classify(ds *Dataset) (Report, Summary) {
	report := p.Run(ds)
	return report, Summarize(report, p.labels)
}

// displaySequence returns DisplayOrder followed by any custom check names
// it does not list, so no stage output is ever dropped.
func displaySequence(checks []Check) []CheckName {
	seq := make([]CheckName, 0, len(DisplayOrder)+len(checks))
	listed := make(map[CheckName]bool, len(DisplayOrder))
	for _, name := range DisplayOrder {
		seq = append(seq, name)
		listed[name] = true
	}
	for _, c := range checks {
		if name := c.Name(); !listed[name] {
			seq = append(seq, name)
			listed[name] = true
		}
	}
	return seq
}
