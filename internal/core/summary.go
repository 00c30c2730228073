package core

import "github.com/JonMunkholm/anonhelper/internal/catalog"

// Summarize counts verdicts per label in a single pass over the report.
// Verdicts whose label is not one of the four catalog labels are not counted.
func Summarize(report Report, labels catalog.Labels) Summary {
	var s Summary
	for _, v := range report {
		switch string(v.Label) {
		case labels.Yes:
			s.Yes++
		case labels.ProbablyYes:
			s.ProbablyYes++
		case labels.ProbablyNo:
			s.No++
		case labels.NotEnoughData:
			s.NotEnoughData++
		}
	}
	return s
}
