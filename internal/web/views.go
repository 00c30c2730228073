package web

// Pages live in views.templ; views_templ.go is generated from it.
//go:generate templ generate -f views.templ

import (
	"fmt"
	"net/http"

	"github.com/JonMunkholm/anonhelper/internal/core"
	"github.com/a-h/templ"
)

// render writes component as an HTML response.
func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		requestLogger(r).Error("render failed", "error", err)
	}
}

type summaryRow struct {
	label string
	count int
}

// summaryRows orders the tally for the "Needs anonymization" table.
func summaryRows(s core.Summary) []summaryRow {
	return []summaryRow{
		{"Yes", s.Yes},
		{"Probably yes", s.ProbablyYes},
		{"No", s.No},
		{"Not enough data", s.NotEnoughData},
	}
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
