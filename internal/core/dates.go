package core

// dates.go recognizes date-like cell values for the date check.
//
// Spreadsheet exports carry dates in many shapes:
//   - US, EU and ISO day/month/year orders with /, -, . separators
//   - two-digit years
//   - month names ("Jan 15, 2024", "15 January 2024")
//   - timestamps with a time part, with or without zone
//   - Excel display formats such as "10-Jan-24", "Jan-24" and "1/10/24 09:30"
//
// Only the parse outcome matters here; the parsed time is never stored.

import (
	"strings"
	"time"
)

// Date layouts split by year format for proper 2-digit year handling
var (
	twoDigitYearLayouts = []string{
		"1/2/06", "01/02/06", "1-2-06", "1.2.06", "01.02.06",
		"2-Jan-06", "02-Jan-06", "Jan-06",
	}
	fourDigitYearLayouts = []string{
		"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006", "1.2.2006", "01.02.2006",
		"2/1/2006", "02/01/2006", "2-1-2006", "02-01-2006", "2.1.2006", "02.01.2006",
		"2006-01-02", "2006/01/02", "2006.01.02", "2006-1-2", "2006/1/2",
		"Jan 2, 2006", "January 2, 2006", "2 Jan 2006", "2 January 2006", "02-Jan-2006",
		"Jan 2006", "January 2006",
		"20060102",
	}
	timestampLayouts = []string{
		time.RFC3339,
		time.RFC3339Nano,
		time.RFC1123,
		time.RFC1123Z,
		time.ANSIC,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05.999999999",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02 15:04",
		"2006/01/02 15:04:05",
		"1/2/2006 15:04:05",
		"1/2/2006 15:04",
		"2/1/2006 15:04:05",
		"2/1/2006 15:04",
		"02.01.2006 15:04:05",
		"02.01.2006 15:04",
		"1/2/2006 3:04:05 PM",
		"1/2/2006 3:04 PM",
		"1/2/06 15:04",
		"Jan 2, 2006 3:04 PM",
		"January 2, 2006 3:04 PM",
		"15:04:05",
	}
)

// looksLikeDate reports whether s parses with any known date or timestamp layout.
func looksLikeDate(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}

	for _, layout := range fourDigitYearLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	for _, layout := range timestampLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	for _, layout := range twoDigitYearLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
