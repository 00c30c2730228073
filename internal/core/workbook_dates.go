package core

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Layouts for workbook date cells. Both are accepted by looksLikeDate.
const (
	workbookDateTimeLayout = "2006-01-02 15:04:05"
	workbookTimeLayout     = "15:04:05"
)

// workbookDates rewrites date cells of one sheet from their stored serial,
// so the date check sees the same text whatever number format the cell uses.
type workbookDates struct {
	f        *excelize.File
	sheet    string
	date1904 bool
	styles   map[int]bool
}

func newWorkbookDates(f *excelize.File, sheet string) *workbookDates {
	d := &workbookDates{f: f, sheet: sheet, styles: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		d.date1904 = *props.Date1904
	}
	return d
}

// format returns the text for the zero-based cell (row, col) when raw is a
// serial stored under a date or time number format.
func (d *workbookDates) format(row, col int, raw string) (string, bool) {
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil || serial < 0 {
		return "", false
	}
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return "", false
	}
	styleID, err := d.f.GetCellStyle(d.sheet, cell)
	if err != nil || !d.isDateStyle(styleID) {
		return "", false
	}
	t, err := excelize.ExcelDateToTime(serial, d.date1904)
	if err != nil {
		return "", false
	}
	if serial < 1 {
		return t.Format(workbookTimeLayout), true
	}
	return t.Format(workbookDateTimeLayout), true
}

func (d *workbookDates) isDateStyle(id int) bool {
	if id == 0 {
		return false
	}
	if v, ok := d.styles[id]; ok {
		return v
	}
	v := false
	if style, err := d.f.GetStyle(id); err == nil {
		if style.CustomNumFmt != nil {
			v = isDateFormatCode(*style.CustomNumFmt)
		} else {
			v = isBuiltInDateFormat(style.NumFmt)
		}
	}
	d.styles[id] = v
	return v
}

// isBuiltInDateFormat reports whether a built-in number format ID shows a
// date or time: 14-22, 27-36, 45-47 and 50-58.
func isBuiltInDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 22,
		id >= 27 && id <= 36,
		id >= 45 && id <= 47,
		id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateFormatCode reports whether a custom format code contains date or
// time tokens outside quoted text and bracketed sections.
func isDateFormatCode(code string) bool {
	var b strings.Builder
	quoted, bracket := false, false
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case quoted:
			quoted = c != '"'
		case bracket:
			bracket = c != ']'
		case c == '"':
			quoted = true
		case c == '[':
			bracket = true
		case c == '\\' || c == '_' || c == '*':
			i++
		default:
			b.WriteByte(c)
		}
	}
	return strings.ContainsAny(strings.ToLower(b.String()), "ymdhs")
}
