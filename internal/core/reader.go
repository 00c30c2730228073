package core

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrUnsupportedFormat is returned for file extensions the reader does not handle.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrEmptyFile is returned when an upload has no header row.
	ErrEmptyFile = errors.New("empty file")

	// ErrFileTooLarge is returned when an upload exceeds the configured size.
	ErrFileTooLarge = errors.New("file too large")
)

// Format is a supported upload format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatXLSX Format = "xlsx"
)

// DetectFormat maps a file name to its format by extension.
func DetectFormat(fileName string) (Format, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".tsv", ".tab":
		return FormatTSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(fileName))
	}
}

// ReadDataset reads an uploaded file into a dataset. The first row is the
// header; every later row is data. For workbooks only the first sheet is read.
// limit caps the number of bytes consumed (<= 0 disables the cap).
func ReadDataset(fileName string, r io.Reader, limit int64) (*Dataset, error) {
	format, err := DetectFormat(fileName)
	if err != nil {
		return nil, err
	}

	var records [][]string
	switch format {
	case FormatXLSX:
		records, err = readWorkbook(r, limit)
	case FormatTSV:
		records, err = readDelimited(r, limit, '\t')
	default:
		records, err = readDelimited(r, limit, ',')
	}
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, ErrEmptyFile
	}
	return FromRecords(records[0], records[1:]), nil
}

// readDelimited parses comma or tab separated text through the upload wrappers.
func readDelimited(r io.Reader, limit int64, comma rune) ([][]string, error) {
	wrapped, _ := WrapUpload(r, limit)

	cr := csv.NewReader(wrapped)
	cr.Comma = comma
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = false

	var records [][]string
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if errors.Is(err, ErrFileTooLarge) {
				return nil, ErrFileTooLarge
			}
			return nil, fmt.Errorf("invalid csv: %w", err)
		}
		records = append(records, record)
	}
	return trimBlankRows(records), nil
}

// workbookExpansion bounds how far an xlsx upload may inflate when unzipped,
// relative to the upload size limit.
const workbookExpansion = 20

// workbookOptions derives excelize unzip limits from the upload size limit.
// limit <= 0 keeps the excelize defaults.
func workbookOptions(limit int64) excelize.Options {
	if limit <= 0 {
		return excelize.Options{}
	}
	unzip := limit * workbookExpansion
	xml := int64(16 << 20)
	if xml > unzip {
		xml = unzip
	}
	return excelize.Options{UnzipSizeLimit: unzip, UnzipXMLSizeLimit: xml}
}

// readWorkbook returns the rows of the first sheet of an xlsx workbook.
func readWorkbook(r io.Reader, limit int64) ([][]string, error) {
	return readWorkbookWith(NewSizeLimitReader(r, limit), workbookOptions(limit))
}

func readWorkbookWith(r io.Reader, opts excelize.Options) ([][]string, error) {
	f, err := excelize.OpenReader(r, opts)
	if err != nil {
		// excelize reports the unzip cap as a plain error.
		if errors.Is(err, ErrFileTooLarge) || strings.Contains(err.Error(), "unzip size") {
			return nil, ErrFileTooLarge
		}
		return nil, fmt.Errorf("invalid workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	// Date cells come back in their display format, which varies with the
	// cell's number format. Rewrite them from the stored serial instead.
	dates := newWorkbookDates(f, sheet)
	for i := 1; i < len(rows) && i < len(raw); i++ {
		for j := range rows[i] {
			if j >= len(raw[i]) || rows[i][j] == raw[i][j] {
				continue
			}
			if v, ok := dates.format(i, j, raw[i][j]); ok {
				rows[i][j] = v
			}
		}
	}
	return trimBlankRows(rows), nil
}

// trimBlankRows drops trailing rows with no content, which spreadsheet
// exports often append.
func trimBlankRows(records [][]string) [][]string {
	end := len(records)
	for end > 0 && isBlankRow(records[end-1]) {
		end--
	}
	return records[:end]
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
