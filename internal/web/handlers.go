package web

import (
	"encoding/csv"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/JonMunkholm/anonhelper/internal/core"
)

// multipartOverhead is allowed on top of the file size limit for form
// boundaries and other fields.
const multipartOverhead = 1 << 20

// maxMemory is the part of a multipart form held in memory; the rest spills to disk.
const maxMemory = 32 << 20

// classifyResponse is the JSON body of POST /api/classify.
type classifyResponse struct {
	RunID      string       `json:"runId"`
	FileName   string       `json:"fileName"`
	Rows       int          `json:"rows"`
	Columns    int          `json:"columns"`
	DurationMs int64        `json:"durationMs"`
	Summary    core.Summary `json:"summary"`
	Report     core.Report  `json:"report"`
}

func toResponse(res *core.Result) classifyResponse {
	return classifyResponse{
		RunID:      res.RunID,
		FileName:   res.FileName,
		Rows:       res.Rows,
		Columns:    res.Columns,
		DurationMs: res.DurationMs(),
		Summary:    res.Summary,
		Report:     res.Report,
	}
}

// handleIndex renders the upload page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, uploadPage(s.service.Catalog().Describe(), s.cfg.Upload.MaxFileSize))
}

// handleClassifyPage classifies an uploaded file and renders the results page.
func (s *Server) handleClassifyPage(w http.ResponseWriter, r *http.Request) {
	result, err := s.classifyRequest(w, r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	render(w, r, http.StatusOK, resultsPage(result))
}

// handleClassifyAPI classifies an uploaded file and returns the report as
// JSON, or as CSV with ?format=csv.
func (s *Server) handleClassifyAPI(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format != "" && format != "json" && format != "csv" {
		respondError(w, r, &core.UserError{
			Technical: fmt.Errorf("unknown report format %q", format),
			User: core.UserMessage{
				Message: fmt.Sprintf("Unknown format %q", format),
				Action:  "Use format=json or format=csv",
				Code:    "REQ001",
			},
		})
		return
	}

	result, err := s.classifyRequest(w, r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if format == "csv" {
		s.writeReportCSV(w, r, result)
		return
	}
	writeJSON(w, r, http.StatusOK, toResponse(result))
}

// handleCatalog describes the active pattern catalog.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.service.Catalog().Describe())
}

// handleHealth reports liveness and run slot usage.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"status": "ok",
		"runs":   s.service.LimiterStatus(),
	})
}

// classifyRequest reads the "file" form field and runs the classifier on it.
func (s *Server) classifyRequest(w http.ResponseWriter, r *http.Request) (*core.Result, error) {
	file, header, err := s.formFile(w, r)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return s.service.ClassifyUpload(withClient(r), header.Filename, file)
}

// formFile parses the multipart body under the upload size limit.
func (s *Server) formFile(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize+multipartOverhead)

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return nil, nil, fmt.Errorf("parse upload: %w", core.ErrFileTooLarge)
		}
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			return nil, nil, core.ErrNoFile
		}
		return nil, nil, fmt.Errorf("parse upload: %w", err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, core.ErrNoFile
		}
		return nil, nil, fmt.Errorf("form file: %w", err)
	}
	if header.Size > s.cfg.Upload.MaxFileSize {
		file.Close()
		return nil, nil, core.ErrFileTooLarge
	}
	return file, header, nil
}

// writeReportCSV streams the report as a CSV attachment named after the upload.
func (s *Server) writeReportCSV(w http.ResponseWriter, r *http.Request, result *core.Result) {
	base := strings.TrimSuffix(filepath.Base(result.FileName), filepath.Ext(result.FileName))
	if base == "" || base == "." {
		base = "report"
	}
	filename := fmt.Sprintf("%s_classification_%s.csv", sanitizeFilename(base), time.Now().Format("20060102_150405"))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("X-Run-Id", result.RunID)

	cw := csv.NewWriter(w)
	cw.Write(core.ReportHeader)
	cw.WriteAll(result.Report.Records())
	if err := cw.Error(); err != nil {
		requestLogger(r).Error("csv write failed", "run_id", result.RunID, "error", err)
	}
}

// sanitizeFilename keeps letters, digits, dash and underscore.
func sanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
