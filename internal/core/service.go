package core

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/JonMunkholm/anonhelper/internal/catalog"
	"github.com/JonMunkholm/anonhelper/internal/config"
	"github.com/JonMunkholm/anonhelper/internal/logging"
	"github.com/google/uuid"
)

// Service runs classification for uploaded files.
type Service struct {
	catalog  *catalog.Catalog
	pipeline *Pipeline
	limiter  *RunLimiter
	maxSize  int64
	timeout  time.Duration
}

// NewService creates a Service using cat for every run.
func NewService(cat *catalog.Catalog, cfg *config.Config) *Service {
	return &Service{
		catalog:  cat,
		pipeline: NewPipeline(cat),
		limiter:  NewRunLimiter(cfg.Upload.MaxConcurrent, cfg.Upload.MaxWaitTime),
		maxSize:  cfg.Upload.MaxFileSize,
		timeout:  cfg.Upload.Timeout,
	}
}

// Catalog returns the catalog the service classifies with.
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// ClassifyUpload reads fileName's content from r and classifies its columns.
// It waits for a run slot first and fails with ErrTooManyRuns when none frees up.
func (s *Service) ClassifyUpload(ctx context.Context, fileName string, r io.Reader) (*Result, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	start := time.Now()
	ds, err := ReadDataset(fileName, r, s.maxSize)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", fileName, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := s.classify(ds, start)
	result.FileName = fileName

	client := ClientFromContext(ctx)
	logging.WithFields(ctx, "run_id", result.RunID, "file", fileName).Info("classification complete",
		"rows", result.Rows,
		"columns", result.Columns,
		"yes", result.Summary.Yes,
		"probably_yes", result.Summary.ProbablyYes,
		"no", result.Summary.No,
		"not_enough_data", result.Summary.NotEnoughData,
		"duration_ms", result.DurationMs(),
		"ip", client.IP,
		"user_agent", client.UserAgent,
	)
	return result, nil
}

// ClassifyDataset classifies an already loaded dataset.
func (s *Service) ClassifyDataset(ds *Dataset) *Result {
	return s.classify(ds, time.Now())
}

func (s *Service) classify(ds *Dataset, start time.Time) *Result {
	report, summary := s.pipeline.Classify(ds)
	return &Result{
		RunID:    uuid.New().String(),
		Rows:     ds.NumRows(),
		Columns:  ds.NumColumns(),
		Summary:  summary,
		Report:   report,
		Duration: time.Since(start),
	}
}

// LimiterStatus returns the run limiter's current usage.
func (s *Service) LimiterStatus() RunLimiterStatus {
	return s.limiter.Status()
}

// WaitForRuns blocks until in-flight runs finish or ctx is done.
func (s *Service) WaitForRuns(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}
