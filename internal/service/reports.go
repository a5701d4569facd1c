package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/srmendes/dashboard/internal/entity"
)

// ReportAPI is the slice of the backend the reports module needs.
type ReportAPI interface {
	ReportBundle(ctx context.Context, from, to time.Time) (entity.ReportBundle, error)
	ExportReport(ctx context.Context) (io.ReadCloser, string, error)
}

type Reports struct {
	api      ReportAPI
	fallback FallbackProvider
}

func NewReports(api ReportAPI, fallback FallbackProvider) *Reports {
	return &Reports{api: api, fallback: fallback}
}

// Bundle fetches the aggregate report. Fallback is per field: each empty
// sub-collection is replaced on its own, so one dried-up series does not
// drag the others down.
func (s *Reports) Bundle(ctx context.Context, from, to time.Time) entity.ReportBundle {
	bundle, err := s.api.ReportBundle(ctx, from, to)
	if err != nil {
		slog.WarnContext(ctx, "fetch report bundle", "error", err)
		bundle = entity.ReportBundle{}
	}

	if s.fallback == nil {
		return bundle
	}

	demo := s.fallback.ReportBundle()

	if len(bundle.TopServices) == 0 {
		bundle.TopServices = demo.TopServices
	}

	if len(bundle.RevenueSeries) == 0 {
		bundle.RevenueSeries = demo.RevenueSeries
	}

	if len(bundle.ClientFrequency) == 0 {
		bundle.ClientFrequency = demo.ClientFrequency
	}

	return bundle
}

// Export streams the backend's rendered document through. Read-only; a
// failure here never touches any local state.
func (s *Reports) Export(ctx context.Context) (io.ReadCloser, string, error) {
	return s.api.ExportReport(ctx)
}
