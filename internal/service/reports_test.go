package service_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/srmendes/dashboard/internal/demo"
	"github.com/srmendes/dashboard/internal/entity"
	"github.com/srmendes/dashboard/internal/service"
)

type fakeReportAPI struct {
	bundle func(ctx context.Context, from, to time.Time) (entity.ReportBundle, error)
	export func(ctx context.Context) (io.ReadCloser, string, error)
}

func (f *fakeReportAPI) ReportBundle(ctx context.Context, from, to time.Time) (entity.ReportBundle, error) {
	return f.bundle(ctx, from, to)
}

func (f *fakeReportAPI) ExportReport(ctx context.Context) (io.ReadCloser, string, error) {
	return f.export(ctx)
}

func TestReports_Bundle_PerFieldFallback(t *testing.T) {
	t.Parallel()

	api := &fakeReportAPI{
		bundle: func(_ context.Context, _, _ time.Time) (entity.ReportBundle, error) {
			return entity.ReportBundle{
				TopServices: []entity.ServiceStat{
					{Name: "Corte", Count: 4, Revenue: decimal.RequireFromString("140.00")},
				},
			}, nil
		},
	}

	reports := service.NewReports(api, demo.NewProvider())

	got := reports.Bundle(context.Background(), time.Time{}, time.Time{})

	// The populated field stays, the empty ones are substituted.
	require.Len(t, got.TopServices, 1)
	require.Equal(t, "Corte", got.TopServices[0].Name)

	require.Len(t, got.RevenueSeries, 7)
	require.NotEmpty(t, got.ClientFrequency)
	require.Equal(t, "Maria Oliveira", got.ClientFrequency[0].Name)
}

func TestReports_Bundle_ErrorFallsBackEverywhere(t *testing.T) {
	t.Parallel()

	api := &fakeReportAPI{
		bundle: func(_ context.Context, _, _ time.Time) (entity.ReportBundle, error) {
			return entity.ReportBundle{}, errors.New("connection refused")
		},
	}

	reports := service.NewReports(api, demo.NewProvider())

	got := reports.Bundle(context.Background(), time.Time{}, time.Time{})

	require.NotEmpty(t, got.TopServices)
	require.NotEmpty(t, got.RevenueSeries)
	require.NotEmpty(t, got.ClientFrequency)
}

func TestReports_Bundle_NoFallback(t *testing.T) {
	t.Parallel()

	api := &fakeReportAPI{
		bundle: func(_ context.Context, _, _ time.Time) (entity.ReportBundle, error) {
			return entity.ReportBundle{}, errors.New("connection refused")
		},
	}

	reports := service.NewReports(api, nil)

	got := reports.Bundle(context.Background(), time.Time{}, time.Time{})

	require.Empty(t, got.TopServices)
	require.Empty(t, got.RevenueSeries)
	require.Empty(t, got.ClientFrequency)
}

func TestReports_Export_PassesThrough(t *testing.T) {
	t.Parallel()

	api := &fakeReportAPI{
		export: func(_ context.Context) (io.ReadCloser, string, error) {
			return io.NopCloser(strings.NewReader("%PDF-1.4")), "application/pdf", nil
		},
	}

	reports := service.NewReports(api, demo.NewProvider())

	body, contentType, err := reports.Export(context.Background())
	require.NoError(t, err)

	defer body.Close()

	raw, err := io.ReadAll(body)
	require.NoError(t, err)
	require.Equal(t, "%PDF-1.4", string(raw))
	require.Equal(t, "application/pdf", contentType)
}
