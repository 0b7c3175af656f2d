package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/razdine10/Groovify/internal/domain"
)

// Requests in this file go through the full middleware chain via ServeHTTP,
// so error responses reflect what clients actually see.

func serve(srv *Server, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

func TestFinanceKPIsRoute(t *testing.T) {
	var gotRange domain.DateRange
	mock := &mockReportService{
		financeKPIsFn: func(ctx context.Context, rng domain.DateRange) (*domain.FinanceKPIs, error) {
			gotRange = rng
			return &domain.FinanceKPIs{TotalInvoices: 5, TotalRevenue: 84.75}, nil
		},
	}
	srv := newTestServer(t, mock)

	rec := serve(srv, "/api/v1/finance/kpis?from=2024-01-01&to=2024-12-31")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_revenue":84.75`)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), gotRange.From)
	assert.Equal(t, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), gotRange.To)
}

func TestFinanceKPIsRoute_BadDateIs400(t *testing.T) {
	srv := newTestServer(t, &mockReportService{})

	rec := serve(srv, "/api/v1/finance/kpis?from=not-a-date")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"type":"validation"`)
}

func TestFinanceTrendsRoute_BadGranularityIs400(t *testing.T) {
	mock := &mockReportService{
		financeTrendsFn: func(ctx context.Context, rng domain.DateRange, g domain.Granularity) ([]domain.TrendPoint, error) {
			return nil, domain.ErrBadGranularity
		},
	}
	srv := newTestServer(t, mock)

	rec := serve(srv, "/api/v1/finance/trends?granularity=fortnight")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"type":"validation"`)
}

func TestFinanceTrendsRoute_PassesGranularity(t *testing.T) {
	var gotGran domain.Granularity
	mock := &mockReportService{
		financeTrendsFn: func(ctx context.Context, rng domain.DateRange, g domain.Granularity) ([]domain.TrendPoint, error) {
			gotGran = g
			return []domain.TrendPoint{{Period: "2024", Revenue: 84.75}}, nil
		},
	}
	srv := newTestServer(t, mock)

	rec := serve(srv, "/api/v1/finance/trends?granularity=year")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.GranularityYear, gotGran)
}

func TestMusicTracksRoute_ForwardsFilter(t *testing.T) {
	var gotFilter domain.TrackFilter
	mock := &mockReportService{
		musicTracksFn: func(ctx context.Context, rng domain.DateRange, f domain.TrackFilter) ([]domain.TrackPerformance, error) {
			gotFilter = f
			return nil, nil
		},
	}
	srv := newTestServer(t, mock)

	rec := serve(srv, "/api/v1/music/tracks?min_sales=5&limit=20")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, gotFilter.MinSales)
	assert.Equal(t, 20, gotFilter.Limit)
}

func TestAlertLowTracksRoute_ForwardsThresholds(t *testing.T) {
	var gotMaxSales, gotLimit int
	mock := &mockReportService{
		alertLowTracksFn: func(ctx context.Context, maxSales, limit int) ([]domain.LowTrack, error) {
			gotMaxSales, gotLimit = maxSales, limit
			return nil, nil
		},
	}
	srv := newTestServer(t, mock)

	rec := serve(srv, "/api/v1/alerts/low-tracks?max_sales=2&limit=10")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, gotMaxSales)
	assert.Equal(t, 10, gotLimit)
}

func TestExplorerTableSummaryRoute_UnknownTableIs404(t *testing.T) {
	mock := &mockReportService{
		tableSummaryFn: func(ctx context.Context, table string) (*domain.TableSummary, error) {
			return nil, domain.ErrUnknownTable
		},
	}
	srv := newTestServer(t, mock)

	rec := serve(srv, "/api/v1/explorer/tables/nonsense")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"type":"not_found"`)
}

func TestExplorerPreviewRoute_ForwardsLimit(t *testing.T) {
	var gotTable string
	var gotLimit int
	mock := &mockReportService{
		previewFn: func(ctx context.Context, table string, limit int) (*domain.TablePreview, error) {
			gotTable, gotLimit = table, limit
			return &domain.TablePreview{Table: table}, nil
		},
	}
	srv := newTestServer(t, mock)

	rec := serve(srv, "/api/v1/explorer/tables/track/preview?limit=5")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "track", gotTable)
	assert.Equal(t, 5, gotLimit)
}

func TestMetaThemeRoute(t *testing.T) {
	srv := newTestServer(t, &mockReportService{})

	rec := serve(srv, "/api/v1/meta/theme")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"primaryColor":"#B53E84"`)
}

func TestMetaModulesRoute(t *testing.T) {
	srv := newTestServer(t, &mockReportService{})

	rec := serve(srv, "/api/v1/meta/modules")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, key := range []string{"finance", "customers", "music", "employees", "alerts", "explorer"} {
		assert.Contains(t, body, `"key":"`+key+`"`)
	}
}

func TestMetaDateBoundsRoute(t *testing.T) {
	mock := &mockReportService{
		dateBoundsFn: func(ctx context.Context) (domain.DateRange, error) {
			return domain.DateRange{
				From: time.Date(2021, 1, 8, 0, 0, 0, 0, time.UTC),
				To:   time.Date(2025, 12, 22, 0, 0, 0, 0, time.UTC),
			}, nil
		},
	}
	srv := newTestServer(t, mock)

	rec := serve(srv, "/api/v1/meta/date-bounds")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "2021-01-08")
}

func TestQueryFailureIs503(t *testing.T) {
	mock := &mockReportService{
		financeKPIsFn: func(ctx context.Context, rng domain.DateRange) (*domain.FinanceKPIs, error) {
			return nil, assert.AnError
		},
	}
	srv := newTestServer(t, mock)

	rec := serve(srv, "/api/v1/finance/kpis")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"type":"unavailable"`)
}

func TestUnknownRouteIs404(t *testing.T) {
	srv := newTestServer(t, &mockReportService{})

	rec := serve(srv, "/api/v1/nope")

	require.Equal(t, http.StatusNotFound, rec.Code)
}
