package server

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"

	"github.com/razdine10/Groovify/internal/config"
	"github.com/razdine10/Groovify/internal/domain"
)

// --- Mock implementation ---

// mockReportService implements reportService. Methods with an fn field can
// be overridden per test; everything else returns empty results.
type mockReportService struct {
	dateBoundsFn     func(ctx context.Context) (domain.DateRange, error)
	financeKPIsFn    func(ctx context.Context, rng domain.DateRange) (*domain.FinanceKPIs, error)
	financeTrendsFn  func(ctx context.Context, rng domain.DateRange, g domain.Granularity) ([]domain.TrendPoint, error)
	musicTracksFn    func(ctx context.Context, rng domain.DateRange, f domain.TrackFilter) ([]domain.TrackPerformance, error)
	alertLowTracksFn func(ctx context.Context, maxSales, limit int) ([]domain.LowTrack, error)
	tableSummaryFn   func(ctx context.Context, table string) (*domain.TableSummary, error)
	previewFn        func(ctx context.Context, table string, limit int) (*domain.TablePreview, error)
}

func (m *mockReportService) DateBounds(ctx context.Context) (domain.DateRange, error) {
	if m.dateBoundsFn != nil {
		return m.dateBoundsFn(ctx)
	}
	return domain.DateRange{}, nil
}

func (m *mockReportService) FinanceKPIs(ctx context.Context, rng domain.DateRange) (*domain.FinanceKPIs, error) {
	if m.financeKPIsFn != nil {
		return m.financeKPIsFn(ctx, rng)
	}
	return &domain.FinanceKPIs{}, nil
}

func (m *mockReportService) FinanceTrends(ctx context.Context, rng domain.DateRange, g domain.Granularity) ([]domain.TrendPoint, error) {
	if m.financeTrendsFn != nil {
		return m.financeTrendsFn(ctx, rng, g)
	}
	return nil, nil
}

func (m *mockReportService) FinanceGeography(ctx context.Context, rng domain.DateRange) ([]domain.CountryRevenue, error) {
	return nil, nil
}

func (m *mockReportService) FinanceAmountRanges(ctx context.Context, rng domain.DateRange) ([]domain.AmountRangeBucket, error) {
	return nil, nil
}

func (m *mockReportService) FinanceSeasonality(ctx context.Context, rng domain.DateRange) ([]domain.SeasonalityPoint, error) {
	return nil, nil
}

func (m *mockReportService) FinanceWeekdayPattern(ctx context.Context, rng domain.DateRange) ([]domain.WeekdayPoint, error) {
	return nil, nil
}

func (m *mockReportService) FinanceBaskets(ctx context.Context, rng domain.DateRange, g domain.Granularity) ([]domain.BasketPoint, error) {
	return nil, nil
}

func (m *mockReportService) CustomerRFM(ctx context.Context, rng domain.DateRange) ([]domain.RFMCustomer, error) {
	return nil, nil
}

func (m *mockReportService) CustomerJourneys(ctx context.Context, rng domain.DateRange) ([]domain.CustomerJourney, error) {
	return nil, nil
}

func (m *mockReportService) CustomerChurn(ctx context.Context, rng domain.DateRange, w domain.ChurnWindows) ([]domain.ChurnCustomer, error) {
	return nil, nil
}

func (m *mockReportService) CustomerGeography(ctx context.Context, rng domain.DateRange) ([]domain.CustomerGeo, error) {
	return nil, nil
}

func (m *mockReportService) CustomerPreferences(ctx context.Context, rng domain.DateRange) ([]domain.CustomerPreference, error) {
	return nil, nil
}

func (m *mockReportService) CustomerCohorts(ctx context.Context, rng domain.DateRange) ([]domain.CohortPoint, error) {
	return nil, nil
}

func (m *mockReportService) MusicTracks(ctx context.Context, rng domain.DateRange, f domain.TrackFilter) ([]domain.TrackPerformance, error) {
	if m.musicTracksFn != nil {
		return m.musicTracksFn(ctx, rng, f)
	}
	return nil, nil
}

func (m *mockReportService) MusicGenres(ctx context.Context, rng domain.DateRange) ([]domain.GenreStats, error) {
	return nil, nil
}

func (m *mockReportService) MusicArtists(ctx context.Context, rng domain.DateRange, f domain.ArtistFilter) ([]domain.ArtistInsight, error) {
	return nil, nil
}

func (m *mockReportService) MusicAlbums(ctx context.Context, rng domain.DateRange) ([]domain.AlbumAnalytics, error) {
	return nil, nil
}

func (m *mockReportService) MusicPlaylists(ctx context.Context) ([]domain.PlaylistStats, error) {
	return nil, nil
}

func (m *mockReportService) MusicDiscovery(ctx context.Context, f domain.DiscoveryFilter) ([]domain.TrackDiscovery, error) {
	return nil, nil
}

func (m *mockReportService) MusicRevenueByGenre(ctx context.Context, rng domain.DateRange) ([]domain.GenreRevenue, error) {
	return nil, nil
}

func (m *mockReportService) EmployeePerformance(ctx context.Context, rng domain.DateRange) ([]domain.EmployeePerformance, error) {
	return nil, nil
}

func (m *mockReportService) EmployeeSatisfaction(ctx context.Context, rng domain.DateRange) ([]domain.EmployeeSatisfaction, error) {
	return nil, nil
}

func (m *mockReportService) EmployeeTerritories(ctx context.Context, rng domain.DateRange) ([]domain.EmployeeTerritory, error) {
	return nil, nil
}

func (m *mockReportService) EmployeeEfficiency(ctx context.Context, rng domain.DateRange) ([]domain.EmployeeEfficiency, error) {
	return nil, nil
}

func (m *mockReportService) EmployeeTopCustomers(ctx context.Context, rng domain.DateRange) ([]domain.EmployeeTopCustomer, error) {
	return nil, nil
}

func (m *mockReportService) EmployeeHierarchy(ctx context.Context) ([]domain.EmployeeNode, error) {
	return nil, nil
}

func (m *mockReportService) AlertLowTracks(ctx context.Context, maxSales, limit int) ([]domain.LowTrack, error) {
	if m.alertLowTracksFn != nil {
		return m.alertLowTracksFn(ctx, maxSales, limit)
	}
	return nil, nil
}

func (m *mockReportService) AlertLowAlbums(ctx context.Context, maxSales, limit int) ([]domain.LowAlbum, error) {
	return nil, nil
}

func (m *mockReportService) AlertRevenueAnomalies(ctx context.Context, lookbackDays int) ([]domain.RevenueAnomaly, error) {
	return nil, nil
}

func (m *mockReportService) AlertChurn(ctx context.Context) ([]domain.ChurnAlert, error) {
	return nil, nil
}

func (m *mockReportService) AlertEmployees(ctx context.Context) ([]domain.EmployeeAlert, error) {
	return nil, nil
}

func (m *mockReportService) AlertFraud(ctx context.Context) ([]domain.FraudAlert, error) {
	return nil, nil
}

func (m *mockReportService) ExplorerTables(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (m *mockReportService) ExplorerTableSummary(ctx context.Context, table string) (*domain.TableSummary, error) {
	if m.tableSummaryFn != nil {
		return m.tableSummaryFn(ctx, table)
	}
	return &domain.TableSummary{Name: table}, nil
}

func (m *mockReportService) ExplorerColumns(ctx context.Context) ([]domain.ColumnInfo, error) {
	return nil, nil
}

func (m *mockReportService) ExplorerRelationships(ctx context.Context) ([]domain.Relationship, error) {
	return nil, nil
}

func (m *mockReportService) ExplorerPreview(ctx context.Context, table string, limit int) (*domain.TablePreview, error) {
	if m.previewFn != nil {
		return m.previewFn(ctx, table, limit)
	}
	return &domain.TablePreview{Table: table}, nil
}

// --- Test helpers ---

func newTestServer(t *testing.T, app reportService, opts ...func(*Server)) *Server {
	t.Helper()

	clock := clockwork.NewFakeClockAt(time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC))

	srv := &Server{
		echo:      echo.New(),
		config:    &config.Config{Port: "8080"},
		app:       app,
		theme:     config.DefaultTheme(),
		clock:     clock,
		startTime: clock.Now(),
	}

	for _, opt := range opts {
		opt(srv)
	}

	srv.registerRoutes()

	return srv
}

func withHealthChecks(checks ...HealthCheck) func(*Server) {
	return func(s *Server) {
		s.healthChecks = checks
	}
}
