package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"

	"github.com/razdine10/Groovify/internal/config"
	"github.com/razdine10/Groovify/internal/domain"
)

// reportService is the application surface the handlers depend on.
type reportService interface {
	DateBounds(ctx context.Context) (domain.DateRange, error)

	FinanceKPIs(ctx context.Context, rng domain.DateRange) (*domain.FinanceKPIs, error)
	FinanceTrends(ctx context.Context, rng domain.DateRange, g domain.Granularity) ([]domain.TrendPoint, error)
	FinanceGeography(ctx context.Context, rng domain.DateRange) ([]domain.CountryRevenue, error)
	FinanceAmountRanges(ctx context.Context, rng domain.DateRange) ([]domain.AmountRangeBucket, error)
	FinanceSeasonality(ctx context.Context, rng domain.DateRange) ([]domain.SeasonalityPoint, error)
	FinanceWeekdayPattern(ctx context.Context, rng domain.DateRange) ([]domain.WeekdayPoint, error)
	FinanceBaskets(ctx context.Context, rng domain.DateRange, g domain.Granularity) ([]domain.BasketPoint, error)

	CustomerRFM(ctx context.Context, rng domain.DateRange) ([]domain.RFMCustomer, error)
	CustomerJourneys(ctx context.Context, rng domain.DateRange) ([]domain.CustomerJourney, error)
	CustomerChurn(ctx context.Context, rng domain.DateRange, w domain.ChurnWindows) ([]domain.ChurnCustomer, error)
	CustomerGeography(ctx context.Context, rng domain.DateRange) ([]domain.CustomerGeo, error)
	CustomerPreferences(ctx context.Context, rng domain.DateRange) ([]domain.CustomerPreference, error)
	CustomerCohorts(ctx context.Context, rng domain.DateRange) ([]domain.CohortPoint, error)

	MusicTracks(ctx context.Context, rng domain.DateRange, f domain.TrackFilter) ([]domain.TrackPerformance, error)
	MusicGenres(ctx context.Context, rng domain.DateRange) ([]domain.GenreStats, error)
	MusicArtists(ctx context.Context, rng domain.DateRange, f domain.ArtistFilter) ([]domain.ArtistInsight, error)
	MusicAlbums(ctx context.Context, rng domain.DateRange) ([]domain.AlbumAnalytics, error)
	MusicPlaylists(ctx context.Context) ([]domain.PlaylistStats, error)
	MusicDiscovery(ctx context.Context, f domain.DiscoveryFilter) ([]domain.TrackDiscovery, error)
	MusicRevenueByGenre(ctx context.Context, rng domain.DateRange) ([]domain.GenreRevenue, error)

	EmployeePerformance(ctx context.Context, rng domain.DateRange) ([]domain.EmployeePerformance, error)
	EmployeeSatisfaction(ctx context.Context, rng domain.DateRange) ([]domain.EmployeeSatisfaction, error)
	EmployeeTerritories(ctx context.Context, rng domain.DateRange) ([]domain.EmployeeTerritory, error)
	EmployeeEfficiency(ctx context.Context, rng domain.DateRange) ([]domain.EmployeeEfficiency, error)
	EmployeeTopCustomers(ctx context.Context, rng domain.DateRange) ([]domain.EmployeeTopCustomer, error)
	EmployeeHierarchy(ctx context.Context) ([]domain.EmployeeNode, error)

	AlertLowTracks(ctx context.Context, maxSales, limit int) ([]domain.LowTrack, error)
	AlertLowAlbums(ctx context.Context, maxSales, limit int) ([]domain.LowAlbum, error)
	AlertRevenueAnomalies(ctx context.Context, lookbackDays int) ([]domain.RevenueAnomaly, error)
	AlertChurn(ctx context.Context) ([]domain.ChurnAlert, error)
	AlertEmployees(ctx context.Context) ([]domain.EmployeeAlert, error)
	AlertFraud(ctx context.Context) ([]domain.FraudAlert, error)

	ExplorerTables(ctx context.Context) ([]string, error)
	ExplorerTableSummary(ctx context.Context, table string) (*domain.TableSummary, error)
	ExplorerColumns(ctx context.Context) ([]domain.ColumnInfo, error)
	ExplorerRelationships(ctx context.Context) ([]domain.Relationship, error)
	ExplorerPreview(ctx context.Context, table string, limit int) (*domain.TablePreview, error)
}

type Server struct {
	echo   *echo.Echo
	config *config.Config

	app   reportService
	theme config.Theme

	healthChecks []HealthCheck
	clock        clockwork.Clock
	startTime    time.Time
}

func NewServer(cfg *config.Config, theme config.Theme, app reportService, healthChecks []HealthCheck, clock clockwork.Clock) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		echo:         e,
		config:       cfg,
		app:          app,
		theme:        theme,
		healthChecks: healthChecks,
		clock:        clock,
		startTime:    clock.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	if err := s.echo.Start(":" + s.config.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}
