package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jonboulle/clockwork"

	"github.com/razdine10/Groovify/internal/domain"
	"github.com/razdine10/Groovify/internal/metrics"
	"github.com/razdine10/Groovify/internal/redis"
)

// Report parameter defaults and bounds. Limits are clamped, never rejected.
const (
	defaultMinSales       = 1
	defaultTrackLimit     = 100
	defaultArtistLimit    = 50
	defaultDiscoveryLimit = 50
	defaultAlertMaxSales  = 3
	defaultAlertLimit     = 50
	defaultPreviewLimit   = 10
	maxListLimit          = 500
	maxPreviewLimit       = 100
)

// Default alert thresholds, matching the dashboard presets.
var (
	defaultAnomalyThresholds = domain.AnomalyThresholds{
		LookbackDays: 90,
		CriticalPct:  50,
		WarningPct:   30,
	}
	defaultChurnWindows = domain.ChurnWindows{
		ActiveMonths: 6,
		RiskMonths:   12,
	}
	defaultChurnAlertThresholds = domain.ChurnAlertThresholds{
		HighDays:     90,
		HighValue:    40,
		MediumDays:   60,
		MediumValue:  20,
		LowDays:      30,
		CriticalDays: 120,
		WarningDays:  60,
	}
	defaultEmployeeAlertThresholds = domain.EmployeeAlertThresholds{
		LowOrders:    50,
		MediumOrders: 100,
	}
	defaultFraudThresholds = domain.FraudThresholds{
		HighSingleItemAmount: 20,
		BulkItemCount:        15,
		HighAmount:           25,
		FraudAmount:          30,
		SuspiciousItemCount:  10,
	}
)

// Service is the application layer. It resolves date ranges, clamps report
// parameters, and serves reports through the optional Redis cache.
type Service struct {
	finance   domain.FinanceRepository
	customers domain.CustomerRepository
	music     domain.MusicRepository
	employees domain.EmployeeRepository
	alerts    domain.AlertRepository
	schema    domain.SchemaRepository
	meta      domain.MetaRepository
	cache     *redis.ReportCache
	clock     clockwork.Clock
}

// NewService creates the application layer service.
// cache may be nil when Redis is not configured.
func NewService(
	finance domain.FinanceRepository,
	customers domain.CustomerRepository,
	music domain.MusicRepository,
	employees domain.EmployeeRepository,
	alerts domain.AlertRepository,
	schema domain.SchemaRepository,
	meta domain.MetaRepository,
	cache *redis.ReportCache,
	clock clockwork.Clock,
) *Service {
	return &Service{
		finance:   finance,
		customers: customers,
		music:     music,
		employees: employees,
		alerts:    alerts,
		schema:    schema,
		meta:      meta,
		cache:     cache,
		clock:     clock,
	}
}

// resolveRange fills missing bounds of a date range from the invoice
// MIN/MAX dates. An empty invoice table falls back to the trailing year.
func (s *Service) resolveRange(ctx context.Context, rng domain.DateRange) (domain.DateRange, error) {
	if rng.From.IsZero() || rng.To.IsZero() {
		bounds, err := s.meta.DateBounds(ctx)
		if err != nil {
			if !errors.Is(err, domain.ErrNoData) {
				return domain.DateRange{}, fmt.Errorf("failed to resolve date bounds: %w", err)
			}
			now := s.clock.Now()
			bounds = domain.DateRange{From: now.AddDate(-1, 0, 0), To: now}
		}
		if rng.From.IsZero() {
			rng.From = bounds.From
		}
		if rng.To.IsZero() {
			rng.To = bounds.To
		}
	}

	if err := rng.Validate(); err != nil {
		return domain.DateRange{}, err
	}
	return rng, nil
}

func recordReport(report string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.ReportRequestsTotal.WithLabelValues(report, status).Inc()
}

func rangeKey(report string, rng domain.DateRange, extra ...string) string {
	params := append([]string{rng.From.Format("2006-01-02"), rng.To.Format("2006-01-02")}, extra...)
	return redis.CacheKey(report, params...)
}

func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

// DateBounds returns the invoice date bounds.
func (s *Service) DateBounds(ctx context.Context) (domain.DateRange, error) {
	bounds, err := s.meta.DateBounds(ctx)
	recordReport("date_bounds", err)
	return bounds, err
}

// ---- Finance ----

func (s *Service) FinanceKPIs(ctx context.Context, rng domain.DateRange) (*domain.FinanceKPIs, error) {
	rng, err := s.resolveRange(ctx, rng)
	if err != nil {
		return nil, err
	}
	kpis, err := redis.Fetch(ctx, s.cache, "finance_kpis", rangeKey("finance_kpis", rng),
		func(ctx context.Context) (*domain.FinanceKPIs, error) {
			return s.finance.KPIs(ctx, rng)
		})
	recordReport("finance_kpis", err)
	return kpis, err
}

func (s *Service) FinanceTrends(ctx context.Context, rng domain.DateRange, g domain.Granularity) ([]domain.TrendPoint, error) {
	if g == "" {
		g = domain.GranularityMonth
	}
	if !g.Valid() {
		return nil, domain.ErrBadGranularity
	}
	rng, err := s.resolveRange(ctx, rng)
	if err != nil {
		return nil, err
	}
	points, err := redis.Fetch(ctx, s.cache, "finance_trends", rangeKey("finance_trends", rng, string(g)),
		func(ctx context.Context) ([]domain.TrendPoint, error) {
			return s.finance.Trends(ctx, rng, g)
		})
	recordReport("finance_trends", err)
	return points, err
}

func (s *Service) FinanceGeography(ctx context.Context, rng domain.DateRange) ([]domain.CountryRevenue, error) {
	rng, err := s.resolveRange(ctx, rng)
	if err != nil {
		return nil, err
	}
	rows, err := redis.Fetch(ctx, s.cache, "finance_geography", rangeKey("finance_geography", rng),
		func(ctx context.Context) ([]domain.CountryRevenue, error) {
			return s.finance.Geography(ctx, rng)
		})
	recordReport("finance_geography", err)
	return rows, err
}

func (s *Service) FinanceAmountRanges(ctx context.Context, rng domain.DateRange) ([]domain.AmountRangeBucket, error) {
	rng, err := s.resolveRange(ctx, rng)
	if err != nil {
		return nil, err
	}
	rows, err := redis.Fetch(ctx, s.cache, "finance_amount_ranges", rangeKey("finance_amount_ranges", rng),
		func(ctx context.Context) ([]domain.AmountRangeBucket, error) {
			return s.finance.AmountRanges(ctx, rng)
		})
	recordReport("finance_amount_ranges", err)
	return rows, err
}

func (s *Service) FinanceSeasonality(ctx context.Context, rng domain.DateRange) ([]domain.SeasonalityPoint, error) {
	rng, err := s.resolveRange(ctx, rng)
	if err != nil {
		return nil, err
	}
	rows, err := redis.Fetch(ctx, s.cache, "finance_seasonality", rangeKey("finance_seasonality", rng),
		func(ctx context.Context) ([]domain.SeasonalityPoint, error) {
			return s.finance.Seasonality(ctx, rng)
		})
	recordReport("finance_seasonality", err)
	return rows, err
}

func (s *Service) FinanceWeekdayPattern(ctx context.Context, rng domain.DateRange) ([]domain.WeekdayPoint, error) {
	rng, err := s.resolveRange(ctx, rng)
	if err != nil {
		return nil, err
	}
	rows, err := redis.Fetch(ctx, s.cache, "finance_weekdays", rangeKey("finance_weekdays", rng),
		func(ctx context.Context) ([]domain.WeekdayPoint, error) {
			return s.finance.WeekdayPattern(ctx, rng)
		})
	recordReport("finance_weekdays", err)
	return rows, err
}

func (s *Service) FinanceBaskets(ctx context.Context, rng domain.DateRange, g domain.Granularity) ([]domain.BasketPoint, error) {
	if g == "" {
		g = domain.GranularityMonth
	}
	if !g.Valid() {
		return nil, domain.ErrBadGranularity
	}
	rng, err := s.resolveRange(ctx, rng)
	if err != nil {
		return nil, err
	}
	rows, err := redis.Fetch(ctx, s.cache, "finance_baskets", rangeKey("finance_baskets", rng, string(g)),
		func(ctx context.Context) ([]domain.BasketPoint, error) {
			return s.finance.Baskets(ctx, rng, g)
		})
	recordReport("finance_baskets", err)
	return rows, err
}

// ---- Customers ----

func (s *Service) CustomerRFM(ctx context.Context, rng domain.DateRange) ([]domain.RFMCustomer, error) {
	rng, err := s.resolveRange(ctx, rng)
	if err != nil {
		return nil, err
	}
	rows, err := redis.Fetch(ctx, s.cache, "customers_rfm", rangeKey("customers_rfm", rng),
		func(ctx context.Context) ([]domain.RFMCustomer, error) {
			return s.customers.RFMClusters(ctx, rng)
		})
	recordReport("customers_rfm", err)
	return rows, err
}

func (s *Service) CustomerJourneys(ctx context.Context, rng domain.DateRange) ([]domain.CustomerJourney, error) {
	rng, err := s.resolveRange(ctx, rng)
	if err != nil {
		return nil, err
	}
	rows, err := redis.Fetch(ctx, s.cache, "customers_journeys", rangeKey("customers_journeys", rng),
		func(ctx context.Context) ([]domain.CustomerJourney, error) {
			return s.customers.Journeys(ctx, rng)
		})
	recordReport("customers_journeys", err)
	return rows, err
}

func (s *Service) CustomerChurn(ctx context.Context, rng domain.DateRange, w domain.ChurnWindows) ([]domain.ChurnCustomer, error) {
	if w.ActiveMonths <= 0 {
		w.ActiveMonths = defaultChurnWindows.ActiveMonths
	}
	if w.RiskMonths <= w.ActiveMonths {
		w.RiskMonths = w.ActiveMonths * 2
	}
	rng, err := s.resolveRange(ctx, rng)
	if err != nil {
		return nil, err
	}
	key := rangeKey("customers_churn", rng, strconv.Itoa(w.ActiveMonths), strconv.Itoa(w.RiskMonths))
	rows, err := redis.Fetch(ctx, s.cache, "customers_churn", key,
		func(ctx context.Context) ([]domain.ChurnCustomer, error) {
			return s.customers.Churn(ctx, rng, w)
		})
	recordReport("customers_churn", err)
	return rows, err
}

func (s *Service) CustomerGeography(ctx context.Context, rng domain.DateRange) ([]domain.CustomerGeo, error) {
	rng, err := s.resolveRange(ctx, rng)
	if err != nil {
		return nil, err
	}
	rows, err := redis.Fetch(ctx, s.cache, "customers_geography", rangeKey("customers_geography", rng),
		func(ctx context.Context) ([]domain.CustomerGeo, error) {
			return s.customers.Geography(ctx, rng)
		})
	recordReport("customers_geography", err)
	return rows, err
}

func (s *Service) CustomerPreferences(ctx context.Context, rng domain.DateRange) ([]domain.CustomerPreference, error) {
	rng, err := s.resolveRange(ctx, rng)
	if err != nil {
		return nil, err
	}
	rows, err := redis.Fetch(ctx, s.cache, "customers_preferences", rangeKey("customers_preferences", rng),
		func(ctx context.Context) ([]domain.CustomerPreference, error) {
			return s.customers.Preferences(ctx, rng)
		})
	recordReport("customers_preferences", err)
	return rows, err
}

func (s *Service) CustomerCohorts(ctx context.Context, rng domain.DateRange) ([]domain.CohortPoint, error) {
	rng, err := s.resolveRange(ctx, rng)
	if err != nil {
		return nil, err
	}
	rows, err := redis.Fetch(ctx, s.cache, "customers_cohorts", rangeKey("customers_cohorts", rng),
		func(ctx context.Context) ([]domain.CohortPoint, error) {
			return s.customers.Cohorts(ctx, rng)
		})
	recordReport("customers_cohorts", err)
	return rows, err
}

// ---- Music ----

func (s *Service) MusicTracks(ctx context.Context, rng domain.DateRange, f domain.TrackFilter) ([]domain.TrackPerformance, error) {
	if f.MinSales <= 0 {
		f.MinSales = defaultMinSales
	}
	f.Limit = clampLimit(f.Limit, defaultTrackLimit, maxListLimit)
	rng, err := s.resolveRange(ctx, rng)
	if err != nil {
		return nil, err
	}
	key := rangeKey("music_tracks", rng, strconv.Itoa(f.MinSales), strconv.Itoa(f.Limit))
	rows, err := redis.Fetch(ctx, s.cache, "music_tracks", key,
		func(ctx context.Context) ([]domain.TrackPerformance, error) {
			return s.music.TrackPerformance(ctx, rng, f)
		})
	recordReport("music_tracks", err)
	return rows, err
}

func (s *Service) MusicGenres(ctx context.Context, rng domain.DateRange) ([]domain.GenreStats, error) {
	rng, err := s.resolveRange(ctx, rng)
	if err != nil {
		return nil, err
	}
	rows, err := redis.Fetch(ctx, s.cache, "music_genres", rangeKey("music_genres", rng),
		func(ctx context.Context) ([]domain.GenreStats, error) {
			return s.music.GenreAnalysis(ctx, rng)
		})
	recordReport("music_genres", err)
	return rows, err
}

func (s *Service) MusicArtists(ctx context.Context, rng domain.DateRange, f domain.ArtistFilter) ([]domain.ArtistInsight, error) {
	if f.MinAlbums <= 0 {
		f.MinAlbums = 1
	}
	f.Limit = clampLimit(f.Limit, defaultArtistLimit, maxListLimit)
	rng, err := s.resolveRange(ctx, rng)
	if err != nil {
		return nil, err
	}
	key := rangeKey("music_artists", rng, strconv.Itoa(f.MinAlbums), strconv.Itoa(f.Limit))
	rows, err := redis.Fetch(ctx, s.cache, "music_artists", key,
		func(ctx context.Context) ([]domain.ArtistInsight, error) {
			return s.music.ArtistInsights(ctx, rng, f)
		})
	recordReport("music_artists", err)
	return rows, err
}

func (s *Service) MusicAlbums(ctx context.Context, rng domain.DateRange) ([]domain.AlbumAnalytics, error) {
	rng, err := s.resolveRange(ctx, rng)
	if err != nil {
		return nil, err
	}
	rows, err := redis.Fetch(ctx, s.cache, "music_albums", rangeKey("music_albums", rng),
		func(ctx context.Context) ([]domain.AlbumAnalytics, error) {
			return s.music.AlbumAnalytics(ctx, rng)
		})
	recordReport("music_albums", err)
	return rows, err
}

func (s *Service) MusicPlaylists(ctx context.Context) ([]domain.PlaylistStats, error) {
	rows, err := redis.Fetch(ctx, s.cache, "music_playlists", redis.CacheKey("music_playlists"),
		func(ctx context.Context) ([]domain.PlaylistStats, error) {
			return s.music.PlaylistPerformance(ctx)
		})
	recordReport("music_playlists", err)
	return rows, err
}

func (s *Service) MusicDiscovery(ctx context.Context, f domain.DiscoveryFilter) ([]domain.TrackDiscovery, error) {
	if f.MinPlaylists < 0 {
		f.MinPlaylists = 0
	}
	f.Limit = clampLimit(f.Limit, defaultDiscoveryLimit, maxListLimit)
	key := redis.CacheKey("music_discovery", strconv.Itoa(f.MinPlaylists), strconv.Itoa(f.Limit))
	rows, err := redis.Fetch(ctx, s.cache, "music_discovery", key,
		func(ctx context.Context) ([]domain.TrackDiscovery, error) {
			return s.music.ContentDiscovery(ctx, f)
		})
	recordReport("music_discovery", err)
	return rows, err
}

func (s *Service) MusicRevenueByGenre(ctx context.Context, rng domain.DateRange) ([]domain.GenreRevenue, error) {
	rng, err := s.resolveRange(ctx, rng)
	if err != nil {
		return nil, err
	}
	rows, err := redis.Fetch(ctx, s.cache, "music_revenue", rangeKey("music_revenue", rng),
		func(ctx context.Context) ([]domain.GenreRevenue, error) {
			return s.music.RevenueByGenre(ctx, rng)
		})
	recordReport("music_revenue", err)
	return rows, err
}

// ---- Employees ----

func (s *Service) EmployeePerformance(ctx context.Context, rng domain.DateRange) ([]domain.EmployeePerformance, error) {
	rng, err := s.resolveRange(ctx, rng)
	if err != nil {
		return nil, err
	}
	rows, err := redis.Fetch(ctx, s.cache, "employees_performance", rangeKey("employees_performance", rng),
		func(ctx context.Context) ([]domain.EmployeePerformance, error) {
			return s.employees.Performance(ctx, rng)
		})
	recordReport("employees_performance", err)
	return rows, err
}

func (s *Service) EmployeeSatisfaction(ctx context.Context, rng domain.DateRange) ([]domain.EmployeeSatisfaction, error) {
	rng, err := s.resolveRange(ctx, rng)
	if err != nil {
		return nil, err
	}
	rows, err := redis.Fetch(ctx, s.cache, "employees_satisfaction", rangeKey("employees_satisfaction", rng),
		func(ctx context.Context) ([]domain.EmployeeSatisfaction, error) {
			return s.employees.Satisfaction(ctx, rng)
		})
	recordReport("employees_satisfaction", err)
	return rows, err
}

func (s *Service) EmployeeTerritories(ctx context.Context, rng domain.DateRange) ([]domain.EmployeeTerritory, error) {
	rng, err := s.resolveRange(ctx, rng)
	if err != nil {
		return nil, err
	}
	rows, err := redis.Fetch(ctx, s.cache, "employees_territories", rangeKey("employees_territories", rng),
		func(ctx context.Context) ([]domain.EmployeeTerritory, error) {
			return s.employees.Territories(ctx, rng)
		})
	recordReport("employees_territories", err)
	return rows, err
}

func (s *Service) EmployeeEfficiency(ctx context.Context, rng domain.DateRange) ([]domain.EmployeeEfficiency, error) {
	rng, err := s.resolveRange(ctx, rng)
	if err != nil {
		return nil, err
	}
	rows, err := redis.Fetch(ctx, s.cache, "employees_efficiency", rangeKey("employees_efficiency", rng),
		func(ctx context.Context) ([]domain.EmployeeEfficiency, error) {
			return s.employees.Efficiency(ctx, rng)
		})
	recordReport("employees_efficiency", err)
	return rows, err
}

func (s *Service) EmployeeTopCustomers(ctx context.Context, rng domain.DateRange) ([]domain.EmployeeTopCustomer, error) {
	rng, err := s.resolveRange(ctx, rng)
	if err != nil {
		return nil, err
	}
	rows, err := redis.Fetch(ctx, s.cache, "employees_top_customers", rangeKey("employees_top_customers", rng),
		func(ctx context.Context) ([]domain.EmployeeTopCustomer, error) {
			return s.employees.TopCustomers(ctx, rng)
		})
	recordReport("employees_top_customers", err)
	return rows, err
}

func (s *Service) EmployeeHierarchy(ctx context.Context) ([]domain.EmployeeNode, error) {
	rows, err := redis.Fetch(ctx, s.cache, "employees_hierarchy", redis.CacheKey("employees_hierarchy"),
		func(ctx context.Context) ([]domain.EmployeeNode, error) {
			return s.employees.Hierarchy(ctx)
		})
	recordReport("employees_hierarchy", err)
	return rows, err
}

// ---- Alerts ----
//
// Alert scans are time-sensitive (they compare against the current date),
// so they bypass the report cache.

func (s *Service) AlertLowTracks(ctx context.Context, maxSales, limit int) ([]domain.LowTrack, error) {
	if maxSales <= 0 {
		maxSales = defaultAlertMaxSales
	}
	limit = clampLimit(limit, defaultAlertLimit, maxListLimit)
	rows, err := s.alerts.LowTracks(ctx, maxSales, limit)
	recordReport("alerts_low_tracks", err)
	return rows, err
}

func (s *Service) AlertLowAlbums(ctx context.Context, maxSales, limit int) ([]domain.LowAlbum, error) {
	if maxSales <= 0 {
		maxSales = defaultAlertMaxSales
	}
	limit = clampLimit(limit, defaultAlertLimit, maxListLimit)
	rows, err := s.alerts.LowAlbums(ctx, maxSales, limit)
	recordReport("alerts_low_albums", err)
	return rows, err
}

func (s *Service) AlertRevenueAnomalies(ctx context.Context, lookbackDays int) ([]domain.RevenueAnomaly, error) {
	t := defaultAnomalyThresholds
	if lookbackDays > 0 {
		t.LookbackDays = lookbackDays
	}
	rows, err := s.alerts.RevenueAnomalies(ctx, t)
	recordReport("alerts_anomalies", err)
	return rows, err
}

func (s *Service) AlertChurn(ctx context.Context) ([]domain.ChurnAlert, error) {
	rows, err := s.alerts.ChurnAlerts(ctx, defaultChurnAlertThresholds)
	recordReport("alerts_churn", err)
	return rows, err
}

func (s *Service) AlertEmployees(ctx context.Context) ([]domain.EmployeeAlert, error) {
	rows, err := s.alerts.EmployeeAlerts(ctx, defaultEmployeeAlertThresholds)
	recordReport("alerts_employees", err)
	return rows, err
}

func (s *Service) AlertFraud(ctx context.Context) ([]domain.FraudAlert, error) {
	rows, err := s.alerts.FraudAlerts(ctx, defaultFraudThresholds)
	recordReport("alerts_fraud", err)
	return rows, err
}

// ---- Explorer ----
//
// Catalog queries hit live system views and stay uncached.

func (s *Service) ExplorerTables(ctx context.Context) ([]string, error) {
	tables, err := s.schema.ListTables(ctx)
	recordReport("explorer_tables", err)
	return tables, err
}

func (s *Service) ExplorerTableSummary(ctx context.Context, table string) (*domain.TableSummary, error) {
	summary, err := s.schema.TableSummary(ctx, table)
	recordReport("explorer_table_summary", err)
	return summary, err
}

func (s *Service) ExplorerColumns(ctx context.Context) ([]domain.ColumnInfo, error) {
	columns, err := s.schema.Columns(ctx)
	recordReport("explorer_columns", err)
	return columns, err
}

func (s *Service) ExplorerRelationships(ctx context.Context) ([]domain.Relationship, error) {
	rels, err := s.schema.Relationships(ctx)
	recordReport("explorer_relationships", err)
	return rels, err
}

func (s *Service) ExplorerPreview(ctx context.Context, table string, limit int) (*domain.TablePreview, error) {
	limit = clampLimit(limit, defaultPreviewLimit, maxPreviewLimit)
	preview, err := s.schema.Preview(ctx, table, limit)
	recordReport("explorer_preview", err)
	return preview, err
}
