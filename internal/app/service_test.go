package app

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/razdine10/Groovify/internal/domain"
)

type fakeMeta struct {
	bounds domain.DateRange
	err    error
}

func (f *fakeMeta) DateBounds(ctx context.Context) (domain.DateRange, error) {
	return f.bounds, f.err
}

// fakeFinance records the range and granularity of the last call.
type fakeFinance struct {
	gotRange domain.DateRange
	gotGran  domain.Granularity
}

func (f *fakeFinance) KPIs(ctx context.Context, r domain.DateRange) (*domain.FinanceKPIs, error) {
	f.gotRange = r
	return &domain.FinanceKPIs{}, nil
}

func (f *fakeFinance) Trends(ctx context.Context, r domain.DateRange, g domain.Granularity) ([]domain.TrendPoint, error) {
	f.gotRange, f.gotGran = r, g
	return nil, nil
}

func (f *fakeFinance) Geography(ctx context.Context, r domain.DateRange) ([]domain.CountryRevenue, error) {
	f.gotRange = r
	return nil, nil
}

func (f *fakeFinance) AmountRanges(ctx context.Context, r domain.DateRange) ([]domain.AmountRangeBucket, error) {
	f.gotRange = r
	return nil, nil
}

func (f *fakeFinance) Seasonality(ctx context.Context, r domain.DateRange) ([]domain.SeasonalityPoint, error) {
	f.gotRange = r
	return nil, nil
}

func (f *fakeFinance) WeekdayPattern(ctx context.Context, r domain.DateRange) ([]domain.WeekdayPoint, error) {
	f.gotRange = r
	return nil, nil
}

func (f *fakeFinance) Baskets(ctx context.Context, r domain.DateRange, g domain.Granularity) ([]domain.BasketPoint, error) {
	f.gotRange, f.gotGran = r, g
	return nil, nil
}

// fakeMusic records the filters of the last call.
type fakeMusic struct {
	gotTrack     domain.TrackFilter
	gotArtist    domain.ArtistFilter
	gotDiscovery domain.DiscoveryFilter
}

func (f *fakeMusic) TrackPerformance(ctx context.Context, r domain.DateRange, flt domain.TrackFilter) ([]domain.TrackPerformance, error) {
	f.gotTrack = flt
	return nil, nil
}

func (f *fakeMusic) GenreAnalysis(ctx context.Context, r domain.DateRange) ([]domain.GenreStats, error) {
	return nil, nil
}

func (f *fakeMusic) ArtistInsights(ctx context.Context, r domain.DateRange, flt domain.ArtistFilter) ([]domain.ArtistInsight, error) {
	f.gotArtist = flt
	return nil, nil
}

func (f *fakeMusic) AlbumAnalytics(ctx context.Context, r domain.DateRange) ([]domain.AlbumAnalytics, error) {
	return nil, nil
}

func (f *fakeMusic) PlaylistPerformance(ctx context.Context) ([]domain.PlaylistStats, error) {
	return nil, nil
}

func (f *fakeMusic) ContentDiscovery(ctx context.Context, flt domain.DiscoveryFilter) ([]domain.TrackDiscovery, error) {
	f.gotDiscovery = flt
	return nil, nil
}

func (f *fakeMusic) RevenueByGenre(ctx context.Context, r domain.DateRange) ([]domain.GenreRevenue, error) {
	return nil, nil
}

// fakeAlerts records the thresholds of the last call.
type fakeAlerts struct {
	gotMaxSales int
	gotLimit    int
	gotAnomaly  domain.AnomalyThresholds
}

func (f *fakeAlerts) LowTracks(ctx context.Context, maxSales, limit int) ([]domain.LowTrack, error) {
	f.gotMaxSales, f.gotLimit = maxSales, limit
	return nil, nil
}

func (f *fakeAlerts) LowAlbums(ctx context.Context, maxSales, limit int) ([]domain.LowAlbum, error) {
	f.gotMaxSales, f.gotLimit = maxSales, limit
	return nil, nil
}

func (f *fakeAlerts) RevenueAnomalies(ctx context.Context, t domain.AnomalyThresholds) ([]domain.RevenueAnomaly, error) {
	f.gotAnomaly = t
	return nil, nil
}

func (f *fakeAlerts) ChurnAlerts(ctx context.Context, t domain.ChurnAlertThresholds) ([]domain.ChurnAlert, error) {
	return nil, nil
}

func (f *fakeAlerts) EmployeeAlerts(ctx context.Context, t domain.EmployeeAlertThresholds) ([]domain.EmployeeAlert, error) {
	return nil, nil
}

func (f *fakeAlerts) FraudAlerts(ctx context.Context, t domain.FraudThresholds) ([]domain.FraudAlert, error) {
	return nil, nil
}

// fakeSchema records the preview limit of the last call.
type fakeSchema struct {
	gotTable string
	gotLimit int
}

func (f *fakeSchema) ListTables(ctx context.Context) ([]string, error) { return nil, nil }

func (f *fakeSchema) TableSummary(ctx context.Context, table string) (*domain.TableSummary, error) {
	f.gotTable = table
	return &domain.TableSummary{Name: table}, nil
}

func (f *fakeSchema) Columns(ctx context.Context) ([]domain.ColumnInfo, error) { return nil, nil }

func (f *fakeSchema) Relationships(ctx context.Context) ([]domain.Relationship, error) {
	return nil, nil
}

func (f *fakeSchema) Preview(ctx context.Context, table string, limit int) (*domain.TablePreview, error) {
	f.gotTable, f.gotLimit = table, limit
	return &domain.TablePreview{Table: table}, nil
}

type serviceFixture struct {
	svc     *Service
	finance *fakeFinance
	music   *fakeMusic
	alerts  *fakeAlerts
	schema  *fakeSchema
	meta    *fakeMeta
	clock   clockwork.FakeClock
}

func newFixture(t *testing.T) *serviceFixture {
	t.Helper()

	f := &serviceFixture{
		finance: &fakeFinance{},
		music:   &fakeMusic{},
		alerts:  &fakeAlerts{},
		schema:  &fakeSchema{},
		meta: &fakeMeta{
			bounds: domain.DateRange{
				From: time.Date(2021, 1, 8, 0, 0, 0, 0, time.UTC),
				To:   time.Date(2025, 12, 22, 0, 0, 0, 0, time.UTC),
			},
		},
		clock: clockwork.NewFakeClockAt(time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)),
	}
	f.svc = NewService(f.finance, nil, f.music, nil, f.alerts, f.schema, f.meta, nil, f.clock)
	return f
}

func TestResolveRange_DefaultsFromInvoiceBounds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.FinanceKPIs(ctx, domain.DateRange{})
	require.NoError(t, err)

	assert.Equal(t, f.meta.bounds.From, f.finance.gotRange.From)
	assert.Equal(t, f.meta.bounds.To, f.finance.gotRange.To)
}

func TestResolveRange_FillsMissingBound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := f.svc.FinanceKPIs(ctx, domain.DateRange{From: from})
	require.NoError(t, err)

	assert.Equal(t, from, f.finance.gotRange.From)
	assert.Equal(t, f.meta.bounds.To, f.finance.gotRange.To)
}

func TestResolveRange_EmptyInvoiceTableUsesTrailingYear(t *testing.T) {
	f := newFixture(t)
	f.meta.err = domain.ErrNoData
	ctx := context.Background()

	_, err := f.svc.FinanceKPIs(ctx, domain.DateRange{})
	require.NoError(t, err)

	now := f.clock.Now()
	assert.Equal(t, now.AddDate(-1, 0, 0), f.finance.gotRange.From)
	assert.Equal(t, now, f.finance.gotRange.To)
}

func TestResolveRange_RejectsInvertedRange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rng := domain.DateRange{
		From: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	_, err := f.svc.FinanceKPIs(ctx, rng)
	assert.ErrorIs(t, err, domain.ErrEmptyRange)
}

func TestFinanceTrends_GranularityDefaultsToMonth(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.FinanceTrends(ctx, domain.DateRange{}, "")
	require.NoError(t, err)
	assert.Equal(t, domain.GranularityMonth, f.finance.gotGran)
}

func TestFinanceTrends_RejectsUnknownGranularity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.FinanceTrends(ctx, domain.DateRange{}, "fortnight")
	assert.ErrorIs(t, err, domain.ErrBadGranularity)
}

func TestMusicTracks_AppliesDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.MusicTracks(ctx, domain.DateRange{}, domain.TrackFilter{})
	require.NoError(t, err)
	assert.Equal(t, defaultMinSales, f.music.gotTrack.MinSales)
	assert.Equal(t, defaultTrackLimit, f.music.gotTrack.Limit)
}

func TestMusicTracks_ClampsOversizedLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.MusicTracks(ctx, domain.DateRange{}, domain.TrackFilter{MinSales: 2, Limit: 9999})
	require.NoError(t, err)
	assert.Equal(t, 2, f.music.gotTrack.MinSales)
	assert.Equal(t, maxListLimit, f.music.gotTrack.Limit)
}

func TestMusicDiscovery_AppliesDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.MusicDiscovery(ctx, domain.DiscoveryFilter{MinPlaylists: -3})
	require.NoError(t, err)
	assert.Equal(t, 0, f.music.gotDiscovery.MinPlaylists)
	assert.Equal(t, defaultDiscoveryLimit, f.music.gotDiscovery.Limit)
}

func TestAlertLowTracks_AppliesDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.AlertLowTracks(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, defaultAlertMaxSales, f.alerts.gotMaxSales)
	assert.Equal(t, defaultAlertLimit, f.alerts.gotLimit)
}

func TestAlertRevenueAnomalies_LookbackOverride(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.AlertRevenueAnomalies(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, 30, f.alerts.gotAnomaly.LookbackDays)
	assert.Equal(t, defaultAnomalyThresholds.CriticalPct, f.alerts.gotAnomaly.CriticalPct)
}

func TestExplorerPreview_ClampsLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.ExplorerPreview(ctx, "track", 0)
	require.NoError(t, err)
	assert.Equal(t, defaultPreviewLimit, f.schema.gotLimit)

	_, err = f.svc.ExplorerPreview(ctx, "track", 1000)
	require.NoError(t, err)
	assert.Equal(t, maxPreviewLimit, f.schema.gotLimit)
}
