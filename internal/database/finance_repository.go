package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/razdine10/Groovify/internal/domain"
)

// FinanceRepo implements domain.FinanceRepository and
// domain.MetaRepository backed by PostgreSQL.
type FinanceRepo struct {
	db *pgxpool.Pool
}

func NewFinanceRepo(db *pgxpool.Pool) *FinanceRepo {
	return &FinanceRepo{db: db}
}

const financeKPIsQuery = `
	SELECT
		COUNT(i.invoice_id) AS total_invoices,
		COALESCE(ROUND(SUM(i.total), 2), 0) AS total_revenue,
		COALESCE(ROUND(AVG(i.total), 2), 0) AS avg_invoice_amount,
		COALESCE(ROUND(MIN(i.total), 2), 0) AS min_invoice,
		COALESCE(ROUND(MAX(i.total), 2), 0) AS max_invoice,
		ROUND(STDDEV(i.total), 2) AS invoice_stddev,
		COUNT(DISTINCT c.customer_id) AS unique_customers,
		COUNT(DISTINCT c.country) AS countries_served,
		COALESCE(ROUND(SUM(i.total) / NULLIF(COUNT(DISTINCT c.customer_id), 0), 2), 0) AS revenue_per_customer,
		COUNT(DISTINCT DATE(i.invoice_date)) AS active_days
	FROM invoice i
	JOIN customer c ON c.customer_id = i.customer_id
	WHERE i.invoice_date::date BETWEEN $1 AND $2`

func (r *FinanceRepo) KPIs(ctx context.Context, rng domain.DateRange) (*domain.FinanceKPIs, error) {
	defer observeQuery("finance_kpis")()

	var k domain.FinanceKPIs
	err := r.db.QueryRow(ctx, financeKPIsQuery, rng.From, rng.To).Scan(
		&k.TotalInvoices, &k.TotalRevenue, &k.AvgInvoiceAmount, &k.MinInvoice,
		&k.MaxInvoice, &k.InvoiceStddev, &k.UniqueCustomers, &k.CountriesServed,
		&k.RevenuePerCustomer, &k.ActiveDays,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query financial KPIs: %w", err)
	}
	return &k, nil
}

// Trend period expressions per granularity. The label formats mirror the
// dashboard's axis labels.
var trendPeriods = map[domain.Granularity]struct{ period, label, groupExtra string }{
	domain.GranularityMonth: {
		period: `to_char(invoice_date, 'YYYY-MM')`,
		label:  `to_char(invoice_date, 'Mon YYYY')`,
	},
	domain.GranularityQuarter: {
		period:     `to_char(invoice_date, 'YYYY') || '-Q' || EXTRACT(QUARTER FROM invoice_date)`,
		label:      `'T' || EXTRACT(QUARTER FROM invoice_date) || ' ' || to_char(invoice_date, 'YYYY')`,
		groupExtra: `, EXTRACT(YEAR FROM invoice_date), EXTRACT(QUARTER FROM invoice_date)`,
	},
	domain.GranularityYear: {
		period: `to_char(invoice_date, 'YYYY')`,
		label:  `to_char(invoice_date, 'YYYY')`,
	},
}

func (r *FinanceRepo) Trends(ctx context.Context, rng domain.DateRange, g domain.Granularity) ([]domain.TrendPoint, error) {
	p, ok := trendPeriods[g]
	if !ok {
		return nil, fmt.Errorf("unknown granularity %q", g)
	}
	defer observeQuery("finance_trends")()

	query := fmt.Sprintf(`
	SELECT
		%s AS period,
		%s AS period_label,
		COUNT(*) AS invoice_count,
		ROUND(SUM(total), 2) AS revenue,
		ROUND(AVG(total), 2) AS avg_invoice,
		COUNT(DISTINCT customer_id) AS unique_customers
	FROM invoice
	WHERE invoice_date::date BETWEEN $1 AND $2
	GROUP BY 1, 2%s
	ORDER BY 1`, p.period, p.label, p.groupExtra)

	rows, err := r.db.Query(ctx, query, rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("failed to query trends: %w", err)
	}
	defer rows.Close()

	var points []domain.TrendPoint
	for rows.Next() {
		var t domain.TrendPoint
		if err := rows.Scan(&t.Period, &t.PeriodLabel, &t.InvoiceCount, &t.Revenue, &t.AvgInvoice, &t.UniqueCustomers); err != nil {
			return nil, fmt.Errorf("failed to scan trend point: %w", err)
		}
		points = append(points, t)
	}
	return points, rows.Err()
}

const financeGeographyQuery = `
	SELECT
		c.country,
		COUNT(DISTINCT c.customer_id) AS customers,
		COUNT(i.invoice_id) AS invoices,
		ROUND(SUM(i.total), 2) AS total_revenue,
		ROUND(AVG(i.total), 2) AS avg_invoice_amount,
		ROUND(SUM(i.total) / COUNT(DISTINCT c.customer_id), 2) AS revenue_per_customer,
		ROUND(100.0 * SUM(i.total) / (SELECT SUM(total) FROM invoice WHERE invoice_date::date BETWEEN $1 AND $2), 2) AS market_share_percent
	FROM customer c
	JOIN invoice i ON c.customer_id = i.customer_id
	WHERE i.invoice_date::date BETWEEN $1 AND $2
	GROUP BY c.country
	ORDER BY total_revenue DESC`

func (r *FinanceRepo) Geography(ctx context.Context, rng domain.DateRange) ([]domain.CountryRevenue, error) {
	defer observeQuery("finance_geography")()

	rows, err := r.db.Query(ctx, financeGeographyQuery, rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("failed to query geographic analysis: %w", err)
	}
	defer rows.Close()

	var result []domain.CountryRevenue
	for rows.Next() {
		var c domain.CountryRevenue
		if err := rows.Scan(&c.Country, &c.Customers, &c.Invoices, &c.TotalRevenue,
			&c.AvgInvoiceAmount, &c.RevenuePerCustomer, &c.MarketSharePct); err != nil {
			return nil, fmt.Errorf("failed to scan country revenue: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

const financeAmountRangesQuery = `
	SELECT
		CASE
			WHEN total < 5 THEN '< $5'
			WHEN total < 10 THEN '$5 - $10'
			WHEN total < 20 THEN '$10 - $20'
			WHEN total < 50 THEN '$20 - $50'
			ELSE '$50+'
		END AS amount_range,
		COUNT(*) AS invoice_count,
		ROUND(SUM(total), 2) AS total_revenue,
		ROUND(AVG(total), 2) AS avg_amount,
		ROUND(100.0 * COUNT(*) / (SELECT COUNT(*) FROM invoice WHERE invoice_date::date BETWEEN $1 AND $2), 2) AS percentage
	FROM invoice
	WHERE invoice_date::date BETWEEN $1 AND $2
	GROUP BY 1
	ORDER BY MIN(total)`

func (r *FinanceRepo) AmountRanges(ctx context.Context, rng domain.DateRange) ([]domain.AmountRangeBucket, error) {
	defer observeQuery("finance_amount_ranges")()

	rows, err := r.db.Query(ctx, financeAmountRangesQuery, rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice ranges: %w", err)
	}
	defer rows.Close()

	var result []domain.AmountRangeBucket
	for rows.Next() {
		var b domain.AmountRangeBucket
		if err := rows.Scan(&b.AmountRange, &b.InvoiceCount, &b.TotalRevenue, &b.AvgAmount, &b.Percentage); err != nil {
			return nil, fmt.Errorf("failed to scan amount range: %w", err)
		}
		result = append(result, b)
	}
	return result, rows.Err()
}

const financeSeasonalityQuery = `
	SELECT
		EXTRACT(MONTH FROM invoice_date)::int AS month_num,
		trim(to_char(invoice_date, 'Month')) AS month_name,
		EXTRACT(QUARTER FROM invoice_date)::int AS quarter,
		COUNT(*) AS invoice_count,
		ROUND(SUM(total), 2) AS total_revenue,
		ROUND(AVG(total), 2) AS avg_invoice
	FROM invoice
	WHERE invoice_date::date BETWEEN $1 AND $2
	GROUP BY 1, 2, 3
	ORDER BY 1`

func (r *FinanceRepo) Seasonality(ctx context.Context, rng domain.DateRange) ([]domain.SeasonalityPoint, error) {
	defer observeQuery("finance_seasonality")()

	rows, err := r.db.Query(ctx, financeSeasonalityQuery, rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("failed to query seasonality: %w", err)
	}
	defer rows.Close()

	var result []domain.SeasonalityPoint
	for rows.Next() {
		var s domain.SeasonalityPoint
		if err := rows.Scan(&s.MonthNum, &s.MonthName, &s.Quarter, &s.InvoiceCount, &s.TotalRevenue, &s.AvgInvoice); err != nil {
			return nil, fmt.Errorf("failed to scan seasonality point: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

const financeWeekdayQuery = `
	SELECT
		EXTRACT(DOW FROM invoice_date)::int AS day_num,
		CASE EXTRACT(DOW FROM invoice_date)
			WHEN 0 THEN 'Sunday'
			WHEN 1 THEN 'Monday'
			WHEN 2 THEN 'Tuesday'
			WHEN 3 THEN 'Wednesday'
			WHEN 4 THEN 'Thursday'
			WHEN 5 THEN 'Friday'
			WHEN 6 THEN 'Saturday'
		END AS day_name,
		COUNT(*) AS invoice_count,
		ROUND(SUM(total), 2) AS total_revenue,
		ROUND(AVG(total), 2) AS avg_invoice
	FROM invoice
	WHERE invoice_date::date BETWEEN $1 AND $2
	GROUP BY 1, 2
	ORDER BY 1`

func (r *FinanceRepo) WeekdayPattern(ctx context.Context, rng domain.DateRange) ([]domain.WeekdayPoint, error) {
	defer observeQuery("finance_weekday")()

	rows, err := r.db.Query(ctx, financeWeekdayQuery, rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("failed to query weekday pattern: %w", err)
	}
	defer rows.Close()

	var result []domain.WeekdayPoint
	for rows.Next() {
		var w domain.WeekdayPoint
		if err := rows.Scan(&w.DayNum, &w.DayName, &w.InvoiceCount, &w.TotalRevenue, &w.AvgInvoice); err != nil {
			return nil, fmt.Errorf("failed to scan weekday point: %w", err)
		}
		result = append(result, w)
	}
	return result, rows.Err()
}

func (r *FinanceRepo) Baskets(ctx context.Context, rng domain.DateRange, g domain.Granularity) ([]domain.BasketPoint, error) {
	p, ok := trendPeriods[g]
	if !ok {
		return nil, fmt.Errorf("unknown granularity %q", g)
	}
	defer observeQuery("finance_baskets")()

	query := fmt.Sprintf(`
	SELECT
		%s AS period,
		%s AS period_label,
		COUNT(*) AS invoice_count,
		ROUND(SUM(total), 2) AS total_revenue,
		ROUND(AVG(total), 2) AS avg_basket,
		ROUND(STDDEV(total), 2) AS basket_std
	FROM invoice
	WHERE invoice_date::date BETWEEN $1 AND $2
	GROUP BY 1, 2%s
	ORDER BY 1`, p.period, p.label, p.groupExtra)

	rows, err := r.db.Query(ctx, query, rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("failed to query basket analysis: %w", err)
	}
	defer rows.Close()

	var result []domain.BasketPoint
	for rows.Next() {
		var b domain.BasketPoint
		if err := rows.Scan(&b.Period, &b.PeriodLabel, &b.InvoiceCount, &b.TotalRevenue, &b.AvgBasket, &b.BasketStddev); err != nil {
			return nil, fmt.Errorf("failed to scan basket point: %w", err)
		}
		result = append(result, b)
	}
	return result, rows.Err()
}

const dateBoundsQuery = `
	SELECT MIN(invoice_date)::date AS min_d
	     , MAX(invoice_date)::date AS max_d
	FROM invoice`

// DateBounds returns the minimum and maximum invoice dates.
func (r *FinanceRepo) DateBounds(ctx context.Context) (domain.DateRange, error) {
	defer observeQuery("date_bounds")()

	var minD, maxD *time.Time
	err := r.db.QueryRow(ctx, dateBoundsQuery).Scan(&minD, &maxD)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.DateRange{}, domain.ErrNoData
	}
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("failed to query date bounds: %w", err)
	}
	// Aggregates over an empty invoice table come back as NULLs.
	if minD == nil || maxD == nil {
		return domain.DateRange{}, domain.ErrNoData
	}
	return domain.DateRange{From: *minD, To: *maxD}, nil
}
