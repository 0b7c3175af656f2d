package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/razdine10/Groovify/internal/domain"
)

// CustomerRepo implements domain.CustomerRepository backed by PostgreSQL.
type CustomerRepo struct {
	db *pgxpool.Pool
}

func NewCustomerRepo(db *pgxpool.Pool) *CustomerRepo {
	return &CustomerRepo{db: db}
}

const rfmClustersQuery = `
	WITH customer_rfm AS (
		SELECT c.customer_id
		     , c.first_name || ' ' || c.last_name AS customer_name
		     , EXTRACT(DAYS FROM (CURRENT_DATE - MAX(i.invoice_date)))::float8 AS recency_days
		     , COUNT(i.invoice_id) AS frequency
		     , ROUND(SUM(i.total), 2) AS monetary
		FROM customer c
		JOIN invoice i ON c.customer_id = i.customer_id
		WHERE i.invoice_date::date BETWEEN $1 AND $2
		GROUP BY c.customer_id, c.first_name, c.last_name
	),
	customer_music_preferences AS (
		SELECT c.customer_id
		     , COUNT(DISTINCT g.genre_id) AS nb_different_genres
		     , COUNT(il.invoice_line_id) AS nb_purchased_tracks
		FROM customer c
		JOIN invoice i ON c.customer_id = i.customer_id
		JOIN invoice_line il ON i.invoice_id = il.invoice_id
		JOIN track t ON il.track_id = t.track_id
		JOIN genre g ON t.genre_id = g.genre_id
		WHERE i.invoice_date::date BETWEEN $1 AND $2
		GROUP BY c.customer_id
	)
	SELECT rfm.customer_id
	     , rfm.customer_name
	     , rfm.recency_days
	     , rfm.frequency
	     , rfm.monetary
	     , COALESCE(mp.nb_different_genres, 0) AS nb_different_genres
	     , COALESCE(mp.nb_purchased_tracks, 0) AS nb_purchased_tracks
	     , CASE
	           WHEN recency_days <= 90 AND frequency >= 5 AND monetary >= 40
	               THEN 'Champions'
	           WHEN recency_days <= 90 AND frequency >= 3 AND monetary >= 25
	               THEN 'Loyal Customers'
	           WHEN recency_days <= 180 AND frequency >= 2
	               THEN 'Potential Loyalists'
	           WHEN recency_days <= 90 AND frequency < 3
	               THEN 'New Customers'
	           WHEN recency_days > 180 AND recency_days <= 365
	               THEN 'At Risk'
	           WHEN recency_days > 365
	               THEN 'Lost'
	           ELSE 'Others'
	       END AS rfm_cluster
	FROM customer_rfm rfm
	LEFT JOIN customer_music_preferences mp ON rfm.customer_id = mp.customer_id`

func (r *CustomerRepo) RFMClusters(ctx context.Context, rng domain.DateRange) ([]domain.RFMCustomer, error) {
	defer observeQuery("customers_rfm")()

	rows, err := r.db.Query(ctx, rfmClustersQuery, rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("failed to query RFM clusters: %w", err)
	}
	defer rows.Close()

	var result []domain.RFMCustomer
	for rows.Next() {
		var c domain.RFMCustomer
		if err := rows.Scan(&c.CustomerID, &c.CustomerName, &c.RecencyDays, &c.Frequency,
			&c.Monetary, &c.DifferentGenres, &c.PurchasedTracks, &c.Cluster); err != nil {
			return nil, fmt.Errorf("failed to scan RFM customer: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

const customerJourneyQuery = `
	WITH customer_timeline AS (
		SELECT c.customer_id
		     , c.first_name || ' ' || c.last_name AS customer_name
		     , c.country
		     , c.city
		     , MIN(i.invoice_date) AS first_purchase
		     , MAX(i.invoice_date) AS last_purchase
		     , COUNT(i.invoice_id) AS total_orders
		     , SUM(i.total) AS total_spent
		     , AVG(i.total) AS avg_order_value
		     , EXTRACT(DAYS FROM (MAX(i.invoice_date) - MIN(i.invoice_date)))::float8 AS customer_lifespan_days
		FROM customer c
		JOIN invoice i ON c.customer_id = i.customer_id
		WHERE i.invoice_date::date BETWEEN $1 AND $2
		GROUP BY c.customer_id, c.first_name, c.last_name, c.country, c.city
	)
	SELECT customer_id
	     , customer_name
	     , country
	     , city
	     , first_purchase
	     , last_purchase
	     , total_orders
	     , total_spent
	     , avg_order_value
	     , customer_lifespan_days
	     , CASE
	           WHEN total_orders = 1 THEN 'One-time'
	           WHEN total_orders <= 3 THEN 'Occasional'
	           WHEN total_orders <= 6 THEN 'Regular'
	           ELSE 'Frequent'
	       END AS customer_type
	     , CASE
	           WHEN total_spent >= 50 THEN 'High Value'
	           WHEN total_spent >= 25 THEN 'Medium Value'
	           ELSE 'Low Value'
	       END AS value_segment
	FROM customer_timeline
	ORDER BY total_spent DESC`

func (r *CustomerRepo) Journeys(ctx context.Context, rng domain.DateRange) ([]domain.CustomerJourney, error) {
	defer observeQuery("customers_journey")()

	rows, err := r.db.Query(ctx, customerJourneyQuery, rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("failed to query customer journeys: %w", err)
	}
	defer rows.Close()

	var result []domain.CustomerJourney
	for rows.Next() {
		var c domain.CustomerJourney
		if err := rows.Scan(&c.CustomerID, &c.CustomerName, &c.Country, &c.City,
			&c.FirstPurchase, &c.LastPurchase, &c.TotalOrders, &c.TotalSpent,
			&c.AvgOrderValue, &c.LifespanDays, &c.CustomerType, &c.ValueSegment); err != nil {
			return nil, fmt.Errorf("failed to scan customer journey: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

const customerChurnQuery = `
	WITH customer_activity AS (
		SELECT c.customer_id
		     , c.first_name || ' ' || c.last_name AS customer_name
		     , c.country
		     , MAX(i.invoice_date) AS last_purchase_date
		     , COUNT(i.invoice_id) AS total_orders
		     , SUM(i.total) AS total_value
		     , AVG(i.total) AS avg_order_value
		     , EXTRACT(DAYS FROM (CURRENT_DATE - MAX(i.invoice_date)))::float8 AS days_since_last_purchase
		FROM customer c
		LEFT JOIN invoice i ON c.customer_id = i.customer_id
		                    AND i.invoice_date::date BETWEEN $1 AND $2
		GROUP BY c.customer_id, c.first_name, c.last_name, c.country
	)
	SELECT customer_id
	     , customer_name
	     , country
	     , last_purchase_date
	     , total_orders
	     , total_value
	     , avg_order_value
	     , days_since_last_purchase
	     , CASE
	           WHEN days_since_last_purchase IS NULL THEN 'Never Purchased'
	           WHEN days_since_last_purchase <= $3 * 30 THEN 'Active'
	           WHEN days_since_last_purchase <= $4 * 30 THEN 'At Risk'
	           ELSE 'Churn Risk'
	       END AS churn_status
	     , CASE
	           WHEN total_value >= 50 THEN 'High'
	           WHEN total_value >= 25 THEN 'Medium'
	           WHEN total_value > 0 THEN 'Low'
	           ELSE 'Zero'
	       END AS value_tier
	FROM customer_activity
	ORDER BY total_value DESC NULLS LAST`

func (r *CustomerRepo) Churn(ctx context.Context, rng domain.DateRange, w domain.ChurnWindows) ([]domain.ChurnCustomer, error) {
	defer observeQuery("customers_churn")()

	rows, err := r.db.Query(ctx, customerChurnQuery, rng.From, rng.To, w.ActiveMonths, w.RiskMonths)
	if err != nil {
		return nil, fmt.Errorf("failed to query churn analysis: %w", err)
	}
	defer rows.Close()

	var result []domain.ChurnCustomer
	for rows.Next() {
		var c domain.ChurnCustomer
		if err := rows.Scan(&c.CustomerID, &c.CustomerName, &c.Country, &c.LastPurchase,
			&c.TotalOrders, &c.TotalValue, &c.AvgOrderValue, &c.DaysSinceLast,
			&c.ChurnStatus, &c.ValueTier); err != nil {
			return nil, fmt.Errorf("failed to scan churn customer: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

const customerGeographyQuery = `
	SELECT c.country
	     , c.state
	     , c.city
	     , COUNT(DISTINCT c.customer_id) AS customer_count
	     , COUNT(DISTINCT i.invoice_id) AS total_orders
	     , COALESCE(SUM(i.total), 0) AS total_revenue
	     , COALESCE(AVG(i.total), 0) AS avg_order_value
	     , COALESCE(SUM(i.total) / NULLIF(COUNT(DISTINCT c.customer_id), 0), 0) AS revenue_per_customer
	FROM customer c
	LEFT JOIN invoice i ON c.customer_id = i.customer_id
	                    AND i.invoice_date::date BETWEEN $1 AND $2
	GROUP BY c.country, c.state, c.city
	ORDER BY total_revenue DESC`

func (r *CustomerRepo) Geography(ctx context.Context, rng domain.DateRange) ([]domain.CustomerGeo, error) {
	defer observeQuery("customers_geography")()

	rows, err := r.db.Query(ctx, customerGeographyQuery, rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("failed to query customer geography: %w", err)
	}
	defer rows.Close()

	var result []domain.CustomerGeo
	for rows.Next() {
		var g domain.CustomerGeo
		if err := rows.Scan(&g.Country, &g.State, &g.City, &g.CustomerCount,
			&g.TotalOrders, &g.TotalRevenue, &g.AvgOrderValue, &g.RevenuePerCustomer); err != nil {
			return nil, fmt.Errorf("failed to scan customer geography: %w", err)
		}
		result = append(result, g)
	}
	return result, rows.Err()
}

const customerPreferencesQuery = `
	WITH customer_genre_prefs AS (
		SELECT c.customer_id
		     , c.first_name || ' ' || c.last_name AS customer_name
		     , g.name AS preferred_genre
		     , COUNT(il.invoice_line_id) AS tracks_purchased
		     , SUM(il.unit_price * il.quantity) AS spent_on_genre
		     , RANK() OVER (
		           PARTITION BY c.customer_id
		           ORDER BY COUNT(il.invoice_line_id) DESC
		       ) AS genre_rank
		FROM customer c
		JOIN invoice i ON c.customer_id = i.customer_id
		JOIN invoice_line il ON i.invoice_id = il.invoice_id
		JOIN track t ON il.track_id = t.track_id
		JOIN genre g ON t.genre_id = g.genre_id
		WHERE i.invoice_date::date BETWEEN $1 AND $2
		GROUP BY c.customer_id, c.first_name, c.last_name, g.genre_id, g.name
	),
	customer_totals AS (
		SELECT c.customer_id
		     , COUNT(il.invoice_line_id) AS total_tracks
		     , SUM(il.unit_price * il.quantity) AS total_spent
		     , COUNT(DISTINCT g.genre_id) AS genres_explored
		     , SUM(t.milliseconds) / 1000.0 / 60.0 AS total_minutes_purchased
		FROM customer c
		JOIN invoice i ON c.customer_id = i.customer_id
		JOIN invoice_line il ON i.invoice_id = il.invoice_id
		JOIN track t ON il.track_id = t.track_id
		JOIN genre g ON t.genre_id = g.genre_id
		WHERE i.invoice_date::date BETWEEN $1 AND $2
		GROUP BY c.customer_id
	)
	SELECT cgp.customer_id
	     , cgp.customer_name
	     , cgp.preferred_genre
	     , cgp.tracks_purchased AS tracks_in_preferred_genre
	     , cgp.spent_on_genre
	     , ct.total_tracks
	     , ct.total_spent
	     , ct.genres_explored
	     , ct.total_minutes_purchased
	     , ROUND((cgp.spent_on_genre / ct.total_spent * 100), 1) AS genre_preference_pct
	FROM customer_genre_prefs cgp
	JOIN customer_totals ct ON cgp.customer_id = ct.customer_id
	WHERE cgp.genre_rank = 1
	ORDER BY ct.total_spent DESC`

func (r *CustomerRepo) Preferences(ctx context.Context, rng domain.DateRange) ([]domain.CustomerPreference, error) {
	defer observeQuery("customers_preferences")()

	rows, err := r.db.Query(ctx, customerPreferencesQuery, rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("failed to query customer preferences: %w", err)
	}
	defer rows.Close()

	var result []domain.CustomerPreference
	for rows.Next() {
		var p domain.CustomerPreference
		if err := rows.Scan(&p.CustomerID, &p.CustomerName, &p.PreferredGenre,
			&p.TracksInGenre, &p.SpentOnGenre, &p.TotalTracks, &p.TotalSpent,
			&p.GenresExplored, &p.TotalMinutes, &p.GenrePreferencePct); err != nil {
			return nil, fmt.Errorf("failed to scan customer preference: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

const customerCohortsQuery = `
	WITH customer_cohorts AS (
		SELECT c.customer_id
		     , DATE_TRUNC('month', MIN(i.invoice_date)) AS cohort_month
		FROM customer c
		JOIN invoice i ON c.customer_id = i.customer_id
		GROUP BY c.customer_id
	),
	customer_purchases AS (
		SELECT cc.customer_id
		     , cc.cohort_month
		     , DATE_TRUNC('month', i.invoice_date) AS purchase_month
		     , SUM(i.total) AS monthly_revenue
		FROM customer_cohorts cc
		JOIN invoice i ON cc.customer_id = i.customer_id
		WHERE i.invoice_date::date BETWEEN $1 AND $2
		GROUP BY cc.customer_id, cc.cohort_month, DATE_TRUNC('month', i.invoice_date)
	),
	cohort_sizes AS (
		SELECT cohort_month
		     , COUNT(DISTINCT customer_id) AS cohort_size
		FROM customer_cohorts
		GROUP BY cohort_month
	)
	SELECT cp.cohort_month
	     , cp.purchase_month
	     , EXTRACT(MONTH FROM AGE(cp.purchase_month, cp.cohort_month))::int AS period_number
	     , COUNT(DISTINCT cp.customer_id) AS customers
	     , cs.cohort_size
	     , ROUND(COUNT(DISTINCT cp.customer_id)::decimal / cs.cohort_size * 100, 2) AS retention_rate
	     , SUM(cp.monthly_revenue) AS cohort_revenue
	FROM customer_purchases cp
	JOIN cohort_sizes cs ON cp.cohort_month = cs.cohort_month
	GROUP BY cp.cohort_month, cp.purchase_month, cs.cohort_size
	ORDER BY cp.cohort_month, cp.purchase_month`

func (r *CustomerRepo) Cohorts(ctx context.Context, rng domain.DateRange) ([]domain.CohortPoint, error) {
	defer observeQuery("customers_cohorts")()

	rows, err := r.db.Query(ctx, customerCohortsQuery, rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("failed to query cohort analysis: %w", err)
	}
	defer rows.Close()

	var result []domain.CohortPoint
	for rows.Next() {
		var c domain.CohortPoint
		if err := rows.Scan(&c.CohortMonth, &c.PurchaseMonth, &c.PeriodNumber,
			&c.Customers, &c.CohortSize, &c.RetentionRate, &c.CohortRevenue); err != nil {
			return nil, fmt.Errorf("failed to scan cohort point: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}
