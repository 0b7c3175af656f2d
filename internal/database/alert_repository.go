package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/razdine10/Groovify/internal/domain"
)

// AlertRepo implements domain.AlertRepository backed by PostgreSQL. All
// severity classification happens in SQL so that the thresholds bind as
// query parameters.
type AlertRepo struct {
	db *pgxpool.Pool
}

func NewAlertRepo(db *pgxpool.Pool) *AlertRepo {
	return &AlertRepo{db: db}
}

const lowTracksQuery = `
	SELECT t.name AS track_name
	     , ar.name AS artist_name
	     , al.title AS album_title
	     , g.name AS genre
	     , COALESCE(SUM(il.quantity), 0) AS total_sales
	     , AVG(il.unit_price) AS avg_price
	     , t.milliseconds / 60000.0 AS duration_minutes
	     , CASE
	           WHEN COALESCE(SUM(il.quantity), 0) = 0 THEN 'CRITIQUE'
	           WHEN COALESCE(SUM(il.quantity), 0) <= $1 THEN 'ATTENTION'
	           ELSE 'OK'
	       END AS alert_level
	FROM track t
	JOIN album al ON t.album_id = al.album_id
	JOIN artist ar ON al.artist_id = ar.artist_id
	LEFT JOIN genre g ON t.genre_id = g.genre_id
	LEFT JOIN invoice_line il ON t.track_id = il.track_id
	GROUP BY t.track_id, t.name, ar.name, al.title, g.name, t.milliseconds
	HAVING COALESCE(SUM(il.quantity), 0) <= $1
	ORDER BY total_sales ASC, t.name
	LIMIT $2`

func (r *AlertRepo) LowTracks(ctx context.Context, maxSales, limit int) ([]domain.LowTrack, error) {
	defer observeQuery("alerts_low_tracks")()

	rows, err := r.db.Query(ctx, lowTracksQuery, maxSales, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query low-selling tracks: %w", err)
	}
	defer rows.Close()

	var result []domain.LowTrack
	for rows.Next() {
		var t domain.LowTrack
		if err := rows.Scan(&t.TrackName, &t.ArtistName, &t.AlbumTitle, &t.Genre,
			&t.TotalSales, &t.AvgPrice, &t.DurationMinutes, &t.AlertLevel); err != nil {
			return nil, fmt.Errorf("failed to scan low track: %w", err)
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

const lowAlbumsQuery = `
	SELECT al.title AS album_title
	     , ar.name AS artist_name
	     , COUNT(t.track_id) AS track_count
	     , COALESCE(SUM(il.quantity), 0) AS total_sales
	     , SUM(il.quantity * il.unit_price) AS album_revenue
	     , CASE
	           WHEN COALESCE(SUM(il.quantity), 0) = 0 THEN 'CRITIQUE'
	           WHEN COALESCE(SUM(il.quantity), 0) <= $1 THEN 'ATTENTION'
	           ELSE 'OK'
	       END AS alert_level
	FROM album al
	JOIN artist ar ON al.artist_id = ar.artist_id
	JOIN track t ON al.album_id = t.album_id
	LEFT JOIN invoice_line il ON t.track_id = il.track_id
	GROUP BY al.album_id, al.title, ar.name
	HAVING COALESCE(SUM(il.quantity), 0) <= $1
	ORDER BY total_sales ASC, al.title
	LIMIT $2`

func (r *AlertRepo) LowAlbums(ctx context.Context, maxSales, limit int) ([]domain.LowAlbum, error) {
	defer observeQuery("alerts_low_albums")()

	rows, err := r.db.Query(ctx, lowAlbumsQuery, maxSales, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query low-selling albums: %w", err)
	}
	defer rows.Close()

	var result []domain.LowAlbum
	for rows.Next() {
		var a domain.LowAlbum
		if err := rows.Scan(&a.AlbumTitle, &a.ArtistName, &a.TrackCount,
			&a.TotalSales, &a.AlbumRevenue, &a.AlertLevel); err != nil {
			return nil, fmt.Errorf("failed to scan low album: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

const revenueAnomaliesQuery = `
	WITH daily_revenue AS (
		SELECT invoice_date::date AS sale_date
		     , SUM(total) AS daily_total
		FROM invoice
		WHERE invoice_date >= CURRENT_DATE - ($1 * INTERVAL '1 day')
		GROUP BY invoice_date::date
	),
	revenue_with_avg AS (
		SELECT sale_date
		     , daily_total
		     , AVG(daily_total) OVER (
		           ORDER BY sale_date
		           ROWS BETWEEN 6 PRECEDING AND CURRENT ROW
		       ) AS rolling_avg
		FROM daily_revenue
	)
	SELECT sale_date AS alert_date
	     , daily_total AS daily_revenue
	     , rolling_avg
	     , ((daily_total - rolling_avg) / NULLIF(rolling_avg, 0) * 100)::float8 AS revenue_change_pct
	     , CASE
	           WHEN daily_total < rolling_avg * (1 - $2 / 100.0) THEN 'CRITIQUE'
	           WHEN daily_total < rolling_avg * (1 - $3 / 100.0) THEN 'ATTENTION'
	           ELSE 'INFO'
	       END AS severity
	     , CASE
	           WHEN daily_total < rolling_avg * (1 - $2 / 100.0)
	               THEN 'Chute importante du chiffre d''affaires'
	           WHEN daily_total < rolling_avg * (1 - $3 / 100.0)
	               THEN 'Baisse notable du chiffre d''affaires'
	           ELSE 'Revenus dans la normale'
	       END AS alert_message
	FROM revenue_with_avg
	WHERE daily_total < rolling_avg * (1 - $3 / 100.0)
	ORDER BY sale_date DESC`

func (r *AlertRepo) RevenueAnomalies(ctx context.Context, t domain.AnomalyThresholds) ([]domain.RevenueAnomaly, error) {
	defer observeQuery("alerts_revenue_anomalies")()

	rows, err := r.db.Query(ctx, revenueAnomaliesQuery, t.LookbackDays, t.CriticalPct, t.WarningPct)
	if err != nil {
		return nil, fmt.Errorf("failed to query revenue anomalies: %w", err)
	}
	defer rows.Close()

	var result []domain.RevenueAnomaly
	for rows.Next() {
		var a domain.RevenueAnomaly
		if err := rows.Scan(&a.AlertDate, &a.DailyRevenue, &a.RollingAvg,
			&a.ChangePct, &a.Severity, &a.AlertMessage); err != nil {
			return nil, fmt.Errorf("failed to scan revenue anomaly: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

const churnAlertsQuery = `
	WITH customer_activity AS (
		SELECT c.customer_id
		     , c.first_name || ' ' || c.last_name AS customer_name
		     , MAX(i.invoice_date) AS last_purchase
		     , COUNT(i.invoice_id) AS total_orders
		     , SUM(i.total) AS customer_value
		     , EXTRACT(DAYS FROM CURRENT_DATE - MAX(i.invoice_date))::float8 AS days_inactive
		FROM customer c
		LEFT JOIN invoice i ON c.customer_id = i.customer_id
		GROUP BY c.customer_id, c.first_name, c.last_name
	)
	SELECT customer_id
	     , customer_name
	     , last_purchase
	     , total_orders
	     , customer_value
	     , days_inactive
	     , CASE
	           WHEN days_inactive > $1 AND customer_value > $2 THEN 'CLIENT VIP INACTIF'
	           WHEN days_inactive > $3 AND customer_value > $4 THEN 'CLIENT FIDELE INACTIF'
	           WHEN days_inactive > $5 THEN 'CLIENT STANDARD INACTIF'
	           ELSE 'ACTIF'
	       END AS risk_level
	     , CASE
	           WHEN days_inactive > $6 THEN 'CRITIQUE'
	           WHEN days_inactive > $7 THEN 'ATTENTION'
	           ELSE 'INFO'
	       END AS severity
	     , 'Inactif depuis ' || COALESCE(days_inactive::int::text, 'toujours') || ' jours' AS alert_message
	FROM customer_activity
	WHERE days_inactive > $5 OR days_inactive IS NULL
	ORDER BY customer_value DESC NULLS LAST`

func (r *AlertRepo) ChurnAlerts(ctx context.Context, t domain.ChurnAlertThresholds) ([]domain.ChurnAlert, error) {
	defer observeQuery("alerts_churn")()

	rows, err := r.db.Query(ctx, churnAlertsQuery,
		t.HighDays, t.HighValue, t.MediumDays, t.MediumValue, t.LowDays, t.CriticalDays, t.WarningDays)
	if err != nil {
		return nil, fmt.Errorf("failed to query churn alerts: %w", err)
	}
	defer rows.Close()

	var result []domain.ChurnAlert
	for rows.Next() {
		var a domain.ChurnAlert
		if err := rows.Scan(&a.CustomerID, &a.CustomerName, &a.LastPurchase, &a.TotalOrders,
			&a.CustomerValue, &a.DaysInactive, &a.RiskLevel, &a.Severity, &a.AlertMessage); err != nil {
			return nil, fmt.Errorf("failed to scan churn alert: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

const employeeAlertsQuery = `
	SELECT e.employee_id
	     , e.first_name || ' ' || e.last_name AS employee_name
	     , COUNT(DISTINCT c.customer_id) AS customer_count
	     , COUNT(DISTINCT i.invoice_id) AS order_count
	     , COALESCE(SUM(i.total), 0) AS total_sales
	     , CASE
	           WHEN COUNT(DISTINCT i.invoice_id) < $1 THEN 'PERFORMANCE FAIBLE'
	           WHEN COUNT(DISTINCT i.invoice_id) < $2 THEN 'PERFORMANCE MOYENNE'
	           ELSE 'BONNE PERFORMANCE'
	       END AS performance_level
	     , CASE
	           WHEN COUNT(DISTINCT i.invoice_id) < $1 THEN 'ATTENTION'
	           ELSE 'INFO'
	       END AS severity
	     , 'Seulement ' || COUNT(DISTINCT i.invoice_id) || ' commandes gerees' AS alert_message
	FROM employee e
	LEFT JOIN customer c ON e.employee_id = c.support_rep_id
	LEFT JOIN invoice i ON c.customer_id = i.customer_id
	WHERE e.title LIKE '%Support%'
	GROUP BY e.employee_id, e.first_name, e.last_name
	HAVING COUNT(DISTINCT i.invoice_id) < $2
	ORDER BY order_count ASC`

func (r *AlertRepo) EmployeeAlerts(ctx context.Context, t domain.EmployeeAlertThresholds) ([]domain.EmployeeAlert, error) {
	defer observeQuery("alerts_employees")()

	rows, err := r.db.Query(ctx, employeeAlertsQuery, t.LowOrders, t.MediumOrders)
	if err != nil {
		return nil, fmt.Errorf("failed to query employee alerts: %w", err)
	}
	defer rows.Close()

	var result []domain.EmployeeAlert
	for rows.Next() {
		var a domain.EmployeeAlert
		if err := rows.Scan(&a.EmployeeID, &a.EmployeeName, &a.CustomerCount, &a.OrderCount,
			&a.TotalSales, &a.PerformanceLevel, &a.Severity, &a.AlertMessage); err != nil {
			return nil, fmt.Errorf("failed to scan employee alert: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

const fraudAlertsQuery = `
	WITH transaction_patterns AS (
		SELECT i.invoice_id
		     , i.customer_id
		     , c.first_name || ' ' || c.last_name AS customer_name
		     , i.invoice_date
		     , i.total
		     , COUNT(il.invoice_line_id) AS items_purchased
		     , CASE
		           WHEN i.total > $1 AND COUNT(il.invoice_line_id) = 1 THEN 'MONTANT ELEVE - ARTICLE UNIQUE'
		           WHEN COUNT(il.invoice_line_id) > $2 THEN 'ACHAT EN MASSE'
		           WHEN i.total > $3 THEN 'MONTANT INHABITUEL'
		           ELSE 'NORMAL'
		       END AS transaction_pattern
		FROM invoice i
		JOIN customer c ON i.customer_id = c.customer_id
		JOIN invoice_line il ON i.invoice_id = il.invoice_id
		WHERE i.invoice_date >= CURRENT_DATE - INTERVAL '30 days'
		GROUP BY i.invoice_id, i.customer_id, c.first_name, c.last_name, i.invoice_date, i.total
	)
	SELECT invoice_id
	     , customer_id
	     , customer_name
	     , invoice_date
	     , total AS transaction_amount
	     , items_purchased
	     , transaction_pattern
	     , CASE
	           WHEN transaction_pattern != 'NORMAL' THEN 'TRANSACTION SUSPECTE'
	           ELSE 'TRANSACTION NORMALE'
	       END AS alert_type
	     , CASE
	           WHEN total > $4 THEN 'CRITIQUE'
	           WHEN transaction_pattern != 'NORMAL' THEN 'ATTENTION'
	           ELSE 'INFO'
	       END AS severity
	     , 'Montant: ' || total || ' EUR - ' || items_purchased || ' articles' AS description
	FROM transaction_patterns
	WHERE transaction_pattern != 'NORMAL' OR total > $5 OR items_purchased > $6
	ORDER BY total DESC`

func (r *AlertRepo) FraudAlerts(ctx context.Context, t domain.FraudThresholds) ([]domain.FraudAlert, error) {
	defer observeQuery("alerts_fraud")()

	rows, err := r.db.Query(ctx, fraudAlertsQuery,
		t.HighSingleItemAmount, t.BulkItemCount, t.HighAmount, t.FraudAmount, t.HighAmount, t.SuspiciousItemCount)
	if err != nil {
		return nil, fmt.Errorf("failed to query fraud alerts: %w", err)
	}
	defer rows.Close()

	var result []domain.FraudAlert
	for rows.Next() {
		var a domain.FraudAlert
		if err := rows.Scan(&a.InvoiceID, &a.CustomerID, &a.CustomerName, &a.InvoiceDate,
			&a.Amount, &a.ItemsPurchased, &a.Pattern, &a.AlertType, &a.Severity, &a.Description); err != nil {
			return nil, fmt.Errorf("failed to scan fraud alert: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}
