package domain

import (
	"context"
	"time"
)

// LowTrack is a track flagged for weak sales.
type LowTrack struct {
	TrackName       string   `json:"track_name"`
	ArtistName      string   `json:"artist_name"`
	AlbumTitle      string   `json:"album_title"`
	Genre           string   `json:"genre"`
	TotalSales      int64    `json:"total_sales"`
	AvgPrice        *float64 `json:"avg_price"`
	DurationMinutes float64  `json:"duration_minutes"`
	AlertLevel      string   `json:"alert_level"`
}

// LowAlbum is an album flagged for weak sales.
type LowAlbum struct {
	AlbumTitle   string   `json:"album_title"`
	ArtistName   string   `json:"artist_name"`
	TrackCount   int64    `json:"track_count"`
	TotalSales   int64    `json:"total_sales"`
	AlbumRevenue *float64 `json:"album_revenue"`
	AlertLevel   string   `json:"alert_level"`
}

// RevenueAnomaly is a daily revenue figure that deviates from its rolling
// average.
type RevenueAnomaly struct {
	AlertDate    time.Time `json:"alert_date"`
	DailyRevenue float64   `json:"daily_revenue"`
	RollingAvg   float64   `json:"rolling_avg"`
	ChangePct    float64   `json:"revenue_change_pct"`
	Severity     string    `json:"severity"`
	AlertMessage string    `json:"alert_message"`
}

// ChurnAlert is a customer whose inactivity crossed the alert windows.
type ChurnAlert struct {
	CustomerID    int64      `json:"customer_id"`
	CustomerName  string     `json:"customer_name"`
	LastPurchase  *time.Time `json:"last_purchase"`
	TotalOrders   int64      `json:"total_orders"`
	CustomerValue *float64   `json:"customer_value"`
	DaysInactive  *float64   `json:"days_inactive"`
	RiskLevel     string     `json:"risk_level"`
	Severity      string     `json:"severity"`
	AlertMessage  string     `json:"alert_message"`
}

// EmployeeAlert flags a support rep whose order volume is below the
// configured thresholds.
type EmployeeAlert struct {
	EmployeeID       int64   `json:"employee_id"`
	EmployeeName     string  `json:"employee_name"`
	CustomerCount    int64   `json:"customer_count"`
	OrderCount       int64   `json:"order_count"`
	TotalSales       float64 `json:"total_sales"`
	PerformanceLevel string  `json:"performance_level"`
	Severity         string  `json:"severity"`
	AlertMessage     string  `json:"alert_message"`
}

// FraudAlert is an invoice matching a suspicious purchasing pattern in
// the trailing 30 days.
type FraudAlert struct {
	InvoiceID      int64     `json:"invoice_id"`
	CustomerID     int64     `json:"customer_id"`
	CustomerName   string    `json:"customer_name"`
	InvoiceDate    time.Time `json:"invoice_date"`
	Amount         float64   `json:"transaction_amount"`
	ItemsPurchased int64     `json:"items_purchased"`
	Pattern        string    `json:"transaction_pattern"`
	AlertType      string    `json:"alert_type"`
	Severity       string    `json:"severity"`
	Description    string    `json:"description"`
}

// AnomalyThresholds parameterizes the revenue anomaly scan.
type AnomalyThresholds struct {
	LookbackDays int
	CriticalPct  float64
	WarningPct   float64
}

// ChurnAlertThresholds parameterizes the churn alert scan. Days are
// inactivity cutoffs, values are lifetime spend cutoffs.
type ChurnAlertThresholds struct {
	HighDays     int
	HighValue    float64
	MediumDays   int
	MediumValue  float64
	LowDays      int
	CriticalDays int
	WarningDays  int
}

// EmployeeAlertThresholds parameterizes the rep performance scan by order
// counts.
type EmployeeAlertThresholds struct {
	LowOrders    int
	MediumOrders int
}

// FraudThresholds parameterizes the suspicious transaction scan.
type FraudThresholds struct {
	HighSingleItemAmount float64
	BulkItemCount        int
	HighAmount           float64
	FraudAmount          float64
	SuspiciousItemCount  int
}

// AlertRepository serves the alerts page scans.
type AlertRepository interface {
	LowTracks(ctx context.Context, maxSales, limit int) ([]LowTrack, error)
	LowAlbums(ctx context.Context, maxSales, limit int) ([]LowAlbum, error)
	RevenueAnomalies(ctx context.Context, t AnomalyThresholds) ([]RevenueAnomaly, error)
	ChurnAlerts(ctx context.Context, t ChurnAlertThresholds) ([]ChurnAlert, error)
	EmployeeAlerts(ctx context.Context, t EmployeeAlertThresholds) ([]EmployeeAlert, error)
	FraudAlerts(ctx context.Context, t FraudThresholds) ([]FraudAlert, error)
}
