package domain

import (
	"context"
	"time"
)

// RFMCustomer is one row of the RFM clustering report.
type RFMCustomer struct {
	CustomerID      int64   `json:"customer_id"`
	CustomerName    string  `json:"customer_name"`
	RecencyDays     float64 `json:"recency_days"`
	Frequency       int64   `json:"frequency"`
	Monetary        float64 `json:"monetary"`
	DifferentGenres int64   `json:"nb_different_genres"`
	PurchasedTracks int64   `json:"nb_purchased_tracks"`
	Cluster         string  `json:"rfm_cluster"`
}

// CustomerJourney is one row of the lifecycle analysis.
type CustomerJourney struct {
	CustomerID    int64     `json:"customer_id"`
	CustomerName  string    `json:"customer_name"`
	Country       string    `json:"country"`
	City          string    `json:"city"`
	FirstPurchase time.Time `json:"first_purchase"`
	LastPurchase  time.Time `json:"last_purchase"`
	TotalOrders   int64     `json:"total_orders"`
	TotalSpent    float64   `json:"total_spent"`
	AvgOrderValue float64   `json:"avg_order_value"`
	LifespanDays  float64   `json:"customer_lifespan_days"`
	CustomerType  string    `json:"customer_type"`
	ValueSegment  string    `json:"value_segment"`
}

// ChurnWindows parameterizes the churn classification in months.
type ChurnWindows struct {
	ActiveMonths int
	RiskMonths   int
}

// ChurnCustomer is one row of the churn analysis. Customers without any
// purchase in range carry nil activity fields.
type ChurnCustomer struct {
	CustomerID    int64      `json:"customer_id"`
	CustomerName  string     `json:"customer_name"`
	Country       string     `json:"country"`
	LastPurchase  *time.Time `json:"last_purchase_date"`
	TotalOrders   int64      `json:"total_orders"`
	TotalValue    *float64   `json:"total_value"`
	AvgOrderValue *float64   `json:"avg_order_value"`
	DaysSinceLast *float64   `json:"days_since_last_purchase"`
	ChurnStatus   string     `json:"churn_status"`
	ValueTier     string     `json:"value_tier"`
}

// CustomerGeo is one row of the geographic customer distribution.
type CustomerGeo struct {
	Country            string  `json:"country"`
	State              *string `json:"state"`
	City               string  `json:"city"`
	CustomerCount      int64   `json:"customer_count"`
	TotalOrders        int64   `json:"total_orders"`
	TotalRevenue       float64 `json:"total_revenue"`
	AvgOrderValue      float64 `json:"avg_order_value"`
	RevenuePerCustomer float64 `json:"revenue_per_customer"`
}

// CustomerPreference is one row of the musical preference report: each
// customer's top genre with overall purchase totals.
type CustomerPreference struct {
	CustomerID         int64   `json:"customer_id"`
	CustomerName       string  `json:"customer_name"`
	PreferredGenre     string  `json:"preferred_genre"`
	TracksInGenre      int64   `json:"tracks_in_preferred_genre"`
	SpentOnGenre       float64 `json:"spent_on_genre"`
	TotalTracks        int64   `json:"total_tracks"`
	TotalSpent         float64 `json:"total_spent"`
	GenresExplored     int64   `json:"genres_explored"`
	TotalMinutes       float64 `json:"total_minutes_purchased"`
	GenrePreferencePct float64 `json:"genre_preference_pct"`
}

// CohortPoint is one cohort-month x purchase-month cell of the retention
// analysis.
type CohortPoint struct {
	CohortMonth   time.Time `json:"cohort_month"`
	PurchaseMonth time.Time `json:"purchase_month"`
	PeriodNumber  int       `json:"period_number"`
	Customers     int64     `json:"customers"`
	CohortSize    int64     `json:"cohort_size"`
	RetentionRate float64   `json:"retention_rate"`
	CohortRevenue float64   `json:"cohort_revenue"`
}

// CustomerRepository serves the customers page reports.
type CustomerRepository interface {
	RFMClusters(ctx context.Context, r DateRange) ([]RFMCustomer, error)
	Journeys(ctx context.Context, r DateRange) ([]CustomerJourney, error)
	Churn(ctx context.Context, r DateRange, w ChurnWindows) ([]ChurnCustomer, error)
	Geography(ctx context.Context, r DateRange) ([]CustomerGeo, error)
	Preferences(ctx context.Context, r DateRange) ([]CustomerPreference, error)
	Cohorts(ctx context.Context, r DateRange) ([]CohortPoint, error)
}
