package domain

import "context"

// FinanceKPIs aggregates the headline revenue metrics for a date range.
type FinanceKPIs struct {
	TotalInvoices      int64    `json:"total_invoices"`
	TotalRevenue       float64  `json:"total_revenue"`
	AvgInvoiceAmount   float64  `json:"avg_invoice_amount"`
	MinInvoice         float64  `json:"min_invoice"`
	MaxInvoice         float64  `json:"max_invoice"`
	InvoiceStddev      *float64 `json:"invoice_stddev"`
	UniqueCustomers    int64    `json:"unique_customers"`
	CountriesServed    int64    `json:"countries_served"`
	RevenuePerCustomer float64  `json:"revenue_per_customer"`
	ActiveDays         int64    `json:"active_days"`
}

// Granularity selects the bucketing of trend reports.
type Granularity string

const (
	GranularityMonth   Granularity = "month"
	GranularityQuarter Granularity = "quarter"
	GranularityYear    Granularity = "year"
)

// Valid reports whether g is a known granularity.
func (g Granularity) Valid() bool {
	switch g {
	case GranularityMonth, GranularityQuarter, GranularityYear:
		return true
	}
	return false
}

// TrendPoint is one bucket of the revenue trend series.
type TrendPoint struct {
	Period          string  `json:"period"`
	PeriodLabel     string  `json:"period_label"`
	InvoiceCount    int64   `json:"invoice_count"`
	Revenue         float64 `json:"revenue"`
	AvgInvoice      float64 `json:"avg_invoice"`
	UniqueCustomers int64   `json:"unique_customers"`
}

// CountryRevenue is one row of the geographic revenue analysis.
type CountryRevenue struct {
	Country            string  `json:"country"`
	Customers          int64   `json:"customers"`
	Invoices           int64   `json:"invoices"`
	TotalRevenue       float64 `json:"total_revenue"`
	AvgInvoiceAmount   float64 `json:"avg_invoice_amount"`
	RevenuePerCustomer float64 `json:"revenue_per_customer"`
	MarketSharePct     float64 `json:"market_share_percent"`
}

// AmountRangeBucket is one bucket of the invoice amount distribution.
type AmountRangeBucket struct {
	AmountRange  string  `json:"amount_range"`
	InvoiceCount int64   `json:"invoice_count"`
	TotalRevenue float64 `json:"total_revenue"`
	AvgAmount    float64 `json:"avg_amount"`
	Percentage   float64 `json:"percentage"`
}

// SeasonalityPoint is one calendar month of the seasonality report.
type SeasonalityPoint struct {
	MonthNum     int     `json:"month_num"`
	MonthName    string  `json:"month_name"`
	Quarter      int     `json:"quarter"`
	InvoiceCount int64   `json:"invoice_count"`
	TotalRevenue float64 `json:"total_revenue"`
	AvgInvoice   float64 `json:"avg_invoice"`
}

// WeekdayPoint is one day-of-week bucket of the weekly pattern report.
type WeekdayPoint struct {
	DayNum       int     `json:"day_num"`
	DayName      string  `json:"day_name"`
	InvoiceCount int64   `json:"invoice_count"`
	TotalRevenue float64 `json:"total_revenue"`
	AvgInvoice   float64 `json:"avg_invoice"`
}

// BasketPoint is one bucket of the average basket series.
type BasketPoint struct {
	Period       string   `json:"period"`
	PeriodLabel  string   `json:"period_label"`
	InvoiceCount int64    `json:"invoice_count"`
	TotalRevenue float64  `json:"total_revenue"`
	AvgBasket    float64  `json:"avg_basket"`
	BasketStddev *float64 `json:"basket_std"`
}

// FinanceRepository serves the finance page reports.
type FinanceRepository interface {
	KPIs(ctx context.Context, r DateRange) (*FinanceKPIs, error)
	Trends(ctx context.Context, r DateRange, g Granularity) ([]TrendPoint, error)
	Geography(ctx context.Context, r DateRange) ([]CountryRevenue, error)
	AmountRanges(ctx context.Context, r DateRange) ([]AmountRangeBucket, error)
	Seasonality(ctx context.Context, r DateRange) ([]SeasonalityPoint, error)
	WeekdayPattern(ctx context.Context, r DateRange) ([]WeekdayPoint, error)
	Baskets(ctx context.Context, r DateRange, g Granularity) ([]BasketPoint, error)
}

// MetaRepository serves cross-page lookups.
type MetaRepository interface {
	// DateBounds returns the minimum and maximum invoice dates.
	DateBounds(ctx context.Context) (DateRange, error)
}
