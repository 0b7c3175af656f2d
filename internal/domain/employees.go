package domain

import "context"

// EmployeePerformance is one row of the per-rep sales report.
type EmployeePerformance struct {
	EmployeeID         int64   `json:"employee_id"`
	EmployeeName       string  `json:"employee_name"`
	JobTitle           *string `json:"job_title"`
	CustomersManaged   int64   `json:"customers_managed"`
	TotalOrders        int64   `json:"total_orders"`
	TotalSales         float64 `json:"total_sales"`
	AvgOrderValue      float64 `json:"avg_order_value"`
	RevenuePerCustomer float64 `json:"revenue_per_customer"`
}

// EmployeeSatisfaction is one row of the transactions-per-customer proxy.
type EmployeeSatisfaction struct {
	EmployeeID          int64    `json:"employee_id"`
	EmployeeName        string   `json:"employee_name"`
	TotalCustomers      int64    `json:"total_customers"`
	TotalTransactions   int64    `json:"total_transactions"`
	AvgTransactionValue float64  `json:"avg_transaction_value"`
	TxPerCustomer       *float64 `json:"transactions_per_customer"`
}

// EmployeeTerritory is one employee x country/state row.
type EmployeeTerritory struct {
	EmployeeID       int64   `json:"employee_id"`
	EmployeeName     string  `json:"employee_name"`
	Country          string  `json:"country"`
	State            *string `json:"state"`
	CustomersInArea  int64   `json:"customers_in_territory"`
	OrdersInArea     int64   `json:"orders_in_territory"`
	TerritoryRevenue float64 `json:"territory_revenue"`
}

// EmployeeEfficiency is one row of the month-over-month consistency report.
type EmployeeEfficiency struct {
	EmployeeID         int64    `json:"employee_id"`
	EmployeeName       string   `json:"employee_name"`
	ActiveMonths       int64    `json:"active_months"`
	AvgMonthlyOrders   float64  `json:"avg_monthly_orders"`
	AvgMonthlyRevenue  float64  `json:"avg_monthly_revenue"`
	RevenueConsistency *float64 `json:"revenue_consistency"`
}

// EmployeeTopCustomer ranks a customer within their support rep's book.
type EmployeeTopCustomer struct {
	EmployeeID      int64   `json:"employee_id"`
	EmployeeName    string  `json:"employee_name"`
	CustomerName    string  `json:"customer_name"`
	CustomerCountry string  `json:"customer_country"`
	CustomerOrders  int64   `json:"customer_orders"`
	TotalSpent      float64 `json:"customer_total_spent"`
	CustomerRank    int64   `json:"customer_rank"`
}

// EmployeeNode is one row of the reporting hierarchy.
type EmployeeNode struct {
	EmployeeID   int64   `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Title        *string `json:"title"`
	City         *string `json:"city"`
	Country      *string `json:"country"`
	ReportsTo    *int64  `json:"reports_to"`
	ManagerName  *string `json:"manager_name"`
}

// EmployeeRepository serves the employees page reports.
type EmployeeRepository interface {
	Performance(ctx context.Context, r DateRange) ([]EmployeePerformance, error)
	Satisfaction(ctx context.Context, r DateRange) ([]EmployeeSatisfaction, error)
	Territories(ctx context.Context, r DateRange) ([]EmployeeTerritory, error)
	Efficiency(ctx context.Context, r DateRange) ([]EmployeeEfficiency, error)
	TopCustomers(ctx context.Context, r DateRange) ([]EmployeeTopCustomer, error)
	Hierarchy(ctx context.Context) ([]EmployeeNode, error)
}
