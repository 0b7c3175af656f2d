package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/razdine10/Groovify/internal/domain"
)

// EmployeeRepo implements domain.EmployeeRepository backed by PostgreSQL.
type EmployeeRepo struct {
	db *pgxpool.Pool
}

func NewEmployeeRepo(db *pgxpool.Pool) *EmployeeRepo {
	return &EmployeeRepo{db: db}
}

const employeePerformanceQuery = `
	SELECT e.employee_id
	     , e.first_name || ' ' || e.last_name AS employee_name
	     , e.title AS job_title
	     , COUNT(DISTINCT c.customer_id) AS customers_managed
	     , COUNT(DISTINCT i.invoice_id) AS total_orders
	     , COALESCE(SUM(i.total), 0) AS total_sales
	     , COALESCE(AVG(i.total), 0) AS avg_order_value
	     , COALESCE(SUM(i.total) / NULLIF(COUNT(DISTINCT c.customer_id), 0), 0) AS revenue_per_customer
	FROM employee e
	LEFT JOIN customer c ON e.employee_id = c.support_rep_id
	LEFT JOIN invoice i ON c.customer_id = i.customer_id
	                    AND i.invoice_date::date BETWEEN $1 AND $2
	GROUP BY e.employee_id, e.first_name, e.last_name, e.title
	ORDER BY total_sales DESC`

func (r *EmployeeRepo) Performance(ctx context.Context, rng domain.DateRange) ([]domain.EmployeePerformance, error) {
	defer observeQuery("employees_performance")()

	rows, err := r.db.Query(ctx, employeePerformanceQuery, rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("failed to query employee performance: %w", err)
	}
	defer rows.Close()

	var result []domain.EmployeePerformance
	for rows.Next() {
		var e domain.EmployeePerformance
		if err := rows.Scan(&e.EmployeeID, &e.EmployeeName, &e.JobTitle, &e.CustomersManaged,
			&e.TotalOrders, &e.TotalSales, &e.AvgOrderValue, &e.RevenuePerCustomer); err != nil {
			return nil, fmt.Errorf("failed to scan employee performance: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

const employeeSatisfactionQuery = `
	SELECT e.employee_id
	     , e.first_name || ' ' || e.last_name AS employee_name
	     , COUNT(DISTINCT c.customer_id) AS total_customers
	     , COUNT(DISTINCT i.invoice_id) AS total_transactions
	     , COALESCE(AVG(i.total), 0) AS avg_transaction_value
	     , COUNT(DISTINCT i.invoice_id) * 1.0 / NULLIF(COUNT(DISTINCT c.customer_id), 0) AS transactions_per_customer
	FROM employee e
	LEFT JOIN customer c ON e.employee_id = c.support_rep_id
	LEFT JOIN invoice i ON c.customer_id = i.customer_id
	                    AND i.invoice_date::date BETWEEN $1 AND $2
	GROUP BY e.employee_id, e.first_name, e.last_name
	HAVING COUNT(DISTINCT c.customer_id) > 0
	ORDER BY transactions_per_customer DESC`

func (r *EmployeeRepo) Satisfaction(ctx context.Context, rng domain.DateRange) ([]domain.EmployeeSatisfaction, error) {
	defer observeQuery("employees_satisfaction")()

	rows, err := r.db.Query(ctx, employeeSatisfactionQuery, rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("failed to query employee satisfaction: %w", err)
	}
	defer rows.Close()

	var result []domain.EmployeeSatisfaction
	for rows.Next() {
		var e domain.EmployeeSatisfaction
		if err := rows.Scan(&e.EmployeeID, &e.EmployeeName, &e.TotalCustomers,
			&e.TotalTransactions, &e.AvgTransactionValue, &e.TxPerCustomer); err != nil {
			return nil, fmt.Errorf("failed to scan employee satisfaction: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

const employeeTerritoriesQuery = `
	SELECT e.employee_id
	     , e.first_name || ' ' || e.last_name AS employee_name
	     , c.country
	     , c.state
	     , COUNT(DISTINCT c.customer_id) AS customers_in_territory
	     , COUNT(DISTINCT i.invoice_id) AS orders_in_territory
	     , COALESCE(SUM(i.total), 0) AS territory_revenue
	FROM employee e
	JOIN customer c ON e.employee_id = c.support_rep_id
	LEFT JOIN invoice i ON c.customer_id = i.customer_id
	                    AND i.invoice_date::date BETWEEN $1 AND $2
	GROUP BY e.employee_id, e.first_name, e.last_name, c.country, c.state
	HAVING COUNT(DISTINCT c.customer_id) > 0
	ORDER BY territory_revenue DESC`

func (r *EmployeeRepo) Territories(ctx context.Context, rng domain.DateRange) ([]domain.EmployeeTerritory, error) {
	defer observeQuery("employees_territories")()

	rows, err := r.db.Query(ctx, employeeTerritoriesQuery, rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("failed to query employee territories: %w", err)
	}
	defer rows.Close()

	var result []domain.EmployeeTerritory
	for rows.Next() {
		var e domain.EmployeeTerritory
		if err := rows.Scan(&e.EmployeeID, &e.EmployeeName, &e.Country, &e.State,
			&e.CustomersInArea, &e.OrdersInArea, &e.TerritoryRevenue); err != nil {
			return nil, fmt.Errorf("failed to scan employee territory: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

const employeeEfficiencyQuery = `
	WITH monthly_performance AS (
		SELECT e.employee_id
		     , e.first_name || ' ' || e.last_name AS employee_name
		     , DATE_TRUNC('month', i.invoice_date) AS month
		     , COUNT(DISTINCT i.invoice_id) AS monthly_orders
		     , SUM(i.total) AS monthly_revenue
		FROM employee e
		LEFT JOIN customer c ON e.employee_id = c.support_rep_id
		LEFT JOIN invoice i ON c.customer_id = i.customer_id
		                    AND i.invoice_date::date BETWEEN $1 AND $2
		GROUP BY e.employee_id, e.first_name, e.last_name, DATE_TRUNC('month', i.invoice_date)
	)
	SELECT employee_id
	     , employee_name
	     , COUNT(*) AS active_months
	     , AVG(monthly_orders) AS avg_monthly_orders
	     , AVG(monthly_revenue) AS avg_monthly_revenue
	     , STDDEV(monthly_revenue) AS revenue_consistency
	FROM monthly_performance
	WHERE monthly_orders > 0
	GROUP BY employee_id, employee_name
	ORDER BY avg_monthly_revenue DESC`

func (r *EmployeeRepo) Efficiency(ctx context.Context, rng domain.DateRange) ([]domain.EmployeeEfficiency, error) {
	defer observeQuery("employees_efficiency")()

	rows, err := r.db.Query(ctx, employeeEfficiencyQuery, rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("failed to query employee efficiency: %w", err)
	}
	defer rows.Close()

	var result []domain.EmployeeEfficiency
	for rows.Next() {
		var e domain.EmployeeEfficiency
		if err := rows.Scan(&e.EmployeeID, &e.EmployeeName, &e.ActiveMonths,
			&e.AvgMonthlyOrders, &e.AvgMonthlyRevenue, &e.RevenueConsistency); err != nil {
			return nil, fmt.Errorf("failed to scan employee efficiency: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

const employeeTopCustomersQuery = `
	SELECT e.employee_id
	     , e.first_name || ' ' || e.last_name AS employee_name
	     , c.first_name || ' ' || c.last_name AS customer_name
	     , c.country AS customer_country
	     , COUNT(i.invoice_id) AS customer_orders
	     , SUM(i.total) AS customer_total_spent
	     , RANK() OVER (
	           PARTITION BY e.employee_id
	           ORDER BY SUM(i.total) DESC
	       ) AS customer_rank
	FROM employee e
	JOIN customer c ON e.employee_id = c.support_rep_id
	JOIN invoice i ON c.customer_id = i.customer_id
	WHERE i.invoice_date::date BETWEEN $1 AND $2
	GROUP BY e.employee_id, e.first_name, e.last_name, c.customer_id, c.first_name, c.last_name, c.country
	HAVING SUM(i.total) > 0
	ORDER BY e.employee_id, customer_total_spent DESC`

func (r *EmployeeRepo) TopCustomers(ctx context.Context, rng domain.DateRange) ([]domain.EmployeeTopCustomer, error) {
	defer observeQuery("employees_top_customers")()

	rows, err := r.db.Query(ctx, employeeTopCustomersQuery, rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("failed to query top customers by employee: %w", err)
	}
	defer rows.Close()

	var result []domain.EmployeeTopCustomer
	for rows.Next() {
		var e domain.EmployeeTopCustomer
		if err := rows.Scan(&e.EmployeeID, &e.EmployeeName, &e.CustomerName, &e.CustomerCountry,
			&e.CustomerOrders, &e.TotalSpent, &e.CustomerRank); err != nil {
			return nil, fmt.Errorf("failed to scan top customer: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

const employeeHierarchyQuery = `
	SELECT e.employee_id
	     , e.first_name || ' ' || e.last_name AS employee_name
	     , e.title
	     , e.city
	     , e.country
	     , e.reports_to
	     , m.first_name || ' ' || m.last_name AS manager_name
	FROM employee e
	LEFT JOIN employee m ON e.reports_to = m.employee_id
	ORDER BY e.reports_to NULLS FIRST, e.employee_id`

func (r *EmployeeRepo) Hierarchy(ctx context.Context) ([]domain.EmployeeNode, error) {
	defer observeQuery("employees_hierarchy")()

	rows, err := r.db.Query(ctx, employeeHierarchyQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query employee hierarchy: %w", err)
	}
	defer rows.Close()

	var result []domain.EmployeeNode
	for rows.Next() {
		var e domain.EmployeeNode
		if err := rows.Scan(&e.EmployeeID, &e.EmployeeName, &e.Title, &e.City,
			&e.Country, &e.ReportsTo, &e.ManagerName); err != nil {
			return nil, fmt.Errorf("failed to scan employee node: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}
