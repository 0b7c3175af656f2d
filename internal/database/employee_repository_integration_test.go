package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/razdine10/Groovify/internal/domain"
)

func TestEmployeePerformance(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewEmployeeRepo(pool)
	ctx := context.Background()

	perf, err := repo.Performance(ctx, fullRange())
	require.NoError(t, err)
	require.Len(t, perf, 3)

	// Margaret handles Frank and Camille, highest sales first
	top := perf[0]
	assert.Equal(t, "Margaret Park", top.EmployeeName)
	require.NotNil(t, top.JobTitle)
	assert.Equal(t, "Sales Support Agent", *top.JobTitle)
	assert.Equal(t, int64(2), top.CustomersManaged)
	assert.Equal(t, int64(4), top.TotalOrders)
	assert.InDelta(t, 82.77, top.TotalSales, 0.01)

	// The manager has no book of customers
	byName := make(map[string]domain.EmployeePerformance)
	for _, p := range perf {
		byName[p.EmployeeName] = p
	}
	manager := byName["Andrew Adams"]
	assert.Equal(t, int64(0), manager.CustomersManaged)
	assert.InDelta(t, 0, manager.TotalSales, 0.001)
}

func TestEmployeeSatisfaction(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewEmployeeRepo(pool)
	ctx := context.Background()

	rows, err := repo.Satisfaction(ctx, fullRange())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Margaret: 4 transactions over 2 customers
	top := rows[0]
	assert.Equal(t, "Margaret Park", top.EmployeeName)
	assert.Equal(t, int64(2), top.TotalCustomers)
	assert.Equal(t, int64(4), top.TotalTransactions)
	require.NotNil(t, top.TxPerCustomer)
	assert.InDelta(t, 2.0, *top.TxPerCustomer, 0.01)
}

func TestEmployeeTerritories(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewEmployeeRepo(pool)
	ctx := context.Background()

	rows, err := repo.Territories(ctx, fullRange())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// USA is Margaret's richest territory
	top := rows[0]
	assert.Equal(t, "Margaret Park", top.EmployeeName)
	assert.Equal(t, "USA", top.Country)
	assert.InDelta(t, 74.85, top.TerritoryRevenue, 0.01)
}

func TestEmployeeEfficiency(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewEmployeeRepo(pool)
	ctx := context.Background()

	rows, err := repo.Efficiency(ctx, fullRange())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byName := make(map[string]domain.EmployeeEfficiency)
	for _, r := range rows {
		byName[r.EmployeeName] = r
	}

	// Margaret sold in Jan, Feb, Mar 2024 plus the current month
	margaret := byName["Margaret Park"]
	assert.Equal(t, int64(4), margaret.ActiveMonths)
	assert.Greater(t, margaret.AvgMonthlyRevenue, float64(0))

	// Steve sold in a single month, stddev undefined
	steve := byName["Steve Johnson"]
	assert.Equal(t, int64(1), steve.ActiveMonths)
	assert.Nil(t, steve.RevenueConsistency)
}

func TestEmployeeTopCustomers(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewEmployeeRepo(pool)
	ctx := context.Background()

	rows, err := repo.TopCustomers(ctx, fullRange())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Frank is rank 1 inside Margaret's book
	var frank *domain.EmployeeTopCustomer
	for i := range rows {
		if rows[i].CustomerName == "Frank Harris" {
			frank = &rows[i]
		}
	}
	require.NotNil(t, frank)
	assert.Equal(t, "Margaret Park", frank.EmployeeName)
	assert.Equal(t, int64(1), frank.CustomerRank)
	assert.InDelta(t, 74.85, frank.TotalSpent, 0.01)
}

func TestEmployeeHierarchy(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewEmployeeRepo(pool)
	ctx := context.Background()

	nodes, err := repo.Hierarchy(ctx)
	require.NoError(t, err)
	require.Len(t, nodes, 3)

	// Manager first, reports after
	root := nodes[0]
	assert.Equal(t, "Andrew Adams", root.EmployeeName)
	assert.Nil(t, root.ReportsTo)
	assert.Nil(t, root.ManagerName)

	for _, n := range nodes[1:] {
		require.NotNil(t, n.ReportsTo)
		assert.Equal(t, root.EmployeeID, *n.ReportsTo)
		require.NotNil(t, n.ManagerName)
		assert.Equal(t, "Andrew Adams", *n.ManagerName)
	}
}
