package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) handleEmployeePerformance(c echo.Context) error {
	rng, err := parseRange(c)
	if err != nil {
		return err
	}

	rows, err := s.app.EmployeePerformance(c.Request().Context(), rng)
	if err != nil {
		return reportError("employee_performance", err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (s *Server) handleEmployeeSatisfaction(c echo.Context) error {
	rng, err := parseRange(c)
	if err != nil {
		return err
	}

	rows, err := s.app.EmployeeSatisfaction(c.Request().Context(), rng)
	if err != nil {
		return reportError("employee_satisfaction", err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (s *Server) handleEmployeeTerritories(c echo.Context) error {
	rng, err := parseRange(c)
	if err != nil {
		return err
	}

	rows, err := s.app.EmployeeTerritories(c.Request().Context(), rng)
	if err != nil {
		return reportError("employee_territories", err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (s *Server) handleEmployeeEfficiency(c echo.Context) error {
	rng, err := parseRange(c)
	if err != nil {
		return err
	}

	rows, err := s.app.EmployeeEfficiency(c.Request().Context(), rng)
	if err != nil {
		return reportError("employee_efficiency", err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (s *Server) handleEmployeeTopCustomers(c echo.Context) error {
	rng, err := parseRange(c)
	if err != nil {
		return err
	}

	rows, err := s.app.EmployeeTopCustomers(c.Request().Context(), rng)
	if err != nil {
		return reportError("employee_top_customers", err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (s *Server) handleEmployeeHierarchy(c echo.Context) error {
	rows, err := s.app.EmployeeHierarchy(c.Request().Context())
	if err != nil {
		return reportError("employee_hierarchy", err)
	}
	return c.JSON(http.StatusOK, rows)
}
