package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/razdine10/Groovify/internal/domain"
)

func (s *Server) handleCustomerRFM(c echo.Context) error {
	rng, err := parseRange(c)
	if err != nil {
		return err
	}

	customers, err := s.app.CustomerRFM(c.Request().Context(), rng)
	if err != nil {
		return reportError("customer_rfm", err)
	}
	return c.JSON(http.StatusOK, customers)
}

func (s *Server) handleCustomerJourneys(c echo.Context) error {
	rng, err := parseRange(c)
	if err != nil {
		return err
	}

	journeys, err := s.app.CustomerJourneys(c.Request().Context(), rng)
	if err != nil {
		return reportError("customer_journeys", err)
	}
	return c.JSON(http.StatusOK, journeys)
}

func (s *Server) handleCustomerChurn(c echo.Context) error {
	rng, err := parseRange(c)
	if err != nil {
		return err
	}

	active, err := intParam(c, "active_months", 0)
	if err != nil {
		return err
	}
	risk, err := intParam(c, "risk_months", 0)
	if err != nil {
		return err
	}

	customers, err := s.app.CustomerChurn(c.Request().Context(), rng, domain.ChurnWindows{
		ActiveMonths: active,
		RiskMonths:   risk,
	})
	if err != nil {
		return reportError("customer_churn", err)
	}
	return c.JSON(http.StatusOK, customers)
}

func (s *Server) handleCustomerGeography(c echo.Context) error {
	rng, err := parseRange(c)
	if err != nil {
		return err
	}

	cities, err := s.app.CustomerGeography(c.Request().Context(), rng)
	if err != nil {
		return reportError("customer_geography", err)
	}
	return c.JSON(http.StatusOK, cities)
}

func (s *Server) handleCustomerPreferences(c echo.Context) error {
	rng, err := parseRange(c)
	if err != nil {
		return err
	}

	prefs, err := s.app.CustomerPreferences(c.Request().Context(), rng)
	if err != nil {
		return reportError("customer_preferences", err)
	}
	return c.JSON(http.StatusOK, prefs)
}

func (s *Server) handleCustomerCohorts(c echo.Context) error {
	rng, err := parseRange(c)
	if err != nil {
		return err
	}

	cohorts, err := s.app.CustomerCohorts(c.Request().Context(), rng)
	if err != nil {
		return reportError("customer_cohorts", err)
	}
	return c.JSON(http.StatusOK, cohorts)
}
