package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/razdine10/Groovify/internal/domain"
)

func (s *Server) handleFinanceKPIs(c echo.Context) error {
	rng, err := parseRange(c)
	if err != nil {
		return err
	}

	kpis, err := s.app.FinanceKPIs(c.Request().Context(), rng)
	if err != nil {
		return reportError("finance_kpis", err)
	}
	return c.JSON(http.StatusOK, kpis)
}

func (s *Server) handleFinanceTrends(c echo.Context) error {
	rng, err := parseRange(c)
	if err != nil {
		return err
	}

	g := domain.Granularity(c.QueryParam("granularity"))
	points, err := s.app.FinanceTrends(c.Request().Context(), rng, g)
	if err != nil {
		return reportError("finance_trends", err)
	}
	return c.JSON(http.StatusOK, points)
}

func (s *Server) handleFinanceGeography(c echo.Context) error {
	rng, err := parseRange(c)
	if err != nil {
		return err
	}

	countries, err := s.app.FinanceGeography(c.Request().Context(), rng)
	if err != nil {
		return reportError("finance_geography", err)
	}
	return c.JSON(http.StatusOK, countries)
}

func (s *Server) handleFinanceAmountRanges(c echo.Context) error {
	rng, err := parseRange(c)
	if err != nil {
		return err
	}

	buckets, err := s.app.FinanceAmountRanges(c.Request().Context(), rng)
	if err != nil {
		return reportError("finance_amount_ranges", err)
	}
	return c.JSON(http.StatusOK, buckets)
}

func (s *Server) handleFinanceSeasonality(c echo.Context) error {
	rng, err := parseRange(c)
	if err != nil {
		return err
	}

	points, err := s.app.FinanceSeasonality(c.Request().Context(), rng)
	if err != nil {
		return reportError("finance_seasonality", err)
	}
	return c.JSON(http.StatusOK, points)
}

func (s *Server) handleFinanceWeekdayPattern(c echo.Context) error {
	rng, err := parseRange(c)
	if err != nil {
		return err
	}

	points, err := s.app.FinanceWeekdayPattern(c.Request().Context(), rng)
	if err != nil {
		return reportError("finance_weekday_pattern", err)
	}
	return c.JSON(http.StatusOK, points)
}

func (s *Server) handleFinanceBaskets(c echo.Context) error {
	rng, err := parseRange(c)
	if err != nil {
		return err
	}

	g := domain.Granularity(c.QueryParam("granularity"))
	points, err := s.app.FinanceBaskets(c.Request().Context(), rng, g)
	if err != nil {
		return reportError("finance_baskets", err)
	}
	return c.JSON(http.StatusOK, points)
}
