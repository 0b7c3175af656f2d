package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) handleAlertLowTracks(c echo.Context) error {
	maxSales, err := intParam(c, "max_sales", 0)
	if err != nil {
		return err
	}
	limit, err := intParam(c, "limit", 0)
	if err != nil {
		return err
	}

	alerts, err := s.app.AlertLowTracks(c.Request().Context(), maxSales, limit)
	if err != nil {
		return reportError("alert_low_tracks", err)
	}
	return c.JSON(http.StatusOK, alerts)
}

func (s *Server) handleAlertLowAlbums(c echo.Context) error {
	maxSales, err := intParam(c, "max_sales", 0)
	if err != nil {
		return err
	}
	limit, err := intParam(c, "limit", 0)
	if err != nil {
		return err
	}

	alerts, err := s.app.AlertLowAlbums(c.Request().Context(), maxSales, limit)
	if err != nil {
		return reportError("alert_low_albums", err)
	}
	return c.JSON(http.StatusOK, alerts)
}

func (s *Server) handleAlertRevenueAnomalies(c echo.Context) error {
	lookback, err := intParam(c, "lookback_days", 0)
	if err != nil {
		return err
	}

	alerts, err := s.app.AlertRevenueAnomalies(c.Request().Context(), lookback)
	if err != nil {
		return reportError("alert_revenue_anomalies", err)
	}
	return c.JSON(http.StatusOK, alerts)
}

func (s *Server) handleAlertChurn(c echo.Context) error {
	alerts, err := s.app.AlertChurn(c.Request().Context())
	if err != nil {
		return reportError("alert_churn", err)
	}
	return c.JSON(http.StatusOK, alerts)
}

func (s *Server) handleAlertEmployees(c echo.Context) error {
	alerts, err := s.app.AlertEmployees(c.Request().Context())
	if err != nil {
		return reportError("alert_employees", err)
	}
	return c.JSON(http.StatusOK, alerts)
}

func (s *Server) handleAlertFraud(c echo.Context) error {
	alerts, err := s.app.AlertFraud(c.Request().Context())
	if err != nil {
		return reportError("alert_fraud", err)
	}
	return c.JSON(http.StatusOK, alerts)
}
