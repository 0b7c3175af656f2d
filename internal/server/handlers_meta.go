package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/razdine10/Groovify/internal/config"
)

func (s *Server) handleMetaTheme(c echo.Context) error {
	return c.JSON(http.StatusOK, s.theme)
}

func (s *Server) handleMetaModules(c echo.Context) error {
	return c.JSON(http.StatusOK, config.Modules())
}

func (s *Server) handleMetaDateBounds(c echo.Context) error {
	bounds, err := s.app.DateBounds(c.Request().Context())
	if err != nil {
		return reportError("meta_date_bounds", err)
	}
	return c.JSON(http.StatusOK, bounds)
}
