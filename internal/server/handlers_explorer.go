package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) handleExplorerTables(c echo.Context) error {
	tables, err := s.app.ExplorerTables(c.Request().Context())
	if err != nil {
		return reportError("explorer_tables", err)
	}
	return c.JSON(http.StatusOK, tables)
}

func (s *Server) handleExplorerTableSummary(c echo.Context) error {
	table := c.Param("table")

	summary, err := s.app.ExplorerTableSummary(c.Request().Context(), table)
	if err != nil {
		return reportError("explorer_table_summary", err)
	}
	return c.JSON(http.StatusOK, summary)
}

func (s *Server) handleExplorerPreview(c echo.Context) error {
	table := c.Param("table")
	limit, err := intParam(c, "limit", 0)
	if err != nil {
		return err
	}

	preview, err := s.app.ExplorerPreview(c.Request().Context(), table, limit)
	if err != nil {
		return reportError("explorer_preview", err)
	}
	return c.JSON(http.StatusOK, preview)
}

func (s *Server) handleExplorerColumns(c echo.Context) error {
	columns, err := s.app.ExplorerColumns(c.Request().Context())
	if err != nil {
		return reportError("explorer_columns", err)
	}
	return c.JSON(http.StatusOK, columns)
}

func (s *Server) handleExplorerRelationships(c echo.Context) error {
	relationships, err := s.app.ExplorerRelationships(c.Request().Context())
	if err != nil {
		return reportError("explorer_relationships", err)
	}
	return c.JSON(http.StatusOK, relationships)
}
