package server

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/razdine10/Groovify/internal/errors"
)

func (s *Server) registerRoutes() {
	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	s.echo.Use(s.setupRequestLoggerMiddleware())
	s.echo.Use(middleware.Recover())
	s.echo.Use(errors.Middleware())

	s.registerHealthRoutes()
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.echo.Group("/api/v1")

	finance := api.Group("/finance")
	finance.GET("/kpis", s.handleFinanceKPIs)
	finance.GET("/trends", s.handleFinanceTrends)
	finance.GET("/geography", s.handleFinanceGeography)
	finance.GET("/amount-ranges", s.handleFinanceAmountRanges)
	finance.GET("/seasonality", s.handleFinanceSeasonality)
	finance.GET("/weekday-pattern", s.handleFinanceWeekdayPattern)
	finance.GET("/baskets", s.handleFinanceBaskets)

	customers := api.Group("/customers")
	customers.GET("/rfm", s.handleCustomerRFM)
	customers.GET("/journeys", s.handleCustomerJourneys)
	customers.GET("/churn", s.handleCustomerChurn)
	customers.GET("/geography", s.handleCustomerGeography)
	customers.GET("/preferences", s.handleCustomerPreferences)
	customers.GET("/cohorts", s.handleCustomerCohorts)

	music := api.Group("/music")
	music.GET("/tracks", s.handleMusicTracks)
	music.GET("/genres", s.handleMusicGenres)
	music.GET("/artists", s.handleMusicArtists)
	music.GET("/albums", s.handleMusicAlbums)
	music.GET("/playlists", s.handleMusicPlaylists)
	music.GET("/discovery", s.handleMusicDiscovery)
	music.GET("/revenue-by-genre", s.handleMusicRevenueByGenre)

	employees := api.Group("/employees")
	employees.GET("/performance", s.handleEmployeePerformance)
	employees.GET("/satisfaction", s.handleEmployeeSatisfaction)
	employees.GET("/territories", s.handleEmployeeTerritories)
	employees.GET("/efficiency", s.handleEmployeeEfficiency)
	employees.GET("/top-customers", s.handleEmployeeTopCustomers)
	employees.GET("/hierarchy", s.handleEmployeeHierarchy)

	alerts := api.Group("/alerts")
	alerts.GET("/low-tracks", s.handleAlertLowTracks)
	alerts.GET("/low-albums", s.handleAlertLowAlbums)
	alerts.GET("/revenue-anomalies", s.handleAlertRevenueAnomalies)
	alerts.GET("/churn", s.handleAlertChurn)
	alerts.GET("/employees", s.handleAlertEmployees)
	alerts.GET("/fraud", s.handleAlertFraud)

	explorer := api.Group("/explorer")
	explorer.GET("/tables", s.handleExplorerTables)
	explorer.GET("/tables/:table", s.handleExplorerTableSummary)
	explorer.GET("/tables/:table/preview", s.handleExplorerPreview)
	explorer.GET("/columns", s.handleExplorerColumns)
	explorer.GET("/relationships", s.handleExplorerRelationships)

	meta := api.Group("/meta")
	meta.GET("/theme", s.handleMetaTheme)
	meta.GET("/modules", s.handleMetaModules)
	meta.GET("/date-bounds", s.handleMetaDateBounds)
}

func (s *Server) setupRequestLoggerMiddleware() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			slog.Info("Request", attrs...)
			return nil
		},
	})
}
