package router

// This file registers the reporting endpoints.  Reports are chef-scoped
// read models computed on demand from the current ledger state.

import (
	"github.com/foodlab/foodlab-api/internal/handler"
	"github.com/foodlab/foodlab-api/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterChefReports registers the statistics and reporting routes.  All
// routes are mounted under /v1/reports and require a JWT token as well as
// the CHEF role.
func RegisterChefReports(e *echo.Echo, h *handler.ChefHandler, jwtSecret string) {
	g := e.Group(
		"/v1/reports",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(handler.RoleChef),
	)
	// Courses grouped by category.
	g.GET("/categories", h.CategoryDistribution)
	// Sessions grouped by modality (Online / Presenza / Altro).
	g.GET("/modalities", h.ModalityDistribution)
	// Recipes grouped by difficulty bucket.
	g.GET("/difficulties", h.DifficultyDistribution)
	// Rolling twelve-month activity series for dashboard charts.
	g.GET("/activity", h.ActivitySeries)
	// Full monthly snapshot; requires ?year= and ?month=.
	g.GET("/monthly", h.MonthlyReport)
	// Months with recorded activity, for period pickers.
	g.GET("/periods", h.ReportPeriods)
}
