package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/foodlab/foodlab-api/internal/handler"    // handlers that implement the endpoints
	"github.com/foodlab/foodlab-api/internal/middleware" // JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// The /healthz endpoint is used by load balancers and monitoring systems
	// to verify that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Operations that do not require an existing session: register, login
	// and the two refresh flavours.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// /refresh rotates the refresh token; /refresh-access only mints a new
	// access token and leaves the refresh token untouched.
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts a refresh token in the body and does not require a JWT,
	// so an expired access token never blocks session termination.
	g.POST("/logout", a.Logout)

	// Protected endpoints require a valid access token with the CHEF role.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(handler.RoleChef))
	auth.GET("/me", a.Me)
	auth.PUT("/me", a.UpdateMe)

	// Alias kept at the top level so clients can call either
	// /v1/auth/logout or /v1/logout with a refresh token in the body.
	e.POST("/v1/logout", a.Logout)
}

// RegisterPublic registers the unauthenticated catalogue endpoints.  These
// return sanitized data for categories and courses open for enrollment and
// apply no JWT or role middleware.  The cache middleware is applied only
// here: catalogue reads tolerate a short staleness window, chef and
// reporting routes never do.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
	// All course categories, plus single lookup.
	e.GET("/v1/categories", p.ListCategories, cache)
	e.GET("/v1/categories/:id", p.GetCategory, cache)
	// Active courses with remaining seats.  Supports ?category_id= to
	// filter by category.
	e.GET("/v1/courses", p.ListCourses, cache)
	// One course with its full session timetable, for guests previewing a
	// course before contacting the organisation.
	e.GET("/v1/courses/:id", p.GetCourse, cache)
}
