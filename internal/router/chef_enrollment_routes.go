package router

// This file registers the chef-facing enrollment endpoints.  They are kept
// separate from the generic chef routes because the enrollment ledger has
// its own state machine and its writes emit audit events.

import (
	"github.com/foodlab/foodlab-api/internal/handler"
	"github.com/foodlab/foodlab-api/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterChefEnrollments registers routes that allow chefs to manage the
// enrollment ledger of their courses.  All routes are mounted under /v1
// and require a JWT token as well as the CHEF role.
func RegisterChefEnrollments(e *echo.Echo, h *handler.ChefHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(handler.RoleChef),
	)
	// Enroll a participant into one of the chef's courses.
	g.POST("/my/courses/:id/enrollments", h.Enroll)
	// List the ledger of one course.
	g.GET("/my/courses/:id/enrollments", h.ListCourseEnrollments)
	// Cancel an active enrollment with a mandatory reason.
	g.POST("/enrollments/:id/cancel", h.CancelEnrollment)
	// Mark an active enrollment completed.
	g.POST("/enrollments/:id/complete", h.CompleteEnrollment)
}
