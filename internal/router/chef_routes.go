package router // router defines how HTTP routes are registered for the API

import (
	"github.com/foodlab/foodlab-api/internal/handler"    // chef handlers
	"github.com/foodlab/foodlab-api/internal/middleware" // JWT + role middlewares
	"github.com/labstack/echo/v4"
)

// RegisterChef registers CHEF-scoped endpoints under /v1.
// All routes require a valid JWT and the CHEF role.
func RegisterChef(e *echo.Echo, h *handler.ChefHandler, jwtSecret string) {
	// Attach middlewares at group construction time for clarity.
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(handler.RoleChef),
	)

	// ---- Courses ----
	// Creating a course generates its full session timetable in the same
	// transaction; the response carries both.
	g.POST("/my/courses", h.CreateCourse)
	g.GET("/my/courses", h.ListCourses)
	g.GET("/my/courses/:id", h.GetCourse)
	g.PUT("/my/courses/:id", h.UpdateCourse)
	g.PATCH("/my/courses/:id/status", h.UpdateCourseStatus)
	g.DELETE("/my/courses/:id", h.DeleteCourse)

	// ---- Sessions ----
	// Sessions are created only through course creation; these routes
	// reschedule, complete and attach recipes to existing ones.
	g.PUT("/sessions/:id", h.UpdateSession)
	g.PATCH("/sessions/:id", h.UpdateSession)
	g.POST("/sessions/:id/complete", h.CompleteSession)
	g.GET("/sessions/:id/recipes", h.ListSessionRecipes)
	g.GET("/sessions/:id/recipes/available", h.ListAvailableRecipes)
	g.POST("/sessions/:id/recipes", h.LinkRecipe)
	g.DELETE("/sessions/:id/recipes/:recipe_id", h.UnlinkRecipe)

	// ---- Recipes ----
	g.POST("/recipes", h.CreateRecipe)
	g.GET("/recipes", h.ListRecipes)
	g.GET("/recipes/:id", h.GetRecipe)
	g.PUT("/recipes/:id", h.UpdateRecipe)
	g.PATCH("/recipes/:id", h.UpdateRecipe)
	g.DELETE("/recipes/:id", h.DeleteRecipe)

	// ---- Participants ----
	g.POST("/users", h.CreateUser)
	g.GET("/users", h.ListUsers)
	g.GET("/users/:id", h.GetUser)
	g.PUT("/users/:id", h.UpdateUser)
	g.POST("/users/:id/deactivate", h.DeactivateUser)
	g.POST("/users/:id/activate", h.ActivateUser)
}
