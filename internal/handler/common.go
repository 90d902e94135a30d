package handler // handler defines http handlers

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/foodlab/foodlab-api/internal/repository"
	"github.com/foodlab/foodlab-api/internal/service"
)

// ChefHandler bundles the repositories and services behind the
// chef-facing endpoints.
type ChefHandler struct {
	Courses     *repository.CourseRepo
	Sessions    *repository.SessionRepo
	Recipes     *repository.RecipeRepo
	Users       *repository.UserRepo
	Scheduler   *service.SchedulerService
	Enrollments *service.EnrollmentService
	Reports     *service.ReportService
}

// NewChefHandler constructs a ChefHandler and panics if any dependency is nil.
func NewChefHandler(
	courses *repository.CourseRepo,
	sessions *repository.SessionRepo,
	recipes *repository.RecipeRepo,
	users *repository.UserRepo,
	scheduler *service.SchedulerService,
	enrollments *service.EnrollmentService,
	reports *service.ReportService,
) *ChefHandler {
	if courses == nil || sessions == nil || recipes == nil || users == nil ||
		scheduler == nil || enrollments == nil || reports == nil {
		panic("nil dependency passed to NewChefHandler")
	}
	return &ChefHandler{
		Courses:     courses,
		Sessions:    sessions,
		Recipes:     recipes,
		Users:       users,
		Scheduler:   scheduler,
		Enrollments: enrollments,
		Reports:     reports,
	}
}

// getChefID extracts the chef_id set by the JWT middleware and converts
// it to uint64. JWT numeric claims decode as float64, so several
// representations are accepted.
func getChefID(c echo.Context) (uint64, error) {
	v := c.Get("chef_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid chef_id in context")
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}
