package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/foodlab/foodlab-api/internal/repository"
)

// PublicHandler serves the unauthenticated catalogue: categories and
// courses currently open for enrollment.
type PublicHandler struct {
	Categories  *repository.CategoryRepo
	Courses     *repository.CourseRepo
	Sessions    *repository.SessionRepo
	Enrollments *repository.EnrollmentRepo
}

func NewPublicHandler(categories *repository.CategoryRepo, courses *repository.CourseRepo, sessions *repository.SessionRepo, enrollments *repository.EnrollmentRepo) *PublicHandler {
	if categories == nil || courses == nil || sessions == nil || enrollments == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{Categories: categories, Courses: courses, Sessions: sessions, Enrollments: enrollments}
}

// ListCategories returns all course categories.
func (h *PublicHandler) ListCategories(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cats, err := h.Categories.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list categories failed"})
	}
	return c.JSON(http.StatusOK, cats)
}

// GetCategory returns one category by id.
func (h *PublicHandler) GetCategory(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cat, err := h.Categories.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load category failed"})
	}
	return c.JSON(http.StatusOK, cat)
}

// ListCourses returns active courses with remaining capacity, optionally
// filtered by ?category_id=.
func (h *PublicHandler) ListCourses(c echo.Context) error {
	var categoryID uint64
	if raw := c.QueryParam("category_id"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category_id"})
		}
		categoryID = n
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	courses, err := h.Courses.ListActiveWithCapacity(ctx, categoryID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list courses failed"})
	}

	type catalogueRow struct {
		courseResp
		AvailableSeats int `json:"available_seats"`
	}
	out := make([]catalogueRow, 0, len(courses))
	for _, cs := range courses {
		free := cs.MaxParticipants - cs.ActiveEnrollments
		if free < 0 {
			free = 0
		}
		out = append(out, catalogueRow{courseResp: toCourseResp(cs.Course), AvailableSeats: free})
	}
	return c.JSON(http.StatusOK, out)
}

// GetCourse returns one course and its timetable for the catalogue.
func (h *PublicHandler) GetCourse(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid course id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	course, err := h.Courses.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "course not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load course failed"})
	}
	sessions, err := h.Sessions.ListByCourse(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load sessions failed"})
	}
	active, err := h.Enrollments.CountActive(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load enrollments failed"})
	}
	free := course.MaxParticipants - active
	if free < 0 {
		free = 0
	}
	out := make([]sessionResp, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toSessionResp(s))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"course":          toCourseResp(course),
		"sessions":        out,
		"available_seats": free,
	})
}
