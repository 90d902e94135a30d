package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/foodlab/foodlab-api/internal/model"
	"github.com/foodlab/foodlab-api/internal/repository"
	"github.com/foodlab/foodlab-api/internal/service"
)

// ----- DTOs -----

type createCourseReq struct {
	CategoryID      uint64 `json:"category_id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	StartDate       string `json:"start_date"` // YYYY-MM-DD
	Frequency       string `json:"frequency"`
	SessionCount    int    `json:"session_count"`
	PriceCents      uint32 `json:"price_cents"`
	DurationHours   int    `json:"duration_hours"`
	MaxParticipants int    `json:"max_participants"`
}

type updateCourseReq struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	PriceCents      uint32 `json:"price_cents"`
	MaxParticipants int    `json:"max_participants"`
}

type courseResp struct {
	ID              uint64 `json:"id"`
	CategoryID      uint64 `json:"category_id"`
	CategoryName    string `json:"category_name"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	StartDate       string `json:"start_date"`
	Frequency       string `json:"frequency"`
	SessionCount    int    `json:"session_count"`
	PriceCents      uint32 `json:"price_cents"`
	DurationHours   int    `json:"duration_hours"`
	MaxParticipants int    `json:"max_participants"`
	Status          string `json:"status"`
}

type sessionResp struct {
	ID              uint64 `json:"id"`
	CourseID        uint64 `json:"course_id"`
	SequenceNumber  int    `json:"sequence_number"`
	Date            string `json:"date"`
	Modality        string `json:"modality"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	DurationMinutes int    `json:"duration_minutes"`
	Completed       bool   `json:"completed"`
}

func toCourseResp(c model.Course) courseResp {
	return courseResp{
		ID:              c.ID,
		CategoryID:      c.CategoryID,
		CategoryName:    c.CategoryName,
		Title:           c.Title,
		Description:     c.Description,
		StartDate:       c.StartDate.Format("2006-01-02"),
		Frequency:       string(c.Frequency),
		SessionCount:    c.SessionCount,
		PriceCents:      c.PriceCents,
		DurationHours:   c.DurationHours,
		MaxParticipants: c.MaxParticipants,
		Status:          c.Status,
	}
}

func toSessionResp(s model.Session) sessionResp {
	return sessionResp{
		ID:              s.ID,
		CourseID:        s.CourseID,
		SequenceNumber:  s.SequenceNumber,
		Date:            s.Date.Format("2006-01-02"),
		Modality:        string(s.Modality),
		Title:           s.Title,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		Completed:       s.Completed,
	}
}

// CreateCourse creates a course and its generated timetable in one
// shot. The response carries both the stored course and the full list
// of sessions so clients can render the schedule immediately.
func (h *ChefHandler) CreateCourse(c echo.Context) error {
	chefID, err := getChefID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createCourseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	start, err := time.ParseInLocation("2006-01-02", req.StartDate, time.UTC)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_date must be YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	course := model.Course{
		ChefID:          chefID,
		CategoryID:      req.CategoryID,
		Title:           req.Title,
		Description:     req.Description,
		StartDate:       start,
		Frequency:       model.Frequency(req.Frequency),
		SessionCount:    req.SessionCount,
		PriceCents:      req.PriceCents,
		DurationHours:   req.DurationHours,
		MaxParticipants: req.MaxParticipants,
	}
	sessions, err := h.Scheduler.CreateCourse(ctx, &course)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create course failed"})
	}

	out := make([]sessionResp, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toSessionResp(s))
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"course":   toCourseResp(course),
		"sessions": out,
	})
}

// ListCourses returns the authenticated chef's courses.
func (h *ChefHandler) ListCourses(c echo.Context) error {
	chefID, err := getChefID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	courses, err := h.Courses.ListByChef(ctx, chefID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list courses failed"})
	}
	out := make([]courseResp, 0, len(courses))
	for _, course := range courses {
		out = append(out, toCourseResp(course))
	}
	return c.JSON(http.StatusOK, out)
}

// GetCourse returns one of the chef's courses with its timetable.
func (h *ChefHandler) GetCourse(c echo.Context) error {
	chefID, err := getChefID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid course id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	course, err := h.Courses.GetByIDForChef(ctx, id, chefID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "course not found"})
		}
		if err == repository.ErrForbidden {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load course failed"})
	}
	sessions, err := h.Sessions.ListByCourse(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load sessions failed"})
	}
	out := make([]sessionResp, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toSessionResp(s))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"course":   toCourseResp(course),
		"sessions": out,
	})
}

// UpdateCourse edits a course's descriptive fields. The schedule-
// defining fields are immutable after generation.
func (h *ChefHandler) UpdateCourse(c echo.Context) error {
	chefID, err := getChefID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid course id"})
	}
	var req updateCourseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
	}
	if req.MaxParticipants < 1 || req.MaxParticipants > service.MaxParticipants {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid max_participants"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Courses.Update(ctx, id, chefID, req.Title, req.Description, req.PriceCents, req.MaxParticipants); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "course not found"})
		}
		if err == repository.ErrForbidden {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update course failed"})
	}
	course, err := h.Courses.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load course failed"})
	}
	return c.JSON(http.StatusOK, toCourseResp(course))
}

// UpdateCourseStatus moves a course between BOZZA, ATTIVO, COMPLETATO
// and SOSPESO.
func (h *ChefHandler) UpdateCourseStatus(c echo.Context) error {
	chefID, err := getChefID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid course id"})
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	switch req.Status {
	case model.CourseDraft, model.CourseActive, model.CourseCompleted, model.CourseSuspended:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Courses.UpdateStatus(ctx, id, chefID, req.Status); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "course not found"})
		}
		if err == repository.ErrForbidden {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update status failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": req.Status})
}

// DeleteCourse removes a course that has no enrollments yet.
func (h *ChefHandler) DeleteCourse(c echo.Context) error {
	chefID, err := getChefID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid course id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Courses.Delete(ctx, id, chefID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "course not found"})
		}
		if err == repository.ErrForbidden {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "course has enrollments; suspend it instead"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete course failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
