package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/foodlab/foodlab-api/internal/repository"
	"github.com/foodlab/foodlab-api/internal/service"
)

type enrollReq struct {
	UserID uint64 `json:"user_id"`
	Notes  string `json:"notes"`
}

type cancelEnrollmentReq struct {
	Reason string `json:"reason"`
}

// Enroll registers a participant into one of the chef's courses. All
// ledger rules are enforced in one transaction: active course, free
// capacity, no duplicate active-or-completed enrollment.
func (h *ChefHandler) Enroll(c echo.Context) error {
	chefID, err := getChefID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	courseID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid course id"})
	}
	var req enrollReq
	if err := c.Bind(&req); err != nil || req.UserID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Enrollment management is chef-scoped: verify the course is theirs
	// before touching the ledger.
	if _, err := h.Courses.GetByIDForChef(ctx, courseID, chefID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "course not found"})
		}
		if err == repository.ErrForbidden {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load course failed"})
	}

	e, err := h.Enrollments.Enroll(ctx, req.UserID, courseID, req.Notes)
	if err != nil {
		switch {
		case err == sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user or course not found"})
		case err == service.ErrUserInactive:
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "user is deactivated"})
		case err == service.ErrCourseNotActive:
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "course is not open for enrollment"})
		case err == service.ErrCourseFull:
			return c.JSON(http.StatusConflict, echo.Map{"error": "course is full"})
		case err == service.ErrDuplicateEnrollment:
			return c.JSON(http.StatusConflict, echo.Map{"error": "user already enrolled"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "enroll failed"})
	}
	return c.JSON(http.StatusCreated, e)
}

// ListCourseEnrollments returns the ledger rows of one course.
func (h *ChefHandler) ListCourseEnrollments(c echo.Context) error {
	chefID, err := getChefID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	courseID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid course id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Enrollments.ListByCourse(ctx, courseID, chefID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "course not found"})
		}
		if err == repository.ErrForbidden {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list enrollments failed"})
	}
	return c.JSON(http.StatusOK, rows)
}

// CancelEnrollment moves an active enrollment to ANNULLATA with a
// mandatory reason.
func (h *ChefHandler) CancelEnrollment(c echo.Context) error {
	chefID, err := getChefID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid enrollment id"})
	}
	var req cancelEnrollmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Enrollments.Cancel(ctx, id, chefID, req.Reason); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "reason required"})
		case err == sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "enrollment not found"})
		case err == repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		case err == repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "enrollment is not active"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel enrollment failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// CompleteEnrollment moves an active enrollment to COMPLETATA.
func (h *ChefHandler) CompleteEnrollment(c echo.Context) error {
	chefID, err := getChefID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid enrollment id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Enrollments.Complete(ctx, id, chefID); err != nil {
		switch {
		case err == sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "enrollment not found"})
		case err == repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		case err == repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "enrollment is not active"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "complete enrollment failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
