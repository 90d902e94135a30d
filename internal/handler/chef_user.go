package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/foodlab/foodlab-api/internal/model"
	"github.com/foodlab/foodlab-api/internal/repository"
)

// Participants are back-office records: chefs create and maintain them,
// the participants themselves never log in.

type userReq struct {
	Name            string `json:"name"`
	Surname         string `json:"surname"`
	Email           string `json:"email"`
	ExperienceLevel string `json:"experience_level"`
}

func (r userReq) validate() string {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Surname) == "" {
		return "name/surname required"
	}
	if strings.TrimSpace(r.Email) == "" {
		return "email required"
	}
	switch r.ExperienceLevel {
	case model.ExperienceBeginner, model.ExperienceIntermediate, model.ExperienceAdvanced:
		return ""
	}
	return "experience_level must be PRINCIPIANTE, INTERMEDIO or AVANZATO"
}

// CreateUser registers a participant.
func (h *ChefHandler) CreateUser(c echo.Context) error {
	var req userReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u := model.User{
		Name:            req.Name,
		Surname:         req.Surname,
		Email:           req.Email,
		ExperienceLevel: req.ExperienceLevel,
	}
	if err := h.Users.Create(ctx, &u); err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	return c.JSON(http.StatusCreated, u)
}

// ListUsers returns all participants, or a filtered set when ?q= is
// given (matched against name, surname and email).
func (h *ChefHandler) ListUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var (
		users []model.User
		err   error
	)
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		users, err = h.Users.SearchByName(ctx, q)
	} else {
		users, err = h.Users.List(ctx)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list users failed"})
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser returns one participant with their enrollment history.
func (h *ChefHandler) GetUser(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	enrollments, err := h.Enrollments.ListByUser(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load enrollments failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"user":        u,
		"enrollments": enrollments,
	})
}

// UpdateUser rewrites a participant's fields.
func (h *ChefHandler) UpdateUser(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var req userReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u := model.User{
		ID:              id,
		Name:            req.Name,
		Surname:         req.Surname,
		Email:           req.Email,
		ExperienceLevel: req.ExperienceLevel,
	}
	if err := h.Users.Update(ctx, &u); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update user failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id})
}

// DeactivateUser disables a participant account. The record and its
// enrollment history stay in place.
func (h *ChefHandler) DeactivateUser(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.SetActive(ctx, id, false); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "deactivate user failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ActivateUser re-enables a participant account.
func (h *ChefHandler) ActivateUser(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.SetActive(ctx, id, true); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "activate user failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
