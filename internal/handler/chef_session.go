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

type updateSessionReq struct {
	Date            string `json:"date"` // YYYY-MM-DD
	Modality        string `json:"modality"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes"`
}

type linkRecipeReq struct {
	RecipeID       uint64 `json:"recipe_id"`
	ExecutionOrder int    `json:"execution_order"`
}

// UpdateSession edits one session of a course timetable. Dates may move
// but never before the course start; the sequence number is fixed.
func (h *ChefHandler) UpdateSession(c echo.Context) error {
	chefID, err := getChefID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	var req updateSessionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	date, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	sess, err := h.Scheduler.UpdateSession(ctx, chefID, id, date, model.Modality(req.Modality), req.Title, req.Description, req.DurationMinutes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case err == sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
		case err == repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update session failed"})
	}
	return c.JSON(http.StatusOK, toSessionResp(sess))
}

// CompleteSession marks a session as held.
func (h *ChefHandler) CompleteSession(c echo.Context) error {
	chefID, err := getChefID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Sessions.GetByIDForChef(ctx, id, chefID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
		}
		if err == repository.ErrForbidden {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load session failed"})
	}
	if err := h.Sessions.SetCompleted(ctx, id, true); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "complete session failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "completed": true})
}

// LinkRecipe attaches a recipe to a practical session.
func (h *ChefHandler) LinkRecipe(c echo.Context) error {
	chefID, err := getChefID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	var req linkRecipeReq
	if err := c.Bind(&req); err != nil || req.RecipeID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "recipe_id required"})
	}
	if req.ExecutionOrder == 0 {
		req.ExecutionOrder = 1
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Scheduler.LinkRecipe(ctx, chefID, id, req.RecipeID, req.ExecutionOrder); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case err == service.ErrNotPractical:
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "recipes can only be linked to practical sessions"})
		case err == sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "session or recipe not found"})
		case err == repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		case err == repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "recipe already linked to this session"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "link recipe failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// UnlinkRecipe detaches a recipe from a session.
func (h *ChefHandler) UnlinkRecipe(c echo.Context) error {
	chefID, err := getChefID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	recipeID, ok := pathID(c, "recipe_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid recipe id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Sessions.GetByIDForChef(ctx, id, chefID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
		}
		if err == repository.ErrForbidden {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load session failed"})
	}
	if err := h.Sessions.RemoveRecipe(ctx, id, recipeID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "recipe not linked"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "unlink recipe failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListAvailableRecipes returns the chef's recipes not yet linked to the
// session, for the link-recipe picker.
func (h *ChefHandler) ListAvailableRecipes(c echo.Context) error {
	chefID, err := getChefID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Sessions.GetByIDForChef(ctx, id, chefID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
		}
		if err == repository.ErrForbidden {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load session failed"})
	}
	recipes, err := h.Recipes.ListAvailableForSession(ctx, chefID, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list recipes failed"})
	}
	return c.JSON(http.StatusOK, recipes)
}

// ListSessionRecipes returns a session's recipe lineup.
func (h *ChefHandler) ListSessionRecipes(c echo.Context) error {
	chefID, err := getChefID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Sessions.GetByIDForChef(ctx, id, chefID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
		}
		if err == repository.ErrForbidden {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load session failed"})
	}
	recipes, err := h.Sessions.ListRecipes(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list recipes failed"})
	}
	return c.JSON(http.StatusOK, recipes)
}
