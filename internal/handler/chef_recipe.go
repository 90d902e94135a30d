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

type recipeReq struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Difficulty      int    `json:"difficulty"`
	PrepTimeMinutes int    `json:"prep_time_minutes"`
	Servings        int    `json:"servings"`
	Instructions    string `json:"instructions"`
}

func (r recipeReq) validate() string {
	if strings.TrimSpace(r.Name) == "" {
		return "name required"
	}
	if r.Difficulty < 1 || r.Difficulty > 5 {
		return "difficulty must be between 1 and 5"
	}
	if r.PrepTimeMinutes < 0 {
		return "prep_time_minutes must not be negative"
	}
	if r.Servings < 0 {
		return "servings must not be negative"
	}
	return ""
}

// CreateRecipe adds a recipe to the chef's personal recipe book.
func (h *ChefHandler) CreateRecipe(c echo.Context) error {
	chefID, err := getChefID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req recipeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	re := model.Recipe{
		ChefID:          chefID,
		Name:            req.Name,
		Description:     req.Description,
		Difficulty:      req.Difficulty,
		PrepTimeMinutes: req.PrepTimeMinutes,
		Servings:        req.Servings,
		Instructions:    req.Instructions,
	}
	if err := h.Recipes.Create(ctx, &re); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create recipe failed"})
	}
	return c.JSON(http.StatusCreated, re)
}

// ListRecipes returns the chef's recipe book.
func (h *ChefHandler) ListRecipes(c echo.Context) error {
	chefID, err := getChefID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	recipes, err := h.Recipes.ListByChef(ctx, chefID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list recipes failed"})
	}
	return c.JSON(http.StatusOK, recipes)
}

// GetRecipe returns one of the chef's recipes.
func (h *ChefHandler) GetRecipe(c echo.Context) error {
	chefID, err := getChefID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid recipe id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	re, err := h.Recipes.GetByIDForChef(ctx, id, chefID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "recipe not found"})
		}
		if err == repository.ErrForbidden {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load recipe failed"})
	}
	return c.JSON(http.StatusOK, re)
}

// UpdateRecipe rewrites a recipe.
func (h *ChefHandler) UpdateRecipe(c echo.Context) error {
	chefID, err := getChefID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid recipe id"})
	}
	var req recipeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	re := model.Recipe{
		ID:              id,
		Name:            req.Name,
		Description:     req.Description,
		Difficulty:      req.Difficulty,
		PrepTimeMinutes: req.PrepTimeMinutes,
		Servings:        req.Servings,
		Instructions:    req.Instructions,
	}
	if err := h.Recipes.Update(ctx, &re, chefID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "recipe not found"})
		}
		if err == repository.ErrForbidden {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update recipe failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id})
}

// DeleteRecipe removes a recipe that is not linked to any session.
func (h *ChefHandler) DeleteRecipe(c echo.Context) error {
	chefID, err := getChefID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid recipe id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Recipes.Delete(ctx, id, chefID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "recipe not found"})
		}
		if err == repository.ErrForbidden {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "recipe is linked to sessions"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete recipe failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
