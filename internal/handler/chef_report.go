package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/foodlab/foodlab-api/internal/service"
	"github.com/foodlab/foodlab-api/internal/stats"
)

// Report endpoints never cache: every response is derived from the
// current entity state, so a ledger change is visible on the next call.

// CategoryDistribution returns courses-per-category for the chef.
func (h *ChefHandler) CategoryDistribution(c echo.Context) error {
	chefID, err := getChefID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	dist, err := h.Reports.CategoryDistribution(ctx, chefID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "report failed"})
	}
	return c.JSON(http.StatusOK, dist)
}

// ModalityDistribution returns sessions-per-modality for the chef.
func (h *ChefHandler) ModalityDistribution(c echo.Context) error {
	chefID, err := getChefID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	dist, err := h.Reports.ModalityDistribution(ctx, chefID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "report failed"})
	}
	return c.JSON(http.StatusOK, dist)
}

// DifficultyDistribution returns recipes-per-bucket for the chef.
func (h *ChefHandler) DifficultyDistribution(c echo.Context) error {
	chefID, err := getChefID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	dist, err := h.Reports.DifficultyDistribution(ctx, chefID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "report failed"})
	}
	return c.JSON(http.StatusOK, dist)
}

// ActivitySeries returns the rolling twelve-month activity chart data.
func (h *ChefHandler) ActivitySeries(c echo.Context) error {
	chefID, err := getChefID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	series, err := h.Reports.ActivitySeries(ctx, chefID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "report failed"})
	}
	return c.JSON(http.StatusOK, series)
}

// MonthlyReport returns the full statistics snapshot for ?year= and
// ?month= query parameters.
func (h *ChefHandler) MonthlyReport(c echo.Context) error {
	chefID, err := getChefID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	year, err1 := strconv.Atoi(c.QueryParam("year"))
	month, err2 := strconv.Atoi(c.QueryParam("month"))
	if err1 != nil || err2 != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "year and month query parameters required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rep, err := h.Reports.Monthly(ctx, chefID, year, month)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "report failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"period": stats.PeriodLabel(year, month),
		"report": rep,
	})
}

// ReportPeriods lists the months with activity, for period pickers.
func (h *ChefHandler) ReportPeriods(c echo.Context) error {
	chefID, err := getChefID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	periods, err := h.Reports.Periods(ctx, chefID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "report failed"})
	}
	type periodResp struct {
		Year  int    `json:"year"`
		Month int    `json:"month"`
		Label string `json:"label"`
	}
	out := make([]periodResp, 0, len(periods))
	for _, p := range periods {
		out = append(out, periodResp{Year: p.Year, Month: p.Month, Label: stats.MonthLabel(p.Year, p.Month)})
	}
	return c.JSON(http.StatusOK, out)
}
