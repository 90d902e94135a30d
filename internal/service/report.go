package service

import (
	"context"
	"fmt"
	"time"

	"github.com/foodlab/foodlab-api/internal/model"
	"github.com/foodlab/foodlab-api/internal/stats"
)

// ActivitySeriesMonths is the fixed span of the rolling activity series.
const ActivitySeriesMonths = 12

// ReportService derives dashboard distributions and monthly reports
// from entity state. The store hands back raw grouped rows; all
// bucketing, collapsing and zero-filling happens here so the rules are
// testable without a database. Nothing is cached: a report always
// reflects the ledger as of the request.
type ReportService struct {
	store ReportStore
	chefs ChefStore
	now   func() time.Time
}

// NewReportService returns a ReportService over the given stores.
func NewReportService(store ReportStore, chefs ChefStore) *ReportService {
	return &ReportService{store: store, chefs: chefs, now: time.Now}
}

// CategoryDistribution returns the chef's courses-per-category counts,
// largest first. Categories without courses are omitted.
func (s *ReportService) CategoryDistribution(ctx context.Context, chefID uint64) ([]model.CategoryCount, error) {
	return s.store.CoursesByCategory(ctx, chefID)
}

// ModalityDistribution returns the chef's sessions-per-modality counts
// keyed by the fixed display names. Online and Presenza are always
// present (zero-filled); unexpected raw values are collapsed into Altro
// only when they occur.
func (s *ReportService) ModalityDistribution(ctx context.Context, chefID uint64) (map[string]int, error) {
	rows, err := s.store.SessionsByModality(ctx, chefID)
	if err != nil {
		return nil, err
	}
	return collapseModalities(rows), nil
}

// DifficultyDistribution returns the chef's recipes-per-bucket counts.
// FACILE, MEDIO and DIFFICILE are always present (zero-filled);
// SCONOSCIUTO appears only when out-of-range levels exist.
func (s *ReportService) DifficultyDistribution(ctx context.Context, chefID uint64) (map[string]int, error) {
	rows, err := s.store.RecipesByDifficulty(ctx, chefID)
	if err != nil {
		return nil, err
	}
	return bucketDifficulties(rows), nil
}

// ActivitySeries returns the last twelve months of the chef's course
// starts and held sessions, oldest first. Every month of the window is
// present even when empty, so charts get a stable axis.
func (s *ReportService) ActivitySeries(ctx context.Context, chefID uint64) ([]model.SeriesPoint, error) {
	months := stats.LastNMonths(s.now(), ActivitySeriesMonths)
	from := monthStart(months[0])
	to := monthStart(months[len(months)-1]).AddDate(0, 1, 0)

	courseRows, err := s.store.CourseStartsByMonth(ctx, chefID, from, to)
	if err != nil {
		return nil, err
	}
	sessionRows, err := s.store.SessionsByMonth(ctx, chefID, from, to)
	if err != nil {
		return nil, err
	}

	courses := make(map[model.YearMonth]int, len(courseRows))
	for _, r := range courseRows {
		courses[r.YearMonth] = r.Count
	}
	sessions := make(map[model.YearMonth]int, len(sessionRows))
	for _, r := range sessionRows {
		sessions[r.YearMonth] = r.Count
	}

	series := make([]model.SeriesPoint, 0, len(months))
	for _, ym := range months {
		series = append(series, model.SeriesPoint{
			YearMonth: ym,
			Label:     stats.MonthLabel(ym.Year, ym.Month),
			Courses:   courses[ym],
			Sessions:  sessions[ym],
		})
	}
	return series, nil
}

// Monthly assembles the full statistics snapshot for a chef and
// calendar month: totals, revenue and the month-scoped distributions.
func (s *ReportService) Monthly(ctx context.Context, chefID uint64, year, month int) (model.MonthlyReport, error) {
	if month < 1 || month > 12 {
		return model.MonthlyReport{}, fmt.Errorf("%w: month must be between 1 and 12", ErrValidation)
	}
	if year < 2000 || year > 2100 {
		return model.MonthlyReport{}, fmt.Errorf("%w: year out of range", ErrValidation)
	}
	chef, err := s.chefs.GetByID(ctx, chefID)
	if err != nil {
		return model.MonthlyReport{}, err
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	totals, err := s.store.MonthlyTotals(ctx, chefID, from, to)
	if err != nil {
		return model.MonthlyReport{}, err
	}
	modalityRows, err := s.store.SessionsByModalityBetween(ctx, chefID, from, to)
	if err != nil {
		return model.MonthlyReport{}, err
	}
	difficultyRows, err := s.store.RecipesUsedByDifficultyBetween(ctx, chefID, from, to)
	if err != nil {
		return model.MonthlyReport{}, err
	}
	categories, err := s.store.CoursesByCategory(ctx, chefID)
	if err != nil {
		return model.MonthlyReport{}, err
	}
	byCategory := make(map[string]int, len(categories))
	for _, c := range categories {
		byCategory[c.Category] = c.Count
	}

	return model.MonthlyReport{
		Month:                month,
		Year:                 year,
		ChefName:             chef.FullName(),
		Courses:              totals.Courses,
		OnlineSessions:       totals.OnlineSessions,
		InPersonSessions:     totals.InPersonSessions,
		RecipesUsed:          totals.RecipesUsed,
		Enrollments:          totals.Enrollments,
		ActiveEnrollments:    totals.ActiveEnrollments,
		CompletedEnrollments: totals.CompletedEnrollments,
		CancelledEnrollments: totals.CancelledEnrollments,
		RevenueCents:         totals.RevenueCents,
		CoursesByCategory:    byCategory,
		SessionsByModality:   collapseModalities(modalityRows),
		RecipesByDifficulty:  bucketDifficulties(difficultyRows),
	}, nil
}

// Periods lists the months the chef has activity in, newest first, for
// report period pickers.
func (s *ReportService) Periods(ctx context.Context, chefID uint64) ([]model.YearMonth, error) {
	return s.store.ActivityPeriods(ctx, chefID)
}

func collapseModalities(rows []model.ModalityCount) map[string]int {
	out := stats.EnsureBuckets(nil, stats.ModalityKeys...)
	for _, r := range rows {
		out[stats.CollapseModality(r.Modality)] += r.Count
	}
	return out
}

func bucketDifficulties(rows []model.DifficultyCount) map[string]int {
	out := make(map[string]int, len(stats.DifficultyBuckets)+1)
	for _, b := range stats.DifficultyBuckets {
		out[string(b)] = 0
	}
	for _, r := range rows {
		out[string(stats.BucketDifficulty(r.Difficulty))] += r.Count
	}
	return out
}

func monthStart(ym model.YearMonth) time.Time {
	return time.Date(ym.Year, time.Month(ym.Month), 1, 0, 0, 0, 0, time.UTC)
}
