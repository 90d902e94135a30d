package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodlab/foodlab-api/internal/model"
)

func newReportService(store *fakeReportStore) *ReportService {
	chefs := &fakeChefStore{GetByIDFn: func(ctx context.Context, id uint64) (model.Chef, error) {
		return model.Chef{ID: id, Name: "Gina", Surname: "Bianchi"}, nil
	}}
	svc := NewReportService(store, chefs)
	svc.now = func() time.Time { return time.Date(2026, time.February, 17, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestModalityDistributionCollapsesAndZeroFills(t *testing.T) {
	store := &fakeReportStore{
		SessionsByModalityFn: func(ctx context.Context, chefID uint64) ([]model.ModalityCount, error) {
			return []model.ModalityCount{
				{Modality: "online", Count: 4},
				{Modality: "presenza", Count: 3},
				{Modality: "pratica", Count: 2}, // legacy synonym
			}, nil
		},
	}
	svc := newReportService(store)

	dist, err := svc.ModalityDistribution(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Online": 4, "Presenza": 5}, dist)
}

func TestModalityDistributionEmpty(t *testing.T) {
	store := &fakeReportStore{
		SessionsByModalityFn: func(ctx context.Context, chefID uint64) ([]model.ModalityCount, error) {
			return nil, nil
		},
	}
	svc := newReportService(store)

	dist, err := svc.ModalityDistribution(context.Background(), 1)
	require.NoError(t, err)
	// the fixed keys are present even with no sessions at all
	assert.Equal(t, map[string]int{"Online": 0, "Presenza": 0}, dist)
}

func TestDifficultyDistributionBuckets(t *testing.T) {
	store := &fakeReportStore{
		RecipesByDifficultyFn: func(ctx context.Context, chefID uint64) ([]model.DifficultyCount, error) {
			return []model.DifficultyCount{
				{Difficulty: 1, Count: 2},
				{Difficulty: 2, Count: 1},
				{Difficulty: 3, Count: 4},
				{Difficulty: 5, Count: 3},
				{Difficulty: 9, Count: 1}, // out of range
			}, nil
		},
	}
	svc := newReportService(store)

	dist, err := svc.DifficultyDistribution(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"FACILE":      3,
		"MEDIO":       4,
		"DIFFICILE":   3,
		"SCONOSCIUTO": 1,
	}, dist)
}

func TestDifficultyDistributionOmitsUnknownWhenClean(t *testing.T) {
	store := &fakeReportStore{
		RecipesByDifficultyFn: func(ctx context.Context, chefID uint64) ([]model.DifficultyCount, error) {
			return []model.DifficultyCount{{Difficulty: 2, Count: 5}}, nil
		},
	}
	svc := newReportService(store)

	dist, err := svc.DifficultyDistribution(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"FACILE": 5, "MEDIO": 0, "DIFFICILE": 0}, dist)
	assert.NotContains(t, dist, "SCONOSCIUTO")
}

func TestActivitySeriesZeroFillsTwelveMonths(t *testing.T) {
	var gotFrom, gotTo time.Time
	store := &fakeReportStore{
		CourseStartsByMonthFn: func(ctx context.Context, chefID uint64, from, to time.Time) ([]model.MonthCount, error) {
			gotFrom, gotTo = from, to
			return []model.MonthCount{
				{YearMonth: model.YearMonth{Year: 2025, Month: 6}, Count: 2},
				{YearMonth: model.YearMonth{Year: 2026, Month: 2}, Count: 1},
			}, nil
		},
		SessionsByMonthFn: func(ctx context.Context, chefID uint64, from, to time.Time) ([]model.MonthCount, error) {
			return []model.MonthCount{
				{YearMonth: model.YearMonth{Year: 2026, Month: 1}, Count: 8},
			}, nil
		},
	}
	svc := newReportService(store)

	series, err := svc.ActivitySeries(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, series, 12)

	// window is [Mar 2025, Mar 2026) with now fixed to Feb 2026
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), gotFrom)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), gotTo)

	assert.Equal(t, model.YearMonth{Year: 2025, Month: 3}, series[0].YearMonth)
	assert.Equal(t, "Mar 2025", series[0].Label)
	assert.Zero(t, series[0].Courses)

	byMonth := map[model.YearMonth]model.SeriesPoint{}
	for _, p := range series {
		byMonth[p.YearMonth] = p
	}
	assert.Equal(t, 2, byMonth[model.YearMonth{Year: 2025, Month: 6}].Courses)
	assert.Equal(t, 8, byMonth[model.YearMonth{Year: 2026, Month: 1}].Sessions)
	assert.Equal(t, 1, byMonth[model.YearMonth{Year: 2026, Month: 2}].Courses)
	assert.Equal(t, "Gen 2026", byMonth[model.YearMonth{Year: 2026, Month: 1}].Label)
}

func TestMonthlyReportAssemblesSnapshot(t *testing.T) {
	store := &fakeReportStore{
		MonthlyTotalsFn: func(ctx context.Context, chefID uint64, from, to time.Time) (model.MonthlyTotals, error) {
			assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), from)
			assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), to)
			return model.MonthlyTotals{
				Courses:              2,
				OnlineSessions:       5,
				InPersonSessions:     6,
				RecipesUsed:          9,
				Enrollments:          14,
				ActiveEnrollments:    10,
				CompletedEnrollments: 3,
				CancelledEnrollments: 1,
				RevenueCents:         195000,
			}, nil
		},
		SessionsByModalityBetweenFn: func(ctx context.Context, chefID uint64, from, to time.Time) ([]model.ModalityCount, error) {
			return []model.ModalityCount{{Modality: "online", Count: 5}, {Modality: "presenza", Count: 6}}, nil
		},
		RecipesUsedByDifficultyBetweenFn: func(ctx context.Context, chefID uint64, from, to time.Time) ([]model.DifficultyCount, error) {
			return []model.DifficultyCount{{Difficulty: 2, Count: 4}, {Difficulty: 4, Count: 5}}, nil
		},
		CoursesByCategoryFn: func(ctx context.Context, chefID uint64) ([]model.CategoryCount, error) {
			return []model.CategoryCount{{Category: "Pasticceria", Count: 2}}, nil
		},
	}
	svc := newReportService(store)

	rep, err := svc.Monthly(context.Background(), 1, 2026, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Month)
	assert.Equal(t, 2026, rep.Year)
	assert.Equal(t, "Gina Bianchi", rep.ChefName)
	assert.Equal(t, 2, rep.Courses)
	assert.Equal(t, 5, rep.OnlineSessions)
	assert.Equal(t, 6, rep.InPersonSessions)
	assert.Equal(t, uint64(195000), rep.RevenueCents)
	assert.Equal(t, map[string]int{"Online": 5, "Presenza": 6}, rep.SessionsByModality)
	assert.Equal(t, map[string]int{"FACILE": 4, "MEDIO": 0, "DIFFICILE": 5}, rep.RecipesByDifficulty)
	assert.Equal(t, map[string]int{"Pasticceria": 2}, rep.CoursesByCategory)
}

func TestMonthlyReportValidatesPeriod(t *testing.T) {
	svc := newReportService(&fakeReportStore{})

	_, err := svc.Monthly(context.Background(), 1, 2026, 0)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Monthly(context.Background(), 1, 2026, 13)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Monthly(context.Background(), 1, 1800, 5)
	assert.ErrorIs(t, err, ErrValidation)
}
