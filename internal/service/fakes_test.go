package service

import (
	"context"
	"time"

	"github.com/foodlab/foodlab-api/internal/model"
	"github.com/foodlab/foodlab-api/internal/repository"
)

// Function-field fakes: each test sets only the calls it expects.

type fakeLedgerStore struct {
	BeginFn               func(ctx context.Context) (LedgerTx, error)
	GetByIDFn             func(ctx context.Context, id uint64) (model.Enrollment, error)
	CancelFn              func(ctx context.Context, id, chefID uint64, reason string) error
	CompleteFn            func(ctx context.Context, id, chefID uint64) error
	ListByCourseForChefFn func(ctx context.Context, courseID, chefID uint64) ([]repository.EnrollmentDetail, error)
	ListByUserFn          func(ctx context.Context, userID uint64) ([]repository.EnrollmentDetail, error)
}

func (f *fakeLedgerStore) Begin(ctx context.Context) (LedgerTx, error) { return f.BeginFn(ctx) }
func (f *fakeLedgerStore) GetByID(ctx context.Context, id uint64) (model.Enrollment, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeLedgerStore) Cancel(ctx context.Context, id, chefID uint64, reason string) error {
	return f.CancelFn(ctx, id, chefID, reason)
}
func (f *fakeLedgerStore) Complete(ctx context.Context, id, chefID uint64) error {
	return f.CompleteFn(ctx, id, chefID)
}
func (f *fakeLedgerStore) ListByCourseForChef(ctx context.Context, courseID, chefID uint64) ([]repository.EnrollmentDetail, error) {
	return f.ListByCourseForChefFn(ctx, courseID, chefID)
}
func (f *fakeLedgerStore) ListByUser(ctx context.Context, userID uint64) ([]repository.EnrollmentDetail, error) {
	return f.ListByUserFn(ctx, userID)
}

type fakeLedgerTx struct {
	CourseForEnrollFn func(ctx context.Context, courseID uint64) (string, int, uint32, error)
	ExistsFn          func(ctx context.Context, userID, courseID uint64) (bool, error)
	CountActiveFn     func(ctx context.Context, courseID uint64) (int, error)
	CreateFn          func(ctx context.Context, e *model.Enrollment) error

	committed  bool
	rolledBack bool
}

func (f *fakeLedgerTx) CourseForEnroll(ctx context.Context, courseID uint64) (string, int, uint32, error) {
	return f.CourseForEnrollFn(ctx, courseID)
}
func (f *fakeLedgerTx) Exists(ctx context.Context, userID, courseID uint64) (bool, error) {
	return f.ExistsFn(ctx, userID, courseID)
}
func (f *fakeLedgerTx) CountActive(ctx context.Context, courseID uint64) (int, error) {
	return f.CountActiveFn(ctx, courseID)
}
func (f *fakeLedgerTx) Create(ctx context.Context, e *model.Enrollment) error {
	return f.CreateFn(ctx, e)
}
func (f *fakeLedgerTx) Commit() error   { f.committed = true; return nil }
func (f *fakeLedgerTx) Rollback() error { f.rolledBack = true; return nil }

type fakeUserStore struct {
	GetByIDFn func(ctx context.Context, id uint64) (model.User, error)
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return f.GetByIDFn(ctx, id)
}

type fakeCourseStore struct {
	GetByIDFn func(ctx context.Context, id uint64) (model.Course, error)
}

func (f *fakeCourseStore) GetByID(ctx context.Context, id uint64) (model.Course, error) {
	return f.GetByIDFn(ctx, id)
}

type fakeChefStore struct {
	GetByIDFn func(ctx context.Context, id uint64) (model.Chef, error)
}

func (f *fakeChefStore) GetByID(ctx context.Context, id uint64) (model.Chef, error) {
	return f.GetByIDFn(ctx, id)
}

type fakeReportStore struct {
	CoursesByCategoryFn              func(ctx context.Context, chefID uint64) ([]model.CategoryCount, error)
	SessionsByModalityFn             func(ctx context.Context, chefID uint64) ([]model.ModalityCount, error)
	SessionsByModalityBetweenFn      func(ctx context.Context, chefID uint64, from, to time.Time) ([]model.ModalityCount, error)
	RecipesByDifficultyFn            func(ctx context.Context, chefID uint64) ([]model.DifficultyCount, error)
	RecipesUsedByDifficultyBetweenFn func(ctx context.Context, chefID uint64, from, to time.Time) ([]model.DifficultyCount, error)
	CourseStartsByMonthFn            func(ctx context.Context, chefID uint64, from, to time.Time) ([]model.MonthCount, error)
	SessionsByMonthFn                func(ctx context.Context, chefID uint64, from, to time.Time) ([]model.MonthCount, error)
	MonthlyTotalsFn                  func(ctx context.Context, chefID uint64, from, to time.Time) (model.MonthlyTotals, error)
	ActivityPeriodsFn                func(ctx context.Context, chefID uint64) ([]model.YearMonth, error)
}

func (f *fakeReportStore) CoursesByCategory(ctx context.Context, chefID uint64) ([]model.CategoryCount, error) {
	return f.CoursesByCategoryFn(ctx, chefID)
}
func (f *fakeReportStore) SessionsByModality(ctx context.Context, chefID uint64) ([]model.ModalityCount, error) {
	return f.SessionsByModalityFn(ctx, chefID)
}
func (f *fakeReportStore) SessionsByModalityBetween(ctx context.Context, chefID uint64, from, to time.Time) ([]model.ModalityCount, error) {
	return f.SessionsByModalityBetweenFn(ctx, chefID, from, to)
}
func (f *fakeReportStore) RecipesByDifficulty(ctx context.Context, chefID uint64) ([]model.DifficultyCount, error) {
	return f.RecipesByDifficultyFn(ctx, chefID)
}
func (f *fakeReportStore) RecipesUsedByDifficultyBetween(ctx context.Context, chefID uint64, from, to time.Time) ([]model.DifficultyCount, error) {
	return f.RecipesUsedByDifficultyBetweenFn(ctx, chefID, from, to)
}
func (f *fakeReportStore) CourseStartsByMonth(ctx context.Context, chefID uint64, from, to time.Time) ([]model.MonthCount, error) {
	return f.CourseStartsByMonthFn(ctx, chefID, from, to)
}
func (f *fakeReportStore) SessionsByMonth(ctx context.Context, chefID uint64, from, to time.Time) ([]model.MonthCount, error) {
	return f.SessionsByMonthFn(ctx, chefID, from, to)
}
func (f *fakeReportStore) MonthlyTotals(ctx context.Context, chefID uint64, from, to time.Time) (model.MonthlyTotals, error) {
	return f.MonthlyTotalsFn(ctx, chefID, from, to)
}
func (f *fakeReportStore) ActivityPeriods(ctx context.Context, chefID uint64) ([]model.YearMonth, error) {
	return f.ActivityPeriodsFn(ctx, chefID)
}
