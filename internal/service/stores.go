package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/foodlab/foodlab-api/internal/model"
	"github.com/foodlab/foodlab-api/internal/repository"
)

// The services depend on narrow store interfaces rather than concrete
// repositories so that business rules can be unit tested against fakes.
// The repositories satisfy them directly or through the thin adapters
// at the bottom of this file.

// LedgerTx is the transactional slice of the ledger used by Enroll: the
// capacity check, the duplicate check and the insert must observe the
// same snapshot.
type LedgerTx interface {
	CourseForEnroll(ctx context.Context, courseID uint64) (status string, maxParticipants int, priceCents uint32, err error)
	Exists(ctx context.Context, userID, courseID uint64) (bool, error)
	CountActive(ctx context.Context, courseID uint64) (int, error)
	Create(ctx context.Context, e *model.Enrollment) error
	Commit() error
	Rollback() error
}

// LedgerStore is what the enrollment service needs from persistence.
type LedgerStore interface {
	Begin(ctx context.Context) (LedgerTx, error)
	GetByID(ctx context.Context, id uint64) (model.Enrollment, error)
	Cancel(ctx context.Context, id, chefID uint64, reason string) error
	Complete(ctx context.Context, id, chefID uint64) error
	ListByCourseForChef(ctx context.Context, courseID, chefID uint64) ([]repository.EnrollmentDetail, error)
	ListByUser(ctx context.Context, userID uint64) ([]repository.EnrollmentDetail, error)
}

// UserStore is the participant lookup used by the enrollment service.
type UserStore interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// CourseStore is the course lookup used by the enrollment service to
// fill audit events.
type CourseStore interface {
	GetByID(ctx context.Context, id uint64) (model.Course, error)
}

// ChefStore is the chef lookup used by the report service.
type ChefStore interface {
	GetByID(ctx context.Context, id uint64) (model.Chef, error)
}

// ReportStore is what the report service needs from persistence. All
// methods return raw rows; bucketing and zero-filling happen in the
// service. *repository.ReportRepo satisfies it.
type ReportStore interface {
	CoursesByCategory(ctx context.Context, chefID uint64) ([]model.CategoryCount, error)
	SessionsByModality(ctx context.Context, chefID uint64) ([]model.ModalityCount, error)
	SessionsByModalityBetween(ctx context.Context, chefID uint64, from, to time.Time) ([]model.ModalityCount, error)
	RecipesByDifficulty(ctx context.Context, chefID uint64) ([]model.DifficultyCount, error)
	RecipesUsedByDifficultyBetween(ctx context.Context, chefID uint64, from, to time.Time) ([]model.DifficultyCount, error)
	CourseStartsByMonth(ctx context.Context, chefID uint64, from, to time.Time) ([]model.MonthCount, error)
	SessionsByMonth(ctx context.Context, chefID uint64, from, to time.Time) ([]model.MonthCount, error)
	MonthlyTotals(ctx context.Context, chefID uint64, from, to time.Time) (model.MonthlyTotals, error)
	ActivityPeriods(ctx context.Context, chefID uint64) ([]model.YearMonth, error)
}

// sqlLedgerStore adapts EnrollmentRepo and CourseRepo to LedgerStore.
type sqlLedgerStore struct {
	enrollments *repository.EnrollmentRepo
	courses     *repository.CourseRepo
}

// NewLedgerStore wires the SQL repositories into the interface the
// enrollment service consumes.
func NewLedgerStore(enrollments *repository.EnrollmentRepo, courses *repository.CourseRepo) LedgerStore {
	return &sqlLedgerStore{enrollments: enrollments, courses: courses}
}

func (s *sqlLedgerStore) Begin(ctx context.Context) (LedgerTx, error) {
	tx, err := s.enrollments.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	return &sqlLedgerTx{store: s, tx: tx}, nil
}

func (s *sqlLedgerStore) GetByID(ctx context.Context, id uint64) (model.Enrollment, error) {
	return s.enrollments.GetByID(ctx, id)
}

func (s *sqlLedgerStore) Cancel(ctx context.Context, id, chefID uint64, reason string) error {
	return s.enrollments.Cancel(ctx, id, chefID, reason)
}

func (s *sqlLedgerStore) Complete(ctx context.Context, id, chefID uint64) error {
	return s.enrollments.Complete(ctx, id, chefID)
}

func (s *sqlLedgerStore) ListByCourseForChef(ctx context.Context, courseID, chefID uint64) ([]repository.EnrollmentDetail, error) {
	return s.enrollments.ListByCourseForChef(ctx, courseID, chefID)
}

func (s *sqlLedgerStore) ListByUser(ctx context.Context, userID uint64) ([]repository.EnrollmentDetail, error) {
	return s.enrollments.ListByUser(ctx, userID)
}

type sqlLedgerTx struct {
	store *sqlLedgerStore
	tx    *sql.Tx
}

func (t *sqlLedgerTx) CourseForEnroll(ctx context.Context, courseID uint64) (string, int, uint32, error) {
	return t.store.courses.GetForEnrollTx(ctx, t.tx, courseID)
}

func (t *sqlLedgerTx) Exists(ctx context.Context, userID, courseID uint64) (bool, error) {
	return t.store.enrollments.ExistsTx(ctx, t.tx, userID, courseID)
}

func (t *sqlLedgerTx) CountActive(ctx context.Context, courseID uint64) (int, error) {
	return t.store.enrollments.CountActiveTx(ctx, t.tx, courseID)
}

func (t *sqlLedgerTx) Create(ctx context.Context, e *model.Enrollment) error {
	return t.store.enrollments.CreateTx(ctx, t.tx, e)
}

func (t *sqlLedgerTx) Commit() error   { return t.tx.Commit() }
func (t *sqlLedgerTx) Rollback() error { return t.tx.Rollback() }
