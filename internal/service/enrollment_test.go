package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodlab/foodlab-api/internal/model"
	"github.com/foodlab/foodlab-api/internal/queue"
	"github.com/foodlab/foodlab-api/internal/repository"
)

func newEnrollmentService(tx *fakeLedgerTx, ledger *fakeLedgerStore) (*EnrollmentService, *[]queue.EnrollmentRecordedEvent) {
	if ledger == nil {
		ledger = &fakeLedgerStore{}
	}
	if tx != nil {
		ledger.BeginFn = func(ctx context.Context) (LedgerTx, error) { return tx, nil }
	}
	users := &fakeUserStore{GetByIDFn: func(ctx context.Context, id uint64) (model.User, error) {
		return model.User{ID: id, Name: "Ada", Surname: "Rossi", IsActive: true}, nil
	}}
	courses := &fakeCourseStore{GetByIDFn: func(ctx context.Context, id uint64) (model.Course, error) {
		return model.Course{ID: id, ChefID: 9, Title: "Pasta fresca", PriceCents: 15000}, nil
	}}
	svc := NewEnrollmentService(ledger, users, courses)
	published := &[]queue.EnrollmentRecordedEvent{}
	svc.publish = func(ctx context.Context, ev queue.EnrollmentRecordedEvent) error {
		*published = append(*published, ev)
		return nil
	}
	svc.now = func() time.Time { return time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC) }
	return svc, published
}

func enrollableTx() *fakeLedgerTx {
	return &fakeLedgerTx{
		CourseForEnrollFn: func(ctx context.Context, courseID uint64) (string, int, uint32, error) {
			return model.CourseActive, 10, 15000, nil
		},
		ExistsFn:      func(ctx context.Context, userID, courseID uint64) (bool, error) { return false, nil },
		CountActiveFn: func(ctx context.Context, courseID uint64) (int, error) { return 3, nil },
		CreateFn: func(ctx context.Context, e *model.Enrollment) error {
			e.ID = 42
			e.Status = model.EnrollmentActive
			e.EnrolledAt = time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC)
			return nil
		},
	}
}

func TestEnrollHappyPath(t *testing.T) {
	tx := enrollableTx()
	svc, published := newEnrollmentService(tx, nil)

	e, err := svc.Enroll(context.Background(), 5, 7, "")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), e.ID)
	assert.Equal(t, model.EnrollmentActive, e.Status)
	assert.True(t, tx.committed)

	require.Len(t, *published, 1)
	ev := (*published)[0]
	assert.Equal(t, "enrolled", ev.Action)
	assert.Equal(t, uint64(42), ev.EnrollmentID)
	assert.Equal(t, "Ada Rossi", ev.UserName)
	assert.Equal(t, "Pasta fresca", ev.CourseTitle)
	assert.Equal(t, uint32(15000), ev.PriceCents)
}

func TestEnrollRejectsInactiveUser(t *testing.T) {
	svc, _ := newEnrollmentService(enrollableTx(), nil)
	svc.users = &fakeUserStore{GetByIDFn: func(ctx context.Context, id uint64) (model.User, error) {
		return model.User{ID: id, IsActive: false}, nil
	}}

	_, err := svc.Enroll(context.Background(), 5, 7, "")
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestEnrollRejectsInactiveCourse(t *testing.T) {
	tx := enrollableTx()
	tx.CourseForEnrollFn = func(ctx context.Context, courseID uint64) (string, int, uint32, error) {
		return model.CourseSuspended, 10, 15000, nil
	}
	svc, published := newEnrollmentService(tx, nil)

	_, err := svc.Enroll(context.Background(), 5, 7, "")
	assert.ErrorIs(t, err, ErrCourseNotActive)
	assert.True(t, tx.rolledBack)
	assert.Empty(t, *published)
}

func TestEnrollRejectsDuplicate(t *testing.T) {
	tx := enrollableTx()
	tx.ExistsFn = func(ctx context.Context, userID, courseID uint64) (bool, error) { return true, nil }
	svc, _ := newEnrollmentService(tx, nil)

	_, err := svc.Enroll(context.Background(), 5, 7, "")
	assert.ErrorIs(t, err, ErrDuplicateEnrollment)
	assert.False(t, tx.committed)
}

func TestEnrollRejectsFullCourse(t *testing.T) {
	tx := enrollableTx()
	tx.CountActiveFn = func(ctx context.Context, courseID uint64) (int, error) { return 10, nil }
	svc, _ := newEnrollmentService(tx, nil)

	_, err := svc.Enroll(context.Background(), 5, 7, "")
	assert.ErrorIs(t, err, ErrCourseFull)
}

func TestEnrollMissingCourse(t *testing.T) {
	tx := enrollableTx()
	tx.CourseForEnrollFn = func(ctx context.Context, courseID uint64) (string, int, uint32, error) {
		return "", 0, 0, sql.ErrNoRows
	}
	svc, _ := newEnrollmentService(tx, nil)

	_, err := svc.Enroll(context.Background(), 5, 7, "")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestCancelRequiresReason(t *testing.T) {
	svc, _ := newEnrollmentService(nil, &fakeLedgerStore{})
	err := svc.Cancel(context.Background(), 42, 9, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCancelPublishesAudit(t *testing.T) {
	ledger := &fakeLedgerStore{
		CancelFn: func(ctx context.Context, id, chefID uint64, reason string) error {
			assert.Equal(t, "richiesta del partecipante", reason)
			return nil
		},
		GetByIDFn: func(ctx context.Context, id uint64) (model.Enrollment, error) {
			return model.Enrollment{ID: id, UserID: 5, CourseID: 7, Status: model.EnrollmentCancelled}, nil
		},
	}
	svc, published := newEnrollmentService(nil, ledger)

	err := svc.Cancel(context.Background(), 42, 9, "richiesta del partecipante")
	require.NoError(t, err)
	require.Len(t, *published, 1)
	ev := (*published)[0]
	assert.Equal(t, "cancelled", ev.Action)
	assert.Equal(t, model.EnrollmentCancelled, ev.Status)
	assert.Equal(t, "richiesta del partecipante", ev.Reason)
}

func TestCancelPropagatesConflict(t *testing.T) {
	ledger := &fakeLedgerStore{
		CancelFn: func(ctx context.Context, id, chefID uint64, reason string) error {
			return repository.ErrConflict
		},
	}
	svc, published := newEnrollmentService(nil, ledger)

	err := svc.Cancel(context.Background(), 42, 9, "x")
	assert.ErrorIs(t, err, repository.ErrConflict)
	assert.Empty(t, *published)
}

func TestCompletePublishesAudit(t *testing.T) {
	ledger := &fakeLedgerStore{
		CompleteFn: func(ctx context.Context, id, chefID uint64) error { return nil },
		GetByIDFn: func(ctx context.Context, id uint64) (model.Enrollment, error) {
			return model.Enrollment{ID: id, UserID: 5, CourseID: 7, Status: model.EnrollmentCompleted}, nil
		},
	}
	svc, published := newEnrollmentService(nil, ledger)

	require.NoError(t, svc.Complete(context.Background(), 42, 9))
	require.Len(t, *published, 1)
	assert.Equal(t, "completed", (*published)[0].Action)
}
