package service

import (
	"context"
	"time"

	"github.com/foodlab/foodlab-api/internal/model"
	"github.com/foodlab/foodlab-api/internal/queue"
	"github.com/foodlab/foodlab-api/internal/repository"
)

// EnrollmentService enforces the ledger rules: one active-or-completed
// enrollment per (user, course) pair, enrollment only into active
// courses with free capacity, and the two legal transitions out of
// ATTIVA. Every ledger change also emits an audit event; publishing is
// best effort and never fails the request.
type EnrollmentService struct {
	ledger  LedgerStore
	users   UserStore
	courses CourseStore

	// publish is swappable in tests; defaults to the RabbitMQ publisher.
	publish func(ctx context.Context, ev queue.EnrollmentRecordedEvent) error
	now     func() time.Time
}

// NewEnrollmentService returns an EnrollmentService over the given stores.
func NewEnrollmentService(ledger LedgerStore, users UserStore, courses CourseStore) *EnrollmentService {
	return &EnrollmentService{
		ledger:  ledger,
		users:   users,
		courses: courses,
		publish: queue.PublishEnrollmentRecorded,
		now:     time.Now,
	}
}

// Enroll registers an active user into an active course. The capacity
// check, the duplicate check and the insert run in one transaction so
// two concurrent enrollments cannot both take the last seat.
func (s *EnrollmentService) Enroll(ctx context.Context, userID, courseID uint64, notes string) (model.Enrollment, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return model.Enrollment{}, err
	}
	if !user.IsActive {
		return model.Enrollment{}, ErrUserInactive
	}

	tx, err := s.ledger.Begin(ctx)
	if err != nil {
		return model.Enrollment{}, err
	}
	defer tx.Rollback()

	status, maxParticipants, priceCents, err := tx.CourseForEnroll(ctx, courseID)
	if err != nil {
		return model.Enrollment{}, err
	}
	if status != model.CourseActive {
		return model.Enrollment{}, ErrCourseNotActive
	}
	dup, err := tx.Exists(ctx, userID, courseID)
	if err != nil {
		return model.Enrollment{}, err
	}
	if dup {
		return model.Enrollment{}, ErrDuplicateEnrollment
	}
	active, err := tx.CountActive(ctx, courseID)
	if err != nil {
		return model.Enrollment{}, err
	}
	if active >= maxParticipants {
		return model.Enrollment{}, ErrCourseFull
	}

	e := model.Enrollment{UserID: userID, CourseID: courseID, Notes: notes}
	if err := tx.Create(ctx, &e); err != nil {
		return model.Enrollment{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Enrollment{}, err
	}

	s.audit(ctx, e, user, "enrolled", "", priceCents)
	return e, nil
}

// Cancel transitions an active enrollment to ANNULLATA with a reason.
// Only the chef running the course may cancel; the reason is appended
// to the enrollment's notes so the history stays on the row.
func (s *EnrollmentService) Cancel(ctx context.Context, id, chefID uint64, reason string) error {
	if reason == "" {
		return ErrValidation
	}
	if err := s.ledger.Cancel(ctx, id, chefID, reason); err != nil {
		return err
	}
	s.auditByID(ctx, id, "cancelled", reason)
	return nil
}

// Complete transitions an active enrollment to COMPLETATA.
func (s *EnrollmentService) Complete(ctx context.Context, id, chefID uint64) error {
	if err := s.ledger.Complete(ctx, id, chefID); err != nil {
		return err
	}
	s.auditByID(ctx, id, "completed", "")
	return nil
}

// ListByCourse returns a course's ledger rows for its chef.
func (s *EnrollmentService) ListByCourse(ctx context.Context, courseID, chefID uint64) ([]repository.EnrollmentDetail, error) {
	return s.ledger.ListByCourseForChef(ctx, courseID, chefID)
}

// ListByUser returns a participant's enrollment history.
func (s *EnrollmentService) ListByUser(ctx context.Context, userID uint64) ([]repository.EnrollmentDetail, error) {
	return s.ledger.ListByUser(ctx, userID)
}

// audit emits an EnrollmentRecordedEvent. Failures are swallowed: the
// publisher already logs them and the ledger write has committed.
func (s *EnrollmentService) audit(ctx context.Context, e model.Enrollment, user model.User, action, reason string, priceCents uint32) {
	course, err := s.courses.GetByID(ctx, e.CourseID)
	if err != nil {
		return
	}
	_ = s.publish(ctx, queue.EnrollmentRecordedEvent{
		EnrollmentID: e.ID,
		UserID:       user.ID,
		UserName:     user.Name + " " + user.Surname,
		CourseID:     course.ID,
		CourseTitle:  course.Title,
		ChefID:       course.ChefID,
		Action:       action,
		Status:       e.Status,
		Reason:       reason,
		PriceCents:   priceCents,
		RecordedAt:   s.now().UTC().Format(time.RFC3339),
	})
}

func (s *EnrollmentService) auditByID(ctx context.Context, id uint64, action, reason string) {
	e, err := s.ledger.GetByID(ctx, id)
	if err != nil {
		return
	}
	user, err := s.users.GetByID(ctx, e.UserID)
	if err != nil {
		return
	}
	course, err := s.courses.GetByID(ctx, e.CourseID)
	if err != nil {
		return
	}
	s.audit(ctx, e, user, action, reason, course.PriceCents)
}
