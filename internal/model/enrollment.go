package model

import "time"

// Enrollment statuses stored in enrollments.status.  ACTIVE is the only
// non-terminal state: an enrollment completes or is cancelled, it is
// never reactivated.
const (
	EnrollmentActive    = "ATTIVA"
	EnrollmentCompleted = "COMPLETATA"
	EnrollmentCancelled = "ANNULLATA"
)

// Enrollment records a user's registration to a course as stored in the
// `enrollments` table.  At most one ACTIVE or COMPLETED enrollment may
// exist per (user, course) pair.
//
// Fields:
//
//	ID         – primary key identifier.
//	UserID     – enrolled user.
//	CourseID   – course enrolled in.
//	EnrolledAt – when the enrollment was created.
//	Status     – ATTIVA, COMPLETATA or ANNULLATA.
//	Notes      – free-form notes; cancellation reasons are appended here.
type Enrollment struct {
	ID         uint64    // enrollments.id
	UserID     uint64    // enrollments.user_id
	CourseID   uint64    // enrollments.course_id
	EnrolledAt time.Time // enrollments.enrolled_at
	Status     string    // enrollments.status
	Notes      string    // enrollments.notes
}
