package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/foodlab/foodlab-api/internal/model"
)

// EnrollmentRepo provides operations on the enrollment ledger.
// Enrollments never leave the table: cancellation and completion are
// status transitions, so the history of every (user, course) pair is
// preserved. The duplicate rule counts ACTIVE and COMPLETED rows only;
// a cancelled enrollment does not block re-enrollment.
type EnrollmentRepo struct {
	db *sql.DB
}

// NewEnrollmentRepo returns a new EnrollmentRepo bound to the given database.
func NewEnrollmentRepo(db *sql.DB) *EnrollmentRepo { return &EnrollmentRepo{db: db} }

// BeginTx starts a transaction so the enrollment service can combine
// the capacity check, the duplicate check and the insert atomically.
func (r *EnrollmentRepo) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return r.db.BeginTx(ctx, nil)
}

// CreateTx inserts a new active enrollment within the provided
// transaction and reloads the stored row to populate timestamps.
func (r *EnrollmentRepo) CreateTx(ctx context.Context, tx *sql.Tx, e *model.Enrollment) error {
	const q = `INSERT INTO enrollments (user_id, course_id, status, notes) VALUES (?,?,?,?)`
	result, err := tx.ExecContext(ctx, q, e.UserID, e.CourseID, model.EnrollmentActive, e.Notes)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	var notes sql.NullString
	err = tx.QueryRowContext(ctx,
		"SELECT id, user_id, course_id, enrolled_at, status, notes FROM enrollments WHERE id=?",
		e.ID).Scan(&e.ID, &e.UserID, &e.CourseID, &e.EnrolledAt, &e.Status, &notes)
	e.Notes = notes.String
	return err
}

// ExistsTx reports whether the user already holds an ACTIVE or
// COMPLETED enrollment in the course. Cancelled rows are ignored.
func (r *EnrollmentRepo) ExistsTx(ctx context.Context, tx *sql.Tx, userID, courseID uint64) (bool, error) {
	const q = `SELECT 1 FROM enrollments
	           WHERE user_id=? AND course_id=? AND status IN ('ATTIVA','COMPLETATA')
	           LIMIT 1`
	var one int
	err := tx.QueryRowContext(ctx, q, userID, courseID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CountActiveTx returns the number of ACTIVE enrollments in the course,
// inside the transaction used for the capacity check.
func (r *EnrollmentRepo) CountActiveTx(ctx context.Context, tx *sql.Tx, courseID uint64) (int, error) {
	var n int
	err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM enrollments WHERE course_id=? AND status='ATTIVA'",
		courseID).Scan(&n)
	return n, err
}

// CountActive is the non-transactional variant used by listings.
func (r *EnrollmentRepo) CountActive(ctx context.Context, courseID uint64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM enrollments WHERE course_id=? AND status='ATTIVA'",
		courseID).Scan(&n)
	return n, err
}

// GetByID returns an enrollment row. sql.ErrNoRows when missing.
func (r *EnrollmentRepo) GetByID(ctx context.Context, id uint64) (model.Enrollment, error) {
	var e model.Enrollment
	var notes sql.NullString
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, course_id, enrolled_at, status, notes FROM enrollments WHERE id=?",
		id).Scan(&e.ID, &e.UserID, &e.CourseID, &e.EnrolledAt, &e.Status, &notes)
	e.Notes = notes.String
	return e, err
}

// Cancel transitions an ACTIVE enrollment to ANNULLATA, appending the
// reason to the notes column. Ownership is enforced through the course:
// only the chef running the course may cancel its enrollments. It
// returns sql.ErrNoRows when the enrollment does not exist,
// ErrForbidden on an ownership mismatch and ErrConflict when the
// enrollment is not active.
func (r *EnrollmentRepo) Cancel(ctx context.Context, id, chefID uint64, reason string) error {
	status, err := r.checkOwner(ctx, id, chefID)
	if err != nil {
		return err
	}
	if status != model.EnrollmentActive {
		return ErrConflict
	}
	// The status guard in the WHERE clause closes the race with a
	// concurrent transition: affecting 0 rows means we lost it.
	const q = `UPDATE enrollments
	           SET status='ANNULLATA',
	               notes=TRIM(CONCAT(COALESCE(notes,''), ?))
	           WHERE id=? AND status='ATTIVA'`
	res, err := r.db.ExecContext(ctx, q, "\nAnnullata: "+reason, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}

// Complete transitions an ACTIVE enrollment to COMPLETATA. Error
// contract matches Cancel.
func (r *EnrollmentRepo) Complete(ctx context.Context, id, chefID uint64) error {
	status, err := r.checkOwner(ctx, id, chefID)
	if err != nil {
		return err
	}
	if status != model.EnrollmentActive {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE enrollments SET status='COMPLETATA' WHERE id=? AND status='ATTIVA'", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}

func (r *EnrollmentRepo) checkOwner(ctx context.Context, id, chefID uint64) (string, error) {
	const q = `SELECT e.status, c.chef_id
	           FROM enrollments e JOIN courses c ON c.id = e.course_id
	           WHERE e.id = ?`
	var status string
	var owner uint64
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&status, &owner); err != nil {
		return "", err
	}
	if owner != chefID {
		return "", ErrForbidden
	}
	return status, nil
}

// EnrollmentDetail is a ledger row joined with the participant's and
// course's display fields, as listed on chef dashboards.
type EnrollmentDetail struct {
	ID          uint64    `json:"id"`
	UserID      uint64    `json:"user_id"`
	UserName    string    `json:"user_name"`
	UserEmail   string    `json:"user_email"`
	CourseID    uint64    `json:"course_id"`
	CourseTitle string    `json:"course_title"`
	EnrolledAt  time.Time `json:"enrolled_at"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes,omitempty"`
}

// ListByCourseForChef returns all enrollments of a course, newest
// first, after verifying that the course belongs to the chef.
func (r *EnrollmentRepo) ListByCourseForChef(ctx context.Context, courseID, chefID uint64) ([]EnrollmentDetail, error) {
	var owner uint64
	if err := r.db.QueryRowContext(ctx,
		"SELECT chef_id FROM courses WHERE id=?", courseID).Scan(&owner); err != nil {
		return nil, err
	}
	if owner != chefID {
		return nil, ErrForbidden
	}
	const q = `SELECT e.id, e.user_id, CONCAT(u.name,' ',u.surname), u.email,
	                  e.course_id, c.title, e.enrolled_at, e.status, e.notes
	           FROM enrollments e
	           JOIN users u ON u.id = e.user_id
	           JOIN courses c ON c.id = e.course_id
	           WHERE e.course_id = ?
	           ORDER BY e.enrolled_at DESC, e.id DESC`
	return r.listDetails(ctx, q, courseID)
}

// ListByUser returns a participant's full enrollment history, newest
// first.
func (r *EnrollmentRepo) ListByUser(ctx context.Context, userID uint64) ([]EnrollmentDetail, error) {
	const q = `SELECT e.id, e.user_id, CONCAT(u.name,' ',u.surname), u.email,
	                  e.course_id, c.title, e.enrolled_at, e.status, e.notes
	           FROM enrollments e
	           JOIN users u ON u.id = e.user_id
	           JOIN courses c ON c.id = e.course_id
	           WHERE e.user_id = ?
	           ORDER BY e.enrolled_at DESC, e.id DESC`
	return r.listDetails(ctx, q, userID)
}

func (r *EnrollmentRepo) listDetails(ctx context.Context, q string, args ...interface{}) ([]EnrollmentDetail, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]EnrollmentDetail, 0)
	for rows.Next() {
		var d EnrollmentDetail
		var notes sql.NullString
		if err := rows.Scan(&d.ID, &d.UserID, &d.UserName, &d.UserEmail,
			&d.CourseID, &d.CourseTitle, &d.EnrolledAt, &d.Status, &notes); err != nil {
			return nil, err
		}
		d.Notes = notes.String
		details = append(details, d)
	}
	return details, rows.Err()
}
