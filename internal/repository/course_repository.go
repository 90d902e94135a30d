package repository

import (
	"context"
	"database/sql"

	"github.com/foodlab/foodlab-api/internal/model"
)

// CourseRepo provides CRUD operations for courses. A course's full
// timetable of sessions is inserted together with the course row in a
// single transaction, so creation is exposed only as a Tx variant.
// All date columns are DATE values interpreted in UTC.
type CourseRepo struct {
	db *sql.DB
}

// NewCourseRepo returns a new CourseRepo bound to the given database.
func NewCourseRepo(db *sql.DB) *CourseRepo { return &CourseRepo{db: db} }

// BeginTx starts a transaction on the underlying database. It exists so
// the scheduling service can span course and session inserts without
// holding a *sql.DB of its own.
func (r *CourseRepo) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return r.db.BeginTx(ctx, nil)
}

const courseCols = `c.id, c.chef_id, c.category_id, cat.name, c.title, c.description,
                    c.start_date, c.frequency, c.session_count, c.price_cents,
                    c.duration_hours, c.max_participants, c.status, c.created_at`

func scanCourse(row interface{ Scan(...interface{}) error }) (model.Course, error) {
	var c model.Course
	var desc sql.NullString
	err := row.Scan(
		&c.ID, &c.ChefID, &c.CategoryID, &c.CategoryName, &c.Title, &desc,
		&c.StartDate, &c.Frequency, &c.SessionCount, &c.PriceCents,
		&c.DurationHours, &c.MaxParticipants, &c.Status, &c.CreatedAt,
	)
	c.Description = desc.String
	return c, err
}

// CreateTx inserts a new course within the scope of an existing
// transaction. It populates the generated ID and defaulted columns on
// the provided course and returns any error from the database. The
// caller must commit or rollback the transaction.
func (r *CourseRepo) CreateTx(ctx context.Context, tx *sql.Tx, c *model.Course) error {
	const q = `INSERT INTO courses
	           (chef_id, category_id, title, description, start_date, frequency,
	            session_count, price_cents, duration_hours, max_participants, status)
	           VALUES (?,?,?,?,?,?,?,?,?,?,?)`
	result, err := tx.ExecContext(ctx, q,
		c.ChefID, c.CategoryID, c.Title, c.Description, c.StartDate.Format("2006-01-02"),
		string(c.Frequency), c.SessionCount, c.PriceCents, c.DurationHours,
		c.MaxParticipants, c.Status)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults
	const sel = `SELECT ` + courseCols + `
	             FROM courses c JOIN categories cat ON cat.id = c.category_id
	             WHERE c.id = ?`
	stored, err := scanCourse(tx.QueryRowContext(ctx, sel, c.ID))
	if err != nil {
		return err
	}
	*c = stored
	return nil
}

// GetByID returns a course with its category name. sql.ErrNoRows is
// returned when the course does not exist.
func (r *CourseRepo) GetByID(ctx context.Context, id uint64) (model.Course, error) {
	const q = `SELECT ` + courseCols + `
	           FROM courses c JOIN categories cat ON cat.id = c.category_id
	           WHERE c.id = ?`
	return scanCourse(r.db.QueryRowContext(ctx, q, id))
}

// GetByIDForChef returns a course after verifying ownership. It returns
// sql.ErrNoRows when the course does not exist and ErrForbidden when it
// belongs to a different chef.
func (r *CourseRepo) GetByIDForChef(ctx context.Context, id, chefID uint64) (model.Course, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Course{}, err
	}
	if c.ChefID != chefID {
		return model.Course{}, ErrForbidden
	}
	return c, nil
}

// ListByChef returns all of a chef's courses, newest first.
func (r *CourseRepo) ListByChef(ctx context.Context, chefID uint64) ([]model.Course, error) {
	const q = `SELECT ` + courseCols + `
	           FROM courses c JOIN categories cat ON cat.id = c.category_id
	           WHERE c.chef_id = ?
	           ORDER BY c.created_at DESC, c.id DESC`
	return r.list(ctx, q, chefID)
}

func (r *CourseRepo) list(ctx context.Context, q string, args ...interface{}) ([]model.Course, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	courses := make([]model.Course, 0)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// Update rewrites the course's descriptive fields after verifying
// ownership. Schedule-defining fields (start date, frequency, session
// count) are fixed once the timetable has been generated; individual
// sessions are edited instead.
func (r *CourseRepo) Update(ctx context.Context, id, chefID uint64, title, description string, priceCents uint32, maxParticipants int) error {
	if err := r.checkOwner(ctx, id, chefID); err != nil {
		return err
	}
	const q = `UPDATE courses SET title=?, description=?, price_cents=?, max_participants=? WHERE id=?`
	_, err := r.db.ExecContext(ctx, q, title, description, priceCents, maxParticipants, id)
	return err
}

// UpdateStatus transitions the course to a new status after verifying
// ownership. Legal transitions are validated by the service layer.
func (r *CourseRepo) UpdateStatus(ctx context.Context, id, chefID uint64, status string) error {
	if err := r.checkOwner(ctx, id, chefID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, "UPDATE courses SET status=? WHERE id=?", status, id)
	return err
}

// Delete removes a course together with its sessions and session-recipe
// links. It returns ErrConflict when any enrollment references the
// course; such courses must be suspended instead so the ledger keeps
// its history.
func (r *CourseRepo) Delete(ctx context.Context, id, chefID uint64) error {
	if err := r.checkOwner(ctx, id, chefID); err != nil {
		return err
	}
	var n int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM enrollments WHERE course_id=?", id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx,
		`DELETE sr FROM session_recipes sr
		 JOIN sessions s ON s.id = sr.session_id
		 WHERE s.course_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM sessions WHERE course_id=?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM courses WHERE id=?", id); err != nil {
		return err
	}
	return tx.Commit()
}

// checkOwner returns sql.ErrNoRows when the course does not exist and
// ErrForbidden when it belongs to another chef.
func (r *CourseRepo) checkOwner(ctx context.Context, id, chefID uint64) error {
	var owner uint64
	if err := r.db.QueryRowContext(ctx,
		"SELECT chef_id FROM courses WHERE id=?", id).Scan(&owner); err != nil {
		return err
	}
	if owner != chefID {
		return ErrForbidden
	}
	return nil
}

// CourseSummary is a catalogue row: the course plus its live enrollment
// pressure, used to show remaining capacity without a second query.
type CourseSummary struct {
	model.Course
	ActiveEnrollments int
}

// ListActiveWithCapacity returns active courses with their current
// count of active enrollments.
func (r *CourseRepo) ListActiveWithCapacity(ctx context.Context, categoryID uint64) ([]CourseSummary, error) {
	q := `SELECT ` + courseCols + `,
	             (SELECT COUNT(*) FROM enrollments e
	              WHERE e.course_id = c.id AND e.status = 'ATTIVA')
	      FROM courses c JOIN categories cat ON cat.id = c.category_id
	      WHERE c.status = ?`
	args := []interface{}{model.CourseActive}
	if categoryID != 0 {
		q += ` AND c.category_id = ?`
		args = append(args, categoryID)
	}
	q += ` ORDER BY c.start_date, c.id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]CourseSummary, 0)
	for rows.Next() {
		var s CourseSummary
		var desc sql.NullString
		if err := rows.Scan(
			&s.ID, &s.ChefID, &s.CategoryID, &s.CategoryName, &s.Title, &desc,
			&s.StartDate, &s.Frequency, &s.SessionCount, &s.PriceCents,
			&s.DurationHours, &s.MaxParticipants, &s.Status, &s.CreatedAt,
			&s.ActiveEnrollments,
		); err != nil {
			return nil, err
		}
		s.Description = desc.String
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetForEnrollTx loads the capacity-relevant columns of a course inside
// a transaction, locking the row so concurrent enrollments serialize on
// the capacity check.
func (r *CourseRepo) GetForEnrollTx(ctx context.Context, tx *sql.Tx, id uint64) (status string, maxParticipants int, priceCents uint32, err error) {
	const q = `SELECT status, max_participants, price_cents FROM courses WHERE id=? FOR UPDATE`
	err = tx.QueryRowContext(ctx, q, id).Scan(&status, &maxParticipants, &priceCents)
	return
}
