package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/foodlab/foodlab-api/internal/model"
)

// SessionRepo provides CRUD operations for sessions and their recipe
// links. Sessions are created in bulk when a course's timetable is
// generated; afterwards they are edited one at a time. Session dates
// are DATE values interpreted in UTC.
type SessionRepo struct {
	db *sql.DB
}

// NewSessionRepo returns a new SessionRepo bound to the given database.
func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{db: db} }

const sessionCols = `id, course_id, sequence_number, session_date, modality,
                     title, description, duration_minutes, completed, created_at`

func scanSession(row interface{ Scan(...interface{}) error }) (model.Session, error) {
	var s model.Session
	var desc sql.NullString
	err := row.Scan(
		&s.ID, &s.CourseID, &s.SequenceNumber, &s.Date, &s.Modality,
		&s.Title, &desc, &s.DurationMinutes, &s.Completed, &s.CreatedAt,
	)
	s.Description = desc.String
	return s, err
}

// CreateBulkTx inserts a course's sessions in a single statement within
// the provided transaction. Passing an empty slice has no effect and
// returns nil. Generated IDs are not populated; callers reload the
// timetable when they need them.
func (r *SessionRepo) CreateBulkTx(ctx context.Context, tx *sql.Tx, sessions []model.Session) error {
	if len(sessions) == 0 {
		return nil
	}
	query := `INSERT INTO sessions
	          (course_id, sequence_number, session_date, modality, title, description, duration_minutes)
	          VALUES `
	args := make([]interface{}, 0, len(sessions)*7)
	for i, s := range sessions {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?, ?)"
		args = append(args, s.CourseID, s.SequenceNumber, s.Date.Format("2006-01-02"),
			string(s.Modality), s.Title, s.Description, s.DurationMinutes)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// ListByCourse returns a course's sessions in timetable order.
func (r *SessionRepo) ListByCourse(ctx context.Context, courseID uint64) ([]model.Session, error) {
	const q = `SELECT ` + sessionCols + ` FROM sessions
	           WHERE course_id = ?
	           ORDER BY sequence_number`
	rows, err := r.db.QueryContext(ctx, q, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	sessions := make([]model.Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// GetByIDForChef returns a session after verifying that the owning
// course belongs to the chef. It returns sql.ErrNoRows when the session
// does not exist and ErrForbidden on an ownership mismatch.
func (r *SessionRepo) GetByIDForChef(ctx context.Context, id, chefID uint64) (model.Session, error) {
	const q = `SELECT s.id, s.course_id, s.sequence_number, s.session_date, s.modality,
	                  s.title, s.description, s.duration_minutes, s.completed, s.created_at,
	                  c.chef_id
	           FROM sessions s JOIN courses c ON c.id = s.course_id
	           WHERE s.id = ?`
	var s model.Session
	var desc sql.NullString
	var owner uint64
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&s.ID, &s.CourseID, &s.SequenceNumber, &s.Date, &s.Modality,
		&s.Title, &desc, &s.DurationMinutes, &s.Completed, &s.CreatedAt,
		&owner,
	)
	if err != nil {
		return model.Session{}, err
	}
	if owner != chefID {
		return model.Session{}, ErrForbidden
	}
	s.Description = desc.String
	return s, nil
}

// Update rewrites a session's editable fields. The sequence number is
// immutable: the timetable is never renumbered after generation.
func (r *SessionRepo) Update(ctx context.Context, s *model.Session) error {
	const q = `UPDATE sessions
	           SET session_date=?, modality=?, title=?, description=?, duration_minutes=?
	           WHERE id=?`
	_, err := r.db.ExecContext(ctx, q,
		s.Date.Format("2006-01-02"), string(s.Modality), s.Title, s.Description,
		s.DurationMinutes, s.ID)
	return err
}

// SetCompleted marks a session as held (or not).
func (r *SessionRepo) SetCompleted(ctx context.Context, id uint64, completed bool) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE sessions SET completed=? WHERE id=?", completed, id)
	return err
}

// AddRecipe links a recipe to a session at the given execution order.
// It returns ErrConflict when the pair is already linked.
func (r *SessionRepo) AddRecipe(ctx context.Context, sessionID, recipeID uint64, executionOrder int) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO session_recipes (session_id, recipe_id, execution_order) VALUES (?,?,?)",
		sessionID, recipeID, executionOrder)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return ErrConflict
	}
	return err
}

// RemoveRecipe unlinks a recipe from a session. sql.ErrNoRows is
// returned when the pair was not linked.
func (r *SessionRepo) RemoveRecipe(ctx context.Context, sessionID, recipeID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM session_recipes WHERE session_id=? AND recipe_id=?",
		sessionID, recipeID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SessionRecipeDetail is one recipe in a session's lineup, joined with
// the recipe's display fields.
type SessionRecipeDetail struct {
	RecipeID        uint64 `json:"recipe_id"`
	Name            string `json:"name"`
	Difficulty      int    `json:"difficulty"`
	PrepTimeMinutes int    `json:"prep_time_minutes"`
	ExecutionOrder  int    `json:"execution_order"`
}

// ListRecipes returns a session's recipe lineup in execution order.
func (r *SessionRepo) ListRecipes(ctx context.Context, sessionID uint64) ([]SessionRecipeDetail, error) {
	const q = `SELECT sr.recipe_id, re.name, re.difficulty, re.prep_time_minutes, sr.execution_order
	           FROM session_recipes sr
	           JOIN recipes re ON re.id = sr.recipe_id
	           WHERE sr.session_id = ?
	           ORDER BY sr.execution_order, sr.recipe_id`
	rows, err := r.db.QueryContext(ctx, q, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]SessionRecipeDetail, 0)
	for rows.Next() {
		var d SessionRecipeDetail
		if err := rows.Scan(&d.RecipeID, &d.Name, &d.Difficulty, &d.PrepTimeMinutes, &d.ExecutionOrder); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
