package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/foodlab/foodlab-api/internal/model"
)

// ReportRepo runs the aggregation queries behind chef dashboards and
// monthly reports. Every query is scoped to a single chef and computed
// from entity state at call time; nothing here is cached or persisted.
// Month windows are passed as [from, to) boundaries, both first-of-month
// dates in UTC, so the SQL never does date arithmetic of its own.
type ReportRepo struct {
	db *sql.DB
}

// NewReportRepo returns a new ReportRepo bound to the given database.
func NewReportRepo(db *sql.DB) *ReportRepo { return &ReportRepo{db: db} }

// CoursesByCategory counts the chef's courses per category name. Only
// categories with at least one course are returned, ordered by count
// descending so dashboards can show the biggest slice first.
func (r *ReportRepo) CoursesByCategory(ctx context.Context, chefID uint64) ([]model.CategoryCount, error) {
	const q = `SELECT cat.name, COUNT(c.id) AS n
	           FROM categories cat
	           JOIN courses c ON c.category_id = cat.id
	           WHERE c.chef_id = ?
	           GROUP BY cat.name
	           HAVING COUNT(c.id) > 0
	           ORDER BY n DESC, cat.name`
	rows, err := r.db.QueryContext(ctx, q, chefID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.CategoryCount, 0)
	for rows.Next() {
		var c model.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SessionsByModality counts the chef's sessions per raw modality value
// over all time. Legacy synonyms come back as-is; the service layer
// collapses them into the fixed display keys.
func (r *ReportRepo) SessionsByModality(ctx context.Context, chefID uint64) ([]model.ModalityCount, error) {
	const q = `SELECT s.modality, COUNT(*)
	           FROM sessions s
	           JOIN courses c ON c.id = s.course_id
	           WHERE c.chef_id = ?
	           GROUP BY s.modality`
	return r.modalityCounts(ctx, q, chefID)
}

// SessionsByModalityBetween is the month-windowed variant used by the
// monthly report.
func (r *ReportRepo) SessionsByModalityBetween(ctx context.Context, chefID uint64, from, to time.Time) ([]model.ModalityCount, error) {
	const q = `SELECT s.modality, COUNT(*)
	           FROM sessions s
	           JOIN courses c ON c.id = s.course_id
	           WHERE c.chef_id = ? AND s.session_date >= ? AND s.session_date < ?
	           GROUP BY s.modality`
	return r.modalityCounts(ctx, q, chefID, from.Format("2006-01-02"), to.Format("2006-01-02"))
}

func (r *ReportRepo) modalityCounts(ctx context.Context, q string, args ...interface{}) ([]model.ModalityCount, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.ModalityCount, 0)
	for rows.Next() {
		var m model.ModalityCount
		if err := rows.Scan(&m.Modality, &m.Count); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// RecipesByDifficulty counts the chef's recipes per raw 1..5 difficulty
// level. Bucketing into FACILE/MEDIO/DIFFICILE happens in the service.
func (r *ReportRepo) RecipesByDifficulty(ctx context.Context, chefID uint64) ([]model.DifficultyCount, error) {
	const q = `SELECT difficulty, COUNT(*)
	           FROM recipes
	           WHERE chef_id = ?
	           GROUP BY difficulty`
	return r.difficultyCounts(ctx, q, chefID)
}

// RecipesUsedByDifficultyBetween counts the distinct recipes prepared
// in the chef's sessions within the window, per difficulty level. A
// recipe used in three sessions of the month counts once.
func (r *ReportRepo) RecipesUsedByDifficultyBetween(ctx context.Context, chefID uint64, from, to time.Time) ([]model.DifficultyCount, error) {
	const q = `SELECT re.difficulty, COUNT(DISTINCT re.id)
	           FROM recipes re
	           JOIN session_recipes sr ON sr.recipe_id = re.id
	           JOIN sessions s ON s.id = sr.session_id
	           JOIN courses c ON c.id = s.course_id
	           WHERE c.chef_id = ? AND s.session_date >= ? AND s.session_date < ?
	           GROUP BY re.difficulty`
	return r.difficultyCounts(ctx, q, chefID, from.Format("2006-01-02"), to.Format("2006-01-02"))
}

func (r *ReportRepo) difficultyCounts(ctx context.Context, q string, args ...interface{}) ([]model.DifficultyCount, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.DifficultyCount, 0)
	for rows.Next() {
		var d model.DifficultyCount
		if err := rows.Scan(&d.Difficulty, &d.Count); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// CourseStartsByMonth groups the chef's course start dates per calendar
// month within the window. Months with no starts are simply absent;
// zero-filling against the fixed axis is the service's job.
func (r *ReportRepo) CourseStartsByMonth(ctx context.Context, chefID uint64, from, to time.Time) ([]model.MonthCount, error) {
	const q = `SELECT YEAR(start_date), MONTH(start_date), COUNT(*)
	           FROM courses
	           WHERE chef_id = ? AND start_date >= ? AND start_date < ?
	           GROUP BY YEAR(start_date), MONTH(start_date)`
	return r.monthCounts(ctx, q, chefID, from.Format("2006-01-02"), to.Format("2006-01-02"))
}

// SessionsByMonth groups the chef's session dates per calendar month
// within the window.
func (r *ReportRepo) SessionsByMonth(ctx context.Context, chefID uint64, from, to time.Time) ([]model.MonthCount, error) {
	const q = `SELECT YEAR(s.session_date), MONTH(s.session_date), COUNT(*)
	           FROM sessions s
	           JOIN courses c ON c.id = s.course_id
	           WHERE c.chef_id = ? AND s.session_date >= ? AND s.session_date < ?
	           GROUP BY YEAR(s.session_date), MONTH(s.session_date)`
	return r.monthCounts(ctx, q, chefID, from.Format("2006-01-02"), to.Format("2006-01-02"))
}

func (r *ReportRepo) monthCounts(ctx context.Context, q string, args ...interface{}) ([]model.MonthCount, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.MonthCount, 0)
	for rows.Next() {
		var m model.MonthCount
		if err := rows.Scan(&m.Year, &m.Month, &m.Count); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// MonthlyTotals computes the raw counters of a chef's monthly report
// for the [from, to) window. A course counts when it starts in the
// month or holds at least one session in it; revenue sums the course
// price over enrollments created in the month that are still ACTIVE or
// were COMPLETED, so cancellations never contribute.
func (r *ReportRepo) MonthlyTotals(ctx context.Context, chefID uint64, from, to time.Time) (model.MonthlyTotals, error) {
	var t model.MonthlyTotals
	fromS, toS := from.Format("2006-01-02"), to.Format("2006-01-02")

	const coursesQ = `SELECT COUNT(*)
	                  FROM courses c
	                  WHERE c.chef_id = ?
	                    AND ((c.start_date >= ? AND c.start_date < ?)
	                      OR EXISTS (SELECT 1 FROM sessions s
	                                 WHERE s.course_id = c.id
	                                   AND s.session_date >= ? AND s.session_date < ?))`
	if err := r.db.QueryRowContext(ctx, coursesQ, chefID, fromS, toS, fromS, toS).Scan(&t.Courses); err != nil {
		return model.MonthlyTotals{}, err
	}

	const sessionsQ = `SELECT
	                     COALESCE(SUM(s.modality = 'online'), 0),
	                     COALESCE(SUM(s.modality IN ('presenza','pratica')), 0)
	                   FROM sessions s
	                   JOIN courses c ON c.id = s.course_id
	                   WHERE c.chef_id = ? AND s.session_date >= ? AND s.session_date < ?`
	if err := r.db.QueryRowContext(ctx, sessionsQ, chefID, fromS, toS).Scan(&t.OnlineSessions, &t.InPersonSessions); err != nil {
		return model.MonthlyTotals{}, err
	}

	const recipesQ = `SELECT COUNT(*)
	                  FROM session_recipes sr
	                  JOIN sessions s ON s.id = sr.session_id
	                  JOIN courses c ON c.id = s.course_id
	                  WHERE c.chef_id = ? AND s.session_date >= ? AND s.session_date < ?`
	if err := r.db.QueryRowContext(ctx, recipesQ, chefID, fromS, toS).Scan(&t.RecipesUsed); err != nil {
		return model.MonthlyTotals{}, err
	}

	const enrollQ = `SELECT
	                   COUNT(*),
	                   COALESCE(SUM(e.status = 'ATTIVA'), 0),
	                   COALESCE(SUM(e.status = 'COMPLETATA'), 0),
	                   COALESCE(SUM(e.status = 'ANNULLATA'), 0),
	                   COALESCE(SUM(CASE WHEN e.status IN ('ATTIVA','COMPLETATA')
	                                     THEN c.price_cents ELSE 0 END), 0)
	                 FROM enrollments e
	                 JOIN courses c ON c.id = e.course_id
	                 WHERE c.chef_id = ? AND e.enrolled_at >= ? AND e.enrolled_at < ?`
	if err := r.db.QueryRowContext(ctx, enrollQ, chefID, fromS, toS).Scan(
		&t.Enrollments, &t.ActiveEnrollments, &t.CompletedEnrollments,
		&t.CancelledEnrollments, &t.RevenueCents,
	); err != nil {
		return model.MonthlyTotals{}, err
	}
	return t, nil
}

// ActivityPeriods lists the distinct calendar months in which the chef
// has any activity (a course start or a session), newest first. Report
// UIs use it to populate the period picker.
func (r *ReportRepo) ActivityPeriods(ctx context.Context, chefID uint64) ([]model.YearMonth, error) {
	const q = `SELECT DISTINCT YEAR(d) AS y, MONTH(d) AS m FROM (
	             SELECT start_date AS d FROM courses WHERE chef_id = ?
	             UNION ALL
	             SELECT s.session_date FROM sessions s
	             JOIN courses c ON c.id = s.course_id WHERE c.chef_id = ?
	           ) dates
	           ORDER BY y DESC, m DESC`
	rows, err := r.db.QueryContext(ctx, q, chefID, chefID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.YearMonth, 0)
	for rows.Next() {
		var ym model.YearMonth
		if err := rows.Scan(&ym.Year, &ym.Month); err != nil {
			return nil, err
		}
		out = append(out, ym)
	}
	return out, rows.Err()
}
