package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/foodlab/foodlab-api/internal/model"
)

// UserRepo provides access to the 'users' table. Users are course
// participants managed by chefs; they never authenticate themselves.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = "id,name,surname,email,experience_level,is_active,created_at,updated_at"

// Create inserts a user and returns the stored row.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, surname, email, experience_level) VALUES (?,?,?,?)",
		u.Name, u.Surname, u.Email, u.ExperienceLevel)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrEmailExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults
	return r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE id=?", u.ID).
		Scan(&u.ID, &u.Name, &u.Surname, &u.Email, &u.ExperienceLevel, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE id=? LIMIT 1", id).
		Scan(&u.ID, &u.Name, &u.Surname, &u.Email, &u.ExperienceLevel, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// List returns all users ordered by surname then name.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userCols+" FROM users ORDER BY surname, name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Surname, &u.Email, &u.ExperienceLevel, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// SearchByName returns users whose name, surname or email contains the
// query, ordered by surname then name.
func (r *UserRepo) SearchByName(ctx context.Context, query string) ([]model.User, error) {
	like := "%" + strings.TrimSpace(query) + "%"
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userCols+" FROM users WHERE name LIKE ? OR surname LIKE ? OR email LIKE ? ORDER BY surname, name",
		like, like, like)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Surname, &u.Email, &u.ExperienceLevel, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update rewrites the user's editable fields. Returns sql.ErrNoRows
// when the user does not exist.
func (r *UserRepo) Update(ctx context.Context, u *model.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET name=?, surname=?, email=?, experience_level=? WHERE id=?",
		u.Name, u.Surname, u.Email, u.ExperienceLevel, u.ID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrEmailExists
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish "missing" from "no change": an update that touches
		// an existing row with identical values also affects 0 rows.
		var exists bool
		if err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM users WHERE id=?", u.ID).Scan(&exists); err != nil {
			return err
		}
	}
	return nil
}

// SetActive flips the account's active flag. Deactivation is the
// preferred alternative to deletion so historical enrollments keep a
// valid reference.
func (r *UserRepo) SetActive(ctx context.Context, id uint64, active bool) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET is_active=? WHERE id=?", active, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists bool
		if err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM users WHERE id=?", id).Scan(&exists); err != nil {
			return err
		}
	}
	return nil
}
