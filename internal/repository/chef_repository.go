package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/foodlab/foodlab-api/internal/model"
	"github.com/foodlab/foodlab-api/internal/utils"
)

// ChefRepo provides access to the 'chefs' table.
type ChefRepo struct{ DB *sql.DB }

func NewChefRepo(db *sql.DB) *ChefRepo { return &ChefRepo{DB: db} }

var ErrEmailExists = errors.New("email already exists")

// Create inserts a chef and returns its ID.
func (r *ChefRepo) Create(ctx context.Context, name, surname, email, password, specialization string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO chefs (name, surname, email, password_hash, specialization) VALUES (?,?,?,?,?)",
		name, surname, email, hash, specialization)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a chef by normalized email.
func (r *ChefRepo) GetByEmail(ctx context.Context, email string) (model.Chef, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var c model.Chef
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,surname,email,password_hash,specialization,created_at,updated_at FROM chefs WHERE email=? LIMIT 1",
		email).Scan(&c.ID, &c.Name, &c.Surname, &c.Email, &c.PasswordHash, &c.Specialization, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// GetByID fetches a chef by id.
func (r *ChefRepo) GetByID(ctx context.Context, id uint64) (model.Chef, error) {
	var c model.Chef
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,surname,email,password_hash,specialization,created_at,updated_at FROM chefs WHERE id=? LIMIT 1",
		id).Scan(&c.ID, &c.Name, &c.Surname, &c.Email, &c.PasswordHash, &c.Specialization, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// UpdateProfile updates the chef's display fields.
func (r *ChefRepo) UpdateProfile(ctx context.Context, id uint64, name, surname, specialization string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE chefs SET name=?, surname=?, specialization=? WHERE id=?",
		name, surname, specialization, id)
	return err
}
