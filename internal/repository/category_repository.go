package repository

import (
	"context"
	"database/sql"

	"github.com/foodlab/foodlab-api/internal/model"
)

// CategoryRepo provides read access to the 'categories' lookup table.
type CategoryRepo struct{ DB *sql.DB }

func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{DB: db} }

// List returns all categories ordered by name.
func (r *CategoryRepo) List(ctx context.Context) ([]model.Category, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, description FROM categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	cats := make([]model.Category, 0)
	for rows.Next() {
		var c model.Category
		var desc sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &desc); err != nil {
			return nil, err
		}
		c.Description = desc.String
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// GetByID fetches a category by id.
func (r *CategoryRepo) GetByID(ctx context.Context, id uint64) (model.Category, error) {
	var c model.Category
	var desc sql.NullString
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, description FROM categories WHERE id=? LIMIT 1",
		id).Scan(&c.ID, &c.Name, &desc)
	c.Description = desc.String
	return c, err
}

// Exists reports whether a category with the given id exists.
func (r *CategoryRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM categories WHERE id=?", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
