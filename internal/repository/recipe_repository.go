package repository

import (
	"context"
	"database/sql"

	"github.com/foodlab/foodlab-api/internal/model"
)

// RecipeRepo provides CRUD operations for a chef's recipes.
type RecipeRepo struct {
	db *sql.DB
}

// NewRecipeRepo returns a new RecipeRepo bound to the given database.
func NewRecipeRepo(db *sql.DB) *RecipeRepo { return &RecipeRepo{db: db} }

const recipeCols = `id, chef_id, name, description, difficulty, prep_time_minutes,
                    servings, instructions, created_at`

func scanRecipe(row interface{ Scan(...interface{}) error }) (model.Recipe, error) {
	var re model.Recipe
	var desc, instr sql.NullString
	err := row.Scan(
		&re.ID, &re.ChefID, &re.Name, &desc, &re.Difficulty, &re.PrepTimeMinutes,
		&re.Servings, &instr, &re.CreatedAt,
	)
	re.Description = desc.String
	re.Instructions = instr.String
	return re, err
}

// Create inserts a recipe and reloads the stored row into it.
func (r *RecipeRepo) Create(ctx context.Context, re *model.Recipe) error {
	const q = `INSERT INTO recipes
	           (chef_id, name, description, difficulty, prep_time_minutes, servings, instructions)
	           VALUES (?,?,?,?,?,?,?)`
	result, err := r.db.ExecContext(ctx, q,
		re.ChefID, re.Name, re.Description, re.Difficulty, re.PrepTimeMinutes,
		re.Servings, re.Instructions)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	re.ID = uint64(id)
	stored, err := scanRecipe(r.db.QueryRowContext(ctx,
		`SELECT `+recipeCols+` FROM recipes WHERE id=?`, re.ID))
	if err != nil {
		return err
	}
	*re = stored
	return nil
}

// GetByIDForChef returns a recipe after verifying ownership. It returns
// sql.ErrNoRows when the recipe does not exist and ErrForbidden when it
// belongs to a different chef.
func (r *RecipeRepo) GetByIDForChef(ctx context.Context, id, chefID uint64) (model.Recipe, error) {
	re, err := scanRecipe(r.db.QueryRowContext(ctx,
		`SELECT `+recipeCols+` FROM recipes WHERE id=?`, id))
	if err != nil {
		return model.Recipe{}, err
	}
	if re.ChefID != chefID {
		return model.Recipe{}, ErrForbidden
	}
	return re, nil
}

// ListByChef returns all of a chef's recipes ordered by name.
func (r *RecipeRepo) ListByChef(ctx context.Context, chefID uint64) ([]model.Recipe, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+recipeCols+` FROM recipes WHERE chef_id=? ORDER BY name, id`, chefID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	recipes := make([]model.Recipe, 0)
	for rows.Next() {
		re, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, re)
	}
	return recipes, rows.Err()
}

// ListAvailableForSession returns the chef's recipes not yet linked to
// the given session, ordered by name. Used to populate the link-recipe
// picker.
func (r *RecipeRepo) ListAvailableForSession(ctx context.Context, chefID, sessionID uint64) ([]model.Recipe, error) {
	const q = `SELECT ` + recipeCols + ` FROM recipes
	           WHERE chef_id=?
	             AND id NOT IN (SELECT recipe_id FROM session_recipes WHERE session_id=?)
	           ORDER BY name, id`
	rows, err := r.db.QueryContext(ctx, q, chefID, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	recipes := make([]model.Recipe, 0)
	for rows.Next() {
		re, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, re)
	}
	return recipes, rows.Err()
}

// Update rewrites a recipe's fields after verifying ownership.
func (r *RecipeRepo) Update(ctx context.Context, re *model.Recipe, chefID uint64) error {
	if err := r.checkOwner(ctx, re.ID, chefID); err != nil {
		return err
	}
	const q = `UPDATE recipes
	           SET name=?, description=?, difficulty=?, prep_time_minutes=?, servings=?, instructions=?
	           WHERE id=?`
	_, err := r.db.ExecContext(ctx, q,
		re.Name, re.Description, re.Difficulty, re.PrepTimeMinutes, re.Servings,
		re.Instructions, re.ID)
	return err
}

// Delete removes a recipe. It returns ErrConflict when the recipe is
// still linked to any session.
func (r *RecipeRepo) Delete(ctx context.Context, id, chefID uint64) error {
	if err := r.checkOwner(ctx, id, chefID); err != nil {
		return err
	}
	var n int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM session_recipes WHERE recipe_id=?", id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	_, err := r.db.ExecContext(ctx, "DELETE FROM recipes WHERE id=?", id)
	return err
}

func (r *RecipeRepo) checkOwner(ctx context.Context, id, chefID uint64) error {
	var owner uint64
	if err := r.db.QueryRowContext(ctx,
		"SELECT chef_id FROM recipes WHERE id=?", id).Scan(&owner); err != nil {
		return err
	}
	if owner != chefID {
		return ErrForbidden
	}
	return nil
}
