package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres implements Store on top of a pgx connection pool.
//
// Reads translate pgx.ErrNoRows into ErrNotFound. Write errors are returned
// as-is so callers can inspect driver errors (notably unique-constraint
// violations, which the services map to conflicts).
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a Postgres store around the given pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

const userColumns = `id, name, login, email, password, notes, is_conflict, is_superuser, created_at`

func (p *Postgres) scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Login, &u.Email, &u.Password, &u.Notes, &u.IsConflict, &u.IsSuperuser, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a user row and returns the persisted entity.
func (p *Postgres) CreateUser(ctx context.Context, nu NewUser) (*User, error) {
	query := `INSERT INTO users (name, login, email, password, notes, is_conflict)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING ` + userColumns
	return p.scanUser(p.pool.QueryRow(ctx, query, nu.Name, nu.Login, nu.Email, nu.Password, nu.Notes, nu.IsConflict))
}

// GetUserByID retrieves a user by primary key.
func (p *Postgres) GetUserByID(ctx context.Context, id int64) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return p.scanUser(p.pool.QueryRow(ctx, query, id))
}

// GetUserByLogin retrieves a user by their unique login.
func (p *Postgres) GetUserByLogin(ctx context.Context, login string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE login = $1`
	return p.scanUser(p.pool.QueryRow(ctx, query, login))
}

// GetUserByEmail retrieves a user by their unique email.
func (p *Postgres) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return p.scanUser(p.pool.QueryRow(ctx, query, email))
}

// DeleteUser removes a user row. Recipes created by the user are kept (their
// creator_id keeps pointing at the deleted id) and the user's id is not
// scrubbed from saver sets; account deletion does not cascade.
func (p *Postgres) DeleteUser(ctx context.Context, id int64) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// PromoteSuperuser flips is_superuser for the given user.
func (p *Postgres) PromoteSuperuser(ctx context.Context, id int64) error {
	tag, err := p.pool.Exec(ctx, `UPDATE users SET is_superuser = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const recipeColumns = `id, name, description, recipe, image, categories, creator_id, popularity, saver_ids, created_at`

func (p *Postgres) scanRecipe(row pgx.Row) (*Recipe, error) {
	var r Recipe
	err := row.Scan(&r.ID, &r.Name, &r.Description, &r.Recipe, &r.Image, &r.Categories, &r.CreatorID, &r.Popularity, &r.SaverIDs, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

// CreateRecipe inserts a recipe row and returns the persisted entity.
func (p *Postgres) CreateRecipe(ctx context.Context, nr NewRecipe) (*Recipe, error) {
	categories := nr.Categories
	if categories == nil {
		categories = []int64{}
	}
	query := `INSERT INTO recipe (name, description, recipe, image, categories, creator_id)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING ` + recipeColumns
	return p.scanRecipe(p.pool.QueryRow(ctx, query, nr.Name, nr.Description, nr.Recipe, nr.Image, categories, nr.CreatorID))
}

// GetRecipeByID retrieves a recipe by primary key.
func (p *Postgres) GetRecipeByID(ctx context.Context, id int64) (*Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipe WHERE id = $1`
	return p.scanRecipe(p.pool.QueryRow(ctx, query, id))
}

// GetRecipeByName retrieves a recipe by its unique name.
func (p *Postgres) GetRecipeByName(ctx context.Context, name string) (*Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipe WHERE name = $1`
	return p.scanRecipe(p.pool.QueryRow(ctx, query, name))
}

// UpdateRecipe rewrites the writable fields of a recipe.
func (p *Postgres) UpdateRecipe(ctx context.Context, id int64, up RecipeUpdate) error {
	categories := up.Categories
	if categories == nil {
		categories = []int64{}
	}
	query := `UPDATE recipe
	          SET name = $2, description = $3, recipe = $4, image = $5, categories = $6
	          WHERE id = $1`
	tag, err := p.pool.Exec(ctx, query, id, up.Name, up.Description, up.Recipe, up.Image, categories)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteRecipe removes a recipe row.
func (p *Postgres) DeleteRecipe(ctx context.Context, id int64) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM recipe WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// IncreasePopularity bumps the view counter in a single statement, so
// concurrent views cannot lose increments.
func (p *Postgres) IncreasePopularity(ctx context.Context, id int64) error {
	tag, err := p.pool.Exec(ctx, `UPDATE recipe SET popularity = popularity + 1 WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveRecipe appends userID to the saver set. The containment guard keeps the
// array a set: saving an already-saved recipe changes nothing.
func (p *Postgres) SaveRecipe(ctx context.Context, recipeID, userID int64) error {
	query := `UPDATE recipe
	          SET saver_ids = array_append(saver_ids, $2)
	          WHERE id = $1 AND NOT (saver_ids @> ARRAY[$2]::bigint[])`
	_, err := p.pool.Exec(ctx, query, recipeID, userID)
	return err
}

// UnsaveRecipe removes userID from the saver set.
func (p *Postgres) UnsaveRecipe(ctx context.Context, recipeID, userID int64) error {
	query := `UPDATE recipe
	          SET saver_ids = array_remove(saver_ids, $2)
	          WHERE id = $1`
	_, err := p.pool.Exec(ctx, query, recipeID, userID)
	return err
}

func (p *Postgres) fetchRecipes(ctx context.Context, query string, args ...any) ([]*Recipe, error) {
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipes []*Recipe
	for rows.Next() {
		r, err := p.scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	return recipes, rows.Err()
}

// FetchAllRecipes returns every recipe. Filtering, searching, sorting and
// pagination happen in the listing pipeline, not in SQL.
func (p *Postgres) FetchAllRecipes(ctx context.Context) ([]*Recipe, error) {
	return p.fetchRecipes(ctx, `SELECT `+recipeColumns+` FROM recipe ORDER BY id`)
}

// FetchSavedRecipes returns every recipe whose saver set contains userID.
func (p *Postgres) FetchSavedRecipes(ctx context.Context, userID int64) ([]*Recipe, error) {
	return p.fetchRecipes(ctx, `SELECT `+recipeColumns+` FROM recipe WHERE $1 = ANY(saver_ids) ORDER BY id`, userID)
}

// CreateCategory inserts a category row.
func (p *Postgres) CreateCategory(ctx context.Context, name string) (*Category, error) {
	var c Category
	err := p.pool.QueryRow(ctx, `INSERT INTO category (name) VALUES ($1) RETURNING id, name`, name).Scan(&c.ID, &c.Name)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FetchCategories returns all categories ordered by id ascending.
func (p *Postgres) FetchCategories(ctx context.Context) ([]*Category, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, name FROM category ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}
