package store

import (
	"context"
	"errors"
)

// ErrNotFound is the sentinel returned by lookups when no row matches.
// Services translate it into an apperror.NotFoundError (or into "anonymous"
// in optional session resolution); it never reaches a response directly.
var ErrNotFound = errors.New("store: not found")

// NewUser carries the fields needed to create a user row.
type NewUser struct {
	Name       string
	Login      string
	Email      string
	Password   string // Already hashed
	Notes      string
	IsConflict bool
}

// NewRecipe carries the fields needed to create a recipe row.
type NewRecipe struct {
	Name        string
	Description string
	Recipe      string
	Image       string
	Categories  []int64
	CreatorID   int64
}

// RecipeUpdate carries the writable fields of a recipe. The popularity
// counter and saver set are mutated through their own operations, never here.
type RecipeUpdate struct {
	Name        string
	Description string
	Recipe      string
	Image       string
	Categories  []int64
}

// UserStore is the persistence contract for users.
type UserStore interface {
	CreateUser(ctx context.Context, nu NewUser) (*User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
	GetUserByLogin(ctx context.Context, login string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	DeleteUser(ctx context.Context, id int64) error
	// PromoteSuperuser flips the superuser flag. There is no HTTP route for
	// this; it is the administrative path.
	PromoteSuperuser(ctx context.Context, id int64) error
}

// RecipeStore is the persistence contract for recipes.
type RecipeStore interface {
	CreateRecipe(ctx context.Context, nr NewRecipe) (*Recipe, error)
	GetRecipeByID(ctx context.Context, id int64) (*Recipe, error)
	GetRecipeByName(ctx context.Context, name string) (*Recipe, error)
	UpdateRecipe(ctx context.Context, id int64, up RecipeUpdate) error
	DeleteRecipe(ctx context.Context, id int64) error
	// IncreasePopularity atomically bumps the view counter by one.
	IncreasePopularity(ctx context.Context, id int64) error
	// SaveRecipe adds userID to the recipe's saver set; saving twice is a
	// no-op, not a duplicate.
	SaveRecipe(ctx context.Context, recipeID, userID int64) error
	UnsaveRecipe(ctx context.Context, recipeID, userID int64) error
	FetchAllRecipes(ctx context.Context) ([]*Recipe, error)
	FetchSavedRecipes(ctx context.Context, userID int64) ([]*Recipe, error)
}

// CategoryStore is the persistence contract for categories.
type CategoryStore interface {
	CreateCategory(ctx context.Context, name string) (*Category, error)
	// FetchCategories returns all categories ordered by id ascending.
	FetchCategories(ctx context.Context) ([]*Category, error)
}

// Store bundles the three contracts; the Postgres implementation satisfies
// all of them on one pool.
type Store interface {
	UserStore
	RecipeStore
	CategoryStore
}
