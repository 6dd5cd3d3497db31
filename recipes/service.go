package recipes

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"

	"github.com/user/bonerecipes-go/apperror"
	"github.com/user/bonerecipes-go/config"
	"github.com/user/bonerecipes-go/store"
)

// pgUniqueViolation is the PostgreSQL unique-constraint error code. The name
// pre-check is not atomic with the insert, so the constraint is the backstop.
const pgUniqueViolation = "23505"

// Service holds the recipe business logic. Ownership rules, uniqueness
// checks, and the existence-before-permission ordering all live here so the
// JSON API and the rendered pages cannot drift apart.
type Service struct {
	recipes    store.RecipeStore
	categories store.CategoryStore
	settings   config.AppSettings
}

// NewService creates a recipe Service.
func NewService(recipes store.RecipeStore, categories store.CategoryStore, settings config.AppSettings) *Service {
	return &Service{recipes: recipes, categories: categories, settings: settings}
}

// canModify reports whether user may update or delete the recipe: its
// creator and any superuser may, nobody else.
func canModify(user *store.User, recipe *store.Recipe) bool {
	return user.IsSuperuser || recipe.CreatorID == user.ID
}

func notFoundErr(id int64) *apperror.AppError {
	return apperror.NewNotFoundError(fmt.Sprintf("Recipe #%d does not exist.", id), nil)
}

func validateInput(in RecipeInput) error {
	if in.Name == "" {
		return apperror.NewValidationError("recipe name is required", nil)
	}
	if in.Description == "" {
		return apperror.NewValidationError("recipe description is required", nil)
	}
	if in.Recipe == "" {
		return apperror.NewValidationError("recipe steps are required", nil)
	}
	return nil
}

// Menu fetches all recipes and runs the listing pipeline over them. It
// returns the requested page plus the total size of the filtered list, which
// the pages use to decide whether a next-page link exists.
func (s *Service) Menu(ctx context.Context, p ListParams) ([]*store.Recipe, int, error) {
	candidates, err := s.recipes.FetchAllRecipes(ctx)
	if err != nil {
		return nil, 0, apperror.NewDatabaseError("failed to fetch recipes", err)
	}
	filtered := FilterSearchSort(candidates, p)
	return Paginate(filtered, p.Page, s.settings.PageSize), len(filtered), nil
}

// SavedMenu is Menu over the user's saved recipes. The pipeline itself is the
// same; only the candidate set differs.
func (s *Service) SavedMenu(ctx context.Context, userID int64, p ListParams) ([]*store.Recipe, int, error) {
	candidates, err := s.recipes.FetchSavedRecipes(ctx, userID)
	if err != nil {
		return nil, 0, apperror.NewDatabaseError("failed to fetch saved recipes", err)
	}
	filtered := FilterSearchSort(candidates, p)
	return Paginate(filtered, p.Page, s.settings.PageSize), len(filtered), nil
}

// Get returns a recipe by id and bumps its popularity counter. The increment
// is fire-and-forget: it is not attributed to a user and a failure is logged,
// never surfaced to the viewer.
func (s *Service) Get(ctx context.Context, id int64) (*store.Recipe, error) {
	recipe, err := s.recipes.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFoundErr(id)
		}
		return nil, apperror.NewDatabaseError("failed to fetch recipe", err)
	}

	if err := s.recipes.IncreasePopularity(ctx, id); err != nil {
		logrus.WithError(err).WithField("recipe_id", id).Warn("failed to increase popularity")
	} else {
		recipe.Popularity++
	}

	return recipe, nil
}

// Peek returns a recipe without touching the popularity counter. The edit and
// delete confirmation pages use it; only detail views count as views.
func (s *Service) Peek(ctx context.Context, id int64) (*store.Recipe, error) {
	recipe, err := s.recipes.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFoundErr(id)
		}
		return nil, apperror.NewDatabaseError("failed to fetch recipe", err)
	}
	return recipe, nil
}

// AuthorizeModify runs the shared existence-then-permission check for
// mutating operations and returns the recipe when the caller may touch it.
// The order matters: a missing recipe is reported as not-found even to
// callers who would have lacked permission anyway.
func (s *Service) AuthorizeModify(ctx context.Context, user *store.User, recipeID int64, action string) (*store.Recipe, error) {
	recipe, err := s.Peek(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if !canModify(user, recipe) {
		return nil, apperror.NewForbiddenError(fmt.Sprintf("You don't have permission to %s this recipe.", action), nil)
	}
	return recipe, nil
}

// checkNameFree enforces recipe-name uniqueness. excludeID skips the recipe
// being updated so an update keeping its own name passes.
func (s *Service) checkNameFree(ctx context.Context, name string, excludeID int64) error {
	existing, err := s.recipes.GetRecipeByName(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return apperror.NewDatabaseError("failed to check recipe name", err)
	}
	if existing.ID == excludeID {
		return nil
	}
	return apperror.NewConflictError(fmt.Sprintf("Recipe %s already exists.", name), nil)
}

// Create inserts a new recipe owned by user.
func (s *Service) Create(ctx context.Context, user *store.User, in RecipeInput) (*store.Recipe, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if err := s.checkNameFree(ctx, in.Name, 0); err != nil {
		return nil, err
	}

	recipe, err := s.recipes.CreateRecipe(ctx, store.NewRecipe{
		Name:        in.Name,
		Description: in.Description,
		Recipe:      in.Recipe,
		Image:       in.Image,
		Categories:  in.Categories,
		CreatorID:   user.ID,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperror.NewConflictError(fmt.Sprintf("Recipe %s already exists.", in.Name), nil)
		}
		return nil, apperror.NewDatabaseError("failed to create recipe", err)
	}

	logrus.WithFields(logrus.Fields{"recipe_id": recipe.ID, "creator_id": user.ID}).Info("recipe created")
	return recipe, nil
}

// Update rewrites a recipe. Checks run in a fixed order: existence first,
// then permission, then name uniqueness.
func (s *Service) Update(ctx context.Context, user *store.User, recipeID int64, in RecipeInput) (*store.Recipe, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	if _, err := s.AuthorizeModify(ctx, user, recipeID, "edit"); err != nil {
		return nil, err
	}
	if err := s.checkNameFree(ctx, in.Name, recipeID); err != nil {
		return nil, err
	}

	err := s.recipes.UpdateRecipe(ctx, recipeID, store.RecipeUpdate{
		Name:        in.Name,
		Description: in.Description,
		Recipe:      in.Recipe,
		Image:       in.Image,
		Categories:  in.Categories,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperror.NewConflictError(fmt.Sprintf("Recipe %s already exists.", in.Name), nil)
		}
		return nil, apperror.NewDatabaseError("failed to update recipe", err)
	}

	return s.Peek(ctx, recipeID)
}

// Delete removes a recipe. Existence is checked before permission, so
// deleting a missing id reports not-found even to callers with no rights.
func (s *Service) Delete(ctx context.Context, user *store.User, recipeID int64) error {
	if _, err := s.AuthorizeModify(ctx, user, recipeID, "delete"); err != nil {
		return err
	}

	if err := s.recipes.DeleteRecipe(ctx, recipeID); err != nil {
		return apperror.NewDatabaseError("failed to delete recipe", err)
	}

	logrus.WithFields(logrus.Fields{"recipe_id": recipeID, "user_id": user.ID}).Info("recipe deleted")
	return nil
}

// Save bookmarks a recipe for user. Saving twice is harmless.
func (s *Service) Save(ctx context.Context, user *store.User, recipeID int64) error {
	if _, err := s.Peek(ctx, recipeID); err != nil {
		return err
	}
	if err := s.recipes.SaveRecipe(ctx, recipeID, user.ID); err != nil {
		return apperror.NewDatabaseError("failed to save recipe", err)
	}
	return nil
}

// Unsave removes a bookmark.
func (s *Service) Unsave(ctx context.Context, user *store.User, recipeID int64) error {
	if _, err := s.Peek(ctx, recipeID); err != nil {
		return err
	}
	if err := s.recipes.UnsaveRecipe(ctx, recipeID, user.ID); err != nil {
		return apperror.NewDatabaseError("failed to unsave recipe", err)
	}
	return nil
}

// Categories returns all categories, ordered by id.
func (s *Service) Categories(ctx context.Context) ([]*store.Category, error) {
	categories, err := s.categories.FetchCategories(ctx)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to fetch categories", err)
	}
	return categories, nil
}
