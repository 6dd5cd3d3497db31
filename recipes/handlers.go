package recipes

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/bonerecipes-go/apperror"
	"github.com/user/bonerecipes-go/auth"
)

// Handlers wraps the recipe Service to provide the JSON API handlers.
type Handlers struct {
	service *Service
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// recipeID parses the {id} route parameter.
func recipeID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, apperror.NewBadRequestError("invalid recipe id", err)
	}
	return id, nil
}

// HandleGetRecipe godoc
// @Summary Recipe Detail
// @Description Returns one recipe and counts the view towards its popularity.
// @Tags Recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} store.Recipe "The recipe"
// @Failure 404 {object} apperror.ErrorResponse "Recipe does not exist"
// @Router /api/recipes/recipe/{id} [get]
func (h *Handlers) HandleGetRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := recipeID(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		recipe, err := h.service.Get(r.Context(), id)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, recipe)
	}
}

// HandleMenu godoc
// @Summary Recipe Listing
// @Description Lists recipes filtered, searched, sorted and paginated by the query parameters.
// @Tags Recipes
// @Produce json
// @Param sort query string false "Sort order" Enums(popularity-asc, popularity-desc, a-z, z-a)
// @Param dish_name query string false "Case-insensitive name substring"
// @Param categories query []int false "Category ids; recipes must fall entirely inside this set"
// @Param page query int false "Zero-based page number"
// @Success 200 {array} store.Recipe "One page of recipes"
// @Router /api/recipes/menu [get]
func (h *Handlers) HandleMenu() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, _, err := h.service.Menu(r.Context(), ParseListParams(r.URL.Query()))
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, page)
	}
}

// HandleSavedRecipes godoc
// @Summary Saved Recipe Listing
// @Description Lists the authenticated user's saved recipes through the same pipeline as the menu.
// @Tags Recipes
// @Produce json
// @Param sort query string false "Sort order" Enums(popularity-asc, popularity-desc, a-z, z-a)
// @Param dish_name query string false "Case-insensitive name substring"
// @Param categories query []int false "Category ids"
// @Param page query int false "Zero-based page number"
// @Success 200 {array} store.Recipe "One page of saved recipes"
// @Failure 401 {object} apperror.ErrorResponse "Not authenticated"
// @Router /api/recipes/saved-recipes/ [get]
func (h *Handlers) HandleSavedRecipes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("authentication required", nil))
			return
		}

		page, _, err := h.service.SavedMenu(r.Context(), user.ID, ParseListParams(r.URL.Query()))
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, page)
	}
}

// HandleCreateRecipe godoc
// @Summary Create Recipe
// @Description Creates a recipe owned by the authenticated user.
// @Tags Recipes
// @Accept json
// @Produce json
// @Param recipeBody body recipes.RecipeInput true "Recipe fields"
// @Success 201 {object} store.Recipe "The created recipe"
// @Failure 400 {object} apperror.ErrorResponse "Invalid input"
// @Failure 401 {object} apperror.ErrorResponse "Not authenticated"
// @Failure 406 {object} apperror.ErrorResponse "Recipe name already taken"
// @Router /api/recipes/create-recipe [post]
func (h *Handlers) HandleCreateRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("authentication required", nil))
			return
		}

		var in RecipeInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		recipe, err := h.service.Create(r.Context(), user, in)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusCreated, recipe)
	}
}

// HandleUpdateRecipe godoc
// @Summary Update Recipe
// @Description Updates a recipe; only its creator or a superuser may.
// @Tags Recipes
// @Accept json
// @Produce json
// @Param updateBody body recipes.UpdateRecipeRequest true "Recipe id and new fields"
// @Success 200 {object} store.Recipe "The updated recipe"
// @Failure 400 {object} apperror.ErrorResponse "Invalid input"
// @Failure 401 {object} apperror.ErrorResponse "Not authenticated"
// @Failure 403 {object} apperror.ErrorResponse "Not the creator and not a superuser"
// @Failure 404 {object} apperror.ErrorResponse "Recipe does not exist"
// @Failure 406 {object} apperror.ErrorResponse "Recipe name already taken"
// @Router /api/recipes/update-recipe [post]
func (h *Handlers) HandleUpdateRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("authentication required", nil))
			return
		}

		var req UpdateRecipeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		recipe, err := h.service.Update(r.Context(), user, req.RecipeID, req.RecipeInput)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, recipe)
	}
}

// HandleDeleteRecipe godoc
// @Summary Delete Recipe
// @Description Deletes a recipe; only its creator or a superuser may.
// @Tags Recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} recipes.DeletedResponse "Deleted"
// @Failure 401 {object} apperror.ErrorResponse "Not authenticated"
// @Failure 403 {object} apperror.ErrorResponse "Not the creator and not a superuser"
// @Failure 404 {object} apperror.ErrorResponse "Recipe does not exist"
// @Router /api/recipes/delete-recipe/{id} [get]
func (h *Handlers) HandleDeleteRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("authentication required", nil))
			return
		}

		id, err := recipeID(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		if err := h.service.Delete(r.Context(), user, id); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, DeletedResponse{Success: true})
	}
}

// HandleSaveRecipe godoc
// @Summary Save Recipe
// @Description Adds a recipe to the authenticated user's saved set.
// @Tags Recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} recipes.SavedResponse "Saved"
// @Failure 401 {object} apperror.ErrorResponse "Not authenticated"
// @Failure 404 {object} apperror.ErrorResponse "Recipe does not exist"
// @Router /api/recipes/save-recipe/{id} [get]
func (h *Handlers) HandleSaveRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("authentication required", nil))
			return
		}

		id, err := recipeID(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		if err := h.service.Save(r.Context(), user, id); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, SavedResponse{Saved: true})
	}
}

// HandleUnsaveRecipe godoc
// @Summary Unsave Recipe
// @Description Removes a recipe from the authenticated user's saved set.
// @Tags Recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} recipes.UnsavedResponse "Unsaved"
// @Failure 401 {object} apperror.ErrorResponse "Not authenticated"
// @Failure 404 {object} apperror.ErrorResponse "Recipe does not exist"
// @Router /api/recipes/unsave-recipe/{id} [get]
func (h *Handlers) HandleUnsaveRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("authentication required", nil))
			return
		}

		id, err := recipeID(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		if err := h.service.Unsave(r.Context(), user, id); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, UnsavedResponse{Unsaved: true})
	}
}
