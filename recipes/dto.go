package recipes

// RecipeInput carries the writable recipe fields shared by create and update.
type RecipeInput struct {
	Name        string  `json:"name" example:"Yakiniku"`
	Description string  `json:"description" example:"A very tasty food!"`
	Recipe      string  `json:"recipe" example:"1) ...\n2) ...\n3) ..."`
	Image       string  `json:"image,omitempty" example:"https://"`
	Categories  []int64 `json:"categories"`
}

// UpdateRecipeRequest is the payload of the update endpoint.
type UpdateRecipeRequest struct {
	RecipeID int64 `json:"recipe_id" example:"42"`
	RecipeInput
}

// DeletedResponse acknowledges a recipe deletion.
type DeletedResponse struct {
	Success bool `json:"success" example:"true"`
}

// SavedResponse acknowledges a save.
type SavedResponse struct {
	Saved bool `json:"saved" example:"true"`
}

// UnsavedResponse acknowledges an unsave.
type UnsavedResponse struct {
	Unsaved bool `json:"unsaved" example:"true"`
}
