package recipes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/bonerecipes-go/apperror"
	"github.com/user/bonerecipes-go/config"
	"github.com/user/bonerecipes-go/store"
)

// fakeRecipeStore is an in-memory RecipeStore for service tests.
type fakeRecipeStore struct {
	recipes map[int64]*store.Recipe
	nextID  int64
}

func newFakeRecipeStore(seed ...*store.Recipe) *fakeRecipeStore {
	f := &fakeRecipeStore{recipes: make(map[int64]*store.Recipe), nextID: 1}
	for _, r := range seed {
		f.recipes[r.ID] = r
		if r.ID >= f.nextID {
			f.nextID = r.ID + 1
		}
	}
	return f
}

func (f *fakeRecipeStore) CreateRecipe(_ context.Context, nr store.NewRecipe) (*store.Recipe, error) {
	r := &store.Recipe{
		ID:          f.nextID,
		Name:        nr.Name,
		Description: nr.Description,
		Recipe:      nr.Recipe,
		Image:       nr.Image,
		Categories:  nr.Categories,
		CreatorID:   nr.CreatorID,
	}
	f.nextID++
	f.recipes[r.ID] = r
	return r, nil
}

func (f *fakeRecipeStore) GetRecipeByID(_ context.Context, id int64) (*store.Recipe, error) {
	r, ok := f.recipes[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	clone := *r
	return &clone, nil
}

func (f *fakeRecipeStore) GetRecipeByName(_ context.Context, name string) (*store.Recipe, error) {
	for _, r := range f.recipes {
		if r.Name == name {
			clone := *r
			return &clone, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeRecipeStore) UpdateRecipe(_ context.Context, id int64, up store.RecipeUpdate) error {
	r, ok := f.recipes[id]
	if !ok {
		return store.ErrNotFound
	}
	r.Name = up.Name
	r.Description = up.Description
	r.Recipe = up.Recipe
	r.Image = up.Image
	r.Categories = up.Categories
	return nil
}

func (f *fakeRecipeStore) DeleteRecipe(_ context.Context, id int64) error {
	if _, ok := f.recipes[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.recipes, id)
	return nil
}

func (f *fakeRecipeStore) IncreasePopularity(_ context.Context, id int64) error {
	r, ok := f.recipes[id]
	if !ok {
		return store.ErrNotFound
	}
	r.Popularity++
	return nil
}

func (f *fakeRecipeStore) SaveRecipe(_ context.Context, recipeID, userID int64) error {
	r, ok := f.recipes[recipeID]
	if !ok {
		return store.ErrNotFound
	}
	for _, id := range r.SaverIDs {
		if id == userID {
			return nil
		}
	}
	r.SaverIDs = append(r.SaverIDs, userID)
	return nil
}

func (f *fakeRecipeStore) UnsaveRecipe(_ context.Context, recipeID, userID int64) error {
	r, ok := f.recipes[recipeID]
	if !ok {
		return store.ErrNotFound
	}
	var kept []int64
	for _, id := range r.SaverIDs {
		if id != userID {
			kept = append(kept, id)
		}
	}
	r.SaverIDs = kept
	return nil
}

func (f *fakeRecipeStore) FetchAllRecipes(_ context.Context) ([]*store.Recipe, error) {
	var out []*store.Recipe
	for id := int64(1); id < f.nextID; id++ {
		if r, ok := f.recipes[id]; ok {
			clone := *r
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeRecipeStore) FetchSavedRecipes(_ context.Context, userID int64) ([]*store.Recipe, error) {
	var out []*store.Recipe
	for id := int64(1); id < f.nextID; id++ {
		r, ok := f.recipes[id]
		if !ok {
			continue
		}
		for _, saver := range r.SaverIDs {
			if saver == userID {
				clone := *r
				out = append(out, &clone)
				break
			}
		}
	}
	return out, nil
}

type fakeCategoryStore struct {
	categories []*store.Category
}

func (f *fakeCategoryStore) CreateCategory(_ context.Context, name string) (*store.Category, error) {
	c := &store.Category{ID: int64(len(f.categories) + 1), Name: name}
	f.categories = append(f.categories, c)
	return c, nil
}

func (f *fakeCategoryStore) FetchCategories(_ context.Context) ([]*store.Category, error) {
	return f.categories, nil
}

func testSettings() config.AppSettings {
	return config.AppSettings{PageSize: 10, MinPasswordLength: 8, MaxNotesLength: 500}
}

var (
	creator   = &store.User{ID: 1, Login: "creator"}
	stranger  = &store.User{ID: 2, Login: "stranger"}
	superuser = &store.User{ID: 3, Login: "admin", IsSuperuser: true}
)

func newTestService(seed ...*store.Recipe) (*Service, *fakeRecipeStore) {
	rs := newFakeRecipeStore(seed...)
	return NewService(rs, &fakeCategoryStore{}, testSettings()), rs
}

func validInput(name string) RecipeInput {
	return RecipeInput{Name: name, Description: "a dish", Recipe: "cook it"}
}

func TestCreateRecipe(t *testing.T) {
	svc, rs := newTestService()

	created, err := svc.Create(context.Background(), creator, validInput("Borscht"))
	require.NoError(t, err)
	assert.Equal(t, creator.ID, created.CreatorID)
	assert.Equal(t, "Borscht", created.Name)
	assert.Len(t, rs.recipes, 1)
}

func TestCreateRecipeValidation(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), creator, RecipeInput{Description: "d", Recipe: "r"})
	assert.True(t, apperror.IsValidationError(err))

	_, err = svc.Create(context.Background(), creator, RecipeInput{Name: "n", Recipe: "r"})
	assert.True(t, apperror.IsValidationError(err))

	_, err = svc.Create(context.Background(), creator, RecipeInput{Name: "n", Description: "d"})
	assert.True(t, apperror.IsValidationError(err))
}

func TestCreateRecipeDuplicateName(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), creator, validInput("Borscht"))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), stranger, validInput("Borscht"))
	require.Error(t, err)
	assert.True(t, apperror.IsConflictError(err))
	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Equal(t, "Recipe Borscht already exists.", appErr.Message)
}

func TestUpdateRecipeOwnership(t *testing.T) {
	ctx := context.Background()

	t.Run("creator may edit", func(t *testing.T) {
		svc, _ := newTestService(&store.Recipe{ID: 1, Name: "Old", CreatorID: creator.ID})
		updated, err := svc.Update(ctx, creator, 1, validInput("New"))
		require.NoError(t, err)
		assert.Equal(t, "New", updated.Name)
	})

	t.Run("superuser may edit", func(t *testing.T) {
		svc, _ := newTestService(&store.Recipe{ID: 1, Name: "Old", CreatorID: creator.ID})
		_, err := svc.Update(ctx, superuser, 1, validInput("New"))
		require.NoError(t, err)
	})

	t.Run("stranger may not edit", func(t *testing.T) {
		svc, rs := newTestService(&store.Recipe{ID: 1, Name: "Old", CreatorID: creator.ID})
		_, err := svc.Update(ctx, stranger, 1, validInput("New"))
		require.Error(t, err)
		assert.True(t, apperror.IsForbiddenError(err))
		appErr, ok := apperror.FromError(err)
		require.True(t, ok)
		assert.Equal(t, "You don't have permission to edit this recipe.", appErr.Message)
		assert.Equal(t, "Old", rs.recipes[1].Name)
	})
}

func TestUpdateRecipeKeepsOwnName(t *testing.T) {
	svc, _ := newTestService(&store.Recipe{ID: 1, Name: "Borscht", CreatorID: creator.ID})

	// Updating without renaming must not collide with itself.
	updated, err := svc.Update(context.Background(), creator, 1, validInput("Borscht"))
	require.NoError(t, err)
	assert.Equal(t, "Borscht", updated.Name)
}

func TestUpdateRecipeNameTaken(t *testing.T) {
	svc, _ := newTestService(
		&store.Recipe{ID: 1, Name: "Borscht", CreatorID: creator.ID},
		&store.Recipe{ID: 2, Name: "Okroshka", CreatorID: creator.ID},
	)

	_, err := svc.Update(context.Background(), creator, 2, validInput("Borscht"))
	require.Error(t, err)
	assert.True(t, apperror.IsConflictError(err))
}

func TestDeleteRecipe(t *testing.T) {
	ctx := context.Background()

	t.Run("creator may delete", func(t *testing.T) {
		svc, rs := newTestService(&store.Recipe{ID: 1, Name: "Borscht", CreatorID: creator.ID})
		require.NoError(t, svc.Delete(ctx, creator, 1))
		assert.Empty(t, rs.recipes)
	})

	t.Run("stranger may not delete", func(t *testing.T) {
		svc, rs := newTestService(&store.Recipe{ID: 1, Name: "Borscht", CreatorID: creator.ID})
		err := svc.Delete(ctx, stranger, 1)
		require.Error(t, err)
		assert.True(t, apperror.IsForbiddenError(err))
		assert.Len(t, rs.recipes, 1)
	})

	t.Run("missing recipe is not-found even without permission", func(t *testing.T) {
		svc, _ := newTestService()
		err := svc.Delete(ctx, stranger, 42)
		require.Error(t, err)
		assert.True(t, apperror.IsNotFound(err))
		appErr, ok := apperror.FromError(err)
		require.True(t, ok)
		assert.Equal(t, "Recipe #42 does not exist.", appErr.Message)
	})
}

func TestGetIncrementsPopularity(t *testing.T) {
	svc, rs := newTestService(&store.Recipe{ID: 1, Name: "Borscht", Popularity: 5})

	got, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	// The returned recipe already reflects the view being counted.
	assert.Equal(t, int64(6), got.Popularity)
	assert.Equal(t, int64(6), rs.recipes[1].Popularity)
}

func TestPeekDoesNotIncrementPopularity(t *testing.T) {
	svc, rs := newTestService(&store.Recipe{ID: 1, Name: "Borscht", Popularity: 5})

	got, err := svc.Peek(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Popularity)
	assert.Equal(t, int64(5), rs.recipes[1].Popularity)
}

func TestSaveAndUnsave(t *testing.T) {
	ctx := context.Background()
	svc, rs := newTestService(&store.Recipe{ID: 1, Name: "Borscht"})

	require.NoError(t, svc.Save(ctx, stranger, 1))
	// Saving again leaves a single entry.
	require.NoError(t, svc.Save(ctx, stranger, 1))
	assert.Equal(t, []int64{stranger.ID}, rs.recipes[1].SaverIDs)

	saved, total, err := svc.SavedMenu(ctx, stranger.ID, ListParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, saved, 1)
	assert.Equal(t, "Borscht", saved[0].Name)

	require.NoError(t, svc.Unsave(ctx, stranger, 1))
	assert.Empty(t, rs.recipes[1].SaverIDs)

	_, total, err = svc.SavedMenu(ctx, stranger.ID, ListParams{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestSaveMissingRecipe(t *testing.T) {
	svc, _ := newTestService()
	err := svc.Save(context.Background(), stranger, 7)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestMenuReturnsFilteredTotal(t *testing.T) {
	var seed []*store.Recipe
	for i := int64(1); i <= 15; i++ {
		seed = append(seed, &store.Recipe{ID: i, Name: "Soup", Categories: []int64{1}})
	}
	seed = append(seed, &store.Recipe{ID: 16, Name: "Cake", Categories: []int64{2}})
	svc, _ := newTestService(seed...)

	page, total, err := svc.Menu(context.Background(), ListParams{Categories: []int64{1}})
	require.NoError(t, err)
	// The total counts the whole filtered list, not just the page.
	assert.Equal(t, 15, total)
	assert.Len(t, page, 10)

	page, total, err = svc.Menu(context.Background(), ListParams{Categories: []int64{1}, Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 15, total)
	assert.Len(t, page, 5)
}
