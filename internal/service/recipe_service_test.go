package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tastestack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recipeRepoStub is a stub for repository.RecipeRepository.
type recipeRepoStub struct {
	createFn        func(context.Context, *models.Recipe) error
	getByIDFn       func(context.Context, uint) (*models.Recipe, error)
	getByAuthorIDFn func(context.Context, uint, int, int) ([]*models.Recipe, error)
	listFn          func(context.Context, int, int) ([]*models.Recipe, error)
	searchFn        func(context.Context, string, int, int) ([]*models.Recipe, error)
	updateFn        func(context.Context, *models.Recipe) error
	deleteFn        func(context.Context, uint) error
	isLikedFn       func(context.Context, uint, uint) (bool, error)
	likeFn          func(context.Context, uint, uint) error
	unlikeFn        func(context.Context, uint, uint) error
	rateFn          func(context.Context, uint, uint, int) error
	deleteRatingFn  func(context.Context, uint, uint) error
	addImageFn      func(context.Context, *models.RecipeImage) error
	deleteImageFn   func(context.Context, uint, uint) error
}

func (s *recipeRepoStub) Create(ctx context.Context, recipe *models.Recipe) error {
	return s.createFn(ctx, recipe)
}
func (s *recipeRepoStub) GetByID(ctx context.Context, id uint) (*models.Recipe, error) {
	return s.getByIDFn(ctx, id)
}
func (s *recipeRepoStub) GetByAuthorID(ctx context.Context, authorID uint, limit, offset int) ([]*models.Recipe, error) {
	return s.getByAuthorIDFn(ctx, authorID, limit, offset)
}
func (s *recipeRepoStub) List(ctx context.Context, limit, offset int) ([]*models.Recipe, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *recipeRepoStub) Search(ctx context.Context, query string, limit, offset int) ([]*models.Recipe, error) {
	return s.searchFn(ctx, query, limit, offset)
}
func (s *recipeRepoStub) Update(ctx context.Context, recipe *models.Recipe) error {
	return s.updateFn(ctx, recipe)
}
func (s *recipeRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *recipeRepoStub) IsLiked(ctx context.Context, userID, recipeID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, recipeID)
}
func (s *recipeRepoStub) Like(ctx context.Context, userID, recipeID uint) error {
	return s.likeFn(ctx, userID, recipeID)
}
func (s *recipeRepoStub) Unlike(ctx context.Context, userID, recipeID uint) error {
	return s.unlikeFn(ctx, userID, recipeID)
}
func (s *recipeRepoStub) Rate(ctx context.Context, userID, recipeID uint, rating int) error {
	return s.rateFn(ctx, userID, recipeID, rating)
}
func (s *recipeRepoStub) DeleteRating(ctx context.Context, userID, recipeID uint) error {
	return s.deleteRatingFn(ctx, userID, recipeID)
}
func (s *recipeRepoStub) AddImage(ctx context.Context, image *models.RecipeImage) error {
	return s.addImageFn(ctx, image)
}
func (s *recipeRepoStub) DeleteImage(ctx context.Context, recipeID, imageID uint) error {
	return s.deleteImageFn(ctx, recipeID, imageID)
}

func noopRecipeRepo() *recipeRepoStub {
	return &recipeRepoStub{
		createFn: func(_ context.Context, _ *models.Recipe) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Recipe, error) {
			return &models.Recipe{ID: id, AuthorID: 1, Title: "Pancakes"}, nil
		},
		getByAuthorIDFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Recipe, error) { return nil, nil },
		listFn:          func(_ context.Context, _, _ int) ([]*models.Recipe, error) { return nil, nil },
		searchFn:        func(_ context.Context, _ string, _, _ int) ([]*models.Recipe, error) { return nil, nil },
		updateFn:        func(_ context.Context, _ *models.Recipe) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		isLikedFn:       func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		likeFn:          func(_ context.Context, _, _ uint) error { return nil },
		unlikeFn:        func(_ context.Context, _, _ uint) error { return nil },
		rateFn:          func(_ context.Context, _, _ uint, _ int) error { return nil },
		deleteRatingFn:  func(_ context.Context, _, _ uint) error { return nil },
		addImageFn:      func(_ context.Context, _ *models.RecipeImage) error { return nil },
		deleteImageFn:   func(_ context.Context, _, _ uint) error { return nil },
	}
}

func TestRecipeService_CreateRecipe_Validation(t *testing.T) {
	t.Parallel()

	svc := NewRecipeService(noopRecipeRepo(), nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   CreateRecipeInput
		wantErr bool
	}{
		{"missing title", CreateRecipeInput{AuthorID: 1}, true},
		{"title too long", CreateRecipeInput{AuthorID: 1, Title: strings.Repeat("t", 201)}, true},
		{"description too long", CreateRecipeInput{AuthorID: 1, Title: "ok", Description: strings.Repeat("d", 5001)}, true},
		{"bad difficulty", CreateRecipeInput{AuthorID: 1, Title: "ok", Difficulty: "impossible"}, true},
		{"negative prep time", CreateRecipeInput{AuthorID: 1, Title: "ok", PrepTime: -1}, true},
		{"valid", CreateRecipeInput{AuthorID: 1, Title: "Pancakes", Difficulty: models.DifficultyMedium}, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.CreateRecipe(ctx, tt.input)
			if tt.wantErr {
				assertValidationError(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRecipeService_CreateRecipe_DefaultsDifficulty(t *testing.T) {
	t.Parallel()

	svc := NewRecipeService(noopRecipeRepo(), nil)
	recipe, err := svc.CreateRecipe(context.Background(), CreateRecipeInput{AuthorID: 1, Title: "Toast"})
	require.NoError(t, err)
	assert.Equal(t, models.DifficultyEasy, recipe.Difficulty)
}

func TestRecipeService_UpdateRecipe_Authorization(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("author merges fields", func(t *testing.T) {
		t.Parallel()
		svc := NewRecipeService(noopRecipeRepo(), nil)
		recipe, err := svc.UpdateRecipe(ctx, UpdateRecipeInput{UserID: 1, RecipeID: 3, Title: "Waffles"})
		require.NoError(t, err)
		assert.Equal(t, "Waffles", recipe.Title)
	})

	t.Run("kept fields survive partial update", func(t *testing.T) {
		t.Parallel()
		svc := NewRecipeService(noopRecipeRepo(), nil)
		recipe, err := svc.UpdateRecipe(ctx, UpdateRecipeInput{UserID: 1, RecipeID: 3, Category: "breakfast"})
		require.NoError(t, err)
		assert.Equal(t, "Pancakes", recipe.Title)
		assert.Equal(t, "breakfast", recipe.Category)
	})

	t.Run("staff can edit others", func(t *testing.T) {
		t.Parallel()
		svc := NewRecipeService(noopRecipeRepo(), func(_ context.Context, _ uint) (bool, error) {
			return true, nil
		})
		_, err := svc.UpdateRecipe(ctx, UpdateRecipeInput{UserID: 9, RecipeID: 3, Title: "Waffles"})
		assert.NoError(t, err)
	})

	t.Run("stranger rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewRecipeService(noopRecipeRepo(), func(_ context.Context, _ uint) (bool, error) {
			return false, nil
		})
		_, err := svc.UpdateRecipe(ctx, UpdateRecipeInput{UserID: 9, RecipeID: 3, Title: "Waffles"})
		require.Error(t, err)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "UNAUTHORIZED", appErr.Code)
	})
}

func TestRecipeService_RateRecipe_Bounds(t *testing.T) {
	t.Parallel()

	var gotRating int
	repo := noopRecipeRepo()
	repo.rateFn = func(_ context.Context, _, _ uint, rating int) error {
		gotRating = rating
		return nil
	}
	svc := NewRecipeService(repo, nil)
	ctx := context.Background()

	for _, bad := range []int{0, -1, 6} {
		err := svc.RateRecipe(ctx, 1, 2, bad)
		assertValidationError(t, err)
	}

	require.NoError(t, svc.RateRecipe(ctx, 1, 2, 5))
	assert.Equal(t, 5, gotRating)
}

func TestRecipeService_SearchRecipes_EmptyQueryLists(t *testing.T) {
	t.Parallel()

	repo := noopRecipeRepo()
	listed := false
	searched := false
	repo.listFn = func(_ context.Context, _, _ int) ([]*models.Recipe, error) {
		listed = true
		return nil, nil
	}
	repo.searchFn = func(_ context.Context, _ string, _, _ int) ([]*models.Recipe, error) {
		searched = true
		return nil, nil
	}
	svc := NewRecipeService(repo, nil)

	_, err := svc.SearchRecipes(context.Background(), "", 20, 0)
	require.NoError(t, err)
	assert.True(t, listed)
	assert.False(t, searched)
}

func TestRecipeService_LikeRequiresExistingRecipe(t *testing.T) {
	t.Parallel()

	repo := noopRecipeRepo()
	repo.getByIDFn = func(_ context.Context, _ uint) (*models.Recipe, error) {
		return nil, models.NewNotFoundError("Recipe", uint(404))
	}
	liked := false
	repo.likeFn = func(_ context.Context, _, _ uint) error {
		liked = true
		return nil
	}
	svc := NewRecipeService(repo, nil)

	err := svc.LikeRecipe(context.Background(), 1, 404)
	require.Error(t, err)
	assert.False(t, liked)
}
