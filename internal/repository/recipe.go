// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"tastestack/internal/cache"
	"tastestack/internal/models"
	"tastestack/internal/observability"

	"gorm.io/gorm"
)

// RecipeRepository defines the interface for recipe data operations
type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	GetByID(ctx context.Context, id uint) (*models.Recipe, error)
	GetByAuthorID(ctx context.Context, authorID uint, limit, offset int) ([]*models.Recipe, error)
	List(ctx context.Context, limit, offset int) ([]*models.Recipe, error)
	Search(ctx context.Context, query string, limit, offset int) ([]*models.Recipe, error)
	Update(ctx context.Context, recipe *models.Recipe) error
	Delete(ctx context.Context, id uint) error
	IsLiked(ctx context.Context, userID, recipeID uint) (bool, error)
	Like(ctx context.Context, userID, recipeID uint) error
	Unlike(ctx context.Context, userID, recipeID uint) error
	Rate(ctx context.Context, userID, recipeID uint, rating int) error
	DeleteRating(ctx context.Context, userID, recipeID uint) error
	AddImage(ctx context.Context, image *models.RecipeImage) error
	DeleteImage(ctx context.Context, recipeID, imageID uint) error
}

// recipeRepository implements RecipeRepository
type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// applyRecipeDetails attaches the computed aggregates (average rating and
// likes count) to recipe selects.
func (r *recipeRepository) applyRecipeDetails(db *gorm.DB) *gorm.DB {
	return db.Select("recipes.*, " +
		"(SELECT COALESCE(AVG(rating), 0) FROM ratings WHERE ratings.recipe_id = recipes.id) as average_rating, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.recipe_id = recipes.id) as likes_count")
}

func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *recipeRepository) GetByID(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.applyRecipeDetails(r.db.WithContext(ctx)).
		Preload("Author").
		Preload("Images").
		First(&recipe, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Recipe", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &recipe, nil
}

func (r *recipeRepository) GetByAuthorID(ctx context.Context, authorID uint, limit, offset int) ([]*models.Recipe, error) {
	var recipes []*models.Recipe
	err := r.applyRecipeDetails(r.db.WithContext(ctx)).
		Preload("Author").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&recipes).Error
	return recipes, err
}

func (r *recipeRepository) List(ctx context.Context, limit, offset int) ([]*models.Recipe, error) {
	defer observability.TrackQuery("list", "recipes")()
	var recipes []*models.Recipe
	err := r.applyRecipeDetails(r.db.WithContext(ctx)).
		Preload("Author").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&recipes).Error
	return recipes, err
}

// Search matches case-insensitively with LOWER(...) LIKE so the same SQL
// runs on Postgres and the sqlite test driver.
func (r *recipeRepository) Search(ctx context.Context, query string, limit, offset int) ([]*models.Recipe, error) {
	defer observability.TrackQuery("search", "recipes")()
	var recipes []*models.Recipe
	like := "%" + strings.ToLower(query) + "%"
	err := r.applyRecipeDetails(r.db.WithContext(ctx)).
		Preload("Author").
		Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(ingredients) LIKE ?", like, like, like).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&recipes).Error
	return recipes, err
}

func (r *recipeRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	err := r.db.WithContext(ctx).Save(recipe).Error
	if err == nil {
		cache.InvalidateRecipe(ctx, recipe.ID)
	}
	return err
}

func (r *recipeRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Delete(&models.Recipe{}, id).Error
	if err == nil {
		cache.InvalidateRecipe(ctx, id)
	}
	return err
}

func (r *recipeRepository) IsLiked(ctx context.Context, userID, recipeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}

func (r *recipeRepository) Like(ctx context.Context, userID, recipeID uint) error {
	// Use INSERT ... ON CONFLICT DO NOTHING to handle race conditions
	// This is atomic and prevents duplicate key errors
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO likes (user_id, recipe_id, created_at)
		 VALUES (?, ?, NOW())
		 ON CONFLICT (user_id, recipe_id) DO NOTHING`,
		userID, recipeID,
	)
	if result.Error == nil {
		cache.InvalidateRecipe(ctx, recipeID)
	}
	return result.Error
}

func (r *recipeRepository) Unlike(ctx context.Context, userID, recipeID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Like{}).Error
	if err == nil {
		cache.InvalidateRecipe(ctx, recipeID)
	}
	return err
}

func (r *recipeRepository) Rate(ctx context.Context, userID, recipeID uint, rating int) error {
	// Upsert so re-rating replaces the previous value
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO ratings (user_id, recipe_id, rating, created_at, updated_at)
		 VALUES (?, ?, ?, NOW(), NOW())
		 ON CONFLICT (user_id, recipe_id) DO UPDATE SET rating = EXCLUDED.rating, updated_at = NOW()`,
		userID, recipeID, rating,
	)
	if result.Error == nil {
		cache.InvalidateRecipe(ctx, recipeID)
	}
	return result.Error
}

func (r *recipeRepository) DeleteRating(ctx context.Context, userID, recipeID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Rating{}).Error
	if err == nil {
		cache.InvalidateRecipe(ctx, recipeID)
	}
	return err
}

func (r *recipeRepository) AddImage(ctx context.Context, image *models.RecipeImage) error {
	err := r.db.WithContext(ctx).Create(image).Error
	if err == nil {
		cache.InvalidateRecipe(ctx, image.RecipeID)
	}
	return err
}

func (r *recipeRepository) DeleteImage(ctx context.Context, recipeID, imageID uint) error {
	err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Delete(&models.RecipeImage{}, imageID).Error
	if err == nil {
		cache.InvalidateRecipe(ctx, recipeID)
	}
	return err
}
