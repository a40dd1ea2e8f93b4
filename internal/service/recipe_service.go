package service

import (
	"context"

	"tastestack/internal/models"
	"tastestack/internal/repository"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 5000
)

// RecipeService handles recipe creation, editing and interactions.
type RecipeService struct {
	recipeRepo repository.RecipeRepository
	isStaff    func(ctx context.Context, userID uint) (bool, error)
}

type CreateRecipeInput struct {
	AuthorID     uint
	Title        string
	Description  string
	Ingredients  string
	Instructions string
	PrepTime     int
	CookTime     int
	Servings     int
	Difficulty   string
	Category     string
	ImageURL     string
}

type UpdateRecipeInput struct {
	UserID       uint
	RecipeID     uint
	Title        string
	Description  string
	Ingredients  string
	Instructions string
	PrepTime     int
	CookTime     int
	Servings     int
	Difficulty   string
	Category     string
	ImageURL     string
}

func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	isStaff func(ctx context.Context, userID uint) (bool, error),
) *RecipeService {
	return &RecipeService{recipeRepo: recipeRepo, isStaff: isStaff}
}

func validDifficulty(d string) bool {
	switch d {
	case "", models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
		return true
	}
	return false
}

func (s *RecipeService) CreateRecipe(ctx context.Context, in CreateRecipeInput) (*models.Recipe, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 200 characters)")
	}
	if len(in.Description) > maxDescriptionLen {
		return nil, models.NewValidationError("Description too long (max 5000 characters)")
	}
	if !validDifficulty(in.Difficulty) {
		return nil, models.NewValidationError("Difficulty must be one of easy, medium, hard")
	}
	if in.PrepTime < 0 || in.CookTime < 0 || in.Servings < 0 {
		return nil, models.NewValidationError("Times and servings must not be negative")
	}

	difficulty := in.Difficulty
	if difficulty == "" {
		difficulty = models.DifficultyEasy
	}

	recipe := &models.Recipe{
		Title:        in.Title,
		Description:  in.Description,
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
		PrepTime:     in.PrepTime,
		CookTime:     in.CookTime,
		Servings:     in.Servings,
		Difficulty:   difficulty,
		Category:     in.Category,
		ImageURL:     in.ImageURL,
		AuthorID:     in.AuthorID,
	}
	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

func (s *RecipeService) GetRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	return s.recipeRepo.GetByID(ctx, id)
}

func (s *RecipeService) ListRecipes(ctx context.Context, limit, offset int) ([]*models.Recipe, error) {
	return s.recipeRepo.List(ctx, limit, offset)
}

func (s *RecipeService) SearchRecipes(ctx context.Context, query string, limit, offset int) ([]*models.Recipe, error) {
	if query == "" {
		return s.recipeRepo.List(ctx, limit, offset)
	}
	return s.recipeRepo.Search(ctx, query, limit, offset)
}

func (s *RecipeService) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Recipe, error) {
	return s.recipeRepo.GetByAuthorID(ctx, authorID, limit, offset)
}

func (s *RecipeService) UpdateRecipe(ctx context.Context, in UpdateRecipeInput) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, in.RecipeID)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(ctx, recipe, in.UserID); err != nil {
		return nil, err
	}

	if in.Title != "" {
		if len(in.Title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 200 characters)")
		}
		recipe.Title = in.Title
	}
	if in.Description != "" {
		if len(in.Description) > maxDescriptionLen {
			return nil, models.NewValidationError("Description too long (max 5000 characters)")
		}
		recipe.Description = in.Description
	}
	if in.Ingredients != "" {
		recipe.Ingredients = in.Ingredients
	}
	if in.Instructions != "" {
		recipe.Instructions = in.Instructions
	}
	if in.Difficulty != "" {
		if !validDifficulty(in.Difficulty) {
			return nil, models.NewValidationError("Difficulty must be one of easy, medium, hard")
		}
		recipe.Difficulty = in.Difficulty
	}
	if in.Category != "" {
		recipe.Category = in.Category
	}
	if in.ImageURL != "" {
		recipe.ImageURL = in.ImageURL
	}
	if in.PrepTime > 0 {
		recipe.PrepTime = in.PrepTime
	}
	if in.CookTime > 0 {
		recipe.CookTime = in.CookTime
	}
	if in.Servings > 0 {
		recipe.Servings = in.Servings
	}

	if err := s.recipeRepo.Update(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

func (s *RecipeService) DeleteRecipe(ctx context.Context, recipeID, userID uint) error {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		return err
	}

	if err := s.authorize(ctx, recipe, userID); err != nil {
		return err
	}

	return s.recipeRepo.Delete(ctx, recipeID)
}

func (s *RecipeService) AddImage(ctx context.Context, recipeID, userID uint, url, caption string) (*models.RecipeImage, error) {
	if url == "" {
		return nil, models.NewValidationError("Image URL is required")
	}

	recipe, err := s.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, recipe, userID); err != nil {
		return nil, err
	}

	image := &models.RecipeImage{RecipeID: recipeID, URL: url, Caption: caption}
	if err := s.recipeRepo.AddImage(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *RecipeService) DeleteImage(ctx context.Context, recipeID, imageID, userID uint) error {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, recipe, userID); err != nil {
		return err
	}
	return s.recipeRepo.DeleteImage(ctx, recipeID, imageID)
}

func (s *RecipeService) RateRecipe(ctx context.Context, userID, recipeID uint, rating int) error {
	if rating < 1 || rating > 5 {
		return models.NewValidationError("Rating must be between 1 and 5")
	}
	if _, err := s.recipeRepo.GetByID(ctx, recipeID); err != nil {
		return err
	}
	return s.recipeRepo.Rate(ctx, userID, recipeID, rating)
}

func (s *RecipeService) DeleteRating(ctx context.Context, userID, recipeID uint) error {
	return s.recipeRepo.DeleteRating(ctx, userID, recipeID)
}

func (s *RecipeService) LikeRecipe(ctx context.Context, userID, recipeID uint) error {
	if _, err := s.recipeRepo.GetByID(ctx, recipeID); err != nil {
		return err
	}
	return s.recipeRepo.Like(ctx, userID, recipeID)
}

func (s *RecipeService) UnlikeRecipe(ctx context.Context, userID, recipeID uint) error {
	return s.recipeRepo.Unlike(ctx, userID, recipeID)
}

// authorize permits the recipe author or a staff user.
func (s *RecipeService) authorize(ctx context.Context, recipe *models.Recipe, userID uint) error {
	if recipe.AuthorID == userID {
		return nil
	}
	if s.isStaff != nil {
		staff, err := s.isStaff(ctx, userID)
		if err != nil {
			return err
		}
		if staff {
			return nil
		}
	}
	return models.NewUnauthorizedError("Not allowed to modify this recipe")
}
