package server

import (
	"tastestack/internal/models"
	"tastestack/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetRecipes handles GET /api/recipes
func (s *Server) GetRecipes(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)

	recipes, err := s.recipeService.ListRecipes(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(recipes)
}

// SearchRecipes handles GET /api/recipes/search?q=...
func (s *Server) SearchRecipes(c *fiber.Ctx) error {
	q := c.Query("q")
	limit, offset := parsePagination(c)

	recipes, err := s.recipeService.SearchRecipes(c.Context(), q, limit, offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(recipes)
}

// GetRecipe handles GET /api/recipes/:id
func (s *Server) GetRecipe(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return respondInvalidID(c, "recipe ID")
	}

	recipe, err := s.recipeService.GetRecipe(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(recipe)
}

// CreateRecipe handles POST /api/recipes
func (s *Server) CreateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		Ingredients  string `json:"ingredients"`
		Instructions string `json:"instructions"`
		PrepTime     int    `json:"prep_time"`
		CookTime     int    `json:"cook_time"`
		Servings     int    `json:"servings"`
		Difficulty   string `json:"difficulty"`
		Category     string `json:"category"`
		ImageURL     string `json:"image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	recipe, err := s.recipeService.CreateRecipe(c.Context(), service.CreateRecipeInput{
		AuthorID:     userID,
		Title:        req.Title,
		Description:  req.Description,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Servings:     req.Servings,
		Difficulty:   req.Difficulty,
		Category:     req.Category,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(recipe)
}

// UpdateRecipe handles PUT /api/recipes/:id
func (s *Server) UpdateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return respondInvalidID(c, "recipe ID")
	}

	var req struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		Ingredients  string `json:"ingredients"`
		Instructions string `json:"instructions"`
		PrepTime     int    `json:"prep_time"`
		CookTime     int    `json:"cook_time"`
		Servings     int    `json:"servings"`
		Difficulty   string `json:"difficulty"`
		Category     string `json:"category"`
		ImageURL     string `json:"image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	recipe, err := s.recipeService.UpdateRecipe(c.Context(), service.UpdateRecipeInput{
		UserID:       userID,
		RecipeID:     id,
		Title:        req.Title,
		Description:  req.Description,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Servings:     req.Servings,
		Difficulty:   req.Difficulty,
		Category:     req.Category,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(recipe)
}

// DeleteRecipe handles DELETE /api/recipes/:id
func (s *Server) DeleteRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return respondInvalidID(c, "recipe ID")
	}

	if err := s.recipeService.DeleteRecipe(c.Context(), id, userID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Recipe deleted"})
}

// AddRecipeImage handles POST /api/recipes/:id/images
func (s *Server) AddRecipeImage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return respondInvalidID(c, "recipe ID")
	}

	var req struct {
		URL     string `json:"url"`
		Caption string `json:"caption"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	image, err := s.recipeService.AddImage(c.Context(), id, userID, req.URL, req.Caption)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(image)
}

// DeleteRecipeImage handles DELETE /api/recipes/:id/images/:imageId
func (s *Server) DeleteRecipeImage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return respondInvalidID(c, "recipe ID")
	}
	imageID, ok := parseIDParam(c, "imageId")
	if !ok {
		return respondInvalidID(c, "image ID")
	}

	if err := s.recipeService.DeleteImage(c.Context(), id, imageID, userID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Image deleted"})
}
