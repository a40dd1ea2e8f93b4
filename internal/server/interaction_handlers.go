package server

import (
	"tastestack/internal/models"

	"github.com/gofiber/fiber/v2"
)

// LikeRecipe handles POST /api/recipes/:id/like
func (s *Server) LikeRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return respondInvalidID(c, "recipe ID")
	}

	if err := s.recipeService.LikeRecipe(c.Context(), userID, id); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Recipe liked"})
}

// UnlikeRecipe handles DELETE /api/recipes/:id/like
func (s *Server) UnlikeRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return respondInvalidID(c, "recipe ID")
	}

	if err := s.recipeService.UnlikeRecipe(c.Context(), userID, id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Like removed"})
}

// RateRecipe handles POST /api/recipes/:id/rating
func (s *Server) RateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return respondInvalidID(c, "recipe ID")
	}

	var req struct {
		Rating int `json:"rating"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.recipeService.RateRecipe(c.Context(), userID, id, req.Rating); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Recipe rated"})
}

// DeleteRating handles DELETE /api/recipes/:id/rating
func (s *Server) DeleteRating(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return respondInvalidID(c, "recipe ID")
	}

	if err := s.recipeService.DeleteRating(c.Context(), userID, id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Rating removed"})
}
