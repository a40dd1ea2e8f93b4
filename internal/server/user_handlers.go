package server

import (
	"tastestack/internal/models"
	"tastestack/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetUserByID(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Username  string `json:"username"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Bio       string `json:"bio"`
		Location  string `json:"location"`
		Website   string `json:"website"`
		Avatar    string `json:"avatar"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:    userID,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Location:  req.Location,
		Website:   req.Website,
		Avatar:    req.Avatar,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(user)
}

// GetAllUsers handles GET /api/users
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)

	users, err := s.userService.ListUsers(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(users)
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return respondInvalidID(c, "user ID")
	}

	user, err := s.userService.GetUserByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(user)
}

// GetUserRecipes handles GET /api/users/:id/recipes
func (s *Server) GetUserRecipes(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return respondInvalidID(c, "user ID")
	}
	limit, offset := parsePagination(c)

	recipes, err := s.recipeService.ListByAuthor(c.Context(), id, limit, offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(recipes)
}

// FollowUser handles POST /api/users/:id/follow
func (s *Server) FollowUser(c *fiber.Ctx) error {
	followerID := c.Locals("userID").(uint)
	followingID, ok := parseIDParam(c, "id")
	if !ok {
		return respondInvalidID(c, "user ID")
	}

	if followerID == followingID {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Cannot follow yourself"))
	}

	// Verify the target exists
	if _, err := s.userService.GetUserByID(c.Context(), followingID); err != nil {
		return respondError(c, err)
	}

	if err := s.followRepo.Follow(c.Context(), followerID, followingID); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Followed"})
}

// UnfollowUser handles DELETE /api/users/:id/follow
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	followerID := c.Locals("userID").(uint)
	followingID, ok := parseIDParam(c, "id")
	if !ok {
		return respondInvalidID(c, "user ID")
	}

	if err := s.followRepo.Unfollow(c.Context(), followerID, followingID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Unfollowed"})
}

// GetFollowers handles GET /api/users/:id/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return respondInvalidID(c, "user ID")
	}
	limit, offset := parsePagination(c)

	follows, err := s.followRepo.Followers(c.Context(), id, limit, offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(follows)
}

// GetFollowing handles GET /api/users/:id/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return respondInvalidID(c, "user ID")
	}
	limit, offset := parsePagination(c)

	follows, err := s.followRepo.Following(c.Context(), id, limit, offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(follows)
}
