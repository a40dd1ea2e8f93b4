package server

import (
	"encoding/json"
	"errors"

	"tastestack/internal/admin"
	"tastestack/internal/cache"
	"tastestack/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Reserved admin list query parameters; everything else is treated as a
// field filter.
var reservedListParams = map[string]bool{
	"q":      true,
	"order":  true,
	"limit":  true,
	"offset": true,
}

// GetAdminResources handles GET /api/admin/resources. It returns the
// registry metadata so clients can render listings generically.
func (s *Server) GetAdminResources(c *fiber.Ctx) error {
	resources := admin.Resources()
	metas := make([]admin.Meta, 0, len(resources))
	for _, r := range resources {
		metas = append(metas, r.Meta())
	}
	return c.JSON(metas)
}

// AdminList handles GET /api/admin/:resource. Listings support exact-match
// filters on declared fields, case-insensitive search via q, and ordering
// overrides via order (prefix "-" for descending).
func (s *Server) AdminList(c *fiber.Ctx) error {
	res, found := admin.Lookup(c.Params("resource"))
	if !found {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Resource", c.Params("resource")))
	}

	limit, offset := parsePagination(c)
	params := admin.ListParams{
		Search:  c.Query("q"),
		Order:   c.Query("order"),
		Filters: map[string]string{},
		Limit:   limit,
		Offset:  offset,
	}
	for key, value := range c.Queries() {
		if !reservedListParams[key] {
			params.Filters[key] = value
		}
	}

	scoped, err := res.Filtered(s.db.WithContext(c.Context()), params)
	if err != nil {
		return respondError(c, err)
	}

	order, err := res.OrderClause(params.Order)
	if err != nil {
		return respondError(c, err)
	}

	var count int64
	if err := scoped.Count(&count).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	rows := res.NewSlice()
	if err := scoped.Order(order).Limit(params.Limit).Offset(params.Offset).Find(rows).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"count":   count,
		"results": rows,
	})
}

// AdminGet handles GET /api/admin/:resource/:id with the resource's declared
// associations preloaded.
func (s *Server) AdminGet(c *fiber.Ctx) error {
	res, found := admin.Lookup(c.Params("resource"))
	if !found {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Resource", c.Params("resource")))
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return respondInvalidID(c, res.Label+" ID")
	}

	record, err := s.adminFetch(c, res, id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(record)
}

// AdminUpdate handles PUT /api/admin/:resource/:id. Read-only and identity
// fields are silently dropped from the payload.
func (s *Server) AdminUpdate(c *fiber.Ctx) error {
	res, found := admin.Lookup(c.Params("resource"))
	if !found {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Resource", c.Params("resource")))
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return respondInvalidID(c, res.Label+" ID")
	}

	var payload map[string]any
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	res.StripReadOnly(payload)

	if _, err := s.adminFetch(c, res, id); err != nil {
		return respondError(c, err)
	}

	if len(payload) > 0 {
		result := s.db.WithContext(c.Context()).Model(res.NewModel()).
			Where("id = ?", id).Updates(payload)
		if result.Error != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(result.Error))
		}
		s.invalidateAdminCache(c, res.Name, id)
	}

	record, err := s.adminFetch(c, res, id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(record)
}

// AdminDelete handles DELETE /api/admin/:resource/:id.
func (s *Server) AdminDelete(c *fiber.Ctx) error {
	res, found := admin.Lookup(c.Params("resource"))
	if !found {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Resource", c.Params("resource")))
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return respondInvalidID(c, res.Label+" ID")
	}

	if _, err := s.adminFetch(c, res, id); err != nil {
		return respondError(c, err)
	}

	if err := s.db.WithContext(c.Context()).Where("id = ?", id).
		Delete(res.NewModel()).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	s.invalidateAdminCache(c, res.Name, id)

	return c.JSON(fiber.Map{"message": res.Label + " deleted"})
}

// AdminHideComments handles POST /api/admin/comments/bulk-hide. An empty
// selection is a no-op that reports zero updates.
func (s *Server) AdminHideComments(c *fiber.Ctx) error {
	return s.bulkModerate(c, true)
}

// AdminShowComments handles POST /api/admin/comments/bulk-show.
func (s *Server) AdminShowComments(c *fiber.Ctx) error {
	return s.bulkModerate(c, false)
}

func (s *Server) bulkModerate(c *fiber.Ctx, hidden bool) error {
	var req struct {
		IDs []uint `json:"ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	var (
		updated int64
		err     error
	)
	if hidden {
		updated, err = s.commentService.HideComments(c.Context(), req.IDs)
	} else {
		updated, err = s.commentService.ShowComments(c.Context(), req.IDs)
	}
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"updated": updated})
}

// SetUserStaff handles PUT /api/admin/users/:id/staff, granting or revoking
// admin console access.
func (s *Server) SetUserStaff(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return respondInvalidID(c, "user ID")
	}

	var req struct {
		IsStaff bool `json:"is_staff"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.SetStaff(c.Context(), id, req.IsStaff)
	if err != nil {
		return respondError(c, err)
	}
	cache.InvalidateUser(c.Context(), id)

	return c.JSON(user)
}

// adminFetch loads one record by ID with the resource's preloads applied.
func (s *Server) adminFetch(c *fiber.Ctx, res *admin.Resource, id uint) (any, error) {
	q := s.db.WithContext(c.Context())
	for _, preload := range res.Preloads {
		q = q.Preload(preload)
	}

	record := res.NewModel()
	if err := q.First(record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError(res.Label, id)
		}
		return nil, models.NewInternalError(err)
	}
	return record, nil
}

// invalidateAdminCache drops cached entries touched by admin edits.
func (s *Server) invalidateAdminCache(c *fiber.Ctx, resource string, id uint) {
	switch resource {
	case "users":
		cache.InvalidateUser(c.Context(), id)
	case "recipes":
		cache.InvalidateRecipe(c.Context(), id)
	}
}
