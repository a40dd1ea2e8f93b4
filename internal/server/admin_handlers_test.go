package server

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"tastestack/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type listResponse struct {
	Count   int64             `json:"count"`
	Results []json.RawMessage `json:"results"`
}

// seedAdminFixtures creates a staff user, a regular user, three recipes with
// distinct timestamps and three comments on the first recipe.
func seedAdminFixtures(t *testing.T, db *gorm.DB) (staff, regular *models.User, recipes []models.Recipe, comments []models.Comment) {
	t.Helper()

	staff = createTestUser(t, db, "admin", "admin@tastestack.dev", true)
	regular = createTestUser(t, db, "chef_anna", "anna@example.com", false)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	titles := []string{"Crispy Chicken Thighs", "Mushroom Risotto", "Apple Pie"}
	for i, title := range titles {
		recipe := models.Recipe{
			Title:      title,
			AuthorID:   regular.ID,
			Difficulty: models.DifficultyEasy,
			CreatedAt:  base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, db.Create(&recipe).Error)
		recipes = append(recipes, recipe)
	}

	bodies := []string{
		"Loved it, making it again next week.",
		strings.Repeat("y", 60),
		"Too salty for my taste.",
	}
	for i, body := range bodies {
		comment := models.Comment{
			Content:   body,
			UserID:    regular.ID,
			RecipeID:  recipes[0].ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&comment).Error)
		comments = append(comments, comment)
	}

	return staff, regular, recipes, comments
}

func TestAdminRoutes_RequireStaff(t *testing.T) {
	srv, app, db := setupTestServer(t)
	_, regular, _, _ := seedAdminFixtures(t, db)

	t.Run("anonymous gets 401", func(t *testing.T) {
		resp, _ := doJSON(t, app, fiber.MethodGet, "/api/admin/users", "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("non-staff gets 403", func(t *testing.T) {
		resp, _ := doJSON(t, app, fiber.MethodGet, "/api/admin/users", bearerToken(t, srv, regular), nil)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}

func TestGetAdminResources(t *testing.T) {
	srv, app, db := setupTestServer(t)
	staff, _, _, _ := seedAdminFixtures(t, db)

	resp, raw := doJSON(t, app, fiber.MethodGet, "/api/admin/resources", bearerToken(t, srv, staff), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var metas []struct {
		Name       string   `json:"name"`
		ListFields []string `json:"list_fields"`
	}
	require.NoError(t, json.Unmarshal(raw, &metas))

	names := make([]string, 0, len(metas))
	for _, m := range metas {
		names = append(names, m.Name)
	}
	assert.ElementsMatch(t, []string{
		"users", "recipes", "recipe-images", "ratings", "likes", "comments", "follows",
	}, names)
}

func TestAdminList_UnknownResource(t *testing.T) {
	srv, app, db := setupTestServer(t)
	staff, _, _, _ := seedAdminFixtures(t, db)

	resp, _ := doJSON(t, app, fiber.MethodGet, "/api/admin/widgets", bearerToken(t, srv, staff), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAdminList_UsersOrderedByEmail(t *testing.T) {
	srv, app, db := setupTestServer(t)
	staff, _, _, _ := seedAdminFixtures(t, db)
	createTestUser(t, db, "chef_zed", "zed@example.com", false)
	createTestUser(t, db, "chef_bea", "bea@example.com", false)

	resp, raw := doJSON(t, app, fiber.MethodGet, "/api/admin/users", bearerToken(t, srv, staff), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body listResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, int64(4), body.Count)

	var emails []string
	for _, rawUser := range body.Results {
		var u models.User
		require.NoError(t, json.Unmarshal(rawUser, &u))
		emails = append(emails, u.Email)
	}
	for i := 1; i < len(emails); i++ {
		assert.LessOrEqual(t, emails[i-1], emails[i], "user listing must be ordered by email ascending")
	}
}

func TestAdminList_RecipesReverseChronological(t *testing.T) {
	srv, app, db := setupTestServer(t)
	staff, _, _, _ := seedAdminFixtures(t, db)

	resp, raw := doJSON(t, app, fiber.MethodGet, "/api/admin/recipes", bearerToken(t, srv, staff), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body listResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	require.Equal(t, int64(3), body.Count)

	var previous time.Time
	for i, rawRecipe := range body.Results {
		var r models.Recipe
		require.NoError(t, json.Unmarshal(rawRecipe, &r))
		if i > 0 {
			assert.False(t, r.CreatedAt.After(previous), "recipe listing must be newest first")
		}
		previous = r.CreatedAt
	}
}

func TestAdminList_CommentsCarryPreview(t *testing.T) {
	srv, app, db := setupTestServer(t)
	staff, _, _, _ := seedAdminFixtures(t, db)

	resp, raw := doJSON(t, app, fiber.MethodGet, "/api/admin/comments", bearerToken(t, srv, staff), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body listResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	require.Equal(t, int64(3), body.Count)

	previews := map[string]string{}
	for _, rawComment := range body.Results {
		var cm models.Comment
		require.NoError(t, json.Unmarshal(rawComment, &cm))
		previews[cm.Content] = cm.ContentPreview
	}

	long := strings.Repeat("y", 60)
	assert.Equal(t, strings.Repeat("y", 50)+"...", previews[long])
	assert.Equal(t, "Too salty for my taste.", previews["Too salty for my taste."])
}

func TestAdminList_FiltersAndSearch(t *testing.T) {
	srv, app, db := setupTestServer(t)
	staff, _, _, comments := seedAdminFixtures(t, db)
	auth := bearerToken(t, srv, staff)

	require.NoError(t, db.Model(&models.Comment{}).
		Where("id = ?", comments[0].ID).Update("hidden", true).Error)

	t.Run("declared filter", func(t *testing.T) {
		resp, raw := doJSON(t, app, fiber.MethodGet, "/api/admin/comments?hidden=true", auth, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body listResponse
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, int64(1), body.Count)
	})

	t.Run("undeclared filter is rejected", func(t *testing.T) {
		resp, _ := doJSON(t, app, fiber.MethodGet, "/api/admin/comments?content=x", auth, nil)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("search own column case-insensitively", func(t *testing.T) {
		resp, raw := doJSON(t, app, fiber.MethodGet, "/api/admin/comments?q=SALTY", auth, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body listResponse
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, int64(1), body.Count)
	})

	t.Run("search related author column", func(t *testing.T) {
		resp, raw := doJSON(t, app, fiber.MethodGet, "/api/admin/recipes?q=chef_anna", auth, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body listResponse
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, int64(3), body.Count)
	})

	t.Run("ordering override", func(t *testing.T) {
		resp, raw := doJSON(t, app, fiber.MethodGet, "/api/admin/recipes?order=title", auth, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body listResponse
		require.NoError(t, json.Unmarshal(raw, &body))

		var titles []string
		for _, rawRecipe := range body.Results {
			var r models.Recipe
			require.NoError(t, json.Unmarshal(rawRecipe, &r))
			titles = append(titles, r.Title)
		}
		assert.Equal(t, []string{"Apple Pie", "Crispy Chicken Thighs", "Mushroom Risotto"}, titles)
	})

	t.Run("ordering by derived field is rejected", func(t *testing.T) {
		resp, _ := doJSON(t, app, fiber.MethodGet, "/api/admin/comments?order=content_preview", auth, nil)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestAdminGet(t *testing.T) {
	srv, app, db := setupTestServer(t)
	staff, regular, recipes, _ := seedAdminFixtures(t, db)
	auth := bearerToken(t, srv, staff)

	t.Run("found with preloads", func(t *testing.T) {
		resp, raw := doJSON(t, app, fiber.MethodGet,
			fmt.Sprintf("/api/admin/recipes/%d", recipes[0].ID), auth, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var r models.Recipe
		require.NoError(t, json.Unmarshal(raw, &r))
		assert.Equal(t, recipes[0].Title, r.Title)
		assert.Equal(t, regular.Username, r.Author.Username)
	})

	t.Run("missing", func(t *testing.T) {
		resp, _ := doJSON(t, app, fiber.MethodGet, "/api/admin/recipes/99999", auth, nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestAdminUpdate_StripsReadOnlyFields(t *testing.T) {
	srv, app, db := setupTestServer(t)
	staff, regular, _, _ := seedAdminFixtures(t, db)
	auth := bearerToken(t, srv, staff)

	resp, raw := doJSON(t, app, fiber.MethodPut,
		fmt.Sprintf("/api/admin/users/%d", regular.ID), auth, map[string]any{
			"first_name": "Anna",
			"is_staff":   true,
			"password":   "injected-hash",
			"id":         12345,
		})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, regular.ID).Error)
	assert.Equal(t, "Anna", reloaded.FirstName)
	assert.True(t, reloaded.IsStaff)
	assert.NotEqual(t, "injected-hash", reloaded.Password, "password is read-only in the admin console")
}

func TestAdminDelete(t *testing.T) {
	srv, app, db := setupTestServer(t)
	staff, _, _, comments := seedAdminFixtures(t, db)
	auth := bearerToken(t, srv, staff)

	resp, _ := doJSON(t, app, fiber.MethodDelete,
		fmt.Sprintf("/api/admin/comments/%d", comments[0].ID), auth, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.Comment{}).
		Where("id = ?", comments[0].ID).Count(&count).Error)
	assert.Zero(t, count)

	resp, _ = doJSON(t, app, fiber.MethodDelete, "/api/admin/comments/99999", auth, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAdminBulkModeration(t *testing.T) {
	srv, app, db := setupTestServer(t)
	staff, _, _, comments := seedAdminFixtures(t, db)
	auth := bearerToken(t, srv, staff)

	ids := []uint{comments[0].ID, comments[1].ID}

	hiddenCount := func() int64 {
		var n int64
		require.NoError(t, db.Model(&models.Comment{}).Where("hidden = ?", true).Count(&n).Error)
		return n
	}

	t.Run("hide then show restores visibility", func(t *testing.T) {
		resp, raw := doJSON(t, app, fiber.MethodPost, "/api/admin/comments/bulk-hide", auth,
			map[string]any{"ids": ids})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body struct {
			Updated int64 `json:"updated"`
		}
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, int64(2), body.Updated)
		assert.Equal(t, int64(2), hiddenCount())

		resp, raw = doJSON(t, app, fiber.MethodPost, "/api/admin/comments/bulk-show", auth,
			map[string]any{"ids": ids})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, int64(2), body.Updated)
		assert.Zero(t, hiddenCount())
	})

	t.Run("empty selection is a no-op", func(t *testing.T) {
		resp, raw := doJSON(t, app, fiber.MethodPost, "/api/admin/comments/bulk-hide", auth,
			map[string]any{"ids": []uint{}})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body struct {
			Updated int64 `json:"updated"`
		}
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Zero(t, body.Updated)
		assert.Zero(t, hiddenCount())
	})

	t.Run("hidden comments drop out of the public listing", func(t *testing.T) {
		recipeID := comments[0].RecipeID
		resp, raw := doJSON(t, app, fiber.MethodPost, "/api/admin/comments/bulk-hide", auth,
			map[string]any{"ids": []uint{comments[0].ID}})
		require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))

		resp, raw = doJSON(t, app, fiber.MethodGet,
			fmt.Sprintf("/api/recipes/%d/comments", recipeID), "", nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var visible []models.Comment
		require.NoError(t, json.Unmarshal(raw, &visible))
		assert.Len(t, visible, 2)
		for _, cm := range visible {
			assert.NotEqual(t, comments[0].ID, cm.ID)
		}
	})
}
