package admin

import (
	"fmt"
	"testing"
	"time"

	"tastestack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRegistryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.RecipeImage{},
		&models.Rating{},
		&models.Like{},
		&models.Comment{},
		&models.Follow{},
	))

	return db
}

func seedRegistryUsers(t *testing.T, db *gorm.DB) []models.User {
	t.Helper()
	users := []models.User{
		{Username: "carol", Email: "carol@example.com", Password: "pw", IsStaff: true},
		{Username: "alice", Email: "alice@example.com", Password: "pw"},
		{Username: "bob", Email: "bob@example.com", Password: "pw"},
	}
	for i := range users {
		require.NoError(t, db.Create(&users[i]).Error)
	}
	return users
}

func TestLookup(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"users", "recipes", "recipe-images", "ratings", "likes", "comments", "follows"} {
		res, ok := Lookup(name)
		assert.True(t, ok, name)
		assert.Equal(t, name, res.Name)
	}

	_, ok := Lookup("streams")
	assert.False(t, ok)
}

func TestUserListing_OrderedByEmail(t *testing.T) {
	t.Parallel()
	db := setupRegistryTestDB(t)
	seedRegistryUsers(t, db)

	res, ok := Lookup("users")
	require.True(t, ok)

	q, err := res.Filtered(db, ListParams{})
	require.NoError(t, err)
	order, err := res.OrderClause("")
	require.NoError(t, err)

	var users []models.User
	require.NoError(t, q.Order(order).Find(&users).Error)
	require.Len(t, users, 3)

	for i := 1; i < len(users); i++ {
		assert.LessOrEqual(t, users[i-1].Email, users[i].Email,
			"user listing must be non-decreasing in email")
	}
}

func TestRecipeListing_ReverseChronological(t *testing.T) {
	t.Parallel()
	db := setupRegistryTestDB(t)
	users := seedRegistryUsers(t, db)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		recipe := models.Recipe{
			Title:    fmt.Sprintf("Recipe %d", i),
			AuthorID: users[0].ID,
		}
		require.NoError(t, db.Create(&recipe).Error)
		// Spread creation times so the ordering assertion is meaningful.
		require.NoError(t, db.Model(&recipe).
			UpdateColumn("created_at", base.Add(time.Duration(i%3)*time.Minute)).Error)
	}

	res, ok := Lookup("recipes")
	require.True(t, ok)

	q, err := res.Filtered(db, ListParams{})
	require.NoError(t, err)
	order, err := res.OrderClause("")
	require.NoError(t, err)

	var recipes []models.Recipe
	require.NoError(t, q.Order(order).Find(&recipes).Error)
	require.Len(t, recipes, 5)

	for i := 1; i < len(recipes); i++ {
		assert.False(t, recipes[i].CreatedAt.After(recipes[i-1].CreatedAt),
			"recipe listing must be non-increasing in created_at")
	}
}

func TestFiltered_DeclaredFilter(t *testing.T) {
	t.Parallel()
	db := setupRegistryTestDB(t)
	seedRegistryUsers(t, db)

	res, ok := Lookup("users")
	require.True(t, ok)

	q, err := res.Filtered(db, ListParams{Filters: map[string]string{"is_staff": "true"}})
	require.NoError(t, err)

	var users []models.User
	require.NoError(t, q.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "carol", users[0].Username)
}

func TestFiltered_UndeclaredFilterRejected(t *testing.T) {
	t.Parallel()
	db := setupRegistryTestDB(t)

	res, ok := Lookup("users")
	require.True(t, ok)

	_, err := res.Filtered(db, ListParams{Filters: map[string]string{"password": "x"}})
	require.Error(t, err)

	appErr, isAppErr := err.(*models.AppError)
	require.True(t, isAppErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestFiltered_SearchOwnAndRelatedColumns(t *testing.T) {
	t.Parallel()
	db := setupRegistryTestDB(t)
	users := seedRegistryUsers(t, db)

	recipe := models.Recipe{Title: "Spicy Lentil Soup", AuthorID: users[0].ID}
	require.NoError(t, db.Create(&recipe).Error)

	comments := []models.Comment{
		{Content: "Delicious, made it twice", UserID: users[1].ID, RecipeID: recipe.ID},
		{Content: "Too spicy for me", UserID: users[2].ID, RecipeID: recipe.ID},
	}
	for i := range comments {
		require.NoError(t, db.Create(&comments[i]).Error)
	}

	res, ok := Lookup("comments")
	require.True(t, ok)

	t.Run("matches content case-insensitively", func(t *testing.T) {
		q, err := res.Filtered(db, ListParams{Search: "DELICIOUS"})
		require.NoError(t, err)
		var got []models.Comment
		require.NoError(t, q.Find(&got).Error)
		require.Len(t, got, 1)
		assert.Equal(t, comments[0].ID, got[0].ID)
	})

	t.Run("matches related username", func(t *testing.T) {
		q, err := res.Filtered(db, ListParams{Search: "bob"})
		require.NoError(t, err)
		var got []models.Comment
		require.NoError(t, q.Find(&got).Error)
		require.Len(t, got, 1)
		assert.Equal(t, comments[1].ID, got[0].ID)
	})

	t.Run("matches related recipe title", func(t *testing.T) {
		q, err := res.Filtered(db, ListParams{Search: "lentil"})
		require.NoError(t, err)
		var got []models.Comment
		require.NoError(t, q.Find(&got).Error)
		assert.Len(t, got, 2)
	})

	t.Run("no match returns empty", func(t *testing.T) {
		q, err := res.Filtered(db, ListParams{Search: "nonexistent"})
		require.NoError(t, err)
		var got []models.Comment
		require.NoError(t, q.Find(&got).Error)
		assert.Empty(t, got)
	})
}

func TestOrderClause(t *testing.T) {
	t.Parallel()

	res, ok := Lookup("comments")
	require.True(t, ok)

	t.Run("default", func(t *testing.T) {
		order, err := res.OrderClause("")
		require.NoError(t, err)
		assert.Equal(t, "created_at DESC", order)
	})

	t.Run("ascending override", func(t *testing.T) {
		order, err := res.OrderClause("created_at")
		require.NoError(t, err)
		assert.Equal(t, "created_at ASC", order)
	})

	t.Run("descending override", func(t *testing.T) {
		order, err := res.OrderClause("-hidden")
		require.NoError(t, err)
		assert.Equal(t, "hidden DESC", order)
	})

	t.Run("derived field rejected", func(t *testing.T) {
		_, err := res.OrderClause("content_preview")
		assert.Error(t, err)
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		_, err := res.OrderClause("password")
		assert.Error(t, err)
	})
}

func TestStripReadOnly(t *testing.T) {
	t.Parallel()

	res, ok := Lookup("recipes")
	require.True(t, ok)

	payload := map[string]any{
		"id":             99,
		"title":          "Updated",
		"average_rating": 5.0,
		"likes_count":    1000,
		"created_at":     "2020-01-01T00:00:00Z",
	}
	res.StripReadOnly(payload)

	assert.Equal(t, map[string]any{"title": "Updated"}, payload)
}
