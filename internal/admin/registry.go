// Package admin declares the entity registry driving the admin console API.
//
// Each resource binds a model to generic list/search/filter/edit behavior:
// which fields appear in listings, which can be filtered or searched, the
// default ordering, and which fields are read-only. The handlers in
// internal/server render and mutate resources purely from this metadata.
package admin

import "tastestack/internal/models"

// Resource is the declarative binding of a model to generic admin behavior.
type Resource struct {
	// Name is the plural URL segment identifying the resource.
	Name string
	// Label is a human-readable singular name used in error messages.
	Label string
	// ListFields are the columns shown in tabular listings.
	ListFields []string
	// FilterFields are the columns accepted as exact-match query filters.
	FilterFields []string
	// SearchFields are the columns matched by the q parameter. A field of
	// the form "rel.column" searches a related table (see relations).
	SearchFields []string
	// DefaultOrder is the ordering applied when no override is given.
	DefaultOrder string
	// OrderFields are the columns accepted as ordering overrides. When nil,
	// ListFields is used. Derived fields must be excluded here.
	OrderFields []string
	// ReadOnly fields are silently dropped from update payloads.
	ReadOnly []string
	// Preloads are association names loaded on detail views.
	Preloads []string

	// NewModel returns a pointer to a zero value of the resource model.
	NewModel func() any
	// NewSlice returns a pointer to an empty slice of the resource model.
	NewSlice func() any
}

// Meta is the serializable projection of a Resource for registry introspection.
type Meta struct {
	Name         string   `json:"name"`
	Label        string   `json:"label"`
	ListFields   []string `json:"list_fields"`
	FilterFields []string `json:"filter_fields"`
	SearchFields []string `json:"search_fields"`
	DefaultOrder string   `json:"default_order"`
	ReadOnly     []string `json:"read_only_fields"`
}

// Meta returns the introspection view of the resource.
func (r *Resource) Meta() Meta {
	return Meta{
		Name:         r.Name,
		Label:        r.Label,
		ListFields:   r.ListFields,
		FilterFields: r.FilterFields,
		SearchFields: r.SearchFields,
		DefaultOrder: r.DefaultOrder,
		ReadOnly:     r.ReadOnly,
	}
}

var registry = []*Resource{
	{
		Name:         "users",
		Label:        "User",
		ListFields:   []string{"email", "username", "first_name", "last_name", "is_staff", "created_at"},
		FilterFields: []string{"is_staff", "is_active"},
		SearchFields: []string{"email", "username", "first_name", "last_name"},
		DefaultOrder: "email ASC",
		ReadOnly:     []string{"password", "last_login", "created_at", "updated_at"},
		NewModel:     func() any { return &models.User{} },
		NewSlice:     func() any { return &[]models.User{} },
	},
	{
		Name:         "recipes",
		Label:        "Recipe",
		ListFields:   []string{"title", "author_id", "difficulty", "prep_time", "cook_time", "servings", "created_at"},
		FilterFields: []string{"difficulty", "author_id"},
		SearchFields: []string{"title", "description", "author.username", "author.email"},
		DefaultOrder: "created_at DESC",
		ReadOnly:     []string{"average_rating", "likes_count", "created_at", "updated_at"},
		Preloads:     []string{"Author", "Images"},
		NewModel:     func() any { return &models.Recipe{} },
		NewSlice:     func() any { return &[]models.Recipe{} },
	},
	{
		Name:         "recipe-images",
		Label:        "RecipeImage",
		ListFields:   []string{"recipe_id", "url", "uploaded_at"},
		FilterFields: []string{"recipe_id"},
		SearchFields: []string{"caption", "recipe.title"},
		DefaultOrder: "uploaded_at DESC",
		ReadOnly:     []string{"uploaded_at"},
		NewModel:     func() any { return &models.RecipeImage{} },
		NewSlice:     func() any { return &[]models.RecipeImage{} },
	},
	{
		Name:         "ratings",
		Label:        "Rating",
		ListFields:   []string{"user_id", "recipe_id", "rating", "created_at"},
		FilterFields: []string{"rating", "recipe_id"},
		SearchFields: []string{"user.username", "user.email", "recipe.title"},
		DefaultOrder: "created_at DESC",
		ReadOnly:     []string{"created_at", "updated_at"},
		NewModel:     func() any { return &models.Rating{} },
		NewSlice:     func() any { return &[]models.Rating{} },
	},
	{
		Name:         "likes",
		Label:        "Like",
		ListFields:   []string{"user_id", "recipe_id", "created_at"},
		FilterFields: []string{"user_id", "recipe_id"},
		SearchFields: []string{"user.username", "user.email", "recipe.title"},
		DefaultOrder: "created_at DESC",
		ReadOnly:     []string{"created_at"},
		NewModel:     func() any { return &models.Like{} },
		NewSlice:     func() any { return &[]models.Like{} },
	},
	{
		Name:         "comments",
		Label:        "Comment",
		ListFields:   []string{"user_id", "recipe_id", "content_preview", "hidden", "created_at"},
		FilterFields: []string{"hidden", "recipe_id"},
		SearchFields: []string{"content", "user.username", "user.email", "recipe.title"},
		DefaultOrder: "created_at DESC",
		// content_preview is derived, not a sortable column.
		OrderFields: []string{"user_id", "recipe_id", "hidden", "created_at"},
		ReadOnly:    []string{"created_at", "updated_at"},
		NewModel:    func() any { return &models.Comment{} },
		NewSlice:    func() any { return &[]models.Comment{} },
	},
	{
		Name:         "follows",
		Label:        "Follow",
		ListFields:   []string{"follower_id", "following_id", "created_at"},
		FilterFields: []string{"follower_id", "following_id"},
		SearchFields: []string{"follower.username", "follower.email", "following.username", "following.email"},
		DefaultOrder: "created_at DESC",
		ReadOnly:     []string{"created_at"},
		NewModel:     func() any { return &models.Follow{} },
		NewSlice:     func() any { return &[]models.Follow{} },
	},
}

// Resources returns every registered resource in declaration order.
func Resources() []*Resource {
	return registry
}

// Lookup returns the resource registered under the given URL name.
func Lookup(name string) (*Resource, bool) {
	for _, r := range registry {
		if r.Name == name {
			return r, true
		}
	}
	return nil, false
}
