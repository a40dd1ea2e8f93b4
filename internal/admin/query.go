package admin

import (
	"fmt"
	"strconv"
	"strings"

	"tastestack/internal/models"

	"gorm.io/gorm"
)

// ListParams carries the parsed query parameters of an admin list request.
type ListParams struct {
	// Search is the q parameter, matched case-insensitively against the
	// resource's SearchFields.
	Search string
	// Order is an optional ordering override: a field name, with a leading
	// "-" for descending (e.g. "-created_at").
	Order string
	// Filters maps declared filter fields to raw exact-match values.
	Filters map[string]string
	Limit   int
	Offset  int
}

// relation describes how a "rel.column" search field reaches its related table.
type relation struct {
	Table    string
	LocalKey string
}

// Related-table search goes through an IN subquery so the generated SQL works
// on both Postgres and SQLite.
var relations = map[string]relation{
	"user":      {Table: "users", LocalKey: "user_id"},
	"author":    {Table: "users", LocalKey: "author_id"},
	"recipe":    {Table: "recipes", LocalKey: "recipe_id"},
	"follower":  {Table: "users", LocalKey: "follower_id"},
	"following": {Table: "users", LocalKey: "following_id"},
}

// Filtered scopes db to the resource model with filters and search applied.
// Undeclared filter fields are rejected. The returned query carries no
// ordering or pagination, so it can back both the count and the page fetch.
func (r *Resource) Filtered(db *gorm.DB, p ListParams) (*gorm.DB, error) {
	q := db.Model(r.NewModel())

	for field, raw := range p.Filters {
		if !fieldDeclared(r.FilterFields, field) {
			return nil, models.NewValidationError(fmt.Sprintf("Cannot filter %s by %q", r.Name, field))
		}
		q = q.Where(field+" = ?", coerceFilterValue(raw))
	}

	search := strings.TrimSpace(p.Search)
	if search != "" && len(r.SearchFields) > 0 {
		pattern := "%" + strings.ToLower(search) + "%"
		var conds []string
		var args []any
		for _, field := range r.SearchFields {
			if rel, col, isRelated := strings.Cut(field, "."); isRelated {
				join, ok := relations[rel]
				if !ok {
					continue
				}
				conds = append(conds, fmt.Sprintf(
					"%s IN (SELECT id FROM %s WHERE LOWER(%s) LIKE ?)",
					join.LocalKey, join.Table, col,
				))
			} else {
				conds = append(conds, fmt.Sprintf("LOWER(%s) LIKE ?", field))
			}
			args = append(args, pattern)
		}
		q = q.Where(strings.Join(conds, " OR "), args...)
	}

	return q, nil
}

// OrderClause resolves the ordering for a list request. An empty override
// yields the resource's default order; a non-empty one must name a declared
// orderable field.
func (r *Resource) OrderClause(override string) (string, error) {
	override = strings.TrimSpace(override)
	if override == "" {
		return r.DefaultOrder, nil
	}

	field := override
	direction := "ASC"
	if strings.HasPrefix(override, "-") {
		field = override[1:]
		direction = "DESC"
	}

	orderable := r.OrderFields
	if orderable == nil {
		orderable = r.ListFields
	}
	if !fieldDeclared(orderable, field) {
		return "", models.NewValidationError(fmt.Sprintf("Cannot order %s by %q", r.Name, field))
	}

	return field + " " + direction, nil
}

// StripReadOnly removes read-only and identity fields from an update payload.
func (r *Resource) StripReadOnly(payload map[string]any) {
	delete(payload, "id")
	for _, field := range r.ReadOnly {
		delete(payload, field)
	}
}

func fieldDeclared(declared []string, field string) bool {
	for _, f := range declared {
		if f == field {
			return true
		}
	}
	return false
}

// coerceFilterValue converts a raw query value into a typed argument so that
// boolean and numeric columns compare correctly on Postgres.
func coerceFilterValue(raw string) any {
	switch strings.ToLower(raw) {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	return raw
}
