// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// previewLen is the number of characters shown in admin listings before truncation.
const previewLen = 50

// Comment represents a comment on a recipe in the TasteStack application.
type Comment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Content  string `gorm:"type:text;not null" json:"content"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	RecipeID uint   `gorm:"not null;index" json:"recipe_id"`
	// Hidden marks a comment removed from public view by moderation.
	Hidden bool   `gorm:"default:false;index" json:"hidden"`
	User   User   `gorm:"foreignKey:UserID" json:"user"`
	Recipe Recipe `gorm:"foreignKey:RecipeID" json:"recipe,omitempty"`
	// ContentPreview is not persisted; derived from Content after load.
	ContentPreview string         `gorm:"-" json:"content_preview,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// AfterFind populates the derived preview so every loaded comment carries it.
func (c *Comment) AfterFind(*gorm.DB) error {
	c.ContentPreview = PreviewContent(c.Content)
	return nil
}

// PreviewContent truncates a comment body to 50 characters for listings,
// appending an ellipsis when truncated. Bodies of 50 characters or fewer
// are returned unchanged. Truncation counts characters, not bytes.
func PreviewContent(content string) string {
	runes := []rune(content)
	if len(runes) <= previewLen {
		return content
	}
	return string(runes[:previewLen]) + "..."
}
