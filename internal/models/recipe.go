// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Difficulty levels a recipe can be tagged with.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Recipe represents a recipe in the TasteStack application.
type Recipe struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Title        string `gorm:"not null" json:"title"`
	Description  string `gorm:"type:text" json:"description"`
	Ingredients  string `gorm:"type:text" json:"ingredients"`
	Instructions string `gorm:"type:text" json:"instructions"`
	PrepTime     int    `json:"prep_time"`
	CookTime     int    `json:"cook_time"`
	Servings     int    `json:"servings"`
	Difficulty   string `gorm:"default:easy;index" json:"difficulty"`
	Category     string `json:"category"`
	ImageURL     string `json:"image_url"`
	AuthorID     uint   `gorm:"not null;index" json:"author_id"`
	Author       User   `gorm:"foreignKey:AuthorID" json:"author"`
	// AverageRating is not persisted; computed at query time
	AverageRating float64 `gorm:"->" json:"average_rating"`
	// LikesCount is not persisted; computed at query time
	LikesCount int            `gorm:"->" json:"likes_count"`
	Images     []RecipeImage  `gorm:"foreignKey:RecipeID" json:"images,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
