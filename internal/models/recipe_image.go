package models

import "time"

// RecipeImage is an additional image attached to a recipe.
// Images are owned by their recipe and edited inline with it.
type RecipeImage struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	RecipeID   uint      `gorm:"not null;index" json:"recipe_id"`
	Recipe     *Recipe   `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"recipe,omitempty"`
	URL        string    `gorm:"not null" json:"url"`
	Caption    string    `json:"caption"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}
