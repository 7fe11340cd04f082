package models

import "time"

// Favorite marks a recipe as favorited by a user
type Favorite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index;uniqueIndex:idx_favorite_user_recipe"`
	User      User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	RecipeID  uint      `json:"recipe_id" gorm:"not null;index;uniqueIndex:idx_favorite_user_recipe"`
	Recipe    Recipe    `json:"-" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}
