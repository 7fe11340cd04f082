package models

import "time"

// ShoppingCartEntry puts a recipe into a user's shopping list
type ShoppingCartEntry struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index;uniqueIndex:idx_cart_user_recipe"`
	User      User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	RecipeID  uint      `json:"recipe_id" gorm:"not null;index;uniqueIndex:idx_cart_user_recipe"`
	Recipe    Recipe    `json:"-" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName keeps the table name stable regardless of the struct name.
func (ShoppingCartEntry) TableName() string {
	return "shopping_cart_entries"
}

// ShoppingItem is one aggregated line of a shopping list.
type ShoppingItem struct {
	IngredientName  string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	TotalAmount     int    `json:"amount"`
}

// IngredientLine is a single RecipeIngredient row flattened with its ingredient's name
// and unit, as read for aggregation.
type IngredientLine struct {
	RecipeID        uint
	IngredientName  string
	MeasurementUnit string
	Amount          int
}
