package models

// Ingredient is a product with its measurement unit.
type Ingredient struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	Name            string `json:"name" gorm:"size:128;not null;uniqueIndex"`
	MeasurementUnit string `json:"measurement_unit" gorm:"size:64;not null"`
}
