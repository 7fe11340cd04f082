package models

// Tag categorises recipes (breakfast, dinner, ...).
type Tag struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:32;not null;uniqueIndex"`
	Slug string `json:"slug" gorm:"size:32;not null;uniqueIndex"`
}
