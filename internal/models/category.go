package models

// Category represents a boardgame category (e.g. "Strategy", "Party").
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id" validate:"required,min=1"`
	Name string `gorm:"size:50;unique;not null" json:"name" validate:"required,max=50"`
}
