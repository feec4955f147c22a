package models

type Category struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string    `gorm:"unique;not null" json:"name"`
	Position int       `gorm:"default:0" json:"position"`
	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}
