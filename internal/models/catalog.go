package models

type Category struct {

	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"` // e.g. Electronics, Fashion
}

type SubCategory struct {

	ID         uint     `gorm:"primaryKey" json:"id"`
	CategoryID uint     `gorm:"index;not null" json:"category_id"`
	Category   Category `json:"-"`
	Name       string   `gorm:"not null" json:"name"` // e.g. Phones, Laptops
}

type Brand struct {

	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"` // e.g. Samsung, Apple
}
