package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {

	ID            uint            `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"not null" json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageURL      string          `json:"image"`
	Stock         int             `gorm:"not null;default:0" json:"stock"`
	CategoryID    *uint           `gorm:"index" json:"category_id"`
	Category      *Category       `json:"-"`
	SubCategoryID *uint           `gorm:"index" json:"subcategory_id"`
	SubCategory   *SubCategory    `json:"-"`
	BrandID       *uint           `gorm:"index" json:"brand_id"`
	Brand         *Brand          `json:"-"`
	IsActive      bool            `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
}
