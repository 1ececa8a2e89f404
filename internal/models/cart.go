package models

import "time"

// Cart is one-to-one with a customer and is created lazily on first add.
type Cart struct {

	ID         uint       `gorm:"primaryKey" json:"id"`
	CustomerID uint       `gorm:"uniqueIndex;not null" json:"customer_id"`
	Customer   Customer   `json:"-"`
	CreatedAt  time.Time  `json:"created_at"`
	Items      []CartItem `gorm:"foreignKey:CartID" json:"items"`
}

type CartItem struct {

	ID        uint      `gorm:"primaryKey" json:"id"`
	CartID    uint      `gorm:"not null;uniqueIndex:idx_cart_product" json:"cart_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_product" json:"product_id"`
	Product   Product   `json:"-"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	AddedAt   time.Time `gorm:"autoCreateTime" json:"added_at"`
}
