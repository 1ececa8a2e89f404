package models

import "time"

type Feedback struct {

	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"index;not null" json:"customer_id"`
	Customer   Customer  `json:"-"`
	ProductID  uint      `gorm:"index;not null" json:"product_id"`
	Product    Product   `json:"-"`
	Message    string    `gorm:"not null" json:"message"`
	IsResolved bool      `gorm:"default:false" json:"is_resolved"`
	CreatedAt  time.Time `json:"created_at"`
}
