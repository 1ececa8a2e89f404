package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultOrderStatus is the status every new order starts in. The row is
// seeded by an administrator; order placement fails if it is missing.
const DefaultOrderStatus = "Order Received"

type OrderStatus struct {

	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"` // e.g. Order Received, Shipped, Delivered
}

// Order is immutable once created; only its status is changed later, and
// only through the admin surface.
type Order struct {

	ID         uint            `gorm:"primaryKey" json:"id"`
	Reference  string          `gorm:"uniqueIndex;not null" json:"reference"`
	CustomerID uint            `gorm:"index;not null" json:"customer_id"`
	Customer   Customer        `json:"-"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
	StatusID   *uint           `json:"status"`
	Status     *OrderStatus    `json:"-"`
	CreatedAt  time.Time       `json:"created_at"`
	Items      []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
}

// OrderItem snapshots product name and price at order time, so later
// catalog changes never affect historical orders.
type OrderItem struct {

	ID          uint            `gorm:"primaryKey" json:"-"`
	OrderID     uint            `gorm:"index;not null" json:"-"`
	ProductID   *uint           `gorm:"index" json:"product"`
	Product     *Product        `json:"-"`
	ProductName string          `gorm:"not null" json:"product_name"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
}
