package models

// StoreSetting is a single admin-owned row. The order workflow reads it
// fresh on every invocation rather than caching it across requests.
type StoreSetting struct {

	ID                 uint `gorm:"primaryKey" json:"id"`
	AutoStockDeduction bool `gorm:"default:false" json:"auto_stock_deduction"`
}
