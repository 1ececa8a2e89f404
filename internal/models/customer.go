package models

import "time"

type Customer struct {

	ID        uint      `gorm:"primaryKey" json:"id"`
	OIDCID    string    `gorm:"uniqueIndex" json:"-"` // OpenID Connect identifier
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	IsStaff   bool      `gorm:"default:false" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
