package model

import "time"

// StoreConfig is a singleton row (SingletonKey = "main") holding the store
// identity printed on tickets and cash-cut reports.
type StoreConfig struct {
	ID           uint   `gorm:"primaryKey"`
	SingletonKey string `gorm:"uniqueIndex;not null;default:'main'"`
	StoreName    string `gorm:"not null;default:'Super Tienda Tenay'"`
	Address      *string
	Phone        *string
	TaxID        *string
	TicketFooter string `gorm:"not null;default:'Gracias por su compra.'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
