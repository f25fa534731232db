package model

import (
	"time"

	"github.com/google/uuid"
)

// InventoryMovementType classifies a kardex entry.
type InventoryMovementType string

const (
	InventoryEntry         InventoryMovementType = "entry"
	InventoryAdjust        InventoryMovementType = "adjustment"
	InventorySale          InventoryMovementType = "sale"
	InventoryCancelRestore InventoryMovementType = "cancelRestore"
)

// InventoryMovement records every stock change on a product: purchases in,
// manual adjustments, sale decrements and cancellation restores. Entries are
// append-only; the running NewStock column makes the kardex readable without
// replaying history.
type InventoryMovement struct {
	ID            uuid.UUID             `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID     uuid.UUID             `gorm:"type:uuid;not null;index"`
	Type          InventoryMovementType `gorm:"type:varchar(20);not null"`
	Quantity      int                   `gorm:"not null"` // signed: positive enters stock
	PreviousStock int                   `gorm:"not null"`
	NewStock      int                   `gorm:"not null"`
	Reason        string

	// Sale that produced the movement, when there is one.
	ReferenceID *uuid.UUID `gorm:"type:uuid"`
	Reference   *string    // display folio of the referenced sale

	UserID    uuid.UUID `gorm:"type:uuid;not null"`
	Username  string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"index"`

	Product *Product `gorm:"foreignKey:ProductID"`
}
