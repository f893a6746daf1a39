package models

import (
	"time"

	"github.com/google/uuid"
)

// StockLevel holds the current on-hand quantity for a product. Exactly one
// row exists per product, created at quantity 0 alongside the product and
// removed only by the product cascade. Quantity is adjusted exclusively
// through the ledger's atomic increment; the column itself is not clamped.
type StockLevel struct {
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;primaryKey"`
	Quantity  int       `gorm:"column:quantity;not null;default:0"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
