package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockyardhq/warehouse-backend/pkg/enums"
)

// StockTransaction is an immutable, append-only record of a stock-in or
// stock-out event. Rows are never updated; they are deleted only as part
// of deleting the owning product.
type StockTransaction struct {
	ID        uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	ProductID uuid.UUID             `gorm:"column:product_id;type:uuid;not null;index"`
	Type      enums.TransactionType `gorm:"column:type;not null"`
	Quantity  int                   `gorm:"column:quantity;not null"`
	Reference *string               `gorm:"column:reference"`
	Notes     *string               `gorm:"column:notes"`
	CreatedAt time.Time             `gorm:"column:created_at;autoCreateTime"`
}

func (s *StockTransaction) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
