package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockyardhq/warehouse-backend/pkg/db/models"
)

// ProductDTO is the read model returned by the service.
type ProductDTO struct {
	ID            uuid.UUID       `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Description   *string         `json:"description,omitempty"`
	Category      *string         `json:"category,omitempty"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	MinStockLevel int             `json:"min_stock_level"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func toDTO(m *models.Product) *ProductDTO {
	return &ProductDTO{
		ID:            m.ID,
		Code:          m.Code,
		Name:          m.Name,
		Description:   m.Description,
		Category:      m.Category,
		UnitPrice:     m.UnitPrice,
		MinStockLevel: m.MinStockLevel,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toDTOs(rows []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toDTO(&rows[i]))
	}
	return out
}
