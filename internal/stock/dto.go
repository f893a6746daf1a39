package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockyardhq/warehouse-backend/pkg/db/models"
)

// Inventory status labels surfaced by the inventory listing.
const (
	StatusOK       = "OK"
	StatusLowStock = "Low Stock"
)

// TransactionDTO is the read model for a single ledger entry.
type TransactionDTO struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"product_id"`
	Type       string    `json:"type"`
	Quantity   int       `json:"quantity"`
	Reference  *string   `json:"reference,omitempty"`
	Notes      *string   `json:"notes,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// InventoryItemDTO is one product's row in the current inventory view.
type InventoryItemDTO struct {
	ProductID     uuid.UUID       `json:"product_id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Category      *string         `json:"category,omitempty"`
	Quantity      int             `json:"quantity"`
	MinStockLevel int             `json:"min_stock_level"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Status        string          `json:"status"`
}

// HistoryEntryDTO is one ledger entry joined with product identity.
type HistoryEntryDTO struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	ProductID     uuid.UUID `json:"product_id"`
	ProductCode   string    `json:"product_code"`
	ProductName   string    `json:"product_name"`
	Type          string    `json:"type"`
	Quantity      int       `json:"quantity"`
	Reference     *string   `json:"reference,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// StockDTO is the on-hand quantity for one product.
type StockDTO struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

func toTransactionDTO(m *models.StockTransaction) *TransactionDTO {
	return &TransactionDTO{
		ID:         m.ID,
		ProductID:  m.ProductID,
		Type:       string(m.Type),
		Quantity:   m.Quantity,
		Reference:  m.Reference,
		Notes:      m.Notes,
		OccurredAt: m.CreatedAt,
	}
}

func toInventoryDTO(row inventoryRow) InventoryItemDTO {
	status := StatusOK
	if row.Quantity <= row.MinStockLevel {
		status = StatusLowStock
	}
	return InventoryItemDTO{
		ProductID:     row.ProductID,
		Code:          row.Code,
		Name:          row.Name,
		Category:      row.Category,
		Quantity:      row.Quantity,
		MinStockLevel: row.MinStockLevel,
		UnitPrice:     row.UnitPrice,
		Status:        status,
	}
}

func toHistoryDTO(row historyRow) HistoryEntryDTO {
	return HistoryEntryDTO{
		TransactionID: row.ID,
		ProductID:     row.ProductID,
		ProductCode:   row.Code,
		ProductName:   row.Name,
		Type:          row.Type,
		Quantity:      row.Quantity,
		Reference:     row.Reference,
		Notes:         row.Notes,
		OccurredAt:    row.CreatedAt,
	}
}
