package reports

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Stock status labels used by the valuation report.
const (
	StatusAdequate = "Adequate"
	StatusLowStock = "Low Stock"
)

// ValuationItemDTO is one product's row in the inventory valuation report.
type ValuationItemDTO struct {
	ProductID     uuid.UUID       `json:"product_id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Category      *string         `json:"category,omitempty"`
	Quantity      int             `json:"quantity"`
	MinStockLevel int             `json:"min_stock_level"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TotalValue    decimal.Decimal `json:"total_value"`
	StockStatus   string          `json:"stock_status"`
}

// ValuationReportDTO is the full valuation report with its grand total.
type ValuationReportDTO struct {
	Items      []ValuationItemDTO `json:"items"`
	TotalValue decimal.Decimal    `json:"total_value"`
}

// MovementItemDTO aggregates one product's movements for one calendar day.
type MovementItemDTO struct {
	Day         string    `json:"day"`
	ProductID   uuid.UUID `json:"product_id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	StockIn     int       `json:"stock_in"`
	StockOut    int       `json:"stock_out"`
	NetMovement int       `json:"net_movement"`
}

// LowStockItemDTO is one product's row in the low-stock report.
type LowStockItemDTO struct {
	ProductID         uuid.UUID       `json:"product_id"`
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	Category          *string         `json:"category,omitempty"`
	Quantity          int             `json:"quantity"`
	MinStockLevel     int             `json:"min_stock_level"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	ShortfallQuantity int             `json:"shortfall_quantity"`
	ReorderValue      decimal.Decimal `json:"reorder_value"`
}
