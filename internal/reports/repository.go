package reports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// valuationRow is the per-product join used by the valuation and low-stock
// reports.
type valuationRow struct {
	ProductID     uuid.UUID       `gorm:"column:product_id"`
	Code          string          `gorm:"column:code"`
	Name          string          `gorm:"column:name"`
	Category      *string         `gorm:"column:category"`
	Quantity      int             `gorm:"column:quantity"`
	MinStockLevel int             `gorm:"column:min_stock_level"`
	UnitPrice     decimal.Decimal `gorm:"column:unit_price"`
}

// movementRow is one ledger entry with product identity, scoped to the
// report window. Aggregation happens in the service.
type movementRow struct {
	ProductID uuid.UUID `gorm:"column:product_id"`
	Code      string    `gorm:"column:code"`
	Name      string    `gorm:"column:name"`
	Type      string    `gorm:"column:type"`
	Quantity  int       `gorm:"column:quantity"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// Repository runs the read-only report queries. No mutation happens here.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ValuationRows returns every product joined with its stock level.
func (r *Repository) ValuationRows(ctx context.Context) ([]valuationRow, error) {
	var rows []valuationRow
	err := r.db.WithContext(ctx).
		Table("products").
		Select("products.id AS product_id, products.code, products.name, products.category, "+
			"stock_levels.quantity, products.min_stock_level, products.unit_price").
		Joins("JOIN stock_levels ON stock_levels.product_id = products.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// MovementRows returns ledger entries at or after the cutoff, joined with
// product identity.
func (r *Repository) MovementRows(ctx context.Context, since time.Time) ([]movementRow, error) {
	var rows []movementRow
	err := r.db.WithContext(ctx).
		Table("stock_transactions").
		Select("stock_transactions.product_id, products.code, products.name, "+
			"stock_transactions.type, stock_transactions.quantity, stock_transactions.created_at").
		Joins("JOIN products ON products.id = stock_transactions.product_id").
		Where("stock_transactions.created_at >= ?", since).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// LowStockRows returns products whose quantity is at or below the reorder
// threshold.
func (r *Repository) LowStockRows(ctx context.Context) ([]valuationRow, error) {
	var rows []valuationRow
	err := r.db.WithContext(ctx).
		Table("products").
		Select("products.id AS product_id, products.code, products.name, products.category, "+
			"stock_levels.quantity, products.min_stock_level, products.unit_price").
		Joins("JOIN stock_levels ON stock_levels.product_id = products.id").
		Where("stock_levels.quantity <= products.min_stock_level").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
