package stock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stockyardhq/warehouse-backend/pkg/db/models"
)

// inventoryRow is the raw join of products against their stock levels.
type inventoryRow struct {
	ProductID     uuid.UUID       `gorm:"column:product_id"`
	Code          string          `gorm:"column:code"`
	Name          string          `gorm:"column:name"`
	Category      *string         `gorm:"column:category"`
	Quantity      int             `gorm:"column:quantity"`
	MinStockLevel int             `gorm:"column:min_stock_level"`
	UnitPrice     decimal.Decimal `gorm:"column:unit_price"`
}

// historyRow is the raw join of ledger entries against their products.
type historyRow struct {
	ID        uuid.UUID `gorm:"column:id"`
	ProductID uuid.UUID `gorm:"column:product_id"`
	Code      string    `gorm:"column:code"`
	Name      string    `gorm:"column:name"`
	Type      string    `gorm:"column:type"`
	Quantity  int       `gorm:"column:quantity"`
	Reference *string   `gorm:"column:reference"`
	Notes     *string   `gorm:"column:notes"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// Repository is the persistence layer for the stock ledger. Ledger rows
// are append-only; the only mutation on stock_levels is the atomic
// increment in AdjustQuantity.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindProduct loads the product a movement targets.
func (r *Repository) FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// AppendTransaction inserts a ledger row. Rows are never updated after this.
func (r *Repository) AppendTransaction(ctx context.Context, record *models.StockTransaction) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// AdjustQuantity applies a signed delta to the product's stock level with a
// single in-place increment. It reports the number of rows touched so the
// caller can abort the surrounding transaction when the stock row is gone.
func (r *Repository) AdjustQuantity(ctx context.Context, productID uuid.UUID, delta int) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.StockLevel{}).
		Where("product_id = ?", productID).
		UpdateColumns(map[string]any{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

// CurrentQuantity returns the on-hand quantity for a product. A missing
// stock row reads as zero.
func (r *Repository) CurrentQuantity(ctx context.Context, productID uuid.UUID) (int, error) {
	var level models.StockLevel
	err := r.db.WithContext(ctx).First(&level, "product_id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return level.Quantity, nil
}

// Inventory returns every product joined with its stock level, ordered by
// product name.
func (r *Repository) Inventory(ctx context.Context) ([]inventoryRow, error) {
	var rows []inventoryRow
	err := r.db.WithContext(ctx).
		Table("products").
		Select("products.id AS product_id, products.code, products.name, products.category, "+
			"stock_levels.quantity, products.min_stock_level, products.unit_price").
		Joins("JOIN stock_levels ON stock_levels.product_id = products.id").
		Order("products.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// History returns ledger rows joined with product identity, newest first.
// A nil productID returns the full ledger; limit <= 0 means no cap.
func (r *Repository) History(ctx context.Context, productID *uuid.UUID, limit int) ([]historyRow, error) {
	q := r.db.WithContext(ctx).
		Table("stock_transactions").
		Select("stock_transactions.id, stock_transactions.product_id, products.code, products.name, "+
			"stock_transactions.type, stock_transactions.quantity, stock_transactions.reference, "+
			"stock_transactions.notes, stock_transactions.created_at").
		Joins("JOIN products ON products.id = stock_transactions.product_id").
		Order("stock_transactions.created_at DESC")
	if productID != nil {
		q = q.Where("stock_transactions.product_id = ?", *productID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []historyRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
