package products

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockyardhq/warehouse-backend/pkg/db/models"
)

// Repository wires together product persistence plus the owned stock and
// transaction rows. The cascade on delete is explicit here, not declared
// at the database level.
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

// List returns all products ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads a single product without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Create inserts a new product row.
func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// CreateStockLevel inserts the companion stock row at quantity 0.
func (r *Repository) CreateStockLevel(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).Create(&models.StockLevel{ProductID: productID, Quantity: 0}).Error
}

// Update overwrites the mutable columns of a product row. created_at is
// never part of the update. Returns the number of rows affected.
func (r *Repository) Update(ctx context.Context, product *models.Product) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"code":            product.Code,
			"name":            product.Name,
			"description":     product.Description,
			"category":        product.Category,
			"unit_price":      product.UnitPrice,
			"min_stock_level": product.MinStockLevel,
		})
	return res.RowsAffected, res.Error
}

// DeleteTransactions removes all ledger rows owned by the product.
func (r *Repository) DeleteTransactions(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&models.StockTransaction{}).Error
}

// DeleteStockLevel removes the stock row owned by the product.
func (r *Repository) DeleteStockLevel(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&models.StockLevel{}).Error
}

// DeleteProduct removes the product row itself. Returns rows affected so
// the caller can distinguish a missing product from a clean delete.
func (r *Repository) DeleteProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ?", productID).
		Delete(&models.Product{})
	return res.RowsAffected, res.Error
}
