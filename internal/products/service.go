package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stockyardhq/warehouse-backend/pkg/db"
	"github.com/stockyardhq/warehouse-backend/pkg/db/models"
	pkgerrors "github.com/stockyardhq/warehouse-backend/pkg/errors"
)

const codeUniqueConstraint = "uq_products_code"

// Service exposes product catalog management.
type Service interface {
	List(ctx context.Context) ([]ProductDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	Create(ctx context.Context, input ProductInput) (*ProductDTO, error)
	Update(ctx context.Context, id uuid.UUID, input ProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductInput holds the validated payload for create and full-row update.
type ProductInput struct {
	Code          string
	Name          string
	Description   *string
	Category      *string
	UnitPrice     decimal.Decimal
	MinStockLevel int
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Code) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product code is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if in.UnitPrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unit price cannot be negative")
	}
	if in.UnitPrice.Exponent() < -2 {
		return pkgerrors.New(pkgerrors.CodeValidation, "unit price supports at most 2 decimal places")
	}
	if in.MinStockLevel < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "minimum stock level cannot be negative")
	}
	return nil
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a product service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

func (s *service) List(ctx context.Context) ([]ProductDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing products")
	}
	return toDTOs(rows), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}
	return toDTO(product), nil
}

// Create inserts the product together with its stock row at quantity 0.
// The two inserts commit as one unit: a stock insert failure leaves no
// product behind.
func (s *service) Create(ctx context.Context, input ProductInput) (*ProductDTO, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	product := &models.Product{
		Code:          strings.TrimSpace(input.Code),
		Name:          strings.TrimSpace(input.Name),
		Description:   input.Description,
		Category:      input.Category,
		UnitPrice:     input.UnitPrice,
		MinStockLevel: input.MinStockLevel,
	}

	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.Create(ctx, product); err != nil {
			return err
		}
		return txRepo.CreateStockLevel(ctx, product.ID)
	})
	if err != nil {
		if db.IsUniqueViolation(err, codeUniqueConstraint) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "product code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating product")
	}

	return toDTO(product), nil
}

// Update performs a full-row overwrite by id. A missing row is reported
// as NOT_FOUND rather than a silent zero-row success.
func (s *service) Update(ctx context.Context, id uuid.UUID, input ProductInput) (*ProductDTO, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:            id,
		Code:          strings.TrimSpace(input.Code),
		Name:          strings.TrimSpace(input.Name),
		Description:   input.Description,
		Category:      input.Category,
		UnitPrice:     input.UnitPrice,
		MinStockLevel: input.MinStockLevel,
	}

	affected, err := s.repo.Update(ctx, product)
	if err != nil {
		if db.IsUniqueViolation(err, codeUniqueConstraint) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "product code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating product")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reloading product")
	}
	return toDTO(updated), nil
}

// Delete removes the product and everything it owns: its ledger rows, its
// stock row, then the product itself, in that order, in one transaction.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.DeleteTransactions(ctx, id); err != nil {
			return err
		}
		if err := txRepo.DeleteStockLevel(ctx, id); err != nil {
			return err
		}
		affected, err := txRepo.DeleteProduct(ctx, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return typed
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting product")
	}
	return nil
}
