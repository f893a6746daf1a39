package stock

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockyardhq/warehouse-backend/pkg/db"
	"github.com/stockyardhq/warehouse-backend/pkg/db/models"
	"github.com/stockyardhq/warehouse-backend/pkg/enums"
	pkgerrors "github.com/stockyardhq/warehouse-backend/pkg/errors"
	"github.com/stockyardhq/warehouse-backend/pkg/logger"
	"github.com/stockyardhq/warehouse-backend/pkg/metrics"
)

// Service exposes the stock ledger: recording movements and reading the
// quantities they produce.
type Service interface {
	RecordTransaction(ctx context.Context, input TransactionInput) (*TransactionDTO, error)
	CurrentInventory(ctx context.Context) ([]InventoryItemDTO, error)
	History(ctx context.Context, filter HistoryFilter) ([]HistoryEntryDTO, error)
	CurrentStock(ctx context.Context, productID uuid.UUID) (*StockDTO, error)
}

// TransactionInput is the payload for recording one stock movement.
type TransactionInput struct {
	ProductID uuid.UUID
	Type      enums.TransactionType
	Quantity  int
	Reference *string
	Notes     *string
}

// HistoryFilter narrows the ledger listing. Zero value returns everything.
type HistoryFilter struct {
	ProductID *uuid.UUID
	Limit     int
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	logg     *logger.Logger
	metrics  *metrics.LedgerMetrics
}

// NewService constructs a stock ledger service. Metrics may be nil.
func NewService(repo *Repository, dbClient *db.Client, logg *logger.Logger, ledgerMetrics *metrics.LedgerMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("stock repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:     repo,
		dbClient: dbClient,
		logg:     logg,
		metrics:  ledgerMetrics,
	}, nil
}

// RecordTransaction appends a ledger row and adjusts the product's stock
// level as one unit of work. Either both writes commit or neither does.
// An OUT movement is rejected up front when current stock cannot cover it,
// so the stock quantity can never go negative through this path.
func (s *service) RecordTransaction(ctx context.Context, input TransactionInput) (*TransactionDTO, error) {
	if err := s.validateInput(ctx, input); err != nil {
		s.metrics.IncRejected(string(input.Type))
		return nil, err
	}

	record := &models.StockTransaction{
		ProductID: input.ProductID,
		Type:      input.Type,
		Quantity:  input.Quantity,
		Reference: input.Reference,
		Notes:     input.Notes,
	}

	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.AppendTransaction(ctx, record); err != nil {
			return err
		}
		affected, err := txRepo.AdjustQuantity(ctx, input.ProductID, input.Type.Delta(input.Quantity))
		if err != nil {
			return err
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "stock level not found")
		}
		return nil
	})
	if err != nil {
		s.metrics.IncRejected(string(input.Type))
		s.logg.Error(ctx, "stock transaction rolled back", err)
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recording stock transaction")
	}

	s.metrics.IncRecorded(string(input.Type))
	return toTransactionDTO(record), nil
}

func (s *service) validateInput(ctx context.Context, input TransactionInput) error {
	if !input.Type.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "transaction type must be IN or OUT")
	}
	if input.Quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	if _, err := s.repo.FindProduct(ctx, input.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}

	if input.Type == enums.TransactionTypeOut {
		current, err := s.repo.CurrentQuantity(ctx, input.ProductID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading stock level")
		}
		if input.Quantity > current {
			return pkgerrors.New(pkgerrors.CodeValidation, "insufficient stock").WithDetails(map[string]int{
				"available": current,
				"requested": input.Quantity,
			})
		}
	}
	return nil
}

func (s *service) CurrentInventory(ctx context.Context) ([]InventoryItemDTO, error) {
	rows, err := s.repo.Inventory(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading inventory")
	}
	items := make([]InventoryItemDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, toInventoryDTO(row))
	}
	return items, nil
}

func (s *service) History(ctx context.Context, filter HistoryFilter) ([]HistoryEntryDTO, error) {
	rows, err := s.repo.History(ctx, filter.ProductID, filter.Limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading transaction history")
	}
	entries := make([]HistoryEntryDTO, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, toHistoryDTO(row))
	}
	return entries, nil
}

// CurrentStock returns the on-hand quantity for one product. The product
// must exist; a product without a stock row reads as quantity zero.
func (s *service) CurrentStock(ctx context.Context, productID uuid.UUID) (*StockDTO, error) {
	if _, err := s.repo.FindProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}
	quantity, err := s.repo.CurrentQuantity(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading stock level")
	}
	return &StockDTO{ProductID: productID, Quantity: quantity}, nil
}
