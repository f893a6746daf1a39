package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/stockyardhq/warehouse-backend/api/responses"
	"github.com/stockyardhq/warehouse-backend/api/validators"
	stocksvc "github.com/stockyardhq/warehouse-backend/internal/stock"
	"github.com/stockyardhq/warehouse-backend/pkg/enums"
	pkgerrors "github.com/stockyardhq/warehouse-backend/pkg/errors"
	"github.com/stockyardhq/warehouse-backend/pkg/logger"
)

const (
	maxReferenceLen    = 128
	defaultHistorySize = 100
	maxHistorySize     = 1000
)

type stockTransactionRequest struct {
	ProductID string  `json:"product_id" validate:"required,uuid4"`
	Type      string  `json:"type" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	Reference *string `json:"reference,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

func (req stockTransactionRequest) toInput() (stocksvc.TransactionInput, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return stocksvc.TransactionInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id")
	}
	txType, err := enums.ParseTransactionType(req.Type)
	if err != nil {
		return stocksvc.TransactionInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid transaction type")
	}
	return stocksvc.TransactionInput{
		ProductID: productID,
		Type:      txType,
		Quantity:  req.Quantity,
		Reference: validators.SanitizeStringPtr(req.Reference, maxReferenceLen),
		Notes:     validators.SanitizeStringPtr(req.Notes, maxTextLen),
	}, nil
}

// GetInventory returns the joined product/quantity view.
func GetInventory(svc stocksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.CurrentInventory(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// GetProductStock returns a single product's on-hand quantity.
func GetProductStock(svc stocksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		current, err := svc.CurrentStock(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, current)
	}
}

// RecordStockTransaction appends a movement to the ledger.
func RecordStockTransaction(svc stocksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload stockTransactionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithProductID(ctx, input.ProductID.String())
		}

		recorded, err := svc.RecordTransaction(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, recorded)
	}
}

// ListStockTransactions returns the ledger newest first, optionally
// filtered by product.
func ListStockTransactions(svc stocksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParseQueryUUID(r, "product_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", defaultHistorySize, 1, maxHistorySize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entries, err := svc.History(r.Context(), stocksvc.HistoryFilter{
			ProductID: productID,
			Limit:     limit,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries)
	}
}
