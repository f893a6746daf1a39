package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockyardhq/warehouse-backend/api/responses"
	"github.com/stockyardhq/warehouse-backend/api/validators"
	productsvc "github.com/stockyardhq/warehouse-backend/internal/products"
	pkgerrors "github.com/stockyardhq/warehouse-backend/pkg/errors"
	"github.com/stockyardhq/warehouse-backend/pkg/logger"
)

const (
	maxCodeLen = 64
	maxNameLen = 255
	maxTextLen = 1024
)

type productRequest struct {
	Code          string          `json:"code" validate:"required"`
	Name          string          `json:"name" validate:"required"`
	Description   *string         `json:"description,omitempty"`
	Category      *string         `json:"category,omitempty"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	MinStockLevel int             `json:"min_stock_level" validate:"gte=0"`
}

func (req productRequest) toInput() productsvc.ProductInput {
	return productsvc.ProductInput{
		Code:          validators.SanitizeString(req.Code, maxCodeLen),
		Name:          validators.SanitizeString(req.Name, maxNameLen),
		Description:   validators.SanitizeStringPtr(req.Description, maxTextLen),
		Category:      validators.SanitizeStringPtr(req.Category, maxNameLen),
		UnitPrice:     req.UnitPrice,
		MinStockLevel: req.MinStockLevel,
	}
}

// ListProducts returns the full catalog ordered by name.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func CreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

func UpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func DeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func pathUUID(r *http.Request, key string) (uuid.UUID, error) {
	raw := chi.URLParam(r, key)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid id")
	}
	return id, nil
}
