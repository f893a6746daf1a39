package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	stocksvc "github.com/stockyardhq/warehouse-backend/internal/stock"
	pkgerrors "github.com/stockyardhq/warehouse-backend/pkg/errors"
)

type stubStockService struct {
	recorded  *stocksvc.TransactionInput
	recordErr error
	history   []stocksvc.HistoryEntryDTO
	filter    *stocksvc.HistoryFilter
}

func (s *stubStockService) RecordTransaction(ctx context.Context, input stocksvc.TransactionInput) (*stocksvc.TransactionDTO, error) {
	if s.recordErr != nil {
		return nil, s.recordErr
	}
	s.recorded = &input
	return &stocksvc.TransactionDTO{
		ID:        uuid.New(),
		ProductID: input.ProductID,
		Type:      string(input.Type),
		Quantity:  input.Quantity,
	}, nil
}

func (s *stubStockService) CurrentInventory(ctx context.Context) ([]stocksvc.InventoryItemDTO, error) {
	return []stocksvc.InventoryItemDTO{}, nil
}

func (s *stubStockService) History(ctx context.Context, filter stocksvc.HistoryFilter) ([]stocksvc.HistoryEntryDTO, error) {
	s.filter = &filter
	return s.history, nil
}

func (s *stubStockService) CurrentStock(ctx context.Context, productID uuid.UUID) (*stocksvc.StockDTO, error) {
	return &stocksvc.StockDTO{ProductID: productID, Quantity: 7}, nil
}

func TestRecordStockTransaction(t *testing.T) {
	logg := testLogger()
	productID := uuid.New()

	t.Run("success", func(t *testing.T) {
		stub := &stubStockService{}
		body := `{"product_id":"` + productID.String() + `","type":"in","quantity":15}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/stock/transactions", strings.NewReader(body))
		rec := httptest.NewRecorder()
		RecordStockTransaction(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.recorded == nil || stub.recorded.Type != "IN" {
			t.Fatalf("expected normalized IN type, got %+v", stub.recorded)
		}
		if stub.recorded.Quantity != 15 {
			t.Fatalf("expected quantity 15, got %d", stub.recorded.Quantity)
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		stub := &stubStockService{}
		body := `{"product_id":"` + productID.String() + `","type":"TRANSFER","quantity":5}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/stock/transactions", strings.NewReader(body))
		rec := httptest.NewRecorder()
		RecordStockTransaction(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if stub.recorded != nil {
			t.Fatal("service must not be called for an invalid type")
		}
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		body := `{"product_id":"` + productID.String() + `","type":"OUT","quantity":0}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/stock/transactions", strings.NewReader(body))
		rec := httptest.NewRecorder()
		RecordStockTransaction(&stubStockService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("insufficient stock", func(t *testing.T) {
		stub := &stubStockService{recordErr: pkgerrors.New(pkgerrors.CodeValidation, "insufficient stock")}
		body := `{"product_id":"` + productID.String() + `","type":"OUT","quantity":20}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/stock/transactions", strings.NewReader(body))
		rec := httptest.NewRecorder()
		RecordStockTransaction(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestListStockTransactions(t *testing.T) {
	logg := testLogger()

	t.Run("defaults", func(t *testing.T) {
		stub := &stubStockService{}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/stock/transactions", nil)
		rec := httptest.NewRecorder()
		ListStockTransactions(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if stub.filter == nil || stub.filter.ProductID != nil || stub.filter.Limit != defaultHistorySize {
			t.Fatalf("unexpected filter: %+v", stub.filter)
		}
	})

	t.Run("product filter", func(t *testing.T) {
		stub := &stubStockService{}
		productID := uuid.New()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/stock/transactions?product_id="+productID.String()+"&limit=5", nil)
		rec := httptest.NewRecorder()
		ListStockTransactions(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if stub.filter == nil || stub.filter.ProductID == nil || *stub.filter.ProductID != productID {
			t.Fatalf("expected product filter %s, got %+v", productID, stub.filter)
		}
		if stub.filter.Limit != 5 {
			t.Fatalf("expected limit 5, got %d", stub.filter.Limit)
		}
	})

	t.Run("bad limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/stock/transactions?limit=zillion", nil)
		rec := httptest.NewRecorder()
		ListStockTransactions(&stubStockService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestGetProductStock(t *testing.T) {
	id := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/stock/"+id.String(), nil)
	req = withPathParam(req, "productId", id.String())
	rec := httptest.NewRecorder()
	GetProductStock(&stubStockService{}, testLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"quantity":7`) {
		t.Fatalf("expected quantity in payload, got %s", rec.Body.String())
	}
}
