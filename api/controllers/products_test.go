package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	productsvc "github.com/stockyardhq/warehouse-backend/internal/products"
	pkgerrors "github.com/stockyardhq/warehouse-backend/pkg/errors"
	"github.com/stockyardhq/warehouse-backend/pkg/logger"
)

type stubProductService struct {
	created   *productsvc.ProductInput
	createErr error
	getErr    error
	deleted   []uuid.UUID
}

func (s *stubProductService) List(ctx context.Context) ([]productsvc.ProductDTO, error) {
	return []productsvc.ProductDTO{}, nil
}

func (s *stubProductService) Get(ctx context.Context, id uuid.UUID) (*productsvc.ProductDTO, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return &productsvc.ProductDTO{ID: id}, nil
}

func (s *stubProductService) Create(ctx context.Context, input productsvc.ProductInput) (*productsvc.ProductDTO, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = &input
	return &productsvc.ProductDTO{ID: uuid.New(), Code: input.Code, Name: input.Name}, nil
}

func (s *stubProductService) Update(ctx context.Context, id uuid.UUID, input productsvc.ProductInput) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{ID: id, Code: input.Code, Name: input.Name}, nil
}

func (s *stubProductService) Delete(ctx context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func withPathParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestCreateProduct(t *testing.T) {
	logg := testLogger()

	t.Run("success", func(t *testing.T) {
		stub := &stubProductService{}
		body := `{"code":"  SKU1  ","name":"Widget","unit_price":"2.50","min_stock_level":10}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(body))
		rec := httptest.NewRecorder()
		CreateProduct(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.created == nil || stub.created.Code != "SKU1" {
			t.Fatalf("expected trimmed code SKU1, got %+v", stub.created)
		}
		if !stub.created.UnitPrice.Equal(decimal.NewFromFloat(2.50)) {
			t.Fatalf("unexpected unit price %s", stub.created.UnitPrice)
		}
		if stub.created.MinStockLevel != 10 {
			t.Fatalf("unexpected min stock level %d", stub.created.MinStockLevel)
		}
	})

	t.Run("missing required fields", func(t *testing.T) {
		stub := &stubProductService{}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(`{"name":"Widget"}`))
		rec := httptest.NewRecorder()
		CreateProduct(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if stub.created != nil {
			t.Fatal("service must not be called on invalid payload")
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(`{`))
		rec := httptest.NewRecorder()
		CreateProduct(&stubProductService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("conflict from service", func(t *testing.T) {
		stub := &stubProductService{createErr: pkgerrors.New(pkgerrors.CodeConflict, "product code already exists")}
		body := `{"code":"SKU1","name":"Widget","unit_price":"2.50"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(body))
		rec := httptest.NewRecorder()
		CreateProduct(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})
}

func TestGetProduct(t *testing.T) {
	logg := testLogger()

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products/nope", nil)
		req = withPathParam(req, "id", "nope")
		rec := httptest.NewRecorder()
		GetProduct(&stubProductService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for invalid id, got %d", rec.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		stub := &stubProductService{getErr: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
		id := uuid.New()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+id.String(), nil)
		req = withPathParam(req, "id", id.String())
		rec := httptest.NewRecorder()
		GetProduct(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		var payload struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("decoding error payload: %v", err)
		}
		if payload.Error.Code != "NOT_FOUND" {
			t.Fatalf("expected NOT_FOUND code, got %q", payload.Error.Code)
		}
	})
}

func TestDeleteProduct(t *testing.T) {
	stub := &stubProductService{}
	id := uuid.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/"+id.String(), nil)
	req = withPathParam(req, "id", id.String())
	rec := httptest.NewRecorder()
	DeleteProduct(stub, testLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(stub.deleted) != 1 || stub.deleted[0] != id {
		t.Fatalf("expected delete call for %s, got %v", id, stub.deleted)
	}
}
