package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/stockyardhq/warehouse-backend/internal/products"
	"github.com/stockyardhq/warehouse-backend/internal/reports"
	"github.com/stockyardhq/warehouse-backend/internal/stock"
	"github.com/stockyardhq/warehouse-backend/pkg/config"
	"github.com/stockyardhq/warehouse-backend/pkg/logger"
	"github.com/stockyardhq/warehouse-backend/pkg/metrics"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubProductService struct{}

func (stubProductService) List(ctx context.Context) ([]products.ProductDTO, error) {
	return []products.ProductDTO{}, nil
}

func (stubProductService) Get(ctx context.Context, id uuid.UUID) (*products.ProductDTO, error) {
	return &products.ProductDTO{ID: id}, nil
}

func (stubProductService) Create(ctx context.Context, input products.ProductInput) (*products.ProductDTO, error) {
	return &products.ProductDTO{ID: uuid.New()}, nil
}

func (stubProductService) Update(ctx context.Context, id uuid.UUID, input products.ProductInput) (*products.ProductDTO, error) {
	return &products.ProductDTO{ID: id}, nil
}

func (stubProductService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

type stubStockService struct{}

func (stubStockService) RecordTransaction(ctx context.Context, input stock.TransactionInput) (*stock.TransactionDTO, error) {
	return &stock.TransactionDTO{ID: uuid.New()}, nil
}

func (stubStockService) CurrentInventory(ctx context.Context) ([]stock.InventoryItemDTO, error) {
	return []stock.InventoryItemDTO{}, nil
}

func (stubStockService) History(ctx context.Context, filter stock.HistoryFilter) ([]stock.HistoryEntryDTO, error) {
	return []stock.HistoryEntryDTO{}, nil
}

func (stubStockService) CurrentStock(ctx context.Context, productID uuid.UUID) (*stock.StockDTO, error) {
	return &stock.StockDTO{ProductID: productID}, nil
}

type stubReportService struct{}

func (stubReportService) InventoryValuation(ctx context.Context) (*reports.ValuationReportDTO, error) {
	return &reports.ValuationReportDTO{}, nil
}

func (stubReportService) StockMovement(ctx context.Context) ([]reports.MovementItemDTO, error) {
	return []reports.MovementItemDTO{}, nil
}

func (stubReportService) LowStock(ctx context.Context) ([]reports.LowStockItemDTO, error) {
	return []reports.LowStockItemDTO{}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{}
	cfg.App.Env = "test"
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	registry := prometheus.NewRegistry()
	metrics.NewLedgerMetrics(registry)
	return NewRouter(cfg, logg, stubPinger{}, nil, registry, stubProductService{}, stubStockService{}, stubReportService{})
}

func TestRouterDispatch(t *testing.T) {
	router := newTestRouter(t)
	productID := uuid.New().String()

	cases := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/health/live", "", http.StatusOK},
		{http.MethodGet, "/health/ready", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodGet, "/api/v1/products", "", http.StatusOK},
		{http.MethodPost, "/api/v1/products", `{"code":"SKU1","name":"Widget","unit_price":"2.50"}`, http.StatusCreated},
		{http.MethodGet, "/api/v1/products/" + productID, "", http.StatusOK},
		{http.MethodPut, "/api/v1/products/" + productID, `{"code":"SKU1","name":"Widget","unit_price":"2.50"}`, http.StatusOK},
		{http.MethodDelete, "/api/v1/products/" + productID, "", http.StatusOK},
		{http.MethodGet, "/api/v1/stock", "", http.StatusOK},
		{http.MethodGet, "/api/v1/stock/" + productID, "", http.StatusOK},
		{http.MethodGet, "/api/v1/stock/transactions", "", http.StatusOK},
		{http.MethodPost, "/api/v1/stock/transactions", `{"product_id":"` + productID + `","type":"IN","quantity":5}`, http.StatusCreated},
		{http.MethodGet, "/api/v1/reports/valuation", "", http.StatusOK},
		{http.MethodGet, "/api/v1/reports/movement", "", http.StatusOK},
		{http.MethodGet, "/api/v1/reports/low-stock", "", http.StatusOK},
		{http.MethodGet, "/api/v1/unknown", "", http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			var req *http.Request
			if tc.body != "" {
				req = httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
				req.Header.Set("Content-Type", "application/json")
			} else {
				req = httptest.NewRequest(tc.method, tc.path, nil)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRouterSetsRequestID(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected request id header on response")
	}

	req = httptest.NewRequest(http.MethodGet, "/health/live", nil)
	req.Header.Set("X-Request-Id", "req-123")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-Id"); got != "req-123" {
		t.Fatalf("expected propagated request id, got %q", got)
	}
}
