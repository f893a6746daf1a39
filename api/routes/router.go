package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stockyardhq/warehouse-backend/api/controllers"
	"github.com/stockyardhq/warehouse-backend/api/middleware"
	"github.com/stockyardhq/warehouse-backend/internal/products"
	"github.com/stockyardhq/warehouse-backend/internal/reports"
	"github.com/stockyardhq/warehouse-backend/internal/stock"
	"github.com/stockyardhq/warehouse-backend/pkg/config"
	"github.com/stockyardhq/warehouse-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	cacheP controllers.Pinger,
	gatherer prometheus.Gatherer,
	productService products.Service,
	stockService stock.Service,
	reportService reports.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, cacheP))
	})

	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(productService, logg))
			r.Post("/", controllers.CreateProduct(productService, logg))
			r.Get("/{id}", controllers.GetProduct(productService, logg))
			r.Put("/{id}", controllers.UpdateProduct(productService, logg))
			r.Delete("/{id}", controllers.DeleteProduct(productService, logg))
		})

		r.Route("/stock", func(r chi.Router) {
			r.Get("/", controllers.GetInventory(stockService, logg))
			r.Route("/transactions", func(r chi.Router) {
				r.Get("/", controllers.ListStockTransactions(stockService, logg))
				r.Post("/", controllers.RecordStockTransaction(stockService, logg))
			})
			r.Get("/{productId}", controllers.GetProductStock(stockService, logg))
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/valuation", controllers.InventoryValuationReport(reportService, logg))
			r.Get("/movement", controllers.StockMovementReport(reportService, logg))
			r.Get("/low-stock", controllers.LowStockReport(reportService, logg))
		})
	})

	return r
}
