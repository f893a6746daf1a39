package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/stockyardhq/warehouse-backend/pkg/errors"
	"github.com/stockyardhq/warehouse-backend/pkg/logger"
	"github.com/stockyardhq/warehouse-backend/pkg/metrics"
	"github.com/stockyardhq/warehouse-backend/pkg/redis"
)

const (
	reportValuation = "valuation"
	reportMovement  = "movement"
	reportLowStock  = "low_stock"

	movementWindowDays = 30
	dayFormat          = "2006-01-02"
)

// Service runs the three reporting queries.
type Service interface {
	InventoryValuation(ctx context.Context) (*ValuationReportDTO, error)
	StockMovement(ctx context.Context) ([]MovementItemDTO, error)
	LowStock(ctx context.Context) ([]LowStockItemDTO, error)
}

type service struct {
	repo     *Repository
	logg     *logger.Logger
	metrics  *metrics.LedgerMetrics
	cache    *redis.Client
	cacheTTL time.Duration
	now      func() time.Time
}

// Option adjusts service construction.
type Option func(*service)

// WithCache enables the report cache. A nil client leaves caching off.
func WithCache(cache *redis.Client, ttl time.Duration) Option {
	return func(s *service) {
		s.cache = cache
		s.cacheTTL = ttl
	}
}

// WithClock overrides the movement-window clock. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService constructs a report service. Metrics may be nil.
func NewService(repo *Repository, logg *logger.Logger, ledgerMetrics *metrics.LedgerMetrics, opts ...Option) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("report repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	s := &service{
		repo:    repo,
		logg:    logg,
		metrics: ledgerMetrics,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// InventoryValuation values every product at quantity times unit price,
// ordered by total value descending.
func (s *service) InventoryValuation(ctx context.Context) (*ValuationReportDTO, error) {
	var report ValuationReportDTO
	if s.cacheGet(ctx, reportValuation, &report) {
		return &report, nil
	}

	start := s.now()
	rows, err := s.repo.ValuationRows(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "running valuation report")
	}

	items := make([]ValuationItemDTO, 0, len(rows))
	grandTotal := decimal.Zero
	for _, row := range rows {
		total := row.UnitPrice.Mul(decimal.NewFromInt(int64(row.Quantity)))
		status := StatusAdequate
		if row.Quantity <= row.MinStockLevel {
			status = StatusLowStock
		}
		items = append(items, ValuationItemDTO{
			ProductID:     row.ProductID,
			Code:          row.Code,
			Name:          row.Name,
			Category:      row.Category,
			Quantity:      row.Quantity,
			MinStockLevel: row.MinStockLevel,
			UnitPrice:     row.UnitPrice,
			TotalValue:    total,
			StockStatus:   status,
		})
		grandTotal = grandTotal.Add(total)
	}
	sort.SliceStable(items, func(i, j int) bool {
		if cmp := items[i].TotalValue.Cmp(items[j].TotalValue); cmp != 0 {
			return cmp > 0
		}
		return items[i].Name < items[j].Name
	})

	report = ValuationReportDTO{Items: items, TotalValue: grandTotal}
	s.metrics.ObserveReportDuration(reportValuation, s.now().Sub(start))
	s.cacheSet(ctx, reportValuation, report)
	return &report, nil
}

// StockMovement aggregates ledger entries per calendar day and product over
// the trailing window, ordered by day descending then product name.
func (s *service) StockMovement(ctx context.Context) ([]MovementItemDTO, error) {
	var items []MovementItemDTO
	if s.cacheGet(ctx, reportMovement, &items) {
		return items, nil
	}

	start := s.now()
	cutoff := midnight(s.now()).AddDate(0, 0, -movementWindowDays)
	rows, err := s.repo.MovementRows(ctx, cutoff)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "running movement report")
	}

	type bucketKey struct {
		day       string
		productID uuid.UUID
	}
	buckets := make(map[bucketKey]*MovementItemDTO)
	for _, row := range rows {
		key := bucketKey{day: row.CreatedAt.Format(dayFormat), productID: row.ProductID}
		bucket, ok := buckets[key]
		if !ok {
			bucket = &MovementItemDTO{
				Day:       key.day,
				ProductID: row.ProductID,
				Code:      row.Code,
				Name:      row.Name,
			}
			buckets[key] = bucket
		}
		if row.Type == "OUT" {
			bucket.StockOut += row.Quantity
		} else {
			bucket.StockIn += row.Quantity
		}
	}

	items = make([]MovementItemDTO, 0, len(buckets))
	for _, bucket := range buckets {
		bucket.NetMovement = bucket.StockIn - bucket.StockOut
		items = append(items, *bucket)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Day != items[j].Day {
			return items[i].Day > items[j].Day
		}
		return items[i].Name < items[j].Name
	})

	s.metrics.ObserveReportDuration(reportMovement, s.now().Sub(start))
	s.cacheSet(ctx, reportMovement, items)
	return items, nil
}

// LowStock lists products at or below their reorder threshold with the
// shortfall and its replenishment cost, largest shortfall first.
func (s *service) LowStock(ctx context.Context) ([]LowStockItemDTO, error) {
	var items []LowStockItemDTO
	if s.cacheGet(ctx, reportLowStock, &items) {
		return items, nil
	}

	start := s.now()
	rows, err := s.repo.LowStockRows(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "running low-stock report")
	}

	items = make([]LowStockItemDTO, 0, len(rows))
	for _, row := range rows {
		shortfall := row.MinStockLevel - row.Quantity
		items = append(items, LowStockItemDTO{
			ProductID:         row.ProductID,
			Code:              row.Code,
			Name:              row.Name,
			Category:          row.Category,
			Quantity:          row.Quantity,
			MinStockLevel:     row.MinStockLevel,
			UnitPrice:         row.UnitPrice,
			ShortfallQuantity: shortfall,
			ReorderValue:      row.UnitPrice.Mul(decimal.NewFromInt(int64(shortfall))),
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].ShortfallQuantity != items[j].ShortfallQuantity {
			return items[i].ShortfallQuantity > items[j].ShortfallQuantity
		}
		return items[i].Name < items[j].Name
	})

	s.metrics.ObserveReportDuration(reportLowStock, s.now().Sub(start))
	s.cacheSet(ctx, reportLowStock, items)
	return items, nil
}

// cacheGet loads a cached report payload into out. Any cache failure reads
// as a miss; reports always fall through to SQL.
func (s *service) cacheGet(ctx context.Context, name string, out any) bool {
	if s.cache == nil {
		return false
	}
	payload, err := s.cache.Get(ctx, s.cache.ReportKey(name))
	if err != nil {
		if err != redis.ErrCacheMiss {
			s.logg.Warn(ctx, "report cache read failed")
		}
		return false
	}
	if err := json.Unmarshal([]byte(payload), out); err != nil {
		s.logg.Warn(ctx, "report cache payload corrupt")
		return false
	}
	return true
}

func (s *service) cacheSet(ctx context.Context, name string, value any) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.ReportKey(name), string(payload), s.cacheTTL); err != nil {
		s.logg.Warn(ctx, "report cache write failed")
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
