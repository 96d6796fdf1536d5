package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ferroline/ferro-erp/internal/erp/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	kpiCacheKey = "kpi:dashboard"
	kpiCacheTTL = 5 * time.Minute
)

// DashboardKPIs the headline numbers shown on the dashboard
type DashboardKPIs struct {
	TotalMaterials        int     `json:"total_materials"`
	CriticalCount         int     `json:"critical_count"`
	LowCount              int     `json:"low_count"`
	AdequateCount         int     `json:"adequate_count"`
	OpenPurchaseOrders    int64   `json:"open_purchase_orders"`
	OpenSalesOrders       int64   `json:"open_sales_orders"`
	OutstandingPayable    float64 `json:"outstanding_payable"`
	OutstandingReceivable float64 `json:"outstanding_receivable"`
	MonthToDateSales      float64 `json:"month_to_date_sales"`
	GeneratedAt           string  `json:"generated_at"`
}

type KPIService struct {
	stockService *StockService
	purchaseRepo *repository.PurchaseRepository
	salesRepo    *repository.SalesRepository
	redisClient  *redis.Client
	logger       *zap.Logger
}

func NewKPIService(ss *StockService, pr *repository.PurchaseRepository, sr *repository.SalesRepository, rc *redis.Client, logger *zap.Logger) *KPIService {
	return &KPIService{
		stockService: ss,
		purchaseRepo: pr,
		salesRepo:    sr,
		redisClient:  rc,
		logger:       logger,
	}
}

// Dashboard serves the cached snapshot when fresh enough, recomputing
// otherwise. Cache failures degrade to a live computation.
func (s *KPIService) Dashboard(ctx context.Context) (*DashboardKPIs, error) {
	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, kpiCacheKey).Result()
		if err == nil {
			var kpis DashboardKPIs
			if err := json.Unmarshal([]byte(cached), &kpis); err == nil {
				return &kpis, nil
			}
		} else if err != redis.Nil {
			s.logger.Debug("kpi cache read failed", zap.Error(err))
		}
	}

	kpis, err := s.compute()
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil {
		if payload, err := json.Marshal(kpis); err == nil {
			if err := s.redisClient.Set(ctx, kpiCacheKey, payload, kpiCacheTTL).Err(); err != nil {
				s.logger.Debug("kpi cache write failed", zap.Error(err))
			}
		}
	}
	return kpis, nil
}

// Invalidate drops the cached snapshot so the next read recomputes.
func (s *KPIService) Invalidate(ctx context.Context) {
	if s.redisClient == nil {
		return
	}
	if err := s.redisClient.Del(ctx, kpiCacheKey).Err(); err != nil {
		s.logger.Debug("kpi cache invalidate failed", zap.Error(err))
	}
}

func (s *KPIService) compute() (*DashboardKPIs, error) {
	stocks, err := s.stockService.Summary(StockSummaryParams{})
	if err != nil {
		return nil, fmt.Errorf("failed to compute stock summary: %w", err)
	}

	kpis := &DashboardKPIs{
		TotalMaterials: len(stocks),
		GeneratedAt:    time.Now().Format(time.RFC3339),
	}
	for _, st := range stocks {
		switch st.Tier {
		case StockTierCritical:
			kpis.CriticalCount++
		case StockTierLow:
			kpis.LowCount++
		default:
			kpis.AdequateCount++
		}
	}

	if kpis.OpenPurchaseOrders, err = s.purchaseRepo.OpenPOCount(); err != nil {
		return nil, fmt.Errorf("failed to count open purchase orders: %w", err)
	}
	if kpis.OpenSalesOrders, err = s.salesRepo.OpenSOCount(); err != nil {
		return nil, fmt.Errorf("failed to count open sales orders: %w", err)
	}
	if kpis.OutstandingPayable, err = s.purchaseRepo.OutstandingPayableTotal(); err != nil {
		return nil, fmt.Errorf("failed to sum payables: %w", err)
	}
	if kpis.OutstandingReceivable, err = s.salesRepo.OutstandingReceivableTotal(); err != nil {
		return nil, fmt.Errorf("failed to sum receivables: %w", err)
	}

	monthStart := time.Date(time.Now().Year(), time.Now().Month(), 1, 0, 0, 0, 0, time.Local)
	if kpis.MonthToDateSales, err = s.salesRepo.SalesTotalSince(monthStart); err != nil {
		return nil, fmt.Errorf("failed to sum month-to-date sales: %w", err)
	}
	return kpis, nil
}
