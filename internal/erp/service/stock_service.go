package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ferroline/ferro-erp/internal/erp/entity"
	"github.com/ferroline/ferro-erp/internal/erp/repository"
	"go.uber.org/zap"
)

// Stock status tiers. Thresholds are fixed business constants, not
// per-material configuration.
const (
	StockTierCritical = "CRITICAL"
	StockTierLow      = "LOW"
	StockTierAdequate = "ADEQUATE"

	lowStockThresholdKG = 100.0
)

// MaterialStock the reconciled per-material stock figure. Both ledger
// summands are exposed so callers can see when the two ledgers diverge.
type MaterialStock struct {
	MaterialID     string  `json:"material_id"`
	SKU            string  `json:"sku"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	Unit           string  `json:"unit"`
	InventoryStock float64 `json:"inventory_stock"`
	BatchStock     float64 `json:"batch_stock"`
	CurrentStock   float64 `json:"current_stock"`
	OrderedQty     float64 `json:"ordered_qty"`
	TotalExpected  float64 `json:"total_expected"`
	AvgUnitCost    float64 `json:"avg_unit_cost"`
	Tier           string  `json:"tier"`
}

// StockTierFor classifies a current-stock figure.
func StockTierFor(currentStock float64) string {
	switch {
	case currentStock <= 0:
		return StockTierCritical
	case currentStock < lowStockThresholdKG:
		return StockTierLow
	default:
		return StockTierAdequate
	}
}

// ComputeMaterialStock reconciles the two stock ledgers for one material.
// The inventory ledger tracks location-scoped quantities, the batch ledger
// tracks per-lot available weight; some materials live in only one of them,
// so the combined figure is the max of the two sums rather than their join.
func ComputeMaterialStock(m entity.Material, invRows []entity.Inventory, batches []entity.Batch, poItems []entity.PurchaseOrderItem) MaterialStock {
	var inventoryStock, totalQty, totalValue float64
	for i := range invRows {
		inventoryStock += invRows[i].Available()
		totalQty += invRows[i].Quantity
		totalValue += invRows[i].Quantity * invRows[i].UnitCost
	}

	var batchStock float64
	for i := range batches {
		if batches[i].Status == entity.BatchStatusActive {
			batchStock += batches[i].AvailableWeightKG
		}
	}

	currentStock := inventoryStock
	if batchStock > currentStock {
		currentStock = batchStock
	}

	var orderedQty float64
	for i := range poItems {
		orderedQty += poItems[i].QuantityKG
	}

	avgCost := 0.0
	if totalQty > 0 {
		avgCost = totalValue / totalQty
	}

	return MaterialStock{
		MaterialID:     m.ID,
		SKU:            m.SKU,
		Name:           m.Name,
		Category:       m.Category,
		Unit:           m.Unit,
		InventoryStock: inventoryStock,
		BatchStock:     batchStock,
		CurrentStock:   currentStock,
		OrderedQty:     orderedQty,
		TotalExpected:  currentStock + orderedQty,
		AvgUnitCost:    avgCost,
		Tier:           StockTierFor(currentStock),
	}
}

// SortMaterialStocks in-place sort of an aggregation result by field.
func SortMaterialStocks(stocks []MaterialStock, sortBy string, desc bool) {
	less := func(a, b MaterialStock) bool {
		switch sortBy {
		case "name":
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case "current_stock":
			return a.CurrentStock < b.CurrentStock
		case "total_expected":
			return a.TotalExpected < b.TotalExpected
		case "avg_unit_cost":
			return a.AvgUnitCost < b.AvgUnitCost
		default:
			return a.SKU < b.SKU
		}
	}
	sort.SliceStable(stocks, func(i, j int) bool {
		if desc {
			return less(stocks[j], stocks[i])
		}
		return less(stocks[i], stocks[j])
	})
}

type StockService struct {
	materialRepo  *repository.MaterialRepository
	inventoryRepo *repository.InventoryRepository
	batchRepo     *repository.BatchRepository
	purchaseRepo  *repository.PurchaseRepository
	notifier      Notifier
	logger        *zap.Logger
}

func NewStockService(mr *repository.MaterialRepository, ir *repository.InventoryRepository, br *repository.BatchRepository, pr *repository.PurchaseRepository, notifier Notifier, logger *zap.Logger) *StockService {
	return &StockService{
		materialRepo:  mr,
		inventoryRepo: ir,
		batchRepo:     br,
		purchaseRepo:  pr,
		notifier:      notifier,
		logger:        logger,
	}
}

type StockSummaryParams struct {
	Category string
	Keyword  string
	SortBy   string
	Desc     bool
}

// Summary aggregates current stock for every active material matching the
// filter. A batch-ledger fetch failure degrades to inventory-only figures
// (logged, batches treated as empty); inventory or purchase fetch failures
// abort the whole computation.
func (s *StockService) Summary(params StockSummaryParams) ([]MaterialStock, error) {
	materials, err := s.materialRepo.ListActive(params.Category, params.Keyword)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}
	if len(materials) == 0 {
		return []MaterialStock{}, nil
	}

	ids := make([]string, len(materials))
	for i := range materials {
		ids[i] = materials[i].ID
	}

	invRows, err := s.inventoryRepo.ByMaterials(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch inventory ledger: %w", err)
	}

	batches, err := s.batchRepo.ActiveByMaterials(ids)
	if err != nil {
		s.logger.Warn("batch ledger unavailable, degrading to inventory-only stock",
			zap.Error(err))
		batches = nil
	}

	poItems, err := s.purchaseRepo.PendingItemsByMaterials(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending purchase items: %w", err)
	}

	invByMaterial := make(map[string][]entity.Inventory)
	for _, row := range invRows {
		invByMaterial[row.MaterialID] = append(invByMaterial[row.MaterialID], row)
	}
	batchByMaterial := make(map[string][]entity.Batch)
	for _, b := range batches {
		batchByMaterial[b.MaterialID] = append(batchByMaterial[b.MaterialID], b)
	}
	poByMaterial := make(map[string][]entity.PurchaseOrderItem)
	for _, item := range poItems {
		poByMaterial[item.MaterialID] = append(poByMaterial[item.MaterialID], item)
	}

	stocks := make([]MaterialStock, 0, len(materials))
	for _, m := range materials {
		stocks = append(stocks, ComputeMaterialStock(
			m, invByMaterial[m.ID], batchByMaterial[m.ID], poByMaterial[m.ID]))
	}

	SortMaterialStocks(stocks, params.SortBy, params.Desc)
	return stocks, nil
}

// AlertCritical sends a notification listing materials at critical stock.
// No-op when no notifier is configured or nothing is critical.
func (s *StockService) AlertCritical() (int, error) {
	stocks, err := s.Summary(StockSummaryParams{})
	if err != nil {
		return 0, err
	}
	var critical []string
	for _, st := range stocks {
		if st.Tier == StockTierCritical {
			critical = append(critical, fmt.Sprintf("%s %s", st.SKU, st.Name))
		}
	}
	if len(critical) == 0 || s.notifier == nil {
		return len(critical), nil
	}
	msg := fmt.Sprintf("Stock alert: %d material(s) out of stock:\n%s",
		len(critical), strings.Join(critical, "\n"))
	if err := s.notifier.Notify(msg); err != nil {
		return len(critical), fmt.Errorf("failed to send stock alert: %w", err)
	}
	return len(critical), nil
}
