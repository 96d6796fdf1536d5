package service

import (
	"math"
	"testing"
	"time"

	"github.com/ferroline/ferro-erp/internal/erp/entity"
	"github.com/ferroline/ferro-erp/internal/erp/repository"
	"github.com/ferroline/ferro-erp/internal/testutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestStockTierFor(t *testing.T) {
	cases := []struct {
		stock float64
		want  string
	}{
		{-5, StockTierCritical},
		{0, StockTierCritical},
		{0.001, StockTierLow},
		{99.999, StockTierLow},
		{100, StockTierAdequate},
		{5000, StockTierAdequate},
	}
	for _, tc := range cases {
		if got := StockTierFor(tc.stock); got != tc.want {
			t.Errorf("StockTierFor(%v) = %s, want %s", tc.stock, got, tc.want)
		}
	}
}

func TestComputeMaterialStockEmpty(t *testing.T) {
	m := entity.Material{ID: "m1", SKU: "SH-001", Name: "HR Sheet 2mm", Category: entity.CategorySheet}
	st := ComputeMaterialStock(m, nil, nil, nil)

	if st.CurrentStock != 0 {
		t.Errorf("current stock = %v, want 0", st.CurrentStock)
	}
	if st.Tier != StockTierCritical {
		t.Errorf("tier = %s, want %s", st.Tier, StockTierCritical)
	}
	if st.AvgUnitCost != 0 {
		t.Errorf("avg unit cost = %v, want 0", st.AvgUnitCost)
	}
	if st.TotalExpected != 0 {
		t.Errorf("total expected = %v, want 0", st.TotalExpected)
	}
}

func TestComputeMaterialStockTakesLargerLedger(t *testing.T) {
	m := entity.Material{ID: "m1", SKU: "SH-001"}
	inv := []entity.Inventory{
		{MaterialID: "m1", Quantity: 25, UnitCost: 50},
		{MaterialID: "m1", Quantity: 15, UnitCost: 60},
	}
	batches := []entity.Batch{
		{MaterialID: "m1", Status: entity.BatchStatusActive, AvailableWeightKG: 60},
		{MaterialID: "m1", Status: entity.BatchStatusDepleted, AvailableWeightKG: 500},
	}

	st := ComputeMaterialStock(m, inv, batches, nil)

	if !floatEquals(st.InventoryStock, 40) {
		t.Errorf("inventory stock = %v, want 40", st.InventoryStock)
	}
	if !floatEquals(st.BatchStock, 60) {
		t.Errorf("batch stock = %v, want 60 (depleted batches excluded)", st.BatchStock)
	}
	if !floatEquals(st.CurrentStock, 60) {
		t.Errorf("current stock = %v, want 60", st.CurrentStock)
	}
	if st.Tier != StockTierLow {
		t.Errorf("tier = %s, want %s", st.Tier, StockTierLow)
	}
}

func TestComputeMaterialStockInventoryWins(t *testing.T) {
	m := entity.Material{ID: "m1"}
	inv := []entity.Inventory{{MaterialID: "m1", Quantity: 200}}
	batches := []entity.Batch{
		{MaterialID: "m1", Status: entity.BatchStatusActive, AvailableWeightKG: 120},
	}

	st := ComputeMaterialStock(m, inv, batches, nil)

	if !floatEquals(st.CurrentStock, 200) {
		t.Errorf("current stock = %v, want 200", st.CurrentStock)
	}
	if st.Tier != StockTierAdequate {
		t.Errorf("tier = %s, want %s", st.Tier, StockTierAdequate)
	}
}

func TestComputeMaterialStockReservedReducesAvailable(t *testing.T) {
	m := entity.Material{ID: "m1"}
	inv := []entity.Inventory{{MaterialID: "m1", Quantity: 100, ReservedQty: 30}}

	st := ComputeMaterialStock(m, inv, nil, nil)

	if !floatEquals(st.InventoryStock, 70) {
		t.Errorf("inventory stock = %v, want 70", st.InventoryStock)
	}
}

func TestComputeMaterialStockExplicitAvailableColumn(t *testing.T) {
	m := entity.Material{ID: "m1"}
	avail := 55.0
	inv := []entity.Inventory{{MaterialID: "m1", Quantity: 100, ReservedQty: 30, AvailableQty: &avail}}

	st := ComputeMaterialStock(m, inv, nil, nil)

	if !floatEquals(st.InventoryStock, 55) {
		t.Errorf("inventory stock = %v, want explicit 55", st.InventoryStock)
	}
}

func TestComputeMaterialStockWeightedAvgCost(t *testing.T) {
	m := entity.Material{ID: "m1"}
	inv := []entity.Inventory{
		{MaterialID: "m1", Quantity: 10, UnitCost: 50},
		{MaterialID: "m1", Quantity: 30, UnitCost: 70},
	}

	st := ComputeMaterialStock(m, inv, nil, nil)

	// (10*50 + 30*70) / 40 = 65
	if !floatEquals(st.AvgUnitCost, 65) {
		t.Errorf("avg unit cost = %v, want 65", st.AvgUnitCost)
	}
}

func TestComputeMaterialStockZeroQuantityNoCostDivision(t *testing.T) {
	m := entity.Material{ID: "m1"}
	inv := []entity.Inventory{{MaterialID: "m1", Quantity: 0, UnitCost: 80}}

	st := ComputeMaterialStock(m, inv, nil, nil)

	if st.AvgUnitCost != 0 {
		t.Errorf("avg unit cost = %v, want 0 when total quantity is zero", st.AvgUnitCost)
	}
	if math.IsNaN(st.AvgUnitCost) || math.IsInf(st.AvgUnitCost, 0) {
		t.Errorf("avg unit cost = %v, must be finite", st.AvgUnitCost)
	}
}

func TestComputeMaterialStockTotalExpected(t *testing.T) {
	m := entity.Material{ID: "m1"}
	inv := []entity.Inventory{{MaterialID: "m1", Quantity: 40}}
	poItems := []entity.PurchaseOrderItem{
		{MaterialID: "m1", QuantityKG: 100},
		{MaterialID: "m1", QuantityKG: 60},
	}

	st := ComputeMaterialStock(m, inv, nil, poItems)

	if !floatEquals(st.OrderedQty, 160) {
		t.Errorf("ordered qty = %v, want 160", st.OrderedQty)
	}
	if !floatEquals(st.TotalExpected, 200) {
		t.Errorf("total expected = %v, want 200", st.TotalExpected)
	}
}

func TestSortMaterialStocks(t *testing.T) {
	stocks := []MaterialStock{
		{SKU: "C", Name: "gamma", CurrentStock: 10},
		{SKU: "A", Name: "Beta", CurrentStock: 300},
		{SKU: "B", Name: "alpha", CurrentStock: 50},
	}

	SortMaterialStocks(stocks, "", false)
	if stocks[0].SKU != "A" || stocks[2].SKU != "C" {
		t.Errorf("default sort should order by SKU, got %s %s %s",
			stocks[0].SKU, stocks[1].SKU, stocks[2].SKU)
	}

	SortMaterialStocks(stocks, "current_stock", true)
	if !floatEquals(stocks[0].CurrentStock, 300) || !floatEquals(stocks[2].CurrentStock, 10) {
		t.Errorf("desc stock sort wrong: %v %v %v",
			stocks[0].CurrentStock, stocks[1].CurrentStock, stocks[2].CurrentStock)
	}

	SortMaterialStocks(stocks, "name", false)
	if stocks[0].Name != "alpha" || stocks[1].Name != "Beta" {
		t.Errorf("name sort should be case-insensitive, got %s %s %s",
			stocks[0].Name, stocks[1].Name, stocks[2].Name)
	}
}

func setupStockService(t *testing.T) (*StockService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewStockService(
		repository.NewMaterialRepository(db),
		repository.NewInventoryRepository(db),
		repository.NewBatchRepository(db),
		repository.NewPurchaseRepository(db),
		noopNotifier{},
		zap.NewNop(),
	), db
}

func seedStockLedgers(t *testing.T, db *gorm.DB) *entity.Material {
	t.Helper()
	m := testutil.SeedMaterial(t, db, "aaaaaaaa-1111-0000-0000-000000000001", "SH-CR-2MM", "CR Sheet 2mm", entity.CategorySheet)
	loc := testutil.SeedLocation(t, db, "bbbbbbbb-1111-0000-0000-000000000001", "Main Yard")

	inv := &entity.Inventory{
		ID:         "eeeeeeee-1111-0000-0000-000000000001",
		MaterialID: m.ID,
		LocationID: loc.ID,
		Quantity:   40,
		UnitCost:   55,
	}
	if err := db.Create(inv).Error; err != nil {
		t.Fatalf("seed inventory: %v", err)
	}

	now := time.Now()
	batch := &entity.Batch{
		ID:                "dddddddd-1111-0000-0000-000000000001",
		BatchCode:         "B20250201-00001",
		MaterialID:        m.ID,
		LocationID:        loc.ID,
		TotalWeightKG:     60,
		AvailableWeightKG: 60,
		QualityGrade:      entity.QualityGradeA,
		ComplianceStatus:  entity.ComplianceVerified,
		ReceivedDate:      &now,
		Status:            entity.BatchStatusActive,
	}
	if err := db.Create(batch).Error; err != nil {
		t.Fatalf("seed batch: %v", err)
	}
	return m
}

func TestSummaryDegradesWhenBatchLedgerUnavailable(t *testing.T) {
	svc, db := setupStockService(t)
	seedStockLedgers(t, db)

	stocks, err := svc.Summary(StockSummaryParams{})
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if len(stocks) != 1 || !floatEquals(stocks[0].CurrentStock, 60) {
		t.Fatalf("expected batch ledger to win with 60, got %+v", stocks)
	}

	if err := db.Exec("DROP TABLE batches").Error; err != nil {
		t.Fatalf("drop batches: %v", err)
	}

	stocks, err = svc.Summary(StockSummaryParams{})
	if err != nil {
		t.Fatalf("Summary should tolerate a missing batch ledger: %v", err)
	}
	if len(stocks) != 1 {
		t.Fatalf("expected 1 row, got %d", len(stocks))
	}
	st := stocks[0]
	if !floatEquals(st.BatchStock, 0) {
		t.Errorf("batch stock = %v, want 0 when the ledger is unreachable", st.BatchStock)
	}
	if !floatEquals(st.InventoryStock, 40) || !floatEquals(st.CurrentStock, 40) {
		t.Errorf("inventory figures lost: inv=%v current=%v, want 40/40",
			st.InventoryStock, st.CurrentStock)
	}
	if st.Tier != StockTierLow {
		t.Errorf("tier = %s, want LOW", st.Tier)
	}
}

func TestSummaryAbortsWhenInventoryLedgerUnavailable(t *testing.T) {
	svc, db := setupStockService(t)
	seedStockLedgers(t, db)

	if err := db.Exec("DROP TABLE inventory").Error; err != nil {
		t.Fatalf("drop inventory: %v", err)
	}

	if _, err := svc.Summary(StockSummaryParams{}); err == nil {
		t.Fatal("Summary succeeded without the inventory ledger")
	}
}
