package service

import (
	"fmt"
	"time"

	"github.com/ferroline/ferro-erp/internal/erp/entity"
	"github.com/ferroline/ferro-erp/internal/erp/repository"
	"github.com/google/uuid"
)

// InventoryService movements against the location-scoped inventory ledger.
// Batch-ledger movements happen in the purchase, sales and job-work flows;
// the stock aggregator reconciles the two.
type InventoryService struct {
	repo *repository.InventoryRepository
}

func NewInventoryService(repo *repository.InventoryRepository) *InventoryService {
	return &InventoryService{repo: repo}
}

func (s *InventoryService) List(params repository.InventoryListParams) ([]entity.Inventory, int64, error) {
	return s.repo.List(params)
}

func (s *InventoryService) ListTransactions(materialID string, page, size int) ([]entity.StockTransaction, int64, error) {
	return s.repo.ListTransactions(materialID, page, size)
}

func (s *InventoryService) ListLocations() ([]entity.Location, error) {
	return s.repo.ListLocations()
}

func (s *InventoryService) CreateLocation(l *entity.Location) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return s.repo.CreateLocation(l)
}

type InboundRequest struct {
	MaterialID string  `json:"material_id" binding:"required"`
	LocationID string  `json:"location_id" binding:"required"`
	QuantityKG float64 `json:"quantity_kg" binding:"required,gt=0"`
	UnitCost   float64 `json:"unit_cost"`
	Reference  string  `json:"reference"`
	Notes      string  `json:"notes"`
}

func (s *InventoryService) Inbound(req InboundRequest, userID string) error {
	now := time.Now()

	existing, err := s.repo.GetByMaterialAndLocation(req.MaterialID, req.LocationID)
	if err == nil && existing != nil {
		existing.Quantity += req.QuantityKG
		if req.UnitCost > 0 {
			existing.UnitCost = req.UnitCost
		}
		existing.LastMovedAt = &now
		if err := s.repo.Update(existing); err != nil {
			return fmt.Errorf("failed to update inventory: %w", err)
		}
	} else {
		inv := &entity.Inventory{
			ID:          uuid.New().String(),
			MaterialID:  req.MaterialID,
			LocationID:  req.LocationID,
			Quantity:    req.QuantityKG,
			UnitCost:    req.UnitCost,
			LastMovedAt: &now,
		}
		if err := s.repo.Upsert(inv); err != nil {
			return fmt.Errorf("failed to create inventory: %w", err)
		}
	}

	tx := &entity.StockTransaction{
		ID:            uuid.New().String(),
		MaterialID:    req.MaterialID,
		LocationID:    req.LocationID,
		Type:          entity.TxTypePurchaseIn,
		QuantityKG:    req.QuantityKG,
		UnitCost:      req.UnitCost,
		ReferenceType: "INVENTORY",
		ReferenceID:   req.Reference,
		Notes:         req.Notes,
		CreatedBy:     userID,
	}
	return s.repo.CreateTransaction(tx)
}

type OutboundRequest struct {
	MaterialID string  `json:"material_id" binding:"required"`
	LocationID string  `json:"location_id" binding:"required"`
	QuantityKG float64 `json:"quantity_kg" binding:"required,gt=0"`
	Reference  string  `json:"reference"`
	Notes      string  `json:"notes"`
}

func (s *InventoryService) Outbound(req OutboundRequest, userID string) error {
	now := time.Now()

	inv, err := s.repo.GetByMaterialAndLocation(req.MaterialID, req.LocationID)
	if err != nil {
		return fmt.Errorf("inventory record not found: %w", err)
	}
	if inv.Available() < req.QuantityKG {
		return fmt.Errorf("insufficient stock: %.3f kg requested, %.3f kg available",
			req.QuantityKG, inv.Available())
	}

	inv.Quantity -= req.QuantityKG
	inv.LastMovedAt = &now
	if err := s.repo.Update(inv); err != nil {
		return fmt.Errorf("failed to update inventory: %w", err)
	}

	tx := &entity.StockTransaction{
		ID:            uuid.New().String(),
		MaterialID:    req.MaterialID,
		LocationID:    req.LocationID,
		Type:          entity.TxTypeSalesOut,
		QuantityKG:    -req.QuantityKG,
		ReferenceType: "INVENTORY",
		ReferenceID:   req.Reference,
		Notes:         req.Notes,
		CreatedBy:     userID,
	}
	return s.repo.CreateTransaction(tx)
}

type AdjustRequest struct {
	MaterialID string  `json:"material_id" binding:"required"`
	LocationID string  `json:"location_id" binding:"required"`
	AdjustKG   float64 `json:"adjust_kg" binding:"required"`
	Reason     string  `json:"reason" binding:"required"`
}

func (s *InventoryService) Adjust(req AdjustRequest, userID string) error {
	now := time.Now()

	inv, err := s.repo.GetByMaterialAndLocation(req.MaterialID, req.LocationID)
	if err != nil {
		return fmt.Errorf("inventory record not found: %w", err)
	}

	inv.Quantity += req.AdjustKG
	inv.LastMovedAt = &now
	if inv.Available() < 0 {
		return fmt.Errorf("adjustment would leave available stock negative")
	}
	if err := s.repo.Update(inv); err != nil {
		return fmt.Errorf("failed to update inventory: %w", err)
	}

	tx := &entity.StockTransaction{
		ID:            uuid.New().String(),
		MaterialID:    req.MaterialID,
		LocationID:    req.LocationID,
		Type:          entity.TxTypeAdjust,
		QuantityKG:    req.AdjustKG,
		ReferenceType: "ADJUST",
		ReferenceID:   uuid.New().String(),
		Notes:         req.Reason,
		CreatedBy:     userID,
	}
	return s.repo.CreateTransaction(tx)
}
