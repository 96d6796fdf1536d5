package repository

import (
	"github.com/ferroline/ferro-erp/internal/erp/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// GetByMaterialAndLocation the inventory row for a material at a location.
func (r *InventoryRepository) GetByMaterialAndLocation(materialID, locationID string) (*entity.Inventory, error) {
	var inv entity.Inventory
	err := r.db.Where("material_id = ? AND location_id = ?", materialID, locationID).
		First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// ByMaterials all inventory rows for a set of materials.
func (r *InventoryRepository) ByMaterials(materialIDs []string) ([]entity.Inventory, error) {
	var rows []entity.Inventory
	err := r.db.Where("material_id IN ?", materialIDs).Find(&rows).Error
	return rows, err
}

// Upsert creates or accumulates an inventory row keyed by material+location.
func (r *InventoryRepository) Upsert(inv *entity.Inventory) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "material_id"}, {Name: "location_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "reserved_quantity", "available_quantity", "unit_cost", "last_moved_at", "updated_at"}),
	}).Create(inv).Error
}

func (r *InventoryRepository) Update(inv *entity.Inventory) error {
	return r.db.Save(inv).Error
}

func (r *InventoryRepository) CreateTransaction(tx *entity.StockTransaction) error {
	return r.db.Create(tx).Error
}

type InventoryListParams struct {
	MaterialID string
	LocationID string
	Page       int
	Size       int
}

func (r *InventoryRepository) List(params InventoryListParams) ([]entity.Inventory, int64, error) {
	query := r.db.Model(&entity.Inventory{})
	if params.MaterialID != "" {
		query = query.Where("material_id = ?", params.MaterialID)
	}
	if params.LocationID != "" {
		query = query.Where("location_id = ?", params.LocationID)
	}
	var total int64
	query.Count(&total)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var rows []entity.Inventory
	err := query.Preload("Material").Preload("Location").
		Order("updated_at DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&rows).Error
	return rows, total, err
}

func (r *InventoryRepository) ListTransactions(materialID string, page, size int) ([]entity.StockTransaction, int64, error) {
	query := r.db.Model(&entity.StockTransaction{})
	if materialID != "" {
		query = query.Where("material_id = ?", materialID)
	}
	var total int64
	query.Count(&total)
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	var txs []entity.StockTransaction
	err := query.Order("created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&txs).Error
	return txs, total, err
}

// Locations -------------------------------------------------------------

func (r *InventoryRepository) CreateLocation(l *entity.Location) error {
	return r.db.Create(l).Error
}

func (r *InventoryRepository) ListLocations() ([]entity.Location, error) {
	var locations []entity.Location
	err := r.db.Where("is_active = true").Order("code").Find(&locations).Error
	return locations, err
}

// DB returns the underlying handle for transactional flows.
func (r *InventoryRepository) DB() *gorm.DB {
	return r.db
}
