package repository

import (
	"github.com/ferroline/ferro-erp/internal/erp/entity"
	"gorm.io/gorm"
)

type MaterialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

func (r *MaterialRepository) Create(m *entity.Material) error {
	return r.db.Create(m).Error
}

func (r *MaterialRepository) GetByID(id string) (*entity.Material, error) {
	var m entity.Material
	err := r.db.Where("id = ?", id).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MaterialRepository) GetBySKU(sku string) (*entity.Material, error) {
	var m entity.Material
	err := r.db.Where("sku = ?", sku).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MaterialRepository) Update(m *entity.Material) error {
	return r.db.Save(m).Error
}

// Deactivate soft-disables a material. Materials are never hard-deleted.
func (r *MaterialRepository) Deactivate(id string) error {
	return r.db.Model(&entity.Material{}).Where("id = ?", id).
		Update("is_active", false).Error
}

type MaterialListParams struct {
	Category   string
	Grade      string
	Keyword    string
	ActiveOnly bool
	Page       int
	Size       int
}

func (r *MaterialRepository) List(params MaterialListParams) ([]entity.Material, int64, error) {
	query := r.db.Model(&entity.Material{})
	if params.ActiveOnly {
		query = query.Where("is_active = true")
	}
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.Grade != "" {
		query = query.Where("grade = ?", params.Grade)
	}
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("name ILIKE ? OR sku ILIKE ?", kw, kw)
	}
	var total int64
	query.Count(&total)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var materials []entity.Material
	err := query.Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&materials).Error
	return materials, total, err
}

// ListActive returns active materials matching the filter, unpaginated.
// Used by the stock aggregator to scope its ledger fetches.
func (r *MaterialRepository) ListActive(category, keyword string) ([]entity.Material, error) {
	query := r.db.Model(&entity.Material{}).Where("is_active = true")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if keyword != "" {
		kw := "%" + keyword + "%"
		query = query.Where("name ILIKE ? OR sku ILIKE ?", kw, kw)
	}
	var materials []entity.Material
	err := query.Order("sku").Find(&materials).Error
	return materials, err
}
