package repository

import (
	"fmt"
	"time"

	"github.com/ferroline/ferro-erp/internal/erp/entity"
	"gorm.io/gorm"
)

type BatchRepository struct {
	db *gorm.DB
}

func NewBatchRepository(db *gorm.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

func (r *BatchRepository) Create(b *entity.Batch) error {
	return r.db.Create(b).Error
}

func (r *BatchRepository) GetByID(id string) (*entity.Batch, error) {
	var b entity.Batch
	err := r.db.Preload("Material").
		Where("id = ? AND deleted_at IS NULL", id).First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BatchRepository) Update(b *entity.Batch) error {
	return r.db.Save(b).Error
}

// CountByCode exact-match existence count for the code validator.
func (r *BatchRepository) CountByCode(code string) (int64, error) {
	var count int64
	err := r.db.Model(&entity.Batch{}).
		Where("batch_code = ? AND deleted_at IS NULL", code).
		Count(&count).Error
	return count, err
}

// NextCode draws the server-side sequence and formats a batch code.
func (r *BatchRepository) NextCode() (string, error) {
	var seq int64
	if err := r.db.Raw("SELECT nextval('batch_code_seq')").Scan(&seq).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("B%s-%05d", time.Now().Format("20060102"), seq), nil
}

// ActiveByMaterials active batches for a set of materials, oldest received
// first. FIFO order is advisory: allocation suggestions surface the oldest
// lots but nothing forces their consumption.
func (r *BatchRepository) ActiveByMaterials(materialIDs []string) ([]entity.Batch, error) {
	var batches []entity.Batch
	err := r.db.Where("material_id IN ? AND status = ? AND deleted_at IS NULL",
		materialIDs, entity.BatchStatusActive).
		Order("received_date ASC NULLS LAST, created_at ASC").
		Find(&batches).Error
	return batches, err
}

type BatchListParams struct {
	MaterialID   string
	SupplierID   string
	Status       string
	QualityGrade string
	Keyword      string
	Page         int
	Size         int
}

func (r *BatchRepository) List(params BatchListParams) ([]entity.Batch, int64, error) {
	query := r.db.Model(&entity.Batch{}).Where("deleted_at IS NULL")
	if params.MaterialID != "" {
		query = query.Where("material_id = ?", params.MaterialID)
	}
	if params.SupplierID != "" {
		query = query.Where("supplier_id = ?", params.SupplierID)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.QualityGrade != "" {
		query = query.Where("quality_grade = ?", params.QualityGrade)
	}
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("batch_code ILIKE ? OR heat_number ILIKE ? OR make ILIKE ?", kw, kw, kw)
	}
	var total int64
	query.Count(&total)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var batches []entity.Batch
	err := query.Preload("Material").
		Order("received_date ASC NULLS LAST, created_at ASC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&batches).Error
	return batches, total, err
}

// TotalAvailableWeight sum of available weight over active batches of a material.
func (r *BatchRepository) TotalAvailableWeight(materialID string) (float64, error) {
	var result struct{ Total float64 }
	err := r.db.Raw(`
		SELECT COALESCE(SUM(available_weight_kg), 0) AS total
		FROM batches
		WHERE material_id = ? AND status = ? AND deleted_at IS NULL
	`, materialID, entity.BatchStatusActive).Scan(&result).Error
	return result.Total, err
}

// DB returns the underlying handle for transactional flows.
func (r *BatchRepository) DB() *gorm.DB {
	return r.db
}
