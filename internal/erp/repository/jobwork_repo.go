package repository

import (
	"github.com/ferroline/ferro-erp/internal/erp/entity"
	"gorm.io/gorm"
)

type JobWorkRepository struct {
	db *gorm.DB
}

func NewJobWorkRepository(db *gorm.DB) *JobWorkRepository {
	return &JobWorkRepository{db: db}
}

func (r *JobWorkRepository) Create(jw *entity.JobWorkTransformation) error {
	return r.db.Create(jw).Error
}

func (r *JobWorkRepository) GetByID(id string) (*entity.JobWorkTransformation, error) {
	var jw entity.JobWorkTransformation
	err := r.db.Preload("Contractor").Preload("InputBatch").Preload("OutputBatch").
		Preload("InputMaterial").Preload("OutputMaterial").
		Where("id = ?", id).First(&jw).Error
	if err != nil {
		return nil, err
	}
	return &jw, nil
}

func (r *JobWorkRepository) Update(jw *entity.JobWorkTransformation) error {
	return r.db.Save(jw).Error
}

type JobWorkListParams struct {
	Status       string
	ContractorID string
	MaterialID   string
	Page         int
	Size         int
}

func (r *JobWorkRepository) List(params JobWorkListParams) ([]entity.JobWorkTransformation, int64, error) {
	query := r.db.Model(&entity.JobWorkTransformation{})
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.ContractorID != "" {
		query = query.Where("contractor_id = ?", params.ContractorID)
	}
	if params.MaterialID != "" {
		query = query.Where("input_material_id = ? OR output_material_id = ?",
			params.MaterialID, params.MaterialID)
	}
	var total int64
	query.Count(&total)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var jws []entity.JobWorkTransformation
	err := query.Preload("Contractor").Preload("InputBatch").Preload("OutputMaterial").
		Order("sent_date DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&jws).Error
	return jws, total, err
}

// DB returns the underlying handle for transactional flows.
func (r *JobWorkRepository) DB() *gorm.DB {
	return r.db
}
