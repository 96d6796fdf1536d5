package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ferroline/ferro-erp/internal/erp/entity"
	"github.com/ferroline/ferro-erp/internal/erp/repository"
	"github.com/google/uuid"
)

type BatchService struct {
	batchRepo   *repository.BatchRepository
	codeService *BatchCodeService
}

func NewBatchService(br *repository.BatchRepository, cs *BatchCodeService) *BatchService {
	return &BatchService{batchRepo: br, codeService: cs}
}

func (s *BatchService) List(params repository.BatchListParams) ([]entity.Batch, int64, error) {
	return s.batchRepo.List(params)
}

func (s *BatchService) Get(id string) (*entity.Batch, error) {
	return s.batchRepo.GetByID(id)
}

type CreateBatchRequest struct {
	BatchCode     string  `json:"batch_code"` // generated when empty
	MaterialID    string  `json:"material_id" binding:"required"`
	LocationID    string  `json:"location_id"`
	TotalWeightKG float64 `json:"total_weight_kg" binding:"required,gt=0"`
	QualityGrade  string  `json:"quality_grade"`
	Make          string  `json:"make"`
	HeatNumber    string  `json:"heat_number"`
	SupplierID    *string `json:"supplier_id"`
	ReceivedDate  string  `json:"received_date"` // YYYY-MM-DD
	Notes         string  `json:"notes"`
}

// Create registers a goods-receipt batch. The code check here is advisory;
// the unique index still rejects a race between check and insert.
func (s *BatchService) Create(ctx context.Context, req CreateBatchRequest, userID string) (*entity.Batch, error) {
	code := req.BatchCode
	if code == "" {
		generated, err := s.batchRepo.NextCode()
		if err != nil {
			return nil, fmt.Errorf("failed to generate batch code: %w", err)
		}
		code = generated
	} else {
		check, err := s.codeService.Check(ctx, code)
		if err != nil {
			return nil, err
		}
		if check.Exists {
			return nil, fmt.Errorf("batch code %s already exists", code)
		}
	}

	grade := req.QualityGrade
	if grade == "" {
		grade = entity.QualityGradeA
	}

	b := &entity.Batch{
		ID:                uuid.New().String(),
		BatchCode:         code,
		MaterialID:        req.MaterialID,
		LocationID:        req.LocationID,
		TotalWeightKG:     req.TotalWeightKG,
		AvailableWeightKG: req.TotalWeightKG,
		QualityGrade:      grade,
		ComplianceStatus:  entity.CompliancePending,
		Make:              req.Make,
		HeatNumber:        req.HeatNumber,
		SupplierID:        req.SupplierID,
		Status:            entity.BatchStatusActive,
		Notes:             req.Notes,
		CreatedBy:         userID,
	}
	if req.ReceivedDate != "" {
		if t, err := time.Parse("2006-01-02", req.ReceivedDate); err == nil {
			b.ReceivedDate = &t
		}
	} else {
		now := time.Now()
		b.ReceivedDate = &now
	}

	if err := s.batchRepo.Create(b); err != nil {
		return nil, fmt.Errorf("failed to create batch: %w", err)
	}
	return b, nil
}

// UpdateStatus manual lifecycle moves: quarantine a suspect lot, release it,
// or close an exhausted one.
func (s *BatchService) UpdateStatus(id, status string) error {
	switch status {
	case entity.BatchStatusActive, entity.BatchStatusDepleted, entity.BatchStatusQuarantine:
	default:
		return fmt.Errorf("unknown batch status %s", status)
	}
	b, err := s.batchRepo.GetByID(id)
	if err != nil {
		return fmt.Errorf("batch not found: %w", err)
	}
	b.Status = status
	return s.batchRepo.Update(b)
}

// UpdateCompliance records the mill-certificate verification outcome.
func (s *BatchService) UpdateCompliance(id, status string) error {
	switch status {
	case entity.CompliancePending, entity.ComplianceVerified, entity.ComplianceFailed:
	default:
		return fmt.Errorf("unknown compliance status %s", status)
	}
	b, err := s.batchRepo.GetByID(id)
	if err != nil {
		return fmt.Errorf("batch not found: %w", err)
	}
	b.ComplianceStatus = status
	return s.batchRepo.Update(b)
}
