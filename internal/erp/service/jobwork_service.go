package service

import (
	"fmt"
	"time"

	"github.com/ferroline/ferro-erp/internal/erp/entity"
	"github.com/ferroline/ferro-erp/internal/erp/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobWorkService struct {
	jobWorkRepo *repository.JobWorkRepository
	batchRepo   *repository.BatchRepository
	partnerRepo *repository.PartnerRepository
	db          *gorm.DB
}

func NewJobWorkService(jr *repository.JobWorkRepository, br *repository.BatchRepository, pr *repository.PartnerRepository, db *gorm.DB) *JobWorkService {
	return &JobWorkService{jobWorkRepo: jr, batchRepo: br, partnerRepo: pr, db: db}
}

func (s *JobWorkService) List(params repository.JobWorkListParams) ([]entity.JobWorkTransformation, int64, error) {
	return s.jobWorkRepo.List(params)
}

func (s *JobWorkService) Get(id string) (*entity.JobWorkTransformation, error) {
	return s.jobWorkRepo.GetByID(id)
}

type CreateJobWorkRequest struct {
	ContractorID       string  `json:"contractor_id" binding:"required"`
	InputBatchID       string  `json:"input_batch_id" binding:"required"`
	InputWeightKG      float64 `json:"input_weight_kg" binding:"required,gt=0"`
	OutputMaterialID   string  `json:"output_material_id" binding:"required"`
	ExpectedOutputKG   float64 `json:"expected_output_weight_kg" binding:"required,gt=0"`
	ProcessType        string  `json:"process_type" binding:"required"`
	SentDate           string  `json:"sent_date"` // YYYY-MM-DD, defaults to today
	ExpectedReturnDate string  `json:"expected_return_date"`
	Notes              string  `json:"notes"`
}

// Create records an outward transformation: the transformation row, the
// outward ledger entry and the input-batch decrement commit atomically.
// Two identical requests produce two transformations; there is no dedup.
func (s *JobWorkService) Create(req CreateJobWorkRequest, userID string) (*entity.JobWorkTransformation, error) {
	contractor, err := s.partnerRepo.GetSupplierByID(req.ContractorID)
	if err != nil {
		return nil, fmt.Errorf("contractor not found: %w", err)
	}
	if contractor.Status != entity.PartnerStatusActive {
		return nil, fmt.Errorf("contractor %s is not active", contractor.Code)
	}

	batch, err := s.batchRepo.GetByID(req.InputBatchID)
	if err != nil {
		return nil, fmt.Errorf("input batch not found: %w", err)
	}
	if batch.Status != entity.BatchStatusActive {
		return nil, fmt.Errorf("batch %s is not active", batch.BatchCode)
	}
	if batch.AvailableWeightKG < req.InputWeightKG {
		return nil, fmt.Errorf("batch %s has %.3f kg available, %.3f kg requested",
			batch.BatchCode, batch.AvailableWeightKG, req.InputWeightKG)
	}

	sentDate := time.Now()
	if req.SentDate != "" {
		if t, err := time.Parse("2006-01-02", req.SentDate); err == nil {
			sentDate = t
		}
	}

	jw := &entity.JobWorkTransformation{
		ID:               uuid.New().String(),
		Code:             fmt.Sprintf("JW-%s%04d", time.Now().Format("20060102"), time.Now().UnixNano()%10000),
		ContractorID:     req.ContractorID,
		InputBatchID:     batch.ID,
		InputMaterialID:  batch.MaterialID,
		InputWeightKG:    req.InputWeightKG,
		OutputMaterialID: req.OutputMaterialID,
		ExpectedOutputKG: req.ExpectedOutputKG,
		ProcessType:      req.ProcessType,
		SentDate:         sentDate,
		Status:           entity.JobWorkStatusSent,
		Notes:            req.Notes,
		CreatedBy:        userID,
	}
	if req.ExpectedReturnDate != "" {
		if t, err := time.Parse("2006-01-02", req.ExpectedReturnDate); err == nil {
			jw.ExpectedReturnDate = &t
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		batch.AvailableWeightKG -= req.InputWeightKG
		if batch.AvailableWeightKG == 0 && batch.ReservedWeightKG == 0 {
			batch.Status = entity.BatchStatusDepleted
		}
		if err := batch.CheckWeights(); err != nil {
			return err
		}
		if err := tx.Save(batch).Error; err != nil {
			return fmt.Errorf("failed to update input batch: %w", err)
		}
		if err := tx.Create(jw).Error; err != nil {
			return fmt.Errorf("failed to create transformation: %w", err)
		}
		outward := &entity.StockTransaction{
			ID:            uuid.New().String(),
			MaterialID:    batch.MaterialID,
			BatchID:       &batch.ID,
			LocationID:    batch.LocationID,
			Type:          entity.TxTypeJobWorkOutward,
			QuantityKG:    -req.InputWeightKG,
			ReferenceType: "JOB_WORK",
			ReferenceID:   jw.ID,
			CreatedBy:     userID,
		}
		if err := tx.Create(outward).Error; err != nil {
			return fmt.Errorf("failed to record outward transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return jw, nil
}

// UpdateStatus applies one guarded transition. Completion must go through
// Complete, which records the inward movement.
func (s *JobWorkService) UpdateStatus(id, to string) error {
	jw, err := s.jobWorkRepo.GetByID(id)
	if err != nil {
		return fmt.Errorf("transformation not found: %w", err)
	}
	if to == entity.JobWorkStatusCompleted || to == entity.JobWorkStatusReturned {
		return fmt.Errorf("use the completion flow to close a transformation")
	}
	if !jw.CanTransition(to) {
		return fmt.Errorf("cannot move transformation from %s to %s", jw.Status, to)
	}
	jw.Status = to
	return s.jobWorkRepo.Update(jw)
}

type CompleteJobWorkRequest struct {
	ActualOutputKG float64 `json:"actual_output_weight_kg" binding:"required,gt=0"`
	LocationID     string  `json:"location_id" binding:"required"`
	QualityGrade   string  `json:"quality_grade"`
	Notes          string  `json:"notes"`
}

// Complete records the inward side: a fresh output batch, the transformation
// update and the inward ledger entry in a single commit. From QUALITY_CHECK
// the transformation completes; straight from SENT it closes as RETURNED
// (the direct inward path).
func (s *JobWorkService) Complete(id string, req CompleteJobWorkRequest, userID string) (*entity.JobWorkTransformation, error) {
	jw, err := s.jobWorkRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("transformation not found: %w", err)
	}

	var finalStatus string
	switch jw.Status {
	case entity.JobWorkStatusQualityCheck:
		finalStatus = entity.JobWorkStatusCompleted
	case entity.JobWorkStatusSent:
		finalStatus = entity.JobWorkStatusReturned
	default:
		return nil, fmt.Errorf("cannot complete transformation in status %s", jw.Status)
	}

	code, err := s.batchRepo.NextCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate batch code: %w", err)
	}

	grade := req.QualityGrade
	if grade == "" {
		grade = entity.QualityGradeA
	}
	now := time.Now()

	outputBatch := &entity.Batch{
		ID:                uuid.New().String(),
		BatchCode:         code,
		MaterialID:        jw.OutputMaterialID,
		LocationID:        req.LocationID,
		TotalWeightKG:     req.ActualOutputKG,
		AvailableWeightKG: req.ActualOutputKG,
		QualityGrade:      grade,
		ComplianceStatus:  entity.CompliancePending,
		SupplierID:        &jw.ContractorID,
		ReceivedDate:      &now,
		Status:            entity.BatchStatusActive,
		Notes:             req.Notes,
		CreatedBy:         userID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(outputBatch).Error; err != nil {
			return fmt.Errorf("failed to create output batch: %w", err)
		}
		jw.ActualOutputKG = req.ActualOutputKG
		jw.OutputBatchID = &outputBatch.ID
		jw.ActualReturnDate = &now
		jw.Status = finalStatus
		if err := tx.Save(jw).Error; err != nil {
			return fmt.Errorf("failed to update transformation: %w", err)
		}
		inward := &entity.StockTransaction{
			ID:            uuid.New().String(),
			MaterialID:    jw.OutputMaterialID,
			BatchID:       &outputBatch.ID,
			LocationID:    req.LocationID,
			Type:          entity.TxTypeJobWorkInward,
			QuantityKG:    req.ActualOutputKG,
			ReferenceType: "JOB_WORK",
			ReferenceID:   jw.ID,
			CreatedBy:     userID,
		}
		if err := tx.Create(inward).Error; err != nil {
			return fmt.Errorf("failed to record inward transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return jw, nil
}
