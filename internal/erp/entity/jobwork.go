package entity

import (
	"time"
)

// JobWorkStatus transformation lifecycle. Allowed transitions:
// SENT -> PROCESSING -> QUALITY_CHECK -> COMPLETED, or SENT -> RETURNED
// (direct inward path used by short-cycle contractors).
const (
	JobWorkStatusSent         = "SENT"
	JobWorkStatusProcessing   = "PROCESSING"
	JobWorkStatusQualityCheck = "QUALITY_CHECK"
	JobWorkStatusCompleted    = "COMPLETED"
	JobWorkStatusReturned     = "RETURNED"
)

// JobWorkProcessType subcontracted processes
const (
	ProcessSlitting    = "SLITTING"
	ProcessCutting     = "CUTTING"
	ProcessBending     = "BENDING"
	ProcessGalvanize   = "GALVANIZING"
	ProcessFabrication = "FABRICATION"
)

// JobWorkTransformation an outsourcing record: input material sent to a
// contractor, processed output received back as a fresh batch.
type JobWorkTransformation struct {
	ID                   string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Code                 string     `json:"code" gorm:"size:50;not null;uniqueIndex"`
	ContractorID         string     `json:"contractor_id" gorm:"type:uuid;not null;index"`
	InputBatchID         string     `json:"input_batch_id" gorm:"type:uuid;not null;index"`
	InputMaterialID      string     `json:"input_material_id" gorm:"type:uuid;not null;index"`
	InputWeightKG        float64    `json:"input_weight_kg" gorm:"type:decimal(12,3);not null"`
	OutputMaterialID     string     `json:"output_material_id" gorm:"type:uuid;not null;index"`
	ExpectedOutputKG     float64    `json:"expected_output_weight_kg" gorm:"type:decimal(12,3);not null"`
	ActualOutputKG       float64    `json:"actual_output_weight_kg" gorm:"type:decimal(12,3);default:0"`
	OutputBatchID        *string    `json:"output_batch_id" gorm:"type:uuid;index"`
	ProcessType          string     `json:"process_type" gorm:"size:30;not null"`
	SentDate             time.Time  `json:"sent_date"`
	ExpectedReturnDate   *time.Time `json:"expected_return_date"`
	ActualReturnDate     *time.Time `json:"actual_return_date"`
	Status               string     `json:"status" gorm:"size:20;not null;default:SENT"`
	Notes                string     `json:"notes" gorm:"type:text"`
	CreatedBy            string     `json:"created_by" gorm:"size:64"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`

	Contractor     *Supplier `json:"contractor,omitempty" gorm:"foreignKey:ContractorID"`
	InputBatch     *Batch    `json:"input_batch,omitempty" gorm:"foreignKey:InputBatchID"`
	OutputBatch    *Batch    `json:"output_batch,omitempty" gorm:"foreignKey:OutputBatchID"`
	InputMaterial  *Material `json:"input_material,omitempty" gorm:"foreignKey:InputMaterialID"`
	OutputMaterial *Material `json:"output_material,omitempty" gorm:"foreignKey:OutputMaterialID"`
}

func (JobWorkTransformation) TableName() string {
	return "job_work_transformations"
}

// jobWorkTransitions guarded status machine
var jobWorkTransitions = map[string][]string{
	JobWorkStatusSent:         {JobWorkStatusProcessing, JobWorkStatusReturned},
	JobWorkStatusProcessing:   {JobWorkStatusQualityCheck},
	JobWorkStatusQualityCheck: {JobWorkStatusCompleted},
}

// CanTransition reports whether a status change is allowed.
func (j *JobWorkTransformation) CanTransition(to string) bool {
	for _, next := range jobWorkTransitions[j.Status] {
		if next == to {
			return true
		}
	}
	return false
}
