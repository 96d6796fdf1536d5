package entity

import (
	"fmt"
	"time"
)

// BatchStatus lot lifecycle
const (
	BatchStatusActive     = "ACTIVE"
	BatchStatusDepleted   = "DEPLETED"
	BatchStatusQuarantine = "QUARANTINE"
)

// BatchQualityGrade quality tiers assigned at inspection
const (
	QualityGradeA = "A"
	QualityGradeB = "B"
	QualityGradeC = "C"
)

// ComplianceStatus mill-certificate compliance
const (
	CompliancePending  = "PENDING"
	ComplianceVerified = "VERIFIED"
	ComplianceFailed   = "FAILED"
)

// Batch a traceable lot of a material with its own weight ledger.
// Intended invariant: AvailableWeightKG + ReservedWeightKG <= TotalWeightKG
// and AvailableWeightKG >= 0; write paths must preserve it.
type Batch struct {
	ID                string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	BatchCode         string     `json:"batch_code" gorm:"size:64;not null;uniqueIndex"`
	MaterialID        string     `json:"material_id" gorm:"type:uuid;not null;index"`
	LocationID        string     `json:"location_id" gorm:"type:uuid;index"`
	TotalWeightKG     float64    `json:"total_weight_kg" gorm:"type:decimal(12,3);not null"`
	AvailableWeightKG float64    `json:"available_weight_kg" gorm:"type:decimal(12,3);not null;default:0"`
	ReservedWeightKG  float64    `json:"reserved_weight_kg" gorm:"type:decimal(12,3);not null;default:0"`
	QualityGrade      string     `json:"quality_grade" gorm:"size:1;default:A"`
	ComplianceStatus  string     `json:"compliance_status" gorm:"size:20;not null;default:PENDING"`
	Make              string     `json:"make" gorm:"size:100"`
	HeatNumber        string     `json:"heat_number" gorm:"size:50"`
	SupplierID        *string    `json:"supplier_id" gorm:"type:uuid;index"`
	ReceivedDate      *time.Time `json:"received_date" gorm:"index"`
	Status            string     `json:"status" gorm:"size:20;not null;default:ACTIVE"`
	Notes             string     `json:"notes" gorm:"type:text"`
	CreatedBy         string     `json:"created_by" gorm:"size:64"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	DeletedAt         *time.Time `json:"deleted_at" gorm:"index"`

	Material *Material `json:"material,omitempty" gorm:"foreignKey:MaterialID"`
	Supplier *Supplier `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
}

func (Batch) TableName() string {
	return "batches"
}

// CheckWeights validates the weight ledger invariant.
func (b *Batch) CheckWeights() error {
	if b.AvailableWeightKG < 0 {
		return fmt.Errorf("batch %s: available weight is negative", b.BatchCode)
	}
	if b.ReservedWeightKG < 0 {
		return fmt.Errorf("batch %s: reserved weight is negative", b.BatchCode)
	}
	if b.AvailableWeightKG+b.ReservedWeightKG > b.TotalWeightKG+1e-9 {
		return fmt.Errorf("batch %s: available+reserved exceeds total weight", b.BatchCode)
	}
	return nil
}
