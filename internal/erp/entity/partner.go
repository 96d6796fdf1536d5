package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplierType trading-partner categories on the supply side
const (
	SupplierTypeMill       = "MILL"
	SupplierTypeStockist   = "STOCKIST"
	SupplierTypeContractor = "CONTRACTOR" // job-work processor
	SupplierTypeOther      = "OTHER"
)

// PartnerStatus shared by suppliers and customers
const (
	PartnerStatusActive    = "ACTIVE"
	PartnerStatusInactive  = "INACTIVE"
	PartnerStatusBlacklist = "BLACKLIST"
)

// Supplier a vendor: mill, stockist or job-work contractor
type Supplier struct {
	ID           string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Code         string     `json:"code" gorm:"size:50;not null;uniqueIndex"`
	Name         string     `json:"name" gorm:"size:200;not null"`
	Type         string     `json:"type" gorm:"size:20;not null;default:STOCKIST"`
	ContactName  string     `json:"contact_name" gorm:"size:100"`
	Phone        string     `json:"phone" gorm:"size:20"`
	Email        string     `json:"email" gorm:"size:100"`
	Address      string     `json:"address" gorm:"size:500"`
	GSTIN        string     `json:"gstin" gorm:"size:20"`
	PaymentTerms string     `json:"payment_terms" gorm:"size:100"`
	Status       string     `json:"status" gorm:"size:20;not null;default:ACTIVE"`
	Notes        string     `json:"notes" gorm:"type:text"`
	CreatedBy    string     `json:"created_by" gorm:"size:64"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at" gorm:"index"`
}

func (Supplier) TableName() string {
	return "suppliers"
}

// Customer a buyer with a credit limit and running outstanding
type Customer struct {
	ID          string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Code        string          `json:"code" gorm:"size:50;not null;uniqueIndex"`
	Name        string          `json:"name" gorm:"size:200;not null"`
	ContactName string          `json:"contact_name" gorm:"size:100"`
	Phone       string          `json:"phone" gorm:"size:20"`
	Email       string          `json:"email" gorm:"size:100"`
	Address     string          `json:"address" gorm:"size:500"`
	GSTIN       string          `json:"gstin" gorm:"size:20"`
	CreditLimit decimal.Decimal `json:"credit_limit" gorm:"type:decimal(14,2);default:0"`
	Outstanding decimal.Decimal `json:"outstanding" gorm:"type:decimal(14,2);default:0"`
	CreditDays  int             `json:"credit_days" gorm:"default:0"`
	Status      string          `json:"status" gorm:"size:20;not null;default:ACTIVE"`
	Notes       string          `json:"notes" gorm:"type:text"`
	CreatedBy   string          `json:"created_by" gorm:"size:64"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   *time.Time      `json:"deleted_at" gorm:"index"`
}

func (Customer) TableName() string {
	return "customers"
}

// WithinCreditLimit reports whether an additional order value keeps the
// customer inside its limit. A zero limit means no limit is enforced.
func (c *Customer) WithinCreditLimit(orderValue decimal.Decimal) bool {
	if c.CreditLimit.IsZero() {
		return true
	}
	return c.Outstanding.Add(orderValue).LessThanOrEqual(c.CreditLimit)
}
