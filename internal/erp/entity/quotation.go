package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuotationStatus quote lifecycle
const (
	QuoteStatusDraft    = "DRAFT"
	QuoteStatusSent     = "SENT"
	QuoteStatusAccepted = "ACCEPTED"
	QuoteStatusRejected = "REJECTED"
	QuoteStatusExpired  = "EXPIRED"
)

// Quotation a priced offer to a customer with a validity window
type Quotation struct {
	ID          string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Code        string          `json:"code" gorm:"size:50;not null;uniqueIndex"`
	CustomerID  string          `json:"customer_id" gorm:"type:uuid;not null;index"`
	Status      string          `json:"status" gorm:"size:20;not null;default:DRAFT"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"type:decimal(14,2);default:0"`
	ValidUntil  *time.Time      `json:"valid_until" gorm:"index"`
	SentAt      *time.Time      `json:"sent_at"`
	Notes       string          `json:"notes" gorm:"type:text"`
	CreatedBy   string          `json:"created_by" gorm:"size:64"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   *time.Time      `json:"deleted_at" gorm:"index"`

	Customer *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
}

func (Quotation) TableName() string {
	return "quotations"
}

// IsExpired reports whether the validity window has passed.
func (q *Quotation) IsExpired(now time.Time) bool {
	return q.ValidUntil != nil && q.ValidUntil.Before(now)
}

// QuotationReminder a follow-up reminder scheduled against a quotation
type QuotationReminder struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	QuotationID string     `json:"quotation_id" gorm:"type:uuid;not null;index"`
	DueDate     time.Time  `json:"due_date" gorm:"index"`
	Message     string     `json:"message" gorm:"size:500"`
	Sent        bool       `json:"sent" gorm:"not null;default:false"`
	SentAt      *time.Time `json:"sent_at"`
	CreatedAt   time.Time  `json:"created_at"`

	Quotation *Quotation `json:"quotation,omitempty" gorm:"foreignKey:QuotationID"`
}

func (QuotationReminder) TableName() string {
	return "quotation_reminders"
}
