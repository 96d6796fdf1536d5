package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus procurement lifecycle
const (
	POStatusDraft     = "DRAFT"
	POStatusPending   = "PENDING"
	POStatusApproved  = "APPROVED"
	POStatusOrdered   = "ORDERED"
	POStatusReceived  = "RECEIVED"
	POStatusCancelled = "CANCELLED"
)

// PayableStatus settlement state of money owed to a supplier
const (
	PayableStatusOpen    = "OPEN"
	PayableStatusPartial = "PARTIAL"
	PayableStatusPaid    = "PAID"
)

// PurchaseOrder a supplier order; Items carry the ordered weights
type PurchaseOrder struct {
	ID           string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Code         string          `json:"code" gorm:"size:50;not null;uniqueIndex"`
	SupplierID   string          `json:"supplier_id" gorm:"type:uuid;not null;index"`
	Status       string          `json:"status" gorm:"size:20;not null;default:DRAFT"`
	TotalAmount  decimal.Decimal `json:"total_amount" gorm:"type:decimal(14,2);default:0"`
	OrderDate    *time.Time      `json:"order_date"`
	ExpectedDate *time.Time      `json:"expected_date"`
	ReceivedDate *time.Time      `json:"received_date"`
	Notes        string          `json:"notes" gorm:"type:text"`
	CreatedBy    string          `json:"created_by" gorm:"size:64;not null"`
	ApprovedBy   string          `json:"approved_by" gorm:"size:64"`
	ApprovedAt   *time.Time      `json:"approved_at"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    *time.Time      `json:"deleted_at" gorm:"index"`

	Supplier *Supplier           `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
	Items    []PurchaseOrderItem `json:"items,omitempty" gorm:"foreignKey:POID"`
}

func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// PurchaseOrderItem one material line on a PO
type PurchaseOrderItem struct {
	ID         string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	POID       string          `json:"po_id" gorm:"type:uuid;not null;index"`
	MaterialID string          `json:"material_id" gorm:"type:uuid;not null;index"`
	QuantityKG float64         `json:"quantity_kg" gorm:"type:decimal(12,3);not null"`
	Rate       decimal.Decimal `json:"rate" gorm:"type:decimal(14,2);not null"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:decimal(14,2);not null"`
	ReceivedKG float64         `json:"received_kg" gorm:"type:decimal(12,3);default:0"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	Material *Material `json:"material,omitempty" gorm:"foreignKey:MaterialID"`
}

func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}

// PurchaseInvoice supplier invoice raised against a received PO
type PurchaseInvoice struct {
	ID          string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Code        string          `json:"code" gorm:"size:50;not null;uniqueIndex"`
	POID        *string         `json:"po_id" gorm:"type:uuid;index"`
	SupplierID  string          `json:"supplier_id" gorm:"type:uuid;not null;index"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(14,2);not null"`
	TaxAmount   decimal.Decimal `json:"tax_amount" gorm:"type:decimal(14,2);default:0"`
	InvoiceDate time.Time       `json:"invoice_date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (PurchaseInvoice) TableName() string {
	return "purchase_invoices"
}

// Payable money owed to a supplier against an invoice
type Payable struct {
	ID         string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	SupplierID string          `json:"supplier_id" gorm:"type:uuid;not null;index"`
	InvoiceID  *string         `json:"invoice_id" gorm:"type:uuid;index"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:decimal(14,2);not null"`
	PaidAmount decimal.Decimal `json:"paid_amount" gorm:"type:decimal(14,2);default:0"`
	DueDate    time.Time       `json:"due_date" gorm:"index"`
	Status     string          `json:"status" gorm:"size:20;not null;default:OPEN"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	Supplier *Supplier `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
}

func (Payable) TableName() string {
	return "payables"
}

// PurchaseReturn material sent back to a supplier
type PurchaseReturn struct {
	ID         string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Code       string          `json:"code" gorm:"size:50;not null;uniqueIndex"`
	POID       *string         `json:"po_id" gorm:"type:uuid;index"`
	SupplierID string          `json:"supplier_id" gorm:"type:uuid;not null;index"`
	BatchID    *string         `json:"batch_id" gorm:"type:uuid;index"`
	QuantityKG float64         `json:"quantity_kg" gorm:"type:decimal(12,3);not null"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:decimal(14,2);default:0"`
	Reason     string          `json:"reason" gorm:"type:text"`
	ReturnDate time.Time       `json:"return_date"`
	CreatedBy  string          `json:"created_by" gorm:"size:64"`
	CreatedAt  time.Time       `json:"created_at"`
}

func (PurchaseReturn) TableName() string {
	return "purchase_returns"
}
