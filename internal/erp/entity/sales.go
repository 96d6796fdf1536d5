package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesOrderStatus sales lifecycle
const (
	SOStatusDraft     = "DRAFT"
	SOStatusConfirmed = "CONFIRMED"
	SOStatusShipped   = "SHIPPED"
	SOStatusCancelled = "CANCELLED"
)

// ReceivableStatus settlement state of money owed by a customer
const (
	ReceivableStatusOpen    = "OPEN"
	ReceivableStatusPartial = "PARTIAL"
	ReceivableStatusPaid    = "PAID"
)

// SalesOrder a customer order; allocations pin order items to batches
type SalesOrder struct {
	ID           string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Code         string          `json:"code" gorm:"size:50;not null;uniqueIndex"`
	CustomerID   string          `json:"customer_id" gorm:"type:uuid;not null;index"`
	Status       string          `json:"status" gorm:"size:20;not null;default:DRAFT"`
	TotalAmount  decimal.Decimal `json:"total_amount" gorm:"type:decimal(14,2);default:0"`
	OrderDate    *time.Time      `json:"order_date"`
	DeliveryDate *time.Time      `json:"delivery_date"`
	ShippedDate  *time.Time      `json:"shipped_date"`
	Notes        string          `json:"notes" gorm:"type:text"`
	CreatedBy    string          `json:"created_by" gorm:"size:64;not null"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    *time.Time      `json:"deleted_at" gorm:"index"`

	Customer *Customer        `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Items    []SalesOrderItem `json:"items,omitempty" gorm:"foreignKey:SOID"`
}

func (SalesOrder) TableName() string {
	return "sales_orders"
}

// SalesOrderItem one material line on a sales order
type SalesOrderItem struct {
	ID         string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	SOID       string          `json:"so_id" gorm:"type:uuid;not null;index"`
	MaterialID string          `json:"material_id" gorm:"type:uuid;not null;index"`
	QuantityKG float64         `json:"quantity_kg" gorm:"type:decimal(12,3);not null"`
	Rate       decimal.Decimal `json:"rate" gorm:"type:decimal(14,2);not null"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:decimal(14,2);not null"`
	ShippedKG  float64         `json:"shipped_kg" gorm:"type:decimal(12,3);default:0"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	Material *Material `json:"material,omitempty" gorm:"foreignKey:MaterialID"`
}

func (SalesOrderItem) TableName() string {
	return "sales_order_items"
}

// SalesOrderBatchAllocation links an order item to a batch it draws from
type SalesOrderBatchAllocation struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	SOItemID    string    `json:"so_item_id" gorm:"type:uuid;not null;index"`
	BatchID     string    `json:"batch_id" gorm:"type:uuid;not null;index"`
	AllocatedKG float64   `json:"allocated_kg" gorm:"type:decimal(12,3);not null"`
	CreatedAt   time.Time `json:"created_at"`

	Batch *Batch `json:"batch,omitempty" gorm:"foreignKey:BatchID"`
}

func (SalesOrderBatchAllocation) TableName() string {
	return "sales_order_batch_allocations"
}

// Receivable money owed by a customer
type Receivable struct {
	ID         string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CustomerID string          `json:"customer_id" gorm:"type:uuid;not null;index"`
	SOID       *string         `json:"so_id" gorm:"type:uuid;index"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:decimal(14,2);not null"`
	PaidAmount decimal.Decimal `json:"paid_amount" gorm:"type:decimal(14,2);default:0"`
	DueDate    time.Time       `json:"due_date" gorm:"index"`
	Status     string          `json:"status" gorm:"size:20;not null;default:OPEN"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	Customer *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
}

func (Receivable) TableName() string {
	return "receivables"
}
