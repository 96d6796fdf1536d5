package entity

import (
	"time"
)

// StockTransactionType movement types recorded in the stock ledger
const (
	TxTypePurchaseIn     = "PURCHASE_IN"
	TxTypeSalesOut       = "SALES_OUT"
	TxTypeJobWorkOutward = "JOB_WORK_OUTWARD"
	TxTypeJobWorkInward  = "JOB_WORK_INWARD"
	TxTypePurchaseReturn = "PURCHASE_RETURN"
	TxTypeAdjust         = "ADJUST"
)

// Inventory location-scoped quantity record for a material. This is the
// coarser of the two stock ledgers; batches track the same material at lot
// granularity and the stock aggregator reconciles the two.
type Inventory struct {
	ID           string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	MaterialID   string     `json:"material_id" gorm:"type:uuid;not null;index:idx_inventory_material_location,unique"`
	LocationID   string     `json:"location_id" gorm:"type:uuid;not null;index:idx_inventory_material_location,unique"`
	Quantity     float64    `json:"quantity" gorm:"type:decimal(12,3);not null;default:0"`
	ReservedQty  float64    `json:"reserved_quantity" gorm:"type:decimal(12,3);not null;default:0"`
	AvailableQty *float64   `json:"available_quantity" gorm:"type:decimal(12,3)"`
	UnitCost     float64    `json:"unit_cost" gorm:"type:decimal(12,2);default:0"`
	LastMovedAt  *time.Time `json:"last_moved_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Material *Material `json:"material,omitempty" gorm:"foreignKey:MaterialID"`
	Location *Location `json:"location,omitempty" gorm:"foreignKey:LocationID"`
}

func (Inventory) TableName() string {
	return "inventory"
}

// Available resolves the effective available quantity: the explicit column
// when set, otherwise quantity minus reserved.
func (i *Inventory) Available() float64 {
	if i.AvailableQty != nil {
		return *i.AvailableQty
	}
	return i.Quantity - i.ReservedQty
}

// StockTransaction signed-quantity ledger entry for every stock movement.
// Positive quantity = inward, negative = outward.
type StockTransaction struct {
	ID            string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	MaterialID    string    `json:"material_id" gorm:"type:uuid;not null;index"`
	BatchID       *string   `json:"batch_id" gorm:"type:uuid;index"`
	LocationID    string    `json:"location_id" gorm:"type:uuid"`
	Type          string    `json:"type" gorm:"size:20;not null"`
	QuantityKG    float64   `json:"quantity_kg" gorm:"type:decimal(12,3);not null"`
	UnitCost      float64   `json:"unit_cost" gorm:"type:decimal(12,2);default:0"`
	ReferenceType string    `json:"reference_type" gorm:"size:50;not null"` // PO, SO, JOB_WORK, ADJUST
	ReferenceID   string    `json:"reference_id" gorm:"size:64;not null"`
	Notes         string    `json:"notes" gorm:"type:text"`
	CreatedBy     string    `json:"created_by" gorm:"size:64;not null"`
	CreatedAt     time.Time `json:"created_at"`
}

func (StockTransaction) TableName() string {
	return "transactions"
}
