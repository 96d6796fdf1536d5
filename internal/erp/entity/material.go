package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaterialCategory steel product categories
const (
	CategorySheet = "SHEET"
	CategoryPipe  = "PIPE"
	CategoryBar   = "BAR"
	CategoryFlat  = "FLAT"
	CategoryAngle = "ANGLE"
)

// Material a stock-keeping unit in the catalog. Never hard-deleted;
// deactivated via IsActive.
type Material struct {
	ID          string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	SKU         string          `json:"sku" gorm:"size:64;not null;uniqueIndex"`
	Name        string          `json:"name" gorm:"size:200;not null"`
	Category    string          `json:"category" gorm:"size:20;not null"`
	Grade       string          `json:"grade" gorm:"size:50"`
	ThicknessMM float64         `json:"thickness_mm" gorm:"type:decimal(10,3);default:0"`
	WidthMM     float64         `json:"width_mm" gorm:"type:decimal(10,3);default:0"`
	LengthMM    float64         `json:"length_mm" gorm:"type:decimal(10,3);default:0"`
	DiameterMM  float64         `json:"diameter_mm" gorm:"type:decimal(10,3);default:0"`
	Unit        string          `json:"unit" gorm:"size:20;not null;default:kg"`
	BasePrice   decimal.Decimal `json:"base_price" gorm:"type:decimal(14,2);default:0"`
	HSNCode     string          `json:"hsn_code" gorm:"size:20"`
	IsActive    bool            `json:"is_active" gorm:"not null;default:true"`
	Notes       string          `json:"notes" gorm:"type:text"`
	CreatedBy   string          `json:"created_by" gorm:"size:64"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (Material) TableName() string {
	return "materials"
}

// Location a warehouse or yard where inventory is held
type Location struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Code      string    `json:"code" gorm:"size:50;not null;uniqueIndex"`
	Name      string    `json:"name" gorm:"size:200;not null"`
	Address   string    `json:"address" gorm:"size:500"`
	IsActive  bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Location) TableName() string {
	return "locations"
}
