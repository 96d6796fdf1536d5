package entity

import (
	"time"
)

// CalendarEventType business calendar categories
const (
	EventTypeDelivery = "DELIVERY"
	EventTypePayment  = "PAYMENT"
	EventTypeFollowUp = "FOLLOWUP"
	EventTypeOther    = "OTHER"
)

// BusinessCalendarEvent a dated entry on the shared business calendar,
// optionally linked to another record (order, payable, quotation).
type BusinessCalendarEvent struct {
	ID            string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Title         string     `json:"title" gorm:"size:200;not null"`
	Type          string     `json:"type" gorm:"size:20;not null;default:OTHER"`
	Description   string     `json:"description" gorm:"type:text"`
	StartAt       time.Time  `json:"start_at" gorm:"not null;index"`
	EndAt         *time.Time `json:"end_at"`
	AllDay        bool       `json:"all_day" gorm:"not null;default:false"`
	ReferenceType string     `json:"reference_type" gorm:"size:50"`
	ReferenceID   string     `json:"reference_id" gorm:"size:64"`
	CreatedBy     string     `json:"created_by" gorm:"size:64"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at" gorm:"index"`
}

func (BusinessCalendarEvent) TableName() string {
	return "business_calendar_events"
}
