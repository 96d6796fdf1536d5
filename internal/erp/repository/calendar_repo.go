package repository

import (
	"time"

	"github.com/ferroline/ferro-erp/internal/erp/entity"
	"gorm.io/gorm"
)

type CalendarRepository struct {
	db *gorm.DB
}

func NewCalendarRepository(db *gorm.DB) *CalendarRepository {
	return &CalendarRepository{db: db}
}

func (r *CalendarRepository) Create(e *entity.BusinessCalendarEvent) error {
	return r.db.Create(e).Error
}

func (r *CalendarRepository) GetByID(id string) (*entity.BusinessCalendarEvent, error) {
	var e entity.BusinessCalendarEvent
	err := r.db.Where("id = ? AND deleted_at IS NULL", id).First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *CalendarRepository) Update(e *entity.BusinessCalendarEvent) error {
	return r.db.Save(e).Error
}

func (r *CalendarRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&entity.BusinessCalendarEvent{}).Error
}

// Range events overlapping [from, to), optionally filtered by type.
func (r *CalendarRepository) Range(from, to time.Time, eventType string) ([]entity.BusinessCalendarEvent, error) {
	query := r.db.Where("deleted_at IS NULL").
		Where("start_at < ? AND (end_at IS NULL OR end_at >= ? OR start_at >= ?)", to, from, from)
	if eventType != "" {
		query = query.Where("type = ?", eventType)
	}
	var events []entity.BusinessCalendarEvent
	err := query.Order("start_at ASC").Find(&events).Error
	return events, err
}
