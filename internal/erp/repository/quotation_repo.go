package repository

import (
	"time"

	"github.com/ferroline/ferro-erp/internal/erp/entity"
	"gorm.io/gorm"
)

type QuotationRepository struct {
	db *gorm.DB
}

func NewQuotationRepository(db *gorm.DB) *QuotationRepository {
	return &QuotationRepository{db: db}
}

func (r *QuotationRepository) Create(q *entity.Quotation) error {
	return r.db.Create(q).Error
}

func (r *QuotationRepository) GetByID(id string) (*entity.Quotation, error) {
	var q entity.Quotation
	err := r.db.Preload("Customer").
		Where("id = ? AND deleted_at IS NULL", id).First(&q).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuotationRepository) Update(q *entity.Quotation) error {
	return r.db.Save(q).Error
}

type QuotationListParams struct {
	Status     string
	CustomerID string
	Page       int
	Size       int
}

func (r *QuotationRepository) List(params QuotationListParams) ([]entity.Quotation, int64, error) {
	query := r.db.Model(&entity.Quotation{}).Where("deleted_at IS NULL")
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.CustomerID != "" {
		query = query.Where("customer_id = ?", params.CustomerID)
	}
	var total int64
	query.Count(&total)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var quotes []entity.Quotation
	err := query.Preload("Customer").Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&quotes).Error
	return quotes, total, err
}

// ExpireStale marks sent/draft quotations whose validity has passed.
func (r *QuotationRepository) ExpireStale(asOf time.Time) (int64, error) {
	res := r.db.Model(&entity.Quotation{}).
		Where("status IN ? AND valid_until IS NOT NULL AND valid_until < ?",
			[]string{entity.QuoteStatusDraft, entity.QuoteStatusSent}, asOf).
		Update("status", entity.QuoteStatusExpired)
	return res.RowsAffected, res.Error
}

// --- Reminders ---

func (r *QuotationRepository) CreateReminder(rem *entity.QuotationReminder) error {
	return r.db.Create(rem).Error
}

func (r *QuotationRepository) UpdateReminder(rem *entity.QuotationReminder) error {
	return r.db.Save(rem).Error
}

// DueReminders unsent reminders due as of the given time.
func (r *QuotationRepository) DueReminders(asOf time.Time) ([]entity.QuotationReminder, error) {
	var reminders []entity.QuotationReminder
	err := r.db.Preload("Quotation").Preload("Quotation.Customer").
		Where("sent = false AND due_date <= ?", asOf).
		Order("due_date ASC").Find(&reminders).Error
	return reminders, err
}

func (r *QuotationRepository) ListReminders(quotationID string) ([]entity.QuotationReminder, error) {
	var reminders []entity.QuotationReminder
	err := r.db.Where("quotation_id = ?", quotationID).
		Order("due_date ASC").Find(&reminders).Error
	return reminders, err
}
