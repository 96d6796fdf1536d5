package service

import (
	"fmt"
	"time"

	"github.com/ferroline/ferro-erp/internal/erp/entity"
	"github.com/ferroline/ferro-erp/internal/erp/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type QuotationService struct {
	repo     *repository.QuotationRepository
	notifier Notifier
	logger   *zap.Logger
}

func NewQuotationService(repo *repository.QuotationRepository, notifier Notifier, logger *zap.Logger) *QuotationService {
	return &QuotationService{repo: repo, notifier: notifier, logger: logger}
}

type CreateQuotationRequest struct {
	CustomerID  string `json:"customer_id" binding:"required"`
	TotalAmount string `json:"total_amount" binding:"required"`
	ValidUntil  string `json:"valid_until"` // YYYY-MM-DD
	Notes       string `json:"notes"`
}

func (s *QuotationService) Create(req CreateQuotationRequest, userID string) (*entity.Quotation, error) {
	total, err := decimal.NewFromString(req.TotalAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid total amount: %w", err)
	}
	q := &entity.Quotation{
		ID:          uuid.New().String(),
		Code:        fmt.Sprintf("QT-%s%04d", time.Now().Format("20060102"), time.Now().UnixNano()%10000),
		CustomerID:  req.CustomerID,
		Status:      entity.QuoteStatusDraft,
		TotalAmount: total,
		Notes:       req.Notes,
		CreatedBy:   userID,
	}
	if req.ValidUntil != "" {
		t, err := time.Parse("2006-01-02", req.ValidUntil)
		if err != nil {
			return nil, fmt.Errorf("invalid valid_until date: %w", err)
		}
		q.ValidUntil = &t
	}
	if err := s.repo.Create(q); err != nil {
		return nil, fmt.Errorf("failed to create quotation: %w", err)
	}
	return q, nil
}

// List sweeps stale quotations to EXPIRED before returning the page.
func (s *QuotationService) List(params repository.QuotationListParams) ([]entity.Quotation, int64, error) {
	if n, err := s.repo.ExpireStale(time.Now()); err != nil {
		s.logger.Warn("failed to expire stale quotations", zap.Error(err))
	} else if n > 0 {
		s.logger.Info("expired stale quotations", zap.Int64("count", n))
	}
	return s.repo.List(params)
}

func (s *QuotationService) Get(id string) (*entity.Quotation, error) {
	return s.repo.GetByID(id)
}

func (s *QuotationService) Send(id string) error {
	q, err := s.repo.GetByID(id)
	if err != nil {
		return fmt.Errorf("quotation not found: %w", err)
	}
	if q.Status != entity.QuoteStatusDraft {
		return fmt.Errorf("quotation is %s, expected %s", q.Status, entity.QuoteStatusDraft)
	}
	if q.IsExpired(time.Now()) {
		return fmt.Errorf("quotation validity has passed")
	}
	now := time.Now()
	q.Status = entity.QuoteStatusSent
	q.SentAt = &now
	return s.repo.Update(q)
}

func (s *QuotationService) Accept(id string) error {
	return s.resolve(id, entity.QuoteStatusAccepted)
}

func (s *QuotationService) Reject(id string) error {
	return s.resolve(id, entity.QuoteStatusRejected)
}

func (s *QuotationService) resolve(id, status string) error {
	q, err := s.repo.GetByID(id)
	if err != nil {
		return fmt.Errorf("quotation not found: %w", err)
	}
	if q.Status != entity.QuoteStatusSent {
		return fmt.Errorf("quotation is %s, expected %s", q.Status, entity.QuoteStatusSent)
	}
	if q.IsExpired(time.Now()) {
		q.Status = entity.QuoteStatusExpired
		_ = s.repo.Update(q)
		return fmt.Errorf("quotation validity has passed")
	}
	q.Status = status
	return s.repo.Update(q)
}

// --- Reminders ---

type CreateReminderRequest struct {
	DueDate string `json:"due_date" binding:"required"` // YYYY-MM-DD
	Message string `json:"message"`
}

func (s *QuotationService) CreateReminder(quotationID string, req CreateReminderRequest) (*entity.QuotationReminder, error) {
	if _, err := s.repo.GetByID(quotationID); err != nil {
		return nil, fmt.Errorf("quotation not found: %w", err)
	}
	due, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("invalid due date: %w", err)
	}
	rem := &entity.QuotationReminder{
		ID:          uuid.New().String(),
		QuotationID: quotationID,
		DueDate:     due,
		Message:     req.Message,
	}
	if err := s.repo.CreateReminder(rem); err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}
	return rem, nil
}

func (s *QuotationService) ListReminders(quotationID string) ([]entity.QuotationReminder, error) {
	return s.repo.ListReminders(quotationID)
}

// NotifyDueReminders pushes every due unsent reminder through the notifier
// and marks it sent. Returns how many went out.
func (s *QuotationService) NotifyDueReminders() (int, error) {
	due, err := s.repo.DueReminders(time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to fetch due reminders: %w", err)
	}
	sent := 0
	for i := range due {
		rem := &due[i]
		text := fmt.Sprintf("Follow-up due: quotation %s", rem.QuotationID)
		if rem.Quotation != nil {
			text = fmt.Sprintf("Follow-up due: quotation %s", rem.Quotation.Code)
			if rem.Quotation.Customer != nil {
				text += fmt.Sprintf(" for %s", rem.Quotation.Customer.Name)
			}
		}
		if rem.Message != "" {
			text += " - " + rem.Message
		}
		if err := s.notifier.Notify(text); err != nil {
			s.logger.Warn("failed to send reminder notification",
				zap.String("reminder_id", rem.ID), zap.Error(err))
			continue
		}
		now := time.Now()
		rem.Sent = true
		rem.SentAt = &now
		if err := s.repo.UpdateReminder(rem); err != nil {
			s.logger.Warn("failed to mark reminder sent",
				zap.String("reminder_id", rem.ID), zap.Error(err))
			continue
		}
		sent++
	}
	return sent, nil
}
