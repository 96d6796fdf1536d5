package service

import (
	"fmt"
	"time"

	"github.com/ferroline/ferro-erp/internal/erp/entity"
	"github.com/ferroline/ferro-erp/internal/erp/repository"
	"github.com/google/uuid"
)

var calendarEventTypes = map[string]bool{
	entity.EventTypeDelivery: true,
	entity.EventTypePayment:  true,
	entity.EventTypeFollowUp: true,
	entity.EventTypeOther:    true,
}

type CalendarService struct {
	repo *repository.CalendarRepository
}

func NewCalendarService(repo *repository.CalendarRepository) *CalendarService {
	return &CalendarService{repo: repo}
}

type CreateEventRequest struct {
	Title         string `json:"title" binding:"required"`
	Type          string `json:"type"`
	Description   string `json:"description"`
	StartAt       string `json:"start_at" binding:"required"` // RFC3339
	EndAt         string `json:"end_at"`
	AllDay        bool   `json:"all_day"`
	ReferenceType string `json:"reference_type"`
	ReferenceID   string `json:"reference_id"`
}

func (s *CalendarService) Create(req CreateEventRequest, userID string) (*entity.BusinessCalendarEvent, error) {
	eventType := req.Type
	if eventType == "" {
		eventType = entity.EventTypeOther
	}
	if !calendarEventTypes[eventType] {
		return nil, fmt.Errorf("invalid event type: %s", eventType)
	}

	startAt, err := time.Parse(time.RFC3339, req.StartAt)
	if err != nil {
		return nil, fmt.Errorf("invalid start time: %w", err)
	}
	e := &entity.BusinessCalendarEvent{
		ID:            uuid.New().String(),
		Title:         req.Title,
		Type:          eventType,
		Description:   req.Description,
		StartAt:       startAt,
		AllDay:        req.AllDay,
		ReferenceType: req.ReferenceType,
		ReferenceID:   req.ReferenceID,
		CreatedBy:     userID,
	}
	if req.EndAt != "" {
		endAt, err := time.Parse(time.RFC3339, req.EndAt)
		if err != nil {
			return nil, fmt.Errorf("invalid end time: %w", err)
		}
		if endAt.Before(startAt) {
			return nil, fmt.Errorf("end time precedes start time")
		}
		e.EndAt = &endAt
	}
	if err := s.repo.Create(e); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return e, nil
}

type UpdateEventRequest struct {
	Title       *string `json:"title"`
	Type        *string `json:"type"`
	Description *string `json:"description"`
	StartAt     *string `json:"start_at"`
	EndAt       *string `json:"end_at"`
	AllDay      *bool   `json:"all_day"`
}

func (s *CalendarService) Update(id string, req UpdateEventRequest) (*entity.BusinessCalendarEvent, error) {
	e, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("event not found: %w", err)
	}
	if req.Title != nil {
		e.Title = *req.Title
	}
	if req.Type != nil {
		if !calendarEventTypes[*req.Type] {
			return nil, fmt.Errorf("invalid event type: %s", *req.Type)
		}
		e.Type = *req.Type
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.StartAt != nil {
		startAt, err := time.Parse(time.RFC3339, *req.StartAt)
		if err != nil {
			return nil, fmt.Errorf("invalid start time: %w", err)
		}
		e.StartAt = startAt
	}
	if req.EndAt != nil {
		if *req.EndAt == "" {
			e.EndAt = nil
		} else {
			endAt, err := time.Parse(time.RFC3339, *req.EndAt)
			if err != nil {
				return nil, fmt.Errorf("invalid end time: %w", err)
			}
			e.EndAt = &endAt
		}
	}
	if req.AllDay != nil {
		e.AllDay = *req.AllDay
	}
	if e.EndAt != nil && e.EndAt.Before(e.StartAt) {
		return nil, fmt.Errorf("end time precedes start time")
	}
	if err := s.repo.Update(e); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return e, nil
}

func (s *CalendarService) Get(id string) (*entity.BusinessCalendarEvent, error) {
	return s.repo.GetByID(id)
}

func (s *CalendarService) Delete(id string) error {
	return s.repo.Delete(id)
}

// Range lists events overlapping a window, defaulting to the current month.
func (s *CalendarService) Range(from, to, eventType string) ([]entity.BusinessCalendarEvent, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0)
	if from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return nil, fmt.Errorf("invalid from date: %w", err)
		}
		start = t
	}
	if to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return nil, fmt.Errorf("invalid to date: %w", err)
		}
		end = t
	}
	if !end.After(start) {
		return nil, fmt.Errorf("empty date range")
	}
	return s.repo.Range(start, end, eventType)
}
