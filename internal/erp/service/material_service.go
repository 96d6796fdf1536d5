package service

import (
	"fmt"

	"github.com/ferroline/ferro-erp/internal/erp/entity"
	"github.com/ferroline/ferro-erp/internal/erp/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MaterialService struct {
	repo *repository.MaterialRepository
}

func NewMaterialService(repo *repository.MaterialRepository) *MaterialService {
	return &MaterialService{repo: repo}
}

func (s *MaterialService) List(params repository.MaterialListParams) ([]entity.Material, int64, error) {
	return s.repo.List(params)
}

func (s *MaterialService) Get(id string) (*entity.Material, error) {
	return s.repo.GetByID(id)
}

type CreateMaterialRequest struct {
	SKU         string  `json:"sku" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Category    string  `json:"category" binding:"required,oneof=SHEET PIPE BAR FLAT ANGLE"`
	Grade       string  `json:"grade"`
	ThicknessMM float64 `json:"thickness_mm"`
	WidthMM     float64 `json:"width_mm"`
	LengthMM    float64 `json:"length_mm"`
	DiameterMM  float64 `json:"diameter_mm"`
	Unit        string  `json:"unit"`
	BasePrice   string  `json:"base_price"`
	HSNCode     string  `json:"hsn_code"`
	Notes       string  `json:"notes"`
}

func (s *MaterialService) Create(req CreateMaterialRequest, userID string) (*entity.Material, error) {
	if existing, err := s.repo.GetBySKU(req.SKU); err == nil && existing != nil {
		return nil, fmt.Errorf("SKU %s already exists", req.SKU)
	}

	price := decimal.Zero
	if req.BasePrice != "" {
		p, err := decimal.NewFromString(req.BasePrice)
		if err != nil {
			return nil, fmt.Errorf("invalid base price: %w", err)
		}
		price = p
	}
	unit := req.Unit
	if unit == "" {
		unit = "kg"
	}

	m := &entity.Material{
		ID:          uuid.New().String(),
		SKU:         req.SKU,
		Name:        req.Name,
		Category:    req.Category,
		Grade:       req.Grade,
		ThicknessMM: req.ThicknessMM,
		WidthMM:     req.WidthMM,
		LengthMM:    req.LengthMM,
		DiameterMM:  req.DiameterMM,
		Unit:        unit,
		BasePrice:   price,
		HSNCode:     req.HSNCode,
		IsActive:    true,
		Notes:       req.Notes,
		CreatedBy:   userID,
	}
	if err := s.repo.Create(m); err != nil {
		return nil, fmt.Errorf("failed to create material: %w", err)
	}
	return m, nil
}

type UpdateMaterialRequest struct {
	Name      *string `json:"name"`
	Grade     *string `json:"grade"`
	Unit      *string `json:"unit"`
	BasePrice *string `json:"base_price"`
	HSNCode   *string `json:"hsn_code"`
	Notes     *string `json:"notes"`
}

func (s *MaterialService) Update(id string, req UpdateMaterialRequest) (*entity.Material, error) {
	m, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("material not found: %w", err)
	}
	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.Grade != nil {
		m.Grade = *req.Grade
	}
	if req.Unit != nil {
		m.Unit = *req.Unit
	}
	if req.BasePrice != nil {
		p, err := decimal.NewFromString(*req.BasePrice)
		if err != nil {
			return nil, fmt.Errorf("invalid base price: %w", err)
		}
		m.BasePrice = p
	}
	if req.HSNCode != nil {
		m.HSNCode = *req.HSNCode
	}
	if req.Notes != nil {
		m.Notes = *req.Notes
	}
	if err := s.repo.Update(m); err != nil {
		return nil, fmt.Errorf("failed to update material: %w", err)
	}
	return m, nil
}

// Deactivate soft-disables a material; it stays queryable for history.
func (s *MaterialService) Deactivate(id string) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return fmt.Errorf("material not found: %w", err)
	}
	return s.repo.Deactivate(id)
}
