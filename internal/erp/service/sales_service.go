package service

import (
	"fmt"
	"time"

	"github.com/ferroline/ferro-erp/internal/erp/entity"
	"github.com/ferroline/ferro-erp/internal/erp/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SalesService struct {
	salesRepo   *repository.SalesRepository
	partnerRepo *repository.PartnerRepository
	batchRepo   *repository.BatchRepository
	db          *gorm.DB
}

func NewSalesService(sr *repository.SalesRepository, pr *repository.PartnerRepository, br *repository.BatchRepository, db *gorm.DB) *SalesService {
	return &SalesService{salesRepo: sr, partnerRepo: pr, batchRepo: br, db: db}
}

// --- Customers ---

type CreateCustomerRequest struct {
	Name        string `json:"name" binding:"required"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	GSTIN       string `json:"gstin"`
	CreditLimit string `json:"credit_limit"`
	CreditDays  int    `json:"credit_days"`
	Notes       string `json:"notes"`
}

func (s *SalesService) CreateCustomer(req CreateCustomerRequest, userID string) (*entity.Customer, error) {
	limit := decimal.Zero
	if req.CreditLimit != "" {
		l, err := decimal.NewFromString(req.CreditLimit)
		if err != nil {
			return nil, fmt.Errorf("invalid credit limit: %w", err)
		}
		limit = l
	}
	c := &entity.Customer{
		ID:          uuid.New().String(),
		Code:        fmt.Sprintf("CUS-%s%04d", time.Now().Format("20060102"), time.Now().UnixNano()%10000),
		Name:        req.Name,
		ContactName: req.ContactName,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		GSTIN:       req.GSTIN,
		CreditLimit: limit,
		CreditDays:  req.CreditDays,
		Status:      entity.PartnerStatusActive,
		Notes:       req.Notes,
		CreatedBy:   userID,
	}
	if err := s.partnerRepo.CreateCustomer(c); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return c, nil
}

func (s *SalesService) ListCustomers(params repository.CustomerListParams) ([]entity.Customer, int64, error) {
	return s.partnerRepo.ListCustomers(params)
}

func (s *SalesService) GetCustomer(id string) (*entity.Customer, error) {
	return s.partnerRepo.GetCustomerByID(id)
}

func (s *SalesService) DeleteCustomer(id string) error {
	return s.partnerRepo.DeleteCustomer(id)
}

// --- Sales Orders ---

type CreateSOItem struct {
	MaterialID string  `json:"material_id" binding:"required"`
	QuantityKG float64 `json:"quantity_kg" binding:"required,gt=0"`
	Rate       string  `json:"rate" binding:"required"`
}

type CreateSORequest struct {
	CustomerID   string         `json:"customer_id" binding:"required"`
	DeliveryDate string         `json:"delivery_date"` // YYYY-MM-DD
	Notes        string         `json:"notes"`
	Items        []CreateSOItem `json:"items" binding:"required,min=1"`
}

// CreateSO checks the customer's credit headroom before booking the order.
func (s *SalesService) CreateSO(req CreateSORequest, userID string) (*entity.SalesOrder, error) {
	customer, err := s.partnerRepo.GetCustomerByID(req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("customer not found: %w", err)
	}
	if customer.Status != entity.PartnerStatusActive {
		return nil, fmt.Errorf("customer %s is not active", customer.Code)
	}

	now := time.Now()
	so := &entity.SalesOrder{
		ID:         uuid.New().String(),
		Code:       fmt.Sprintf("SO-%s%04d", now.Format("20060102"), now.UnixNano()%10000),
		CustomerID: req.CustomerID,
		Status:     entity.SOStatusDraft,
		OrderDate:  &now,
		Notes:      req.Notes,
		CreatedBy:  userID,
	}
	if req.DeliveryDate != "" {
		if t, err := time.Parse("2006-01-02", req.DeliveryDate); err == nil {
			so.DeliveryDate = &t
		}
	}

	total := decimal.Zero
	for _, item := range req.Items {
		rate, err := decimal.NewFromString(item.Rate)
		if err != nil {
			return nil, fmt.Errorf("invalid rate %q: %w", item.Rate, err)
		}
		amount := rate.Mul(decimal.NewFromFloat(item.QuantityKG))
		so.Items = append(so.Items, entity.SalesOrderItem{
			ID:         uuid.New().String(),
			MaterialID: item.MaterialID,
			QuantityKG: item.QuantityKG,
			Rate:       rate,
			Amount:     amount,
		})
		total = total.Add(amount)
	}
	so.TotalAmount = total

	if !customer.WithinCreditLimit(total) {
		return nil, fmt.Errorf("credit limit exceeded: outstanding %s + order %s > limit %s",
			customer.Outstanding, total, customer.CreditLimit)
	}

	if err := s.salesRepo.CreateSO(so); err != nil {
		return nil, fmt.Errorf("failed to create sales order: %w", err)
	}
	return so, nil
}

func (s *SalesService) ListSOs(params repository.SOListParams) ([]entity.SalesOrder, int64, error) {
	return s.salesRepo.ListSOs(params)
}

func (s *SalesService) GetSO(id string) (*entity.SalesOrder, error) {
	return s.salesRepo.GetSOByID(id)
}

// --- Batch allocation ---

// AllocationSuggestion an advisory pick from the batch ledger
type AllocationSuggestion struct {
	BatchID     string  `json:"batch_id"`
	BatchCode   string  `json:"batch_code"`
	AvailableKG float64 `json:"available_kg"`
	AllocateKG  float64 `json:"allocate_kg"`
}

// SuggestFIFO walks batches in the given order (oldest-received first as
// fetched) and proposes draws until the required weight is covered. Advisory
// only: nothing forces these picks.
func SuggestFIFO(batches []entity.Batch, requiredKG float64) []AllocationSuggestion {
	suggestions := []AllocationSuggestion{}
	remaining := requiredKG
	for i := range batches {
		if remaining <= 0 {
			break
		}
		available := batches[i].AvailableWeightKG
		if available <= 0 {
			continue
		}
		allocate := available
		if allocate > remaining {
			allocate = remaining
		}
		suggestions = append(suggestions, AllocationSuggestion{
			BatchID:     batches[i].ID,
			BatchCode:   batches[i].BatchCode,
			AvailableKG: available,
			AllocateKG:  allocate,
		})
		remaining -= allocate
	}
	return suggestions
}

// SuggestAllocations FIFO batch picks for one order item's open quantity.
func (s *SalesService) SuggestAllocations(soItemID string) ([]AllocationSuggestion, error) {
	var item entity.SalesOrderItem
	if err := s.db.Where("id = ?", soItemID).First(&item).Error; err != nil {
		return nil, fmt.Errorf("order item not found: %w", err)
	}
	batches, err := s.batchRepo.ActiveByMaterials([]string{item.MaterialID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch batches: %w", err)
	}

	allocations, err := s.salesRepo.AllocationsByItem(soItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch allocations: %w", err)
	}
	var allocated float64
	for _, a := range allocations {
		allocated += a.AllocatedKG
	}

	return SuggestFIFO(batches, item.QuantityKG-allocated), nil
}

type AllocateRequest struct {
	SOItemID   string  `json:"so_item_id" binding:"required"`
	BatchID    string  `json:"batch_id" binding:"required"`
	AllocateKG float64 `json:"allocate_kg" binding:"required,gt=0"`
}

// Allocate pins an order item to a batch and moves the weight from available
// to reserved, atomically.
func (s *SalesService) Allocate(req AllocateRequest) (*entity.SalesOrderBatchAllocation, error) {
	batch, err := s.batchRepo.GetByID(req.BatchID)
	if err != nil {
		return nil, fmt.Errorf("batch not found: %w", err)
	}
	if batch.Status != entity.BatchStatusActive {
		return nil, fmt.Errorf("batch %s is not active", batch.BatchCode)
	}
	if batch.AvailableWeightKG < req.AllocateKG {
		return nil, fmt.Errorf("batch %s has %.3f kg available, %.3f kg requested",
			batch.BatchCode, batch.AvailableWeightKG, req.AllocateKG)
	}

	allocation := &entity.SalesOrderBatchAllocation{
		ID:          uuid.New().String(),
		SOItemID:    req.SOItemID,
		BatchID:     batch.ID,
		AllocatedKG: req.AllocateKG,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		batch.AvailableWeightKG -= req.AllocateKG
		batch.ReservedWeightKG += req.AllocateKG
		if err := batch.CheckWeights(); err != nil {
			return err
		}
		if err := tx.Save(batch).Error; err != nil {
			return fmt.Errorf("failed to reserve batch weight: %w", err)
		}
		if err := tx.Create(allocation).Error; err != nil {
			return fmt.Errorf("failed to create allocation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return allocation, nil
}

// --- Order lifecycle ---

func (s *SalesService) ConfirmSO(id string) error {
	so, err := s.salesRepo.GetSOByID(id)
	if err != nil {
		return fmt.Errorf("sales order not found: %w", err)
	}
	if so.Status != entity.SOStatusDraft {
		return fmt.Errorf("sales order is %s, expected %s", so.Status, entity.SOStatusDraft)
	}
	so.Status = entity.SOStatusConfirmed
	return s.salesRepo.UpdateSO(so)
}

// ShipSO consumes the reserved weight of every allocation, closes depleted
// batches, raises the receivable and bumps the customer's outstanding — one
// commit.
func (s *SalesService) ShipSO(id, userID string) error {
	so, err := s.salesRepo.GetSOByID(id)
	if err != nil {
		return fmt.Errorf("sales order not found: %w", err)
	}
	if so.Status != entity.SOStatusConfirmed {
		return fmt.Errorf("sales order is %s, expected %s", so.Status, entity.SOStatusConfirmed)
	}

	allocations, err := s.salesRepo.AllocationsBySO(id)
	if err != nil {
		return fmt.Errorf("failed to fetch allocations: %w", err)
	}
	if len(allocations) == 0 {
		return fmt.Errorf("sales order has no batch allocations")
	}

	customer, err := s.partnerRepo.GetCustomerByID(so.CustomerID)
	if err != nil {
		return fmt.Errorf("customer not found: %w", err)
	}

	now := time.Now()
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, alloc := range allocations {
			var batch entity.Batch
			if err := tx.Where("id = ?", alloc.BatchID).First(&batch).Error; err != nil {
				return fmt.Errorf("allocated batch not found: %w", err)
			}
			if batch.ReservedWeightKG < alloc.AllocatedKG {
				return fmt.Errorf("batch %s reservation underrun", batch.BatchCode)
			}
			batch.ReservedWeightKG -= alloc.AllocatedKG
			batch.TotalWeightKG -= alloc.AllocatedKG
			if batch.AvailableWeightKG == 0 && batch.ReservedWeightKG == 0 {
				batch.Status = entity.BatchStatusDepleted
			}
			if err := batch.CheckWeights(); err != nil {
				return err
			}
			if err := tx.Save(&batch).Error; err != nil {
				return fmt.Errorf("failed to consume batch weight: %w", err)
			}

			outward := &entity.StockTransaction{
				ID:            uuid.New().String(),
				MaterialID:    batch.MaterialID,
				BatchID:       &batch.ID,
				LocationID:    batch.LocationID,
				Type:          entity.TxTypeSalesOut,
				QuantityKG:    -alloc.AllocatedKG,
				ReferenceType: "SO",
				ReferenceID:   so.ID,
				CreatedBy:     userID,
			}
			if err := tx.Create(outward).Error; err != nil {
				return fmt.Errorf("failed to record outward transaction: %w", err)
			}
		}

		so.Status = entity.SOStatusShipped
		so.ShippedDate = &now
		if err := tx.Save(so).Error; err != nil {
			return fmt.Errorf("failed to update sales order: %w", err)
		}

		dueDate := now.AddDate(0, 0, customer.CreditDays)
		receivable := &entity.Receivable{
			ID:         uuid.New().String(),
			CustomerID: so.CustomerID,
			SOID:       &so.ID,
			Amount:     so.TotalAmount,
			DueDate:    dueDate,
			Status:     entity.ReceivableStatusOpen,
		}
		if err := tx.Create(receivable).Error; err != nil {
			return fmt.Errorf("failed to create receivable: %w", err)
		}

		customer.Outstanding = customer.Outstanding.Add(so.TotalAmount)
		if err := tx.Save(customer).Error; err != nil {
			return fmt.Errorf("failed to update customer outstanding: %w", err)
		}
		return nil
	})
}

// CancelSO cancels a draft or confirmed order, releasing any reservations.
func (s *SalesService) CancelSO(id string) error {
	so, err := s.salesRepo.GetSOByID(id)
	if err != nil {
		return fmt.Errorf("sales order not found: %w", err)
	}
	if so.Status != entity.SOStatusDraft && so.Status != entity.SOStatusConfirmed {
		return fmt.Errorf("cannot cancel sales order in status %s", so.Status)
	}

	allocations, err := s.salesRepo.AllocationsBySO(id)
	if err != nil {
		return fmt.Errorf("failed to fetch allocations: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, alloc := range allocations {
			var batch entity.Batch
			if err := tx.Where("id = ?", alloc.BatchID).First(&batch).Error; err != nil {
				return fmt.Errorf("allocated batch not found: %w", err)
			}
			batch.ReservedWeightKG -= alloc.AllocatedKG
			batch.AvailableWeightKG += alloc.AllocatedKG
			if batch.Status == entity.BatchStatusDepleted && batch.AvailableWeightKG > 0 {
				batch.Status = entity.BatchStatusActive
			}
			if err := batch.CheckWeights(); err != nil {
				return err
			}
			if err := tx.Save(&batch).Error; err != nil {
				return fmt.Errorf("failed to release batch weight: %w", err)
			}
			if err := tx.Delete(&entity.SalesOrderBatchAllocation{}, "id = ?", alloc.ID).Error; err != nil {
				return fmt.Errorf("failed to remove allocation: %w", err)
			}
		}
		so.Status = entity.SOStatusCancelled
		return tx.Save(so).Error
	})
}

// --- Receivables ---

func (s *SalesService) ListReceivables(status string, page, size int) ([]entity.Receivable, int64, error) {
	return s.salesRepo.ListReceivables(status, page, size)
}

func (s *SalesService) OverdueReceivables() ([]entity.Receivable, error) {
	return s.salesRepo.OverdueReceivables(time.Now())
}

// RecordReceivablePayment applies a payment and reduces the customer's
// outstanding by the same amount.
func (s *SalesService) RecordReceivablePayment(id, amount string) (*entity.Receivable, error) {
	paid, err := decimal.NewFromString(amount)
	if err != nil || paid.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("invalid payment amount %q", amount)
	}
	rec, err := s.salesRepo.GetReceivableByID(id)
	if err != nil {
		return nil, fmt.Errorf("receivable not found: %w", err)
	}
	if rec.Status == entity.ReceivableStatusPaid {
		return nil, fmt.Errorf("receivable already settled")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		rec.PaidAmount = rec.PaidAmount.Add(paid)
		if rec.PaidAmount.GreaterThanOrEqual(rec.Amount) {
			rec.Status = entity.ReceivableStatusPaid
		} else {
			rec.Status = entity.ReceivableStatusPartial
		}
		if err := tx.Save(rec).Error; err != nil {
			return fmt.Errorf("failed to update receivable: %w", err)
		}

		var customer entity.Customer
		if err := tx.Where("id = ?", rec.CustomerID).First(&customer).Error; err != nil {
			return fmt.Errorf("customer not found: %w", err)
		}
		customer.Outstanding = customer.Outstanding.Sub(paid)
		if customer.Outstanding.LessThan(decimal.Zero) {
			customer.Outstanding = decimal.Zero
		}
		return tx.Save(&customer).Error
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}
