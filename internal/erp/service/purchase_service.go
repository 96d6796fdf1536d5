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

const defaultPayableDays = 30

type PurchaseService struct {
	purchaseRepo *repository.PurchaseRepository
	partnerRepo  *repository.PartnerRepository
	batchRepo    *repository.BatchRepository
	db           *gorm.DB
}

func NewPurchaseService(pr *repository.PurchaseRepository, par *repository.PartnerRepository, br *repository.BatchRepository, db *gorm.DB) *PurchaseService {
	return &PurchaseService{purchaseRepo: pr, partnerRepo: par, batchRepo: br, db: db}
}

// --- Suppliers ---

type CreateSupplierRequest struct {
	Name         string `json:"name" binding:"required"`
	Type         string `json:"type"`
	ContactName  string `json:"contact_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	GSTIN        string `json:"gstin"`
	PaymentTerms string `json:"payment_terms"`
	Notes        string `json:"notes"`
}

func (s *PurchaseService) CreateSupplier(req CreateSupplierRequest, userID string) (*entity.Supplier, error) {
	supplierType := req.Type
	if supplierType == "" {
		supplierType = entity.SupplierTypeStockist
	}
	sup := &entity.Supplier{
		ID:           uuid.New().String(),
		Code:         fmt.Sprintf("SUP-%s%04d", time.Now().Format("20060102"), time.Now().UnixNano()%10000),
		Name:         req.Name,
		Type:         supplierType,
		ContactName:  req.ContactName,
		Phone:        req.Phone,
		Email:        req.Email,
		Address:      req.Address,
		GSTIN:        req.GSTIN,
		PaymentTerms: req.PaymentTerms,
		Status:       entity.PartnerStatusActive,
		Notes:        req.Notes,
		CreatedBy:    userID,
	}
	if err := s.partnerRepo.CreateSupplier(sup); err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}
	return sup, nil
}

func (s *PurchaseService) ListSuppliers(params repository.SupplierListParams) ([]entity.Supplier, int64, error) {
	return s.partnerRepo.ListSuppliers(params)
}

func (s *PurchaseService) GetSupplier(id string) (*entity.Supplier, error) {
	return s.partnerRepo.GetSupplierByID(id)
}

type UpdateSupplierRequest struct {
	Name         *string `json:"name"`
	ContactName  *string `json:"contact_name"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
	Address      *string `json:"address"`
	GSTIN        *string `json:"gstin"`
	PaymentTerms *string `json:"payment_terms"`
	Status       *string `json:"status"`
	Notes        *string `json:"notes"`
}

func (s *PurchaseService) UpdateSupplier(id string, req UpdateSupplierRequest) (*entity.Supplier, error) {
	sup, err := s.partnerRepo.GetSupplierByID(id)
	if err != nil {
		return nil, fmt.Errorf("supplier not found: %w", err)
	}
	if req.Name != nil {
		sup.Name = *req.Name
	}
	if req.ContactName != nil {
		sup.ContactName = *req.ContactName
	}
	if req.Phone != nil {
		sup.Phone = *req.Phone
	}
	if req.Email != nil {
		sup.Email = *req.Email
	}
	if req.Address != nil {
		sup.Address = *req.Address
	}
	if req.GSTIN != nil {
		sup.GSTIN = *req.GSTIN
	}
	if req.PaymentTerms != nil {
		sup.PaymentTerms = *req.PaymentTerms
	}
	if req.Status != nil {
		if *req.Status != entity.PartnerStatusActive && *req.Status != entity.PartnerStatusInactive {
			return nil, fmt.Errorf("invalid supplier status %s", *req.Status)
		}
		sup.Status = *req.Status
	}
	if req.Notes != nil {
		sup.Notes = *req.Notes
	}
	if err := s.partnerRepo.UpdateSupplier(sup); err != nil {
		return nil, fmt.Errorf("failed to update supplier: %w", err)
	}
	return sup, nil
}

func (s *PurchaseService) DeleteSupplier(id string) error {
	return s.partnerRepo.DeleteSupplier(id)
}

// --- Purchase Orders ---

type CreatePOItem struct {
	MaterialID string  `json:"material_id" binding:"required"`
	QuantityKG float64 `json:"quantity_kg" binding:"required,gt=0"`
	Rate       string  `json:"rate" binding:"required"`
}

type CreatePORequest struct {
	SupplierID   string         `json:"supplier_id" binding:"required"`
	ExpectedDate string         `json:"expected_date"` // YYYY-MM-DD
	Notes        string         `json:"notes"`
	Items        []CreatePOItem `json:"items" binding:"required,min=1"`
}

func (s *PurchaseService) CreatePO(req CreatePORequest, userID string) (*entity.PurchaseOrder, error) {
	if _, err := s.partnerRepo.GetSupplierByID(req.SupplierID); err != nil {
		return nil, fmt.Errorf("supplier not found: %w", err)
	}

	now := time.Now()
	po := &entity.PurchaseOrder{
		ID:         uuid.New().String(),
		Code:       fmt.Sprintf("PO-%s%04d", now.Format("20060102"), now.UnixNano()%10000),
		SupplierID: req.SupplierID,
		Status:     entity.POStatusDraft,
		OrderDate:  &now,
		Notes:      req.Notes,
		CreatedBy:  userID,
	}
	if req.ExpectedDate != "" {
		if t, err := time.Parse("2006-01-02", req.ExpectedDate); err == nil {
			po.ExpectedDate = &t
		}
	}

	total := decimal.Zero
	for _, item := range req.Items {
		rate, err := decimal.NewFromString(item.Rate)
		if err != nil {
			return nil, fmt.Errorf("invalid rate %q: %w", item.Rate, err)
		}
		amount := rate.Mul(decimal.NewFromFloat(item.QuantityKG))
		po.Items = append(po.Items, entity.PurchaseOrderItem{
			ID:         uuid.New().String(),
			MaterialID: item.MaterialID,
			QuantityKG: item.QuantityKG,
			Rate:       rate,
			Amount:     amount,
		})
		total = total.Add(amount)
	}
	po.TotalAmount = total

	if err := s.purchaseRepo.CreatePO(po); err != nil {
		return nil, fmt.Errorf("failed to create purchase order: %w", err)
	}
	return po, nil
}

func (s *PurchaseService) ListPOs(params repository.POListParams) ([]entity.PurchaseOrder, int64, error) {
	return s.purchaseRepo.ListPOs(params)
}

func (s *PurchaseService) GetPO(id string) (*entity.PurchaseOrder, error) {
	return s.purchaseRepo.GetPOByID(id)
}

// poTransitions guarded PO status walk
var poTransitions = map[string]string{
	entity.POStatusDraft:    entity.POStatusPending,
	entity.POStatusPending:  entity.POStatusApproved,
	entity.POStatusApproved: entity.POStatusOrdered,
}

func (s *PurchaseService) advancePO(id, from, to, userID string) error {
	po, err := s.purchaseRepo.GetPOByID(id)
	if err != nil {
		return fmt.Errorf("purchase order not found: %w", err)
	}
	if po.Status != from {
		return fmt.Errorf("purchase order is %s, expected %s", po.Status, from)
	}
	po.Status = to
	if to == entity.POStatusApproved {
		now := time.Now()
		po.ApprovedBy = userID
		po.ApprovedAt = &now
	}
	return s.purchaseRepo.UpdatePO(po)
}

func (s *PurchaseService) SubmitPO(id, userID string) error {
	return s.advancePO(id, entity.POStatusDraft, entity.POStatusPending, userID)
}

func (s *PurchaseService) ApprovePO(id, userID string) error {
	return s.advancePO(id, entity.POStatusPending, entity.POStatusApproved, userID)
}

func (s *PurchaseService) MarkOrdered(id, userID string) error {
	return s.advancePO(id, entity.POStatusApproved, entity.POStatusOrdered, userID)
}

func (s *PurchaseService) CancelPO(id string) error {
	po, err := s.purchaseRepo.GetPOByID(id)
	if err != nil {
		return fmt.Errorf("purchase order not found: %w", err)
	}
	if po.Status == entity.POStatusReceived || po.Status == entity.POStatusCancelled {
		return fmt.Errorf("cannot cancel purchase order in status %s", po.Status)
	}
	po.Status = entity.POStatusCancelled
	return s.purchaseRepo.UpdatePO(po)
}

// --- Goods receipt ---

type ReceiveItemRequest struct {
	ItemID       string  `json:"item_id" binding:"required"`
	ReceivedKG   float64 `json:"received_kg" binding:"required,gt=0"`
	LocationID   string  `json:"location_id" binding:"required"`
	HeatNumber   string  `json:"heat_number"`
	Make         string  `json:"make"`
	QualityGrade string  `json:"quality_grade"`
}

type ReceivePORequest struct {
	InvoiceNumber string               `json:"invoice_number"`
	Items         []ReceiveItemRequest `json:"items" binding:"required,min=1"`
}

// ReceivePO books a goods receipt: one batch per received line, inward ledger
// entries, the supplier invoice and its payable, all in one commit.
func (s *PurchaseService) ReceivePO(id string, req ReceivePORequest, userID string) (*entity.PurchaseOrder, error) {
	po, err := s.purchaseRepo.GetPOByID(id)
	if err != nil {
		return nil, fmt.Errorf("purchase order not found: %w", err)
	}
	if po.Status != entity.POStatusOrdered && po.Status != entity.POStatusApproved {
		return nil, fmt.Errorf("cannot receive purchase order in status %s", po.Status)
	}

	itemsByID := make(map[string]*entity.PurchaseOrderItem, len(po.Items))
	for i := range po.Items {
		itemsByID[po.Items[i].ID] = &po.Items[i]
	}
	for _, rec := range req.Items {
		if _, ok := itemsByID[rec.ItemID]; !ok {
			return nil, fmt.Errorf("item %s does not belong to this order", rec.ItemID)
		}
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, rec := range req.Items {
			item := itemsByID[rec.ItemID]

			code, err := s.batchRepo.NextCode()
			if err != nil {
				return fmt.Errorf("failed to generate batch code: %w", err)
			}
			grade := rec.QualityGrade
			if grade == "" {
				grade = entity.QualityGradeA
			}
			batch := &entity.Batch{
				ID:                uuid.New().String(),
				BatchCode:         code,
				MaterialID:        item.MaterialID,
				LocationID:        rec.LocationID,
				TotalWeightKG:     rec.ReceivedKG,
				AvailableWeightKG: rec.ReceivedKG,
				QualityGrade:      grade,
				ComplianceStatus:  entity.CompliancePending,
				Make:              rec.Make,
				HeatNumber:        rec.HeatNumber,
				SupplierID:        &po.SupplierID,
				ReceivedDate:      &now,
				Status:            entity.BatchStatusActive,
				CreatedBy:         userID,
			}
			if err := tx.Create(batch).Error; err != nil {
				return fmt.Errorf("failed to create batch: %w", err)
			}

			item.ReceivedKG += rec.ReceivedKG
			if err := tx.Save(item).Error; err != nil {
				return fmt.Errorf("failed to update order item: %w", err)
			}

			unitCost, _ := item.Rate.Float64()
			inward := &entity.StockTransaction{
				ID:            uuid.New().String(),
				MaterialID:    item.MaterialID,
				BatchID:       &batch.ID,
				LocationID:    rec.LocationID,
				Type:          entity.TxTypePurchaseIn,
				QuantityKG:    rec.ReceivedKG,
				UnitCost:      unitCost,
				ReferenceType: "PO",
				ReferenceID:   po.ID,
				CreatedBy:     userID,
			}
			if err := tx.Create(inward).Error; err != nil {
				return fmt.Errorf("failed to record inward transaction: %w", err)
			}
		}

		po.Status = entity.POStatusReceived
		po.ReceivedDate = &now
		if err := tx.Save(po).Error; err != nil {
			return fmt.Errorf("failed to update purchase order: %w", err)
		}

		invoiceCode := req.InvoiceNumber
		if invoiceCode == "" {
			invoiceCode = fmt.Sprintf("PI-%s%04d", now.Format("20060102"), now.UnixNano()%10000)
		}
		invoice := &entity.PurchaseInvoice{
			ID:          uuid.New().String(),
			Code:        invoiceCode,
			POID:        &po.ID,
			SupplierID:  po.SupplierID,
			Amount:      po.TotalAmount,
			InvoiceDate: now,
		}
		if err := tx.Create(invoice).Error; err != nil {
			return fmt.Errorf("failed to create purchase invoice: %w", err)
		}

		payable := &entity.Payable{
			ID:         uuid.New().String(),
			SupplierID: po.SupplierID,
			InvoiceID:  &invoice.ID,
			Amount:     po.TotalAmount,
			DueDate:    now.AddDate(0, 0, defaultPayableDays),
			Status:     entity.PayableStatusOpen,
		}
		if err := tx.Create(payable).Error; err != nil {
			return fmt.Errorf("failed to create payable: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return po, nil
}

// --- Returns ---

type CreateReturnRequest struct {
	SupplierID string  `json:"supplier_id" binding:"required"`
	POID       *string `json:"po_id"`
	BatchID    string  `json:"batch_id" binding:"required"`
	QuantityKG float64 `json:"quantity_kg" binding:"required,gt=0"`
	Amount     string  `json:"amount"`
	Reason     string  `json:"reason" binding:"required"`
}

// CreateReturn sends material back to a supplier: the batch decrement, the
// return record and the outward ledger entry commit atomically.
func (s *PurchaseService) CreateReturn(req CreateReturnRequest, userID string) (*entity.PurchaseReturn, error) {
	batch, err := s.batchRepo.GetByID(req.BatchID)
	if err != nil {
		return nil, fmt.Errorf("batch not found: %w", err)
	}
	if batch.AvailableWeightKG < req.QuantityKG {
		return nil, fmt.Errorf("batch %s has %.3f kg available, %.3f kg requested",
			batch.BatchCode, batch.AvailableWeightKG, req.QuantityKG)
	}

	amount := decimal.Zero
	if req.Amount != "" {
		a, err := decimal.NewFromString(req.Amount)
		if err != nil {
			return nil, fmt.Errorf("invalid amount: %w", err)
		}
		amount = a
	}

	now := time.Now()
	ret := &entity.PurchaseReturn{
		ID:         uuid.New().String(),
		Code:       fmt.Sprintf("PR-%s%04d", now.Format("20060102"), now.UnixNano()%10000),
		POID:       req.POID,
		SupplierID: req.SupplierID,
		BatchID:    &batch.ID,
		QuantityKG: req.QuantityKG,
		Amount:     amount,
		Reason:     req.Reason,
		ReturnDate: now,
		CreatedBy:  userID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		batch.AvailableWeightKG -= req.QuantityKG
		batch.TotalWeightKG -= req.QuantityKG
		if batch.AvailableWeightKG == 0 && batch.ReservedWeightKG == 0 {
			batch.Status = entity.BatchStatusDepleted
		}
		if err := batch.CheckWeights(); err != nil {
			return err
		}
		if err := tx.Save(batch).Error; err != nil {
			return fmt.Errorf("failed to update batch: %w", err)
		}
		if err := tx.Create(ret).Error; err != nil {
			return fmt.Errorf("failed to create return: %w", err)
		}
		outward := &entity.StockTransaction{
			ID:            uuid.New().String(),
			MaterialID:    batch.MaterialID,
			BatchID:       &batch.ID,
			LocationID:    batch.LocationID,
			Type:          entity.TxTypePurchaseReturn,
			QuantityKG:    -req.QuantityKG,
			ReferenceType: "PURCHASE_RETURN",
			ReferenceID:   ret.ID,
			Notes:         req.Reason,
			CreatedBy:     userID,
		}
		if err := tx.Create(outward).Error; err != nil {
			return fmt.Errorf("failed to record return transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

func (s *PurchaseService) ListReturns(supplierID string, page, size int) ([]entity.PurchaseReturn, int64, error) {
	return s.purchaseRepo.ListReturns(supplierID, page, size)
}

// --- Payables ---

func (s *PurchaseService) ListPayables(status string, page, size int) ([]entity.Payable, int64, error) {
	return s.purchaseRepo.ListPayables(status, page, size)
}

func (s *PurchaseService) OverduePayables() ([]entity.Payable, error) {
	return s.purchaseRepo.OverduePayables(time.Now())
}

// RecordPayablePayment applies a payment and settles the payable when covered.
func (s *PurchaseService) RecordPayablePayment(id, amount string) (*entity.Payable, error) {
	paid, err := decimal.NewFromString(amount)
	if err != nil || paid.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("invalid payment amount %q", amount)
	}
	p, err := s.purchaseRepo.GetPayableByID(id)
	if err != nil {
		return nil, fmt.Errorf("payable not found: %w", err)
	}
	if p.Status == entity.PayableStatusPaid {
		return nil, fmt.Errorf("payable already settled")
	}
	p.PaidAmount = p.PaidAmount.Add(paid)
	if p.PaidAmount.GreaterThanOrEqual(p.Amount) {
		p.Status = entity.PayableStatusPaid
	} else {
		p.Status = entity.PayableStatusPartial
	}
	if err := s.purchaseRepo.UpdatePayable(p); err != nil {
		return nil, fmt.Errorf("failed to update payable: %w", err)
	}
	return p, nil
}
