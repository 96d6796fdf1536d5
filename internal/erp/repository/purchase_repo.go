package repository

import (
	"time"

	"github.com/ferroline/ferro-erp/internal/erp/entity"
	"gorm.io/gorm"
)

type PurchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

func (r *PurchaseRepository) CreatePO(po *entity.PurchaseOrder) error {
	return r.db.Create(po).Error
}

func (r *PurchaseRepository) GetPOByID(id string) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := r.db.Preload("Supplier").Preload("Items").Preload("Items.Material").
		Where("id = ? AND deleted_at IS NULL", id).First(&po).Error
	if err != nil {
		return nil, err
	}
	return &po, nil
}

func (r *PurchaseRepository) UpdatePO(po *entity.PurchaseOrder) error {
	return r.db.Save(po).Error
}

type POListParams struct {
	Status     string
	SupplierID string
	Keyword    string
	Page       int
	Size       int
}

func (r *PurchaseRepository) ListPOs(params POListParams) ([]entity.PurchaseOrder, int64, error) {
	query := r.db.Model(&entity.PurchaseOrder{}).Where("deleted_at IS NULL")
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.SupplierID != "" {
		query = query.Where("supplier_id = ?", params.SupplierID)
	}
	if params.Keyword != "" {
		query = query.Where("code ILIKE ?", "%"+params.Keyword+"%")
	}
	var total int64
	query.Count(&total)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var pos []entity.PurchaseOrder
	err := query.Preload("Supplier").Preload("Items").
		Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&pos).Error
	return pos, total, err
}

// PendingItemsByMaterials open PO lines feeding the on-order quantity of the
// stock aggregator: items on orders in pending/approved/ordered states.
func (r *PurchaseRepository) PendingItemsByMaterials(materialIDs []string) ([]entity.PurchaseOrderItem, error) {
	var items []entity.PurchaseOrderItem
	err := r.db.
		Joins("JOIN purchase_orders po ON po.id = purchase_order_items.po_id").
		Where("purchase_order_items.material_id IN ?", materialIDs).
		Where("po.status IN ? AND po.deleted_at IS NULL",
			[]string{entity.POStatusPending, entity.POStatusApproved, entity.POStatusOrdered}).
		Find(&items).Error
	return items, err
}

// --- Finance ---

func (r *PurchaseRepository) CreateInvoice(inv *entity.PurchaseInvoice) error {
	return r.db.Create(inv).Error
}

func (r *PurchaseRepository) CreatePayable(p *entity.Payable) error {
	return r.db.Create(p).Error
}

func (r *PurchaseRepository) UpdatePayable(p *entity.Payable) error {
	return r.db.Save(p).Error
}

func (r *PurchaseRepository) GetPayableByID(id string) (*entity.Payable, error) {
	var p entity.Payable
	err := r.db.Preload("Supplier").Where("id = ?", id).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PurchaseRepository) ListPayables(status string, page, size int) ([]entity.Payable, int64, error) {
	query := r.db.Model(&entity.Payable{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var total int64
	query.Count(&total)
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	var payables []entity.Payable
	err := query.Preload("Supplier").Order("due_date ASC").
		Offset((page - 1) * size).Limit(size).Find(&payables).Error
	return payables, total, err
}

// OverduePayables open/partial payables past their due date.
func (r *PurchaseRepository) OverduePayables(asOf time.Time) ([]entity.Payable, error) {
	var payables []entity.Payable
	err := r.db.Preload("Supplier").
		Where("status IN ? AND due_date < ?",
			[]string{entity.PayableStatusOpen, entity.PayableStatusPartial}, asOf).
		Order("due_date ASC").Find(&payables).Error
	return payables, err
}

// OpenPOCount orders still moving through the pipeline.
func (r *PurchaseRepository) OpenPOCount() (int64, error) {
	var count int64
	err := r.db.Model(&entity.PurchaseOrder{}).
		Where("status IN ? AND deleted_at IS NULL",
			[]string{entity.POStatusPending, entity.POStatusApproved, entity.POStatusOrdered}).
		Count(&count).Error
	return count, err
}

// OutstandingPayableTotal unsettled amount across open/partial payables.
func (r *PurchaseRepository) OutstandingPayableTotal() (float64, error) {
	var result struct{ Total float64 }
	err := r.db.Raw(`
		SELECT COALESCE(SUM(amount - paid_amount), 0) AS total
		FROM payables
		WHERE status IN (?, ?)
	`, entity.PayableStatusOpen, entity.PayableStatusPartial).Scan(&result).Error
	return result.Total, err
}

func (r *PurchaseRepository) CreateReturn(ret *entity.PurchaseReturn) error {
	return r.db.Create(ret).Error
}

func (r *PurchaseRepository) ListReturns(supplierID string, page, size int) ([]entity.PurchaseReturn, int64, error) {
	query := r.db.Model(&entity.PurchaseReturn{})
	if supplierID != "" {
		query = query.Where("supplier_id = ?", supplierID)
	}
	var total int64
	query.Count(&total)
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	var returns []entity.PurchaseReturn
	err := query.Order("return_date DESC").
		Offset((page - 1) * size).Limit(size).Find(&returns).Error
	return returns, total, err
}

// DB returns the underlying handle for transactional flows.
func (r *PurchaseRepository) DB() *gorm.DB {
	return r.db
}
