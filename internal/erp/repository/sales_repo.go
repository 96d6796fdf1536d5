package repository

import (
	"time"

	"github.com/ferroline/ferro-erp/internal/erp/entity"
	"gorm.io/gorm"
)

type SalesRepository struct {
	db *gorm.DB
}

func NewSalesRepository(db *gorm.DB) *SalesRepository {
	return &SalesRepository{db: db}
}

func (r *SalesRepository) CreateSO(so *entity.SalesOrder) error {
	return r.db.Create(so).Error
}

func (r *SalesRepository) GetSOByID(id string) (*entity.SalesOrder, error) {
	var so entity.SalesOrder
	err := r.db.Preload("Customer").Preload("Items").Preload("Items.Material").
		Where("id = ? AND deleted_at IS NULL", id).First(&so).Error
	if err != nil {
		return nil, err
	}
	return &so, nil
}

func (r *SalesRepository) UpdateSO(so *entity.SalesOrder) error {
	return r.db.Save(so).Error
}

type SOListParams struct {
	Status     string
	CustomerID string
	Keyword    string
	Page       int
	Size       int
}

func (r *SalesRepository) ListSOs(params SOListParams) ([]entity.SalesOrder, int64, error) {
	query := r.db.Model(&entity.SalesOrder{}).Where("deleted_at IS NULL")
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.CustomerID != "" {
		query = query.Where("customer_id = ?", params.CustomerID)
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
	var sos []entity.SalesOrder
	err := query.Preload("Customer").Preload("Items").
		Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&sos).Error
	return sos, total, err
}

// --- Allocations ---

func (r *SalesRepository) CreateAllocation(a *entity.SalesOrderBatchAllocation) error {
	return r.db.Create(a).Error
}

func (r *SalesRepository) AllocationsByItem(soItemID string) ([]entity.SalesOrderBatchAllocation, error) {
	var allocations []entity.SalesOrderBatchAllocation
	err := r.db.Preload("Batch").
		Where("so_item_id = ?", soItemID).Find(&allocations).Error
	return allocations, err
}

// AllocationsBySO all allocations across an order's items.
func (r *SalesRepository) AllocationsBySO(soID string) ([]entity.SalesOrderBatchAllocation, error) {
	var allocations []entity.SalesOrderBatchAllocation
	err := r.db.Preload("Batch").
		Joins("JOIN sales_order_items soi ON soi.id = sales_order_batch_allocations.so_item_id").
		Where("soi.so_id = ?", soID).
		Find(&allocations).Error
	return allocations, err
}

// --- Receivables ---

func (r *SalesRepository) CreateReceivable(rec *entity.Receivable) error {
	return r.db.Create(rec).Error
}

func (r *SalesRepository) UpdateReceivable(rec *entity.Receivable) error {
	return r.db.Save(rec).Error
}

func (r *SalesRepository) GetReceivableByID(id string) (*entity.Receivable, error) {
	var rec entity.Receivable
	err := r.db.Preload("Customer").Where("id = ?", id).First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *SalesRepository) ListReceivables(status string, page, size int) ([]entity.Receivable, int64, error) {
	query := r.db.Model(&entity.Receivable{})
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
	var receivables []entity.Receivable
	err := query.Preload("Customer").Order("due_date ASC").
		Offset((page - 1) * size).Limit(size).Find(&receivables).Error
	return receivables, total, err
}

// OverdueReceivables open/partial receivables past their due date.
func (r *SalesRepository) OverdueReceivables(asOf time.Time) ([]entity.Receivable, error) {
	var receivables []entity.Receivable
	err := r.db.Preload("Customer").
		Where("status IN ? AND due_date < ?",
			[]string{entity.ReceivableStatusOpen, entity.ReceivableStatusPartial}, asOf).
		Order("due_date ASC").Find(&receivables).Error
	return receivables, err
}

// OpenSOCount orders confirmed or still in draft.
func (r *SalesRepository) OpenSOCount() (int64, error) {
	var count int64
	err := r.db.Model(&entity.SalesOrder{}).
		Where("status IN ? AND deleted_at IS NULL",
			[]string{entity.SOStatusDraft, entity.SOStatusConfirmed}).
		Count(&count).Error
	return count, err
}

// OutstandingReceivableTotal unsettled amount across open/partial receivables.
func (r *SalesRepository) OutstandingReceivableTotal() (float64, error) {
	var result struct{ Total float64 }
	err := r.db.Raw(`
		SELECT COALESCE(SUM(amount - paid_amount), 0) AS total
		FROM receivables
		WHERE status IN (?, ?)
	`, entity.ReceivableStatusOpen, entity.ReceivableStatusPartial).Scan(&result).Error
	return result.Total, err
}

// SalesTotalSince summed order value of non-cancelled orders since a date.
func (r *SalesRepository) SalesTotalSince(since time.Time) (float64, error) {
	var result struct{ Total float64 }
	err := r.db.Raw(`
		SELECT COALESCE(SUM(total_amount), 0) AS total
		FROM sales_orders
		WHERE created_at >= ? AND status <> ? AND deleted_at IS NULL
	`, since, entity.SOStatusCancelled).Scan(&result).Error
	return result.Total, err
}

// DB returns the underlying handle for transactional flows.
func (r *SalesRepository) DB() *gorm.DB {
	return r.db
}
