package repository

import (
	"github.com/ferroline/ferro-erp/internal/erp/entity"
	"gorm.io/gorm"
)

// PartnerRepository suppliers and customers
type PartnerRepository struct {
	db *gorm.DB
}

func NewPartnerRepository(db *gorm.DB) *PartnerRepository {
	return &PartnerRepository{db: db}
}

// --- Supplier ---

func (r *PartnerRepository) CreateSupplier(s *entity.Supplier) error {
	return r.db.Create(s).Error
}

func (r *PartnerRepository) GetSupplierByID(id string) (*entity.Supplier, error) {
	var s entity.Supplier
	err := r.db.Where("id = ? AND deleted_at IS NULL", id).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PartnerRepository) UpdateSupplier(s *entity.Supplier) error {
	return r.db.Save(s).Error
}

func (r *PartnerRepository) DeleteSupplier(id string) error {
	return r.db.Where("id = ?", id).Delete(&entity.Supplier{}).Error
}

type SupplierListParams struct {
	Status  string
	Type    string
	Keyword string
	Page    int
	Size    int
}

func (r *PartnerRepository) ListSuppliers(params SupplierListParams) ([]entity.Supplier, int64, error) {
	query := r.db.Model(&entity.Supplier{}).Where("deleted_at IS NULL")
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Type != "" {
		query = query.Where("type = ?", params.Type)
	}
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ?", kw, kw)
	}
	var total int64
	query.Count(&total)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var suppliers []entity.Supplier
	err := query.Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&suppliers).Error
	return suppliers, total, err
}

// --- Customer ---

func (r *PartnerRepository) CreateCustomer(c *entity.Customer) error {
	return r.db.Create(c).Error
}

func (r *PartnerRepository) GetCustomerByID(id string) (*entity.Customer, error) {
	var c entity.Customer
	err := r.db.Where("id = ? AND deleted_at IS NULL", id).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PartnerRepository) UpdateCustomer(c *entity.Customer) error {
	return r.db.Save(c).Error
}

func (r *PartnerRepository) DeleteCustomer(id string) error {
	return r.db.Where("id = ?", id).Delete(&entity.Customer{}).Error
}

type CustomerListParams struct {
	Status  string
	Keyword string
	Page    int
	Size    int
}

func (r *PartnerRepository) ListCustomers(params CustomerListParams) ([]entity.Customer, int64, error) {
	query := r.db.Model(&entity.Customer{}).Where("deleted_at IS NULL")
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ?", kw, kw)
	}
	var total int64
	query.Count(&total)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var customers []entity.Customer
	err := query.Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&customers).Error
	return customers, total, err
}
