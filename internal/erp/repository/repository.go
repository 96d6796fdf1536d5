package repository

import "gorm.io/gorm"

// Repositories query layer per aggregate
type Repositories struct {
	Material  *MaterialRepository
	Batch     *BatchRepository
	Inventory *InventoryRepository
	Partner   *PartnerRepository
	Purchase  *PurchaseRepository
	Sales     *SalesRepository
	Quotation *QuotationRepository
	JobWork   *JobWorkRepository
	Calendar  *CalendarRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Material:  NewMaterialRepository(db),
		Batch:     NewBatchRepository(db),
		Inventory: NewInventoryRepository(db),
		Partner:   NewPartnerRepository(db),
		Purchase:  NewPurchaseRepository(db),
		Sales:     NewSalesRepository(db),
		Quotation: NewQuotationRepository(db),
		JobWork:   NewJobWorkRepository(db),
		Calendar:  NewCalendarRepository(db),
	}
}
