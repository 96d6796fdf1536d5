package entity

import "gorm.io/gorm"

// AutoMigrate migrates every table plus the batch-code sequence.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		// catalog
		&Material{},
		&Location{},

		// partners
		&Supplier{},
		&Customer{},

		// stock
		&Batch{},
		&Inventory{},
		&StockTransaction{},

		// purchasing
		&PurchaseOrder{},
		&PurchaseOrderItem{},
		&PurchaseInvoice{},
		&Payable{},
		&PurchaseReturn{},

		// sales
		&SalesOrder{},
		&SalesOrderItem{},
		&SalesOrderBatchAllocation{},
		&Receivable{},

		// CRM
		&Quotation{},
		&QuotationReminder{},
		&BusinessCalendarEvent{},

		// job work
		&JobWorkTransformation{},
	); err != nil {
		return err
	}
	// batch codes come from a server-side sequence
	return db.Exec("CREATE SEQUENCE IF NOT EXISTS batch_code_seq START 1").Error
}
