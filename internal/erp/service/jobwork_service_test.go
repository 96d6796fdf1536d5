package service

import (
	"testing"
	"time"

	"github.com/ferroline/ferro-erp/internal/erp/entity"
	"github.com/ferroline/ferro-erp/internal/erp/repository"
	"github.com/ferroline/ferro-erp/internal/testutil"
	"gorm.io/gorm"
)

func setupJobWorkService(t *testing.T) (*JobWorkService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewJobWorkService(
		repository.NewJobWorkRepository(db),
		repository.NewBatchRepository(db),
		repository.NewPartnerRepository(db),
		db,
	), db
}

func seedJobWorkFixtures(t *testing.T, db *gorm.DB) (contractor *entity.Supplier, batch *entity.Batch, output *entity.Material, loc *entity.Location) {
	t.Helper()
	input := testutil.SeedMaterial(t, db, "aaaaaaaa-0000-0000-0000-000000000001", "SH-HR-3MM", "HR Sheet 3mm", entity.CategorySheet)
	output = testutil.SeedMaterial(t, db, "aaaaaaaa-0000-0000-0000-000000000002", "ST-SLIT-50", "Slit Strip 50mm", entity.CategoryFlat)
	loc = testutil.SeedLocation(t, db, "bbbbbbbb-0000-0000-0000-000000000001", "Main Yard")

	contractor = &entity.Supplier{
		ID:     "cccccccc-0000-0000-0000-000000000001",
		Code:   "SUP-CONTRACTOR-1",
		Name:   "Slitting Works",
		Type:   entity.SupplierTypeContractor,
		Status: entity.PartnerStatusActive,
	}
	if err := db.Create(contractor).Error; err != nil {
		t.Fatalf("seed contractor: %v", err)
	}

	now := time.Now()
	batch = &entity.Batch{
		ID:                "dddddddd-0000-0000-0000-000000000001",
		BatchCode:         "B20250101-00001",
		MaterialID:        input.ID,
		LocationID:        loc.ID,
		TotalWeightKG:     500,
		AvailableWeightKG: 500,
		QualityGrade:      entity.QualityGradeA,
		ComplianceStatus:  entity.ComplianceVerified,
		ReceivedDate:      &now,
		Status:            entity.BatchStatusActive,
	}
	if err := db.Create(batch).Error; err != nil {
		t.Fatalf("seed batch: %v", err)
	}
	return contractor, batch, output, loc
}

func TestJobWorkCreateDecrementsBatch(t *testing.T) {
	svc, db := setupJobWorkService(t)
	contractor, batch, output, _ := seedJobWorkFixtures(t, db)

	jw, err := svc.Create(CreateJobWorkRequest{
		ContractorID:     contractor.ID,
		InputBatchID:     batch.ID,
		InputWeightKG:    200,
		OutputMaterialID: output.ID,
		ExpectedOutputKG: 190,
		ProcessType:      entity.ProcessSlitting,
	}, "tester")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if jw.Status != entity.JobWorkStatusSent {
		t.Errorf("status = %s, want SENT", jw.Status)
	}

	var got entity.Batch
	if err := db.Where("id = ?", batch.ID).First(&got).Error; err != nil {
		t.Fatalf("reload batch: %v", err)
	}
	if got.AvailableWeightKG != 300 {
		t.Errorf("available = %v, want 300", got.AvailableWeightKG)
	}

	var tx entity.StockTransaction
	if err := db.Where("reference_id = ?", jw.ID).First(&tx).Error; err != nil {
		t.Fatalf("outward transaction missing: %v", err)
	}
	if tx.Type != entity.TxTypeJobWorkOutward || tx.QuantityKG != -200 {
		t.Errorf("transaction = %s %v, want JOB_WORK_OUTWARD -200", tx.Type, tx.QuantityKG)
	}
}

func TestJobWorkCreateRejectsOverdraw(t *testing.T) {
	svc, db := setupJobWorkService(t)
	contractor, batch, output, _ := seedJobWorkFixtures(t, db)

	_, err := svc.Create(CreateJobWorkRequest{
		ContractorID:     contractor.ID,
		InputBatchID:     batch.ID,
		InputWeightKG:    600,
		OutputMaterialID: output.ID,
		ExpectedOutputKG: 550,
		ProcessType:      entity.ProcessCutting,
	}, "tester")
	if err == nil {
		t.Fatal("overdraw accepted")
	}

	var got entity.Batch
	db.Where("id = ?", batch.ID).First(&got)
	if got.AvailableWeightKG != 500 {
		t.Errorf("batch touched by failed create: available = %v", got.AvailableWeightKG)
	}
}

func TestJobWorkStatusGuards(t *testing.T) {
	svc, db := setupJobWorkService(t)
	contractor, batch, output, _ := seedJobWorkFixtures(t, db)

	jw, err := svc.Create(CreateJobWorkRequest{
		ContractorID:     contractor.ID,
		InputBatchID:     batch.ID,
		InputWeightKG:    100,
		OutputMaterialID: output.ID,
		ExpectedOutputKG: 95,
		ProcessType:      entity.ProcessBending,
	}, "tester")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// SENT cannot jump to QUALITY_CHECK
	if err := svc.UpdateStatus(jw.ID, entity.JobWorkStatusQualityCheck); err == nil {
		t.Error("SENT -> QUALITY_CHECK accepted")
	}
	// completion must use Complete
	if err := svc.UpdateStatus(jw.ID, entity.JobWorkStatusCompleted); err == nil {
		t.Error("UpdateStatus allowed COMPLETED")
	}
	if err := svc.UpdateStatus(jw.ID, entity.JobWorkStatusProcessing); err != nil {
		t.Fatalf("SENT -> PROCESSING rejected: %v", err)
	}
	if err := svc.UpdateStatus(jw.ID, entity.JobWorkStatusQualityCheck); err != nil {
		t.Fatalf("PROCESSING -> QUALITY_CHECK rejected: %v", err)
	}
}

func TestJobWorkCompleteCreatesOutputBatch(t *testing.T) {
	svc, db := setupJobWorkService(t)
	contractor, batch, output, loc := seedJobWorkFixtures(t, db)

	jw, err := svc.Create(CreateJobWorkRequest{
		ContractorID:     contractor.ID,
		InputBatchID:     batch.ID,
		InputWeightKG:    150,
		OutputMaterialID: output.ID,
		ExpectedOutputKG: 140,
		ProcessType:      entity.ProcessSlitting,
	}, "tester")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.UpdateStatus(jw.ID, entity.JobWorkStatusProcessing); err != nil {
		t.Fatal(err)
	}
	if err := svc.UpdateStatus(jw.ID, entity.JobWorkStatusQualityCheck); err != nil {
		t.Fatal(err)
	}

	done, err := svc.Complete(jw.ID, CompleteJobWorkRequest{
		ActualOutputKG: 142,
		LocationID:     loc.ID,
		QualityGrade:   entity.QualityGradeB,
	}, "tester")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if done.Status != entity.JobWorkStatusCompleted {
		t.Errorf("status = %s, want COMPLETED", done.Status)
	}
	if done.OutputBatchID == nil {
		t.Fatal("output batch not linked")
	}

	var out entity.Batch
	if err := db.Where("id = ?", *done.OutputBatchID).First(&out).Error; err != nil {
		t.Fatalf("output batch missing: %v", err)
	}
	if out.MaterialID != output.ID || out.AvailableWeightKG != 142 {
		t.Errorf("output batch = material %s avail %v", out.MaterialID, out.AvailableWeightKG)
	}
	if out.QualityGrade != entity.QualityGradeB {
		t.Errorf("quality grade = %s, want B", out.QualityGrade)
	}

	var inward entity.StockTransaction
	err = db.Where("reference_id = ? AND type = ?", jw.ID, entity.TxTypeJobWorkInward).
		First(&inward).Error
	if err != nil {
		t.Fatalf("inward transaction missing: %v", err)
	}
	if inward.QuantityKG != 142 {
		t.Errorf("inward quantity = %v, want 142", inward.QuantityKG)
	}
}

func TestJobWorkIdenticalCreatesBookSeparately(t *testing.T) {
	svc, db := setupJobWorkService(t)
	contractor, batch, output, _ := seedJobWorkFixtures(t, db)

	req := CreateJobWorkRequest{
		ContractorID:     contractor.ID,
		InputBatchID:     batch.ID,
		InputWeightKG:    100,
		OutputMaterialID: output.ID,
		ExpectedOutputKG: 95,
		ProcessType:      entity.ProcessSlitting,
	}
	first, err := svc.Create(req, "tester")
	if err != nil {
		t.Fatalf("first Create: %v", err)
	}
	second, err := svc.Create(req, "tester")
	if err != nil {
		t.Fatalf("second identical Create: %v", err)
	}
	if first.ID == second.ID {
		t.Fatal("identical creates collapsed into one job work")
	}

	var count int64
	db.Model(&entity.JobWorkTransformation{}).Count(&count)
	if count != 2 {
		t.Errorf("job work count = %d, want 2", count)
	}

	var got entity.Batch
	if err := db.Where("id = ?", batch.ID).First(&got).Error; err != nil {
		t.Fatalf("reload batch: %v", err)
	}
	if got.AvailableWeightKG != 300 {
		t.Errorf("available = %v, want 300 after two 100kg draws", got.AvailableWeightKG)
	}
}

func TestJobWorkDirectReturn(t *testing.T) {
	svc, db := setupJobWorkService(t)
	contractor, batch, output, loc := seedJobWorkFixtures(t, db)

	jw, err := svc.Create(CreateJobWorkRequest{
		ContractorID:     contractor.ID,
		InputBatchID:     batch.ID,
		InputWeightKG:    50,
		OutputMaterialID: output.ID,
		ExpectedOutputKG: 50,
		ProcessType:      entity.ProcessCutting,
	}, "tester")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	done, err := svc.Complete(jw.ID, CompleteJobWorkRequest{
		ActualOutputKG: 50,
		LocationID:     loc.ID,
	}, "tester")
	if err != nil {
		t.Fatalf("Complete from SENT: %v", err)
	}
	if done.Status != entity.JobWorkStatusReturned {
		t.Errorf("status = %s, want RETURNED for direct inward path", done.Status)
	}
}
