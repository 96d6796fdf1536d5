package service

import (
	"github.com/ferroline/ferro-erp/internal/config"
	"github.com/ferroline/ferro-erp/internal/erp/repository"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Services the full service set behind the HTTP layer
type Services struct {
	Material  *MaterialService
	Batch     *BatchService
	BatchCode *BatchCodeService
	Inventory *InventoryService
	Stock     *StockService
	Purchase  *PurchaseService
	Sales     *SalesService
	Quotation *QuotationService
	JobWork   *JobWorkService
	Calendar  *CalendarService
	KPI       *KPIService
	Report    *ReportService
	Notifier  Notifier
}

func NewServices(repos *repository.Repositories, db *gorm.DB, rdb *redis.Client, cfg *config.Config, logger *zap.Logger) *Services {
	var notifier Notifier = noopNotifier{}
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != 0 {
		tn, err := NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			logger.Warn("telegram notifier unavailable", zap.Error(err))
		} else {
			notifier = tn
		}
	}

	var minioClient *minio.Client
	if cfg.MinIO.Endpoint != "" {
		mc, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			logger.Warn("object storage unavailable", zap.Error(err))
		} else {
			minioClient = mc
		}
	}

	batchCode := NewBatchCodeService(repos.Batch, rdb, logger)
	stock := NewStockService(repos.Material, repos.Inventory, repos.Batch, repos.Purchase, notifier, logger)

	return &Services{
		Material:  NewMaterialService(repos.Material),
		Batch:     NewBatchService(repos.Batch, batchCode),
		BatchCode: batchCode,
		Inventory: NewInventoryService(repos.Inventory),
		Stock:     stock,
		Purchase:  NewPurchaseService(repos.Purchase, repos.Partner, repos.Batch, db),
		Sales:     NewSalesService(repos.Sales, repos.Partner, repos.Batch, db),
		Quotation: NewQuotationService(repos.Quotation, notifier, logger),
		JobWork:   NewJobWorkService(repos.JobWork, repos.Batch, repos.Partner, db),
		Calendar:  NewCalendarService(repos.Calendar),
		KPI:       NewKPIService(stock, repos.Purchase, repos.Sales, rdb, logger),
		Report:    NewReportService(stock, minioClient, cfg.MinIO.Bucket, logger),
		Notifier:  notifier,
	}
}

// noopNotifier stands in when no chat integration is configured.
type noopNotifier struct{}

func (noopNotifier) Notify(string) error { return nil }
