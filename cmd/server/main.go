package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ferroline/ferro-erp/internal/config"
	"github.com/ferroline/ferro-erp/internal/erp/entity"
	"github.com/ferroline/ferro-erp/internal/erp/handler"
	"github.com/ferroline/ferro-erp/internal/erp/repository"
	"github.com/ferroline/ferro-erp/internal/erp/service"
	"github.com/ferroline/ferro-erp/internal/middleware"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting ferro-erp service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := entity.AutoMigrate(db); err != nil {
		zapLogger.Fatal("Failed to auto-migrate tables", zap.Error(err))
	}
	zapLogger.Info("Database migration completed")

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		zapLogger.Warn("Redis unavailable, caching disabled", zap.Error(err))
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, db, rdb, cfg, zapLogger)
	handlers := handler.NewHandlers(services)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(handlers, cfg, zapLogger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func setupRouter(handlers *handler.Handlers, cfg *config.Config, zapLogger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	router.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "ferro-erp"})
	})
	router.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "ferro-erp"})
	})
	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service":    "ferro-erp",
			"version":    Version,
			"build_time": BuildTime,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	v1.Use(middleware.JWTAuth(cfg.JWT.Secret))
	{
		materials := v1.Group("/materials")
		{
			materials.GET("", handlers.Material.List)
			materials.POST("", handlers.Material.Create)
			materials.GET("/:id", handlers.Material.Get)
			materials.PUT("/:id", handlers.Material.Update)
			materials.DELETE("/:id", handlers.Material.Deactivate)
		}

		batches := v1.Group("/batches")
		{
			batches.GET("", handlers.Batch.List)
			batches.POST("", handlers.Batch.Create)
			batches.GET("/validate-code", handlers.Batch.ValidateCode)
			batches.GET("/:id", handlers.Batch.Get)
			batches.PUT("/:id/status", handlers.Batch.UpdateStatus)
			batches.PUT("/:id/compliance", middleware.RequireRole("quality"), handlers.Batch.UpdateCompliance)
		}

		inventory := v1.Group("/inventory")
		{
			inventory.GET("", handlers.Inventory.List)
			inventory.GET("/transactions", handlers.Inventory.ListTransactions)
			inventory.POST("/inbound", handlers.Inventory.Inbound)
			inventory.POST("/outbound", handlers.Inventory.Outbound)
			inventory.POST("/adjust", handlers.Inventory.Adjust)
			inventory.GET("/locations", handlers.Inventory.ListLocations)
			inventory.POST("/locations", handlers.Inventory.CreateLocation)
		}

		stock := v1.Group("/stock")
		{
			stock.GET("/summary", handlers.Stock.Summary)
			stock.GET("/export", handlers.Stock.Export)
			stock.POST("/archive", handlers.Stock.Archive)
			stock.POST("/alert", handlers.Stock.Alert)
		}

		suppliers := v1.Group("/suppliers")
		{
			suppliers.GET("", handlers.Purchase.ListSuppliers)
			suppliers.POST("", handlers.Purchase.CreateSupplier)
			suppliers.GET("/:id", handlers.Purchase.GetSupplier)
			suppliers.PUT("/:id", handlers.Purchase.UpdateSupplier)
			suppliers.DELETE("/:id", handlers.Purchase.DeleteSupplier)
		}

		pos := v1.Group("/purchase-orders")
		{
			pos.GET("", handlers.Purchase.ListPOs)
			pos.POST("", handlers.Purchase.CreatePO)
			pos.GET("/:id", handlers.Purchase.GetPO)
			pos.POST("/:id/submit", handlers.Purchase.SubmitPO)
			pos.POST("/:id/approve", middleware.RequirePermission("purchase:approve"), handlers.Purchase.ApprovePO)
			pos.POST("/:id/order", handlers.Purchase.MarkOrdered)
			pos.POST("/:id/receive", middleware.RequirePermission("purchase:receive"), handlers.Purchase.ReceivePO)
			pos.POST("/:id/cancel", handlers.Purchase.CancelPO)
		}

		returns := v1.Group("/purchase-returns")
		{
			returns.GET("", handlers.Purchase.ListReturns)
			returns.POST("", handlers.Purchase.CreateReturn)
		}

		payables := v1.Group("/payables")
		{
			payables.GET("", handlers.Purchase.ListPayables)
			payables.GET("/overdue", handlers.Purchase.OverduePayables)
			payables.POST("/:id/pay", handlers.Purchase.PayPayable)
		}

		customers := v1.Group("/customers")
		{
			customers.GET("", handlers.Sales.ListCustomers)
			customers.POST("", handlers.Sales.CreateCustomer)
			customers.GET("/:id", handlers.Sales.GetCustomer)
			customers.DELETE("/:id", handlers.Sales.DeleteCustomer)
		}

		salesOrders := v1.Group("/sales-orders")
		{
			salesOrders.GET("", handlers.Sales.ListSOs)
			salesOrders.POST("", handlers.Sales.CreateSO)
			salesOrders.GET("/:id", handlers.Sales.GetSO)
			salesOrders.POST("/:id/confirm", handlers.Sales.ConfirmSO)
			salesOrders.POST("/:id/ship", handlers.Sales.ShipSO)
			salesOrders.POST("/:id/cancel", handlers.Sales.CancelSO)
			salesOrders.GET("/items/:item_id/suggestions", handlers.Sales.SuggestAllocations)
			salesOrders.POST("/allocations", handlers.Sales.Allocate)
		}

		receivables := v1.Group("/receivables")
		{
			receivables.GET("", handlers.Sales.ListReceivables)
			receivables.GET("/overdue", handlers.Sales.OverdueReceivables)
			receivables.POST("/:id/pay", handlers.Sales.PayReceivable)
		}

		quotations := v1.Group("/quotations")
		{
			quotations.GET("", handlers.Quotation.List)
			quotations.POST("", handlers.Quotation.Create)
			quotations.POST("/reminders/notify", handlers.Quotation.NotifyDue)
			quotations.GET("/:id", handlers.Quotation.Get)
			quotations.POST("/:id/send", handlers.Quotation.Send)
			quotations.POST("/:id/accept", handlers.Quotation.Accept)
			quotations.POST("/:id/reject", handlers.Quotation.Reject)
			quotations.POST("/:id/reminders", handlers.Quotation.CreateReminder)
			quotations.GET("/:id/reminders", handlers.Quotation.ListReminders)
		}

		jobWorks := v1.Group("/job-works")
		{
			jobWorks.GET("", handlers.JobWork.List)
			jobWorks.POST("", handlers.JobWork.Create)
			jobWorks.GET("/:id", handlers.JobWork.Get)
			jobWorks.PUT("/:id/status", handlers.JobWork.UpdateStatus)
			jobWorks.POST("/:id/complete", middleware.RequirePermission("jobwork:complete"), handlers.JobWork.Complete)
		}

		calendar := v1.Group("/calendar")
		{
			calendar.GET("/events", handlers.Calendar.Range)
			calendar.POST("/events", handlers.Calendar.Create)
			calendar.GET("/events/:id", handlers.Calendar.Get)
			calendar.PUT("/events/:id", handlers.Calendar.Update)
			calendar.DELETE("/events/:id", handlers.Calendar.Delete)
		}

		kpis := v1.Group("/kpis")
		{
			kpis.GET("/dashboard", handlers.KPI.Dashboard)
			kpis.POST("/dashboard/refresh", handlers.KPI.Refresh)
		}
	}

	return router
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}
	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}
	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	return db, nil
}
