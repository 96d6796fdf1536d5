package handler

import (
	"strconv"

	"github.com/ferroline/ferro-erp/internal/erp/service"
	"github.com/gin-gonic/gin"
)

// Handlers the HTTP handler set
type Handlers struct {
	Material  *MaterialHandler
	Batch     *BatchHandler
	Inventory *InventoryHandler
	Stock     *StockHandler
	Purchase  *PurchaseHandler
	Sales     *SalesHandler
	Quotation *QuotationHandler
	JobWork   *JobWorkHandler
	Calendar  *CalendarHandler
	KPI       *KPIHandler
}

func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Material:  NewMaterialHandler(svc.Material),
		Batch:     NewBatchHandler(svc.Batch, svc.BatchCode),
		Inventory: NewInventoryHandler(svc.Inventory),
		Stock:     NewStockHandler(svc.Stock, svc.Report),
		Purchase:  NewPurchaseHandler(svc.Purchase),
		Sales:     NewSalesHandler(svc.Sales),
		Quotation: NewQuotationHandler(svc.Quotation),
		JobWork:   NewJobWorkHandler(svc.JobWork),
		Calendar:  NewCalendarHandler(svc.Calendar),
		KPI:       NewKPIHandler(svc.KPI),
	}
}

// Response the common envelope
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ListResponse paged list payload
type ListResponse struct {
	Items      interface{} `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

func NewPagination(page, pageSize int, total int64) *Pagination {
	totalPages := total / int64(pageSize)
	if total%int64(pageSize) > 0 {
		totalPages++
	}
	return &Pagination{Page: page, PageSize: pageSize, Total: total, TotalPages: totalPages}
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, 40100, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, 40300, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// GetUserID the authenticated user from JWT middleware context.
func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}

// GetPagination page/page_size query params with bounds.
func GetPagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}

	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v
		}
	}

	return page, pageSize
}
