package handler

import (
	"fmt"
	"net/http"

	"github.com/ferroline/ferro-erp/internal/erp/service"
	"github.com/gin-gonic/gin"
)

type StockHandler struct {
	svc       *service.StockService
	reportSvc *service.ReportService
}

func NewStockHandler(svc *service.StockService, reportSvc *service.ReportService) *StockHandler {
	return &StockHandler{svc: svc, reportSvc: reportSvc}
}

func summaryParams(c *gin.Context) service.StockSummaryParams {
	return service.StockSummaryParams{
		Category: c.Query("category"),
		Keyword:  c.Query("keyword"),
		SortBy:   c.Query("sort_by"),
		Desc:     c.Query("order") == "desc",
	}
}

func (h *StockHandler) Summary(c *gin.Context) {
	stocks, err := h.svc.Summary(summaryParams(c))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, stocks)
}

// Export streams the stock summary as an xlsx download.
func (h *StockHandler) Export(c *gin.Context) {
	f, fileName, err := h.reportSvc.ExportStockSummary(summaryParams(c))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}

// Archive stores the current summary workbook in object storage.
func (h *StockHandler) Archive(c *gin.Context) {
	objectName, err := h.reportSvc.ArchiveStockSummary(c.Request.Context(), summaryParams(c))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"object": objectName})
}

// Alert pushes a notification listing materials at critical stock.
func (h *StockHandler) Alert(c *gin.Context) {
	count, err := h.svc.AlertCritical()
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"critical_count": count})
}
