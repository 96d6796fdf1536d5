package handler

import (
	"github.com/ferroline/ferro-erp/internal/erp/repository"
	"github.com/ferroline/ferro-erp/internal/erp/service"
	"github.com/gin-gonic/gin"
)

type QuotationHandler struct {
	svc *service.QuotationService
}

func NewQuotationHandler(svc *service.QuotationService) *QuotationHandler {
	return &QuotationHandler{svc: svc}
}

func (h *QuotationHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	params := repository.QuotationListParams{
		Status:     c.Query("status"),
		CustomerID: c.Query("customer_id"),
		Page:       page,
		Size:       pageSize,
	}
	quotes, total, err := h.svc.List(params)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListResponse{Items: quotes, Pagination: NewPagination(page, pageSize, total)})
}

func (h *QuotationHandler) Get(c *gin.Context) {
	quote, err := h.svc.Get(c.Param("id"))
	if err != nil {
		NotFound(c, "Quotation not found")
		return
	}
	Success(c, quote)
}

func (h *QuotationHandler) Create(c *gin.Context) {
	var req service.CreateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	quote, err := h.svc.Create(req, GetUserID(c))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, quote)
}

func (h *QuotationHandler) Send(c *gin.Context) {
	if err := h.svc.Send(c.Param("id")); err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}

func (h *QuotationHandler) Accept(c *gin.Context) {
	if err := h.svc.Accept(c.Param("id")); err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}

func (h *QuotationHandler) Reject(c *gin.Context) {
	if err := h.svc.Reject(c.Param("id")); err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}

// --- Reminders ---

func (h *QuotationHandler) CreateReminder(c *gin.Context) {
	var req service.CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	reminder, err := h.svc.CreateReminder(c.Param("id"), req)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, reminder)
}

func (h *QuotationHandler) ListReminders(c *gin.Context) {
	reminders, err := h.svc.ListReminders(c.Param("id"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, reminders)
}

// NotifyDue sends every due reminder through the notifier.
func (h *QuotationHandler) NotifyDue(c *gin.Context) {
	sent, err := h.svc.NotifyDueReminders()
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"sent": sent})
}
