package handler

import (
	"github.com/ferroline/ferro-erp/internal/erp/repository"
	"github.com/ferroline/ferro-erp/internal/erp/service"
	"github.com/gin-gonic/gin"
)

type SalesHandler struct {
	svc *service.SalesService
}

func NewSalesHandler(svc *service.SalesService) *SalesHandler {
	return &SalesHandler{svc: svc}
}

// --- Customers ---

func (h *SalesHandler) ListCustomers(c *gin.Context) {
	page, pageSize := GetPagination(c)
	params := repository.CustomerListParams{
		Status:  c.Query("status"),
		Keyword: c.Query("keyword"),
		Page:    page,
		Size:    pageSize,
	}
	customers, total, err := h.svc.ListCustomers(params)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListResponse{Items: customers, Pagination: NewPagination(page, pageSize, total)})
}

func (h *SalesHandler) GetCustomer(c *gin.Context) {
	customer, err := h.svc.GetCustomer(c.Param("id"))
	if err != nil {
		NotFound(c, "Customer not found")
		return
	}
	Success(c, customer)
}

func (h *SalesHandler) CreateCustomer(c *gin.Context) {
	var req service.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	customer, err := h.svc.CreateCustomer(req, GetUserID(c))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, customer)
}

func (h *SalesHandler) DeleteCustomer(c *gin.Context) {
	if err := h.svc.DeleteCustomer(c.Param("id")); err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}

// --- Sales orders ---

func (h *SalesHandler) ListSOs(c *gin.Context) {
	page, pageSize := GetPagination(c)
	params := repository.SOListParams{
		Status:     c.Query("status"),
		CustomerID: c.Query("customer_id"),
		Keyword:    c.Query("keyword"),
		Page:       page,
		Size:       pageSize,
	}
	orders, total, err := h.svc.ListSOs(params)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListResponse{Items: orders, Pagination: NewPagination(page, pageSize, total)})
}

func (h *SalesHandler) GetSO(c *gin.Context) {
	order, err := h.svc.GetSO(c.Param("id"))
	if err != nil {
		NotFound(c, "Sales order not found")
		return
	}
	Success(c, order)
}

func (h *SalesHandler) CreateSO(c *gin.Context) {
	var req service.CreateSORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	order, err := h.svc.CreateSO(req, GetUserID(c))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, order)
}

func (h *SalesHandler) ConfirmSO(c *gin.Context) {
	if err := h.svc.ConfirmSO(c.Param("id")); err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}

func (h *SalesHandler) ShipSO(c *gin.Context) {
	if err := h.svc.ShipSO(c.Param("id"), GetUserID(c)); err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}

func (h *SalesHandler) CancelSO(c *gin.Context) {
	if err := h.svc.CancelSO(c.Param("id")); err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}

// --- Allocations ---

func (h *SalesHandler) SuggestAllocations(c *gin.Context) {
	suggestions, err := h.svc.SuggestAllocations(c.Param("item_id"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, suggestions)
}

func (h *SalesHandler) Allocate(c *gin.Context) {
	var req service.AllocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	allocation, err := h.svc.Allocate(req)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, allocation)
}

// --- Receivables ---

func (h *SalesHandler) ListReceivables(c *gin.Context) {
	page, pageSize := GetPagination(c)
	receivables, total, err := h.svc.ListReceivables(c.Query("status"), page, pageSize)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListResponse{Items: receivables, Pagination: NewPagination(page, pageSize, total)})
}

func (h *SalesHandler) OverdueReceivables(c *gin.Context) {
	receivables, err := h.svc.OverdueReceivables()
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, receivables)
}

func (h *SalesHandler) PayReceivable(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	receivable, err := h.svc.RecordReceivablePayment(c.Param("id"), req.Amount)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, receivable)
}
