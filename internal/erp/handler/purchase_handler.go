package handler

import (
	"github.com/ferroline/ferro-erp/internal/erp/repository"
	"github.com/ferroline/ferro-erp/internal/erp/service"
	"github.com/gin-gonic/gin"
)

type PurchaseHandler struct {
	svc *service.PurchaseService
}

func NewPurchaseHandler(svc *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{svc: svc}
}

// --- Suppliers ---

func (h *PurchaseHandler) ListSuppliers(c *gin.Context) {
	page, pageSize := GetPagination(c)
	params := repository.SupplierListParams{
		Status:  c.Query("status"),
		Type:    c.Query("type"),
		Keyword: c.Query("keyword"),
		Page:    page,
		Size:    pageSize,
	}
	suppliers, total, err := h.svc.ListSuppliers(params)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListResponse{Items: suppliers, Pagination: NewPagination(page, pageSize, total)})
}

func (h *PurchaseHandler) GetSupplier(c *gin.Context) {
	supplier, err := h.svc.GetSupplier(c.Param("id"))
	if err != nil {
		NotFound(c, "Supplier not found")
		return
	}
	Success(c, supplier)
}

func (h *PurchaseHandler) CreateSupplier(c *gin.Context) {
	var req service.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	supplier, err := h.svc.CreateSupplier(req, GetUserID(c))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, supplier)
}

func (h *PurchaseHandler) UpdateSupplier(c *gin.Context) {
	var req service.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	supplier, err := h.svc.UpdateSupplier(c.Param("id"), req)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, supplier)
}

func (h *PurchaseHandler) DeleteSupplier(c *gin.Context) {
	if err := h.svc.DeleteSupplier(c.Param("id")); err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}

// --- Purchase orders ---

func (h *PurchaseHandler) ListPOs(c *gin.Context) {
	page, pageSize := GetPagination(c)
	params := repository.POListParams{
		Status:     c.Query("status"),
		SupplierID: c.Query("supplier_id"),
		Keyword:    c.Query("keyword"),
		Page:       page,
		Size:       pageSize,
	}
	orders, total, err := h.svc.ListPOs(params)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListResponse{Items: orders, Pagination: NewPagination(page, pageSize, total)})
}

func (h *PurchaseHandler) GetPO(c *gin.Context) {
	order, err := h.svc.GetPO(c.Param("id"))
	if err != nil {
		NotFound(c, "Purchase order not found")
		return
	}
	Success(c, order)
}

func (h *PurchaseHandler) CreatePO(c *gin.Context) {
	var req service.CreatePORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	order, err := h.svc.CreatePO(req, GetUserID(c))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, order)
}

func (h *PurchaseHandler) SubmitPO(c *gin.Context) {
	if err := h.svc.SubmitPO(c.Param("id"), GetUserID(c)); err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}

func (h *PurchaseHandler) ApprovePO(c *gin.Context) {
	if err := h.svc.ApprovePO(c.Param("id"), GetUserID(c)); err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}

func (h *PurchaseHandler) MarkOrdered(c *gin.Context) {
	if err := h.svc.MarkOrdered(c.Param("id"), GetUserID(c)); err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}

func (h *PurchaseHandler) CancelPO(c *gin.Context) {
	if err := h.svc.CancelPO(c.Param("id")); err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}

func (h *PurchaseHandler) ReceivePO(c *gin.Context) {
	var req service.ReceivePORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	order, err := h.svc.ReceivePO(c.Param("id"), req, GetUserID(c))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, order)
}

// --- Returns ---

func (h *PurchaseHandler) CreateReturn(c *gin.Context) {
	var req service.CreateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	ret, err := h.svc.CreateReturn(req, GetUserID(c))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, ret)
}

func (h *PurchaseHandler) ListReturns(c *gin.Context) {
	page, pageSize := GetPagination(c)
	returns, total, err := h.svc.ListReturns(c.Query("supplier_id"), page, pageSize)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListResponse{Items: returns, Pagination: NewPagination(page, pageSize, total)})
}

// --- Payables ---

func (h *PurchaseHandler) ListPayables(c *gin.Context) {
	page, pageSize := GetPagination(c)
	payables, total, err := h.svc.ListPayables(c.Query("status"), page, pageSize)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListResponse{Items: payables, Pagination: NewPagination(page, pageSize, total)})
}

func (h *PurchaseHandler) OverduePayables(c *gin.Context) {
	payables, err := h.svc.OverduePayables()
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, payables)
}

type paymentRequest struct {
	Amount string `json:"amount" binding:"required"`
}

func (h *PurchaseHandler) PayPayable(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	payable, err := h.svc.RecordPayablePayment(c.Param("id"), req.Amount)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, payable)
}
