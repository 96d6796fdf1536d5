package handler

import (
	"github.com/ferroline/ferro-erp/internal/erp/entity"
	"github.com/ferroline/ferro-erp/internal/erp/repository"
	"github.com/ferroline/ferro-erp/internal/erp/service"
	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	svc *service.InventoryService
}

func NewInventoryHandler(svc *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

func (h *InventoryHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	params := repository.InventoryListParams{
		MaterialID: c.Query("material_id"),
		LocationID: c.Query("location_id"),
		Page:       page,
		Size:       pageSize,
	}
	rows, total, err := h.svc.List(params)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListResponse{Items: rows, Pagination: NewPagination(page, pageSize, total)})
}

func (h *InventoryHandler) ListTransactions(c *gin.Context) {
	page, pageSize := GetPagination(c)
	txs, total, err := h.svc.ListTransactions(c.Query("material_id"), page, pageSize)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListResponse{Items: txs, Pagination: NewPagination(page, pageSize, total)})
}

func (h *InventoryHandler) Inbound(c *gin.Context) {
	var req service.InboundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if err := h.svc.Inbound(req, GetUserID(c)); err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}

func (h *InventoryHandler) Outbound(c *gin.Context) {
	var req service.OutboundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if err := h.svc.Outbound(req, GetUserID(c)); err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}

func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req service.AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if err := h.svc.Adjust(req, GetUserID(c)); err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}

func (h *InventoryHandler) ListLocations(c *gin.Context) {
	locations, err := h.svc.ListLocations()
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, locations)
}

func (h *InventoryHandler) CreateLocation(c *gin.Context) {
	var loc entity.Location
	if err := c.ShouldBindJSON(&loc); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if err := h.svc.CreateLocation(&loc); err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, loc)
}
