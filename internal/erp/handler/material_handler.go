package handler

import (
	"github.com/ferroline/ferro-erp/internal/erp/repository"
	"github.com/ferroline/ferro-erp/internal/erp/service"
	"github.com/gin-gonic/gin"
)

type MaterialHandler struct {
	svc *service.MaterialService
}

func NewMaterialHandler(svc *service.MaterialService) *MaterialHandler {
	return &MaterialHandler{svc: svc}
}

func (h *MaterialHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	params := repository.MaterialListParams{
		Category:   c.Query("category"),
		Grade:      c.Query("grade"),
		Keyword:    c.Query("keyword"),
		ActiveOnly: c.Query("active_only") == "true",
		Page:       page,
		Size:       pageSize,
	}
	materials, total, err := h.svc.List(params)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListResponse{Items: materials, Pagination: NewPagination(page, pageSize, total)})
}

func (h *MaterialHandler) Get(c *gin.Context) {
	material, err := h.svc.Get(c.Param("id"))
	if err != nil {
		NotFound(c, "Material not found")
		return
	}
	Success(c, material)
}

func (h *MaterialHandler) Create(c *gin.Context) {
	var req service.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	material, err := h.svc.Create(req, GetUserID(c))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, material)
}

func (h *MaterialHandler) Update(c *gin.Context) {
	var req service.UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	material, err := h.svc.Update(c.Param("id"), req)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, material)
}

func (h *MaterialHandler) Deactivate(c *gin.Context) {
	if err := h.svc.Deactivate(c.Param("id")); err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}
