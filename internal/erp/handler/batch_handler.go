package handler

import (
	"github.com/ferroline/ferro-erp/internal/erp/repository"
	"github.com/ferroline/ferro-erp/internal/erp/service"
	"github.com/gin-gonic/gin"
)

type BatchHandler struct {
	svc     *service.BatchService
	codeSvc *service.BatchCodeService
}

func NewBatchHandler(svc *service.BatchService, codeSvc *service.BatchCodeService) *BatchHandler {
	return &BatchHandler{svc: svc, codeSvc: codeSvc}
}

func (h *BatchHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	params := repository.BatchListParams{
		MaterialID:   c.Query("material_id"),
		SupplierID:   c.Query("supplier_id"),
		Status:       c.Query("status"),
		QualityGrade: c.Query("quality_grade"),
		Keyword:      c.Query("keyword"),
		Page:         page,
		Size:         pageSize,
	}
	batches, total, err := h.svc.List(params)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListResponse{Items: batches, Pagination: NewPagination(page, pageSize, total)})
}

func (h *BatchHandler) Get(c *gin.Context) {
	batch, err := h.svc.Get(c.Param("id"))
	if err != nil {
		NotFound(c, "Batch not found")
		return
	}
	Success(c, batch)
}

func (h *BatchHandler) Create(c *gin.Context) {
	var req service.CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	batch, err := h.svc.Create(c.Request.Context(), req, GetUserID(c))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, batch)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *BatchHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if err := h.svc.UpdateStatus(c.Param("id"), req.Status); err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}

func (h *BatchHandler) UpdateCompliance(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if err := h.svc.UpdateCompliance(c.Param("id"), req.Status); err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}

// ValidateCode advisory duplicate check for a proposed batch code.
func (h *BatchHandler) ValidateCode(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		BadRequest(c, "code query parameter is required")
		return
	}
	check, err := h.codeSvc.Check(c.Request.Context(), code)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, check)
}
