package handler

import (
	"github.com/ferroline/ferro-erp/internal/erp/repository"
	"github.com/ferroline/ferro-erp/internal/erp/service"
	"github.com/gin-gonic/gin"
)

type JobWorkHandler struct {
	svc *service.JobWorkService
}

func NewJobWorkHandler(svc *service.JobWorkService) *JobWorkHandler {
	return &JobWorkHandler{svc: svc}
}

func (h *JobWorkHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	params := repository.JobWorkListParams{
		Status:       c.Query("status"),
		ContractorID: c.Query("contractor_id"),
		MaterialID:   c.Query("material_id"),
		Page:         page,
		Size:         pageSize,
	}
	jobs, total, err := h.svc.List(params)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListResponse{Items: jobs, Pagination: NewPagination(page, pageSize, total)})
}

func (h *JobWorkHandler) Get(c *gin.Context) {
	job, err := h.svc.Get(c.Param("id"))
	if err != nil {
		NotFound(c, "Job work not found")
		return
	}
	Success(c, job)
}

func (h *JobWorkHandler) Create(c *gin.Context) {
	var req service.CreateJobWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	job, err := h.svc.Create(req, GetUserID(c))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, job)
}

func (h *JobWorkHandler) UpdateStatus(c *gin.Context) {
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

func (h *JobWorkHandler) Complete(c *gin.Context) {
	var req service.CompleteJobWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	job, err := h.svc.Complete(c.Param("id"), req, GetUserID(c))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, job)
}
