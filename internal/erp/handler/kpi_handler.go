package handler

import (
	"github.com/ferroline/ferro-erp/internal/erp/service"
	"github.com/gin-gonic/gin"
)

type KPIHandler struct {
	svc *service.KPIService
}

func NewKPIHandler(svc *service.KPIService) *KPIHandler {
	return &KPIHandler{svc: svc}
}

func (h *KPIHandler) Dashboard(c *gin.Context) {
	kpis, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, kpis)
}

// Refresh drops the cached snapshot and recomputes.
func (h *KPIHandler) Refresh(c *gin.Context) {
	h.svc.Invalidate(c.Request.Context())
	kpis, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, kpis)
}
