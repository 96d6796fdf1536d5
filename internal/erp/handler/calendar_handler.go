package handler

import (
	"github.com/ferroline/ferro-erp/internal/erp/service"
	"github.com/gin-gonic/gin"
)

type CalendarHandler struct {
	svc *service.CalendarService
}

func NewCalendarHandler(svc *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{svc: svc}
}

func (h *CalendarHandler) Range(c *gin.Context) {
	events, err := h.svc.Range(c.Query("from"), c.Query("to"), c.Query("type"))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, events)
}

func (h *CalendarHandler) Get(c *gin.Context) {
	event, err := h.svc.Get(c.Param("id"))
	if err != nil {
		NotFound(c, "Event not found")
		return
	}
	Success(c, event)
}

func (h *CalendarHandler) Create(c *gin.Context) {
	var req service.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	event, err := h.svc.Create(req, GetUserID(c))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, event)
}

func (h *CalendarHandler) Update(c *gin.Context) {
	var req service.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	event, err := h.svc.Update(c.Param("id"), req)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, event)
}

func (h *CalendarHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}
