package handler

import (
	"net/http"
	"strconv"

	"go-gin-catalog/internal/dto"
	"go-gin-catalog/internal/mapper"
	"go-gin-catalog/internal/service"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	service service.EventService
}

func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/events")
	{
		router.GET("", h.List)
		router.GET("/count", h.Count)
		router.GET("/venue/:venueId", h.ListByVenue)
		router.GET("/:id", h.GetByID)
		router.POST("", requireJSON, h.Create)
		router.PUT("/:id", requireJSON, h.Update)
		router.DELETE("/:id", h.Delete)
	}
}

func (h *EventHandler) List(c *gin.Context) {
	events, err := h.service.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, mapper.EventsToResponse(events))
}

func (h *EventHandler) Count(c *gin.Context) {
	n, err := h.service.Count(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.CountResponse{Count: n})
}

func (h *EventHandler) ListByVenue(c *gin.Context) {
	venueID, err := pathID(c, "venueId", "listEventsByVenue")
	if err != nil {
		_ = c.Error(err)
		return
	}
	events, err := h.service.ListByVenue(c.Request.Context(), venueID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, mapper.EventsToResponse(events))
}

func (h *EventHandler) GetByID(c *gin.Context) {
	id, err := pathID(c, "id", "getEvent")
	if err != nil {
		_ = c.Error(err)
		return
	}
	event, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, mapper.EventToResponse(event))
}

func (h *EventHandler) Create(c *gin.Context) {
	var req dto.EventRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	created, err := h.service.Create(c.Request.Context(), mapper.EventFromRequest(&req))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.Header("Location", "/api/events/"+strconv.FormatInt(created.ID, 10))
	c.JSON(http.StatusCreated, mapper.EventToResponse(created))
}

func (h *EventHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id", "updateEvent")
	if err != nil {
		_ = c.Error(err)
		return
	}
	var req dto.EventRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	updated, err := h.service.Update(c.Request.Context(), id, mapper.EventFromRequest(&req))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, mapper.EventToResponse(updated))
}

func (h *EventHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id", "deleteEvent")
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
