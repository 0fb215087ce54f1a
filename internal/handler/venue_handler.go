package handler

import (
	"net/http"
	"strconv"

	"go-gin-catalog/internal/dto"
	"go-gin-catalog/internal/mapper"
	"go-gin-catalog/internal/service"

	"github.com/gin-gonic/gin"
)

type VenueHandler struct {
	service service.VenueService
}

func NewVenueHandler(service service.VenueService) *VenueHandler {
	return &VenueHandler{service: service}
}

func (h *VenueHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/venues")
	{
		router.GET("", h.List)
		router.GET("/count", h.Count)
		router.GET("/:id", h.GetByID)
		router.POST("", requireJSON, h.Create)
		router.PUT("/:id", requireJSON, h.Update)
		router.DELETE("/:id", h.Delete)
	}
}

func (h *VenueHandler) List(c *gin.Context) {
	venues, err := h.service.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, mapper.VenuesToResponse(venues))
}

func (h *VenueHandler) Count(c *gin.Context) {
	n, err := h.service.Count(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.CountResponse{Count: n})
}

func (h *VenueHandler) GetByID(c *gin.Context) {
	id, err := pathID(c, "id", "getVenue")
	if err != nil {
		_ = c.Error(err)
		return
	}
	venue, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, mapper.VenueToResponse(venue))
}

func (h *VenueHandler) Create(c *gin.Context) {
	var req dto.VenueRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	created, err := h.service.Create(c.Request.Context(), mapper.VenueFromRequest(&req))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.Header("Location", "/api/venues/"+strconv.FormatInt(created.ID, 10))
	c.JSON(http.StatusCreated, mapper.VenueToResponse(created))
}

func (h *VenueHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id", "updateVenue")
	if err != nil {
		_ = c.Error(err)
		return
	}
	var req dto.VenueRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	updated, err := h.service.Update(c.Request.Context(), id, mapper.VenueFromRequest(&req))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, mapper.VenueToResponse(updated))
}

func (h *VenueHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id", "deleteVenue")
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
