package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bellsbalance/backend/internal/service"
	"github.com/bellsbalance/backend/pkg/model"
)

// InventoryHandler implements the container and template API endpoints
type InventoryHandler struct {
	tracker *service.TrackerService
	logger  *zap.Logger
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(tracker *service.TrackerService, logger *zap.Logger) *InventoryHandler {
	return &InventoryHandler{
		tracker: tracker,
		logger:  logger,
	}
}

type containerRequest struct {
	Name     string `json:"name" binding:"required"`
	VolumeMl int    `json:"volume" binding:"required"`
}

// PostContainer adds a container
func (h *InventoryHandler) PostContainer(c *gin.Context) {
	var req containerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	container, err := h.tracker.AddContainer(c.Request.Context(), req.Name, req.VolumeMl)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, container)
}

// PutContainer replaces a container's name and volume
func (h *InventoryHandler) PutContainer(c *gin.Context) {
	var req containerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	container := model.Container{
		ID:       c.Param("id"),
		Name:     req.Name,
		VolumeMl: req.VolumeMl,
	}
	if err := h.tracker.UpdateContainer(c.Request.Context(), container); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, container)
}

// DeleteContainer removes a container by id
func (h *InventoryHandler) DeleteContainer(c *gin.Context) {
	if err := h.tracker.DeleteContainer(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetContainers lists all containers
func (h *InventoryHandler) GetContainers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"containers": h.tracker.Containers()})
}

type templateRequest struct {
	Name  string               `json:"name" binding:"required"`
	Items []model.TemplateItem `json:"items" binding:"required"`
}

// PostTemplate adds a drink template
func (h *InventoryHandler) PostTemplate(c *gin.Context) {
	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	template, err := h.tracker.AddTemplate(c.Request.Context(), req.Name, req.Items)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, template)
}

// DeleteTemplate removes a template by id
func (h *InventoryHandler) DeleteTemplate(c *gin.Context) {
	if err := h.tracker.DeleteTemplate(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetTemplates lists all templates
func (h *InventoryHandler) GetTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": h.tracker.Templates()})
}
