package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bellsbalance/backend/internal/service"
	"github.com/bellsbalance/backend/pkg/model"
)

// ProfileHandler implements the profile API endpoints
type ProfileHandler struct {
	tracker *service.TrackerService
	logger  *zap.Logger
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(tracker *service.TrackerService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		tracker: tracker,
		logger:  logger,
	}
}

// GetProfile returns the current profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, h.tracker.Profile())
}

// PutProfile replaces the profile. Empty enum fields keep their
// previous values.
func (h *ProfileHandler) PutProfile(c *gin.Context) {
	var req model.Profile
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		writeBindError(c, err)
		return
	}

	profile, err := h.tracker.UpdateProfile(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetRecommendedGoal derives a daily goal from the stored profile
// without applying it
func (h *ProfileHandler) GetRecommendedGoal(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"recommended_goal": h.tracker.RecommendedGoal()})
}
