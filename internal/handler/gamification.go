package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bellsbalance/backend/internal/service"
)

// GamificationHandler implements the gamification API endpoints
type GamificationHandler struct {
	tracker *service.TrackerService
	logger  *zap.Logger
}

// NewGamificationHandler creates a new GamificationHandler
func NewGamificationHandler(tracker *service.TrackerService, logger *zap.Logger) *GamificationHandler {
	return &GamificationHandler{
		tracker: tracker,
		logger:  logger,
	}
}

// GetStatus returns points, level and today's challenge state
func (h *GamificationHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.tracker.Gamification())
}

// PostChallengeComplete attempts to complete today's challenge
func (h *GamificationHandler) PostChallengeComplete(c *gin.Context) {
	completed, err := h.tracker.CompleteDailyChallenge(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to complete challenge", zap.Error(err))
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"completed": completed})
}

// GetAchievements returns the achievement catalog with unlock flags
func (h *GamificationHandler) GetAchievements(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"achievements": h.tracker.Achievements()})
}
