package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/hmsauth/domain"
	"github.com/you/hmsauth/internal/http/middleware"
)

// TrialHandlers serves the demo-trial countdown state.
type TrialHandlers struct {
	trialSvc domain.TrialService
}

// NewTrialHandlers creates new trial handlers
func NewTrialHandlers(trialSvc domain.TrialService) *TrialHandlers {
	return &TrialHandlers{trialSvc: trialSvc}
}

// AckRequest represents a trial notice acknowledgement
type AckRequest struct {
	Notice string `json:"notice" binding:"required"`
}

// Status returns the scope's trial state
func (h *TrialHandlers) Status(c *gin.Context) {
	status, err := h.trialSvc.Status(c.Request.Context(), middleware.Scope(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read trial status"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": status})
}

// Acknowledge records that the client saw a trial notice
func (h *TrialHandlers) Acknowledge(c *gin.Context) {
	var req AckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notice := domain.TrialNotice(req.Notice)
	if !notice.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown trial notice"})
		return
	}
	if err := h.trialSvc.Acknowledge(c.Request.Context(), middleware.Scope(c), notice); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record acknowledgement"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Acknowledged"}})
}
