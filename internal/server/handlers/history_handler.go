package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vebops/store/internal/service/history"
)

// HistoryHandler serves the movement history listings.
type HistoryHandler struct {
	svc    *history.Service
	logger *zap.Logger
}

// NewHistoryHandler constructs the HTTP handler adapter.
func NewHistoryHandler(svc *history.Service, logger *zap.Logger) *HistoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryHandler{svc: svc, logger: logger}
}

func historyParams(c *gin.Context) history.Params {
	return history.Params{
		ProjectIDs: projectIDQuery(c),
		Page:       intQuery(c, "page"),
		Size:       intQuery(c, "size"),
	}
}

// Inwards lists goods-receipt history visible to the caller.
func (h *HistoryHandler) Inwards(c *gin.Context) {
	page, err := h.svc.Inwards(c.Request.Context(), CurrentUser(c), historyParams(c))
	if err != nil {
		h.logger.Error("failed loading inward history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load inward history"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// Outwards lists goods-issue history visible to the caller.
func (h *HistoryHandler) Outwards(c *gin.Context) {
	page, err := h.svc.Outwards(c.Request.Context(), CurrentUser(c), historyParams(c))
	if err != nil {
		h.logger.Error("failed loading outward history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load outward history"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// Transfers lists transfer history where either side is visible to the caller.
func (h *HistoryHandler) Transfers(c *gin.Context) {
	page, err := h.svc.Transfers(c.Request.Context(), CurrentUser(c), historyParams(c))
	if err != nil {
		h.logger.Error("failed loading transfer history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load transfer history"})
		return
	}
	c.JSON(http.StatusOK, page)
}
