package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vebops/store/internal/service/ledger"
)

// StockHandler serves the computed per-project stock summary.
type StockHandler struct {
	svc    *ledger.Service
	logger *zap.Logger
}

// NewStockHandler constructs the HTTP handler adapter.
func NewStockHandler(svc *ledger.Service, logger *zap.Logger) *StockHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockHandler{svc: svc, logger: logger}
}

// Summary returns the paginated stock balance view scoped to the caller.
func (h *StockHandler) Summary(c *gin.Context) {
	params := ledger.SummaryParams{
		Search:     c.Query("search"),
		Categories: c.QueryArray("category"),
		Units:      c.QueryArray("unit"),
		ProjectIDs: projectIDQuery(c),
		Page:       intQuery(c, "page"),
		Size:       intQuery(c, "size"),
	}

	page, err := h.svc.StockSummary(c.Request.Context(), CurrentUser(c), params)
	if err != nil {
		h.logger.Error("failed computing stock summary", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stock summary"})
		return
	}
	c.JSON(http.StatusOK, page)
}
