package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vebops/store/internal/service/catalog"
)

// CatalogHandler serves the reference listings: materials, projects, users.
type CatalogHandler struct {
	svc    *catalog.Service
	logger *zap.Logger
}

// NewCatalogHandler constructs the HTTP handler adapter.
func NewCatalogHandler(svc *catalog.Service, logger *zap.Logger) *CatalogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogHandler{svc: svc, logger: logger}
}

// Materials lists the material catalog with filter option lists.
func (h *CatalogHandler) Materials(c *gin.Context) {
	query := catalog.MaterialQuery{
		Search:     c.Query("search"),
		Categories: c.QueryArray("category"),
		Units:      c.QueryArray("unit"),
		LineTypes:  c.QueryArray("lineType"),
		Page:       intQuery(c, "page"),
		Size:       intQuery(c, "size"),
	}

	page, err := h.svc.Materials(c.Request.Context(), query)
	if err != nil {
		h.logger.Error("failed listing materials", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list materials"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// Projects lists the projects visible to the caller.
func (h *CatalogHandler) Projects(c *gin.Context) {
	page, err := h.svc.Projects(c.Request.Context(), CurrentUser(c), intQuery(c, "page"), intQuery(c, "size"))
	if err != nil {
		h.logger.Error("failed listing projects", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list projects"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// Users lists accounts for administration. Admin only.
func (h *CatalogHandler) Users(c *gin.Context) {
	query := catalog.UserQuery{
		Search:      c.Query("search"),
		Roles:       c.QueryArray("role"),
		AccessTypes: c.QueryArray("accessType"),
		Page:        intQuery(c, "page"),
		Size:        intQuery(c, "size"),
	}

	page, err := h.svc.Users(c.Request.Context(), query)
	if err != nil {
		h.logger.Error("failed listing users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}
	c.JSON(http.StatusOK, page)
}
