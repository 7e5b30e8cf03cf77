package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vebops/store/internal/repository/mongodb"
	"github.com/vebops/store/internal/service/catalog"
)

// IntakeHandler handles the mutating movement and catalog endpoints.
type IntakeHandler struct {
	svc    *catalog.Service
	logger *zap.Logger
}

// NewIntakeHandler constructs the HTTP handler adapter.
func NewIntakeHandler(svc *catalog.Service, logger *zap.Logger) *IntakeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IntakeHandler{svc: svc, logger: logger}
}

func (h *IntakeHandler) writeError(c *gin.Context, action string, err error) {
	switch {
	case errors.Is(err, catalog.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, catalog.ErrDuplicateCode):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, mongodb.ErrOutwardNotOpen):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error("intake request failed", zap.String("action", action), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to " + action})
	}
}

// CreateInward records a goods receipt.
func (h *IntakeHandler) CreateInward(c *gin.Context) {
	var input catalog.InwardInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := h.svc.RecordInward(c.Request.Context(), input)
	if err != nil {
		h.writeError(c, "record inward", err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// CreateOutward records a goods issue register.
func (h *IntakeHandler) CreateOutward(c *gin.Context) {
	var input catalog.OutwardInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := h.svc.RecordOutward(c.Request.Context(), input)
	if err != nil {
		h.writeError(c, "record outward", err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// CloseOutward marks an open issue register as closed.
func (h *IntakeHandler) CloseOutward(c *gin.Context) {
	record, err := h.svc.CloseOutward(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, "close outward", err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// CreateTransfer records a site-to-site transfer.
func (h *IntakeHandler) CreateTransfer(c *gin.Context) {
	var input catalog.TransferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := h.svc.RecordTransfer(c.Request.Context(), input)
	if err != nil {
		h.writeError(c, "record transfer", err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// PutAllocation creates or replaces a required-quantity line.
func (h *IntakeHandler) PutAllocation(c *gin.Context) {
	var input catalog.AllocationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	allocation, err := h.svc.UpsertAllocation(c.Request.Context(), input)
	if err != nil {
		h.writeError(c, "save allocation", err)
		return
	}
	c.JSON(http.StatusOK, allocation)
}

// CreateProject registers a project.
func (h *IntakeHandler) CreateProject(c *gin.Context) {
	var input catalog.ProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	project, err := h.svc.CreateProject(c.Request.Context(), input)
	if err != nil {
		h.writeError(c, "create project", err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

// CreateMaterial registers a material.
func (h *IntakeHandler) CreateMaterial(c *gin.Context) {
	var input catalog.MaterialInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	material, err := h.svc.CreateMaterial(c.Request.Context(), input)
	if err != nil {
		h.writeError(c, "create material", err)
		return
	}
	c.JSON(http.StatusCreated, material)
}
