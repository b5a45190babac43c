package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/tasksystem/core/internal/application/services"
	"github.com/tasksystem/core/internal/infrastructure/logger"
	"github.com/tasksystem/core/internal/ports"
)

// LabelHandler handles label-related requests
type LabelHandler struct {
	labelService *services.LabelService
	logger       *logger.Logger
}

// NewLabelHandler creates a new label handler
func NewLabelHandler(labelService *services.LabelService, logger *logger.Logger) *LabelHandler {
	return &LabelHandler{
		labelService: labelService,
		logger:       logger,
	}
}

// CreateLabel godoc
// @Summary Create a label
// @Description Idempotent per (name, color, project) triple; with no name and no color the shared default GRAY label is returned
// @Tags labels
// @Accept json
// @Produce json
// @Param request body ports.CreateLabelRequest true "Label data"
// @Success 201 {object} entities.Label
// @Security BearerAuth
// @Router /labels [post]
func (h *LabelHandler) CreateLabel(c echo.Context) error {
	var req ports.CreateLabelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	label, err := h.labelService.Create(c.Request().Context(), callerID(c), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, label)
}

// ListLabels returns the project's labels plus the default pool
func (h *LabelHandler) ListLabels(c echo.Context) error {
	projectID, err := strconv.ParseInt(c.QueryParam("projectId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid projectId parameter")
	}

	labels, err := h.labelService.GetAllByProjectID(c.Request().Context(), callerID(c), projectID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, labels)
}

// GetLabel returns one label
func (h *LabelHandler) GetLabel(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	label, err := h.labelService.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, label)
}

// UpdateLabel applies a partial update; default labels are immutable
func (h *LabelHandler) UpdateLabel(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req ports.UpdateLabelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	label, err := h.labelService.UpdateByID(c.Request().Context(), id, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, label)
}

// DeleteLabel soft-deletes a project label; default labels are undeletable
func (h *LabelHandler) DeleteLabel(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.labelService.DeleteByID(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
