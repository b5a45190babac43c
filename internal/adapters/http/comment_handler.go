package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/tasksystem/core/internal/application/services"
	"github.com/tasksystem/core/internal/infrastructure/logger"
	"github.com/tasksystem/core/internal/ports"
)

// CommentHandler handles comment-related requests
type CommentHandler struct {
	commentService *services.CommentService
	logger         *logger.Logger
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(commentService *services.CommentService, logger *logger.Logger) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		logger:         logger,
	}
}

// CreateComment attaches a comment to a task
func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req ports.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.commentService.Create(c.Request().Context(), callerID(c), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, comment)
}

// ListComments returns every comment on a task
func (h *CommentHandler) ListComments(c echo.Context) error {
	taskID, err := strconv.ParseInt(c.QueryParam("taskId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid taskId parameter")
	}

	comments, err := h.commentService.GetAllByTaskID(c.Request().Context(), taskID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, comments)
}

// UpdateComment replaces the text of the caller's own comment
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req ports.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.commentService.UpdateByID(c.Request().Context(), callerID(c), id, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, comment)
}

// DeleteComment soft-deletes the caller's own comment
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.commentService.DeleteByID(c.Request().Context(), callerID(c), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
