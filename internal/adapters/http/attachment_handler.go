package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/tasksystem/core/internal/application/services"
	"github.com/tasksystem/core/internal/infrastructure/logger"
)

// AttachmentHandler handles file upload and download requests
type AttachmentHandler struct {
	attachmentService *services.AttachmentService
	logger            *logger.Logger
}

// NewAttachmentHandler creates a new attachment handler
func NewAttachmentHandler(attachmentService *services.AttachmentService, logger *logger.Logger) *AttachmentHandler {
	return &AttachmentHandler{
		attachmentService: attachmentService,
		logger:            logger,
	}
}

// Upload godoc
// @Summary Upload a file for a task
// @Description Multipart upload; the file is stored in external object storage
// @Tags attachments
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Param taskId formData int true "Task ID"
// @Success 201 {object} entities.Attachment
// @Security BearerAuth
// @Router /attachments [post]
func (h *AttachmentHandler) Upload(c echo.Context) error {
	taskID, err := strconv.ParseInt(c.FormValue("taskId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid taskId parameter")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Can't read uploaded file")
	}
	defer file.Close()

	attachment, err := h.attachmentService.Upload(c.Request().Context(), taskID, fileHeader.Filename, file)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, attachment)
}

// Download streams one attachment back to the caller
func (h *AttachmentHandler) Download(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	download, err := h.attachmentService.Download(c.Request().Context(), id)
	if err != nil {
		return err
	}
	defer download.Content.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, download.Filename))
	return c.Stream(http.StatusOK, echo.MIMEOctetStream, download.Content)
}

// DownloadAllByTask streams every attachment of a task as one zip archive
func (h *AttachmentHandler) DownloadAllByTask(c echo.Context) error {
	taskID, err := parseID(c)
	if err != nil {
		return err
	}

	download, err := h.attachmentService.DownloadAllByTaskID(c.Request().Context(), taskID)
	if err != nil {
		return err
	}
	defer download.Content.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, download.Filename))
	return c.Stream(http.StatusOK, echo.MIMEOctetStream, download.Content)
}
