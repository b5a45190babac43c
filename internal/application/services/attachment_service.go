package services

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/tasksystem/core/internal/domain/entities"
	"github.com/tasksystem/core/internal/infrastructure/logger"
	"github.com/tasksystem/core/internal/ports"
)

// AttachmentService proxies task files to external object storage and
// keeps a local record per upload.
type AttachmentService struct {
	attachmentRepo ports.AttachmentRepository
	fileStore      ports.FileStore
	taskService    *TaskService
	logger         *logger.Logger
}

// NewAttachmentService creates a new attachment service
func NewAttachmentService(attachmentRepo ports.AttachmentRepository, fileStore ports.FileStore, taskService *TaskService, logger *logger.Logger) *AttachmentService {
	return &AttachmentService{
		attachmentRepo: attachmentRepo,
		fileStore:      fileStore,
		taskService:    taskService,
		logger:         logger,
	}
}

// Upload streams the file to object storage and records the mapping.
func (s *AttachmentService) Upload(ctx context.Context, taskID int64, filename string, content io.Reader) (*entities.Attachment, error) {
	if _, err := s.taskService.findByID(ctx, taskID); err != nil {
		return nil, err
	}

	objectID, err := s.fileStore.Upload(ctx, filename, content)
	if err != nil {
		return nil, fmt.Errorf("Can't upload file: %s, to storage service: %w", filename, err)
	}

	attachment := &entities.Attachment{
		TaskID:   taskID,
		ObjectID: objectID,
		Filename: filename,
	}

	created, err := s.attachmentRepo.Create(ctx, attachment)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Attachment uploaded", "attachment_id", created.ID, "task_id", taskID, "filename", filename)
	return created, nil
}

// Download streams one attachment back from object storage.
func (s *AttachmentService) Download(ctx context.Context, attachmentID int64) (*ports.AttachmentDownload, error) {
	attachment, err := s.attachmentRepo.GetByID(ctx, attachmentID)
	if err != nil {
		return nil, err
	}

	content, err := s.fileStore.Download(ctx, attachment.ObjectID)
	if err != nil {
		return nil, fmt.Errorf("download attachment %d: %w", attachmentID, err)
	}

	return &ports.AttachmentDownload{
		Filename: attachment.Filename,
		Content:  content,
	}, nil
}

// DownloadAllByTaskID bundles every attachment of a task into one zip
// archive named after the task.
func (s *AttachmentService) DownloadAllByTaskID(ctx context.Context, taskID int64) (*ports.AttachmentDownload, error) {
	task, err := s.taskService.findByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	attachments, err := s.attachmentRepo.GetAllByTaskID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zipWriter := zip.NewWriter(&buf)

	for _, attachment := range attachments {
		if err := s.addZipEntry(ctx, zipWriter, attachment); err != nil {
			zipWriter.Close()
			return nil, err
		}
	}

	if err := zipWriter.Close(); err != nil {
		return nil, fmt.Errorf("Can't create and download Zip archive: %w", err)
	}

	return &ports.AttachmentDownload{
		Filename: task.Name + "-attachments.zip",
		Content:  io.NopCloser(bytes.NewReader(buf.Bytes())),
	}, nil
}

func (s *AttachmentService) addZipEntry(ctx context.Context, zipWriter *zip.Writer, attachment *entities.Attachment) error {
	content, err := s.fileStore.Download(ctx, attachment.ObjectID)
	if err != nil {
		return fmt.Errorf("download attachment %d: %w", attachment.ID, err)
	}
	defer content.Close()

	entry, err := zipWriter.Create(attachment.Filename)
	if err != nil {
		return fmt.Errorf("Can't create and download Zip archive: %w", err)
	}

	if _, err := io.Copy(entry, content); err != nil {
		return fmt.Errorf("Can't create and download Zip archive: %w", err)
	}

	return nil
}
