package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tasksystem/core/internal/domain/entities"
	"github.com/tasksystem/core/internal/infrastructure/logger"
	"github.com/tasksystem/core/internal/ports"
)

// CommentService handles comment operations. Only a comment's author may
// change or remove it.
type CommentService struct {
	commentRepo ports.CommentRepository
	taskService *TaskService
	notifier    ports.Notifier
	logger      *logger.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(commentRepo ports.CommentRepository, taskService *TaskService, notifier ports.Notifier, logger *logger.Logger) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		taskService: taskService,
		notifier:    notifier,
		logger:      logger,
	}
}

// Create attaches a comment to a task, stamping the caller as author.
func (s *CommentService) Create(ctx context.Context, callerID uuid.UUID, req ports.CreateCommentRequest) (*entities.Comment, error) {
	task, err := s.taskService.findByID(ctx, req.TaskID)
	if err != nil {
		return nil, err
	}

	comment := &entities.Comment{
		TaskID:    req.TaskID,
		UserID:    callerID,
		Text:      req.Text,
		Timestamp: time.Now(),
	}

	created, err := s.commentRepo.Create(ctx, comment)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Comment created", "comment_id", created.ID, "task_id", req.TaskID)

	if task.AssigneeID != nil {
		s.notifier.NotifyUser(ctx, *task.AssigneeID,
			fmt.Sprintf("User with id: %s, left a message to task.\nTask: %s\nMessage: %s",
				callerID, task.Name, created.Text))
	}

	return created, nil
}

// GetAllByTaskID lists every non-deleted comment on a task.
func (s *CommentService) GetAllByTaskID(ctx context.Context, taskID int64) ([]*entities.Comment, error) {
	if _, err := s.taskService.findByID(ctx, taskID); err != nil {
		return nil, err
	}

	return s.commentRepo.GetAllByTaskID(ctx, taskID)
}

// UpdateByID replaces the comment text and refreshes its timestamp.
func (s *CommentService) UpdateByID(ctx context.Context, callerID uuid.UUID, id int64, req ports.UpdateCommentRequest) (*entities.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := checkCommentAuthor(comment, callerID); err != nil {
		return nil, err
	}

	comment.Text = req.Text
	comment.Timestamp = time.Now()

	return s.commentRepo.Update(ctx, comment)
}

// DeleteByID soft-deletes the author's own comment.
func (s *CommentService) DeleteByID(ctx context.Context, callerID uuid.UUID, id int64) error {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := checkCommentAuthor(comment, callerID); err != nil {
		return err
	}

	return s.commentRepo.SoftDelete(ctx, id)
}

func checkCommentAuthor(comment *entities.Comment, callerID uuid.UUID) error {
	if comment.UserID != callerID {
		return entities.Businessf("It isn't your comment, you cannot update this comment")
	}
	return nil
}
