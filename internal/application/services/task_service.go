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

// TaskService handles task-related operations
type TaskService struct {
	taskRepo       ports.TaskRepository
	projectService *ProjectService
	notifier       ports.Notifier
	logger         *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskRepository, projectService *ProjectService, notifier ports.Notifier, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo:       taskRepo,
		projectService: projectService,
		notifier:       notifier,
		logger:         logger,
	}
}

// Create creates a task in a project the caller belongs to.
func (s *TaskService) Create(ctx context.Context, callerID uuid.UUID, req ports.CreateTaskRequest) (*entities.Task, error) {
	project, err := s.projectService.GetByID(ctx, callerID, req.ProjectID)
	if err != nil {
		return nil, err
	}

	if err := checkAssignee(project, req.AssigneeID); err != nil {
		return nil, err
	}

	if err := checkDueDate(project, req.DueDate); err != nil {
		return nil, err
	}

	task := &entities.Task{
		ProjectID:   req.ProjectID,
		Name:        req.Name,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
		DueDate:     req.DueDate,
		AssigneeID:  req.AssigneeID,
	}

	created, err := s.taskRepo.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Task created", "task_id", created.ID, "project_id", req.ProjectID)

	if created.AssigneeID != nil {
		s.notifier.NotifyUser(ctx, *created.AssigneeID,
			fmt.Sprintf("You have been assigned to the task.\nTask: %s", created.Name))
	}

	return created, nil
}

// GetByID resolves a task, propagating the parent project's access check.
func (s *TaskService) GetByID(ctx context.Context, callerID uuid.UUID, id int64) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.projectService.GetByID(ctx, callerID, task.ProjectID); err != nil {
		return nil, err
	}

	return task, nil
}

// UpdateByID applies a partial update. Only project administrators may
// mutate tasks.
func (s *TaskService) UpdateByID(ctx context.Context, callerID uuid.UUID, id int64, req ports.UpdateTaskRequest) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	project, err := s.projectService.GetByID(ctx, callerID, task.ProjectID)
	if err != nil {
		return nil, err
	}

	if err := authorizeProject(callerID, project, ActionMutateTasks); err != nil {
		return nil, err
	}

	if req.DueDate != nil {
		if err := checkDueDate(project, *req.DueDate); err != nil {
			return nil, err
		}
	}

	hadAssignee := task.AssigneeID != nil

	patchField(&task.Name, req.Name)
	patchField(&task.Description, req.Description)
	patchField(&task.Priority, req.Priority)
	patchField(&task.Status, req.Status)
	patchField(&task.DueDate, req.DueDate)

	if req.AssigneeID != nil {
		if err := checkAssignee(project, req.AssigneeID); err != nil {
			return nil, err
		}
		task.AssigneeID = req.AssigneeID
	}

	updated, err := s.taskRepo.Update(ctx, task)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Task updated", "task_id", id, "caller_id", callerID)

	if updated.AssigneeID != nil {
		if !hadAssignee {
			s.notifier.NotifyUser(ctx, *updated.AssigneeID,
				fmt.Sprintf("You have been assigned to the task.\nTask: %s", updated.Name))
		}
		s.notifier.NotifyUser(ctx, *updated.AssigneeID,
			fmt.Sprintf("The task has been updated\nTask: %s", updated.Name))
	}

	return updated, nil
}

// DeleteByID soft-deletes a task. Only project administrators may do that.
func (s *TaskService) DeleteByID(ctx context.Context, callerID uuid.UUID, id int64) error {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	project, err := s.projectService.GetByID(ctx, callerID, task.ProjectID)
	if err != nil {
		return err
	}

	if err := authorizeProject(callerID, project, ActionMutateTasks); err != nil {
		return err
	}

	if err := s.taskRepo.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.logger.Infow("Task deleted", "task_id", id, "caller_id", callerID)
	return nil
}

// GetAll lists low-detail rows for every task in the project.
func (s *TaskService) GetAll(ctx context.Context, callerID uuid.UUID, projectID int64) ([]ports.TaskLowDetails, error) {
	if _, err := s.projectService.GetByID(ctx, callerID, projectID); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.GetAllByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	details := make([]ports.TaskLowDetails, 0, len(tasks))
	for _, task := range tasks {
		details = append(details, ports.TaskLowDetails{
			ID:         task.ID,
			Name:       task.Name,
			Priority:   task.Priority,
			Status:     task.Status,
			DueDate:    task.DueDate,
			AssigneeID: task.AssigneeID,
		})
	}

	return details, nil
}

// findByID resolves a task without an access check, for services that run
// their own checks against the parent project.
func (s *TaskService) findByID(ctx context.Context, id int64) (*entities.Task, error) {
	return s.taskRepo.GetByID(ctx, id)
}

func checkAssignee(project *entities.Project, assigneeID *uuid.UUID) error {
	if assigneeID == nil {
		return nil
	}
	if !project.IsMember(*assigneeID) {
		return entities.Businessf(
			"The user with ID: %s cannot be assigned as assignee user because it does not exist in the project with ID: %d. Add this user to the project or choose another one.",
			*assigneeID, project.ID,
		)
	}
	return nil
}

func checkDueDate(project *entities.Project, dueDate time.Time) error {
	if dueDate.After(project.EndDate) {
		return entities.Businessf(
			"The date is incorrect: %s, you entered a date after the end date of the project: %s",
			dueDate.Format(time.DateOnly), project.EndDate.Format(time.DateOnly),
		)
	}
	if dueDate.Before(project.StartDate) {
		return entities.Businessf(
			"The date is incorrect: %s, you entered a date before the start date of the project: %s",
			dueDate.Format(time.DateOnly), project.StartDate.Format(time.DateOnly),
		)
	}
	return nil
}
