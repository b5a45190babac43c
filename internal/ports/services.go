package ports

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/tasksystem/core/internal/domain/entities"
)

// FileStore is the object-storage contract the attachment service depends on.
type FileStore interface {
	Upload(ctx context.Context, filename string, r io.Reader) (objectID string, err error)
	Download(ctx context.Context, objectID string) (io.ReadCloser, error)
}

// Notifier pushes human-readable messages to users' linked chat sessions.
// Recipients without a linked session are skipped silently; transport
// failures are returned to the caller.
type Notifier interface {
	NotifyUser(ctx context.Context, userID uuid.UUID, text string) error
	NotifyUsers(ctx context.Context, userIDs []uuid.UUID, text string) error
}

// Claims is the identity carried by a validated bearer token.
type Claims struct {
	UserID uuid.UUID     `json:"user_id"`
	Email  string        `json:"email"`
	Role   entities.Role `json:"role"`
}

// Auth related types
type RegisterRequest struct {
	Email          string `json:"email" validate:"required,email,min=8,max=30"`
	Password       string `json:"password" validate:"required,password"`
	RepeatPassword string `json:"repeat_password" validate:"required,eqfield=Password"`
	Username       string `json:"username" validate:"required,min=3,max=30,username"`
	FirstName      string `json:"first_name" validate:"required,min=3,max=30"`
	LastName       string `json:"last_name" validate:"required,min=3,max=30"`
}

type LoginRequest struct {
	UsernameOrEmail string `json:"username_or_email" validate:"required"`
	Password        string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	ExpiresIn   int64          `json:"expires_in"`
	User        *entities.User `json:"user"`
}

// User related types
type UpdateProfileRequest struct {
	Username  *string `json:"username" validate:"omitempty,min=3,max=30,username"`
	FirstName *string `json:"first_name" validate:"omitempty,min=3,max=30"`
	LastName  *string `json:"last_name" validate:"omitempty,min=3,max=30"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// Project related types
type CreateProjectRequest struct {
	Name             string                 `json:"name" validate:"required,max=200"`
	Description      string                 `json:"description" validate:"omitempty,max=1000"`
	StartDate        time.Time              `json:"start_date" validate:"required"`
	EndDate          time.Time              `json:"end_date" validate:"required"`
	Status           entities.ProjectStatus `json:"status" validate:"required,oneof=INITIATED IN_PROGRESS COMPLETED"`
	UserIDs          []uuid.UUID            `json:"user_ids"`
	AdministratorIDs []uuid.UUID            `json:"administrator_ids"`
}

type UpdateProjectRequest struct {
	Name             *string                 `json:"name" validate:"omitempty,max=200"`
	Description      *string                 `json:"description" validate:"omitempty,max=1000"`
	StartDate        *time.Time              `json:"start_date"`
	EndDate          *time.Time              `json:"end_date"`
	Status           *entities.ProjectStatus `json:"status" validate:"omitempty,oneof=INITIATED IN_PROGRESS COMPLETED"`
	UserIDs          []uuid.UUID             `json:"user_ids"`
	AdministratorIDs []uuid.UUID             `json:"administrator_ids"`
}

// ProjectLowInfo is the summary row for project listings.
type ProjectLowInfo struct {
	ID     int64                  `json:"id"`
	Name   string                 `json:"name"`
	Status entities.ProjectStatus `json:"status"`
}

// Task related types
type CreateTaskRequest struct {
	Name        string              `json:"name" validate:"required,max=500"`
	Description string              `json:"description" validate:"omitempty,max=2000"`
	Priority    entities.Priority   `json:"priority" validate:"required,oneof=LOW MEDIUM HIGH"`
	Status      entities.TaskStatus `json:"status" validate:"required,oneof=NOT_STARTED IN_PROGRESS COMPLETED"`
	DueDate     time.Time           `json:"due_date" validate:"required"`
	ProjectID   int64               `json:"project_id" validate:"required"`
	AssigneeID  *uuid.UUID          `json:"assignee_id"`
}

type UpdateTaskRequest struct {
	Name        *string              `json:"name" validate:"omitempty,max=500"`
	Description *string              `json:"description" validate:"omitempty,max=2000"`
	Priority    *entities.Priority   `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	Status      *entities.TaskStatus `json:"status" validate:"omitempty,oneof=NOT_STARTED IN_PROGRESS COMPLETED"`
	DueDate     *time.Time           `json:"due_date"`
	AssigneeID  *uuid.UUID           `json:"assignee_id"`
}

// TaskLowDetails is the summary row for task listings.
type TaskLowDetails struct {
	ID         int64               `json:"id"`
	Name       string              `json:"name"`
	Priority   entities.Priority   `json:"priority"`
	Status     entities.TaskStatus `json:"status"`
	DueDate    time.Time           `json:"due_date"`
	AssigneeID *uuid.UUID          `json:"assignee_id"`
}

// Label related types
type CreateLabelRequest struct {
	Name      *string `json:"name" validate:"omitempty,max=100"`
	Color     *string `json:"color"`
	ProjectID int64   `json:"project_id" validate:"required"`
}

type UpdateLabelRequest struct {
	Name  *string `json:"name" validate:"omitempty,max=100"`
	Color *string `json:"color"`
}

// Comment related types
type CreateCommentRequest struct {
	TaskID int64  `json:"task_id" validate:"required"`
	Text   string `json:"text" validate:"required,max=2000"`
}

type UpdateCommentRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// Attachment related types
type AttachmentDownload struct {
	Filename string
	Content  io.ReadCloser
}
