package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/tasksystem/core/internal/domain/entities"
)

// UserRepository defines the interface for user directory operations.
// Every read filters out soft-deleted rows.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) (*entities.User, error)
	GetAll(ctx context.Context) ([]*entities.User, error)
}

// ProjectRepository defines the interface for project data operations.
// Create and Update persist the member and administrator sets together
// with the project row in a single transaction.
type ProjectRepository interface {
	Create(ctx context.Context, project *entities.Project) (*entities.Project, error)
	GetByID(ctx context.Context, id int64) (*entities.Project, error)
	// FindByName returns nil without error when no non-deleted project
	// carries the name.
	FindByName(ctx context.Context, name string) (*entities.Project, error)
	Update(ctx context.Context, project *entities.Project) (*entities.Project, error)
	SoftDelete(ctx context.Context, id int64) error
	GetAllByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Project, error)
}

// TaskRepository defines the interface for task data operations.
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) (*entities.Task, error)
	GetByID(ctx context.Context, id int64) (*entities.Task, error)
	Update(ctx context.Context, task *entities.Task) (*entities.Task, error)
	SoftDelete(ctx context.Context, id int64) error
	GetAllByProjectID(ctx context.Context, projectID int64) ([]*entities.Task, error)
}

// LabelRepository defines the interface for label data operations.
type LabelRepository interface {
	Create(ctx context.Context, label *entities.Label) (*entities.Label, error)
	GetByID(ctx context.Context, id int64) (*entities.Label, error)
	Update(ctx context.Context, label *entities.Label) (*entities.Label, error)
	SoftDelete(ctx context.Context, id int64) error
	// GetAllByProjectID returns the project's labels plus the default pool.
	GetAllByProjectID(ctx context.Context, projectID int64) ([]*entities.Label, error)
	// FindByNameColorProject returns nil without error when no row matches.
	FindByNameColorProject(ctx context.Context, name string, color entities.Color, projectID int64) (*entities.Label, error)
	FindDefaultByColor(ctx context.Context, color entities.Color) (*entities.Label, error)
}

// CommentRepository defines the interface for comment data operations.
type CommentRepository interface {
	Create(ctx context.Context, comment *entities.Comment) (*entities.Comment, error)
	GetByID(ctx context.Context, id int64) (*entities.Comment, error)
	Update(ctx context.Context, comment *entities.Comment) (*entities.Comment, error)
	SoftDelete(ctx context.Context, id int64) error
	GetAllByTaskID(ctx context.Context, taskID int64) ([]*entities.Comment, error)
}

// AttachmentRepository defines the interface for attachment records.
// Attachments are never deleted through the public API.
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *entities.Attachment) (*entities.Attachment, error)
	GetByID(ctx context.Context, id int64) (*entities.Attachment, error)
	GetAllByTaskID(ctx context.Context, taskID int64) ([]*entities.Attachment, error)
}

// BotChatRepository defines the interface for chat-session links.
type BotChatRepository interface {
	// Save creates the link or revives a previously soft-deleted one.
	Save(ctx context.Context, chatID int64, userID uuid.UUID) error
	// GetByUserID returns nil without error when the user has no link.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.BotChat, error)
}
