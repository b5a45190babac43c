package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/tasksystem/core/internal/domain/entities"
	"github.com/tasksystem/core/internal/ports"
)

// AttachmentRepositoryImpl implements the AttachmentRepository interface
type AttachmentRepositoryImpl struct {
	db *sqlx.DB
}

// NewAttachmentRepository creates a new attachment repository
func NewAttachmentRepository(db *sqlx.DB) ports.AttachmentRepository {
	return &AttachmentRepositoryImpl{db: db}
}

func (r *AttachmentRepositoryImpl) Create(ctx context.Context, attachment *entities.Attachment) (*entities.Attachment, error) {
	query := `
		INSERT INTO attachments (task_id, object_id, filename)
		VALUES ($1, $2, $3)
		RETURNING id, uploaded_at`

	err := r.db.QueryRowContext(ctx, query,
		attachment.TaskID, attachment.ObjectID, attachment.Filename,
	).Scan(&attachment.ID, &attachment.UploadedAt)

	if err != nil {
		return nil, fmt.Errorf("create attachment: %w", err)
	}

	return attachment, nil
}

func (r *AttachmentRepositoryImpl) GetByID(ctx context.Context, id int64) (*entities.Attachment, error) {
	query := `
		SELECT id, task_id, object_id, filename, uploaded_at
		FROM attachments
		WHERE id = $1`

	var attachment entities.Attachment
	err := r.db.GetContext(ctx, &attachment, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.NotFoundf("Can't find attachment by id: %d", id)
		}
		return nil, fmt.Errorf("get attachment by id: %w", err)
	}

	return &attachment, nil
}

func (r *AttachmentRepositoryImpl) GetAllByTaskID(ctx context.Context, taskID int64) ([]*entities.Attachment, error) {
	query := `
		SELECT id, task_id, object_id, filename, uploaded_at
		FROM attachments
		WHERE task_id = $1
		ORDER BY uploaded_at, id`

	var attachments []*entities.Attachment
	err := r.db.SelectContext(ctx, &attachments, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("get attachments by task: %w", err)
	}

	return attachments, nil
}
