package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/tasksystem/core/internal/domain/entities"
	"github.com/tasksystem/core/internal/ports"
)

// CommentRepositoryImpl implements the CommentRepository interface
type CommentRepositoryImpl struct {
	db *sqlx.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *sqlx.DB) ports.CommentRepository {
	return &CommentRepositoryImpl{db: db}
}

func (r *CommentRepositoryImpl) Create(ctx context.Context, comment *entities.Comment) (*entities.Comment, error) {
	query := `
		INSERT INTO comments (task_id, user_id, text, timestamp)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		comment.TaskID, comment.UserID, comment.Text, comment.Timestamp,
	).Scan(&comment.ID)

	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	return comment, nil
}

func (r *CommentRepositoryImpl) GetByID(ctx context.Context, id int64) (*entities.Comment, error) {
	query := `
		SELECT id, task_id, user_id, text, timestamp, is_deleted
		FROM comments
		WHERE id = $1 AND ` + notDeleted

	var comment entities.Comment
	err := r.db.GetContext(ctx, &comment, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.NotFoundf("Can't find comment by id: %d", id)
		}
		return nil, fmt.Errorf("get comment by id: %w", err)
	}

	return &comment, nil
}

func (r *CommentRepositoryImpl) Update(ctx context.Context, comment *entities.Comment) (*entities.Comment, error) {
	query := `
		UPDATE comments
		SET text = $2, timestamp = $3
		WHERE id = $1 AND ` + notDeleted + `
		RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query, comment.ID, comment.Text, comment.Timestamp).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.NotFoundf("Can't find comment by id: %d", comment.ID)
		}
		return nil, fmt.Errorf("update comment: %w", err)
	}

	return comment, nil
}

func (r *CommentRepositoryImpl) SoftDelete(ctx context.Context, id int64) error {
	query := `UPDATE comments SET is_deleted = TRUE WHERE id = $1 AND ` + notDeleted

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.NotFoundf("Can't find comment by id: %d", id)
	}

	return nil
}

func (r *CommentRepositoryImpl) GetAllByTaskID(ctx context.Context, taskID int64) ([]*entities.Comment, error) {
	query := `
		SELECT id, task_id, user_id, text, timestamp, is_deleted
		FROM comments
		WHERE task_id = $1 AND ` + notDeleted + `
		ORDER BY timestamp, id`

	var comments []*entities.Comment
	err := r.db.SelectContext(ctx, &comments, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("get comments by task: %w", err)
	}

	return comments, nil
}
