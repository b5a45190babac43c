package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/tasksystem/core/internal/domain/entities"
	"github.com/tasksystem/core/internal/ports"
)

// TaskRepositoryImpl implements the TaskRepository interface
type TaskRepositoryImpl struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sqlx.DB) ports.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *entities.Task) (*entities.Task, error) {
	query := `
		INSERT INTO tasks (project_id, name, description, priority, status, due_date, assignee_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		task.ProjectID, task.Name, task.Description, task.Priority,
		task.Status, task.DueDate, task.AssigneeID,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	return task, nil
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id int64) (*entities.Task, error) {
	query := `
		SELECT id, project_id, name, description, priority, status, due_date,
			assignee_id, is_deleted, created_at, updated_at
		FROM tasks
		WHERE id = $1 AND ` + notDeleted

	var task entities.Task
	err := r.db.GetContext(ctx, &task, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.NotFoundf("Can't find task by id: %d", id)
		}
		return nil, fmt.Errorf("get task by id: %w", err)
	}

	return &task, nil
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, task *entities.Task) (*entities.Task, error) {
	query := `
		UPDATE tasks
		SET name = $2, description = $3, priority = $4, status = $5,
			due_date = $6, assignee_id = $7, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND ` + notDeleted + `
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.Name, task.Description, task.Priority,
		task.Status, task.DueDate, task.AssigneeID,
	).Scan(&task.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.NotFoundf("Can't find task by id: %d", task.ID)
		}
		return nil, fmt.Errorf("update task: %w", err)
	}

	return task, nil
}

func (r *TaskRepositoryImpl) SoftDelete(ctx context.Context, id int64) error {
	query := `UPDATE tasks SET is_deleted = TRUE, updated_at = CURRENT_TIMESTAMP WHERE id = $1 AND ` + notDeleted

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.NotFoundf("Can't find task by id: %d", id)
	}

	return nil
}

func (r *TaskRepositoryImpl) GetAllByProjectID(ctx context.Context, projectID int64) ([]*entities.Task, error) {
	query := `
		SELECT id, project_id, name, description, priority, status, due_date,
			assignee_id, is_deleted, created_at, updated_at
		FROM tasks
		WHERE project_id = $1 AND ` + notDeleted + `
		ORDER BY due_date, id`

	var tasks []*entities.Task
	err := r.db.SelectContext(ctx, &tasks, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("get tasks by project: %w", err)
	}

	return tasks, nil
}
