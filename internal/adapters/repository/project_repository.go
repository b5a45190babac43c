package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/tasksystem/core/internal/domain/entities"
	"github.com/tasksystem/core/internal/infrastructure/database"
	"github.com/tasksystem/core/internal/ports"
)

// ProjectRepositoryImpl implements the ProjectRepository interface.
// The membership sets live in join tables and are written together with
// the project row inside one transaction.
type ProjectRepositoryImpl struct {
	db *database.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *database.DB) ports.ProjectRepository {
	return &ProjectRepositoryImpl{db: db}
}

func (r *ProjectRepositoryImpl) Create(ctx context.Context, project *entities.Project) (*entities.Project, error) {
	err := r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO projects (name, description, start_date, end_date, status, main_user_id)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at, updated_at`

		err := tx.QueryRowContext(ctx, query,
			project.Name, project.Description, project.StartDate,
			project.EndDate, project.Status, project.MainUserID,
		).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
		if err != nil {
			return fmt.Errorf("create project: %w", err)
		}

		return replaceMembership(ctx, tx, project)
	})
	if err != nil {
		return nil, err
	}

	return project, nil
}

func (r *ProjectRepositoryImpl) GetByID(ctx context.Context, id int64) (*entities.Project, error) {
	query := `
		SELECT id, name, description, start_date, end_date, status, main_user_id,
			is_deleted, created_at, updated_at
		FROM projects
		WHERE id = $1 AND ` + notDeleted

	var project entities.Project
	err := r.db.DB.GetContext(ctx, &project, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.NotFoundf("Can't find project by id: %d", id)
		}
		return nil, fmt.Errorf("get project by id: %w", err)
	}

	if err := r.loadMembership(ctx, &project); err != nil {
		return nil, err
	}

	return &project, nil
}

func (r *ProjectRepositoryImpl) Update(ctx context.Context, project *entities.Project) (*entities.Project, error) {
	err := r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		query := `
			UPDATE projects
			SET name = $2, description = $3, start_date = $4, end_date = $5,
				status = $6, main_user_id = $7, updated_at = CURRENT_TIMESTAMP
			WHERE id = $1 AND ` + notDeleted + `
			RETURNING updated_at`

		err := tx.QueryRowContext(ctx, query,
			project.ID, project.Name, project.Description, project.StartDate,
			project.EndDate, project.Status, project.MainUserID,
		).Scan(&project.UpdatedAt)
		if err != nil {
			if err == sql.ErrNoRows {
				return entities.NotFoundf("Can't find project by id: %d", project.ID)
			}
			return fmt.Errorf("update project: %w", err)
		}

		return replaceMembership(ctx, tx, project)
	})
	if err != nil {
		return nil, err
	}

	return project, nil
}

func (r *ProjectRepositoryImpl) FindByName(ctx context.Context, name string) (*entities.Project, error) {
	query := `
		SELECT id, name, description, start_date, end_date, status, main_user_id,
			is_deleted, created_at, updated_at
		FROM projects
		WHERE name = $1 AND ` + notDeleted

	var project entities.Project
	err := r.db.DB.GetContext(ctx, &project, query, name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find project by name: %w", err)
	}

	if err := r.loadMembership(ctx, &project); err != nil {
		return nil, err
	}

	return &project, nil
}

func (r *ProjectRepositoryImpl) SoftDelete(ctx context.Context, id int64) error {
	query := `UPDATE projects SET is_deleted = TRUE, updated_at = CURRENT_TIMESTAMP WHERE id = $1 AND ` + notDeleted

	result, err := r.db.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.NotFoundf("Can't find project by id: %d", id)
	}

	return nil
}

func (r *ProjectRepositoryImpl) GetAllByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Project, error) {
	query := `
		SELECT p.id, p.name, p.description, p.start_date, p.end_date, p.status,
			p.main_user_id, p.is_deleted, p.created_at, p.updated_at
		FROM projects p
		JOIN project_members m ON m.project_id = p.id
		WHERE m.user_id = $1 AND p.` + notDeleted + `
		ORDER BY p.created_at`

	var projects []*entities.Project
	err := r.db.DB.SelectContext(ctx, &projects, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get projects by user: %w", err)
	}

	for _, project := range projects {
		if err := r.loadMembership(ctx, project); err != nil {
			return nil, err
		}
	}

	return projects, nil
}

func (r *ProjectRepositoryImpl) loadMembership(ctx context.Context, project *entities.Project) error {
	memberQuery := `SELECT user_id FROM project_members WHERE project_id = $1 ORDER BY user_id`
	if err := r.db.DB.SelectContext(ctx, &project.MemberIDs, memberQuery, project.ID); err != nil {
		return fmt.Errorf("load project members: %w", err)
	}

	adminQuery := `SELECT user_id FROM project_administrators WHERE project_id = $1 ORDER BY user_id`
	if err := r.db.DB.SelectContext(ctx, &project.AdministratorIDs, adminQuery, project.ID); err != nil {
		return fmt.Errorf("load project administrators: %w", err)
	}

	return nil
}

func replaceMembership(ctx context.Context, tx *sqlx.Tx, project *entities.Project) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM project_members WHERE project_id = $1`, project.ID); err != nil {
		return fmt.Errorf("clear project members: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM project_administrators WHERE project_id = $1`, project.ID); err != nil {
		return fmt.Errorf("clear project administrators: %w", err)
	}

	for _, userID := range project.MemberIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO project_members (project_id, user_id) VALUES ($1, $2)`,
			project.ID, userID); err != nil {
			return fmt.Errorf("insert project member: %w", err)
		}
	}

	for _, userID := range project.AdministratorIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO project_administrators (project_id, user_id) VALUES ($1, $2)`,
			project.ID, userID); err != nil {
			return fmt.Errorf("insert project administrator: %w", err)
		}
	}

	return nil
}
