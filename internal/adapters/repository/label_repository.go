package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/tasksystem/core/internal/domain/entities"
	"github.com/tasksystem/core/internal/ports"
)

// LabelRepositoryImpl implements the LabelRepository interface
type LabelRepositoryImpl struct {
	db *sqlx.DB
}

// NewLabelRepository creates a new label repository
func NewLabelRepository(db *sqlx.DB) ports.LabelRepository {
	return &LabelRepositoryImpl{db: db}
}

func (r *LabelRepositoryImpl) Create(ctx context.Context, label *entities.Label) (*entities.Label, error) {
	query := `
		INSERT INTO labels (name, color, project_id)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		label.Name, label.Color, label.ProjectID,
	).Scan(&label.ID)

	if err != nil {
		return nil, fmt.Errorf("create label: %w", err)
	}

	return label, nil
}

func (r *LabelRepositoryImpl) GetByID(ctx context.Context, id int64) (*entities.Label, error) {
	query := `
		SELECT id, name, color, project_id, is_deleted
		FROM labels
		WHERE id = $1 AND ` + notDeleted

	var label entities.Label
	err := r.db.GetContext(ctx, &label, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.NotFoundf("Can't find label by id: %d", id)
		}
		return nil, fmt.Errorf("get label by id: %w", err)
	}

	return &label, nil
}

func (r *LabelRepositoryImpl) Update(ctx context.Context, label *entities.Label) (*entities.Label, error) {
	query := `
		UPDATE labels
		SET name = $2, color = $3
		WHERE id = $1 AND ` + notDeleted + `
		RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query, label.ID, label.Name, label.Color).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.NotFoundf("Can't find label by id: %d", label.ID)
		}
		return nil, fmt.Errorf("update label: %w", err)
	}

	return label, nil
}

func (r *LabelRepositoryImpl) SoftDelete(ctx context.Context, id int64) error {
	query := `UPDATE labels SET is_deleted = TRUE WHERE id = $1 AND ` + notDeleted

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete label: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.NotFoundf("Can't find label by id: %d", id)
	}

	return nil
}

// GetAllByProjectID returns the project's own labels together with the
// shared default pool.
func (r *LabelRepositoryImpl) GetAllByProjectID(ctx context.Context, projectID int64) ([]*entities.Label, error) {
	query := `
		SELECT id, name, color, project_id, is_deleted
		FROM labels
		WHERE (project_id = $1 OR project_id IS NULL) AND ` + notDeleted + `
		ORDER BY project_id NULLS FIRST, id`

	var labels []*entities.Label
	err := r.db.SelectContext(ctx, &labels, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("get labels by project: %w", err)
	}

	return labels, nil
}

// FindByNameColorProject returns nil without error when no row matches.
func (r *LabelRepositoryImpl) FindByNameColorProject(ctx context.Context, name string, color entities.Color, projectID int64) (*entities.Label, error) {
	query := `
		SELECT id, name, color, project_id, is_deleted
		FROM labels
		WHERE name = $1 AND color = $2 AND project_id = $3 AND ` + notDeleted

	var label entities.Label
	err := r.db.GetContext(ctx, &label, query, name, color, projectID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find label: %w", err)
	}

	return &label, nil
}

func (r *LabelRepositoryImpl) FindDefaultByColor(ctx context.Context, color entities.Color) (*entities.Label, error) {
	query := `
		SELECT id, name, color, project_id, is_deleted
		FROM labels
		WHERE color = $1 AND project_id IS NULL AND ` + notDeleted

	var label entities.Label
	err := r.db.GetContext(ctx, &label, query, color)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.NotFoundf("Can't find default label by color: %s", color)
		}
		return nil, fmt.Errorf("find default label: %w", err)
	}

	return &label, nil
}
