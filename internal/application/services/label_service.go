package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/tasksystem/core/internal/domain/entities"
	"github.com/tasksystem/core/internal/infrastructure/logger"
	"github.com/tasksystem/core/internal/ports"
)

// LabelService handles label operations. The shared default pool is
// immutable and undeletable.
type LabelService struct {
	labelRepo      ports.LabelRepository
	projectService *ProjectService
	logger         *logger.Logger
}

// NewLabelService creates a new label service
func NewLabelService(labelRepo ports.LabelRepository, projectService *ProjectService, logger *logger.Logger) *LabelService {
	return &LabelService{
		labelRepo:      labelRepo,
		projectService: projectService,
		logger:         logger,
	}
}

// Create returns an existing label when the (name, color, project) triple
// already exists, so repeated creates never produce duplicate rows. With
// neither name nor color given, the shared default GRAY label is returned.
func (s *LabelService) Create(ctx context.Context, callerID uuid.UUID, req ports.CreateLabelRequest) (*entities.Label, error) {
	if _, err := s.projectService.GetByID(ctx, callerID, req.ProjectID); err != nil {
		return nil, err
	}

	if req.Name == nil && req.Color == nil {
		return s.labelRepo.FindDefaultByColor(ctx, entities.ColorGray)
	}

	color := entities.ColorGray
	if req.Color != nil {
		parsed, err := entities.ParseColor(*req.Color)
		if err != nil {
			return nil, err
		}
		color = parsed
	}

	name := ""
	if req.Name != nil {
		name = *req.Name
	}

	existing, err := s.labelRepo.FindByNameColorProject(ctx, name, color, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	projectID := req.ProjectID
	label := &entities.Label{
		Name:      name,
		Color:     color,
		ProjectID: &projectID,
	}

	created, err := s.labelRepo.Create(ctx, label)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Label created", "label_id", created.ID, "project_id", req.ProjectID)
	return created, nil
}

// GetByID resolves a label.
func (s *LabelService) GetByID(ctx context.Context, id int64) (*entities.Label, error) {
	return s.labelRepo.GetByID(ctx, id)
}

// UpdateByID applies a partial update to a project label.
func (s *LabelService) UpdateByID(ctx context.Context, id int64, req ports.UpdateLabelRequest) (*entities.Label, error) {
	label, err := s.labelRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if label.IsDefault() {
		return nil, entities.Businessf("You can't update default label")
	}

	patchField(&label.Name, req.Name)

	if req.Color != nil {
		color, err := entities.ParseColor(*req.Color)
		if err != nil {
			return nil, err
		}
		label.Color = color
	}

	return s.labelRepo.Update(ctx, label)
}

// DeleteByID soft-deletes a project label.
func (s *LabelService) DeleteByID(ctx context.Context, id int64) error {
	label, err := s.labelRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if label.IsDefault() {
		return entities.Businessf("You can't delete default label")
	}

	return s.labelRepo.SoftDelete(ctx, id)
}

// GetAllByProjectID lists the project's labels plus the default pool.
func (s *LabelService) GetAllByProjectID(ctx context.Context, callerID uuid.UUID, projectID int64) ([]*entities.Label, error) {
	if _, err := s.projectService.GetByID(ctx, callerID, projectID); err != nil {
		return nil, err
	}

	return s.labelRepo.GetAllByProjectID(ctx, projectID)
}
