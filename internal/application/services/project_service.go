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

// ProjectService handles project-related operations
type ProjectService struct {
	projectRepo ports.ProjectRepository
	userRepo    ports.UserRepository
	notifier    ports.Notifier
	logger      *logger.Logger
}

// NewProjectService creates a new project service
func NewProjectService(projectRepo ports.ProjectRepository, userRepo ports.UserRepository, notifier ports.Notifier, logger *logger.Logger) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// Create creates a project owned by the caller. The caller becomes the
// main user and joins both membership sets; requested administrators join
// the member set as well.
func (s *ProjectService) Create(ctx context.Context, callerID uuid.UUID, req ports.CreateProjectRequest) (*entities.Project, error) {
	if err := validateDateOrder(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	if err := s.checkNameFree(ctx, req.Name); err != nil {
		return nil, err
	}

	if err := s.resolveUsers(ctx, req.UserIDs); err != nil {
		return nil, err
	}
	if err := s.resolveUsers(ctx, req.AdministratorIDs); err != nil {
		return nil, err
	}

	project := &entities.Project{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      req.Status,
		MainUserID:  callerID,
	}

	project.AddAdministrator(callerID)
	for _, adminID := range req.AdministratorIDs {
		project.AddAdministrator(adminID)
	}
	for _, userID := range req.UserIDs {
		project.AddMember(userID)
	}

	created, err := s.projectRepo.Create(ctx, project)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Project created", "project_id", created.ID, "main_user_id", callerID)

	s.notifier.NotifyUsers(ctx, created.MemberIDs,
		fmt.Sprintf("You have been added to the project participants.\nProject: %s", created.Name))

	return created, nil
}

// GetByID returns the project when the caller belongs to it.
func (s *ProjectService) GetByID(ctx context.Context, callerID uuid.UUID, id int64) (*entities.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authorizeProject(callerID, project, ActionView); err != nil {
		return nil, err
	}

	return project, nil
}

// UpdateByID applies a partial update. Only provided fields that differ
// from the stored values are written; date changes are re-validated
// against the other current-or-patched date.
func (s *ProjectService) UpdateByID(ctx context.Context, callerID uuid.UUID, id int64, req ports.UpdateProjectRequest) (*entities.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authorizeProject(callerID, project, ActionMutateProject); err != nil {
		return nil, err
	}

	startDate := project.StartDate
	endDate := project.EndDate
	if req.StartDate != nil {
		startDate = *req.StartDate
	}
	if req.EndDate != nil {
		endDate = *req.EndDate
	}
	if req.StartDate != nil || req.EndDate != nil {
		if err := validateDateOrder(startDate, endDate); err != nil {
			return nil, err
		}
	}

	if req.Name != nil && *req.Name != project.Name {
		if err := s.checkNameFree(ctx, *req.Name); err != nil {
			return nil, err
		}
	}

	priorMembers := append([]uuid.UUID(nil), project.MemberIDs...)

	patchField(&project.Name, req.Name)
	patchField(&project.Description, req.Description)
	patchField(&project.StartDate, req.StartDate)
	patchField(&project.EndDate, req.EndDate)
	patchField(&project.Status, req.Status)

	if err := s.resolveUsers(ctx, req.AdministratorIDs); err != nil {
		return nil, err
	}
	if err := s.resolveUsers(ctx, req.UserIDs); err != nil {
		return nil, err
	}

	for _, adminID := range req.AdministratorIDs {
		project.AddAdministrator(adminID)
	}
	for _, userID := range req.UserIDs {
		project.AddMember(userID)
	}

	updated, err := s.projectRepo.Update(ctx, project)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Project updated", "project_id", id, "caller_id", callerID)

	newMembers := subtractIDs(updated.MemberIDs, priorMembers)
	if len(newMembers) > 0 {
		s.notifier.NotifyUsers(ctx, newMembers,
			fmt.Sprintf("You have been added to the project participants.\nProject: %s", updated.Name))
	}
	s.notifier.NotifyUsers(ctx, priorMembers,
		fmt.Sprintf("The details of the project have been updated\nProject: %s", updated.Name))

	return updated, nil
}

// DeleteByID soft-deletes the project. Only the main user may do that.
func (s *ProjectService) DeleteByID(ctx context.Context, callerID uuid.UUID, id int64) error {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := authorizeProject(callerID, project, ActionDelete); err != nil {
		return err
	}

	if err := s.projectRepo.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.logger.Infow("Project deleted", "project_id", id, "main_user_id", callerID)

	s.notifier.NotifyUsers(ctx, project.MemberIDs,
		fmt.Sprintf("The project has been deleted\nProject: %s", project.Name))

	return nil
}

// GetAllUserProjects lists summaries of every project the caller belongs to.
func (s *ProjectService) GetAllUserProjects(ctx context.Context, callerID uuid.UUID) ([]ports.ProjectLowInfo, error) {
	projects, err := s.projectRepo.GetAllByUserID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	summaries := make([]ports.ProjectLowInfo, 0, len(projects))
	for _, project := range projects {
		summaries = append(summaries, ports.ProjectLowInfo{
			ID:     project.ID,
			Name:   project.Name,
			Status: project.Status,
		})
	}

	return summaries, nil
}

// checkNameFree enforces name uniqueness among non-deleted projects.
func (s *ProjectService) checkNameFree(ctx context.Context, name string) error {
	existing, err := s.projectRepo.FindByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil {
		return entities.Businessf("Project with name: %s already exists", name)
	}
	return nil
}

func (s *ProjectService) resolveUsers(ctx context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		if _, err := s.userRepo.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func validateDateOrder(startDate, endDate time.Time) error {
	if endDate.Before(startDate) {
		return entities.Businessf("Date incorrect please entry valid date")
	}
	return nil
}

func subtractIDs(ids, remove []uuid.UUID) []uuid.UUID {
	removed := make(map[uuid.UUID]struct{}, len(remove))
	for _, id := range remove {
		removed[id] = struct{}{}
	}

	var result []uuid.UUID
	for _, id := range ids {
		if _, ok := removed[id]; !ok {
			result = append(result, id)
		}
	}
	return result
}
