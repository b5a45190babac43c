package services

import (
	"github.com/google/uuid"

	"github.com/tasksystem/core/internal/domain/entities"
)

// ProjectAction enumerates what a caller may attempt against a project and
// the resources scoped to it.
type ProjectAction int

const (
	// ActionView covers reads of the project and anything inside it.
	ActionView ProjectAction = iota
	// ActionMutateProject covers updates to the project itself.
	ActionMutateProject
	// ActionMutateTasks covers mutation of the project's tasks.
	ActionMutateTasks
	// ActionDelete covers removal of the project itself.
	ActionDelete
)

// authorizeProject is the single access decision point for project-scoped
// operations. Every service consults it instead of re-checking membership
// inline, so the rules cannot drift between call sites.
func authorizeProject(actorID uuid.UUID, project *entities.Project, action ProjectAction) error {
	if !project.IsMember(actorID) {
		return entities.Businessf(
			"You can only get your projects! The project under this id: %d is not yours.",
			project.ID,
		)
	}

	switch action {
	case ActionView:
		return nil
	case ActionMutateProject:
		if !project.IsAdministrator(actorID) {
			return entities.Businessf(
				"You are not the administrator of this project, you have no rights to update the project",
			)
		}
		return nil
	case ActionMutateTasks:
		if !project.IsAdministrator(actorID) {
			return entities.Businessf(
				"Only administrators have access to the update, the user with ID: %s is not an administrator",
				actorID,
			)
		}
		return nil
	case ActionDelete:
		if project.MainUserID != actorID {
			return entities.Businessf("You cannot delete this project, only the main user can do that")
		}
		return nil
	default:
		return entities.Businessf("unknown project action")
	}
}
