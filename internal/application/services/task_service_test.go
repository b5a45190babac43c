package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tasksystem/core/internal/domain/entities"
	"github.com/tasksystem/core/internal/ports"
)

func newTaskFixture(project *entities.Project, tasks ...*entities.Task) (*TaskService, *fakeTaskRepo, *recordingNotifier) {
	projectRepo := newFakeProjectRepo(project)
	userRepo := newFakeUserRepo()
	taskRepo := newFakeTaskRepo(tasks...)
	notifier := &recordingNotifier{}
	projectService := NewProjectService(projectRepo, userRepo, notifier, testLogger())
	service := NewTaskService(taskRepo, projectService, notifier, testLogger())
	return service, taskRepo, notifier
}

func taskFixtureProject(owner uuid.UUID) *entities.Project {
	project := &entities.Project{
		ID:         1,
		Name:       "Site",
		StartDate:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		MainUserID: owner,
	}
	project.AddAdministrator(owner)
	return project
}

func validCreateTaskRequest() ports.CreateTaskRequest {
	return ports.CreateTaskRequest{
		Name:      "Write docs",
		Priority:  entities.PriorityMedium,
		Status:    entities.TaskStatusNotStarted,
		DueDate:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		ProjectID: 1,
	}
}

func TestTaskService_Create(t *testing.T) {
	owner := uuid.New()
	service, _, _ := newTaskFixture(taskFixtureProject(owner))

	created, err := service.Create(context.Background(), owner, validCreateTaskRequest())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == 0 {
		t.Error("Expected assigned task id")
	}
	if created.ProjectID != 1 {
		t.Errorf("Unexpected project id: %d", created.ProjectID)
	}
}

func TestTaskService_CreateRejectsNonMember(t *testing.T) {
	owner := uuid.New()
	service, _, _ := newTaskFixture(taskFixtureProject(owner))

	_, err := service.Create(context.Background(), uuid.New(), validCreateTaskRequest())
	if err == nil {
		t.Fatal("Expected error for non-member caller")
	}
	if !strings.Contains(err.Error(), "You can only get your projects!") {
		t.Errorf("Unexpected message: %q", err.Error())
	}
}

func TestTaskService_CreateRejectsAssigneeOutsideProject(t *testing.T) {
	owner := uuid.New()
	service, _, _ := newTaskFixture(taskFixtureProject(owner))

	outsider := uuid.New()
	req := validCreateTaskRequest()
	req.AssigneeID = &outsider

	_, err := service.Create(context.Background(), owner, req)
	if err == nil {
		t.Fatal("Expected error for assignee outside the project")
	}
	if !strings.Contains(err.Error(), "cannot be assigned as assignee user") {
		t.Errorf("Unexpected message: %q", err.Error())
	}
}

func TestTaskService_CreateRejectsDueDateOutsideProjectWindow(t *testing.T) {
	owner := uuid.New()
	service, _, _ := newTaskFixture(taskFixtureProject(owner))

	tests := []struct {
		name     string
		dueDate  time.Time
		fragment string
	}{
		{"after end", time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), "after the end date of the project"},
		{"before start", time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), "before the start date of the project"},
	}

	for _, tt := range tests {
		req := validCreateTaskRequest()
		req.DueDate = tt.dueDate

		_, err := service.Create(context.Background(), owner, req)
		if err == nil {
			t.Errorf("%s: expected error, got nil", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.fragment) {
			t.Errorf("%s: unexpected message: %q", tt.name, err.Error())
		}
	}
}

func TestTaskService_CreateNotifiesAssignee(t *testing.T) {
	owner := uuid.New()
	assignee := uuid.New()
	project := taskFixtureProject(owner)
	project.AddMember(assignee)
	service, _, notifier := newTaskFixture(project)

	req := validCreateTaskRequest()
	req.AssigneeID = &assignee

	created, err := service.Create(context.Background(), owner, req)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	texts := notifier.sentTo(assignee)
	if len(texts) != 1 {
		t.Fatalf("Expected 1 notification for assignee, got %d", len(texts))
	}
	if !strings.Contains(texts[0], "You have been assigned to the task.") || !strings.Contains(texts[0], created.Name) {
		t.Errorf("Unexpected notification text: %q", texts[0])
	}
}

func TestTaskService_UpdateRequiresAdministrator(t *testing.T) {
	owner := uuid.New()
	member := uuid.New()
	project := taskFixtureProject(owner)
	project.AddMember(member)
	task := &entities.Task{ID: 1, ProjectID: 1, Name: "Write docs"}
	service, _, _ := newTaskFixture(project, task)

	name := "Renamed"
	_, err := service.UpdateByID(context.Background(), member, 1, ports.UpdateTaskRequest{Name: &name})
	if err == nil {
		t.Fatal("Expected error for non-administrator update")
	}
	if !strings.Contains(err.Error(), "Only administrators have access to the update") {
		t.Errorf("Unexpected message: %q", err.Error())
	}
}

func TestTaskService_UpdateNotifiesNewAssignee(t *testing.T) {
	owner := uuid.New()
	assignee := uuid.New()
	project := taskFixtureProject(owner)
	project.AddMember(assignee)
	task := &entities.Task{ID: 1, ProjectID: 1, Name: "Write docs"}
	service, _, notifier := newTaskFixture(project, task)

	updated, err := service.UpdateByID(context.Background(), owner, 1, ports.UpdateTaskRequest{AssigneeID: &assignee})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.AssigneeID == nil || *updated.AssigneeID != assignee {
		t.Fatal("Expected assignee to be set")
	}

	texts := notifier.sentTo(assignee)
	if len(texts) != 2 {
		t.Fatalf("Expected assignment and update notifications, got %d", len(texts))
	}
	if !strings.Contains(texts[0], "You have been assigned to the task.") {
		t.Errorf("Unexpected first notification: %q", texts[0])
	}
	if !strings.Contains(texts[1], "The task has been updated") {
		t.Errorf("Unexpected second notification: %q", texts[1])
	}
}

func TestTaskService_UpdateKeptAssigneeGetsSingleNotification(t *testing.T) {
	owner := uuid.New()
	assignee := uuid.New()
	project := taskFixtureProject(owner)
	project.AddMember(assignee)
	task := &entities.Task{ID: 1, ProjectID: 1, Name: "Write docs", AssigneeID: &assignee}
	service, _, notifier := newTaskFixture(project, task)

	name := "Write better docs"
	if _, err := service.UpdateByID(context.Background(), owner, 1, ports.UpdateTaskRequest{Name: &name}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	texts := notifier.sentTo(assignee)
	if len(texts) != 1 || !strings.Contains(texts[0], "The task has been updated") {
		t.Errorf("Expected single update notification, got %v", texts)
	}
}

func TestTaskService_DeleteHidesTask(t *testing.T) {
	owner := uuid.New()
	task := &entities.Task{ID: 1, ProjectID: 1, Name: "Write docs"}
	service, _, _ := newTaskFixture(taskFixtureProject(owner), task)

	if err := service.DeleteByID(context.Background(), owner, 1); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, err := service.GetByID(context.Background(), owner, 1)
	if !entities.IsKind(err, entities.KindNotFound) {
		t.Errorf("Expected deleted task to be invisible, got %v", err)
	}
}

func TestTaskService_GetAllReturnsLowDetails(t *testing.T) {
	owner := uuid.New()
	first := &entities.Task{ID: 1, ProjectID: 1, Name: "One", Priority: entities.PriorityHigh}
	second := &entities.Task{ID: 2, ProjectID: 2, Name: "Elsewhere"}
	service, _, _ := newTaskFixture(taskFixtureProject(owner), first, second)

	details, err := service.GetAll(context.Background(), owner, 1)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}

	if len(details) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(details))
	}
	if details[0].Name != "One" || details[0].Priority != entities.PriorityHigh {
		t.Errorf("Unexpected row: %+v", details[0])
	}
}

func TestTaskService_GetByIDUnknownTask(t *testing.T) {
	owner := uuid.New()
	service, _, _ := newTaskFixture(taskFixtureProject(owner))

	_, err := service.GetByID(context.Background(), owner, 99)
	if !entities.IsKind(err, entities.KindNotFound) {
		t.Fatalf("Expected not-found error, got %v", err)
	}
}
