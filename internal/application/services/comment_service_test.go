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

func newCommentFixture(owner uuid.UUID, task *entities.Task, comments ...*entities.Comment) (*CommentService, *fakeCommentRepo, *recordingNotifier) {
	project := &entities.Project{
		ID:         1,
		Name:       "Site",
		StartDate:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		MainUserID: owner,
	}
	project.AddAdministrator(owner)
	if task != nil && task.AssigneeID != nil {
		project.AddMember(*task.AssigneeID)
	}

	notifier := &recordingNotifier{}
	projectService := NewProjectService(newFakeProjectRepo(project), newFakeUserRepo(), notifier, testLogger())

	taskRepo := newFakeTaskRepo()
	if task != nil {
		taskRepo.tasks[task.ID] = task
		taskRepo.nextID = task.ID + 1
	}
	taskService := NewTaskService(taskRepo, projectService, notifier, testLogger())

	commentRepo := newFakeCommentRepo(comments...)
	service := NewCommentService(commentRepo, taskService, notifier, testLogger())
	return service, commentRepo, notifier
}

func TestCommentService_CreateStampsAuthorAndTimestamp(t *testing.T) {
	owner := uuid.New()
	task := &entities.Task{ID: 1, ProjectID: 1, Name: "Write docs"}
	service, _, _ := newCommentFixture(owner, task)

	created, err := service.Create(context.Background(), owner, ports.CreateCommentRequest{TaskID: 1, Text: "looks good"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.UserID != owner {
		t.Error("Expected caller to be stamped as author")
	}
	if created.Timestamp.IsZero() {
		t.Error("Expected timestamp to be set")
	}
}

func TestCommentService_CreateUnknownTask(t *testing.T) {
	owner := uuid.New()
	service, _, _ := newCommentFixture(owner, nil)

	_, err := service.Create(context.Background(), owner, ports.CreateCommentRequest{TaskID: 99, Text: "hello"})
	if !entities.IsKind(err, entities.KindNotFound) {
		t.Fatalf("Expected not-found error, got %v", err)
	}
}

func TestCommentService_CreateNotifiesTaskAssignee(t *testing.T) {
	owner := uuid.New()
	assignee := uuid.New()
	task := &entities.Task{ID: 1, ProjectID: 1, Name: "Write docs", AssigneeID: &assignee}
	service, _, notifier := newCommentFixture(owner, task)

	if _, err := service.Create(context.Background(), owner, ports.CreateCommentRequest{TaskID: 1, Text: "ping"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	texts := notifier.sentTo(assignee)
	if len(texts) != 1 {
		t.Fatalf("Expected 1 notification for assignee, got %d", len(texts))
	}
	if !strings.Contains(texts[0], "left a message to task.") || !strings.Contains(texts[0], "ping") {
		t.Errorf("Unexpected notification text: %q", texts[0])
	}
}

func TestCommentService_UpdateRejectsForeignAuthor(t *testing.T) {
	owner := uuid.New()
	author := uuid.New()
	task := &entities.Task{ID: 1, ProjectID: 1, Name: "Write docs"}
	comment := &entities.Comment{ID: 1, TaskID: 1, UserID: author, Text: "mine"}
	service, _, _ := newCommentFixture(owner, task, comment)

	_, err := service.UpdateByID(context.Background(), owner, 1, ports.UpdateCommentRequest{Text: "stolen"})
	if err == nil {
		t.Fatal("Expected error for foreign comment update")
	}
	if err.Error() != "It isn't your comment, you cannot update this comment" {
		t.Errorf("Unexpected message: %q", err.Error())
	}
}

func TestCommentService_UpdateReplacesTextAndTimestamp(t *testing.T) {
	owner := uuid.New()
	before := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	task := &entities.Task{ID: 1, ProjectID: 1, Name: "Write docs"}
	comment := &entities.Comment{ID: 1, TaskID: 1, UserID: owner, Text: "draft", Timestamp: before}
	service, _, _ := newCommentFixture(owner, task, comment)

	updated, err := service.UpdateByID(context.Background(), owner, 1, ports.UpdateCommentRequest{Text: "final"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.Text != "final" {
		t.Errorf("Expected replaced text, got %q", updated.Text)
	}
	if !updated.Timestamp.After(before) {
		t.Error("Expected refreshed timestamp")
	}
}

func TestCommentService_DeleteRejectsForeignAuthor(t *testing.T) {
	owner := uuid.New()
	author := uuid.New()
	task := &entities.Task{ID: 1, ProjectID: 1, Name: "Write docs"}
	comment := &entities.Comment{ID: 1, TaskID: 1, UserID: author, Text: "mine"}
	service, _, _ := newCommentFixture(owner, task, comment)

	err := service.DeleteByID(context.Background(), owner, 1)
	if err == nil {
		t.Fatal("Expected error for foreign comment delete")
	}
	if !entities.IsKind(err, entities.KindBusiness) {
		t.Errorf("Expected business error kind, got %v", entities.KindOf(err))
	}
}

func TestCommentService_DeleteHidesOwnComment(t *testing.T) {
	owner := uuid.New()
	task := &entities.Task{ID: 1, ProjectID: 1, Name: "Write docs"}
	comment := &entities.Comment{ID: 1, TaskID: 1, UserID: owner, Text: "mine"}
	service, _, _ := newCommentFixture(owner, task, comment)

	if err := service.DeleteByID(context.Background(), owner, 1); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	comments, err := service.GetAllByTaskID(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetAllByTaskID failed: %v", err)
	}
	if len(comments) != 0 {
		t.Errorf("Expected deleted comment to be invisible, got %d comments", len(comments))
	}
}
