package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tasksystem/core/internal/domain/entities"
	"github.com/tasksystem/core/internal/infrastructure/logger"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// recordingNotifier captures outbound notifications for assertions.
type recordingNotifier struct {
	mu       sync.Mutex
	messages []recordedMessage
}

type recordedMessage struct {
	recipients []uuid.UUID
	text       string
}

func (n *recordingNotifier) NotifyUser(_ context.Context, userID uuid.UUID, text string) error {
	return n.NotifyUsers(context.Background(), []uuid.UUID{userID}, text)
}

func (n *recordingNotifier) NotifyUsers(_ context.Context, userIDs []uuid.UUID, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	recipients := make([]uuid.UUID, len(userIDs))
	copy(recipients, userIDs)
	n.messages = append(n.messages, recordedMessage{recipients: recipients, text: text})
	return nil
}

func (n *recordingNotifier) sent() []recordedMessage {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]recordedMessage, len(n.messages))
	copy(out, n.messages)
	return out
}

func (n *recordingNotifier) sentTo(userID uuid.UUID) []string {
	var texts []string
	for _, msg := range n.sent() {
		for _, recipient := range msg.recipients {
			if recipient == userID {
				texts = append(texts, msg.text)
			}
		}
	}
	return texts
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entities.User
}

func newFakeUserRepo(users ...*entities.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*entities.User)}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (r *fakeUserRepo) Create(_ context.Context, user *entities.User) (*entities.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	user, ok := r.users[id]
	if !ok || user.IsDeleted {
		return nil, entities.NotFoundf("Can't find user by id: %s", id)
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, user := range r.users {
		if user.Email == email && !user.IsDeleted {
			return user, nil
		}
	}
	return nil, entities.NotFoundf("Can't find user by email: %s", email)
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entities.User, error) {
	for _, user := range r.users {
		if user.Username == username && !user.IsDeleted {
			return user, nil
		}
	}
	return nil, entities.NotFoundf("Can't find user by username: %s", username)
}

func (r *fakeUserRepo) Update(_ context.Context, user *entities.User) (*entities.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, entities.NotFoundf("Can't find user by id: %s", user.ID)
	}
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) GetAll(_ context.Context) ([]*entities.User, error) {
	var all []*entities.User
	for _, user := range r.users {
		if !user.IsDeleted {
			all = append(all, user)
		}
	}
	return all, nil
}

type fakeProjectRepo struct {
	projects map[int64]*entities.Project
	nextID   int64
}

func newFakeProjectRepo(projects ...*entities.Project) *fakeProjectRepo {
	repo := &fakeProjectRepo{projects: make(map[int64]*entities.Project), nextID: 1}
	for _, project := range projects {
		if project.ID >= repo.nextID {
			repo.nextID = project.ID + 1
		}
		repo.projects[project.ID] = project
	}
	return repo
}

func (r *fakeProjectRepo) Create(_ context.Context, project *entities.Project) (*entities.Project, error) {
	project.ID = r.nextID
	r.nextID++
	r.projects[project.ID] = project
	return project, nil
}

func (r *fakeProjectRepo) GetByID(_ context.Context, id int64) (*entities.Project, error) {
	project, ok := r.projects[id]
	if !ok || project.IsDeleted {
		return nil, entities.NotFoundf("Can't find project by id: %d", id)
	}
	return project, nil
}

func (r *fakeProjectRepo) FindByName(_ context.Context, name string) (*entities.Project, error) {
	for _, project := range r.projects {
		if !project.IsDeleted && project.Name == name {
			return project, nil
		}
	}
	return nil, nil
}

func (r *fakeProjectRepo) Update(_ context.Context, project *entities.Project) (*entities.Project, error) {
	if _, ok := r.projects[project.ID]; !ok {
		return nil, entities.NotFoundf("Can't find project by id: %d", project.ID)
	}
	r.projects[project.ID] = project
	return project, nil
}

func (r *fakeProjectRepo) SoftDelete(_ context.Context, id int64) error {
	project, ok := r.projects[id]
	if !ok || project.IsDeleted {
		return entities.NotFoundf("Can't find project by id: %d", id)
	}
	project.IsDeleted = true
	return nil
}

func (r *fakeProjectRepo) GetAllByUserID(_ context.Context, userID uuid.UUID) ([]*entities.Project, error) {
	var result []*entities.Project
	for _, project := range r.projects {
		if !project.IsDeleted && project.IsMember(userID) {
			result = append(result, project)
		}
	}
	return result, nil
}

type fakeTaskRepo struct {
	tasks  map[int64]*entities.Task
	nextID int64
}

func newFakeTaskRepo(tasks ...*entities.Task) *fakeTaskRepo {
	repo := &fakeTaskRepo{tasks: make(map[int64]*entities.Task), nextID: 1}
	for _, task := range tasks {
		if task.ID >= repo.nextID {
			repo.nextID = task.ID + 1
		}
		repo.tasks[task.ID] = task
	}
	return repo
}

func (r *fakeTaskRepo) Create(_ context.Context, task *entities.Task) (*entities.Task, error) {
	task.ID = r.nextID
	r.nextID++
	r.tasks[task.ID] = task
	return task, nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id int64) (*entities.Task, error) {
	task, ok := r.tasks[id]
	if !ok || task.IsDeleted {
		return nil, entities.NotFoundf("Can't find task by id: %d", id)
	}
	return task, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *entities.Task) (*entities.Task, error) {
	if _, ok := r.tasks[task.ID]; !ok {
		return nil, entities.NotFoundf("Can't find task by id: %d", task.ID)
	}
	r.tasks[task.ID] = task
	return task, nil
}

func (r *fakeTaskRepo) SoftDelete(_ context.Context, id int64) error {
	task, ok := r.tasks[id]
	if !ok || task.IsDeleted {
		return entities.NotFoundf("Can't find task by id: %d", id)
	}
	task.IsDeleted = true
	return nil
}

func (r *fakeTaskRepo) GetAllByProjectID(_ context.Context, projectID int64) ([]*entities.Task, error) {
	var result []*entities.Task
	for _, task := range r.tasks {
		if !task.IsDeleted && task.ProjectID == projectID {
			result = append(result, task)
		}
	}
	return result, nil
}

type fakeLabelRepo struct {
	labels map[int64]*entities.Label
	nextID int64
}

func newFakeLabelRepo(labels ...*entities.Label) *fakeLabelRepo {
	repo := &fakeLabelRepo{labels: make(map[int64]*entities.Label), nextID: 1}
	for _, label := range labels {
		if label.ID >= repo.nextID {
			repo.nextID = label.ID + 1
		}
		repo.labels[label.ID] = label
	}
	return repo
}

func (r *fakeLabelRepo) Create(_ context.Context, label *entities.Label) (*entities.Label, error) {
	label.ID = r.nextID
	r.nextID++
	r.labels[label.ID] = label
	return label, nil
}

func (r *fakeLabelRepo) GetByID(_ context.Context, id int64) (*entities.Label, error) {
	label, ok := r.labels[id]
	if !ok || label.IsDeleted {
		return nil, entities.NotFoundf("Can't find label by id: %d", id)
	}
	return label, nil
}

func (r *fakeLabelRepo) Update(_ context.Context, label *entities.Label) (*entities.Label, error) {
	if _, ok := r.labels[label.ID]; !ok {
		return nil, entities.NotFoundf("Can't find label by id: %d", label.ID)
	}
	r.labels[label.ID] = label
	return label, nil
}

func (r *fakeLabelRepo) SoftDelete(_ context.Context, id int64) error {
	label, ok := r.labels[id]
	if !ok || label.IsDeleted {
		return entities.NotFoundf("Can't find label by id: %d", id)
	}
	label.IsDeleted = true
	return nil
}

func (r *fakeLabelRepo) GetAllByProjectID(_ context.Context, projectID int64) ([]*entities.Label, error) {
	var result []*entities.Label
	for _, label := range r.labels {
		if label.IsDeleted {
			continue
		}
		if label.IsDefault() || *label.ProjectID == projectID {
			result = append(result, label)
		}
	}
	return result, nil
}

func (r *fakeLabelRepo) FindByNameColorProject(_ context.Context, name string, color entities.Color, projectID int64) (*entities.Label, error) {
	for _, label := range r.labels {
		if label.IsDeleted || label.IsDefault() {
			continue
		}
		if label.Name == name && label.Color == color && *label.ProjectID == projectID {
			return label, nil
		}
	}
	return nil, nil
}

func (r *fakeLabelRepo) FindDefaultByColor(_ context.Context, color entities.Color) (*entities.Label, error) {
	for _, label := range r.labels {
		if !label.IsDeleted && label.IsDefault() && label.Color == color {
			return label, nil
		}
	}
	return nil, entities.NotFoundf("Can't find default label by color: %s", color)
}

type fakeCommentRepo struct {
	comments map[int64]*entities.Comment
	nextID   int64
}

func newFakeCommentRepo(comments ...*entities.Comment) *fakeCommentRepo {
	repo := &fakeCommentRepo{comments: make(map[int64]*entities.Comment), nextID: 1}
	for _, comment := range comments {
		if comment.ID >= repo.nextID {
			repo.nextID = comment.ID + 1
		}
		repo.comments[comment.ID] = comment
	}
	return repo
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *entities.Comment) (*entities.Comment, error) {
	comment.ID = r.nextID
	r.nextID++
	r.comments[comment.ID] = comment
	return comment, nil
}

func (r *fakeCommentRepo) GetByID(_ context.Context, id int64) (*entities.Comment, error) {
	comment, ok := r.comments[id]
	if !ok || comment.IsDeleted {
		return nil, entities.NotFoundf("Can't find comment by id: %d", id)
	}
	return comment, nil
}

func (r *fakeCommentRepo) Update(_ context.Context, comment *entities.Comment) (*entities.Comment, error) {
	if _, ok := r.comments[comment.ID]; !ok {
		return nil, entities.NotFoundf("Can't find comment by id: %d", comment.ID)
	}
	r.comments[comment.ID] = comment
	return comment, nil
}

func (r *fakeCommentRepo) SoftDelete(_ context.Context, id int64) error {
	comment, ok := r.comments[id]
	if !ok || comment.IsDeleted {
		return entities.NotFoundf("Can't find comment by id: %d", id)
	}
	comment.IsDeleted = true
	return nil
}

func (r *fakeCommentRepo) GetAllByTaskID(_ context.Context, taskID int64) ([]*entities.Comment, error) {
	var result []*entities.Comment
	for _, comment := range r.comments {
		if !comment.IsDeleted && comment.TaskID == taskID {
			result = append(result, comment)
		}
	}
	return result, nil
}
