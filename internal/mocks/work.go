package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
	"github.com/webwhiz/hrms-backend/internal/domain/project"
	"github.com/webwhiz/hrms-backend/internal/domain/task"
)

type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, p project.Project) (project.Project, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(project.Project), args.Error(1)
}

func (m *ProjectRepository) GetByID(ctx context.Context, id string) (project.Project, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(project.Project), args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context, filter project.ListFilter) ([]project.Project, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]project.Project), args.Error(1)
}

func (m *ProjectRepository) Update(ctx context.Context, req project.UpdateProjectRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *ProjectRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ProjectRepository) CountTasks(ctx context.Context, projectIDs []string, completedSection string) (map[string]project.TaskCounts, error) {
	args := m.Called(ctx, projectIDs, completedSection)
	return args.Get(0).(map[string]project.TaskCounts), args.Error(1)
}

type TaskRepository struct {
	mock.Mock
}

func (m *TaskRepository) Create(ctx context.Context, t task.Task) (task.Task, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(task.Task), args.Error(1)
}

func (m *TaskRepository) GetByID(ctx context.Context, id string) (task.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(task.Task), args.Error(1)
}

func (m *TaskRepository) List(ctx context.Context, filter task.ListFilter) ([]task.Task, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]task.Task), args.Error(1)
}

func (m *TaskRepository) Update(ctx context.Context, t task.Task) error {
	return m.Called(ctx, t).Error(0)
}

func (m *TaskRepository) UpdateAttachments(ctx context.Context, id string, attachments task.Attachments) error {
	return m.Called(ctx, id, attachments).Error(0)
}

func (m *TaskRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type FileService struct {
	mock.Mock
}

func (m *FileService) UploadLeaveAttachment(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	args := m.Called(ctx, userID, file, filename)
	return args.String(0), args.Error(1)
}

func (m *FileService) UploadTaskAttachment(ctx context.Context, projectID string, file io.Reader, filename string, contentType string) (string, error) {
	args := m.Called(ctx, projectID, file, filename, contentType)
	return args.String(0), args.Error(1)
}

func (m *FileService) DeleteFile(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

// GetFileURL is deterministic so responses can be asserted without setup.
func (m *FileService) GetFileURL(ctx context.Context, path string) string {
	return "/uploads/" + path
}
