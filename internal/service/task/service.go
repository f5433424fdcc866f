package task

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/webwhiz/hrms-backend/internal/domain/task"
	"github.com/webwhiz/hrms-backend/internal/service/file"
)

type TaskServiceImpl struct {
	task.TaskRepository
	fileService file.FileService
	now         func() time.Time
}

func NewTaskService(taskRepo task.TaskRepository, fileService file.FileService) task.TaskService {
	return &TaskServiceImpl{
		TaskRepository: taskRepo,
		fileService:    fileService,
		now:            time.Now,
	}
}

// CreateTask implements task.TaskService.
func (s *TaskServiceImpl) CreateTask(ctx context.Context, req task.CreateTaskRequest) (task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	now := s.now()
	newTask := task.Task{
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		DateAssigned: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		SectionID:    req.SectionID,
		Team:         slices.Compact(slices.Sorted(slices.Values(req.Team))),
		ProjectID:    req.ProjectID,
		Priority:     task.PriorityMedium,
		Comments:     req.Comments,
	}
	if req.DateAssigned != nil {
		newTask.DateAssigned, _ = time.Parse("2006-01-02", *req.DateAssigned)
	}
	if req.DateDue != nil {
		due, _ := time.Parse("2006-01-02", *req.DateDue)
		newTask.DateDue = &due
	}
	if req.Priority != nil {
		newTask.Priority = task.Priority(*req.Priority)
	}

	attachments, err := s.storeUploads(ctx, req.ProjectID, req.Uploads)
	if err != nil {
		return task.TaskResponse{}, err
	}
	newTask.Attachments = attachments

	created, err := s.TaskRepository.Create(ctx, newTask)
	if err != nil {
		s.removeFiles(ctx, attachments)
		return task.TaskResponse{}, err
	}

	slog.Info("task created", "task_id", created.ID, "project_id", created.ProjectID, "attachments", len(attachments))
	return s.toResponse(ctx, created), nil
}

// UpdateTask implements task.TaskService. New uploads are appended to the
// existing attachments.
func (s *TaskServiceImpl) UpdateTask(ctx context.Context, req task.UpdateTaskRequest) (task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	current, err := s.TaskRepository.GetByID(ctx, req.ID)
	if err != nil {
		return task.TaskResponse{}, err
	}

	if req.Title != nil {
		current.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		current.Description = req.Description
	}
	if req.DateDue != nil {
		due, _ := time.Parse("2006-01-02", *req.DateDue)
		current.DateDue = &due
	}
	if req.SectionID != nil {
		current.SectionID = *req.SectionID
	}
	if req.Team != nil {
		current.Team = slices.Compact(slices.Sorted(slices.Values(*req.Team)))
	}
	if req.Priority != nil {
		current.Priority = task.Priority(*req.Priority)
	}
	if req.Comments != nil {
		current.Comments = req.Comments
	}

	added, err := s.storeUploads(ctx, current.ProjectID, req.Uploads)
	if err != nil {
		return task.TaskResponse{}, err
	}
	current.Attachments = append(slices.Clone(current.Attachments), added...)

	if err := s.TaskRepository.Update(ctx, current); err != nil {
		s.removeFiles(ctx, added)
		return task.TaskResponse{}, err
	}

	return s.toResponse(ctx, current), nil
}

// ListTasks implements task.TaskService.
func (s *TaskServiceImpl) ListTasks(ctx context.Context) ([]task.TaskResponse, error) {
	tasks, err := s.TaskRepository.List(ctx, task.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return s.toResponses(ctx, tasks), nil
}

// GetTask implements task.TaskService.
func (s *TaskServiceImpl) GetTask(ctx context.Context, id string) (task.TaskResponse, error) {
	found, err := s.TaskRepository.GetByID(ctx, id)
	if err != nil {
		return task.TaskResponse{}, err
	}
	return s.toResponse(ctx, found), nil
}

// ListByProject implements task.TaskService.
func (s *TaskServiceImpl) ListByProject(ctx context.Context, projectID string) ([]task.TaskResponse, error) {
	tasks, err := s.TaskRepository.List(ctx, task.ListFilter{ProjectID: projectID})
	if err != nil {
		return nil, fmt.Errorf("failed to list project tasks: %w", err)
	}
	return s.toResponses(ctx, tasks), nil
}

// DeleteTask implements task.TaskService.
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, id string) error {
	found, err := s.TaskRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.TaskRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.removeFiles(ctx, found.Attachments)
	return nil
}

// DeleteAttachment implements task.TaskService.
func (s *TaskServiceImpl) DeleteAttachment(ctx context.Context, taskID, attachmentID string) (task.TaskResponse, error) {
	found, err := s.TaskRepository.GetByID(ctx, taskID)
	if err != nil {
		return task.TaskResponse{}, err
	}

	rest, removed := found.Attachments.Without(attachmentID)
	if removed == nil {
		return task.TaskResponse{}, task.ErrAttachmentNotFound
	}

	if err := s.TaskRepository.UpdateAttachments(ctx, taskID, rest); err != nil {
		return task.TaskResponse{}, err
	}
	s.removeFiles(ctx, task.Attachments{*removed})

	found.Attachments = rest
	return s.toResponse(ctx, found), nil
}

// storeUploads saves every upload; on failure the files stored so far are
// removed again.
func (s *TaskServiceImpl) storeUploads(ctx context.Context, projectID string, uploads []task.Upload) (task.Attachments, error) {
	attachments := make(task.Attachments, 0, len(uploads))
	for _, u := range uploads {
		path, err := s.fileService.UploadTaskAttachment(ctx, projectID, u.File, u.Filename, u.ContentType)
		if err != nil {
			s.removeFiles(ctx, attachments)
			return nil, fmt.Errorf("failed to upload task attachment %s: %w", u.Filename, err)
		}
		attachments = append(attachments, task.Attachment{
			ID:           uuid.NewString(),
			Path:         path,
			OriginalName: u.Filename,
		})
	}
	return attachments, nil
}

func (s *TaskServiceImpl) removeFiles(ctx context.Context, attachments task.Attachments) {
	for _, a := range attachments {
		if err := s.fileService.DeleteFile(ctx, a.Path); err != nil {
			slog.Warn("failed to delete task attachment", "path", a.Path, "error", err)
		}
	}
}

func (s *TaskServiceImpl) toResponse(ctx context.Context, t task.Task) task.TaskResponse {
	return task.NewTaskResponse(t, func(path string) string {
		return s.fileService.GetFileURL(ctx, path)
	})
}

func (s *TaskServiceImpl) toResponses(ctx context.Context, tasks []task.Task) []task.TaskResponse {
	responses := make([]task.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		responses = append(responses, s.toResponse(ctx, t))
	}
	return responses
}
