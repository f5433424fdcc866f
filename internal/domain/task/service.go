package task

import "context"

type TaskService interface {
	CreateTask(ctx context.Context, req CreateTaskRequest) (TaskResponse, error)
	UpdateTask(ctx context.Context, req UpdateTaskRequest) (TaskResponse, error)
	ListTasks(ctx context.Context) ([]TaskResponse, error)
	GetTask(ctx context.Context, id string) (TaskResponse, error)
	ListByProject(ctx context.Context, projectID string) ([]TaskResponse, error)
	DeleteTask(ctx context.Context, id string) error
	DeleteAttachment(ctx context.Context, taskID, attachmentID string) (TaskResponse, error)
}
