package project

import (
	"context"

	"github.com/webwhiz/hrms-backend/internal/domain/user"
)

type ProjectService interface {
	CreateProject(ctx context.Context, req CreateProjectRequest) (ProjectResponse, error)
	// ListProjects returns every project for a Founder, otherwise the ones the
	// requester manages or works on.
	ListProjects(ctx context.Context, requesterID string) ([]ProjectResponse, error)
	ListAssignableUsers(ctx context.Context) ([]user.UserResponse, error)
	UpdateProject(ctx context.Context, req UpdateProjectRequest) (ProjectResponse, error)
	DeleteProject(ctx context.Context, id string) error
}
