package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/webwhiz/hrms-backend/internal/domain/project"
	"github.com/webwhiz/hrms-backend/internal/domain/task"
	"github.com/webwhiz/hrms-backend/internal/domain/user"
	"github.com/webwhiz/hrms-backend/internal/service/file"
	"github.com/webwhiz/hrms-backend/internal/service/scope"
)

type ProjectServiceImpl struct {
	project.ProjectRepository
	task.TaskRepository
	user.UserRepository
	fileService file.FileService
	scope       *scope.Resolver
	now         func() time.Time
}

func NewProjectService(projectRepo project.ProjectRepository, taskRepo task.TaskRepository, userRepo user.UserRepository, fileService file.FileService) project.ProjectService {
	return &ProjectServiceImpl{
		ProjectRepository: projectRepo,
		TaskRepository:    taskRepo,
		UserRepository:    userRepo,
		fileService:       fileService,
		scope:             scope.NewResolver(userRepo),
		now:               time.Now,
	}
}

// CreateProject implements project.ProjectService.
func (s *ProjectServiceImpl) CreateProject(ctx context.Context, req project.CreateProjectRequest) (project.ProjectResponse, error) {
	if err := req.Validate(); err != nil {
		return project.ProjectResponse{}, err
	}

	team := slices.Compact(slices.Sorted(slices.Values(req.Team)))
	if err := s.checkMembers(ctx, req.ManagerID, team); err != nil {
		return project.ProjectResponse{}, err
	}

	dueDate, _ := time.Parse("2006-01-02", req.DueDate)
	now := s.now()
	dateAssigned := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if req.DateAssigned != nil {
		dateAssigned, _ = time.Parse("2006-01-02", *req.DateAssigned)
	}

	status := project.StatusToDo
	if req.Status != nil {
		status = project.Status(*req.Status)
	}

	newProject := project.Project{
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Category:     req.Category,
		DateAssigned: dateAssigned,
		DueDate:      dueDate,
		Status:       status,
		ManagerID:    req.ManagerID,
		Team:         team,
	}

	created, err := s.ProjectRepository.Create(ctx, newProject)
	if err != nil {
		return project.ProjectResponse{}, fmt.Errorf("failed to create project: %w", err)
	}

	responses, err := s.toResponses(ctx, []project.Project{created})
	if err != nil {
		return project.ProjectResponse{}, err
	}

	slog.Info("project created", "project_id", created.ID, "team_size", len(created.Team))
	return responses[0], nil
}

// ListProjects implements project.ProjectService.
func (s *ProjectServiceImpl) ListProjects(ctx context.Context, requesterID string) ([]project.ProjectResponse, error) {
	_, vis, err := s.scope.Resolve(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	filter := project.ListFilter{}
	if !vis.All {
		filter.MemberID = requesterID
	}

	projects, err := s.ProjectRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return s.toResponses(ctx, projects)
}

// ListAssignableUsers implements project.ProjectService.
func (s *ProjectServiceImpl) ListAssignableUsers(ctx context.Context) ([]user.UserResponse, error) {
	users, err := s.UserRepository.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	var ids []string
	for _, u := range users {
		ids = append(ids, u.ReportBy...)
	}
	names, err := s.UserRepository.GetNames(ctx, slices.Compact(slices.Sorted(slices.Values(ids))))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve reportBy names: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.NewUserResponse(u, names))
	}
	return responses, nil
}

// UpdateProject implements project.ProjectService.
func (s *ProjectServiceImpl) UpdateProject(ctx context.Context, req project.UpdateProjectRequest) (project.ProjectResponse, error) {
	if err := req.Validate(); err != nil {
		return project.ProjectResponse{}, err
	}

	if _, err := s.ProjectRepository.GetByID(ctx, req.ID); err != nil {
		return project.ProjectResponse{}, err
	}

	var manager *string
	if req.ManagerID != nil && *req.ManagerID != "" {
		manager = req.ManagerID
	}
	var team []string
	if req.Team != nil {
		team = slices.Compact(slices.Sorted(slices.Values(*req.Team)))
		req.Team = &team
	}
	if err := s.checkMembers(ctx, manager, team); err != nil {
		return project.ProjectResponse{}, err
	}

	if err := s.ProjectRepository.Update(ctx, req); err != nil {
		return project.ProjectResponse{}, err
	}

	updated, err := s.ProjectRepository.GetByID(ctx, req.ID)
	if err != nil {
		return project.ProjectResponse{}, err
	}

	responses, err := s.toResponses(ctx, []project.Project{updated})
	if err != nil {
		return project.ProjectResponse{}, err
	}
	return responses[0], nil
}

// DeleteProject implements project.ProjectService. Tasks go with the
// project; their stored attachments are removed afterwards.
func (s *ProjectServiceImpl) DeleteProject(ctx context.Context, id string) error {
	tasks, err := s.TaskRepository.List(ctx, task.ListFilter{ProjectID: id})
	if err != nil {
		return fmt.Errorf("failed to list project tasks: %w", err)
	}

	if err := s.ProjectRepository.Delete(ctx, id); err != nil {
		return err
	}

	for _, t := range tasks {
		for _, a := range t.Attachments {
			if err := s.fileService.DeleteFile(ctx, a.Path); err != nil {
				slog.Warn("failed to delete task attachment", "task_id", t.ID, "path", a.Path, "error", err)
			}
		}
	}

	slog.Info("project deleted", "project_id", id, "tasks", len(tasks))
	return nil
}

func (s *ProjectServiceImpl) checkMembers(ctx context.Context, managerID *string, team []string) error {
	if managerID != nil {
		if _, err := s.UserRepository.GetByID(ctx, *managerID); err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return project.ErrInvalidManager
			}
			return err
		}
	}

	if len(team) > 0 {
		count, err := s.UserRepository.CountByIDs(ctx, team)
		if err != nil {
			return fmt.Errorf("failed to check team: %w", err)
		}
		if count != len(team) {
			return project.ErrInvalidTeam
		}
	}
	return nil
}

func (s *ProjectServiceImpl) toResponses(ctx context.Context, projects []project.Project) ([]project.ProjectResponse, error) {
	if len(projects) == 0 {
		return []project.ProjectResponse{}, nil
	}

	ids := make([]string, 0, len(projects))
	var members []string
	for _, p := range projects {
		ids = append(ids, p.ID)
		members = append(members, p.Team...)
		if p.ManagerID != nil {
			members = append(members, *p.ManagerID)
		}
	}

	counts, err := s.ProjectRepository.CountTasks(ctx, ids, task.CompletedSectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	names, err := s.UserRepository.GetNames(ctx, slices.Compact(slices.Sorted(slices.Values(members))))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve member names: %w", err)
	}

	responses := make([]project.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		responses = append(responses, project.NewProjectResponse(p, counts[p.ID], names))
	}
	return responses, nil
}
