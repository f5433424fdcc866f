package project

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/webwhiz/hrms-backend/internal/domain/project"
	"github.com/webwhiz/hrms-backend/internal/domain/task"
	"github.com/webwhiz/hrms-backend/internal/domain/user"
	"github.com/webwhiz/hrms-backend/internal/mocks"
)

const (
	founderID  = "0190a000-0000-7000-8000-000000000001"
	managerID  = "0190a000-0000-7000-8000-000000000002"
	employeeID = "0190a000-0000-7000-8000-000000000003"
	projectID  = "0190a000-0000-7000-8000-0000000000b1"
)

var (
	founder  = user.User{ID: founderID, Name: "Fatima", RoleName: "Founder", Status: user.StatusActive}
	manager  = user.User{ID: managerID, Name: "Manoj", RoleName: "Manager", ReportBy: []string{employeeID}, Status: user.StatusActive}
	employee = user.User{ID: employeeID, Name: "Esha", RoleName: "Employee", Status: user.StatusActive}

	names = map[string]string{founderID: "Fatima", managerID: "Manoj", employeeID: "Esha"}
)

type fixture struct {
	projects *mocks.ProjectRepository
	tasks    *mocks.TaskRepository
	users    *mocks.UserRepository
	files    *mocks.FileService
	svc      *ProjectServiceImpl
}

func newFixture() *fixture {
	f := &fixture{
		projects: new(mocks.ProjectRepository),
		tasks:    new(mocks.TaskRepository),
		users:    new(mocks.UserRepository),
		files:    new(mocks.FileService),
	}
	svc := NewProjectService(f.projects, f.tasks, f.users, f.files).(*ProjectServiceImpl)
	svc.now = func() time.Time { return time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC) }
	f.svc = svc

	for _, u := range []user.User{founder, manager, employee} {
		f.users.On("GetByID", mock.Anything, u.ID).Return(u, nil).Maybe()
	}
	f.users.On("GetByID", mock.Anything, mock.Anything).Return(user.User{}, user.ErrUserNotFound).Maybe()
	f.users.On("GetNames", mock.Anything, mock.Anything).Return(names, nil).Maybe()
	return f
}

func sampleProject() project.Project {
	mgr := managerID
	return project.Project{
		ID:           projectID,
		Title:        "Website revamp",
		Category:     "Design",
		DateAssigned: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		DueDate:      time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC),
		Status:       project.StatusToDo,
		ManagerID:    &mgr,
		Team:         []string{employeeID},
	}
}

func TestCreateProject(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	mgr := managerID
	f.users.On("CountByIDs", mock.Anything, []string{employeeID}).Return(1, nil)
	f.projects.On("Create", mock.Anything, mock.MatchedBy(func(p project.Project) bool {
		return p.Title == "Website revamp" &&
			p.Status == project.StatusToDo &&
			p.DateAssigned.Equal(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)) &&
			len(p.Team) == 1
	})).Return(sampleProject(), nil)
	f.projects.On("CountTasks", mock.Anything, []string{projectID}, task.CompletedSectionID).Return(map[string]project.TaskCounts{}, nil)

	resp, err := f.svc.CreateProject(ctx, project.CreateProjectRequest{
		Title:     " Website revamp ",
		Category:  "Design",
		DueDate:   "2025-04-30",
		ManagerID: &mgr,
		Team:      []string{employeeID, employeeID},
	})
	require.NoError(t, err)
	assert.Equal(t, projectID, resp.ID)
	require.NotNil(t, resp.Manager)
	assert.Equal(t, "Manoj", resp.Manager.Name)
	assert.Equal(t, []user.UserRef{{ID: employeeID, Name: "Esha"}}, resp.Team)
	assert.Equal(t, 0, resp.Progress)
}

func TestCreateProject_UnknownMembers(t *testing.T) {
	ctx := context.Background()

	t.Run("manager", func(t *testing.T) {
		f := newFixture()
		unknown := "0190a000-0000-7000-8000-0000000000ff"
		_, err := f.svc.CreateProject(ctx, project.CreateProjectRequest{
			Title: "X", Category: "Y", DueDate: "2025-04-30", ManagerID: &unknown,
		})
		assert.ErrorIs(t, err, project.ErrInvalidManager)
	})

	t.Run("team", func(t *testing.T) {
		f := newFixture()
		f.users.On("CountByIDs", mock.Anything, mock.Anything).Return(0, nil)
		_, err := f.svc.CreateProject(ctx, project.CreateProjectRequest{
			Title: "X", Category: "Y", DueDate: "2025-04-30", Team: []string{employeeID},
		})
		assert.ErrorIs(t, err, project.ErrInvalidTeam)
		f.projects.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestListProjects_ScopeAndProgress(t *testing.T) {
	tests := []struct {
		name        string
		requesterID string
		filter      project.ListFilter
	}{
		{"founder sees all", founderID, project.ListFilter{}},
		{"member sees own projects", employeeID, project.ListFilter{MemberID: employeeID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			ctx := context.Background()

			f.projects.On("List", mock.Anything, tt.filter).Return([]project.Project{sampleProject()}, nil)
			f.projects.On("CountTasks", mock.Anything, []string{projectID}, task.CompletedSectionID).
				Return(map[string]project.TaskCounts{projectID: {Total: 3, Completed: 2}}, nil)

			got, err := f.svc.ListProjects(ctx, tt.requesterID)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, 3, got[0].TotalTasks)
			assert.Equal(t, 67, got[0].Progress)
		})
	}
}

func TestUpdateProject_NotFound(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.projects.On("GetByID", mock.Anything, projectID).Return(project.Project{}, project.ErrProjectNotFound)

	title := "New"
	_, err := f.svc.UpdateProject(ctx, project.UpdateProjectRequest{ID: projectID, Title: &title})
	assert.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestUpdateProject_ClearsManager(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	cleared := sampleProject()
	cleared.ManagerID = nil
	f.projects.On("GetByID", mock.Anything, projectID).Return(sampleProject(), nil).Once()
	f.projects.On("GetByID", mock.Anything, projectID).Return(cleared, nil).Once()
	f.projects.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.projects.On("CountTasks", mock.Anything, mock.Anything, mock.Anything).Return(map[string]project.TaskCounts{}, nil)

	empty := ""
	resp, err := f.svc.UpdateProject(ctx, project.UpdateProjectRequest{ID: projectID, ManagerID: &empty})
	require.NoError(t, err)
	assert.Nil(t, resp.Manager)
}

func TestDeleteProject_RemovesTaskFiles(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.tasks.On("List", mock.Anything, task.ListFilter{ProjectID: projectID}).Return([]task.Task{
		{ID: "t1", Attachments: task.Attachments{{ID: "a1", Path: "tasks/p/a1.pdf"}}},
		{ID: "t2"},
	}, nil)
	f.projects.On("Delete", mock.Anything, projectID).Return(nil)
	f.files.On("DeleteFile", mock.Anything, "tasks/p/a1.pdf").Return(nil)

	require.NoError(t, f.svc.DeleteProject(ctx, projectID))
	f.files.AssertExpectations(t)
}

func TestListAssignableUsers(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.users.On("ListActive", mock.Anything).Return([]user.User{manager, employee}, nil)

	got, err := f.svc.ListAssignableUsers(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []user.UserRef{{ID: employeeID, Name: "Esha"}}, got[0].ReportBy)
}
