package project

import "context"

// ListFilter narrows project listings. A non-empty MemberID keeps projects
// the user manages or is on the team of.
type ListFilter struct {
	MemberID string
}

type ProjectRepository interface {
	Create(ctx context.Context, p Project) (Project, error)
	GetByID(ctx context.Context, id string) (Project, error)
	List(ctx context.Context, filter ListFilter) ([]Project, error)
	Update(ctx context.Context, req UpdateProjectRequest) error
	// Delete removes the project and, by cascade, its tasks.
	Delete(ctx context.Context, id string) error
	// CountTasks tallies tasks per project; completedSection marks done tasks.
	CountTasks(ctx context.Context, projectIDs []string, completedSection string) (map[string]TaskCounts, error)
}
