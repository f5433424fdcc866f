package task

import "context"

// ListFilter narrows task listings; empty fields do not filter.
type ListFilter struct {
	ProjectID string
	MemberID  string
}

type TaskRepository interface {
	Create(ctx context.Context, t Task) (Task, error)
	GetByID(ctx context.Context, id string) (Task, error)
	List(ctx context.Context, filter ListFilter) ([]Task, error)
	Update(ctx context.Context, t Task) error
	// UpdateAttachments replaces only the attachment list.
	UpdateAttachments(ctx context.Context, id string, attachments Attachments) error
	Delete(ctx context.Context, id string) error
}
