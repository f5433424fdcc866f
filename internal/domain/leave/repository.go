package leave

import (
	"context"
	"time"
)

// ListFilter narrows leave listings. All overrides UserIDs.
type ListFilter struct {
	All     bool
	UserIDs []string
}

type LeaveRepository interface {
	Create(ctx context.Context, l Leave) (Leave, error)
	GetByID(ctx context.Context, id string) (Leave, error)
	List(ctx context.Context, filter ListFilter) ([]Leave, error)

	// Update rewrites the editable fields of a pending leave. It returns
	// ErrLeaveNotEditable when the leave is no longer pending.
	Update(ctx context.Context, l Leave) error

	// TransitionStatus moves a leave from Pending to status. It returns
	// ErrLeaveAlreadyProcessed when the leave is not pending anymore.
	TransitionStatus(ctx context.Context, id string, status Status, decidedBy string, decidedAt time.Time) error

	// HasActiveOverlap reports whether the user has a pending or approved
	// leave, other than excludeID, sharing a day with [start, end].
	HasActiveOverlap(ctx context.Context, userID string, start, end time.Time, excludeID string) (bool, error)

	// Delete removes a pending leave.
	Delete(ctx context.Context, id string) error

	// ListApprovedUserIDsOn returns the owners of approved leaves covering day.
	ListApprovedUserIDsOn(ctx context.Context, day time.Time) ([]string, error)
}
