package attendance

import (
	"context"
	"time"
)

type AttendanceService interface {
	CheckIn(ctx context.Context, req ClockRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, req ClockRequest) (AttendanceResponse, error)

	// UpdateAttendance corrects a record and returns the editor's scoped list.
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) ([]AttendanceResponse, error)

	// ApproveOrReject decides an edited record and returns the manager's
	// scoped list.
	ApproveOrReject(ctx context.Context, req ApprovalRequest) ([]AttendanceResponse, error)

	ListByUser(ctx context.Context, userID string, date *time.Time) ([]AttendanceResponse, error)
	ListScoped(ctx context.Context, requesterID string) ([]AttendanceResponse, error)
	DeleteAttendance(ctx context.Context, id string) error

	// Reconcile fills in Absent or Leave for every active user without a
	// record on day. Running it twice for the same day is a no-op.
	Reconcile(ctx context.Context, day time.Time) (ReconcileResult, error)
}
