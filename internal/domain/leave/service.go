package leave

import "context"

type LeaveService interface {
	CreateLeave(ctx context.Context, requesterID string, req CreateLeaveRequest) (LeaveResponse, error)
	UpdateLeaveStatus(ctx context.Context, req UpdateLeaveStatusRequest) (LeaveResponse, error)
	UpdateLeave(ctx context.Context, req UpdateLeaveRequest) (LeaveResponse, error)
	DeleteLeave(ctx context.Context, requesterID, leaveID string) error
	GetLeave(ctx context.Context, requesterID, leaveID string) (LeaveResponse, error)
	ListLeavesByUser(ctx context.Context, requesterID, userID string) ([]LeaveResponse, error)
	GetFilteredLeaves(ctx context.Context, requesterID string) ([]LeaveResponse, error)
}
