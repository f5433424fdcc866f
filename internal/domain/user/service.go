package user

import "context"

type UserService interface {
	// ListUsers returns the requester's role-scoped user list.
	ListUsers(ctx context.Context, requesterID string) ([]UserResponse, error)
	ListDirectory(ctx context.Context) ([]UserResponse, error)
	GetProfile(ctx context.Context, userID string) (UserResponse, error)
	UpdateProfile(ctx context.Context, requesterID string, req UpdateUserRequest) ([]UserResponse, error)
	UpdatePassword(ctx context.Context, requesterID string, req UpdatePasswordRequest) error
	UpdateStatus(ctx context.Context, requesterID string, req UpdateStatusRequest) ([]UserResponse, error)
	DeleteUser(ctx context.Context, requesterID, userID string) ([]UserResponse, error)
}
