package user

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/webwhiz/hrms-backend/internal/domain/role"
	"github.com/webwhiz/hrms-backend/internal/domain/user"
	"github.com/webwhiz/hrms-backend/internal/service/scope"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	user.UserRepository
	role.RoleRepository
	scope *scope.Resolver
}

func NewUserService(userRepository user.UserRepository, roleRepository role.RoleRepository) user.UserService {
	return &UserServiceImpl{
		UserRepository: userRepository,
		RoleRepository: roleRepository,
		scope:          scope.NewResolver(userRepository),
	}
}

// ListUsers implements user.UserService. A Founder's list leaves out the
// Founder's own account.
func (s *UserServiceImpl) ListUsers(ctx context.Context, requesterID string) ([]user.UserResponse, error) {
	_, vis, err := s.scope.Resolve(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	filter := user.ListFilter{All: vis.All, UserIDs: vis.UserIDs}
	if vis.All {
		filter.ExcludeID = requesterID
	}

	users, err := s.UserRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return s.toResponses(ctx, users)
}

// ListDirectory implements user.UserService.
func (s *UserServiceImpl) ListDirectory(ctx context.Context) ([]user.UserResponse, error) {
	users, err := s.UserRepository.List(ctx, user.ListFilter{All: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return s.toResponses(ctx, users)
}

// GetProfile implements user.UserService.
func (s *UserServiceImpl) GetProfile(ctx context.Context, userID string) (user.UserResponse, error) {
	found, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.UserResponse{}, err
	}

	names, err := s.UserRepository.GetNames(ctx, found.ReportBy)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to resolve reportBy names: %w", err)
	}
	return user.NewUserResponse(found, names), nil
}

// UpdateProfile implements user.UserService. Users edit their own contact
// details; balances, role and reporting line are Founder-only.
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, requesterID string, req user.UpdateUserRequest) ([]user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	requester, err := s.UserRepository.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	privileged := req.SickLeave != nil || req.PaidLeave != nil || req.ReportBy != nil || req.Role != nil
	if privileged && !requester.IsFounder() {
		return nil, user.ErrFounderAccessRequired
	}
	if req.ID != requesterID && !requester.CanSupervise(req.ID) {
		return nil, user.ErrInsufficientPermissions
	}

	if _, err := s.UserRepository.GetByID(ctx, req.ID); err != nil {
		return nil, err
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		req.Email = &email
		exists, err := s.UserRepository.ExistsByEmail(ctx, email, req.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return nil, user.ErrUserEmailExists
		}
	}

	if req.ReportBy != nil {
		ids := slices.Compact(slices.Sorted(slices.Values(*req.ReportBy)))
		if slices.Contains(ids, req.ID) {
			return nil, user.ErrInvalidReportBy
		}
		if len(ids) > 0 {
			count, err := s.UserRepository.CountByIDs(ctx, ids)
			if err != nil {
				return nil, fmt.Errorf("failed to check reportBy: %w", err)
			}
			if count != len(ids) {
				return nil, user.ErrInvalidReportBy
			}
		}
		req.ReportBy = &ids
	}

	if req.Role != nil {
		r, err := s.RoleRepository.GetByName(ctx, strings.TrimSpace(*req.Role))
		if err != nil {
			return nil, err
		}
		req.RoleID = &r.ID
	}

	if !req.HasChanges() {
		return s.ListUsers(ctx, requesterID)
	}

	if err := s.UserRepository.Update(ctx, req); err != nil {
		return nil, err
	}

	return s.ListUsers(ctx, requesterID)
}

// UpdatePassword implements user.UserService.
func (s *UserServiceImpl) UpdatePassword(ctx context.Context, requesterID string, req user.UpdatePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if req.UserID != requesterID {
		return user.ErrInsufficientPermissions
	}

	found, err := s.UserRepository.GetByID(ctx, req.UserID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(req.OldPassword)); err != nil {
		return user.ErrOldPasswordMismatch
	}
	if req.OldPassword == req.NewPassword {
		return user.ErrPasswordUnchanged
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.UserRepository.UpdatePassword(ctx, req.UserID, string(hash))
}

// UpdateStatus implements user.UserService.
func (s *UserServiceImpl) UpdateStatus(ctx context.Context, requesterID string, req user.UpdateStatusRequest) ([]user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireFounder(ctx, requesterID); err != nil {
		return nil, err
	}
	if req.UserID == requesterID {
		return nil, user.ErrCannotDeleteSelf
	}

	if err := s.UserRepository.UpdateStatus(ctx, req.UserID, user.Status(req.Status)); err != nil {
		return nil, err
	}
	return s.ListUsers(ctx, requesterID)
}

// DeleteUser implements user.UserService. Users are soft-deleted so their
// leaves and attendance stay intact.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, requesterID, userID string) ([]user.UserResponse, error) {
	if err := s.requireFounder(ctx, requesterID); err != nil {
		return nil, err
	}
	if userID == requesterID {
		return nil, user.ErrCannotDeleteSelf
	}

	if err := s.UserRepository.SoftDelete(ctx, userID); err != nil {
		return nil, err
	}
	return s.ListUsers(ctx, requesterID)
}

func (s *UserServiceImpl) requireFounder(ctx context.Context, requesterID string) error {
	requester, err := s.UserRepository.GetByID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.ErrInsufficientPermissions
		}
		return err
	}
	if !requester.IsFounder() {
		return user.ErrFounderAccessRequired
	}
	return nil
}

func (s *UserServiceImpl) toResponses(ctx context.Context, users []user.User) ([]user.UserResponse, error) {
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
