package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/webwhiz/hrms-backend/internal/domain/leave"
	"github.com/webwhiz/hrms-backend/internal/domain/user"
	"github.com/webwhiz/hrms-backend/internal/pkg/database"
	"github.com/webwhiz/hrms-backend/internal/pkg/events"
	"github.com/webwhiz/hrms-backend/internal/pkg/metrics"
	"github.com/webwhiz/hrms-backend/internal/service/file"
	"github.com/webwhiz/hrms-backend/internal/service/scope"
)

type LeaveServiceImpl struct {
	tx database.Transactor
	leave.LeaveRepository
	user.UserRepository
	fileService file.FileService
	publisher   events.Publisher
	metrics     *metrics.Metrics
	scope       *scope.Resolver
	now         func() time.Time
}

func NewLeaveService(
	tx database.Transactor,
	leaveRepository leave.LeaveRepository,
	userRepository user.UserRepository,
	fileService file.FileService,
	publisher events.Publisher,
	m *metrics.Metrics,
) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:              tx,
		LeaveRepository: leaveRepository,
		UserRepository:  userRepository,
		fileService:     fileService,
		publisher:       publisher,
		metrics:         m,
		scope:           scope.NewResolver(userRepository),
		now:             time.Now,
	}
}

// CreateLeave implements leave.LeaveService. The leave is filed for
// req.UserID when set, otherwise for the requester. Balances are only
// checked when the leave is approved.
func (l *LeaveServiceImpl) CreateLeave(ctx context.Context, requesterID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	ownerID := requesterID
	if req.UserID != "" && req.UserID != requesterID {
		requester, err := l.UserRepository.GetByID(ctx, requesterID)
		if err != nil {
			return leave.LeaveResponse{}, err
		}
		if !requester.CanSupervise(req.UserID) {
			return leave.LeaveResponse{}, leave.ErrNotAuthorized
		}
		ownerID = req.UserID
	}

	owner, err := l.UserRepository.GetByID(ctx, ownerID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if !owner.IsActive() {
		return leave.LeaveResponse{}, user.ErrUserInactive
	}

	start, _ := time.Parse(leave.DateLayout, req.StartDate)
	end, _ := time.Parse(leave.DateLayout, req.EndDate)
	details, err := leave.GenerateLeaveDetails(start, end)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if err := l.ensureNoOverlap(ctx, owner.ID, start, end, ""); err != nil {
		return leave.LeaveResponse{}, err
	}

	newLeave := leave.Leave{
		UserID:       owner.ID,
		StartDate:    start,
		EndDate:      end,
		Reason:       req.Reason,
		LeaveType:    leave.Type(req.LeaveType),
		Status:       leave.StatusPending,
		LeaveDetails: leave.ApplyHalfDayOverrides(details, req.HalfDays),
	}

	if req.Attachment != nil {
		stored, err := l.fileService.UploadLeaveAttachment(ctx, owner.ID, req.Attachment.File, req.Attachment.Filename)
		if err != nil {
			return leave.LeaveResponse{}, fmt.Errorf("failed to upload leave attachment: %w", err)
		}
		newLeave.Attachment = &stored
	}

	created, err := l.LeaveRepository.Create(ctx, newLeave)
	if err != nil {
		l.discardFile(ctx, newLeave.Attachment)
		return leave.LeaveResponse{}, fmt.Errorf("failed to create leave: %w", err)
	}
	if created.UserName == nil {
		created.UserName = &owner.Name
	}

	slog.Info("leave created", "leave_id", created.ID, "user_id", created.UserID, "type", created.LeaveType, "days", created.TotalDays().String())
	return l.toResponse(ctx, created), nil
}

// UpdateLeaveStatus implements leave.LeaveService. The status transition and
// the balance deduction commit together or not at all.
func (l *LeaveServiceImpl) UpdateLeaveStatus(ctx context.Context, req leave.UpdateLeaveStatusRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}
	status := leave.Status(req.Status)

	decider, err := l.UserRepository.GetByID(ctx, req.DeciderID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	decidedAt := l.now().UTC()
	var decided leave.Leave

	err = l.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := l.LeaveRepository.GetByID(ctx, req.LeaveID)
		if err != nil {
			return err
		}
		if !current.IsPending() {
			return leave.ErrLeaveAlreadyProcessed
		}

		owner, err := l.UserRepository.GetByID(ctx, current.UserID)
		if err != nil {
			return err
		}
		if !decider.CanSupervise(owner.ID) {
			return leave.ErrNotAuthorized
		}
		if status == leave.StatusApproved {
			if err := l.ensureNoOverlap(ctx, owner.ID, current.StartDate, current.EndDate, current.ID); err != nil {
				return err
			}
		}

		if err := l.LeaveRepository.TransitionStatus(ctx, current.ID, status, decider.ID, decidedAt); err != nil {
			return err
		}

		if status == leave.StatusApproved {
			if category, ok := current.LeaveType.BalanceCategory(); ok {
				err := l.UserRepository.DeductLeaveBalance(ctx, owner.ID, category, current.TotalDays())
				if errors.Is(err, user.ErrInsufficientBalance) {
					return leave.ErrInsufficientBalance
				}
				if err != nil {
					return fmt.Errorf("failed to deduct leave balance: %w", err)
				}
			}
		}

		current.Status = status
		current.DecidedBy = &decider.ID
		current.DecidedAt = &decidedAt
		decided = current
		return nil
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	l.metrics.ObserveLeaveDecision(string(decided.LeaveType), string(decided.Status))

	event := leave.StatusChangedEvent{
		LeaveID:   decided.ID,
		UserID:    decided.UserID,
		LeaveType: string(decided.LeaveType),
		Status:    string(decided.Status),
		Days:      decided.TotalDays().String(),
		DecidedBy: decider.ID,
		DecidedAt: decidedAt,
	}
	if err := l.publisher.Publish(ctx, events.LeaveStatusChanged, event); err != nil {
		slog.Error("failed to publish leave decision", "leave_id", decided.ID, "error", err)
	}

	slog.Info("leave decided", "leave_id", decided.ID, "status", decided.Status, "decided_by", decider.ID)
	return l.toResponse(ctx, decided), nil
}

// UpdateLeave implements leave.LeaveService. Changing either date rebuilds
// the details from the new range before half days are applied again.
func (l *LeaveServiceImpl) UpdateLeave(ctx context.Context, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	current, err := l.LeaveRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if err := l.authorizeOwnerOrSupervisor(ctx, req.RequesterID, current.UserID); err != nil {
		return leave.LeaveResponse{}, err
	}
	if !current.IsPending() {
		return leave.LeaveResponse{}, leave.ErrLeaveNotEditable
	}

	updated := current
	rangeChanged := false
	if req.StartDate != nil {
		updated.StartDate, _ = time.Parse(leave.DateLayout, *req.StartDate)
		rangeChanged = rangeChanged || !updated.StartDate.Equal(current.StartDate)
	}
	if req.EndDate != nil {
		updated.EndDate, _ = time.Parse(leave.DateLayout, *req.EndDate)
		rangeChanged = rangeChanged || !updated.EndDate.Equal(current.EndDate)
	}
	if req.Reason != nil {
		updated.Reason = *req.Reason
	}
	if req.LeaveType != nil {
		updated.LeaveType = leave.Type(*req.LeaveType)
	}

	switch {
	case rangeChanged:
		details, err := leave.GenerateLeaveDetails(updated.StartDate, updated.EndDate)
		if err != nil {
			return leave.LeaveResponse{}, err
		}
		updated.LeaveDetails = leave.ApplyHalfDayOverrides(details, req.HalfDays)
		if err := l.ensureNoOverlap(ctx, current.UserID, updated.StartDate, updated.EndDate, current.ID); err != nil {
			return leave.LeaveResponse{}, err
		}
	case req.HalfDays != nil:
		updated.LeaveDetails = leave.ApplyHalfDayOverrides(current.LeaveDetails, req.HalfDays)
	}

	var replaced *string
	if req.Attachment != nil {
		stored, err := l.fileService.UploadLeaveAttachment(ctx, current.UserID, req.Attachment.File, req.Attachment.Filename)
		if err != nil {
			return leave.LeaveResponse{}, fmt.Errorf("failed to upload leave attachment: %w", err)
		}
		replaced = current.Attachment
		updated.Attachment = &stored
	}

	if err := l.LeaveRepository.Update(ctx, updated); err != nil {
		if req.Attachment != nil {
			l.discardFile(ctx, updated.Attachment)
		}
		return leave.LeaveResponse{}, err
	}
	l.discardFile(ctx, replaced)

	return l.toResponse(ctx, updated), nil
}

// DeleteLeave implements leave.LeaveService. Only the owner may withdraw a
// leave and only while it is pending.
func (l *LeaveServiceImpl) DeleteLeave(ctx context.Context, requesterID, leaveID string) error {
	current, err := l.LeaveRepository.GetByID(ctx, leaveID)
	if err != nil {
		return err
	}
	if current.UserID != requesterID {
		return leave.ErrNotAuthorized
	}
	if !current.IsPending() {
		return leave.ErrLeaveNotEditable
	}

	if err := l.LeaveRepository.Delete(ctx, leaveID); err != nil {
		return err
	}
	l.discardFile(ctx, current.Attachment)
	return nil
}

// GetLeave implements leave.LeaveService.
func (l *LeaveServiceImpl) GetLeave(ctx context.Context, requesterID, leaveID string) (leave.LeaveResponse, error) {
	found, err := l.LeaveRepository.GetByID(ctx, leaveID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if err := l.authorizeViewer(ctx, requesterID, found.UserID); err != nil {
		return leave.LeaveResponse{}, err
	}
	return l.toResponse(ctx, found), nil
}

// ListLeavesByUser implements leave.LeaveService.
func (l *LeaveServiceImpl) ListLeavesByUser(ctx context.Context, requesterID, userID string) ([]leave.LeaveResponse, error) {
	if err := l.authorizeViewer(ctx, requesterID, userID); err != nil {
		return nil, err
	}

	leaves, err := l.LeaveRepository.List(ctx, leave.ListFilter{UserIDs: []string{userID}})
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}
	return l.toResponses(ctx, leaves), nil
}

// GetFilteredLeaves implements leave.LeaveService. Founders see every
// leave, users with a reporting line see that line, everyone else their own.
func (l *LeaveServiceImpl) GetFilteredLeaves(ctx context.Context, requesterID string) ([]leave.LeaveResponse, error) {
	_, vis, err := l.scope.Resolve(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	leaves, err := l.LeaveRepository.List(ctx, leave.ListFilter{All: vis.All, UserIDs: vis.UserIDs})
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}
	return l.toResponses(ctx, leaves), nil
}

// authorizeViewer allows the owner and anyone whose visibility covers the
// owner.
func (l *LeaveServiceImpl) authorizeViewer(ctx context.Context, requesterID, ownerID string) error {
	if requesterID == ownerID {
		return nil
	}
	_, vis, err := l.scope.Resolve(ctx, requesterID)
	if err != nil {
		return err
	}
	if !vis.Includes(ownerID) {
		return leave.ErrNotAuthorized
	}
	return nil
}

func (l *LeaveServiceImpl) authorizeOwnerOrSupervisor(ctx context.Context, requesterID, ownerID string) error {
	if requesterID == ownerID {
		return nil
	}
	requester, err := l.UserRepository.GetByID(ctx, requesterID)
	if err != nil {
		return err
	}
	if !requester.CanSupervise(ownerID) {
		return leave.ErrNotAuthorized
	}
	return nil
}

// ensureNoOverlap keeps every day of a user under at most one pending or
// approved leave, so approving can never charge a day twice.
func (l *LeaveServiceImpl) ensureNoOverlap(ctx context.Context, userID string, start, end time.Time, excludeID string) error {
	overlaps, err := l.LeaveRepository.HasActiveOverlap(ctx, userID, start, end, excludeID)
	if err != nil {
		return err
	}
	if overlaps {
		return leave.ErrLeaveOverlaps
	}
	return nil
}

// discardFile removes a stored attachment. Failures only leave an orphaned
// file behind, so they are logged.
func (l *LeaveServiceImpl) discardFile(ctx context.Context, path *string) {
	if path == nil || *path == "" {
		return
	}
	if err := l.fileService.DeleteFile(ctx, *path); err != nil {
		slog.Warn("failed to delete leave attachment", "path", *path, "error", err)
	}
}

func (l *LeaveServiceImpl) toResponse(ctx context.Context, lv leave.Leave) leave.LeaveResponse {
	var url *string
	if lv.Attachment != nil && *lv.Attachment != "" {
		resolved := l.fileService.GetFileURL(ctx, *lv.Attachment)
		url = &resolved
	}
	return leave.NewLeaveResponse(lv, url)
}

func (l *LeaveServiceImpl) toResponses(ctx context.Context, leaves []leave.Leave) []leave.LeaveResponse {
	responses := make([]leave.LeaveResponse, 0, len(leaves))
	for _, lv := range leaves {
		responses = append(responses, l.toResponse(ctx, lv))
	}
	return responses
}
