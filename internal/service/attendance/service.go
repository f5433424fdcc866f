package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/webwhiz/hrms-backend/internal/domain/attendance"
	"github.com/webwhiz/hrms-backend/internal/domain/leave"
	"github.com/webwhiz/hrms-backend/internal/domain/user"
	"github.com/webwhiz/hrms-backend/internal/pkg/events"
	"github.com/webwhiz/hrms-backend/internal/pkg/metrics"
	"github.com/webwhiz/hrms-backend/internal/service/scope"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	user.UserRepository
	leave.LeaveRepository
	publisher events.Publisher
	metrics   *metrics.Metrics
	scope     *scope.Resolver
	loc       *time.Location
	now       func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	leaveRepo leave.LeaveRepository,
	publisher events.Publisher,
	m *metrics.Metrics,
	loc *time.Location,
) attendance.AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		UserRepository:       userRepo,
		LeaveRepository:      leaveRepo,
		publisher:            publisher,
		metrics:              m,
		scope:                scope.NewResolver(userRepo),
		loc:                  loc,
		now:                  time.Now,
	}
}

// today returns the current calendar day in the configured timezone.
func (a *AttendanceServiceImpl) today() (time.Time, time.Time) {
	nowUTC := a.now().UTC()
	return nowUTC, leave.CalendarDate(nowUTC.In(a.loc))
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.ClockRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	owner, err := a.UserRepository.GetByID(ctx, req.UserID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !owner.IsActive() {
		return attendance.AttendanceResponse{}, user.ErrUserInactive
	}

	nowUTC, day := a.today()

	_, err = a.AttendanceRepository.GetByUserAndDate(ctx, owner.ID, day)
	if err == nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}
	if !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check today's attendance: %w", err)
	}

	record := attendance.Attendance{
		UserID:     owner.ID,
		Date:       day,
		ClocksIn:   &nowUTC,
		TotalHours: decimal.Zero,
		Status:     attendance.StatusPresent,
		CheckInIP:  req.IP,
	}
	if req.Location != nil {
		record.Latitude = &req.Location.Latitude
		record.Longitude = &req.Location.Longitude
	}

	// A concurrent check-in surfaces as ErrAlreadyCheckedIn from the unique index.
	created, err := a.AttendanceRepository.Create(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if created.UserName == nil {
		created.UserName = &owner.Name
	}

	slog.Info("checked in", "user_id", owner.ID, "date", day.Format("2006-01-02"))
	return attendance.NewAttendanceResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.ClockRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	nowUTC, day := a.today()

	record, err := a.AttendanceRepository.GetByUserAndDate(ctx, req.UserID, day)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if record.ClocksIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if record.ClocksOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	record.ClocksOut = &nowUTC
	record.TotalHours = attendance.WorkedHours(record.ClocksIn, record.ClocksOut)
	record.CheckOutIP = req.IP

	if err := a.AttendanceRepository.Update(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to record check-out: %w", err)
	}

	slog.Info("checked out", "user_id", record.UserID, "date", day.Format("2006-01-02"), "hours", record.TotalHours.String())
	return attendance.NewAttendanceResponse(record), nil
}

// UpdateAttendance implements attendance.AttendanceService. Corrections by
// anyone but a Founder go back to In Approval.
func (a *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) ([]attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	editor, err := a.UserRepository.GetByID(ctx, req.EditorID)
	if err != nil {
		return nil, err
	}

	record, err := a.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if record.UserID != editor.ID && !editor.CanSupervise(record.UserID) {
		return nil, attendance.ErrNotAuthorized
	}

	if req.Date != nil {
		record.Date, _ = time.Parse("2006-01-02", *req.Date)
	}
	if req.ClocksIn != nil {
		in, _ := time.Parse(time.RFC3339, *req.ClocksIn)
		in = in.UTC()
		record.ClocksIn = &in
	}
	if req.ClocksOut != nil {
		out, _ := time.Parse(time.RFC3339, *req.ClocksOut)
		out = out.UTC()
		record.ClocksOut = &out
	}
	record.TotalHours = attendance.WorkedHours(record.ClocksIn, record.ClocksOut)

	record.Status = attendance.StatusInApproval
	if editor.IsFounder() {
		record.Status = attendance.StatusPresent
	}

	if err := a.AttendanceRepository.Update(ctx, record); err != nil {
		return nil, err
	}

	return a.ListScoped(ctx, editor.ID)
}

// ApproveOrReject implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ApproveOrReject(ctx context.Context, req attendance.ApprovalRequest) ([]attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	status, _ := attendance.Action(req.Action).Status()

	manager, err := a.UserRepository.GetByID(ctx, req.ManagerID)
	if err != nil {
		return nil, err
	}

	record, err := a.AttendanceRepository.GetByID(ctx, req.AttendanceID)
	if err != nil {
		return nil, err
	}
	if !manager.CanSupervise(record.UserID) {
		return nil, attendance.ErrNotAuthorized
	}

	if err := a.AttendanceRepository.UpdateStatus(ctx, record.ID, status); err != nil {
		return nil, err
	}

	event := attendance.DecisionEvent{
		AttendanceID: record.ID,
		UserID:       record.UserID,
		Status:       string(status),
		DecidedBy:    manager.ID,
		DecidedAt:    a.now().UTC(),
	}
	if err := a.publisher.Publish(ctx, events.AttendanceDecided, event); err != nil {
		slog.Error("failed to publish attendance decision", "attendance_id", record.ID, "error", err)
	}

	return a.ListScoped(ctx, manager.ID)
}

// ListByUser implements attendance.AttendanceService. A non-nil date limits
// the result to that day.
func (a *AttendanceServiceImpl) ListByUser(ctx context.Context, userID string, date *time.Time) ([]attendance.AttendanceResponse, error) {
	filter := attendance.ListFilter{UserIDs: []string{userID}}
	if date != nil {
		day := leave.CalendarDate(*date)
		filter.From, filter.To = &day, &day
	}

	records, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return attendance.NewAttendanceResponses(records), nil
}

// ListScoped implements attendance.AttendanceService. Founders see every
// record except those of other Founders.
func (a *AttendanceServiceImpl) ListScoped(ctx context.Context, requesterID string) ([]attendance.AttendanceResponse, error) {
	_, vis, err := a.scope.Resolve(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	records, err := a.AttendanceRepository.List(ctx, attendance.ListFilter{
		All:             vis.All,
		UserIDs:         vis.UserIDs,
		ExcludeFounders: vis.All,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return attendance.NewAttendanceResponses(records), nil
}

// DeleteAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id string) error {
	if err := a.AttendanceRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	return nil
}

// Reconcile implements attendance.AttendanceService. Existing records are
// never touched; a failure for one user is logged and the sweep moves on.
func (a *AttendanceServiceImpl) Reconcile(ctx context.Context, day time.Time) (attendance.ReconcileResult, error) {
	day = leave.CalendarDate(day)
	result := attendance.ReconcileResult{Day: day}

	users, err := a.UserRepository.ListActive(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list active users: %w", err)
	}

	onLeaveIDs, err := a.LeaveRepository.ListApprovedUserIDsOn(ctx, day)
	if err != nil {
		return result, fmt.Errorf("failed to list approved leaves: %w", err)
	}
	onLeave := make(map[string]struct{}, len(onLeaveIDs))
	for _, id := range onLeaveIDs {
		onLeave[id] = struct{}{}
	}

	for _, u := range users {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		result.Scanned++

		status := attendance.StatusAbsent
		if _, ok := onLeave[u.ID]; ok {
			status = attendance.StatusLeave
		}

		inserted, err := a.AttendanceRepository.InsertIfAbsent(ctx, attendance.Attendance{
			UserID:     u.ID,
			Date:       day,
			TotalHours: decimal.Zero,
			Status:     status,
		})
		switch {
		case err != nil:
			result.Failed++
			slog.Error("Cron: failed to reconcile user", "user_id", u.ID, "day", day.Format("2006-01-02"), "error", err)
		case !inserted:
			result.Existing++
		case status == attendance.StatusLeave:
			result.OnLeave++
		default:
			result.Absent++
		}
	}

	a.metrics.ObserveReconcile(result.Absent, result.OnLeave, result.Failed)
	if err := a.publisher.Publish(ctx, events.AttendanceReconciled, result); err != nil {
		slog.Error("failed to publish reconciliation summary", "day", day.Format("2006-01-02"), "error", err)
	}

	return result, nil
}
