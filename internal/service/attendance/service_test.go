package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/webwhiz/hrms-backend/internal/domain/attendance"
	"github.com/webwhiz/hrms-backend/internal/domain/user"
	"github.com/webwhiz/hrms-backend/internal/mocks"
	"github.com/webwhiz/hrms-backend/internal/pkg/events"
	"github.com/webwhiz/hrms-backend/internal/pkg/metrics"
)

const (
	founderID  = "0190a000-0000-7000-8000-000000000001"
	managerID  = "0190a000-0000-7000-8000-000000000002"
	employeeID = "0190a000-0000-7000-8000-000000000003"
	outsiderID = "0190a000-0000-7000-8000-000000000004"
	recordID   = "0190a000-0000-7000-8000-0000000000a1"
)

var (
	founder  = user.User{ID: founderID, Name: "Fatima", RoleName: "Founder", Status: user.StatusActive}
	manager  = user.User{ID: managerID, Name: "Manoj", RoleName: "Manager", ReportBy: []string{employeeID}, Status: user.StatusActive}
	employee = user.User{ID: employeeID, Name: "Esha", RoleName: "Employee", Status: user.StatusActive}
	outsider = user.User{ID: outsiderID, Name: "Omar", RoleName: "Employee", Status: user.StatusActive}
)

type fixture struct {
	records   *mocks.AttendanceRepository
	users     *mocks.UserRepository
	leaves    *mocks.LeaveRepository
	publisher *events.Recorder
	metrics   *metrics.Metrics
	svc       *AttendanceServiceImpl
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	f := &fixture{
		records:   new(mocks.AttendanceRepository),
		users:     new(mocks.UserRepository),
		leaves:    new(mocks.LeaveRepository),
		publisher: new(events.Recorder),
		metrics:   metrics.New(prometheus.NewRegistry()),
	}
	svc := NewAttendanceService(f.records, f.users, f.leaves, f.publisher, f.metrics, loc).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return now }
	f.svc = svc

	for _, u := range []user.User{founder, manager, employee, outsider} {
		f.users.On("GetByID", mock.Anything, u.ID).Return(u, nil).Maybe()
	}
	return f
}

func day(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestCheckIn_UsesLocalCalendarDay(t *testing.T) {
	// 20:00 UTC on the 6th is already the 7th in India.
	now := time.Date(2025, 1, 6, 20, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	ctx := context.Background()

	f.records.On("GetByUserAndDate", mock.Anything, employeeID, day("2025-01-07")).Return(attendance.Attendance{}, attendance.ErrAttendanceNotFound)
	f.records.On("Create", mock.Anything, mock.MatchedBy(func(a attendance.Attendance) bool {
		return a.UserID == employeeID &&
			a.Date.Equal(day("2025-01-07")) &&
			a.ClocksIn != nil && a.ClocksIn.Equal(now) &&
			a.Status == attendance.StatusPresent &&
			a.Latitude != nil && *a.Latitude == 12.97
	})).Return(attendance.Attendance{ID: recordID, UserID: employeeID, Date: day("2025-01-07"), ClocksIn: &now, Status: attendance.StatusPresent}, nil)

	resp, err := f.svc.CheckIn(ctx, attendance.ClockRequest{
		UserID:   employeeID,
		Location: &attendance.Location{Latitude: 12.97, Longitude: 77.59},
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-01-07", resp.Date)
	assert.Equal(t, "Present", resp.Status)
	require.NotNil(t, resp.UserName)
	assert.Equal(t, "Esha", *resp.UserName)
}

func TestCheckIn_AlreadyCheckedIn(t *testing.T) {
	now := time.Date(2025, 1, 6, 4, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("existing record", func(t *testing.T) {
		f := newFixture(t, now)
		f.records.On("GetByUserAndDate", mock.Anything, employeeID, day("2025-01-06")).Return(attendance.Attendance{ID: recordID}, nil)

		_, err := f.svc.CheckIn(ctx, attendance.ClockRequest{UserID: employeeID})
		assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
		f.records.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("concurrent insert", func(t *testing.T) {
		f := newFixture(t, now)
		f.records.On("GetByUserAndDate", mock.Anything, employeeID, day("2025-01-06")).Return(attendance.Attendance{}, attendance.ErrAttendanceNotFound)
		f.records.On("Create", mock.Anything, mock.Anything).Return(attendance.Attendance{}, attendance.ErrAlreadyCheckedIn)

		_, err := f.svc.CheckIn(ctx, attendance.ClockRequest{UserID: employeeID})
		assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	})
}

func TestCheckIn_InactiveUser(t *testing.T) {
	now := time.Date(2025, 1, 6, 4, 0, 0, 0, time.UTC)
	removedAt := now.Add(-time.Hour)
	ctx := context.Background()

	tests := []struct {
		name    string
		account user.User
	}{
		{"deactivated", user.User{ID: "0190a000-0000-7000-8000-000000000007", Status: user.StatusInactive}},
		{"soft deleted", user.User{ID: "0190a000-0000-7000-8000-000000000008", Status: user.StatusInactive, DeletedAt: &removedAt}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, now)
			f.users.On("GetByID", mock.Anything, tt.account.ID).Return(tt.account, nil)

			_, err := f.svc.CheckIn(ctx, attendance.ClockRequest{UserID: tt.account.ID})
			assert.ErrorIs(t, err, user.ErrUserInactive)
			f.records.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCheckOut(t *testing.T) {
	now := time.Date(2025, 1, 6, 12, 20, 0, 0, time.UTC)
	in := time.Date(2025, 1, 6, 5, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("records hours", func(t *testing.T) {
		f := newFixture(t, now)
		f.records.On("GetByUserAndDate", mock.Anything, employeeID, day("2025-01-06")).
			Return(attendance.Attendance{ID: recordID, UserID: employeeID, Date: day("2025-01-06"), ClocksIn: &in, Status: attendance.StatusPresent}, nil)
		f.records.On("Update", mock.Anything, mock.MatchedBy(func(a attendance.Attendance) bool {
			return a.ClocksOut != nil && a.TotalHours.Equal(decimal.RequireFromString("7.333"))
		})).Return(nil)

		resp, err := f.svc.CheckOut(ctx, attendance.ClockRequest{UserID: employeeID})
		require.NoError(t, err)
		assert.Equal(t, 7.333, resp.TotalHours)
	})

	t.Run("no record today", func(t *testing.T) {
		f := newFixture(t, now)
		f.records.On("GetByUserAndDate", mock.Anything, employeeID, day("2025-01-06")).Return(attendance.Attendance{}, attendance.ErrAttendanceNotFound)

		_, err := f.svc.CheckOut(ctx, attendance.ClockRequest{UserID: employeeID})
		assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
	})

	t.Run("twice", func(t *testing.T) {
		f := newFixture(t, now)
		out := in.Add(8 * time.Hour)
		f.records.On("GetByUserAndDate", mock.Anything, employeeID, day("2025-01-06")).
			Return(attendance.Attendance{ID: recordID, UserID: employeeID, ClocksIn: &in, ClocksOut: &out}, nil)

		_, err := f.svc.CheckOut(ctx, attendance.ClockRequest{UserID: employeeID})
		assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
	})

	t.Run("absent record without clock-in", func(t *testing.T) {
		f := newFixture(t, now)
		f.records.On("GetByUserAndDate", mock.Anything, employeeID, day("2025-01-06")).
			Return(attendance.Attendance{ID: recordID, UserID: employeeID, Status: attendance.StatusAbsent}, nil)

		_, err := f.svc.CheckOut(ctx, attendance.ClockRequest{UserID: employeeID})
		assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
	})
}

func TestUpdateAttendance_StatusDependsOnEditor(t *testing.T) {
	now := time.Date(2025, 1, 7, 6, 0, 0, 0, time.UTC)
	ctx := context.Background()
	clocksIn := "2025-01-06T09:00:00+05:30"
	clocksOut := "2025-01-06T18:30:00+05:30"

	tests := []struct {
		name     string
		editorID string
		want     attendance.Status
		filter   attendance.ListFilter
	}{
		{"employee edit needs approval", employeeID, attendance.StatusInApproval, attendance.ListFilter{UserIDs: []string{employeeID}}},
		{"founder edit is final", founderID, attendance.StatusPresent, attendance.ListFilter{All: true, ExcludeFounders: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, now)
			f.records.On("GetByID", mock.Anything, recordID).Return(attendance.Attendance{ID: recordID, UserID: employeeID, Date: day("2025-01-06")}, nil)
			f.records.On("Update", mock.Anything, mock.MatchedBy(func(a attendance.Attendance) bool {
				return a.Status == tt.want && a.TotalHours.Equal(decimal.RequireFromString("9.5"))
			})).Return(nil)
			f.records.On("List", mock.Anything, tt.filter).Return([]attendance.Attendance{}, nil)

			_, err := f.svc.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{
				ID:        recordID,
				EditorID:  tt.editorID,
				ClocksIn:  &clocksIn,
				ClocksOut: &clocksOut,
			})
			require.NoError(t, err)
			f.records.AssertExpectations(t)
		})
	}
}

func TestUpdateAttendance_Stranger(t *testing.T) {
	f := newFixture(t, time.Now())
	ctx := context.Background()
	f.records.On("GetByID", mock.Anything, recordID).Return(attendance.Attendance{ID: recordID, UserID: employeeID}, nil)

	date := "2025-01-06"
	_, err := f.svc.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{ID: recordID, EditorID: outsiderID, Date: &date})
	assert.ErrorIs(t, err, attendance.ErrNotAuthorized)
}

func TestUpdateAttendance_DateTaken(t *testing.T) {
	f := newFixture(t, time.Now())
	ctx := context.Background()
	f.records.On("GetByID", mock.Anything, recordID).Return(attendance.Attendance{ID: recordID, UserID: employeeID, Date: day("2025-01-06")}, nil)
	f.records.On("Update", mock.Anything, mock.Anything).Return(attendance.ErrDuplicateDate)

	date := "2025-01-07"
	_, err := f.svc.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{ID: recordID, EditorID: employeeID, Date: &date})

	assert.ErrorIs(t, err, attendance.ErrDuplicateDate)
	f.records.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestApproveOrReject(t *testing.T) {
	ctx := context.Background()

	t.Run("manager approves reporting line", func(t *testing.T) {
		f := newFixture(t, time.Now())
		f.records.On("GetByID", mock.Anything, recordID).Return(attendance.Attendance{ID: recordID, UserID: employeeID, Status: attendance.StatusInApproval}, nil)
		f.records.On("UpdateStatus", mock.Anything, recordID, attendance.StatusPresent).Return(nil)
		f.records.On("List", mock.Anything, attendance.ListFilter{UserIDs: []string{employeeID}}).Return([]attendance.Attendance{}, nil)

		_, err := f.svc.ApproveOrReject(ctx, attendance.ApprovalRequest{AttendanceID: recordID, ManagerID: managerID, Action: "Approve"})
		require.NoError(t, err)

		recorded := f.publisher.Snapshot()
		require.Len(t, recorded, 1)
		assert.Equal(t, events.AttendanceDecided, recorded[0].RoutingKey)
		assert.Equal(t, "Present", recorded[0].Event.(attendance.DecisionEvent).Status)
	})

	t.Run("reject marks absent", func(t *testing.T) {
		f := newFixture(t, time.Now())
		f.records.On("GetByID", mock.Anything, recordID).Return(attendance.Attendance{ID: recordID, UserID: employeeID}, nil)
		f.records.On("UpdateStatus", mock.Anything, recordID, attendance.StatusAbsent).Return(nil)
		f.records.On("List", mock.Anything, mock.Anything).Return([]attendance.Attendance{}, nil)

		_, err := f.svc.ApproveOrReject(ctx, attendance.ApprovalRequest{AttendanceID: recordID, ManagerID: founderID, Action: "Reject"})
		require.NoError(t, err)
		f.records.AssertExpectations(t)
	})

	t.Run("outside reporting line", func(t *testing.T) {
		f := newFixture(t, time.Now())
		f.records.On("GetByID", mock.Anything, recordID).Return(attendance.Attendance{ID: recordID, UserID: outsiderID}, nil)

		_, err := f.svc.ApproveOrReject(ctx, attendance.ApprovalRequest{AttendanceID: recordID, ManagerID: managerID, Action: "Approve"})
		assert.ErrorIs(t, err, attendance.ErrNotAuthorized)
		f.records.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestListByUser_DateFilter(t *testing.T) {
	f := newFixture(t, time.Now())
	ctx := context.Background()

	d := day("2025-01-06")
	f.records.On("List", mock.Anything, mock.MatchedBy(func(filter attendance.ListFilter) bool {
		return filter.From != nil && filter.From.Equal(d) && filter.To != nil && filter.To.Equal(d) &&
			len(filter.UserIDs) == 1 && filter.UserIDs[0] == employeeID
	})).Return([]attendance.Attendance{{ID: recordID, UserID: employeeID, Date: d}}, nil)

	got, err := f.svc.ListByUser(ctx, employeeID, &d)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2025-01-06", got[0].Date)
}

func reconcileCount(t *testing.T, m *metrics.Metrics, status string) float64 {
	t.Helper()
	var out dto.Metric
	require.NoError(t, m.ReconcileRecords.WithLabelValues(status).Write(&out))
	return out.GetCounter().GetValue()
}

func TestReconcile(t *testing.T) {
	f := newFixture(t, time.Now())
	ctx := context.Background()
	d := day("2025-01-06")

	onLeaveUser := user.User{ID: "0190a000-0000-7000-8000-000000000005", Status: user.StatusActive}
	brokenUser := user.User{ID: "0190a000-0000-7000-8000-000000000006", Status: user.StatusActive}

	f.users.On("ListActive", mock.Anything).Return([]user.User{employee, manager, onLeaveUser, brokenUser}, nil)
	f.leaves.On("ListApprovedUserIDsOn", mock.Anything, d).Return([]string{onLeaveUser.ID}, nil)

	f.records.On("InsertIfAbsent", mock.Anything, mock.MatchedBy(func(a attendance.Attendance) bool {
		return a.UserID == employeeID && a.Status == attendance.StatusAbsent && a.Date.Equal(d)
	})).Return(true, nil)
	f.records.On("InsertIfAbsent", mock.Anything, mock.MatchedBy(func(a attendance.Attendance) bool {
		return a.UserID == managerID
	})).Return(false, nil)
	f.records.On("InsertIfAbsent", mock.Anything, mock.MatchedBy(func(a attendance.Attendance) bool {
		return a.UserID == onLeaveUser.ID && a.Status == attendance.StatusLeave
	})).Return(true, nil)
	f.records.On("InsertIfAbsent", mock.Anything, mock.MatchedBy(func(a attendance.Attendance) bool {
		return a.UserID == brokenUser.ID
	})).Return(false, errors.New("connection reset"))

	// the clock part of the argument is dropped
	result, err := f.svc.Reconcile(ctx, d.Add(23*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, attendance.ReconcileResult{Day: d, Scanned: 4, Absent: 1, OnLeave: 1, Existing: 1, Failed: 1}, result)

	assert.Equal(t, 1.0, reconcileCount(t, f.metrics, "Absent"))
	assert.Equal(t, 1.0, reconcileCount(t, f.metrics, "Leave"))

	recorded := f.publisher.Snapshot()
	require.Len(t, recorded, 1)
	assert.Equal(t, events.AttendanceReconciled, recorded[0].RoutingKey)
}

func TestReconcile_SecondRunWritesNothing(t *testing.T) {
	f := newFixture(t, time.Now())
	ctx := context.Background()
	d := day("2025-01-06")

	f.users.On("ListActive", mock.Anything).Return([]user.User{employee}, nil)
	f.leaves.On("ListApprovedUserIDsOn", mock.Anything, d).Return([]string{}, nil)
	f.records.On("InsertIfAbsent", mock.Anything, mock.Anything).Return(true, nil).Once()
	f.records.On("InsertIfAbsent", mock.Anything, mock.Anything).Return(false, nil)

	first, err := f.svc.Reconcile(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Absent)

	second, err := f.svc.Reconcile(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Absent)
	assert.Equal(t, 1, second.Existing)
}

func TestReconcile_ListFailure(t *testing.T) {
	f := newFixture(t, time.Now())
	ctx := context.Background()

	f.users.On("ListActive", mock.Anything).Return([]user.User(nil), errors.New("db down"))

	_, err := f.svc.Reconcile(ctx, day("2025-01-06"))
	require.Error(t, err)
	assert.Empty(t, f.publisher.Snapshot())
}
