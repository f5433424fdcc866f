package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/webwhiz/hrms-backend/internal/domain/attendance"
	"github.com/webwhiz/hrms-backend/internal/domain/leave"
)

type LeaveService struct {
	mock.Mock
}

func (m *LeaveService) CreateLeave(ctx context.Context, requesterID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	args := m.Called(ctx, requesterID, req)
	return args.Get(0).(leave.LeaveResponse), args.Error(1)
}

func (m *LeaveService) UpdateLeaveStatus(ctx context.Context, req leave.UpdateLeaveStatusRequest) (leave.LeaveResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(leave.LeaveResponse), args.Error(1)
}

func (m *LeaveService) UpdateLeave(ctx context.Context, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(leave.LeaveResponse), args.Error(1)
}

func (m *LeaveService) DeleteLeave(ctx context.Context, requesterID, leaveID string) error {
	return m.Called(ctx, requesterID, leaveID).Error(0)
}

func (m *LeaveService) GetLeave(ctx context.Context, requesterID, leaveID string) (leave.LeaveResponse, error) {
	args := m.Called(ctx, requesterID, leaveID)
	return args.Get(0).(leave.LeaveResponse), args.Error(1)
}

func (m *LeaveService) ListLeavesByUser(ctx context.Context, requesterID, userID string) ([]leave.LeaveResponse, error) {
	args := m.Called(ctx, requesterID, userID)
	return args.Get(0).([]leave.LeaveResponse), args.Error(1)
}

func (m *LeaveService) GetFilteredLeaves(ctx context.Context, requesterID string) ([]leave.LeaveResponse, error) {
	args := m.Called(ctx, requesterID)
	return args.Get(0).([]leave.LeaveResponse), args.Error(1)
}

type AttendanceService struct {
	mock.Mock
}

func (m *AttendanceService) CheckIn(ctx context.Context, req attendance.ClockRequest) (attendance.AttendanceResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(attendance.AttendanceResponse), args.Error(1)
}

func (m *AttendanceService) CheckOut(ctx context.Context, req attendance.ClockRequest) (attendance.AttendanceResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(attendance.AttendanceResponse), args.Error(1)
}

func (m *AttendanceService) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) ([]attendance.AttendanceResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).([]attendance.AttendanceResponse), args.Error(1)
}

func (m *AttendanceService) ApproveOrReject(ctx context.Context, req attendance.ApprovalRequest) ([]attendance.AttendanceResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).([]attendance.AttendanceResponse), args.Error(1)
}

func (m *AttendanceService) ListByUser(ctx context.Context, userID string, date *time.Time) ([]attendance.AttendanceResponse, error) {
	args := m.Called(ctx, userID, date)
	return args.Get(0).([]attendance.AttendanceResponse), args.Error(1)
}

func (m *AttendanceService) ListScoped(ctx context.Context, requesterID string) ([]attendance.AttendanceResponse, error) {
	args := m.Called(ctx, requesterID)
	return args.Get(0).([]attendance.AttendanceResponse), args.Error(1)
}

func (m *AttendanceService) DeleteAttendance(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *AttendanceService) Reconcile(ctx context.Context, day time.Time) (attendance.ReconcileResult, error) {
	args := m.Called(ctx, day)
	return args.Get(0).(attendance.ReconcileResult), args.Error(1)
}
