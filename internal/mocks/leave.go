package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/webwhiz/hrms-backend/internal/domain/attendance"
	"github.com/webwhiz/hrms-backend/internal/domain/leave"
)

type LeaveRepository struct {
	mock.Mock
}

func (m *LeaveRepository) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	args := m.Called(ctx, l)
	return args.Get(0).(leave.Leave), args.Error(1)
}

func (m *LeaveRepository) GetByID(ctx context.Context, id string) (leave.Leave, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(leave.Leave), args.Error(1)
}

func (m *LeaveRepository) List(ctx context.Context, filter leave.ListFilter) ([]leave.Leave, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]leave.Leave), args.Error(1)
}

func (m *LeaveRepository) Update(ctx context.Context, l leave.Leave) error {
	return m.Called(ctx, l).Error(0)
}

func (m *LeaveRepository) TransitionStatus(ctx context.Context, id string, status leave.Status, decidedBy string, decidedAt time.Time) error {
	return m.Called(ctx, id, status, decidedBy, decidedAt).Error(0)
}

func (m *LeaveRepository) HasActiveOverlap(ctx context.Context, userID string, start, end time.Time, excludeID string) (bool, error) {
	args := m.Called(ctx, userID, start, end, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *LeaveRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *LeaveRepository) ListApprovedUserIDsOn(ctx context.Context, day time.Time) ([]string, error) {
	args := m.Called(ctx, day)
	return args.Get(0).([]string), args.Error(1)
}

type AttendanceRepository struct {
	mock.Mock
}

func (m *AttendanceRepository) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(attendance.Attendance), args.Error(1)
}

func (m *AttendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(attendance.Attendance), args.Error(1)
}

func (m *AttendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (attendance.Attendance, error) {
	args := m.Called(ctx, userID, date)
	return args.Get(0).(attendance.Attendance), args.Error(1)
}

func (m *AttendanceRepository) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]attendance.Attendance), args.Error(1)
}

func (m *AttendanceRepository) Update(ctx context.Context, a attendance.Attendance) error {
	return m.Called(ctx, a).Error(0)
}

func (m *AttendanceRepository) UpdateStatus(ctx context.Context, id string, status attendance.Status) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *AttendanceRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *AttendanceRepository) InsertIfAbsent(ctx context.Context, a attendance.Attendance) (bool, error) {
	args := m.Called(ctx, a)
	return args.Bool(0), args.Error(1)
}
