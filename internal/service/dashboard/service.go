package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/webwhiz/hrms-backend/internal/domain/attendance"
	"github.com/webwhiz/hrms-backend/internal/domain/dashboard"
	"github.com/webwhiz/hrms-backend/internal/domain/task"
	"github.com/webwhiz/hrms-backend/internal/domain/user"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	attendance.AttendanceRepository
	task.TaskRepository
	user.UserRepository
	rules dashboard.CalendarRules
	now   func() time.Time
}

func NewDashboardService(attendanceRepo attendance.AttendanceRepository, taskRepo task.TaskRepository, userRepo user.UserRepository, rules dashboard.CalendarRules) dashboard.DashboardService {
	if rules.Location == nil {
		rules.Location = time.UTC
	}
	return &DashboardServiceImpl{
		AttendanceRepository: attendanceRepo,
		TaskRepository:       taskRepo,
		UserRepository:       userRepo,
		rules:                rules,
		now:                  time.Now,
	}
}

// localToday returns today's calendar date in the policy timezone.
func (s *DashboardServiceImpl) localToday() time.Time {
	local := s.now().In(s.rules.Location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// GetAllData implements dashboard.DashboardService. The three reads run in
// parallel.
func (s *DashboardServiceImpl) GetAllData(ctx context.Context, userID string) (dashboard.DashboardData, error) {
	today := s.localToday()
	from := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := today.AddDate(0, 0, -1)

	var (
		owner   user.User
		records []attendance.Attendance
		tasks   []task.Task
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		owner, err = s.UserRepository.GetByID(gCtx, userID)
		return err
	})

	// Nothing has elapsed yet on the first of the month.
	if !to.Before(from) {
		g.Go(func() error {
			var err error
			records, err = s.AttendanceRepository.List(gCtx, attendance.ListFilter{
				UserIDs: []string{userID},
				From:    &from,
				To:      &to,
			})
			if err != nil {
				return fmt.Errorf("failed to list attendance: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		var err error
		tasks, err = s.TaskRepository.List(gCtx, task.ListFilter{MemberID: userID})
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.DashboardData{}, err
	}

	data := dashboard.DashboardData{
		Attendance: dashboard.AttendanceSummary{
			Records: attendance.NewAttendanceResponses(records),
			Counts:  s.countAttendance(records),
		},
		Tasks: make([]dashboard.TaskSummary, 0, len(tasks)),
		Leaves: dashboard.LeaveBalances{
			SickLeave:       owner.SickLeave.InexactFloat64(),
			PaidLeave:       owner.PaidLeave.InexactFloat64(),
			AvailableLeaves: owner.AvailableLeaves().InexactFloat64(),
		},
	}

	for _, t := range tasks {
		summary := dashboard.TaskSummary{ID: t.ID, Title: t.Title, Priority: string(t.Priority)}
		if t.DateDue != nil {
			due := t.DateDue.Format("2006-01-02")
			summary.DateDue = &due
		}
		data.Tasks = append(data.Tasks, summary)
	}

	return data, nil
}

func (s *DashboardServiceImpl) countAttendance(records []attendance.Attendance) dashboard.AttendanceCounts {
	var counts dashboard.AttendanceCounts
	for _, r := range records {
		switch r.Status {
		case attendance.StatusPresent:
			counts.PresentCount++
		case attendance.StatusAbsent:
			counts.AbsentCount++
		case attendance.StatusLeave:
			counts.LeaveCount++
		}
		if r.ClocksIn != nil && dashboard.IsLate(*r.ClocksIn, s.rules.Location, s.rules.LateHour) {
			counts.LateCount++
		}
	}
	return counts
}

// MonthlyCalendar implements dashboard.DashboardService.
func (s *DashboardServiceImpl) MonthlyCalendar(ctx context.Context, userID string, at time.Time) (dashboard.MonthlyCalendar, error) {
	local := at.In(s.rules.Location)
	from := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	var records []attendance.Attendance

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		_, err := s.UserRepository.GetByID(gCtx, userID)
		return err
	})

	g.Go(func() error {
		var err error
		records, err = s.AttendanceRepository.List(gCtx, attendance.ListFilter{
			UserIDs: []string{userID},
			From:    &from,
			To:      &to,
		})
		if err != nil {
			return fmt.Errorf("failed to list attendance: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.MonthlyCalendar{}, err
	}

	return dashboard.BuildMonthlyCalendar(from.Year(), from.Month(), records, s.rules), nil
}
