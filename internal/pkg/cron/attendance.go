package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/webwhiz/hrms-backend/internal/domain/attendance"
)

// Reconciler is the part of the attendance service the sweep needs.
type Reconciler interface {
	Reconcile(ctx context.Context, day time.Time) (attendance.ReconcileResult, error)
}

type AttendanceJobs struct {
	reconciler Reconciler
	hour       int
	minute     int
	loc        *time.Location
	now        func() time.Time
}

func NewAttendanceJobs(reconciler Reconciler, hour, minute int, loc *time.Location, now func() time.Time) *AttendanceJobs {
	if now == nil {
		now = time.Now
	}
	return &AttendanceJobs{
		reconciler: reconciler,
		hour:       hour,
		minute:     minute,
		loc:        loc,
		now:        now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddDailyJob("reconcile_attendance", j.hour, j.minute, j.loc, j.ReconcileAttendance)
}

// ReconcileAttendance closes out the current local day.
func (j *AttendanceJobs) ReconcileAttendance(ctx context.Context) error {
	local := j.now().In(j.loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)

	slog.Info("Cron: Starting attendance reconciliation", "day", day.Format("2006-01-02"))

	result, err := j.reconciler.Reconcile(ctx, day)
	if err != nil {
		return fmt.Errorf("reconcile attendance: %w", err)
	}

	slog.Info("Cron: Reconciled attendance",
		"day", day.Format("2006-01-02"),
		"scanned", result.Scanned,
		"absent", result.Absent,
		"on_leave", result.OnLeave,
		"existing", result.Existing,
		"failed", result.Failed)
	return nil
}
