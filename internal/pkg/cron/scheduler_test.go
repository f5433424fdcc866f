package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webwhiz/hrms-backend/internal/domain/attendance"
)

func TestDailyAt_Next(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	at := DailyAt{Hour: 23, Minute: 0, Location: loc}

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "later today",
			now:  time.Date(2025, 6, 3, 9, 0, 0, 0, loc),
			want: time.Date(2025, 6, 3, 23, 0, 0, 0, loc),
		},
		{
			name: "exactly at run time rolls to tomorrow",
			now:  time.Date(2025, 6, 3, 23, 0, 0, 0, loc),
			want: time.Date(2025, 6, 4, 23, 0, 0, 0, loc),
		},
		{
			name: "after run time",
			now:  time.Date(2025, 6, 3, 23, 30, 0, 0, loc),
			want: time.Date(2025, 6, 4, 23, 0, 0, 0, loc),
		},
		{
			name: "month end",
			now:  time.Date(2025, 6, 30, 23, 59, 0, 0, loc),
			want: time.Date(2025, 7, 1, 23, 0, 0, 0, loc),
		},
		{
			name: "input in another zone",
			// 18:00 UTC is 23:30 IST
			now:  time.Date(2025, 6, 3, 18, 0, 0, 0, time.UTC),
			want: time.Date(2025, 6, 4, 23, 0, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(at.Next(tt.now)), "got %s want %s", at.Next(tt.now), tt.want)
		})
	}
}

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler()

	var calls atomic.Int32
	s.AddDailyJob("ok", 3, 0, time.UTC, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})
	s.AddDailyJob("failing", 23, 0, time.UTC, func(ctx context.Context) error {
		calls.Add(1)
		return errors.New("boom")
	})

	// a failing job does not stop the others
	s.RunOnce(context.Background())
	assert.Equal(t, int32(2), calls.Load())
}

func TestScheduler_StartStop(t *testing.T) {
	// The clock starts just before 03:00 UTC and advances with real time.
	base := time.Date(2025, 6, 3, 2, 59, 59, int(900*time.Millisecond), time.UTC)
	started := time.Now()
	s := NewSchedulerWithClock(func() time.Time { return base.Add(time.Since(started)) })

	ran := make(chan struct{}, 1)
	s.AddDailyJob("daily", 3, 0, time.UTC, func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})
	s.AddDailyJob("tonight", 23, 0, time.UTC, func(ctx context.Context) error {
		t.Error("job ran before its time")
		return nil
	})

	s.Start()

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("daily job did not run at its time")
	}

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
}

type fakeReconciler struct {
	days []time.Time
	err  error
}

func (f *fakeReconciler) Reconcile(ctx context.Context, day time.Time) (attendance.ReconcileResult, error) {
	f.days = append(f.days, day)
	return attendance.ReconcileResult{Day: day, Scanned: 3, Absent: 1}, f.err
}

func TestAttendanceJobs_ReconcileUsesLocalDay(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	// 19:00 UTC on the 3rd is 00:30 IST on the 4th
	now := func() time.Time { return time.Date(2025, 6, 3, 19, 0, 0, 0, time.UTC) }
	rec := &fakeReconciler{}
	jobs := NewAttendanceJobs(rec, 23, 0, loc, now)

	require.NoError(t, jobs.ReconcileAttendance(context.Background()))
	require.Len(t, rec.days, 1)
	assert.Equal(t, "2025-06-04", rec.days[0].Format("2006-01-02"))
}

func TestAttendanceJobs_RegisterAndPropagateError(t *testing.T) {
	rec := &fakeReconciler{err: errors.New("db down")}
	jobs := NewAttendanceJobs(rec, 23, 0, time.UTC, nil)

	s := NewScheduler()
	jobs.RegisterJobs(s)
	require.Len(t, s.jobs, 1)
	assert.Equal(t, "reconcile_attendance", s.jobs[0].Name)
	assert.Equal(t, 23, s.jobs[0].Daily.Hour)
	assert.Equal(t, time.UTC, s.jobs[0].Daily.Location)

	assert.Error(t, jobs.ReconcileAttendance(context.Background()))
}
