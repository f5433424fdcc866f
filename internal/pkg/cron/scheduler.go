package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DailyAt pins a job to a wall-clock time in a location.
type DailyAt struct {
	Hour     int
	Minute   int
	Location *time.Location
}

// Next returns the first occurrence of the wall-clock time strictly after now.
func (d DailyAt) Next(now time.Time) time.Time {
	loc := d.Location
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), d.Hour, d.Minute, 0, 0, loc)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, d.Hour, d.Minute, 0, 0, loc)
	}
	return next
}

// Job is run once a day at its wall-clock time.
type Job struct {
	Name  string
	Daily DailyAt
	Fn    func(ctx context.Context) error
}

// Scheduler manages scheduled jobs
type Scheduler struct {
	jobs   []Job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
	now    func() time.Time
}

// NewScheduler creates a new cron scheduler
func NewScheduler() *Scheduler {
	return NewSchedulerWithClock(time.Now)
}

// NewSchedulerWithClock creates a scheduler that reads the time from now.
func NewSchedulerWithClock(now func() time.Time) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		jobs:   make([]Job, 0),
		ctx:    ctx,
		cancel: cancel,
		now:    now,
	}
}

// AddDailyJob adds a job that runs once a day at hour:minute in loc.
func (s *Scheduler) AddDailyJob(name string, hour, minute int, loc *time.Location, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, Job{
		Name:  name,
		Daily: DailyAt{Hour: hour, Minute: minute, Location: loc},
		Fn:    fn,
	})
	slog.Info("Cron job registered", "name", name, "daily_at", time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC).Format("15:04"), "location", loc.String())
}

// Start begins running all scheduled jobs
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runDailyJob(job)
	}

	slog.Info("Cron scheduler started", "job_count", len(s.jobs))
}

// Stop gracefully stops all scheduled jobs
func (s *Scheduler) Stop() {
	slog.Info("Stopping cron scheduler...")
	s.cancel()
	s.wg.Wait()
	slog.Info("Cron scheduler stopped")
}

// runDailyJob sleeps until each next occurrence of the job's wall-clock time.
func (s *Scheduler) runDailyJob(job Job) {
	defer s.wg.Done()

	for {
		next := job.Daily.Next(s.now())
		timer := time.NewTimer(next.Sub(s.now()))
		slog.Debug("Cron job scheduled", "name", job.Name, "next_run", next)

		select {
		case <-s.ctx.Done():
			timer.Stop()
			slog.Info("Cron job stopping", "name", job.Name)
			return
		case <-timer.C:
			s.executeJob(job)
		}
	}
}

// executeJob executes a job and logs results
func (s *Scheduler) executeJob(job Job) {
	start := time.Now()
	slog.Debug("Cron job starting", "name", job.Name)

	if err := job.Fn(s.ctx); err != nil {
		slog.Error("Cron job failed", "name", job.Name, "error", err, "duration", time.Since(start))
	} else {
		slog.Debug("Cron job completed", "name", job.Name, "duration", time.Since(start))
	}
}

// RunOnce runs all jobs once (useful for testing)
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		if err := job.Fn(ctx); err != nil {
			slog.Error("Cron job failed", "name", job.Name, "error", err)
		}
	}
}
