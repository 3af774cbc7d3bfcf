package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is one scheduled task. next computes the run time that follows now.
type Job struct {
	Name string
	Fn   func(ctx context.Context) error
	next func(now time.Time) time.Time
}

// Scheduler runs registered jobs on their schedules until stopped.
type Scheduler struct {
	jobs   []Job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewScheduler creates a new cron scheduler
func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		jobs:   make([]Job, 0),
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddJob registers a job that runs every interval.
func (s *Scheduler) AddJob(name string, interval time.Duration, fn func(ctx context.Context) error) {
	s.add(Job{
		Name: name,
		Fn:   fn,
		next: func(now time.Time) time.Time { return now.Add(interval) },
	})
	slog.Info("Cron job registered", "name", name, "interval", interval)
}

// AddDailyJob registers a job that runs once per day at hourUTC.
func (s *Scheduler) AddDailyJob(name string, hourUTC int, fn func(ctx context.Context) error) {
	s.add(Job{
		Name: name,
		Fn:   fn,
		next: func(now time.Time) time.Time { return nextDailyRun(now, hourUTC) },
	})
	slog.Info("Cron job registered", "name", name, "hour_utc", hourUTC)
}

func (s *Scheduler) add(job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, job)
}

// nextDailyRun returns the next occurrence of hourUTC strictly after now, so
// a job firing exactly at its hour schedules the following day.
func nextDailyRun(now time.Time, hourUTC int) time.Time {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), hourUTC, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Start begins running all scheduled jobs
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runJob(job)
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

// runJob sleeps until the job's next run time, executes it, and repeats.
func (s *Scheduler) runJob(job Job) {
	defer s.wg.Done()

	for {
		timer := time.NewTimer(time.Until(job.next(time.Now())))

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
