package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lmittmann/tint"
	"github.com/robfig/cron/v3"
)

type Job func(ctx context.Context)

// Scheduler runs a job once a day at a fixed wall-clock time.
type Scheduler struct {
	cron     *cron.Cron
	schedule cron.Schedule
	job      Job

	mu  sync.Mutex
	ctx context.Context
}

// NewDaily fires job every day at hour:minute in loc. The zone is part of the
// schedule itself, so the cron runner's own location does not matter.
func NewDaily(loc *time.Location, hour int, minute int, job Job) (*Scheduler, error) {
	spec := fmt.Sprintf("CRON_TZ=%s %d %d * * *", loc, minute, hour)
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid daily schedule %q: %w", spec, err)
	}
	logger := cronLogger{}
	s := &Scheduler{
		cron:     cron.New(cron.WithLogger(logger), cron.WithChain(cron.Recover(logger))),
		schedule: schedule,
		job:      job,
		ctx:      context.Background(),
	}
	s.cron.Schedule(schedule, cron.FuncJob(s.run))
	return s, nil
}

// Start begins firing the job. ctx is handed to every run.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()
	s.cron.Start()
	slog.Info("flights: scheduler started", slog.Time("next", s.Next(time.Now())))
}

// Stop prevents new runs and waits for running ones until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) Next(from time.Time) time.Time {
	return s.schedule.Next(from)
}

func (s *Scheduler) run() {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()
	s.job(ctx)
}

type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	slog.Debug("flights: cron "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	slog.Error("flights: cron "+msg, append(keysAndValues, tint.Err(err))...)
}
