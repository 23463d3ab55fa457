// Package janitor periodically removes accounts that never completed
// verification, bounding the lifetime of pending users and their codes.
package janitor

import (
	"context"
	"log/slog"
	"time"

	"github.com/adilbekov/timetrack/internal/metrics"
	"github.com/adilbekov/timetrack/internal/repository"
	"github.com/robfig/cron/v3"
)

const (
	schedule   = "@hourly"
	pendingTTL = 7 * 24 * time.Hour
	sweepLimit = 30 * time.Second
)

type Janitor struct {
	users  repository.UserRepository
	logger *slog.Logger
	cron   *cron.Cron
}

func New(users repository.UserRepository, logger *slog.Logger) *Janitor {
	return &Janitor{
		users:  users,
		logger: logger.With("component", "janitor"),
		cron:   cron.New(),
	}
}

// Start schedules the hourly sweep. Call Stop to drain it on shutdown.
func (j *Janitor) Start() error {
	if _, err := j.cron.AddFunc(schedule, j.sweep); err != nil {
		return err
	}
	j.cron.Start()
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (j *Janitor) Stop() {
	<-j.cron.Stop().Done()
}

func (j *Janitor) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepLimit)
	defer cancel()

	cutoff := time.Now().Add(-pendingTTL)
	deleted, err := j.users.DeleteStalePending(ctx, cutoff)
	if err != nil {
		j.logger.Error("stale pending sweep", "error", err)
		return
	}

	if deleted > 0 {
		metrics.StalePendingDeletedTotal.Add(float64(deleted))
		j.logger.Info("removed stale unverified accounts", "count", deleted)
	}
}
