// Package scheduler runs the storage janitor on a daily cron.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"

	"casa-certa-portal/internal/cleanup"
	"casa-certa-portal/internal/config"
)

// Scheduler drives the daily janitor run.
type Scheduler struct {
	cron      *cron.Cron
	janitor   *cleanup.Service
	cfg       config.CleanupConfig
	isRunning bool
}

// NewScheduler creates a new scheduler.
func NewScheduler(janitor *cleanup.Service, cfg config.CleanupConfig) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		janitor: janitor,
		cfg:     cfg,
	}
}

// Start registers the daily job and starts the cron loop. A disabled
// janitor makes Start a no-op.
func (s *Scheduler) Start() error {
	if !s.cfg.Enabled {
		slog.Info("scheduler: janitor is disabled in configuration")
		return nil
	}

	cronSpec := parseDailyRunTime(s.cfg.DailyRunTime)

	_, err := s.cron.AddFunc(cronSpec, func() {
		slog.Info("scheduler: starting daily janitor run")
		result, err := s.janitor.Run(context.Background())
		if err != nil {
			slog.Error("scheduler: janitor run failed", "error", err)
			return
		}
		slog.Info("scheduler: janitor run finished",
			"scanned", result.ScannedCount, "deleted", result.DeletedCount, "errors", result.ErrorCount)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.isRunning = true
	slog.Info("scheduler: started", "daily_run_time", s.cfg.DailyRunTime, "cron", cronSpec)

	return nil
}

// Stop stops the cron loop.
func (s *Scheduler) Stop() {
	if s.isRunning {
		s.cron.Stop()
		s.isRunning = false
		slog.Info("scheduler: stopped")
	}
}

// RunNow triggers a janitor pass outside the schedule.
func (s *Scheduler) RunNow(ctx context.Context) (*cleanup.Result, error) {
	return s.janitor.Run(ctx)
}

// parseDailyRunTime converts "HH:MM" into a cron spec, defaulting to
// 03:00 on malformed input.
func parseDailyRunTime(t string) string {
	parts := strings.Split(t, ":")
	if len(parts) == 2 {
		hour, errH := strconv.Atoi(parts[0])
		minute, errM := strconv.Atoi(parts[1])
		if errH == nil && errM == nil && hour >= 0 && hour <= 23 && minute >= 0 && minute <= 59 {
			return fmt.Sprintf("%d %d * * *", minute, hour)
		}
	}
	slog.Warn("scheduler: invalid daily run time, using 03:00", "value", t)
	return "0 3 * * *"
}
