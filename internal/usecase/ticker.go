package usecase

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

// AccrualTicker accrues study time while sessions are open: one recurring
// job per session, each firing adding one second to the owning user's total.
// Each tick is an independent read-modify-write round trip; there is no
// batching and no backoff, and a failed tick is only logged.
type AccrualTicker struct {
	scheduler *gocron.Scheduler
	progress  ProgressUsecase
	logger    *logrus.Logger
	interval  time.Duration
}

// NewAccrualTicker starts the underlying scheduler. The interval is one
// second in production; tests shorten it.
func NewAccrualTicker(progress ProgressUsecase, logger *logrus.Logger, interval time.Duration) *AccrualTicker {
	if interval <= 0 {
		interval = time.Second
	}
	scheduler := gocron.NewScheduler(time.UTC)
	scheduler.StartAsync()
	return &AccrualTicker{
		scheduler: scheduler,
		progress:  progress,
		logger:    logger,
		interval:  interval,
	}
}

// Track begins accruing time for a session. The session id doubles as the
// job tag so Release can cancel exactly this session's job.
func (t *AccrualTicker) Track(sessionID, userID string) error {
	_, err := t.scheduler.Every(t.interval).Tag(sessionID).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), t.interval*10)
		defer cancel()
		if _, err := t.progress.AccrueTime(ctx, userID, 1); err != nil {
			t.logger.WithField("user", userID).WithError(err).Warn("time accrual tick failed")
		}
	})
	return err
}

// Release cancels the session's accrual job. Cancellation is unconditional;
// an in-flight tick is not drained.
func (t *AccrualTicker) Release(sessionID string) {
	if err := t.scheduler.RemoveByTag(sessionID); err != nil {
		t.logger.WithField("session", sessionID).WithError(err).Debug("no accrual job to remove")
	}
}

// Stop shuts the scheduler down, cancelling every remaining job.
func (t *AccrualTicker) Stop() {
	t.scheduler.Stop()
}
