package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	util "hrms-portal/pkg/utils"
)

// sweepTimeout bounds a single eviction run.
const sweepTimeout = 30 * time.Second

// ExpiredSweeper removes OTP challenges past their expiry.
type ExpiredSweeper interface {
	SweepExpired(ctx context.Context) (int64, error)
}

// OTPEviction periodically purges expired OTP challenges. The MongoDB TTL
// index does the same eventually; this job keeps the memory store bounded and
// tightens the Mongo window.
type OTPEviction struct {
	cron    *cron.Cron
	sweeper ExpiredSweeper
}

func NewOTPEviction(sweeper ExpiredSweeper, schedule string) (*OTPEviction, error) {
	e := &OTPEviction{cron: cron.New(), sweeper: sweeper}
	if _, err := e.cron.AddFunc(schedule, e.RunOnce); err != nil {
		return nil, fmt.Errorf("failed to schedule otp eviction %q: %w", schedule, err)
	}
	return e, nil
}

// RunOnce performs a single sweep and logs the outcome.
func (e *OTPEviction) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	removed, err := e.sweeper.SweepExpired(ctx)
	if err != nil {
		util.Logger.WithError(err).Error("Scheduled OTP eviction failed")
		return
	}
	if removed > 0 {
		util.Logger.WithField("removed", removed).Debug("Evicted expired OTP challenges")
	}
}

func (e *OTPEviction) Start() {
	e.cron.Start()
}

// Stop halts the schedule and waits for a running sweep to finish or ctx to
// be done.
func (e *OTPEviction) Stop(ctx context.Context) {
	select {
	case <-e.cron.Stop().Done():
	case <-ctx.Done():
		util.Logger.Warn("OTP eviction did not stop before shutdown deadline")
	}
}
