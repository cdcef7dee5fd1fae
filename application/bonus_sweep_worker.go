package application

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// BonusSweepWorker runs the periodic bonus expiration sweep.
type BonusSweepWorker struct {
	bonusHandler *BonusHandler
	cron         *cron.Cron
	spec         string
}

// NewBonusSweepWorker creates a new sweep worker with a cron spec like
// "0 3 * * *" (daily at 03:00 UTC).
func NewBonusSweepWorker(bonusHandler *BonusHandler, spec string) *BonusSweepWorker {
	return &BonusSweepWorker{
		bonusHandler: bonusHandler,
		cron:         cron.New(cron.WithLocation(time.UTC)),
		spec:         spec,
	}
}

// Start schedules the sweep and begins the cron loop. An initial sweep
// runs immediately so a long-stopped instance catches up on startup.
func (w *BonusSweepWorker) Start(ctx context.Context) error {
	if _, err := w.cron.AddFunc(w.spec, func() {
		w.runSweep(ctx)
	}); err != nil {
		return fmt.Errorf("invalid bonus sweep cron spec %q: %w", w.spec, err)
	}

	go w.runSweep(ctx)
	w.cron.Start()
	log.WithField("spec", w.spec).Info("Bonus sweep worker started")
	return nil
}

// Stop halts the cron loop and waits for a running sweep to finish.
func (w *BonusSweepWorker) Stop() {
	stopCtx := w.cron.Stop()
	<-stopCtx.Done()
	log.Info("Bonus sweep worker stopped")
}

func (w *BonusSweepWorker) runSweep(ctx context.Context) {
	count, err := w.bonusHandler.SweepExpired(ctx, time.Now().UTC())
	if err != nil {
		log.WithError(err).Error("Bonus expiration sweep failed")
		return
	}
	if count > 0 {
		log.WithField("expired", count).Info("Bonus expiration sweep completed")
	}
}
