package scheduler

import (
	"time"

	"github.com/mohammadh73/restbucks-backend/internal/app/repository"
	"github.com/mohammadh73/restbucks-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// CartJanitor sweeps cart entries that have sat untouched longer than
// maxIdle. Carts are working state, not history; abandoned ones only
// accumulate rows.
type CartJanitor struct {
	cron     *cron.Cron
	cartRepo repository.CartRepository
	schedule string
	maxIdle  time.Duration
}

func NewCartJanitor(cartRepo repository.CartRepository, schedule string, maxIdle time.Duration) *CartJanitor {
	return &CartJanitor{
		cron:     cron.New(),
		cartRepo: cartRepo,
		schedule: schedule,
		maxIdle:  maxIdle,
	}
}

func (j *CartJanitor) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.sweep)
	if err != nil {
		logger.Error("Failed to add cron job for cart janitor", err)
		return err
	}

	j.cron.Start()
	logger.Info("Cart janitor started successfully", map[string]interface{}{
		"schedule": j.schedule,
		"max_idle": j.maxIdle.String(),
	})

	return nil
}

func (j *CartJanitor) Stop() {
	logger.Info("Stopping cart janitor...", nil)
	j.cron.Stop()
	logger.Info("Cart janitor stopped", nil)
}

func (j *CartJanitor) sweep() {
	cutoff := time.Now().Add(-j.maxIdle)
	logger.Info("Starting scheduled cart sweep", map[string]interface{}{
		"cutoff": cutoff,
	})

	removed, err := j.cartRepo.DeleteIdleSince(cutoff)
	if err != nil {
		logger.Error("Failed to sweep idle cart entries", err)
		return
	}

	logger.Info("Cart sweep completed", map[string]interface{}{
		"removed": removed,
	})
}
