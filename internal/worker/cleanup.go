// Package worker contains background maintenance jobs.
package worker

import (
	"context"
	"time"

	"github.com/dtroode/auth-service/internal/logger"
)

// ExpiredDeleter removes refresh-token rows past their expiry.
type ExpiredDeleter interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// Cleanup periodically purges expired refresh tokens. Expiry is enforced at
// read time, so this is storage hygiene only; a missed run never changes
// authentication behavior.
type Cleanup struct {
	store    ExpiredDeleter
	interval time.Duration
	logger   *logger.Logger
}

// NewCleanup creates a new Cleanup worker.
func NewCleanup(store ExpiredDeleter, interval time.Duration, logger *logger.Logger) *Cleanup {
	return &Cleanup{store: store, interval: interval, logger: logger}
}

// Run sweeps on the configured interval until ctx is canceled.
func (c *Cleanup) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.logger.Info("Cleanup worker: started",
		"interval", c.interval.String())

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Cleanup worker: stopped")
			return
		case <-ticker.C:
			c.sweep(ctx)
		}
	}
}

func (c *Cleanup) sweep(ctx context.Context) {
	deleted, err := c.store.DeleteExpired(ctx)
	if err != nil {
		c.logger.Error("Cleanup worker: sweep failed",
			"error", err.Error())
		return
	}

	if deleted > 0 {
		c.logger.Info("Cleanup worker: purged expired tokens",
			"deleted", deleted)
	}
}
