package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"alfredoptarigan/talentscout/internal/repositories"
)

// Janitor periodically drops sessions nobody has touched for longer than the TTL.
type Janitor interface {
	Start(ctx context.Context)
	Stop()
	Sweep(ctx context.Context) int
}

type janitor struct {
	sessionRepo repositories.SessionRepository
	ttl         time.Duration
	interval    time.Duration
	log         *slog.Logger
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once
	now         func() time.Time
}

func NewJanitor(
	sessionRepo repositories.SessionRepository,
	ttl time.Duration,
	interval time.Duration,
	log *slog.Logger,
) Janitor {
	return &janitor{
		sessionRepo: sessionRepo,
		ttl:         ttl,
		interval:    interval,
		log:         log,
		stopChan:    make(chan struct{}),
		now:         time.Now,
	}
}

// Start implements Janitor.
func (j *janitor) Start(ctx context.Context) {
	j.log.Info("session janitor started",
		slog.Duration("ttl", j.ttl),
		slog.Duration("interval", j.interval),
	)

	j.wg.Add(1)
	go j.run(ctx)
}

// Stop implements Janitor.
func (j *janitor) Stop() {
	j.stopOnce.Do(func() {
		close(j.stopChan)
	})
	j.wg.Wait()
	j.log.Info("session janitor stopped")
}

func (j *janitor) run(ctx context.Context) {
	defer j.wg.Done()
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-j.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.Sweep(ctx)
		}
	}
}

// Sweep removes idle sessions once and returns how many went away.
func (j *janitor) Sweep(ctx context.Context) int {
	removed, err := j.sessionRepo.DeleteIdleBefore(ctx, j.now().Add(-j.ttl))
	if err != nil {
		j.log.Warn("failed to remove idle sessions", slog.String("error", err.Error()))
		return 0
	}

	if removed > 0 {
		SessionsExpiredTotal.Add(float64(removed))
		j.log.Info("idle sessions removed", slog.Int("count", removed))
	}
	return removed
}
