package market

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"advisor-backend/internal/shared/telemetry"
)

// Refresher re-fetches the market snapshot on a fixed interval so the
// served condition does not go stale between requests.
type Refresher struct {
	Cron    *cron.Cron
	Svc     *Service
	Timeout time.Duration
}

// NewRefresher creates a Refresher ticking every interval.
func NewRefresher(svc *Service, interval time.Duration) (*Refresher, error) {
	r := &Refresher{
		Cron:    cron.New(),
		Svc:     svc,
		Timeout: 10 * time.Second,
	}
	if _, err := r.Cron.AddFunc("@every "+interval.String(), r.refresh); err != nil {
		return nil, fmt.Errorf("register market refresh: %w", err)
	}
	return r, nil
}

// Start runs an immediate refresh, then starts the schedule.
func (r *Refresher) Start() {
	r.refresh()
	r.Cron.Start()
	telemetry.Info("market refresher started", nil)
}

// Stop stops the schedule and waits for a running refresh to finish.
func (r *Refresher) Stop() {
	ctx := r.Cron.Stop()
	<-ctx.Done()
	telemetry.Info("market refresher stopped", nil)
}

func (r *Refresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), r.Timeout)
	defer cancel()
	if err := r.Svc.Refresh(ctx); err != nil {
		telemetry.Warn("scheduled market refresh failed", map[string]any{"error": err.Error()})
	}
}
