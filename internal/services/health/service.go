package health

import (
	"context"
	"database/sql"
	"time"
)

// Service encapsulates health-related checks.
type Service struct {
	DB     *sql.DB
	Market MarketProbe
}

// MarketProbe reports whether live market data has been fetched.
type MarketProbe interface {
	Healthy() bool
}

// NewService constructs a new health service.
func NewService(db *sql.DB, market MarketProbe) *Service {
	return &Service{DB: db, Market: market}
}

// Status returns the health payload. The process is "ok" as long as it
// is serving; component states are reported individually.
func (s *Service) Status(ctx context.Context) map[string]any {
	status := map[string]any{"ok": true}

	if s.DB != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := s.DB.PingContext(pingCtx); err != nil {
			status["database"] = "down"
		} else {
			status["database"] = "up"
		}
	} else {
		status["database"] = "memory"
	}

	if s.Market != nil {
		if s.Market.Healthy() {
			status["market"] = "live"
		} else {
			status["market"] = "fallback"
		}
	}

	return status
}
