package market

import (
	"context"
	"sync"
	"time"

	"advisor-backend/internal/shared/metrics"
	"advisor-backend/internal/shared/telemetry"
)

// FallbackReason is the resolved-state reason reported when no snapshot
// could be fetched.
const FallbackReason = "无法获取实时数据"

// Service owns the current market view. It starts pending and resolves
// on the first Refresh, either to a classified snapshot or to the
// Choppy fallback. Reads and refreshes may race; the mutex keeps the
// snapshot and its analysis consistent with each other.
type Service struct {
	source Source

	mu          sync.RWMutex
	snapshot    *Snapshot
	analysis    Analysis
	lastUpdated time.Time
	resolved    bool
	healthy     bool
}

// NewService constructs a Service. No fetch happens until Refresh.
func NewService(source Source) *Service {
	return &Service{source: source}
}

// Refresh fetches a snapshot and reclassifies. On failure the service
// resolves to the Choppy fallback so downstream consumers never block
// on a pending condition; the fetch error is still returned.
func (s *Service) Refresh(ctx context.Context) error {
	snap, err := s.source.Fetch(ctx)
	if err != nil {
		metrics.IncMarketRefreshFailed()
		telemetry.Error("market refresh failed", map[string]any{"error": err.Error()})

		s.mu.Lock()
		if s.snapshot == nil {
			s.analysis = Analysis{Condition: Choppy, Reason: FallbackReason, Confidence: "中"}
			s.lastUpdated = time.Now()
			s.resolved = true
			s.healthy = false
		}
		s.mu.Unlock()
		return err
	}

	analysis := Classify(snap.CS300Index.Change)
	metrics.IncMarketRefresh()
	telemetry.Info("market refreshed", map[string]any{
		"condition":        string(analysis.Condition),
		"six_month_change": snap.CS300Index.Change,
	})

	s.mu.Lock()
	s.snapshot = &snap
	s.analysis = analysis
	s.lastUpdated = time.Now()
	s.resolved = true
	s.healthy = true
	s.mu.Unlock()
	return nil
}

// Snapshot returns the last fetched snapshot with its analysis. ok is
// false while pending or when every fetch so far has failed.
func (s *Service) Snapshot() (Snapshot, Analysis, time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return Snapshot{}, Analysis{}, time.Time{}, false
	}
	return *s.snapshot, s.analysis, s.lastUpdated, true
}

// Healthy reports whether the current view comes from a live fetch
// rather than the fallback.
func (s *Service) Healthy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.healthy
}

// State returns the resolved market view. Before the first Refresh the
// state is unresolved and callers should treat the condition as Choppy.
func (s *Service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := State{
		Resolved:    s.resolved,
		Condition:   s.analysis.Condition,
		Reason:      s.analysis.Reason,
		LastUpdated: s.lastUpdated,
	}
	if s.snapshot != nil {
		st.Change = s.snapshot.CS300Index.Change
	}
	if !s.resolved {
		st.Condition = Choppy
		st.Reason = FallbackReason
	}
	return st
}
