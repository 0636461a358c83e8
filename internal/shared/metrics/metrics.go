package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	recommendationsTotal     atomic.Uint64
	marketRefreshTotal       atomic.Uint64
	marketRefreshFailedTotal atomic.Uint64
	resetMailsEnqueuedTotal  atomic.Uint64
	resetMailsSentTotal      atomic.Uint64
	resetMailsFailedTotal    atomic.Uint64

	mailJobsReceivedTotal             atomic.Uint64
	mailJobsDeletedUnrecoverableTotal atomic.Uint64

	recommendationDuration = newHistogram([]float64{1, 5, 10, 25, 50, 100, 250, 500, 1000})
)

// IncRecommendations increments the generated-recommendations counter.
func IncRecommendations() {
	recommendationsTotal.Add(1)
}

// IncMarketRefresh increments the market refresh counter.
func IncMarketRefresh() {
	marketRefreshTotal.Add(1)
}

// IncMarketRefreshFailed increments the failed market refresh counter.
func IncMarketRefreshFailed() {
	marketRefreshFailedTotal.Add(1)
}

// IncResetMailsEnqueued increments the enqueued reset-mail counter.
func IncResetMailsEnqueued() {
	resetMailsEnqueuedTotal.Add(1)
}

// IncResetMailsSent increments the delivered reset-mail counter.
func IncResetMailsSent() {
	resetMailsSentTotal.Add(1)
}

// IncResetMailsFailed increments the failed reset-mail counter.
func IncResetMailsFailed() {
	resetMailsFailedTotal.Add(1)
}

// IncMailJobsReceived increments the received mail-job counter.
func IncMailJobsReceived() {
	mailJobsReceivedTotal.Add(1)
}

// IncMailJobsDeletedUnrecoverable increments the counter for jobs
// dropped because they can never succeed.
func IncMailJobsDeletedUnrecoverable() {
	mailJobsDeletedUnrecoverableTotal.Add(1)
}

// ObserveRecommendationDurationMs records a recommendation duration in milliseconds.
func ObserveRecommendationDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	recommendationDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "recommendations_generated_total", "Total portfolio recommendations generated", recommendationsTotal.Load())
	writeCounter(&buf, "market_refresh_total", "Total market snapshot refreshes", marketRefreshTotal.Load())
	writeCounter(&buf, "market_refresh_failed_total", "Total failed market snapshot refreshes", marketRefreshFailedTotal.Load())
	writeCounter(&buf, "reset_mails_enqueued_total", "Total password reset mails enqueued", resetMailsEnqueuedTotal.Load())
	writeCounter(&buf, "reset_mails_sent_total", "Total password reset mails delivered", resetMailsSentTotal.Load())
	writeCounter(&buf, "reset_mails_failed_total", "Total password reset mails failed", resetMailsFailedTotal.Load())
	writeCounter(&buf, "mail_jobs_received_total", "Total mail jobs received from the queue", mailJobsReceivedTotal.Load())
	writeCounter(&buf, "mail_jobs_deleted_unrecoverable_total", "Total unrecoverable mail jobs dropped", mailJobsDeletedUnrecoverableTotal.Load())
	writeHistogram(&buf, "recommendation_duration_ms", "Recommendation generation duration in milliseconds", recommendationDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// NowMillis returns current time in milliseconds, useful for callers without time utilities.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
