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
	applicationsReceivedTotal atomic.Uint64
	statusChangesTotal        atomic.Uint64
	notificationsSentTotal    atomic.Uint64
	notificationsFailedTotal  atomic.Uint64

	notifyDuration = newHistogram([]float64{25, 50, 100, 250, 500, 1000, 2500, 5000, 10000})
)

// IncApplicationsReceived increments the applications counter.
func IncApplicationsReceived() {
	applicationsReceivedTotal.Add(1)
}

// IncStatusChanges increments the candidate status change counter.
func IncStatusChanges() {
	statusChangesTotal.Add(1)
}

// IncNotificationsSent increments the sent-notification counter.
func IncNotificationsSent() {
	notificationsSentTotal.Add(1)
}

// IncNotificationsFailed increments the failed-notification counter.
func IncNotificationsFailed() {
	notificationsFailedTotal.Add(1)
}

// ObserveNotifyDurationMs records a notification dispatch duration.
func ObserveNotifyDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	notifyDuration.Observe(value)
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
	writeCounter(&buf, "applications_received_total", "Total candidate applications received", applicationsReceivedTotal.Load())
	writeCounter(&buf, "candidate_status_changes_total", "Total candidate status changes", statusChangesTotal.Load())
	writeCounter(&buf, "notifications_sent_total", "Total notification emails sent", notificationsSentTotal.Load())
	writeCounter(&buf, "notifications_failed_total", "Total notification emails failed", notificationsFailedTotal.Load())
	writeHistogram(&buf, "notification_dispatch_ms", "Notification dispatch duration in milliseconds", notifyDuration.Snapshot())
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
