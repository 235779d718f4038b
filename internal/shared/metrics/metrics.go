package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	uploadURLsIssuedTotal    atomic.Uint64
	uploadURLFailuresTotal   atomic.Uint64
	eventsReceivedTotal      atomic.Uint64
	eventsUnrecoverableTotal atomic.Uint64
	receiptsProcessedTotal   atomic.Uint64
	receiptsFailedTotal      atomic.Uint64

	extractionDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncUploadURLIssued increments the issued upload credential counter.
func IncUploadURLIssued() {
	uploadURLsIssuedTotal.Add(1)
}

// IncUploadURLFailed increments the failed upload credential counter.
func IncUploadURLFailed() {
	uploadURLFailuresTotal.Add(1)
}

// IncEventReceived increments the received storage notification counter.
func IncEventReceived() {
	eventsReceivedTotal.Add(1)
}

// IncEventUnrecoverable increments the counter for dropped malformed events.
func IncEventUnrecoverable() {
	eventsUnrecoverableTotal.Add(1)
}

// IncReceiptProcessed increments the processed receipt counter.
func IncReceiptProcessed() {
	receiptsProcessedTotal.Add(1)
}

// IncReceiptFailed increments the failed receipt counter.
func IncReceiptFailed() {
	receiptsFailedTotal.Add(1)
}

// ObserveExtractionDurationMs records one extraction duration in milliseconds.
func ObserveExtractionDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	extractionDuration.Observe(value)
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
	writeCounter(&buf, "upload_urls_issued_total", "Total upload credentials issued", uploadURLsIssuedTotal.Load())
	writeCounter(&buf, "upload_url_failures_total", "Total upload credential failures", uploadURLFailuresTotal.Load())
	writeCounter(&buf, "events_received_total", "Total storage notifications received", eventsReceivedTotal.Load())
	writeCounter(&buf, "events_unrecoverable_total", "Total malformed notifications dropped", eventsUnrecoverableTotal.Load())
	writeCounter(&buf, "receipts_processed_total", "Total receipts processed", receiptsProcessedTotal.Load())
	writeCounter(&buf, "receipts_failed_total", "Total receipts failed", receiptsFailedTotal.Load())
	writeHistogram(&buf, "extraction_duration_ms", "Expense analysis duration in milliseconds", extractionDuration.Snapshot())
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
