package extraction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bacash-backend/internal/receipts"
	"bacash-backend/internal/shared/metrics"
	"bacash-backend/internal/shared/telemetry"
)

// ErrNoRecords indicates a notification that names no created objects.
var ErrNoRecords = errors.New("event contains no records")

// FieldSet maps a summary-field label to its detected value, e.g.
// {"VENDOR_NAME": "Acme", "TOTAL": "12.99"}.
type FieldSet map[string]string

// Processor turns a storage-creation notification into extracted expense
// fields. It is stateless between invocations; concurrent events for
// different uploads are fully independent.
type Processor struct {
	Analyzer ExpenseAnalyzer
	Repo     receipts.Repo // nil disables persistence; results are logged only
}

// ProcessEvent handles every record in the notification and returns the
// field set of the first one. Any record failing fails the invocation;
// redelivery is the event system's job, and persisted records are keyed by
// object key so a replay cannot duplicate them.
func (p *Processor) ProcessEvent(ctx context.Context, ev Event) (FieldSet, error) {
	if len(ev.Records) == 0 {
		return nil, ErrNoRecords
	}

	var first FieldSet
	for i, rec := range ev.Records {
		fields, err := p.ProcessRecord(ctx, rec)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			first = fields
		}
	}
	return first, nil
}

// ProcessRecord analyzes one uploaded object and returns its field set. The
// object's bytes never flow through this process; the analyzer operates on
// the stored object by reference.
func (p *Processor) ProcessRecord(ctx context.Context, rec Record) (FieldSet, error) {
	bucket := rec.S3.Bucket.Name
	key, err := DecodeObjectKey(rec.S3.Object.Key)
	if err != nil {
		return nil, fmt.Errorf("decode object key %q: %w", rec.S3.Object.Key, err)
	}

	telemetry.Info("extraction.analyze.start", map[string]any{
		"bucket":     bucket,
		"object_key": key,
	})

	start := time.Now()
	docs, err := p.Analyzer.AnalyzeExpense(ctx, bucket, key)
	if err != nil {
		metrics.IncReceiptFailed()
		telemetry.Error("extraction.analyze.failed", map[string]any{
			"bucket":     bucket,
			"object_key": key,
			"error":      err.Error(),
		})
		return nil, err
	}
	metrics.ObserveExtractionDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)

	fields := foldSummaryFields(docs)

	telemetry.Info("extraction.analyze.complete", map[string]any{
		"bucket":      bucket,
		"object_key":  key,
		"field_count": len(fields),
	})

	if p.Repo != nil {
		ex := receipts.Extraction{
			ID:          uuid.NewString(),
			Bucket:      bucket,
			ObjectKey:   key,
			Fields:      fields,
			ProcessedAt: time.Now().UTC(),
		}
		if err := p.Repo.Upsert(ctx, ex); err != nil {
			metrics.IncReceiptFailed()
			return nil, fmt.Errorf("store extraction for %s: %w", key, err)
		}
	}

	metrics.IncReceiptProcessed()
	return fields, nil
}

// foldSummaryFields flattens the first detected expense document into a
// label-to-value mapping. Fields missing either a type label or a detected
// value are skipped; a repeated label overwrites the earlier value. Zero
// documents fold to an empty set, which is a success, not an error.
func foldSummaryFields(docs []ExpenseDocument) FieldSet {
	fields := FieldSet{}
	if len(docs) == 0 {
		return fields
	}
	for _, sf := range docs[0].SummaryFields {
		if sf.Type == "" || sf.Value == "" {
			continue
		}
		fields[sf.Type] = sf.Value
	}
	return fields
}
