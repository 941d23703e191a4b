package batch

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/debatelab/speakerkit/batch"

// metrics holds the batch instruments. Built against the metric API only;
// without an SDK in the process they are no-ops.
type metrics struct {
	processed metric.Int64Counter
	failed    metric.Int64Counter
	duration  metric.Float64Histogram
}

func newMetrics() (*metrics, error) {
	meter := otel.Meter(meterName)

	processed, err := meter.Int64Counter("speakerkit.batch.processed",
		metric.WithDescription("Transcript payloads processed successfully"))
	if err != nil {
		return nil, err
	}
	failed, err := meter.Int64Counter("speakerkit.batch.failed",
		metric.WithDescription("Transcript payloads that failed processing"))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("speakerkit.batch.entry.duration",
		metric.WithDescription("Per-entry processing duration"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	return &metrics{processed: processed, failed: failed, duration: duration}, nil
}

func (m *metrics) recordSuccess(ctx context.Context, scheme string, seconds float64) {
	attrs := metric.WithAttributes(attribute.String("scheme", scheme))
	m.processed.Add(ctx, 1, attrs)
	m.duration.Record(ctx, seconds, attrs)
}

func (m *metrics) recordFailure(ctx context.Context, scheme, code string, seconds float64) {
	attrs := metric.WithAttributes(
		attribute.String("scheme", scheme),
		attribute.String("code", code),
	)
	m.failed.Add(ctx, 1, attrs)
	m.duration.Record(ctx, seconds, attrs)
}
