package telemetry

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/bnema/ocicomp/internal/domain"
)

// Metrics holds the ocicomp metric instruments.
type Metrics struct {
	Operations        metric.Int64Counter
	OperationDuration metric.Float64Histogram
	PushBytes         metric.Int64Counter
	RegistryRequests  metric.Int64Counter
}

// NewMetrics creates and registers all metric instruments on the global meter
// provider. OTel hands out noop instruments when no provider is configured.
func NewMetrics() (*Metrics, error) {
	return newMetrics(otel.Meter("ocicomp"))
}

func newMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	if m.Operations, err = meter.Int64Counter("ocicomp.component.operations",
		metric.WithDescription("Component operations by outcome")); err != nil {
		return nil, err
	}
	if m.OperationDuration, err = meter.Float64Histogram("ocicomp.component.operation.duration_seconds",
		metric.WithDescription("Component operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.05, 0.1, 0.5, 1, 5, 10, 30, 60)); err != nil {
		return nil, err
	}
	if m.PushBytes, err = meter.Int64Counter("ocicomp.component.push.bytes",
		metric.WithDescription("Total blob bytes uploaded to the registry"),
		metric.WithUnit("By")); err != nil {
		return nil, err
	}
	if m.RegistryRequests, err = meter.Int64Counter("ocicomp.registry.requests",
		metric.WithDescription("Registry requests by method and status")); err != nil {
		return nil, err
	}

	return m, nil
}

// RecordOperation counts one operation and its duration. The outcome is "ok"
// or the error kind.
func (m *Metrics) RecordOperation(ctx context.Context, operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = domain.ErrorKind(err)
	}
	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	)
	m.Operations.Add(ctx, 1, attrs)
	m.OperationDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordPushBytes adds n uploaded bytes.
func (m *Metrics) RecordPushBytes(ctx context.Context, n int64) {
	if m == nil {
		return
	}
	m.PushBytes.Add(ctx, n)
}

// RecordRegistryRequest counts one registry request. A zero status means the
// request never got a response.
func (m *Metrics) RecordRegistryRequest(ctx context.Context, method string, status int) {
	if m == nil {
		return
	}
	code := "error"
	if status != 0 {
		code = strconv.Itoa(status)
	}
	m.RegistryRequests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("status", code),
	))
}
