package otel

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"logviz/chart"
)

// MetricsHandler translates render events into OpenTelemetry metrics. It
// records counters and histograms for chart renders, failures, written
// artifacts, and run durations.
type MetricsHandler struct {
	chartRenders  metric.Int64Counter
	chartFailures metric.Int64Counter
	artifacts     metric.Int64Counter
	chartDuration metric.Float64Histogram
	runDuration   metric.Float64Histogram
}

// NewMetricsHandler creates a MetricsHandler that uses the given meter to
// create instruments for recording render metrics.
func NewMetricsHandler(meter metric.Meter) (*MetricsHandler, error) {
	renders, err := meter.Int64Counter("logviz.chart.renders",
		metric.WithDescription("Number of chart renders"),
	)
	if err != nil {
		return nil, err
	}

	failures, err := meter.Int64Counter("logviz.chart.failures",
		metric.WithDescription("Number of failed chart renders"),
	)
	if err != nil {
		return nil, err
	}

	artifacts, err := meter.Int64Counter("logviz.artifacts.written",
		metric.WithDescription("Number of chart artifacts written"),
	)
	if err != nil {
		return nil, err
	}

	chartDur, err := meter.Float64Histogram("logviz.chart.duration",
		metric.WithDescription("Duration of a chart render in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	runDur, err := meter.Float64Histogram("logviz.run.duration",
		metric.WithDescription("Duration of a full render run in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &MetricsHandler{
		chartRenders:  renders,
		chartFailures: failures,
		artifacts:     artifacts,
		chartDuration: chartDur,
		runDuration:   runDur,
	}, nil
}

// Handle processes a render event and records the appropriate metrics.
func (h *MetricsHandler) Handle(e chart.Event) {
	switch e.Kind {
	case chart.EventChartFinished:
		h.handleChartFinished(e)
	case chart.EventChartFailed:
		h.handleChartFailed(e)
	case chart.EventArtifactWritten:
		h.handleArtifactWritten(e)
	case chart.EventRunFinished:
		h.handleRunFinished(e)
	}
}

func (h *MetricsHandler) handleChartFinished(e chart.Event) {
	ctx := context.Background()
	attrs := metric.WithAttributes(
		attribute.String("chart", string(e.Chart)),
	)
	h.chartRenders.Add(ctx, 1, attrs)
	h.chartDuration.Record(ctx, e.Elapsed.Seconds(), attrs)
}

func (h *MetricsHandler) handleChartFailed(e chart.Event) {
	ctx := context.Background()
	attrs := metric.WithAttributes(
		attribute.String("chart", string(e.Chart)),
	)
	h.chartFailures.Add(ctx, 1, attrs)
}

func (h *MetricsHandler) handleArtifactWritten(e chart.Event) {
	h.artifacts.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("chart", string(e.Chart)),
		attribute.String("format", e.Format),
	))
}

func (h *MetricsHandler) handleRunFinished(e chart.Event) {
	h.runDuration.Record(context.Background(), e.Elapsed.Seconds(), metric.WithAttributes(
		attribute.String("run_id", e.RunID),
	))
}
