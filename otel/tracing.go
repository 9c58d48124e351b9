// Package otel provides OpenTelemetry integration for logviz render events.
package otel

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"logviz/chart"
)

// TracingHandler translates render events into OpenTelemetry spans. It
// maintains maps of active run and chart spans, creating and ending them
// based on event kind.
type TracingHandler struct {
	tracer trace.Tracer

	mu         sync.RWMutex
	runSpans   map[string]trace.Span      // runID -> span
	runCtxs    map[string]context.Context // runID -> context (for child spans)
	chartSpans map[string]trace.Span      // runID:chartID -> span
}

// NewTracingHandler creates a TracingHandler that uses the given tracer to
// create spans from render events.
func NewTracingHandler(tracer trace.Tracer) *TracingHandler {
	return &TracingHandler{
		tracer:     tracer,
		runSpans:   make(map[string]trace.Span),
		runCtxs:    make(map[string]context.Context),
		chartSpans: make(map[string]trace.Span),
	}
}

// Handle processes a render event and creates or ends spans accordingly.
// It satisfies chart.EventEmitter via h.Handle.
func (h *TracingHandler) Handle(e chart.Event) {
	switch e.Kind {
	case chart.EventRunStarted:
		h.handleRunStarted(e)
	case chart.EventChartStarted:
		h.handleChartStarted(e)
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

// handleRunStarted creates the root span for a render run.
func (h *TracingHandler) handleRunStarted(e chart.Event) {
	ctx, span := h.tracer.Start(context.Background(), "render:"+e.RunID,
		trace.WithAttributes(
			attribute.String("logviz.run_id", e.RunID),
		),
		trace.WithTimestamp(e.Time),
	)

	h.mu.Lock()
	h.runSpans[e.RunID] = span
	h.runCtxs[e.RunID] = ctx
	h.mu.Unlock()
}

// handleChartStarted creates a child span under the run span.
func (h *TracingHandler) handleChartStarted(e chart.Event) {
	h.mu.RLock()
	parentCtx, ok := h.runCtxs[e.RunID]
	h.mu.RUnlock()

	if !ok {
		// No parent run span; start from background context.
		parentCtx = context.Background()
	}

	_, span := h.tracer.Start(parentCtx, "chart:"+string(e.Chart),
		trace.WithAttributes(
			attribute.String("logviz.run_id", e.RunID),
			attribute.String("logviz.chart", string(e.Chart)),
		),
		trace.WithTimestamp(e.Time),
	)

	h.mu.Lock()
	h.chartSpans[chartKey(e)] = span
	h.mu.Unlock()
}

// handleChartFinished ends the chart span with success status.
func (h *TracingHandler) handleChartFinished(e chart.Event) {
	if span, ok := h.takeChartSpan(e); ok {
		span.SetStatus(codes.Ok, "")
		span.End(trace.WithTimestamp(e.Time))
	}
}

// handleChartFailed ends the chart span with error status.
func (h *TracingHandler) handleChartFailed(e chart.Event) {
	if span, ok := h.takeChartSpan(e); ok {
		span.SetStatus(codes.Error, e.Err)
		span.End(trace.WithTimestamp(e.Time))
	}
}

// handleArtifactWritten records the artifact as an event on the chart span.
func (h *TracingHandler) handleArtifactWritten(e chart.Event) {
	h.mu.RLock()
	span, ok := h.chartSpans[chartKey(e)]
	h.mu.RUnlock()
	if !ok {
		return
	}
	span.AddEvent("artifact_written",
		trace.WithAttributes(
			attribute.String("logviz.path", e.Path),
			attribute.String("logviz.format", e.Format),
		),
		trace.WithTimestamp(e.Time),
	)
}

// handleRunFinished ends the run span.
func (h *TracingHandler) handleRunFinished(e chart.Event) {
	h.mu.Lock()
	span, ok := h.runSpans[e.RunID]
	delete(h.runSpans, e.RunID)
	delete(h.runCtxs, e.RunID)
	h.mu.Unlock()

	if ok {
		span.End(trace.WithTimestamp(e.Time))
	}
}

// ActiveRunSpanContext returns the span context of the active run span, or
// an invalid span context when the run is not active.
func (h *TracingHandler) ActiveRunSpanContext(runID string) trace.SpanContext {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if span, ok := h.runSpans[runID]; ok {
		return span.SpanContext()
	}
	return trace.SpanContext{}
}

func (h *TracingHandler) takeChartSpan(e chart.Event) (trace.Span, bool) {
	key := chartKey(e)
	h.mu.Lock()
	defer h.mu.Unlock()
	span, ok := h.chartSpans[key]
	delete(h.chartSpans, key)
	return span, ok
}

func chartKey(e chart.Event) string {
	return e.RunID + ":" + string(e.Chart)
}
