package chart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"logviz/catalog"
	"logviz/config"
)

// Renderer walks the five charts for a pair of catalogs, persisting each to
// the configured formats. Charts are independent: a failing save is
// collected and reported without disturbing its siblings.
type Renderer struct {
	cfg      *config.Config
	errors   catalog.Catalog // preprocessed
	warnings catalog.Catalog // preprocessed
	log      *slog.Logger
	emit     EventEmitter
	runID    string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the renderer's logger.
func WithLogger(log *slog.Logger) Option {
	return func(r *Renderer) { r.log = log }
}

// WithEmitter attaches a render event emitter.
func WithEmitter(emit EventEmitter) Option {
	return func(r *Renderer) { r.emit = emit }
}

// WithRunID overrides the generated run identifier.
func WithRunID(id string) Option {
	return func(r *Renderer) { r.runID = id }
}

// NewRenderer creates a Renderer for the given configuration. The catalogs
// are preprocessed once here; every chart reads the preprocessed view.
func NewRenderer(cfg *config.Config, options ...Option) *Renderer {
	r := &Renderer{
		cfg:      cfg,
		errors:   cfg.ErrorLogs.Preprocess(),
		warnings: cfg.WarningLogs.Preprocess(),
		log:      slog.Default(),
		runID:    uuid.NewString(),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// RunID returns the identifier attached to this renderer's events.
func (r *Renderer) RunID() string {
	return r.runID
}

// Specs builds the five chart specs in presentation order.
func (r *Renderer) Specs() []Spec {
	viz := r.cfg.Visualization
	return []Spec{
		BuildErrorDistribution(r.errors, viz),
		BuildSeverityComparison(r.errors, r.warnings, viz),
		BuildDetailedAnalysis(r.errors, r.warnings, viz),
		BuildErrorHistogram(r.errors, viz),
		BuildWarningHistogram(r.warnings, viz),
	}
}

// RenderAll renders every chart, saving artifacts when saving is enabled.
// Per-chart errors are joined into the returned error; charts that succeed
// are unaffected by charts that fail.
func (r *Renderer) RenderAll(ctx context.Context) error {
	runStart := time.Now()
	r.emitEvent(Event{Kind: EventRunStarted, RunID: r.runID, Time: runStart})

	var errs []error
	for _, spec := range r.Specs() {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		start := time.Now()
		r.emitEvent(Event{Kind: EventChartStarted, RunID: r.runID, Chart: spec.ID(), Time: start})

		if err := r.renderChart(spec); err != nil {
			r.log.Error("chart render failed", "chart", spec.ID(), "error", err)
			r.emitEvent(Event{
				Kind:    EventChartFailed,
				RunID:   r.runID,
				Chart:   spec.ID(),
				Err:     err.Error(),
				Time:    time.Now(),
				Elapsed: time.Since(start),
			})
			errs = append(errs, fmt.Errorf("%s: %w", spec.ID(), err))
			continue
		}

		r.log.Debug("chart rendered", "chart", spec.ID())
		r.emitEvent(Event{
			Kind:    EventChartFinished,
			RunID:   r.runID,
			Chart:   spec.ID(),
			Time:    time.Now(),
			Elapsed: time.Since(start),
		})
	}

	r.emitEvent(Event{
		Kind:    EventRunFinished,
		RunID:   r.runID,
		Time:    time.Now(),
		Elapsed: time.Since(runStart),
	})
	return errors.Join(errs...)
}

// renderChart persists one chart to every configured format. With saving
// disabled the spec is still built, mirroring a display-only run.
func (r *Renderer) renderChart(spec Spec) error {
	if !r.cfg.Output.SavePlots {
		return nil
	}

	for _, format := range r.cfg.Output.Formats {
		path := filepath.Join(r.cfg.Output.OutputDir, fmt.Sprintf("%s.%s", spec.ID(), format))
		if err := r.saveArtifact(path, format, spec); err != nil {
			return err
		}
		r.emitEvent(Event{
			Kind:   EventArtifactWritten,
			RunID:  r.runID,
			Chart:  spec.ID(),
			Format: format,
			Path:   path,
			Time:   time.Now(),
		})
		r.log.Debug("artifact written", "path", path)
	}
	return nil
}

func (r *Renderer) saveArtifact(path, format string, spec Spec) error {
	f, err := os.Create(path) // #nosec G304 -- path built from configuration
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	switch format {
	case "html":
		err = RenderHTML(f, spec)
	case "png":
		err = RenderPNG(f, spec)
	default:
		err = fmt.Errorf("unsupported output format %q", format)
	}

	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func (r *Renderer) emitEvent(e Event) {
	if r.emit != nil {
		r.emit(e)
	}
}
