package chart

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"logviz/config"
)

func testConfig(t *testing.T, formats ...string) *config.Config {
	t.Helper()
	return &config.Config{
		Visualization: testViz(),
		Output: config.Output{
			SavePlots: true,
			OutputDir: t.TempDir(),
			Formats:   formats,
		},
		ErrorLogs:   testErrors(),
		WarningLogs: testWarnings(),
	}
}

func TestRenderAll_WritesOneHTMLPerChart(t *testing.T) {
	cfg := testConfig(t, "html")
	r := NewRenderer(cfg)

	if err := r.RenderAll(context.Background()); err != nil {
		t.Fatalf("RenderAll() error = %v", err)
	}

	entries, err := os.ReadDir(cfg.Output.OutputDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 5 {
		t.Fatalf("output dir holds %d files, want 5", len(entries))
	}
	for _, id := range IDs() {
		path := filepath.Join(cfg.Output.OutputDir, string(id)+".html")
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing artifact %s: %v", path, err)
		}
	}
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), ".html") {
			t.Errorf("unexpected artifact %s for formats [html]", e.Name())
		}
	}
}

func TestRenderAll_Idempotent(t *testing.T) {
	cfg := testConfig(t, "html")

	read := func() map[string][]byte {
		t.Helper()
		out := make(map[string][]byte)
		entries, err := os.ReadDir(cfg.Output.OutputDir)
		if err != nil {
			t.Fatal(err)
		}
		for _, e := range entries {
			data, err := os.ReadFile(filepath.Join(cfg.Output.OutputDir, e.Name()))
			if err != nil {
				t.Fatal(err)
			}
			out[e.Name()] = data
		}
		return out
	}

	if err := NewRenderer(cfg).RenderAll(context.Background()); err != nil {
		t.Fatalf("first RenderAll() error = %v", err)
	}
	first := read()

	if err := NewRenderer(cfg).RenderAll(context.Background()); err != nil {
		t.Fatalf("second RenderAll() error = %v", err)
	}
	second := read()

	for name, data := range first {
		if !bytes.Equal(data, second[name]) {
			t.Errorf("%s differs between identical runs", name)
		}
	}
}

func TestRenderAll_SaveDisabled(t *testing.T) {
	cfg := testConfig(t, "html")
	cfg.Output.SavePlots = false

	if err := NewRenderer(cfg).RenderAll(context.Background()); err != nil {
		t.Fatalf("RenderAll() error = %v", err)
	}

	entries, err := os.ReadDir(cfg.Output.OutputDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("artifacts written despite save_plots=false: %d", len(entries))
	}
}

func TestRenderAll_FailedChartDoesNotDisturbSiblings(t *testing.T) {
	cfg := testConfig(t, "html")

	// A directory squatting on the first chart's artifact path makes only
	// that chart's save fail.
	blocked := filepath.Join(cfg.Output.OutputDir, string(ErrorDistribution)+".html")
	if err := os.Mkdir(blocked, 0o755); err != nil {
		t.Fatal(err)
	}

	err := NewRenderer(cfg).RenderAll(context.Background())
	if err == nil {
		t.Fatal("expected error for blocked artifact path")
	}
	if !strings.Contains(err.Error(), string(ErrorDistribution)) {
		t.Errorf("error %v does not name the failed chart", err)
	}

	for _, id := range IDs()[1:] {
		path := filepath.Join(cfg.Output.OutputDir, string(id)+".html")
		if _, statErr := os.Stat(path); statErr != nil {
			t.Errorf("sibling artifact %s missing: %v", path, statErr)
		}
	}
}

func TestRenderAll_UnsupportedFormat(t *testing.T) {
	cfg := testConfig(t, "svg")

	err := NewRenderer(cfg).RenderAll(context.Background())
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if !strings.Contains(err.Error(), "svg") {
		t.Errorf("error %v does not name the format", err)
	}
}

func TestRenderAll_EmitsEvents(t *testing.T) {
	cfg := testConfig(t, "html")

	var events []Event
	r := NewRenderer(cfg, WithEmitter(func(e Event) { events = append(events, e) }), WithRunID("run-1"))

	if err := r.RenderAll(context.Background()); err != nil {
		t.Fatalf("RenderAll() error = %v", err)
	}

	if events[0].Kind != EventRunStarted {
		t.Errorf("first event = %s, want %s", events[0].Kind, EventRunStarted)
	}
	if last := events[len(events)-1]; last.Kind != EventRunFinished {
		t.Errorf("last event = %s, want %s", last.Kind, EventRunFinished)
	}

	counts := make(map[EventKind]int)
	for _, e := range events {
		counts[e.Kind]++
		if e.RunID != "run-1" {
			t.Errorf("event %s has RunID %q", e.Kind, e.RunID)
		}
	}
	if counts[EventChartStarted] != 5 || counts[EventChartFinished] != 5 {
		t.Errorf("chart events = %d started / %d finished, want 5/5", counts[EventChartStarted], counts[EventChartFinished])
	}
	if counts[EventArtifactWritten] != 5 {
		t.Errorf("artifact events = %d, want 5", counts[EventArtifactWritten])
	}
}

func TestRenderAll_CanceledContext(t *testing.T) {
	cfg := testConfig(t, "html")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := NewRenderer(cfg).RenderAll(ctx); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestMultiEmitter(t *testing.T) {
	var a, b int
	emit := MultiEmitter(
		func(Event) { a++ },
		nil,
		func(Event) { b++ },
	)
	emit(Event{Kind: EventRunStarted})

	if a != 1 || b != 1 {
		t.Errorf("emitters called %d/%d times, want 1/1", a, b)
	}
}
