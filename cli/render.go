package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	otelapi "go.opentelemetry.io/otel"

	"logviz/chart"
	"logviz/config"
	logvizotel "logviz/otel"
)

// defaultConfigPath is used when --config is not given.
const defaultConfigPath = "config/config.json"

// NewRenderCmd creates the "render" subcommand: the full five-chart
// pipeline.
func NewRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the log pattern charts",
		Long:  "Render the five descriptive charts summarizing the configured log pattern catalogs.",
		Args:  cobra.NoArgs,
		RunE:  runRender,
	}

	cmd.Flags().StringP("config", "c", defaultConfigPath, "Path to configuration file")
	cmd.Flags().Bool("otel", false, "Record render spans and metrics via OpenTelemetry")

	return cmd
}

func runRender(cmd *cobra.Command, _ []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	out := cmd.OutOrStdout()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return exitError(exitFailure, "configuration file not found: %v", err)
		}
		return exitError(exitFailure, "loading configuration: %v", err)
	}

	if err := config.EnsureOutputDir(cfg); err != nil {
		return exitError(exitFailure, "%v", err)
	}

	logger := newLogger(cmd)
	options := []chart.Option{chart.WithLogger(logger)}

	if useOtel, _ := cmd.Flags().GetBool("otel"); useOtel {
		shutdown, err := logvizotel.Setup(cmd.Context())
		if err != nil {
			return exitError(exitFailure, "initializing observability: %v", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Error("observability shutdown", "error", err)
			}
		}()

		tracing := logvizotel.NewTracingHandler(otelapi.GetTracerProvider().Tracer("logviz/render"))
		metrics, err := logvizotel.NewMetricsHandler(otelapi.GetMeterProvider().Meter("logviz/render"))
		if err != nil {
			return exitError(exitFailure, "initializing observability: %v", err)
		}
		options = append(options, chart.WithEmitter(chart.MultiEmitter(tracing.Handle, metrics.Handle)))
	}

	r := chart.NewRenderer(cfg, options...)
	logger.Debug("starting render", "run_id", r.RunID(), "config", cfgPath)

	fmt.Fprintln(out, "Generating visualizations...")
	if err := r.RenderAll(cmd.Context()); err != nil {
		return exitError(exitFailure, "rendering charts: %v", err)
	}

	printCompletion(out, cfg)
	return nil
}

// printCompletion writes the human-readable completion summary.
func printCompletion(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "\nAnalysis completed successfully!")

	if cfg.Output.SavePlots {
		fmt.Fprintf(out, "\nGraphs have been saved in: %s\n", cfg.Output.OutputDir)
		fmt.Fprintf(out, "Generated formats: %s\n", strings.Join(cfg.Output.Formats, ", "))
	}

	fmt.Fprintln(out, "\nGenerated visualizations:")
	fmt.Fprintln(out, "1. Error distribution by category")
	fmt.Fprintln(out, "2. Message comparison by severity level")
	fmt.Fprintln(out, "3. Detailed analysis by category and severity")
	fmt.Fprintln(out, "4. Error message frequency histogram")
	fmt.Fprintln(out, "5. Warning message frequency histogram")
}

// newLogger builds the command logger; --verbose lowers the level to debug.
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}
