package launcher

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/miniapp/internal/domain/app"
	"github.com/GriffinCanCode/miniapp/internal/infrastructure/config"
	"github.com/GriffinCanCode/miniapp/internal/infrastructure/logging"
	"github.com/GriffinCanCode/miniapp/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/miniapp/internal/persistence"
)

// Streams binds the process input and outputs
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Main runs application as a process and returns its exit code
func Main[S any](name string, application app.App[S], adapters []persistence.Adapter[S]) int {
	streams := Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
	ctx, stop := InterruptContext(context.Background(), streams.Err, os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := Execute(ctx, os.Args[1:], streams, name, application, adapters)
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return 0
	default:
		fmt.Fprintf(streams.Err, "%s: %v\n", name, err)
		return 1
	}
}

// InterruptContext is cancelled by the first of sigs. Signal handling is then
// released so a second signal terminates the process even while a step is
// blocked reading input.
func InterruptContext(parent context.Context, notice io.Writer, sigs ...os.Signal) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(parent, sigs...)
	release := context.AfterFunc(ctx, func() {
		stop()
		if parent.Err() == nil && notice != nil {
			fmt.Fprintln(notice, "interrupt received: finishing current step, press Enter or interrupt again to quit")
		}
	})
	return ctx, func() {
		release()
		stop()
	}
}

// Execute parses args, builds the runner and runs it to completion
func Execute[S any](ctx context.Context, args []string, streams Streams, name string, application app.App[S], adapters []persistence.Adapter[S]) error {
	cfg, err := Configure(name, args, streams.Err)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting app",
		zap.String("app", name),
		zap.String("resources", cfg.App.ResourcesPath),
		zap.String("format", cfg.App.Format),
		zap.Bool("resume", cfg.App.Resume),
		zap.Bool("autosave", cfg.App.AutoSave),
	)

	registry := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(registry)

	runner := app.NewRunner[S](name, application).
		WithAdapters(adapters...).
		WithResourcesPath(cfg.App.ResourcesPath).
		WithDefaultFormat(cfg.App.Format).
		WithResume(cfg.App.Resume).
		WithAutoSave(cfg.App.AutoSave).
		WithConsole(streams.In, streams.Out).
		WithLogger(logger.Named(strings.ToLower(name))).
		WithMetrics(metrics)

	runErr := runner.Run(ctx)

	if path := cfg.Metrics.Textfile; path != "" {
		if err := monitoring.WriteTextfile(registry, path); err != nil {
			runErr = multierr.Append(runErr, fmt.Errorf("write metrics: %w", err))
		} else {
			logger.Info("metrics written", zap.String("path", path))
		}
	}
	return runErr
}

// Configure loads environment configuration and applies flag overrides
func Configure(name string, args []string, errOut io.Writer) (*config.Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(errOut)

	envFile := fs.String("env-file", ".env", "Optional .env file read before the environment")
	resources := fs.String("resources", "", "Directory holding state files")
	format := fs.String("format", "", "Default state format (json, yaml, toml, json.zst)")
	resume := fs.Bool("resume", false, "Import the default state file at startup")
	autosave := fs.Bool("autosave", false, "Export the final state at exit")
	metricsFile := fs.String("metrics-file", "", "Write Prometheus metrics to this file at exit")
	dev := fs.Bool("dev", false, "Development logging (debug level, console encoding)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "resources":
			cfg.App.ResourcesPath = *resources
		case "format":
			cfg.App.Format = *format
		case "resume":
			cfg.App.Resume = *resume
		case "autosave":
			cfg.App.AutoSave = *autosave
		case "metrics-file":
			cfg.Metrics.Textfile = *metricsFile
		case "dev":
			cfg.Logging.Development = *dev
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg config.LogConfig) (*logging.Logger, error) {
	if cfg.Development {
		return logging.NewDevelopment(), nil
	}
	return logging.New(cfg.Logger())
}
