package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/miniapp/internal/console"
	"github.com/GriffinCanCode/miniapp/internal/domain/state"
	"github.com/GriffinCanCode/miniapp/internal/infrastructure/logging"
	"github.com/GriffinCanCode/miniapp/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/miniapp/internal/persistence"
	"github.com/GriffinCanCode/miniapp/internal/shared/id"
	"github.com/GriffinCanCode/miniapp/internal/shared/paths"
	"github.com/GriffinCanCode/miniapp/internal/shared/types"
)

// Runner errors
var (
	ErrInitialize = errors.New("initialize failed")
	ErrRun        = errors.New("run failed")
	ErrShutdown   = errors.New("shutdown failed")
	ErrAlreadyRun = errors.New("runner already ran")
)

// Runner orchestrates a single app lifecycle
type Runner[S any] struct {
	name     string
	app      App[S]
	adapters []persistence.Adapter[S]
	base     string
	format   string
	resume   bool
	autosave bool
	in       io.Reader
	out      io.Writer
	logger   *logging.Logger
	metrics  *monitoring.Metrics

	phase types.Phase
	runID id.RunID
	state *state.Context[S]
	ran   bool
}

// NewRunner creates a runner for application under name
func NewRunner[S any](name string, application App[S]) *Runner[S] {
	return &Runner[S]{
		name:   name,
		app:    application,
		base:   paths.DefaultBase,
		in:     os.Stdin,
		out:    os.Stdout,
		logger: logging.NewNop(),
		phase:  types.PhaseCreated,
	}
}

// WithAdapters registers persistence adapters; the call may be repeated
func (r *Runner[S]) WithAdapters(adapters ...persistence.Adapter[S]) *Runner[S] {
	r.adapters = append(r.adapters, adapters...)
	return r
}

// WithResourcesPath sets the directory state files live in
func (r *Runner[S]) WithResourcesPath(base string) *Runner[S] {
	r.base = base
	return r
}

// WithConsole replaces stdin and stdout
func (r *Runner[S]) WithConsole(in io.Reader, out io.Writer) *Runner[S] {
	r.in = in
	r.out = out
	return r
}

// WithLogger sets the logger handed to the app and the state context
func (r *Runner[S]) WithLogger(logger *logging.Logger) *Runner[S] {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// WithMetrics adds metrics tracking to the runner
func (r *Runner[S]) WithMetrics(metrics *monitoring.Metrics) *Runner[S] {
	r.metrics = metrics
	return r
}

// WithDefaultFormat picks the format used by Env.Export, Env.Import,
// resume and autosave. Without it json is used when registered, otherwise
// the first registered format.
func (r *Runner[S]) WithDefaultFormat(format string) *Runner[S] {
	r.format = format
	return r
}

// WithResume imports the default file before Initialize when it exists
func (r *Runner[S]) WithResume(enabled bool) *Runner[S] {
	r.resume = enabled
	return r
}

// WithAutoSave exports the final state after Shutdown
func (r *Runner[S]) WithAutoSave(enabled bool) *Runner[S] {
	r.autosave = enabled
	return r
}

// Phase returns the current lifecycle phase
func (r *Runner[S]) Phase() types.Phase {
	return r.phase
}

// Context returns the state context, nil until Run has built it
func (r *Runner[S]) Context() *state.Context[S] {
	return r.state
}

// RunID returns the id of the current run, empty before Run
func (r *Runner[S]) RunID() id.RunID {
	return r.runID
}

// Run drives the app from created to terminated. It may be called once.
func (r *Runner[S]) Run(ctx context.Context) (err error) {
	if r.ran {
		return ErrAlreadyRun
	}
	r.ran = true
	r.runID = id.NewRunID()
	r.logger = r.logger.With(zap.String("run_id", r.runID.String()), zap.String("app", r.name))
	r.metrics.RecordTransition(r.name, r.phase.String())

	defer func() {
		r.transition(types.PhaseTerminated)
		if err != nil {
			r.logger.Error("run finished with errors", zap.Error(err))
		}
	}()

	if r.app == nil {
		return fmt.Errorf("%w: no application", ErrInitialize)
	}
	sc, format, err := r.build()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInitialize, err)
	}
	r.state = sc

	con := console.New(r.in, r.out)
	defer func() {
		if cerr := con.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("release console: %w", cerr))
		}
	}()
	r.logger.Debug("state context ready",
		zap.String("state_app", sc.Name()),
		zap.String("base", sc.Resources().Base),
		zap.Strings("formats", sc.Formats()),
		zap.String("default_format", format),
		zap.Bool("interactive", con.Interactive()),
	)

	env := &Env[S]{
		RunID:   r.runID,
		Name:    r.name,
		Format:  format,
		State:   sc,
		Console: con,
		Logger:  r.logger,
		ctx:     ctx,
	}

	if err := r.initialize(env); err != nil {
		return fmt.Errorf("%w: %w", ErrInitialize, err)
	}
	r.transition(types.PhaseInitialized)

	var runErr error
	if ctx.Err() == nil {
		r.transition(types.PhaseRunning)
		if err := r.loop(ctx, env); err != nil {
			runErr = fmt.Errorf("%w: %w", ErrRun, err)
		}
	}

	r.transition(types.PhaseShuttingDown)
	env.ctx = context.WithoutCancel(ctx)
	var shutdownErr error
	if err := r.shutdown(env); err != nil {
		shutdownErr = fmt.Errorf("%w: %w", ErrShutdown, err)
	}

	return multierr.Combine(runErr, shutdownErr)
}

// build validates configuration and assembles the state context
func (r *Runner[S]) build() (*state.Context[S], string, error) {
	resources, err := paths.New(r.base, r.name)
	if err != nil {
		return nil, "", err
	}
	registry, err := persistence.NewRegistry(r.adapters...)
	if err != nil {
		return nil, "", err
	}
	sc, err := state.New(resources, registry,
		state.WithLogger(r.logger),
		state.WithMetrics(r.metrics),
	)
	if err != nil {
		return nil, "", err
	}

	format := persistence.NormalizeFormat(r.format)
	if format == "" {
		format = defaultFormat(registry.Formats())
	}
	if _, err := registry.Lookup(format); err != nil {
		return nil, "", err
	}
	return sc, format, nil
}

func defaultFormat(formats []string) string {
	if slices.Contains(formats, persistence.FormatJSON) {
		return persistence.FormatJSON
	}
	return formats[0]
}

func (r *Runner[S]) initialize(env *Env[S]) error {
	if r.resume && env.State.Exists(env.Format, "") {
		path, err := env.State.Import(env.Ctx(), env.Format, "")
		if err != nil {
			return fmt.Errorf("resume: %w", err)
		}
		r.logger.Info("resumed state", zap.String("path", path))
	}
	return guard(func() error { return r.app.Initialize(env) })
}

// loop steps the app until it stops, fails or ctx is cancelled. Cancellation
// is observed between steps and is not an error.
func (r *Runner[S]) loop(ctx context.Context, env *Env[S]) error {
	for {
		if err := ctx.Err(); err != nil {
			r.logger.Info("run cancelled", zap.Error(err))
			return nil
		}

		var status Status
		err := guard(func() error {
			var err error
			status, err = r.app.Step(env)
			return err
		})
		r.metrics.RecordStep(r.name)
		r.logger.Debug("step", zap.Stringer("status", status), zap.Error(err))
		if err != nil {
			return err
		}
		if status == Stop {
			return nil
		}
	}
}

func (r *Runner[S]) shutdown(env *Env[S]) error {
	if err := guard(func() error { return r.app.Shutdown(env) }); err != nil {
		return err
	}
	if !r.autosave {
		return nil
	}
	if _, ok := env.State.Data(); !ok {
		r.logger.Debug("autosave skipped, no state")
		return nil
	}
	if _, err := env.State.Export(env.Ctx(), env.Format, ""); err != nil {
		return fmt.Errorf("autosave: %w", err)
	}
	return nil
}

func (r *Runner[S]) transition(next types.Phase) {
	if err := r.phase.Transition(next); err != nil {
		r.logger.Error("lifecycle transition rejected", zap.Error(err))
		return
	}
	r.logger.Info("lifecycle transition",
		zap.String("from", r.phase.String()),
		zap.String("phase", next.String()),
	)
	r.phase = next
	r.metrics.RecordTransition(r.name, next.String())
}

// guard runs fn, converting a panic into an error
func guard(fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return fn()
}
