package app_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/GriffinCanCode/miniapp/internal/domain/app"
	"github.com/GriffinCanCode/miniapp/internal/infrastructure/logging"
	"github.com/GriffinCanCode/miniapp/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/miniapp/internal/persistence"
	"github.com/GriffinCanCode/miniapp/internal/shared/id"
	"github.com/GriffinCanCode/miniapp/internal/shared/types"
	"github.com/GriffinCanCode/miniapp/tests/helpers/testutil"
)

type tally struct {
	Value int `json:"value" yaml:"value" toml:"value"`
}

type trackedInput struct {
	*strings.Reader
	closed int
}

func (t *trackedInput) Close() error {
	t.closed++
	return nil
}

func envOf(args mock.Arguments) *app.Env[tally] {
	return args.Get(0).(*app.Env[tally])
}

func newRunner(t *testing.T, application app.App[tally]) (*app.Runner[tally], string) {
	t.Helper()
	dir := t.TempDir()
	r := app.NewRunner[tally]("Tally", application).
		WithAdapters(persistence.NewJSON[tally]("value"), persistence.NewYAML[tally]("value")).
		WithResourcesPath(dir).
		WithConsole(strings.NewReader(""), &bytes.Buffer{})
	return r, dir
}

func TestRunHappyPath(t *testing.T) {
	m := testutil.NewMockApp[tally](t).ExpectHappyPath(3)
	r, _ := newRunner(t, m)
	assert.Equal(t, types.PhaseCreated, r.Phase())
	assert.Nil(t, r.Context())

	require.NoError(t, r.Run(context.Background()))

	assert.Equal(t, types.PhaseTerminated, r.Phase())
	assert.NotNil(t, r.Context())
	assert.True(t, id.IsValid(r.RunID().String()))
	m.AssertNumberOfCalls(t, "Step", 3)
}

func TestRunOnlyOnce(t *testing.T) {
	m := testutil.NewMockApp[tally](t).ExpectHappyPath(1)
	r, _ := newRunner(t, m)
	require.NoError(t, r.Run(context.Background()))

	err := r.Run(context.Background())
	assert.ErrorIs(t, err, app.ErrAlreadyRun)
}

func TestEnvContents(t *testing.T) {
	m := testutil.NewMockApp[tally](t)
	var seen *app.Env[tally]
	m.On("Initialize", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		seen = envOf(args)
	}).Once()
	m.On("Step", mock.Anything).Return(app.Stop, nil).Once()
	m.On("Shutdown", mock.Anything).Return(nil).Once()

	r, _ := newRunner(t, m)
	require.NoError(t, r.Run(context.Background()))

	require.NotNil(t, seen)
	assert.Equal(t, "Tally", seen.Name)
	assert.Equal(t, persistence.FormatJSON, seen.Format)
	assert.Equal(t, r.RunID(), seen.RunID)
	assert.Same(t, r.Context(), seen.State)
	assert.NotNil(t, seen.Console)
	assert.NotNil(t, seen.Logger)
}

func TestInitializeFailureSkipsRunAndShutdown(t *testing.T) {
	m := testutil.NewMockApp[tally](t)
	m.On("Initialize", mock.Anything).Return(errors.New("boom")).Once()

	in := &trackedInput{Reader: strings.NewReader("")}
	r, _ := newRunner(t, m)
	r.WithConsole(in, &bytes.Buffer{})

	err := r.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, app.ErrInitialize)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, types.PhaseTerminated, r.Phase())
	assert.Equal(t, 1, in.closed)
	m.AssertNotCalled(t, "Step", mock.Anything)
	m.AssertNotCalled(t, "Shutdown", mock.Anything)
}

func TestInitializePanicIsRecovered(t *testing.T) {
	m := testutil.NewMockApp[tally](t)
	m.On("Initialize", mock.Anything).Return(nil).Run(func(mock.Arguments) {
		panic("bad init")
	}).Once()

	r, _ := newRunner(t, m)
	err := r.Run(context.Background())
	assert.ErrorIs(t, err, app.ErrInitialize)
	assert.Contains(t, err.Error(), "panic: bad init")
	assert.Equal(t, types.PhaseTerminated, r.Phase())
}

func TestConfigurationErrors(t *testing.T) {
	tests := []struct {
		name      string
		runnerFor func(application app.App[tally]) *app.Runner[tally]
	}{
		{
			name: "invalid app name",
			runnerFor: func(application app.App[tally]) *app.Runner[tally] {
				return app.NewRunner[tally]("../escape", application).
					WithAdapters(persistence.NewJSON[tally]("value"))
			},
		},
		{
			name: "no adapters",
			runnerFor: func(application app.App[tally]) *app.Runner[tally] {
				return app.NewRunner[tally]("Tally", application)
			},
		},
		{
			name: "duplicate adapters",
			runnerFor: func(application app.App[tally]) *app.Runner[tally] {
				return app.NewRunner[tally]("Tally", application).
					WithAdapters(persistence.NewJSON[tally](), persistence.NewJSON[tally]())
			},
		},
		{
			name: "unregistered default format",
			runnerFor: func(application app.App[tally]) *app.Runner[tally] {
				return app.NewRunner[tally]("Tally", application).
					WithAdapters(persistence.NewJSON[tally]()).
					WithDefaultFormat("toml")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testutil.NewMockApp[tally](t)
			r := tt.runnerFor(m).
				WithResourcesPath(t.TempDir()).
				WithConsole(strings.NewReader(""), &bytes.Buffer{})

			err := r.Run(context.Background())
			assert.ErrorIs(t, err, app.ErrInitialize)
			assert.Equal(t, types.PhaseTerminated, r.Phase())
			m.AssertNotCalled(t, "Initialize", mock.Anything)
		})
	}
}

func TestNilApplication(t *testing.T) {
	r := app.NewRunner[tally]("Tally", nil).WithAdapters(persistence.NewJSON[tally]())
	assert.ErrorIs(t, r.Run(context.Background()), app.ErrInitialize)
}

func TestStepErrorStillShutsDown(t *testing.T) {
	m := testutil.NewMockApp[tally](t)
	m.On("Initialize", mock.Anything).Return(nil).Once()
	m.On("Step", mock.Anything).Return(app.Continue, errors.New("step broke")).Once()
	m.On("Shutdown", mock.Anything).Return(nil).Once()

	in := &trackedInput{Reader: strings.NewReader("")}
	r, _ := newRunner(t, m)
	r.WithConsole(in, &bytes.Buffer{})

	err := r.Run(context.Background())
	assert.ErrorIs(t, err, app.ErrRun)
	assert.NotErrorIs(t, err, app.ErrShutdown)
	assert.Contains(t, err.Error(), "step broke")
	assert.Equal(t, types.PhaseTerminated, r.Phase())
	assert.Equal(t, 1, in.closed)
}

func TestStepPanicStillShutsDown(t *testing.T) {
	m := testutil.NewMockApp[tally](t)
	m.On("Initialize", mock.Anything).Return(nil).Once()
	m.On("Step", mock.Anything).Return(app.Continue, nil).Run(func(mock.Arguments) {
		panic("step exploded")
	}).Once()
	m.On("Shutdown", mock.Anything).Return(nil).Once()

	r, _ := newRunner(t, m)
	err := r.Run(context.Background())
	assert.ErrorIs(t, err, app.ErrRun)
	assert.Contains(t, err.Error(), "panic: step exploded")
}

func TestRunAndShutdownErrorsCombine(t *testing.T) {
	m := testutil.NewMockApp[tally](t)
	m.On("Initialize", mock.Anything).Return(nil).Once()
	m.On("Step", mock.Anything).Return(app.Continue, errors.New("step broke")).Once()
	m.On("Shutdown", mock.Anything).Return(errors.New("flush failed")).Once()

	r, _ := newRunner(t, m)
	err := r.Run(context.Background())
	assert.ErrorIs(t, err, app.ErrRun)
	assert.ErrorIs(t, err, app.ErrShutdown)
	assert.Contains(t, err.Error(), "step broke")
	assert.Contains(t, err.Error(), "flush failed")
}

func TestShutdownFailureReleasesConsole(t *testing.T) {
	m := testutil.NewMockApp[tally](t)
	m.On("Initialize", mock.Anything).Return(nil).Once()
	m.On("Step", mock.Anything).Return(app.Stop, nil).Once()
	m.On("Shutdown", mock.Anything).Return(nil).Run(func(mock.Arguments) {
		panic("shutdown exploded")
	}).Once()

	in := &trackedInput{Reader: strings.NewReader("")}
	r, _ := newRunner(t, m)
	r.WithConsole(in, &bytes.Buffer{})

	err := r.Run(context.Background())
	assert.ErrorIs(t, err, app.ErrShutdown)
	assert.Equal(t, 1, in.closed)
	assert.Equal(t, types.PhaseTerminated, r.Phase())
}

func TestCancelledBeforeRunSkipsSteps(t *testing.T) {
	m := testutil.NewMockApp[tally](t)
	m.On("Initialize", mock.Anything).Return(nil).Once()
	m.On("Shutdown", mock.Anything).Return(nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, _ := newRunner(t, m)
	require.NoError(t, r.Run(ctx))
	m.AssertNotCalled(t, "Step", mock.Anything)
	assert.Equal(t, types.PhaseTerminated, r.Phase())
}

func TestCancellationObservedBetweenSteps(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := testutil.NewMockApp[tally](t)
	m.On("Initialize", mock.Anything).Return(nil).Once()
	m.On("Step", mock.Anything).Return(app.Continue, nil).Run(func(mock.Arguments) {
		cancel()
	}).Once()
	m.On("Shutdown", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		assert.NoError(t, envOf(args).Ctx().Err(), "shutdown context must outlive cancellation")
	}).Once()

	r, _ := newRunner(t, m)
	require.NoError(t, r.Run(ctx))
	m.AssertNumberOfCalls(t, "Step", 1)
}

func TestResumeImportsBeforeInitialize(t *testing.T) {
	m := testutil.NewMockApp[tally](t)
	m.On("Initialize", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		got, ok := envOf(args).State.Data()
		assert.True(t, ok)
		assert.Equal(t, tally{Value: 5}, got)
	}).Once()
	m.On("Step", mock.Anything).Return(app.Stop, nil).Once()
	m.On("Shutdown", mock.Anything).Return(nil).Once()

	r, dir := newRunner(t, m)
	testutil.WriteFile(t, dir, "Tally.json", `[{"value": 5}]`)
	require.NoError(t, r.WithResume(true).Run(context.Background()))
}

func TestResumeWithoutFileStartsEmpty(t *testing.T) {
	m := testutil.NewMockApp[tally](t)
	m.On("Initialize", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		_, ok := envOf(args).State.Data()
		assert.False(t, ok)
	}).Once()
	m.On("Step", mock.Anything).Return(app.Stop, nil).Once()
	m.On("Shutdown", mock.Anything).Return(nil).Once()

	r, _ := newRunner(t, m)
	require.NoError(t, r.WithResume(true).Run(context.Background()))
}

func TestResumeOfMalformedFileFailsInitialize(t *testing.T) {
	m := testutil.NewMockApp[tally](t)

	r, dir := newRunner(t, m)
	testutil.WriteFile(t, dir, "Tally.json", `{not json`)

	err := r.WithResume(true).Run(context.Background())
	assert.ErrorIs(t, err, app.ErrInitialize)
	assert.ErrorIs(t, err, persistence.ErrParse)
	m.AssertNotCalled(t, "Initialize", mock.Anything)
}

func TestAutoSaveExportsFinalState(t *testing.T) {
	m := testutil.NewMockApp[tally](t)
	m.On("Initialize", mock.Anything).Return(nil).Once()
	m.On("Step", mock.Anything).Return(app.Stop, nil).Once()
	m.On("Shutdown", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		envOf(args).State.SetData(tally{Value: 9})
	}).Once()

	r, dir := newRunner(t, m)
	require.NoError(t, r.WithAutoSave(true).WithDefaultFormat("YAML").Run(context.Background()))

	assert.Contains(t, testutil.ReadFile(t, dir, "Tally.yaml"), "value: 9")
	testutil.AssertNoFile(t, dir, "Tally.json")
}

func TestAutoSaveWithoutStateWritesNothing(t *testing.T) {
	m := testutil.NewMockApp[tally](t).ExpectHappyPath(1)
	r, dir := newRunner(t, m)
	require.NoError(t, r.WithAutoSave(true).Run(context.Background()))
	testutil.AssertNoFile(t, dir, "Tally.json")
}

func TestNoSaveWithoutAutoSave(t *testing.T) {
	m := testutil.NewMockApp[tally](t)
	m.On("Initialize", mock.Anything).Return(nil).Once()
	m.On("Step", mock.Anything).Return(app.Stop, nil).Once()
	m.On("Shutdown", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		envOf(args).State.SetData(tally{Value: 1})
	}).Once()

	r, dir := newRunner(t, m)
	require.NoError(t, r.Run(context.Background()))
	testutil.AssertNoFile(t, dir, "Tally.json")
}

func TestEnvExportImportUseDefaultFormat(t *testing.T) {
	m := testutil.NewMockApp[tally](t)
	m.On("Initialize", mock.Anything).Return(nil).Once()
	m.On("Step", mock.Anything).Return(app.Stop, nil).Run(func(args mock.Arguments) {
		env := envOf(args)
		env.State.SetData(tally{Value: 3})
		path, err := env.Export("")
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(path, "Tally.yaml"))

		env.State.SetData(tally{Value: 0})
		_, err = env.Import("")
		require.NoError(t, err)
		got, _ := env.State.Data()
		assert.Equal(t, 3, got.Value)
	}).Once()
	m.On("Shutdown", mock.Anything).Return(nil).Once()

	r, _ := newRunner(t, m)
	require.NoError(t, r.WithDefaultFormat(".yaml").Run(context.Background()))
}

func TestDefaultFormatFallsBackToFirstRegistered(t *testing.T) {
	m := testutil.NewMockApp[tally](t)
	m.On("Initialize", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		assert.Equal(t, persistence.FormatTOML, envOf(args).Format)
	}).Once()
	m.On("Step", mock.Anything).Return(app.Stop, nil).Once()
	m.On("Shutdown", mock.Anything).Return(nil).Once()

	r := app.NewRunner[tally]("Tally", m).
		WithAdapters(persistence.NewYAML[tally](), persistence.NewTOML[tally]()).
		WithResourcesPath(t.TempDir()).
		WithConsole(strings.NewReader(""), &bytes.Buffer{})
	require.NoError(t, r.Run(context.Background()))
}

func TestMetricsRecordLifecycle(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(reg)

	m := testutil.NewMockApp[tally](t).ExpectHappyPath(2)
	r, _ := newRunner(t, m)
	require.NoError(t, r.WithMetrics(metrics).Run(context.Background()))

	for _, phase := range []types.Phase{
		types.PhaseCreated,
		types.PhaseInitialized,
		types.PhaseRunning,
		types.PhaseShuttingDown,
		types.PhaseTerminated,
	} {
		assert.Equal(t, 1.0, promtest.ToFloat64(metrics.Transitions.WithLabelValues("Tally", phase.String())), phase.String())
	}
	assert.Equal(t, 2.0, promtest.ToFloat64(metrics.Steps.WithLabelValues("Tally")))
}

func TestRunLogsStateContext(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	m := testutil.NewMockApp[tally](t).ExpectHappyPath(1)
	r, dir := newRunner(t, m)
	r.WithLogger(&logging.Logger{Logger: zap.New(core)})

	require.NoError(t, r.Run(context.Background()))

	entries := logs.FilterMessage("state context ready").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, dir, fields["base"])
	assert.Equal(t, "Tally", fields["state_app"])
	assert.Equal(t, "json", fields["default_format"])
	assert.Equal(t, false, fields["interactive"])
	assert.Equal(t, r.RunID().String(), fields["run_id"])
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "continue", app.Continue.String())
	assert.Equal(t, "stop", app.Stop.String())
	assert.Equal(t, "unknown", app.Status(7).String())
}
