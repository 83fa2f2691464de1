package app

import (
	"context"

	"github.com/GriffinCanCode/miniapp/internal/console"
	"github.com/GriffinCanCode/miniapp/internal/domain/state"
	"github.com/GriffinCanCode/miniapp/internal/infrastructure/logging"
	"github.com/GriffinCanCode/miniapp/internal/shared/id"
)

// Status tells the runner what to do after a step
type Status int

const (
	// Continue asks for another step
	Continue Status = iota
	// Stop ends the run loop and starts shutdown
	Stop
)

func (s Status) String() string {
	switch s {
	case Continue:
		return "continue"
	case Stop:
		return "stop"
	default:
		return "unknown"
	}
}

// App is the contract an application implements for the runner
type App[S any] interface {
	// Initialize prepares the app; it may read env.State to resume
	Initialize(env *Env[S]) error
	// Step runs one iteration of the run loop
	Step(env *Env[S]) (Status, error)
	// Shutdown is expected to hand the final state to env.State
	Shutdown(env *Env[S]) error
}

// Env is handed to every hook
type Env[S any] struct {
	RunID   id.RunID
	Name    string
	Format  string
	State   *state.Context[S]
	Console *console.Console
	Logger  *logging.Logger

	ctx context.Context
}

// Ctx returns the context of the current phase. During shutdown it is
// detached from the caller's cancellation so final saves can complete.
func (e *Env[S]) Ctx() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

// Export writes the current state in the default format
func (e *Env[S]) Export(filename string) (string, error) {
	return e.State.Export(e.Ctx(), e.Format, filename)
}

// Import replaces the current state from a file in the default format
func (e *Env[S]) Import(filename string) (string, error) {
	return e.State.Import(e.Ctx(), e.Format, filename)
}
