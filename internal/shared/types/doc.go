// Package types provides the shared lifecycle vocabulary for miniapp.
//
// Phase is the runner state machine:
//
//	created -> initialized -> running -> shutting_down -> terminated
//
// with two short cuts: a failed initialize goes straight from created (or
// initialized) to terminated, and a runner cancelled before its first step
// goes from initialized to shutting_down.
//
// Example Usage:
//
//	if err := types.PhaseCreated.Transition(types.PhaseInitialized); err != nil {
//	    return err
//	}
package types
