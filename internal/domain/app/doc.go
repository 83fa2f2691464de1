// Package app drives one application through its lifecycle.
//
// An application implements App: Initialize, Step and Shutdown. The
// Runner owns everything around those hooks: it builds the state Context
// from the registered adapters, acquires the console, walks the phases
//
//	created -> initialized -> running -> shutting_down -> terminated
//
// and releases the console on every exit path.
//
// Key Components:
//   - Runner: lifecycle coordinator, configured by chained With* calls
//   - Env: what every hook receives (state context, console, logger, run id)
//   - Status: Continue or Stop, returned by each Step
//
// Failure Semantics:
//   - Step error or panic: run ends, Shutdown still runs, error returned
//   - Initialize failure: Step and Shutdown skipped, console released
//   - Shutdown failure: console released, error returned
//
// Example Usage:
//
//	runner := app.NewRunner[counter.State]("Counter", counter.New()).
//	    WithAdapters(persistence.NewJSON[counter.State]("value")).
//	    WithResourcesPath("test-data")
//	if err := runner.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package app
