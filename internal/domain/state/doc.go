// Package state holds an application's current state and moves it to and
// from files.
//
// Context is the single point of truth for "the current state" of one app.
// It holds zero or one value of the app's State type, replaced wholesale on
// every SetData or Import. Data and SetData never touch storage; Export and
// Import are the only operations doing I/O, synchronously, through the
// adapter registered for the requested format.
//
// Key Components:
//   - Context: current state, adapter registry and resource location
//   - Atomic writes: exports land in a temp file renamed over the target
//   - Typed failures: persistence.ErrNoData, ErrUnsupportedFormat,
//     ErrFileNotFound, ErrIO and ErrParse
//
// Example Usage:
//
//	res, _ := paths.New(".", "Counter")
//	reg, _ := persistence.NewRegistry[counter.State](persistence.NewJSON[counter.State]("value"))
//	sc, _ := state.New(res, reg)
//
//	sc.SetData(counter.State{Value: 1})
//	path, err := sc.Export(ctx, "json", "") // ./Counter.json
package state
