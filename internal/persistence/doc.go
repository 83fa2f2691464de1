// Package persistence converts application state to and from files.
//
// An Adapter is bound to one State type through its type parameter and to
// one format tag ("json", "yaml", "toml", "json.zst"). A Registry maps format
// tags to adapters at registration time; there is no runtime type
// inspection to pick one.
//
// Every adapter writes an array holding a single record and reads the first
// record of an array, ignoring the rest:
//
//	[
//	  {
//	    "value": 1
//	  }
//	]
//
// Record keys must match the declared fields exactly (case-sensitive).
// Malformed or type-mismatched input is a *ParseError; an adapter never
// hands back a partially decoded value.
//
// Example Usage:
//
//	reg, err := persistence.NewRegistry[counter.State](
//	    persistence.NewJSON[counter.State]("value"),
//	    persistence.NewYAML[counter.State]("value"),
//	)
//	adapter, err := reg.Lookup("json")
//	data, err := adapter.Encode(counter.State{Value: 1})
package persistence
