package persistence

import (
	"bytes"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// FormatTOML is the tag of the TOML adapter
const FormatTOML = "toml"

// tomlTable names the array of tables holding records, since TOML has no
// top-level arrays.
const tomlTable = "state"

type tomlDocument[S any] struct {
	State []S `toml:"state"`
}

// TOML stores records as a [[state]] array of tables
type TOML[S any] struct {
	fields fieldSet
}

// NewTOML creates a TOML adapter accepting the given record keys
func NewTOML[S any](fields ...string) *TOML[S] {
	return &TOML[S]{fields: newFieldSet(fields)}
}

func (a *TOML[S]) Format() string { return FormatTOML }

func (a *TOML[S]) Encode(state S) ([]byte, error) {
	data, err := toml.Marshal(tomlDocument[S]{State: []S{state}})
	if err != nil {
		return nil, fmt.Errorf("TOML encoding error: %w", err)
	}
	return data, nil
}

func (a *TOML[S]) Decode(data []byte) (S, bool, error) {
	var zero S
	if isBlank(data) {
		return zero, false, parseErrf(FormatTOML, "empty document")
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return zero, false, parseErr(FormatTOML, err)
	}
	for key := range raw {
		if key != tomlTable {
			return zero, false, parseErrf(FormatTOML, "unexpected top-level key %q", key)
		}
	}
	tables, ok := raw[tomlTable].([]any)
	if !ok {
		if _, present := raw[tomlTable]; present {
			return zero, false, parseErrf(FormatTOML, "%q must be an array of tables", tomlTable)
		}
		return zero, false, nil
	}
	if len(tables) == 0 {
		return zero, false, nil
	}
	first, ok := tables[0].(map[string]any)
	if !ok {
		return zero, false, parseErrf(FormatTOML, "record 0 is not a table")
	}
	if err := a.fields.check(nullness(first)); err != nil {
		return zero, false, parseErr(FormatTOML, err)
	}

	// Only the first record is bound; later records are ignored.
	record, err := toml.Marshal(first)
	if err != nil {
		return zero, false, parseErr(FormatTOML, err)
	}
	var state S
	dec := toml.NewDecoder(bytes.NewReader(record))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&state); err != nil {
		return zero, false, parseErr(FormatTOML, err)
	}
	return state, true, nil
}
