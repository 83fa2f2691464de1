package persistence

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// FormatYAML is the tag of the YAML adapter
const FormatYAML = "yaml"

// YAML stores records as a top-level YAML sequence
type YAML[S any] struct {
	fields fieldSet
}

// NewYAML creates a YAML adapter accepting the given record keys
func NewYAML[S any](fields ...string) *YAML[S] {
	return &YAML[S]{fields: newFieldSet(fields)}
}

func (a *YAML[S]) Format() string { return FormatYAML }

func (a *YAML[S]) Encode(state S) ([]byte, error) {
	data, err := yaml.Marshal([]S{state})
	if err != nil {
		return nil, fmt.Errorf("YAML encoding error: %w", err)
	}
	return data, nil
}

func (a *YAML[S]) Decode(data []byte) (S, bool, error) {
	var zero S
	if isBlank(data) {
		return zero, false, parseErrf(FormatYAML, "empty document")
	}

	var raw []any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return zero, false, parseErr(FormatYAML, err)
	}
	if len(raw) == 0 {
		return zero, false, nil
	}
	first, ok := raw[0].(map[string]any)
	if !ok {
		return zero, false, parseErrf(FormatYAML, "record 0 is not a mapping")
	}
	if err := a.fields.check(nullness(first)); err != nil {
		return zero, false, parseErr(FormatYAML, err)
	}

	// Only the first record is bound; later records are ignored.
	record, err := yaml.Marshal(first)
	if err != nil {
		return zero, false, parseErr(FormatYAML, err)
	}
	var state S
	if err := yaml.UnmarshalWithOptions(record, &state, yaml.DisallowUnknownField()); err != nil {
		return zero, false, parseErr(FormatYAML, err)
	}
	return state, true, nil
}
