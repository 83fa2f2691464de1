package persistence

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/tidwall/gjson"
)

// FormatJSON is the tag of the JSON adapter
const FormatJSON = "json"

// jsonAPI mirrors encoding/json behaviour and rejects unknown fields
var jsonAPI = sonic.Config{
	EscapeHTML:            true,
	SortMapKeys:           true,
	CompactMarshaler:      true,
	CopyString:            true,
	ValidateString:        true,
	DisallowUnknownFields: true,
}.Froze()

// JSON stores records as a JSON array
type JSON[S any] struct {
	fields fieldSet
}

// NewJSON creates a JSON adapter accepting the given record keys
func NewJSON[S any](fields ...string) *JSON[S] {
	return &JSON[S]{fields: newFieldSet(fields)}
}

func (a *JSON[S]) Format() string { return FormatJSON }

func (a *JSON[S]) Encode(state S) ([]byte, error) {
	data, err := jsonAPI.MarshalIndent([]S{state}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("JSON encoding error: %w", err)
	}
	return append(data, '\n'), nil
}

func (a *JSON[S]) Decode(data []byte) (S, bool, error) {
	var zero S
	if isBlank(data) {
		return zero, false, parseErrf(FormatJSON, "empty document")
	}
	if !gjson.ValidBytes(data) {
		return zero, false, parseErrf(FormatJSON, "invalid JSON")
	}

	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return zero, false, parseErrf(FormatJSON, "expected an array of records, got %s", root.Type)
	}
	records := root.Array()
	if len(records) == 0 {
		return zero, false, nil
	}

	first := records[0]
	if !first.IsObject() {
		return zero, false, parseErrf(FormatJSON, "record 0 is not an object")
	}
	record := make(map[string]bool)
	first.ForEach(func(key, value gjson.Result) bool {
		record[key.String()] = value.Type == gjson.Null
		return true
	})
	if err := a.fields.check(record); err != nil {
		return zero, false, parseErr(FormatJSON, err)
	}

	var state S
	if err := jsonAPI.UnmarshalFromString(first.Raw, &state); err != nil {
		return zero, false, parseErr(FormatJSON, err)
	}
	return state, true, nil
}
