package persistence

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// Adapter converts one State type to and from one external representation.
// Implementations hold no mutable state and are safe to reuse.
type Adapter[S any] interface {
	// Format is the tag used for lookup and default file extensions
	Format() string
	// Encode serializes state as a single record array
	Encode(state S) ([]byte, error)
	// Decode reads the first record. ok is false when the array is empty.
	Decode(data []byte) (state S, ok bool, err error)
}

// Registry maps format tags to adapters for one State type
type Registry[S any] struct {
	adapters map[string]Adapter[S]
}

// NewRegistry creates a registry holding the given adapters
func NewRegistry[S any](adapters ...Adapter[S]) (*Registry[S], error) {
	r := &Registry[S]{adapters: make(map[string]Adapter[S], len(adapters))}
	for _, a := range adapters {
		if err := r.Register(a); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds an adapter. Format tags must be unique.
func (r *Registry[S]) Register(a Adapter[S]) error {
	if a == nil {
		return fmt.Errorf("adapter cannot be nil")
	}
	format := NormalizeFormat(a.Format())
	if format == "" {
		return fmt.Errorf("adapter has an empty format tag")
	}
	if _, exists := r.adapters[format]; exists {
		return fmt.Errorf("adapter for format %q already registered", format)
	}
	r.adapters[format] = a
	return nil
}

// Lookup returns the adapter for a format
func (r *Registry[S]) Lookup(format string) (Adapter[S], error) {
	a, ok := r.adapters[NormalizeFormat(format)]
	if !ok {
		return nil, &UnsupportedFormatError{Format: format, Known: r.Formats()}
	}
	return a, nil
}

// Formats returns the registered format tags, sorted
func (r *Registry[S]) Formats() []string {
	formats := make([]string, 0, len(r.adapters))
	for f := range r.adapters {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	return formats
}

// Len returns the number of registered adapters
func (r *Registry[S]) Len() int {
	return len(r.adapters)
}

// NormalizeFormat lowercases a format tag and strips a leading dot
func NormalizeFormat(format string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
}

func isBlank(data []byte) bool {
	return len(bytes.TrimSpace(data)) == 0
}
