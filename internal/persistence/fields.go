package persistence

import (
	"fmt"
	"sort"
)

// fieldSet holds the record keys an adapter accepts. An empty set accepts
// any key and leaves unknown-field handling to the codec.
type fieldSet map[string]struct{}

func newFieldSet(names []string) fieldSet {
	set := make(fieldSet, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// check validates the keys of one record against the declared fields.
// Matching is exact, so "Value" does not satisfy a declared "value". Every
// declared field must be present and not null. record maps each key to
// whether its value is null.
func (f fieldSet) check(record map[string]bool) error {
	if len(f) == 0 {
		return nil
	}
	var unknown, missing []string
	for k := range record {
		if _, ok := f[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unknown field(s) %q, expected %q", unknown, f.names())
	}
	for _, name := range f.names() {
		if null, ok := record[name]; !ok || null {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing or null field(s) %q", missing)
	}
	return nil
}

func (f fieldSet) names() []string {
	names := make([]string, 0, len(f))
	for n := range f {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// nullness reports, per key of a decoded mapping, whether the value is null
func nullness(m map[string]any) map[string]bool {
	record := make(map[string]bool, len(m))
	for k, v := range m {
		record[k] = v == nil
	}
	return record
}
