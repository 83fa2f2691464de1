package persistence

// Standard returns the json, yaml and toml adapters plus zstd-compressed json,
// all declaring the same fields.
func Standard[S any](fields ...string) ([]Adapter[S], error) {
	js := NewJSON[S](fields...)
	zst, err := NewCompressed[S](js)
	if err != nil {
		return nil, err
	}
	return []Adapter[S]{
		js,
		NewYAML[S](fields...),
		NewTOML[S](fields...),
		zst,
	}, nil
}
