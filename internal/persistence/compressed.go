package persistence

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Compressed wraps another adapter's output in a zstd frame. Its format tag
// is the inner tag plus ".zst".
type Compressed[S any] struct {
	inner   Adapter[S]
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewCompressed creates a zstd adapter around inner
func NewCompressed[S any](inner Adapter[S]) (*Compressed[S], error) {
	if inner == nil {
		return nil, fmt.Errorf("inner adapter cannot be nil")
	}
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}
	return &Compressed[S]{inner: inner, encoder: encoder, decoder: decoder}, nil
}

func (a *Compressed[S]) Format() string {
	return a.inner.Format() + ".zst"
}

func (a *Compressed[S]) Encode(state S) ([]byte, error) {
	plain, err := a.inner.Encode(state)
	if err != nil {
		return nil, err
	}
	return a.encoder.EncodeAll(plain, nil), nil
}

func (a *Compressed[S]) Decode(data []byte) (S, bool, error) {
	var zero S
	plain, err := a.decoder.DecodeAll(data, nil)
	if err != nil {
		return zero, false, parseErr(a.Format(), err)
	}
	state, ok, err := a.inner.Decode(plain)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Format = a.Format()
		}
		return zero, false, err
	}
	return state, ok, nil
}
