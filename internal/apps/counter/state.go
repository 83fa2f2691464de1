package counter

import (
	"errors"
	"math"

	"github.com/GriffinCanCode/miniapp/internal/persistence"
)

// Name is the app name and the stem of its default state file
const Name = "Counter"

// ErrOverflow is returned when a step would move the value past the int range
var ErrOverflow = errors.New("counter out of range")

// State is the persisted counter
type State struct {
	Value int `json:"value" yaml:"value" toml:"value"`
}

// Increment adds one and returns the new value. At math.MaxInt the value is
// left unchanged and ErrOverflow returned.
func (s *State) Increment() (int, error) {
	if s.Value == math.MaxInt {
		return s.Value, ErrOverflow
	}
	s.Value++
	return s.Value, nil
}

// Decrement subtracts one and returns the new value. At math.MinInt the
// value is left unchanged and ErrOverflow returned.
func (s *State) Decrement() (int, error) {
	if s.Value == math.MinInt {
		return s.Value, ErrOverflow
	}
	s.Value--
	return s.Value, nil
}

// Reset sets the value to zero
func (s *State) Reset() {
	s.Value = 0
}

// Adapters returns every persistence adapter the counter supports
func Adapters() ([]persistence.Adapter[State], error) {
	return persistence.Standard[State]("value")
}
