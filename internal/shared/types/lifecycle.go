package types

import "fmt"

// Phase represents runner lifecycle states
type Phase string

const (
	PhaseCreated      Phase = "created"
	PhaseInitialized  Phase = "initialized"
	PhaseRunning      Phase = "running"
	PhaseShuttingDown Phase = "shutting_down"
	PhaseTerminated   Phase = "terminated"
)

var transitions = map[Phase][]Phase{
	PhaseCreated:      {PhaseInitialized, PhaseTerminated},
	PhaseInitialized:  {PhaseRunning, PhaseShuttingDown, PhaseTerminated},
	PhaseRunning:      {PhaseShuttingDown},
	PhaseShuttingDown: {PhaseTerminated},
}

// String returns the phase name
func (p Phase) String() string {
	return string(p)
}

// CanTransition reports whether moving from p to next is legal
func (p Phase) CanTransition(next Phase) bool {
	for _, allowed := range transitions[p] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition returns an error when moving from p to next is not legal
func (p Phase) Transition(next Phase) error {
	if !p.CanTransition(next) {
		return fmt.Errorf("invalid phase transition %s -> %s", p, next)
	}
	return nil
}
