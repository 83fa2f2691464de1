package notepad

import (
	"errors"
	"unicode/utf8"

	"github.com/GriffinCanCode/miniapp/internal/persistence"
)

// Name is the app name and the stem of its default state file
const Name = "NotePad"

// ErrInvalidText is returned when appended text is not valid UTF-8
var ErrInvalidText = errors.New("text must be valid UTF-8")

// State is the persisted note
type State struct {
	Note string `json:"note" yaml:"note" toml:"note"`
}

// Append adds text to the end of the note and returns the new note. Text
// that is not valid UTF-8 leaves the note unchanged, since no state format
// could write it back byte for byte.
func (s *State) Append(text string) (string, error) {
	if !utf8.ValidString(text) {
		return s.Note, ErrInvalidText
	}
	s.Note += text
	return s.Note, nil
}

// Clear empties the note
func (s *State) Clear() {
	s.Note = ""
}

// Len counts the note's characters as Unicode code points
func (s *State) Len() int {
	return utf8.RuneCountInString(s.Note)
}

// Adapters returns every persistence adapter the notepad supports
func Adapters() ([]persistence.Adapter[State], error) {
	return persistence.Standard[State]("note")
}
