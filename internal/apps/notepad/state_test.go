package notepad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateOperations(t *testing.T) {
	var s State
	note, err := s.Append("Hello")
	require.NoError(t, err)
	assert.Equal(t, "Hello", note)
	note, err = s.Append(" World")
	require.NoError(t, err)
	assert.Equal(t, "Hello World", note)
	assert.Equal(t, 11, s.Len())

	s.Clear()
	assert.Equal(t, "", s.Note)
	assert.Equal(t, 0, s.Len())
}

func TestLenCountsCodePoints(t *testing.T) {
	s := State{Note: "héllo 世界"}
	assert.Equal(t, 8, s.Len())
}

func TestAppendRejectsInvalidUTF8(t *testing.T) {
	s := State{Note: "kept"}
	note, err := s.Append("bad \xff byte")
	assert.ErrorIs(t, err, ErrInvalidText)
	assert.Equal(t, "kept", note)
	assert.Equal(t, "kept", s.Note)
}
