// Package testutil provides testing utilities and helpers for runner and app tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/GriffinCanCode/miniapp/internal/domain/app"
)

// MockApp is a mock implementation of app.App for testing.
type MockApp[S any] struct {
	mock.Mock
}

// Initialize mocks the Initialize hook.
func (m *MockApp[S]) Initialize(env *app.Env[S]) error {
	args := m.Called(env)
	return args.Error(0)
}

// Step mocks the Step hook.
func (m *MockApp[S]) Step(env *app.Env[S]) (app.Status, error) {
	args := m.Called(env)
	return args.Get(0).(app.Status), args.Error(1)
}

// Shutdown mocks the Shutdown hook.
func (m *MockApp[S]) Shutdown(env *app.Env[S]) error {
	args := m.Called(env)
	return args.Error(0)
}

// NewMockApp creates a mock app whose expectations are asserted at cleanup.
func NewMockApp[S any](t *testing.T) *MockApp[S] {
	t.Helper()
	m := new(MockApp[S])
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// ExpectHappyPath makes Initialize and Shutdown succeed and stops after steps
// calls to Step.
func (m *MockApp[S]) ExpectHappyPath(steps int) *MockApp[S] {
	m.On("Initialize", mock.Anything).Return(nil).Once()
	if steps > 1 {
		m.On("Step", mock.Anything).Return(app.Continue, nil).Times(steps - 1)
	}
	m.On("Step", mock.Anything).Return(app.Stop, nil).Once()
	m.On("Shutdown", mock.Anything).Return(nil).Once()
	return m
}

// Input joins lines into console input, one choice per line.
func Input(lines ...string) *strings.Reader {
	if len(lines) == 0 {
		return strings.NewReader("")
	}
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

// ReadFile returns the content of name under dir, failing the test if absent.
func ReadFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(data)
}

// WriteFile creates name under dir with content.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// AssertNoFile fails the test when name exists under dir.
func AssertNoFile(t *testing.T, dir, name string) {
	t.Helper()
	if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
		t.Fatalf("expected %s to be absent", name)
	}
}
