package mocks

import (
	"github.com/structuresh/structure/internal/ports"
)

// MockShell implements ports.Shell for testing.
type MockShell struct {
	// Calls records every command run
	Calls [][]string
	// Err is returned from Run when set
	Err error
}

// NewMockShell creates a new mock shell.
func NewMockShell() *MockShell {
	return &MockShell{}
}

// Run records the command line.
func (m *MockShell) Run(name string, args ...string) error {
	m.Calls = append(m.Calls, append([]string{name}, args...))
	return m.Err
}

// Compile-time check that MockShell implements ports.Shell.
var _ ports.Shell = (*MockShell)(nil)
