// Package execshell provides a shell adapter using exec.Command.
package execshell

import (
	"os"
	"os/exec"

	"github.com/structuresh/structure/internal/ports"
)

// ExecShell implements ports.Shell using exec.Command.
type ExecShell struct{}

// New creates a new ExecShell adapter.
func New() *ExecShell {
	return &ExecShell{}
}

// Run runs name with args attached to the current terminal and waits for it to exit.
func (s *ExecShell) Run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Compile-time check that ExecShell implements ports.Shell.
var _ ports.Shell = (*ExecShell)(nil)
