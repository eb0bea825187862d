package ports

// Shell abstracts running interactive external commands for testability.
// Production code uses ExecShell adapter; tests use MockShell.
type Shell interface {
	// Run runs name with args attached to the current terminal and waits for it to exit.
	Run(name string, args ...string) error
}
