package auth

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter asks the user for input.
type Prompter interface {
	// Prompt reads one line of visible input.
	Prompt(label string) (string, error)
	// Password reads one line without echo.
	Password(label string) (string, error)
}

// TerminalPrompter reads from a file, disabling echo for passwords when the
// file is a terminal.
type TerminalPrompter struct {
	in     *os.File
	reader *bufio.Reader
	out    io.Writer
}

// NewTerminalPrompter creates a prompter reading in and writing labels to out.
func NewTerminalPrompter(in *os.File, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{in: in, reader: bufio.NewReader(in), out: out}
}

// Prompt writes label and returns the trimmed line read.
func (p *TerminalPrompter) Prompt(label string) (string, error) {
	fmt.Fprint(p.out, label)
	return p.readLine()
}

// Password writes label and reads a line with echo disabled.
func (p *TerminalPrompter) Password(label string) (string, error) {
	fmt.Fprint(p.out, label)

	fd := int(p.in.Fd())
	if !term.IsTerminal(fd) {
		return p.readLine()
	}

	b, err := term.ReadPassword(fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(b), nil
}

func (p *TerminalPrompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
