package manifest

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirmer decides whether an existing manifest may be overwritten
type Confirmer interface {
	Confirm(path string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(path string) (bool, error)

// Confirm calls f
func (f ConfirmFunc) Confirm(path string) (bool, error) { return f(path) }

// AlwaysConfirm overwrites without asking
var AlwaysConfirm = ConfirmFunc(func(string) (bool, error) { return true, nil })

// Prompt asks on an interactive stream
type Prompt struct {
	In  io.Reader
	Out io.Writer
}

// Confirm blocks until a line is read. Only "y" (any case) confirms.
func (p *Prompt) Confirm(string) (bool, error) {
	fmt.Fprint(p.Out, "Do you want to overwrite the file? (y/n): ")

	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}

	return strings.EqualFold(strings.TrimSpace(line), "y"), nil
}
