package inventory

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// DefaultCommand is the freeze command run when none is configured
const DefaultCommand = "pip freeze"

// PipFreeze lists installed packages by running "pip freeze"
type PipFreeze struct {
	command []string
	logger  *slog.Logger
}

// NewPipFreeze creates a provider for the given command line, e.g. "python3 -m pip freeze"
func NewPipFreeze(command string, logger *slog.Logger) *PipFreeze {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		fields = strings.Fields(DefaultCommand)
	}
	return &PipFreeze{command: fields, logger: logger}
}

// Installed runs the freeze command and parses its output.
// A missing executable yields an empty inventory, and a non-zero exit
// keeps whatever was printed; both are logged instead of returned.
func (p *PipFreeze) Installed(ctx context.Context) (map[string]string, error) {
	path, err := exec.LookPath(p.command[0])
	if err != nil {
		p.logger.Error(p.command[0] + " not found")
		return map[string]string{}, nil
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, p.command[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			p.logger.Error(p.command[0] + " not found")
			return map[string]string{}, nil
		}

		// pip can fail after printing most of the list; keep what it printed
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("failed to run %s: %w", strings.Join(p.command, " "), err)
		}
		p.logger.Error(fmt.Sprintf("%s: %v", strings.Join(p.command, " "), err), "stderr", strings.TrimSpace(stderr.String()))
	}

	versions := ParseFreeze(stdout.Bytes())
	p.logger.Info(fmt.Sprintf("pip freeze found %d packages", len(versions)))

	return versions, nil
}
