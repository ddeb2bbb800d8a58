// Package inventory lists the packages installed in the Python environment.
package inventory

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Provider lists installed packages as a name -> version mapping
type Provider interface {
	Installed(ctx context.Context) (map[string]string, error)
}

// Static is a fixed inventory
type Static map[string]string

// Installed returns a copy of the mapping
func (s Static) Installed(context.Context) (map[string]string, error) {
	out := make(map[string]string, len(s))
	for name, version := range s {
		out[name] = version
	}
	return out, nil
}

// FromFile reads a saved "pip freeze" output
func FromFile(path string) (Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory file: %w", err)
	}
	return ParseFreeze(data), nil
}

// ParseFreeze parses "name==version" lines; anything else is skipped
func ParseFreeze(data []byte) Static {
	versions := make(Static)
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		parts := strings.Split(strings.TrimSpace(line), "==")
		if len(parts) != 2 {
			continue
		}
		versions[parts[0]] = parts[1]
	}
	return versions
}
