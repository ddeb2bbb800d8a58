// Package manifest renders and writes requirements.txt.
package manifest

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/ethanolivertroy/autoreqs/internal/parsers"
)

// ErrDeclined is returned when the user refuses to overwrite an existing manifest
var ErrDeclined = errors.New("overwrite declined")

// Writer writes manifests, asking before replacing an existing one
type Writer struct {
	Confirmer Confirmer
	Logger    *slog.Logger
	Out       io.Writer // Success messages
	Err       io.Writer // Warnings
}

// Render sorts entries and returns them one per line
func Render(entries []string) []byte {
	sorted := append([]string(nil), entries...)
	sort.Strings(sorted)

	var sb strings.Builder
	for _, e := range sorted {
		sb.WriteString(e)
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}

// Write renders entries to path. If path exists the Confirmer is asked
// first; a refusal returns ErrDeclined and leaves the file untouched.
func (w *Writer) Write(path string, entries []string) error {
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		added, removed := Diff(existing, entries)
		w.Logger.Warn(filepath.Base(path) + " already exists. Overwriting it.")
		color.New(color.FgYellow).Fprintf(w.Err, "%s already exists (%d to add, %d to remove).\n", path, added, removed)

		ok, err := w.Confirmer.Confirm(path)
		if err != nil {
			return err
		}
		if !ok {
			w.Logger.Info("Overwrite declined, leaving " + path + " unchanged")
			return ErrDeclined
		}
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("failed to read existing manifest: %w", err)
	}

	w.Logger.Info(fmt.Sprintf("Writing %d packages to %s", len(entries), path))
	if err := os.WriteFile(path, Render(entries), 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	color.New(color.FgGreen).Fprintf(w.Out, "Successfully wrote %d packages to %s\n", len(entries), path)

	return nil
}

// Diff counts entries that would be added to and removed from an existing
// manifest. Existing exact pins are compared as name==version; unpinned or
// ranged entries are compared by name only.
func Diff(existing []byte, entries []string) (added, removed int) {
	pins := make(map[string]bool)
	loose := make(map[string]bool)
	for _, req := range parsers.ParseRequirements(existing) {
		if req.Pinned() {
			pins[req.Name+"=="+req.Version] = true
		} else {
			loose[req.Name] = true
		}
	}

	next := make(map[string]bool, len(entries))
	names := make(map[string]bool, len(entries))
	for _, e := range entries {
		name, _, _ := strings.Cut(e, "==")
		next[e] = true
		names[name] = true
		if !pins[e] && !loose[name] {
			added++
		}
	}
	for e := range pins {
		if !next[e] {
			removed++
		}
	}
	for name := range loose {
		if !names[name] {
			removed++
		}
	}
	return added, removed
}
