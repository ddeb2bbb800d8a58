package reporter

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ethanolivertroy/autoreqs/internal/models"
)

const notInstalled = "not installed"

// TerminalReporter outputs a human-readable table of discovered packages
type TerminalReporter struct{}

// Report generates terminal output for the given scan result
func (r *TerminalReporter) Report(result *models.Result) ([]byte, error) {
	if len(result.Imports) == 0 {
		return []byte(fmt.Sprintf("No imports found in %d files under %s.\n", len(result.Files), result.Root)), nil
	}

	versions := make(map[string]string, len(result.Requirements))
	for _, req := range result.Requirements {
		versions[req.Name] = req.Version
	}

	var sb strings.Builder

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Package", "Version", "Files"})
	for _, name := range result.ImportNames() {
		version, ok := versions[name]
		if !ok {
			version = notInstalled
		}
		tw.AppendRow(table.Row{name, version, len(result.Imports[name].Files)})
	}
	tw.AppendFooter(table.Row{"", "pinned", fmt.Sprintf("%d/%d", len(result.Requirements), len(result.Imports))})
	sb.WriteString(tw.Render())
	sb.WriteString("\n")

	if len(result.Skipped) > 0 {
		sb.WriteString(fmt.Sprintf("\nSkipped %d files:\n", len(result.Skipped)))
		for _, s := range result.Skipped {
			sb.WriteString(fmt.Sprintf("  %s (%s)\n", s.Path, s.Reason))
		}
	}

	return []byte(sb.String()), nil
}
