package reporter

import (
	"encoding/json"

	"github.com/ethanolivertroy/autoreqs/internal/models"
)

// JSONReporter outputs the scan summary in JSON format
type JSONReporter struct{}

// jsonOutput represents the JSON output structure
type jsonOutput struct {
	Summary  jsonSummary   `json:"summary"`
	Packages []jsonPackage `json:"packages"`
	Skipped  []jsonSkipped `json:"skipped"`
}

type jsonSummary struct {
	Root          string `json:"root"`
	FilesScanned  int    `json:"files_scanned"`
	FilesSkipped  int    `json:"files_skipped"`
	TotalImports  int    `json:"total_imports"`
	PinnedImports int    `json:"pinned_imports"`
}

type jsonPackage struct {
	Name      string   `json:"name"`
	Version   string   `json:"version,omitempty"`
	Installed bool     `json:"installed"`
	Files     []string `json:"files"`
}

type jsonSkipped struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Report generates JSON output for the given scan result
func (r *JSONReporter) Report(result *models.Result) ([]byte, error) {
	output := jsonOutput{
		Summary: jsonSummary{
			Root:          result.Root,
			FilesScanned:  len(result.Files),
			FilesSkipped:  len(result.Skipped),
			TotalImports:  len(result.Imports),
			PinnedImports: len(result.Requirements),
		},
		Packages: make([]jsonPackage, 0, len(result.Imports)),
		Skipped:  make([]jsonSkipped, 0, len(result.Skipped)),
	}

	versions := make(map[string]string, len(result.Requirements))
	for _, req := range result.Requirements {
		versions[req.Name] = req.Version
	}

	for _, name := range result.ImportNames() {
		version, ok := versions[name]
		output.Packages = append(output.Packages, jsonPackage{
			Name:      name,
			Version:   version,
			Installed: ok,
			Files:     result.Imports[name].Files,
		})
	}

	for _, s := range result.Skipped {
		output.Skipped = append(output.Skipped, jsonSkipped{Path: s.Path, Reason: s.Reason})
	}

	return json.MarshalIndent(output, "", "  ")
}
