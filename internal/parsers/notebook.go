package parsers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyNotebook is returned for notebooks with no content
	ErrEmptyNotebook = errors.New("file is empty")
	// ErrInvalidNotebook is returned when a notebook is not valid JSON
	ErrInvalidNotebook = errors.New("invalid JSON")
)

// NotebookParser extracts imports from the code cells of .ipynb files
type NotebookParser struct{}

// CanParse returns true for Jupyter notebooks
func (p *NotebookParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".ipynb")
}

// notebook represents the parts of the nbformat structure we read
type notebook struct {
	Cells []struct {
		CellType string          `json:"cell_type"`
		Source   json.RawMessage `json:"source"`
	} `json:"cells"`
}

// Parse extracts root package names from every code cell
func (p *NotebookParser) Parse(filepath string, content []byte) ([]string, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, ErrEmptyNotebook
	}

	var nb notebook
	if err := json.Unmarshal(content, &nb); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNotebook, err)
	}

	seen := make(map[string]struct{})
	for _, cell := range nb.Cells {
		if cell.CellType != "code" {
			continue
		}
		collectImports(cellSource(cell.Source), seen)
	}

	return sortedKeys(seen), nil
}

// cellSource joins a cell source, which nbformat allows as a list of lines or a single string
func cellSource(raw json.RawMessage) string {
	var lines []string
	if err := json.Unmarshal(raw, &lines); err == nil {
		return strings.Join(lines, "\n")
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}

	return ""
}
