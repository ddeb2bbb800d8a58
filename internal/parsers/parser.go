package parsers

import "strings"

// Parser is the interface for import extractors
type Parser interface {
	// CanParse returns true if this parser can handle the given filename
	CanParse(filename string) bool

	// Parse extracts the root package names imported by the file content
	Parse(filepath string, content []byte) ([]string, error)
}

// GetAllParsers returns all available parsers, most specific first
func GetAllParsers() []Parser {
	return []Parser{
		&NotebookParser{},
		&PythonSourceParser{},
	}
}

// ForFile returns the parser for filename, falling back to plain source
// extraction for suffixes no parser claims
func ForFile(parsers []Parser, filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return &PythonSourceParser{}
}

// rootPackage returns the first dot-separated segment of a module path
func rootPackage(module string) string {
	root, _, _ := strings.Cut(module, ".")
	return root
}
