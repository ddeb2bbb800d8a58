package parsers

import (
	"regexp"
	"sort"
	"strings"
)

// importPattern matches "import a.b" and "from a.b import c" at the start of a line.
// It is a heuristic: aliases, conditional and dynamic imports are not understood.
var importPattern = regexp.MustCompile(`(?m)^\s*(?:import|from)\s+([a-zA-Z0-9_.]+)`)

// PythonSourceParser extracts imports from .py files
type PythonSourceParser struct{}

// CanParse returns true for Python source files
func (p *PythonSourceParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".py") || strings.HasSuffix(filename, ".pyw")
}

// Parse extracts root package names from Python source
func (p *PythonSourceParser) Parse(filepath string, content []byte) ([]string, error) {
	seen := make(map[string]struct{})
	collectImports(string(content), seen)
	return sortedKeys(seen), nil
}

// collectImports adds the root package of every import line in text to seen
func collectImports(text string, seen map[string]struct{}) {
	for _, m := range importPattern.FindAllStringSubmatch(text, -1) {
		// "from . import x" has no root package
		if root := rootPackage(m[1]); root != "" {
			seen[root] = struct{}{}
		}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// versionPattern matches package version specifiers like ==1.2.3, >=1.2.3, ~=1.2.3
var versionPattern = regexp.MustCompile(`^([a-zA-Z0-9_.-]+)\s*([<>=!~]+)\s*([\d.]+.*)$`)

// simplePattern matches just package names without versions
var simplePattern = regexp.MustCompile(`^([a-zA-Z0-9_.-]+)\s*$`)

// RequirementLine is one entry of a requirements.txt file
type RequirementLine struct {
	Name     string
	Operator string // "==", ">=", ... or empty when unversioned
	Version  string
}

// Pinned reports whether the entry names one exact version
func (r RequirementLine) Pinned() bool {
	return r.Operator == "==" && r.Version != ""
}

// ParseRequirements extracts entries from requirements.txt content
func ParseRequirements(content []byte) []RequirementLine {
	var reqs []RequirementLine

	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)

		// Skip empty lines, comments, and options
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}

		// Remove inline comments
		if idx := strings.Index(line, "#"); idx > 0 {
			line = strings.TrimSpace(line[:idx])
		}

		// Remove extras like [security]
		if idx := strings.Index(line, "["); idx > 0 {
			bracketEnd := strings.Index(line, "]")
			if bracketEnd > idx {
				line = strings.TrimSpace(line[:idx] + line[bracketEnd+1:])
			}
		}

		if req, ok := parseVersionSpec(line); ok {
			reqs = append(reqs, req)
		}
	}

	return reqs
}

func parseVersionSpec(line string) (RequirementLine, bool) {
	if matches := versionPattern.FindStringSubmatch(line); matches != nil {
		return RequirementLine{Name: matches[1], Operator: matches[2], Version: matches[3]}, true
	}

	if matches := simplePattern.FindStringSubmatch(line); matches != nil {
		return RequirementLine{Name: matches[1]}, true
	}

	return RequirementLine{}, false
}
