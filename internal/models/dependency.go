package models

import "sort"

// Import is a root package name found in one or more scanned files
type Import struct {
	Name  string
	Files []string // Files that import this package
}

// Requirement is a package pinned to its installed version
type Requirement struct {
	Name    string
	Version string
}

// String returns the manifest form name==version
func (r Requirement) String() string {
	return r.Name + "==" + r.Version
}

// SkippedFile records a file whose extraction degraded to an empty result
type SkippedFile struct {
	Path   string
	Reason string
}

// Result holds everything produced by one scan
type Result struct {
	Root         string
	Files        []string          // Files discovered under Root
	Imports      map[string]Import // Keyed by root package name
	Requirements []Requirement     // Reconciled, sorted by manifest string
	Unresolved   []string          // Imported but not installed, sorted
	Skipped      []SkippedFile
}

// ImportNames returns the extracted package names in sorted order
func (r *Result) ImportNames() []string {
	names := make([]string, 0, len(r.Imports))
	for name := range r.Imports {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entries returns the manifest entries for the reconciled requirements
func (r *Result) Entries() []string {
	entries := make([]string, 0, len(r.Requirements))
	for _, req := range r.Requirements {
		entries = append(entries, req.String())
	}
	return entries
}
