package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ethanolivertroy/autoreqs/internal/inventory"
	"github.com/ethanolivertroy/autoreqs/internal/models"
	"github.com/ethanolivertroy/autoreqs/internal/parsers"
)

// Scanner orchestrates discovery, extraction, inventory and reconciliation
type Scanner struct {
	config    *models.Config
	parsers   []parsers.Parser
	inventory inventory.Provider
	logger    *slog.Logger
}

// New creates a new Scanner with the given configuration
func New(config *models.Config, inv inventory.Provider, logger *slog.Logger) *Scanner {
	return &Scanner{
		config:    config,
		parsers:   parsers.GetAllParsers(),
		inventory: inv,
		logger:    logger,
	}
}

// Scan runs the pipeline up to, but not including, manifest emission
func (s *Scanner) Scan(ctx context.Context) (*models.Result, error) {
	result := &models.Result{
		Root:    s.config.Root,
		Imports: make(map[string]models.Import),
	}

	// Step 1: Discover candidate files
	files, err := Discover(s.config.Root, s.config.Extensions, s.config.Exclude)
	if err != nil {
		return nil, fmt.Errorf("failed to discover files: %w", err)
	}
	result.Files = files
	s.logger.Info(fmt.Sprintf("Found %d files in %s", len(files), s.config.Root))

	// Step 2: List installed packages
	installed, err := s.inventory.Installed(ctx)
	if err != nil {
		// Non-fatal: continue with an empty inventory
		s.logger.Error(err.Error())
		installed = map[string]string{}
	}

	// Step 3: Extract imports from every file
	for _, path := range files {
		names, err := s.parseFile(path)
		if err != nil {
			s.logger.Error(skipMessage(path, err))
			result.Skipped = append(result.Skipped, models.SkippedFile{Path: path, Reason: skipReason(err)})
			continue
		}
		for _, name := range names {
			imp := result.Imports[name]
			imp.Name = name
			imp.Files = append(imp.Files, path)
			result.Imports[name] = imp
		}
	}

	// Step 4: Cross-reference with the inventory
	result.Requirements, result.Unresolved = Reconcile(result.ImportNames(), installed)
	s.logger.Info(fmt.Sprintf("Found %d installed packages", len(result.Requirements)))
	if len(result.Unresolved) > 0 {
		s.logger.Debug("imports not installed", "packages", strings.Join(result.Unresolved, ","))
	}

	return result, nil
}

// parseFile reads a file and hands it to the matching parser
func (s *Scanner) parseFile(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	parser := parsers.ForFile(s.parsers, filepath.Base(path))
	names, err := parser.Parse(path, content)
	if err != nil {
		return nil, err
	}

	if _, ok := parser.(*parsers.NotebookParser); ok {
		s.logger.Info(fmt.Sprintf("Found %d packages in %s", len(names), path))
	} else {
		s.logger.Debug(fmt.Sprintf("Found %d packages in %s", len(names), path))
	}

	return names, nil
}

func skipMessage(path string, err error) string {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "File not found: " + path
	case errors.Is(err, parsers.ErrEmptyNotebook):
		return "File is empty: " + path
	case errors.Is(err, parsers.ErrInvalidNotebook):
		return "Invalid JSON: " + path
	default:
		return fmt.Sprintf("Failed to read %s: %v", path, err)
	}
}

func skipReason(err error) string {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "file not found"
	case errors.Is(err, parsers.ErrEmptyNotebook):
		return "empty notebook"
	case errors.Is(err, parsers.ErrInvalidNotebook):
		return "invalid JSON"
	default:
		return err.Error()
	}
}

// Discover walks root and returns every file whose name ends with one of
// extensions. Directories named in exclude are not entered. A missing root
// yields no files and no error.
func Discover(root string, extensions, exclude []string) ([]string, error) {
	var files []string

	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[name] = true
	}

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable or missing: nothing to collect here
			if d != nil && d.IsDir() && p != root {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if p != root && skip[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if hasSuffix(d.Name(), extensions) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

func hasSuffix(name string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// Reconcile pins every name found in installed. Names that are not installed
// are returned separately. Both slices are sorted.
func Reconcile(names []string, installed map[string]string) ([]models.Requirement, []string) {
	var reqs []models.Requirement
	var unresolved []string

	for _, name := range names {
		version, ok := installed[name]
		if !ok {
			unresolved = append(unresolved, name)
			continue
		}
		reqs = append(reqs, models.Requirement{Name: name, Version: version})
	}

	sort.Slice(reqs, func(i, j int) bool { return reqs[i].String() < reqs[j].String() })
	sort.Strings(unresolved)

	return reqs, unresolved
}
