package reporter

import "github.com/ethanolivertroy/autoreqs/internal/models"

// Reporter is the interface for scan summary formatters
type Reporter interface {
	// Report generates output for the given scan result
	Report(result *models.Result) ([]byte, error)
}

// Get returns a reporter for the specified format, or nil for "none"
func Get(format string) Reporter {
	switch format {
	case models.SummaryJSON:
		return &JSONReporter{}
	case models.SummaryTable:
		return &TerminalReporter{}
	default:
		return nil
	}
}
