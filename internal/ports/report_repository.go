package ports

import (
	"context"

	"github.com/bft-labs/lakhbronze/internal/domain"
)

// ReportRepository persists run reports.
type ReportRepository interface {
	// Load retrieves the last saved report.
	// Returns an empty report and nil error if none exists.
	Load(ctx context.Context) (domain.Report, error)

	// Save persists the report atomically.
	Save(ctx context.Context, report domain.Report) error
}
