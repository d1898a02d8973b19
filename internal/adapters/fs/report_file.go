package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/bft-labs/lakhbronze/internal/domain"
)

const reportFileName = "report.json"

// ReportFileRepository implements ports.ReportRepository using a JSON file.
type ReportFileRepository struct {
	dir string
}

// NewReportFileRepository creates a ReportFileRepository for the given directory.
func NewReportFileRepository(dir string) *ReportFileRepository {
	return &ReportFileRepository{dir: dir}
}

// Load retrieves the last saved report.
// Returns an empty report and nil error if no report file exists.
func (r *ReportFileRepository) Load(ctx context.Context) (domain.Report, error) {
	data, err := os.ReadFile(r.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Report{}, nil
		}
		return domain.Report{}, err
	}

	var report domain.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return domain.Report{}, fmt.Errorf("decode %s: %w", reportFileName, err)
	}
	return report, nil
}

// Save writes the report to a temp file and renames it into place.
func (r *ReportFileRepository) Save(ctx context.Context, report domain.Report) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	path := r.Path()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Path returns the full path to the report file.
func (r *ReportFileRepository) Path() string {
	return filepath.Join(r.dir, reportFileName)
}
