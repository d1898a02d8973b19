package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apache/arrow/go/v10/arrow"
	"github.com/apache/arrow/go/v10/arrow/ipc"
	"github.com/hashicorp/go-multierror"
)

// ArrowFileWriter writes each batch to its own Arrow IPC file under
// dir/<resource>/part-<seq>.arrow.
type ArrowFileWriter struct {
	dir string
}

// NewArrowFileWriter creates a writer rooted at dir.
func NewArrowFileWriter(dir string) *ArrowFileWriter {
	return &ArrowFileWriter{dir: dir}
}

// PartPath returns the file a batch is written to.
func (w *ArrowFileWriter) PartPath(resource string, seq int64) string {
	return filepath.Join(w.dir, resource, fmt.Sprintf("part-%06d.arrow", seq))
}

// WriteRecord writes rec atomically. It has the signature of
// columnar.RecordFunc.
func (w *ArrowFileWriter) WriteRecord(ctx context.Context, resource string, seq int64, rec arrow.Record) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := w.PartPath(resource, seq)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tmp)
		}
	}()

	fw, err := ipc.NewFileWriter(f, ipc.WithSchema(rec.Schema()))
	if err != nil {
		f.Close()
		return fmt.Errorf("create arrow writer: %w", err)
	}

	var result error
	if err := fw.Write(rec); err != nil {
		result = multierror.Append(result, fmt.Errorf("write %s: %w", path, err))
	}
	if err := fw.Close(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := f.Close(); err != nil {
		result = multierror.Append(result, err)
	}
	if result != nil {
		return result
	}
	return os.Rename(tmp, path)
}
