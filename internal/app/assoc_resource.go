package app

import (
	"context"
	"fmt"

	"github.com/bft-labs/lakhbronze/internal/domain"
	"github.com/bft-labs/lakhbronze/pkg/assoc"
	"github.com/bft-labs/lakhbronze/pkg/batch"
)

// AssociationResource flattens a JSON association file into rows.
// The file is read and validated in full before the first batch, so a
// malformed file fails Open and yields nothing.
type AssociationResource struct {
	name      string
	path      string
	shape     assoc.Shape
	batchSize int
	opts      options
}

// NewMatchScoresResource reads a map of track id to {midi md5: score}.
func NewMatchScoresResource(path string, batchSize int, opts ...Option) *AssociationResource {
	return &AssociationResource{
		name:      ResourceMatchScores,
		path:      path,
		shape:     assoc.ShapeMap,
		batchSize: batchSize,
		opts:      newOptions(ResourceMatchScores, opts),
	}
}

// NewMD5PathsResource reads a map of midi md5 to its ordered source paths.
func NewMD5PathsResource(path string, batchSize int, opts ...Option) *AssociationResource {
	return &AssociationResource{
		name:      ResourceMD5Paths,
		path:      path,
		shape:     assoc.ShapeList,
		batchSize: batchSize,
		opts:      newOptions(ResourceMD5Paths, opts),
	}
}

func (r *AssociationResource) Name() string {
	return r.name
}

// Open reads and flattens the file.
func (r *AssociationResource) Open(ctx context.Context) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := assoc.ReadFile(r.path, r.shape)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.name, err)
	}

	src := batch.Map[domain.AssociationRow, domain.Record](batch.FromSlice(rows),
		func(row domain.AssociationRow) (domain.Record, bool, error) {
			return row.Record(), true, nil
		})
	b, err := batch.New[domain.Record](src, r.batchSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.name, err)
	}
	return newBatchStream(r.name, b, nil, r.opts), nil
}
