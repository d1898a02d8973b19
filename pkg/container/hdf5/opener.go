package hdf5

import (
	"context"

	"github.com/bft-labs/lakhbronze/internal/domain"
	"github.com/bft-labs/lakhbronze/pkg/container"
)

// Opener opens archive entries as HDF5 containers, spilling each one to
// TempDir for the lifetime of the handle.
type Opener struct {
	TempDir string
}

// Open implements ports.ContainerOpener.
func (o Opener) Open(ctx context.Context, e domain.Entry) (container.Group, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return OpenBytes(e.Content, o.TempDir)
}
