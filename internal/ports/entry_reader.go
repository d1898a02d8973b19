package ports

import (
	"context"

	"github.com/bft-labs/lakhbronze/internal/domain"
	"github.com/bft-labs/lakhbronze/pkg/container"
)

// EntryReader yields archive entries in stored order.
type EntryReader interface {
	// Next returns the next entry.
	// Returns io.EOF when the archive is exhausted.
	Next(ctx context.Context) (domain.Entry, error)

	// Close releases the underlying stream.
	Close() error
}

// ContainerOpener opens an entry's content as a container.
// The returned group must be closed by the caller.
type ContainerOpener interface {
	Open(ctx context.Context, e domain.Entry) (container.Group, error)
}
