package ports

import (
	"context"

	"github.com/bft-labs/lakhbronze/internal/domain"
)

// BatchSink receives batches produced by a resource.
// Ownership of the batch passes to the sink. Implementations must be safe
// for concurrent use when several resources run at once.
type BatchSink interface {
	Write(ctx context.Context, resource string, batch domain.Batch) error
}
