package archive

import (
	"context"

	"github.com/bft-labs/lakhbronze/internal/domain"
)

// Reader yields archive entries in stored order.
type Reader interface {
	// Next returns the next matching entry.
	// Returns io.EOF once the archive is exhausted, and on every call after.
	Next(ctx context.Context) (domain.Entry, error)

	// Close releases the underlying stream. Next returns ErrClosed afterwards.
	Close() error
}

// Stats counts what a reader has seen so far.
type Stats struct {
	// Headers is the number of tar headers read
	Headers int64

	// Yielded is the number of entries returned by Next
	Yielded int64

	// Skipped is the number of suffix-matching members that were unavailable
	Skipped int64
}
