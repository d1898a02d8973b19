package batch

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bft-labs/lakhbronze/internal/domain"
)

// Batcher partitions a Source into batches of at most size items.
type Batcher[T any] struct {
	src     Source[T]
	size    int
	batches int64
	items   int64
	done    bool
}

// New creates a Batcher pulling from src. size must be positive.
func New[T any](src Source[T], size int) (*Batcher[T], error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidBatchSize, size)
	}
	return &Batcher[T]{src: src, size: size}, nil
}

// Next drains up to size items and returns them in source order.
// Returns io.EOF when the source is exhausted and no items remain; an empty
// batch is never returned. Any other source error is returned as is and the
// items pulled so far in this call are discarded.
func (b *Batcher[T]) Next(ctx context.Context) ([]T, error) {
	if b.done {
		return nil, io.EOF
	}

	items := make([]T, 0, b.size)
	for len(items) < b.size {
		item, err := b.src.Next(ctx)
		if errors.Is(err, io.EOF) {
			b.done = true
			break
		}
		if err != nil {
			b.done = true
			return nil, err
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, io.EOF
	}
	b.batches++
	b.items += int64(len(items))
	return items, nil
}

// Size returns the configured maximum batch size.
func (b *Batcher[T]) Size() int {
	return b.size
}

// Emitted returns the number of batches and items handed out so far.
func (b *Batcher[T]) Emitted() (batches, items int64) {
	return b.batches, b.items
}
