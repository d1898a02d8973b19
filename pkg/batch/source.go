package batch

import (
	"context"
	"io"
)

// Source is a pull-based sequence. Next returns io.EOF once exhausted.
type Source[T any] interface {
	Next(ctx context.Context) (T, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc[T any] func(ctx context.Context) (T, error)

// Next calls f(ctx).
func (f SourceFunc[T]) Next(ctx context.Context) (T, error) {
	return f(ctx)
}

// SliceSource yields the elements of a slice in order.
type SliceSource[T any] struct {
	items []T
	pos   int
}

// FromSlice returns a Source over items. The slice is not copied.
func FromSlice[T any](items []T) *SliceSource[T] {
	return &SliceSource[T]{items: items}
}

// Next returns the next element, or io.EOF.
func (s *SliceSource[T]) Next(ctx context.Context) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	if s.pos >= len(s.items) {
		return zero, io.EOF
	}
	item := s.items[s.pos]
	s.pos++
	return item, nil
}

// Map converts each element pulled from src with fn. When fn reports keep as
// false the element is dropped and the next one is pulled; a non-nil error
// from fn ends the sequence with that error.
func Map[S, T any](src Source[S], fn func(S) (out T, keep bool, err error)) Source[T] {
	return SourceFunc[T](func(ctx context.Context) (T, error) {
		var zero T
		for {
			in, err := src.Next(ctx)
			if err != nil {
				return zero, err
			}
			out, keep, err := fn(in)
			if err != nil {
				return zero, err
			}
			if keep {
				return out, nil
			}
		}
	})
}
