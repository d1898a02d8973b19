package columnar

import (
	"context"
	"sync"

	"github.com/apache/arrow/go/v10/arrow"
	"github.com/apache/arrow/go/v10/arrow/memory"

	"github.com/bft-labs/lakhbronze/internal/domain"
)

// RecordFunc receives one converted batch. The record is released after
// the function returns; call Retain to keep it longer.
type RecordFunc func(ctx context.Context, resource string, seq int64, rec arrow.Record) error

// Sink converts batches to Arrow records and hands them to a RecordFunc.
// It is safe for concurrent use by several resources.
type Sink struct {
	mem     memory.Allocator
	fn      RecordFunc
	mu      sync.RWMutex
	schemas map[string]*arrow.Schema
}

// NewSink creates a Sink. A nil allocator uses the Go allocator.
func NewSink(mem memory.Allocator, fn RecordFunc) *Sink {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	return &Sink{mem: mem, fn: fn, schemas: make(map[string]*arrow.Schema)}
}

// SetSchema fixes the schema used for resource. Resources without a fixed
// schema have it inferred from each batch.
func (s *Sink) SetSchema(resource string, schema *arrow.Schema) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schemas[resource] = schema
}

// Write converts batch and passes it on.
func (s *Sink) Write(ctx context.Context, resource string, batch domain.Batch) error {
	s.mu.RLock()
	schema, ok := s.schemas[resource]
	s.mu.RUnlock()
	if !ok {
		schema = InferSchema(batch.Records)
	}

	rec, err := Build(s.mem, schema, batch.Records)
	if err != nil {
		return err
	}
	defer rec.Release()

	if s.fn == nil {
		return nil
	}
	return s.fn(ctx, resource, batch.Seq, rec)
}
