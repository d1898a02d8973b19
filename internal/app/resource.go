package app

import (
	"context"
	"io"

	"github.com/bft-labs/lakhbronze/internal/domain"
	"github.com/bft-labs/lakhbronze/internal/metrics"
	"github.com/bft-labs/lakhbronze/pkg/batch"
	"github.com/bft-labs/lakhbronze/pkg/log"
)

// Resource names produced by the bronze pipeline.
const (
	ResourceMidiFiles   = "raw_midi_files"
	ResourceH5Extract   = "h5_extract"
	ResourceMatchScores = "raw_match_scores"
	ResourceMD5Paths    = "raw_md5_paths"
)

// Default batch sizes per resource. Container rows are far larger than
// association rows, so h5_extract batches are small.
const (
	DefaultMidiBatchSize  = 1000
	DefaultH5BatchSize    = 20
	DefaultAssocBatchSize = 1000
)

// Resource produces a lazy sequence of batches.
type Resource interface {
	Name() string

	// Open starts a pass over the resource. Every call starts from the
	// beginning; the returned stream must be closed.
	Open(ctx context.Context) (Stream, error)
}

// Stream yields the batches of one resource pass.
type Stream interface {
	// Next returns the next batch, or io.EOF once the resource is exhausted.
	Next(ctx context.Context) (domain.Batch, error)

	// Stats reports counters for the pass so far.
	Stats() domain.ResourceReport

	Close() error
}

// Option configures a resource.
type Option func(*options)

type options struct {
	logger  log.Logger
	metrics *metrics.Metrics
}

// WithLogger sets the resource logger.
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMetrics sets the metrics the resource reports to.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

func newOptions(name string, opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = log.OrNoop(o.logger).With(log.String("resource", name))
	return o
}

// batchStream numbers batches and keeps the resource counters.
type batchStream struct {
	batcher *batch.Batcher[domain.Record]
	closer  io.Closer
	stats   domain.ResourceReport
	seq     int64
	opts    options
}

func newBatchStream(name string, b *batch.Batcher[domain.Record], closer io.Closer, opts options) *batchStream {
	return &batchStream{
		batcher: b,
		closer:  closer,
		stats:   domain.ResourceReport{Name: name},
		opts:    opts,
	}
}

func (s *batchStream) Next(ctx context.Context) (domain.Batch, error) {
	records, err := s.batcher.Next(ctx)
	if err != nil {
		return domain.Batch{}, err
	}

	s.seq++
	s.stats.Batches++
	s.stats.Records += int64(len(records))
	s.opts.metrics.BatchEmitted(s.stats.Name, len(records))
	s.opts.logger.Debug("batch ready",
		log.Int64("seq", s.seq),
		log.Int("records", len(records)),
	)
	return domain.Batch{Seq: s.seq, Records: records}, nil
}

func (s *batchStream) Stats() domain.ResourceReport {
	return s.stats
}

func (s *batchStream) Close() error {
	if s.closer == nil {
		return nil
	}
	c := s.closer
	s.closer = nil
	return c.Close()
}
