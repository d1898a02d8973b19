package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/bft-labs/lakhbronze/internal/domain"
	"github.com/bft-labs/lakhbronze/internal/ports"
	"github.com/bft-labs/lakhbronze/pkg/archive"
	"github.com/bft-labs/lakhbronze/pkg/batch"
	"github.com/bft-labs/lakhbronze/pkg/container"
	"github.com/bft-labs/lakhbronze/pkg/log"
)

// ContainerKeyPrefix is prepended to container group names that collide with
// a base archive column.
const ContainerKeyPrefix = "h5_"

// OpenEntries opens a fresh pass over an archive. onSkip is called for every
// matching entry whose content is unavailable.
type OpenEntries func(onSkip func(path string, reason error)) (ports.EntryReader, error)

// ArchiveEntries returns an OpenEntries reading the gzip tar archive at
// location ("-" for stdin) and keeping members that end in suffix.
func ArchiveEntries(location, suffix string, maxEntrySize int64, logger log.Logger) OpenEntries {
	return func(onSkip func(string, error)) (ports.EntryReader, error) {
		return archive.Open(location, suffix,
			archive.WithLogger(logger),
			archive.WithMaxEntrySize(maxEntrySize),
			archive.WithSkipHook(onSkip),
		)
	}
}

// ArchiveResource turns archive entries into records, optionally walking each
// entry as a container.
type ArchiveResource struct {
	name       string
	open       OpenEntries
	batchSize  int
	content    bool
	containers ports.ContainerOpener
	opts       options
}

// NewMidiFilesResource emits one record per entry with its raw content.
func NewMidiFilesResource(open OpenEntries, batchSize int, opts ...Option) *ArchiveResource {
	return &ArchiveResource{
		name:      ResourceMidiFiles,
		open:      open,
		batchSize: batchSize,
		content:   true,
		opts:      newOptions(ResourceMidiFiles, opts),
	}
}

// NewH5ExtractResource walks each entry with containers and merges the
// resulting tree into the entry's base columns. The raw content is not kept.
// Entries whose container cannot be read are dropped and counted.
func NewH5ExtractResource(open OpenEntries, containers ports.ContainerOpener, batchSize int, opts ...Option) *ArchiveResource {
	return &ArchiveResource{
		name:       ResourceH5Extract,
		open:       open,
		batchSize:  batchSize,
		containers: containers,
		opts:       newOptions(ResourceH5Extract, opts),
	}
}

func (r *ArchiveResource) Name() string {
	return r.name
}

// Open starts reading the archive.
func (r *ArchiveResource) Open(ctx context.Context) (Stream, error) {
	var stream *batchStream
	reader, err := r.open(func(path string, reason error) {
		stream.stats.Skipped++
		r.opts.metrics.EntrySkipped(r.name)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.name, err)
	}

	src := batch.SourceFunc[domain.Record](func(ctx context.Context) (domain.Record, error) {
		for {
			e, err := reader.Next(ctx)
			if err != nil {
				return nil, err
			}
			stream.stats.EntriesRead++
			r.opts.metrics.EntryRead(r.name)

			if r.containers == nil {
				return e.Record(r.content), nil
			}

			rec, err := r.extract(ctx, e)
			var cre *domain.ContainerReadError
			if errors.As(err, &cre) {
				stream.stats.Failed++
				r.opts.metrics.ContainerFailed(r.name)
				r.opts.logger.Warn("dropping unreadable container",
					log.String("path", cre.Path),
					log.String("id", cre.ID),
					log.Err(cre.Err),
				)
				continue
			}
			return rec, err
		}
	})

	b, err := batch.New[domain.Record](src, r.batchSize)
	if err != nil {
		reader.Close()
		return nil, fmt.Errorf("%s: %w", r.name, err)
	}
	stream = newBatchStream(r.name, b, reader, r.opts)
	return stream, nil
}

// extract walks one entry. Failures other than cancellation come back as
// *domain.ContainerReadError.
func (r *ArchiveResource) extract(ctx context.Context, e domain.Entry) (domain.Record, error) {
	g, err := r.containers.Open(ctx, e)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &domain.ContainerReadError{Path: e.Path, ID: e.ID, Err: err}
	}

	tree, walkErr := container.Walk(ctx, g)
	closeErr := g.Close()
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	err = walkErr
	if closeErr != nil {
		err = multierror.Append(walkErr, closeErr)
	}
	if err != nil {
		return nil, &domain.ContainerReadError{Path: e.Path, ID: e.ID, Err: err}
	}

	rec := e.Record(r.content)
	rec.Merge(tree, ContainerKeyPrefix)
	return rec, nil
}
