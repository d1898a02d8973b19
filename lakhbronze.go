// Package lakhbronze turns the Lakh MIDI Dataset into bronze-layer record
// batches.
//
// Example usage:
//
//	r, err := lakhbronze.OpenArchive("lmd_matched_h5.tar.gz", ".h5")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	for {
//	    entry, err := r.Next(ctx)
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    g, err := lakhbronze.OpenContainer(entry, "")
//	    if err != nil {
//	        continue
//	    }
//	    tree, err := lakhbronze.WalkContainer(ctx, g)
//	    g.Close()
//	    // ...
//	}
package lakhbronze

import (
	"context"

	"github.com/bft-labs/lakhbronze/internal/domain"
	"github.com/bft-labs/lakhbronze/pkg/archive"
	"github.com/bft-labs/lakhbronze/pkg/assoc"
	"github.com/bft-labs/lakhbronze/pkg/batch"
	"github.com/bft-labs/lakhbronze/pkg/container"
	"github.com/bft-labs/lakhbronze/pkg/container/hdf5"
)

// Entry is one archive member read into memory.
type Entry = domain.Entry

// Record is one flat output row keyed by column name.
type Record = domain.Record

// AssociationRow is one (parent, child) pair expanded from an association map.
type AssociationRow = domain.AssociationRow

// Tree is a flattened container.
type Tree = container.Tree

// Error sentinels, for use with errors.Is.
var (
	ErrEntryUnavailable     = domain.ErrEntryUnavailable
	ErrContainerRead        = domain.ErrContainerRead
	ErrDecode               = domain.ErrDecode
	ErrMalformedAssociation = domain.ErrMalformedAssociation
	ErrInvalidBatchSize     = domain.ErrInvalidBatchSize
)

// OpenArchive opens a gzip tar archive ("-" for stdin) and yields members
// ending in suffix.
func OpenArchive(location, suffix string, opts ...archive.Option) (*archive.TarGzReader, error) {
	return archive.Open(location, suffix, opts...)
}

// OpenContainer opens an entry's content as an HDF5 container, spilling it
// to tempDir for the lifetime of the handle.
func OpenContainer(e Entry, tempDir string) (*hdf5.File, error) {
	return hdf5.OpenBytes(e.Content, tempDir)
}

// WalkContainer flattens every group and dataset below g.
func WalkContainer(ctx context.Context, g container.Group) (Tree, error) {
	return container.Walk(ctx, g)
}

// FlattenAssociations expands a JSON association map into rows.
func FlattenAssociations(data []byte) ([]AssociationRow, error) {
	return assoc.Flatten(data)
}

// NewBatcher groups src into batches of at most size items.
func NewBatcher[T any](src batch.Source[T], size int) (*batch.Batcher[T], error) {
	return batch.New[T](src, size)
}
