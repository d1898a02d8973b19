// Package container converts binary data containers (HDF5 and similar) into
// portable nested values.
//
// A backend implements [Group] over an open container. [Load] walks the
// hierarchy once and materializes every dataset into a tagged [Node]
// ([GroupNode], [PlainDataset] or [StructuredDataset]); [Flatten] then turns
// the node tree into plain Go maps and slices using [Coerce]. [Walk] does both:
//
//	f, err := hdf5.OpenBytes(entry.Content, "")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//	tree, err := container.Walk(ctx, f)
//
// All values are read before Walk returns, so the tree holds no references
// to the container and the handle may be closed immediately afterwards.
//
// Backends that read raw record bytes can describe the row with a [Layout]
// and decode it with [DecodeRecords] or [DecodeValues].
package container
