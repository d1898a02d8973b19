// Package hdf5 implements container.Group over HDF5 files using the HDF5 C
// library through gonum.org/v1/hdf5 (cgo).
//
// Datasets are read with their own file datatype, so record arrays arrive as
// raw row bytes and are decoded with container.DecodeRecords. Files are
// assumed little-endian. Variable-length strings, references and array
// members are reported as unsupported.
//
// The HDF5 library is not assumed to be thread-safe; every call into it is
// serialized by a package-level lock.
package hdf5
