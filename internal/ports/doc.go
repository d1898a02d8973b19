// Package ports defines the interfaces that connect the application layer to
// infrastructure adapters.
//
// # Port Interfaces
//
//   - [EntryReader]: Pulls entries out of an archive stream
//   - [ContainerOpener]: Opens an archive entry as a container tree
//   - [BatchSink]: Receives finished batches
//   - [ReportRepository]: Persists the run report
//
// The application layer (internal/app) depends only on these interfaces.
// Concrete implementations live in pkg/archive, pkg/container/hdf5,
// pkg/columnar and internal/adapters.
package ports
