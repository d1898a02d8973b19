// Package log provides the logging abstraction used by lakhbronze components.
//
// Components accept a [Logger] and never reach for a global. The zerolog
// adapter is used by the command; [NoopLogger] is the library default.
//
//	logger := log.NewZerologAdapterWithLevel("debug")
//	reader := archive.NewTarGzReader(f, ".h5", archive.WithLogger(logger.With(log.String("resource", "h5_extract"))))
package log
