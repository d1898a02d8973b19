package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/apache/arrow/go/v10/arrow"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/lakhbronze/internal/adapters/fs"
	"github.com/bft-labs/lakhbronze/internal/app"
	"github.com/bft-labs/lakhbronze/internal/cliconfig"
	"github.com/bft-labs/lakhbronze/internal/metrics"
	"github.com/bft-labs/lakhbronze/internal/ports"
	"github.com/bft-labs/lakhbronze/pkg/columnar"
	"github.com/bft-labs/lakhbronze/pkg/container/hdf5"
	"github.com/bft-labs/lakhbronze/pkg/log"
)

const longHelp = `
Extract the Lakh MIDI Dataset into bronze-layer record batches.

Reads the raw MIDI archive, the matched HDF5 archive and the two association
files, and turns each into ordered batches of flat records. Archives are
streamed once without unpacking to disk; a corrupt HDF5 entry is dropped and
counted instead of failing the run.

Each batch is converted to an Arrow record. With --output-dir every batch is
written as an Arrow IPC file; with --dry-run only the batch shapes are logged.
`

var exampleUsage = strings.TrimSpace(`
  lakhbronze --midi-archive lmd_full.tar.gz --dry-run
  lakhbronze --h5-archive lmd_matched_h5.tar.gz --match-scores match_scores.json --output-dir bronze/
  cat lmd_full.tar.gz | lakhbronze --midi-archive - --dry-run
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:          "lakhbronze",
		Short:        "Extract the Lakh MIDI Dataset into bronze-layer record batches",
		Long:         strings.TrimSpace(longHelp),
		Example:      exampleUsage,
		Version:      fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				cliconfig.ApplyFileConfig(&cfg, fc, changed)
			}

			// Environment overrides file config but not explicit flags
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := log.NewZerologAdapterWithLevel(cfg.LogLevel)
			logger.Info("configuration",
				log.Any("resources", cfg.Resources),
				log.Int("concurrency", cfg.Concurrency),
				log.Bool("dry_run", cfg.DryRun),
				log.String("output_dir", cfg.OutputDir),
			)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg, logger)
		},
	}

	flags := root.Flags()
	flags.StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.lakhbronze/config.toml)")
	flags.StringVar(&cfg.MidiArchive, "midi-archive", cfg.MidiArchive, "raw MIDI tar.gz archive (- for stdin)")
	flags.StringVar(&cfg.MidiSuffix, "midi-suffix", cfg.MidiSuffix, "member suffix of raw MIDI files")
	flags.IntVar(&cfg.MidiBatchSize, "midi-batch-size", cfg.MidiBatchSize, "records per raw_midi_files batch")
	flags.StringVar(&cfg.H5Archive, "h5-archive", cfg.H5Archive, "matched HDF5 tar.gz archive (- for stdin)")
	flags.StringVar(&cfg.H5Suffix, "h5-suffix", cfg.H5Suffix, "member suffix of HDF5 files")
	flags.IntVar(&cfg.H5BatchSize, "h5-batch-size", cfg.H5BatchSize, "records per h5_extract batch")
	flags.StringVar(&cfg.MatchScores, "match-scores", cfg.MatchScores, "match_scores.json path")
	flags.StringVar(&cfg.MD5Paths, "md5-paths", cfg.MD5Paths, "md5_to_paths.json path")
	flags.IntVar(&cfg.AssocBatchSize, "assoc-batch-size", cfg.AssocBatchSize, "records per association batch")
	flags.IntVar(&cfg.MaxEntryBytes, "max-entry-bytes", cfg.MaxEntryBytes, "skip archive members larger than this (0: no limit)")
	flags.StringVar(&cfg.TempDir, "temp-dir", cfg.TempDir, "directory for HDF5 scratch files (default: system temp)")
	flags.StringVar(&cfg.ReportDir, "report-dir", cfg.ReportDir, "directory for report.json and metrics.prom (empty: none)")
	flags.StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "directory for Arrow IPC batch files")
	flags.StringSliceVar(&cfg.Resources, "resources", cfg.Resources, "resources to run (default: all with inputs)")
	flags.IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "resources processed at once")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	flags.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "convert batches but write nothing")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg cliconfig.Config, logger log.Logger) error {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	opts := []app.Option{app.WithLogger(logger), app.WithMetrics(m)}

	resources := make([]app.Resource, 0, len(cfg.Resources))
	for _, name := range cfg.Resources {
		switch name {
		case app.ResourceMidiFiles:
			open := app.ArchiveEntries(cfg.MidiArchive, cfg.MidiSuffix, int64(cfg.MaxEntryBytes), logger)
			resources = append(resources, app.NewMidiFilesResource(open, cfg.MidiBatchSize, opts...))
		case app.ResourceH5Extract:
			open := app.ArchiveEntries(cfg.H5Archive, cfg.H5Suffix, int64(cfg.MaxEntryBytes), logger)
			opener := hdf5.Opener{TempDir: cfg.TempDir}
			resources = append(resources, app.NewH5ExtractResource(open, opener, cfg.H5BatchSize, opts...))
		case app.ResourceMatchScores:
			resources = append(resources, app.NewMatchScoresResource(cfg.MatchScores, cfg.AssocBatchSize, opts...))
		case app.ResourceMD5Paths:
			resources = append(resources, app.NewMD5PathsResource(cfg.MD5Paths, cfg.AssocBatchSize, opts...))
		}
	}

	var writer *fs.ArrowFileWriter
	if cfg.OutputDir != "" && !cfg.DryRun {
		writer = fs.NewArrowFileWriter(cfg.OutputDir)
	}
	sink := columnar.NewSink(nil, func(ctx context.Context, resource string, seq int64, rec arrow.Record) error {
		logger.Debug("arrow batch",
			log.String("resource", resource),
			log.Int64("seq", seq),
			log.Int64("rows", rec.NumRows()),
			log.Int64("columns", rec.NumCols()),
		)
		if writer == nil {
			return nil
		}
		return writer.WriteRecord(ctx, resource, seq, rec)
	})
	sink.SetSchema(app.ResourceMidiFiles, columnar.ArchiveSchema(true))
	sink.SetSchema(app.ResourceMatchScores, columnar.AssociationSchema(false))
	sink.SetSchema(app.ResourceMD5Paths, columnar.AssociationSchema(true))

	var reports ports.ReportRepository
	if cfg.ReportDir != "" {
		reports = fs.NewReportFileRepository(cfg.ReportDir)
	}

	runner := app.NewRunner(app.RunnerConfig{Concurrency: cfg.Concurrency, Metrics: m}, sink, reports, logger, nil)
	report, err := runner.Run(ctx, resources...)

	if cfg.ReportDir != "" {
		if werr := prometheus.WriteToTextfile(filepath.Join(cfg.ReportDir, "metrics.prom"), reg); werr != nil {
			logger.Warn("failed to write metrics", log.Err(werr))
		}
	}
	for _, rr := range report.Failed() {
		logger.Error("resource failed", log.String("resource", rr.Name), log.String("error", rr.Error))
	}
	return err
}
