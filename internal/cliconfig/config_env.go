package cliconfig

import "os"

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "LAKHBRONZE_"

// ApplyEnvConfig applies configuration from environment variables (LAKHBRONZE_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)
	env := func(key string) string { return os.Getenv(EnvPrefix + key) }

	s.setString("midi-archive", env("MIDI_ARCHIVE"), &cfg.MidiArchive)
	s.setString("midi-suffix", env("MIDI_SUFFIX"), &cfg.MidiSuffix)
	s.setString("h5-archive", env("H5_ARCHIVE"), &cfg.H5Archive)
	s.setString("h5-suffix", env("H5_SUFFIX"), &cfg.H5Suffix)
	s.setString("match-scores", env("MATCH_SCORES"), &cfg.MatchScores)
	s.setString("md5-paths", env("MD5_PATHS"), &cfg.MD5Paths)
	s.setString("temp-dir", env("TEMP_DIR"), &cfg.TempDir)
	s.setString("report-dir", env("REPORT_DIR"), &cfg.ReportDir)
	s.setString("output-dir", env("OUTPUT_DIR"), &cfg.OutputDir)
	s.setString("log-level", env("LOG_LEVEL"), &cfg.LogLevel)
	s.setList("resources", splitList(env("RESOURCES")), &cfg.Resources)

	ints := []struct {
		flag string
		key  string
		dst  *int
	}{
		{"midi-batch-size", "MIDI_BATCH_SIZE", &cfg.MidiBatchSize},
		{"h5-batch-size", "H5_BATCH_SIZE", &cfg.H5BatchSize},
		{"assoc-batch-size", "ASSOC_BATCH_SIZE", &cfg.AssocBatchSize},
		{"max-entry-bytes", "MAX_ENTRY_BYTES", &cfg.MaxEntryBytes},
		{"concurrency", "CONCURRENCY", &cfg.Concurrency},
	}
	for _, i := range ints {
		if err := s.setIntFromString(i.flag, env(i.key), i.dst); err != nil {
			return err
		}
	}

	s.setBoolFromString("dry-run", env("DRY_RUN"), &cfg.DryRun)
	return nil
}
