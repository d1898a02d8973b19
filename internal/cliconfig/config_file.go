package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config in TOML form. Pointer fields distinguish unset
// from false.
type FileConfig struct {
	MidiArchive    string   `toml:"midi_archive"`
	MidiSuffix     string   `toml:"midi_suffix"`
	MidiBatchSize  int      `toml:"midi_batch_size"`
	H5Archive      string   `toml:"h5_archive"`
	H5Suffix       string   `toml:"h5_suffix"`
	H5BatchSize    int      `toml:"h5_batch_size"`
	MatchScores    string   `toml:"match_scores"`
	MD5Paths       string   `toml:"md5_paths"`
	AssocBatchSize int      `toml:"assoc_batch_size"`
	MaxEntryBytes  int      `toml:"max_entry_bytes"`
	TempDir        string   `toml:"temp_dir"`
	ReportDir      string   `toml:"report_dir"`
	OutputDir      string   `toml:"output_dir"`
	Resources      []string `toml:"resources"`
	Concurrency    int      `toml:"concurrency"`
	LogLevel       string   `toml:"log_level"`
	DryRun         *bool    `toml:"dry_run"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.lakhbronze/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".lakhbronze", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) {
	s := newConfigSetter(changed)

	s.setString("midi-archive", fc.MidiArchive, &cfg.MidiArchive)
	s.setString("midi-suffix", fc.MidiSuffix, &cfg.MidiSuffix)
	s.setInt("midi-batch-size", fc.MidiBatchSize, &cfg.MidiBatchSize)

	s.setString("h5-archive", fc.H5Archive, &cfg.H5Archive)
	s.setString("h5-suffix", fc.H5Suffix, &cfg.H5Suffix)
	s.setInt("h5-batch-size", fc.H5BatchSize, &cfg.H5BatchSize)

	s.setString("match-scores", fc.MatchScores, &cfg.MatchScores)
	s.setString("md5-paths", fc.MD5Paths, &cfg.MD5Paths)
	s.setInt("assoc-batch-size", fc.AssocBatchSize, &cfg.AssocBatchSize)

	s.setInt("max-entry-bytes", fc.MaxEntryBytes, &cfg.MaxEntryBytes)
	s.setString("temp-dir", fc.TempDir, &cfg.TempDir)
	s.setString("report-dir", fc.ReportDir, &cfg.ReportDir)
	s.setString("output-dir", fc.OutputDir, &cfg.OutputDir)
	s.setList("resources", fc.Resources, &cfg.Resources)
	s.setInt("concurrency", fc.Concurrency, &cfg.Concurrency)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setBool("dry-run", fc.DryRun, &cfg.DryRun)
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
