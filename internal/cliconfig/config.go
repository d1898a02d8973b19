package cliconfig

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bft-labs/lakhbronze/internal/app"
	"github.com/bft-labs/lakhbronze/internal/domain"
)

// Config holds CLI configuration for lakhbronze.
type Config struct {
	MidiArchive   string
	MidiSuffix    string
	MidiBatchSize int

	H5Archive   string
	H5Suffix    string
	H5BatchSize int

	MatchScores    string
	MD5Paths       string
	AssocBatchSize int

	// MaxEntryBytes skips archive members larger than this. Zero means no limit.
	MaxEntryBytes int

	TempDir   string
	ReportDir string

	// OutputDir receives one Arrow IPC file per batch. Empty writes nothing.
	OutputDir string

	// Resources selects what to run. Empty selects every resource whose
	// input is configured.
	Resources []string

	Concurrency int
	LogLevel    string
	DryRun      bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		MidiSuffix:     ".mid",
		MidiBatchSize:  app.DefaultMidiBatchSize,
		H5Suffix:       ".h5",
		H5BatchSize:    app.DefaultH5BatchSize,
		AssocBatchSize: app.DefaultAssocBatchSize,
		Concurrency:    app.DefaultConcurrency,
		LogLevel:       "info",
	}
}

// ResourceNames lists every resource in run order.
var ResourceNames = []string{
	app.ResourceMidiFiles,
	app.ResourceH5Extract,
	app.ResourceMatchScores,
	app.ResourceMD5Paths,
}

// input returns the configured input location for a resource.
func (c *Config) input(resource string) string {
	switch resource {
	case app.ResourceMidiFiles:
		return c.MidiArchive
	case app.ResourceH5Extract:
		return c.H5Archive
	case app.ResourceMatchScores:
		return c.MatchScores
	case app.ResourceMD5Paths:
		return c.MD5Paths
	}
	return ""
}

// Validate checks the configuration for errors and resolves the resource
// selection.
func (c *Config) Validate() error {
	if c.MidiBatchSize <= 0 || c.H5BatchSize <= 0 || c.AssocBatchSize <= 0 {
		return fmt.Errorf("%w: batch sizes must be positive", domain.ErrInvalidConfig)
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("%w: concurrency must be positive", domain.ErrInvalidConfig)
	}
	if c.MaxEntryBytes < 0 {
		return fmt.Errorf("%w: max entry bytes must not be negative", domain.ErrInvalidConfig)
	}

	if len(c.Resources) == 0 {
		for _, name := range ResourceNames {
			if c.input(name) != "" {
				c.Resources = append(c.Resources, name)
			}
		}
		if len(c.Resources) == 0 {
			return fmt.Errorf("%w: no inputs configured", domain.ErrInvalidConfig)
		}
		return nil
	}

	seen := make(map[string]bool, len(c.Resources))
	for _, name := range c.Resources {
		if !isResource(name) {
			return fmt.Errorf("%w: unknown resource %q (want one of %s)", domain.ErrInvalidConfig, name, strings.Join(ResourceNames, ", "))
		}
		if seen[name] {
			return fmt.Errorf("%w: resource %q listed twice", domain.ErrInvalidConfig, name)
		}
		seen[name] = true
		if c.input(name) == "" {
			return fmt.Errorf("%w: resource %q has no input configured", domain.ErrInvalidConfig, name)
		}
	}
	return nil
}

func isResource(name string) bool {
	for _, n := range ResourceNames {
		if n == name {
			return true
		}
	}
	return false
}

// splitList splits a comma-separated list, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setList sets a list if not empty and flag not changed.
func (s *configSetter) setList(flag string, value []string, dst *[]string) {
	if len(value) == 0 || s.changed[flag] {
		return
	}
	*dst = append([]string(nil), value...)
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
