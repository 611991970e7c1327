package termtree

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned by LoadConfig when the file does not exist.
var ErrConfigNotFound = errors.New("termtree: config file not found")

// DefaultConfigFile is looked up in the working directory by the CLI.
const DefaultConfigFile = "termtree.yaml"

// Config holds the query parameters and builder options.
type Config struct {
	Threshold    int64 `yaml:"threshold"`
	DiskCapacity int64 `yaml:"disk_capacity"`
	RequiredFree int64 `yaml:"required_free"`
	StrictNames  bool  `yaml:"strict_names"`
}

// DefaultConfig returns the standard disk parameters, strict name checking on.
func DefaultConfig() Config {
	return Config{
		Threshold:    SmallDirThreshold,
		DiskCapacity: DiskCapacity,
		RequiredFree: RequiredFree,
		StrictNames:  true,
	}
}

// LoadConfig reads a YAML config file over DefaultConfig. Keys missing from
// the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, ErrConfigNotFound
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	slog.Debug("termtree: loaded config", "path", path)
	return cfg, nil
}

// Environment variables read by ApplyEnv.
const (
	EnvThreshold    = "TERMTREE_THRESHOLD"
	EnvDiskCapacity = "TERMTREE_DISK_CAPACITY"
	EnvRequiredFree = "TERMTREE_REQUIRED_FREE"
	EnvStrict       = "TERMTREE_STRICT"
)

// ApplyEnv overrides fields from TERMTREE_* environment variables using
// lookup, typically os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	ints := []struct {
		key string
		dst *int64
	}{
		{EnvThreshold, &c.Threshold},
		{EnvDiskCapacity, &c.DiskCapacity},
		{EnvRequiredFree, &c.RequiredFree},
	}
	for _, v := range ints {
		s, ok := lookup(v.key)
		if !ok || s == "" {
			continue
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", v.key, err)
		}
		*v.dst = n
	}
	if s, ok := lookup(EnvStrict); ok && s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvStrict, err)
		}
		c.StrictNames = b
	}
	return c.Validate()
}

// Validate checks that the disk parameters are consistent.
func (c Config) Validate() error {
	switch {
	case c.DiskCapacity <= 0:
		return fmt.Errorf("disk_capacity must be positive, got %d", c.DiskCapacity)
	case c.RequiredFree < 0 || c.RequiredFree > c.DiskCapacity:
		return fmt.Errorf("required_free must be between 0 and disk_capacity, got %d", c.RequiredFree)
	}
	return nil
}

// BuilderOptions returns the Builder options implied by the config.
func (c Config) BuilderOptions() []Option {
	return []Option{WithStrictNames(c.StrictNames)}
}
