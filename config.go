package main

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents a gobf.toml configuration file. Command line flags
// override any values it sets.
type Config struct {
	Machine MachineConfig `toml:"machine"`
	Run     RunConfig     `toml:"run"`
}

// MachineConfig configures the VM itself.
type MachineConfig struct {
	Capacity uint `toml:"capacity"`
}

// RunConfig configures how the command line tool drives a VM.
type RunConfig struct {
	Trace    bool   `toml:"trace"`
	Timeout  string `toml:"timeout"`
	Dump     bool   `toml:"dump"`
	Prompt   string `toml:"prompt"`
	Snapshot string `toml:"snapshot"`
	Resume   string `toml:"resume"`
}

// LoadConfig parses a TOML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if _, err := cfg.Run.TimeoutDuration(); err != nil {
		return nil, fmt.Errorf("invalid run.timeout in %s: %w", path, err)
	}
	return &cfg, nil
}

// TimeoutDuration parses Timeout; empty means no timeout.
func (rc RunConfig) TimeoutDuration() (time.Duration, error) {
	if rc.Timeout == "" {
		return 0, nil
	}
	return time.ParseDuration(rc.Timeout)
}

// Options returns VM options for the machine configuration.
func (cfg *Config) Options() []VMOption {
	return []VMOption{WithCapacity(cfg.Machine.Capacity)}
}
