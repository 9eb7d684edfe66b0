// Copyright 2025 Eric Smith
// SPDX-License-Identifier: GPL-3.0-only

// Package config loads optional persistent runner defaults from a TOML
// file. Command-line flags always override whatever a config file
// sets; a missing file is not an error.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the runner defaults an .apexrc.toml file may set.
type Config struct {
	CMOS    bool   `toml:"cmos"`
	Trace   bool   `toml:"trace"`
	MemTrace bool  `toml:"memtrace"`
	Stats   bool   `toml:"stats"`
	Input   string `toml:"input"`
	Output  string `toml:"output"`
	Printer string `toml:"printer"`
}

// Load reads path into a Config. A missing file yields a zero-value
// Config and no error, so callers can unconditionally call Load before
// parsing flags.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %q: %w", path, err)
	}
	return cfg, nil
}
