// Copyright 2026 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

// Package config loads clitesym settings from a TOML file.  Settings given
// on the command line override the file.
package config

import (
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/clitesym/internal/clite/builder"
	"github.com/pkg/errors"
)

// Config holds the settings of one clitesym run.
type Config struct {
	Discipline      string `toml:"discipline"`       // "static" or "dynamic"
	AnonymousPrefix string `toml:"anonymous_prefix"` // prefix of synthesised block names
	QuietHeader     bool   `toml:"quiet_header"`     // omit the discipline header line
	DumpTable       bool   `toml:"dump_table"`       // log the scope tree after each pass
	MetricsTextfile string `toml:"metrics_textfile"` // if set, write metrics here on exit
	Color           bool   `toml:"color"`            // highlight scope names
}

// Default returns the settings used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the TOML file at path.  Unknown keys are an error, so that a
// misspelt setting is not silently ignored.
func Load(path string) (*Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load config %q", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return nil, errors.Errorf("config %q: unknown keys %s", path, strings.Join(keys, ", "))
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %q", path)
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Discipline == "" {
		cfg.Discipline = builder.Static.Name()
	}
	if cfg.AnonymousPrefix == "" {
		cfg.AnonymousPrefix = builder.DefaultAnonymousPrefix
	}
}

// Validate checks that the settings can be used.
func (c *Config) Validate() error {
	if _, err := builder.PolicyByName(c.Discipline); err != nil {
		return err
	}
	if strings.ContainsAny(c.AnonymousPrefix, "{}\n") {
		return errors.Errorf("anonymous_prefix %q must not contain braces or newlines", c.AnonymousPrefix)
	}
	return nil
}

// Policy returns the scoping discipline named by the settings.
func (c *Config) Policy() (builder.Policy, error) {
	return builder.PolicyByName(c.Discipline)
}
