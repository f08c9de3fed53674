// Package isobmff
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package isobmff

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the defaults of the dump tool. Command line flags override
// whatever the file sets.
type Config struct {
	// Format is one of text, yaml, json or cbor.
	Format string `yaml:"format"`
	// MaxDepth limits how deep the tree is walked. Negative means no limit.
	MaxDepth int `yaml:"max_depth"`
	// Digest adds a BLAKE3 digest of every leaf payload.
	Digest  bool `yaml:"digest"`
	Verbose bool `yaml:"verbose"`
}

func DefaultConfig() *Config {
	return &Config{
		Format:   string(FormatText),
		MaxDepth: -1,
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if _, err = ParseFormat(cfg.Format); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
