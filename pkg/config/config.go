package config

import (
	"encoding/json"
	"fmt"
	"os"
)

type Config struct {
	Diff DiffConfig `json:"diff"`
	Git  GitConfig  `json:"git"`
}

// DiffConfig tunes the reconciliation heuristics. Zero values are replaced
// with the documented defaults on load.
type DiffConfig struct {
	// SimilarityThreshold is the minimum normalized edit-distance score at
	// which two headers are treated as a rename instead of an add+delete.
	SimilarityThreshold float64 `json:"similarity_threshold"`
	// SamplingThreshold is the minimum fraction of agreeing cell values at
	// which two columns are considered the same despite unrelated headers.
	SamplingThreshold float64 `json:"sampling_threshold"`
	// CacheTTLMillis bounds reuse of a fetched diff across UI refreshes.
	CacheTTLMillis int `json:"cache_ttl_ms"`
}

type GitConfig struct {
	// Binary overrides the git executable; empty means "git" from PATH.
	Binary string `json:"binary"`
}

const (
	defaultSimilarityThreshold = 0.6
	defaultSamplingThreshold   = 0.5
	defaultCacheTTLMillis      = 5000
)

// DefaultConfig returns the configuration used when no config file is given.
func DefaultConfig() *Config {
	return &Config{
		Diff: DiffConfig{
			SimilarityThreshold: defaultSimilarityThreshold,
			SamplingThreshold:   defaultSamplingThreshold,
			CacheTTLMillis:      defaultCacheTTLMillis,
		},
	}
}

func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Diff.SimilarityThreshold <= 0 {
		c.Diff.SimilarityThreshold = defaultSimilarityThreshold
	}
	if c.Diff.SamplingThreshold <= 0 {
		c.Diff.SamplingThreshold = defaultSamplingThreshold
	}
	if c.Diff.CacheTTLMillis <= 0 {
		c.Diff.CacheTTLMillis = defaultCacheTTLMillis
	}
}
