package config

import (
	"os"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name        string
		configJSON  string
		expectError bool
		expected    *Config
	}{
		{
			name: "full config",
			configJSON: `{
				"diff": {
					"similarity_threshold": 0.75,
					"sampling_threshold": 0.4,
					"cache_ttl_ms": 2000
				},
				"git": {
					"binary": "/usr/local/bin/git"
				}
			}`,
			expectError: false,
			expected: &Config{
				Diff: DiffConfig{
					SimilarityThreshold: 0.75,
					SamplingThreshold:   0.4,
					CacheTTLMillis:      2000,
				},
				Git: GitConfig{Binary: "/usr/local/bin/git"},
			},
		},
		{
			name:        "invalid json",
			configJSON:  `{"invalid": json}`,
			expectError: true,
		},
		{
			name:        "empty config gets defaults",
			configJSON:  `{}`,
			expectError: false,
			expected:    DefaultConfig(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpFile, err := os.CreateTemp("", "config_test_*.json")
			if err != nil {
				t.Fatalf("Failed to create temp file: %v", err)
			}
			defer os.Remove(tmpFile.Name())

			if _, err := tmpFile.WriteString(tt.configJSON); err != nil {
				t.Fatalf("Failed to write config: %v", err)
			}
			tmpFile.Close()

			config, err := LoadConfig(tmpFile.Name())

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error but got none")
				}
				return
			}

			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}

			if *config != *tt.expected {
				t.Errorf("Expected config %+v, got %+v", tt.expected, config)
			}
		})
	}
}

func TestLoadConfigFileNotFound(t *testing.T) {
	_, err := LoadConfig("nonexistent.json")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Diff.SimilarityThreshold != 0.6 {
		t.Errorf("unexpected similarity threshold %v", cfg.Diff.SimilarityThreshold)
	}
	if cfg.Diff.SamplingThreshold != 0.5 {
		t.Errorf("unexpected sampling threshold %v", cfg.Diff.SamplingThreshold)
	}
	if cfg.Diff.CacheTTLMillis != 5000 {
		t.Errorf("unexpected cache ttl %v", cfg.Diff.CacheTTLMillis)
	}
}
