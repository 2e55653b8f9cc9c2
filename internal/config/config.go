package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level smsledger.yaml configuration.
type Config struct {
	Storage     StorageConfig     `yaml:"storage"`
	Inbox       InboxConfig       `yaml:"inbox"`
	Ingest      IngestConfig      `yaml:"ingest"`
	Permissions PermissionsConfig `yaml:"permissions"`
}

// StorageConfig locates the SQLite ledger database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// InboxConfig locates the message export and its pre-filters.
type InboxConfig struct {
	Path string `yaml:"path"`
	// Senders is the allow-list of sender codes; empty allows all.
	Senders []string `yaml:"senders,omitempty"`
	// Keywords pre-filters message bodies; empty allows all.
	Keywords []string `yaml:"keywords,omitempty"`
}

// IngestConfig controls the ingestion window.
type IngestConfig struct {
	WindowDays int `yaml:"window_days"`
}

// PermissionsConfig records message-read consent for CLI runs.
type PermissionsConfig struct {
	AssumeGranted bool `yaml:"assume_granted"`
}

// Load reads a smsledger.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new data dir.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Path: "ledger.db",
		},
		Inbox: InboxConfig{
			Path:    "inbox.csv",
			Senders: []string{"HDFCBK", "ICICIB", "SBIINB", "AXISBK", "BOIIND", "CENTBK", "YESBNK", "KOTAKB"},
			Keywords: []string{
				"credited", "debited", "deposited", "withdrawn",
				"spent", "received", "transfer", "payment",
			},
		},
		Ingest: IngestConfig{
			WindowDays: 30,
		},
		Permissions: PermissionsConfig{
			AssumeGranted: false,
		},
	}
}
