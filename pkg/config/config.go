// Package config provides file-based configuration for the pipeline's
// collaborators.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Collaborator selects one collaborator implementation and its settings.
type Collaborator struct {
	Type          string         `yaml:"type"`
	Configuration map[string]any `yaml:"configuration"`
}

// Config is the structure of the postwave.yaml file.
type Config struct {
	Fetcher     Collaborator `yaml:"fetcher"`
	Generator   Collaborator `yaml:"generator"`
	Publisher   Collaborator `yaml:"publisher"`
	ApprovalTTL string       `yaml:"approval_ttl"`
}

// TTL parses the approval_ttl field. An empty field means no deadline.
func (c *Config) TTL() (time.Duration, error) {
	if c.ApprovalTTL == "" {
		return 0, nil
	}

	ttl, err := time.ParseDuration(c.ApprovalTTL)
	if err != nil {
		return 0, fmt.Errorf("invalid approval_ttl %q: %w", c.ApprovalTTL, err)
	}

	return ttl, nil
}

// Load reads and parses a YAML config file. Missing collaborator types fall
// back to the defaults used by the CLI flags.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if cfg.Fetcher.Type == "" {
		cfg.Fetcher.Type = "web"
	}

	if cfg.Generator.Type == "" {
		cfg.Generator.Type = "template"
	}

	if cfg.Publisher.Type == "" {
		cfg.Publisher.Type = "sandbox"
	}

	return &cfg, nil
}
