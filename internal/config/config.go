package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/splitledger/splitledger/internal/currency"
	"github.com/splitledger/splitledger/internal/gitops"
)

// FileName is the group configuration file inside a group directory.
const FileName = "group.yaml"

// Config represents the top-level group.yaml configuration.
type Config struct {
	Group    GroupConfig    `yaml:"group"`
	Currency CurrencyConfig `yaml:"currency"`
	Display  DisplayConfig  `yaml:"display"`
	Git      GitConfig      `yaml:"git"`
}

// GroupConfig identifies the group.
type GroupConfig struct {
	Name string `yaml:"name"`
}

// CurrencyConfig controls settlement currency and the rate snapshot.
type CurrencyConfig struct {
	Default   string `yaml:"default"`    // settlement target, e.g. "EUR"
	RatesFile string `yaml:"rates_file"` // relative to the group directory
	RatesTTL  string `yaml:"rates_ttl"`  // Go duration, e.g. "24h"
}

// DisplayConfig controls amount formatting.
type DisplayConfig struct {
	Locale string `yaml:"locale"` // BCP 47 tag, e.g. "en-US"
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Author returns the configured commit author.
func (g GitConfig) Author() gitops.Author {
	return gitops.Author{Name: g.AuthorName, Email: g.AuthorEmail}
}

// TTL parses RatesTTL, falling back to currency.DefaultTTL when unset.
func (c CurrencyConfig) TTL() (time.Duration, error) {
	if c.RatesTTL == "" {
		return currency.DefaultTTL, nil
	}
	d, err := time.ParseDuration(c.RatesTTL)
	if err != nil {
		return 0, fmt.Errorf("parsing rates_ttl %q: %w", c.RatesTTL, err)
	}
	return d, nil
}

// Load reads a group.yaml file from disk.
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

// Default returns a Config with sensible defaults for a new group.
func Default(groupName, defaultCurrency string) *Config {
	if defaultCurrency == "" {
		defaultCurrency = "EUR"
	}
	return &Config{
		Group: GroupConfig{
			Name: groupName,
		},
		Currency: CurrencyConfig{
			Default:   defaultCurrency,
			RatesFile: "rates.yaml",
			RatesTTL:  "24h",
		},
		Display: DisplayConfig{
			Locale: "en-US",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "splitledger",
			AuthorEmail: "splitledger@localhost",
		},
	}
}
