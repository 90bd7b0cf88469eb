package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultLatest is how many entries the "latest packages" list holds when
// not configured otherwise.
const DefaultLatest = 30

// SiteConfig contains configuration for site generation. Values come from
// CLI flags, optionally pre-filled from a YAML file.
type SiteConfig struct {
	// Front matter
	Title       string `yaml:"title"`
	Link        string `yaml:"link"`
	Description string `yaml:"description"`

	// Input/Output
	OutputDir   string `yaml:"output_dir"`
	TemplateDir string `yaml:"template_dir"`

	// Number of entries in the latest-packages list
	Latest int `yaml:"latest"`
}

// LoadSiteConfig reads a SiteConfig from a YAML file.
func LoadSiteConfig(path string) (*SiteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config SiteConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// Validate checks that required values are present and fills defaults.
func (c *SiteConfig) Validate() error {
	if c.OutputDir == "" {
		return &ViewError{
			Type: ErrInvalidConfig,
			Err:  fmt.Errorf("output-dir is required"),
		}
	}
	if c.Latest < 0 {
		return &ViewError{
			Type: ErrInvalidConfig,
			Err:  fmt.Errorf("latest must not be negative"),
		}
	}
	if c.Latest == 0 {
		c.Latest = DefaultLatest
	}
	return nil
}
