// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/H0llyW00dzZ/cr8cert/src/internal/x509/keygen"
	"github.com/H0llyW00dzZ/cr8cert/src/internal/x509/rootca"
)

// EnvConfigFile names the environment variable holding the config file path.
const EnvConfigFile = "CR8CERT_CONFIG_FILE"

// Defaults applied before any file or override is read.
const (
	DefaultValidityDays = 365
	DefaultRSABits      = keygen.DefaultBits
	DefaultOutputDir    = "."
	DefaultOrganization = "cr8cert development CA"
)

// ErrInvalidConfig is returned by Validate and wraps every load failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// Config holds the resolved settings for a cr8cert run.
type Config struct {
	// RootDir is the directory holding rootCA.pem and rootCA-key.pem.
	RootDir string `json:"rootDir,omitempty" yaml:"rootDir,omitempty"`
	// OutputDir receives cert.pem and key.pem.
	OutputDir string `json:"outputDir,omitempty" yaml:"outputDir,omitempty"`
	// ValidityDays is the lifetime of newly issued certificates.
	ValidityDays int `json:"validityDays,omitempty" yaml:"validityDays,omitempty"`
	// RSABits is the modulus size of newly generated keys.
	RSABits int `json:"rsaBits,omitempty" yaml:"rsaBits,omitempty"`
	// Organization is the subject organization of generated certificates.
	Organization string `json:"organization,omitempty" yaml:"organization,omitempty"`
}

// Overrides carries command-line values. Zero values leave the setting untouched.
type Overrides struct {
	RootDir      string
	OutputDir    string
	ValidityDays int
	RSABits      int
}

// Default returns a Config populated with the built-in defaults only.
// RootDir is left empty for Load to resolve.
func Default() *Config {
	return &Config{
		OutputDir:    DefaultOutputDir,
		ValidityDays: DefaultValidityDays,
		RSABits:      DefaultRSABits,
		Organization: DefaultOrganization,
	}
}

// detectConfigFormat determines the configuration file format based on file extension.
// Matching is case-insensitive; anything other than .yaml or .yml is read as JSON.
func detectConfigFormat(configPath string) configFormat {
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// unmarshalConfig unmarshals configuration data based on the specified format.
func unmarshalConfig(data []byte, config *Config, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("%w: failed to parse YAML config file: %w", ErrInvalidConfig, err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("%w: failed to parse JSON config file: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// Load resolves the configuration.
//
// Parameters:
//   - configPath: Path to a .json, .yaml or .yml file. Empty means the path in
//     CR8CERT_CONFIG_FILE, and no file at all when that is unset too.
//   - overrides: Command-line values applied last.
//
// Returns:
//   - The resolved Config, already validated
//   - An error if the file cannot be read or parsed, the root directory cannot be
//     determined, or the result fails Validate
//
// Configuration Priority:
//  1. Default values are set
//  2. Config file values override defaults; non-positive numbers fall back to defaults
//  3. ROOTCA overrides the file's rootDir
//  4. overrides win over everything
//  5. A still-empty RootDir is resolved with the per-OS location
func Load(configPath string, overrides Overrides) (*Config, error) {
	config := Default()

	if configPath == "" {
		configPath = os.Getenv(EnvConfigFile)
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read config file: %w", ErrInvalidConfig, err)
		}

		if err := unmarshalConfig(data, config, detectConfigFormat(configPath)); err != nil {
			return nil, err
		}

		if config.ValidityDays <= 0 {
			config.ValidityDays = DefaultValidityDays
		}
		if config.RSABits <= 0 {
			config.RSABits = DefaultRSABits
		}
		if config.OutputDir == "" {
			config.OutputDir = DefaultOutputDir
		}
		if config.Organization == "" {
			config.Organization = DefaultOrganization
		}
	}

	if dir := os.Getenv(rootca.EnvRootDir); dir != "" {
		config.RootDir = filepath.Clean(dir)
	}

	config.apply(overrides)

	if config.RootDir == "" {
		dir, err := rootca.LocateRoot()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		config.RootDir = dir
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) apply(o Overrides) {
	if o.RootDir != "" {
		c.RootDir = o.RootDir
	}
	if o.OutputDir != "" {
		c.OutputDir = o.OutputDir
	}
	if o.ValidityDays != 0 {
		c.ValidityDays = o.ValidityDays
	}
	if o.RSABits != 0 {
		c.RSABits = o.RSABits
	}
}

// Validate reports settings cr8cert cannot run with.
func (c *Config) Validate() error {
	if !keygen.IsSupported(c.RSABits) {
		return fmt.Errorf("%w: RSA key size %d is not supported (use one of %v)", ErrInvalidConfig, c.RSABits, keygen.SupportedBits)
	}
	if c.ValidityDays <= 0 {
		return fmt.Errorf("%w: validity must be a positive number of days, got %d", ErrInvalidConfig, c.ValidityDays)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("%w: output directory is empty", ErrInvalidConfig)
	}
	return nil
}
