// Package yaml provides YAML-based configuration parsing.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ochairo/pomscan/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// yamlConfig represents the raw YAML structure of pomscan.yml
type yamlConfig struct {
	Service   yamlService   `yaml:"service"`
	Scan      yamlScan      `yaml:"scan"`
	Output    yamlOutput    `yaml:"output"`
	Signature yamlSignature `yaml:"signature"`
	Log       yamlLog       `yaml:"log"`
}

type yamlService struct {
	URL     string `yaml:"url"`
	Timeout string `yaml:"timeout"`
}

type yamlScan struct {
	LibDir  string `yaml:"lib_dir"`
	Pattern string `yaml:"pattern"`
	Workers int    `yaml:"workers"`
}

type yamlOutput struct {
	Format string `yaml:"format"`
	Wrap   *bool  `yaml:"wrap"`
}

type yamlSignature struct {
	Keyring string `yaml:"keyring"`
}

type yamlLog struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ConfigParser parses YAML config files
type ConfigParser struct{}

// NewConfigParser creates a new YAML config parser
func NewConfigParser() *ConfigParser {
	return &ConfigParser{}
}

// ParseFile reads filePath and overlays it on base
func (p *ConfigParser) ParseFile(filePath string, base entities.ScanConfig) (entities.ScanConfig, error) {
	//nolint:gosec // G304: filePath is the user-provided config location
	data, err := os.ReadFile(filePath)
	if err != nil {
		return base, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data, base)
}

// Parse parses YAML bytes and overlays every set field on base.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func (p *ConfigParser) Parse(data []byte, base entities.ScanConfig) (entities.ScanConfig, error) {
	var yc yamlConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&yc); err != nil && !errors.Is(err, io.EOF) {
		return base, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return overlay(base, yc)
}

func overlay(cfg entities.ScanConfig, yc yamlConfig) (entities.ScanConfig, error) {
	if yc.Service.URL != "" {
		cfg.ServiceURL = yc.Service.URL
	}
	if yc.Service.Timeout != "" {
		d, err := time.ParseDuration(yc.Service.Timeout)
		if err != nil {
			return cfg, fmt.Errorf("invalid service.timeout %q: %w", yc.Service.Timeout, err)
		}
		cfg.Timeout = d
	}

	if yc.Scan.LibDir != "" {
		cfg.LibDir = yc.Scan.LibDir
	}
	if yc.Scan.Pattern != "" {
		cfg.Pattern = yc.Scan.Pattern
	}
	if yc.Scan.Workers != 0 {
		cfg.Workers = yc.Scan.Workers
	}

	if yc.Output.Format != "" {
		cfg.Format = yc.Output.Format
	}
	if yc.Output.Wrap != nil {
		cfg.Wrap = *yc.Output.Wrap
	}

	if yc.Signature.Keyring != "" {
		cfg.KeyringPath = yc.Signature.Keyring
	}

	if yc.Log.Level != "" {
		cfg.LogLevel = yc.Log.Level
	}
	if yc.Log.Format != "" {
		cfg.LogFormat = yc.Log.Format
	}

	return cfg, nil
}
