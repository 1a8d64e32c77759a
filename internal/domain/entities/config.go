package entities

import (
	"fmt"
	"net/url"
	"time"
)

// Output formats
const (
	FormatPOM       = "pom"
	FormatCycloneDX = "cyclonedx"
)

// Defaults applied before any config file, environment, or flag
const (
	DefaultServiceURL = "https://repository.sonatype.org/service/local/lucene/search"
	DefaultPattern    = "*"
	DefaultWorkers    = 1
	DefaultTimeout    = 30 * time.Second
)

// ScanConfig holds everything a scan run needs
type ScanConfig struct {
	ServiceURL  string
	LibDir      string
	Pattern     string
	Workers     int
	Timeout     time.Duration
	Format      string
	Wrap        bool
	KeyringPath string
	LogLevel    string
	LogFormat   string
}

// DefaultScanConfig returns a config populated with defaults
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		ServiceURL: DefaultServiceURL,
		Pattern:    DefaultPattern,
		Workers:    DefaultWorkers,
		Timeout:    DefaultTimeout,
		Format:     FormatPOM,
		LogLevel:   "info",
		LogFormat:  "text",
	}
}

// Validate checks the config is usable for a scan
func (c ScanConfig) Validate() error {
	if c.ServiceURL == "" {
		return fmt.Errorf("service URL must be set")
	}
	u, err := url.Parse(c.ServiceURL)
	if err != nil {
		return fmt.Errorf("invalid service URL %q: %w", c.ServiceURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("service URL must be http or https, got %q", c.ServiceURL)
	}
	if c.LibDir == "" {
		return fmt.Errorf("library directory must be set")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	switch c.Format {
	case FormatPOM, FormatCycloneDX:
	default:
		return fmt.Errorf("unknown output format %q (want %s or %s)", c.Format, FormatPOM, FormatCycloneDX)
	}
	return nil
}
