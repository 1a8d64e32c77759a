package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ochairo/pomscan/internal/domain/entities"
	"github.com/ochairo/pomscan/internal/external-adapters/yaml"
)

// defaultConfigFile is loaded from the working directory when present
const defaultConfigFile = "pomscan.yml"

// scanFlags holds the raw flag values of the scan command
type scanFlags struct {
	configPath *string
	serviceURL *string
	libDir     *string
	pattern    *string
	workers    *int
	timeout    *time.Duration
	format     *string
	wrap       *bool
	keyring    *string
	logLevel   *string
	logFormat  *string
}

func registerScanFlags(fs *flag.FlagSet) scanFlags {
	defaults := entities.DefaultScanConfig()
	return scanFlags{
		configPath: fs.String("config", "", "Path to config file (default ./"+defaultConfigFile+" if present)"),
		serviceURL: fs.String("service-url", defaults.ServiceURL, "Artifact search endpoint"),
		libDir:     fs.String("lib-dir", "", "Directory of jars to scan (or pass as argument)"),
		pattern:    fs.String("pattern", defaults.Pattern, "Only scan files matching this glob"),
		workers:    fs.Int("workers", defaults.Workers, "Number of artifacts identified concurrently"),
		timeout:    fs.Duration("timeout", defaults.Timeout, "HTTP timeout per search request"),
		format:     fs.String("format", defaults.Format, "Output format: pom or cyclonedx"),
		wrap:       fs.Bool("wrap", false, "Wrap pom output in <dependencies>"),
		keyring:    fs.String("keyring", "", "PGP keyring file or KEYS URL; enables .asc signature checks"),
		logLevel:   fs.String("log-level", defaults.LogLevel, "Log level: debug, info, warn, error"),
		logFormat:  fs.String("log-format", defaults.LogFormat, "Log format: text or json"),
	}
}

// resolveConfig layers defaults < config file < environment < flags.
// Only flags explicitly set on the command line override earlier layers.
func resolveConfig(fs *flag.FlagSet, f scanFlags, getenv func(string) string) (entities.ScanConfig, error) {
	cfg := entities.DefaultScanConfig()

	configPath := *f.configPath
	if configPath == "" {
		configPath = getenv("POMSCAN_CONFIG")
	}
	explicit := configPath != ""
	if !explicit {
		configPath = defaultConfigFile
	}

	if _, err := os.Stat(configPath); err == nil || explicit {
		parsed, err := yaml.NewConfigParser().ParseFile(configPath, cfg)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = parsed
	} else if !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("failed to access config %s: %w", configPath, err)
	}

	if err := applyEnv(&cfg, getenv); err != nil {
		return cfg, err
	}

	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "service-url":
			cfg.ServiceURL = *f.serviceURL
		case "lib-dir":
			cfg.LibDir = *f.libDir
		case "pattern":
			cfg.Pattern = *f.pattern
		case "workers":
			cfg.Workers = *f.workers
		case "timeout":
			cfg.Timeout = *f.timeout
		case "format":
			cfg.Format = *f.format
		case "wrap":
			cfg.Wrap = *f.wrap
		case "keyring":
			cfg.KeyringPath = *f.keyring
		case "log-level":
			cfg.LogLevel = *f.logLevel
		case "log-format":
			cfg.LogFormat = *f.logFormat
		}
	})

	if fs.NArg() > 0 {
		cfg.LibDir = fs.Arg(0)
	}

	return cfg, cfg.Validate()
}

func applyEnv(cfg *entities.ScanConfig, getenv func(string) string) error {
	if v := getenv("POMSCAN_SERVICE_URL"); v != "" {
		cfg.ServiceURL = v
	}
	if v := getenv("POMSCAN_LIB_DIR"); v != "" {
		cfg.LibDir = v
	}
	if v := getenv("POMSCAN_PATTERN"); v != "" {
		cfg.Pattern = v
	}
	if v := getenv("POMSCAN_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid POMSCAN_WORKERS %q: %w", v, err)
		}
		cfg.Workers = n
	}
	if v := getenv("POMSCAN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid POMSCAN_TIMEOUT %q: %w", v, err)
		}
		cfg.Timeout = d
	}
	if v := getenv("POMSCAN_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := getenv("POMSCAN_KEYRING"); v != "" {
		cfg.KeyringPath = v
	}
	if v := getenv("POMSCAN_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return nil
}
