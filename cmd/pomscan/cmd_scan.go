package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ochairo/pomscan/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/pomscan/internal/domain-orchestrators"
	"github.com/ochairo/pomscan/internal/domain/entities"
	"github.com/ochairo/pomscan/internal/domain/interfaces"
	"github.com/ochairo/pomscan/internal/domain/services"
	"github.com/ochairo/pomscan/internal/external-adapters/filesystem"
	"github.com/ochairo/pomscan/internal/external-adapters/logging"
)

func runScan(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	flags := registerScanFlags(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: pomscan scan [options] [lib-dir]

Identify every file in a directory and print Maven <dependency> elements.

Each file is looked up by SHA-1 first, then by the name and version in its
META-INF/MANIFEST.MF. Files that match neither are reported as "No data".

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Environment:
  POMSCAN_CONFIG, POMSCAN_SERVICE_URL, POMSCAN_LIB_DIR, POMSCAN_PATTERN,
  POMSCAN_WORKERS, POMSCAN_TIMEOUT, POMSCAN_FORMAT, POMSCAN_KEYRING,
  POMSCAN_LOG_LEVEL

Examples:
  pomscan scan ./WEB-INF/lib
  pomscan scan --pattern '*.jar' --workers 4 --wrap ./lib
  pomscan scan --service-url http://nexus.local/service/local/lucene/search ./lib
  pomscan scan --format cyclonedx ./lib > bom.json
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	cfg, err := resolveConfig(fs, flags, os.Getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		fs.Usage()
		os.Exit(1)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logging.Init(level, cfg.LogFormat, os.Stderr)

	if err := executeScan(ctx, cfg, os.Stdout); err != nil {
		logging.New("scan").Error("scan failed", interfaces.F("error", err))
		os.Exit(1)
	}
}

func executeScan(ctx context.Context, cfg entities.ScanConfig, out io.Writer) error {
	// Layer 1: Gateways and repositories (Infrastructure)
	searchGateway := gateways.NewSearchGateway(cfg.ServiceURL, cfg.Timeout)
	artifactRepo := filesystem.NewArtifactRepository(cfg.LibDir, cfg.Pattern)

	orchConfig := orchestrators.ScanOrchestratorConfig{Workers: cfg.Workers}
	if cfg.KeyringPath != "" {
		verifier, err := gateways.NewGPGVerifier(ctx, cfg.KeyringPath)
		if err != nil {
			return err
		}
		orchConfig.Signatures = verifier
	}

	// Layer 2: Service (Business Logic)
	identifier := services.NewIdentifierService(
		searchGateway,
		gateways.NewChecksumVerifier(),
		gateways.NewManifestReader(),
		logging.New("identifier"),
	)

	// Layer 3: Orchestrator (Use Case)
	scanOrch := orchestrators.NewScanOrchestrator(artifactRepo, identifier, logging.New("scan"), orchConfig)

	result, err := scanOrch.Scan(ctx)
	if err != nil {
		return err
	}

	switch cfg.Format {
	case entities.FormatCycloneDX:
		return services.RenderCycloneDX(out, result.Identifications, version, time.Now())
	default:
		return services.RenderPOM(out, result.Identifications, cfg.Wrap)
	}
}
