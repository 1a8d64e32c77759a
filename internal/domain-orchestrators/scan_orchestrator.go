// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ochairo/pomscan/internal/domain/entities"
	"github.com/ochairo/pomscan/internal/domain/interfaces"
	"github.com/ochairo/pomscan/internal/domain/interfaces/gateways"
	"github.com/ochairo/pomscan/internal/domain/interfaces/repositories"
	"github.com/ochairo/pomscan/internal/domain/interfaces/services"
)

// signatureSuffix is the extension of detached signatures next to artifacts
const signatureSuffix = ".asc"

// ScanOrchestrator coordinates the list -> identify -> collect workflow
type ScanOrchestrator struct {
	artifactRepo repositories.ArtifactRepository
	identifier   services.IdentifierService
	signatures   gateways.SignatureVerifier
	workers      int
	logger       interfaces.Logger
}

// ScanOrchestratorConfig holds configuration for the orchestrator
type ScanOrchestratorConfig struct {
	// Workers bounds concurrent identifications; 1 runs sequentially
	Workers int

	// Signatures enables detached signature checks when non-nil
	Signatures gateways.SignatureVerifier
}

// NewScanOrchestrator creates a new scan orchestrator
func NewScanOrchestrator(
	artifactRepo repositories.ArtifactRepository,
	identifier services.IdentifierService,
	logger interfaces.Logger,
	config ScanOrchestratorConfig,
) *ScanOrchestrator {
	workers := config.Workers
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}

	return &ScanOrchestrator{
		artifactRepo: artifactRepo,
		identifier:   identifier,
		signatures:   config.Signatures,
		workers:      workers,
		logger:       logger,
	}
}

// ScanResult contains the identifications of one scan, in listing order
type ScanResult struct {
	Identifications []*entities.Identification
	Duration        time.Duration
}

// Summary counts identifications per strategy
func (r *ScanResult) Summary() map[entities.Strategy]int {
	counts := map[entities.Strategy]int{
		entities.StrategyChecksum: 0,
		entities.StrategyManifest: 0,
		entities.StrategyNone:     0,
	}
	for _, id := range r.Identifications {
		if id.Identified() {
			counts[id.Strategy]++
		} else {
			counts[entities.StrategyNone]++
		}
	}
	return counts
}

// Scan lists the artifacts and identifies each one. Only a listing failure
// is returned as an error; per-artifact failures degrade to "not identified".
func (o *ScanOrchestrator) Scan(ctx context.Context) (*ScanResult, error) {
	startTime := time.Now()

	artifacts, err := o.artifactRepo.ListArtifacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}

	o.logger.Info("scanning artifacts",
		interfaces.F("count", len(artifacts)),
		interfaces.F("workers", o.workers))

	results := make([]*entities.Identification, len(artifacts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, artifact := range artifacts {
		i, artifact := i, artifact
		g.Go(func() error {
			results[i] = o.identify(gctx, artifact)
			return nil
		})
	}
	_ = g.Wait() // errors captured per identification

	result := &ScanResult{
		Identifications: results,
		Duration:        time.Since(startTime),
	}

	summary := result.Summary()
	o.logger.Info("scan finished",
		interfaces.F("checksum", summary[entities.StrategyChecksum]),
		interfaces.F("manifest", summary[entities.StrategyManifest]),
		interfaces.F("unidentified", summary[entities.StrategyNone]),
		interfaces.F("duration", result.Duration))

	return result, nil
}

func (o *ScanOrchestrator) identify(ctx context.Context, artifact *entities.Artifact) *entities.Identification {
	id := o.identifier.Identify(ctx, artifact)

	if o.signatures != nil {
		id.Signature, id.SignedBy = o.checkSignature(artifact)
	}

	return id
}

// checkSignature verifies <artifact>.asc when it exists; failures are logged,
// never fatal
func (o *ScanOrchestrator) checkSignature(artifact *entities.Artifact) (entities.SignatureStatus, string) {
	sigPath := artifact.Path + signatureSuffix
	if _, err := os.Stat(sigPath); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			o.logger.Warn("cannot access signature",
				interfaces.F("artifact", artifact.Name),
				interfaces.F("error", err))
		}
		return entities.SignatureUnsigned, ""
	}

	fingerprint, err := o.signatures.VerifySignatureFromFile(artifact.Path, sigPath)
	if err != nil {
		o.logger.Error("signature check failed",
			interfaces.F("artifact", artifact.Name),
			interfaces.F("error", err))
		return entities.SignatureFailed, ""
	}

	return entities.SignatureVerified, fingerprint
}
