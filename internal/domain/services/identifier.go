// Package services implements domain business logic and use cases.
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ochairo/pomscan/internal/domain/entities"
	"github.com/ochairo/pomscan/internal/domain/interfaces"
	"github.com/ochairo/pomscan/internal/domain/interfaces/gateways"
	"github.com/ochairo/pomscan/internal/domain/interfaces/services"
)

// identifierService implements IdentifierService as a fixed fallback chain:
// checksum lookup, then manifest lookup, then nothing
type identifierService struct {
	search    gateways.ArtifactSearchGateway
	checksums gateways.ChecksumCalculator
	manifests gateways.ManifestReader
	logger    interfaces.Logger
}

// NewIdentifierService creates a new identifier service with dependency injection
func NewIdentifierService(
	search gateways.ArtifactSearchGateway,
	checksums gateways.ChecksumCalculator,
	manifests gateways.ManifestReader,
	logger interfaces.Logger,
) services.IdentifierService {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &identifierService{
		search:    search,
		checksums: checksums,
		manifests: manifests,
		logger:    logger,
	}
}

// Identify resolves an artifact. The first strategy that yields a populated
// coordinate wins; every failure is logged and degrades to the next strategy.
func (s *identifierService) Identify(ctx context.Context, artifact *entities.Artifact) *entities.Identification {
	result := &entities.Identification{
		Artifact: artifact,
		Strategy: entities.StrategyNone,
	}

	sum, err := s.checksums.CalculateChecksum(artifact.Path)
	if err != nil {
		s.logger.Error("checksum calculation failed",
			interfaces.F("artifact", artifact.Name),
			interfaces.F("error", err))
	} else {
		result.Checksum = sum
		if c := s.identifyByChecksum(ctx, artifact, sum); c != nil {
			result.Strategy = entities.StrategyChecksum
			result.Coordinate = *c
			return result
		}
	}

	if c := s.identifyByManifest(ctx, artifact); c != nil {
		result.Strategy = entities.StrategyManifest
		result.Coordinate = *c
		return result
	}

	s.logger.Debug("artifact not identified", interfaces.F("artifact", artifact.Name))
	return result
}

func (s *identifierService) identifyByChecksum(ctx context.Context, artifact *entities.Artifact, sum string) *entities.Coordinate {
	c, err := s.search.SearchByChecksum(ctx, sum)
	if err != nil {
		s.logger.Error("checksum lookup failed",
			interfaces.F("artifact", artifact.Name),
			interfaces.F("sha1", sum),
			interfaces.F("error", err))
		return nil
	}
	if c == nil || c.IsEmpty() {
		s.logger.Debug("checksum lookup returned no data",
			interfaces.F("artifact", artifact.Name),
			interfaces.F("sha1", sum))
		return nil
	}
	return c
}

func (s *identifierService) identifyByManifest(ctx context.Context, artifact *entities.Artifact) *entities.Coordinate {
	manifest, err := s.manifests.ReadManifest(artifact.Path)
	if err != nil {
		if errors.Is(err, gateways.ErrNoManifest) || errors.Is(err, gateways.ErrNotArchive) {
			s.logger.Debug("artifact has no manifest",
				interfaces.F("artifact", artifact.Name),
				interfaces.F("error", err))
		} else {
			s.logger.Warn("failed to read manifest",
				interfaces.F("artifact", artifact.Name),
				interfaces.F("error", err))
		}
		return nil
	}

	name := SelectName(manifest)
	version := SelectVersion(manifest)
	if strings.TrimSpace(name) == "" && strings.TrimSpace(version) == "" {
		s.logger.Debug("manifest has no name or version attributes",
			interfaces.F("artifact", artifact.Name))
		return nil
	}

	c, err := s.search.SearchByNameVersion(ctx, name, version)
	if err != nil {
		s.logger.Error("manifest lookup failed",
			interfaces.F("artifact", artifact.Name),
			interfaces.F("name", name),
			interfaces.F("version", version),
			interfaces.F("error", err))
		return nil
	}
	if c == nil || c.IsEmpty() {
		s.logger.Debug("manifest lookup returned no data",
			interfaces.F("artifact", artifact.Name),
			interfaces.F("name", name),
			interfaces.F("version", version))
		return nil
	}
	return c
}
