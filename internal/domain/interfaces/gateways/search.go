// Package gateways defines interfaces for external service adapters.
package gateways

import (
	"context"

	"github.com/ochairo/pomscan/internal/domain/entities"
)

// ArtifactSearchGateway queries a remote artifact index.
// A nil Coordinate with a nil error means the index has no match.
type ArtifactSearchGateway interface {
	// SearchByChecksum looks up an artifact by its SHA-1 hex digest
	SearchByChecksum(ctx context.Context, sha1 string) (*entities.Coordinate, error)

	// SearchByNameVersion looks up an artifact by artifactId and version
	SearchByNameVersion(ctx context.Context, name, version string) (*entities.Coordinate, error)
}
