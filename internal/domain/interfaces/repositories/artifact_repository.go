// Package repositories defines interfaces for data access layers.
package repositories

import (
	"context"

	"github.com/ochairo/pomscan/internal/domain/entities"
)

// ArtifactRepository lists candidate artifacts to identify
type ArtifactRepository interface {
	// ListArtifacts returns every candidate file in listing order
	ListArtifacts(ctx context.Context) ([]*entities.Artifact, error)
}
