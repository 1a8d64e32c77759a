// Package services defines interfaces for domain service contracts.
package services

import (
	"context"

	"github.com/ochairo/pomscan/internal/domain/entities"
)

// IdentifierService resolves an artifact to a Maven coordinate
type IdentifierService interface {
	// Identify runs the lookup strategies in priority order.
	// It never fails: errors degrade to StrategyNone.
	Identify(ctx context.Context, artifact *entities.Artifact) *entities.Identification
}
