// Package filesystem provides directory-backed artifact listing.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ochairo/pomscan/internal/domain/entities"
)

// ArtifactRepository implements repositories.ArtifactRepository over one directory
type ArtifactRepository struct {
	libDir  string
	pattern string
}

// NewArtifactRepository creates a repository listing regular files in libDir
// whose names match pattern (filepath.Match syntax, "" or "*" for all)
func NewArtifactRepository(libDir, pattern string) *ArtifactRepository {
	if pattern == "" {
		pattern = entities.DefaultPattern
	}
	return &ArtifactRepository{
		libDir:  libDir,
		pattern: pattern,
	}
}

// ListArtifacts returns every direct regular file matching the pattern.
// Subdirectories are not descended into.
func (r *ArtifactRepository) ListArtifacts(ctx context.Context) ([]*entities.Artifact, error) {
	if _, err := filepath.Match(r.pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", r.pattern, err)
	}

	entries, err := os.ReadDir(r.libDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read library directory: %w", err)
	}

	artifacts := make([]*entities.Artifact, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !entry.Type().IsRegular() {
			continue
		}

		// Pattern already validated above
		if ok, _ := filepath.Match(r.pattern, entry.Name()); !ok {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// Removed between listing and stat
			continue
		}

		artifacts = append(artifacts, &entities.Artifact{
			Name: entry.Name(),
			Path: filepath.Join(r.libDir, entry.Name()),
			Size: info.Size(),
		})
	}

	return artifacts, nil
}
