package gateways

import (
	"errors"

	"github.com/ochairo/pomscan/internal/domain/entities"
)

var (
	// ErrNotArchive is returned when a file is not a zip/jar archive
	ErrNotArchive = errors.New("not a zip archive")

	// ErrNoManifest is returned when an archive has no META-INF/MANIFEST.MF
	ErrNoManifest = errors.New("archive has no manifest")
)

// ChecksumCalculator computes content digests of files
type ChecksumCalculator interface {
	CalculateChecksum(filePath string) (string, error)
}

// ManifestReader extracts the main manifest section of an archive
type ManifestReader interface {
	ReadManifest(filePath string) (entities.Manifest, error)
}

// SignatureVerifier checks detached signatures against a keyring.
// It returns the fingerprint of the signing key on success.
type SignatureVerifier interface {
	VerifySignatureFromFile(filePath, sigPath string) (string, error)
}
