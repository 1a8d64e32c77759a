package gateways

import (
	"context"
	"fmt"

	"github.com/ochairo/pomscan/internal/external-adapters/gpg"
)

// gpgVerifier wraps the external PGP adapter to implement gateways.SignatureVerifier
type gpgVerifier struct {
	verifier *gpg.Verifier
}

// NewGPGVerifier loads the keyring from a file path or URL and returns a
// verifier ready to check detached .asc signatures
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewGPGVerifier(ctx context.Context, keyringSource string) (*gpgVerifier, error) {
	v := gpg.NewVerifier()
	if err := v.ImportKeyring(ctx, keyringSource); err != nil {
		return nil, fmt.Errorf("failed to load keyring %s: %w", keyringSource, err)
	}
	return &gpgVerifier{verifier: v}, nil
}

// VerifySignatureFromFile verifies filePath against the detached signature at sigPath
func (g *gpgVerifier) VerifySignatureFromFile(filePath, sigPath string) (string, error) {
	fingerprint, err := g.verifier.VerifySignatureFromFile(filePath, sigPath)
	if err != nil {
		return "", fmt.Errorf("signature verification failed for %s: %w", filePath, err)
	}
	return fingerprint, nil
}
