package gateways

import (
	"context"
	"crypto/sha1" //nolint:gosec // G505: SHA-1 is what the artifact index is keyed by
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// checksumChunkSize is the read size used when streaming a file into the digest
const checksumChunkSize = 1024

// ErrChecksumMismatch is returned when a file does not match its expected digest
var ErrChecksumMismatch = errors.New("checksum mismatch")

// checksumVerifier implements SHA-1 checksum calculation and verification
type checksumVerifier struct{}

// NewChecksumVerifier creates a new checksum verifier
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewChecksumVerifier() *checksumVerifier {
	return &checksumVerifier{}
}

// CalculateChecksum calculates the SHA-1 checksum of a file as lowercase hex.
// The file is streamed in fixed-size chunks, never loaded whole.
func (v *checksumVerifier) CalculateChecksum(filePath string) (string, error) {
	//nolint:gosec // G304: File path comes from the scanned directory listing
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("not a regular file: %s", filePath)
	}

	h := sha1.New() //nolint:gosec // G401: see import
	buf := make([]byte, checksumChunkSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to hash file: %w", err)
		}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// VerifyChecksum verifies a file's SHA-1 checksum against an expected value.
// expectedSum may be in sidecar form ("<hex>  <filename>").
func (v *checksumVerifier) VerifyChecksum(_ context.Context, filePath, expectedSum string) error {
	expected := ParseChecksumSidecar(expectedSum)
	if expected == "" {
		return fmt.Errorf("expected checksum is empty")
	}

	actualSum, err := v.CalculateChecksum(filePath)
	if err != nil {
		return err
	}

	if actualSum != expected {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksumMismatch, expected, actualSum)
	}

	return nil
}

// VerifySidecar verifies filePath against the digest stored in filePath+".sha1"
func (v *checksumVerifier) VerifySidecar(ctx context.Context, filePath string) error {
	//nolint:gosec // G304: sidecar path derived from the artifact path
	data, err := os.ReadFile(filePath + ".sha1")
	if err != nil {
		return fmt.Errorf("failed to read checksum sidecar: %w", err)
	}
	return v.VerifyChecksum(ctx, filePath, string(data))
}

// ParseChecksumSidecar extracts the hex digest from the contents of a
// checksum file. Both bare digests and "sha1sum" style lines are accepted.
func ParseChecksumSidecar(content string) string {
	fields := strings.Fields(content)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}
