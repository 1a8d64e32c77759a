package gateways

import (
	"archive/zip"
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ochairo/pomscan/internal/domain/entities"
	"github.com/ochairo/pomscan/internal/domain/interfaces/gateways"
)

const (
	manifestPath = "META-INF/MANIFEST.MF"

	// maxManifestSize bounds how much of a manifest entry is read
	maxManifestSize = 1 << 20
)

// ErrMalformedManifest is returned when the main section cannot be parsed
var ErrMalformedManifest = errors.New("malformed manifest")

// manifestReader reads JAR manifests using archive/zip
type manifestReader struct{}

// NewManifestReader creates a new manifest reader
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewManifestReader() *manifestReader {
	return &manifestReader{}
}

// ReadManifest opens filePath as a zip archive and parses the main section
// of its manifest
func (r *manifestReader) ReadManifest(filePath string) (entities.Manifest, error) {
	zr, err := zip.OpenReader(filePath)
	if err != nil {
		if errors.Is(err, zip.ErrFormat) {
			return nil, fmt.Errorf("%w: %s", gateways.ErrNotArchive, filePath)
		}
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	//nolint:errcheck // Defer close on read-only archive
	defer zr.Close()

	for _, f := range zr.File {
		if !strings.EqualFold(f.Name, manifestPath) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open manifest entry: %w", err)
		}
		data, err := io.ReadAll(io.LimitReader(rc, maxManifestSize))
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read manifest entry: %w", err)
		}

		return ParseManifest(data)
	}

	return nil, gateways.ErrNoManifest
}

// ParseManifest parses the main section of a manifest. Header names are
// case-insensitive, continuation lines start with a single space, and the
// main section ends at the first blank line.
func ParseManifest(data []byte) (entities.Manifest, error) {
	manifest := make(entities.Manifest)

	// Normalize CRLF and bare CR line endings
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	data = bytes.ReplaceAll(data, []byte("\r"), []byte("\n"))

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 4096), maxManifestSize)

	var lastKey string
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if line == "" {
			break
		}

		if strings.HasPrefix(line, " ") {
			if lastKey == "" {
				return nil, fmt.Errorf("%w: continuation without header at line %d", ErrMalformedManifest, lineNo)
			}
			manifest[lastKey] += line[1:]
			continue
		}

		name, value, ok := strings.Cut(line, ":")
		if !ok || name == "" || strings.ContainsAny(name, " \t") {
			return nil, fmt.Errorf("%w: invalid header at line %d", ErrMalformedManifest, lineNo)
		}

		lastKey = entities.CanonicalAttributeName(name)
		manifest[lastKey] = strings.TrimPrefix(value, " ")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedManifest, err)
	}

	return manifest, nil
}
