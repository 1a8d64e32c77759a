package services

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ochairo/pomscan/internal/domain/entities"
)

const pomIndent = "    "

// pomDependency is the <dependency> element of a pom.xml
type pomDependency struct {
	XMLName    xml.Name `xml:"dependency"`
	GroupID    string   `xml:"groupId,omitempty"`
	ArtifactID string   `xml:"artifactId,omitempty"`
	Version    string   `xml:"version,omitempty"`
}

// RenderPOM writes one commented block per identification: the file name,
// the strategy that matched (or a "no data" note), and the dependency element.
// With wrap set the blocks are enclosed in <dependencies>.
func RenderPOM(w io.Writer, ids []*entities.Identification, wrap bool) error {
	prefix := ""
	if wrap {
		prefix = pomIndent
		if _, err := io.WriteString(w, "<dependencies>\n"); err != nil {
			return err
		}
	}

	for _, id := range ids {
		block, err := renderBlock(id, prefix)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, block); err != nil {
			return err
		}
	}

	if wrap {
		if _, err := io.WriteString(w, "</dependencies>\n"); err != nil {
			return err
		}
	}
	return nil
}

func renderBlock(id *entities.Identification, prefix string) (string, error) {
	var b strings.Builder

	b.WriteString(prefix + comment(id.Artifact.Name) + "\n")

	switch id.Signature {
	case entities.SignatureVerified:
		b.WriteString(prefix + comment("Signature verified, key "+id.SignedBy) + "\n")
	case entities.SignatureFailed:
		b.WriteString(prefix + comment("Signature verification FAILED") + "\n")
	case entities.SignatureUnsigned:
		b.WriteString(prefix + comment("No signature") + "\n")
	}

	if !id.Identified() {
		b.WriteString(prefix + comment("No data was found") + "\n")
		return b.String(), nil
	}

	switch id.Strategy {
	case entities.StrategyChecksum:
		b.WriteString(prefix + comment("Search by Checksum") + "\n")
	case entities.StrategyManifest:
		b.WriteString(prefix + comment("Search by Manifest") + "\n")
	}

	dep := pomDependency{
		GroupID:    id.Coordinate.GroupID,
		ArtifactID: id.Coordinate.ArtifactID,
		Version:    id.Coordinate.Version,
	}
	out, err := xml.MarshalIndent(dep, prefix, pomIndent)
	if err != nil {
		return "", fmt.Errorf("failed to render dependency for %s: %w", id.Artifact.Name, err)
	}
	b.Write(out)
	b.WriteString("\n")

	return b.String(), nil
}

// comment renders an XML comment. "--" is not allowed inside comments.
func comment(text string) string {
	for strings.Contains(text, "--") {
		text = strings.ReplaceAll(text, "--", "- -")
	}
	return "<!--  " + text + " -->"
}

// BuildSBOM converts identifications into a CycloneDX 1.4 document
func BuildSBOM(ids []*entities.Identification, toolVersion string, now time.Time) *entities.SBOM {
	components := make([]entities.Component, 0, len(ids))
	for _, id := range ids {
		component := entities.Component{
			Type: "library",
			Name: id.Artifact.Name,
		}
		if id.Identified() {
			component.Group = id.Coordinate.GroupID
			component.Name = id.Coordinate.ArtifactID
			component.Version = id.Coordinate.Version
			component.PURL = id.Coordinate.PackageURL()
		}
		if id.Checksum != "" {
			component.Hashes = []entities.Hash{{Algorithm: "SHA-1", Value: id.Checksum}}
		}
		components = append(components, component)
	}

	return &entities.SBOM{
		BOMFormat:   "CycloneDX",
		SpecVersion: "1.4",
		Version:     1,
		Components:  components,
		Metadata: entities.Metadata{
			Timestamp: now.UTC(),
			Tools: []entities.Tool{
				{Name: "pomscan", Version: toolVersion},
			},
		},
	}
}

// RenderCycloneDX writes identifications as an indented CycloneDX JSON document
func RenderCycloneDX(w io.Writer, ids []*entities.Identification, toolVersion string, now time.Time) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(BuildSBOM(ids, toolVersion, now)); err != nil {
		return fmt.Errorf("failed to encode SBOM: %w", err)
	}
	return nil
}
