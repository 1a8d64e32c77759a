package services

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ochairo/pomscan/internal/domain/entities"
)

func identified(name string, strategy entities.Strategy, c entities.Coordinate) *entities.Identification {
	return &entities.Identification{
		Artifact:   &entities.Artifact{Name: name, Path: "/lib/" + name},
		Checksum:   "da39a3ee5e6b4b0d3255bfef95601890afd80709",
		Strategy:   strategy,
		Coordinate: c,
	}
}

func TestRenderPOM(t *testing.T) {
	ids := []*entities.Identification{
		identified("y-1.0.jar", entities.StrategyChecksum, entities.Coordinate{GroupID: "com.x", ArtifactID: "y", Version: "1.0"}),
		identified("legacy.jar", entities.StrategyManifest, entities.Coordinate{GroupID: "org.legacy", ArtifactID: "legacy", Version: "2.1"}),
		identified("mystery.jar", entities.StrategyNone, entities.Coordinate{}),
	}

	var buf bytes.Buffer
	if err := RenderPOM(&buf, ids, false); err != nil {
		t.Fatalf("RenderPOM() error = %v", err)
	}

	want := `<!--  y-1.0.jar -->
<!--  Search by Checksum -->
<dependency>
    <groupId>com.x</groupId>
    <artifactId>y</artifactId>
    <version>1.0</version>
</dependency>
<!--  legacy.jar -->
<!--  Search by Manifest -->
<dependency>
    <groupId>org.legacy</groupId>
    <artifactId>legacy</artifactId>
    <version>2.1</version>
</dependency>
<!--  mystery.jar -->
<!--  No data was found -->
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("RenderPOM() mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderPOM_Wrapped(t *testing.T) {
	ids := []*entities.Identification{
		identified("a.jar", entities.StrategyChecksum, entities.Coordinate{GroupID: "g", ArtifactID: "a", Version: "1"}),
	}

	var buf bytes.Buffer
	if err := RenderPOM(&buf, ids, true); err != nil {
		t.Fatalf("RenderPOM() error = %v", err)
	}

	want := `<dependencies>
    <!--  a.jar -->
    <!--  Search by Checksum -->
    <dependency>
        <groupId>g</groupId>
        <artifactId>a</artifactId>
        <version>1</version>
    </dependency>
</dependencies>
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("RenderPOM() mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderPOM_EscapesAndSignatures(t *testing.T) {
	id := identified("a--b.jar", entities.StrategyChecksum, entities.Coordinate{GroupID: "g&co", ArtifactID: "a<b>", Version: "1"})
	id.Signature = entities.SignatureVerified
	id.SignedBy = "ABCDEF"

	failed := identified("c.jar", entities.StrategyNone, entities.Coordinate{})
	failed.Signature = entities.SignatureFailed

	var buf bytes.Buffer
	if err := RenderPOM(&buf, []*entities.Identification{id, failed}, false); err != nil {
		t.Fatalf("RenderPOM() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<!--  a- -b.jar -->",
		"<!--  Signature verified, key ABCDEF -->",
		"<groupId>g&amp;co</groupId>",
		"<artifactId>a&lt;b&gt;</artifactId>",
		"<!--  Signature verification FAILED -->",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderPOM_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderPOM(&buf, nil, false); err != nil {
		t.Fatalf("RenderPOM() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("RenderPOM(nil) wrote %q, want nothing", buf.String())
	}
}

func TestBuildSBOM(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	ids := []*entities.Identification{
		identified("commons-io-2.11.0.jar", entities.StrategyChecksum, entities.Coordinate{GroupID: "commons-io", ArtifactID: "commons-io", Version: "2.11.0"}),
		identified("mystery.jar", entities.StrategyNone, entities.Coordinate{}),
	}

	sbom := BuildSBOM(ids, "1.0.0", now)

	want := []entities.Component{
		{
			Type:    "library",
			Group:   "commons-io",
			Name:    "commons-io",
			Version: "2.11.0",
			PURL:    "pkg:maven/commons-io/commons-io@2.11.0",
			Hashes:  []entities.Hash{{Algorithm: "SHA-1", Value: "da39a3ee5e6b4b0d3255bfef95601890afd80709"}},
		},
		{
			Type:   "library",
			Name:   "mystery.jar",
			Hashes: []entities.Hash{{Algorithm: "SHA-1", Value: "da39a3ee5e6b4b0d3255bfef95601890afd80709"}},
		},
	}
	if diff := cmp.Diff(want, sbom.Components); diff != "" {
		t.Errorf("BuildSBOM() components mismatch (-want +got):\n%s", diff)
	}
	if sbom.BOMFormat != "CycloneDX" || sbom.SpecVersion != "1.4" {
		t.Errorf("BuildSBOM() format = %s %s, want CycloneDX 1.4", sbom.BOMFormat, sbom.SpecVersion)
	}
	if !sbom.Metadata.Timestamp.Equal(now) {
		t.Errorf("Timestamp = %v, want %v", sbom.Metadata.Timestamp, now)
	}
}

func TestRenderCycloneDX(t *testing.T) {
	ids := []*entities.Identification{
		identified("y.jar", entities.StrategyChecksum, entities.Coordinate{GroupID: "com.x", ArtifactID: "y", Version: "1.0"}),
	}

	var buf bytes.Buffer
	if err := RenderCycloneDX(&buf, ids, "dev", time.Unix(0, 0)); err != nil {
		t.Fatalf("RenderCycloneDX() error = %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if doc["bomFormat"] != "CycloneDX" {
		t.Errorf("bomFormat = %v, want CycloneDX", doc["bomFormat"])
	}
	if !strings.Contains(buf.String(), `"purl": "pkg:maven/com.x/y@1.0"`) {
		t.Errorf("expected purl in output:\n%s", buf.String())
	}
}
