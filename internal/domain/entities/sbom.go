package entities

import "time"

// SBOM represents a CycloneDX Software Bill of Materials
type SBOM struct {
	BOMFormat   string      `json:"bomFormat"`   // "CycloneDX"
	SpecVersion string      `json:"specVersion"` // "1.4"
	Version     int         `json:"version"`
	Metadata    Metadata    `json:"metadata"`
	Components  []Component `json:"components"`
}

// Component represents a library in the SBOM
type Component struct {
	Type    string `json:"type"` // "library"
	Group   string `json:"group,omitempty"`
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
	PURL    string `json:"purl,omitempty"`
	Hashes  []Hash `json:"hashes,omitempty"`
}

// Hash represents a cryptographic hash of a component
type Hash struct {
	Algorithm string `json:"alg"` // "SHA-1"
	Value     string `json:"content"`
}

// Metadata contains SBOM generation metadata
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	Tools     []Tool    `json:"tools"`
}

// Tool represents a tool used to generate the SBOM
type Tool struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}
