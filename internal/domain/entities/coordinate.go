package entities

import "fmt"

// Coordinate is the (groupId, artifactId, version) triple of a Maven artifact.
// Fields are optional; a zero Coordinate is the "not identified" marker.
type Coordinate struct {
	GroupID    string
	ArtifactID string
	Version    string
}

// IsEmpty reports whether no field is populated
func (c Coordinate) IsEmpty() bool {
	return c.GroupID == "" && c.ArtifactID == "" && c.Version == ""
}

// String renders the coordinate as group:artifact:version
func (c Coordinate) String() string {
	return fmt.Sprintf("%s:%s:%s", c.GroupID, c.ArtifactID, c.Version)
}

// PackageURL returns the purl for the coordinate, e.g.
// pkg:maven/commons-io/commons-io@2.11.0
func (c Coordinate) PackageURL() string {
	if c.IsEmpty() {
		return ""
	}
	purl := "pkg:maven/" + c.GroupID + "/" + c.ArtifactID
	if c.Version != "" {
		purl += "@" + c.Version
	}
	return purl
}
