// Package entities defines core domain models and data structures.
package entities

import "strings"

// Artifact represents a binary library archive found in the scan directory
type Artifact struct {
	Name string // file name, e.g. "commons-io-2.11.0.jar"
	Path string
	Size int64
}

// Manifest holds the main attributes of an archive's META-INF/MANIFEST.MF.
// Keys are stored in canonical form; lookups are case-insensitive.
type Manifest map[string]string

// Get returns the value of an attribute, or "" when absent
func (m Manifest) Get(name string) string {
	v, _ := m.Lookup(name)
	return v
}

// Has reports whether the attribute is present, even with an empty value
func (m Manifest) Has(name string) bool {
	_, ok := m.Lookup(name)
	return ok
}

// Lookup returns the attribute value and whether it was present
func (m Manifest) Lookup(name string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m[CanonicalAttributeName(name)]
	return v, ok
}

// CanonicalAttributeName lower-cases a manifest header name.
// JAR manifest header names are case-insensitive.
func CanonicalAttributeName(name string) string {
	return strings.ToLower(name)
}
