package services

import (
	"strings"

	"github.com/ochairo/pomscan/internal/domain/entities"
)

// Manifest attributes consulted for the artifact name, in priority order
var nameAttributes = []string{
	"Extension-Name",
	"Implementation-Title",
	"Specification-Title",
}

// Manifest attributes consulted for the version, in priority order
var versionAttributes = []string{
	"Bundle-Version",
	"Implementation-Version",
	"Specification-Version",
}

// SelectName returns the normalized value of the first present name attribute
func SelectName(m entities.Manifest) string {
	return NormalizeField(firstPresent(m, nameAttributes))
}

// SelectVersion returns the normalized value of the first present version attribute
func SelectVersion(m entities.Manifest) string {
	return NormalizeField(firstPresent(m, versionAttributes))
}

// NormalizeField strips double quotes and replaces spaces with hyphens,
// e.g. `My Lib` -> `My-Lib`, `"Foo"` -> `Foo`
func NormalizeField(value string) string {
	if strings.TrimSpace(value) == "" {
		return value
	}
	value = strings.ReplaceAll(value, `"`, "")
	return strings.ReplaceAll(value, " ", "-")
}

// firstPresent returns the first attribute that exists, even if its value is empty
func firstPresent(m entities.Manifest, names []string) string {
	for _, name := range names {
		if v, ok := m.Lookup(name); ok {
			return v
		}
	}
	return ""
}
