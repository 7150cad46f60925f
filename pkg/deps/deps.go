package deps

import "strings"

const (
	DefaultSeparator = ":"       // Default coordinate separator
	DefaultScope     = "compile" // Scope assumed when a POM omits it
	DefaultType      = "jar"     // Packaging type assumed when a POM omits it
)

// Key is the identity of a dependency for deduplication: group and artifact
// only. Version and scope are deliberately not part of it.
type Key struct {
	GroupID    string
	ArtifactID string
}

// String returns "groupId:artifactId".
func (k Key) String() string { return k.GroupID + ":" + k.ArtifactID }

// Dependency is a declared dependency of a project.
type Dependency struct {
	GroupID    string // Maven groupId (never empty in a valid dependency)
	ArtifactID string // Maven artifactId (never empty in a valid dependency)
	Version    string // Version as declared, after interpolation
	Scope      string // compile, runtime, test, provided, system, import (may be empty)
	Type       string // Packaging type (e.g., "jar", "pom")
	Classifier string // Optional classifier (e.g., "sources")
	Optional   bool   // Marked <optional>true</optional>
}

// Key returns the dedup identity of d.
func (d Dependency) Key() Key {
	return Key{GroupID: d.GroupID, ArtifactID: d.ArtifactID}
}

// Coordinate returns "group<sep>artifact<sep>version". An empty sep falls
// back to [DefaultSeparator].
func (d Dependency) Coordinate(sep string) string {
	if sep == "" {
		sep = DefaultSeparator
	}
	return d.GroupID + sep + d.ArtifactID + sep + d.Version
}

// String returns the coordinate with the default separator.
func (d Dependency) String() string { return d.Coordinate(DefaultSeparator) }

// Artifact converts d into a resolvable artifact reference.
func (d Dependency) Artifact() Artifact {
	return Artifact{
		GroupID:    d.GroupID,
		ArtifactID: d.ArtifactID,
		Version:    d.Version,
		Type:       d.Type,
		Classifier: d.Classifier,
		Scope:      d.Scope,
	}
}

// Artifact references a concrete, resolvable artifact. Resolving it yields
// the [Project] described by its POM.
type Artifact struct {
	GroupID    string
	ArtifactID string
	Version    string
	Type       string
	Classifier string
	Scope      string
}

// Key returns the dedup identity of a.
func (a Artifact) Key() Key {
	return Key{GroupID: a.GroupID, ArtifactID: a.ArtifactID}
}

// IsZero reports whether a is the zero Artifact (used for the walk root).
func (a Artifact) IsZero() bool { return a == Artifact{} }

// String renders "group:artifact:type[:classifier]:version[:scope]".
func (a Artifact) String() string {
	typ := a.Type
	if typ == "" {
		typ = DefaultType
	}
	parts := []string{a.GroupID, a.ArtifactID, typ}
	if a.Classifier != "" {
		parts = append(parts, a.Classifier)
	}
	parts = append(parts, a.Version)
	if a.Scope != "" {
		parts = append(parts, a.Scope)
	}
	return strings.Join(parts, ":")
}
