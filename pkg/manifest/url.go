package manifest

import (
	"maps"

	"github.com/matzehuels/libsgen/pkg/deps"
	"github.com/matzehuels/libsgen/pkg/integrations"
	mavenapi "github.com/matzehuels/libsgen/pkg/integrations/maven"
)

// DefaultBaseURL is used for groups without an override.
const DefaultBaseURL = mavenapi.CentralURL

// URLResolver builds download URLs for dependencies.
type URLResolver struct {
	base   string
	groups map[string]string
}

// NewURLResolver returns a resolver that uses base (or [DefaultBaseURL] when
// empty) for every group except those in groups, which map an exact groupId
// to its own base URL. Base URLs get a trailing slash if they lack one.
func NewURLResolver(base string, groups map[string]string) *URLResolver {
	if base == "" {
		base = DefaultBaseURL
	}
	r := &URLResolver{
		base:   integrations.NormalizeBaseURL(base),
		groups: make(map[string]string, len(groups)),
	}
	for g, u := range groups {
		r.groups[g] = integrations.NormalizeBaseURL(u)
	}
	return r
}

// BaseURL returns the base URL used for groupID.
func (r *URLResolver) BaseURL(groupID string) string {
	if u, ok := r.groups[groupID]; ok {
		return u
	}
	return r.base
}

// Groups returns a copy of the per-group overrides.
func (r *URLResolver) Groups() map[string]string { return maps.Clone(r.groups) }

// URL returns base + "group/path/artifact/version/artifact-version.jar".
func (r *URLResolver) URL(d deps.Dependency) string {
	return r.BaseURL(d.GroupID) + mavenapi.ArtifactPath(d.GroupID, d.ArtifactID, d.Version, "jar")
}
