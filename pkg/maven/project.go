package maven

import (
	"context"
	"maps"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/matzehuels/libsgen/pkg/deps"
)

// Project is the effective model of a POM: parent values inherited,
// placeholders interpolated and managed versions applied.
// It implements [deps.Project].
type Project struct {
	GroupID    string
	ArtifactID string
	Version    string
	Packaging  string // "jar" when the POM omits it
	Name       string
	FinalName  string // build.finalName, or artifactId-version
	Properties map[string]string
	Managed    map[deps.Key]deps.Dependency // dependencyManagement, parents and imported BOMs included
	Parent     *Parent
	Path       string // file the POM was read from, empty for in-memory POMs

	dependencies []deps.Dependency
}

// Dependencies returns the declared dependencies, own ones first, followed by
// those inherited from the parent.
func (p *Project) Dependencies() []deps.Dependency { return p.dependencies }

// Artifacts returns a resolvable artifact for every declared dependency with
// a concrete version. Dependencies whose version is missing, a range, or an
// unresolved placeholder have no artifact.
func (p *Project) Artifacts() []deps.Artifact {
	var out []deps.Artifact
	for _, d := range p.dependencies {
		if concreteVersion(d.Version) {
			out = append(out, d.Artifact())
		}
	}
	return out
}

// Artifact returns the project's own artifact reference.
func (p *Project) Artifact() deps.Artifact {
	return deps.Artifact{GroupID: p.GroupID, ArtifactID: p.ArtifactID, Version: p.Version, Type: p.Packaging}
}

// Coordinate returns "groupId:artifactId:version".
func (p *Project) Coordinate() string {
	return p.GroupID + ":" + p.ArtifactID + ":" + p.Version
}

func concreteVersion(v string) bool {
	return v != "" && !strings.Contains(v, "${") && !strings.ContainsAny(v[:1], "[(")
}

// importFunc resolves a BOM referenced with scope "import".
type importFunc func(ctx context.Context, bom deps.Dependency) (*Project, error)

// NewProject builds the effective model of pom without a parent model or
// BOM imports. Values declared in <parent> are still inherited.
func NewProject(pom *POM) *Project {
	p, _ := buildProject(context.Background(), pom, nil, nil)
	return p
}

// buildProject computes the effective model of pom on top of parent, which
// may be nil. BOM imports are skipped when imports is nil.
func buildProject(ctx context.Context, pom *POM, parent *Project, imports importFunc) (*Project, error) {
	p := &Project{
		GroupID:    pom.GroupID,
		ArtifactID: pom.ArtifactID,
		Version:    pom.Version,
		Packaging:  pom.Packaging,
		Name:       pom.Name,
		Parent:     pom.Parent,
		Properties: map[string]string{},
		Managed:    map[deps.Key]deps.Dependency{},
	}
	if pom.Parent != nil {
		if p.GroupID == "" {
			p.GroupID = pom.Parent.GroupID
		}
		if p.Version == "" {
			p.Version = pom.Parent.Version
		}
	}
	if p.Packaging == "" {
		p.Packaging = "jar"
	}
	if parent != nil {
		maps.Copy(p.Properties, parent.Properties)
		maps.Copy(p.Managed, parent.Managed)
	}
	maps.Copy(p.Properties, pom.Properties)

	in := &interpolator{project: p}
	p.GroupID = in.expand(p.GroupID)
	p.ArtifactID = in.expand(p.ArtifactID)
	p.Version = in.expand(p.Version)
	p.Packaging = in.expand(p.Packaging)
	p.Name = in.expand(p.Name)
	for k, v := range p.Properties {
		p.Properties[k] = in.expand(v)
	}

	p.FinalName = in.expand(pom.Build.FinalName)
	if p.FinalName == "" {
		p.FinalName = p.ArtifactID + "-" + p.Version
	}

	var boms []deps.Dependency
	for _, raw := range pom.DependencyManagement {
		d := in.dependency(raw)
		if d.Scope == "import" && d.Type == "pom" {
			boms = append(boms, d)
			continue
		}
		p.Managed[d.Key()] = d
	}
	if imports != nil {
		for _, bom := range boms {
			if !concreteVersion(bom.Version) {
				continue
			}
			imported, err := imports(ctx, bom)
			if err != nil {
				return nil, err
			}
			for k, d := range imported.Managed {
				if _, ok := p.Managed[k]; !ok {
					p.Managed[k] = d
				}
			}
		}
	}

	for _, raw := range pom.Dependencies {
		d := in.dependency(raw)
		if d.GroupID == "" || d.ArtifactID == "" {
			continue
		}
		p.dependencies = append(p.dependencies, p.manage(d))
	}
	if parent != nil {
		for _, d := range parent.dependencies {
			if !slices.ContainsFunc(p.dependencies, func(own deps.Dependency) bool { return own.Key() == d.Key() }) {
				p.dependencies = append(p.dependencies, d)
			}
		}
	}
	return p, nil
}

// manage fills the version and scope of d from dependencyManagement and
// applies the defaults for scope and type.
func (p *Project) manage(d deps.Dependency) deps.Dependency {
	if m, ok := p.Managed[d.Key()]; ok {
		if d.Version == "" {
			d.Version = m.Version
		}
		if d.Scope == "" {
			d.Scope = m.Scope
		}
	}
	if d.Scope == "" {
		d.Scope = deps.DefaultScope
	}
	return d
}

var placeholderRe = regexp.MustCompile(`\$\{([^}]+)\}`)

// maxExpansions bounds nested placeholder expansion.
const maxExpansions = 10

type interpolator struct {
	project *Project
}

func (in *interpolator) dependency(raw pomDependency) deps.Dependency {
	d := deps.Dependency{
		GroupID:    in.expand(raw.GroupID),
		ArtifactID: in.expand(raw.ArtifactID),
		Version:    in.expand(raw.Version),
		Scope:      in.expand(raw.Scope),
		Type:       in.expand(raw.Type),
		Classifier: in.expand(raw.Classifier),
		Optional:   in.expand(raw.Optional) == "true",
	}
	if d.Type == "" {
		d.Type = deps.DefaultType
	}
	return d
}

// expand replaces known ${...} placeholders in s. Unknown placeholders are
// left in place.
func (in *interpolator) expand(s string) string {
	for range maxExpansions {
		if !strings.Contains(s, "${") {
			return s
		}
		next := placeholderRe.ReplaceAllStringFunc(s, func(m string) string {
			if v, ok := in.lookup(m[2 : len(m)-1]); ok {
				return v
			}
			return m
		})
		if next == s {
			return s
		}
		s = next
	}
	return s
}

func (in *interpolator) lookup(key string) (string, bool) {
	p := in.project
	for _, prefix := range []string{"project.", "pom."} {
		field, ok := strings.CutPrefix(key, prefix)
		if !ok {
			continue
		}
		switch field {
		case "groupId":
			return p.GroupID, true
		case "artifactId":
			return p.ArtifactID, true
		case "version":
			return p.Version, true
		case "packaging":
			return p.Packaging, true
		case "name":
			return p.Name, true
		case "build.finalName":
			return p.FinalName, p.FinalName != ""
		}
		if p.Parent != nil {
			switch field {
			case "parent.groupId":
				return p.Parent.GroupID, true
			case "parent.artifactId":
				return p.Parent.ArtifactID, true
			case "parent.version":
				return p.Parent.Version, true
			}
		}
	}
	if name, ok := strings.CutPrefix(key, "env."); ok {
		return os.LookupEnv(name)
	}
	v, ok := p.Properties[key]
	return v, ok
}
