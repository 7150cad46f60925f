package maven

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/matzehuels/libsgen/pkg/deps"
	errs "github.com/matzehuels/libsgen/pkg/errors"
	"github.com/matzehuels/libsgen/pkg/integrations"
	mavenapi "github.com/matzehuels/libsgen/pkg/integrations/maven"
)

// maxParentDepth bounds parent and BOM chains.
const maxParentDepth = 16

// BuilderOption configures a [ProjectBuilder].
type BuilderOption func(*ProjectBuilder)

// WithLogger sets the logger for fetch and lookup messages.
func WithLogger(l deps.Logger) BuilderOption {
	return func(b *ProjectBuilder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithClient sets the client used to reach remote repositories.
func WithClient(c *mavenapi.Client) BuilderOption {
	return func(b *ProjectBuilder) {
		if c != nil {
			b.client = c
		}
	}
}

// ProjectBuilder builds [Project]s from POMs found in a local repository or
// in remote repositories. It implements [deps.Resolver].
//
// Lookups check the local repository first, then each remote in order. A
// missing POM falls through to the next repository; any other failure
// aborts the lookup.
type ProjectBuilder struct {
	client *mavenapi.Client
	local  LocalRepository
	remote []Repository
	logger deps.Logger
}

// NewProjectBuilder creates a builder over local and remote.
func NewProjectBuilder(local LocalRepository, remote []Repository, opts ...BuilderOption) *ProjectBuilder {
	b := &ProjectBuilder{
		local:  local,
		remote: remote,
		logger: deps.NopLogger{},
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.client == nil {
		b.client = mavenapi.NewClient(nil)
	}
	return b
}

// Resolve builds the project for a from the builder's repositories.
func (b *ProjectBuilder) Resolve(ctx context.Context, a deps.Artifact) (deps.Project, error) {
	p, err := b.BuildFromRepository(ctx, a, b.remote, b.local)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// BuildFromRepository builds the project of artifact a from local and remote.
func (b *ProjectBuilder) BuildFromRepository(ctx context.Context, a deps.Artifact, remote []Repository, local LocalRepository) (*Project, error) {
	r := &resolution{builder: b, remote: remote, local: local}
	return r.fromRepository(ctx, a.GroupID, a.ArtifactID, a.Version, 0)
}

// Load reads the POM at path and builds its effective model. A parent is
// looked up at its relative path first, then in the repositories.
func (b *ProjectBuilder) Load(ctx context.Context, path string) (*Project, error) {
	r := &resolution{builder: b, remote: b.remote, local: b.local}
	return r.fromFile(ctx, path, 0)
}

// LoadCoordinate builds the project for "groupId:artifactId[:version]".
// Without a version the latest stable release is looked up on Maven Central.
func (b *ProjectBuilder) LoadCoordinate(ctx context.Context, coord string) (*Project, error) {
	g, a, v, err := mavenapi.ParseCoordinate(coord)
	if err != nil {
		return nil, err
	}
	if v == "" {
		if v, err = b.client.LatestRelease(ctx, g, a); err != nil {
			return nil, err
		}
		b.logger.Debugf("Latest version of %s:%s is %s", g, a, v)
	}
	return b.BuildFromRepository(ctx, deps.Artifact{GroupID: g, ArtifactID: a, Version: v, Type: "pom"}, b.remote, b.local)
}

// LoadProject reads the POM at path without consulting any repository. A
// parent is inherited only if it is found at its relative path.
func LoadProject(path string) (*Project, error) {
	r := &resolution{builder: &ProjectBuilder{logger: deps.NopLogger{}}, offline: true}
	return r.fromFile(context.Background(), path, 0)
}

// resolution is the state of one build: the repositories in use.
type resolution struct {
	builder *ProjectBuilder
	remote  []Repository
	local   LocalRepository
	offline bool
}

func (r *resolution) fromFile(ctx context.Context, path string, depth int) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "POM not found: %s", path)
		}
		return nil, err
	}
	pom, err := ParsePOM(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var parent *Project
	if pom.Parent != nil {
		if parent, err = r.parent(ctx, pom.Parent, filepath.Dir(path), depth); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	p, err := buildProject(ctx, pom, parent, r.imports(depth))
	if err != nil {
		return nil, err
	}
	p.Path = path
	return p, nil
}

func (r *resolution) fromRepository(ctx context.Context, groupID, artifactID, version string, depth int) (*Project, error) {
	if depth > maxParentDepth {
		return nil, errs.New(errs.ErrCodeDependencyCycle, "parent chain of %s:%s:%s is too deep", groupID, artifactID, version)
	}
	data, err := r.fetch(ctx, groupID, artifactID, version)
	if err != nil {
		return nil, err
	}
	pom, err := ParsePOM(data)
	if err != nil {
		return nil, fmt.Errorf("%s:%s:%s: %w", groupID, artifactID, version, err)
	}

	var parent *Project
	if pom.Parent != nil {
		parent, err = r.fromRepository(ctx, pom.Parent.GroupID, pom.Parent.ArtifactID, pom.Parent.Version, depth+1)
		if err != nil {
			return nil, fmt.Errorf("parent of %s:%s:%s: %w", groupID, artifactID, version, err)
		}
	}
	return buildProject(ctx, pom, parent, r.imports(depth))
}

// parent resolves the parent of a POM located in dir.
func (r *resolution) parent(ctx context.Context, ref *Parent, dir string, depth int) (*Project, error) {
	if depth > maxParentDepth {
		return nil, errs.New(errs.ErrCodeDependencyCycle, "parent chain of %s:%s is too deep", ref.GroupID, ref.ArtifactID)
	}
	if rel := ref.LocalPath(); rel != "" {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			path = filepath.Join(path, "pom.xml")
		}
		if data, err := os.ReadFile(path); err == nil {
			if pom, err := ParsePOM(data); err == nil && pom.ArtifactID == ref.ArtifactID {
				return r.fromFile(ctx, path, depth+1)
			}
		}
	}
	if r.offline {
		r.builder.logger.Debugf("Parent %s:%s not found locally, inheriting declared values only", ref.GroupID, ref.ArtifactID)
		return nil, nil
	}
	return r.fromRepository(ctx, ref.GroupID, ref.ArtifactID, ref.Version, depth+1)
}

func (r *resolution) imports(depth int) importFunc {
	if r.offline {
		return nil
	}
	return func(ctx context.Context, bom deps.Dependency) (*Project, error) {
		p, err := r.fromRepository(ctx, bom.GroupID, bom.ArtifactID, bom.Version, depth+1)
		if err != nil {
			return nil, fmt.Errorf("import %s: %w", bom, err)
		}
		return p, nil
	}
}

// fetch reads a POM from the local repository or the first remote that has it.
func (r *resolution) fetch(ctx context.Context, groupID, artifactID, version string) ([]byte, error) {
	if path := r.local.POMPath(groupID, artifactID, version); path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			r.builder.logger.Debugf("Read %s:%s:%s from %s", groupID, artifactID, version, path)
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	for _, repo := range r.remote {
		data, err := r.builder.client.FetchPOM(ctx, repo.URL, groupID, artifactID, version)
		if err == nil {
			r.builder.logger.Debugf("Fetched %s:%s:%s from %s", groupID, artifactID, version, repo.BaseURL())
			return data, nil
		}
		if !errors.Is(err, integrations.ErrNotFound) {
			return nil, err
		}
	}
	return nil, integrations.NotFound("pom %s:%s:%s in %d remote repositories",
		groupID, artifactID, version, len(r.remote))
}
