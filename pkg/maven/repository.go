package maven

import (
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/matzehuels/libsgen/pkg/integrations"
	mavenapi "github.com/matzehuels/libsgen/pkg/integrations/maven"
)

// DefaultLocalRepositoryPath is the standard location of the local Maven repository.
const DefaultLocalRepositoryPath = "~/.m2/repository"

// Repository is a remote Maven repository.
type Repository struct {
	ID  string `mapstructure:"id" toml:"id"`
	URL string `mapstructure:"url" toml:"url"`
}

// Central returns the Maven Central repository.
func Central() Repository {
	return Repository{ID: "central", URL: mavenapi.CentralURL}
}

// BaseURL returns the repository URL with a trailing slash.
func (r Repository) BaseURL() string { return integrations.NormalizeBaseURL(r.URL) }

// LocalRepository is a Maven repository on disk.
type LocalRepository struct {
	Dir string
}

// NewLocalRepository returns the local repository rooted at dir. A leading
// "~" is expanded; an empty dir selects [DefaultLocalRepositoryPath].
func NewLocalRepository(dir string) (LocalRepository, error) {
	if dir == "" {
		dir = DefaultLocalRepositoryPath
	}
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return LocalRepository{}, err
	}
	return LocalRepository{Dir: expanded}, nil
}

// POMPath returns where the repository keeps the POM of groupID:artifactID:version.
// It returns "" for the zero LocalRepository.
func (l LocalRepository) POMPath(groupID, artifactID, version string) string {
	if l.Dir == "" {
		return ""
	}
	return filepath.Join(l.Dir, filepath.FromSlash(mavenapi.ArtifactPath(groupID, artifactID, version, "pom")))
}
