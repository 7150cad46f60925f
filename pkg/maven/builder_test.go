package maven

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"

	"github.com/matzehuels/libsgen/pkg/deps"
	errs "github.com/matzehuels/libsgen/pkg/errors"
	"github.com/matzehuels/libsgen/pkg/integrations"
	mavenapi "github.com/matzehuels/libsgen/pkg/integrations/maven"
)

func pomXML(g, a, v, body string) string {
	return "<project><groupId>" + g + "</groupId><artifactId>" + a + "</artifactId><version>" + v + "</version>" + body + "</project>"
}

func depXML(g, a, v string) string {
	s := "<dependency><groupId>" + g + "</groupId><artifactId>" + a + "</artifactId>"
	if v != "" {
		s += "<version>" + v + "</version>"
	}
	return s + "</dependency>"
}

// repoServer serves POMs keyed by repository layout path and records requests.
type repoServer struct {
	*httptest.Server
	poms     map[string]string
	status   int
	requests []string
}

func newRepoServer(t *testing.T, poms map[string]string) *repoServer {
	t.Helper()
	rs := &repoServer{poms: poms}
	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rs.requests = append(rs.requests, r.URL.Path)
		if rs.status != 0 {
			w.WriteHeader(rs.status)
			return
		}
		if body, ok := rs.poms[strings.TrimPrefix(r.URL.Path, "/")]; ok {
			w.Write([]byte(body))
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(rs.Close)
	return rs
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func path(g, a, v string) string { return mavenapi.ArtifactPath(g, a, v, "pom") }

func artifact(g, a, v string) deps.Artifact {
	return deps.Artifact{GroupID: g, ArtifactID: a, Version: v, Type: "jar"}
}

func TestProjectBuilder_LocalRepositoryFirst(t *testing.T) {
	local := LocalRepository{Dir: t.TempDir()}
	writeFile(t, local.POMPath("com.acme", "core", "1.0"),
		pomXML("com.acme", "core", "1.0", "<dependencies>"+depXML("org.local", "only", "1")+"</dependencies>"))

	remote := newRepoServer(t, map[string]string{
		path("com.acme", "core", "1.0"): pomXML("com.acme", "core", "1.0", ""),
	})

	b := NewProjectBuilder(local, []Repository{{ID: "r", URL: remote.URL}}, WithClient(mavenapi.NewClient(remote.Client())))
	p, err := b.Resolve(context.Background(), artifact("com.acme", "core", "1.0"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if got := p.Dependencies(); len(got) != 1 || got[0].ArtifactID != "only" {
		t.Errorf("Dependencies() = %v, want the local POM's", got)
	}
	if len(remote.requests) != 0 {
		t.Errorf("remote should not be queried, got %v", remote.requests)
	}
}

func TestProjectBuilder_RemoteFallthrough(t *testing.T) {
	empty := newRepoServer(t, nil)
	full := newRepoServer(t, map[string]string{
		path("com.acme", "core", "1.0"): pomXML("com.acme", "core", "1.0", "<dependencies>"+depXML("x", "y", "2")+"</dependencies>"),
	})

	b := NewProjectBuilder(LocalRepository{Dir: t.TempDir()}, []Repository{
		{ID: "empty", URL: empty.URL},
		{ID: "full", URL: full.URL + "/"},
	}, WithClient(mavenapi.NewClient(http.DefaultClient)))

	p, err := b.BuildFromRepository(context.Background(), artifact("com.acme", "core", "1.0"), b.remote, b.local)
	if err != nil {
		t.Fatalf("BuildFromRepository: %v", err)
	}
	if p.Coordinate() != "com.acme:core:1.0" {
		t.Errorf("Coordinate() = %s", p.Coordinate())
	}
	if len(empty.requests) != 1 || len(full.requests) != 1 {
		t.Errorf("requests: empty=%v full=%v", empty.requests, full.requests)
	}
}

func TestProjectBuilder_NetworkErrorAborts(t *testing.T) {
	broken := newRepoServer(t, nil)
	broken.status = http.StatusInternalServerError
	good := newRepoServer(t, map[string]string{
		path("com.acme", "core", "1.0"): pomXML("com.acme", "core", "1.0", ""),
	})

	b := NewProjectBuilder(LocalRepository{}, []Repository{{URL: broken.URL}, {URL: good.URL}})
	_, err := b.Resolve(context.Background(), artifact("com.acme", "core", "1.0"))
	if !errors.Is(err, integrations.ErrNetwork) {
		t.Fatalf("Resolve() error = %v, want ErrNetwork", err)
	}
	if len(good.requests) != 0 {
		t.Error("a network error should not fall through to the next repository")
	}
}

func TestProjectBuilder_NotFound(t *testing.T) {
	b := NewProjectBuilder(LocalRepository{Dir: t.TempDir()}, []Repository{{URL: newRepoServer(t, nil).URL}})
	p, err := b.Resolve(context.Background(), artifact("com.acme", "ghost", "1.0"))
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("Resolve() error = %v, want ErrNotFound", err)
	}
	if !errs.Is(err, errs.ErrCodeResolution) {
		t.Errorf("Resolve() code = %q, want RESOLUTION_FAILED", errs.GetCode(err))
	}
	if p != nil {
		t.Errorf("Resolve() project = %v, want nil interface", p)
	}
}

func TestProjectBuilder_ParentAndBOM(t *testing.T) {
	repo := newRepoServer(t, map[string]string{
		path("com.acme", "parent", "5"): pomXML("com.acme", "parent", "5", `
<properties><jackson.version>2.17.0</jackson.version></properties>
<dependencyManagement><dependencies>
  `+depXML("com.fasterxml.jackson.core", "jackson-databind", "${jackson.version}")+`
  <dependency><groupId>org.junit</groupId><artifactId>junit-bom</artifactId><version>5.10.2</version><type>pom</type><scope>import</scope></dependency>
</dependencies></dependencyManagement>
<dependencies>`+depXML("org.slf4j", "slf4j-api", "2.0.9")+`</dependencies>`),
		path("org.junit", "junit-bom", "5.10.2"): pomXML("org.junit", "junit-bom", "5.10.2", `
<dependencyManagement><dependencies>`+depXML("org.junit.jupiter", "junit-jupiter", "5.10.2")+`</dependencies></dependencyManagement>`),
		path("com.acme", "child", "1.0"): `<project>
  <parent><groupId>com.acme</groupId><artifactId>parent</artifactId><version>5</version></parent>
  <artifactId>child</artifactId><version>1.0</version>
  <dependencies>
    ` + depXML("com.fasterxml.jackson.core", "jackson-databind", "") + `
    ` + depXML("org.junit.jupiter", "junit-jupiter", "") + `
  </dependencies>
</project>`,
	})

	b := NewProjectBuilder(LocalRepository{}, []Repository{{URL: repo.URL}})
	p, err := b.BuildFromRepository(context.Background(), artifact("com.acme", "child", "1.0"), b.remote, b.local)
	if err != nil {
		t.Fatalf("BuildFromRepository: %v", err)
	}

	var got []string
	for _, d := range p.Dependencies() {
		got = append(got, d.String())
	}
	want := []string{
		"com.fasterxml.jackson.core:jackson-databind:2.17.0",
		"org.junit.jupiter:junit-jupiter:5.10.2",
		"org.slf4j:slf4j-api:2.0.9",
	}
	if !slices.Equal(got, want) {
		t.Errorf("Dependencies() = %v, want %v", got, want)
	}
	if p.GroupID != "com.acme" {
		t.Errorf("GroupID = %q, want inherited com.acme", p.GroupID)
	}
}

func TestProjectBuilder_MissingParentFails(t *testing.T) {
	repo := newRepoServer(t, map[string]string{
		path("com.acme", "child", "1.0"): `<project><parent><groupId>com.acme</groupId><artifactId>gone</artifactId><version>1</version></parent><artifactId>child</artifactId><version>1.0</version></project>`,
	})

	b := NewProjectBuilder(LocalRepository{}, []Repository{{URL: repo.URL}})
	_, err := b.Resolve(context.Background(), artifact("com.acme", "child", "1.0"))
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("Resolve() error = %v, want ErrNotFound for the parent", err)
	}
}

func TestLoadProject_LocalParent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "pom.xml"), pomXML("com.acme", "root", "2.0", `
<packaging>pom</packaging>
<properties><guava.version>33.0.0-jre</guava.version></properties>
<dependencyManagement><dependencies>`+depXML("com.google.guava", "guava", "${guava.version}")+`</dependencies></dependencyManagement>`))
	modulePOM := filepath.Join(dir, "app", "pom.xml")
	writeFile(t, modulePOM, `<project>
  <parent><groupId>com.acme</groupId><artifactId>root</artifactId><version>2.0</version></parent>
  <artifactId>app</artifactId>
  <dependencies>`+depXML("com.google.guava", "guava", "")+`</dependencies>
</project>`)

	p, err := LoadProject(modulePOM)
	if err != nil {
		t.Fatalf("LoadProject: %v", err)
	}
	if p.Coordinate() != "com.acme:app:2.0" {
		t.Errorf("Coordinate() = %s", p.Coordinate())
	}
	if p.Path != modulePOM {
		t.Errorf("Path = %q", p.Path)
	}
	if got := p.Dependencies(); len(got) != 1 || got[0].Version != "33.0.0-jre" {
		t.Errorf("Dependencies() = %v, want guava managed by the parent", got)
	}
	if p.FinalName != "app-2.0" || p.Packaging != "jar" {
		t.Errorf("FinalName/Packaging = %q/%q", p.FinalName, p.Packaging)
	}
}

func TestLoadProject_RemoteParentOffline(t *testing.T) {
	pomPath := filepath.Join(t.TempDir(), "pom.xml")
	writeFile(t, pomPath, `<project>
  <parent><groupId>org.springframework.boot</groupId><artifactId>spring-boot-starter-parent</artifactId><version>3.2.0</version></parent>
  <artifactId>demo</artifactId>
</project>`)

	p, err := LoadProject(pomPath)
	if err != nil {
		t.Fatalf("LoadProject: %v", err)
	}
	if p.Coordinate() != "org.springframework.boot:demo:3.2.0" {
		t.Errorf("Coordinate() = %s", p.Coordinate())
	}
}

func TestLoadProject_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadProject(filepath.Join(dir, "pom.xml"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("missing file: error = %v, want FILE_NOT_FOUND", err)
	}

	bad := filepath.Join(dir, "bad.xml")
	writeFile(t, bad, "<project>")
	_, err = LoadProject(bad)
	if !errs.Is(err, errs.ErrCodeInvalidPOM) {
		t.Errorf("bad file: error = %v, want INVALID_POM", err)
	}
}

func TestProjectBuilder_LoadCoordinate(t *testing.T) {
	repo := newRepoServer(t, map[string]string{
		path("com.google.guava", "guava", "33.0.0-jre"): pomXML("com.google.guava", "guava", "33.0.0-jre",
			"<dependencies>"+depXML("com.google.guava", "failureaccess", "1.0.2")+"</dependencies>"),
	})
	search := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"response": map[string]any{
				"numFound": 1,
				"docs":     []map[string]string{{"g": "com.google.guava", "a": "guava", "latestVersion": "33.0.0-jre"}},
			},
		})
	}))
	defer search.Close()

	client := mavenapi.NewClient(nil, mavenapi.WithSearchURL(search.URL))
	b := NewProjectBuilder(LocalRepository{}, []Repository{{URL: repo.URL}}, WithClient(client))

	for _, coord := range []string{"com.google.guava:guava", "com.google.guava:guava:33.0.0-jre"} {
		p, err := b.LoadCoordinate(context.Background(), coord)
		if err != nil {
			t.Fatalf("LoadCoordinate(%q): %v", coord, err)
		}
		if p.Version != "33.0.0-jre" || len(p.Dependencies()) != 1 {
			t.Errorf("LoadCoordinate(%q) = %s with %v", coord, p.Coordinate(), p.Dependencies())
		}
	}

	if _, err := b.LoadCoordinate(context.Background(), "not-a-coordinate"); !errs.Is(err, errs.ErrCodeInvalidCoordinate) {
		t.Errorf("bad coordinate error = %v", err)
	}
}

func TestProjectBuilder_LoadCoordinateFailureCodes(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		sentinel error
		code     errs.Code
	}{
		{"server error", http.StatusInternalServerError, integrations.ErrNetwork, errs.ErrCodeNetwork},
		{"unknown artifact", http.StatusNotFound, integrations.ErrNotFound, errs.ErrCodeResolution},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := mavenapi.NewClient(server.Client(), mavenapi.WithSearchURL(server.URL+"/solrsearch/select"))
			b := NewProjectBuilder(LocalRepository{}, []Repository{{URL: server.URL}}, WithClient(client))

			for _, coord := range []string{"com.acme:core:1.0", "com.acme:core"} {
				_, err := b.LoadCoordinate(context.Background(), coord)
				if !errors.Is(err, tt.sentinel) {
					t.Errorf("LoadCoordinate(%q) error = %v, want %v", coord, err, tt.sentinel)
				}
				if got := errs.GetCode(err); got != tt.code {
					t.Errorf("LoadCoordinate(%q) code = %q, want %q", coord, got, tt.code)
				}
				if got := errs.ExitCode(err); got != errs.ExitResolution {
					t.Errorf("LoadCoordinate(%q) exit = %d, want %d", coord, got, errs.ExitResolution)
				}
			}
		})
	}
}

func TestProjectBuilder_WithWalker(t *testing.T) {
	repo := newRepoServer(t, map[string]string{
		path("com.google.guava", "guava", "33.0.0-jre"): pomXML("com.google.guava", "guava", "33.0.0-jre",
			"<dependencies>"+depXML("com.google.guava", "failureaccess", "1.0.2")+depXML("org.checkerframework", "checker-qual", "3.41.0")+"</dependencies>"),
		path("org.slf4j", "slf4j-simple", "2.0.9"): pomXML("org.slf4j", "slf4j-simple", "2.0.9",
			"<dependencies>"+depXML("org.slf4j", "slf4j-api", "2.0.9")+"</dependencies>"),
	})

	root := NewProject(mustParse(t, pomXML("com.acme", "app", "1.0", "<dependencies>"+
		depXML("com.google.guava", "guava", "33.0.0-jre")+
		depXML("org.slf4j", "slf4j-simple", "2.0.9")+
		"</dependencies>")))

	b := NewProjectBuilder(LocalRepository{}, []Repository{{URL: repo.URL}})
	got, err := deps.NewWalker(b).WalkTree(context.Background(), root)
	if err != nil {
		t.Fatalf("WalkTree: %v", err)
	}

	var names []string
	for _, d := range got {
		names = append(names, d.ArtifactID)
	}
	want := []string{"guava", "slf4j-simple", "failureaccess", "checker-qual", "slf4j-api"}
	if !slices.Equal(names, want) {
		t.Errorf("WalkTree = %v, want %v", names, want)
	}
}

func TestNewLocalRepository(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	l, err := NewLocalRepository("")
	if err != nil {
		t.Fatal(err)
	}
	if l.Dir != filepath.Join(home, ".m2", "repository") {
		t.Errorf("Dir = %q", l.Dir)
	}

	got := l.POMPath("com.acme", "core", "1.0")
	want := filepath.Join(home, ".m2", "repository", "com", "acme", "core", "1.0", "core-1.0.pom")
	if got != want {
		t.Errorf("POMPath() = %q, want %q", got, want)
	}

	if (LocalRepository{}).POMPath("g", "a", "1") != "" {
		t.Error("zero LocalRepository should have no POM paths")
	}
}

func TestCentral(t *testing.T) {
	if Central().BaseURL() != "https://repo1.maven.org/maven2/" {
		t.Errorf("Central().BaseURL() = %q", Central().BaseURL())
	}
}
