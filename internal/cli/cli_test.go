package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/mitchellh/go-homedir"

	"github.com/matzehuels/libsgen/internal/config"
	errs "github.com/matzehuels/libsgen/pkg/errors"
	"github.com/matzehuels/libsgen/pkg/manifest"
	"github.com/matzehuels/libsgen/pkg/maven"
)

// captureStdout redirects command output to w until the returned func runs.
func captureStdout(w io.Writer) func() {
	prev := stdout
	stdout = w
	return func() { stdout = prev }
}

// fixture is a project on disk with a populated local repository.
type fixture struct {
	dir  string // project directory holding pom.xml
	pom  string
	repo string // local repository
	cfg  string // config file
}

func pomXML(g, a, v string, deps ...string) string {
	var b strings.Builder
	b.WriteString("<project>\n  <modelVersion>4.0.0</modelVersion>\n")
	b.WriteString("  <groupId>" + g + "</groupId>\n  <artifactId>" + a + "</artifactId>\n  <version>" + v + "</version>\n")
	b.WriteString("  <dependencies>\n")
	for _, d := range deps {
		parts := strings.Split(d, ":")
		b.WriteString("    <dependency><groupId>" + parts[0] + "</groupId><artifactId>" + parts[1] + "</artifactId><version>" + parts[2] + "</version>")
		if len(parts) > 3 {
			b.WriteString("<scope>" + parts[3] + "</scope>")
		}
		b.WriteString("</dependency>\n")
	}
	b.WriteString("  </dependencies>\n</project>\n")
	return b.String()
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

// newFixture lays out:
//
//	com.acme:app:1.0 -> com.acme:lib:1.0 -> org.slf4j:slf4j-api:2.0.9
//	                 -> junit:junit:4.13 (test) -> org.hamcrest:hamcrest-core:1.3
func newFixture(t *testing.T, config string) fixture {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false; homedir.Reset() })

	root := t.TempDir()
	f := fixture{
		dir:  filepath.Join(root, "app"),
		repo: filepath.Join(root, "repo"),
		cfg:  filepath.Join(root, "libsgen.toml"),
	}
	f.pom = filepath.Join(f.dir, "pom.xml")

	writeFile(t, f.pom, pomXML("com.acme", "app", "1.0", "com.acme:lib:1.0", "junit:junit:4.13:test"))
	writeFile(t, filepath.Join(f.repo, "com/acme/lib/1.0/lib-1.0.pom"),
		pomXML("com.acme", "lib", "1.0", "org.slf4j:slf4j-api:2.0.9"))
	writeFile(t, filepath.Join(f.repo, "junit/junit/4.13/junit-4.13.pom"),
		pomXML("junit", "junit", "4.13", "org.hamcrest:hamcrest-core:1.3"))
	writeFile(t, f.cfg, config)

	return f
}

// run executes the CLI with args and returns stdout.
func run(t *testing.T, f fixture, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	restore := captureStdout(&out)
	defer restore()

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs(append(args, "--config", f.cfg))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// resolveArgs keeps every lookup in the local repository. The remote is a
// closed port so that a missing POM fails fast instead of reaching Central.
func resolveArgs(f fixture) []string {
	return []string{f.pom, "--local-repository", f.repo, "--remote", "http://127.0.0.1:1/maven2"}
}

func TestGenerateWritesLibrariesFile(t *testing.T) {
	f := newFixture(t, "[filter.scope]\nexcludes = [\"test\"]\n")

	out, err := run(t, f, append([]string{"generate"}, resolveArgs(f)...)...)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	path := filepath.Join(f.dir, "target", "app-1.0.jar.json")
	m, err := manifest.Read(path)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}

	want := []manifest.Library{
		{Name: "com.acme:lib:1.0", URL: "https://repo1.maven.org/maven2/com/acme/lib/1.0/lib-1.0.jar"},
		{Name: "org.slf4j:slf4j-api:2.0.9", URL: "https://repo1.maven.org/maven2/org/slf4j/slf4j-api/2.0.9/slf4j-api-2.0.9.jar"},
		{Name: "org.hamcrest:hamcrest-core:1.3", URL: "https://repo1.maven.org/maven2/org/hamcrest/hamcrest-core/1.3/hamcrest-core-1.3.jar"},
	}
	if len(m.Libs) != len(want) {
		t.Fatalf("libs = %+v, want %+v", m.Libs, want)
	}
	for i := range want {
		if m.Libs[i] != want[i] {
			t.Errorf("libs[%d] = %+v, want %+v", i, m.Libs[i], want[i])
		}
	}

	for _, s := range []string{"com.acme:app:1.0", "4 discovered", "1 excluded", "3 included", path} {
		if !strings.Contains(out, s) {
			t.Errorf("output lacks %q:\n%s", s, out)
		}
	}
}

func TestGenerateCompactWithGroupURLAndSeparator(t *testing.T) {
	f := newFixture(t, `
pretty = false
separator = "/"

[[group-urls]]
group = "com.acme"
url = "https://nexus.example.com/releases"

[filter.dependency]
excludes = ["junit/.*", "org\\.hamcrest/.*"]
`)

	args := append([]string{"generate"}, resolveArgs(f)...)
	args = append(args, "--output-name", "libs.json")
	if _, err := run(t, f, args...); err != nil {
		t.Fatalf("generate: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(f.dir, "target", "libs.json"))
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(data, []byte("\n")) {
		t.Errorf("compact output contains newlines: %s", data)
	}

	var m manifest.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if len(m.Libs) != 2 {
		t.Fatalf("libs = %+v", m.Libs)
	}
	if m.Libs[0].Name != "com.acme/lib/1.0" || m.Libs[0].URL != "https://nexus.example.com/releases/com/acme/lib/1.0/lib-1.0.jar" {
		t.Errorf("libs[0] = %+v", m.Libs[0])
	}
	if m.Libs[1].Name != "org.slf4j/slf4j-api/2.0.9" {
		t.Errorf("libs[1] = %+v", m.Libs[1])
	}
}

func TestGenerateDryRunWritesNothing(t *testing.T) {
	f := newFixture(t, "")

	args := append([]string{"generate", "--dry-run"}, resolveArgs(f)...)
	out, err := run(t, f, args...)
	if err != nil {
		t.Fatalf("generate --dry-run: %v", err)
	}

	if _, err := os.Stat(filepath.Join(f.dir, "target")); !os.IsNotExist(err) {
		t.Errorf("dry run created the output directory (err=%v)", err)
	}
	if !strings.Contains(out, `+      "name": "com.acme:lib:1.0",`) {
		t.Errorf("diff lacks added library:\n%s", out)
	}
	if !strings.Contains(out, "nothing written") {
		t.Errorf("output lacks dry-run summary:\n%s", out)
	}
}

func TestGenerateDryRunUpToDate(t *testing.T) {
	f := newFixture(t, "")
	args := resolveArgs(f)

	if _, err := run(t, f, append([]string{"generate"}, args...)...); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, f, append([]string{"generate", "--dry-run"}, args...)...)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "up to date") {
		t.Errorf("output = %q", out)
	}
}

func TestGenerateResolutionFailure(t *testing.T) {
	f := newFixture(t, "")
	if err := os.Remove(filepath.Join(f.repo, "junit/junit/4.13/junit-4.13.pom")); err != nil {
		t.Fatal(err)
	}

	_, err := run(t, f, append([]string{"generate"}, resolveArgs(f)...)...)
	if err == nil {
		t.Fatal("expected resolution error")
	}
	if got := errs.GetCode(err); got != errs.ErrCodeResolution {
		t.Errorf("code = %q, want %q (%v)", got, errs.ErrCodeResolution, err)
	}
	if _, statErr := os.Stat(filepath.Join(f.dir, "target")); !os.IsNotExist(statErr) {
		t.Error("failed generation must not write a libraries file")
	}
}

func TestGenerateInvalidRule(t *testing.T) {
	f := newFixture(t, "[filter.dependency]\nincludes = [\"com.acme:(\"]\n")

	_, err := run(t, f, append([]string{"generate"}, resolveArgs(f)...)...)
	if got := errs.GetCode(err); got != errs.ErrCodeInvalidRule {
		t.Errorf("code = %q, want %q (%v)", got, errs.ErrCodeInvalidRule, err)
	}
}

func TestGenerateWatchRejectsCoordinate(t *testing.T) {
	f := newFixture(t, "")

	_, err := run(t, f, "generate", "--watch", "com.acme:app:1.0")
	if got := errs.GetCode(err); got != errs.ErrCodeInvalidInput {
		t.Errorf("code = %q, want %q (%v)", got, errs.ErrCodeInvalidInput, err)
	}
}

func TestTreeShowsVerdicts(t *testing.T) {
	f := newFixture(t, "[filter.dependency]\nexcludes = [\"org\\\\.slf4j:.*\"]\n[filter.scope]\nexcludes = [\"test\"]\n")

	out, err := run(t, f, append([]string{"tree"}, resolveArgs(f)...)...)
	if err != nil {
		t.Fatalf("tree: %v", err)
	}

	for _, s := range []string{
		"com.acme:lib:1.0",
		"org.slf4j:slf4j-api:2.0.9",
		"junit:junit:4.13",
		"exclude",
		"default-include",
		"4 discovered · 2 included",
	} {
		if !strings.Contains(out, s) {
			t.Errorf("tree output lacks %q:\n%s", s, out)
		}
	}
}

func TestTreeOnlyIncluded(t *testing.T) {
	f := newFixture(t, "[filter.scope]\nexcludes = [\"test\"]\n")

	out, err := run(t, f, append([]string{"tree", "--included"}, resolveArgs(f)...)...)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "junit:junit:4.13") {
		t.Errorf("excluded dependency listed:\n%s", out)
	}
	if !strings.Contains(out, "org.hamcrest:hamcrest-core:1.3") {
		t.Errorf("included dependency missing:\n%s", out)
	}
}

func TestGraphWritesDOT(t *testing.T) {
	f := newFixture(t, "[filter.scope]\nexcludes = [\"test\"]\n")
	path := filepath.Join(t.TempDir(), "deps.dot")

	if _, err := run(t, f, append([]string{"graph", "-o", path}, resolveArgs(f)...)...); err != nil {
		t.Fatalf("graph: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	dot := string(data)
	for _, s := range []string{
		"digraph G {",
		`"__project__" -> "com.acme:lib"`,
		`"com.acme:lib" -> "org.slf4j:slf4j-api"`,
		`"junit:junit" -> "org.hamcrest:hamcrest-core"`,
	} {
		if !strings.Contains(dot, s) {
			t.Errorf("DOT lacks %q:\n%s", s, dot)
		}
	}
}

func TestGraphFormat(t *testing.T) {
	tests := []struct {
		flag, output, want string
		wantErr            bool
	}{
		{"", "", "dot", false},
		{"", "deps.svg", "svg", false},
		{"", "deps.PNG", "png", false},
		{"", "deps", "dot", false},
		{"svg", "deps.dot", "svg", false},
		{"pdf", "", "", true},
	}

	for _, tt := range tests {
		got, err := graphFormat(tt.flag, tt.output)
		if (err != nil) != tt.wantErr {
			t.Errorf("graphFormat(%q, %q) error = %v", tt.flag, tt.output, err)
			continue
		}
		if !tt.wantErr && string(got) != tt.want {
			t.Errorf("graphFormat(%q, %q) = %q, want %q", tt.flag, tt.output, got, tt.want)
		}
		if tt.wantErr && errs.GetCode(err) != errs.ErrCodeUnsupported {
			t.Errorf("graphFormat(%q) code = %q", tt.flag, errs.GetCode(err))
		}
	}
}

func TestConfigInitAndShow(t *testing.T) {
	f := newFixture(t, "")
	path := filepath.Join(t.TempDir(), "libsgen.toml")

	if _, err := run(t, f, "config", "init", path); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := run(t, f, "config", "init", path); err == nil {
		t.Error("second init without --force should fail")
	}
	if _, err := run(t, f, "config", "init", path, "--force"); err != nil {
		t.Errorf("init --force: %v", err)
	}

	out, err := run(t, f, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, s := range []string{"# config file: " + f.cfg, `separator = ":"`, `output-dir = "target"`} {
		if !strings.Contains(out, s) {
			t.Errorf("show output lacks %q:\n%s", s, out)
		}
	}
}

func TestVersionFlag(t *testing.T) {
	var out bytes.Buffer
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"--version"})

	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "libsgen ") || !strings.Contains(out.String(), "commit ") {
		t.Errorf("version output = %q", out.String())
	}
}

func TestRunGenerateReadsContext(t *testing.T) {
	f := newFixture(t, "")

	cfg := config.Default()
	cfg.POM = f.pom
	cfg.LocalRepository = f.repo
	cfg.RemoteRepositories = []maven.Repository{{ID: "closed", URL: "http://127.0.0.1:1/maven2"}}
	cfg.Filter.Scope.Excludes = []string{"test"}

	var logs bytes.Buffer
	ctx := withLogger(config.NewContext(context.Background(), cfg), newLogger(&logs, log.InfoLevel))

	res, err := runGenerate(ctx, generateOpts{}, false)
	if err != nil {
		t.Fatalf("runGenerate: %v", err)
	}
	if res.Included != 3 || !res.Changed {
		t.Errorf("result = %+v, want 3 included and changed", res)
	}
	if want := filepath.Join(f.dir, "target", "app-1.0.jar.json"); res.OutputPath != want {
		t.Errorf("output = %q, want %q", res.OutputPath, want)
	}
	if !strings.Contains(logs.String(), "Included 3 dependencies") {
		t.Errorf("context logger got %q", logs.String())
	}
}
