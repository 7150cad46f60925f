// Package buildinfo reports the libsgen version.
//
// Release builds stamp the variables through the linker:
//
//	go build -ldflags "-X github.com/matzehuels/libsgen/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/libsgen/pkg/buildinfo.Commit=$(git rev-parse --short HEAD)" ./cmd/libsgen
//
// Binaries built with "go install" carry no ldflags; for those the module
// version and VCS revision recorded by the toolchain are used instead.
package buildinfo

import (
	"fmt"
	"runtime/debug"
	"sync"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var fromModule = sync.OnceFunc(func() {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch {
		case s.Key == "vcs.revision" && Commit == "none":
			Commit = s.Value
		case s.Key == "vcs.time" && Date == "unknown":
			Date = s.Value
		}
	}
})

// Resolved returns the version, commit and build date, filling unstamped
// values from the embedded module information.
func Resolved() (version, commit, date string) {
	fromModule()
	return Version, Commit, Date
}

// String returns the three values on separate lines.
func String() string {
	v, c, d := Resolved()
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", v, c, d)
}

// Template is the cobra version template.
func Template() string {
	v, c, d := Resolved()
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s)\n", v, c, d)
}

// UserAgent is sent with every repository request.
func UserAgent() string {
	v, _, _ := Resolved()
	return "libsgen/" + v
}
