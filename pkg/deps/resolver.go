package deps

import "context"

// Project is a resolvable unit of dependencies.
type Project interface {
	// Dependencies returns the declared dependencies, possibly empty.
	Dependencies() []Dependency
	// Artifacts returns the artifacts this project directly depends on,
	// possibly empty. Each can be resolved into another Project.
	Artifacts() []Artifact
}

// Resolver turns an artifact reference into the Project it describes.
type Resolver interface {
	// Resolve builds the project for a, or returns an error if a cannot be
	// located or parsed.
	Resolve(ctx context.Context, a Artifact) (Project, error)
}

// ResolverFunc adapts a function to [Resolver].
type ResolverFunc func(ctx context.Context, a Artifact) (Project, error)

// Resolve calls f(ctx, a).
func (f ResolverFunc) Resolve(ctx context.Context, a Artifact) (Project, error) { return f(ctx, a) }

// Logger receives informational and debug messages. It is purely
// observational. *log.Logger from charmbracelet/log satisfies it.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
