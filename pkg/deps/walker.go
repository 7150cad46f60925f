package deps

import (
	"context"
	"errors"
	"slices"
	"time"

	errs "github.com/matzehuels/libsgen/pkg/errors"
	"github.com/matzehuels/libsgen/pkg/observability"
)

// Visitor observes every declared dependency the walker sees. from is the
// artifact whose project declared dep, or the zero Artifact for the root;
// added reports whether dep was new to the result.
type Visitor func(from Artifact, dep Dependency, added bool)

// Option configures a [Walker].
type Option func(*Walker)

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l Logger) Option {
	return func(w *Walker) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithTransitive makes the walker resolve the artifacts of nested projects
// too. By default only the root's artifacts are resolved and nested projects
// contribute their declared dependencies.
func WithTransitive(on bool) Option {
	return func(w *Walker) { w.transitive = on }
}

// WithVisitor registers fn to observe declared dependencies.
func WithVisitor(fn Visitor) Option {
	return func(w *Walker) { w.visit = fn }
}

// Walker flattens a project's dependency tree into a deduplicated list.
//
// A Walker holds no per-walk state and may be reused. Each WalkTree call is
// sequential and depth-first.
type Walker struct {
	resolver   Resolver
	logger     Logger
	transitive bool
	visit      Visitor
}

// NewWalker creates a Walker that resolves artifacts through r.
func NewWalker(r Resolver, opts ...Option) *Walker {
	w := &Walker{resolver: r, logger: NopLogger{}}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WalkTree returns every dependency reachable from root, in discovery order,
// with at most one entry per (group, artifact). The first occurrence wins.
//
// Any resolution failure aborts the walk and is returned as a
// *[ResolutionError]; no partial result is returned.
func (w *Walker) WalkTree(ctx context.Context, root Project) ([]Dependency, error) {
	if root == nil {
		return nil, errs.New(errs.ErrCodeConfiguration, "root project is required")
	}
	t := &walk{
		Walker: w,
		seen:   make(map[Key]struct{}),
		done:   make(map[Artifact]struct{}),
	}
	if err := t.visitProject(ctx, root, Artifact{}, 0); err != nil {
		return nil, err
	}
	w.logger.Infof("Found %d dependencies", len(t.result))
	return t.result, nil
}

// walk is the state of one WalkTree call.
type walk struct {
	*Walker
	result []Dependency
	seen   map[Key]struct{}
	done   map[Artifact]struct{}
	path   []Artifact // artifacts currently being walked
}

func (t *walk) visitProject(ctx context.Context, p Project, from Artifact, depth int) error {
	for _, dep := range p.Dependencies() {
		t.add(from, dep)
	}

	if depth > 0 && !t.transitive {
		return nil
	}

	for _, a := range p.Artifacts() {
		if err := t.visitArtifact(ctx, a, depth); err != nil {
			return err
		}
	}
	return nil
}

func (t *walk) visitArtifact(ctx context.Context, a Artifact, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, ok := t.done[a]; ok {
		return nil
	}
	if i := slices.IndexFunc(t.path, func(p Artifact) bool { return p.Key() == a.Key() }); i >= 0 {
		return &CycleError{Path: append(slices.Clone(t.path[i:]), a)}
	}

	t.logger.Debugf("Resolving %s", a)
	hooks := observability.Resolve()
	hooks.OnResolveStart(ctx, a.String())
	start := time.Now()
	sub, err := t.resolver.Resolve(ctx, a)
	n := 0
	if err == nil && sub != nil {
		n = len(sub.Dependencies())
	}
	hooks.OnResolveComplete(ctx, a.String(), n, time.Since(start), err)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return ctxErr
		}
		return &ResolutionError{Artifact: a, Err: err}
	}

	if n > 0 {
		t.path = append(t.path, a)
		err = t.visitProject(ctx, sub, a, depth+1)
		t.path = t.path[:len(t.path)-1]
		if err != nil {
			return err
		}
	}
	t.done[a] = struct{}{}
	return nil
}

func (t *walk) add(from Artifact, dep Dependency) {
	_, dup := t.seen[dep.Key()]
	if !dup {
		t.seen[dep.Key()] = struct{}{}
		t.result = append(t.result, dep)
	}
	if t.visit != nil {
		t.visit(from, dep, !dup)
	}
}
