package manifest

import (
	"context"

	"github.com/matzehuels/libsgen/pkg/deps"
	errs "github.com/matzehuels/libsgen/pkg/errors"
	"github.com/matzehuels/libsgen/pkg/filter"
)

// Generator walks a project, filters the result and builds the manifest.
type Generator struct {
	Walker    *deps.Walker  // Required
	Filters   *filter.Chain // nil accepts every dependency
	URLs      *URLResolver  // nil uses DefaultBaseURL for every group
	Separator string        // Coordinate separator for library names, default ":"
	Logger    deps.Logger   // nil discards messages
}

// Result is the outcome of [Generator.Generate].
type Result struct {
	Manifest   *Manifest
	Discovered int               // Unique dependencies found by the walk
	Skipped    int               // Removed by the pattern filter
	Excluded   []deps.Dependency // Removed by the scope filter
	Included   []deps.Dependency // Written to the manifest, in order
}

// Generate builds the manifest for root. A walk failure is returned as is
// and no manifest is produced.
func (g *Generator) Generate(ctx context.Context, root deps.Project) (*Result, error) {
	if g.Walker == nil {
		return nil, errs.New(errs.ErrCodeConfiguration, "generator has no walker")
	}
	log := g.Logger
	if log == nil {
		log = deps.NopLogger{}
	}
	chain := g.Filters
	if chain == nil {
		chain = filter.NewChain(nil, nil)
	}
	urls := g.URLs
	if urls == nil {
		urls = NewURLResolver("", nil)
	}

	list, err := g.Walker.WalkTree(ctx, root)
	if err != nil {
		return nil, err
	}

	res := &Result{Manifest: &Manifest{Libs: []Library{}}, Discovered: len(list)}

	list = chain.PatternFilter().Filter(list)
	res.Skipped = res.Discovered - len(list)
	log.Debugf("Skipped %d artifacts", res.Skipped)

	for _, dep := range list {
		name := dep.Coordinate(g.Separator)
		if !chain.ScopeFilter().Include(dep) {
			log.Debugf("Excluded %s", name)
			res.Excluded = append(res.Excluded, dep)
			continue
		}
		res.Manifest.Libs = append(res.Manifest.Libs, Library{Name: name, URL: urls.URL(dep)})
		res.Included = append(res.Included, dep)
		log.Infof("Included %s to libraries file", name)
	}

	log.Infof("Included %d dependencies in the libraries file", len(res.Included))
	return res, nil
}
