package filter

import "github.com/matzehuels/libsgen/pkg/deps"

// ScopeFilter compares a dependency's scope against literal scope names.
// The zero value accepts everything.
type ScopeFilter struct {
	rules Rules
	opts  options
}

// NewScopeFilter returns a ScopeFilter for rules. Matching is exact and
// case-sensitive; an empty scope matches only an empty rule.
func NewScopeFilter(rules Rules, opts ...Option) *ScopeFilter {
	return &ScopeFilter{rules: rules, opts: newOptions(opts)}
}

// Rules returns the rule set.
func (f *ScopeFilter) Rules() Rules { return f.rules }

// Decide applies the policy to dep's scope.
func (f *ScopeFilter) Decide(dep deps.Dependency) Decision {
	d := decide(f.rules.Includes, f.rules.Excludes, func(s string) bool {
		return s == dep.Scope
	})
	if f.opts.logger != nil {
		logDecision(f.opts.logger, d, dep.Coordinate(f.opts.separator))
	}
	return d
}

// Include reports whether dep passes the filter.
func (f *ScopeFilter) Include(dep deps.Dependency) bool {
	return f.Decide(dep).Included()
}
