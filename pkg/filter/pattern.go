package filter

import (
	"regexp"

	"github.com/matzehuels/libsgen/pkg/deps"
	errs "github.com/matzehuels/libsgen/pkg/errors"
)

// PatternFilter matches full-coordinate regular expressions. The zero value
// accepts everything.
type PatternFilter struct {
	rules    Rules
	includes []*regexp.Regexp
	excludes []*regexp.Regexp
	opts     options
}

// NewPatternFilter compiles rules. Every rule must match the entire
// coordinate; "com\.acme:.*" matches "com.acme:core:1.0" but "acme" does not.
func NewPatternFilter(rules Rules, opts ...Option) (*PatternFilter, error) {
	includes, err := compileRules(rules.Includes)
	if err != nil {
		return nil, err
	}
	excludes, err := compileRules(rules.Excludes)
	if err != nil {
		return nil, err
	}
	return &PatternFilter{
		rules:    rules,
		includes: includes,
		excludes: excludes,
		opts:     newOptions(opts),
	}, nil
}

func compileRules(rules []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(rules))
	for _, rule := range rules {
		re, err := regexp.Compile(`^(?:` + rule + `)$`)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidRule, err, "invalid dependency rule %q", rule)
		}
		out = append(out, re)
	}
	return out, nil
}

// Rules returns the uncompiled rule set.
func (f *PatternFilter) Rules() Rules { return f.rules }

// Coordinate returns the string rules are matched against.
func (f *PatternFilter) Coordinate(dep deps.Dependency) string {
	return dep.Coordinate(f.opts.separator)
}

// Decide applies the policy to dep's coordinate.
func (f *PatternFilter) Decide(dep deps.Dependency) Decision {
	coord := f.Coordinate(dep)
	d := decide(f.includes, f.excludes, func(re *regexp.Regexp) bool {
		return re.MatchString(coord)
	})
	if f.opts.logger != nil {
		logDecision(f.opts.logger, d, coord)
	}
	return d
}

// Include reports whether dep passes the filter.
func (f *PatternFilter) Include(dep deps.Dependency) bool {
	return f.Decide(dep).Included()
}

// Filter removes rejected dependencies from list in place and returns the
// shortened slice. Order is preserved.
func (f *PatternFilter) Filter(list []deps.Dependency) []deps.Dependency {
	return Apply(f, list)
}
