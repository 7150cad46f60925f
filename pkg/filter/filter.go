package filter

import (
	"slices"

	"github.com/matzehuels/libsgen/pkg/deps"
)

// Filter decides whether a dependency belongs in the manifest.
type Filter interface {
	// Include reports whether dep passes the filter.
	Include(dep deps.Dependency) bool
	// Decide reports the verdict for dep and the rule branch that produced it.
	Decide(dep deps.Dependency) Decision
	// Rules returns the rule set the filter was built from.
	Rules() Rules
}

// Rules is an include/exclude rule set. Its meaning (regular expression or
// literal scope name) depends on the filter it configures.
type Rules struct {
	Includes []string `mapstructure:"includes" toml:"includes"`
	Excludes []string `mapstructure:"excludes" toml:"excludes"`
}

// IsEmpty reports whether r has no rules. An empty rule set accepts
// everything.
func (r Rules) IsEmpty() bool { return len(r.Includes) == 0 && len(r.Excludes) == 0 }

// Config holds the rule sets for both filters of a [Chain].
type Config struct {
	Dependency Rules `mapstructure:"dependency" toml:"dependency"`
	Scope      Rules `mapstructure:"scope" toml:"scope"`
}

// Decision explains a filter verdict.
type Decision int

const (
	DefaultInclude Decision = iota // No rule matched and no includes are configured
	DefaultExclude                 // Includes are configured but none matched
	MatchedInclude                 // An include rule matched
	MatchedExclude                 // An exclude rule matched
)

// Included reports whether the decision keeps the dependency.
func (d Decision) Included() bool { return d == MatchedInclude || d == DefaultInclude }

func (d Decision) String() string {
	switch d {
	case DefaultInclude:
		return "default-include"
	case DefaultExclude:
		return "default-exclude"
	case MatchedInclude:
		return "include"
	case MatchedExclude:
		return "exclude"
	}
	return "unknown"
}

// Option configures a filter.
type Option func(*options)

type options struct {
	logger    deps.Logger
	separator string
}

func newOptions(opts []Option) options {
	o := options{logger: deps.NopLogger{}, separator: deps.DefaultSeparator}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger that receives "Including"/"Excluding" debug
// messages. A nil logger is ignored.
func WithLogger(l deps.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSeparator sets the coordinate separator used by [PatternFilter].
// An empty separator is ignored.
func WithSeparator(sep string) Option {
	return func(o *options) {
		if sep != "" {
			o.separator = sep
		}
	}
}

// decide applies the include/exclude policy with match as the rule test.
func decide[R any](includes, excludes []R, match func(R) bool) Decision {
	fallback := DefaultInclude
	if len(includes) > 0 {
		if slices.ContainsFunc(includes, match) {
			return MatchedInclude
		}
		fallback = DefaultExclude
	}
	if slices.ContainsFunc(excludes, match) {
		return MatchedExclude
	}
	return fallback
}

// logDecision emits the debug line for an explicit rule match.
func logDecision(l deps.Logger, d Decision, coord string) {
	switch d {
	case MatchedInclude:
		l.Debugf("Including %s", coord)
	case MatchedExclude:
		l.Debugf("Excluding %s", coord)
	}
}

// Apply removes every dependency f rejects from list, in place, keeping the
// relative order of the survivors. It returns the shortened slice.
func Apply(f Filter, list []deps.Dependency) []deps.Dependency {
	return slices.DeleteFunc(list, func(d deps.Dependency) bool { return !f.Include(d) })
}
