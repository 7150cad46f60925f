package filter

// Chain bundles the pattern and scope filters applied during manifest
// generation. It has no logic of its own.
type Chain struct {
	pattern *PatternFilter
	scope   *ScopeFilter
}

// NewChain returns a Chain of p and s. A nil filter is replaced by one that
// accepts everything.
func NewChain(p *PatternFilter, s *ScopeFilter) *Chain {
	if p == nil {
		p = &PatternFilter{}
	}
	if s == nil {
		s = &ScopeFilter{}
	}
	return &Chain{pattern: p, scope: s}
}

// FromConfig compiles both filters from cfg. opts apply to both.
func FromConfig(cfg Config, opts ...Option) (*Chain, error) {
	p, err := NewPatternFilter(cfg.Dependency, opts...)
	if err != nil {
		return nil, err
	}
	return NewChain(p, NewScopeFilter(cfg.Scope, opts...)), nil
}

// PatternFilter returns the coordinate filter.
func (c *Chain) PatternFilter() *PatternFilter { return c.pattern }

// ScopeFilter returns the scope filter.
func (c *Chain) ScopeFilter() *ScopeFilter { return c.scope }
