package observability

import (
	"context"
	"sync"
	"time"
)

// ResolveStats tallies resolutions. It is safe for concurrent use; the
// zero value is ready.
type ResolveStats struct {
	NoopResolveHooks

	mu       sync.Mutex
	resolved int
	failed   int
	deps     int
	elapsed  time.Duration
	slowest  string
	slowDur  time.Duration
}

func (s *ResolveStats) OnResolveComplete(_ context.Context, artifact string, deps int, d time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.failed++
		return
	}
	s.resolved++
	s.deps += deps
	s.elapsed += d
	if d > s.slowDur {
		s.slowest, s.slowDur = artifact, d
	}
}

// Summary is a snapshot of [ResolveStats].
type Summary struct {
	Resolved int           // Successful resolutions
	Failed   int           // Failed resolutions
	Deps     int           // Dependencies declared by the resolved projects
	Elapsed  time.Duration // Time spent in successful resolutions
	Slowest  string        // Artifact that took longest, "" if none
}

// Summary returns the current totals.
func (s *ResolveStats) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Summary{
		Resolved: s.resolved,
		Failed:   s.failed,
		Deps:     s.deps,
		Elapsed:  s.elapsed,
		Slowest:  s.slowest,
	}
}

// Tee returns hooks that forward every event to each of hs in order. Nil
// entries are skipped.
func Tee(hs ...ResolveHooks) ResolveHooks {
	out := make(tee, 0, len(hs))
	for _, h := range hs {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}

type tee []ResolveHooks

func (t tee) OnResolveStart(ctx context.Context, artifact string) {
	for _, h := range t {
		h.OnResolveStart(ctx, artifact)
	}
}

func (t tee) OnResolveComplete(ctx context.Context, artifact string, deps int, d time.Duration, err error) {
	for _, h := range t {
		h.OnResolveComplete(ctx, artifact, deps, d, err)
	}
}
