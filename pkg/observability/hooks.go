// Package observability lets libsgen report what it is doing without tying
// the library packages to a UI or metrics backend.
//
// The walker reports each artifact resolution to the registered
// [ResolveHooks]; the repository client reports each request to the
// registered [HTTPHooks]. Both default to no-ops. The CLI registers a
// spinner and a debug logger:
//
//	restore := observability.SetResolveHooks(observability.Tee(spinner, stats))
//	defer restore()
package observability

import (
	"context"
	"sync"
	"time"
)

// ResolveHooks observes the dependency tree walker.
type ResolveHooks interface {
	// OnResolveStart is called before artifact ("group:artifact:type:version:scope")
	// is resolved into its project.
	OnResolveStart(ctx context.Context, artifact string)

	// OnResolveComplete is called after the resolution. deps counts the
	// dependencies the resolved project declares; err is non-nil on failure.
	OnResolveComplete(ctx context.Context, artifact string, deps int, d time.Duration, err error)
}

// HTTPHooks observes requests to Maven repositories.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, status int, d time.Duration)
	// OnError is called when no response arrived at all.
	OnError(ctx context.Context, method, host, path string, err error)
}

// NoopResolveHooks ignores every event. Embed it to implement part of
// [ResolveHooks].
type NoopResolveHooks struct{}

func (NoopResolveHooks) OnResolveStart(context.Context, string)                               {}
func (NoopResolveHooks) OnResolveComplete(context.Context, string, int, time.Duration, error) {}

// NoopHTTPHooks ignores every event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

var mu sync.RWMutex

var (
	resolveHooks ResolveHooks = NoopResolveHooks{}
	httpHooks    HTTPHooks    = NoopHTTPHooks{}
)

// SetResolveHooks registers h and returns a func that reinstates the hooks
// it replaced. A nil h changes nothing.
func SetResolveHooks(h ResolveHooks) (restore func()) {
	return swap(&resolveHooks, h)
}

// SetHTTPHooks registers h and returns a func that reinstates the hooks it
// replaced. A nil h changes nothing.
func SetHTTPHooks(h HTTPHooks) (restore func()) {
	return swap(&httpHooks, h)
}

func swap[T comparable](slot *T, h T) func() {
	mu.Lock()
	defer mu.Unlock()
	prev := *slot
	var zero T
	if h != zero {
		*slot = h
	}
	return func() {
		mu.Lock()
		defer mu.Unlock()
		*slot = prev
	}
}

// Resolve returns the registered resolve hooks.
func Resolve() ResolveHooks {
	mu.RLock()
	defer mu.RUnlock()
	return resolveHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	mu.RLock()
	defer mu.RUnlock()
	return httpHooks
}

// Reset reinstates the no-op hooks.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	resolveHooks = NoopResolveHooks{}
	httpHooks = NoopHTTPHooks{}
}
