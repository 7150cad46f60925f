package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/libsgen/pkg/observability"
)

// spinnerHooks shows the artifact being resolved next to the spinner.
type spinnerHooks struct {
	observability.NoopResolveHooks
	spinner *Spinner
}

func (h spinnerHooks) OnResolveStart(_ context.Context, artifact string) {
	h.spinner.SetMessage("Resolving " + artifact + "...")
}

// startResolveSpinner starts a spinner that follows walker progress on top
// of the hooks already registered. The returned func stops it and
// reinstates those hooks.
func startResolveSpinner(ctx context.Context, message string) (*Spinner, func()) {
	s := newSpinnerWithContext(ctx, message)
	s.Start()
	restore := observability.SetResolveHooks(observability.Tee(observability.Resolve(), spinnerHooks{spinner: s}))
	return s, func() {
		restore()
		s.Stop()
	}
}

// logHTTPHooks logs every repository request at debug level.
type logHTTPHooks struct {
	logger *log.Logger
}

func (h logHTTPHooks) OnRequest(context.Context, string, string, string) {}

func (h logHTTPHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http", "method", method, "host", host, "path", path, "status", status, "took", d.Round(time.Millisecond))
}

func (h logHTTPHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http failed", "method", method, "host", host, "path", path, "err", err)
}
