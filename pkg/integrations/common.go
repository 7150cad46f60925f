package integrations

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	errs "github.com/matzehuels/libsgen/pkg/errors"
)

const httpTimeout = 10 * time.Second

// Sentinels wrapped by every failed request.
var (
	// ErrNotFound means the repository does not have the resource (404 or
	// 410). Resolvers treat it as "try the next repository".
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork covers transport failures and every other non-2xx status.
	// Such errors carry the NETWORK_ERROR code.
	ErrNetwork = errors.New("network error")
)

// NotFound reports a resource no repository has. The error matches
// [ErrNotFound] and carries the RESOLUTION_FAILED code.
func NotFound(format string, args ...any) error {
	return errs.Wrap(errs.ErrCodeResolution, ErrNotFound, format, args...)
}

// NewHTTPClient returns the http.Client used for repository requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// NormalizeBaseURL trims surrounding space and ends raw with exactly one
// slash so artifact paths can be appended. Blank input stays blank.
func NormalizeBaseURL(raw string) string {
	if s := strings.TrimSpace(raw); s != "" {
		return strings.TrimRight(s, "/") + "/"
	}
	return ""
}

// URLEncode escapes s as a query parameter value.
func URLEncode(s string) string { return url.QueryEscape(s) }
