package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"time"

	"github.com/matzehuels/libsgen/pkg/buildinfo"
	errs "github.com/matzehuels/libsgen/pkg/errors"
	"github.com/matzehuels/libsgen/pkg/observability"
)

// Client issues GET requests against a Maven repository or search API.
// Every request carries the client's default headers and reports to the
// registered [observability.HTTPHooks].
type Client struct {
	http    *http.Client
	headers map[string]string
}

// NewClient returns a Client using [NewHTTPClient]. headers may be nil; a
// libsgen User-Agent is sent unless headers sets one.
func NewClient(headers map[string]string) *Client {
	return NewClientWithHTTP(nil, headers)
}

// NewClientWithHTTP is like [NewClient] but sends requests through hc.
func NewClientWithHTTP(hc *http.Client, headers map[string]string) *Client {
	if hc == nil {
		hc = NewHTTPClient()
	}
	h := map[string]string{"User-Agent": buildinfo.UserAgent()}
	maps.Copy(h, headers)
	return &Client{http: hc, headers: h}
}

// Get fetches url and decodes the JSON body into v.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	body, err := c.do(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// GetBytes fetches url and returns the body, e.g. a POM document.
func (c *Client) GetBytes(ctx context.Context, url string) ([]byte, error) {
	body, err := c.do(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeNetwork, ErrNetwork, "read %s: %v", url, err)
	}
	return data, nil
}

func (c *Client) do(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errs.Wrap(errs.ErrCodeNetwork, ErrNetwork, "GET %s: %v", url, err)
	}
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		code := errs.ErrCodeNetwork
		if errors.Is(err, ErrNotFound) {
			code = errs.ErrCodeResolution
		}
		return nil, errs.Wrap(code, err, "GET %s", url)
	}
	return resp.Body, nil
}

// checkStatus maps a response status to nil, [ErrNotFound] or [ErrNetwork].
// do attaches the error code: RESOLUTION_FAILED for a missing resource,
// NETWORK_ERROR otherwise.
func checkStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound, code == http.StatusGone:
		return ErrNotFound
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
