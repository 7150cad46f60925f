package maven

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	errs "github.com/matzehuels/libsgen/pkg/errors"
	"github.com/matzehuels/libsgen/pkg/integrations"
)

const (
	// CentralURL is the base URL of the Maven Central repository.
	CentralURL = "https://repo1.maven.org/maven2/"

	// SearchURL is the Maven Central search endpoint used for latest-version lookups.
	SearchURL = "https://search.maven.org/solrsearch/select"
)

// Client provides access to Maven repositories and the Maven Central search API.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	searchURL string
}

// Option configures a [Client].
type Option func(*Client)

// WithSearchURL points latest-version lookups at a different search endpoint.
func WithSearchURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.searchURL = url
		}
	}
}

// NewClient creates a Maven client. A nil hc uses [integrations.NewHTTPClient].
func NewClient(hc *http.Client, opts ...Option) *Client {
	c := &Client{
		Client:    integrations.NewClientWithHTTP(hc, nil),
		searchURL: SearchURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchPOM downloads the POM of groupID:artifactID:version from the
// repository rooted at repoURL.
//
// Returns:
//   - The raw POM bytes on success
//   - [integrations.ErrNotFound] if the repository has no such POM
//   - [integrations.ErrNetwork] for HTTP failures
func (c *Client) FetchPOM(ctx context.Context, repoURL, groupID, artifactID, version string) ([]byte, error) {
	url := integrations.NormalizeBaseURL(repoURL) + ArtifactPath(groupID, artifactID, version, "pom")
	data, err := c.GetBytes(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch pom %s:%s:%s: %w", groupID, artifactID, version, err)
	}
	return data, nil
}

// LatestVersion asks Maven Central search for the newest release of
// groupID:artifactID. It returns [integrations.ErrNotFound] if the search
// has no hit.
func (c *Client) LatestVersion(ctx context.Context, groupID, artifactID string) (string, error) {
	query := fmt.Sprintf("g:%q AND a:%q", groupID, artifactID)
	url := fmt.Sprintf("%s?q=%s&rows=1&wt=json", c.searchURL, integrations.URLEncode(query))

	var resp searchResponse
	if err := c.Get(ctx, url, &resp); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return "", fmt.Errorf("%w: maven artifact %s:%s", err, groupID, artifactID)
		}
		return "", err
	}

	if resp.Response.NumFound == 0 || len(resp.Response.Docs) == 0 {
		return "", integrations.NotFound("maven artifact %s:%s", groupID, artifactID)
	}

	doc := resp.Response.Docs[0]
	if doc.LatestVersion != "" {
		return doc.LatestVersion, nil
	}
	if doc.Version != "" {
		return doc.Version, nil
	}
	return "", integrations.NotFound("no version for maven artifact %s:%s", groupID, artifactID)
}

// LatestRelease returns the highest stable version of groupID:artifactID
// among the versions Maven Central search lists, newest first. Versions
// qualified as snapshots, milestones, alphas, betas or release candidates
// are skipped, while platform qualifiers such as "-jre" are kept and release
// markers such as ".Final" or ".RELEASE" are ignored when comparing. If the
// newest listed version cannot be compared, or none can, it falls back to
// [Client.LatestVersion].
func (c *Client) LatestRelease(ctx context.Context, groupID, artifactID string) (string, error) {
	query := fmt.Sprintf("g:%q AND a:%q", groupID, artifactID)
	url := fmt.Sprintf("%s?q=%s&core=gav&rows=%d&wt=json", c.searchURL, integrations.URLEncode(query), maxVersionRows)

	var resp searchResponse
	if err := c.Get(ctx, url, &resp); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return "", fmt.Errorf("%w: maven artifact %s:%s", err, groupID, artifactID)
		}
		return "", err
	}

	var best *semver.Version
	var bestRaw string
	for i, doc := range resp.Response.Docs {
		v, err := semver.NewVersion(releaseMarker.ReplaceAllString(doc.Version, ""))
		if err != nil {
			if i == 0 && !unstableQualifier.MatchString(doc.Version) {
				break
			}
			continue
		}
		if unstableQualifier.MatchString(v.Prerelease()) {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best, bestRaw = v, doc.Version
		}
	}
	if best != nil {
		return bestRaw, nil
	}
	return c.LatestVersion(ctx, groupID, artifactID)
}

// maxVersionRows bounds the version listing of [Client.LatestRelease].
const maxVersionRows = 100

// releaseMarker is a trailing qualifier that denotes a final release.
var releaseMarker = regexp.MustCompile(`(?i)[.-](final|release|ga)$`)

var unstableQualifier = regexp.MustCompile(`(?i)(^|[.-])(snapshot|alpha|a\d|beta|b\d|rc|cr|m\d|milestone|preview|ea)`)

// ArtifactPath returns the repository layout path of an artifact file:
// "group/with/slashes/artifact/version/artifact-version.ext".
func ArtifactPath(groupID, artifactID, version, ext string) string {
	return fmt.Sprintf("%s/%s/%s/%s-%s.%s",
		strings.ReplaceAll(groupID, ".", "/"), artifactID, version, artifactID, version, ext)
}

// ParseCoordinate splits "groupId:artifactId[:version]". The version may be
// empty; groupId and artifactId are validated.
func ParseCoordinate(coord string) (groupID, artifactID, version string, err error) {
	parts := strings.Split(strings.TrimSpace(coord), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return "", "", "", errs.New(errs.ErrCodeInvalidCoordinate,
			"invalid maven coordinate %q (expected groupId:artifactId[:version])", coord)
	}
	if err := errs.ValidateCoordinatePart("groupId", parts[0]); err != nil {
		return "", "", "", err
	}
	if err := errs.ValidateCoordinatePart("artifactId", parts[1]); err != nil {
		return "", "", "", err
	}
	if len(parts) == 3 {
		version = parts[2]
	}
	return parts[0], parts[1], version, nil
}

type searchResponse struct {
	Response struct {
		NumFound int         `json:"numFound"`
		Docs     []searchDoc `json:"docs"`
	} `json:"response"`
}

type searchDoc struct {
	GroupID       string `json:"g"`
	ArtifactID    string `json:"a"`
	Version       string `json:"v"`
	LatestVersion string `json:"latestVersion"`
}
