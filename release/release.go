// Package release looks up the latest GitHub release of a mod and tells
// whether it is newer than the installed version.
package release

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/blang/semver"
)

// DefaultBaseURL is the GitHub REST API root.
const DefaultBaseURL = "https://api.github.com"

var (
	ErrInvalidRepo    = errors.New("owner and repo must not be empty")
	ErrInvalidVersion = errors.New("invalid version")
)

// Getter decodes the JSON document at url into dest.
// *modhttp.Session satisfies it.
type Getter interface {
	GetJSON(ctx context.Context, url string, dest any) error
}

// Release is the subset of a GitHub release used for mod updates.
type Release struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	Body        string    `json:"body"`
	Prerelease  bool      `json:"prerelease"`
	ZipballURL  string    `json:"zipball_url"`
	PublishedAt time.Time `json:"published_at"`
	Assets      []Asset   `json:"assets"`
}

// Asset is a file attached to a release.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	Size               int64  `json:"size"`
}

// Version parses the tag, tolerating a leading "v" and missing parts.
func (r Release) Version() (semver.Version, error) {
	v, err := semver.ParseTolerant(r.TagName)
	if err != nil {
		return semver.Version{}, fmt.Errorf("%w: tag %q: %w", ErrInvalidVersion, r.TagName, err)
	}

	return v, nil
}

// NewerThan reports whether the release is newer than current.
func (r Release) NewerThan(current string) (bool, error) {
	latest, err := r.Version()
	if err != nil {
		return false, err
	}

	installed, err := semver.ParseTolerant(current)
	if err != nil {
		return false, fmt.Errorf("%w: %q: %w", ErrInvalidVersion, current, err)
	}

	return latest.GT(installed), nil
}

// DownloadURL returns the first asset whose name ends with suffix
// (case-insensitive), falling back to the source zipball.
func (r Release) DownloadURL(suffix string) string {
	suffix = strings.ToLower(suffix)
	for _, a := range r.Assets {
		if suffix != "" && strings.HasSuffix(strings.ToLower(a.Name), suffix) {
			return a.BrowserDownloadURL
		}
	}

	return r.ZipballURL
}

// Checker fetches release metadata.
type Checker struct {
	getter  Getter
	baseURL string
}

// Option configures a Checker.
type Option func(*Checker) error

// WithBaseURL points the Checker at another API root, e.g. GitHub Enterprise.
func WithBaseURL(raw string) Option {
	return func(c *Checker) error {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid base url %q", raw)
		}
		c.baseURL = strings.TrimRight(raw, "/")
		return nil
	}
}

// NewChecker returns a Checker that fetches through g.
func NewChecker(g Getter, optFns ...Option) (*Checker, error) {
	if g == nil {
		return nil, errors.New("getter must not be nil")
	}

	c := &Checker{getter: g, baseURL: DefaultBaseURL}
	for _, opt := range optFns {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Latest returns the latest published release of owner/repo.
func (c *Checker) Latest(ctx context.Context, owner, repo string) (Release, error) {
	if owner == "" || repo == "" {
		return Release{}, ErrInvalidRepo
	}

	endpoint := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.baseURL, url.PathEscape(owner), url.PathEscape(repo))

	var rel Release
	if err := c.getter.GetJSON(ctx, endpoint, &rel); err != nil {
		return Release{}, fmt.Errorf("fetching latest release of %s/%s: %w", owner, repo, err)
	}

	return rel, nil
}

// ParseRepo splits "owner/repo".
func ParseRepo(s string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(s, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRepo, s)
	}

	return owner, repo, nil
}
