// Package modhttp downloads mod files and archives over HTTP.
//
// A [Session] is created once at startup with [New] and injected into
// whatever needs to fetch mods. It carries a fixed identity (user agent,
// Accept header, TLS 1.2 minimum) and a set of [config.Settings] that can
// be swapped at any time with [Session.UpdateSettings].
//
// Every request runs with a size cap chosen by its [Purpose]. Mod
// downloads ([Session.DownloadFile], [Session.GetZip],
// [Session.DownloadZip]) use the larger mod update cap; metadata lookups
// ([Session.GetJSON]) use the normal cap. The cap is resolved per request,
// so concurrent downloads of different purposes never observe each
// other's limits.
//
// DownloadFile and DownloadZip never return errors. They log a warning
// and hand back a [Result] whose [Reason] says what went wrong:
//
//	res := s.DownloadFile(ctx, assetURL, filepath.Join(modsDir, "Mod.dll"))
//	if !res.OK() {
//		if res.Reason == modhttp.ReasonNotFound { ... }
//	}
package modhttp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/adamwoolhether/modhttp/client"
)

// ErrInvalidURL is returned when a URL cannot be parsed into a request.
var ErrInvalidURL = errors.New("invalid url")

// newRequest builds a GET for rawURL. Only absolute http and https URLs
// are accepted.
func newRequest(ctx context.Context, rawURL string) (*http.Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}

	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidURL)
	}

	req, err := client.Request(ctx, u, http.MethodGet)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	return req, nil
}
