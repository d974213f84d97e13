package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/adamwoolhether/modhttp/client/download"
	"github.com/adamwoolhether/modhttp/client/throttle"
)

// Client wraps the std-lib *http.Client.
// It sets a default *http.Client and *http.Transport, which
// can be customized via optional funcs.
type Client struct {
	c      *http.Client
	logger *slog.Logger
}

// Build creates a Client. The returned Client owns its *http.Client and
// never mutates http.DefaultClient.
func Build(optFns ...Option) (*Client, error) {
	client := &Client{
		c:      &http.Client{},
		logger: slog.Default(),
	}

	opts := options{headers: make(http.Header)}
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying client option: %w", err)
		}
	}

	if opts.client != nil {
		client.c = opts.client
	}

	if opts.logger != nil {
		client.logger = opts.logger
	}

	if opts.timeout != nil {
		client.c.Timeout = *opts.timeout
	}

	if opts.noFollowRedirects {
		client.c.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	var transport http.RoundTripper
	switch {
	case opts.rt != nil:
		transport = opts.rt
	case opts.client != nil && opts.client.Transport != nil:
		transport = opts.client.Transport
	default:
		transport = defaultTransport(opts.tlsMinVersion)
	}
	if len(opts.headers) > 0 {
		transport = defaultHeaders{values: opts.headers, base: transport}
	}
	if opts.throttle != nil {
		rt, err := throttle.NewRoundTripper(opts.throttle.RPS, opts.throttle.Burst, func() *slog.Logger { return client.logger }, transport)
		if err != nil {
			return nil, fmt.Errorf("configuring throttle: %w", err)
		}
		transport = rt
	}
	client.c.Transport = transport

	return client, nil
}

// Do will fire the request, and write response to the given dest object if any.
func (c *Client) Do(req *http.Request, expCode int, opts ...DoOption) error {
	var settings doOpts
	for _, opt := range opts {
		err := opt(&settings)
		if err != nil {
			return err
		}
	}

	doFunc := func(resp *http.Response) error {
		if settings.responseBody != nil {
			if err := json.NewDecoder(resp.Body).Decode(settings.responseBody); err != nil {
				return fmt.Errorf("decoding body: %w", err)
			}
		}

		return nil
	}

	return c.exec(req, expCode, settings.limit, doFunc)
}

// ReadAll executes the request and returns the whole response body.
// Combine with WithBodyLimit to bound the memory used.
func (c *Client) ReadAll(req *http.Request, expCode int, opts ...DoOption) ([]byte, error) {
	var settings doOpts
	for _, opt := range opts {
		if err := opt(&settings); err != nil {
			return nil, err
		}
	}

	var body []byte
	readFunc := func(resp *http.Response) error {
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading body: %w", err)
		}
		body = b

		return nil
	}

	if err := c.exec(req, expCode, settings.limit, readFunc); err != nil {
		return nil, err
	}

	return body, nil
}

// Download executes a request that's intended to stream the response body it to destPath.
// Data streams to a temp file in the same directory, then the temp file is renamed to
// destPath on success or cleared on failure.
func (c *Client) Download(req *http.Request, expCode int, destPath string, opts ...DownloadOption) error {
	if destPath == "" {
		return errors.New("destPath must not be empty")
	}

	dlFunc := func(resp *http.Response) error {
		if err := download.Handle(req.Context(), resp.Body, resp.ContentLength, destPath, c.logger, opts...); err != nil {
			return fmt.Errorf("download: %w", err)
		}

		return nil
	}

	return c.exec(req, expCode, 0, dlFunc)
}

// exec runs the request and injected function on success after validating the expected status code.
// A positive limit caps the body handed to fn.
func (c *Client) exec(req *http.Request, expCode int, limit int64, fn execFn) error {
	resp, err := c.c.Do(req)
	if err != nil {
		return fmt.Errorf("exec http do: %w", err)
	}

	discardBody := true
	defer func() {
		if discardBody {
			if _, err = io.Copy(io.Discard, resp.Body); err != nil {
				c.logger.Error("failed to discard unused body", "error", err)
			}
		}
		if err = resp.Body.Close(); err != nil {
			c.logger.Error("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode != expCode {
		b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrBodySize))
		if err != nil {
			b = []byte("unable to read body")
		}

		statusErr := ErrUnexpectedStatusCode
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			statusErr = fmt.Errorf("%w: %w", ErrAuthFailure, ErrUnexpectedStatusCode)
		}

		return &UnexpectedStatusError{
			StatusCode: resp.StatusCode,
			Body:       string(b),
			Err:        statusErr,
		}
	}

	if limit > 0 {
		if resp.ContentLength > limit {
			discardBody = false
			return fmt.Errorf("exec fn: %w", download.TooLarge(limit))
		}
		resp.Body = limitedBody{Reader: download.LimitReader(resp.Body, limit), Closer: resp.Body}
	}

	if err := fn(resp); err != nil {
		discardBody = false
		return fmt.Errorf("exec fn: %w", err)
	}

	return nil
}

// limitedBody pairs a capped reader with the response body's Close.
type limitedBody struct {
	io.Reader
	io.Closer
}

// defaultTransport clones http.DefaultTransport, applying a minimum TLS
// version when one is set.
func defaultTransport(tlsMinVersion uint16) http.RoundTripper {
	base, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return http.DefaultTransport
	}

	t := base.Clone()
	if tlsMinVersion != 0 {
		if t.TLSClientConfig == nil {
			t.TLSClientConfig = &tls.Config{}
		}
		t.TLSClientConfig.MinVersion = tlsMinVersion
	}

	return t
}

// Request instantiates an *http.Request with the provided information.
// Content-Type defaults to `application/json` when a payload is set and
// no WithContentType is given.
func Request(ctx context.Context, reqURL *url.URL, method string, opts ...RequestOption) (*http.Request, error) {
	var settings requestOpts
	for _, opt := range opts {
		err := opt(&settings)
		if err != nil {
			return nil, err
		}
	}

	var body io.Reader
	if settings.body != nil {
		var payload bytes.Buffer
		if err := json.NewEncoder(&payload).Encode(settings.body); err != nil {
			return nil, fmt.Errorf("encoding request payload: %w", err)
		}
		body = &payload
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return nil, fmt.Errorf("instantiating request: %w", err)
	}

	switch {
	case settings.contentType != nil:
		req.Header.Set("Content-Type", *settings.contentType)
	case settings.body != nil:
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range settings.headers {
		for _, element := range v {
			req.Header.Add(k, element)
		}
	}

	return req, nil
}

// URL creates a url.URL for use in Request.
func URL(scheme, host, path string, opts ...URLOption) *url.URL {
	var settings urlOpts
	for _, opt := range opts {
		opt(&settings)
	}

	if settings.port != nil {
		host = fmt.Sprintf("%s:%d", host, *settings.port)
	}

	endpoint := url.URL{
		Scheme: scheme,
		Host:   host,
		Path:   path,
	}

	if settings.queryStrings != nil {
		queryParams := url.Values{}
		for k, v := range settings.queryStrings {
			queryParams.Add(k, v)
		}

		endpoint.RawQuery = queryParams.Encode()
	}

	return &endpoint
}
