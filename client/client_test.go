package client_test

import (
	"bytes"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/adamwoolhether/modhttp/client"
	"github.com/google/go-cmp/cmp"
)

func newServer(t *testing.T, h http.HandlerFunc) *url.URL {
	t.Helper()

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	u, err := url.Parse(ts.URL)
	if err != nil {
		t.Fatalf("parsing test server URL: %v", err)
	}

	return u
}

func TestClient_DefaultHeaders(t *testing.T) {
	const ua = "Mozilla/5.0 (Windows NT 6.1; WOW64; rv:25.0) Gecko/20100101 Firefox/25.0"
	const accept = "application/vnd.github.v3+json"

	headers := make(chan http.Header, 1)
	u := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		headers <- r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	})

	c, err := client.Build(
		client.WithUserAgent(ua),
		client.WithDefaultHeader("Accept", accept),
	)
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}

	req, err := client.Request(t.Context(), u, http.MethodGet)
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}

	if err := c.Do(req, http.StatusOK); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	got := <-headers
	if diff := cmp.Diff([]string{ua, accept}, []string{got.Get("User-Agent"), got.Get("Accept")}); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}

	if ct := got.Get("Content-Type"); ct != "" {
		t.Errorf("expected no Content-Type on a bodiless GET, got %q", ct)
	}
}

func TestClient_DefaultHeaderOverriddenPerRequest(t *testing.T) {
	accepts := make(chan string, 1)
	u := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		accepts <- r.Header.Get("Accept")
		w.WriteHeader(http.StatusOK)
	})

	c, err := client.Build(client.WithDefaultHeader("Accept", "application/vnd.github.v3+json"))
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}

	req, err := client.Request(t.Context(), u, http.MethodGet,
		client.WithHeaders(map[string][]string{"Accept": {"application/octet-stream"}}))
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}

	if err := c.Do(req, http.StatusOK); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if got := <-accepts; got != "application/octet-stream" {
		t.Errorf("expected per-request Accept to win, got %q", got)
	}
}

func TestClient_BuildLeavesDefaultClientAlone(t *testing.T) {
	before := *http.DefaultClient

	if _, err := client.Build(client.WithTimeout(time.Second), client.WithNoFollowRedirects()); err != nil {
		t.Fatalf("creating client: %v", err)
	}

	if http.DefaultClient.Timeout != before.Timeout || http.DefaultClient.Transport != before.Transport {
		t.Error("Build mutated http.DefaultClient")
	}
}

func TestClient_OptionValidation(t *testing.T) {
	testCases := []struct {
		name string
		opt  client.Option
	}{
		{name: "nil client", opt: client.WithClient(nil)},
		{name: "nil transport", opt: client.WithTransport(nil)},
		{name: "negative timeout", opt: client.WithTimeout(-1)},
		{name: "zero throttle", opt: client.WithThrottle(0, 1)},
		{name: "bogus tls version", opt: client.WithTLSMinVersion(0x9999)},
		{name: "empty header key", opt: client.WithDefaultHeader("", "x")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := client.Build(tc.opt); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := client.Build(client.WithTLSMinVersion(tls.VersionTLS12)); err != nil {
		t.Errorf("expected TLS 1.2 pin to be accepted, got: %v", err)
	}
}

func TestClient_Do_Destination(t *testing.T) {
	u := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"tag_name":"v1.2.0","assets":[{"name":"Mod.dll"}]}`)
	})

	c, err := client.Build()
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}

	req, err := client.Request(t.Context(), u, http.MethodGet)
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}

	type asset struct {
		Name string `json:"name"`
	}
	type release struct {
		TagName string  `json:"tag_name"`
		Assets  []asset `json:"assets"`
	}

	var got release
	if err := c.Do(req, http.StatusOK, client.WithDestination(&got)); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	want := release{TagName: "v1.2.0", Assets: []asset{{Name: "Mod.dll"}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("decoded body mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_Do_UnexpectedStatus(t *testing.T) {
	testCases := []struct {
		name     string
		status   int
		authFail bool
	}{
		{name: "not found", status: http.StatusNotFound},
		{name: "rate limited", status: http.StatusForbidden, authFail: true},
		{name: "unauthorized", status: http.StatusUnauthorized, authFail: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			u := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				fmt.Fprint(w, "nope")
			})

			c, err := client.Build()
			if err != nil {
				t.Fatalf("creating client: %v", err)
			}

			req, _ := client.Request(t.Context(), u, http.MethodGet)
			err = c.Do(req, http.StatusOK)

			var statusErr *client.UnexpectedStatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("expected UnexpectedStatusError, got %v", err)
			}
			if statusErr.StatusCode != tc.status || statusErr.Body != "nope" {
				t.Errorf("unexpected error contents: %+v", statusErr)
			}
			if !errors.Is(err, client.ErrUnexpectedStatusCode) {
				t.Error("expected ErrUnexpectedStatusCode in chain")
			}
			if errors.Is(err, client.ErrAuthFailure) != tc.authFail {
				t.Errorf("ErrAuthFailure in chain = %v, want %v", !tc.authFail, tc.authFail)
			}
		})
	}
}

func TestUnexpectedStatusError(t *testing.T) {
	testCases := []struct {
		name     string
		err      *client.UnexpectedStatusError
		msg      string
		notFound bool
	}{
		{
			name:     "missing release asset",
			err:      &client.UnexpectedStatusError{StatusCode: http.StatusNotFound, Err: client.ErrUnexpectedStatusCode},
			msg:      "unexpected status code: 404 Not Found",
			notFound: true,
		},
		{
			name: "api error document",
			err:  &client.UnexpectedStatusError{StatusCode: http.StatusBadGateway, Body: `{"message":"upstream"}`, Err: client.ErrUnexpectedStatusCode},
			msg:  `unexpected status code: 502 Bad Gateway: {"message":"upstream"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.msg, tc.err.Error()); diff != "" {
				t.Errorf("message mismatch (-want +got):\n%s", diff)
			}
			if tc.err.NotFound() != tc.notFound {
				t.Errorf("NotFound() = %v, want %v", !tc.notFound, tc.notFound)
			}
		})
	}
}

func TestClient_ReadAll_BodyLimit(t *testing.T) {
	body := strings.Repeat("b", 2048)

	testCases := []struct {
		name        string
		sendLength  bool
		limit       int64
		expTooLarge bool
	}{
		{name: "within limit", sendLength: true, limit: 4096},
		{name: "exactly limit", sendLength: true, limit: 2048},
		{name: "declared over limit", sendLength: true, limit: 1024, expTooLarge: true},
		{name: "chunked over limit", sendLength: false, limit: 1024, expTooLarge: true},
		{name: "no limit", sendLength: false, limit: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			u := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				if tc.sendLength {
					w.Header().Set("Content-Length", strconv.Itoa(len(body)))
				}
				w.WriteHeader(http.StatusOK)
				if !tc.sendLength {
					w.(http.Flusher).Flush()
				}
				fmt.Fprint(w, body)
			})

			c, err := client.Build()
			if err != nil {
				t.Fatalf("creating client: %v", err)
			}

			req, _ := client.Request(t.Context(), u, http.MethodGet)
			got, err := c.ReadAll(req, http.StatusOK, client.WithBodyLimit(tc.limit))

			if tc.expTooLarge {
				if !errors.Is(err, client.ErrResponseTooLarge) {
					t.Fatalf("expected ErrResponseTooLarge, got %v", err)
				}
				if got != nil {
					t.Error("expected no body on failure")
				}
				return
			}

			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if string(got) != body {
				t.Errorf("body mismatch; got %d bytes, want %d", len(got), len(body))
			}
		})
	}
}

func TestClient_Download_MaxBytes(t *testing.T) {
	body := bytes.Repeat([]byte{0x5a}, 512)

	u := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	})

	c, err := client.Build()
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}

	dir := t.TempDir()

	req, _ := client.Request(t.Context(), u, http.MethodGet)
	err = c.Download(req, http.StatusOK, filepath.Join(dir, "small.bin"), client.WithMaxBytes(100))
	if !errors.Is(err, client.ErrResponseTooLarge) {
		t.Fatalf("expected ErrResponseTooLarge, got %v", err)
	}

	req, _ = client.Request(t.Context(), u, http.MethodGet)
	if err := c.Download(req, http.StatusOK, filepath.Join(dir, "big.bin"), client.WithMaxBytes(1000)); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "big.bin"))
	if err != nil {
		t.Fatalf("reading downloaded file: %v", err)
	}
	if !bytes.Equal(got, body) {
		t.Error("file contents mismatch")
	}

	if _, err := os.Stat(filepath.Join(dir, "small.bin")); !os.IsNotExist(err) {
		t.Errorf("rejected download should leave no file, stat err: %v", err)
	}
}

func TestClient_Download_EmptyDestPath(t *testing.T) {
	c, err := client.Build()
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}

	req, _ := client.Request(t.Context(), client.URL("http", "127.0.0.1", "/"), http.MethodGet)
	if err := c.Download(req, http.StatusOK, ""); err == nil {
		t.Error("expected error for empty destPath")
	}
}

func TestRequest_Payload(t *testing.T) {
	req, err := client.Request(t.Context(), client.URL("https", "example.com", "/mods"), http.MethodPost,
		client.WithPayload(map[string]string{"name": "MegaKnowledge"}))
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}

	if ct := req.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}
}

func TestURL(t *testing.T) {
	u := client.URL("https", "api.github.com", "/repos/owner/mod/releases",
		client.WithPort(443),
		client.WithQueryStrings(map[string]string{"per_page": "1"}),
	)

	if got, want := u.String(), "https://api.github.com:443/repos/owner/mod/releases?per_page=1"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
