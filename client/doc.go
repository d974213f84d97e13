// Package client provides the configurable HTTP client used to fetch
// mod metadata, files and archives, built on [net/http].
//
// # Building a Client
//
// Use [Build] to create a [Client] with functional options:
//
//	c, err := client.Build(
//		client.WithTimeout(30 * time.Second),
//		client.WithUserAgent("modfetch/1.0"),
//		client.WithDefaultHeader("Accept", "application/vnd.github.v3+json"),
//		client.WithTLSMinVersion(tls.VersionTLS12),
//	)
//
// # Making Requests
//
// Construct a [URL] and [Request], then execute with [Client.Do]:
//
//	u := client.URL("https", "api.github.com", "/repos/owner/mod/releases/latest")
//	req, err := client.Request(ctx, u, http.MethodGet)
//	err = c.Do(req, http.StatusOK, client.WithDestination(&release))
//
// [WithBodyLimit] caps how many response bytes a single call accepts;
// larger bodies fail with [ErrResponseTooLarge]. [Client.ReadAll]
// buffers a whole (capped) body in memory.
//
// # Downloading Files
//
// Stream a response body directly to disk with an optional size cap,
// checksum verification and progress reporting:
//
//	err = c.Download(req, http.StatusOK, "/mods/Mod.dll",
//		client.WithMaxBytes(50e6),
//		client.WithChecksum(sha256.New(), expectedHex),
//	)
//
// For lower-level control see the
// [github.com/adamwoolhether/modhttp/client/download] package.
package client
