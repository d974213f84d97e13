// Package download streams HTTP response bodies to disk.
//
// [Handle] writes a body to a temporary file alongside the destination
// and renames it into place only once every check has passed, so a
// failed transfer never leaves a truncated file behind:
//
//	err := download.Handle(ctx, resp.Body, resp.ContentLength, destPath, logger,
//		download.WithMaxBytes(50e6),
//		download.WithChecksum(sha256.New(), expectedHex),
//	)
//
// [LimitReader] enforces a response size cap on any reader and reports
// overruns as [ErrResponseTooLarge]. [Queue] runs a bounded number of
// transfers concurrently and collects their errors.
//
// Most callers should use the higher-level
// [github.com/adamwoolhether/modhttp/client] package, which invokes
// Handle internally.
package download
