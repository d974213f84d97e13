package client

import (
	"hash"

	"github.com/adamwoolhether/modhttp/client/download"
)

// DownloadOption configures a single [Client.Download] call.
type DownloadOption = download.Option

// Sentinel errors re-exported from [download].

var (
	// ErrContentLengthMismatch indicates the byte count did not match Content-Length.
	ErrContentLengthMismatch = download.ErrContentLengthMismatch
	// ErrChecksumMismatch indicates the file checksum did not match the expected value.
	ErrChecksumMismatch = download.ErrChecksumMismatch
	// ErrResponseTooLarge indicates the body exceeded the configured size cap.
	ErrResponseTooLarge = download.ErrResponseTooLarge
	// ErrDownloadCancelled indicates the download was cancelled via context.
	ErrDownloadCancelled = download.ErrDownloadCancelled
)

// Download options forwarded to [download].

// WithChecksum enables checksum validation of the downloaded file.
// h is a [hash.Hash] instance (e.g. sha256.New()), and expected is the
// hex-encoded expected checksum string.
func WithChecksum(h hash.Hash, expected string) DownloadOption {
	return download.WithChecksum(h, expected)
}

// WithProgress enables periodic download progress logging.
func WithProgress() DownloadOption { return download.WithProgress() }

// WithProgressFunc reports every chunk written to fn.
func WithProgressFunc(fn download.ProgressFunc) DownloadOption { return download.WithProgressFunc(fn) }

// WithSkipExisting causes a download to return nil immediately when
// the destination file already exists.
func WithSkipExisting() DownloadOption { return download.WithSkipExisting() }

// WithMaxBytes fails a download whose body exceeds n bytes.
func WithMaxBytes(n int64) DownloadOption { return download.WithMaxBytes(n) }
