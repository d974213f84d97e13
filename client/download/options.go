package download

import (
	"errors"
	"hash"
)

// Option defines optional settings for downloading files.
//
// WithChecksum enables checksum validation of the downloaded file.
// h is a hash.Hash instance (e.g. sha256.New()), and expected is the
// hex-encoded expected checksum string.
//
// WithProgress enables periodic download progress logging via the
// logger supplied to Handle. WithProgressFunc reports every write to fn.
//
// WithSkipExisting causes Handle to return nil immediately when
// the destination file already exists, avoiding a redundant download.
//
// WithMaxBytes fails the download with ErrResponseTooLarge once the
// body exceeds n bytes.
type Option func(*options) error

type options struct {
	checksum     *checksumVerifier
	progress     bool
	progressFn   ProgressFunc
	skipExisting bool
	maxBytes     int64
}

// ProgressFunc receives the bytes written so far and the expected
// total, which is -1 when the server did not send a Content-Length.
type ProgressFunc func(transferred, total int64)

func WithChecksum(h hash.Hash, expected string) Option {
	return func(opts *options) error {
		if h == nil {
			return errors.New("hash must not be nil")
		}
		if expected == "" {
			return errors.New("expected checksum must not be empty")
		}
		opts.checksum = &checksumVerifier{hash: h, expected: expected}
		return nil
	}
}

func WithProgress() Option {
	return func(opts *options) error {
		opts.progress = true
		return nil
	}
}

func WithProgressFunc(fn ProgressFunc) Option {
	return func(opts *options) error {
		if fn == nil {
			return errors.New("progress func must not be nil")
		}
		opts.progressFn = fn
		return nil
	}
}

func WithSkipExisting() Option {
	return func(opts *options) error {
		opts.skipExisting = true
		return nil
	}
}

func WithMaxBytes(n int64) Option {
	return func(opts *options) error {
		if n < 0 {
			return errors.New("max bytes must not be negative")
		}
		opts.maxBytes = n
		return nil
	}
}
