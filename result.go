package modhttp

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"net"
	"os"

	"github.com/adamwoolhether/modhttp/client"
	"github.com/adamwoolhether/modhttp/client/archive"
	"github.com/adamwoolhether/modhttp/client/download"
)

// Reason classifies why a download failed.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonUnknown
	ReasonRequest
	ReasonNetwork
	ReasonTimeout
	ReasonCanceled
	ReasonNotFound
	ReasonStatus
	ReasonSizeLimit
	ReasonIntegrity
	ReasonDisk
	ReasonArchive
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonRequest:
		return "request"
	case ReasonNetwork:
		return "network"
	case ReasonTimeout:
		return "timeout"
	case ReasonCanceled:
		return "canceled"
	case ReasonNotFound:
		return "not_found"
	case ReasonStatus:
		return "status"
	case ReasonSizeLimit:
		return "size_limit"
	case ReasonIntegrity:
		return "integrity"
	case ReasonDisk:
		return "disk"
	case ReasonArchive:
		return "archive"
	default:
		return "unknown"
	}
}

// Result is the outcome of DownloadFile or DownloadZip. Path is set only
// on success; Err and Reason only on failure.
type Result struct {
	Path   string
	Reason Reason
	Err    error
}

// OK reports whether the download succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

func failed(err error) Result {
	return Result{Reason: classify(err), Err: err}
}

// classify maps an error chain onto a Reason. Order matters: a timeout is
// also a net.Error, and a too-large body surfaces through the copy loop.
func classify(err error) Reason {
	var (
		statusErr *client.UnexpectedStatusError
		netErr    net.Error
		pathErr   *fs.PathError
		linkErr   *os.LinkError
	)

	switch {
	case err == nil:
		return ReasonNone
	case errors.Is(err, ErrInvalidURL):
		return ReasonRequest
	case errors.Is(err, download.ErrResponseTooLarge):
		return ReasonSizeLimit
	case errors.Is(err, archive.ErrInvalidArchive), errors.Is(err, archive.ErrIllegalPath):
		return ReasonArchive
	case errors.Is(err, download.ErrChecksumMismatch), errors.Is(err, download.ErrContentLengthMismatch):
		return ReasonIntegrity
	case errors.As(err, &statusErr):
		if statusErr.NotFound() {
			return ReasonNotFound
		}
		return ReasonStatus
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return ReasonTimeout
	case errors.Is(err, context.Canceled), errors.Is(err, download.ErrDownloadCancelled):
		return ReasonCanceled
	case errors.As(err, &pathErr), errors.As(err, &linkErr):
		return ReasonDisk
	case errors.As(err, &netErr), errors.Is(err, io.ErrUnexpectedEOF):
		return ReasonNetwork
	default:
		return ReasonUnknown
	}
}
