package download

import (
	"errors"
	"fmt"
)

var (
	ErrContentLengthMismatch = errors.New("content length mismatch")
	ErrChecksumMismatch      = errors.New("checksum mismatch")
	ErrResponseTooLarge      = errors.New("response exceeds size limit")
	ErrDownloadCancelled     = errors.New("download cancelled")
	ErrQueueShutdown         = errors.New("download queue shut down")
)

// Error wraps one of the package sentinels with detail about the failure.
type Error struct {
	Detail string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// TooLarge builds the error reported when a body is bigger than limit bytes.
func TooLarge(limit int64) error {
	return &Error{
		Err:    ErrResponseTooLarge,
		Detail: fmt.Sprintf("limit is %d bytes", limit),
	}
}
