package client

import (
	"errors"
	"fmt"
	"net/http"
)

// maxErrBodySize bounds how much of a non-matching response is kept in
// an UnexpectedStatusError. GitHub error documents are far smaller.
const maxErrBodySize = 4 << 10

// execFn consumes a response whose status matched.
type execFn func(resp *http.Response) error

var (
	// ErrUnexpectedStatusCode is wrapped by every [UnexpectedStatusError].
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	// ErrAuthFailure marks 401 and 403 responses, e.g. an exhausted or
	// rejected GitHub token.
	ErrAuthFailure = errors.New("auth failure")
)

// UnexpectedStatusError reports a response whose status differs from the
// one the caller expected. Body holds the start of the response, which
// for API hosts usually explains the failure.
type UnexpectedStatusError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UnexpectedStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%v: %d %s", e.Err, e.StatusCode, http.StatusText(e.StatusCode))
	}

	return fmt.Sprintf("%v: %d %s: %s", e.Err, e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

func (e *UnexpectedStatusError) Unwrap() error {
	return e.Err
}

// NotFound reports whether the server answered 404.
func (e *UnexpectedStatusError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}
