package collector

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidURL is returned synchronously, before any I/O, when the
	// subreddit or paging options cannot form a request URL.
	ErrInvalidURL = errors.New("invalid url")

	// ErrInvalidResponse is delivered when the transport failed or the body could not be read.
	ErrInvalidResponse = errors.New("invalid response")

	// ErrHTTP matches every *HTTPError under errors.Is.
	ErrHTTP = errors.New("http error")
)

// HTTPError is delivered for any non-2xx status.
type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error: status %d", e.StatusCode)
}

func (e *HTTPError) Is(target error) bool {
	return target == ErrHTTP
}
