package gateway

import (
	"errors"
	"fmt"

	"github.com/google/go-github/v62/github"
)

// ErrRepositoryNotFound is returned by ResolveRepository when a search matches nothing.
// It is a normal outcome, not a failure of the upstream API.
var ErrRepositoryNotFound = errors.New("repository not found")

// TransportError reports that an upstream call could not be completed:
// a network failure, a non-2xx status or a payload that could not be decoded.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("github: %s failed with status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("github: %s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// newTransportError inspects an error from the go-github client and records
// the HTTP status when one is available.
func newTransportError(op string, err error) *TransportError {
	te := &TransportError{Op: op, Err: err}

	var errResp *github.ErrorResponse
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	switch {
	case errors.As(err, &errResp) && errResp.Response != nil:
		te.StatusCode = errResp.Response.StatusCode
	case errors.As(err, &rateErr) && rateErr.Response != nil:
		te.StatusCode = rateErr.Response.StatusCode
	case errors.As(err, &abuseErr) && abuseErr.Response != nil:
		te.StatusCode = abuseErr.Response.StatusCode
	}
	return te
}
