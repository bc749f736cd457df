// Classified completion failures.
//
// Every provider maps its SDK's errors onto a small fixed taxonomy so
// that the session layer can decide what to retry without knowing
// which SDK produced the failure.

package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"os"
)

// ErrorKind classifies a failed completion attempt.
type ErrorKind int

const (
	// KindUnknown is any failure not covered by the other kinds.
	KindUnknown ErrorKind = iota
	// KindTransientConnection is a network-layer failure reaching the
	// provider. The only kind the session layer retries.
	KindTransientConnection
	// KindRateLimited means the provider signalled quota or outage
	// exhaustion.
	KindRateLimited
	// KindAuthFailed means the credential was rejected. Not recoverable
	// by waiting.
	KindAuthFailed
	// KindInvalidRequest means the request itself was malformed or
	// violated provider constraints.
	KindInvalidRequest
)

// String returns a human-readable name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindTransientConnection:
		return "transient connection error"
	case KindRateLimited:
		return "rate limited"
	case KindAuthFailed:
		return "authentication failed"
	case KindInvalidRequest:
		return "invalid request"
	default:
		return "unknown error"
	}
}

// RequestError carries the classification of a failed completion
// attempt alongside the original cause.
type RequestError struct {
	Kind ErrorKind
	Err  error
}

// NewRequestError wraps err with a classification.
func NewRequestError(kind ErrorKind, err error) *RequestError {
	return &RequestError{Kind: kind, Err: err}
}

// Error returns the kind followed by the underlying cause.
func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

// Unwrap returns the original cause for errors.Is/As.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// KindOf returns the classification of err, or KindUnknown when err
// was never classified.
func KindOf(err error) ErrorKind {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Kind
	}
	return KindUnknown
}

// classifyStatus maps an HTTP status from a provider rejection onto
// the taxonomy. 529 is the overloaded status some providers use.
func classifyStatus(status int) ErrorKind {
	switch {
	case status == 401 || status == 403:
		return KindAuthFailed
	case status == 429 || status == 529:
		return KindRateLimited
	case status >= 400 && status < 500:
		return KindInvalidRequest
	default:
		return KindUnknown
	}
}

// isConnectionError reports whether err never got a provider response:
// dial failures, resets, timeouts and truncated reads.
func isConnectionError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	return os.IsTimeout(err)
}

// isCancellation reports whether err stems from the caller's context.
// Cancellation is never reclassified; it must abort, not retry.
func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
