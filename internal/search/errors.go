package search

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
)

// ErrorKind tags a failed search call with the retry policy that applies.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	// KindFatal covers failures retrying cannot fix: missing or invalid
	// credentials, exhausted quota and rejected queries.
	KindFatal
	// KindTransient covers timeouts and transport failures.
	KindTransient
	// KindUnclassified is everything else.
	KindUnclassified
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindFatal:
		return "fatal"
	case KindTransient:
		return "transient"
	case KindUnclassified:
		return "unclassified"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

var (
	ErrMissingAPIKey = errors.New("search API key is missing")
	ErrInvalidAPIKey = errors.New("search API key is invalid")
	ErrUsageLimit    = errors.New("search usage limit exceeded")
	ErrQueryTooLong  = errors.New("query is too long")
	ErrBadRequest    = errors.New("search request rejected")
)

// ProviderError is returned by engines for non-2xx responses and
// undecodable bodies.
type ProviderError struct {
	Kind       ErrorKind
	StatusCode int
	Detail     string
	Err        error
}

func (e *ProviderError) Error() string {
	msg := "search provider error"
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.StatusCode)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Classify maps an error from Engine.Search to its ErrorKind.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindNone
	}

	var perr *ProviderError
	if errors.As(err, &perr) && perr.Kind != KindNone {
		return perr.Kind
	}

	switch {
	case errors.Is(err, ErrMissingAPIKey),
		errors.Is(err, ErrInvalidAPIKey),
		errors.Is(err, ErrUsageLimit),
		errors.Is(err, ErrQueryTooLong),
		errors.Is(err, ErrBadRequest),
		errors.Is(err, context.Canceled):
		return KindFatal
	case errors.Is(err, context.DeadlineExceeded):
		return KindTransient
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindTransient
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return KindTransient
	}

	return KindUnclassified
}

// kindForStatus decides the retry policy for an HTTP status returned by the
// provider.
func kindForStatus(code int) ErrorKind {
	switch {
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return KindFatal
	case code == http.StatusTooManyRequests, code == 432, code == 433:
		return KindFatal
	case code == http.StatusBadRequest, code == http.StatusUnprocessableEntity:
		return KindFatal
	case code == http.StatusRequestTimeout, code >= 500:
		return KindTransient
	default:
		return KindUnclassified
	}
}

// IsTimeout reports whether err was caused by a deadline or network timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
