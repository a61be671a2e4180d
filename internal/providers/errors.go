package providers

import (
	"context"
	"errors"
	"net/http"
)

// Sentinel errors for the provider failure taxonomy. Handlers map these
// onto HTTP statuses; nothing here is fatal to the process.
var (
	// ErrLeagueNotFound means the provider has no league for the given
	// id and season. Never retried.
	ErrLeagueNotFound = errors.New("league not found")

	// ErrAuthenticationFailed means the private-league credentials were
	// rejected. Never retried; retrying cannot help.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrProviderUnavailable is the terminal form of a transient failure
	// after retries are exhausted, or a short-circuit from an open
	// circuit breaker.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrMalformedResponse means a structurally required field (team id,
	// player id) was absent from an otherwise successful response.
	ErrMalformedResponse = errors.New("malformed provider response")
)

// FailureClass tags a fetch outcome so the retry loop is driven by an
// explicit result rather than error unwinding.
type FailureClass int

const (
	ClassSuccess FailureClass = iota
	ClassTransient
	ClassPermanent
)

// classifyStatus maps an HTTP status code onto a failure class and its
// terminal error.
func classifyStatus(status int) (FailureClass, error) {
	switch {
	case status == http.StatusOK:
		return ClassSuccess, nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ClassPermanent, ErrAuthenticationFailed
	case status == http.StatusNotFound:
		return ClassPermanent, ErrLeagueNotFound
	case status >= 500 || status == http.StatusTooManyRequests:
		return ClassTransient, ErrProviderUnavailable
	default:
		return ClassPermanent, ErrProviderUnavailable
	}
}

// classifyTransportError maps a transport-level error onto a failure
// class. Timeouts, connection resets and DNS blips are all transient;
// a cancelled caller context is permanent since the request is gone.
func classifyTransportError(err error) FailureClass {
	if err == nil {
		return ClassSuccess
	}
	if errors.Is(err, context.Canceled) {
		return ClassPermanent
	}
	// Timeouts, resets and DNS blips all recover on retry often enough
	// to be worth it.
	return ClassTransient
}
