package auth

import (
	"errors"
	"fmt"
)

// Sentinel errors for the token lifecycle. All of them are user-actionable
// and none is retried automatically; re-running the command is the only
// retry path.
var (
	// ErrNotAuthenticated means no refresh token is configured. The
	// authorization-code flow must be completed before anything else works.
	ErrNotAuthenticated = errors.New("not authenticated: no refresh token configured")

	// ErrMissingCredentials means the OAuth client ID or secret is absent.
	ErrMissingCredentials = errors.New("client ID and client secret are not configured")

	// ErrRefreshRejected means the provider answered the refresh request
	// without a new access token. The stored credential is left untouched.
	ErrRefreshRejected = errors.New("token refresh rejected by provider")

	// ErrExchangeRejected means the authorization-code exchange produced no
	// refresh token. The stored credential is left untouched.
	ErrExchangeRejected = errors.New("authorization code exchange rejected by provider")
)

// TransportError wraps a network or response-parse failure during a token
// endpoint call. Unlike the rejection errors it is retryable by re-invoking
// the same operation.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
