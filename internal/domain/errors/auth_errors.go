package errors

import "errors"

var (
	// ErrNoToken indicates the identity provider has no active session and
	// returned no token. Recoverable by signing in.
	ErrNoToken = errors.New("identity provider returned no token")

	// ErrTokenRejected indicates a well-formed token was rejected by the
	// data store's row-level security policy. Points at a misconfigured
	// trust relationship, not at the caller.
	ErrTokenRejected = errors.New("token rejected by data store policy")
)
