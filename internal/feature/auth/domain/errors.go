// Package domain defines domain-level errors for the auth feature.
package domain

import "errors"

// Domain errors for authentication operations.
// Several internal failure causes collapse into a single error so that
// callers cannot distinguish them.
var (
	// ErrDuplicateAccount indicates that an active account with the given
	// email already exists. Returned during registration regardless of
	// whether the existing account has a password set.
	ErrDuplicateAccount = errors.New("account with this email already exists")

	// ErrInvalidCredentials covers unknown email, missing password
	// credential and wrong password. Collapsing the causes prevents
	// account enumeration.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAccountDisabled indicates the account exists but has been
	// deactivated.
	ErrAccountDisabled = errors.New("account is disabled")

	// ErrOAuthNotConfigured indicates the requested OAuth provider has no
	// client credentials configured.
	ErrOAuthNotConfigured = errors.New("oauth provider is not configured")

	// ErrOAuthFailed covers network, decode and provider-response errors
	// during an OAuth login. The detailed cause goes to the log only.
	ErrOAuthFailed = errors.New("oauth authentication failed")

	// ErrTokenInvalid covers bad signature, malformed structure and expiry
	// of a session token.
	ErrTokenInvalid = errors.New("invalid or expired token")

	// ErrUserNotFound indicates that no active user matches the given
	// criteria. Inactive accounts surface this same error.
	ErrUserNotFound = errors.New("user not found")
)
