package model

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// ErrIdentityNotFound is wrapped by provider errors meaning no account exists for an identifier.
	ErrIdentityNotFound = errors.New("identity not found")
	ErrNoSession        = errors.New("no current session")

	ErrNotInitialized = errors.New("session probe has not completed")
	ErrBusy           = errors.New("another operation is in flight")
	ErrInvalidStep    = errors.New("operation not allowed in current step")

	ErrSessionExpired   = errors.New("authorization session expired")
	ErrSessionCompleted = errors.New("authorization session already completed")
	ErrUnauthenticated  = errors.New("unauthenticated")
)

// ProviderError is a failure reported by the identity provider.
type ProviderError struct {
	Name       string
	Message    string
	StatusCode int
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return e.Name
	}
	return e.Name + ": " + e.Message
}
