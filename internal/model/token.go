package model

import "context"

// TokenVerifier validates an identity token and returns its claims.
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (Claims, error)
}
