package token

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/busla/summerhouse-sub003/internal/model"
)

type oidcClaims struct {
	Email             string `json:"email"`
	EmailVerified     bool   `json:"email_verified"`
	Name              string `json:"name"`
	PreferredUsername string `json:"preferred_username"`
	CognitoUsername   string `json:"cognito:username"`
}

// OIDC verifies identity tokens against an OpenID Connect issuer.
type OIDC struct {
	verifier *oidc.IDTokenVerifier
}

// NewOIDC discovers issuer and verifies tokens issued to clientID.
// An empty clientID disables the audience check.
func NewOIDC(ctx context.Context, issuer, clientID string) (*OIDC, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to discover oidc provider: %w", err)
	}

	return &OIDC{verifier: provider.Verifier(oidcConfig(clientID))}, nil
}

// NewOIDCWithKeySet verifies tokens with a fixed key set, skipping discovery.
func NewOIDCWithKeySet(issuer, clientID string, keySet oidc.KeySet) *OIDC {
	return &OIDC{verifier: oidc.NewVerifier(issuer, keySet, oidcConfig(clientID))}
}

func oidcConfig(clientID string) *oidc.Config {
	return &oidc.Config{
		ClientID:          clientID,
		SkipClientIDCheck: clientID == "",
	}
}

// Verify implements model.TokenVerifier.
func (o *OIDC) Verify(ctx context.Context, rawToken string) (model.Claims, error) {
	idToken, err := o.verifier.Verify(ctx, rawToken)
	if err != nil {
		return model.Claims{}, fmt.Errorf("failed to verify identity token: %w", err)
	}

	var claims oidcClaims
	if err := idToken.Claims(&claims); err != nil {
		return model.Claims{}, fmt.Errorf("failed to decode identity token claims: %w", err)
	}

	preferred := claims.PreferredUsername
	if preferred == "" {
		preferred = claims.CognitoUsername
	}

	return model.Claims{
		Subject:           idToken.Subject,
		Email:             claims.Email,
		EmailVerified:     claims.EmailVerified,
		Name:              claims.Name,
		PreferredUsername: preferred,
		ExpiresAt:         idToken.Expiry,
	}, nil
}
