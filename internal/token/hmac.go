package token

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"github.com/busla/summerhouse-sub003/internal/model"
)

// IdentityClaims are the claims of an identity token.
type IdentityClaims struct {
	jwt.RegisteredClaims
	Email             string `json:"email"`
	EmailVerified     bool   `json:"email_verified"`
	Name              string `json:"name,omitempty"`
	PreferredUsername string `json:"preferred_username,omitempty"`
	TokenUse          string `json:"token_use"`
}

const (
	identityTTL = time.Hour
	useIdentity = "id"
)

// HMAC issues and verifies identity tokens signed with a shared secret.
type HMAC struct {
	secretKey string
	issuer    string
}

// NewHMAC creates an HMAC verifier for tokens issued by issuer.
func NewHMAC(secretKey, issuer string) *HMAC {
	return &HMAC{secretKey: secretKey, issuer: issuer}
}

// Issue signs an identity token for claims. A zero ExpiresAt gets the default TTL.
func (h *HMAC) Issue(claims model.Claims) (string, error) {
	now := time.Now()
	expiresAt := claims.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = now.Add(identityTTL)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    h.issuer,
			Subject:   claims.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email:             claims.Email,
		EmailVerified:     claims.EmailVerified,
		Name:              claims.Name,
		PreferredUsername: claims.PreferredUsername,
		TokenUse:          useIdentity,
	})

	tokenString, err := token.SignedString([]byte(h.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign identity token: %w", err)
	}

	return tokenString, nil
}

// Credential issues a delegated credential carrying the identity token.
func (h *HMAC) Credential(claims model.Claims) (*oauth2.Token, error) {
	raw, err := h.Issue(claims)
	if err != nil {
		return nil, err
	}

	credential := &oauth2.Token{AccessToken: raw, TokenType: "Bearer"}
	return credential.WithExtra(map[string]any{"id_token": raw}), nil
}

// Verify implements model.TokenVerifier.
func (h *HMAC) Verify(_ context.Context, rawToken string) (model.Claims, error) {
	claims := &IdentityClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(h.secretKey), nil
	}, jwt.WithIssuer(h.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return model.Claims{}, fmt.Errorf("failed to parse identity token: %w", err)
	}
	if !token.Valid {
		return model.Claims{}, fmt.Errorf("identity token is invalid")
	}
	if claims.TokenUse != useIdentity {
		return model.Claims{}, fmt.Errorf("token use mismatch: %s", claims.TokenUse)
	}

	result := model.Claims{
		Subject:           claims.Subject,
		Email:             claims.Email,
		EmailVerified:     claims.EmailVerified,
		Name:              claims.Name,
		PreferredUsername: claims.PreferredUsername,
	}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.Time
	}

	return result, nil
}
