package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/busla/summerhouse-sub003/internal/logger"
	"github.com/busla/summerhouse-sub003/internal/model"
)

var errIncompleteClaims = errors.New("session claims lack subject or email")

// SessionProbe looks for an existing valid session.
type SessionProbe struct {
	source model.ClaimsSource
	logger *logger.Logger
}

// NewSessionProbe creates a SessionProbe reading claims from source.
func NewSessionProbe(source model.ClaimsSource, logger *logger.Logger) *SessionProbe {
	return &SessionProbe{source: source, logger: logger}
}

// Probe returns the identity of the current session, or nil when there is none.
// A missing, expired or unreadable session is not an error.
func (p *SessionProbe) Probe(ctx context.Context) *model.Identity {
	claims, err := p.source.CurrentClaims(ctx)
	if err != nil {
		p.logger.Debug("Session probe: no current session",
			"error", err.Error())
		return nil
	}

	identity, err := IdentityFromClaims(claims)
	if err != nil {
		p.logger.Warn("Session probe: ignoring session",
			"error", err.Error())
		return nil
	}

	p.logger.Info("Session probe: restored session",
		"email", identity.Email)

	return identity
}

// IdentityFromClaims extracts an Identity from session claims.
func IdentityFromClaims(claims model.Claims) (*model.Identity, error) {
	if claims.Subject == "" || claims.Email == "" {
		return nil, errIncompleteClaims
	}

	displayName := strings.TrimSpace(claims.Name)
	if displayName == "" {
		displayName = strings.TrimSpace(claims.PreferredUsername)
	}

	return &model.Identity{
		Email:       claims.Email,
		DisplayName: displayName,
		SubjectID:   claims.Subject,
	}, nil
}

// ProviderClaimsSource reads claims from the identity provider's current session.
type ProviderClaimsSource struct {
	provider model.IdentityProvider
}

// NewProviderClaimsSource creates a ClaimsSource backed by provider.
func NewProviderClaimsSource(provider model.IdentityProvider) *ProviderClaimsSource {
	return &ProviderClaimsSource{provider: provider}
}

// CurrentClaims implements model.ClaimsSource.
func (s *ProviderClaimsSource) CurrentClaims(ctx context.Context) (model.Claims, error) {
	session, err := s.provider.GetCurrentSession(ctx)
	if err != nil {
		return model.Claims{}, fmt.Errorf("failed to get current session: %w", err)
	}
	return session.Claims, nil
}

// StaticClaimsSource returns fixed claims. Useful in tests and local runs.
type StaticClaimsSource struct {
	Claims model.Claims
	Err    error
}

// CurrentClaims implements model.ClaimsSource.
func (s StaticClaimsSource) CurrentClaims(context.Context) (model.Claims, error) {
	if s.Err != nil {
		return model.Claims{}, s.Err
	}
	if s.Claims == (model.Claims{}) {
		return model.Claims{}, model.ErrNoSession
	}
	return s.Claims, nil
}
