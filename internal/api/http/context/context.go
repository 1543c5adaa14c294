package context

import (
	"context"

	"github.com/busla/summerhouse-sub003/internal/model"
)

type claimsKey struct{}

// Manager stores verified identity claims in request contexts.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetClaimsToContext returns a copy of ctx carrying claims.
func (m *Manager) SetClaimsToContext(ctx context.Context, claims model.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetClaimsFromContext returns the claims set by SetClaimsToContext.
// Claims without a subject are treated as absent.
func (m *Manager) GetClaimsFromContext(ctx context.Context) (model.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(model.Claims)
	if !ok || claims.Subject == "" {
		return model.Claims{}, false
	}
	return claims, true
}
