package model

import (
	"context"
	"time"

	"golang.org/x/oauth2"
)

// BindingStatus is the status of an authorization session.
type BindingStatus string

const (
	BindingPending   BindingStatus = "pending"
	BindingCompleted BindingStatus = "completed"
)

// AuthorizationSession lets a separate compute runtime obtain delegated access
// once a user completes sign-in.
type AuthorizationSession struct {
	ID          string        `json:"sessionId"`
	Status      BindingStatus `json:"status"`
	SubjectID   string        `json:"subjectId,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	ExpiresAt   time.Time     `json:"expiresAt"`
	CompletedAt *time.Time    `json:"completedAt,omitempty"`
}

// Expired reports whether the session is past its expiry at now.
func (s AuthorizationSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// BindingStore persists authorization sessions.
type BindingStore interface {
	Create(ctx context.Context, session AuthorizationSession) error
	Get(ctx context.Context, id string) (AuthorizationSession, error)
	// Update replaces a stored session that is still pending. It returns
	// ErrSessionCompleted when the stored session was completed first.
	Update(ctx context.Context, session AuthorizationSession) error
}

// SessionBinder completes an authorization session with a delegated credential.
type SessionBinder interface {
	Complete(ctx context.Context, sessionID string, credential *oauth2.Token) error
}

// AuthorizationGrant is a newly created authorization session with the URL the
// user opens to complete it.
type AuthorizationGrant struct {
	AuthorizationSession
	AuthURL string `json:"authUrl"`
}
