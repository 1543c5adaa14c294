package model

import (
	"context"
	"time"

	"golang.org/x/oauth2"
)

// Profile is the user profile kept by the resource server.
type Profile struct {
	SubjectID   string    `json:"subjectId"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProfileUpdate holds mutable profile fields. Nil fields are left unchanged.
type ProfileUpdate struct {
	DisplayName *string `json:"displayName" binding:"omitempty,max=100"`
	Phone       *string `json:"phone" binding:"omitempty,e164"`
}

// ProfileStore persists profiles.
type ProfileStore interface {
	// CreateIfAbsent inserts profile unless one exists for its subject.
	// It returns the stored profile and whether it was created.
	CreateIfAbsent(ctx context.Context, profile Profile) (Profile, bool, error)
	GetBySubjectID(ctx context.Context, subjectID string) (Profile, error)
	Update(ctx context.Context, subjectID string, update ProfileUpdate) (Profile, error)
}

// ProfileSyncResult is the outcome of a create-or-fetch profile call.
type ProfileSyncResult struct {
	Created bool
	Profile Profile
}

// ProfileServer is the client side of the profile resource server.
type ProfileServer interface {
	CreateCurrent(ctx context.Context, credential *oauth2.Token) (ProfileSyncResult, error)
}
