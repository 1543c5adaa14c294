package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/busla/summerhouse-sub003/internal/logger"
	"github.com/busla/summerhouse-sub003/internal/model"
)

// Profile serves the profile of the calling identity.
type Profile struct {
	profileStore model.ProfileStore
	logger       *logger.Logger
}

func NewProfile(profileStore model.ProfileStore, logger *logger.Logger) *Profile {
	return &Profile{
		profileStore: profileStore,
		logger:       logger,
	}
}

// CreateOrFetch creates the profile for claims, or returns the existing one.
// The boolean reports whether a profile was created.
func (s *Profile) CreateOrFetch(ctx context.Context, claims model.Claims) (model.Profile, bool, error) {
	if claims.Subject == "" || claims.Email == "" {
		return model.Profile{}, false, fmt.Errorf("claims lack subject or email: %w", model.ErrUnauthenticated)
	}

	displayName := strings.TrimSpace(claims.Name)
	if displayName == "" {
		displayName = strings.TrimSpace(claims.PreferredUsername)
	}

	profile, created, err := s.profileStore.CreateIfAbsent(ctx, model.Profile{
		SubjectID:   claims.Subject,
		Email:       claims.Email,
		DisplayName: displayName,
	})
	if err != nil {
		return model.Profile{}, false, fmt.Errorf("failed to create profile: %w", err)
	}

	if created {
		s.logger.Info("Profile service: profile created",
			"subject_id", profile.SubjectID,
			"email", profile.Email)
	}

	return profile, created, nil
}

func (s *Profile) Get(ctx context.Context, subjectID string) (model.Profile, error) {
	profile, err := s.profileStore.GetBySubjectID(ctx, subjectID)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to get profile: %w", err)
	}

	return profile, nil
}

func (s *Profile) Update(ctx context.Context, subjectID string, update model.ProfileUpdate) (model.Profile, error) {
	if update.DisplayName != nil {
		trimmed := strings.TrimSpace(*update.DisplayName)
		update.DisplayName = &trimmed
	}
	if update.Phone != nil {
		trimmed := strings.TrimSpace(*update.Phone)
		update.Phone = &trimmed
	}

	profile, err := s.profileStore.Update(ctx, subjectID, update)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to update profile: %w", err)
	}

	return profile, nil
}
