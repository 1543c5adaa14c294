package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/busla/summerhouse-sub003/internal/logger"
	"github.com/busla/summerhouse-sub003/internal/model"
)

// ProfileSync creates the profile of a freshly authenticated identity.
type ProfileSync struct {
	server model.ProfileServer
	logger *logger.Logger
}

// NewProfileSync creates a ProfileSync calling server.
func NewProfileSync(server model.ProfileServer, logger *logger.Logger) *ProfileSync {
	return &ProfileSync{server: server, logger: logger}
}

// Sync creates or fetches the current profile. An already existing profile is a success.
func (s *ProfileSync) Sync(ctx context.Context, credential *oauth2.Token) (model.ProfileSyncResult, error) {
	if credential == nil || credential.AccessToken == "" {
		return model.ProfileSyncResult{}, fmt.Errorf("failed to sync profile: %w", model.ErrUnauthenticated)
	}

	result, err := s.server.CreateCurrent(ctx, credential)
	if errors.Is(err, model.ErrAlreadyExists) {
		s.logger.Debug("Profile sync: profile already exists")
		return model.ProfileSyncResult{Created: false, Profile: result.Profile}, nil
	}
	if err != nil {
		s.logger.Error("Profile sync: failed",
			"error", err.Error())
		return model.ProfileSyncResult{}, fmt.Errorf("failed to sync profile: %w", err)
	}

	s.logger.Info("Profile sync: completed",
		"created", result.Created,
		"subject_id", result.Profile.SubjectID)

	return result, nil
}
