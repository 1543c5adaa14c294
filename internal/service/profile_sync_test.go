package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/busla/summerhouse-sub003/internal/mocks"
	"github.com/busla/summerhouse-sub003/internal/model"
	"github.com/busla/summerhouse-sub003/internal/testutil"
)

func TestProfileSync_Sync(t *testing.T) {
	credential := &oauth2.Token{AccessToken: "access"}
	profile := model.Profile{SubjectID: "sub-1", Email: "a@b.com"}

	t.Run("created", func(t *testing.T) {
		server := mocks.NewProfileServer(t)
		server.On("CreateCurrent", mock.Anything, credential).
			Return(model.ProfileSyncResult{Created: true, Profile: profile}, nil).Once()

		result, err := NewProfileSync(server, testutil.MakeNoopLogger()).Sync(context.Background(), credential)
		require.NoError(t, err)
		assert.True(t, result.Created)
		assert.Equal(t, profile, result.Profile)
	})

	t.Run("already exists is success", func(t *testing.T) {
		server := mocks.NewProfileServer(t)
		server.On("CreateCurrent", mock.Anything, credential).
			Return(model.ProfileSyncResult{Profile: profile}, model.ErrAlreadyExists).Once()

		result, err := NewProfileSync(server, testutil.MakeNoopLogger()).Sync(context.Background(), credential)
		require.NoError(t, err)
		assert.False(t, result.Created)
		assert.Equal(t, profile, result.Profile)
	})

	t.Run("server error", func(t *testing.T) {
		server := mocks.NewProfileServer(t)
		server.On("CreateCurrent", mock.Anything, credential).
			Return(model.ProfileSyncResult{}, errors.New("unexpected status 500")).Once()

		_, err := NewProfileSync(server, testutil.MakeNoopLogger()).Sync(context.Background(), credential)
		assert.ErrorContains(t, err, "failed to sync profile")
	})

	t.Run("missing credential", func(t *testing.T) {
		server := mocks.NewProfileServer(t)
		sync := NewProfileSync(server, testutil.MakeNoopLogger())

		_, err := sync.Sync(context.Background(), nil)
		assert.ErrorIs(t, err, model.ErrUnauthenticated)

		_, err = sync.Sync(context.Background(), &oauth2.Token{})
		assert.ErrorIs(t, err, model.ErrUnauthenticated)
	})
}
