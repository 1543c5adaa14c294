package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/busla/summerhouse-sub003/internal/model"
)

func TestBindingRepository_ImplementsStore(t *testing.T) {
	var _ model.BindingStore = (*BindingRepository)(nil)
}

func TestBindingKey(t *testing.T) {
	assert.Equal(t, "binding:abc", bindingKey("abc"))
}

func TestBindingRepository_TTL(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	repo := NewBindingRepository(&Connection{}, time.Hour)
	repo.now = func() time.Time { return now }

	tests := []struct {
		name      string
		expiresAt time.Time
		want      time.Duration
	}{
		{name: "pending", expiresAt: now.Add(10 * time.Minute), want: 70 * time.Minute},
		{name: "expired within retention", expiresAt: now.Add(-30 * time.Minute), want: 30 * time.Minute},
		{name: "past retention", expiresAt: now.Add(-2 * time.Hour), want: -time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repo.ttl(model.AuthorizationSession{ExpiresAt: tt.expiresAt})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBindingRepository_CreateRejectsBeforeStore(t *testing.T) {
	now := time.Now()
	repo := NewBindingRepository(&Connection{}, 0)

	err := repo.Create(t.Context(), model.AuthorizationSession{ExpiresAt: now.Add(time.Minute)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing session id")

	err = repo.Create(t.Context(), model.AuthorizationSession{ID: "x", ExpiresAt: now.Add(-time.Minute)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already expired")
}

func TestNewConnection_Unreachable(t *testing.T) {
	_, err := NewConnection("127.0.0.1:1", "", 0)
	require.Error(t, err)
}

func TestConnection_NilClient(t *testing.T) {
	conn := &Connection{}

	assert.Error(t, conn.Ping(t.Context()))
	assert.NoError(t, conn.Close())
}
