package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/busla/summerhouse-sub003/internal/model"
)

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return errors.New("column count mismatch")
	}
	for i, v := range r.values {
		switch d := dest[i].(type) {
		case *string:
			*d = v.(string)
		case *time.Time:
			*d = v.(time.Time)
		default:
			return errors.New("unexpected destination")
		}
	}
	return nil
}

func TestNewProfileRepository(t *testing.T) {
	conn := &Connection{}
	repo := NewProfileRepository(conn)

	assert.NotNil(t, repo)
	assert.Same(t, conn, repo.db)
}

func TestProfileRepository_ImplementsStore(t *testing.T) {
	var _ model.ProfileStore = (*ProfileRepository)(nil)
}

func TestScanProfile(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	t.Run("all columns", func(t *testing.T) {
		row := fakeRow{values: []any{"sub-1", "a@example.com", "Ann", "+15555550100", created, updated}}

		profile, err := scanProfile(row)
		require.NoError(t, err)
		assert.Equal(t, model.Profile{
			SubjectID:   "sub-1",
			Email:       "a@example.com",
			DisplayName: "Ann",
			Phone:       "+15555550100",
			CreatedAt:   created,
			UpdatedAt:   updated,
		}, profile)
	})

	t.Run("no rows", func(t *testing.T) {
		_, err := scanProfile(fakeRow{err: pgx.ErrNoRows})
		assert.ErrorIs(t, err, pgx.ErrNoRows)
	})
}

func TestConnection_PingWithoutPool(t *testing.T) {
	conn := &Connection{}

	assert.ErrorIs(t, conn.Ping(t.Context()), errNoPool)
	assert.NoError(t, conn.Close())
}
