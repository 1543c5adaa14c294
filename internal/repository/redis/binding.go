package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/busla/summerhouse-sub003/internal/model"
)

const bindingKeyPrefix = "binding:"

// BindingRepository stores authorization sessions as JSON values. A session
// is kept for retention past its expiry so that late lookups can tell an
// expired session from an unknown one.
type BindingRepository struct {
	db        *Connection
	retention time.Duration
	now       func() time.Time
}

func NewBindingRepository(db *Connection, retention time.Duration) *BindingRepository {
	return &BindingRepository{
		db:        db,
		retention: retention,
		now:       time.Now,
	}
}

func bindingKey(id string) string {
	return bindingKeyPrefix + id
}

func (r *BindingRepository) ttl(session model.AuthorizationSession) time.Duration {
	return session.ExpiresAt.Add(r.retention).Sub(r.now())
}

func (r *BindingRepository) Create(ctx context.Context, session model.AuthorizationSession) error {
	if session.ID == "" {
		return fmt.Errorf("failed to create binding: missing session id")
	}

	ttl := r.ttl(session)
	if ttl <= 0 {
		return fmt.Errorf("failed to create binding: session %s already expired", session.ID)
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal binding: %w", err)
	}

	ok, err := r.db.SetNX(ctx, bindingKey(session.ID), data, ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to store binding: %w", err)
	}
	if !ok {
		return model.ErrAlreadyExists
	}

	return nil
}

func (r *BindingRepository) Get(ctx context.Context, id string) (model.AuthorizationSession, error) {
	val, err := r.db.Get(ctx, bindingKey(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return model.AuthorizationSession{}, model.ErrNotFound
	}
	if err != nil {
		return model.AuthorizationSession{}, fmt.Errorf("failed to get binding: %w", err)
	}

	var session model.AuthorizationSession
	if err := json.Unmarshal(val, &session); err != nil {
		return model.AuthorizationSession{}, fmt.Errorf("failed to unmarshal binding: %w", err)
	}

	return session, nil
}

// Update overwrites a pending session and keeps its remaining TTL. The key is
// watched so that only one of two concurrent completions is stored.
func (r *BindingRepository) Update(ctx context.Context, session model.AuthorizationSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal binding: %w", err)
	}

	key := bindingKey(session.ID)
	err = r.db.Watch(ctx, func(tx *goredis.Tx) error {
		val, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			return err
		}

		var current model.AuthorizationSession
		if err := json.Unmarshal(val, &current); err != nil {
			return fmt.Errorf("failed to unmarshal binding: %w", err)
		}
		if current.Status != model.BindingPending {
			return model.ErrSessionCompleted
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.SetArgs(ctx, key, data, goredis.SetArgs{
				Mode:    "XX",
				KeepTTL: true,
			})
			return nil
		})
		return err
	}, key)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, goredis.Nil):
		return model.ErrNotFound
	case errors.Is(err, goredis.TxFailedErr):
		return model.ErrSessionCompleted
	case errors.Is(err, model.ErrSessionCompleted):
		return err
	default:
		return fmt.Errorf("failed to update binding: %w", err)
	}
}
