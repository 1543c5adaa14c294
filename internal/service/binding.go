package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/busla/summerhouse-sub003/internal/logger"
	"github.com/busla/summerhouse-sub003/internal/model"
)

// Binding manages authorization sessions that are completed by a signed-in user
// on behalf of another runtime.
type Binding struct {
	bindingStore model.BindingStore
	ttl          time.Duration
	logger       *logger.Logger
	now          func() time.Time
}

func NewBinding(bindingStore model.BindingStore, ttl time.Duration, logger *logger.Logger) *Binding {
	return &Binding{
		bindingStore: bindingStore,
		ttl:          ttl,
		logger:       logger,
		now:          time.Now,
	}
}

// Create starts a pending authorization session.
func (s *Binding) Create(ctx context.Context) (model.AuthorizationSession, error) {
	now := s.now().UTC()
	session := model.AuthorizationSession{
		ID:        uuid.NewString(),
		Status:    model.BindingPending,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.bindingStore.Create(ctx, session); err != nil {
		return model.AuthorizationSession{}, fmt.Errorf("failed to create authorization session: %w", err)
	}

	s.logger.Info("Binding service: session created",
		"session_id", session.ID,
		"expires_at", session.ExpiresAt)

	return session, nil
}

// Get returns the session. A pending session past its expiry yields ErrSessionExpired.
func (s *Binding) Get(ctx context.Context, id string) (model.AuthorizationSession, error) {
	session, err := s.bindingStore.Get(ctx, id)
	if err != nil {
		return model.AuthorizationSession{}, fmt.Errorf("failed to get authorization session: %w", err)
	}

	if session.Status == model.BindingPending && session.Expired(s.now()) {
		return session, model.ErrSessionExpired
	}

	return session, nil
}

// Complete binds the session to subjectID. Completing it again for the same
// subject is a no-op.
func (s *Binding) Complete(ctx context.Context, id string, subjectID string) (model.AuthorizationSession, error) {
	session, err := s.bindingStore.Get(ctx, id)
	if err != nil {
		return model.AuthorizationSession{}, fmt.Errorf("failed to get authorization session: %w", err)
	}

	if session.Status == model.BindingCompleted {
		if session.SubjectID == subjectID {
			return session, nil
		}
		return model.AuthorizationSession{}, model.ErrSessionCompleted
	}

	now := s.now().UTC()
	if session.Expired(now) {
		return model.AuthorizationSession{}, model.ErrSessionExpired
	}

	session.Status = model.BindingCompleted
	session.SubjectID = subjectID
	session.CompletedAt = &now

	err = s.bindingStore.Update(ctx, session)
	if errors.Is(err, model.ErrSessionCompleted) {
		return s.completedConcurrently(ctx, id, subjectID)
	}
	if err != nil {
		return model.AuthorizationSession{}, fmt.Errorf("failed to complete authorization session: %w", err)
	}

	s.logger.Info("Binding service: session completed",
		"session_id", session.ID,
		"subject_id", subjectID)

	return session, nil
}

// completedConcurrently resolves a completion that lost the race to another one.
func (s *Binding) completedConcurrently(ctx context.Context, id string, subjectID string) (model.AuthorizationSession, error) {
	session, err := s.bindingStore.Get(ctx, id)
	if err != nil {
		return model.AuthorizationSession{}, fmt.Errorf("failed to get authorization session: %w", err)
	}

	if session.Status == model.BindingCompleted && session.SubjectID == subjectID {
		return session, nil
	}

	s.logger.Warn("Binding service: session completed by another subject",
		"session_id", id,
		"subject_id", subjectID)

	return model.AuthorizationSession{}, model.ErrSessionCompleted
}
