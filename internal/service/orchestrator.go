package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/oauth2"

	"github.com/busla/summerhouse-sub003/internal/classifier"
	"github.com/busla/summerhouse-sub003/internal/logger"
	"github.com/busla/summerhouse-sub003/internal/model"
)

const (
	MessageInvalidEmail       = "Please enter a valid email address."
	MessageMissingCode        = "Please enter the code from your email."
	MessageSignInManually     = "Your account is confirmed. Please sign in to continue."
	MessageSignInIncomplete   = "Sign-in could not be completed. Please request a new code."
	MessageSessionUnavailable = "Signed in, but your session could not be loaded. Please sign in again."
	MessageProfileSync        = "Your profile could not be saved. Please try again."
)

// Orchestrator drives the passwordless sign-in state machine.
//
// Provider failures never surface as returned errors: they are classified and
// recorded on the session. Returned errors report misuse only (ErrNotInitialized,
// ErrBusy, ErrInvalidStep).
type Orchestrator struct {
	provider model.IdentityProvider
	probe    *SessionProbe
	profiles *ProfileSync
	binder   model.SessionBinder
	validate *validator.Validate
	logger   *logger.Logger

	mu          sync.Mutex
	state       model.AuthSession
	initialized bool
	probing     bool
	// epoch changes on every sign-out; results of calls started in an older epoch are dropped.
	epoch   uint64
	profile *model.ProfileSyncResult
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithClaimsSource replaces the provider-backed claims source used by the session probe.
func WithClaimsSource(source model.ClaimsSource) OrchestratorOption {
	return func(o *Orchestrator) {
		o.probe = NewSessionProbe(source, o.logger)
	}
}

// WithProfileSync enables profile synchronization after each sign-in.
func WithProfileSync(profiles *ProfileSync) OrchestratorOption {
	return func(o *Orchestrator) {
		o.profiles = profiles
	}
}

// WithSessionBinder enables BindSession.
func WithSessionBinder(binder model.SessionBinder) OrchestratorOption {
	return func(o *Orchestrator) {
		o.binder = binder
	}
}

// NewOrchestrator creates an Orchestrator in the anonymous step. Init must be
// called before any other operation.
func NewOrchestrator(provider model.IdentityProvider, logger *logger.Logger, options ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		provider: provider,
		validate: validator.New(),
		logger:   logger,
		state:    model.AuthSession{Step: model.StepAnonymous},
	}
	o.probe = NewSessionProbe(NewProviderClaimsSource(provider), logger)

	for _, opt := range options {
		opt(o)
	}

	return o
}

// State returns a snapshot of the current session.
func (o *Orchestrator) State() model.AuthSession {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshotLocked()
}

// Profile returns the result of the last successful profile sync.
func (o *Orchestrator) Profile() (model.ProfileSyncResult, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.profile == nil {
		return model.ProfileSyncResult{}, false
	}
	return *o.profile, true
}

// Init probes for an existing session. It runs the probe at most once.
func (o *Orchestrator) Init(ctx context.Context) (model.AuthSession, error) {
	o.mu.Lock()
	if o.probing {
		defer o.mu.Unlock()
		return o.snapshotLocked(), model.ErrBusy
	}
	if o.initialized {
		defer o.mu.Unlock()
		return o.snapshotLocked(), nil
	}
	o.probing = true
	epoch := o.epoch
	o.mu.Unlock()

	identity := o.probe.Probe(ctx)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.probing = false
	o.initialized = true
	if identity != nil && epoch == o.epoch {
		o.state = model.AuthSession{Step: model.StepAuthenticated, Identity: identity}
	}

	return o.snapshotLocked(), nil
}

// InitiateAuth requests a sign-in code for email. Unknown identities are
// registered, which sends a confirmation code instead.
func (o *Orchestrator) InitiateAuth(ctx context.Context, email string) (model.AuthSession, error) {
	identifier := strings.ToLower(strings.TrimSpace(email))

	o.mu.Lock()
	if err := o.checkLocked("initiate auth", model.StepAnonymous); err != nil {
		defer o.mu.Unlock()
		return o.snapshotLocked(), err
	}
	if o.validate.Var(identifier, "required,email") != nil {
		defer o.mu.Unlock()
		o.setErrorLocked(classifier.Classification{
			Category: model.CategoryValidation,
			Message:  MessageInvalidEmail,
			Action:   model.ActionCorrectInput,
		})
		return o.snapshotLocked(), nil
	}
	o.state = model.AuthSession{Step: model.StepSendingCode, PendingIdentifier: identifier}
	epoch := o.epoch
	o.mu.Unlock()

	o.logger.Debug("Orchestrator: requesting sign-in code",
		"email", identifier)

	result, err := o.provider.InitiateSignIn(ctx, identifier, model.ChallengeEmailCode)
	switch {
	case err == nil && result.SignedIn:
		return o.completeSignIn(ctx, epoch), nil
	case err == nil:
		state, _ := o.commit(epoch, func(s *model.AuthSession) {
			s.Step = model.StepAwaitingCode
		})
		o.logger.Info("Orchestrator: sign-in code sent",
			"email", identifier)
		return state, nil
	case !errors.Is(err, model.ErrIdentityNotFound):
		o.logger.Warn("Orchestrator: sign-in request failed",
			"email", identifier,
			"error", err.Error())
		return o.fail(epoch, model.StepAnonymous, classifier.ClassifyError(err)), nil
	}

	o.logger.Info("Orchestrator: identity not found, registering",
		"email", identifier)

	if _, err := o.provider.Register(ctx, identifier, map[string]string{"email": identifier}); err != nil {
		o.logger.Warn("Orchestrator: registration failed",
			"email", identifier,
			"error", err.Error())
		return o.fail(epoch, model.StepAnonymous, classifier.ClassifyError(err)), nil
	}

	state, _ := o.commit(epoch, func(s *model.AuthSession) {
		s.Step = model.StepAwaitingCode
		s.IsNewIdentityFlow = true
	})

	o.logger.Info("Orchestrator: confirmation code sent",
		"email", identifier)

	return state, nil
}

// ConfirmCode verifies the emailed code. Failures keep the session in the
// code-entry step so the same or a new code can be submitted.
func (o *Orchestrator) ConfirmCode(ctx context.Context, code string) (model.AuthSession, error) {
	code = strings.TrimSpace(code)

	o.mu.Lock()
	if err := o.checkLocked("confirm code", model.StepAwaitingCode); err != nil {
		defer o.mu.Unlock()
		return o.snapshotLocked(), err
	}
	if code == "" {
		defer o.mu.Unlock()
		o.setErrorLocked(classifier.Classification{
			Category: model.CategoryValidation,
			Message:  MessageMissingCode,
			Action:   model.ActionCorrectInput,
		})
		return o.snapshotLocked(), nil
	}
	o.clearErrorLocked()
	o.state.Step = model.StepVerifying
	identifier := o.state.PendingIdentifier
	isNew := o.state.IsNewIdentityFlow
	epoch := o.epoch
	o.mu.Unlock()

	if isNew {
		return o.confirmRegistration(ctx, epoch, identifier, code), nil
	}

	result, err := o.provider.ConfirmChallenge(ctx, code)
	if err != nil {
		o.logger.Warn("Orchestrator: code confirmation failed",
			"email", identifier,
			"error", err.Error())
		return o.fail(epoch, model.StepAwaitingCode, classifier.ClassifyError(err)), nil
	}
	if !result.SignedIn {
		o.logger.Warn("Orchestrator: code accepted but sign-in incomplete",
			"email", identifier,
			"next_step", string(result.NextStep))
		return o.fail(epoch, model.StepAwaitingCode, classifier.Classification{
			Category: model.CategoryAuth,
			Message:  MessageSignInIncomplete,
			Action:   model.ActionResendCode,
		}), nil
	}

	return o.completeSignIn(ctx, epoch), nil
}

func (o *Orchestrator) confirmRegistration(ctx context.Context, epoch uint64, identifier, code string) model.AuthSession {
	confirm, err := o.provider.ConfirmRegistration(ctx, identifier, code)
	if err != nil {
		o.logger.Warn("Orchestrator: registration confirmation failed",
			"email", identifier,
			"error", err.Error())
		return o.fail(epoch, model.StepAwaitingCode, classifier.ClassifyError(err))
	}

	signIn := model.SignInResult{}
	if confirm.Complete {
		signIn, err = o.provider.AutoSignInAfterRegistration(ctx)
	}
	if err != nil || !signIn.SignedIn {
		attrs := []any{"email", identifier, "confirmed", confirm.Complete}
		if err != nil {
			attrs = append(attrs, "error", err.Error())
		}
		o.logger.Warn("Orchestrator: automatic sign-in after registration failed", attrs...)
		return o.fail(epoch, model.StepAnonymous, classifier.Classification{
			Category: model.CategoryAuth,
			Message:  MessageSignInManually,
			Action:   model.ActionNone,
		})
	}

	return o.completeSignIn(ctx, epoch)
}

// completeSignIn loads the new session, enters the authenticated step and syncs the profile.
func (o *Orchestrator) completeSignIn(ctx context.Context, epoch uint64) model.AuthSession {
	if o.superseded(epoch) {
		o.revokeSuperseded(ctx)
		return o.State()
	}

	session, err := o.provider.GetCurrentSession(ctx)
	var identity *model.Identity
	if err == nil {
		identity, err = IdentityFromClaims(session.Claims)
	}
	if err != nil {
		o.logger.Error("Orchestrator: signed in but session unavailable",
			"error", err.Error())
		c := classifier.ClassifyError(err)
		if !c.Matched {
			c = classifier.Classification{Category: model.CategoryUnknown, Message: MessageSessionUnavailable, Action: model.ActionNone}
		}
		return o.fail(epoch, model.StepAnonymous, c)
	}

	state, applied := o.commit(epoch, func(s *model.AuthSession) {
		*s = model.AuthSession{Step: model.StepAuthenticated, Identity: identity}
	})
	if !applied {
		o.revokeSuperseded(ctx)
		return state
	}

	o.logger.Info("Orchestrator: authenticated",
		"email", identity.Email,
		"subject_id", identity.SubjectID)

	if o.profiles == nil {
		return state
	}
	return o.syncProfile(ctx, epoch, session.Credential)
}

func (o *Orchestrator) superseded(epoch uint64) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return epoch != o.epoch
}

// revokeSuperseded signs out at the provider after a sign-in that completed
// once the user had already signed out. A newer flow in progress is left alone.
func (o *Orchestrator) revokeSuperseded(ctx context.Context) {
	o.mu.Lock()
	idle := o.state.Step == model.StepAnonymous
	o.mu.Unlock()
	if !idle {
		return
	}

	o.logger.Info("Orchestrator: sign-in completed after sign-out, revoking")
	if err := o.provider.SignOut(ctx); err != nil {
		o.logger.Warn("Orchestrator: revoking superseded sign-in failed",
			"error", err.Error())
	}
}

// ResendCode requests a new code for the pending identifier.
func (o *Orchestrator) ResendCode(ctx context.Context) (model.AuthSession, error) {
	o.mu.Lock()
	if err := o.checkLocked("resend code", model.StepAwaitingCode); err != nil {
		defer o.mu.Unlock()
		return o.snapshotLocked(), err
	}
	o.clearErrorLocked()
	o.state.Step = model.StepSendingCode
	identifier := o.state.PendingIdentifier
	isNew := o.state.IsNewIdentityFlow
	epoch := o.epoch
	o.mu.Unlock()

	var err error
	if isNew {
		err = o.provider.ResendRegistrationCode(ctx, identifier)
	} else {
		_, err = o.provider.InitiateSignIn(ctx, identifier, model.ChallengeEmailCode)
	}
	if err != nil {
		o.logger.Warn("Orchestrator: resending code failed",
			"email", identifier,
			"error", err.Error())
		return o.fail(epoch, model.StepAwaitingCode, classifier.ClassifyError(err)), nil
	}

	state, _ := o.commit(epoch, func(s *model.AuthSession) {
		s.Step = model.StepAwaitingCode
	})
	return state, nil
}

// SignOut resets the local session immediately and then signs out at the
// provider. Provider failures are logged and ignored.
func (o *Orchestrator) SignOut(ctx context.Context) model.AuthSession {
	o.mu.Lock()
	o.epoch++
	o.state = model.AuthSession{Step: model.StepAnonymous}
	o.profile = nil
	state := o.snapshotLocked()
	o.mu.Unlock()

	if err := o.provider.SignOut(ctx); err != nil {
		o.logger.Warn("Orchestrator: provider sign-out failed",
			"error", err.Error())
	} else {
		o.logger.Info("Orchestrator: signed out")
	}

	return state
}

// Retry clears the current error and stays in the current step.
func (o *Orchestrator) Retry() model.AuthSession {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.clearErrorLocked()
	return o.snapshotLocked()
}

// SyncProfile runs profile synchronization again for the authenticated identity.
func (o *Orchestrator) SyncProfile(ctx context.Context) (model.AuthSession, error) {
	if o.profiles == nil {
		return o.State(), errors.New("profile sync is not configured")
	}

	o.mu.Lock()
	if err := o.checkLocked("sync profile", model.StepAuthenticated); err != nil {
		defer o.mu.Unlock()
		return o.snapshotLocked(), err
	}
	epoch := o.epoch
	o.mu.Unlock()

	session, err := o.provider.GetCurrentSession(ctx)
	if err != nil {
		return o.recordProfileError(epoch, err), nil
	}

	return o.syncProfile(ctx, epoch, session.Credential), nil
}

// BindSession completes an authorization session on behalf of the signed-in identity.
func (o *Orchestrator) BindSession(ctx context.Context, sessionID string) error {
	if o.binder == nil {
		return errors.New("session binding is not configured")
	}

	o.mu.Lock()
	err := o.checkLocked("bind session", model.StepAuthenticated)
	o.mu.Unlock()
	if err != nil {
		return err
	}

	session, err := o.provider.GetCurrentSession(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current session: %w", err)
	}

	if err := o.binder.Complete(ctx, sessionID, session.Credential); err != nil {
		return fmt.Errorf("failed to bind session: %w", err)
	}

	o.logger.Info("Orchestrator: authorization session bound",
		"session_id", sessionID)

	return nil
}

func (o *Orchestrator) syncProfile(ctx context.Context, epoch uint64, credential *oauth2.Token) model.AuthSession {
	result, err := o.profiles.Sync(ctx, credential)
	if err != nil {
		return o.recordProfileError(epoch, err)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if epoch == o.epoch && o.state.Step == model.StepAuthenticated {
		o.profile = &result
		o.clearErrorLocked()
	}
	return o.snapshotLocked()
}

// recordProfileError surfaces a profile failure without leaving the authenticated step.
func (o *Orchestrator) recordProfileError(epoch uint64, err error) model.AuthSession {
	c := classifier.ClassifyError(err)
	if !c.Matched {
		c = classifier.Classification{Category: model.CategoryUnknown, Message: MessageProfileSync, Action: model.ActionRetry}
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if epoch == o.epoch && o.state.Step == model.StepAuthenticated {
		o.setErrorLocked(c)
	}
	return o.snapshotLocked()
}

// fail moves to step and records the classified error.
func (o *Orchestrator) fail(epoch uint64, step model.Step, c classifier.Classification) model.AuthSession {
	state, _ := o.commit(epoch, func(s *model.AuthSession) {
		if step == model.StepAnonymous {
			*s = model.AuthSession{Step: model.StepAnonymous}
		} else {
			s.Step = step
		}
		o.setErrorLocked(c)
	})
	return state
}

// commit applies fn unless a sign-out happened since epoch.
func (o *Orchestrator) commit(epoch uint64, fn func(*model.AuthSession)) (model.AuthSession, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if epoch != o.epoch {
		o.logger.Debug("Orchestrator: dropping result of superseded operation")
		return o.snapshotLocked(), false
	}
	fn(&o.state)
	return o.snapshotLocked(), true
}

func (o *Orchestrator) checkLocked(op string, want model.Step) error {
	if !o.initialized {
		return model.ErrNotInitialized
	}
	if o.state.Step.IsTransient() {
		return model.ErrBusy
	}
	if o.state.Step != want {
		return fmt.Errorf("%w: cannot %s in step %q", model.ErrInvalidStep, op, o.state.Step)
	}
	return nil
}

func (o *Orchestrator) setErrorLocked(c classifier.Classification) {
	c = c.WithDefaults()
	o.state.Error = c.Message
	o.state.ErrorCategory = c.Category
	o.state.ErrorAction = c.Action
}

func (o *Orchestrator) clearErrorLocked() {
	o.state.Error = ""
	o.state.ErrorCategory = ""
	o.state.ErrorAction = ""
}

func (o *Orchestrator) snapshotLocked() model.AuthSession {
	s := o.state
	if s.Identity != nil {
		identity := *s.Identity
		s.Identity = &identity
	}
	return s
}
