package cognito

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/oauth2"

	"github.com/busla/summerhouse-sub003/internal/model"
)

var (
	errNoChallenge = errors.New("no sign-in challenge in progress")
	errSignedOut   = fmt.Errorf("signed out while the call was in flight: %w", model.ErrNoSession)
)

// InitiateSignIn starts a choice-based sign-in preferring the email code challenge.
func (c *Client) InitiateSignIn(ctx context.Context, identifier string, challenge model.ChallengeType) (model.SignInResult, error) {
	if challenge != model.ChallengeEmailCode {
		return model.SignInResult{}, &model.ProviderError{Name: errUnsupportedChallenge, Message: string(challenge)}
	}

	generation := c.currentGeneration()

	c.mu.Lock()
	c.pending = pendingAuth{username: identifier}
	c.mu.Unlock()

	var out authOutput
	err := c.call(ctx, "InitiateAuth", initiateAuthInput{
		AuthFlow: flowUserAuth,
		ClientID: c.clientID,
		AuthParameters: map[string]string{
			"USERNAME":            identifier,
			"PREFERRED_CHALLENGE": challengeEmailOTP,
		},
	}, &out)
	if err != nil {
		return model.SignInResult{}, err
	}

	return c.handleAuthOutput(ctx, identifier, out, generation, true)
}

// ConfirmChallenge answers the pending email code challenge.
func (c *Client) ConfirmChallenge(ctx context.Context, code string) (model.SignInResult, error) {
	generation := c.currentGeneration()

	c.mu.Lock()
	username, session := c.pending.username, c.pending.challengeSession
	c.mu.Unlock()

	if session == "" {
		return model.SignInResult{}, errNoChallenge
	}

	var out authOutput
	err := c.call(ctx, "RespondToAuthChallenge", respondToAuthChallengeInput{
		ChallengeName: challengeEmailOTP,
		ClientID:      c.clientID,
		ChallengeResponses: map[string]string{
			"USERNAME":       username,
			"EMAIL_OTP_CODE": code,
		},
		Session: session,
	}, &out)
	if err != nil {
		return model.SignInResult{}, err
	}

	return c.handleAuthOutput(ctx, username, out, generation, false)
}

// handleAuthOutput stores tokens on success or records the next challenge.
// A challenge selection is answered with the email code once when selectAllowed.
// generation is the sign-out generation observed when the call began.
func (c *Client) handleAuthOutput(ctx context.Context, username string, out authOutput, generation uint64, selectAllowed bool) (model.SignInResult, error) {
	if out.AuthenticationResult != nil {
		if err := c.storeResult(out.AuthenticationResult, "", generation); err != nil {
			return model.SignInResult{}, err
		}
		c.clearPending()
		return model.SignInResult{SignedIn: true, NextStep: model.NextStepDone}, nil
	}

	switch out.ChallengeName {
	case challengeEmailOTP:
		c.mu.Lock()
		c.pending.challengeSession = out.Session
		c.mu.Unlock()
		return model.SignInResult{NextStep: model.NextStepConfirmSignInWithEmailCode}, nil

	case challengeSelect:
		if !selectAllowed {
			break
		}
		var next authOutput
		err := c.call(ctx, "RespondToAuthChallenge", respondToAuthChallengeInput{
			ChallengeName: challengeSelect,
			ClientID:      c.clientID,
			ChallengeResponses: map[string]string{
				"USERNAME": username,
				"ANSWER":   challengeEmailOTP,
			},
			Session: out.Session,
		}, &next)
		if err != nil {
			return model.SignInResult{}, err
		}
		return c.handleAuthOutput(ctx, username, next, generation, false)
	}

	c.logger.Warn("Cognito: unsupported challenge",
		"challenge", out.ChallengeName)

	return model.SignInResult{}, &model.ProviderError{
		Name:    errUnsupportedChallenge,
		Message: fmt.Sprintf("challenge %q is not supported", out.ChallengeName),
	}
}

// Register signs up identifier without a password. Cognito emails a confirmation code.
func (c *Client) Register(ctx context.Context, identifier string, attributes map[string]string) (model.SignUpResult, error) {
	names := make([]string, 0, len(attributes))
	for name := range attributes {
		names = append(names, name)
	}
	sort.Strings(names)

	userAttributes := make([]attributeType, 0, len(names))
	for _, name := range names {
		userAttributes = append(userAttributes, attributeType{Name: name, Value: attributes[name]})
	}

	var out signUpOutput
	err := c.call(ctx, "SignUp", signUpInput{
		ClientID:       c.clientID,
		Username:       identifier,
		UserAttributes: userAttributes,
	}, &out)
	if err != nil {
		return model.SignUpResult{}, err
	}

	c.mu.Lock()
	c.pending = pendingAuth{username: identifier, signUpSession: out.Session}
	c.mu.Unlock()

	result := model.SignUpResult{NextStep: model.NextStepConfirmSignUp}
	if out.UserConfirmed {
		result.NextStep = model.NextStepCompleteAutoSignIn
	}
	if out.CodeDeliveryDetails != nil {
		result.Destination = out.CodeDeliveryDetails.Destination
	}

	return result, nil
}

// ConfirmRegistration confirms the sign-up of identifier with the emailed code.
func (c *Client) ConfirmRegistration(ctx context.Context, identifier, code string) (model.ConfirmResult, error) {
	c.mu.Lock()
	session := ""
	if c.pending.username == identifier {
		session = c.pending.signUpSession
	}
	c.mu.Unlock()

	var out confirmSignUpOutput
	err := c.call(ctx, "ConfirmSignUp", confirmSignUpInput{
		ClientID:         c.clientID,
		Username:         identifier,
		ConfirmationCode: code,
		Session:          session,
	}, &out)
	if err != nil {
		return model.ConfirmResult{}, err
	}

	c.mu.Lock()
	c.pending = pendingAuth{username: identifier, signUpSession: out.Session}
	c.mu.Unlock()

	if out.Session == "" {
		return model.ConfirmResult{Complete: true, NextStep: model.NextStepSignIn}, nil
	}
	return model.ConfirmResult{Complete: true, NextStep: model.NextStepCompleteAutoSignIn}, nil
}

// AutoSignInAfterRegistration signs in with the session issued by sign-up confirmation.
func (c *Client) AutoSignInAfterRegistration(ctx context.Context) (model.SignInResult, error) {
	generation := c.currentGeneration()

	c.mu.Lock()
	username, session := c.pending.username, c.pending.signUpSession
	c.mu.Unlock()

	if session == "" {
		return model.SignInResult{NextStep: model.NextStepSignIn}, nil
	}

	var out authOutput
	err := c.call(ctx, "InitiateAuth", initiateAuthInput{
		AuthFlow:       flowUserAuth,
		ClientID:       c.clientID,
		AuthParameters: map[string]string{"USERNAME": username},
		Session:        session,
	}, &out)
	if err != nil {
		return model.SignInResult{}, err
	}

	if out.AuthenticationResult == nil {
		c.logger.Warn("Cognito: auto sign-in returned a challenge",
			"challenge", out.ChallengeName)
		return model.SignInResult{NextStep: model.NextStepSignIn}, nil
	}

	return c.handleAuthOutput(ctx, username, out, generation, false)
}

// ResendRegistrationCode sends a new sign-up confirmation code.
func (c *Client) ResendRegistrationCode(ctx context.Context, identifier string) error {
	return c.call(ctx, "ResendConfirmationCode", resendConfirmationCodeInput{
		ClientID: c.clientID,
		Username: identifier,
	}, nil)
}

// GetCurrentSession returns the stored session, refreshing expired tokens.
func (c *Client) GetCurrentSession(ctx context.Context) (model.Session, error) {
	source, err := c.TokenSource(ctx)
	if err != nil {
		return model.Session{}, err
	}

	credential, err := source.Token()
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to get token: %w", err)
	}

	idToken, _ := credential.Extra("id_token").(string)
	if idToken == "" {
		return model.Session{}, fmt.Errorf("stored session has no identity token: %w", model.ErrNoSession)
	}

	claims, err := c.verifier.Verify(ctx, idToken)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to verify identity token: %w", err)
	}

	return model.Session{Claims: claims, Credential: credential}, nil
}

// SignOut clears local state and revokes all tokens of the user. Local state is
// cleared even when the stored tokens are unreadable or revocation fails, and
// sign-ins still in flight are not persisted.
func (c *Client) SignOut(ctx context.Context) error {
	c.clearPending()

	c.storeMu.Lock()
	c.generation++
	credential, loadErr := c.tokens.Load()
	clearErr := c.tokens.Clear()
	c.storeMu.Unlock()

	if clearErr != nil {
		return fmt.Errorf("failed to clear tokens: %w", clearErr)
	}
	if loadErr != nil {
		c.logger.Warn("Cognito: stored tokens unreadable, skipping revocation",
			"error", loadErr.Error())
		return nil
	}
	if credential == nil {
		return nil
	}

	return c.call(ctx, "GlobalSignOut", globalSignOutInput{AccessToken: credential.AccessToken}, nil)
}

// TokenSource returns a source yielding the stored credential, refreshed when expired.
func (c *Client) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	credential, err := c.tokens.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load tokens: %w", err)
	}
	if credential == nil {
		return nil, model.ErrNoSession
	}

	return oauth2.ReuseTokenSource(credential, &refreshSource{
		ctx:          ctx,
		client:       c,
		refreshToken: credential.RefreshToken,
		generation:   c.currentGeneration(),
	}), nil
}

func (c *Client) clearPending() {
	c.mu.Lock()
	c.pending = pendingAuth{}
	c.mu.Unlock()
}

func (c *Client) currentGeneration() uint64 {
	c.storeMu.Lock()
	defer c.storeMu.Unlock()
	return c.generation
}

// storeResult persists an authentication result. Refresh results carry no
// refresh token, so the previous one is kept.
func (c *Client) storeResult(result *authenticationResult, previousRefresh string, generation uint64) error {
	return c.save(tokenFromResult(result, previousRefresh, c.now()), generation)
}

// save persists credential unless a sign-out happened after generation was observed.
func (c *Client) save(credential *oauth2.Token, generation uint64) error {
	c.storeMu.Lock()
	defer c.storeMu.Unlock()

	if c.generation != generation {
		c.logger.Info("Cognito: dropping tokens issued after sign-out")
		return errSignedOut
	}
	if err := c.tokens.Save(credential); err != nil {
		return fmt.Errorf("failed to save tokens: %w", err)
	}
	return nil
}

// refreshSource refreshes tokens with the REFRESH_TOKEN_AUTH flow.
type refreshSource struct {
	ctx          context.Context
	client       *Client
	refreshToken string
	generation   uint64
}

func (s *refreshSource) Token() (*oauth2.Token, error) {
	if s.refreshToken == "" {
		return nil, model.ErrNoSession
	}

	var out authOutput
	err := s.client.call(s.ctx, "InitiateAuth", initiateAuthInput{
		AuthFlow:       flowRefreshToken,
		ClientID:       s.client.clientID,
		AuthParameters: map[string]string{"REFRESH_TOKEN": s.refreshToken},
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.AuthenticationResult == nil {
		return nil, fmt.Errorf("refresh returned challenge %q", out.ChallengeName)
	}

	credential := tokenFromResult(out.AuthenticationResult, s.refreshToken, s.client.now())
	if err := s.client.save(credential, s.generation); err != nil {
		return nil, err
	}

	s.client.logger.Debug("Cognito: tokens refreshed")

	return credential, nil
}
