package model

import (
	"context"
	"time"

	"golang.org/x/oauth2"
)

// ChallengeType is the challenge preferred when starting a sign-in.
type ChallengeType string

// ChallengeEmailCode asks the provider to email a one-time code.
const ChallengeEmailCode ChallengeType = "EMAIL_CODE"

// NextStep is what the provider expects after a call.
type NextStep string

const (
	NextStepConfirmSignInWithEmailCode NextStep = "CONFIRM_SIGN_IN_WITH_EMAIL_CODE"
	NextStepConfirmSignUp              NextStep = "CONFIRM_SIGN_UP"
	NextStepCompleteAutoSignIn         NextStep = "COMPLETE_AUTO_SIGN_IN"
	NextStepSignIn                     NextStep = "SIGN_IN"
	NextStepDone                       NextStep = "DONE"
)

// SignInResult is returned by sign-in style provider calls.
type SignInResult struct {
	SignedIn bool
	NextStep NextStep
}

// SignUpResult is returned by IdentityProvider.Register.
type SignUpResult struct {
	NextStep NextStep
	// Destination is the masked address the code was sent to, when known.
	Destination string
}

// ConfirmResult is returned by IdentityProvider.ConfirmRegistration.
type ConfirmResult struct {
	Complete bool
	NextStep NextStep
}

// Claims are the identity claims of a session.
type Claims struct {
	Subject           string
	Email             string
	EmailVerified     bool
	Name              string
	PreferredUsername string
	ExpiresAt         time.Time
}

// Session is the provider's current session.
type Session struct {
	Claims     Claims
	Credential *oauth2.Token
}

// IdentityProvider is the capability surface of a passwordless identity provider.
type IdentityProvider interface {
	InitiateSignIn(ctx context.Context, identifier string, challenge ChallengeType) (SignInResult, error)
	ConfirmChallenge(ctx context.Context, code string) (SignInResult, error)
	Register(ctx context.Context, identifier string, attributes map[string]string) (SignUpResult, error)
	ConfirmRegistration(ctx context.Context, identifier, code string) (ConfirmResult, error)
	AutoSignInAfterRegistration(ctx context.Context) (SignInResult, error)
	ResendRegistrationCode(ctx context.Context, identifier string) error
	GetCurrentSession(ctx context.Context) (Session, error)
	SignOut(ctx context.Context) error
}

// ClaimsSource supplies the claims of an existing session.
type ClaimsSource interface {
	CurrentClaims(ctx context.Context) (Claims, error)
}
