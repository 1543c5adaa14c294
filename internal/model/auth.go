package model

import "fmt"

// Step is a state of the passwordless authentication state machine.
type Step string

const (
	// StepAnonymous means no identity and no attempt in progress.
	StepAnonymous Step = "anonymous"
	// StepSendingCode is the in-flight marker while a code is being requested.
	StepSendingCode Step = "sending_code"
	// StepAwaitingCode means a code was sent and the user has to enter it.
	StepAwaitingCode Step = "awaiting_code"
	// StepVerifying is the in-flight marker while a code is being confirmed.
	StepVerifying Step = "verifying"
	// StepAuthenticated means the identity is verified and bound to a session.
	StepAuthenticated Step = "authenticated"
)

// IsTransient reports whether the step is an in-flight marker.
func (s Step) IsTransient() bool {
	return s == StepSendingCode || s == StepVerifying
}

// HasPendingIdentifier reports whether an identifier is being verified in this step.
func (s Step) HasPendingIdentifier() bool {
	return s == StepSendingCode || s == StepAwaitingCode || s == StepVerifying
}

// ErrorCategory groups failures by the action that resolves them.
type ErrorCategory string

const (
	CategoryNetwork    ErrorCategory = "network"
	CategoryAuth       ErrorCategory = "auth"
	CategoryValidation ErrorCategory = "validation"
	CategoryRateLimit  ErrorCategory = "rate_limit"
	CategoryUnknown    ErrorCategory = "unknown"
)

// Retryable reports whether the same action may simply be issued again.
func (c ErrorCategory) Retryable() bool {
	return c == CategoryNetwork
}

// Action is the user action suggested for an error.
type Action string

const (
	ActionRetry        Action = "retry"
	ActionResendCode   Action = "resend_code"
	ActionWait         Action = "wait"
	ActionCorrectInput Action = "correct_input"
	ActionNone         Action = "none"
)

// Identity is a verified user identity.
type Identity struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	SubjectID   string `json:"subjectId"`
}

// AuthSession is a snapshot of one authentication attempt.
// Empty strings stand for absent values.
type AuthSession struct {
	Step              Step
	PendingIdentifier string
	IsNewIdentityFlow bool
	Identity          *Identity
	Error             string
	ErrorCategory     ErrorCategory
	ErrorAction       Action
}

// HasError reports whether the session carries a user-facing error.
func (s AuthSession) HasError() bool {
	return s.Error != ""
}

// Validate checks the structural invariants of the session.
func (s AuthSession) Validate() error {
	if (s.Identity != nil) != (s.Step == StepAuthenticated) {
		return fmt.Errorf("identity presence does not match step %q", s.Step)
	}
	if (s.PendingIdentifier != "") != s.Step.HasPendingIdentifier() {
		return fmt.Errorf("pending identifier presence does not match step %q", s.Step)
	}
	if (s.Error == "") != (s.ErrorCategory == "") {
		return fmt.Errorf("error and error category must be set together")
	}
	if (s.Error == "") != (s.ErrorAction == "") {
		return fmt.Errorf("error and error action must be set together")
	}
	if s.IsNewIdentityFlow && s.PendingIdentifier == "" {
		return fmt.Errorf("new identity flow without pending identifier")
	}
	return nil
}
