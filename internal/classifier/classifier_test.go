package classifier

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/busla/summerhouse-sub003/internal/model"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		errName      string
		message      string
		wantCategory model.ErrorCategory
		wantMessage  string
		wantAction   model.Action
		wantMatched  bool
	}{
		{
			name:         "code mismatch",
			errName:      "CodeMismatchException",
			message:      "Invalid code provided, please try again.",
			wantCategory: model.CategoryAuth,
			wantMessage:  MessageInvalidCode,
			wantAction:   model.ActionRetry,
			wantMatched:  true,
		},
		{
			name:         "code mismatch with service prefix",
			errName:      "com.amazonaws.cognito.identity.idp.model#CodeMismatchException",
			wantCategory: model.CategoryAuth,
			wantMessage:  MessageInvalidCode,
			wantAction:   model.ActionRetry,
			wantMatched:  true,
		},
		{
			name:         "invalid code alias",
			errName:      "InvalidCodeException",
			wantCategory: model.CategoryAuth,
			wantMessage:  MessageInvalidCode,
			wantAction:   model.ActionRetry,
			wantMatched:  true,
		},
		{
			name:         "expired code",
			errName:      "ExpiredCodeException",
			message:      "Invalid code provided, please request a code again.",
			wantCategory: model.CategoryAuth,
			wantMessage:  MessageExpiredCode,
			wantAction:   model.ActionResendCode,
			wantMatched:  true,
		},
		{
			name:         "expired code alias",
			errName:      "CodeExpiredException",
			wantCategory: model.CategoryAuth,
			wantMessage:  MessageExpiredCode,
			wantAction:   model.ActionResendCode,
			wantMatched:  true,
		},
		{
			name:         "limit exceeded",
			errName:      "LimitExceededException",
			message:      "Attempt limit exceeded, please try after some time.",
			wantCategory: model.CategoryRateLimit,
			wantMessage:  MessageRateLimited,
			wantAction:   model.ActionWait,
			wantMatched:  true,
		},
		{
			name:         "too many requests",
			errName:      "TooManyRequestsException",
			wantCategory: model.CategoryRateLimit,
			wantMessage:  MessageRateLimited,
			wantAction:   model.ActionWait,
			wantMatched:  true,
		},
		{
			name:         "too many failed attempts",
			errName:      "TooManyFailedAttemptsException",
			wantCategory: model.CategoryRateLimit,
			wantMessage:  MessageRateLimited,
			wantAction:   model.ActionWait,
			wantMatched:  true,
		},
		{
			name:         "throttling",
			errName:      "ThrottlingException",
			message:      "Rate exceeded",
			wantCategory: model.CategoryRateLimit,
			wantMessage:  MessageRateLimited,
			wantAction:   model.ActionWait,
			wantMatched:  true,
		},
		{
			name:         "invalid parameter keeps provider message",
			errName:      "InvalidParameterException",
			message:      "Invalid email address format.",
			wantCategory: model.CategoryValidation,
			wantMessage:  "Invalid email address format.",
			wantAction:   model.ActionCorrectInput,
			wantMatched:  true,
		},
		{
			name:         "invalid parameter without message",
			errName:      "InvalidParameterException",
			wantCategory: model.CategoryValidation,
			wantMessage:  MessageValidation,
			wantAction:   model.ActionCorrectInput,
			wantMatched:  true,
		},
		{
			name:         "validation hint in message",
			errName:      "SomethingElse",
			message:      "1 validation error detected: Value at 'username' failed: Member must satisfy regular expression pattern",
			wantCategory: model.CategoryValidation,
			wantMessage:  "1 validation error detected: Value at 'username' failed: Member must satisfy regular expression pattern",
			wantAction:   model.ActionCorrectInput,
			wantMatched:  true,
		},
		{
			name:         "network error name",
			errName:      "NetworkError",
			message:      "A network error has occurred.",
			wantCategory: model.CategoryNetwork,
			wantMessage:  MessageNetwork,
			wantAction:   model.ActionRetry,
			wantMatched:  true,
		},
		{
			name:         "timeout error name",
			errName:      "TimeoutError",
			wantCategory: model.CategoryNetwork,
			wantMessage:  MessageNetwork,
			wantAction:   model.ActionRetry,
			wantMatched:  true,
		},
		{
			name:         "network in message any case",
			errName:      "Error",
			message:      "Failed due to NETWORK unavailability",
			wantCategory: model.CategoryNetwork,
			wantMessage:  MessageNetwork,
			wantAction:   model.ActionRetry,
			wantMatched:  true,
		},
		{
			name:         "wrong code wins over network message",
			errName:      "CodeMismatchException",
			message:      "network hiccup",
			wantCategory: model.CategoryAuth,
			wantMessage:  MessageInvalidCode,
			wantAction:   model.ActionRetry,
			wantMatched:  true,
		},
		{
			name:         "rate limit wins over validation hint",
			errName:      "LimitExceededException",
			message:      "invalid parameter",
			wantCategory: model.CategoryRateLimit,
			wantMessage:  MessageRateLimited,
			wantAction:   model.ActionWait,
			wantMatched:  true,
		},
		{
			name:        "not authorized falls through",
			errName:     "NotAuthorizedException",
			message:     "Incorrect username or password.",
			wantMessage: "Incorrect username or password.",
		},
		{
			name:        "user not found falls through",
			errName:     "UserNotFoundException",
			message:     "User does not exist.",
			wantMessage: "User does not exist.",
		},
		{
			name:        "empty input",
			errName:     "",
			message:     "",
			wantMessage: "",
		},
		{
			name:        "unknown name and message",
			errName:     "InternalErrorException",
			message:     "boom",
			wantMessage: "boom",
		},
		{
			name:        "garbage name",
			errName:     "##::",
			message:     "weird",
			wantMessage: "weird",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got Classification
			assert.NotPanics(t, func() { got = Classify(tt.errName, tt.message) })

			assert.Equal(t, tt.wantCategory, got.Category)
			assert.Equal(t, tt.wantMessage, got.Message)
			assert.Equal(t, tt.wantAction, got.Action)
			assert.Equal(t, tt.wantMatched, got.Matched)
		})
	}
}

func TestClassifyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		err          error
		wantCategory model.ErrorCategory
		wantMessage  string
		wantAction   model.Action
	}{
		{
			name:         "provider error",
			err:          &model.ProviderError{Name: "ExpiredCodeException", Message: "expired"},
			wantCategory: model.CategoryAuth,
			wantMessage:  MessageExpiredCode,
		},
		{
			name:         "wrapped provider error",
			err:          fmt.Errorf("failed to confirm: %w", &model.ProviderError{Name: "LimitExceededException"}),
			wantCategory: model.CategoryRateLimit,
			wantMessage:  MessageRateLimited,
		},
		{
			name:         "url error",
			err:          &url.Error{Op: "Post", URL: "https://idp.example.com", Err: errors.New("connection refused")},
			wantCategory: model.CategoryNetwork,
			wantMessage:  MessageNetwork,
		},
		{
			name: "url error with malformed response",
			err: fmt.Errorf("failed to call InitiateAuth: %w", &url.Error{
				Op:  "Post",
				URL: "https://cognito-idp.eu-west-1.amazonaws.com/",
				Err: errors.New("net/http: HTTP/1.x transport connection broken: malformed HTTP response"),
			}),
			wantCategory: model.CategoryNetwork,
			wantMessage:  MessageNetwork,
			wantAction:   model.ActionRetry,
		},
		{
			name:         "net op error",
			err:          &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("no route to host")},
			wantCategory: model.CategoryNetwork,
			wantMessage:  MessageNetwork,
		},
		{
			name:         "deadline exceeded",
			err:          fmt.Errorf("call: %w", context.DeadlineExceeded),
			wantCategory: model.CategoryNetwork,
			wantMessage:  MessageNetwork,
		},
		{
			name:        "plain error keeps message",
			err:         errors.New("unexpected response"),
			wantMessage: "unexpected response",
		},
		{
			name: "nil error",
			err:  nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ClassifyError(tt.err)
			assert.Equal(t, tt.wantCategory, got.Category)
			assert.Equal(t, tt.wantMessage, got.Message)
			if tt.wantAction != "" {
				assert.Equal(t, tt.wantAction, got.Action)
			}
		})
	}
}

func TestClassification_WithDefaults(t *testing.T) {
	t.Parallel()

	got := Classify("InternalErrorException", "").WithDefaults()
	assert.Equal(t, model.CategoryUnknown, got.Category)
	assert.Equal(t, MessageUnknown, got.Message)
	assert.Equal(t, model.ActionNone, got.Action)

	kept := Classify("InternalErrorException", "boom").WithDefaults()
	assert.Equal(t, "boom", kept.Message)

	matched := Classify("CodeMismatchException", "").WithDefaults()
	assert.Equal(t, model.CategoryAuth, matched.Category)
	assert.Equal(t, model.ActionRetry, matched.Action)
}
