// Package classifier maps identity provider failures to user-facing categories and messages.
package classifier

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"

	"github.com/busla/summerhouse-sub003/internal/model"
)

const (
	MessageInvalidCode = "Invalid code. Please try again."
	MessageExpiredCode = "Code expired. Please request a new one."
	MessageRateLimited = "Too many attempts. Please wait and try again."
	MessageNetwork     = "Unable to connect. Please check your internet connection."
	MessageValidation  = "Please check your input and try again."
	MessageUnknown     = "Something went wrong. Please try again."
)

// NetworkErrorName is the name given to failures raised by the transport itself.
const NetworkErrorName = "NetworkError"

var (
	invalidCodeNames = names("CodeMismatchException", "InvalidCodeException", "CodeMismatch")
	expiredCodeNames = names("ExpiredCodeException", "CodeExpiredException", "ExpiredCode")
	rateLimitNames   = names(
		"LimitExceededException",
		"TooManyRequestsException",
		"TooManyFailedAttemptsException",
		"ThrottlingException",
	)
	validationNames = names(
		"InvalidParameterException",
		"InvalidParameterCombinationException",
		"InvalidEmailException",
		"ValidationException",
		"SerializationException",
	)
	networkNames = names(NetworkErrorName, "NetworkingError", "TimeoutError", "RequestTimeout")

	validationHints = []string{"invalid parameter", "invalid format", "must satisfy", "malformed"}
)

// Classification is the outcome of classifying a provider failure.
type Classification struct {
	Category model.ErrorCategory
	Message  string
	Action   model.Action
	// Matched is false when no rule applied. Category is empty in that case.
	Matched bool
}

// Classify maps a provider failure name and message to a classification.
// Rules apply in priority order: wrong code, expired code, rate limiting,
// validation, network. Unmatched failures keep the raw message.
func Classify(name, message string) Classification {
	key := normalizeName(name)
	lowerMsg := strings.ToLower(message)

	switch {
	case invalidCodeNames[key]:
		return Classification{Category: model.CategoryAuth, Message: MessageInvalidCode, Action: model.ActionRetry, Matched: true}
	case expiredCodeNames[key]:
		return Classification{Category: model.CategoryAuth, Message: MessageExpiredCode, Action: model.ActionResendCode, Matched: true}
	case rateLimitNames[key]:
		return Classification{Category: model.CategoryRateLimit, Message: MessageRateLimited, Action: model.ActionWait, Matched: true}
	case validationNames[key] || containsAny(lowerMsg, validationHints):
		msg := strings.TrimSpace(message)
		if msg == "" {
			msg = MessageValidation
		}
		return Classification{Category: model.CategoryValidation, Message: msg, Action: model.ActionCorrectInput, Matched: true}
	case networkNames[key] || strings.Contains(lowerMsg, "network"):
		return Classification{Category: model.CategoryNetwork, Message: MessageNetwork, Action: model.ActionRetry, Matched: true}
	}

	return Classification{Message: message}
}

// ClassifyError classifies any error returned by a provider call.
// Provider errors are classified by name and message. Transport failures
// (net.Error, *url.Error, deadline exceeded) are classified as network.
func ClassifyError(err error) Classification {
	if err == nil {
		return Classification{}
	}

	var providerErr *model.ProviderError
	if errors.As(err, &providerErr) {
		return Classify(providerErr.Name, providerErr.Message)
	}

	if isTransportError(err) {
		return Classification{Category: model.CategoryNetwork, Message: MessageNetwork, Action: model.ActionRetry, Matched: true}
	}

	return Classify("", err.Error())
}

// WithDefaults fills the category, message and action of an unmatched classification.
func (c Classification) WithDefaults() Classification {
	if c.Category == "" {
		c.Category = model.CategoryUnknown
	}
	if strings.TrimSpace(c.Message) == "" {
		c.Message = MessageUnknown
	}
	if c.Action == "" {
		c.Action = model.ActionNone
	}
	return c
}

func isTransportError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// normalizeName strips service prefixes such as "com.amazonaws.cognito#".
func normalizeName(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.LastIndexByte(name, '#'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.IndexByte(name, ':'); i >= 0 {
		name = name[:i]
	}
	return name
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func names(list ...string) map[string]bool {
	m := make(map[string]bool, len(list))
	for _, n := range list {
		m[n] = true
	}
	return m
}
