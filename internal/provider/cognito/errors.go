package cognito

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/busla/summerhouse-sub003/internal/model"
)

const (
	errUserNotFound         = "UserNotFoundException"
	errUnsupportedChallenge = "UnsupportedChallenge"
)

type errorBody struct {
	Type         string `json:"__type"`
	Message      string `json:"message"`
	MessageUpper string `json:"Message"`
}

// parseError converts an error response into a *model.ProviderError. Unknown
// identities additionally match model.ErrIdentityNotFound.
func parseError(status int, body []byte) error {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)

	name := eb.Type
	if i := strings.LastIndex(name, "#"); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		name = http.StatusText(status)
	}

	message := eb.Message
	if message == "" {
		message = eb.MessageUpper
	}

	providerErr := &model.ProviderError{Name: name, Message: message, StatusCode: status}
	if name == errUserNotFound {
		return fmt.Errorf("%w: %w", model.ErrIdentityNotFound, providerErr)
	}

	return providerErr
}
