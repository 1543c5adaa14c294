// Package cognito implements model.IdentityProvider on top of the Amazon Cognito
// user pools JSON API using passwordless email one-time codes.
package cognito

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/busla/summerhouse-sub003/internal/logger"
	"github.com/busla/summerhouse-sub003/internal/model"
)

const (
	targetPrefix = "AWSCognitoIdentityProviderService."
	contentType  = "application/x-amz-json-1.1"

	defaultTimeout = 30 * time.Second
)

// Config holds the user pool client settings.
type Config struct {
	Region   string
	ClientID string
	// Endpoint overrides the regional endpoint, e.g. for a local emulator.
	Endpoint string
}

func (c Config) endpoint() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	return fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/", c.Region)
}

// Client is a Cognito user pool app client acting for a single user.
type Client struct {
	endpoint   string
	clientID   string
	httpClient *http.Client
	tokens     TokenStore
	verifier   model.TokenVerifier
	logger     *logger.Logger

	mu      sync.Mutex
	pending pendingAuth
	now     func() time.Time

	// storeMu serializes token persistence with sign-out. generation counts
	// sign-outs; a result from a call begun in an older generation is dropped.
	storeMu    sync.Mutex
	generation uint64
}

// pendingAuth is the provider-side context of a sign-in or sign-up in progress.
type pendingAuth struct {
	username string
	// challengeSession answers the current sign-in challenge.
	challengeSession string
	// signUpSession continues a sign-up through confirmation and auto sign-in.
	signUpSession string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a Client. Tokens are persisted in tokens and identity
// tokens are checked with verifier.
func NewClient(cfg Config, tokens TokenStore, verifier model.TokenVerifier, logger *logger.Logger, opts ...Option) *Client {
	c := &Client{
		endpoint:   cfg.endpoint(),
		clientID:   cfg.ClientID,
		httpClient: &http.Client{Timeout: defaultTimeout},
		tokens:     tokens,
		verifier:   verifier,
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// call invokes operation with in as the request body and decodes the response into out.
func (c *Client) call(ctx context.Context, operation string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Amz-Target", targetPrefix+operation)

	c.logger.Debug("Cognito: calling operation",
		"operation", operation)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", operation, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", operation, err)
	}

	if resp.StatusCode != http.StatusOK {
		return parseError(resp.StatusCode, respBody)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", operation, err)
	}

	return nil
}
