// Package binding is the HTTP client of the session-binding endpoints.
package binding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	"github.com/busla/summerhouse-sub003/internal/logger"
	"github.com/busla/summerhouse-sub003/internal/model"
	"github.com/busla/summerhouse-sub003/internal/token"
)

// Client creates and completes authorization sessions.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewClient creates a Client for the server at baseURL. A nil httpClient uses http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client, logger *logger.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// Request creates a pending authorization session and passes its URL to deliver exactly once.
func (c *Client) Request(ctx context.Context, deliver func(authURL string)) (model.AuthorizationGrant, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/sessions", nil)
	if err != nil {
		return model.AuthorizationGrant{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.AuthorizationGrant{}, fmt.Errorf("failed to create authorization session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return model.AuthorizationGrant{}, statusError(resp)
	}

	var grant model.AuthorizationGrant
	if err := json.NewDecoder(resp.Body).Decode(&grant); err != nil {
		return model.AuthorizationGrant{}, fmt.Errorf("failed to decode authorization session: %w", err)
	}

	c.logger.Info("Binding client: authorization session created",
		"session_id", grant.ID)

	if deliver != nil {
		deliver(grant.AuthURL)
	}

	return grant, nil
}

// Complete implements model.SessionBinder by calling the callback endpoint with credential.
func (c *Client) Complete(ctx context.Context, sessionID string, credential *oauth2.Token) error {
	bearer := token.BearerValue(credential)
	if bearer == "" {
		return model.ErrUnauthenticated
	}

	endpoint := c.baseURL + "/auth/callback?" + url.Values{"sessionId": {sessionID}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	authorized := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: bearer, TokenType: "Bearer"}))

	resp, err := authorized.Do(req)
	if err != nil {
		return fmt.Errorf("failed to complete authorization session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}

	return nil
}

// Status returns the current state of an authorization session.
func (c *Client) Status(ctx context.Context, sessionID string) (model.AuthorizationSession, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/sessions/"+url.PathEscape(sessionID), nil)
	if err != nil {
		return model.AuthorizationSession{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.AuthorizationSession{}, fmt.Errorf("failed to get authorization session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.AuthorizationSession{}, statusError(resp)
	}

	var session model.AuthorizationSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return model.AuthorizationSession{}, fmt.Errorf("failed to decode authorization session: %w", err)
	}

	return session, nil
}

func statusError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return fmt.Errorf("binding server: bad request: %s", body.Error)
	case http.StatusUnauthorized:
		return fmt.Errorf("binding server: %w", model.ErrUnauthenticated)
	case http.StatusNotFound:
		return fmt.Errorf("binding server: %w", model.ErrNotFound)
	case http.StatusConflict:
		return fmt.Errorf("binding server: %w", model.ErrSessionCompleted)
	case http.StatusGone:
		return fmt.Errorf("binding server: %w", model.ErrSessionExpired)
	}
	return fmt.Errorf("binding server: unexpected status %d: %s", resp.StatusCode, body.Error)
}
