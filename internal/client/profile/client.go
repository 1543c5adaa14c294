// Package profile is the HTTP client of the profile resource server.
package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2"

	"github.com/busla/summerhouse-sub003/internal/logger"
	"github.com/busla/summerhouse-sub003/internal/model"
	"github.com/busla/summerhouse-sub003/internal/token"
)

const profilePath = "/profile/me"

// Client calls the profile resource server with the user's delegated credential.
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

// CreateCurrent implements model.ProfileServer. An existing profile is reported
// with Created=false and no error.
func (c *Client) CreateCurrent(ctx context.Context, credential *oauth2.Token) (model.ProfileSyncResult, error) {
	resp, err := c.do(ctx, credential, http.MethodPost, nil)
	if err != nil {
		return model.ProfileSyncResult{}, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		profile, err := decodeProfile(resp.Body)
		if err != nil {
			return model.ProfileSyncResult{}, err
		}
		return model.ProfileSyncResult{Created: true, Profile: profile}, nil
	case http.StatusOK, http.StatusConflict:
		// The existing profile is informative only.
		profile, _ := decodeProfile(resp.Body)
		c.logger.Debug("Profile client: profile already exists",
			"status", resp.StatusCode)
		return model.ProfileSyncResult{Created: false, Profile: profile}, nil
	default:
		return model.ProfileSyncResult{}, statusError(resp)
	}
}

// GetCurrent returns the caller's profile.
func (c *Client) GetCurrent(ctx context.Context, credential *oauth2.Token) (model.Profile, error) {
	resp, err := c.do(ctx, credential, http.MethodGet, nil)
	if err != nil {
		return model.Profile{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.Profile{}, statusError(resp)
	}
	return decodeProfile(resp.Body)
}

// UpdateCurrent changes the caller's mutable profile fields.
func (c *Client) UpdateCurrent(ctx context.Context, credential *oauth2.Token, update model.ProfileUpdate) (model.Profile, error) {
	body, err := json.Marshal(update)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to encode profile update: %w", err)
	}

	resp, err := c.do(ctx, credential, http.MethodPut, body)
	if err != nil {
		return model.Profile{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.Profile{}, statusError(resp)
	}
	return decodeProfile(resp.Body)
}

func (c *Client) do(ctx context.Context, credential *oauth2.Token, method string, body []byte) (*http.Response, error) {
	bearer := token.BearerValue(credential)
	if bearer == "" {
		return nil, model.ErrUnauthenticated
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+profilePath, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	authorized := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: bearer, TokenType: "Bearer"}))

	resp, err := authorized.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call profile server: %w", err)
	}

	return resp, nil
}

func decodeProfile(r io.Reader) (model.Profile, error) {
	var profile model.Profile
	if err := json.NewDecoder(r).Decode(&profile); err != nil {
		return model.Profile{}, fmt.Errorf("failed to decode profile: %w", err)
	}
	return profile, nil
}

func statusError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("profile server: %w", model.ErrUnauthenticated)
	case http.StatusNotFound:
		return fmt.Errorf("profile server: %w", model.ErrNotFound)
	}
	return fmt.Errorf("profile server: unexpected status %d: %s", resp.StatusCode, body.Error)
}
