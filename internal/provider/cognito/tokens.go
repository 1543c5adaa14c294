package cognito

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// TokenStore persists the credential of the signed-in user.
// Load returns nil without error when nothing is stored.
type TokenStore interface {
	Load() (*oauth2.Token, error)
	Save(token *oauth2.Token) error
	Clear() error
}

func tokenFromResult(result *authenticationResult, previousRefresh string, now time.Time) *oauth2.Token {
	refresh := result.RefreshToken
	if refresh == "" {
		refresh = previousRefresh
	}

	tokenType := result.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}

	token := &oauth2.Token{
		AccessToken:  result.AccessToken,
		TokenType:    tokenType,
		RefreshToken: refresh,
		Expiry:       now.Add(time.Duration(result.ExpiresIn) * time.Second),
	}
	return token.WithExtra(map[string]any{"id_token": result.IDToken})
}

// storedToken is the on-disk form of a credential. oauth2.Token does not
// serialize its extra fields.
type storedToken struct {
	AccessToken  string    `json:"access_token"`
	IDToken      string    `json:"id_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type"`
	Expiry       time.Time `json:"expiry"`
}

func toStored(token *oauth2.Token) storedToken {
	idToken, _ := token.Extra("id_token").(string)
	return storedToken{
		AccessToken:  token.AccessToken,
		IDToken:      idToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		Expiry:       token.Expiry,
	}
}

func (s storedToken) token() *oauth2.Token {
	token := &oauth2.Token{
		AccessToken:  s.AccessToken,
		TokenType:    s.TokenType,
		RefreshToken: s.RefreshToken,
		Expiry:       s.Expiry,
	}
	return token.WithExtra(map[string]any{"id_token": s.IDToken})
}

// MemoryTokenStore keeps the credential in memory.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token *storedToken
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Load() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == nil {
		return nil, nil
	}
	return s.token.token(), nil
}

func (s *MemoryTokenStore) Save(token *oauth2.Token) error {
	stored := toStored(token)
	s.mu.Lock()
	s.token = &stored
	s.mu.Unlock()
	return nil
}

func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	s.token = nil
	s.mu.Unlock()
	return nil
}

// FileTokenStore keeps the credential in a JSON file readable only by the owner.
type FileTokenStore struct {
	path string
	mu   sync.Mutex
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (s *FileTokenStore) Load() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var stored storedToken
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to decode token file: %w", err)
	}

	return stored.token(), nil
}

func (s *FileTokenStore) Save(token *oauth2.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(toStored(token))
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

func (s *FileTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}
