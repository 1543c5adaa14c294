package cognito

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/busla/summerhouse-sub003/internal/model"
	"github.com/busla/summerhouse-sub003/internal/testutil"
	"github.com/busla/summerhouse-sub003/internal/token"
)

const testIssuer = "https://issuer.test"

type fakeCall struct {
	Operation string
	Body      map[string]any
}

type fakeHandler func(body map[string]any) (int, any)

// fakeCognito serves the Cognito JSON API from per-operation handlers.
type fakeCognito struct {
	t        *testing.T
	mu       sync.Mutex
	calls    []fakeCall
	handlers map[string]fakeHandler
}

func (f *fakeCognito) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	assert.Equal(f.t, contentType, r.Header.Get("Content-Type"))
	operation := strings.TrimPrefix(r.Header.Get("X-Amz-Target"), targetPrefix)

	var body map[string]any
	if !assert.NoError(f.t, json.NewDecoder(r.Body).Decode(&body)) {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.calls = append(f.calls, fakeCall{Operation: operation, Body: body})
	handler, ok := f.handlers[operation]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"__type":"UnknownOperationException"}`))
		return
	}

	status, out := handler(body)
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(out)
}

func (f *fakeCognito) operations() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ops []string
	for _, c := range f.calls {
		ops = append(ops, c.Operation)
	}
	return ops
}

func providerFailure(name, message string) (int, any) {
	return http.StatusBadRequest, map[string]string{
		"__type":  "com.amazonaws.cognito.identity.idp.model#" + name,
		"message": message,
	}
}

type testEnv struct {
	fake   *fakeCognito
	client *Client
	tokens *MemoryTokenStore
	issuer *token.HMAC
}

func newTestEnv(t *testing.T, handlers map[string]fakeHandler) *testEnv {
	t.Helper()

	fake := &fakeCognito{t: t, handlers: handlers}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	issuer := token.NewHMAC("secret", testIssuer)
	tokens := NewMemoryTokenStore()
	client := NewClient(Config{ClientID: "client-1", Endpoint: server.URL}, tokens, issuer,
		testutil.MakeNoopLogger(), WithHTTPClient(server.Client()))

	return &testEnv{fake: fake, client: client, tokens: tokens, issuer: issuer}
}

func (e *testEnv) authResult(t *testing.T, email string) map[string]any {
	t.Helper()
	idToken, err := e.issuer.Issue(model.Claims{Subject: "sub-" + email, Email: email, EmailVerified: true})
	require.NoError(t, err)

	return map[string]any{
		"AuthenticationResult": map[string]any{
			"AccessToken":  "access-" + email,
			"IdToken":      idToken,
			"RefreshToken": "refresh-" + email,
			"TokenType":    "Bearer",
			"ExpiresIn":    3600,
		},
	}
}

func param(body map[string]any, group, key string) string {
	m, _ := body[group].(map[string]any)
	v, _ := m[key].(string)
	return v
}

func TestClient_EmailCodeSignIn(t *testing.T) {
	var env *testEnv
	env = newTestEnv(t, map[string]fakeHandler{
		"InitiateAuth": func(body map[string]any) (int, any) {
			assert.Equal(t, "USER_AUTH", body["AuthFlow"])
			assert.Equal(t, "client-1", body["ClientId"])
			assert.Equal(t, "a@b.com", param(body, "AuthParameters", "USERNAME"))
			assert.Equal(t, "EMAIL_OTP", param(body, "AuthParameters", "PREFERRED_CHALLENGE"))
			return http.StatusOK, map[string]any{"ChallengeName": "EMAIL_OTP", "Session": "challenge-1"}
		},
		"RespondToAuthChallenge": func(body map[string]any) (int, any) {
			assert.Equal(t, "EMAIL_OTP", body["ChallengeName"])
			assert.Equal(t, "challenge-1", body["Session"])
			if param(body, "ChallengeResponses", "EMAIL_OTP_CODE") != "123456" {
				return providerFailure("CodeMismatchException", "Invalid code received for user")
			}
			return http.StatusOK, env.authResult(t, "a@b.com")
		},
	})
	ctx := context.Background()

	result, err := env.client.InitiateSignIn(ctx, "a@b.com", model.ChallengeEmailCode)
	require.NoError(t, err)
	assert.False(t, result.SignedIn)
	assert.Equal(t, model.NextStepConfirmSignInWithEmailCode, result.NextStep)

	_, err = env.client.ConfirmChallenge(ctx, "000000")
	var providerErr *model.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, "CodeMismatchException", providerErr.Name)
	assert.Equal(t, http.StatusBadRequest, providerErr.StatusCode)

	result, err = env.client.ConfirmChallenge(ctx, "123456")
	require.NoError(t, err)
	assert.True(t, result.SignedIn)

	session, err := env.client.GetCurrentSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", session.Claims.Email)
	assert.Equal(t, "sub-a@b.com", session.Claims.Subject)
	assert.Equal(t, "refresh-a@b.com", session.Credential.RefreshToken)
	assert.Equal(t, "access-a@b.com", session.Credential.AccessToken)

	_, err = env.client.ConfirmChallenge(ctx, "123456")
	assert.ErrorIs(t, err, errNoChallenge)
}

func TestClient_SelectChallenge(t *testing.T) {
	env := newTestEnv(t, map[string]fakeHandler{
		"InitiateAuth": func(map[string]any) (int, any) {
			return http.StatusOK, map[string]any{
				"ChallengeName":       "SELECT_CHALLENGE",
				"Session":             "select-1",
				"AvailableChallenges": []string{"PASSWORD", "EMAIL_OTP"},
			}
		},
		"RespondToAuthChallenge": func(body map[string]any) (int, any) {
			assert.Equal(t, "SELECT_CHALLENGE", body["ChallengeName"])
			assert.Equal(t, "select-1", body["Session"])
			assert.Equal(t, "EMAIL_OTP", param(body, "ChallengeResponses", "ANSWER"))
			return http.StatusOK, map[string]any{"ChallengeName": "EMAIL_OTP", "Session": "challenge-2"}
		},
	})

	result, err := env.client.InitiateSignIn(context.Background(), "a@b.com", model.ChallengeEmailCode)
	require.NoError(t, err)
	assert.Equal(t, model.NextStepConfirmSignInWithEmailCode, result.NextStep)
	assert.Equal(t, []string{"InitiateAuth", "RespondToAuthChallenge"}, env.fake.operations())
}

func TestClient_UnsupportedChallenge(t *testing.T) {
	env := newTestEnv(t, map[string]fakeHandler{
		"InitiateAuth": func(map[string]any) (int, any) {
			return http.StatusOK, map[string]any{"ChallengeName": "SMS_OTP", "Session": "s"}
		},
	})

	_, err := env.client.InitiateSignIn(context.Background(), "a@b.com", model.ChallengeEmailCode)
	var providerErr *model.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, errUnsupportedChallenge, providerErr.Name)
}

func TestClient_UserNotFound(t *testing.T) {
	env := newTestEnv(t, map[string]fakeHandler{
		"InitiateAuth": func(map[string]any) (int, any) {
			return providerFailure("UserNotFoundException", "User does not exist.")
		},
	})

	_, err := env.client.InitiateSignIn(context.Background(), "new@b.com", model.ChallengeEmailCode)
	require.ErrorIs(t, err, model.ErrIdentityNotFound)

	var providerErr *model.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, "UserNotFoundException", providerErr.Name)
	assert.Equal(t, "User does not exist.", providerErr.Message)
}

func TestClient_RegistrationWithAutoSignIn(t *testing.T) {
	var env *testEnv
	env = newTestEnv(t, map[string]fakeHandler{
		"SignUp": func(body map[string]any) (int, any) {
			assert.Equal(t, "new@b.com", body["Username"])
			assert.NotContains(t, body, "Password")
			attrs, _ := body["UserAttributes"].([]any)
			require.Len(t, attrs, 1)
			return http.StatusOK, map[string]any{
				"UserConfirmed": false,
				"UserSub":       "sub-new",
				"Session":       "signup-1",
				"CodeDeliveryDetails": map[string]string{
					"Destination":    "n***@b.com",
					"DeliveryMedium": "EMAIL",
					"AttributeName":  "email",
				},
			}
		},
		"ConfirmSignUp": func(body map[string]any) (int, any) {
			assert.Equal(t, "signup-1", body["Session"])
			assert.Equal(t, "654321", body["ConfirmationCode"])
			return http.StatusOK, map[string]any{"Session": "confirmed-1"}
		},
		"InitiateAuth": func(body map[string]any) (int, any) {
			assert.Equal(t, "USER_AUTH", body["AuthFlow"])
			assert.Equal(t, "confirmed-1", body["Session"])
			return http.StatusOK, env.authResult(t, "new@b.com")
		},
	})
	ctx := context.Background()

	signUp, err := env.client.Register(ctx, "new@b.com", map[string]string{"email": "new@b.com"})
	require.NoError(t, err)
	assert.Equal(t, model.NextStepConfirmSignUp, signUp.NextStep)
	assert.Equal(t, "n***@b.com", signUp.Destination)

	confirm, err := env.client.ConfirmRegistration(ctx, "new@b.com", "654321")
	require.NoError(t, err)
	assert.True(t, confirm.Complete)
	assert.Equal(t, model.NextStepCompleteAutoSignIn, confirm.NextStep)

	signIn, err := env.client.AutoSignInAfterRegistration(ctx)
	require.NoError(t, err)
	assert.True(t, signIn.SignedIn)

	session, err := env.client.GetCurrentSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new@b.com", session.Claims.Email)

	assert.Equal(t, []string{"SignUp", "ConfirmSignUp", "InitiateAuth"}, env.fake.operations())
}

func TestClient_AutoSignInWithoutSession(t *testing.T) {
	env := newTestEnv(t, map[string]fakeHandler{
		"ConfirmSignUp": func(map[string]any) (int, any) {
			return http.StatusOK, map[string]any{}
		},
	})
	ctx := context.Background()

	confirm, err := env.client.ConfirmRegistration(ctx, "new@b.com", "654321")
	require.NoError(t, err)
	assert.Equal(t, model.NextStepSignIn, confirm.NextStep)

	signIn, err := env.client.AutoSignInAfterRegistration(ctx)
	require.NoError(t, err)
	assert.False(t, signIn.SignedIn)
	assert.Equal(t, []string{"ConfirmSignUp"}, env.fake.operations())
}

func TestClient_ResendRegistrationCode(t *testing.T) {
	env := newTestEnv(t, map[string]fakeHandler{
		"ResendConfirmationCode": func(body map[string]any) (int, any) {
			assert.Equal(t, "new@b.com", body["Username"])
			return providerFailure("LimitExceededException", "Attempt limit exceeded, please try after some time.")
		},
	})

	err := env.client.ResendRegistrationCode(context.Background(), "new@b.com")
	var providerErr *model.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, "LimitExceededException", providerErr.Name)
}

func TestClient_GetCurrentSession(t *testing.T) {
	t.Run("no session", func(t *testing.T) {
		env := newTestEnv(t, nil)
		_, err := env.client.GetCurrentSession(context.Background())
		assert.ErrorIs(t, err, model.ErrNoSession)
	})

	t.Run("expired tokens are refreshed", func(t *testing.T) {
		var env *testEnv
		env = newTestEnv(t, map[string]fakeHandler{
			"InitiateAuth": func(body map[string]any) (int, any) {
				assert.Equal(t, "REFRESH_TOKEN_AUTH", body["AuthFlow"])
				assert.Equal(t, "refresh-old", param(body, "AuthParameters", "REFRESH_TOKEN"))
				out := env.authResult(t, "a@b.com")
				delete(out["AuthenticationResult"].(map[string]any), "RefreshToken")
				return http.StatusOK, out
			},
		})

		expired := (&oauth2.Token{
			AccessToken:  "access-old",
			RefreshToken: "refresh-old",
			Expiry:       time.Now().Add(-time.Minute),
		}).WithExtra(map[string]any{"id_token": "stale"})
		require.NoError(t, env.tokens.Save(expired))

		session, err := env.client.GetCurrentSession(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", session.Claims.Email)
		assert.Equal(t, "refresh-old", session.Credential.RefreshToken)

		stored, err := env.tokens.Load()
		require.NoError(t, err)
		assert.Equal(t, "access-a@b.com", stored.AccessToken)
		assert.Equal(t, "refresh-old", stored.RefreshToken)
	})

	t.Run("invalid identity token", func(t *testing.T) {
		env := newTestEnv(t, nil)
		valid := (&oauth2.Token{AccessToken: "access", Expiry: time.Now().Add(time.Hour)}).
			WithExtra(map[string]any{"id_token": "forged"})
		require.NoError(t, env.tokens.Save(valid))

		_, err := env.client.GetCurrentSession(context.Background())
		require.Error(t, err)
		assert.Empty(t, env.fake.operations())
	})
}

func TestClient_SignOut(t *testing.T) {
	env := newTestEnv(t, map[string]fakeHandler{
		"GlobalSignOut": func(body map[string]any) (int, any) {
			assert.Equal(t, "access", body["AccessToken"])
			return providerFailure("NotAuthorizedException", "Access Token has been revoked")
		},
	})
	require.NoError(t, env.tokens.Save(&oauth2.Token{AccessToken: "access"}))

	err := env.client.SignOut(context.Background())
	require.Error(t, err)

	stored, err := env.tokens.Load()
	require.NoError(t, err)
	assert.Nil(t, stored)

	require.NoError(t, env.client.SignOut(context.Background()))
	assert.Equal(t, []string{"GlobalSignOut"}, env.fake.operations())
}

func TestClient_SignOutDuringSignIn(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once

	var env *testEnv
	env = newTestEnv(t, map[string]fakeHandler{
		"InitiateAuth": func(map[string]any) (int, any) {
			return http.StatusOK, map[string]any{"ChallengeName": "EMAIL_OTP", "Session": "challenge-1"}
		},
		"RespondToAuthChallenge": func(map[string]any) (int, any) {
			once.Do(func() { close(started) })
			<-release
			return http.StatusOK, env.authResult(t, "a@b.com")
		},
	})
	ctx := context.Background()

	_, err := env.client.InitiateSignIn(ctx, "a@b.com", model.ChallengeEmailCode)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := env.client.ConfirmChallenge(ctx, "123456")
		done <- err
	}()

	<-started
	require.NoError(t, env.client.SignOut(ctx))
	close(release)

	err = <-done
	require.ErrorIs(t, err, model.ErrNoSession)

	stored, err := env.tokens.Load()
	require.NoError(t, err)
	assert.Nil(t, stored)

	_, err = env.client.GetCurrentSession(ctx)
	assert.ErrorIs(t, err, model.ErrNoSession)

	// A later sign-in is persisted again.
	_, err = env.client.InitiateSignIn(ctx, "a@b.com", model.ChallengeEmailCode)
	require.NoError(t, err)
	result, err := env.client.ConfirmChallenge(ctx, "123456")
	require.NoError(t, err)
	assert.True(t, result.SignedIn)

	stored, err = env.tokens.Load()
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "access-a@b.com", stored.AccessToken)
}

func TestClient_SignOutUnreadableTokens(t *testing.T) {
	env := newTestEnv(t, nil)
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewFileTokenStore(path)
	client := NewClient(Config{ClientID: "client-1", Endpoint: env.client.endpoint}, store,
		env.issuer, testutil.MakeNoopLogger(), WithHTTPClient(env.client.httpClient))

	require.NoError(t, client.SignOut(context.Background()))

	_, err := os.Stat(path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Empty(t, env.fake.operations())

	_, err = client.GetCurrentSession(context.Background())
	assert.ErrorIs(t, err, model.ErrNoSession)
}

func TestClient_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	endpoint := server.URL
	server.Close()

	client := NewClient(Config{ClientID: "client-1", Endpoint: endpoint}, NewMemoryTokenStore(),
		token.NewHMAC("secret", testIssuer), testutil.MakeNoopLogger())

	_, err := client.InitiateSignIn(context.Background(), "a@b.com", model.ChallengeEmailCode)
	var urlErr *url.Error
	require.True(t, errors.As(err, &urlErr))
}

func TestConfig_Endpoint(t *testing.T) {
	assert.Equal(t, "https://cognito-idp.eu-west-1.amazonaws.com/", Config{Region: "eu-west-1"}.endpoint())
	assert.Equal(t, "http://localhost:9229", Config{Region: "eu-west-1", Endpoint: "http://localhost:9229"}.endpoint())
}

func TestFileTokenStore(t *testing.T) {
	store := NewFileTokenStore(filepath.Join(t.TempDir(), "nested", "session.json"))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	credential := (&oauth2.Token{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", Expiry: expiry}).
		WithExtra(map[string]any{"id_token": "identity"})
	require.NoError(t, store.Save(credential))

	loaded, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "access", loaded.AccessToken)
	assert.Equal(t, "refresh", loaded.RefreshToken)
	assert.Equal(t, "identity", loaded.Extra("id_token"))
	assert.True(t, expiry.Equal(loaded.Expiry))

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	loaded, err = store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
