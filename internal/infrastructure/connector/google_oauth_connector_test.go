//go:build unit
// +build unit

package connector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/users"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGoogleConnector(t *testing.T, tokenURL, userinfoURL string) *googleOAuthConnector {
	t.Helper()

	return &googleOAuthConnector{
		clientID:     "client-id",
		clientSecret: "client-secret",
		redirectURI:  "http://localhost:8000/api/v1/auth/google/callback",
		authURL:      googleAuthEndpoint,
		tokenURL:     tokenURL,
		userinfoURL:  userinfoURL,
		client:       &http.Client{Timeout: 5 * time.Second},
		logger:       testutil.SetupTestLogger(t),
	}
}

func TestGoogleOAuthConnector_ConsentURL(t *testing.T) {
	connector := newTestGoogleConnector(t, "http://unused", "http://unused")

	consentURL := connector.ConsentURL("state-123")

	parsed, err := url.Parse(consentURL)
	require.NoError(t, err)
	assert.Equal(t, "accounts.google.com", parsed.Host)
	assert.Equal(t, "code", parsed.Query().Get("response_type"))
	assert.Equal(t, "client-id", parsed.Query().Get("client_id"))
	assert.Equal(t, "openid email profile", parsed.Query().Get("scope"))
	assert.Equal(t, "state-123", parsed.Query().Get("state"))
}

func TestGoogleOAuthConnector_ExchangeCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "auth-code", r.PostForm.Get("code"))
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "client-secret", r.PostForm.Get("client_secret"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token": "ya29.token", "token_type": "Bearer"}`))
	}))
	defer server.Close()

	connector := newTestGoogleConnector(t, server.URL, "http://unused")

	token, err := connector.ExchangeCode(context.Background(), "auth-code")
	require.NoError(t, err)
	assert.Equal(t, "ya29.token", token)
}

func TestGoogleOAuthConnector_ExchangeCode_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	connector := newTestGoogleConnector(t, server.URL, "http://unused")

	_, err := connector.ExchangeCode(context.Background(), "bad-code")
	assert.ErrorIs(t, err, users.ErrOAuthExchangeFailed)
}

func TestGoogleOAuthConnector_ExchangeCode_EmptyToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	connector := newTestGoogleConnector(t, server.URL, "http://unused")

	_, err := connector.ExchangeCode(context.Background(), "auth-code")
	assert.ErrorIs(t, err, users.ErrOAuthExchangeFailed)
}

func TestGoogleOAuthConnector_FetchProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer ya29.token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "108201234567890123456", "email": "ada@example.com", "name": "Ada Obi"}`))
	}))
	defer server.Close()

	connector := newTestGoogleConnector(t, "http://unused", server.URL)

	profile, err := connector.FetchProfile(context.Background(), "ya29.token")
	require.NoError(t, err)
	assert.Equal(t, "108201234567890123456", profile.GoogleID)
	assert.Equal(t, "ada@example.com", profile.Email)
	assert.Equal(t, "Ada Obi", profile.Name)
}

func TestGoogleOAuthConnector_FetchProfile_NameFallsBackToEmail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "108201234567890123456", "email": "ada@example.com"}`))
	}))
	defer server.Close()

	connector := newTestGoogleConnector(t, "http://unused", server.URL)

	profile, err := connector.FetchProfile(context.Background(), "ya29.token")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", profile.Name)
}

func TestGoogleOAuthConnector_FetchProfile_MissingIdentity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name": "Ada Obi"}`))
	}))
	defer server.Close()

	connector := newTestGoogleConnector(t, "http://unused", server.URL)

	_, err := connector.FetchProfile(context.Background(), "ya29.token")
	assert.ErrorIs(t, err, users.ErrOAuthExchangeFailed)
}
