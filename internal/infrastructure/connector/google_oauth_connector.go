package connector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/users"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/config"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/logger"
)

// Google OAuth 2.0 endpoints
const (
	googleAuthEndpoint     = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenEndpoint    = "https://oauth2.googleapis.com/token"
	googleUserinfoEndpoint = "https://www.googleapis.com/oauth2/v1/userinfo"
)

// googleOAuthScope covers identity and email, enough to provision a wallet user.
const googleOAuthScope = "openid email profile"

type googleOAuthConnector struct {
	clientID     string
	clientSecret string
	redirectURI  string
	authURL      string
	tokenURL     string
	userinfoURL  string
	client       *http.Client
	logger       logger.Logger
}

// NewGoogleOAuthConnector creates a Google-backed OAuthConnector implementation
func NewGoogleOAuthConnector(settings *config.AuthSettings, logger logger.Logger) (users.OAuthConnector, error) {
	return &googleOAuthConnector{
		clientID:     settings.GoogleClientID,
		clientSecret: settings.GoogleClientSecret,
		redirectURI:  settings.GoogleRedirectURI,
		authURL:      googleAuthEndpoint,
		tokenURL:     googleTokenEndpoint,
		userinfoURL:  googleUserinfoEndpoint,
		client:       &http.Client{Timeout: 30 * time.Second},
		logger:       logger,
	}, nil
}

func (c *googleOAuthConnector) ConsentURL(state string) string {
	params := url.Values{}
	params.Set("response_type", "code")
	params.Set("client_id", c.clientID)
	params.Set("redirect_uri", c.redirectURI)
	params.Set("scope", googleOAuthScope)
	params.Set("state", state)

	return c.authURL + "?" + params.Encode()
}

func (c *googleOAuthConnector) ExchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("code", code)
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("redirect_uri", c.redirectURI)
	form.Set("grant_type", "authorization_code")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("token exchange request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("Token endpoint returned status ", resp.StatusCode)
		return "", users.ErrOAuthExchangeFailed
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	if payload.AccessToken == "" {
		return "", users.ErrOAuthExchangeFailed
	}

	return payload.AccessToken, nil
}

func (c *googleOAuthConnector) FetchProfile(ctx context.Context, accessToken string) (*users.GoogleProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userinfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("Userinfo endpoint returned status ", resp.StatusCode)
		return nil, users.ErrOAuthExchangeFailed
	}

	var payload struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo response: %w", err)
	}

	if payload.ID == "" || payload.Email == "" {
		return nil, users.ErrOAuthExchangeFailed
	}

	// Fall back to the email when Google returns no display name
	name := payload.Name
	if name == "" {
		name = payload.Email
	}

	return &users.GoogleProfile{
		GoogleID: payload.ID,
		Email:    payload.Email,
		Name:     name,
	}, nil
}
