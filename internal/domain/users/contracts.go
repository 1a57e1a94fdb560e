package users

import (
	"context"
	"time"
)

// GoogleProfile carries the identity fields fetched from Google's userinfo endpoint.
type GoogleProfile struct {
	GoogleID string
	Email    string
	Name     string
}

// AccessClaims are the verified claims of an access token.
type AccessClaims struct {
	UserID string
	Email  string
}

// LoginResult is returned after a completed Google sign-in.
type LoginResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
}

// AuthService defines the Google sign-in and session token operations.
type AuthService interface {
	// LoginRedirectURL returns the Google consent URL for a new sign-in attempt.
	// The embedded state parameter is persisted for later validation when a
	// state store is configured.
	LoginRedirectURL(ctx context.Context) (string, error)

	// CompleteLogin exchanges the authorization code, loads or creates the user
	// together with their wallet, and returns fresh access and refresh tokens.
	CompleteLogin(ctx context.Context, code, state string) (*LoginResult, error)

	// RefreshAccessToken validates an opaque refresh token and mints a new
	// access token. The refresh token itself is not rotated.
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)

	// GetProfile retrieves the profile of an authenticated user by ID.
	GetProfile(ctx context.Context, userID string) (*User, error)
}

// TokenService mints and verifies signed access tokens.
type TokenService interface {
	// IssueAccessToken returns a signed token carrying the user's ID and email.
	IssueAccessToken(user *User) (string, error)

	// VerifyAccessToken parses and validates a token, returning its claims.
	VerifyAccessToken(token string) (*AccessClaims, error)
}

// OAuthConnector is an interface for the Google OAuth endpoints.
type OAuthConnector interface {
	// ConsentURL builds the authorization URL the user is redirected to.
	ConsentURL(state string) string

	// ExchangeCode swaps an authorization code for a Google access token.
	ExchangeCode(ctx context.Context, code string) (string, error)

	// FetchProfile loads the user's identity with a Google access token.
	FetchProfile(ctx context.Context, accessToken string) (*GoogleProfile, error)
}

// StateStore persists short-lived OAuth state values between the redirect
// to Google and the callback.
type StateStore interface {
	// Put stores a state value with a time-to-live.
	Put(ctx context.Context, state string, ttl time.Duration) error

	// Take consumes a state value, reporting whether it was present.
	Take(ctx context.Context, state string) (bool, error)
}

// UserRepository defines the interface for User-related persistence
type UserRepository interface {
	// Create adds a new User to the database
	Create(ctx context.Context, user *User) error
	// GetByID retrieves a User from the database by ID
	GetByID(ctx context.Context, userID string) (*User, error)
	// GetByGoogleID retrieves a User from the database by their Google subject ID
	GetByGoogleID(ctx context.Context, googleID string) (*User, error)
}

// RefreshTokenRepository defines the interface for RefreshToken persistence
type RefreshTokenRepository interface {
	// Create adds a new RefreshToken to the database
	Create(ctx context.Context, token *RefreshToken) error
	// GetByHash retrieves a RefreshToken by the digest of its plaintext
	GetByHash(ctx context.Context, tokenHash string) (*RefreshToken, error)
	// RevokeByID marks a RefreshToken as revoked
	RevokeByID(ctx context.Context, tokenID string) error
}
