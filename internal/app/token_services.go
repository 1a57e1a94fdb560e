package app

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/users"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/config"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/logger"
)

// accessTokenClaims is the JWT payload of an access token. The user ID
// travels in the registered subject claim.
type accessTokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// tokenService implements the TokenService interface for signed access tokens
type tokenService struct {
	secret []byte
	expiry time.Duration
	logger logger.Logger
}

// NewTokenService creates a new instance of TokenService
func NewTokenService(settings *config.AuthSettings, logger logger.Logger) (users.TokenService, error) {
	if settings == nil || settings.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret must be configured")
	}

	return &tokenService{
		secret: []byte(settings.JWTSecret),
		expiry: time.Duration(settings.AccessTokenExpireMinutes) * time.Minute,
		logger: logger,
	}, nil
}

// IssueAccessToken returns a signed HS256 token carrying the user's ID and email.
func (s *tokenService) IssueAccessToken(user *users.User) (string, error) {
	if user == nil {
		return "", fmt.Errorf("user must not be nil")
	}

	now := time.Now().UTC()
	claims := &accessTokenClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return signed, nil
}

// VerifyAccessToken parses and validates a token, returning its claims.
func (s *tokenService) VerifyAccessToken(tokenString string) (*users.AccessClaims, error) {
	claims := &accessTokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("failed to verify access token: %w", err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("access token carries no subject")
	}

	return &users.AccessClaims{
		UserID: claims.Subject,
		Email:  claims.Email,
	}, nil
}
