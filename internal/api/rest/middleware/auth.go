// Package middleware provides the gin middleware chain of the wallet API:
// authentication, permission checks, rate limiting, correlation IDs,
// security headers and Prometheus instrumentation.
package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/apikeys"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/users"
)

// Context keys set by the authentication middleware.
const (
	ContextUserIDKey    = "auth_user_id"
	ContextUserEmailKey = "auth_user_email"
	ContextAPIKeyKey    = "auth_api_key"
)

// APIKeyHeader carries the plaintext API key of machine callers.
const APIKeyHeader = "X-API-Key"

const bearerPrefix = "Bearer "

// abortWithFail terminates the request with a fail envelope.
func abortWithFail(ctx *gin.Context, statusCode int, message string) {
	ctx.AbortWithStatusJSON(statusCode, gin.H{
		"status":      "fail",
		"status_code": statusCode,
		"message":     message,
	})
}

// Authenticate accepts either a Bearer access token or an API key. JWT
// callers carry every permission; API key callers are additionally
// subject to RequirePermissions checks downstream.
func Authenticate(tokenService users.TokenService, apiKeyService apikeys.APIKeyService, authService users.AuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if user, ok := userFromBearerToken(ctx, tokenService, authService); ok {
			ctx.Set(ContextUserIDKey, user.ID)
			ctx.Set(ContextUserEmailKey, user.Email)
			ctx.Next()
			return
		}

		if user, key, ok := userFromAPIKey(ctx, apiKeyService, authService); ok {
			ctx.Set(ContextUserIDKey, user.ID)
			ctx.Set(ContextUserEmailKey, user.Email)
			ctx.Set(ContextAPIKeyKey, key)
			ctx.Next()
			return
		}

		ctx.Header("WWW-Authenticate", "Bearer")
		abortWithFail(ctx, http.StatusUnauthorized, "Invalid or missing authentication credentials")
	}
}

// RequireJWT only accepts Bearer access tokens. API keys must not be able
// to mint or revoke other keys.
func RequireJWT(tokenService users.TokenService, authService users.AuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := userFromBearerToken(ctx, tokenService, authService)
		if !ok {
			ctx.Header("WWW-Authenticate", "Bearer")
			abortWithFail(ctx, http.StatusUnauthorized,
				"JWT authentication required for API key management. Please login with Google OAuth.")
			return
		}

		ctx.Set(ContextUserIDKey, user.ID)
		ctx.Set(ContextUserEmailKey, user.Email)
		ctx.Next()
	}
}

// RequirePermissions enforces API key permissions. JWT callers pass
// unconditionally.
func RequirePermissions(permissions ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		value, exists := ctx.Get(ContextAPIKeyKey)
		if !exists {
			ctx.Next()
			return
		}

		key := value.(*apikeys.APIKey)
		for _, permission := range permissions {
			if !key.HasPermission(permission) {
				abortWithFail(ctx, http.StatusForbidden,
					fmt.Sprintf("API key missing required permission: %s", permission))
				return
			}
		}
		ctx.Next()
	}
}

func userFromBearerToken(ctx *gin.Context, tokenService users.TokenService, authService users.AuthService) (*users.User, bool) {
	header := ctx.GetHeader("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return nil, false
	}

	claims, err := tokenService.VerifyAccessToken(strings.TrimPrefix(header, bearerPrefix))
	if err != nil {
		return nil, false
	}

	user, err := authService.GetProfile(ctx.Request.Context(), claims.UserID)
	if err != nil {
		return nil, false
	}
	return user, true
}

func userFromAPIKey(ctx *gin.Context, apiKeyService apikeys.APIKeyService, authService users.AuthService) (*users.User, *apikeys.APIKey, bool) {
	plainKey := ctx.GetHeader(APIKeyHeader)
	if plainKey == "" {
		return nil, nil, false
	}

	key, err := apiKeyService.Validate(ctx.Request.Context(), plainKey)
	if err != nil {
		return nil, nil, false
	}

	user, err := authService.GetProfile(ctx.Request.Context(), key.UserID)
	if err != nil {
		return nil, nil, false
	}
	return user, key, true
}
