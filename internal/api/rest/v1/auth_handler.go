package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/users"
)

// AuthHandler defines the interface for handling authentication operations
type AuthHandler interface {
	GoogleLogin(ctx *gin.Context)
	GoogleCallback(ctx *gin.Context)
	Refresh(ctx *gin.Context)
	Me(ctx *gin.Context)
}

// AuthHandler struct holds the services
type authHandler struct {
	authService  users.AuthService
	tokenService users.TokenService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService users.AuthService, tokenService users.TokenService) AuthHandler {
	return &authHandler{
		authService:  authService,
		tokenService: tokenService,
	}
}

// GoogleLogin handles the GET request that starts a Google sign-in
// @Summary Trigger Google Sign-In
// @Description Redirect the user to the Google OAuth consent screen with a single-use state parameter.
// @Tags Auth
// @Produce json
// @Success 302
// @Failure 500 {object} Response
// @Router /auth/google [get]
func (handler *authHandler) GoogleLogin(ctx *gin.Context) {
	redirectURL, err := handler.authService.LoginRedirectURL(ctx.Request.Context())
	if err != nil {
		respondFail(ctx, http.StatusInternalServerError, "Could not initiate Google login")
		return
	}

	ctx.Redirect(http.StatusFound, redirectURL)
}

// GoogleCallback handles the GET request Google redirects back to after consent
// @Summary Google Authentication Callback
// @Description Exchange the authorization code, create the user and wallet on first login, and return access and refresh tokens.
// @Tags Auth
// @Produce json
// @Param code query string true "Authorization code"
// @Param state query string true "Opaque state from the login redirect"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} Response
// @Failure 500 {object} Response
// @Router /auth/google/callback [get]
func (handler *authHandler) GoogleCallback(ctx *gin.Context) {
	code := ctx.Query("code")
	state := ctx.Query("state")

	result, err := handler.authService.CompleteLogin(ctx.Request.Context(), code, state)
	if err != nil {
		if errors.Is(err, users.ErrOAuthStateMismatch) || errors.Is(err, users.ErrOAuthExchangeFailed) {
			respondFail(ctx, http.StatusBadRequest, fmt.Sprintf("Authentication failed: %v", err))
			return
		}
		respondFail(ctx, http.StatusInternalServerError, "Authentication failed")
		return
	}

	respondAuth(ctx, http.StatusOK, "Login successful", result.AccessToken, result.RefreshToken, gin.H{
		"user": UserData{
			ID:    result.User.ID,
			Email: result.User.Email,
			Name:  result.User.Name,
		},
	})
}

// Refresh handles the POST request that exchanges a refresh token for a new access token
// @Summary Refresh Access Token
// @Description Mint a new access token from a valid refresh token. The refresh token itself is not rotated.
// @Tags Auth
// @Accept json
// @Produce json
// @Param requestBody body RefreshRequest true "Refresh token"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Router /auth/refresh [post]
func (handler *authHandler) Refresh(ctx *gin.Context) {
	var request RefreshRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondFail(ctx, http.StatusBadRequest, fmt.Sprintf("invalid refresh data: %v", err.Error()))
		return
	}

	if err := request.Validate(); err != nil {
		respondFail(ctx, http.StatusBadRequest, fmt.Sprintf("validation failed: %v", err.Error()))
		return
	}

	accessToken, err := handler.authService.RefreshAccessToken(ctx.Request.Context(), request.RefreshToken)
	if err != nil {
		respondFail(ctx, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}

	respondAuth(ctx, http.StatusOK, "Token refreshed successfully", accessToken, "", nil)
}

// Me handles the GET request for the authenticated user's profile
// @Summary Get Current User
// @Description Return the profile of the user identified by the Bearer access token.
// @Tags Auth
// @Produce json
// @Success 200 {object} ProfileResponse
// @Failure 401 {object} Response
// @Router /auth/me [get]
func (handler *authHandler) Me(ctx *gin.Context) {
	user := handler.currentUser(ctx)
	if user == nil {
		ctx.Header("WWW-Authenticate", "Bearer")
		respondFail(ctx, http.StatusUnauthorized, "Invalid or missing authentication token")
		return
	}

	ctx.JSON(http.StatusOK, ProfileResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		GoogleID:  user.GoogleID,
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// currentUser resolves the Bearer token to a stored user, or nil when the
// token is missing, invalid or references a deleted account.
func (handler *authHandler) currentUser(ctx *gin.Context) *users.User {
	header := ctx.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil
	}

	claims, err := handler.tokenService.VerifyAccessToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return nil
	}

	user, err := handler.authService.GetProfile(ctx.Request.Context(), claims.UserID)
	if err != nil {
		return nil
	}
	return user
}
