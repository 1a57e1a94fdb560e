package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/api/rest/middleware"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/apikeys"
)

// defaultKeyListLimit caps key listings when no limit is given.
const defaultKeyListLimit = 20

// KeyHandler defines the interface for handling API key operations
type KeyHandler interface {
	Create(ctx *gin.Context)
	Rollover(ctx *gin.Context)
	List(ctx *gin.Context)
	Revoke(ctx *gin.Context)
}

// KeyHandler struct holds the services
type keyHandler struct {
	apiKeyService apikeys.APIKeyService
}

// NewKeyHandler creates a new KeyHandler
func NewKeyHandler(apiKeyService apikeys.APIKeyService) KeyHandler {
	return &keyHandler{
		apiKeyService: apiKeyService,
	}
}

// Create handles the POST request to issue a new API key
// @Summary Create API key
// @Description Issue a new API key for the authenticated user. The plaintext key is returned once and never again. At most 5 active keys per user.
// @Tags API Keys
// @Accept json
// @Produce json
// @Param requestBody body CreateAPIKeyRequest true "API Key Data"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Failure 500 {object} Response
// @Router /keys/create [post]
func (handler *keyHandler) Create(ctx *gin.Context) {
	var request CreateAPIKeyRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondFail(ctx, http.StatusBadRequest, fmt.Sprintf("invalid key data: %v", err.Error()))
		return
	}

	if err := request.Validate(); err != nil {
		respondFail(ctx, http.StatusBadRequest, fmt.Sprintf("validation failed: %v", err.Error()))
		return
	}

	userID := ctx.GetString(middleware.ContextUserIDKey)

	issued, err := handler.apiKeyService.Create(ctx.Request.Context(), userID, apikeys.CreateParams{
		Name:        request.Name,
		Permissions: request.Permissions,
		Expiry:      request.Expiry,
	})
	if err != nil {
		if errors.Is(err, apikeys.ErrTooManyActiveKeys) {
			respondFail(ctx, http.StatusBadRequest, "Maximum of 5 active API keys allowed per user")
			return
		}
		respondFail(ctx, http.StatusInternalServerError, fmt.Sprintf("Failed to create API key: %v", err))
		return
	}

	respondSuccess(ctx, http.StatusCreated, "API key created successfully", CreatedAPIKeyData{
		KeyID:       issued.Key.ID,
		APIKey:      issued.PlainKey,
		ExpiresAt:   issued.Key.ExpiresAt.UTC().Format(time.RFC3339),
		Name:        issued.Key.Name,
		Permissions: issued.Key.Permissions,
	})
}

// Rollover handles the POST request to replace an expired API key
// @Summary Rollover API key
// @Description Replace an expired API key with a fresh one carrying the same name and permissions.
// @Tags API Keys
// @Accept json
// @Produce json
// @Param requestBody body RolloverAPIKeyRequest true "Rollover Data"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /keys/rollover [post]
func (handler *keyHandler) Rollover(ctx *gin.Context) {
	var request RolloverAPIKeyRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondFail(ctx, http.StatusBadRequest, fmt.Sprintf("invalid rollover data: %v", err.Error()))
		return
	}

	if err := request.Validate(); err != nil {
		respondFail(ctx, http.StatusBadRequest, fmt.Sprintf("validation failed: %v", err.Error()))
		return
	}

	userID := ctx.GetString(middleware.ContextUserIDKey)

	issued, err := handler.apiKeyService.Rollover(ctx.Request.Context(), userID, request.ExpiredKeyID, request.Expiry)
	if err != nil {
		if errors.Is(err, apikeys.ErrAPIKeyNotFound) {
			respondFail(ctx, http.StatusNotFound, "API key not found or not owned by user")
			return
		}
		if errors.Is(err, apikeys.ErrAPIKeyNotExpired) {
			respondFail(ctx, http.StatusNotFound, "API key is not expired yet")
			return
		}
		respondFail(ctx, http.StatusInternalServerError, fmt.Sprintf("Failed to rollover API key: %v", err))
		return
	}

	respondSuccess(ctx, http.StatusOK, "API key rolled over successfully", CreatedAPIKeyData{
		KeyID:       issued.Key.ID,
		APIKey:      issued.PlainKey,
		ExpiresAt:   issued.Key.ExpiresAt.UTC().Format(time.RFC3339),
		Name:        issued.Key.Name,
		Permissions: issued.Key.Permissions,
	})
}

// List handles the GET request to list the caller's API keys
// @Summary List API keys
// @Description Fetch the authenticated user's API keys, newest first. Plaintext keys are never included.
// @Tags API Keys
// @Produce json
// @Param limit query int false "Maximum number of keys (1-20, default 20)"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Router /keys [get]
func (handler *keyHandler) List(ctx *gin.Context) {
	limit := defaultKeyListLimit
	if rawLimit := ctx.Query("limit"); len(rawLimit) > 0 {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil {
			respondFail(ctx, http.StatusBadRequest, fmt.Sprintf("invalid limit: %v", rawLimit))
			return
		}
		limit = parsed
	}

	query := &apikeys.APIKeyQuery{Limit: limit}
	if err := query.Validate(); err != nil {
		respondFail(ctx, http.StatusBadRequest, fmt.Sprintf("validation failed: %v", err.Error()))
		return
	}

	userID := ctx.GetString(middleware.ContextUserIDKey)

	keys, err := handler.apiKeyService.List(ctx.Request.Context(), userID, limit)
	if err != nil {
		respondFail(ctx, http.StatusInternalServerError, fmt.Sprintf("Failed to list API keys: %v", err))
		return
	}

	now := time.Now().UTC()
	keysData := make([]APIKeyItemData, 0, len(keys))
	for _, key := range keys {
		keysData = append(keysData, APIKeyItemData{
			ID:          key.ID,
			Name:        key.Name,
			Permissions: key.Permissions,
			CreatedAt:   key.CreatedAt.UTC().Format(time.RFC3339),
			ExpiresAt:   key.ExpiresAt.UTC().Format(time.RFC3339),
			IsValid:     key.IsValid(now),
		})
	}

	respondSuccess(ctx, http.StatusOK, fmt.Sprintf("Retrieved %d API key(s)", len(keysData)), APIKeyListData{
		Keys:  keysData,
		Count: len(keysData),
	})
}

// Revoke handles the POST request to revoke an API key
// @Summary Revoke API key
// @Description Invalidate an API key immediately. Revoking an already revoked key succeeds without change.
// @Tags API Keys
// @Accept json
// @Produce json
// @Param requestBody body RevokeAPIKeyRequest true "Revoke Data"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /keys/revoke [post]
func (handler *keyHandler) Revoke(ctx *gin.Context) {
	var request RevokeAPIKeyRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondFail(ctx, http.StatusBadRequest, fmt.Sprintf("invalid revoke data: %v", err.Error()))
		return
	}

	if err := request.Validate(); err != nil {
		respondFail(ctx, http.StatusBadRequest, fmt.Sprintf("validation failed: %v", err.Error()))
		return
	}

	userID := ctx.GetString(middleware.ContextUserIDKey)

	if err := handler.apiKeyService.Revoke(ctx.Request.Context(), userID, request.KeyID); err != nil {
		if errors.Is(err, apikeys.ErrAPIKeyNotFound) {
			respondFail(ctx, http.StatusNotFound, "API key not found or not owned by user")
			return
		}
		respondFail(ctx, http.StatusInternalServerError, fmt.Sprintf("Failed to revoke API key: %v", err))
		return
	}

	respondSuccess(ctx, http.StatusOK, "API key revoked successfully", nil)
}
