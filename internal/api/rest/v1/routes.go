package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/api/rest/middleware"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/apikeys"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/users"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/wallets"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/logger"
)

// Rate limits copied from the service's published API contract.
const (
	keyCreateLimit  = 3
	keyCreateWindow = time.Hour
	depositLimit    = 5
	depositWindow   = time.Minute
)

// SetupRoutes sets up all the API routes for version 1 together with the
// unversioned service endpoints. A nil limiter disables rate limiting.
func SetupRoutes(r *gin.Engine,
	authService users.AuthService,
	tokenService users.TokenService,
	apiKeyService apikeys.APIKeyService,
	walletService wallets.WalletService,
	depositService wallets.DepositService,
	webhookService wallets.WebhookService,
	limiter middleware.RateLimiter,
	version string,
	docsPath string,
	logger logger.Logger) {

	// Service Routes
	systemHandler := NewSystemHandler(version, docsPath)
	r.GET("/", systemHandler.Root)
	r.GET("/health", systemHandler.Health)
	r.GET("/metrics", middleware.MetricsHandler())

	v1 := r.Group(BasePath) // lookup in version file

	// Auth Routes
	authHandler := NewAuthHandler(authService, tokenService)
	v1.GET("/auth/google", authHandler.GoogleLogin)
	v1.GET("/auth/google/callback", authHandler.GoogleCallback)
	v1.POST("/auth/refresh", authHandler.Refresh)
	v1.GET("/auth/me", authHandler.Me)

	// API Key Routes (JWT sessions only; keys cannot manage keys)
	requireJWT := middleware.RequireJWT(tokenService, authService)
	keyHandler := NewKeyHandler(apiKeyService)
	v1.POST("/keys/create", requireJWT, middleware.RateLimit(limiter, keyCreateLimit, keyCreateWindow, logger), keyHandler.Create)
	v1.POST("/keys/rollover", requireJWT, keyHandler.Rollover)
	v1.GET("/keys", requireJWT, keyHandler.List)
	v1.POST("/keys/revoke", requireJWT, keyHandler.Revoke)

	// Wallet Routes
	authenticate := middleware.Authenticate(tokenService, apiKeyService, authService)
	walletHandler := NewWalletHandler(walletService, depositService, webhookService)
	v1.GET("/wallet/balance", authenticate, middleware.RequirePermissions(apikeys.PermissionRead), walletHandler.Balance)
	v1.POST("/wallet/deposit", authenticate, middleware.RequirePermissions(apikeys.PermissionDeposit), middleware.RateLimit(limiter, depositLimit, depositWindow, logger), walletHandler.Deposit)
	v1.GET("/wallet/payment/callback", walletHandler.PaymentCallback)
	v1.GET("/wallet/deposit/:reference/status", authenticate, middleware.RequirePermissions(apikeys.PermissionRead), walletHandler.DepositStatus)
	v1.POST("/wallet/transfer", authenticate, middleware.RequirePermissions(apikeys.PermissionTransfer), walletHandler.Transfer)
	v1.GET("/wallet/transactions", authenticate, middleware.RequirePermissions(apikeys.PermissionRead), walletHandler.Transactions)
	v1.POST("/wallet/paystack/webhook", walletHandler.Webhook)
}
