// cmd/wallet-rest-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CAFxX/httpcompression"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/api/rest/middleware"
	v1 "github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/api/rest/v1"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/app"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/apikeys"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/users"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/wallets"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/infrastructure/cache"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/infrastructure/connector"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/infrastructure/persistence"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/infrastructure/persistence/models"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/config"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/logger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// openAPIRoute serves the API contract; the root endpoint points clients here.
const openAPIRoute = "/api/v1/openapi.yaml"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = config.DefaultConfigPath
	}

	settings, err := config.LoadAppSettings(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&settings.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize application dependencies
	deps, err := initializeDependencies(settings, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(settings, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	services *appServices
	limiter  middleware.RateLimiter
	db       *gorm.DB
	redis    *redis.Client
}

type appServices struct {
	auth    users.AuthService
	token   users.TokenService
	apiKeys apikeys.APIKeyService
	wallet  wallets.WalletService
	deposit wallets.DepositService
	webhook wallets.WebhookService
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.AppSettings, log logger.Logger) (*appDependencies, error) {
	// Initialize database
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	// Run migrations
	if err := db.AutoMigrate(
		&models.UserModel{},
		&models.WalletModel{},
		&models.TransactionModel{},
		&models.APIKeyModel{},
		&models.RefreshTokenModel{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.Info("Database migrations completed successfully")

	// Initialize repositories
	userRepo, err := persistence.NewGormUserRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create user repository: %w", err)
	}

	walletRepo, err := persistence.NewGormWalletRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create wallet repository: %w", err)
	}

	transactionRepo, err := persistence.NewGormTransactionRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction repository: %w", err)
	}

	apiKeyRepo, err := persistence.NewGormAPIKeyRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create api key repository: %w", err)
	}

	refreshTokenRepo, err := persistence.NewGormRefreshTokenRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh token repository: %w", err)
	}

	// Initialize Redis-backed components. Without Redis the limiter stays nil
	// (rate-limited routes pass everything through) and OAuth state is not
	// validated on callback.
	var redisClient *redis.Client
	var limiter middleware.RateLimiter
	var stateStore users.StateStore
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(&cfg.Redis, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis client: %w", err)
		}

		fixedWindowLimiter, err := cache.NewFixedWindowLimiter(redisClient, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create rate limiter: %w", err)
		}
		limiter = fixedWindowLimiter

		stateStore, err = cache.NewRedisStateStore(redisClient, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create oauth state store: %w", err)
		}
	} else {
		log.Warn("Redis is disabled. Rate limiting and OAuth state validation are off")
	}

	// Initialize connectors
	oauthConnector, err := connector.NewGoogleOAuthConnector(&cfg.Auth, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google OAuth connector: %w", err)
	}

	paymentGateway, err := connector.NewPaystackConnector(&cfg.Paystack, cfg.Server.BaseURL, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create Paystack connector: %w", err)
	}
	log.Info("Connectors initialized successfully")

	// Initialize services
	services, err := initializeApplicationServices(
		cfg, oauthConnector, paymentGateway, stateStore,
		userRepo, walletRepo, transactionRepo, apiKeyRepo, refreshTokenRepo,
		log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &appDependencies{
		services: services,
		limiter:  limiter,
		db:       db,
		redis:    redisClient,
	}, nil
}

// initializeApplicationServices sets up all application services
func initializeApplicationServices(
	cfg *config.AppSettings,
	oauthConnector users.OAuthConnector,
	paymentGateway wallets.PaymentGateway,
	stateStore users.StateStore,
	userRepo users.UserRepository,
	walletRepo wallets.WalletRepository,
	transactionRepo wallets.TransactionRepository,
	apiKeyRepo apikeys.APIKeyRepository,
	refreshTokenRepo users.RefreshTokenRepository,
	log logger.Logger,
) (*appServices, error) {
	tokenService, err := app.NewTokenService(&cfg.Auth, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	authService, err := app.NewAuthService(
		oauthConnector, tokenService, stateStore,
		userRepo, refreshTokenRepo, walletRepo,
		&cfg.Auth, log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	apiKeyService, err := app.NewAPIKeyService(apiKeyRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create api key service: %w", err)
	}

	walletService, err := app.NewWalletService(walletRepo, transactionRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create wallet service: %w", err)
	}

	depositService, err := app.NewDepositService(walletRepo, transactionRepo, paymentGateway, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create deposit service: %w", err)
	}

	webhookService, err := app.NewWebhookService(paymentGateway, walletRepo, transactionRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &appServices{
		auth:    authService,
		token:   tokenService,
		apiKeys: apiKeyService,
		wallet:  walletService,
		deposit: depositService,
		webhook: webhookService,
	}, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.AppSettings, deps *appDependencies, log logger.Logger) error {
	// Setup router. Request logging happens in the correlation middleware.
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CorrelationID(log))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.Metrics())

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-Key", "X-Correlation-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "X-Correlation-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup API routes
	v1.SetupRoutes(r,
		deps.services.auth,
		deps.services.token,
		deps.services.apiKeys,
		deps.services.wallet,
		deps.services.deposit,
		deps.services.webhook,
		deps.limiter,
		cfg.Server.AppVersion,
		openAPIRoute,
		log,
	)

	// Serve OpenAPI spec (replaces Swagger)
	r.GET(openAPIRoute, func(c *gin.Context) {
		c.File("./api/openapi/v1/wallet-service.yaml")
	})

	// Compress responses where clients accept it
	compress, err := httpcompression.DefaultAdapter()
	if err != nil {
		return fmt.Errorf("failed to create compression adapter: %w", err)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           compress(r),
		ReadHeaderTimeout: time.Duration(cfg.Server.ReadHeaderTimeoutSecs) * time.Second, // Prevent Slowloris attack
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server on port ", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal %v, initiating graceful shutdown", sig)
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutSecs)*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	if deps.redis != nil {
		if err := cache.CloseRedis(deps.redis); err != nil {
			log.Error("Failed to close redis connection: ", err)
		}
	}
	if err := persistence.CloseDB(deps.db); err != nil {
		log.Error("Failed to close database connection: ", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
