package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/api/rest/middleware"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/wallets"
)

// defaultHistoryLimit caps transaction history listings when no limit is given.
const defaultHistoryLimit = 50

// webhookSignatureHeader carries the gateway's HMAC over the raw body.
const webhookSignatureHeader = "x-paystack-signature"

// WalletHandler defines the interface for handling wallet operations
type WalletHandler interface {
	Balance(ctx *gin.Context)
	Deposit(ctx *gin.Context)
	PaymentCallback(ctx *gin.Context)
	DepositStatus(ctx *gin.Context)
	Transfer(ctx *gin.Context)
	Transactions(ctx *gin.Context)
	Webhook(ctx *gin.Context)
}

// WalletHandler struct holds the services
type walletHandler struct {
	walletService  wallets.WalletService
	depositService wallets.DepositService
	webhookService wallets.WebhookService
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(walletService wallets.WalletService, depositService wallets.DepositService, webhookService wallets.WebhookService) WalletHandler {
	return &walletHandler{
		walletService:  walletService,
		depositService: depositService,
		webhookService: webhookService,
	}
}

// webhookPayload mirrors the gateway's notification body. Paystack has sent
// the event timestamp under both created_at and createdAt.
type webhookPayload struct {
	Event string `json:"event"`
	Data  struct {
		Reference    string `json:"reference"`
		CreatedAt    string `json:"created_at"`
		CreatedAtAlt string `json:"createdAt"`
	} `json:"data"`
}

// Balance handles the GET request for the caller's wallet balance
// @Summary Get wallet balance
// @Description Fetch the authenticated user's wallet number and current balance. Requires the read permission.
// @Tags Wallet
// @Produce json
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /wallet/balance [get]
func (handler *walletHandler) Balance(ctx *gin.Context) {
	userID := ctx.GetString(middleware.ContextUserIDKey)

	wallet, err := handler.walletService.GetBalance(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, wallets.ErrWalletNotFound) {
			respondFail(ctx, http.StatusNotFound, "Wallet not found")
			return
		}
		respondFail(ctx, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve balance: %v", err))
		return
	}

	respondSuccess(ctx, http.StatusOK, "Balance retrieved successfully", BalanceData{
		WalletNumber: wallet.WalletNumber,
		Balance:      wallet.Balance.StringFixed(2),
	})
}

// Deposit handles the POST request that starts a gateway deposit
// @Summary Initialize deposit
// @Description Register a pending deposit with the payment gateway and return the checkout URL. Requires the deposit permission.
// @Tags Wallet
// @Accept json
// @Produce json
// @Param requestBody body DepositRequest true "Deposit Data"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Failure 502 {object} Response
// @Router /wallet/deposit [post]
func (handler *walletHandler) Deposit(ctx *gin.Context) {
	var request DepositRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondFail(ctx, http.StatusBadRequest, fmt.Sprintf("invalid deposit data: %v", err.Error()))
		return
	}

	if err := request.Validate(); err != nil {
		respondFail(ctx, http.StatusBadRequest, fmt.Sprintf("validation failed: %v", err.Error()))
		return
	}

	userID := ctx.GetString(middleware.ContextUserIDKey)
	email := ctx.GetString(middleware.ContextUserEmailKey)

	deposit, err := handler.depositService.Initiate(ctx.Request.Context(), userID, email, request.Amount)
	if err != nil {
		if errors.Is(err, wallets.ErrWalletNotFound) {
			respondFail(ctx, http.StatusNotFound, "Wallet not found")
			return
		}
		if errors.Is(err, wallets.ErrPaymentGatewayFailed) {
			respondFail(ctx, http.StatusBadGateway, fmt.Sprintf("Failed to initialize payment: %v", err))
			return
		}
		respondFail(ctx, http.StatusInternalServerError, fmt.Sprintf("Failed to initialize payment: %v", err))
		return
	}

	respondSuccess(ctx, http.StatusOK, "Deposit initialized successfully", DepositData{
		Reference:        deposit.Reference,
		AuthorizationURL: deposit.AuthorizationURL,
	})
}

// PaymentCallback handles the GET request the gateway redirects payers to.
// Crediting happens through the webhook; this endpoint never mutates state.
// @Summary Payment redirect landing
// @Description Informational landing page after gateway checkout. The wallet is credited by the webhook, not here.
// @Tags Wallet
// @Produce json
// @Param reference query string false "Transaction reference"
// @Param trxref query string false "Transaction reference (gateway alias)"
// @Success 200 {object} Response
// @Router /wallet/payment/callback [get]
func (handler *walletHandler) PaymentCallback(ctx *gin.Context) {
	reference := ctx.Query("reference")
	if reference == "" {
		reference = ctx.Query("trxref")
	}

	if reference == "" {
		respondSuccess(ctx, http.StatusOK, "Payment processing", gin.H{"status": "processing"})
		return
	}

	respondSuccess(ctx, http.StatusOK, "Payment received. Check wallet balance or transaction history.", gin.H{
		"reference": reference,
		"status":    "completed",
		"note":      "Funds will be credited within seconds via webhook",
	})
}

// DepositStatus handles the GET request for a deposit's current state
// @Summary Get deposit status
// @Description Fetch the status of a deposit by reference, scoped to the caller's own wallet. Requires the read permission.
// @Tags Wallet
// @Produce json
// @Param reference path string true "Transaction reference"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /wallet/deposit/{reference}/status [get]
func (handler *walletHandler) DepositStatus(ctx *gin.Context) {
	reference := ctx.Param("reference")
	userID := ctx.GetString(middleware.ContextUserIDKey)

	transaction, err := handler.depositService.GetStatus(ctx.Request.Context(), userID, reference)
	if err != nil {
		if errors.Is(err, wallets.ErrTransactionNotFound) || errors.Is(err, wallets.ErrWalletNotFound) {
			respondFail(ctx, http.StatusNotFound, "Transaction not found")
			return
		}
		respondFail(ctx, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve deposit status: %v", err))
		return
	}

	respondSuccess(ctx, http.StatusOK, "Deposit status retrieved", DepositStatusData{
		Reference: transaction.Reference,
		Status:    transaction.Status,
		Amount:    transaction.Amount.StringFixed(2),
	})
}

// Transfer handles the POST request that moves funds between wallets
// @Summary Transfer funds
// @Description Move funds from the caller's wallet to another wallet atomically. Requires the transfer permission.
// @Tags Wallet
// @Accept json
// @Produce json
// @Param requestBody body TransferRequest true "Transfer Data"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Failure 500 {object} Response
// @Router /wallet/transfer [post]
func (handler *walletHandler) Transfer(ctx *gin.Context) {
	var request TransferRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondFail(ctx, http.StatusBadRequest, fmt.Sprintf("invalid transfer data: %v", err.Error()))
		return
	}

	if err := request.Validate(); err != nil {
		respondFail(ctx, http.StatusBadRequest, fmt.Sprintf("validation failed: %v", err.Error()))
		return
	}

	userID := ctx.GetString(middleware.ContextUserIDKey)

	if _, err := handler.walletService.GetBalance(ctx.Request.Context(), userID); err != nil {
		respondFail(ctx, http.StatusNotFound, "Sender wallet not found")
		return
	}

	recipient, err := handler.walletService.GetByNumber(ctx.Request.Context(), request.WalletNumber)
	if err != nil {
		respondFail(ctx, http.StatusNotFound, "Recipient wallet not found")
		return
	}

	_, err = handler.walletService.Transfer(ctx.Request.Context(), userID, recipient.WalletNumber, request.Amount)
	if err != nil {
		switch {
		case errors.Is(err, wallets.ErrSelfTransfer):
			respondFail(ctx, http.StatusBadRequest, "Cannot transfer to your own wallet")
		case errors.Is(err, wallets.ErrInsufficientBalance):
			respondFail(ctx, http.StatusBadRequest, "Insufficient balance")
		case errors.Is(err, wallets.ErrWalletNotFound):
			respondFail(ctx, http.StatusBadRequest, "One or both wallets not found")
		default:
			respondFail(ctx, http.StatusInternalServerError, fmt.Sprintf("Transfer failed: %v", err))
		}
		return
	}

	respondSuccess(ctx, http.StatusOK, "Transfer completed successfully", TransferData{
		Status:          "success",
		Amount:          request.Amount.String(),
		RecipientWallet: request.WalletNumber,
	})
}

// Transactions handles the GET request for the caller's transaction history
// @Summary Get transaction history
// @Description Fetch the newest transactions of the authenticated user's wallet. Requires the read permission.
// @Tags Wallet
// @Produce json
// @Param limit query int false "Maximum number of transactions (1-50, default 50)"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /wallet/transactions [get]
func (handler *walletHandler) Transactions(ctx *gin.Context) {
	limit := defaultHistoryLimit
	if rawLimit := ctx.Query("limit"); len(rawLimit) > 0 {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil {
			respondFail(ctx, http.StatusBadRequest, fmt.Sprintf("invalid limit: %v", rawLimit))
			return
		}
		limit = parsed
	}

	query := &wallets.TransactionQuery{Limit: limit}
	if err := query.Validate(); err != nil {
		respondFail(ctx, http.StatusBadRequest, fmt.Sprintf("validation failed: %v", err.Error()))
		return
	}

	userID := ctx.GetString(middleware.ContextUserIDKey)

	transactions, err := handler.walletService.ListTransactions(ctx.Request.Context(), userID, query)
	if err != nil {
		if errors.Is(err, wallets.ErrWalletNotFound) {
			respondFail(ctx, http.StatusNotFound, "Wallet not found")
			return
		}
		respondFail(ctx, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve transactions: %v", err))
		return
	}

	transactionsData := make([]TransactionData, 0, len(transactions))
	for _, transaction := range transactions {
		transactionsData = append(transactionsData, TransactionData{
			ID:        transaction.ID,
			Type:      transaction.Type,
			Amount:    transaction.Amount.StringFixed(2),
			Reference: transaction.Reference,
			Status:    transaction.Status,
			CreatedAt: transaction.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	respondSuccess(ctx, http.StatusOK, "Transaction history retrieved successfully", TransactionListData{
		Transactions: transactionsData,
		Count:        len(transactionsData),
	})
}

// Webhook handles the POST notifications the payment gateway delivers
// @Summary Paystack webhook
// @Description Apply a signed gateway notification. Crediting is idempotent; repeated deliveries and unknown references resolve without error.
// @Tags Wallet
// @Accept json
// @Produce json
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Router /wallet/paystack/webhook [post]
func (handler *walletHandler) Webhook(ctx *gin.Context) {
	body, err := ctx.GetRawData()
	if err != nil {
		respondFail(ctx, http.StatusBadRequest, "Could not read request body")
		return
	}

	signature := ctx.GetHeader(webhookSignatureHeader)
	if !handler.webhookService.VerifySignature(body, signature) {
		respondFail(ctx, http.StatusUnauthorized, "Invalid webhook signature")
		return
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		respondFail(ctx, http.StatusBadRequest, "Invalid webhook payload")
		return
	}

	createdAt := payload.Data.CreatedAt
	if createdAt == "" {
		createdAt = payload.Data.CreatedAtAlt
	}

	outcome, err := handler.webhookService.Process(ctx.Request.Context(), &wallets.GatewayEvent{
		Event:     payload.Event,
		Reference: payload.Data.Reference,
		CreatedAt: createdAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, wallets.ErrWebhookExpired):
			respondFail(ctx, http.StatusBadRequest, "Webhook expired")
		case errors.Is(err, wallets.ErrMissingReference):
			respondFail(ctx, http.StatusBadRequest, "Missing transaction reference")
		case payload.Event == "charge.failed":
			respondFail(ctx, http.StatusInternalServerError, fmt.Sprintf("Error processing failed charge: %v", err))
		default:
			respondFail(ctx, http.StatusInternalServerError, fmt.Sprintf("Error processing webhook: %v", err))
		}
		return
	}

	respondSuccess(ctx, http.StatusOK, outcome.Message, gin.H{"status": outcome.Status})
}
