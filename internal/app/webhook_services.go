package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/wallets"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/logger"
)

// Gateway webhook event types handled by the service.
const (
	eventChargeSuccess = "charge.success"
	eventChargeFailed  = "charge.failed"
)

// webhookReplayWindow is how old an event may be before it is rejected.
const webhookReplayWindow = 5 * time.Minute

// webhookService implements the WebhookService interface for payment
// gateway notifications
type webhookService struct {
	gateway         wallets.PaymentGateway
	walletRepo      wallets.WalletRepository
	transactionRepo wallets.TransactionRepository
	logger          logger.Logger
}

// NewWebhookService creates a new instance of WebhookService
func NewWebhookService(
	gateway wallets.PaymentGateway,
	walletRepo wallets.WalletRepository,
	transactionRepo wallets.TransactionRepository,
	logger logger.Logger,
) (wallets.WebhookService, error) {
	return &webhookService{
		gateway:         gateway,
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		logger:          logger,
	}, nil
}

// VerifySignature checks the gateway signature over the raw request body
func (s *webhookService) VerifySignature(body []byte, signature string) bool {
	return s.gateway.ValidateWebhookSignature(body, signature)
}

// Process applies a charge event idempotently. Unknown references and
// repeated deliveries resolve to a successful outcome so the gateway
// stops redelivering them
func (s *webhookService) Process(ctx context.Context, event *wallets.GatewayEvent) (*wallets.WebhookOutcome, error) {
	if event == nil {
		return nil, fmt.Errorf("event must not be nil")
	}

	if err := s.checkReplayWindow(event.CreatedAt); err != nil {
		return nil, err
	}
	if event.Reference == "" {
		return nil, wallets.ErrMissingReference
	}

	switch event.Event {
	case eventChargeSuccess:
		return s.processChargeSuccess(ctx, event.Reference)
	case eventChargeFailed:
		return s.processChargeFailed(ctx, event.Reference)
	default:
		s.logger.Info(fmt.Sprintf("Ignoring webhook event %s for %s", event.Event, event.Reference))
		return &wallets.WebhookOutcome{Status: true, Message: "Webhook received"}, nil
	}
}

// checkReplayWindow rejects events older than the replay window. Events
// without a parsable timestamp are accepted.
func (s *webhookService) checkReplayWindow(createdAt string) error {
	if createdAt == "" {
		return nil
	}

	eventTime, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("Webhook event carries unparsable timestamp %q", createdAt))
		return nil
	}
	if time.Since(eventTime) > webhookReplayWindow {
		return wallets.ErrWebhookExpired
	}

	return nil
}

func (s *webhookService) processChargeSuccess(ctx context.Context, reference string) (*wallets.WebhookOutcome, error) {
	transaction, err := s.walletRepo.CreditDeposit(ctx, reference)
	switch {
	case errors.Is(err, wallets.ErrTransactionNotFound):
		return &wallets.WebhookOutcome{Status: true, Message: "Transaction not found"}, nil
	case errors.Is(err, wallets.ErrTransactionAlreadyProcessed):
		return &wallets.WebhookOutcome{Status: true, Message: "Transaction already processed"}, nil
	case err != nil:
		return nil, err
	}

	s.logger.Info(fmt.Sprintf("Credited deposit %s of %s", transaction.Reference, transaction.Amount.StringFixed(2)))
	return &wallets.WebhookOutcome{Status: true, Message: "Wallet credited successfully"}, nil
}

func (s *webhookService) processChargeFailed(ctx context.Context, reference string) (*wallets.WebhookOutcome, error) {
	_, err := s.transactionRepo.MarkFailed(ctx, reference)
	switch {
	case errors.Is(err, wallets.ErrTransactionNotFound):
		return &wallets.WebhookOutcome{Status: true, Message: "Transaction not found"}, nil
	case errors.Is(err, wallets.ErrTransactionAlreadyFailed):
		return &wallets.WebhookOutcome{Status: true, Message: "Transaction already marked as failed"}, nil
	case errors.Is(err, wallets.ErrTransactionAlreadySuccessful):
		return &wallets.WebhookOutcome{Status: false, Message: "Transaction already successful"}, nil
	case err != nil:
		return nil, err
	}

	s.logger.Info(fmt.Sprintf("Marked deposit %s as failed", reference))
	return &wallets.WebhookOutcome{Status: true, Message: "Transaction marked as failed"}, nil
}
