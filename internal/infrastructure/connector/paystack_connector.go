// Package connector implements clients for the external services the wallet
// depends on: the Paystack payment gateway and Google OAuth.
package connector

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/domain/wallets"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/config"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/logger"
	"github.com/shopspring/decimal"
)

// paymentCallbackPath is appended to the application base URL and handed to
// the gateway as the browser return address after checkout.
const paymentCallbackPath = "/api/v1/wallet/payment/callback"

type paystackConnector struct {
	secretKey   string
	baseURL     string
	callbackURL string
	client      *http.Client
	logger      logger.Logger
}

// NewPaystackConnector creates a Paystack-backed PaymentGateway implementation.
// appBaseURL is the public address of this service, used to build the
// checkout callback URL.
func NewPaystackConnector(settings *config.PaystackSettings, appBaseURL string, logger logger.Logger) (wallets.PaymentGateway, error) {
	return &paystackConnector{
		secretKey:   settings.SecretKey,
		baseURL:     strings.TrimRight(settings.BaseURL, "/"),
		callbackURL: strings.TrimRight(appBaseURL, "/") + paymentCallbackPath,
		client:      &http.Client{Timeout: 30 * time.Second},
		logger:      logger,
	}, nil
}

// gatewayResponse is the envelope Paystack wraps every reply in.
type gatewayResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type initializePayload struct {
	Email       string `json:"email"`
	Amount      int64  `json:"amount"`
	Reference   string `json:"reference"`
	CallbackURL string `json:"callback_url"`
}

type authorizationData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type verifyData struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
	Amount    int64  `json:"amount"`
}

func (c *paystackConnector) InitializeTransaction(ctx context.Context, email string, amount decimal.Decimal, reference string) (*wallets.GatewayAuthorization, error) {
	// The gateway bills in kobo, the smallest currency unit
	amountKobo := amount.Mul(decimal.NewFromInt(100)).IntPart()

	payload := initializePayload{
		Email:       email,
		Amount:      amountKobo,
		Reference:   reference,
		CallbackURL: c.callbackURL,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode initialize payload: %w", err)
	}

	var data authorizationData
	if err := c.do(ctx, http.MethodPost, "/transaction/initialize", body, &data); err != nil {
		return nil, err
	}

	c.logger.Info("Initialized gateway transaction with reference ", reference)
	return &wallets.GatewayAuthorization{
		AuthorizationURL: data.AuthorizationURL,
		AccessCode:       data.AccessCode,
		Reference:        data.Reference,
	}, nil
}

func (c *paystackConnector) VerifyTransaction(ctx context.Context, reference string) (*wallets.GatewayTransaction, error) {
	var data verifyData
	if err := c.do(ctx, http.MethodGet, "/transaction/verify/"+reference, nil, &data); err != nil {
		return nil, err
	}

	c.logger.Info("Verified gateway transaction with reference ", reference)
	return &wallets.GatewayTransaction{
		Reference:  data.Reference,
		Status:     data.Status,
		AmountKobo: data.Amount,
	}, nil
}

func (c *paystackConnector) ValidateWebhookSignature(body []byte, signature string) bool {
	mac := hmac.New(sha512.New, []byte(c.secretKey))
	mac.Write(body)
	computed := hex.EncodeToString(mac.Sum(nil))

	// hmac.Equal compares in constant time
	valid := hmac.Equal([]byte(computed), []byte(signature))
	if !valid {
		c.logger.Warn("Invalid gateway webhook signature")
	}
	return valid
}

// do sends a request to the gateway and decodes the envelope data into out.
func (c *paystackConnector) do(ctx context.Context, method, path string, body []byte, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create gateway request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var envelope gatewayResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode gateway response: %w", err)
	}

	if !envelope.Status {
		return fmt.Errorf("gateway error: %s", envelope.Message)
	}

	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("failed to decode gateway data: %w", err)
		}
	}

	return nil
}
