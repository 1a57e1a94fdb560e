//go:build unit
// +build unit

package connector

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPaystackConnector(t *testing.T, serverURL string) *paystackConnector {
	t.Helper()

	return &paystackConnector{
		secretKey:   "sk_test_secret",
		baseURL:     serverURL,
		callbackURL: "http://localhost:8000" + paymentCallbackPath,
		client:      &http.Client{Timeout: 5 * time.Second},
		logger:      testutil.SetupTestLogger(t),
	}
}

func TestPaystackConnector_InitializeTransaction(t *testing.T) {
	var captured struct {
		Email       string `json:"email"`
		Amount      int64  `json:"amount"`
		Reference   string `json:"reference"`
		CallbackURL string `json:"callback_url"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_secret", r.Header.Get("Authorization"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": true,
			"message": "Authorization URL created",
			"data": {
				"authorization_url": "https://checkout.paystack.com/abc123",
				"access_code": "abc123",
				"reference": "DEP_A1B2C3D4E5F6"
			}
		}`))
	}))
	defer server.Close()

	connector := newTestPaystackConnector(t, server.URL)

	auth, err := connector.InitializeTransaction(context.Background(),
		"ada@example.com", decimal.NewFromFloat(150.50), "DEP_A1B2C3D4E5F6")
	require.NoError(t, err)

	assert.Equal(t, "https://checkout.paystack.com/abc123", auth.AuthorizationURL)
	assert.Equal(t, "DEP_A1B2C3D4E5F6", auth.Reference)

	// Naira are converted to kobo and the callback URL is attached
	assert.Equal(t, int64(15050), captured.Amount)
	assert.Equal(t, "ada@example.com", captured.Email)
	assert.Equal(t, "http://localhost:8000/api/v1/wallet/payment/callback", captured.CallbackURL)
}

func TestPaystackConnector_InitializeTransaction_GatewayRefusal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": false, "message": "Invalid key"}`))
	}))
	defer server.Close()

	connector := newTestPaystackConnector(t, server.URL)

	_, err := connector.InitializeTransaction(context.Background(),
		"ada@example.com", decimal.NewFromInt(100), "DEP_A1B2C3D4E5F6")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid key")
}

func TestPaystackConnector_InitializeTransaction_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	connector := newTestPaystackConnector(t, server.URL)

	_, err := connector.InitializeTransaction(context.Background(),
		"ada@example.com", decimal.NewFromInt(100), "DEP_A1B2C3D4E5F6")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestPaystackConnector_VerifyTransaction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/transaction/verify/DEP_A1B2C3D4E5F6", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": true,
			"message": "Verification successful",
			"data": {"reference": "DEP_A1B2C3D4E5F6", "status": "success", "amount": 15050}
		}`))
	}))
	defer server.Close()

	connector := newTestPaystackConnector(t, server.URL)

	txn, err := connector.VerifyTransaction(context.Background(), "DEP_A1B2C3D4E5F6")
	require.NoError(t, err)
	assert.Equal(t, "success", txn.Status)
	assert.Equal(t, int64(15050), txn.AmountKobo)
}

func TestPaystackConnector_ValidateWebhookSignature(t *testing.T) {
	connector := newTestPaystackConnector(t, "http://unused")

	body := []byte(`{"event":"charge.success","data":{"reference":"DEP_A1B2C3D4E5F6"}}`)

	mac := hmac.New(sha512.New, []byte("sk_test_secret"))
	mac.Write(body)
	signature := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, connector.ValidateWebhookSignature(body, signature))
	assert.False(t, connector.ValidateWebhookSignature(body, "deadbeef"))
	assert.False(t, connector.ValidateWebhookSignature([]byte(`tampered`), signature))
}
