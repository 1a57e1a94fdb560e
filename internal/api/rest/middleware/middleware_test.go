//go:build unit
// +build unit

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/infrastructure/cache"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCorrelationID_GeneratesWhenMissing(t *testing.T) {
	log := testutil.SetupTestLogger(t)

	r := gin.New()
	r.Use(CorrelationID(log))
	r.GET("/ping", func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ping", nil)
	r.ServeHTTP(w, req)

	correlationID := w.Header().Get(CorrelationIDHeader)
	_, err := uuid.Parse(correlationID)
	assert.NoError(t, err, "generated correlation ID should be a UUID")
}

func TestCorrelationID_EchoesCallerValue(t *testing.T) {
	log := testutil.SetupTestLogger(t)

	r := gin.New()
	r.Use(CorrelationID(log))
	r.GET("/ping", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, ctx.GetString(ContextCorrelationIDKey))
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ping", nil)
	req.Header.Set(CorrelationIDHeader, "trace-42")
	r.ServeHTTP(w, req)

	assert.Equal(t, "trace-42", w.Header().Get(CorrelationIDHeader))
	assert.Equal(t, "trace-42", w.Body.String())
}

func TestSecurityHeaders_SetOnResponse(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders())
	r.GET("/ping", func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ping", nil)
	req.Host = "wallet.example.com"
	r.ServeHTTP(w, req)

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
	assert.Equal(t, "geolocation=(), microphone=(), camera=()", w.Header().Get("Permissions-Policy"))
	assert.Equal(t, "max-age=31536000; includeSubDomains", w.Header().Get("Strict-Transport-Security"))
}

func TestSecurityHeaders_NoHSTSOnLocalhost(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders())
	r.GET("/ping", func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})

	for _, host := range []string{"localhost:8000", "127.0.0.1:8000"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/ping", nil)
		req.Host = host
		r.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Strict-Transport-Security"), "no HSTS expected for %s", host)
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	}
}

func TestRateLimit_NilLimiterPassesThrough(t *testing.T) {
	log := testutil.SetupTestLogger(t)

	r := gin.New()
	r.POST("/deposit", RateLimit(nil, 5, time.Minute, log), func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/deposit", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit_AllowedRequest(t *testing.T) {
	log := testutil.SetupTestLogger(t)

	mockLimiter := new(MockRateLimiter)
	mockLimiter.On("Allow", mock.Anything, mock.AnythingOfType("string"), 5, time.Minute).
		Return(&cache.Decision{Allowed: true}, nil)

	r := gin.New()
	r.POST("/deposit", RateLimit(mockLimiter, 5, time.Minute, log), func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/deposit", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockLimiter.AssertExpectations(t)
}

func TestRateLimit_DeniedRequest(t *testing.T) {
	log := testutil.SetupTestLogger(t)

	mockLimiter := new(MockRateLimiter)
	mockLimiter.On("Allow", mock.Anything, mock.AnythingOfType("string"), 5, time.Minute).
		Return(&cache.Decision{Allowed: false, RetryAfter: 37 * time.Second}, nil)

	r := gin.New()
	r.POST("/deposit", RateLimit(mockLimiter, 5, time.Minute, log), func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/deposit", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "37", w.Header().Get("Retry-After"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Contains(t, w.Body.String(), "Rate limit exceeded. Try again in 37 seconds.")
}

func TestRateLimit_KeyIncludesClientAndRoute(t *testing.T) {
	log := testutil.SetupTestLogger(t)

	var seenKey string
	mockLimiter := new(MockRateLimiter)
	mockLimiter.On("Allow", mock.Anything, mock.AnythingOfType("string"), 5, time.Minute).
		Run(func(args mock.Arguments) {
			seenKey = args.String(1)
		}).
		Return(&cache.Decision{Allowed: true}, nil)

	r := gin.New()
	r.POST("/api/v1/wallet/deposit", RateLimit(mockLimiter, 5, time.Minute, log), func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/wallet/deposit", nil)
	req.RemoteAddr = "10.1.2.3:5555"
	r.ServeHTTP(w, req)

	assert.Equal(t, "rate_limit:10.1.2.3:POST:/api/v1/wallet/deposit", seenKey)
}

func TestRateLimit_LimiterErrorFailsClosed(t *testing.T) {
	log := testutil.SetupTestLogger(t)

	mockLimiter := new(MockRateLimiter)
	mockLimiter.On("Allow", mock.Anything, mock.AnythingOfType("string"), 5, time.Minute).
		Return(nil, assert.AnError)

	r := gin.New()
	r.POST("/deposit", RateLimit(mockLimiter, 5, time.Minute, log), func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/deposit", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "Service is temporarily unavailable, please try again later.")
}

func TestMetrics_ObservesRequests(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/metrics", MetricsHandler())
	r.GET("/ping", func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ping", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/metrics", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "wallet_http_requests_total")
}
