package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/infrastructure/cache"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/logger"
)

// RateLimiter decides whether a request identified by key stays within
// maxRequests per window. *cache.FixedWindowLimiter implements it.
type RateLimiter interface {
	Allow(ctx context.Context, key string, maxRequests int, window time.Duration) (*cache.Decision, error)
}

// RateLimit throttles a route per client IP. A nil limiter disables
// throttling, which covers deployments without Redis. Limiter errors fail
// closed with 503 rather than letting bursts through.
func RateLimit(limiter RateLimiter, maxRequests int, window time.Duration, logger logger.Logger) gin.HandlerFunc {
	if limiter == nil {
		logger.Warn("Rate limiting disabled, requests pass through unchecked")
		return func(ctx *gin.Context) {
			ctx.Next()
		}
	}

	return func(ctx *gin.Context) {
		key := fmt.Sprintf("rate_limit:%s:%s:%s", ctx.ClientIP(), ctx.Request.Method, ctx.Request.URL.Path)

		decision, err := limiter.Allow(ctx.Request.Context(), key, maxRequests, window)
		if err != nil {
			logger.Error("Rate limit check failed: ", err)
			abortWithFail(ctx, http.StatusServiceUnavailable,
				"Service is temporarily unavailable, please try again later.")
			return
		}

		if !decision.Allowed {
			retryAfter := int(decision.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			ctx.Header("Retry-After", strconv.Itoa(retryAfter))
			ctx.Header("X-RateLimit-Remaining", "0")
			abortWithFail(ctx, http.StatusTooManyRequests,
				fmt.Sprintf("Rate limit exceeded. Try again in %d seconds.", retryAfter))
			return
		}

		ctx.Next()
	}
}
