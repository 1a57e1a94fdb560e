package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lexmanthefirst/paystack-wallet-to-wallet-service/internal/pkg/logger"
)

// CorrelationIDHeader carries the request correlation ID.
const CorrelationIDHeader = "X-Correlation-ID"

// ContextCorrelationIDKey exposes the correlation ID to handlers.
const ContextCorrelationIDKey = "correlation_id"

// CorrelationID reuses the caller's correlation ID or assigns a fresh
// one, echoes it on the response and logs every completed request.
func CorrelationID(logger logger.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		correlationID := ctx.GetHeader(CorrelationIDHeader)
		if correlationID == "" {
			correlationID = uuid.New().String()
		}

		ctx.Set(ContextCorrelationIDKey, correlationID)
		ctx.Header(CorrelationIDHeader, correlationID)

		start := time.Now()
		ctx.Next()

		logger.Info(fmt.Sprintf("%s %s completed with status %d in %s correlation_id=%s",
			ctx.Request.Method, ctx.Request.URL.Path, ctx.Writer.Status(), time.Since(start), correlationID))
	}
}
