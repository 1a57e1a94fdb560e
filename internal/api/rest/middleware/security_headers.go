package middleware

import (
	"net"

	"github.com/gin-gonic/gin"
)

// SecurityHeaders sets browser hardening headers on every response. HSTS
// is skipped for localhost so plain HTTP keeps working in development.
func SecurityHeaders() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Header("X-Content-Type-Options", "nosniff")
		ctx.Header("X-Frame-Options", "DENY")
		ctx.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		ctx.Header("Permissions-Policy", "geolocation=(), microphone=(), camera=()")

		host := ctx.Request.Host
		if hostOnly, _, err := net.SplitHostPort(host); err == nil {
			host = hostOnly
		}
		if host != "localhost" && host != "127.0.0.1" {
			ctx.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		ctx.Next()
	}
}
