package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SystemHandler defines the interface for handling service-level endpoints
type SystemHandler interface {
	Root(ctx *gin.Context)
	Health(ctx *gin.Context)
}

// SystemHandler struct holds the service metadata
type systemHandler struct {
	version  string
	docsPath string
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(version, docsPath string) SystemHandler {
	return &systemHandler{
		version:  version,
		docsPath: docsPath,
	}
}

// Root handles the GET request for service metadata
// @Summary Service root
// @Description Return the service name, version and documentation location.
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func (handler *systemHandler) Root(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"message": "Wallet Service API",
		"version": handler.version,
		"docs":    handler.docsPath,
	})
}

// Health handles the GET request used as a liveness probe. No
// dependencies are probed.
// @Summary Health check
// @Description Liveness probe used by container orchestration.
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (handler *systemHandler) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
