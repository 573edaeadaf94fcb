package api

import (
	"messenger-sdk/internal/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter wires the composition service routes.
func NewRouter(cfg *config.Config, log *zap.Logger) *gin.Engine {
	gin.SetMode(cfg.GinMode)

	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog(log), CORS(), BodyLimit(cfg.MaxBodyBytes))

	payloadHandler := NewPayloadHandler(log)

	r.GET("/healthz", payloadHandler.Healthz)

	apiGroup := r.Group("/api")
	{
		payloads := apiGroup.Group("/payloads")
		payloads.POST("/compose", payloadHandler.Compose)
		payloads.POST("/validate", payloadHandler.Validate)
	}

	return r
}
