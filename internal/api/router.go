// api/router.go
package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func NewRouter(b *Backend) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), accessLog(b.Log))

	r.GET("/healthz", HealthHandler(b))
	r.GET("/svc/*endpoint", ServiceHandler(b))

	apiGroup := r.Group("/api")
	{
		// статические "служебные" маршруты — СНАЧАЛА
		apiGroup.GET("/meta", MetaListHandler(b))
		apiGroup.GET("/meta/:entity", MetaEntityHandler(b))
		apiGroup.GET("/admin/lint", AdminLintHandler(b))

		apiGroup.POST("/:entity", CreateHandler(b))
		apiGroup.GET("/:entity/:id", GetOneHandler(b))
		apiGroup.PUT("/:entity/:id", UpdateHandler(b))
		apiGroup.GET("/:entity/:id/:field", GetFieldHandler(b))
	}
	return r
}

func accessLog(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("http",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)),
		)
	}
}
