package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/admin/lint — противоречия между типами, переименованиями и DSL-схемами.
func AdminLintHandler(b *Backend) gin.HandlerFunc {
	return func(c *gin.Context) {
		issues := lintOut(b.Engine.Registry().Lint())
		c.JSON(http.StatusOK, gin.H{
			"ok":     len(issues) == 0,
			"issues": issues,
		})
	}
}

// GET /healthz
func HealthHandler(b *Backend) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ok":        true,
			"entities":  len(b.Engine.Registry().Descriptors()),
			"endpoints": b.Services.Endpoints(),
		})
	}
}
