package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recmap/internal/entity"
	"recmap/internal/mapper"
)

// statusFor переводит ошибку маппера в HTTP-статус.
func statusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrNotRegistered), errors.Is(err, mapper.ErrUnknownField):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrNilIdentity),
		errors.Is(err, mapper.ErrCycle),
		errors.Is(err, mapper.ErrInvalidObject):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (b *Backend) fail(c *gin.Context, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		b.Log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(code, gin.H{"error": "Store error"})
		return
	}
	c.JSON(code, gin.H{"error": err.Error()})
}
