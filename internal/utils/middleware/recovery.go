package middleware

import (
	"fmt"
	"runtime/debug"

	apperrors "github.com/boostpay/server/internal/utils/errors"
	"github.com/boostpay/server/internal/utils/logger"
	"github.com/gin-gonic/gin"
)

// Recovery returns a middleware that turns a handler panic into a 500 error
// body. The body carries the request id so the logged stack can be found.
// If log is nil, it will use a default logger.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		log = logger.New(nil)
	}

	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			log.WithRequest(c.Request.Context()).Error("handler panic",
				"panic", fmt.Sprint(rec),
				"method", c.Request.Method,
				"route", c.FullPath(),
				"content_length", c.Request.ContentLength,
				"stack", string(debug.Stack()),
			)

			appErr := apperrors.Internal("request failed unexpectedly", fmt.Errorf("panic: %v", rec))
			body := apperrors.ErrorResponse{Error: apperrors.ErrorDetail{Code: appErr.Code, Message: appErr.Message}}
			if id := GetRequestID(c); id != "" {
				body.Error.Details = map[string]any{"request_id": id}
			}
			c.AbortWithStatusJSON(appErr.StatusCode, body)
		}()
		c.Next()
	}
}
