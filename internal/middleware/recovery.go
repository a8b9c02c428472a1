package middleware

import (
	"fmt"
	"runtime"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

func Recovery(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				var stack [4096]byte
				n := runtime.Stack(stack[:], false)

				logger.Error().
					Str("request_id", c.GetString(ContextRequestID)).
					Str("panic", fmt.Sprintf("%v", r)).
					Str("stack", string(stack[:n])).
					Msg("panic recovered")

				httperr.Internal(c, "internal_error", "Internal server error")
				c.Abort()
			}
		}()
		c.Next()
	}
}
