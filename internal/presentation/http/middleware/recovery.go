package middleware

import (
	"fmt"
	"io"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sangkips/preferences-api/internal/presentation/http/dto/response"
	"github.com/sangkips/preferences-api/pkg/apperror"
)

// RecoveryMiddleware turns a panic into a generic 500 and logs the stack
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		zerolog.Ctx(c.Request.Context()).Error().
			Interface("panic", recovered).
			Bytes("stack", debug.Stack()).
			Msg("panic recovered")

		err := apperror.NewInternalError(fmt.Errorf("panic: %v", recovered))
		_ = c.Error(err)
		response.Abort(c, err)
	})
}
