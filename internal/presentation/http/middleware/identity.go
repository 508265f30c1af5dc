package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sangkips/preferences-api/internal/config"
	"github.com/sangkips/preferences-api/internal/presentation/http/dto/response"
)

// UserIDKey is the gin context key holding the caller's user ID
const UserIDKey = "user_id"

// TokenVerifier extracts the user ID from a gateway token
type TokenVerifier interface {
	Subject(token string) (string, error)
}

// IdentityMiddleware resolves the caller from the configured header, or from a
// bearer token in jwt mode, and rejects the request when there is none.
func IdentityMiddleware(cfg *config.AuthConfig, verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var userID string
		if cfg.Mode == config.AuthModeJWT {
			userID = bearerSubject(c, verifier)
		} else {
			userID = strings.TrimSpace(c.GetHeader(cfg.UserIDHeader))
		}

		if userID == "" {
			response.Unauthorized(c)
			return
		}

		c.Set(UserIDKey, userID)

		ctx := c.Request.Context()
		l := zerolog.Ctx(ctx).With().Str("user_id", userID).Logger()
		c.Request = c.Request.WithContext(l.WithContext(ctx))

		c.Next()
	}
}

func bearerSubject(c *gin.Context, verifier TokenVerifier) string {
	if verifier == nil {
		return ""
	}

	parts := strings.Fields(c.GetHeader("Authorization"))
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}

	subject, err := verifier.Subject(parts[1])
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Debug().Err(err).Msg("rejected gateway token")
		return ""
	}
	return subject
}

// GetUserID returns the user ID set by IdentityMiddleware, or ""
func GetUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
