package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/adilbekov/timetrack/internal/domain"
	"github.com/adilbekov/timetrack/internal/metrics"
	"github.com/adilbekov/timetrack/internal/token"
	"github.com/gin-gonic/gin"
)

const (
	errUnauthorized = "Unauthorized"
	errForbidden    = "Forbidden"

	principalKey = "principal"
)

// Principal returns the authenticated principal set by Authenticate, or nil
// on routes that allow anonymous access.
func Principal(c *gin.Context) *token.Principal {
	p, _ := c.Get(principalKey)
	principal, _ := p.(*token.Principal)
	return principal
}

// Authenticate requires a valid `Bearer <token>` credential and attaches
// the resulting principal to the request. Failures are logged for audit and
// collapse to a generic 401.
func Authenticate(tokens *token.Service, logger *slog.Logger) gin.HandlerFunc {
	return authenticate(tokens, logger, false)
}

// AuthenticateOptional lets requests without a credential through with no
// principal, but a token that is present must still verify. An invalid
// token on a public route is rejected rather than ignored.
func AuthenticateOptional(tokens *token.Service, logger *slog.Logger) gin.HandlerFunc {
	return authenticate(tokens, logger, true)
}

func authenticate(tokens *token.Service, logger *slog.Logger, optional bool) gin.HandlerFunc {
	logger = logger.With("component", "auth_middleware")

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			if optional {
				c.Next()
				return
			}
			metrics.TokenRejectionsTotal.WithLabelValues("missing").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		rawToken, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || rawToken == "" {
			metrics.TokenRejectionsTotal.WithLabelValues("malformed").Inc()
			logger.WarnContext(c.Request.Context(), "malformed authorization header")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		principal, err := tokens.Verify(rawToken)
		if err != nil {
			metrics.TokenRejectionsTotal.WithLabelValues("invalid").Inc()
			logger.WarnContext(c.Request.Context(), "token rejected", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// RequireRoles authorizes the principal attached by Authenticate against a
// required-role set declared at route registration. ANY semantics: holding
// one required role is enough. An empty set allows unconditionally.
//
// The token is never re-verified here; this guard only reads the principal
// the authentication stage produced.
func RequireRoles(logger *slog.Logger, required ...domain.Role) gin.HandlerFunc {
	logger = logger.With("component", "auth_middleware")

	return func(c *gin.Context) {
		if len(required) == 0 {
			c.Next()
			return
		}

		principal := Principal(c)
		if principal == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		if !principal.HasAnyRole(required) {
			logger.WarnContext(c.Request.Context(), "insufficient role",
				"subject", principal.SubjectID, "required", required)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": errForbidden})
			return
		}

		c.Next()
	}
}
