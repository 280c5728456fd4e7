package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nplqhub/revise/internal/usecase"
)

const identityKey = "httpapi.identity"

var (
	errMissingToken = errors.New("missing or invalid token")
	errAdminOnly    = errors.New("admin access required")
)

// AuthMiddleware gates protected routes on a valid bearer token.
type AuthMiddleware struct {
	auth   usecase.AuthUsecase
	logger *logrus.Logger
}

func NewAuthMiddleware(auth usecase.AuthUsecase, logger *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{auth: auth, logger: logger}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			respondError(c, http.StatusUnauthorized, "unauthorized", errMissingToken)
			return
		}
		identity, err := am.auth.ParseToken(token)
		if err != nil {
			am.logger.WithError(err).Debug("rejected bearer token")
			respondError(c, http.StatusUnauthorized, "unauthorized", err)
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func (am *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := currentIdentity(c)
		if !ok || !identity.IsAdmin() {
			respondError(c, http.StatusForbidden, "forbidden", errAdminOnly)
			return
		}
		c.Next()
	}
}

func currentIdentity(c *gin.Context) (usecase.Identity, bool) {
	value, ok := c.Get(identityKey)
	if !ok {
		return usecase.Identity{}, false
	}
	identity, ok := value.(usecase.Identity)
	return identity, ok
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return header[7:]
	}
	return ""
}

// RequestLogger emits one structured line per request.
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    status,
			"duration":  time.Since(start),
			"client_ip": c.ClientIP(),
		}
		if requestID := c.GetHeader("X-Request-Id"); requestID != "" {
			fields["request_id"] = requestID
		}
		entry := logger.WithFields(fields)
		switch {
		case status >= http.StatusInternalServerError:
			entry.Error("request completed")
		case status >= http.StatusBadRequest:
			entry.Warn("request completed")
		default:
			entry.Info("request completed")
		}
	}
}
