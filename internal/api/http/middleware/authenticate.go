package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/busla/summerhouse-sub003/internal/logger"
	"github.com/busla/summerhouse-sub003/internal/model"
)

// Authenticate validates bearer identity tokens and injects their claims into the request context.
type Authenticate struct {
	verifier       model.TokenVerifier
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(verifier model.TokenVerifier, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{verifier: verifier, contextManager: contextManager, logger: logger}
}

// Handle rejects requests without a valid bearer token with 401.
func (m *Authenticate) Handle(c *gin.Context) {
	header := c.GetHeader("Authorization")
	tokenString, found := strings.CutPrefix(header, "Bearer ")
	if !found || strings.TrimSpace(tokenString) == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization token"})
		return
	}

	claims, err := m.verifier.Verify(c.Request.Context(), strings.TrimSpace(tokenString))
	if err != nil {
		m.logger.Warn("Authenticate middleware: token rejected",
			"path", c.FullPath(),
			"error", err.Error())
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization token"})
		return
	}
	if claims.Subject == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization token"})
		return
	}

	c.Request = c.Request.WithContext(m.contextManager.SetClaimsToContext(c.Request.Context(), claims))
	c.Next()
}
