package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/busla/summerhouse-sub003/internal/logger"
	"github.com/busla/summerhouse-sub003/internal/model"
)

// BindingService defines authorization session operations.
type BindingService interface {
	Create(ctx context.Context) (model.AuthorizationSession, error)
	Get(ctx context.Context, id string) (model.AuthorizationSession, error)
	Complete(ctx context.Context, id string, subjectID string) (model.AuthorizationSession, error)
}

// Binding handles authorization session endpoints.
type Binding struct {
	bindingService BindingService
	contextManager model.ContextManager
	authURL        string
	logger         *logger.Logger
}

// NewBinding creates a new Binding handler. authURL is the page users open to
// complete a session; the session ID is appended as the sessionId query parameter.
func NewBinding(bindingService BindingService, contextManager model.ContextManager, authURL string, logger *logger.Logger) *Binding {
	return &Binding{
		bindingService: bindingService,
		contextManager: contextManager,
		authURL:        authURL,
		logger:         logger,
	}
}

// Create starts a pending authorization session.
func (h *Binding) Create(c *gin.Context) {
	session, err := h.bindingService.Create(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	authURL, err := h.sessionURL(session.ID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model.AuthorizationGrant{
		AuthorizationSession: session,
		AuthURL:              authURL,
	})
}

// Status returns an authorization session.
func (h *Binding) Status(c *gin.Context) {
	session, err := h.bindingService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// Callback completes an authorization session for the authenticated caller.
func (h *Binding) Callback(c *gin.Context) {
	sessionID := c.Query("sessionId")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sessionId is required"})
		return
	}

	claims, ok := h.contextManager.GetClaimsFromContext(c.Request.Context())
	if !ok {
		handleError(c, model.ErrUnauthenticated)
		return
	}

	session, err := h.bindingService.Complete(c.Request.Context(), sessionID, claims.Subject)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			h.logger.Warn("Binding handler: completion failed",
				"session_id", sessionID,
				"subject_id", claims.Subject,
				"error", err.Error())
		}
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessionId": session.ID, "status": session.Status})
}

func (h *Binding) sessionURL(sessionID string) (string, error) {
	u, err := url.Parse(h.authURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("sessionId", sessionID)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
