package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/busla/summerhouse-sub003/internal/logger"
	"github.com/busla/summerhouse-sub003/internal/model"
)

// ProfileService defines profile operations for the calling identity.
type ProfileService interface {
	CreateOrFetch(ctx context.Context, claims model.Claims) (model.Profile, bool, error)
	Get(ctx context.Context, subjectID string) (model.Profile, error)
	Update(ctx context.Context, subjectID string, update model.ProfileUpdate) (model.Profile, error)
}

// Profile handles the /profile/me endpoints.
type Profile struct {
	profileService ProfileService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewProfile creates a new Profile handler.
func NewProfile(profileService ProfileService, contextManager model.ContextManager, logger *logger.Logger) *Profile {
	return &Profile{
		profileService: profileService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Create creates the caller's profile. An existing profile is returned with 409.
func (h *Profile) Create(c *gin.Context) {
	claims, ok := h.contextManager.GetClaimsFromContext(c.Request.Context())
	if !ok {
		handleError(c, model.ErrUnauthenticated)
		return
	}

	profile, created, err := h.profileService.CreateOrFetch(c.Request.Context(), claims)
	if err != nil {
		h.logger.Error("Profile handler: create failed",
			"subject_id", claims.Subject,
			"error", err.Error())
		handleError(c, err)
		return
	}

	if !created {
		h.logger.Debug("Profile handler: profile already exists",
			"subject_id", claims.Subject)
		c.JSON(http.StatusConflict, profile)
		return
	}

	c.JSON(http.StatusCreated, profile)
}

// Get returns the caller's profile.
func (h *Profile) Get(c *gin.Context) {
	claims, ok := h.contextManager.GetClaimsFromContext(c.Request.Context())
	if !ok {
		handleError(c, model.ErrUnauthenticated)
		return
	}

	profile, err := h.profileService.Get(c.Request.Context(), claims.Subject)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// Update changes the caller's display name or phone.
func (h *Profile) Update(c *gin.Context) {
	claims, ok := h.contextManager.GetClaimsFromContext(c.Request.Context())
	if !ok {
		handleError(c, model.ErrUnauthenticated)
		return
	}

	var update model.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.profileService.Update(c.Request.Context(), claims.Subject, update)
	if err != nil {
		handleError(c, err)
		return
	}

	h.logger.Info("Profile handler: profile updated",
		"subject_id", claims.Subject)

	c.JSON(http.StatusOK, profile)
}
