package router

import (
	"github.com/gin-gonic/gin"

	"github.com/busla/summerhouse-sub003/internal/api/http/handler"
	"github.com/busla/summerhouse-sub003/internal/api/http/middleware"
	"github.com/busla/summerhouse-sub003/internal/logger"
	"github.com/busla/summerhouse-sub003/internal/model"
)

// Router wires handlers and middleware of the profile server.
type Router struct {
	profileService handler.ProfileService
	bindingService handler.BindingService
	verifier       model.TokenVerifier
	contextManager model.ContextManager
	healthChecks   map[string]handler.Pinger
	authURL        string
	logger         *logger.Logger
}

// New creates new Router instance.
func New(
	profileService handler.ProfileService,
	bindingService handler.BindingService,
	verifier model.TokenVerifier,
	contextManager model.ContextManager,
	healthChecks map[string]handler.Pinger,
	authURL string,
	logger *logger.Logger,
) *Router {
	return &Router{
		profileService: profileService,
		bindingService: bindingService,
		verifier:       verifier,
		contextManager: contextManager,
		healthChecks:   healthChecks,
		authURL:        authURL,
		logger:         logger,
	}
}

// Register builds the gin engine with request logging on every route and
// bearer authentication on profile and callback routes.
func (r *Router) Register() *gin.Engine {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.verifier, r.contextManager, r.logger)

	engine := gin.New()
	engine.Use(gin.Recovery(), logging.Handle)

	engine.GET("/healthz", handler.NewHealth(r.healthChecks).Check)

	r.registerProfileRoutes(engine.Group("/profile", authenticate.Handle))
	r.registerBindingRoutes(engine.Group("/auth"), authenticate.Handle)

	return engine
}

func (r *Router) registerProfileRoutes(group *gin.RouterGroup) {
	profileHandler := handler.NewProfile(r.profileService, r.contextManager, r.logger)
	group.POST("/me", profileHandler.Create)
	group.GET("/me", profileHandler.Get)
	group.PUT("/me", profileHandler.Update)
}

func (r *Router) registerBindingRoutes(group *gin.RouterGroup, authenticate gin.HandlerFunc) {
	bindingHandler := handler.NewBinding(r.bindingService, r.contextManager, r.authURL, r.logger)
	group.POST("/sessions", bindingHandler.Create)
	group.GET("/sessions/:id", bindingHandler.Status)
	group.GET("/callback", authenticate, bindingHandler.Callback)
}
