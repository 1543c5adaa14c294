package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	httpctx "github.com/busla/summerhouse-sub003/internal/api/http/context"
	"github.com/busla/summerhouse-sub003/internal/api/http/handler"
	"github.com/busla/summerhouse-sub003/internal/api/http/router"
	httpServer "github.com/busla/summerhouse-sub003/internal/api/http/server"
	"github.com/busla/summerhouse-sub003/internal/config"
	"github.com/busla/summerhouse-sub003/internal/logger"
	"github.com/busla/summerhouse-sub003/internal/model"
	"github.com/busla/summerhouse-sub003/internal/repository/postgres"
	"github.com/busla/summerhouse-sub003/internal/repository/redis"
	"github.com/busla/summerhouse-sub003/internal/server"
	"github.com/busla/summerhouse-sub003/internal/service"
	"github.com/busla/summerhouse-sub003/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	rdb, err := redis.NewConnection(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal("failed to connect to redis", "error", err)
	}
	defer rdb.Close()

	verifier, err := newVerifier(ctx, cfg.Auth)
	if err != nil {
		logger.Fatal("failed to initialize token verifier", "error", err)
	}

	profileService := service.NewProfile(postgres.NewProfileRepository(db), logger)
	bindingService := service.NewBinding(redis.NewBindingRepository(rdb, cfg.Binding.Retention), cfg.Binding.TTL, logger)

	if cfg.LogLevel >= 0 {
		gin.SetMode(gin.ReleaseMode)
	}

	r := router.New(
		profileService,
		bindingService,
		verifier,
		httpctx.NewManager(),
		map[string]handler.Pinger{"postgres": db, "redis": rdb},
		cfg.Binding.AuthURL,
		logger,
	)
	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))
	sl := server.NewSecurityLayer(cfg.HTTP)

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "https", cfg.HTTP.EnableHTTPS)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

// newVerifier verifies bearer tokens against the OIDC issuer when one is
// configured and against the shared HMAC secret otherwise.
func newVerifier(ctx context.Context, cfg config.Auth) (model.TokenVerifier, error) {
	if cfg.Issuer != "" {
		return token.NewOIDC(ctx, cfg.Issuer, cfg.ClientID)
	}
	return token.NewHMAC(cfg.JWTSecret, ""), nil
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
