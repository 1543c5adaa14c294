package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"

	"github.com/busla/summerhouse-sub003/internal/client/binding"
	"github.com/busla/summerhouse-sub003/internal/client/profile"
	"github.com/busla/summerhouse-sub003/internal/config"
	"github.com/busla/summerhouse-sub003/internal/logger"
	"github.com/busla/summerhouse-sub003/internal/model"
	"github.com/busla/summerhouse-sub003/internal/provider/cognito"
	"github.com/busla/summerhouse-sub003/internal/service"
	"github.com/busla/summerhouse-sub003/internal/token"
)

const (
	appName     = "summerhouse"
	httpTimeout = 30 * time.Second
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	verifier, err := newVerifier(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize token verifier", "error", err)
	}

	tokenFile, err := sessionTokenFile(cfg.SessionTokenFile)
	if err != nil {
		logger.Fatal("failed to resolve session file", "error", err)
	}

	httpClient := &http.Client{Timeout: httpTimeout}

	provider := cognito.NewClient(
		cognito.Config{
			Region:   cfg.Cognito.Region,
			ClientID: cfg.Cognito.ClientID,
			Endpoint: cfg.Cognito.Endpoint,
		},
		cognito.NewFileTokenStore(tokenFile),
		verifier,
		logger,
		cognito.WithHTTPClient(httpClient),
	)
	profiles := profile.NewClient(cfg.ProfileAPIURL, httpClient, logger)
	bindings := binding.NewClient(cfg.ProfileAPIURL, httpClient, logger)

	orchestrator := service.NewOrchestrator(provider, logger,
		service.WithProfileSync(service.NewProfileSync(profiles, logger)),
		service.WithSessionBinder(bindings),
	)

	displayAppname(appName)
	logAppVersion()

	if err := newShell(orchestrator, bindings, os.Stdin, os.Stdout).run(ctx); err != nil {
		logger.Fatal("client stopped", "error", err)
	}
}

// newVerifier checks identity tokens against the user pool issuer, or against
// the shared secret of a local issuer when no pool is configured.
func newVerifier(ctx context.Context, cfg *config.Config) (model.TokenVerifier, error) {
	if issuer := cfg.Cognito.Issuer(); issuer != "" {
		return token.NewOIDC(ctx, issuer, cfg.Cognito.ClientID)
	}
	return token.NewHMAC(cfg.Auth.JWTSecret, cfg.Auth.Issuer), nil
}

func sessionTokenFile(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config dir: %w", err)
	}
	return filepath.Join(dir, appName, "session.json"), nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}

func logAppVersion() {
	fmt.Printf("Build version: %s, date: %s, commit: %s\n\n", buildVersion, buildDate, buildCommit)
}
