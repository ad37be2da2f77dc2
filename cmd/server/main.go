// Command server runs the journaling backend HTTP API.
//
// Startup order: load environment, configure logging, open the SQLite store,
// initialize tracing, wire the optional login stack, then serve until a
// termination signal arrives and drain gracefully.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-journal-backend/internal/ai"
	"github.com/tbourn/go-journal-backend/internal/config"
	httpapi "github.com/tbourn/go-journal-backend/internal/http"
	"github.com/tbourn/go-journal-backend/internal/http/handlers"
	"github.com/tbourn/go-journal-backend/internal/http/middleware"
	"github.com/tbourn/go-journal-backend/internal/identity"
	"github.com/tbourn/go-journal-backend/internal/logincode"
	"github.com/tbourn/go-journal-backend/internal/mail"
	"github.com/tbourn/go-journal-backend/internal/observability"
	"github.com/tbourn/go-journal-backend/internal/repo"
	"github.com/tbourn/go-journal-backend/internal/services"
	"github.com/tbourn/go-journal-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	// Local development convenience; absent .env is fine.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	gin.SetMode(cfg.GinMode)

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("init tracing")
	}

	var generator ai.Generator
	if cfg.Generator.BaseURL != "" {
		generator = ai.NewOpenAICompatGenerator(
			cfg.Generator.BaseURL, cfg.Generator.APIKey, cfg.Generator.Model, cfg.Generator.Timeout,
		)
	} else {
		log.Warn().Msg("no generator configured; enhance and intro endpoints will fail")
	}

	// Login stack is optional: no Redis or token secret means the auth
	// routes answer 503 and everything else still works.
	var (
		authSvc handlers.AuthService
		tokens  middleware.TokenVerifier
	)
	if cfg.Auth.RedisAddr != "" && cfg.Auth.TokenSecret != "" {
		codes, err := logincode.New(cfg.Auth.RedisAddr, cfg.Auth.RedisPassword, cfg.Auth.CodeTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("connect login-code store")
		}
		toks, err := identity.New(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("init token issuer")
		}
		authSvc = services.NewAuthService(codes, mail.LogSender{Log: log.Logger}, toks)
		tokens = toks
	} else {
		log.Info().Msg("login stack not configured; auth routes disabled")
	}

	r := gin.New()
	httpapi.RegisterRoutes(r, httpapi.Deps{
		DB:        db,
		Generator: generator,
		AuthSvc:   authSvc,
		Tokens:    tokens,
	}, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	drainCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(drainCtx); err != nil {
		log.Error().Err(err).Msg("server drain")
	}
	if err := shutdownOTel(drainCtx); err != nil {
		log.Error().Err(err).Msg("tracer shutdown")
	}
	log.Info().Msg("server stopped")
}
