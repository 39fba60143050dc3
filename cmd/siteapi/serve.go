package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/engrainai/siteapi/internal/api"
	"github.com/engrainai/siteapi/internal/captcha"
	"github.com/engrainai/siteapi/internal/config"
	"github.com/engrainai/siteapi/internal/mailer"
	"github.com/engrainai/siteapi/internal/ratelimit"
	"github.com/engrainai/siteapi/internal/store"
	"github.com/engrainai/siteapi/internal/webhook"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server (foreground)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func runServer() error {
	// .env is a development convenience; absence is not an error.
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "no .env file loaded")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Initialize structured logging.
	logLevel := slog.LevelInfo
	if strings.EqualFold(cfg.Log.Level, "debug") {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// All mutable state is built here once and injected; nothing survives a
	// restart and nothing hides in package globals.
	submissions := store.New()
	limiter := ratelimit.New(cfg.RateLimit.Window, cfg.RateLimit.Max)
	contactMailer := mailer.New(cfg.SMTP, logger)
	verifier := captcha.New(cfg.Captcha.SecretKey, nil, logger)
	dispatcher := webhook.New(cfg.Webhook, nil, logger)

	if cfg.Webhook.Enabled() {
		logger.Info("webhook sink enabled")
	} else {
		logger.Info("webhook sink disabled, WEBHOOK_URL or WEBHOOK_API_KEY not set")
	}
	if verifier.Enabled() {
		logger.Info("reCAPTCHA verification enabled")
	}

	handler := api.NewHandler(api.Deps{
		Store:   submissions,
		Mailer:  contactMailer,
		Webhook: dispatcher,
		Captcha: verifier,
		Limiter: limiter,
		Logger:  logger,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		dispatcher.Run(gctx)
		return nil
	})

	g.Go(func() error {
		logger.Info("siteapi listening", "addr", addr, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
