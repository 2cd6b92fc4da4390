package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/msomdec/careerforge/internal/github"
	"github.com/msomdec/careerforge/internal/handler"
	"github.com/msomdec/careerforge/internal/llm"
	"github.com/msomdec/careerforge/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	Long:  "Apply migrations and serve HTTP; blocks until SIGINT/SIGTERM.",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := setupLogger(cfg.LogLevel, debug)

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return err
	}
	defer st.db.Close()

	if err := st.db.Migrate(ctx); err != nil {
		logger.Error("failed to run migrations", "error", err)
		return err
	}
	logger.Info("database migrations applied")

	files, err := st.fileStore(ctx, cfg.Storage)
	if err != nil {
		logger.Error("failed to open file storage", "error", err)
		return err
	}

	gemini, err := llm.NewGemini(ctx, cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.BaseURL)
	if err != nil {
		logger.Error("failed to create model client", "error", err)
		return err
	}
	gen := llm.NewRetrying(gemini, llm.RetryConfig{
		MaxAttempts: cfg.LLM.MaxAttempts,
		Timeout:     cfg.LLM.Timeout,
	}, logger)
	logger.Info("model client configured", "model", gemini.Model(), "max_attempts", cfg.LLM.MaxAttempts)

	profiles := github.NewClient(cfg.GitHub.APIURL, cfg.GitHub.Token, nil)

	svc := handler.Services{
		Auth:        service.NewAuthService(st.users, st.accounts, cfg.JWTSecret, cfg.BcryptCost),
		ATS:         service.NewATSService(gen, st.scans, files),
		CoverLetter: service.NewCoverLetterService(gen, st.letters),
		LinkedIn:    service.NewLinkedInService(gen),
		Roast:       service.NewRoastService(gen, profiles, st.roasts),
		Negotiation: service.NewNegotiationService(gen, logger),
		// One model call per five seconds per user, bursts of five.
		Limiter: service.NewTokenBucket(ctx, 0.2, 5),
	}

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, svc, cfg.CookieSecure)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.SecurityHeaders(mux),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", "error", err)
			return err
		}
	case <-ctx.Done():
	}
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
		return err
	}
	logger.Info("server stopped")
	return nil
}
