package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/samber/do/v2"

	configloader "github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/external/config"
	llmimpl "github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/external/llm"
	responderimpl "github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/external/responder"
	slackimpl "github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/external/slack"
	"github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/internal/config"
	"github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/internal/history"
	serverpkg "github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/internal/server"
	"github.com/brandonj-taboola/FDE-Exercise-Slack-Channel-Summarizer/internal/summarize"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	slog.Info("startup: loading configuration")
	cfg := mustLoadConfig()
	initLogger(cfg)
	slog.Info("startup: configuration loaded", "env", cfg.Env, "port", cfg.Port)

	slog.Info("startup: building dependency graph")
	injector := setupDI(cfg)

	runServer(cfg, injector)
}

func mustLoadConfig() *config.Config {
	cfg, err := configloader.Load()
	if err != nil {
		slog.Error("config validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

func initLogger(cfg *config.Config) {
	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))
}

func setupDI(cfg *config.Config) do.Injector {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	slackimpl.RegisterDI(injector)
	llmimpl.RegisterDI(injector)
	responderimpl.RegisterDI(injector)
	history.RegisterDI(injector)
	summarize.RegisterDI(injector)
	serverpkg.RegisterDI(injector)

	return injector
}

func runServer(cfg *config.Config, injector do.Injector) {
	srv, err := do.Invoke[*serverpkg.Server](injector)
	if err != nil {
		slog.Error("failed to resolve server", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: srv.Router(),
	}

	done := make(chan struct{})
	go func() {
		slog.Info("startup: listening", "addr", httpServer.Addr, "endpoint", "/slack/summarize")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
		}
		close(done)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		slog.Info("shutting down")
	case <-done:
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("http shutdown failed", "error", err)
	}
}
