package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shouni/gemini-floorplan-kit/internal/config"
	"github.com/shouni/gemini-floorplan-kit/internal/handler"
	"github.com/shouni/gemini-floorplan-kit/pkg/generator"
	"github.com/shouni/gemini-floorplan-kit/pkg/planner"
	"github.com/shouni/gemini-floorplan-kit/pkg/session"
	"github.com/shouni/gemini-floorplan-kit/pkg/status"
	"google.golang.org/genai"
)

var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	if err := run(); err != nil {
		slog.Error("サーバーを起動できませんでした", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("設定の読み込みに失敗しました: %w", err)
	}
	setupLogger(os.Stdout, cfg.Logging)
	logStartup(cfg.Gemini.Model)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return fmt.Errorf("Geminiクライアントの初期化に失敗しました: %w", err)
	}

	gen, err := generator.NewImagenGenerator(client.Models, cfg.Gemini.Model)
	if err != nil {
		return err
	}
	sess, err := session.New(planner.NewForm(), gen, status.NewRotator(cfg.StatusInterval))
	if err != nil {
		return err
	}

	gin.SetMode(cfg.Server.GinMode)
	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           handler.NewRouter(sess, cfg.Server.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTPサーバーを起動します", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("シャットダウンします")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func setupLogger(w io.Writer, cfg config.LoggingConfig) {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var h slog.Handler
	if cfg.Format == "text" {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	slog.SetDefault(slog.New(h))
}

func logStartup(model string) {
	slog.Info("gemini-floorplan-kit を起動します", "version", Version, "commit", GitCommit, "model", model)
}
