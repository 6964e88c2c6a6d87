package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rankscore-ai/rankscore/analyzer"
	"github.com/rankscore-ai/rankscore/api"
	"github.com/rankscore-ai/rankscore/api/middleware"
	"github.com/rankscore-ai/rankscore/cache"
	"github.com/rankscore-ai/rankscore/config"
	"github.com/rankscore-ai/rankscore/fetcher"
	"github.com/rankscore-ai/rankscore/leads"
	"github.com/rankscore-ai/rankscore/llm"
	"github.com/rankscore-ai/rankscore/mailer"
	"github.com/rankscore-ai/rankscore/payment"
	"github.com/rankscore-ai/rankscore/store"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("rankscore starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"db", cfg.Store.Path,
	)

	// ── 3. Open the history store ────────────────────────────────────
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		slog.Error("failed to open history store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	// ── 4. Initialise analyzer pipeline ──────────────────────────────
	f := fetcher.New(cfg.Fetch)
	an := analyzer.New(f, cfg.Analyzer)

	// ── 5. Optional integrations (each disabled when unconfigured) ───
	pay := payment.New(cfg.Stripe)
	if pay == nil {
		slog.Warn("Stripe not configured, checkout disabled")
	}

	m := mailer.New(cfg.Mail)
	if m == nil {
		slog.Warn("SMTP not configured, access codes will not be mailed")
	}

	sink, err := leads.New(context.Background(), cfg.Leads)
	if err != nil {
		slog.Error("failed to initialise lead sheet", "error", err)
		os.Exit(1)
	}
	if sink == nil {
		slog.Warn("lead sheet not configured, leads will not be captured")
	}

	llmClient := llm.New(cfg.LLM, nil)
	if llmClient == nil {
		slog.Warn("LLM not configured, report summaries disabled")
	}

	// ── 6. Sessions, cache, router ───────────────────────────────────
	sessions := middleware.NewSessions(cfg.Session.TTL)
	cc := cache.New(cfg.Cache.MaxEntries)

	startTime := time.Now()
	router := api.NewRouter(api.Deps{
		Analyzer: an,
		Store:    st,
		Cache:    cc,
		Sessions: sessions,
		Payment:  pay,
		Mailer:   m,
		Leads:    sink,
		LLM:      llmClient,
	}, cfg, startTime)

	// ── 7. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 8. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	// Give in-flight requests 5 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	// st.Close() runs via defer — checkpoints the WAL.
	slog.Info("rankscore stopped")
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
