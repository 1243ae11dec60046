// Package app wires configuration to adapters and use cases.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	"PaperReview/internal/assistant"
	"PaperReview/internal/config"
	"PaperReview/internal/domain"
	"PaperReview/internal/infrastructure/download"
	"PaperReview/internal/infrastructure/llm"
	"PaperReview/internal/infrastructure/storage"
	"PaperReview/internal/infrastructure/telegram"
	"PaperReview/internal/logging"
	"PaperReview/internal/metrics"
	"PaperReview/internal/ports"
	"PaperReview/internal/usecase"
)

// Application owns the wired pipeline and its shared resources.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	db       *sql.DB
	reviewer *usecase.Reviewer
	reporter *usecase.Reporter
}

// New builds a runnable application instance from configuration.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	store := storage.New(db)

	client := llm.New(cfg.OpenAI)
	invoker := assistant.NewInvoker(
		client,
		assistant.NewMemoryCache(),
		assistant.DefaultRetryPolicy(),
		cfg.OpenAI.MaxOutputTokens,
		baseLogger.With("component", "invoker"),
	)

	registry, err := assistant.Defaults(cfg.OpenAI.Model)
	if err != nil {
		return nil, fmt.Errorf("build assistant registry: %w", err)
	}

	topic, err := assistant.NewTopicSummary(registry, invoker)
	if err != nil {
		return nil, err
	}
	triage, err := assistant.NewTriage(registry, invoker, store, cfg.Review.MaxBodyChars,
		baseLogger.With("component", "triage"))
	if err != nil {
		return nil, err
	}
	general, err := assistant.NewGeneralReviewer(registry, invoker)
	if err != nil {
		return nil, err
	}
	experts, err := assistant.Experts(registry, invoker)
	if err != nil {
		return nil, err
	}

	fetcher := download.New(cfg.Downloader.Dir, cfg.Downloader.Timeout(),
		baseLogger.With("component", "download"))

	reviewer := usecase.NewReviewer(usecase.ReviewerDeps{
		Feed:         store,
		Publications: store,
		Scores:       store,
		Fetcher:      fetcher,
		Topic:        topic,
		Triage:       triage,
		General:      general,
		Experts:      experts,
		Logger:       baseLogger.With("component", "reviewer"),
	})

	var notifier ports.Notifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		notifier = telegram.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	}

	daily, err := assistant.NewDailyReport(registry, invoker)
	if err != nil {
		return nil, err
	}
	reporter := usecase.NewReporter(store, daily, notifier, cfg.Review.ReportTopK,
		baseLogger.With("component", "reporter"))

	application := &Application{
		cfg:      cfg,
		logger:   baseLogger,
		db:       db,
		reviewer: reviewer,
		reporter: reporter,
	}
	application.serveMetrics()
	return application, nil
}

// ReviewOne processes a single paper by arXiv id.
func (a *Application) ReviewOne(ctx context.Context, arxivID string) (*domain.PaperScores, error) {
	return a.reviewer.ReviewOne(ctx, arxivID)
}

// ReviewBatch processes every unscored feed paper.
func (a *Application) ReviewBatch(ctx context.Context) (usecase.BatchSummary, error) {
	return a.reviewer.ProcessUnscored(ctx, a.cfg.Review.Workers)
}

// DailyReport generates and publishes the digest for one day.
func (a *Application) DailyReport(ctx context.Context, day time.Time) (string, error) {
	return a.reporter.Run(ctx, day)
}

// Close releases shared resources.
func (a *Application) Close() error {
	return a.db.Close()
}

// serveMetrics starts the Prometheus listener when an address is
// configured.
func (a *Application) serveMetrics() {
	addr := a.cfg.Metrics.Addr
	if addr == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	go func() {
		a.logger.Info("metrics listener started", "addr", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			a.logger.Error("metrics listener stopped", "error", err)
		}
	}()
}
