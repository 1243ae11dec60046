package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"PaperReview/internal/assistant"
	"PaperReview/internal/domain"
	"PaperReview/internal/ports"
)

// Reporter assembles the daily digest: the day's top finished reviews,
// narrated by the report assistant and published to the notifier.
type Reporter struct {
	store    ports.ReportStore
	daily    *assistant.DailyReport
	notifier ports.Notifier
	topK     int
	logger   *slog.Logger
}

// NewReporter constructs the digest workflow.
func NewReporter(store ports.ReportStore, daily *assistant.DailyReport, notifier ports.Notifier, topK int, logger *slog.Logger) *Reporter {
	if topK < 1 {
		topK = 10
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{store: store, daily: daily, notifier: notifier, topK: topK, logger: logger}
}

// Run generates and publishes the digest for one day. A day with no
// finished reviews yields an empty report and no notification.
func (r *Reporter) Run(ctx context.Context, day time.Time) (string, error) {
	items, err := r.store.ListTopScored(ctx, day, r.topK)
	if err != nil {
		return "", fmt.Errorf("load top scored: %w", err)
	}
	if len(items) == 0 {
		r.logger.Info("no finished reviews for day", "day", day.Format("2006-01-02"))
		return "", nil
	}

	payload, err := digestPayload(items)
	if err != nil {
		return "", fmt.Errorf("build digest payload: %w", err)
	}

	report, err := r.daily.Generate(ctx, day.Format("2006-01-02"), r.topK, payload)
	if err != nil {
		return "", fmt.Errorf("generate daily report: %w", err)
	}

	if r.notifier != nil {
		if err := r.notifier.PublishDigest(ctx, report); err != nil {
			return report, fmt.Errorf("publish digest: %w", err)
		}
	}
	r.logger.Info("daily report published", "day", day.Format("2006-01-02"), "papers", len(items))
	return report, nil
}

// digestPayload serializes the scored papers for the report prompt.
func digestPayload(items []domain.ScoredPublication) (string, error) {
	type entry struct {
		PaperID       string  `json:"paper_id"`
		Title         string  `json:"title"`
		Abstract      string  `json:"abstract"`
		WeightedScore float64 `json:"weighted_score"`
		Recommend     bool    `json:"recommend"`
		Reason        string  `json:"reason"`
		WhoShouldRead string  `json:"who_should_read"`
		Reviewer      string  `json:"reviewer"`
		PDFURL        string  `json:"pdf_url"`
	}

	entries := make([]entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, entry{
			PaperID:       item.Publication.PaperID,
			Title:         item.Publication.Title,
			Abstract:      clip(item.Publication.Abstract, 600),
			WeightedScore: item.Scores.WeightedScore,
			Recommend:     item.Scores.Recommend,
			Reason:        item.Scores.RecommendReason,
			WhoShouldRead: item.Scores.WhoShouldRead,
			Reviewer:      item.Scores.AIReviewer,
			PDFURL:        item.Publication.PDFURL,
		})
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
