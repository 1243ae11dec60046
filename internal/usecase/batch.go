package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"PaperReview/internal/domain"
	"PaperReview/internal/metrics"
)

// BatchSummary reports one batch run's outcome counts.
type BatchSummary struct {
	RunID     string
	Total     int
	Succeeded int
	Failed    int
}

// ProcessBatch reviews the given papers with a bounded worker pool and
// returns the successful score records — possibly fewer than the input
// papers. A failing paper is logged and excluded; it never stops its
// siblings.
func (r *Reviewer) ProcessBatch(ctx context.Context, papers []domain.Paper, workers int) []domain.PaperScores {
	return r.processList(ctx, uuid.NewString(), papers, workers)
}

// ProcessUnscored reviews every feed paper without a scores row.
func (r *Reviewer) ProcessUnscored(ctx context.Context, workers int) (BatchSummary, error) {
	summary := BatchSummary{RunID: uuid.NewString()}

	papers, err := r.feed.ListUnscored(ctx)
	if err != nil {
		return summary, fmt.Errorf("list unscored papers: %w", err)
	}
	summary.Total = len(papers)
	if len(papers) == 0 {
		r.logger.Info("no unscored papers", "run", summary.RunID)
		return summary, nil
	}

	results := r.processList(ctx, summary.RunID, papers, workers)
	summary.Succeeded = len(results)
	summary.Failed = summary.Total - summary.Succeeded
	return summary, nil
}

func (r *Reviewer) processList(ctx context.Context, runID string, papers []domain.Paper, workers int) []domain.PaperScores {
	if workers < 1 {
		workers = 1
	}
	log := r.logger.With("run", runID)
	log.Info("batch started", "papers", len(papers), "workers", workers)

	var (
		mu      sync.Mutex
		results []domain.PaperScores
	)
	var group errgroup.Group
	group.SetLimit(workers)

	for _, paper := range papers {
		paper := paper
		group.Go(func() error {
			scores, err := r.Process(ctx, paper)
			if err != nil {
				metrics.PapersProcessed.WithLabelValues("failed").Inc()
				log.Error("paper review failed", "paper", paper.ArxivID, "error", err)
				return nil
			}
			metrics.PapersProcessed.WithLabelValues(string(scores.ReviewStatus)).Inc()
			mu.Lock()
			results = append(results, *scores)
			mu.Unlock()
			return nil
		})
	}
	_ = group.Wait()

	log.Info("batch finished", "papers", len(papers), "succeeded", len(results))
	return results
}
