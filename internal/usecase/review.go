// Package usecase orchestrates the paper review pipeline: fetch,
// section, enrich, triage, score, and merge expert opinions.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"PaperReview/internal/assistant"
	"PaperReview/internal/domain"
	"PaperReview/internal/extract"
	"PaperReview/internal/ports"
)

// maxFieldChars caps the abstract and conclusion stored on the
// publication row so a malformed extraction cannot bloat prompts.
const maxFieldChars = 4000

// ReviewerDeps wires all driven adapters into the review orchestrator.
type ReviewerDeps struct {
	Feed         ports.PaperFeed
	Publications ports.PublicationStore
	Scores       ports.ScoreStore
	Fetcher      ports.Fetcher
	Topic        *assistant.TopicSummary
	Triage       *assistant.Triage
	General      *assistant.GeneralReviewer
	Experts      []*assistant.DomainExpert
	Logger       *slog.Logger
}

// Reviewer runs one paper through the full review workflow. It is the
// sole writer of publication and score rows, so every stage persists
// its progress before the next one runs and a crashed run resumes where
// it stopped.
type Reviewer struct {
	feed    ports.PaperFeed
	pubs    ports.PublicationStore
	scores  ports.ScoreStore
	fetcher ports.Fetcher
	topic   *assistant.TopicSummary
	triage  *assistant.Triage
	general *assistant.GeneralReviewer
	experts []*assistant.DomainExpert
	logger  *slog.Logger
}

// NewReviewer constructs the orchestrator.
func NewReviewer(deps ReviewerDeps) *Reviewer {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Reviewer{
		feed:    deps.Feed,
		pubs:    deps.Publications,
		scores:  deps.Scores,
		fetcher: deps.Fetcher,
		topic:   deps.Topic,
		triage:  deps.Triage,
		general: deps.General,
		experts: deps.Experts,
		logger:  logger,
	}
}

// ReviewOne loads the feed row for one arXiv id and processes it.
func (r *Reviewer) ReviewOne(ctx context.Context, arxivID string) (*domain.PaperScores, error) {
	paper, err := r.feed.GetPaper(ctx, arxivID)
	if err != nil {
		return nil, fmt.Errorf("load paper %s: %w", arxivID, err)
	}
	return r.Process(ctx, *paper)
}

// Process runs the full workflow for one paper. A paper whose review
// already finished is returned as-is without touching the model.
func (r *Reviewer) Process(ctx context.Context, paper domain.Paper) (*domain.PaperScores, error) {
	log := r.logger.With("paper", paper.ArxivID)

	existing, err := r.scores.GetScores(ctx, paper.ArxivID)
	if err != nil {
		return nil, fmt.Errorf("check existing scores %s: %w", paper.ArxivID, err)
	}
	if existing != nil &&
		(existing.ReviewStatus == domain.ReviewCompleted || existing.ReviewStatus == domain.ReviewRewritten) {
		log.Info("already reviewed, skipping", "status", existing.ReviewStatus)
		return existing, nil
	}

	pub, err := r.loadOrBuildPublication(ctx, paper)
	if err != nil {
		return nil, err
	}

	if err := r.runTopicStage(ctx, pub, log); err != nil {
		return nil, err
	}
	if err := r.runTriageStage(ctx, pub, log); err != nil {
		return nil, err
	}

	return r.runReviewStages(ctx, pub, log)
}

// loadOrBuildPublication returns the stored publication or creates it
// from the PDF: download, parse, section, persist.
func (r *Reviewer) loadOrBuildPublication(ctx context.Context, paper domain.Paper) (*domain.Publication, error) {
	pub, err := r.pubs.GetPublication(ctx, paper.ArxivID)
	if err != nil {
		return nil, fmt.Errorf("load publication %s: %w", paper.ArxivID, err)
	}
	if pub != nil {
		return pub, nil
	}

	path, err := r.fetcher.Ensure(ctx, paper)
	if err != nil {
		return nil, fmt.Errorf("fetch pdf %s: %w", paper.ArxivID, err)
	}
	lines, err := r.fetcher.Lines(path)
	if err != nil {
		return nil, fmt.Errorf("parse pdf %s: %w", paper.ArxivID, err)
	}
	doc, err := extract.Split(lines)
	if err != nil {
		return nil, fmt.Errorf("section paper %s: %w", paper.ArxivID, err)
	}

	abstract := doc.Text("abstract")
	if abstract == "" {
		abstract = paper.Summary
	}
	conclusion := doc.Text("conclusion")
	if conclusion == "" {
		conclusion = doc.Text("summary")
	}

	pub = &domain.Publication{
		PaperID:          paper.ArxivID,
		Title:            paper.Title,
		Year:             paper.Published.Year(),
		PublishDate:      paper.Published,
		Abstract:         clip(abstract, maxFieldChars),
		Conclusion:       clip(conclusion, maxFieldChars),
		ContentRawText:   doc.MainContext(),
		ReferenceRawText: doc.Text("references"),
		PDFPath:          path,
		PDFURL:           paper.PDFURL,
	}
	if err := r.pubs.UpsertPublication(ctx, pub); err != nil {
		return nil, fmt.Errorf("persist publication %s: %w", paper.ArxivID, err)
	}
	return pub, nil
}

// runTopicStage enriches the publication with keywords and topics.
// An exhausted model invocation degrades to no enrichment; only the
// general-review stage is fatal to a paper.
func (r *Reviewer) runTopicStage(ctx context.Context, pub *domain.Publication, log *slog.Logger) error {
	res, err := r.topic.Summarize(ctx, pub)
	if err != nil {
		if isInvocationFailure(err) {
			log.Warn("topic summary unavailable, continuing without enrichment", "error", err)
			return nil
		}
		return fmt.Errorf("topic summary %s: %w", pub.PaperID, err)
	}
	if res.Skipped {
		log.Debug("publication already enriched, topic stage skipped")
		return nil
	}

	pub.Keywords = res.Keywords
	pub.ResearchTopics = res.ResearchTopics
	if err := r.pubs.UpsertPublication(ctx, pub); err != nil {
		return fmt.Errorf("persist topics %s: %w", pub.PaperID, err)
	}
	log.Info("topic stage done", "keywords", len(pub.Keywords), "topics", len(pub.ResearchTopics))
	return nil
}

func (r *Reviewer) runTriageStage(ctx context.Context, pub *domain.Publication, log *slog.Logger) error {
	if pub.TriageQA != "" {
		log.Debug("triage already stored, stage skipped")
		return nil
	}

	qa, err := r.triage.Examine(ctx, pub)
	if err != nil {
		if isInvocationFailure(err) {
			log.Warn("triage unavailable, continuing without its summary", "error", err)
			return nil
		}
		return fmt.Errorf("triage %s: %w", pub.PaperID, err)
	}
	pub.TriageQA = qa
	if err := r.pubs.UpsertPublication(ctx, pub); err != nil {
		return fmt.Errorf("persist triage %s: %w", pub.PaperID, err)
	}
	log.Info("triage stage done")
	return nil
}

// runReviewStages scores the paper: the general reviewer first, then
// every domain expert in roster order, keeping whichever verdict claims
// the highest confidence. Expert failures are logged and skipped; a
// general reviewer failure marks the whole review failed.
func (r *Reviewer) runReviewStages(ctx context.Context, pub *domain.Publication, log *slog.Logger) (*domain.PaperScores, error) {
	scores := &domain.PaperScores{
		PaperID:      pub.PaperID,
		Title:        pub.Title,
		ReviewStatus: domain.ReviewPending,
	}

	general, err := r.general.Review(ctx, pub, pub.TriageQA)
	if err != nil {
		scores.ReviewStatus = domain.ReviewFailed
		scores.ErrorMessage = err.Error()
		scores.AppendLog(fmt.Sprintf("general review failed: %v", err))
		if persistErr := r.scores.UpsertScores(ctx, scores); persistErr != nil {
			log.Error("persist failed review", "error", persistErr)
		}
		return nil, fmt.Errorf("general review %s: %w", pub.PaperID, err)
	}

	best := candidateFromResult(general)
	scores.AppendLog(fmt.Sprintf("general reviewer %s scored with confidence %.2f",
		best.Reviewer, best.Confidence))

	for _, expert := range r.experts {
		res, err := expert.Review(ctx, pub, pub.TriageQA, marshalCandidate(best))
		if err != nil {
			log.Warn("expert review failed", "expert", expert.Name(), "error", err)
			scores.AppendLog(fmt.Sprintf("expert %s failed: %v", expert.Name(), err))
			continue
		}

		challenger := candidateFromResult(res)
		if !challenger.Valid {
			scores.AppendLog(fmt.Sprintf("expert %s returned no confidence score, ignored",
				challenger.Reviewer))
			continue
		}

		var adopted bool
		best, adopted = pickBetter(best, challenger)
		if adopted {
			scores.AppendLog(fmt.Sprintf("expert %s adopted with confidence %.2f",
				challenger.Reviewer, challenger.Confidence))
		} else {
			scores.AppendLog(fmt.Sprintf("expert %s not adopted, confidence %.2f <= %.2f",
				challenger.Reviewer, challenger.Confidence, best.Confidence))
		}
	}

	apply(scores, best)
	scores.ReviewStatus = domain.ReviewCompleted
	if best.Reviewer != general.Reviewer {
		scores.ReviewStatus = domain.ReviewRewritten
	}

	if err := r.scores.UpsertScores(ctx, scores); err != nil {
		return nil, fmt.Errorf("persist scores %s: %w", pub.PaperID, err)
	}
	log.Info("review finished",
		"status", scores.ReviewStatus,
		"reviewer", scores.AIReviewer,
		"weighted", scores.WeightedScore)
	return scores, nil
}

// isInvocationFailure reports whether err is an exhausted model call,
// the one failure the optional stages absorb. Persistence and
// cancellation errors still propagate.
func isInvocationFailure(err error) bool {
	var invErr *assistant.InvocationError
	return errors.As(err, &invErr)
}

// clip caps s at n bytes without splitting a multi-byte rune.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
