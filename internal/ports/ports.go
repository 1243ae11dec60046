package ports

import (
	"context"
	"time"

	"PaperReview/internal/domain"
)

// PaperFeed reads crawler-produced paper rows. The crawler itself is an
// external collaborator; the pipeline only consumes its output.
type PaperFeed interface {
	GetPaper(ctx context.Context, arxivID string) (*domain.Paper, error)
	ListUnscored(ctx context.Context) ([]domain.Paper, error)
}

// PublicationStore persists extracted publications keyed by paper id.
// GetPublication returns (nil, nil) when no row exists.
type PublicationStore interface {
	GetPublication(ctx context.Context, paperID string) (*domain.Publication, error)
	UpsertPublication(ctx context.Context, pub *domain.Publication) error
}

// ScoreStore persists review scores, 1:1 with publications.
// GetScores returns (nil, nil) when no row exists.
type ScoreStore interface {
	GetScores(ctx context.Context, paperID string) (*domain.PaperScores, error)
	UpsertScores(ctx context.Context, scores *domain.PaperScores) error
}

// SOTAStore looks up prior state-of-the-art summaries by keyword.
// Absence is not an error: Lookup returns "" when nothing is known.
type SOTAStore interface {
	Lookup(ctx context.Context, keyword string) (string, error)
}

// ReportStore reads finished reviews for the daily digest.
type ReportStore interface {
	ListTopScored(ctx context.Context, day time.Time, limit int) ([]domain.ScoredPublication, error)
}

// ModelClient submits one request to a generative text model and
// returns the raw text payload.
type ModelClient interface {
	Submit(ctx context.Context, model, instructions, input string, maxOutputTokens int) (string, error)
}

// Fetcher resolves a paper's PDF to a local file and turns it into
// cleaned text lines.
type Fetcher interface {
	Ensure(ctx context.Context, paper domain.Paper) (string, error)
	Lines(path string) ([]string, error)
}

// PromptCache maps exact request text to a previously parsed response.
// Implementations must be safe for concurrent use.
type PromptCache interface {
	Get(prompt string) (map[string]any, bool)
	Put(prompt string, parsed map[string]any)
}

// Notifier delivers the daily digest to an outbound channel.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}
