// Package storage persists publications, scores, and knowledge-base
// rows in Postgres.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"PaperReview/internal/domain"
	"PaperReview/internal/ports"
)

// Error wraps a storage failure with the operation and row key, so a
// per-paper failure is diagnosable without re-running.
type Error struct {
	Op  string
	Key string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage %s (%s): %v", e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Store implements the pipeline's persistence ports on one *sql.DB.
type Store struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

var (
	_ ports.PaperFeed        = (*Store)(nil)
	_ ports.PublicationStore = (*Store)(nil)
	_ ports.ScoreStore       = (*Store)(nil)
	_ ports.SOTAStore        = (*Store)(nil)
	_ ports.ReportStore      = (*Store)(nil)
)

// New wires a sql.DB implementation.
func New(db *sql.DB) *Store {
	return &Store{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// GetPaper loads one crawler-produced feed row by arXiv id.
func (s *Store) GetPaper(ctx context.Context, arxivID string) (*domain.Paper, error) {
	query := s.sb.
		Select("arxiv_id", "title", "summary", "pdf_url", "published", "authors").
		From("arxiv_papers").
		Where(sq.Eq{"arxiv_id": arxivID})

	sqlText, args, err := query.ToSql()
	if err != nil {
		return nil, &Error{Op: "get paper", Key: arxivID, Err: err}
	}

	var (
		paper   domain.Paper
		authors pq.StringArray
	)
	row := s.db.QueryRowContext(ctx, sqlText, args...)
	err = row.Scan(&paper.ArxivID, &paper.Title, &paper.Summary, &paper.PDFURL, &paper.Published, &authors)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &Error{Op: "get paper", Key: arxivID, Err: fmt.Errorf("not found")}
	}
	if err != nil {
		return nil, &Error{Op: "get paper", Key: arxivID, Err: err}
	}
	paper.Authors = authors
	return &paper, nil
}

// ListUnscored returns feed rows without a PaperScores row, newest
// first — the batch command's work list.
func (s *Store) ListUnscored(ctx context.Context) ([]domain.Paper, error) {
	query := s.sb.
		Select("p.arxiv_id", "p.title", "p.summary", "p.pdf_url", "p.published", "p.authors").
		From("arxiv_papers p").
		LeftJoin("paper_scores s ON s.paper_id = p.arxiv_id").
		Where("s.paper_id IS NULL").
		OrderBy("p.published DESC")

	sqlText, args, err := query.ToSql()
	if err != nil {
		return nil, &Error{Op: "list unscored", Key: "-", Err: err}
	}

	rows, err := s.db.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return nil, &Error{Op: "list unscored", Key: "-", Err: err}
	}
	defer rows.Close()

	var papers []domain.Paper
	for rows.Next() {
		var (
			paper   domain.Paper
			authors pq.StringArray
		)
		if err := rows.Scan(&paper.ArxivID, &paper.Title, &paper.Summary, &paper.PDFURL, &paper.Published, &authors); err != nil {
			return nil, &Error{Op: "list unscored", Key: "-", Err: err}
		}
		paper.Authors = authors
		papers = append(papers, paper)
	}
	if err := rows.Err(); err != nil {
		return nil, &Error{Op: "list unscored", Key: "-", Err: err}
	}
	return papers, nil
}

// GetPublication returns the stored publication or (nil, nil).
func (s *Store) GetPublication(ctx context.Context, paperID string) (*domain.Publication, error) {
	query := s.sb.
		Select("paper_id", "title", "year", "publish_date", "abstract", "conclusion",
			"keywords", "research_topics", "triage_qa", "content_raw_text",
			"reference_raw_text", "pdf_path", "pdf_url").
		From("publications").
		Where(sq.Eq{"paper_id": paperID})

	sqlText, args, err := query.ToSql()
	if err != nil {
		return nil, &Error{Op: "get publication", Key: paperID, Err: err}
	}

	var (
		pub      domain.Publication
		keywords string
		topics   string
	)
	row := s.db.QueryRowContext(ctx, sqlText, args...)
	err = row.Scan(&pub.PaperID, &pub.Title, &pub.Year, &pub.PublishDate, &pub.Abstract,
		&pub.Conclusion, &keywords, &topics, &pub.TriageQA, &pub.ContentRawText,
		&pub.ReferenceRawText, &pub.PDFPath, &pub.PDFURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &Error{Op: "get publication", Key: paperID, Err: err}
	}
	pub.Keywords = splitList(keywords)
	pub.ResearchTopics = splitList(topics)
	return &pub, nil
}

// UpsertPublication writes the publication row keyed by paper id.
func (s *Store) UpsertPublication(ctx context.Context, pub *domain.Publication) error {
	query := s.sb.
		Insert("publications").
		Columns("paper_id", "title", "year", "publish_date", "abstract", "conclusion",
			"keywords", "research_topics", "triage_qa", "content_raw_text",
			"reference_raw_text", "pdf_path", "pdf_url").
		Values(pub.PaperID, pub.Title, pub.Year, pub.PublishDate, pub.Abstract, pub.Conclusion,
			joinList(pub.Keywords), joinList(pub.ResearchTopics), pub.TriageQA,
			pub.ContentRawText, pub.ReferenceRawText, pub.PDFPath, pub.PDFURL).
		Suffix(`ON CONFLICT (paper_id) DO UPDATE SET
			keywords = EXCLUDED.keywords,
			research_topics = EXCLUDED.research_topics,
			triage_qa = EXCLUDED.triage_qa,
			updated_at = NOW()`)

	sqlText, args, err := query.ToSql()
	if err != nil {
		return &Error{Op: "upsert publication", Key: pub.PaperID, Err: err}
	}
	if _, err := s.db.ExecContext(ctx, sqlText, args...); err != nil {
		return &Error{Op: "upsert publication", Key: pub.PaperID, Err: err}
	}
	return nil
}

// GetScores returns the stored review or (nil, nil).
func (s *Store) GetScores(ctx context.Context, paperID string) (*domain.PaperScores, error) {
	query := s.sb.
		Select("paper_id", "title",
			"innovation_score", "innovation_reason",
			"performance_score", "performance_reason",
			"simplicity_score", "simplicity_reason",
			"reusability_score", "reusability_reason",
			"authority_score", "authority_reason",
			"weighted_score", "recommend", "recommend_reason", "who_should_read",
			"confidence_score", "ai_reviewer", "review_status", "error_message", "log").
		From("paper_scores").
		Where(sq.Eq{"paper_id": paperID})

	sqlText, args, err := query.ToSql()
	if err != nil {
		return nil, &Error{Op: "get scores", Key: paperID, Err: err}
	}

	var scores domain.PaperScores
	row := s.db.QueryRowContext(ctx, sqlText, args...)
	err = row.Scan(&scores.PaperID, &scores.Title,
		&scores.Innovation.Score, &scores.Innovation.Reason,
		&scores.Performance.Score, &scores.Performance.Reason,
		&scores.Simplicity.Score, &scores.Simplicity.Reason,
		&scores.Reusability.Score, &scores.Reusability.Reason,
		&scores.Authority.Score, &scores.Authority.Reason,
		&scores.WeightedScore, &scores.Recommend, &scores.RecommendReason, &scores.WhoShouldRead,
		&scores.ConfidenceScore, &scores.AIReviewer, &scores.ReviewStatus,
		&scores.ErrorMessage, &scores.Log)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &Error{Op: "get scores", Key: paperID, Err: err}
	}
	return &scores, nil
}

// UpsertScores writes the review row keyed by paper id.
func (s *Store) UpsertScores(ctx context.Context, scores *domain.PaperScores) error {
	query := s.sb.
		Insert("paper_scores").
		Columns("paper_id", "title",
			"innovation_score", "innovation_reason",
			"performance_score", "performance_reason",
			"simplicity_score", "simplicity_reason",
			"reusability_score", "reusability_reason",
			"authority_score", "authority_reason",
			"weighted_score", "recommend", "recommend_reason", "who_should_read",
			"confidence_score", "ai_reviewer", "review_status", "error_message", "log").
		Values(scores.PaperID, scores.Title,
			scores.Innovation.Score, scores.Innovation.Reason,
			scores.Performance.Score, scores.Performance.Reason,
			scores.Simplicity.Score, scores.Simplicity.Reason,
			scores.Reusability.Score, scores.Reusability.Reason,
			scores.Authority.Score, scores.Authority.Reason,
			scores.WeightedScore, scores.Recommend, scores.RecommendReason, scores.WhoShouldRead,
			scores.ConfidenceScore, scores.AIReviewer, string(scores.ReviewStatus),
			scores.ErrorMessage, scores.Log).
		Suffix(`ON CONFLICT (paper_id) DO UPDATE SET
			innovation_score = EXCLUDED.innovation_score,
			innovation_reason = EXCLUDED.innovation_reason,
			performance_score = EXCLUDED.performance_score,
			performance_reason = EXCLUDED.performance_reason,
			simplicity_score = EXCLUDED.simplicity_score,
			simplicity_reason = EXCLUDED.simplicity_reason,
			reusability_score = EXCLUDED.reusability_score,
			reusability_reason = EXCLUDED.reusability_reason,
			authority_score = EXCLUDED.authority_score,
			authority_reason = EXCLUDED.authority_reason,
			weighted_score = EXCLUDED.weighted_score,
			recommend = EXCLUDED.recommend,
			recommend_reason = EXCLUDED.recommend_reason,
			who_should_read = EXCLUDED.who_should_read,
			confidence_score = EXCLUDED.confidence_score,
			ai_reviewer = EXCLUDED.ai_reviewer,
			review_status = EXCLUDED.review_status,
			error_message = EXCLUDED.error_message,
			log = EXCLUDED.log,
			updated_at = NOW()`)

	sqlText, args, err := query.ToSql()
	if err != nil {
		return &Error{Op: "upsert scores", Key: scores.PaperID, Err: err}
	}
	if _, err := s.db.ExecContext(ctx, sqlText, args...); err != nil {
		return &Error{Op: "upsert scores", Key: scores.PaperID, Err: err}
	}
	return nil
}

// Lookup returns the stored state-of-the-art context for one keyword,
// "" when nothing is known. Absence is never an error.
func (s *Store) Lookup(ctx context.Context, keyword string) (string, error) {
	query := s.sb.
		Select("research_context").
		From("sota_contexts").
		Where(sq.Eq{"keyword": keyword})

	sqlText, args, err := query.ToSql()
	if err != nil {
		return "", &Error{Op: "sota lookup", Key: keyword, Err: err}
	}

	var context string
	err = s.db.QueryRowContext(ctx, sqlText, args...).Scan(&context)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", &Error{Op: "sota lookup", Key: keyword, Err: err}
	}
	return context, nil
}

// ListTopScored returns the day's finished reviews ordered by weighted
// score, for the daily report.
func (s *Store) ListTopScored(ctx context.Context, day time.Time, limit int) ([]domain.ScoredPublication, error) {
	dayKey := day.Format("2006-01-02")
	query := s.sb.
		Select("p.paper_id", "p.title", "p.abstract", "p.conclusion", "p.publish_date", "p.pdf_url",
			"s.weighted_score", "s.recommend", "s.recommend_reason", "s.who_should_read",
			"s.confidence_score", "s.ai_reviewer", "s.review_status").
		From("publications p").
		Join("paper_scores s ON s.paper_id = p.paper_id").
		Where(sq.Eq{"p.publish_date": dayKey}).
		Where(sq.Eq{"s.review_status": []string{string(domain.ReviewCompleted), string(domain.ReviewRewritten)}}).
		OrderBy("s.weighted_score DESC").
		Limit(uint64(limit))

	sqlText, args, err := query.ToSql()
	if err != nil {
		return nil, &Error{Op: "list top scored", Key: dayKey, Err: err}
	}

	rows, err := s.db.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return nil, &Error{Op: "list top scored", Key: dayKey, Err: err}
	}
	defer rows.Close()

	var items []domain.ScoredPublication
	for rows.Next() {
		var item domain.ScoredPublication
		err := rows.Scan(&item.Publication.PaperID, &item.Publication.Title,
			&item.Publication.Abstract, &item.Publication.Conclusion,
			&item.Publication.PublishDate, &item.Publication.PDFURL,
			&item.Scores.WeightedScore, &item.Scores.Recommend, &item.Scores.RecommendReason,
			&item.Scores.WhoShouldRead, &item.Scores.ConfidenceScore,
			&item.Scores.AIReviewer, &item.Scores.ReviewStatus)
		if err != nil {
			return nil, &Error{Op: "list top scored", Key: dayKey, Err: err}
		}
		item.Scores.PaperID = item.Publication.PaperID
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, &Error{Op: "list top scored", Key: dayKey, Err: err}
	}
	return items, nil
}

func joinList(values []string) string {
	return strings.Join(values, ", ")
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
