package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"PaperReview/internal/domain"
)

// fakeFeed serves preset papers.
type fakeFeed struct {
	papers map[string]domain.Paper
	order  []string
}

func newFakeFeed(papers ...domain.Paper) *fakeFeed {
	feed := &fakeFeed{papers: map[string]domain.Paper{}}
	for _, p := range papers {
		feed.papers[p.ArxivID] = p
		feed.order = append(feed.order, p.ArxivID)
	}
	return feed
}

func (f *fakeFeed) GetPaper(_ context.Context, arxivID string) (*domain.Paper, error) {
	p, ok := f.papers[arxivID]
	if !ok {
		return nil, fmt.Errorf("paper %s not found", arxivID)
	}
	return &p, nil
}

func (f *fakeFeed) ListUnscored(_ context.Context) ([]domain.Paper, error) {
	var out []domain.Paper
	for _, id := range f.order {
		out = append(out, f.papers[id])
	}
	return out, nil
}

// fakeStore keeps publications and scores in memory.
type fakeStore struct {
	mu           sync.Mutex
	pubs         map[string]domain.Publication
	scores       map[string]domain.PaperScores
	pubUpserts   int
	scoreUpserts int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		pubs:   map[string]domain.Publication{},
		scores: map[string]domain.PaperScores{},
	}
}

func (s *fakeStore) GetPublication(_ context.Context, paperID string) (*domain.Publication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pub, ok := s.pubs[paperID]
	if !ok {
		return nil, nil
	}
	return &pub, nil
}

func (s *fakeStore) UpsertPublication(_ context.Context, pub *domain.Publication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pubs[pub.PaperID] = *pub
	s.pubUpserts++
	return nil
}

func (s *fakeStore) GetScores(_ context.Context, paperID string) (*domain.PaperScores, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	scores, ok := s.scores[paperID]
	if !ok {
		return nil, nil
	}
	return &scores, nil
}

func (s *fakeStore) UpsertScores(_ context.Context, scores *domain.PaperScores) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores[scores.PaperID] = *scores
	s.scoreUpserts++
	return nil
}

func (s *fakeStore) Lookup(_ context.Context, _ string) (string, error) {
	return "", nil
}

func (s *fakeStore) storedScores(paperID string) (domain.PaperScores, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	scores, ok := s.scores[paperID]
	return scores, ok
}

func (s *fakeStore) storedPublication(paperID string) (domain.Publication, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pub, ok := s.pubs[paperID]
	return pub, ok
}

// fakeFetcher serves preset text lines; papers in failing fail Ensure.
type fakeFetcher struct {
	lines   map[string][]string
	failing map[string]bool
}

func (f *fakeFetcher) Ensure(_ context.Context, paper domain.Paper) (string, error) {
	if f.failing[paper.ArxivID] {
		return "", errors.New("download refused")
	}
	return "/tmp/pdf/" + paper.ArxivID + ".pdf", nil
}

func (f *fakeFetcher) Lines(path string) ([]string, error) {
	for id, lines := range f.lines {
		if strings.Contains(path, id) {
			return lines, nil
		}
	}
	return nil, fmt.Errorf("no fixture for %s", path)
}

// routingClient dispatches canned responses by assistant instruction.
// Expert responses are consumed in roster order.
type routingClient struct {
	mu             sync.Mutex
	topicResp      string
	topicErr       error
	triageResp     string
	triageErr      error
	generalResp    string
	generalErr     error
	expertResps    []string
	expertErrs     []error
	dailyResp      string
	expertCalls    int
	topicCalls     int
	triageCalls    int
	generalCalls   int
	expertPrompts  []string
	generalPrompts []string
}

func (c *routingClient) Submit(_ context.Context, _, instructions, input string, _ int) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case strings.Contains(instructions, "paper analyst"):
		c.topicCalls++
		if c.topicErr != nil {
			return "", c.topicErr
		}
		return c.topicResp, nil
	case strings.Contains(instructions, "senior academic reviewer"):
		c.triageCalls++
		if c.triageErr != nil {
			return "", c.triageErr
		}
		return c.triageResp, nil
	case strings.Contains(instructions, "preliminary scores"):
		i := c.expertCalls
		c.expertCalls++
		c.expertPrompts = append(c.expertPrompts, input)
		if i < len(c.expertErrs) && c.expertErrs[i] != nil {
			return "", c.expertErrs[i]
		}
		if i < len(c.expertResps) {
			return c.expertResps[i], nil
		}
		return `{"score": [], "recommend": "no"}`, nil
	case strings.Contains(instructions, "five dimensions"):
		c.generalCalls++
		c.generalPrompts = append(c.generalPrompts, input)
		if c.generalErr != nil {
			return "", c.generalErr
		}
		return c.generalResp, nil
	case strings.Contains(instructions, "daily research digest"):
		return c.dailyResp, nil
	}
	return "", fmt.Errorf("unexpected instruction: %.60s", instructions)
}

// reviewJSON renders a reviewer reply with uniform per-dimension scores.
func reviewJSON(innov, perf, simp, reus, auth float64, recommend string, confidence float64) string {
	return fmt.Sprintf(`{
		"score": [
			{"innovation": %.2f, "reason": "r1"},
			{"performance": %.2f, "reason": "r2"},
			{"simplicity": %.2f, "reason": "r3"},
			{"reusability": %.2f, "reason": "r4"},
			{"authority": %.2f, "reason": "r5"}
		],
		"recommend": %q,
		"reason": "because",
		"who_should_read": "researchers",
		"confidence": %.2f
	}`, innov, perf, simp, reus, auth, recommend, confidence)
}

var paperLines = []string{
	"Abstract",
	"We propose a faster attention mechanism.",
	"Introduction",
	"Attention is expensive.",
	"Conclusion",
	"Our method halves the cost.",
	"References",
	"[1] Vaswani et al.",
}

func testPaper(id string) domain.Paper {
	return domain.Paper{
		ArxivID:   id,
		Title:     "Faster Attention " + id,
		Summary:   "feed abstract for " + id,
		PDFURL:    "https://arxiv.org/pdf/" + id,
		Published: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		Authors:   []string{"A. Author"},
	}
}
