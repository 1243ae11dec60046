package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PaperReview/internal/assistant"
	"PaperReview/internal/domain"
)

type fakeReportStore struct {
	items []domain.ScoredPublication
	day   time.Time
	limit int
}

func (s *fakeReportStore) ListTopScored(_ context.Context, day time.Time, limit int) ([]domain.ScoredPublication, error) {
	s.day = day
	s.limit = limit
	return s.items, nil
}

type fakeNotifier struct {
	digests []string
	err     error
}

func (n *fakeNotifier) PublishDigest(_ context.Context, digest string) error {
	if n.err != nil {
		return n.err
	}
	n.digests = append(n.digests, digest)
	return nil
}

func newTestReporter(t *testing.T, client *routingClient, store *fakeReportStore, notifier *fakeNotifier, topK int) *Reporter {
	t.Helper()
	reg, err := assistant.Defaults("test-model")
	require.NoError(t, err)
	inv := assistant.NewInvoker(client, assistant.NewMemoryCache(), assistant.RetryPolicy{
		MaxAttempts: 2,
		BackoffBase: time.Millisecond,
	}, 1000, nil)
	daily, err := assistant.NewDailyReport(reg, inv)
	require.NoError(t, err)
	return NewReporter(store, daily, notifier, topK, nil)
}

func scoredItem(id string, weighted float64) domain.ScoredPublication {
	return domain.ScoredPublication{
		Publication: domain.Publication{PaperID: id, Title: "Paper " + id, Abstract: "abstract"},
		Scores: domain.PaperScores{
			PaperID:       id,
			WeightedScore: weighted,
			Recommend:     true,
			AIReviewer:    "reviewer_general",
			ReviewStatus:  domain.ReviewCompleted,
		},
	}
}

func TestReporterPublishesDigest(t *testing.T) {
	client := defaultClient()
	client.dailyResp = `{"report": "Two strong papers today."}`
	store := &fakeReportStore{items: []domain.ScoredPublication{
		scoredItem("2408.10001", 7.2),
		scoredItem("2408.10002", 6.5),
	}}
	notifier := &fakeNotifier{}
	reporter := newTestReporter(t, client, store, notifier, 10)

	day := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	report, err := reporter.Run(context.Background(), day)
	require.NoError(t, err)

	assert.Equal(t, "Two strong papers today.", report)
	require.Len(t, notifier.digests, 1)
	assert.Equal(t, report, notifier.digests[0])
	assert.Equal(t, day, store.day)
	assert.Equal(t, 10, store.limit)
}

func TestReporterEmptyDaySkipsModelAndNotifier(t *testing.T) {
	client := defaultClient()
	notifier := &fakeNotifier{}
	reporter := newTestReporter(t, client, &fakeReportStore{}, notifier, 10)

	report, err := reporter.Run(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, report)
	assert.Empty(t, notifier.digests)
}

func TestReporterNotifierFailureSurfacesReport(t *testing.T) {
	client := defaultClient()
	client.dailyResp = `{"report": "digest"}`
	store := &fakeReportStore{items: []domain.ScoredPublication{scoredItem("2408.10003", 5.0)}}
	notifier := &fakeNotifier{err: errors.New("chat unreachable")}
	reporter := newTestReporter(t, client, store, notifier, 5)

	report, err := reporter.Run(context.Background(), time.Now())
	require.Error(t, err)
	assert.Equal(t, "digest", report, "the generated report is returned even when publishing fails")
}
