package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PaperReview/internal/domain"
)

func TestProcessBatchIsolatesFailures(t *testing.T) {
	papers := []domain.Paper{testPaper("2408.00001"), testPaper("2408.00002"), testPaper("2408.00003")}
	store := newFakeStore()
	client := defaultClient()
	fetcher := &fakeFetcher{
		lines: map[string][]string{
			"2408.00001": paperLines,
			"2408.00003": paperLines,
		},
		failing: map[string]bool{"2408.00002": true},
	}
	reviewer := newTestReviewer(t, client, store, fetcher, newFakeFeed(papers...))

	results := reviewer.ProcessBatch(context.Background(), papers, 2)

	require.Len(t, results, 2, "the failing paper must be excluded, not propagated")
	ids := map[string]bool{}
	for _, scores := range results {
		ids[scores.PaperID] = true
		assert.Equal(t, domain.ReviewCompleted, scores.ReviewStatus)
	}
	assert.True(t, ids["2408.00001"])
	assert.True(t, ids["2408.00003"])

	_, ok := store.storedScores("2408.00002")
	assert.False(t, ok, "a paper that never reached review must not get a scores row")
}

func TestProcessUnscoredSummarizes(t *testing.T) {
	papers := []domain.Paper{testPaper("2408.00011"), testPaper("2408.00012")}
	store := newFakeStore()
	client := defaultClient()
	fetcher := &fakeFetcher{
		lines:   map[string][]string{"2408.00011": paperLines},
		failing: map[string]bool{"2408.00012": true},
	}
	reviewer := newTestReviewer(t, client, store, fetcher, newFakeFeed(papers...))

	summary, err := reviewer.ProcessUnscored(context.Background(), 2)
	require.NoError(t, err)

	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
}

func TestProcessUnscoredEmptyFeed(t *testing.T) {
	store := newFakeStore()
	reviewer := newTestReviewer(t, defaultClient(), store, &fakeFetcher{}, newFakeFeed())

	summary, err := reviewer.ProcessUnscored(context.Background(), 4)
	require.NoError(t, err)
	assert.Zero(t, summary.Total)
	assert.Zero(t, summary.Succeeded)
	assert.Zero(t, summary.Failed)
}

func TestProcessBatchClampsWorkerCount(t *testing.T) {
	paper := testPaper("2408.00004")
	store := newFakeStore()
	client := defaultClient()
	fetcher := &fakeFetcher{lines: map[string][]string{paper.ArxivID: paperLines}}
	reviewer := newTestReviewer(t, client, store, fetcher, newFakeFeed(paper))

	results := reviewer.ProcessBatch(context.Background(), []domain.Paper{paper}, 0)
	assert.Len(t, results, 1)
}
