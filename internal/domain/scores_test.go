package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightedScore(t *testing.T) {
	// 0.35*7.5 + 0.25*5.5 + 0.15*6.1 + 0.15*5.5 + 0.10*8.0 = 6.54
	assert.Equal(t, 6.54, WeightedScore(7.5, 5.5, 6.1, 5.5, 8.0))
	assert.Equal(t, 0.0, WeightedScore(0, 0, 0, 0, 0))
	assert.Equal(t, 10.0, WeightedScore(10, 10, 10, 10, 10))
}

func TestReweightFollowsDimensions(t *testing.T) {
	scores := PaperScores{
		Innovation:  DimensionScore{Score: 7.5},
		Performance: DimensionScore{Score: 5.5},
		Simplicity:  DimensionScore{Score: 6.1},
		Reusability: DimensionScore{Score: 5.5},
		Authority:   DimensionScore{Score: 8.0},
	}
	scores.Reweight()
	assert.Equal(t, 6.54, scores.WeightedScore)

	scores.Innovation.Score = 10
	scores.Reweight()
	assert.Equal(t, 7.42, scores.WeightedScore)
}

func TestAppendLog(t *testing.T) {
	var scores PaperScores
	scores.AppendLog("first")
	scores.AppendLog("second")
	assert.Equal(t, "first\nsecond", scores.Log)
}

func TestEnriched(t *testing.T) {
	pub := Publication{}
	assert.False(t, pub.Enriched())

	pub.Keywords = []string{"a"}
	assert.False(t, pub.Enriched())

	pub.ResearchTopics = []string{"b"}
	assert.True(t, pub.Enriched())
}
