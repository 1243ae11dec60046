package domain

import (
	"math"
	"strings"
)

// DimensionScore is one judged review dimension.
type DimensionScore struct {
	Score  float64
	Reason string
}

// ReviewStatus tracks how far a PaperScores row got.
type ReviewStatus string

const (
	ReviewPending   ReviewStatus = "pending"
	ReviewCompleted ReviewStatus = "completed"
	ReviewRewritten ReviewStatus = "rewritten-by-expert"
	ReviewFailed    ReviewStatus = "failed"
)

// Weights of the five dimensions in the composite score.
const (
	weightInnovation  = 0.35
	weightPerformance = 0.25
	weightSimplicity  = 0.15
	weightReusability = 0.15
	weightAuthority   = 0.10
)

// PaperScores is the five-dimension review of one Publication, 1:1 by
// paper id. WeightedScore is always derived from the current dimension
// scores via Reweight; it is never set independently.
type PaperScores struct {
	PaperID         string
	Title           string
	Innovation      DimensionScore
	Performance     DimensionScore
	Simplicity      DimensionScore
	Reusability     DimensionScore
	Authority       DimensionScore
	WeightedScore   float64
	Recommend       bool
	RecommendReason string
	WhoShouldRead   string
	ConfidenceScore float64
	AIReviewer      string
	ReviewStatus    ReviewStatus
	ErrorMessage    string
	Log             string
}

// Reweight recomputes the composite from the current dimensions,
// rounded to two decimals.
func (s *PaperScores) Reweight() {
	s.WeightedScore = WeightedScore(
		s.Innovation.Score,
		s.Performance.Score,
		s.Simplicity.Score,
		s.Reusability.Score,
		s.Authority.Score,
	)
}

// AppendLog adds one line to the append-only review log.
func (s *PaperScores) AppendLog(line string) {
	if s.Log == "" {
		s.Log = line
		return
	}
	s.Log = strings.Join([]string{s.Log, line}, "\n")
}

// WeightedScore folds the five dimension scores into the composite:
// 0.35*innovation + 0.25*performance + 0.15*simplicity +
// 0.15*reusability + 0.10*authority, rounded to two decimals.
func WeightedScore(innovation, performance, simplicity, reusability, authority float64) float64 {
	sum := weightInnovation*innovation +
		weightPerformance*performance +
		weightSimplicity*simplicity +
		weightReusability*reusability +
		weightAuthority*authority
	return math.Round(sum*100) / 100
}

// ScoredPublication pairs a publication with its finished scores, as
// produced for the daily report.
type ScoredPublication struct {
	Publication Publication
	Scores      PaperScores
}
