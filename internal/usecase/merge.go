package usecase

import (
	"encoding/json"
	"fmt"

	"PaperReview/internal/assistant"
	"PaperReview/internal/domain"
)

// Candidate is one reviewer's complete verdict, frozen at decode time.
// Merging never mutates a candidate; it only chooses between them.
type Candidate struct {
	Innovation      domain.DimensionScore
	Performance     domain.DimensionScore
	Simplicity      domain.DimensionScore
	Reusability     domain.DimensionScore
	Authority       domain.DimensionScore
	Recommend       bool
	RecommendReason string
	WhoShouldRead   string
	Confidence      float64
	Reviewer        string
	Valid           bool
}

func candidateFromResult(res *assistant.ReviewResult) Candidate {
	return Candidate{
		Innovation:      res.Innovation,
		Performance:     res.Performance,
		Simplicity:      res.Simplicity,
		Reusability:     res.Reusability,
		Authority:       res.Authority,
		Recommend:       res.Recommend,
		RecommendReason: res.RecommendReason,
		WhoShouldRead:   res.WhoShouldRead,
		Confidence:      res.Confidence,
		Reviewer:        res.Reviewer,
		Valid:           res.HasConfidence,
	}
}

// pickBetter keeps the current best unless the challenger carries a
// strictly higher confidence. A challenger without a confidence score
// never wins; an incumbent without one counts as confidence 0.0; ties
// keep the incumbent.
func pickBetter(best, challenger Candidate) (Candidate, bool) {
	if !challenger.Valid {
		return best, false
	}
	incumbent := best.Confidence
	if !best.Valid {
		incumbent = 0
	}
	if challenger.Confidence > incumbent {
		return challenger, true
	}
	return best, false
}

// apply copies the winning candidate's verdict onto the scores row and
// recomputes the composite.
func apply(scores *domain.PaperScores, c Candidate) {
	scores.Innovation = c.Innovation
	scores.Performance = c.Performance
	scores.Simplicity = c.Simplicity
	scores.Reusability = c.Reusability
	scores.Authority = c.Authority
	scores.Recommend = c.Recommend
	scores.RecommendReason = c.RecommendReason
	scores.WhoShouldRead = c.WhoShouldRead
	scores.ConfidenceScore = c.Confidence
	scores.AIReviewer = c.Reviewer
	scores.Reweight()
}

// marshalCandidate serializes a verdict in the same JSON shape the
// reviewers emit, so an expert can be handed the previous review as
// reference material.
func marshalCandidate(c Candidate) string {
	recommend := "no"
	if c.Recommend {
		recommend = "yes"
	}
	payload := map[string]any{
		"score": []map[string]any{
			{"innovation": c.Innovation.Score, "reason": c.Innovation.Reason},
			{"performance": c.Performance.Score, "reason": c.Performance.Reason},
			{"simplicity": c.Simplicity.Score, "reason": c.Simplicity.Reason},
			{"reusability": c.Reusability.Score, "reason": c.Reusability.Reason},
			{"authority": c.Authority.Score, "reason": c.Authority.Reason},
		},
		"recommend":       recommend,
		"reason":          c.RecommendReason,
		"who_should_read": c.WhoShouldRead,
		"confidence":      c.Confidence,
		"reviewer":        c.Reviewer,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf(`{"reviewer": %q}`, c.Reviewer)
	}
	return string(raw)
}
