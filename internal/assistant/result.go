package assistant

import (
	"strconv"
	"strings"

	"PaperReview/internal/domain"
)

// ReviewResult is one reviewer's verdict in normalized form. Missing
// dimensions decode to 0.0/"N/A", never to nulls.
type ReviewResult struct {
	Innovation      domain.DimensionScore
	Performance     domain.DimensionScore
	Simplicity      domain.DimensionScore
	Reusability     domain.DimensionScore
	Authority       domain.DimensionScore
	Recommend       bool
	RecommendReason string
	WhoShouldRead   string
	Confidence      float64
	HasConfidence   bool
	Reviewer        string
}

var dimensionKeys = []string{"innovation", "performance", "simplicity", "reusability", "authority"}

// decodeReviewResult normalizes the model's score payload: a "score"
// array of single-dimension objects plus recommend/reason/
// who_should_read/confidence fields.
func decodeReviewResult(parsed map[string]any, reviewer string) *ReviewResult {
	res := &ReviewResult{Reviewer: reviewer}
	dims := map[string]*domain.DimensionScore{
		"innovation":  &res.Innovation,
		"performance": &res.Performance,
		"simplicity":  &res.Simplicity,
		"reusability": &res.Reusability,
		"authority":   &res.Authority,
	}
	for _, d := range dims {
		d.Score = 0.0
		d.Reason = "N/A"
	}

	if entries, ok := parsed["score"].([]any); ok {
		for _, raw := range entries {
			entry, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			for _, key := range dimensionKeys {
				v, ok := entry[key]
				if !ok {
					continue
				}
				dims[key].Score = clamp(toFloat(v), 0, 10)
				if reason := toString(entry["reason"]); reason != "" {
					dims[key].Reason = reason
				}
				break
			}
		}
	}

	res.Recommend = toBool(parsed["recommend"])
	res.RecommendReason = toString(parsed["reason"])
	res.WhoShouldRead = toString(parsed["who_should_read"])
	if v, ok := parsed["confidence"]; ok && v != nil {
		res.Confidence = clamp(toFloat(v), 0, 1)
		res.HasConfidence = true
	}
	return res
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func toFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err == nil {
			return f
		}
	}
	return 0
}

func toString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func toBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(strings.TrimSpace(t), "yes") ||
			strings.EqualFold(strings.TrimSpace(t), "true")
	}
	return false
}

// toStringList coerces a JSON array (or comma-separated string) into a
// trimmed string slice.
func toStringList(v any) []string {
	var out []string
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if s := toString(item); s != "" {
				out = append(out, s)
			}
		}
	case string:
		for _, part := range strings.Split(t, ",") {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
