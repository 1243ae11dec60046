package assistant

import (
	"context"
	"strings"

	"PaperReview/internal/domain"
)

// TopicResult carries the derived keywords and research topics.
// Skipped is true when the publication already carried both and no
// model call was made.
type TopicResult struct {
	Keywords       []string
	ResearchTopics []string
	Skipped        bool
}

// TopicSummary derives keywords and the top research topics from a
// publication's title, abstract, and conclusion.
type TopicSummary struct {
	cfg Config
	inv *Invoker
}

// NewTopicSummary resolves the topic-summary config from the registry.
func NewTopicSummary(reg Registry, inv *Invoker) (*TopicSummary, error) {
	cfg, err := reg.Resolve(KindTopicSummary)
	if err != nil {
		return nil, err
	}
	return &TopicSummary{cfg: cfg, inv: inv}, nil
}

// Name identifies the assistant in logs and attribution fields.
func (a *TopicSummary) Name() string {
	return a.cfg.Name
}

// Summarize returns the publication's keywords and research topics.
// A publication that already carries both is returned directly without
// invoking the model.
func (a *TopicSummary) Summarize(ctx context.Context, pub *domain.Publication) (*TopicResult, error) {
	if pub.Enriched() {
		return &TopicResult{
			Keywords:       pub.Keywords,
			ResearchTopics: pub.ResearchTopics,
			Skipped:        true,
		}, nil
	}

	prompt := format(a.cfg.Prompt, map[string]string{
		"title":        pub.Title,
		"keyword_list": keywordHint(pub),
		"abstract":     pub.Abstract,
		"conclusion":   pub.Conclusion,
	})

	parsed, err := a.inv.Invoke(ctx, a.cfg, a.cfg.Instruction, prompt)
	if err != nil {
		return nil, err
	}

	return &TopicResult{
		Keywords:       toStringList(parsed["keywords"]),
		ResearchTopics: toStringList(parsed["research_topics"]),
	}, nil
}

// keywordHint fills the keyword slot of the prompt, degrading through
// title-only and nothing-at-all phrasings.
func keywordHint(pub *domain.Publication) string {
	if len(pub.Keywords) > 0 {
		return strings.Join(pub.Keywords, ", ")
	}
	if pub.Title != "" {
		return "I do not have keywords, but I have the title: " + pub.Title
	}
	return "I do not have keywords or a title. Please do your best."
}
