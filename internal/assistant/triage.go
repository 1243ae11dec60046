package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"PaperReview/internal/domain"
	"PaperReview/internal/ports"
)

const (
	// sotaKeywordLimit bounds how many keywords are looked up, to keep
	// the context block small.
	sotaKeywordLimit = 3

	sotaPreamble = "Remember, you are the best expert in this domain. Here is a short summary of " +
		"background knowledge to help with the deep analysis:"

	sotaDisclaimer = "Remember, you are the best expert in this domain. I cannot provide enough " +
		"background knowledge, so rely on your own memory and do your best."
)

// Triage asks the model the six guided questions about one paper,
// seeding the prompt with looked-up state-of-the-art context.
type Triage struct {
	cfg          Config
	inv          *Invoker
	sota         ports.SOTAStore
	maxBodyChars int
	logger       *slog.Logger
}

// NewTriage resolves the triage config and wires the knowledge store.
func NewTriage(reg Registry, inv *Invoker, sota ports.SOTAStore, maxBodyChars int, logger *slog.Logger) (*Triage, error) {
	cfg, err := reg.Resolve(KindPaperTriage)
	if err != nil {
		return nil, err
	}
	if maxBodyChars <= 0 {
		maxBodyChars = 10000
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Triage{cfg: cfg, inv: inv, sota: sota, maxBodyChars: maxBodyChars, logger: logger}, nil
}

// Name identifies the assistant in logs and attribution fields.
func (a *Triage) Name() string {
	return a.cfg.Name
}

// Examine runs the six-question triage and returns the Q&A as a JSON
// string ready to store on the publication.
func (a *Triage) Examine(ctx context.Context, pub *domain.Publication) (string, error) {
	prompt := format(a.cfg.Prompt, map[string]string{
		"title":        pub.Title,
		"keywords":     strings.Join(pub.ResearchTopics, ", "),
		"abstract":     pub.Abstract,
		"conclusion":   pub.Conclusion,
		"full_text":    truncate(pub.ContentRawText, a.maxBodyChars),
		"sota_context": a.loadSOTAContext(ctx, pub),
	})

	parsed, err := a.inv.Invoke(ctx, a.cfg, a.cfg.Instruction, prompt)
	if err != nil {
		return "", err
	}

	qa, err := json.Marshal(parsed)
	if err != nil {
		return "", fmt.Errorf("marshal triage qa: %w", err)
	}
	return string(qa), nil
}

// loadSOTAContext looks up the first few keywords (topics as fallback)
// in the knowledge store and concatenates the hits. Absence of
// knowledge degrades to a generic disclaimer, never to an error.
func (a *Triage) loadSOTAContext(ctx context.Context, pub *domain.Publication) string {
	candidates := pub.Keywords
	if len(candidates) == 0 {
		candidates = pub.ResearchTopics
	}
	if len(candidates) > sotaKeywordLimit {
		candidates = candidates[:sotaKeywordLimit]
	}

	var hits []string
	for _, keyword := range candidates {
		if a.sota == nil {
			break
		}
		context, err := a.sota.Lookup(ctx, keyword)
		if err != nil {
			a.logger.Warn("sota lookup failed", "keyword", keyword, "error", err)
			continue
		}
		if context != "" {
			hits = append(hits, context)
		}
	}

	if len(hits) == 0 {
		return sotaDisclaimer
	}
	return sotaPreamble + "\n\n" + strings.Join(hits, "\n\n")
}
